package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/MohammadBTelfah/Damanah-sub000/internal/domain"
	"github.com/MohammadBTelfah/Damanah-sub000/internal/entity"
	"github.com/MohammadBTelfah/Damanah-sub000/internal/platform/metrics"
	"github.com/MohammadBTelfah/Damanah-sub000/internal/port/gateway"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type registrationFixture struct {
	clients     *MockClientRepository
	contractors *MockContractorRepository
	admins      *MockAdminRepository
	directory   *MockAccountDirectory
	documents   *MockDocumentStore
	extractor   *MockIdentityExtractor
	mailer      *MockEmailSender
	events      *MockEventPublisher
	uc          *RegistrationUsecase
}

func newRegistrationFixture(t *testing.T) *registrationFixture {
	t.Helper()
	logger, _ := zap.NewDevelopment()
	f := &registrationFixture{
		clients:     new(MockClientRepository),
		contractors: new(MockContractorRepository),
		admins:      new(MockAdminRepository),
		directory:   new(MockAccountDirectory),
		documents:   new(MockDocumentStore),
		extractor:   new(MockIdentityExtractor),
		mailer:      new(MockEmailSender),
		events:      new(MockEventPublisher),
	}
	f.uc = NewRegistrationUsecase(
		f.clients, f.contractors, f.admins, f.directory,
		f.documents, f.extractor, f.mailer, f.events,
		metrics.NewManager("test"), logger, "http://localhost:8080",
	)
	return f
}

func validClientInput() RegisterInput {
	return RegisterInput{
		Role:     entity.RoleClient,
		Name:     "Omar Haddad",
		Email:    "Omar.Haddad@Example.com",
		Phone:    "+962791234567",
		Password: "s3cret-pass",
	}
}

func expectNoDuplicates(f *registrationFixture) {
	f.directory.On("FindByEmail", mock.Anything, mock.AnythingOfType("string")).Return(nil, domain.ErrNotFound).Once()
	f.directory.On("FindByPhone", mock.Anything, mock.AnythingOfType("string")).Return(nil, domain.ErrNotFound).Once()
}

func TestRegistrationUsecase_Register_Client(t *testing.T) {
	f := newRegistrationFixture(t)
	ctx := context.Background()

	expectNoDuplicates(f)
	f.clients.On("Create", mock.Anything, mock.AnythingOfType("*entity.Client")).Return("client-1", nil).Once()
	f.mailer.On("Send", mock.Anything, "omar.haddad@example.com", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
	f.events.On("PublishAccountRegistered", mock.Anything, mock.Anything).Return(nil).Once()

	acct, err := f.uc.Register(ctx, validClientInput())

	assert.NoError(t, err)
	client, ok := acct.(*entity.Client)
	assert.True(t, ok)
	assert.Equal(t, "omar.haddad@example.com", client.Email, "email must be stored normalized")
	assert.False(t, client.IsActive)
	assert.False(t, client.EmailVerified)
	assert.NotEmpty(t, client.EmailVerificationHash)
	assert.Len(t, client.EmailVerificationHash, 64, "only the sha256 digest is persisted")
	assert.NotEmpty(t, client.PasswordHash)
	assert.NotEqual(t, "s3cret-pass", client.PasswordHash)
	f.clients.AssertExpectations(t)
	f.directory.AssertExpectations(t)
	f.mailer.AssertExpectations(t)
}

func TestRegistrationUsecase_Register_DuplicateEmail(t *testing.T) {
	f := newRegistrationFixture(t)
	ctx := context.Background()

	existing := &entity.Admin{}
	f.directory.On("FindByEmail", mock.Anything, "omar.haddad@example.com").Return(existing, nil).Once()

	_, err := f.uc.Register(ctx, validClientInput())

	assert.ErrorIs(t, err, domain.ErrConflict)
	f.clients.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegistrationUsecase_Register_DuplicatePhone(t *testing.T) {
	f := newRegistrationFixture(t)
	ctx := context.Background()

	f.directory.On("FindByEmail", mock.Anything, mock.Anything).Return(nil, domain.ErrNotFound).Once()
	f.directory.On("FindByPhone", mock.Anything, "+962791234567").Return(&entity.Contractor{}, nil).Once()

	_, err := f.uc.Register(ctx, validClientInput())

	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestRegistrationUsecase_Register_InsertRaceSurfacesConflict(t *testing.T) {
	f := newRegistrationFixture(t)
	ctx := context.Background()

	expectNoDuplicates(f)
	// Another request inserted the same email between the pre-check and the
	// insert; the repository translates the duplicate-key error.
	f.clients.On("Create", mock.Anything, mock.Anything).
		Return("", errors.New("duplicate: email")).Once()

	_, err := f.uc.Register(ctx, validClientInput())
	assert.Error(t, err)
}

func TestRegistrationUsecase_Register_ValidationFailures(t *testing.T) {
	f := newRegistrationFixture(t)
	ctx := context.Background()

	cases := map[string]func(*RegisterInput){
		"missing name":     func(in *RegisterInput) { in.Name = "  " },
		"bad email":        func(in *RegisterInput) { in.Email = "not-an-email" },
		"missing phone":    func(in *RegisterInput) { in.Phone = "" },
		"password too short": func(in *RegisterInput) { in.Password = "short" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := validClientInput()
			mutate(&in)
			_, err := f.uc.Register(ctx, in)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
	f.directory.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
}

func TestRegistrationUsecase_Register_ContractorStartsPending(t *testing.T) {
	f := newRegistrationFixture(t)
	ctx := context.Background()

	in := validClientInput()
	in.Role = entity.RoleContractor
	in.ContractorDocument = &Document{FileName: "license.pdf", ContentType: "application/pdf", Data: []byte("pdf")}

	expectNoDuplicates(f)
	f.documents.On("Upload", mock.Anything, "contractor/license", "license.pdf", mock.Anything, "application/pdf").
		Return("contractor/license/abc.pdf", nil).Once()
	f.contractors.On("Create", mock.Anything, mock.AnythingOfType("*entity.Contractor")).Return("contractor-1", nil).Once()
	f.mailer.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
	f.events.On("PublishAccountRegistered", mock.Anything, mock.Anything).Return(nil).Once()

	acct, err := f.uc.Register(ctx, in)

	assert.NoError(t, err)
	contractor := acct.(*entity.Contractor)
	assert.Equal(t, entity.ContractorPending, contractor.ContractorStatus)
	assert.Equal(t, "contractor/license/abc.pdf", contractor.ContractorDocument)
	assert.False(t, contractor.IsActive)
}

func TestRegistrationUsecase_Register_OCRFillsCandidateOnly(t *testing.T) {
	f := newRegistrationFixture(t)
	ctx := context.Background()

	in := validClientInput()
	in.IdentityDocument = &Document{FileName: "id.jpg", ContentType: "image/jpeg", Data: []byte("jpg")}

	expectNoDuplicates(f)
	f.documents.On("Upload", mock.Anything, "client/identity", "id.jpg", mock.Anything, "image/jpeg").
		Return("client/identity/xyz.jpg", nil).Once()
	f.extractor.On("Extract", mock.Anything, "client/identity/xyz.jpg").
		Return(&gateway.Extraction{NationalID: "9901234567", Confidence: 0.93}, nil).Once()
	f.clients.On("Create", mock.Anything, mock.AnythingOfType("*entity.Client")).Return("client-1", nil).Once()
	f.mailer.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
	f.events.On("PublishAccountRegistered", mock.Anything, mock.Anything).Return(nil).Once()

	acct, err := f.uc.Register(ctx, in)

	assert.NoError(t, err)
	client := acct.(*entity.Client)
	assert.Equal(t, entity.IdentityPending, client.IdentityStatus)
	assert.Equal(t, "9901234567", client.NationalIDCandidate)
	assert.InDelta(t, 0.93, client.NationalIDConfidence, 0.0001)
	assert.Empty(t, client.NationalID, "OCR never writes the confirmed national id")
}

func TestRegistrationUsecase_Register_OCRFailureDoesNotAbort(t *testing.T) {
	f := newRegistrationFixture(t)
	ctx := context.Background()

	in := validClientInput()
	in.IdentityDocument = &Document{FileName: "id.jpg", ContentType: "image/jpeg", Data: []byte("jpg")}

	expectNoDuplicates(f)
	f.documents.On("Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("client/identity/xyz.jpg", nil).Once()
	f.extractor.On("Extract", mock.Anything, mock.Anything).
		Return(nil, domain.ErrUpstream).Once()
	f.clients.On("Create", mock.Anything, mock.AnythingOfType("*entity.Client")).Return("client-1", nil).Once()
	f.mailer.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
	f.events.On("PublishAccountRegistered", mock.Anything, mock.Anything).Return(nil).Once()

	acct, err := f.uc.Register(ctx, in)

	assert.NoError(t, err)
	client := acct.(*entity.Client)
	assert.Equal(t, entity.IdentityPending, client.IdentityStatus)
	assert.Empty(t, client.NationalIDCandidate)
}

func TestRegistrationUsecase_Register_EmailFailureDoesNotAbort(t *testing.T) {
	f := newRegistrationFixture(t)
	ctx := context.Background()

	expectNoDuplicates(f)
	f.clients.On("Create", mock.Anything, mock.Anything).Return("client-1", nil).Once()
	f.mailer.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("smtp down")).Once()
	f.events.On("PublishAccountRegistered", mock.Anything, mock.Anything).Return(nil).Once()

	_, err := f.uc.Register(ctx, validClientInput())
	assert.NoError(t, err)
}
