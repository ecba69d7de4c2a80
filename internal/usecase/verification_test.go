package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/MohammadBTelfah/Damanah-sub000/internal/domain"
	"github.com/MohammadBTelfah/Damanah-sub000/internal/entity"
	"github.com/MohammadBTelfah/Damanah-sub000/internal/platform/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type verificationFixture struct {
	clients     *MockClientRepository
	contractors *MockContractorRepository
	admins      *MockAdminRepository
	directory   *MockAccountDirectory
	mailer      *MockEmailSender
	events      *MockEventPublisher
	uc          *VerificationUsecase
}

func newVerificationFixture(t *testing.T) *verificationFixture {
	t.Helper()
	logger, _ := zap.NewDevelopment()
	f := &verificationFixture{
		clients:     new(MockClientRepository),
		contractors: new(MockContractorRepository),
		admins:      new(MockAdminRepository),
		directory:   new(MockAccountDirectory),
		mailer:      new(MockEmailSender),
		events:      new(MockEventPublisher),
	}
	f.uc = NewVerificationUsecase(
		f.clients, f.contractors, f.admins, f.directory,
		f.mailer, f.events, metrics.NewManager("test"), logger, "http://localhost:8080",
	)
	return f
}

func pendingClient(rawToken string, expires time.Time) *entity.Client {
	return &entity.Client{Profile: entity.Profile{
		ID:                       "client-1",
		Name:                     "Omar Haddad",
		Email:                    "omar@example.com",
		EmailVerificationHash:    hashSecret(rawToken),
		EmailVerificationExpires: expires,
	}}
}

func TestVerificationUsecase_VerifyEmail_ActivatesClient(t *testing.T) {
	f := newVerificationFixture(t)
	ctx := context.Background()
	raw := "raw-token"
	client := pendingClient(raw, time.Now().Add(time.Hour))

	f.directory.On("FindByVerificationHash", ctx, hashSecret(raw)).Return(client, nil).Once()
	f.clients.On("Update", ctx, client).Return(nil).Once()
	f.events.On("PublishEmailVerified", ctx, mock.Anything).Return(nil).Once()

	err := f.uc.VerifyEmail(ctx, raw)

	assert.NoError(t, err)
	assert.True(t, client.EmailVerified)
	assert.True(t, client.IsActive)
	f.clients.AssertExpectations(t)
}

func TestVerificationUsecase_VerifyEmail_ContractorStaysInactiveUntilApproved(t *testing.T) {
	f := newVerificationFixture(t)
	ctx := context.Background()
	raw := "raw-token"
	contractor := &entity.Contractor{
		Profile: entity.Profile{
			ID:                       "contractor-1",
			EmailVerificationHash:    hashSecret(raw),
			EmailVerificationExpires: time.Now().Add(time.Hour),
		},
		ContractorStatus: entity.ContractorPending,
	}

	f.directory.On("FindByVerificationHash", ctx, hashSecret(raw)).Return(contractor, nil).Once()
	f.contractors.On("Update", ctx, contractor).Return(nil).Once()
	f.events.On("PublishEmailVerified", ctx, mock.Anything).Return(nil).Once()

	err := f.uc.VerifyEmail(ctx, raw)

	assert.NoError(t, err)
	assert.True(t, contractor.EmailVerified)
	assert.False(t, contractor.IsActive, "pending contractors must not activate on verification")
}

func TestVerificationUsecase_VerifyEmail_ApprovedContractorActivates(t *testing.T) {
	f := newVerificationFixture(t)
	ctx := context.Background()
	raw := "raw-token"
	contractor := &entity.Contractor{
		Profile: entity.Profile{
			ID:                       "contractor-1",
			EmailVerificationHash:    hashSecret(raw),
			EmailVerificationExpires: time.Now().Add(time.Hour),
		},
		ContractorStatus: entity.ContractorVerified,
	}

	f.directory.On("FindByVerificationHash", ctx, hashSecret(raw)).Return(contractor, nil).Once()
	f.contractors.On("Update", ctx, contractor).Return(nil).Once()
	f.events.On("PublishEmailVerified", ctx, mock.Anything).Return(nil).Once()

	err := f.uc.VerifyEmail(ctx, raw)

	assert.NoError(t, err)
	assert.True(t, contractor.IsActive)
}

func TestVerificationUsecase_VerifyEmail_RepeatClickIsIdempotent(t *testing.T) {
	f := newVerificationFixture(t)
	ctx := context.Background()
	raw := "raw-token"
	client := pendingClient(raw, time.Now().Add(time.Hour))
	client.EmailVerified = true
	client.IsActive = true

	f.directory.On("FindByVerificationHash", ctx, hashSecret(raw)).Return(client, nil).Once()

	err := f.uc.VerifyEmail(ctx, raw)

	assert.NoError(t, err)
	f.clients.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestVerificationUsecase_VerifyEmail_Expired(t *testing.T) {
	f := newVerificationFixture(t)
	ctx := context.Background()
	raw := "raw-token"
	client := pendingClient(raw, time.Now().Add(-time.Minute))

	f.directory.On("FindByVerificationHash", ctx, hashSecret(raw)).Return(client, nil).Once()

	err := f.uc.VerifyEmail(ctx, raw)

	assert.ErrorIs(t, err, domain.ErrInvalidOrExpiredToken)
	assert.False(t, client.EmailVerified)
	f.clients.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestVerificationUsecase_VerifyEmail_UnknownToken(t *testing.T) {
	f := newVerificationFixture(t)
	ctx := context.Background()

	f.directory.On("FindByVerificationHash", ctx, mock.Anything).Return(nil, domain.ErrNotFound).Once()

	err := f.uc.VerifyEmail(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrInvalidOrExpiredToken)
}

func TestVerificationUsecase_ResetPassword_Flow(t *testing.T) {
	f := newVerificationFixture(t)
	ctx := context.Background()

	otp := "123456"
	client := &entity.Client{Profile: entity.Profile{
		ID:              "client-1",
		Email:           "omar@example.com",
		PasswordHash:    "old-hash",
		ResetOTPHash:    hashSecret(otp),
		ResetOTPExpires: time.Now().Add(5 * time.Minute),
	}}

	f.directory.On("FindByEmail", ctx, "omar@example.com").Return(client, nil).Once()
	f.clients.On("Update", ctx, client).Return(nil).Once()

	err := f.uc.ResetPassword(ctx, "Omar@Example.com", otp, "brand-new-password")

	assert.NoError(t, err)
	assert.Empty(t, client.ResetOTPHash, "the OTP digest is cleared so it cannot be replayed")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(client.PasswordHash), []byte("brand-new-password")))
}

func TestVerificationUsecase_ResetPassword_WrongOTP(t *testing.T) {
	f := newVerificationFixture(t)
	ctx := context.Background()

	client := &entity.Client{Profile: entity.Profile{
		ID:              "client-1",
		Email:           "omar@example.com",
		ResetOTPHash:    hashSecret("123456"),
		ResetOTPExpires: time.Now().Add(5 * time.Minute),
	}}
	f.directory.On("FindByEmail", ctx, "omar@example.com").Return(client, nil).Once()

	err := f.uc.ResetPassword(ctx, "omar@example.com", "654321", "brand-new-password")
	assert.ErrorIs(t, err, domain.ErrInvalidOrExpiredToken)
	f.clients.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestVerificationUsecase_ResetPassword_ExpiredOTP(t *testing.T) {
	f := newVerificationFixture(t)
	ctx := context.Background()

	client := &entity.Client{Profile: entity.Profile{
		ID:              "client-1",
		Email:           "omar@example.com",
		ResetOTPHash:    hashSecret("123456"),
		ResetOTPExpires: time.Now().Add(-time.Minute),
	}}
	f.directory.On("FindByEmail", ctx, "omar@example.com").Return(client, nil).Once()

	err := f.uc.ResetPassword(ctx, "omar@example.com", "123456", "brand-new-password")
	assert.ErrorIs(t, err, domain.ErrInvalidOrExpiredToken)
}

func TestVerificationUsecase_RequestPasswordReset_SendsOTP(t *testing.T) {
	f := newVerificationFixture(t)
	ctx := context.Background()

	client := &entity.Client{Profile: entity.Profile{ID: "client-1", Name: "Omar", Email: "omar@example.com"}}
	f.directory.On("FindByEmail", ctx, "omar@example.com").Return(client, nil).Once()
	f.clients.On("Update", ctx, client).Return(nil).Once()
	f.mailer.On("Send", ctx, "omar@example.com", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

	err := f.uc.RequestPasswordReset(ctx, "omar@example.com")

	assert.NoError(t, err)
	assert.Len(t, client.ResetOTPHash, 64)
	assert.WithinDuration(t, time.Now().Add(resetOTPTTLMinutes*time.Minute), client.ResetOTPExpires, time.Minute)
}
