package usecase

import (
	"context"
	"time"

	"github.com/MohammadBTelfah/Damanah-sub000/internal/entity"
	"github.com/MohammadBTelfah/Damanah-sub000/internal/port/gateway"
	"github.com/stretchr/testify/mock"
)

type MockClientRepository struct{ mock.Mock }

func (m *MockClientRepository) Create(ctx context.Context, client *entity.Client) (string, error) {
	args := m.Called(ctx, client)
	return args.String(0), args.Error(1)
}
func (m *MockClientRepository) GetByID(ctx context.Context, id string) (*entity.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Client), args.Error(1)
}
func (m *MockClientRepository) GetByEmail(ctx context.Context, email string) (*entity.Client, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Client), args.Error(1)
}
func (m *MockClientRepository) Update(ctx context.Context, client *entity.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}
func (m *MockClientRepository) List(ctx context.Context, skip, limit int64) ([]*entity.Client, error) {
	args := m.Called(ctx, skip, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Client), args.Error(1)
}

type MockContractorRepository struct{ mock.Mock }

func (m *MockContractorRepository) Create(ctx context.Context, contractor *entity.Contractor) (string, error) {
	args := m.Called(ctx, contractor)
	return args.String(0), args.Error(1)
}
func (m *MockContractorRepository) GetByID(ctx context.Context, id string) (*entity.Contractor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Contractor), args.Error(1)
}
func (m *MockContractorRepository) GetByEmail(ctx context.Context, email string) (*entity.Contractor, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Contractor), args.Error(1)
}
func (m *MockContractorRepository) Update(ctx context.Context, contractor *entity.Contractor) error {
	args := m.Called(ctx, contractor)
	return args.Error(0)
}
func (m *MockContractorRepository) List(ctx context.Context, skip, limit int64) ([]*entity.Contractor, error) {
	args := m.Called(ctx, skip, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Contractor), args.Error(1)
}

type MockAdminRepository struct{ mock.Mock }

func (m *MockAdminRepository) Create(ctx context.Context, admin *entity.Admin) (string, error) {
	args := m.Called(ctx, admin)
	return args.String(0), args.Error(1)
}
func (m *MockAdminRepository) GetByID(ctx context.Context, id string) (*entity.Admin, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Admin), args.Error(1)
}
func (m *MockAdminRepository) GetByEmail(ctx context.Context, email string) (*entity.Admin, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Admin), args.Error(1)
}
func (m *MockAdminRepository) Update(ctx context.Context, admin *entity.Admin) error {
	args := m.Called(ctx, admin)
	return args.Error(0)
}

type MockAccountDirectory struct{ mock.Mock }

func (m *MockAccountDirectory) FindByEmail(ctx context.Context, email string) (entity.Account, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(entity.Account), args.Error(1)
}
func (m *MockAccountDirectory) FindByPhone(ctx context.Context, phone string) (entity.Account, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(entity.Account), args.Error(1)
}
func (m *MockAccountDirectory) FindByVerificationHash(ctx context.Context, digest string) (entity.Account, error) {
	args := m.Called(ctx, digest)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(entity.Account), args.Error(1)
}
func (m *MockAccountDirectory) FindByID(ctx context.Context, role entity.Role, id string) (entity.Account, error) {
	args := m.Called(ctx, role, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(entity.Account), args.Error(1)
}

type MockMaterialRepository struct{ mock.Mock }

func (m *MockMaterialRepository) Create(ctx context.Context, material *entity.Material) (string, error) {
	args := m.Called(ctx, material)
	return args.String(0), args.Error(1)
}
func (m *MockMaterialRepository) Update(ctx context.Context, material *entity.Material) error {
	args := m.Called(ctx, material)
	return args.Error(0)
}
func (m *MockMaterialRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockMaterialRepository) GetByID(ctx context.Context, id string) (*entity.Material, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Material), args.Error(1)
}
func (m *MockMaterialRepository) GetByName(ctx context.Context, name string) (*entity.Material, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Material), args.Error(1)
}
func (m *MockMaterialRepository) List(ctx context.Context) ([]*entity.Material, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Material), args.Error(1)
}

type MockProjectRepository struct{ mock.Mock }

func (m *MockProjectRepository) Create(ctx context.Context, project *entity.Project) (string, error) {
	args := m.Called(ctx, project)
	return args.String(0), args.Error(1)
}
func (m *MockProjectRepository) GetByID(ctx context.Context, id string) (*entity.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Project), args.Error(1)
}
func (m *MockProjectRepository) ListByClient(ctx context.Context, clientID string) ([]*entity.Project, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Project), args.Error(1)
}

type MockEmailSender struct{ mock.Mock }

func (m *MockEmailSender) Send(ctx context.Context, to, subject, htmlBody, textBody string) error {
	args := m.Called(ctx, to, subject, htmlBody, textBody)
	return args.Error(0)
}

type MockIdentityExtractor struct{ mock.Mock }

func (m *MockIdentityExtractor) Extract(ctx context.Context, documentKey string) (*gateway.Extraction, error) {
	args := m.Called(ctx, documentKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateway.Extraction), args.Error(1)
}

type MockDocumentStore struct{ mock.Mock }

func (m *MockDocumentStore) Upload(ctx context.Context, prefix, fileName string, data []byte, contentType string) (string, error) {
	args := m.Called(ctx, prefix, fileName, data, contentType)
	return args.String(0), args.Error(1)
}

type MockSessionStore struct{ mock.Mock }

func (m *MockSessionStore) Save(ctx context.Context, accountID, token string, ttl time.Duration) error {
	args := m.Called(ctx, accountID, token, ttl)
	return args.Error(0)
}
func (m *MockSessionStore) Get(ctx context.Context, accountID string) (string, error) {
	args := m.Called(ctx, accountID)
	return args.String(0), args.Error(1)
}
func (m *MockSessionStore) Delete(ctx context.Context, accountID string) error {
	args := m.Called(ctx, accountID)
	return args.Error(0)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) PublishAccountRegistered(ctx context.Context, acct entity.Account) error {
	args := m.Called(ctx, acct)
	return args.Error(0)
}
func (m *MockEventPublisher) PublishEmailVerified(ctx context.Context, acct entity.Account) error {
	args := m.Called(ctx, acct)
	return args.Error(0)
}
func (m *MockEventPublisher) PublishContractorApproved(ctx context.Context, contractor *entity.Contractor) error {
	args := m.Called(ctx, contractor)
	return args.Error(0)
}
