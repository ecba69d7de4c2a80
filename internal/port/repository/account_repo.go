package repository

import (
	"context"

	"github.com/MohammadBTelfah/Damanah-sub000/internal/entity"
)

type ClientRepository interface {
	Create(ctx context.Context, client *entity.Client) (string, error)
	GetByID(ctx context.Context, id string) (*entity.Client, error)
	GetByEmail(ctx context.Context, email string) (*entity.Client, error)
	Update(ctx context.Context, client *entity.Client) error
	List(ctx context.Context, skip, limit int64) ([]*entity.Client, error)
}

type ContractorRepository interface {
	Create(ctx context.Context, contractor *entity.Contractor) (string, error)
	GetByID(ctx context.Context, id string) (*entity.Contractor, error)
	GetByEmail(ctx context.Context, email string) (*entity.Contractor, error)
	Update(ctx context.Context, contractor *entity.Contractor) error
	List(ctx context.Context, skip, limit int64) ([]*entity.Contractor, error)
}

type AdminRepository interface {
	Create(ctx context.Context, admin *entity.Admin) (string, error)
	GetByID(ctx context.Context, id string) (*entity.Admin, error)
	GetByEmail(ctx context.Context, email string) (*entity.Admin, error)
	Update(ctx context.Context, admin *entity.Admin) error
}

// AccountDirectory fans a lookup out across all three account collections.
// Email and phone uniqueness hold over the union of the collections, so the
// pre-insert guard and login cannot rely on any single collection's view.
type AccountDirectory interface {
	FindByEmail(ctx context.Context, email string) (entity.Account, error)
	FindByPhone(ctx context.Context, phone string) (entity.Account, error)
	FindByVerificationHash(ctx context.Context, digest string) (entity.Account, error)
	FindByID(ctx context.Context, role entity.Role, id string) (entity.Account, error)
}
