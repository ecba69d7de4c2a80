package mongo

import (
	"context"
	"errors"

	"github.com/MohammadBTelfah/Damanah-sub000/internal/domain"
	"github.com/MohammadBTelfah/Damanah-sub000/internal/entity"
	"go.mongodb.org/mongo-driver/bson"
)

// AccountDirectory fans lookups out over the three account collections in a
// fixed order. Callers pass already-normalized email/phone values; documents
// are stored normalized, so plain equality behaves case-insensitively.
type AccountDirectory struct {
	clients     *ClientRepository
	contractors *ContractorRepository
	admins      *AdminRepository
}

func NewAccountDirectory(clients *ClientRepository, contractors *ContractorRepository, admins *AdminRepository) *AccountDirectory {
	return &AccountDirectory{clients: clients, contractors: contractors, admins: admins}
}

func (d *AccountDirectory) findAcross(ctx context.Context, filter bson.M) (entity.Account, error) {
	if doc, err := d.clients.accounts.findOne(ctx, filter); err == nil {
		return docToClient(doc), nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if doc, err := d.contractors.accounts.findOne(ctx, filter); err == nil {
		return docToContractor(doc), nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if doc, err := d.admins.accounts.findOne(ctx, filter); err == nil {
		return docToAdmin(doc), nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	return nil, domain.ErrNotFound
}

func (d *AccountDirectory) FindByEmail(ctx context.Context, email string) (entity.Account, error) {
	return d.findAcross(ctx, bson.M{"email": email})
}

func (d *AccountDirectory) FindByPhone(ctx context.Context, phone string) (entity.Account, error) {
	return d.findAcross(ctx, bson.M{"phone": phone})
}

func (d *AccountDirectory) FindByVerificationHash(ctx context.Context, digest string) (entity.Account, error) {
	return d.findAcross(ctx, bson.M{"email_verification_hash": digest})
}

func (d *AccountDirectory) FindByID(ctx context.Context, role entity.Role, id string) (entity.Account, error) {
	switch role {
	case entity.RoleClient:
		return d.clients.GetByID(ctx, id)
	case entity.RoleContractor:
		return d.contractors.GetByID(ctx, id)
	case entity.RoleAdmin:
		return d.admins.GetByID(ctx, id)
	default:
		return nil, domain.ErrNotFound
	}
}
