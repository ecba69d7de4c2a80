package mongo

import (
	"context"

	"github.com/MohammadBTelfah/Damanah-sub000/internal/entity"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type AdminRepository struct {
	accounts accountCollection
}

func NewAdminRepository(db *mongo.Database, logger *zap.Logger) *AdminRepository {
	return &AdminRepository{accounts: newAccountCollection(db, collAdmins, logger)}
}

func (r *AdminRepository) Create(ctx context.Context, admin *entity.Admin) (string, error) {
	doc := docFromAdmin(admin)
	id, err := r.accounts.insert(ctx, &doc)
	if err != nil {
		return "", err
	}
	admin.ID = id.Hex()
	admin.CreatedAt = doc.CreatedAt
	admin.UpdatedAt = doc.UpdatedAt
	return admin.ID, nil
}

func (r *AdminRepository) GetByID(ctx context.Context, id string) (*entity.Admin, error) {
	doc, err := r.accounts.findByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return docToAdmin(doc), nil
}

func (r *AdminRepository) GetByEmail(ctx context.Context, email string) (*entity.Admin, error) {
	doc, err := r.accounts.findOne(ctx, bson.M{"email": email})
	if err != nil {
		return nil, err
	}
	return docToAdmin(doc), nil
}

func (r *AdminRepository) Update(ctx context.Context, admin *entity.Admin) error {
	doc := docFromAdmin(admin)
	doc.CreatedAt = admin.CreatedAt
	return r.accounts.replace(ctx, &doc)
}
