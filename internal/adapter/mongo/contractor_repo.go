package mongo

import (
	"context"

	"github.com/MohammadBTelfah/Damanah-sub000/internal/entity"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type ContractorRepository struct {
	accounts accountCollection
}

func NewContractorRepository(db *mongo.Database, logger *zap.Logger) *ContractorRepository {
	return &ContractorRepository{accounts: newAccountCollection(db, collContractors, logger)}
}

func (r *ContractorRepository) Create(ctx context.Context, contractor *entity.Contractor) (string, error) {
	doc := docFromContractor(contractor)
	id, err := r.accounts.insert(ctx, &doc)
	if err != nil {
		return "", err
	}
	contractor.ID = id.Hex()
	contractor.CreatedAt = doc.CreatedAt
	contractor.UpdatedAt = doc.UpdatedAt
	return contractor.ID, nil
}

func (r *ContractorRepository) GetByID(ctx context.Context, id string) (*entity.Contractor, error) {
	doc, err := r.accounts.findByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return docToContractor(doc), nil
}

func (r *ContractorRepository) GetByEmail(ctx context.Context, email string) (*entity.Contractor, error) {
	doc, err := r.accounts.findOne(ctx, bson.M{"email": email})
	if err != nil {
		return nil, err
	}
	return docToContractor(doc), nil
}

func (r *ContractorRepository) Update(ctx context.Context, contractor *entity.Contractor) error {
	doc := docFromContractor(contractor)
	doc.CreatedAt = contractor.CreatedAt
	return r.accounts.replace(ctx, &doc)
}

func (r *ContractorRepository) List(ctx context.Context, skip, limit int64) ([]*entity.Contractor, error) {
	docs, err := r.accounts.list(ctx, skip, limit)
	if err != nil {
		return nil, err
	}
	contractors := make([]*entity.Contractor, 0, len(docs))
	for _, doc := range docs {
		contractors = append(contractors, docToContractor(doc))
	}
	return contractors, nil
}
