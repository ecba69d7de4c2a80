package mongo

import (
	"context"

	"github.com/MohammadBTelfah/Damanah-sub000/internal/entity"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type ClientRepository struct {
	accounts accountCollection
}

func NewClientRepository(db *mongo.Database, logger *zap.Logger) *ClientRepository {
	return &ClientRepository{accounts: newAccountCollection(db, collClients, logger)}
}

func (r *ClientRepository) Create(ctx context.Context, client *entity.Client) (string, error) {
	doc := docFromClient(client)
	id, err := r.accounts.insert(ctx, &doc)
	if err != nil {
		return "", err
	}
	client.ID = id.Hex()
	client.CreatedAt = doc.CreatedAt
	client.UpdatedAt = doc.UpdatedAt
	return client.ID, nil
}

func (r *ClientRepository) GetByID(ctx context.Context, id string) (*entity.Client, error) {
	doc, err := r.accounts.findByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return docToClient(doc), nil
}

func (r *ClientRepository) GetByEmail(ctx context.Context, email string) (*entity.Client, error) {
	doc, err := r.accounts.findOne(ctx, bson.M{"email": email})
	if err != nil {
		return nil, err
	}
	return docToClient(doc), nil
}

func (r *ClientRepository) Update(ctx context.Context, client *entity.Client) error {
	doc := docFromClient(client)
	doc.CreatedAt = client.CreatedAt
	return r.accounts.replace(ctx, &doc)
}

func (r *ClientRepository) List(ctx context.Context, skip, limit int64) ([]*entity.Client, error) {
	docs, err := r.accounts.list(ctx, skip, limit)
	if err != nil {
		return nil, err
	}
	clients := make([]*entity.Client, 0, len(docs))
	for _, doc := range docs {
		clients = append(clients, docToClient(doc))
	}
	return clients, nil
}
