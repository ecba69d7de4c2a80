package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/MohammadBTelfah/Damanah-sub000/internal/domain"
	"github.com/MohammadBTelfah/Damanah-sub000/internal/entity"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type projectDoc struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	ClientID       string             `bson:"client_id"`
	Name           string             `bson:"name,omitempty"`
	Area           float64            `bson:"area"`
	Floors         int                `bson:"floors"`
	FinishingLevel string             `bson:"finishing_level"`
	CreatedAt      time.Time          `bson:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at"`
}

func (d *projectDoc) toEntity() *entity.Project {
	return &entity.Project{
		ID:             d.ID.Hex(),
		ClientID:       d.ClientID,
		Name:           d.Name,
		Area:           d.Area,
		Floors:         d.Floors,
		FinishingLevel: d.FinishingLevel,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

type ProjectRepository struct {
	col    *mongo.Collection
	logger *zap.Logger
}

func NewProjectRepository(db *mongo.Database, logger *zap.Logger) *ProjectRepository {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	col := db.Collection("projects")
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "client_id", Value: 1}, {Key: "created_at", Value: -1}}},
	}
	if _, err := col.Indexes().CreateMany(ctx, indexes); err != nil {
		logger.Warn("Failed to create indexes for projects collection (may already exist)", zap.Error(err))
	}

	return &ProjectRepository{col: col, logger: logger.Named("ProjectRepository")}
}

func (r *ProjectRepository) Create(ctx context.Context, project *entity.Project) (string, error) {
	now := time.Now()
	doc := projectDoc{
		ID:             primitive.NewObjectID(),
		ClientID:       project.ClientID,
		Name:           project.Name,
		Area:           project.Area,
		Floors:         project.Floors,
		FinishingLevel: project.FinishingLevel,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		r.logger.Error("Database error during project creation", zap.String("clientID", project.ClientID), zap.Error(err))
		return "", err
	}
	project.ID = doc.ID.Hex()
	project.CreatedAt = now
	project.UpdatedAt = now
	return project.ID, nil
}

func (r *ProjectRepository) GetByID(ctx context.Context, id string) (*entity.Project, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	var doc projectDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		r.logger.Error("Database error fetching project", zap.String("projectID", id), zap.Error(err))
		return nil, err
	}
	return doc.toEntity(), nil
}

func (r *ProjectRepository) ListByClient(ctx context.Context, clientID string) ([]*entity.Project, error) {
	cursor, err := r.col.Find(ctx, bson.M{"client_id": clientID},
		options.Find().SetSort(bson.M{"created_at": -1}))
	if err != nil {
		r.logger.Error("Database error listing projects", zap.String("clientID", clientID), zap.Error(err))
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []*projectDoc
	if err := cursor.All(ctx, &docs); err != nil {
		r.logger.Error("Error decoding listed projects", zap.Error(err))
		return nil, err
	}
	projects := make([]*entity.Project, 0, len(docs))
	for _, doc := range docs {
		projects = append(projects, doc.toEntity())
	}
	return projects, nil
}
