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

type variantDoc struct {
	Key           string  `bson:"key"`
	Label         string  `bson:"label"`
	PricePerUnit  float64 `bson:"price_per_unit"`
	QuantityPerM2 float64 `bson:"quantity_per_m2,omitempty"`
}

type materialDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Unit      string             `bson:"unit"`
	Variants  []variantDoc       `bson:"variants"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func (d *materialDoc) toEntity() *entity.Material {
	variants := make([]entity.MaterialVariant, 0, len(d.Variants))
	for _, v := range d.Variants {
		variants = append(variants, entity.MaterialVariant{
			Key:           v.Key,
			Label:         v.Label,
			PricePerUnit:  v.PricePerUnit,
			QuantityPerM2: v.QuantityPerM2,
		})
	}
	return &entity.Material{
		ID:        d.ID.Hex(),
		Name:      d.Name,
		Unit:      d.Unit,
		Variants:  variants,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func materialFromEntity(m *entity.Material) materialDoc {
	variants := make([]variantDoc, 0, len(m.Variants))
	for _, v := range m.Variants {
		variants = append(variants, variantDoc{
			Key:           v.Key,
			Label:         v.Label,
			PricePerUnit:  v.PricePerUnit,
			QuantityPerM2: v.QuantityPerM2,
		})
	}
	d := materialDoc{
		Name:      m.Name,
		Unit:      m.Unit,
		Variants:  variants,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	if m.ID != "" {
		if oid, err := primitive.ObjectIDFromHex(m.ID); err == nil {
			d.ID = oid
		}
	}
	return d
}

type MaterialRepository struct {
	col    *mongo.Collection
	logger *zap.Logger
}

func NewMaterialRepository(db *mongo.Database, logger *zap.Logger) *MaterialRepository {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	col := db.Collection("materials")
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	if _, err := col.Indexes().CreateMany(ctx, indexes); err != nil {
		logger.Warn("Failed to create indexes for materials collection (may already exist)", zap.Error(err))
	}

	return &MaterialRepository{col: col, logger: logger.Named("MaterialRepository")}
}

func (r *MaterialRepository) Create(ctx context.Context, material *entity.Material) (string, error) {
	doc := materialFromEntity(material)
	if doc.ID.IsZero() {
		doc.ID = primitive.NewObjectID()
	}
	now := time.Now()
	doc.CreatedAt = now
	doc.UpdatedAt = now

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", domain.ErrConflict
		}
		r.logger.Error("Database error during material creation", zap.String("name", material.Name), zap.Error(err))
		return "", err
	}
	material.ID = doc.ID.Hex()
	return material.ID, nil
}

func (r *MaterialRepository) Update(ctx context.Context, material *entity.Material) error {
	doc := materialFromEntity(material)
	if doc.ID.IsZero() {
		return domain.ErrNotFound
	}
	doc.UpdatedAt = time.Now()

	result, err := r.col.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrConflict
		}
		r.logger.Error("Database error during material update", zap.String("materialID", material.ID), zap.Error(err))
		return err
	}
	if result.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *MaterialRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrNotFound
	}
	result, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		r.logger.Error("Database error during material delete", zap.String("materialID", id), zap.Error(err))
		return err
	}
	if result.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *MaterialRepository) GetByID(ctx context.Context, id string) (*entity.Material, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	return r.getOne(ctx, bson.M{"_id": oid})
}

func (r *MaterialRepository) GetByName(ctx context.Context, name string) (*entity.Material, error) {
	return r.getOne(ctx, bson.M{"name": name})
}

func (r *MaterialRepository) getOne(ctx context.Context, filter bson.M) (*entity.Material, error) {
	var doc materialDoc
	err := r.col.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		r.logger.Error("Database error fetching material", zap.Error(err))
		return nil, err
	}
	return doc.toEntity(), nil
}

func (r *MaterialRepository) List(ctx context.Context) ([]*entity.Material, error) {
	cursor, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"name": 1}))
	if err != nil {
		r.logger.Error("Database error listing materials", zap.Error(err))
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []*materialDoc
	if err := cursor.All(ctx, &docs); err != nil {
		r.logger.Error("Error decoding listed materials", zap.Error(err))
		return nil, err
	}
	materials := make([]*entity.Material, 0, len(docs))
	for _, doc := range docs {
		materials = append(materials, doc.toEntity())
	}
	return materials, nil
}
