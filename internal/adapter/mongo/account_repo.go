package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MohammadBTelfah/Damanah-sub000/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const (
	collClients     = "clients"
	collContractors = "contractors"
	collAdmins      = "admins"
)

// accountCollection wraps one of the three role collections with the shared
// index setup, duplicate-key translation and document plumbing.
type accountCollection struct {
	col    *mongo.Collection
	logger *zap.Logger
}

func newAccountCollection(db *mongo.Database, name string, logger *zap.Logger) accountCollection {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	col := db.Collection(name)
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "phone", Value: 1}}, Options: options.Index().SetUnique(true).SetSparse(true)},
	}
	if _, err := col.Indexes().CreateMany(ctx, indexes); err != nil {
		logger.Warn("Failed to create indexes for account collection (may already exist)",
			zap.String("collection", name), zap.Error(err))
	}

	return accountCollection{col: col, logger: logger.Named(name + "Repository")}
}

// translateDuplicate maps a mongo duplicate-key error (code 11000) to the same
// conflict error the pre-insert guard returns. The unique index is the actual
// safety net for the check-then-insert race; the guard is only a fast fail.
func (c accountCollection) translateDuplicate(err error) error {
	var writeException mongo.WriteException
	if errors.As(err, &writeException) {
		for _, writeError := range writeException.WriteErrors {
			if writeError.Code == 11000 {
				if strings.Contains(writeError.Message, "email_1") {
					return fmt.Errorf("%w: email", domain.ErrConflict)
				}
				if strings.Contains(writeError.Message, "phone_1") {
					return fmt.Errorf("%w: phone", domain.ErrConflict)
				}
				return domain.ErrConflict
			}
		}
	}
	return err
}

func (c accountCollection) insert(ctx context.Context, doc *accountDoc) (primitive.ObjectID, error) {
	if doc.ID.IsZero() {
		doc.ID = primitive.NewObjectID()
	}
	now := time.Now()
	doc.CreatedAt = now
	doc.UpdatedAt = now

	if _, err := c.col.InsertOne(ctx, doc); err != nil {
		translated := c.translateDuplicate(err)
		if errors.Is(translated, domain.ErrConflict) {
			c.logger.Warn("Duplicate email or phone during account creation", zap.String("email", doc.Email))
			return primitive.NilObjectID, translated
		}
		c.logger.Error("Database error during account creation", zap.String("email", doc.Email), zap.Error(err))
		return primitive.NilObjectID, err
	}
	return doc.ID, nil
}

func (c accountCollection) findOne(ctx context.Context, filter bson.M) (*accountDoc, error) {
	var doc accountDoc
	err := c.col.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		c.logger.Error("Database error fetching account", zap.Error(err))
		return nil, err
	}
	return &doc, nil
}

func (c accountCollection) findByID(ctx context.Context, id string) (*accountDoc, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	return c.findOne(ctx, bson.M{"_id": oid})
}

// replace persists the whole document back, keeping created_at.
func (c accountCollection) replace(ctx context.Context, doc *accountDoc) error {
	if doc.ID.IsZero() {
		return domain.ErrNotFound
	}
	doc.UpdatedAt = time.Now()

	result, err := c.col.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc)
	if err != nil {
		if translated := c.translateDuplicate(err); errors.Is(translated, domain.ErrConflict) {
			return translated
		}
		c.logger.Error("Database error during account update", zap.String("accountID", doc.ID.Hex()), zap.Error(err))
		return err
	}
	if result.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (c accountCollection) list(ctx context.Context, skip, limit int64) ([]*accountDoc, error) {
	findOptions := options.Find().
		SetSkip(skip).
		SetLimit(limit).
		SetSort(bson.M{"created_at": -1})

	cursor, err := c.col.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		c.logger.Error("Database error listing accounts", zap.Error(err))
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []*accountDoc
	if err := cursor.All(ctx, &docs); err != nil {
		c.logger.Error("Error decoding listed accounts", zap.Error(err))
		return nil, err
	}
	return docs, nil
}
