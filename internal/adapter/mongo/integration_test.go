package mongo

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/MohammadBTelfah/Damanah-sub000/internal/domain"
	"github.com/MohammadBTelfah/Damanah-sub000/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// setupTestDB connects to the MongoDB named by MONGO_TEST_URI and hands back a
// throwaway database. Tests are skipped when the variable is unset so the unit
// suite stays green without infrastructure.
func setupTestDB(t *testing.T) *mongo.Database {
	t.Helper()

	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set, skipping MongoDB integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	require.NoError(t, err)
	require.NoError(t, client.Ping(ctx, nil))

	db := client.Database(fmt.Sprintf("damanah_test_%d", time.Now().UnixNano()))
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = db.Drop(ctx)
		_ = client.Disconnect(ctx)
	})
	return db
}

func TestAccountRepositories_UniquenessAcrossCollections(t *testing.T) {
	db := setupTestDB(t)
	logger, _ := zap.NewDevelopment()
	ctx := context.Background()

	clients := NewClientRepository(db, logger)
	contractors := NewContractorRepository(db, logger)
	admins := NewAdminRepository(db, logger)
	directory := NewAccountDirectory(clients, contractors, admins)

	client := &entity.Client{Profile: entity.Profile{
		Name:         "Omar Haddad",
		Email:        "omar@example.com",
		Phone:        "+962791234567",
		PasswordHash: "hash",
	}}
	id, err := clients.Create(ctx, client)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	// Same collection: the unique index rejects the duplicate email.
	_, err = clients.Create(ctx, &entity.Client{Profile: entity.Profile{
		Name:         "Someone Else",
		Email:        "omar@example.com",
		Phone:        "+962790000000",
		PasswordHash: "hash",
	}})
	assert.ErrorIs(t, err, domain.ErrConflict)

	// Cross-collection: the directory sees the client email, so the guard in
	// the registration flow blocks a contractor with the same address.
	found, err := directory.FindByEmail(ctx, "omar@example.com")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleClient, found.AccountRole())
	assert.Equal(t, id, found.AccountID())

	_, err = directory.FindByPhone(ctx, "+962791234567")
	assert.NoError(t, err)

	_, err = directory.FindByEmail(ctx, "ghost@example.com")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAccountRepositories_UpdateRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	logger, _ := zap.NewDevelopment()
	ctx := context.Background()

	contractors := NewContractorRepository(db, logger)

	contractor := &entity.Contractor{
		Profile: entity.Profile{
			Name:         "Build Co",
			Email:        "build@example.com",
			Phone:        "+962791112223",
			PasswordHash: "hash",
		},
		ContractorStatus: entity.ContractorPending,
	}
	id, err := contractors.Create(ctx, contractor)
	require.NoError(t, err)

	loaded, err := contractors.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, entity.ContractorPending, loaded.ContractorStatus)

	loaded.ContractorStatus = entity.ContractorVerified
	loaded.EmailVerified = true
	loaded.IsActive = true
	require.NoError(t, contractors.Update(ctx, loaded))

	reloaded, err := contractors.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, entity.ContractorVerified, reloaded.ContractorStatus)
	assert.True(t, reloaded.IsActive)
	assert.False(t, reloaded.CreatedAt.IsZero())
}

func TestMaterialRepository_CRUDAndNameLookup(t *testing.T) {
	db := setupTestDB(t)
	logger, _ := zap.NewDevelopment()
	ctx := context.Background()

	materials := NewMaterialRepository(db, logger)

	material := &entity.Material{
		Name: "Concrete",
		Unit: "m3",
		Variants: []entity.MaterialVariant{
			{Key: "basic", Label: "Basic", PricePerUnit: 50},
			{Key: "medium", Label: "Medium", PricePerUnit: 60},
		},
	}
	id, err := materials.Create(ctx, material)
	require.NoError(t, err)

	_, err = materials.Create(ctx, &entity.Material{
		Name:     "Concrete",
		Unit:     "m3",
		Variants: []entity.MaterialVariant{{Key: "basic", PricePerUnit: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrConflict, "material names are unique")

	byName, err := materials.GetByName(ctx, "Concrete")
	require.NoError(t, err)
	assert.Equal(t, id, byName.ID)
	assert.Len(t, byName.Variants, 2)

	byName.Variants[1].PricePerUnit = 65
	require.NoError(t, materials.Update(ctx, byName))

	listed, err := materials.List(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, 65.0, listed[0].Variants[1].PricePerUnit)

	require.NoError(t, materials.Delete(ctx, id))
	_, err = materials.GetByID(ctx, id)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
