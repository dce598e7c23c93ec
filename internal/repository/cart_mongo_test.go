package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/AnikHaque/Multi-Vendor-Medicine-Selling-E-commerce-Backend/internal/domain"
)

func setupTestDB(t *testing.T) (CartRepository, func()) {
	ctx := context.Background()

	// Start MongoDB container
	mongoContainer, err := mongodb.Run(ctx, "mongo:7")
	require.NoError(t, err)

	// Get connection string
	uri, err := mongoContainer.ConnectionString(ctx)
	require.NoError(t, err)

	// Connect to MongoDB
	db, err := ConnectMongoDB(ctx, uri, "testdb")
	require.NoError(t, err)

	// Create repository
	repo := NewMongoCartRepository(db)

	// Create indexes
	mongoRepo := repo.(*mongoCartRepository)
	err = mongoRepo.CreateIndexes(ctx)
	require.NoError(t, err)

	cleanup := func() {
		if err := mongoContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	}

	return repo, cleanup
}

func TestAddOrIncrement_NewRow(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	medicineID := primitive.NewObjectID()

	err := repo.AddOrIncrement(ctx, "buyer@example.com", medicineID)
	require.NoError(t, err)

	items, err := repo.Items(ctx, "buyer@example.com")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, medicineID, items[0].MedicineID)
	assert.Equal(t, 1, items[0].Quantity)
	assert.False(t, items[0].AddedAt.IsZero())
}

func TestAddOrIncrement_RepeatedAddsIncrement(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	medicineID := primitive.NewObjectID()

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.AddOrIncrement(ctx, "buyer@example.com", medicineID))
	}

	items, err := repo.Items(ctx, "buyer@example.com")
	require.NoError(t, err)
	require.Len(t, items, 1, "repeated adds must not create new rows")
	assert.Equal(t, 3, items[0].Quantity)
}

func TestAddOrIncrement_Concurrent(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	medicineID := primitive.NewObjectID()

	const n = 20
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, repo.AddOrIncrement(ctx, "buyer@example.com", medicineID))
		}()
	}
	wg.Wait()

	items, err := repo.Items(ctx, "buyer@example.com")
	require.NoError(t, err)
	require.Len(t, items, 1, "unique index must collapse concurrent first-adds")
	assert.Equal(t, n, items[0].Quantity, "no increment may be lost")
}

func TestSetQuantity_OwnershipInFilter(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	medicineID := primitive.NewObjectID()
	require.NoError(t, repo.AddOrIncrement(ctx, "owner@example.com", medicineID))

	items, err := repo.Items(ctx, "owner@example.com")
	require.NoError(t, err)
	require.Len(t, items, 1)

	// Wrong owner: not matched, not modified.
	err = repo.SetQuantity(ctx, "intruder@example.com", items[0].ID, 99)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = repo.SetQuantity(ctx, "owner@example.com", items[0].ID, 7)
	require.NoError(t, err)

	items, err = repo.Items(ctx, "owner@example.com")
	require.NoError(t, err)
	assert.Equal(t, 7, items[0].Quantity)
}

func TestRemove(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, repo.AddOrIncrement(ctx, "buyer@example.com", primitive.NewObjectID()))
	require.NoError(t, repo.AddOrIncrement(ctx, "buyer@example.com", primitive.NewObjectID()))

	items, err := repo.Items(ctx, "buyer@example.com")
	require.NoError(t, err)
	require.Len(t, items, 2)

	require.NoError(t, repo.Remove(ctx, "buyer@example.com", items[0].ID))

	items, err = repo.Items(ctx, "buyer@example.com")
	require.NoError(t, err)
	assert.Len(t, items, 1)

	// Removing again finds nothing.
	err = repo.Remove(ctx, "buyer@example.com", primitive.NewObjectID())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestClear_Idempotent(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, repo.AddOrIncrement(ctx, "buyer@example.com", primitive.NewObjectID()))
	require.NoError(t, repo.AddOrIncrement(ctx, "other@example.com", primitive.NewObjectID()))

	require.NoError(t, repo.Clear(ctx, "buyer@example.com"))
	require.NoError(t, repo.Clear(ctx, "buyer@example.com"))

	items, err := repo.Items(ctx, "buyer@example.com")
	require.NoError(t, err)
	assert.Empty(t, items)

	// Other carts untouched.
	items, err = repo.Items(ctx, "other@example.com")
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestCartContextCancellation(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Nanosecond)
	defer cancel()

	time.Sleep(10 * time.Millisecond) // Ensure context is cancelled

	_, err := repo.Items(ctx, "buyer@example.com")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "context")
}
