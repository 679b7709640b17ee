package cache

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalogctl/internal/models"
)

func openTemp(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestOpenAppliesMigrations(t *testing.T) {
	db := openTemp(t)

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM records").Scan(&count))
	assert.Zero(t, count)

	var version int
	require.NoError(t, db.QueryRow("SELECT MAX(version) FROM schema_migrations").Scan(&version))
	assert.Equal(t, 1, version)
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")

	db, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = Open(path)
	require.NoError(t, err)
	defer db.Close()

	var applied int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&applied))
	assert.Equal(t, 1, applied)
}

func TestSaveAndLoadCollection(t *testing.T) {
	db := openTemp(t)
	ctx := context.Background()

	items := []models.Location{
		{ID: 2, X: 1, Y: 2, Z: 3},
		{ID: 1, X: -10, Y: 20, Z: 0},
	}
	require.NoError(t, SaveCollection(ctx, db, EntityLocations, items))

	got, err := LoadCollection[models.Location](ctx, db, EntityLocations)
	require.NoError(t, err)
	require.Len(t, got, 2)

	// Rows come back ordered by id regardless of insertion order.
	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, int64(2), got[1].ID)
	assert.Equal(t, float64(-10), got[0].X)
}

func TestSaveCollectionReplaces(t *testing.T) {
	db := openTemp(t)
	ctx := context.Background()

	require.NoError(t, SaveCollection(ctx, db, EntityLocations, []models.Location{
		{ID: 1}, {ID: 2}, {ID: 3},
	}))
	require.NoError(t, SaveCollection(ctx, db, EntityLocations, []models.Location{
		{ID: 7, X: 5},
	}))

	got, err := LoadCollection[models.Location](ctx, db, EntityLocations)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(7), got[0].ID)
}

func TestCollectionsAreIsolated(t *testing.T) {
	db := openTemp(t)
	ctx := context.Background()

	zip := "190000"
	require.NoError(t, SaveCollection(ctx, db, EntityLocations, []models.Location{{ID: 1}}))
	require.NoError(t, SaveCollection(ctx, db, EntityAddresses, []models.Address{{ID: 1, ZipCode: &zip}}))

	// Clearing one entity leaves the other untouched.
	require.NoError(t, SaveCollection(ctx, db, EntityLocations, []models.Location{}))

	locs, err := LoadCollection[models.Location](ctx, db, EntityLocations)
	require.NoError(t, err)
	assert.Empty(t, locs)

	addrs, err := LoadCollection[models.Address](ctx, db, EntityAddresses)
	require.NoError(t, err)
	require.Len(t, addrs, 1)
	require.NotNil(t, addrs[0].ZipCode)
	assert.Equal(t, "190000", *addrs[0].ZipCode)
}

func TestLoadCollectionEmpty(t *testing.T) {
	db := openTemp(t)

	got, err := LoadCollection[models.Product](context.Background(), db, EntityProducts)
	require.NoError(t, err)
	assert.Empty(t, got)
}
