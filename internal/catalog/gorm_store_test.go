package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupSnapshotTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	return db
}

func TestGormSnapshotStoreRoundTrip(t *testing.T) {
	db := setupSnapshotTestDB(t)
	store, err := NewGormSnapshotStore(db)
	require.NoError(t, err)

	ctx := context.Background()

	_, found, err := store.Load(ctx, "prices")
	require.NoError(t, err)
	assert.False(t, found)

	payload := `{"Kulhar":1.75,"Water Bottle":10}`
	require.NoError(t, store.Save(ctx, "prices", payload))

	got, found, err := store.Load(ctx, "prices")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, payload, got)
}

func TestGormSnapshotStoreOverwrite(t *testing.T) {
	db := setupSnapshotTestDB(t)
	store, err := NewGormSnapshotStore(db)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, store.Save(ctx, "prices", `{"Kulhar":1.75}`))
	require.NoError(t, store.Save(ctx, "prices", `{"Kulhar":2}`))

	got, found, err := store.Load(ctx, "prices")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `{"Kulhar":2}`, got)

	var count int64
	require.NoError(t, db.Model(&SnapshotRecord{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestGormSnapshotStoreKeysAreIndependent(t *testing.T) {
	db := setupSnapshotTestDB(t)
	store, err := NewGormSnapshotStore(db)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, store.Save(ctx, "prices", `{"Kulhar":1.75}`))
	require.NoError(t, store.Save(ctx, "prices_backup", `{"Rocket":5.25}`))

	got, found, err := store.Load(ctx, "prices")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `{"Kulhar":1.75}`, got)
}
