package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/tilenav/internal/data"
)

func TestPlacementRepositoryRoundTrip(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewPlacementRepository(pool)
	ctx := context.Background()

	objects := []data.Placement{
		{ID: 7, X: 120, Y: 640, Z: 0, Direction: 2},
		{ID: 3, X: 121, Y: 641, Z: 1, Direction: 0},
	}
	walls := []data.Placement{
		{ID: 2, X: 130, Y: 650, Direction: 1},
	}

	for _, p := range objects {
		require.NoError(t, repo.InsertObject(ctx, p))
	}
	for _, p := range walls {
		require.NoError(t, repo.InsertWallObject(ctx, p))
	}

	got, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, objects, got.Objects)
	assert.Equal(t, walls, got.WallObjects)
}

func TestPlacementRepositoryEmpty(t *testing.T) {
	repo := NewPlacementRepository(setupTestDB(t))

	got, err := repo.LoadAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got.Objects)
	assert.Empty(t, got.WallObjects)
}

func TestPlacementRepositoryRejectsNegativeID(t *testing.T) {
	repo := NewPlacementRepository(setupTestDB(t))

	err := repo.InsertObject(context.Background(), data.Placement{ID: -1})
	assert.Error(t, err)
}

func TestNewAndMigrate(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()

	d, err := New(ctx, testDSN)
	require.NoError(t, err)
	defer d.Close()
	assert.NotNil(t, d.Pool())

	// already applied migrations are a no-op
	require.NoError(t, RunMigrations(ctx, testDSN))
}

func TestOpenPlacementStore(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()

	store, err := Open(ctx, testDSN)
	require.NoError(t, err)
	defer store.Close()

	want := data.Placement{ID: 4, X: 120, Y: 640, Z: 1, Direction: 2}
	require.NoError(t, store.Placements().InsertObject(ctx, want))

	got, err := store.Placements().LoadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []data.Placement{want}, got.Objects)
	assert.Empty(t, got.WallObjects)
}

func TestOpenUnreachable(t *testing.T) {
	_, err := Open(context.Background(), "postgres://nobody@127.0.0.1:1/none?sslmode=disable&connect_timeout=1")
	assert.Error(t, err)
}

func TestNewUnreachable(t *testing.T) {
	_, err := New(context.Background(), "postgres://nobody@127.0.0.1:1/none?sslmode=disable&connect_timeout=1")
	assert.Error(t, err)
}
