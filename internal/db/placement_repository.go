package db

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/tilenav/internal/data"
)

// Placement tables.
const (
	objectTable     = "object_locations"
	wallObjectTable = "wall_object_locations"
)

// PlacementRepository reads and writes object and wall object locations.
type PlacementRepository struct {
	pool *pgxpool.Pool
}

// NewPlacementRepository creates a new placement repository
func NewPlacementRepository(pool *pgxpool.Pool) *PlacementRepository {
	return &PlacementRepository{pool: pool}
}

// LoadAll loads every object and wall object placement in insertion order.
func (r *PlacementRepository) LoadAll(ctx context.Context) (data.Placements, error) {
	objects, err := r.LoadObjects(ctx)
	if err != nil {
		return data.Placements{}, err
	}
	walls, err := r.LoadWallObjects(ctx)
	if err != nil {
		return data.Placements{}, err
	}

	slog.Info("placements loaded from database",
		"objects", len(objects),
		"wall_objects", len(walls))
	return data.Placements{Objects: objects, WallObjects: walls}, nil
}

// LoadObjects loads scenery object placements.
func (r *PlacementRepository) LoadObjects(ctx context.Context) ([]data.Placement, error) {
	return r.load(ctx, objectTable)
}

// LoadWallObjects loads wall object placements.
func (r *PlacementRepository) LoadWallObjects(ctx context.Context) ([]data.Placement, error) {
	return r.load(ctx, wallObjectTable)
}

// InsertObject stores a scenery object placement.
func (r *PlacementRepository) InsertObject(ctx context.Context, p data.Placement) error {
	return r.insert(ctx, objectTable, p)
}

// InsertWallObject stores a wall object placement.
func (r *PlacementRepository) InsertWallObject(ctx context.Context, p data.Placement) error {
	return r.insert(ctx, wallObjectTable, p)
}

func (r *PlacementRepository) load(ctx context.Context, table string) ([]data.Placement, error) {
	query := `
		SELECT object_id, x, y, z, direction
		FROM ` + table + `
		ORDER BY location_id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", table, err)
	}
	defer rows.Close()

	placements := make([]data.Placement, 0, 256)

	for rows.Next() {
		var (
			objectID  int32
			x, y      int32
			z         int16
			direction int16
		)

		if err := rows.Scan(&objectID, &x, &y, &z, &direction); err != nil {
			return nil, fmt.Errorf("scanning %s row: %w", table, err)
		}

		placements = append(placements, data.Placement{
			ID:        int(objectID),
			X:         int(x),
			Y:         int(y),
			Z:         int(z),
			Direction: int(direction),
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating %s rows: %w", table, err)
	}

	return placements, nil
}

func (r *PlacementRepository) insert(ctx context.Context, table string, p data.Placement) error {
	query := `
		INSERT INTO ` + table + ` (object_id, x, y, z, direction)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.pool.Exec(ctx, query, p.ID, p.X, p.Y, p.Z, p.Direction)
	if err != nil {
		return fmt.Errorf("inserting into %s: %w", table, err)
	}
	return nil
}
