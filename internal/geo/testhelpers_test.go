package geo

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/udisondev/tilenav/internal/data"
)

// Definition ids used across the geo tests.
const (
	objCrate      = 0 // blocked 1x1
	objTable      = 1 // blocked 2x1
	objClosedDoor = 2
	objOpenDoor   = 3 // two tiles wide
	objRug        = 4 // unblocked

	wallStone = 0 // blocked
	wallDecor = 3 // passable

	tileGrass = 0
	tileWater = 1 // blocked
)

func testDefinitions(t testing.TB) *data.Definitions {
	t.Helper()
	defs, err := data.NewDefinitions(
		[]data.ObjectDef{
			{ID: objCrate, Type: data.ObjectBlocked, Width: 1, Height: 1},
			{ID: objTable, Type: data.ObjectBlocked, Width: 2, Height: 1},
			{ID: objClosedDoor, Type: data.ObjectClosedDoor, Width: 1, Height: 1},
			{ID: objOpenDoor, Type: data.ObjectOpenDoor, Width: 1, Height: 2},
			{ID: objRug, Type: data.ObjectUnblocked},
		},
		[]data.WallObjectDef{
			{ID: wallStone, Blocked: true},
			{ID: data.DoorFrameID, Blocked: false},
			{ID: data.DoorID, Blocked: true},
			{ID: wallDecor, Blocked: false},
		},
		[]data.TileDef{
			{ID: tileGrass, Blocked: false},
			{ID: tileWater, Blocked: true},
		},
	)
	require.NoError(t, err)
	return defs
}

// openLandscape loads every region with empty tiles.
func openLandscape(t testing.TB, regionsX, regionsY, floors int) *data.Landscape {
	t.Helper()
	l, err := data.NewLandscape(data.Bounds{
		MinX: 48, MaxX: 48 + regionsX - 1,
		MinY: 37, MaxY: 37 + regionsY - 1,
	}, floors)
	require.NoError(t, err)

	for z := range floors {
		for x := range regionsX {
			for y := range regionsY {
				require.NoError(t, l.SetSector(48+x, 37+y, z, &data.Sector{}))
			}
		}
	}
	return l
}

// newTestMap builds a single open region on one floor: world tiles
// x 0..47, y 0..47.
func newTestMap(t testing.TB) *ObstacleMap {
	t.Helper()
	m, err := NewObstacleMap(testDefinitions(t), openLandscape(t, 1, 1, 1))
	require.NoError(t, err)
	return m
}

// tileCells returns the four cells of the tile at p in the order
// (0,0), (1,0), (0,1), (1,1).
func tileCells(m *ObstacleMap, p Point) [4]bool {
	x, y := m.mapper.ToGrid(p)
	g := m.grid
	return [4]bool{g.Get(x, y), g.Get(x+1, y), g.Get(x, y+1), g.Get(x+1, y+1)}
}

// sectorTile returns the archive tile that holds world tile (x, y) in the
// single-region test landscape.
func sectorTile(s *data.Sector, x, y int) *data.Tile {
	return &s.Tiles[SectorSize-1-x][y]
}

func place(t testing.TB, m *ObstacleMap, id, x, y, dir int) {
	t.Helper()
	require.NoError(t, m.PlaceObject(data.Placement{ID: id, X: x, Y: y, Direction: dir}))
}

func placeWall(t testing.TB, m *ObstacleMap, id, x, y, dir int) {
	t.Helper()
	require.NoError(t, m.PlaceWallObject(data.Placement{ID: id, X: x, Y: y, Direction: dir}))
}
