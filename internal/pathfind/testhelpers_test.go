package pathfind

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/udisondev/tilenav/internal/data"
)

const (
	objCrate  = 0
	wallStone = 0
)

// newTestFinder builds a finder over one open region: world tiles x 0..47,
// y 0..47 on a single floor.
func newTestFinder(t *testing.T, cfg Config) *PathFinder {
	t.Helper()

	defs, err := data.NewDefinitions(
		[]data.ObjectDef{{ID: objCrate, Type: data.ObjectBlocked, Width: 1, Height: 1}},
		[]data.WallObjectDef{{ID: wallStone, Blocked: true}},
		[]data.TileDef{{ID: 0}},
	)
	require.NoError(t, err)

	l, err := data.NewLandscape(data.Bounds{MinX: 48, MaxX: 48, MinY: 37, MaxY: 37}, 1)
	require.NoError(t, err)
	require.NoError(t, l.SetSector(48, 37, 0, &data.Sector{}))

	p, err := New(cfg, defs, l)
	require.NoError(t, err)
	return p
}

func placeCrate(t *testing.T, p *PathFinder, x, y int) {
	t.Helper()
	require.NoError(t, p.PlaceObject(data.Placement{ID: objCrate, X: x, Y: y}))
}
