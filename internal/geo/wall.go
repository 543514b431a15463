package geo

import (
	"fmt"

	"github.com/udisondev/tilenav/internal/data"
)

// wallComponents lists the straight wall components of a tile in placement
// order, after the diagonal.
var wallComponents = [...]struct {
	orient int
	ref    func(data.Wall) int
}{
	{OrientVertical, func(w data.Wall) int { return w.Vertical }},
	{OrientHorizontal, func(w data.Wall) int { return w.Horizontal }},
}

// wallPlacements translates the walls of the static tile at p into wall
// object placements. Wall references are 1-based.
func wallPlacements(w data.Wall, p Point) []data.Placement {
	var out []data.Placement

	if d := w.Diagonal; d != nil {
		orient := OrientDiagonalForward
		if d.Orientation == data.DiagonalBack {
			orient = OrientDiagonalBack
		}
		out = append(out, data.Placement{ID: d.Overlay - 1, X: p.X, Y: p.Y, Z: p.Z, Direction: orient})
	}

	for _, c := range wallComponents {
		if ref := c.ref(w); ref != 0 {
			out = append(out, data.Placement{ID: ref - 1, X: p.X, Y: p.Y, Z: p.Z, Direction: c.orient})
		}
	}
	return out
}

// PlaceWallObject applies a wall, boundary or decoration placement. The
// direction is the wall orientation. Placements outside the map, including
// rows past the end of their floor, are ignored.
//
// A tile's cells are (x,y) top-left, (x+1,y) top-right, (x,y+1) and
// (x+1,y+1). Walls write into the top row and the right column; the shared
// corner (x+1,y) is only ever set, so removing a wall leaves its post.
func (m *ObstacleMap) PlaceWallObject(p data.Placement) error {
	def, err := m.defs.WallObject(p.ID)
	if err != nil {
		return fmt.Errorf("placing wall object at (%d,%d,%d): %w", p.X, p.Y, p.Z, err)
	}

	pt := Point{X: p.X, Y: p.Y, Z: p.Z}
	if !m.mapper.Contains(pt) {
		return nil
	}
	x, y := m.mapper.ToGrid(pt)

	switch p.Direction {
	case OrientVertical:
		if def.Blocked {
			m.grid.Set(x+1, y, true)
		}
		// written even for passable walls: an open door frame clears it
		m.grid.Set(x+1, y+1, def.Blocked)

	case OrientHorizontal:
		m.grid.Set(x, y, def.Blocked)
		if def.Blocked {
			m.grid.Set(x+1, y, true)
		}

	case OrientDiagonalBack, OrientDiagonalForward:
		// one cell cannot hold a 45° edge at this resolution
		m.grid.Fill(x, y, def.Blocked)
	}
	return nil
}
