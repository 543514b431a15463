package geo

import "slices"

// IsTileBlocked reports whether the anchor cell of the tile at p is blocked.
// Objects, diagonal walls and vertical walls all cover it.
func (m *ObstacleMap) IsTileBlocked(p Point) bool {
	a := m.mapper.Anchor(p)
	return m.grid.Get(a.X, a.Y)
}

// ToWorldSteps converts a grid path into world tiles. The first cell is the
// search anchor of the start tile and is not a step; consecutive cells in
// the same tile collapse into one step. Cells that stay inside the start
// tile collapse into it too, so the start tile never appears in the result.
func (m *ObstacleMap) ToWorldSteps(path []Cell) []Point {
	if len(path) == 0 {
		return []Point{}
	}

	steps := make([]Point, 0, len(path)/TileSize+1)
	last := m.mapper.ToWorld(path[0].X, path[0].Y)
	for _, c := range path[1:] {
		p := m.mapper.ToWorld(c.X, c.Y)
		if p == last {
			continue
		}
		last = p
		steps = append(steps, p)
	}
	return steps
}

// SmoothCorners drops the corner tile of every turn from a horizontal leg
// into a vertical one whose inside tile is open, so the mover cuts the
// corner diagonally. The first and last steps are always kept.
//
// A dropped step is always followed by a vertical leg, so two consecutive
// steps are never dropped and the result stays a chain of adjacent tiles.
func (m *ObstacleMap) SmoothCorners(steps []Point) []Point {
	if len(steps) < 3 {
		return slices.Clone(steps)
	}

	out := make([]Point, 0, len(steps))
	out = append(out, steps[0])

	for i := 1; i < len(steps)-1; i++ {
		prev, cur, next := steps[i-1], steps[i], steps[i+1]
		if isCorner(prev, cur, next) {
			inside := Point{X: prev.X + next.X - cur.X, Y: prev.Y + next.Y - cur.Y, Z: cur.Z}
			if !m.IsTileBlocked(inside) {
				continue
			}
		}
		out = append(out, cur)
	}

	return append(out, steps[len(steps)-1])
}

// isCorner reports whether prev→cur→next is a horizontal unit leg followed
// by a vertical one on a single floor.
func isCorner(prev, cur, next Point) bool {
	if prev.Z != cur.Z || cur.Z != next.Z {
		return false
	}
	inX, inY := cur.X-prev.X, cur.Y-prev.Y
	outX, outY := next.X-cur.X, next.Y-cur.Y
	return abs(inX) == 1 && inY == 0 && outX == 0 && abs(outY) == 1
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
