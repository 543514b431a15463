package geo

// obstacle reads the cell at offset (ox, oy) inside the tile (x, y).
func (m *ObstacleMap) obstacle(x, y, z, ox, oy int) bool {
	gx, gy := m.mapper.ToGrid(Point{X: x, Y: y, Z: z})
	return m.grid.Get(gx+ox, gy+oy)
}

// IsValidStep reports whether a mover on from may step by (dx, dy), with
// each delta in -1..1. A step is rejected when the destination tile is
// entirely blocked or when it would slide past a wall on the way.
//
// World x runs against grid x: dx = 1 moves west on the map, dy = -1 north.
// Horizontal walls live in a tile's (0,0) cell, vertical walls in (1,1),
// and (1,0) is the post where both meet.
func (m *ObstacleMap) IsValidStep(from Point, dx, dy int) bool {
	if dx < -1 || dx > 1 || dy < -1 || dy > 1 {
		return false
	}

	sx, sy, z := from.X, from.Y, from.Z
	ex, ey := sx+dx, sy+dy

	gx, gy := m.mapper.ToGrid(Point{X: ex, Y: ey, Z: z})
	if m.grid.Get(gx, gy) && m.grid.Get(gx+1, gy) &&
		m.grid.Get(gx, gy+1) && m.grid.Get(gx+1, gy+1) {
		return false
	}

	at := func(x, y, ox, oy int) bool {
		return m.obstacle(x, y, z, ox, oy)
	}

	switch {
	case dx == 0 && dy == -1:
		// north: wall on the current tile
		return !at(sx, sy, 0, 0)

	case dx == 1 && dy == -1:
		// north-west: current tile's horizontal wall, the side tile's
		// post and the destination's vertical wall
		return !(at(sx, sy, 0, 0) || at(ex, sy, 1, 0) || at(ex, ey, 1, 1))

	case dx == 1 && dy == 0:
		// west: vertical wall on the side tile
		return !at(ex, sy, 1, 1)

	case dx == 1 && dy == 1:
		// south-west
		return !(at(sx, ey, 0, 0) || at(ex, sy, 1, 1) || at(ex, ey, 1, 0))

	case dx == 0 && dy == 1:
		// south: horizontal wall on the destination
		return !at(ex, ey, 0, 0)

	case dx == -1 && dy == 1:
		// south-east
		return !(at(sx, sy, 1, 1) || at(sx, ey, 1, 0))

	case dx == -1 && dy == 0:
		// east: vertical wall on the current tile
		return !at(sx, sy, 1, 1)

	case dx == -1 && dy == -1:
		// north-east
		return !(at(sx, sy, 0, 0) || at(sx, ey, 1, 1) || at(ex, sy, 0, 0))
	}

	return true
}
