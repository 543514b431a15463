package geo

import "iter"

// LineOfSight returns the tiles on the straight line from a to b, both
// included, using a digital differential analyzer: the longer axis advances
// one tile per sample and the shorter axis is floored. The sequence is
// computed lazily and can be ranged over any number of times. When a and b
// are the same tile the sequence holds a alone.
//
// The line ignores obstacles; callers decide what blocks sight.
func LineOfSight(a, b Point) iter.Seq[Point] {
	return func(yield func(Point) bool) {
		dx, dy := b.X-a.X, b.Y-a.Y
		steps := max(abs(dx), abs(dy))
		if steps == 0 {
			yield(a)
			return
		}

		for i := 0; i <= steps; i++ {
			p := Point{
				X: a.X + floorDiv(dx*i, steps),
				Y: a.Y + floorDiv(dy*i, steps),
				Z: a.Z,
			}
			if !yield(p) {
				return
			}
		}
	}
}

// HasLineOfSight reports whether every tile between a and b, excluding a,
// has an open anchor cell.
func (m *ObstacleMap) HasLineOfSight(a, b Point) bool {
	first := true
	for p := range LineOfSight(a, b) {
		if first {
			first = false
			continue
		}
		if m.IsTileBlocked(p) {
			return false
		}
	}
	return true
}
