package geo

import "github.com/udisondev/tilenav/internal/data"

// Grid dimensions.
const (
	SectorSize = data.SectorSize
	TileSize   = 2  // grid cells per tile along each axis
	GapSize    = 80 // blocked grid rows between floors

	maxGridCells = 1 << 32
)

// Wall object orientations. Doors are remapped onto these.
const (
	OrientHorizontal      = 0 // top row of the tile
	OrientVertical        = 1 // right column of the tile
	OrientDiagonalBack    = 2
	OrientDiagonalForward = 3
)

// Object directions that rotate a footprint by a quarter turn.
const (
	DirectionEast = 2
	DirectionWest = 6
)
