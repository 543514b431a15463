package data

import "fmt"

// SectorSize is the width and height of a region in tiles.
const SectorSize = 48

// Diagonal wall orientations as stored in the map archive.
const (
	DiagonalBack    byte = '\\'
	DiagonalForward byte = '/'
)

// Diagonal is a wall running corner to corner across a tile.
// Overlay is a 1-based wall object reference.
type Diagonal struct {
	Overlay     int
	Orientation byte
}

// Wall holds the wall components of a tile. Vertical and Horizontal are
// 1-based wall object references; zero means no wall.
type Wall struct {
	Vertical   int
	Horizontal int
	Diagonal   *Diagonal
}

// Tile is a single map square. Overlay is a 1-based tile reference.
type Tile struct {
	Overlay int
	Wall    Wall
}

// Sector is one loaded region. Tiles are indexed [x][y] in archive order,
// which runs opposite to world x.
type Sector struct {
	Tiles [SectorSize][SectorSize]Tile
}

// Bounds is the inclusive range of region indices covered by a landscape.
type Bounds struct {
	MinX, MaxX int
	MinY, MaxY int
}

// RegionsX returns the number of region columns.
func (b Bounds) RegionsX() int { return b.MaxX - b.MinX + 1 }

// RegionsY returns the number of region rows.
func (b Bounds) RegionsY() int { return b.MaxY - b.MinY + 1 }

func (b Bounds) contains(x, y int) bool {
	return x >= b.MinX && x <= b.MaxX && y >= b.MinY && y <= b.MaxY
}

type sectorKey struct {
	x, y, z int
}

// Landscape is the static world geometry: a rectangle of regions per
// floor. Regions that were never set are unloaded.
type Landscape struct {
	bounds  Bounds
	floors  int
	sectors map[sectorKey]*Sector
}

// NewLandscape creates an empty landscape covering bounds on floors floors.
func NewLandscape(bounds Bounds, floors int) (*Landscape, error) {
	if bounds.MaxX < bounds.MinX || bounds.MaxY < bounds.MinY {
		return nil, fmt.Errorf("regions x %d..%d y %d..%d: %w",
			bounds.MinX, bounds.MaxX, bounds.MinY, bounds.MaxY, ErrInvalidBounds)
	}
	if floors <= 0 {
		return nil, fmt.Errorf("floors %d: %w", floors, ErrInvalidFloors)
	}
	return &Landscape{
		bounds:  bounds,
		floors:  floors,
		sectors: make(map[sectorKey]*Sector),
	}, nil
}

// Bounds returns the region index bounds.
func (l *Landscape) Bounds() Bounds { return l.bounds }

// Floors returns the number of floors.
func (l *Landscape) Floors() int { return l.floors }

// SetSector stores a loaded region at absolute region indices (x, y) on floor z.
func (l *Landscape) SetSector(x, y, z int, s *Sector) error {
	if !l.bounds.contains(x, y) || z < 0 || z >= l.floors {
		return fmt.Errorf("sector (%d,%d,%d): %w", x, y, z, ErrSectorOutOfRange)
	}
	l.sectors[sectorKey{x, y, z}] = s
	return nil
}

// Sector returns the region at absolute indices, or nil when unloaded.
func (l *Landscape) Sector(x, y, z int) *Sector {
	return l.sectors[sectorKey{x, y, z}]
}

// Loaded returns the number of loaded regions.
func (l *Landscape) Loaded() int {
	return len(l.sectors)
}
