package geo

// Point is a world tile position. Z is the floor index.
type Point struct {
	X, Y, Z int
}

// Mapper converts between world tiles and grid cells.
//
// World x grows in the opposite direction to grid x, so every transform
// mirrors the horizontal axis. Floors are stacked vertically in the grid,
// each followed by GapSize blocked rows.
type Mapper struct {
	width    int
	height   int
	regionsY int
	floors   int
}

// NewMapper creates a mapper for a landscape of regionsX×regionsY regions
// on floors floors.
func NewMapper(regionsX, regionsY, floors int) Mapper {
	return Mapper{
		width:    regionsX * SectorSize * TileSize,
		height:   regionsY*SectorSize*TileSize*floors + GapSize*(floors-1),
		regionsY: regionsY,
		floors:   floors,
	}
}

// Width returns the grid width in cells.
func (m Mapper) Width() int { return m.width }

// Height returns the grid height in cells.
func (m Mapper) Height() int { return m.height }

// Floors returns the number of floors.
func (m Mapper) Floors() int { return m.floors }

// FloorRows returns the number of tile rows in one floor.
func (m Mapper) FloorRows() int { return m.regionsY * SectorSize }

// FloorStride returns the tile row distance between two floors.
func (m Mapper) FloorStride() int { return m.FloorRows() + GapSize/TileSize }

// Contains reports whether p is a tile of the map. Rows past the last tile
// row of a floor belong to the gap or to the next floor, not to p.Z.
func (m Mapper) Contains(p Point) bool {
	return p.X >= 0 && p.X < m.width/TileSize &&
		p.Y >= 0 && p.Y < m.FloorRows() &&
		p.Z >= 0 && p.Z < m.floors
}

// ToGrid returns the top-left cell of the tile at p.
func (m Mapper) ToGrid(p Point) (int, int) {
	x := m.width - (p.X+1)*TileSize
	y := (p.Y + p.Z*m.FloorStride()) * TileSize
	return x, y
}

// ToWorld returns the tile containing cell (x, y).
func (m Mapper) ToWorld(x, y int) Point {
	row := floorDiv(y, TileSize)
	z := floorDiv(row, m.FloorStride())
	return Point{
		X: floorDiv(m.width-x-1, TileSize),
		Y: row - z*m.FloorStride(),
		Z: z,
	}
}

// Anchor returns the cell searches start and end on for the tile at p.
func (m Mapper) Anchor(p Point) Cell {
	x, y := m.ToGrid(p)
	return Cell{X: x + 1, Y: y + 1}
}

// StaticColumn mirrors a static geometry tile column into a world x.
// It is its own inverse.
func (m Mapper) StaticColumn(x int) int {
	return m.width/TileSize - x - 1
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
