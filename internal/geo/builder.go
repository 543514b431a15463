package geo

import (
	"fmt"
	"log/slog"

	"github.com/udisondev/tilenav/internal/data"
)

// Definitions resolves object, wall object and tile ids.
type Definitions interface {
	Object(id int) (data.ObjectDef, error)
	WallObject(id int) (data.WallObjectDef, error)
	Tile(id int) (data.TileDef, error)
}

// Geometry is the static world geometry source.
type Geometry interface {
	Bounds() data.Bounds
	Floors() int
	Sector(x, y, z int) *data.Sector
}

// ObstacleMap owns the obstacle grid of a world and applies static
// geometry and runtime placements to it. It is not safe for concurrent use.
type ObstacleMap struct {
	defs   Definitions
	grid   *Grid
	mapper Mapper
}

// NewObstacleMap sizes an empty grid for geom and fills it from the
// static geometry.
func NewObstacleMap(defs Definitions, geom Geometry) (*ObstacleMap, error) {
	b := geom.Bounds()
	if b.RegionsX() <= 0 || b.RegionsY() <= 0 || geom.Floors() <= 0 {
		return nil, ErrEmptyLandscape
	}

	mapper := NewMapper(b.RegionsX(), b.RegionsY(), geom.Floors())
	if int64(mapper.Width())*int64(mapper.Height()) > maxGridCells {
		return nil, fmt.Errorf("%dx%d cells: %w", mapper.Width(), mapper.Height(), ErrGridTooLarge)
	}

	m := &ObstacleMap{
		defs:   defs,
		grid:   NewGrid(mapper.Width(), mapper.Height()),
		mapper: mapper,
	}
	if err := m.build(geom); err != nil {
		return nil, err
	}

	slog.Info("obstacle grid built",
		"width", mapper.Width(),
		"height", mapper.Height(),
		"floors", mapper.Floors(),
		"blocked_cells", m.grid.Blocked())
	return m, nil
}

// Grid returns the obstacle grid.
func (m *ObstacleMap) Grid() *Grid { return m.grid }

// Mapper returns the coordinate mapper.
func (m *ObstacleMap) Mapper() Mapper { return m.mapper }

// build walks every floor, region and tile. Region columns are mirrored
// so that the highest region x lands in grid column 0.
func (m *ObstacleMap) build(geom Geometry) error {
	b := geom.Bounds()
	regionsX := b.RegionsX()

	for z := range geom.Floors() {
		for rx := range regionsX {
			for ry := range b.RegionsY() {
				sector := geom.Sector(rx+b.MinX, ry+b.MinY, z)
				if err := m.addSector(sector, regionsX-1-rx, ry, z); err != nil {
					return fmt.Errorf("region (%d,%d,%d): %w", rx+b.MinX, ry+b.MinY, z, err)
				}
			}
		}
	}

	m.fillGaps()
	return nil
}

func (m *ObstacleMap) addSector(sector *data.Sector, sectorX, sectorY, z int) error {
	for x := range SectorSize {
		for y := range SectorSize {
			p := Point{
				X: m.mapper.StaticColumn(sectorX*SectorSize + x),
				Y: sectorY*SectorSize + y,
				Z: z,
			}

			if sector == nil {
				gx, gy := m.mapper.ToGrid(p)
				m.grid.Fill(gx, gy, true)
				continue
			}

			if err := m.addTile(&sector.Tiles[x][y], p); err != nil {
				return fmt.Errorf("tile (%d,%d): %w", x, y, err)
			}
		}
	}
	return nil
}

func (m *ObstacleMap) addTile(tile *data.Tile, p Point) error {
	if tile.Overlay != 0 {
		def, err := m.defs.Tile(tile.Overlay - 1)
		if err != nil {
			return err
		}
		if def.Blocked {
			gx, gy := m.mapper.ToGrid(p)
			m.grid.Fill(gx, gy, true)
			return nil
		}
	}

	for _, w := range wallPlacements(tile.Wall, p) {
		if err := m.PlaceWallObject(w); err != nil {
			return err
		}
	}
	return nil
}

// fillGaps blocks the padding rows between floors.
func (m *ObstacleMap) fillGaps() {
	rows := m.mapper.FloorRows() * TileSize
	stride := m.mapper.FloorStride() * TileSize
	for z := 0; z < m.mapper.Floors()-1; z++ {
		top := z*stride + rows
		m.grid.FillRect(0, top, m.grid.Width(), top+GapSize, true)
	}
}

// PlaceObject applies a scenery object placement. Doors become wall
// object placements; other blocking objects fill their footprint, clipped
// to the floor. Placements outside the map are ignored.
func (m *ObstacleMap) PlaceObject(p data.Placement) error {
	def, err := m.defs.Object(p.ID)
	if err != nil {
		return fmt.Errorf("placing object at (%d,%d,%d): %w", p.X, p.Y, p.Z, err)
	}

	if def.Type == data.ObjectUnblocked {
		return nil
	}
	if def.Type.IsDoor() {
		return m.placeDoor(p, def)
	}

	origin := Point{X: p.X, Y: p.Y, Z: p.Z}
	if !m.mapper.Contains(origin) {
		return nil
	}

	width, height := def.Width, def.Height
	if p.Direction == DirectionEast || p.Direction == DirectionWest {
		width, height = height, width
	}

	for i := range width {
		for j := range height {
			t := Point{X: origin.X + i, Y: origin.Y + j, Z: origin.Z}
			if !m.mapper.Contains(t) {
				continue
			}
			gx, gy := m.mapper.ToGrid(t)
			m.grid.Fill(gx, gy, true)
		}
	}
	return nil
}

// doorStep maps an object direction onto a wall orientation, an offset
// for the first wall and the step between consecutive walls.
type doorStep struct {
	orient     int
	offX, offY int
	dx, dy     int
}

var doorSteps = map[int]doorStep{
	0: {orient: OrientVertical, dy: 1},
	2: {orient: OrientHorizontal, offY: 1, dx: 1},
	4: {orient: OrientVertical, offX: 1, dy: 1},
	6: {orient: OrientHorizontal, dx: 1},
	5: {orient: OrientDiagonalBack, offX: -1, offY: 1, dx: -1, dy: 1},
	7: {orient: OrientDiagonalBack, offX: -1, offY: 1, dx: -1, dy: 1},
}

func (m *ObstacleMap) placeDoor(p data.Placement, def data.ObjectDef) error {
	step, ok := doorSteps[p.Direction]
	if !ok {
		step = doorStep{orient: p.Direction}
	}

	id := data.DoorFrameID
	if def.Type.IsClosedDoor() {
		id = data.DoorID
	}

	x, y := p.X+step.offX, p.Y+step.offY
	for i := range def.Height {
		err := m.PlaceWallObject(data.Placement{
			ID:        id,
			X:         x + step.dx*i,
			Y:         y + step.dy*i,
			Z:         p.Z,
			Direction: step.orient,
		})
		if err != nil {
			return err
		}
	}
	return nil
}
