package data

import (
	"fmt"
	"strings"
)

// ObjectType is the config tag of a scenery object.
type ObjectType string

// Known object types. Any tag ending in "door" is treated as a door.
const (
	ObjectUnblocked  ObjectType = "unblocked"
	ObjectBlocked    ObjectType = "blocked"
	ObjectOpenDoor   ObjectType = "open-door"
	ObjectClosedDoor ObjectType = "closed-door"
)

// IsDoor reports whether objects of this type are placed as wall objects.
func (t ObjectType) IsDoor() bool {
	return strings.HasSuffix(strings.ToLower(string(t)), "door")
}

// IsClosedDoor reports whether the door blocks movement.
func (t ObjectType) IsClosedDoor() bool {
	return strings.EqualFold(string(t), string(ObjectClosedDoor))
}

// Wall object ids placed on behalf of door objects.
const (
	DoorFrameID = 1
	DoorID      = 2
)

// ObjectDef describes a scenery object footprint in tiles.
type ObjectDef struct {
	ID     int        `yaml:"id"`
	Type   ObjectType `yaml:"type"`
	Width  int        `yaml:"width"`
	Height int        `yaml:"height"`
}

// WallObjectDef describes a wall, boundary or decoration.
type WallObjectDef struct {
	ID      int  `yaml:"id"`
	Blocked bool `yaml:"blocked"`
}

// TileDef describes a terrain overlay.
type TileDef struct {
	ID      int  `yaml:"id"`
	Blocked bool `yaml:"blocked"`
}

// Definitions holds the validated object, wall object and tile tables.
// Build it with NewDefinitions; lookups never return zero-value records.
type Definitions struct {
	objects     map[int]ObjectDef
	wallObjects map[int]WallObjectDef
	tiles       map[int]TileDef
}

// NewDefinitions validates and indexes the three definition tables.
func NewDefinitions(objects []ObjectDef, wallObjects []WallObjectDef, tiles []TileDef) (*Definitions, error) {
	d := &Definitions{
		objects:     make(map[int]ObjectDef, len(objects)),
		wallObjects: make(map[int]WallObjectDef, len(wallObjects)),
		tiles:       make(map[int]TileDef, len(tiles)),
	}

	hasDoors := false
	for _, def := range objects {
		if err := checkID("object", def.ID, d.objects); err != nil {
			return nil, err
		}
		if def.Type == "" {
			return nil, fmt.Errorf("object %d: %w", def.ID, ErrEmptyObjectType)
		}
		if def.Type != ObjectUnblocked && (def.Width <= 0 || def.Height <= 0) {
			return nil, fmt.Errorf("object %d (%dx%d): %w", def.ID, def.Width, def.Height, ErrInvalidFootprint)
		}
		if def.Type.IsDoor() {
			hasDoors = true
		}
		d.objects[def.ID] = def
	}

	for _, def := range wallObjects {
		if err := checkID("wall object", def.ID, d.wallObjects); err != nil {
			return nil, err
		}
		d.wallObjects[def.ID] = def
	}

	for _, def := range tiles {
		if err := checkID("tile", def.ID, d.tiles); err != nil {
			return nil, err
		}
		d.tiles[def.ID] = def
	}

	if hasDoors {
		for _, id := range []int{DoorFrameID, DoorID} {
			if _, ok := d.wallObjects[id]; !ok {
				return nil, fmt.Errorf("wall object %d: %w", id, ErrMissingDoorWall)
			}
		}
	}

	return d, nil
}

func checkID[T any](kind string, id int, seen map[int]T) error {
	if id < 0 {
		return fmt.Errorf("%s %d: %w", kind, id, ErrNegativeID)
	}
	if _, ok := seen[id]; ok {
		return fmt.Errorf("%s %d: %w", kind, id, ErrDuplicateID)
	}
	return nil
}

// Object returns the object definition for id.
func (d *Definitions) Object(id int) (ObjectDef, error) {
	def, ok := d.objects[id]
	if !ok {
		return ObjectDef{}, fmt.Errorf("object %d: %w", id, ErrUnknownObject)
	}
	return def, nil
}

// WallObject returns the wall object definition for id.
func (d *Definitions) WallObject(id int) (WallObjectDef, error) {
	def, ok := d.wallObjects[id]
	if !ok {
		return WallObjectDef{}, fmt.Errorf("wall object %d: %w", id, ErrUnknownWallObject)
	}
	return def, nil
}

// Tile returns the terrain overlay definition for id.
func (d *Definitions) Tile(id int) (TileDef, error) {
	def, ok := d.tiles[id]
	if !ok {
		return TileDef{}, fmt.Errorf("tile %d: %w", id, ErrUnknownTile)
	}
	return def, nil
}

// Counts returns the table sizes (objects, wall objects, tiles).
func (d *Definitions) Counts() (int, int, int) {
	return len(d.objects), len(d.wallObjects), len(d.tiles)
}
