package data

import "errors"

// Sentinel errors for definition tables and world geometry.
var (
	ErrUnknownObject      = errors.New("unknown object definition")
	ErrUnknownWallObject  = errors.New("unknown wall object definition")
	ErrUnknownTile        = errors.New("unknown tile definition")
	ErrDuplicateID        = errors.New("duplicate definition id")
	ErrNegativeID         = errors.New("negative definition id")
	ErrEmptyObjectType    = errors.New("empty object type")
	ErrInvalidFootprint   = errors.New("invalid object footprint")
	ErrMissingDoorWall    = errors.New("door wall object not defined")
	ErrInvalidBounds      = errors.New("invalid region bounds")
	ErrInvalidFloors      = errors.New("invalid floor count")
	ErrSectorOutOfRange   = errors.New("sector outside region bounds")
	ErrTileOutOfRange     = errors.New("tile outside sector")
	ErrInvalidOrientation = errors.New("invalid diagonal orientation")
)
