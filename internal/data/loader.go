package data

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

type definitionsFile struct {
	Objects     []ObjectDef     `yaml:"objects"`
	WallObjects []WallObjectDef `yaml:"wall_objects"`
	Tiles       []TileDef       `yaml:"tiles"`
}

// LoadDefinitions reads and validates definition tables from a YAML file.
func LoadDefinitions(path string) (*Definitions, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading definitions %s: %w", path, err)
	}
	defs, err := ParseDefinitions(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing definitions %s: %w", path, err)
	}

	objects, walls, tiles := defs.Counts()
	slog.Info("loaded definitions", "objects", objects, "wall_objects", walls, "tiles", tiles)
	return defs, nil
}

// ParseDefinitions decodes and validates YAML definition tables.
func ParseDefinitions(raw []byte) (*Definitions, error) {
	var f definitionsFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, err
	}
	return NewDefinitions(f.Objects, f.WallObjects, f.Tiles)
}

type landscapeFile struct {
	MinRegionX int           `yaml:"min_region_x"`
	MaxRegionX int           `yaml:"max_region_x"`
	MinRegionY int           `yaml:"min_region_y"`
	MaxRegionY int           `yaml:"max_region_y"`
	Floors     int           `yaml:"floors"`
	Sectors    []sectorEntry `yaml:"sectors"`
}

// sectorEntry is a sparse region: every tile gets Overlay, then the listed
// tiles override it.
type sectorEntry struct {
	X       int         `yaml:"x"`
	Y       int         `yaml:"y"`
	Z       int         `yaml:"z"`
	Overlay int         `yaml:"overlay"`
	Tiles   []tileEntry `yaml:"tiles"`
}

type tileEntry struct {
	X          int            `yaml:"x"`
	Y          int            `yaml:"y"`
	Overlay    *int           `yaml:"overlay"`
	Vertical   int            `yaml:"vertical"`
	Horizontal int            `yaml:"horizontal"`
	Diagonal   *diagonalEntry `yaml:"diagonal"`
}

type diagonalEntry struct {
	Overlay     int    `yaml:"overlay"`
	Orientation string `yaml:"orientation"`
}

// LoadLandscape reads a sparse YAML landscape.
func LoadLandscape(path string) (*Landscape, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading landscape %s: %w", path, err)
	}
	l, err := ParseLandscape(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing landscape %s: %w", path, err)
	}

	slog.Info("loaded landscape",
		"regions_x", l.Bounds().RegionsX(),
		"regions_y", l.Bounds().RegionsY(),
		"floors", l.Floors(),
		"loaded_sectors", l.Loaded())
	return l, nil
}

// ParseLandscape decodes a sparse YAML landscape.
func ParseLandscape(raw []byte) (*Landscape, error) {
	var f landscapeFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, err
	}

	l, err := NewLandscape(Bounds{
		MinX: f.MinRegionX, MaxX: f.MaxRegionX,
		MinY: f.MinRegionY, MaxY: f.MaxRegionY,
	}, f.Floors)
	if err != nil {
		return nil, err
	}

	for _, se := range f.Sectors {
		s, err := se.sector()
		if err != nil {
			return nil, fmt.Errorf("sector (%d,%d,%d): %w", se.X, se.Y, se.Z, err)
		}
		if err := l.SetSector(se.X, se.Y, se.Z, s); err != nil {
			return nil, err
		}
	}
	return l, nil
}

func (se sectorEntry) sector() (*Sector, error) {
	s := &Sector{}
	if se.Overlay != 0 {
		for x := range SectorSize {
			for y := range SectorSize {
				s.Tiles[x][y].Overlay = se.Overlay
			}
		}
	}

	for _, te := range se.Tiles {
		if te.X < 0 || te.X >= SectorSize || te.Y < 0 || te.Y >= SectorSize {
			return nil, fmt.Errorf("tile (%d,%d): %w", te.X, te.Y, ErrTileOutOfRange)
		}
		t := &s.Tiles[te.X][te.Y]
		if te.Overlay != nil {
			t.Overlay = *te.Overlay
		}
		t.Wall.Vertical = te.Vertical
		t.Wall.Horizontal = te.Horizontal
		if te.Diagonal != nil {
			if len(te.Diagonal.Orientation) != 1 ||
				(te.Diagonal.Orientation[0] != DiagonalBack && te.Diagonal.Orientation[0] != DiagonalForward) {
				return nil, fmt.Errorf("tile (%d,%d) orientation %q: %w",
					te.X, te.Y, te.Diagonal.Orientation, ErrInvalidOrientation)
			}
			t.Wall.Diagonal = &Diagonal{
				Overlay:     te.Diagonal.Overlay,
				Orientation: te.Diagonal.Orientation[0],
			}
		}
	}
	return s, nil
}

// LoadPlacements reads object and wall object placements from YAML.
func LoadPlacements(path string) (Placements, error) {
	var p Placements

	raw, err := os.ReadFile(path)
	if err != nil {
		return p, fmt.Errorf("reading placements %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return p, fmt.Errorf("parsing placements %s: %w", path, err)
	}

	slog.Info("loaded placements", "objects", len(p.Objects), "wall_objects", len(p.WallObjects))
	return p, nil
}
