package config

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Placement sources.
const (
	PlacementsNone     = "none"
	PlacementsFile     = "file"
	PlacementsDatabase = "database"
)

// PathFinder holds all configuration for the path finder process.
type PathFinder struct {
	LogLevel string `yaml:"log_level"`

	// Scheduler
	TickRate                 time.Duration `yaml:"tick_rate"`
	IterationsPerCalculation int           `yaml:"iterations_per_calculation"`

	// World data
	DefinitionsPath string `yaml:"definitions_path"`
	LandscapePath   string `yaml:"landscape_path"`

	// Placements are read from PlacementsPath or from Database.
	PlacementSource string         `yaml:"placement_source"`
	PlacementsPath  string         `yaml:"placements_path"`
	Database        DatabaseConfig `yaml:"database"`

	// Empty disables the /metrics endpoint.
	MetricsAddress string `yaml:"metrics_address"`

	// One-shot query run at startup, optional.
	Probe *Probe `yaml:"probe"`
	// Where the probe result is rendered as PNG. Empty disables rendering.
	RenderPath string `yaml:"render_path"`
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// Point is a world tile position.
type Point struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
	Z int `yaml:"z"`
}

// Probe is a path query run once the world is loaded.
type Probe struct {
	Start Point `yaml:"start"`
	End   Point `yaml:"end"`
}

// DefaultPathFinder returns PathFinder config with sensible defaults.
func DefaultPathFinder() PathFinder {
	return PathFinder{
		LogLevel:                 "info",
		TickRate:                 80 * time.Millisecond,
		IterationsPerCalculation: 1000,
		DefinitionsPath:          "data/definitions.yaml",
		LandscapePath:            "data/landscape.yaml",
		PlacementSource:          PlacementsFile,
		PlacementsPath:           "data/placements.yaml",
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "tilenav",
			Password: "tilenav",
			DBName:   "tilenav",
			SSLMode:  "disable",
		},
	}
}

// LoadPathFinder loads path finder config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadPathFinder(path string) (PathFinder, error) {
	cfg := DefaultPathFinder()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("validating config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks field ranges and required paths.
func (c PathFinder) Validate() error {
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	if c.TickRate <= 0 {
		return fmt.Errorf("tick_rate %s: %w", c.TickRate, ErrInvalidTickRate)
	}
	if c.IterationsPerCalculation <= 0 {
		return fmt.Errorf("iterations_per_calculation %d: %w", c.IterationsPerCalculation, ErrInvalidIterations)
	}
	if c.DefinitionsPath == "" || c.LandscapePath == "" {
		return ErrMissingDataPath
	}

	switch c.PlacementSource {
	case PlacementsNone, PlacementsDatabase:
	case PlacementsFile:
		if c.PlacementsPath == "" {
			return ErrMissingDataPath
		}
	default:
		return fmt.Errorf("placement_source %q: %w", c.PlacementSource, ErrUnknownPlacementSource)
	}

	if c.RenderPath != "" && c.Probe == nil {
		return ErrRenderWithoutProbe
	}
	return nil
}

// SlogLevel parses LogLevel.
func (c PathFinder) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("log_level %q: %w", c.LogLevel, ErrInvalidLogLevel)
	}
	return level, nil
}
