package pathfind

import (
	"context"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/udisondev/tilenav/internal/data"
	"github.com/udisondev/tilenav/internal/geo"
	"github.com/udisondev/tilenav/internal/render"
)

// Config tunes a PathFinder.
type Config struct {
	// TickRate is the idle polling interval of the scheduler.
	TickRate time.Duration
	// Iterations is the expansion budget of one scheduler slice.
	Iterations int
	// Registerer receives the search metrics. Nil disables registration.
	Registerer prometheus.Registerer
}

// DefaultConfig returns the stock tick rate and budget.
func DefaultConfig() Config {
	return Config{
		TickRate:   DefaultTickRate,
		Iterations: DefaultIterations,
	}
}

// PathFinder answers path, step and sight queries over one world. Grid
// mutation, search slices and synchronous queries are serialized, so the
// world behaves as if driven by a single thread.
type PathFinder struct {
	mu        sync.Mutex
	obstacles *geo.ObstacleMap
	engine    *Engine
	scheduler *Scheduler
}

// New builds the obstacle grid for geom. The scheduler is not started.
func New(cfg Config, defs geo.Definitions, geom geo.Geometry) (*PathFinder, error) {
	if cfg.Iterations < 0 || cfg.TickRate < 0 {
		return nil, fmt.Errorf("iterations %d, tick rate %s: %w", cfg.Iterations, cfg.TickRate, ErrInvalidConfig)
	}

	obstacles, err := geo.NewObstacleMap(defs, geom)
	if err != nil {
		return nil, fmt.Errorf("building obstacle grid: %w", err)
	}

	p := &PathFinder{
		obstacles: obstacles,
		engine:    NewEngine(obstacles.Grid(), cfg.Iterations, NewMetrics(cfg.Registerer)),
	}
	p.scheduler = NewScheduler(p, cfg.TickRate)
	return p, nil
}

// Calculate runs one search slice. It implements Worker.
func (p *PathFinder) Calculate() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.engine.Calculate()
}

// Start runs the scheduler until Stop or ctx cancellation.
func (p *PathFinder) Start(ctx context.Context) error {
	return p.scheduler.Run(ctx)
}

// Stop halts the scheduler. Outstanding FindPath calls stay blocked until
// the scheduler runs again or their context ends.
func (p *PathFinder) Stop() {
	p.scheduler.Stop()
}

// Running reports whether the scheduler loop is active.
func (p *PathFinder) Running() bool {
	return p.scheduler.Running()
}

// Pending returns the number of searches in flight.
func (p *PathFinder) Pending() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.engine.Pending()
}

// FindPath searches for a route from start to end and returns the world
// tiles to walk, excluding start. An unreachable end yields an empty path
// and a nil error; the only errors are from ctx.
func (p *PathFinder) FindPath(ctx context.Context, start, end geo.Point) ([]geo.Point, error) {
	p.mu.Lock()
	mapper := p.obstacles.Mapper()
	id, results := p.engine.Submit(mapper.Anchor(start), mapper.Anchor(end))
	p.mu.Unlock()

	p.scheduler.Wake()

	select {
	case r := <-results:
		if !r.Found {
			return []geo.Point{}, nil
		}
		p.mu.Lock()
		defer p.mu.Unlock()
		return p.obstacles.SmoothCorners(p.obstacles.ToWorldSteps(r.Path)), nil

	case <-ctx.Done():
		p.mu.Lock()
		p.engine.Cancel(id)
		p.mu.Unlock()
		return nil, ctx.Err()
	}
}

// PlaceObject applies a scenery object placement.
func (p *PathFinder) PlaceObject(pl data.Placement) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.obstacles.PlaceObject(pl)
}

// PlaceWallObject applies a wall object placement.
func (p *PathFinder) PlaceWallObject(pl data.Placement) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.obstacles.PlaceWallObject(pl)
}

// ApplyPlacements applies every object placement, then every wall object
// placement. It stops at the first unknown id.
func (p *PathFinder) ApplyPlacements(pls data.Placements) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, pl := range pls.Objects {
		if err := p.obstacles.PlaceObject(pl); err != nil {
			return err
		}
	}
	for _, pl := range pls.WallObjects {
		if err := p.obstacles.PlaceWallObject(pl); err != nil {
			return err
		}
	}

	slog.Info("placements applied",
		"objects", len(pls.Objects),
		"wall_objects", len(pls.WallObjects),
		"blocked_cells", p.obstacles.Grid().Blocked())
	return nil
}

// IsValidStep reports whether a mover on from may step by (dx, dy).
func (p *PathFinder) IsValidStep(from geo.Point, dx, dy int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.obstacles.IsValidStep(from, dx, dy)
}

// LineOfSight returns the tiles on the line from a to b. It does not
// consult the grid.
func (p *PathFinder) LineOfSight(a, b geo.Point) iter.Seq[geo.Point] {
	return geo.LineOfSight(a, b)
}

// HasLineOfSight reports whether no tile after a on the line to b is
// blocked.
func (p *PathFinder) HasLineOfSight(a, b geo.Point) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.obstacles.HasLineOfSight(a, b)
}

// Checksum returns the digest of the current obstacle grid.
func (p *PathFinder) Checksum() [32]byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.obstacles.Grid().Checksum()
}

// Render writes the obstacle grid as a PNG, with path highlighted.
func (p *PathFinder) Render(w io.Writer, path []geo.Point) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return render.PNG(w, p.obstacles.Grid(), p.obstacles.Mapper(), path)
}
