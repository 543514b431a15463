package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/udisondev/tilenav/internal/config"
	"github.com/udisondev/tilenav/internal/data"
	"github.com/udisondev/tilenav/internal/db"
	"github.com/udisondev/tilenav/internal/geo"
	"github.com/udisondev/tilenav/internal/pathfind"
)

const ConfigPath = "config/pathfinder.yaml"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfgPath := ConfigPath
	if p := os.Getenv("TILENAV_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.LoadPathFinder(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	level, err := cfg.SlogLevel()
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})))

	slog.Info("tilenav path finder starting",
		"tick_rate", cfg.TickRate,
		"iterations", cfg.IterationsPerCalculation,
		"placements", cfg.PlacementSource)

	defs, err := data.LoadDefinitions(cfg.DefinitionsPath)
	if err != nil {
		return fmt.Errorf("loading definitions: %w", err)
	}
	landscape, err := data.LoadLandscape(cfg.LandscapePath)
	if err != nil {
		return fmt.Errorf("loading landscape: %w", err)
	}

	var registerer prometheus.Registerer
	if cfg.MetricsAddress != "" {
		registerer = prometheus.DefaultRegisterer
	}

	finder, err := pathfind.New(pathfind.Config{
		TickRate:   cfg.TickRate,
		Iterations: cfg.IterationsPerCalculation,
		Registerer: registerer,
	}, defs, landscape)
	if err != nil {
		return fmt.Errorf("creating path finder: %w", err)
	}

	placements, err := loadPlacements(ctx, cfg)
	if err != nil {
		return fmt.Errorf("loading placements: %w", err)
	}
	if err := finder.ApplyPlacements(placements); err != nil {
		return fmt.Errorf("applying placements: %w", err)
	}
	slog.Info("world ready", "checksum", fmt.Sprintf("%x", finder.Checksum()))

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := finder.Start(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("search scheduler: %w", err)
		}
		return nil
	})

	if cfg.MetricsAddress != "" {
		g.Go(func() error {
			return serveMetrics(gctx, cfg.MetricsAddress)
		})
	}

	if cfg.Probe != nil {
		g.Go(func() error {
			return runProbe(gctx, finder, *cfg.Probe, cfg.RenderPath)
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("path finder error: %w", err)
	}
	return nil
}

func loadPlacements(ctx context.Context, cfg config.PathFinder) (data.Placements, error) {
	switch cfg.PlacementSource {
	case config.PlacementsFile:
		return data.LoadPlacements(cfg.PlacementsPath)

	case config.PlacementsDatabase:
		store, err := db.Open(ctx, cfg.Database.DSN())
		if err != nil {
			return data.Placements{}, err
		}
		defer store.Close()
		slog.Info("placement store connected", "host", cfg.Database.Host)

		return store.Placements().LoadAll(ctx)
	}
	return data.Placements{}, nil
}

func serveMetrics(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	slog.Info("metrics endpoint listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("metrics server: %w", err)
	}
	return nil
}

// runProbe answers one path query and optionally renders it.
func runProbe(ctx context.Context, finder *pathfind.PathFinder, probe config.Probe, renderPath string) error {
	start := geo.Point(probe.Start)
	end := geo.Point(probe.End)

	began := time.Now()
	path, err := finder.FindPath(ctx, start, end)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return fmt.Errorf("probe query: %w", err)
	}
	slog.Info("probe path",
		"start", start,
		"end", end,
		"steps", len(path),
		"elapsed", time.Since(began),
		"path", path)

	if renderPath == "" {
		return nil
	}

	f, err := os.Create(renderPath)
	if err != nil {
		return fmt.Errorf("creating render file: %w", err)
	}
	if err := finder.Render(f, path); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing render file: %w", err)
	}
	slog.Info("probe rendered", "path", renderPath)
	return nil
}
