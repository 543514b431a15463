package pathfind

import (
	"context"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultTickRate is the idle polling interval.
const DefaultTickRate = 80 * time.Millisecond

// Worker performs one slice of search work and returns the number of
// queries still pending.
type Worker interface {
	Calculate() int
}

// Scheduler drives a Worker. While work is pending it runs slices back to
// back, yielding the processor between them; once idle it polls every tick
// or when woken.
type Scheduler struct {
	worker   Worker
	tickRate time.Duration

	running atomic.Bool
	mu      sync.Mutex
	stopCh  chan struct{}
	wakeCh  chan struct{}
}

// NewScheduler creates a scheduler for w. A non-positive tickRate uses
// DefaultTickRate.
func NewScheduler(w Worker, tickRate time.Duration) *Scheduler {
	if tickRate <= 0 {
		tickRate = DefaultTickRate
	}
	return &Scheduler{
		worker:   w,
		tickRate: tickRate,
		wakeCh:   make(chan struct{}, 1),
	}
}

// Run executes the loop until Stop is called or ctx is canceled. It returns
// nil after Stop and ctx.Err() on cancellation. Run may be called again
// after it returns.
func (s *Scheduler) Run(ctx context.Context) error {
	s.mu.Lock()
	if s.running.Load() {
		s.mu.Unlock()
		return ErrAlreadyRunning
	}
	stopCh := make(chan struct{})
	s.stopCh = stopCh
	s.running.Store(true)
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.running.Store(false)
		if s.stopCh == stopCh {
			s.stopCh = nil
		}
	}()

	slog.Info("search scheduler started", "tick_rate", s.tickRate)

	timer := time.NewTimer(s.tickRate)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("search scheduler stopping", "reason", ctx.Err())
			return ctx.Err()
		case <-stopCh:
			slog.Info("search scheduler stopped")
			return nil
		default:
		}

		if s.worker.Calculate() > 0 {
			runtime.Gosched()
			continue
		}

		timer.Reset(s.tickRate)
		select {
		case <-ctx.Done():
			slog.Info("search scheduler stopping", "reason", ctx.Err())
			return ctx.Err()
		case <-stopCh:
			slog.Info("search scheduler stopped")
			return nil
		case <-s.wakeCh:
		case <-timer.C:
		}
	}
}

// Stop ends the current Run after its in-flight slice. Pending work is left
// in place. Stop is a no-op when the loop is not running.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopCh == nil {
		return
	}
	close(s.stopCh)
	s.stopCh = nil
}

// Wake cuts the current idle wait short.
func (s *Scheduler) Wake() {
	select {
	case s.wakeCh <- struct{}{}:
	default:
	}
}

// Running reports whether Run is active.
func (s *Scheduler) Running() bool {
	return s.running.Load()
}
