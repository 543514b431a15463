package pathfind

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/tilenav/internal/geo"
)

// drain runs e until no query is pending.
func drain(t *testing.T, e *Engine) {
	t.Helper()
	for range 10_000 {
		if e.Calculate() == 0 {
			return
		}
	}
	t.Fatal("engine did not settle")
}

func receive(t *testing.T, ch <-chan Result) Result {
	t.Helper()
	select {
	case r := <-ch:
		return r
	default:
		t.Fatal("no result delivered")
		return Result{}
	}
}

func TestEngineFindsShortestPath(t *testing.T) {
	tests := []struct {
		name       string
		blocked    []geo.Cell
		start, end geo.Cell
		want       []geo.Cell
	}{
		{
			name:  "straight",
			start: geo.Cell{X: 0, Y: 0},
			end:   geo.Cell{X: 3, Y: 0},
			want:  []geo.Cell{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}, {X: 3, Y: 0}},
		},
		{
			name:  "diagonal",
			start: geo.Cell{X: 0, Y: 0},
			end:   geo.Cell{X: 3, Y: 3},
			want:  []geo.Cell{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 2}, {X: 3, Y: 3}},
		},
		{
			name:    "no corner cutting",
			blocked: []geo.Cell{{X: 1, Y: 0}},
			start:   geo.Cell{X: 0, Y: 0},
			end:     geo.Cell{X: 1, Y: 1},
			want:    []geo.Cell{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := geo.NewGrid(8, 8)
			for _, c := range tt.blocked {
				g.Set(c.X, c.Y, true)
			}

			e := NewEngine(g, 0, nil)
			_, ch := e.Submit(tt.start, tt.end)
			drain(t, e)

			r := receive(t, ch)
			assert.True(t, r.Found)
			assert.Equal(t, tt.want, r.Path)
		})
	}
}

// pathCost checks that path is a chain of 8-connected open cells that never
// cuts a blocked corner and returns its cost.
func pathCost(t *testing.T, g *geo.Grid, path []geo.Cell) int {
	t.Helper()
	cost := 0
	for i := 1; i < len(path); i++ {
		a, b := path[i-1], path[i]
		dx, dy := b.X-a.X, b.Y-a.Y
		require.False(t, g.Get(b.X, b.Y), "blocked cell %v", b)
		require.True(t, dx >= -1 && dx <= 1 && dy >= -1 && dy <= 1 && (dx != 0 || dy != 0), "gap %v -> %v", a, b)
		if dx != 0 && dy != 0 {
			require.False(t, g.Get(a.X+dx, a.Y) || g.Get(a.X, a.Y+dy), "corner cut %v -> %v", a, b)
			cost += costDiagonal
			continue
		}
		cost += costStraight
	}
	return cost
}

func TestEngineRoutesAroundWall(t *testing.T) {
	g := geo.NewGrid(8, 8)
	for y := range 3 {
		g.Set(2, y, true)
	}

	e := NewEngine(g, 0, nil)
	_, ch := e.Submit(geo.Cell{X: 0, Y: 0}, geo.Cell{X: 4, Y: 0})
	drain(t, e)

	r := receive(t, ch)
	require.True(t, r.Found)
	assert.Equal(t, geo.Cell{X: 0, Y: 0}, r.Path[0])
	assert.Equal(t, geo.Cell{X: 4, Y: 0}, r.Path[len(r.Path)-1])
	assert.Len(t, r.Path, 9)
	assert.Equal(t, 88, pathCost(t, g, r.Path))
}

func TestEngineEnclosedIsUnreachable(t *testing.T) {
	g := geo.NewGrid(16, 16)
	for x := 4; x <= 6; x++ {
		for y := 4; y <= 6; y++ {
			if x != 5 || y != 5 {
				g.Set(x, y, true)
			}
		}
	}

	e := NewEngine(g, 10, nil)
	_, ch := e.Submit(geo.Cell{X: 0, Y: 0}, geo.Cell{X: 5, Y: 5})
	assert.Equal(t, 1, e.Calculate())
	drain(t, e)

	r := receive(t, ch)
	assert.False(t, r.Found)
	assert.Empty(t, r.Path)
}

func TestEngineImmediateResolution(t *testing.T) {
	g := geo.NewGrid(8, 8)
	g.Set(5, 5, true)

	tests := []struct {
		name       string
		start, end geo.Cell
		found      bool
		path       []geo.Cell
	}{
		{"blocked end", geo.Cell{X: 0, Y: 0}, geo.Cell{X: 5, Y: 5}, false, []geo.Cell{}},
		{"end outside", geo.Cell{X: 0, Y: 0}, geo.Cell{X: 8, Y: 0}, false, []geo.Cell{}},
		{"start outside", geo.Cell{X: -1, Y: 0}, geo.Cell{X: 1, Y: 1}, false, []geo.Cell{}},
		{"same cell", geo.Cell{X: 2, Y: 2}, geo.Cell{X: 2, Y: 2}, true, []geo.Cell{{X: 2, Y: 2}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEngine(g, 0, nil)
			_, ch := e.Submit(tt.start, tt.end)

			assert.Equal(t, 0, e.Pending())
			r := receive(t, ch)
			assert.Equal(t, tt.found, r.Found)
			assert.Equal(t, tt.path, r.Path)
		})
	}
}

func TestEngineBlockedStartStillSearches(t *testing.T) {
	g := geo.NewGrid(8, 8)
	g.Set(0, 0, true)

	e := NewEngine(g, 0, nil)
	_, ch := e.Submit(geo.Cell{X: 0, Y: 0}, geo.Cell{X: 2, Y: 0})
	drain(t, e)

	r := receive(t, ch)
	assert.True(t, r.Found)
	assert.Equal(t, []geo.Cell{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}}, r.Path)
}

func TestEngineBudget(t *testing.T) {
	g := geo.NewGrid(64, 64)
	e := NewEngine(g, 1, nil)

	id, ch := e.Submit(geo.Cell{X: 0, Y: 0}, geo.Cell{X: 60, Y: 0})
	state, ok := e.State(id)
	require.True(t, ok)
	assert.Equal(t, StateQueued, state)

	assert.Equal(t, 1, e.Calculate())
	state, _ = e.State(id)
	assert.Equal(t, StateExpanding, state)
	assert.Empty(t, ch)

	drain(t, e)
	assert.Len(t, receive(t, ch).Path, 61)
	_, ok = e.State(id)
	assert.False(t, ok)
}

func TestEngineSharesBudget(t *testing.T) {
	g := geo.NewGrid(64, 64)
	e := NewEngine(g, 10, nil)

	ids := make([]QueryID, 3)
	for i := range ids {
		ids[i], _ = e.Submit(geo.Cell{X: 0, Y: i * 10}, geo.Cell{X: 63, Y: i * 10})
	}

	assert.Equal(t, 3, e.Calculate())
	for _, id := range ids {
		state, ok := e.State(id)
		require.True(t, ok)
		assert.Equal(t, StateExpanding, state, "query %d got no work", id)
	}
}

func TestEngineRoundRobinBeyondBudget(t *testing.T) {
	g := geo.NewGrid(64, 64)
	e := NewEngine(g, 2, nil)

	var ids []QueryID
	for i := range 4 {
		id, _ := e.Submit(geo.Cell{X: 0, Y: i}, geo.Cell{X: 63, Y: 63})
		ids = append(ids, id)
	}

	e.Calculate()
	e.Calculate()
	for _, id := range ids {
		state, _ := e.State(id)
		assert.Equal(t, StateExpanding, state, "query %d got no work", id)
	}
}

func TestEngineCancel(t *testing.T) {
	g := geo.NewGrid(16, 16)
	e := NewEngine(g, 1, nil)

	id, ch := e.Submit(geo.Cell{X: 0, Y: 0}, geo.Cell{X: 15, Y: 15})
	other, otherCh := e.Submit(geo.Cell{X: 0, Y: 1}, geo.Cell{X: 3, Y: 1})
	e.Calculate()

	assert.True(t, e.Cancel(id))
	assert.False(t, e.Cancel(id))
	assert.Equal(t, 1, e.Pending())

	drain(t, e)
	assert.Empty(t, ch)
	assert.True(t, receive(t, otherCh).Found)
	_, ok := e.State(other)
	assert.False(t, ok)
}

// panicGrid panics when column x is read.
type panicGrid struct {
	*geo.Grid
	x int
}

func (g panicGrid) Get(x, y int) bool {
	if x == g.x {
		panic("corrupt cell")
	}
	return g.Grid.Get(x, y)
}

func TestEngineIsolatesPanics(t *testing.T) {
	g := panicGrid{Grid: geo.NewGrid(16, 16), x: 5}
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	e := NewEngine(g, 0, m)

	_, bad := e.Submit(geo.Cell{X: 0, Y: 0}, geo.Cell{X: 9, Y: 0})
	_, good := e.Submit(geo.Cell{X: 0, Y: 2}, geo.Cell{X: 3, Y: 2})
	drain(t, e)

	assert.False(t, receive(t, bad).Found)
	assert.True(t, receive(t, good).Found)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.results.WithLabelValues(outcomeFailed)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.results.WithLabelValues(outcomeFound)))
}

func TestEngineMetrics(t *testing.T) {
	g := geo.NewGrid(8, 8)
	g.Set(7, 7, true)

	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	e := NewEngine(g, 0, m)

	e.Submit(geo.Cell{X: 0, Y: 0}, geo.Cell{X: 4, Y: 0})
	e.Submit(geo.Cell{X: 0, Y: 0}, geo.Cell{X: 7, Y: 7})
	assert.Equal(t, 1.0, testutil.ToFloat64(m.pending))

	drain(t, e)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.results.WithLabelValues(outcomeFound)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.results.WithLabelValues(outcomeUnreachable)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.slices))
	assert.Equal(t, 5.0, testutil.ToFloat64(m.expansions))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.pending))

	count, err := testutil.GatherAndCount(reg)
	require.NoError(t, err)
	assert.Positive(t, count)
}

func TestHeuristic(t *testing.T) {
	end := geo.Cell{X: 0, Y: 0}

	assert.Equal(t, 0, heuristic(0, 0, end))
	assert.Equal(t, 30, heuristic(3, 0, end))
	assert.Equal(t, 42, heuristic(-3, 3, end))
	assert.Equal(t, 10*5+4*2, heuristic(5, 2, end))
}

func TestQueryStateString(t *testing.T) {
	assert.Equal(t, "queued", StateQueued.String())
	assert.Equal(t, "expanding", StateExpanding.String())
	assert.Equal(t, "found", StateFound.String())
	assert.Equal(t, "unreachable", StateUnreachable.String())
	assert.Equal(t, "unknown", QueryState(42).String())
}
