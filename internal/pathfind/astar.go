package pathfind

import (
	"container/heap"
	"log/slog"
	"slices"

	"github.com/udisondev/tilenav/internal/geo"
)

// Step costs on the cell grid.
const (
	costStraight = 10
	costDiagonal = 14
)

// DefaultIterations is the expansion budget of one Calculate call.
const DefaultIterations = 1000

// Grid is the obstacle grid a search runs on. Out-of-range cells must read
// as blocked.
type Grid interface {
	Width() int
	Height() int
	InBounds(x, y int) bool
	Get(x, y int) bool
}

// QueryID identifies a submitted query.
type QueryID uint64

// QueryState is the lifecycle state of a query.
type QueryState int

const (
	StateQueued QueryState = iota
	StateExpanding
	StateFound
	StateUnreachable
)

func (s QueryState) String() string {
	switch s {
	case StateQueued:
		return "queued"
	case StateExpanding:
		return "expanding"
	case StateFound:
		return "found"
	case StateUnreachable:
		return "unreachable"
	default:
		return "unknown"
	}
}

// Result is the terminal outcome of a query. Path runs from the start cell
// to the end cell, both included, and is empty when Found is false.
type Result struct {
	Path  []geo.Cell
	Found bool
}

// Engine runs many A* searches incrementally. Each Calculate call spends a
// bounded number of expansions across the pending queries in round-robin
// order. Engine is not safe for concurrent use.
type Engine struct {
	grid       Grid
	iterations int
	metrics    *Metrics

	queries []*query
	cursor  int
	nextID  QueryID
}

// NewEngine creates an engine over grid that performs at most iterations
// expansions per Calculate. A non-positive budget uses DefaultIterations.
// metrics may be nil.
func NewEngine(grid Grid, iterations int, metrics *Metrics) *Engine {
	if iterations <= 0 {
		iterations = DefaultIterations
	}
	return &Engine{
		grid:       grid,
		iterations: iterations,
		metrics:    metrics,
	}
}

// Submit registers a search from start to end. The returned channel
// receives exactly one Result once the query terminates, unless it is
// canceled first.
//
// A query whose end is blocked or outside the grid, or whose start is
// outside the grid, resolves as unreachable immediately; start == end
// resolves as found with a single-cell path.
func (e *Engine) Submit(start, end geo.Cell) (QueryID, <-chan Result) {
	e.nextID++
	id := e.nextID
	ch := make(chan Result, 1)

	switch {
	case !e.grid.InBounds(start.X, start.Y) || !e.passable(end.X, end.Y):
		ch <- Result{Path: []geo.Cell{}}
		e.metrics.result(outcomeUnreachable)
		return id, ch
	case start == end:
		ch <- Result{Path: []geo.Cell{start}, Found: true}
		e.metrics.result(outcomeFound)
		return id, ch
	}

	q := newQuery(id, start, end, e.grid.Width(), ch)
	e.queries = append(e.queries, q)
	e.metrics.setPending(len(e.queries))

	slog.Debug("path query submitted",
		"query", id,
		"start", start,
		"end", end,
		"pending", len(e.queries))
	return id, ch
}

// Cancel drops a pending query without delivering a result. It reports
// whether the query was pending.
func (e *Engine) Cancel(id QueryID) bool {
	i := slices.IndexFunc(e.queries, func(q *query) bool { return q.id == id })
	if i < 0 {
		return false
	}
	e.remove(i)
	e.metrics.result(outcomeCanceled)
	e.metrics.setPending(len(e.queries))
	return true
}

// State returns the state of a pending query. Terminated and unknown
// queries report false.
func (e *Engine) State(id QueryID) (QueryState, bool) {
	for _, q := range e.queries {
		if q.id == id {
			return q.state, true
		}
	}
	return 0, false
}

// Pending returns the number of queries that have not terminated.
func (e *Engine) Pending() int {
	return len(e.queries)
}

// Calculate advances pending queries by at most the configured number of
// expansions and returns how many queries are still pending.
func (e *Engine) Calculate() int {
	if len(e.queries) == 0 {
		return 0
	}

	budget := e.iterations
	expanded := 0
	for budget > 0 && len(e.queries) > 0 {
		if e.cursor >= len(e.queries) {
			e.cursor = 0
		}
		q := e.queries[e.cursor]

		share := max(1, budget/len(e.queries))
		used, done := e.advance(q, share)
		budget -= used
		expanded += used

		if done {
			e.remove(e.cursor)
			continue
		}
		e.cursor++
	}

	e.metrics.slice(expanded, len(e.queries))
	return len(e.queries)
}

// remove drops the query at i, keeping submission order for the rest.
func (e *Engine) remove(i int) {
	e.queries = slices.Delete(e.queries, i, i+1)
	if e.cursor > i {
		e.cursor--
	}
}

// advance expands q at most n times. A panic terminates only q.
func (e *Engine) advance(q *query, n int) (used int, done bool) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("path query failed",
				"query", q.id,
				"start", q.start,
				"end", q.end,
				"panic", r)
			q.finish(StateUnreachable, Result{Path: []geo.Cell{}})
			e.metrics.result(outcomeFailed)
			used, done = max(used, 1), true
		}
	}()

	q.state = StateExpanding
	for used < n {
		if q.open.Len() == 0 {
			q.finish(StateUnreachable, Result{Path: []geo.Cell{}})
			e.metrics.result(outcomeUnreachable)
			return used, true
		}

		cur := heap.Pop(&q.open).(*node)
		used++

		if _, ok := q.closed[cur.index]; ok {
			continue
		}
		if cur.x == q.end.X && cur.y == q.end.Y {
			q.finish(StateFound, Result{Path: q.reconstruct(cur.index), Found: true})
			e.metrics.result(outcomeFound)
			return used, true
		}

		q.closed[cur.index] = struct{}{}
		e.expandNeighbors(q, cur)
	}
	return used, false
}

func (e *Engine) passable(x, y int) bool {
	return e.grid.InBounds(x, y) && !e.grid.Get(x, y)
}

var (
	// north, east, south, west
	cardinals = [4][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}

	// each diagonal needs both adjacent cardinals open
	diagonals = [4]struct {
		dx, dy     int
		adj1, adj2 int
	}{
		{1, -1, 0, 1},
		{1, 1, 1, 2},
		{-1, 1, 2, 3},
		{-1, -1, 3, 0},
	}
)

// expandNeighbors relaxes the open neighbours of cur. Diagonal moves never
// cut a blocked corner.
func (e *Engine) expandNeighbors(q *query, cur *node) {
	var open [4]bool
	for i, d := range cardinals {
		nx, ny := cur.x+d[0], cur.y+d[1]
		if !e.passable(nx, ny) {
			continue
		}
		open[i] = true
		q.relax(cur, nx, ny, costStraight)
	}

	for _, d := range diagonals {
		if !open[d.adj1] || !open[d.adj2] {
			continue
		}
		nx, ny := cur.x+d.dx, cur.y+d.dy
		if !e.passable(nx, ny) {
			continue
		}
		q.relax(cur, nx, ny, costDiagonal)
	}
}

// heuristic is the octile distance in step cost units.
func heuristic(x, y int, end geo.Cell) int {
	dx, dy := x-end.X, y-end.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return costStraight*max(dx, dy) + (costDiagonal-costStraight)*min(dx, dy)
}

// query is the search state of one start/end pair.
type query struct {
	id     QueryID
	start  geo.Cell
	end    geo.Cell
	state  QueryState
	width  int
	result chan Result

	open     nodeHeap
	gScore   map[int]int
	cameFrom map[int]int
	closed   map[int]struct{}
	seq      uint64
}

func newQuery(id QueryID, start, end geo.Cell, width int, result chan Result) *query {
	q := &query{
		id:       id,
		start:    start,
		end:      end,
		state:    StateQueued,
		width:    width,
		result:   result,
		gScore:   make(map[int]int, 256),
		cameFrom: make(map[int]int, 256),
		closed:   make(map[int]struct{}, 256),
	}

	idx := q.cellIndex(start.X, start.Y)
	q.gScore[idx] = 0
	h := heuristic(start.X, start.Y, end)
	heap.Push(&q.open, &node{x: start.X, y: start.Y, index: idx, f: h, h: h})
	return q
}

// finish delivers the terminal result once.
func (q *query) finish(state QueryState, r Result) {
	if q.state == StateFound || q.state == StateUnreachable {
		return
	}
	q.state = state
	q.result <- r
}

func (q *query) cellIndex(x, y int) int {
	return y*q.width + x
}

// relax records a cheaper route to (x, y) through cur.
func (q *query) relax(cur *node, x, y, cost int) {
	idx := q.cellIndex(x, y)
	if _, ok := q.closed[idx]; ok {
		return
	}

	g := q.gScore[cur.index] + cost
	if old, ok := q.gScore[idx]; ok && old <= g {
		return
	}
	q.gScore[idx] = g
	q.cameFrom[idx] = cur.index

	q.seq++
	h := heuristic(x, y, q.end)
	heap.Push(&q.open, &node{x: x, y: y, index: idx, f: g + h, h: h, seq: q.seq})
}

// reconstruct walks the came-from chain back from the end cell.
func (q *query) reconstruct(end int) []geo.Cell {
	startIdx := q.cellIndex(q.start.X, q.start.Y)

	path := make([]geo.Cell, 0, 32)
	for idx := end; ; {
		path = append(path, geo.Cell{X: idx % q.width, Y: idx / q.width})
		if idx == startIdx {
			break
		}
		idx = q.cameFrom[idx]
	}

	slices.Reverse(path)
	return path
}

// node is an open-set entry. Stale entries are skipped when popped.
type node struct {
	x, y  int
	index int // cell index
	f, h  int
	seq   uint64
}

// nodeHeap orders by f, then h, then insertion.
type nodeHeap []*node

func (h nodeHeap) Len() int { return len(h) }
func (h nodeHeap) Less(i, j int) bool {
	if h[i].f != h[j].f {
		return h[i].f < h[j].f
	}
	if h[i].h != h[j].h {
		return h[i].h < h[j].h
	}
	return h[i].seq < h[j].seq
}
func (h nodeHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *nodeHeap) Push(x any)   { *h = append(*h, x.(*node)) }
func (h *nodeHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}
