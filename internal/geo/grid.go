package geo

import (
	"encoding/binary"
	"math/bits"
	"slices"

	"golang.org/x/crypto/blake2b"
)

// Cell is a grid cell coordinate.
type Cell struct {
	X, Y int
}

// Grid is a dense blocked/unblocked bitset addressed by grid cell.
// A set bit is an obstacle.
type Grid struct {
	width  int
	height int
	words  []uint64
}

// NewGrid creates an all-open grid.
func NewGrid(width, height int) *Grid {
	n := width * height
	return &Grid{
		width:  width,
		height: height,
		words:  make([]uint64, (n+63)/64),
	}
}

// Width returns the grid width in cells.
func (g *Grid) Width() int { return g.width }

// Height returns the grid height in cells.
func (g *Grid) Height() int { return g.height }

// InBounds reports whether (x, y) addresses a cell.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// Get reports whether the cell is blocked. Cells outside the grid are blocked.
func (g *Grid) Get(x, y int) bool {
	if !g.InBounds(x, y) {
		return true
	}
	i := y*g.width + x
	return g.words[i>>6]&(1<<(uint(i)&63)) != 0
}

// Set writes a cell. Writes outside the grid are ignored.
func (g *Grid) Set(x, y int, blocked bool) {
	if !g.InBounds(x, y) {
		return
	}
	i := y*g.width + x
	if blocked {
		g.words[i>>6] |= 1 << (uint(i) & 63)
	} else {
		g.words[i>>6] &^= 1 << (uint(i) & 63)
	}
}

// Fill writes the TileSize×TileSize block anchored at (x, y).
func (g *Grid) Fill(x, y int, blocked bool) {
	g.FillRect(x, y, x+TileSize, y+TileSize, blocked)
}

// FillRect writes every cell in [x0,x1)×[y0,y1).
func (g *Grid) FillRect(x0, y0, x1, y1 int, blocked bool) {
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			g.Set(x, y, blocked)
		}
	}
}

// Blocked returns the number of blocked cells.
func (g *Grid) Blocked() int {
	n := 0
	for _, w := range g.words {
		n += bits.OnesCount64(w)
	}
	return n
}

// Equal reports whether both grids have the same size and bits.
func (g *Grid) Equal(other *Grid) bool {
	return g.width == other.width && g.height == other.height && slices.Equal(g.words, other.words)
}

// Clone returns an independent copy.
func (g *Grid) Clone() *Grid {
	return &Grid{width: g.width, height: g.height, words: slices.Clone(g.words)}
}

// Checksum returns a BLAKE2b-256 digest of the grid size and bits.
func (g *Grid) Checksum() [32]byte {
	h, _ := blake2b.New256(nil) // only fails for keys longer than 64 bytes

	var buf [4096]byte
	b := binary.LittleEndian.AppendUint64(buf[:0], uint64(g.width))
	b = binary.LittleEndian.AppendUint64(b, uint64(g.height))
	for _, w := range g.words {
		if len(b)+8 > len(buf) {
			h.Write(b)
			b = buf[:0]
		}
		b = binary.LittleEndian.AppendUint64(b, w)
	}
	h.Write(b)

	var sum [32]byte
	copy(sum[:], h.Sum(nil))
	return sum
}
