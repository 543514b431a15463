// Package render exports obstacle grids as images for inspection.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/udisondev/tilenav/internal/geo"
)

// Palette indices.
const (
	colorOpen uint8 = iota
	colorBlocked
	colorPath
	colorEndpoint
)

var palette = color.Palette{
	color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
	color.RGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xff},
	color.RGBA{R: 0xe0, G: 0x30, B: 0x30, A: 0xff},
	color.RGBA{R: 0x30, G: 0x60, B: 0xe0, A: 0xff},
}

// Grid is the read side of an obstacle grid.
type Grid interface {
	Width() int
	Height() int
	Get(x, y int) bool
}

// Image draws g one pixel per cell and paints each path tile's 2×2 block.
// The first and last path tiles use the endpoint colour.
func Image(g Grid, m geo.Mapper, path []geo.Point) *image.Paletted {
	img := image.NewPaletted(image.Rect(0, 0, g.Width(), g.Height()), palette)

	for y := range g.Height() {
		for x := range g.Width() {
			if g.Get(x, y) {
				img.SetColorIndex(x, y, colorBlocked)
			}
		}
	}

	for i, p := range path {
		c := colorPath
		if i == 0 || i == len(path)-1 {
			c = colorEndpoint
		}
		gx, gy := m.ToGrid(p)
		for dy := range geo.TileSize {
			for dx := range geo.TileSize {
				img.SetColorIndex(gx+dx, gy+dy, c)
			}
		}
	}
	return img
}

// PNG encodes Image(g, m, path) to w.
func PNG(w io.Writer, g Grid, m geo.Mapper, path []geo.Point) error {
	if err := png.Encode(w, Image(g, m, path)); err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}
	return nil
}
