// Package render rasterizes heat grids into PNG images for dataset
// inspection. Only the numeric grids are contractual; these renderings
// are a debugging aid.
package render

import (
	"fmt"
	"image"
	"image/color"
	"sort"

	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/posterlab/layoutheat/internal/heatmap"
)

// DefaultCellSize is the rendered size of one grid cell in pixels.
const DefaultCellSize = 24

// heatStop is one keypoint of the colormap gradient.
type heatStop struct {
	pos float64
	col colorful.Color
}

// plasma-like gradient: dark violet through orange to bright yellow.
var heatStops = []heatStop{
	{0.00, mustHex("#0d0887")},
	{0.25, mustHex("#7e03a8")},
	{0.50, mustHex("#cc4778")},
	{0.75, mustHex("#f89540")},
	{1.00, mustHex("#f0f921")},
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// colorAt maps a normalized value in [0,1] onto the gradient.
func colorAt(v float64) color.Color {
	if v <= heatStops[0].pos {
		return toNRGBA(heatStops[0].col)
	}
	last := heatStops[len(heatStops)-1]
	if v >= last.pos {
		return toNRGBA(last.col)
	}
	i := sort.Search(len(heatStops), func(i int) bool { return heatStops[i].pos >= v })
	lo, hi := heatStops[i-1], heatStops[i]
	t := (v - lo.pos) / (hi.pos - lo.pos)
	return toNRGBA(lo.col.BlendLuv(hi.col, t))
}

func toNRGBA(c colorful.Color) color.NRGBA {
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}

// Heatmap renders a grid as an image with cellSize pixels per cell.
// Values are clamped into [0,1]; cells keep hard edges (nearest-neighbor
// scaling) so the grid structure stays visible.
func Heatmap(g *heatmap.Grid, cellSize int) image.Image {
	if cellSize <= 0 {
		cellSize = DefaultCellSize
	}
	base := image.NewNRGBA(image.Rect(0, 0, g.Cols(), g.Rows()))
	for y := 0; y < g.Rows(); y++ {
		for x := 0; x < g.Cols(); x++ {
			v := g.At(x, y)
			if v < 0 {
				v = 0
			}
			if v > 1 {
				v = 1
			}
			base.Set(x, y, colorAt(v))
		}
	}
	return imaging.Resize(base, g.Cols()*cellSize, g.Rows()*cellSize, imaging.NearestNeighbor)
}

// SavePNG writes an image to path; the extension determines the format,
// so callers should pass .png paths.
func SavePNG(img image.Image, path string) error {
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}
