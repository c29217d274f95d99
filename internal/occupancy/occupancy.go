// Package occupancy derives a free-space grid directly from pixel
// intensity, with no annotation input. It classifies pixels as content
// or background by a grayscale threshold, takes the bounding box of all
// content pixels, and marks that box's cells with a small residual
// weight while everything else stays fully free (1.0). The residual
// keeps the grid free of hard discontinuities.
//
// The resulting grid is a frame-level prior: it flows through the same
// smoothing and serialization tail as annotation-derived heatmaps.
package occupancy

import (
	"image"

	"github.com/anthonynsimon/bild/segment"

	"github.com/posterlab/layoutheat/internal/heatmap"
)

// DefaultThreshold treats near-white pixels as background; posters are
// predominantly printed on light ground.
const DefaultThreshold uint8 = 240

// residualWeight marks occupied cells; non-zero on purpose.
const residualWeight = 0.01

// Grid classifies img's pixels against threshold and returns the
// cols×rows free-space grid: 1.0 where the frame is free, the residual
// weight inside the content bounding box. A blank frame is entirely
// free.
func Grid(img image.Image, threshold uint8, cols, rows int) *heatmap.Grid {
	g := heatmap.NewGrid(cols, rows)
	g.Fill(1.0)

	mask := segment.Threshold(img, threshold) // content pixels end up black
	bounds := mask.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	x0, y0 := w, h
	x1, y1 := -1, -1
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if mask.GrayAt(bounds.Min.X+x, bounds.Min.Y+y).Y != 0 {
				continue
			}
			if x < x0 {
				x0 = x
			}
			if x > x1 {
				x1 = x
			}
			if y < y0 {
				y0 = y
			}
			if y > y1 {
				y1 = y
			}
		}
	}
	if x1 < 0 {
		return g // no content pixels
	}

	gx0 := clampIndex(x0*cols/w, cols)
	gx1 := clampIndex(x1*cols/w, cols)
	gy0 := clampIndex(y0*rows/h, rows)
	gy1 := clampIndex(y1*rows/h, rows)
	for gy := gy0; gy <= gy1; gy++ {
		for gx := gx0; gx <= gx1; gx++ {
			g.Set(gx, gy, residualWeight)
		}
	}
	return g
}

func clampIndex(i, dim int) int {
	if i < 0 {
		return 0
	}
	if i >= dim {
		return dim - 1
	}
	return i
}
