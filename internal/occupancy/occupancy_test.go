package occupancy

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/posterlab/layoutheat/internal/heatmap"
)

// newFrame creates a solid background image with an optional dark
// content rectangle.
func newFrame(w, h int, content *image.Rectangle) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.White)
		}
	}
	if content != nil {
		for y := content.Min.Y; y < content.Max.Y; y++ {
			for x := content.Min.X; x < content.Max.X; x++ {
				img.Set(x, y, color.Black)
			}
		}
	}
	return img
}

func TestGrid(t *testing.T) {
	t.Run("blank frame is entirely free", func(t *testing.T) {
		g := Grid(newFrame(120, 210, nil), DefaultThreshold, 12, 21)
		for _, v := range g.Flatten() {
			assert.Equal(t, 1.0, v)
		}
	})

	t.Run("content bounding box gets the residual weight", func(t *testing.T) {
		// Content occupies the top-left quadrant of a 100x100 frame.
		content := image.Rect(0, 0, 50, 50)
		g := Grid(newFrame(100, 100, &content), DefaultThreshold, 4, 4)
		for y := 0; y < 4; y++ {
			for x := 0; x < 4; x++ {
				if x < 2 && y < 2 {
					assert.Equal(t, 0.01, g.At(x, y), "cell (%d,%d)", x, y)
				} else {
					assert.Equal(t, 1.0, g.At(x, y), "cell (%d,%d)", x, y)
				}
			}
		}
	})

	t.Run("full-bleed content covers every cell", func(t *testing.T) {
		content := image.Rect(0, 0, 60, 60)
		g := Grid(newFrame(60, 60, &content), DefaultThreshold, 3, 3)
		for _, v := range g.Flatten() {
			assert.Equal(t, 0.01, v)
		}
	})

	t.Run("occupancy grid flows through the smoothing tail", func(t *testing.T) {
		content := image.Rect(10, 10, 90, 90)
		g := Grid(newFrame(100, 100, &content), DefaultThreshold, 12, 21)

		p, err := heatmap.NewPipeline(heatmap.Config{
			Cols: 12, Rows: 21, Sigma: 0, Categories: heatmap.LayoutCategories,
		})
		require.NoError(t, err)
		out := p.Finish(g)
		assert.Equal(t, 1.0, out.Max())
		for _, v := range out.Flatten() {
			assert.GreaterOrEqual(t, v, 0.0)
			assert.LessOrEqual(t, v, 1.0)
		}
	})
}
