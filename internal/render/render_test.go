package render

import (
	"image/color"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/posterlab/layoutheat/internal/heatmap"
)

func TestColorAt(t *testing.T) {
	t.Run("endpoints hit the gradient extremes", func(t *testing.T) {
		assert.Equal(t, toNRGBA(heatStops[0].col), colorAt(0))
		assert.Equal(t, toNRGBA(heatStops[len(heatStops)-1].col), colorAt(1))
	})

	t.Run("out-of-range values are clamped", func(t *testing.T) {
		assert.Equal(t, colorAt(0), colorAt(-0.5))
		assert.Equal(t, colorAt(1), colorAt(2))
	})

	t.Run("midpoints interpolate", func(t *testing.T) {
		lo := colorAt(0).(color.NRGBA)
		mid := colorAt(0.5).(color.NRGBA)
		hi := colorAt(1).(color.NRGBA)
		assert.NotEqual(t, lo, mid)
		assert.NotEqual(t, hi, mid)
	})
}

func TestHeatmap(t *testing.T) {
	g := heatmap.NewGrid(12, 21)
	g.Set(0, 0, 1)

	t.Run("output dimensions scale with cell size", func(t *testing.T) {
		img := Heatmap(g, 10)
		assert.Equal(t, 120, img.Bounds().Dx())
		assert.Equal(t, 210, img.Bounds().Dy())
	})

	t.Run("non-positive cell size falls back to the default", func(t *testing.T) {
		img := Heatmap(g, 0)
		assert.Equal(t, 12*DefaultCellSize, img.Bounds().Dx())
	})

	t.Run("hot and cold cells get different colors", func(t *testing.T) {
		img := Heatmap(g, 2)
		hot := img.At(0, 0)
		cold := img.At(img.Bounds().Dx()-1, img.Bounds().Dy()-1)
		assert.NotEqual(t, hot, cold)
	})
}

func TestSavePNGAndOpenImage(t *testing.T) {
	g := heatmap.NewGrid(4, 4)
	g.Set(1, 1, 1)
	img := Heatmap(g, 8)

	path := filepath.Join(t.TempDir(), "heat.png")
	require.NoError(t, SavePNG(img, path))

	back, err := OpenImage(path)
	require.NoError(t, err)
	assert.Equal(t, img.Bounds(), back.Bounds())
}

func TestOpenImageMissingFile(t *testing.T) {
	_, err := OpenImage(filepath.Join(t.TempDir(), "nope.png"))
	assert.Error(t, err)
}
