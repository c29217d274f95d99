package heatmap

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPipeline(t *testing.T, cfg Config) *Pipeline {
	t.Helper()
	p, err := NewPipeline(cfg)
	require.NoError(t, err)
	return p
}

func TestConfigValidate(t *testing.T) {
	t.Run("default config is valid", func(t *testing.T) {
		require.NoError(t, DefaultConfig().Validate())
	})
	t.Run("rejects bad values", func(t *testing.T) {
		for _, cfg := range []Config{
			{Cols: 0, Rows: 21, Categories: LayoutCategories},
			{Cols: 12, Rows: -1, Categories: LayoutCategories},
			{Cols: 12, Rows: 21, Sigma: -0.5, Categories: LayoutCategories},
			{Cols: 12, Rows: 21},
		} {
			assert.Error(t, cfg.Validate())
		}
	})
}

func TestPipelineHeatmap(t *testing.T) {
	t.Run("full coverage stays all ones through blur and normalization", func(t *testing.T) {
		for _, sigma := range []float64{0, 1, 2.5} {
			p := newTestPipeline(t, Config{Cols: 12, Rows: 21, Sigma: sigma, Categories: LayoutCategories})
			g := p.Heatmap([]Shape{Box{X: 0, Y: 0, Width: 100, Height: 100}})
			for _, v := range g.Flatten() {
				assert.Equal(t, 1.0, v, "sigma %g", sigma)
			}
		}
	})

	t.Run("no shapes yields an all-zero grid", func(t *testing.T) {
		p := newTestPipeline(t, DefaultConfig())
		g := p.Heatmap(nil)
		for _, v := range g.Flatten() {
			assert.Equal(t, 0.0, v)
		}
	})

	t.Run("every value is a multiple of 0.1 in [0,1]", func(t *testing.T) {
		p := newTestPipeline(t, DefaultConfig())
		g := p.Heatmap([]Shape{
			Box{X: 5, Y: 5, Width: 30, Height: 10},
			Box{X: 40, Y: 60, Width: 50, Height: 35},
			Polygon{Points: []Point{{10, 70}, {90, 75}, {50, 95}}, PixelWidth: 400, PixelHeight: 700},
		})
		for _, v := range g.Flatten() {
			assert.GreaterOrEqual(t, v, 0.0)
			assert.LessOrEqual(t, v, 1.0)
			scaled := v * 10
			assert.InDelta(t, math.Round(scaled), scaled, 1e-9, "value %v is not a multiple of 0.1", v)
		}
	})

	t.Run("non-empty grid normalizes to maximum exactly 1.0", func(t *testing.T) {
		p := newTestPipeline(t, DefaultConfig())
		g := p.Heatmap([]Shape{Box{X: 40, Y: 40, Width: 10, Height: 10}})
		assert.Equal(t, 1.0, g.Max())
	})

	t.Run("overlapping shapes union by max, not sum", func(t *testing.T) {
		p := newTestPipeline(t, Config{Cols: 12, Rows: 21, Sigma: 0, Categories: LayoutCategories})
		one := p.Heatmap([]Shape{Box{X: 10, Y: 10, Width: 20, Height: 20}})
		three := p.Heatmap([]Shape{
			Box{X: 10, Y: 10, Width: 20, Height: 20},
			Box{X: 10, Y: 10, Width: 20, Height: 20},
			Box{X: 10, Y: 10, Width: 20, Height: 20},
		})
		assert.Equal(t, one.Flatten(), three.Flatten())
	})

	t.Run("polygons without pixel dims are skipped, not fatal", func(t *testing.T) {
		p := newTestPipeline(t, Config{Cols: 12, Rows: 21, Sigma: 0, Categories: LayoutCategories})
		g := p.Heatmap([]Shape{
			Polygon{Points: []Point{{0, 0}, {100, 0}, {100, 100}, {0, 100}}},
			Box{X: 0, Y: 0, Width: 8, Height: 4},
		})
		assert.Equal(t, 1.0, g.At(0, 0))
		assert.Equal(t, 0.0, g.At(11, 20))
	})

	t.Run("determinism", func(t *testing.T) {
		shapes := []Shape{
			Box{X: 12.5, Y: 33.3, Width: 40, Height: 22},
			Polygon{Points: []Point{{5, 5}, {95, 10}, {50, 80}}, PixelWidth: 800, PixelHeight: 1400},
		}
		p := newTestPipeline(t, DefaultConfig())
		first := p.Heatmap(shapes).Flatten()
		for i := 0; i < 5; i++ {
			assert.Equal(t, first, p.Heatmap(shapes).Flatten())
		}
	})
}

func TestPipelineDocument(t *testing.T) {
	p := newTestPipeline(t, Config{Cols: 12, Rows: 21, Sigma: 0, Categories: LayoutCategories})
	doc := Document{Annotations: []Annotation{
		{Category: "Title", Shape: Box{X: 0, Y: 0, Width: 100, Height: 10}},
		{Category: "Time", Shape: Box{X: 0, Y: 90, Width: 100, Height: 10}},
	}}
	row := p.Document(doc)

	require.Equal(t, LayoutCategories.Categories(), row.Categories())
	assert.Equal(t, 1.0, row.Grid("Title").At(0, 0))
	assert.Equal(t, 0.0, row.Grid("Title").At(0, 20))
	assert.Equal(t, 1.0, row.Grid("Time").At(0, 20))
	// Categories with no shapes still get a grid, all zero.
	assert.Equal(t, 0.0, row.Grid("Location").Max())
}

func TestBlur(t *testing.T) {
	t.Run("sigma zero returns the grid unchanged", func(t *testing.T) {
		g := NewGrid(5, 5)
		g.Set(2, 2, 1)
		assert.Equal(t, g.Flatten(), Blur(g, 0).Flatten())
	})

	t.Run("constant grid blurs to itself", func(t *testing.T) {
		g := NewGrid(12, 21)
		g.Fill(0.7)
		for _, v := range Blur(g, 1.5).Flatten() {
			assert.InDelta(t, 0.7, v, 1e-9)
		}
	})

	t.Run("mass is preserved under reflection", func(t *testing.T) {
		g := NewGrid(7, 9)
		g.Set(0, 0, 1) // corner: reflection keeps the kernel mass inside
		var sum float64
		for _, v := range Blur(g, 1).Flatten() {
			sum += v
		}
		assert.InDelta(t, 1.0, sum, 1e-9)
	})

	t.Run("blur spreads a point symmetrically", func(t *testing.T) {
		g := NewGrid(9, 9)
		g.Set(4, 4, 1)
		b := Blur(g, 1)
		assert.Greater(t, b.At(4, 4), b.At(3, 4))
		assert.InDelta(t, b.At(3, 4), b.At(5, 4), 1e-12)
		assert.InDelta(t, b.At(4, 3), b.At(4, 5), 1e-12)
		assert.InDelta(t, b.At(3, 4), b.At(4, 3), 1e-12)
	})
}

func TestNormalizeQuantize(t *testing.T) {
	t.Run("all-zero grid is left unchanged", func(t *testing.T) {
		g := NewGrid(3, 3)
		assert.Equal(t, g.Flatten(), Normalize(g).Flatten())
	})

	t.Run("maximum becomes exactly 1.0", func(t *testing.T) {
		g := NewGrid(2, 2)
		g.Set(0, 0, 0.2)
		g.Set(1, 1, 0.4)
		n := Normalize(g)
		assert.Equal(t, 1.0, n.At(1, 1))
		assert.InDelta(t, 0.5, n.At(0, 0), 1e-12)
	})

	t.Run("quantize rounds to one decimal", func(t *testing.T) {
		g := NewGrid(1, 4)
		g.Set(0, 0, 0.04)
		g.Set(0, 1, 0.15)
		g.Set(0, 2, 0.96)
		g.Set(0, 3, 1.0)
		q := Quantize(g)
		assert.Equal(t, []float64{0.0, 0.2, 1.0, 1.0}, q.Flatten())
	})
}

func TestCategoryTags(t *testing.T) {
	cases := map[Category]string{
		"Title":                     "title_heat",
		"Host/organization":         "host_organization_heat",
		"Call-To-Action/Purpose":    "call-to-action_purpose_heat",
		"Text descriptions/details": "text_descriptions_details_heat",
		"Image":                     "image_heat",
	}
	for c, want := range cases {
		assert.Equal(t, want, c.Tag())
	}
}

func TestCategorySetCanonical(t *testing.T) {
	t.Run("case-insensitive match", func(t *testing.T) {
		for _, raw := range []string{"Title", "title", "TITLE", " title "} {
			c, ok := LayoutCategories.Canonical(raw)
			require.True(t, ok, "raw %q", raw)
			assert.Equal(t, Category("Title"), c)
		}
	})
	t.Run("unknown labels are rejected, not fatal", func(t *testing.T) {
		_, ok := LayoutCategories.Canonical("watermark")
		assert.False(t, ok)
	})
}

func TestAccumulator(t *testing.T) {
	cells := func(vals ...float64) []float64 { return vals }

	t.Run("mean over documents", func(t *testing.T) {
		a := NewAccumulator(2, 1)
		require.NoError(t, a.AddDocument(map[string][]float64{"title_heat": cells(1, 0)}))
		require.NoError(t, a.AddDocument(map[string][]float64{"title_heat": cells(0, 1)}))
		m := a.Mean()
		require.NotNil(t, m)
		assert.Equal(t, []float64{0.5, 0.5}, m["title_heat"].Flatten())
		assert.Equal(t, 2, a.Docs())
	})

	t.Run("size mismatch is rejected", func(t *testing.T) {
		a := NewAccumulator(2, 1)
		assert.Error(t, a.AddDocument(map[string][]float64{"title_heat": cells(1, 2, 3)}))
	})

	t.Run("empty accumulator has no mean", func(t *testing.T) {
		assert.Nil(t, NewAccumulator(2, 1).Mean())
	})

	t.Run("split accumulation equals direct accumulation", func(t *testing.T) {
		docs := []map[string][]float64{
			{"image_heat": cells(1, 0, 0.5, 0)},
			{"image_heat": cells(0, 1, 0.5, 0)},
			{"image_heat": cells(0, 0, 1.0, 1)},
		}
		direct := NewAccumulator(2, 2)
		for _, d := range docs {
			require.NoError(t, direct.AddDocument(d))
		}

		first := NewAccumulator(2, 2)
		require.NoError(t, first.AddDocument(docs[0]))
		require.NoError(t, first.AddDocument(docs[1]))
		second := NewAccumulator(2, 2)
		require.NoError(t, second.AddDocument(docs[2]))

		wantDirect := direct.Mean()["image_heat"].Flatten()
		fm := first.Mean()["image_heat"].Flatten()
		sm := second.Mean()["image_heat"].Flatten()
		for i := range wantDirect {
			weighted := (fm[i]*float64(first.Docs()) + sm[i]*float64(second.Docs())) /
				float64(first.Docs()+second.Docs())
			assert.InDelta(t, wantDirect[i], weighted, 1e-12)
		}
	})
}
