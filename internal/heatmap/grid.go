package heatmap

import "math"

// Grid is a cols×rows matrix of non-negative occupancy values stored
// row-major, top row first. Construction requires positive dimensions;
// once a grid leaves the pipeline it is treated as immutable.
type Grid struct {
	cols  int
	rows  int
	cells []float64
}

// NewGrid creates a zeroed grid. Panics if either dimension is not
// positive; dimensions are validated once in Config.Validate.
func NewGrid(cols, rows int) *Grid {
	if cols <= 0 || rows <= 0 {
		panic("heatmap: grid dimensions must be positive")
	}
	return &Grid{cols: cols, rows: rows, cells: make([]float64, cols*rows)}
}

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.cols }

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// At returns the value at column x, row y.
func (g *Grid) At(x, y int) float64 { return g.cells[y*g.cols+x] }

// Set writes the value at column x, row y.
func (g *Grid) Set(x, y int, v float64) { g.cells[y*g.cols+x] = v }

// Fill sets every cell to v.
func (g *Grid) Fill(v float64) {
	for i := range g.cells {
		g.cells[i] = v
	}
}

// Max returns the largest cell value, or 0 for an all-zero grid.
func (g *Grid) Max() float64 {
	m := 0.0
	for _, v := range g.cells {
		if v > m {
			m = v
		}
	}
	return m
}

// Clone returns a deep copy.
func (g *Grid) Clone() *Grid {
	c := NewGrid(g.cols, g.rows)
	copy(c.cells, g.cells)
	return c
}

// Flatten returns the cells row-major (top row first, left-to-right)
// as a fresh slice.
func (g *Grid) Flatten() []float64 {
	out := make([]float64, len(g.cells))
	copy(out, g.cells)
	return out
}

// UnionMax merges another grid into g by element-wise maximum. This is
// the within-document aggregation rule: overlapping shapes for one
// category never push a cell above the single-shape ceiling.
func (g *Grid) UnionMax(o *Grid) {
	for i, v := range o.cells {
		if v > g.cells[i] {
			g.cells[i] = v
		}
	}
}

// add accumulates another grid element-wise. Used only by the
// cross-document Accumulator.
func (g *Grid) add(o *Grid) {
	for i, v := range o.cells {
		g.cells[i] += v
	}
}

// scale multiplies every cell by f.
func (g *Grid) scale(f float64) {
	for i := range g.cells {
		g.cells[i] *= f
	}
}

// GridFromValues builds a grid from row-major values. The length of
// values must equal cols*rows.
func GridFromValues(cols, rows int, values []float64) *Grid {
	g := NewGrid(cols, rows)
	if len(values) != len(g.cells) {
		panic("heatmap: value count does not match grid size")
	}
	copy(g.cells, values)
	return g
}

// Normalize rescales the grid so its maximum is exactly 1.0. An all-zero
// grid is returned unchanged; there is never a division by zero.
func Normalize(g *Grid) *Grid {
	out := g.Clone()
	if m := out.Max(); m > 0 {
		out.scale(1 / m)
	}
	return out
}

// Quantize rounds every cell to one decimal digit, so each value is one
// of the eleven levels 0.0, 0.1, …, 1.0 for normalized input.
func Quantize(g *Grid) *Grid {
	out := g.Clone()
	for i, v := range out.cells {
		out.cells[i] = math.Round(v*10) / 10
	}
	return out
}
