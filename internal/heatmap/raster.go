package heatmap

import (
	"math"
	"sort"
)

// clampIndex restricts a computed cell index to [0, dim-1]. Annotations
// are sometimes an epsilon outside the frame due to upstream rounding.
func clampIndex(i, dim int) int {
	if i < 0 {
		return 0
	}
	if i >= dim {
		return dim - 1
	}
	return i
}

// rasterize marks the inclusive cell range covered by the box with 1.0
// (cell-vote strategy). Coordinates exactly on a cell boundary round
// down; a zero-area box still marks its one enclosing cell.
func (b Box) rasterize(cols, rows int) (*Grid, error) {
	cellW := 100.0 / float64(cols)
	cellH := 100.0 / float64(rows)

	gx0 := clampIndex(int(b.X/cellW), cols)
	gx1 := clampIndex(int((b.X+b.Width)/cellW), cols)
	gy0 := clampIndex(int(b.Y/cellH), rows)
	gy1 := clampIndex(int((b.Y+b.Height)/cellH), rows)

	g := NewGrid(cols, rows)
	for y := gy0; y <= gy1; y++ {
		for x := gx0; x <= gx1; x++ {
			g.Set(x, y, 1)
		}
	}
	return g, nil
}

// rasterize fills the polygon at native pixel resolution and
// down-samples the mask to the grid by block averaging (exact-fill
// strategy). Cells end up with fractional occupancy in [0,1].
func (p Polygon) rasterize(cols, rows int) (*Grid, error) {
	if p.PixelWidth <= 0 || p.PixelHeight <= 0 {
		return nil, ErrNoPixelDims
	}
	mask := fillPolygonMask(p.Points, p.PixelWidth, p.PixelHeight)
	return downsampleMask(mask, p.PixelWidth, p.PixelHeight, cols, rows), nil
}

// fillPolygonMask rasterizes a polygon given in percentage coordinates
// onto a w×h binary pixel mask using an even-odd scanline fill. Each
// pixel is classified by its center.
func fillPolygonMask(points []Point, w, h int) []uint8 {
	mask := make([]uint8, w*h)
	n := len(points)
	if n < 3 {
		return mask
	}

	// Vertices in pixel space.
	px := make([]float64, n)
	py := make([]float64, n)
	for i, pt := range points {
		px[i] = pt.X / 100 * float64(w)
		py[i] = pt.Y / 100 * float64(h)
	}

	xs := make([]float64, 0, n)
	for y := 0; y < h; y++ {
		yc := float64(y) + 0.5
		xs = xs[:0]
		for i := 0; i < n; i++ {
			j := (i + 1) % n
			y0, y1 := py[i], py[j]
			if (y0 <= yc) == (y1 <= yc) {
				continue // edge does not cross the scanline
			}
			t := (yc - y0) / (y1 - y0)
			xs = append(xs, px[i]+t*(px[j]-px[i]))
		}
		sort.Float64s(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			x0 := int(math.Ceil(xs[i] - 0.5))
			x1 := int(math.Ceil(xs[i+1] - 0.5))
			if x0 < 0 {
				x0 = 0
			}
			if x1 > w {
				x1 = w
			}
			for x := x0; x < x1; x++ {
				mask[y*w+x] = 1
			}
		}
	}
	return mask
}

// downsampleMask reduces a w×h pixel mask to a cols×rows grid. Each cell
// takes the mean of its pixel block, giving fractional occupancy.
func downsampleMask(mask []uint8, w, h, cols, rows int) *Grid {
	g := NewGrid(cols, rows)
	for gy := 0; gy < rows; gy++ {
		y0 := gy * h / rows
		y1 := (gy + 1) * h / rows
		for gx := 0; gx < cols; gx++ {
			x0 := gx * w / cols
			x1 := (gx + 1) * w / cols
			sum, count := 0, 0
			for y := y0; y < y1; y++ {
				for x := x0; x < x1; x++ {
					sum += int(mask[y*w+x])
					count++
				}
			}
			if count > 0 {
				g.Set(gx, gy, float64(sum)/float64(count))
			}
		}
	}
	return g
}
