package heatmap

import "errors"

// ErrNoPixelDims is returned when a polygon carries no usable source
// pixel dimensions. Exact-fill rasterization needs them; the shape is
// skipped, not fatal to the document.
var ErrNoPixelDims = errors.New("polygon has no source pixel dimensions")

// Shape is a region annotation in percentage-of-frame coordinates.
// It is a closed union: Box and Polygon are the only implementations,
// each selecting its own rasterization strategy.
type Shape interface {
	rasterize(cols, rows int) (*Grid, error)
}

// Box is an axis-aligned rectangle. All fields are percentages of the
// frame in [0,100]; X,Y is the top-left corner. X+Width and Y+Height may
// exceed 100 slightly; the rasterizer clamps internally.
type Box struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Point is one polygon vertex in percentage coordinates.
type Point struct {
	X float64
	Y float64
}

// Polygon is a closed polygon with at least three vertices. PixelWidth
// and PixelHeight are the source frame dimensions in pixels; exact-fill
// rasterization runs at that resolution before down-sampling.
type Polygon struct {
	Points      []Point
	PixelWidth  int
	PixelHeight int
}

// Rasterize converts a shape into its contribution on a cols×rows grid.
// Returns ErrNoPixelDims for polygons without source dimensions.
func Rasterize(s Shape, cols, rows int) (*Grid, error) {
	return s.rasterize(cols, rows)
}
