// Package heatmap converts annotated regions into fixed-resolution
// occupancy grids.
//
// The pipeline for one document is: rasterize each shape onto an H×W grid,
// union the contributions per category (element-wise maximum), apply an
// isotropic Gaussian blur, rescale so the maximum cell is exactly 1.0, and
// quantize every cell to one decimal digit. The result is a HeatmapRow,
// one quantized grid per category.
//
// # Coordinate System
//
// Shapes are expressed in percentage-of-frame coordinates: (0,0) is the
// top-left corner, (100,100) the bottom-right. Grid cell (0,0) is the
// top-left cell; values are stored row-major.
//
// # Rasterization Strategies
//
// Boxes use cell-vote rasterization: the inclusive cell range covered by
// the box is marked with 1.0, independent of overlap fraction. Polygons
// use exact-fill rasterization: an even-odd scanline fill at the source
// image's pixel resolution, down-sampled to the grid by averaging each
// cell's pixel block. The two strategies deliberately differ in edge
// semantics and are kept as distinct paths.
//
// All computed grid indices are clamped into bounds, so coordinates
// slightly outside [0,100] never fail.
package heatmap
