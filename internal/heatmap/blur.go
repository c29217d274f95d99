package heatmap

import "math"

// Blur applies an isotropic Gaussian blur with sigma expressed in
// grid-cell units. Sigma <= 0 returns an unmodified copy. The kernel is
// truncated at four sigmas and the grid is extended by reflection at the
// borders, so a constant grid blurs to itself.
func Blur(g *Grid, sigma float64) *Grid {
	if sigma <= 0 {
		return g.Clone()
	}
	kernel := gaussianKernel(sigma)

	// Horizontal pass.
	tmp := NewGrid(g.cols, g.rows)
	radius := len(kernel) / 2
	for y := 0; y < g.rows; y++ {
		for x := 0; x < g.cols; x++ {
			var sum float64
			for k, kv := range kernel {
				sum += kv * g.At(reflectIndex(x+k-radius, g.cols), y)
			}
			tmp.Set(x, y, sum)
		}
	}

	// Vertical pass.
	out := NewGrid(g.cols, g.rows)
	for y := 0; y < g.rows; y++ {
		for x := 0; x < g.cols; x++ {
			var sum float64
			for k, kv := range kernel {
				sum += kv * tmp.At(x, reflectIndex(y+k-radius, g.rows))
			}
			out.Set(x, y, sum)
		}
	}
	return out
}

// gaussianKernel returns a normalized 1-D Gaussian kernel of radius
// int(4*sigma + 0.5).
func gaussianKernel(sigma float64) []float64 {
	radius := int(4*sigma + 0.5)
	kernel := make([]float64, 2*radius+1)
	var sum float64
	for i := range kernel {
		d := float64(i - radius)
		kernel[i] = math.Exp(-d * d / (2 * sigma * sigma))
		sum += kernel[i]
	}
	for i := range kernel {
		kernel[i] /= sum
	}
	return kernel
}

// reflectIndex maps an out-of-range index into [0,n) by mirroring at the
// borders (half-sample symmetric: -1 -> 0, -2 -> 1, n -> n-1).
func reflectIndex(i, n int) int {
	for i < 0 || i >= n {
		if i < 0 {
			i = -i - 1
		} else {
			i = 2*n - 1 - i
		}
	}
	return i
}
