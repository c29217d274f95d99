package heatmap

import "fmt"

// Default grid resolution and blur radius. Portrait posters map well
// onto 12 columns by 21 rows.
const (
	DefaultCols  = 12
	DefaultRows  = 21
	DefaultSigma = 1.0
)

// Config parameterizes one pipeline run. It is passed explicitly into
// NewPipeline; there are no process-wide mutable defaults.
type Config struct {
	// Cols and Rows are the grid resolution (columns × rows).
	Cols int
	Rows int

	// Sigma is the Gaussian blur radius in grid-cell units. Zero
	// disables blurring.
	Sigma float64

	// Categories is the active category set; labels outside it are
	// skipped. The set's order is the emission order.
	Categories CategorySet
}

// DefaultConfig returns the standard layout-dataset configuration:
// 12×21 grid, sigma 1.0, text-layout categories.
func DefaultConfig() Config {
	return Config{
		Cols:       DefaultCols,
		Rows:       DefaultRows,
		Sigma:      DefaultSigma,
		Categories: LayoutCategories,
	}
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	if c.Cols <= 0 || c.Rows <= 0 {
		return fmt.Errorf("grid dimensions must be positive, got %dx%d", c.Cols, c.Rows)
	}
	if c.Sigma < 0 {
		return fmt.Errorf("sigma must be non-negative, got %g", c.Sigma)
	}
	if c.Categories.Len() == 0 {
		return fmt.Errorf("category set is empty")
	}
	return nil
}

// Annotation is one (category, shape) pair owned by a document.
type Annotation struct {
	Category Category
	Shape    Shape
}

// Document is one annotation task: its shapes, already canonicalized
// against the active category set.
type Document struct {
	Annotations []Annotation
}

// HeatmapRow is the per-document output: one quantized grid per category
// in the configured emission order. Write-once; serialized by the
// dataset package.
type HeatmapRow struct {
	categories CategorySet
	grids      map[Category]*Grid
}

// Categories returns the emission order.
func (r *HeatmapRow) Categories() []Category { return r.categories.Categories() }

// Grid returns the quantized grid for a category. Every category in the
// set has a grid, all-zero when no shapes matched.
func (r *HeatmapRow) Grid(c Category) *Grid { return r.grids[c] }

// Pipeline converts documents into heatmap rows. It is stateless and
// safe for concurrent use across documents.
type Pipeline struct {
	cfg Config
}

// NewPipeline validates the configuration and returns a pipeline.
func NewPipeline(cfg Config) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid pipeline config: %w", err)
	}
	return &Pipeline{cfg: cfg}, nil
}

// Config returns the pipeline's configuration.
func (p *Pipeline) Config() Config { return p.cfg }

// Heatmap unions the contributions of all shapes onto one grid and runs
// the smoothing tail. Polygons without pixel dimensions are skipped.
func (p *Pipeline) Heatmap(shapes []Shape) *Grid {
	acc := NewGrid(p.cfg.Cols, p.cfg.Rows)
	for _, s := range shapes {
		contrib, err := Rasterize(s, p.cfg.Cols, p.cfg.Rows)
		if err != nil {
			continue
		}
		acc.UnionMax(contrib)
	}
	return p.Finish(acc)
}

// Finish applies blur, max-normalization and quantization to an
// aggregated grid. Exposed so the occupancy mode can reuse the tail.
func (p *Pipeline) Finish(g *Grid) *Grid {
	return Quantize(Normalize(Blur(g, p.cfg.Sigma)))
}

// Document produces the per-category heatmap row for one document.
func (p *Pipeline) Document(doc Document) *HeatmapRow {
	byCategory := make(map[Category][]Shape)
	for _, a := range doc.Annotations {
		byCategory[a.Category] = append(byCategory[a.Category], a.Shape)
	}
	row := &HeatmapRow{
		categories: p.cfg.Categories,
		grids:      make(map[Category]*Grid, p.cfg.Categories.Len()),
	}
	for _, c := range p.cfg.Categories.Categories() {
		row.grids[c] = p.Heatmap(byCategory[c])
	}
	return row
}
