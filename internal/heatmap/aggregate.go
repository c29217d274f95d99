package heatmap

import "fmt"

// Accumulator computes per-tag mean grids across many documents. This is
// the inspection-tooling aggregation mode: element-wise sum divided by
// document count at the end, distinct from the within-document max
// union. An accumulator is scoped to one run and is not safe for
// concurrent use.
type Accumulator struct {
	cols int
	rows int
	sums map[string]*Grid
	tags []string // insertion order
	docs int
}

// NewAccumulator creates an accumulator for cols×rows grids.
func NewAccumulator(cols, rows int) *Accumulator {
	return &Accumulator{
		cols: cols,
		rows: rows,
		sums: make(map[string]*Grid),
	}
}

// AddDocument accumulates one document's tagged grids. Entries whose
// value count does not match the grid size are rejected; the document
// still counts toward the mean denominator once any entry is accepted.
func (a *Accumulator) AddDocument(grids map[string][]float64) error {
	accepted := false
	for tag, values := range grids {
		if len(values) != a.cols*a.rows {
			return fmt.Errorf("tag %q has %d values, want %d", tag, len(values), a.cols*a.rows)
		}
		sum, ok := a.sums[tag]
		if !ok {
			sum = NewGrid(a.cols, a.rows)
			a.sums[tag] = sum
			a.tags = append(a.tags, tag)
		}
		sum.add(GridFromValues(a.cols, a.rows, values))
		accepted = true
	}
	if accepted {
		a.docs++
	}
	return nil
}

// Docs returns the number of accumulated documents.
func (a *Accumulator) Docs() int { return a.docs }

// Tags returns the tags in first-seen order.
func (a *Accumulator) Tags() []string {
	out := make([]string, len(a.tags))
	copy(out, a.tags)
	return out
}

// Mean returns the arithmetic mean grid per tag. Returns nil when no
// documents were accumulated.
func (a *Accumulator) Mean() map[string]*Grid {
	if a.docs == 0 {
		return nil
	}
	out := make(map[string]*Grid, len(a.sums))
	for tag, sum := range a.sums {
		m := sum.Clone()
		m.scale(1 / float64(a.docs))
		out[tag] = m
	}
	return out
}
