package labelstudio

import (
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/posterlab/layoutheat/internal/heatmap"
)

// SchemaError reports a task that matches none of the recognized export
// layouts. It is fatal for that task only; the caller decides whether to
// skip it or abort the batch.
type SchemaError struct {
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("labelstudio: %s", e.Reason)
}

// ResolveResults locates the geometric result list of a task regardless
// of export layout. The three layouts are checked in fixed priority
// order: top-level "result", then "annotation.result", then
// "annotations[0].result". Absence of all three is a SchemaError, never
// a silent empty list.
func ResolveResults(task gjson.Result) ([]gjson.Result, error) {
	for _, path := range []string{"result", "annotation.result", "annotations.0.result"} {
		if r := task.Get(path); r.IsArray() {
			return r.Array(), nil
		}
	}
	return nil, &SchemaError{Reason: "no result list found in task"}
}

// RawAnnotation is one geometric result with its label still unmapped.
// Label canonicalization against the active category set happens in the
// caller, so a pipeline run can restrict the categories of interest.
type RawAnnotation struct {
	Label string
	Shape heatmap.Shape
}

// ParseTask extracts all rectangle and polygon annotations from one
// JSON-decoded task. Results that are neither rectangles nor polygons
// (relations, choices, ...) are ignored. Returns a SchemaError when the
// task exposes no result list at all.
func ParseTask(raw []byte) ([]RawAnnotation, error) {
	results, err := ResolveResults(gjson.ParseBytes(raw))
	if err != nil {
		return nil, err
	}

	var out []RawAnnotation
	for _, r := range results {
		value := r.Get("value")
		if !value.Exists() {
			continue
		}
		if label := value.Get("rectanglelabels.0"); label.Exists() {
			out = append(out, RawAnnotation{
				Label: label.String(),
				Shape: heatmap.Box{
					X:      value.Get("x").Float(),
					Y:      value.Get("y").Float(),
					Width:  value.Get("width").Float(),
					Height: value.Get("height").Float(),
				},
			})
			continue
		}
		if label := value.Get("polygonlabels.0"); label.Exists() {
			var points []heatmap.Point
			for _, p := range value.Get("points").Array() {
				pair := p.Array()
				if len(pair) != 2 {
					continue
				}
				points = append(points, heatmap.Point{X: pair[0].Float(), Y: pair[1].Float()})
			}
			out = append(out, RawAnnotation{
				Label: label.String(),
				Shape: heatmap.Polygon{
					Points:      points,
					PixelWidth:  int(r.Get("original_width").Int()),
					PixelHeight: int(r.Get("original_height").Int()),
				},
			})
		}
	}
	return out, nil
}

// Document canonicalizes raw annotations against a category set and
// assembles the pipeline document. Unrecognized labels are dropped; the
// count of dropped annotations is returned for logging.
func Document(annotations []RawAnnotation, categories heatmap.CategorySet) (heatmap.Document, int) {
	doc := heatmap.Document{}
	skipped := 0
	for _, a := range annotations {
		c, ok := categories.Canonical(a.Label)
		if !ok {
			skipped++
			continue
		}
		doc.Annotations = append(doc.Annotations, heatmap.Annotation{Category: c, Shape: a.Shape})
	}
	return doc, skipped
}
