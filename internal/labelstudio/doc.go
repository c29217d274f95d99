// Package labelstudio reads and writes Label Studio annotation JSON.
//
// Label Studio exports tasks under three different layouts depending on
// how the export was produced:
//
//   - bulk flat export: a top-level "result" list
//   - per-file export: "annotation.result"
//   - bulk nested export: "annotations[0].result"
//
// ResolveResults probes the three layouts in that fixed priority order;
// the first structurally present list wins. A task matching none of them
// fails with a SchemaError.
//
// Rectangle results carry percentage coordinates in value.x/y/width/height
// with the label in value.rectanglelabels[0]. Polygon results carry
// value.points as [x%, y%] pairs plus original_width/original_height pixel
// dimensions on the result record itself.
package labelstudio
