// Package dataset serializes heatmap rows into fine-tuning JSONL records
// and reads them back for inspection tooling.
//
// One record per document:
//
//	{"messages":[
//	  {"role":"system","content":"<LAYOUT_HEAT> Predict bounding boxes."},
//	  {"role":"user","content":"FRAME_PCT 100 100\n<tag>_heat v0 v1 ..."},
//	  {"role":"assistant","content":""}
//	]}
//
// The three-turn shape is a persisted contract: the assistant turn is a
// blank training target and must stay empty. The user content starts with
// the frame declaration line followed by one line per category, values
// one-decimal formatted, row-major. Downstream consumers parse these
// bytes; the format is reproduced exactly, including unescaped angle
// brackets in the system prompt.
package dataset
