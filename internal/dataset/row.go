package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/posterlab/layoutheat/internal/heatmap"
)

// FrameHeader declares the coordinate space of every row: percentages of
// a 100×100 frame.
const FrameHeader = "FRAME_PCT 100 100"

// Prompt markers and the default system prompts for the two dataset
// flavours.
const (
	LayoutPromptMarker    = "<LAYOUT_HEAT>"
	ImageDecoPromptMarker = "<IMAGE_HEAT>"

	LayoutSystemPrompt    = LayoutPromptMarker + " Predict bounding boxes."
	ImageDecoSystemPrompt = ImageDecoPromptMarker + " Predict image & decoration layout."
)

// Message is one turn of a fine-tuning record.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Record is the three-turn exchange persisted per document.
type Record struct {
	Messages []Message `json:"messages"`
}

// NewRecord wraps a user content block in the three-turn record shape.
// The assistant turn is intentionally empty.
func NewRecord(system, user string) Record {
	return Record{Messages: []Message{
		{Role: "system", Content: system},
		{Role: "user", Content: user},
		{Role: "assistant", Content: ""},
	}}
}

// FormatValue renders one grid value with exactly one decimal digit.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

// GridLine flattens a grid row-major into "<tag> v0 v1 ...".
func GridLine(tag string, g *heatmap.Grid) string {
	var b strings.Builder
	b.WriteString(tag)
	for _, v := range g.Flatten() {
		b.WriteByte(' ')
		b.WriteString(FormatValue(v))
	}
	return b.String()
}

// UserBlock serializes a heatmap row: the frame declaration followed by
// one line per category in the row's fixed emission order.
func UserBlock(row *heatmap.HeatmapRow) string {
	lines := make([]string, 0, len(row.Categories())+1)
	lines = append(lines, FrameHeader)
	for _, c := range row.Categories() {
		lines = append(lines, GridLine(c.Tag(), row.Grid(c)))
	}
	return strings.Join(lines, "\n")
}

// RepeatedBlock serializes one grid under every tag of a category set.
// Used by the content-occupancy mode, which has no notion of category
// but must fill every slot of the prompt.
func RepeatedBlock(g *heatmap.Grid, categories heatmap.CategorySet) string {
	lines := make([]string, 0, categories.Len()+1)
	lines = append(lines, FrameHeader)
	for _, c := range categories.Categories() {
		lines = append(lines, GridLine(c.Tag(), g))
	}
	return strings.Join(lines, "\n")
}

// EncodeRecord appends the record as one JSONL line. HTML escaping is
// disabled so prompt markers like <LAYOUT_HEAT> survive byte-for-byte.
func EncodeRecord(w io.Writer, rec Record) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(rec); err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}
	return nil
}

// MarshalRecord returns the record's JSONL line including the trailing
// newline.
func MarshalRecord(rec Record) ([]byte, error) {
	var buf bytes.Buffer
	if err := EncodeRecord(&buf, rec); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
