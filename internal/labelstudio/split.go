package labelstudio

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
)

// SplitEntry is one annotation lifted out of a bulk export, wrapped in
// the per-file layout the dataset builders consume.
type SplitEntry struct {
	TaskID       int64
	AnnotationID int64
	FileName     string
	Body         []byte
}

// splitDocument is the on-disk shape of a split annotation file.
type splitDocument struct {
	TaskID       int64           `json:"task_id"`
	AnnotationID int64           `json:"annotation_id"`
	Data         json.RawMessage `json:"data"`
	Annotation   json.RawMessage `json:"annotation"`
}

// SplitBulkExport explodes a bulk export (a JSON array of tasks, each
// possibly holding several annotations) into one entry per annotation.
// File names follow annotation_<task>_<annotation>.json.
func SplitBulkExport(raw []byte) ([]SplitEntry, error) {
	root := gjson.ParseBytes(raw)
	if !root.IsArray() {
		return nil, &SchemaError{Reason: "bulk export is not a JSON array"}
	}

	var entries []SplitEntry
	for _, task := range root.Array() {
		taskID := task.Get("id").Int()
		data := json.RawMessage(`{}`)
		if d := task.Get("data"); d.Exists() {
			data = json.RawMessage(d.Raw)
		}
		for _, ann := range task.Get("annotations").Array() {
			annID := ann.Get("id").Int()
			body, err := json.MarshalIndent(splitDocument{
				TaskID:       taskID,
				AnnotationID: annID,
				Data:         data,
				Annotation:   json.RawMessage(ann.Raw),
			}, "", "  ")
			if err != nil {
				return nil, fmt.Errorf("failed to marshal annotation %d of task %d: %w", annID, taskID, err)
			}
			entries = append(entries, SplitEntry{
				TaskID:       taskID,
				AnnotationID: annID,
				FileName:     fmt.Sprintf("annotation_%d_%d.json", taskID, annID),
				Body:         body,
			})
		}
	}
	return entries, nil
}
