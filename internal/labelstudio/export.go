package labelstudio

import (
	"encoding/json"
	"fmt"
	"math"
)

// RegionBox is one labeled rectangle in percentage coordinates, destined
// for a Label Studio import task.
type RegionBox struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
	Label  string
}

type exportValue struct {
	X               float64  `json:"x"`
	Y               float64  `json:"y"`
	Width           float64  `json:"width"`
	Height          float64  `json:"height"`
	RectangleLabels []string `json:"rectanglelabels"`
}

type exportResult struct {
	FromName string      `json:"from_name"`
	ToName   string      `json:"to_name"`
	Type     string      `json:"type"`
	Value    exportValue `json:"value"`
}

type exportAnnotation struct {
	Result []exportResult `json:"result"`
}

type exportTask struct {
	Data        map[string]string  `json:"data"`
	Annotations []exportAnnotation `json:"annotations"`
}

// round2 trims coordinates to two decimals; sub-hundredth percentage
// precision is noise at any realistic frame size.
func round2(v float64) float64 { return math.Round(v*100) / 100 }

// ExportTask builds an importable Label Studio task: the image URL plus
// one rectangle result per box, in the bulk nested layout.
func ExportTask(imageURL string, boxes []RegionBox) ([]byte, error) {
	results := make([]exportResult, 0, len(boxes))
	for _, b := range boxes {
		results = append(results, exportResult{
			FromName: "label",
			ToName:   "image",
			Type:     "rectanglelabels",
			Value: exportValue{
				X:               round2(b.X),
				Y:               round2(b.Y),
				Width:           round2(b.Width),
				Height:          round2(b.Height),
				RectangleLabels: []string{b.Label},
			},
		})
	}
	task := exportTask{
		Data:        map[string]string{"image": imageURL},
		Annotations: []exportAnnotation{{Result: results}},
	}
	body, err := json.MarshalIndent(task, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal task: %w", err)
	}
	return body, nil
}
