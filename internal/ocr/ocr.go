// Package ocr extracts word bounding boxes from poster images using
// Tesseract. The boxes feed the Label Studio task exporter, seeding
// annotation projects with machine-detected text regions.
//
// Tesseract and its language data must be installed on the system
// (e.g. apt-get install tesseract-ocr tesseract-ocr-eng).
package ocr

import (
	"fmt"

	"github.com/otiai10/gosseract/v2"

	"github.com/posterlab/layoutheat/internal/labelstudio"
)

// WordBox is one recognized word with its pixel bounding box.
type WordBox struct {
	Text       string
	Confidence float64 // 0..1
	X1, Y1     int     // top-left, inclusive
	X2, Y2     int     // bottom-right, exclusive
}

// WordBoxes runs OCR on an image file and returns word-level boxes.
// Words with empty text are dropped.
func WordBoxes(imagePath, language string) ([]WordBox, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(language); err != nil {
		return nil, fmt.Errorf("failed to set language: %w", err)
	}
	if err := client.SetImage(imagePath); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return nil, fmt.Errorf("OCR failed: %w", err)
	}

	words := make([]WordBox, 0, len(boxes))
	for _, box := range boxes {
		if box.Word == "" {
			continue
		}
		words = append(words, WordBox{
			Text:       box.Word,
			Confidence: float64(box.Confidence) / 100.0,
			X1:         box.Box.Min.X,
			Y1:         box.Box.Min.Y,
			X2:         box.Box.Max.X,
			Y2:         box.Box.Max.Y,
		})
	}
	return words, nil
}

// Region converts the pixel box into a percentage rectangle for a frame
// of the given pixel dimensions.
func (b WordBox) Region(frameWidth, frameHeight int, label string) labelstudio.RegionBox {
	return labelstudio.RegionBox{
		X:      float64(b.X1) / float64(frameWidth) * 100,
		Y:      float64(b.Y1) / float64(frameHeight) * 100,
		Width:  float64(b.X2-b.X1) / float64(frameWidth) * 100,
		Height: float64(b.Y2-b.Y1) / float64(frameHeight) * 100,
		Label:  label,
	}
}
