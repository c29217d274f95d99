package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/posterlab/layoutheat/internal/labelstudio"
	"github.com/posterlab/layoutheat/internal/ocr"
	"github.com/posterlab/layoutheat/internal/render"
)

func newConvertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert <image>...",
		Short: "Seed Label Studio tasks from OCR-detected text regions",
		Long: `Convert runs OCR on poster images and writes one importable Label Studio
task per image, with each detected word as a percentage-coordinate
rectangle. Requires a system Tesseract installation.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runConvert,
	}
	cmd.Flags().String("out-dir", ".", "output directory for task files")
	cmd.Flags().String("lang", "eng", "Tesseract language code")
	cmd.Flags().String("label", "text", "rectangle label assigned to OCR boxes")
	cmd.Flags().String("base-url", "", "URL prefix for the task's image reference")
	cmd.Flags().Float64("min-confidence", 0, "drop words below this OCR confidence (0..1)")
	return cmd
}

func runConvert(cmd *cobra.Command, args []string) error {
	log := loggerFromCmd(cmd)
	flags := cmd.Flags()
	outDir, _ := flags.GetString("out-dir")
	lang, _ := flags.GetString("lang")
	label, _ := flags.GetString("label")
	baseURL, _ := flags.GetString("base-url")
	minConfidence, _ := flags.GetFloat64("min-confidence")

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", outDir, err)
	}

	for _, imagePath := range args {
		img, err := render.OpenImage(imagePath)
		if err != nil {
			return err
		}
		width := img.Bounds().Dx()
		height := img.Bounds().Dy()

		words, err := ocr.WordBoxes(imagePath, lang)
		if err != nil {
			return fmt.Errorf("%s: %w", imagePath, err)
		}

		boxes := make([]labelstudio.RegionBox, 0, len(words))
		for _, w := range words {
			if w.Confidence < minConfidence {
				continue
			}
			boxes = append(boxes, w.Region(width, height, label))
		}

		name := filepath.Base(imagePath)
		imageRef := name
		if baseURL != "" {
			imageRef = strings.TrimRight(baseURL, "/") + "/" + name
		}
		body, err := labelstudio.ExportTask(imageRef, boxes)
		if err != nil {
			return err
		}

		stem := strings.TrimSuffix(name, filepath.Ext(name))
		outPath := filepath.Join(outDir, stem+"_labelstudio.json")
		if err := os.WriteFile(outPath, body, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", outPath, err)
		}
		log.Info("converted image", "image", name, "boxes", len(boxes), "task", outPath)
	}
	return nil
}
