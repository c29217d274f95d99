package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/posterlab/layoutheat/internal/dataset"
	"github.com/posterlab/layoutheat/internal/heatmap"
	"github.com/posterlab/layoutheat/internal/render"
)

func newRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render <prompt-or-jsonl>",
		Short: "Render the heat grids of one prompt or dataset row as PNGs",
		Long: `Render parses the tagged grid lines of a prompt text file, or of one
record of a heat JSONL file (selected with --index), and writes one PNG
per tag.`,
		Args: cobra.ExactArgs(1),
		RunE: runRender,
	}
	addGridFlags(cmd)
	cmd.Flags().String("out-dir", ".", "output directory for <tag>.png files")
	cmd.Flags().Int("cell-size", render.DefaultCellSize, "rendered pixels per grid cell")
	cmd.Flags().Int("index", 0, "record index when the input is a JSONL file")
	return cmd
}

func runRender(cmd *cobra.Command, args []string) error {
	log := loggerFromCmd(cmd)
	flags := cmd.Flags()
	outDir, _ := flags.GetString("out-dir")
	cellSize, _ := flags.GetInt("cell-size")
	recordIndex, _ := flags.GetInt("index")

	cols, rows, err := gridFromFlags(cmd)
	if err != nil {
		return err
	}

	raw, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}

	grids, err := parseGrids(raw, cols*rows, recordIndex)
	if err != nil {
		return err
	}
	if len(grids) == 0 {
		return fmt.Errorf("no grid lines with %d values found in %s", cols*rows, args[0])
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", outDir, err)
	}
	for tag, values := range grids {
		g := heatmap.GridFromValues(cols, rows, values)
		path := filepath.Join(outDir, tag+".png")
		if err := render.SavePNG(render.Heatmap(g, cellSize), path); err != nil {
			return err
		}
		log.Info("rendered grid", "tag", tag, "path", path)
	}
	return nil
}

// parseGrids handles both input forms: a JSONL dataset (lines starting
// with '{') or a plain prompt text block.
func parseGrids(raw []byte, cells, recordIndex int) (map[string][]float64, error) {
	text := strings.TrimSpace(string(raw))
	if !strings.HasPrefix(text, "{") {
		return dataset.ParsePromptText(text, cells), nil
	}
	lines := strings.Split(text, "\n")
	if recordIndex < 0 || recordIndex >= len(lines) {
		return nil, fmt.Errorf("record index %d out of range (%d records)", recordIndex, len(lines))
	}
	return dataset.ParseRecord([]byte(lines[recordIndex]), cells)
}
