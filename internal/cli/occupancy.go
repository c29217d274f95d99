package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/posterlab/layoutheat/internal/dataset"
	"github.com/posterlab/layoutheat/internal/heatmap"
	"github.com/posterlab/layoutheat/internal/occupancy"
	"github.com/posterlab/layoutheat/internal/render"
)

func newOccupancyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "occupancy <image>",
		Short: "Derive a free-space prompt block from a poster image",
		Long: `Occupancy infers a frame-level prior without annotations: pixels darker
than the threshold count as content, the content bounding box is marked
nearly occupied, and the rest of the frame stays free. The grid is
emitted once per category so the block can stand in for a full layout
prompt.`,
		Args: cobra.ExactArgs(1),
		RunE: runOccupancy,
	}
	cmd.Flags().String("out", "", "output file (default stdout)")
	addGridFlags(cmd)
	cmd.Flags().Float64("sigma", 0, "Gaussian blur radius in grid cells")
	cmd.Flags().Uint8("threshold", occupancy.DefaultThreshold, "grayscale cutoff; brighter pixels are background")
	cmd.Flags().String("preset", "layout", "category preset: layout or imagedeco")
	return cmd
}

func runOccupancy(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	out, _ := flags.GetString("out")
	sigma, _ := flags.GetFloat64("sigma")
	threshold, _ := flags.GetUint8("threshold")
	preset, _ := flags.GetString("preset")

	cols, rows, err := gridFromFlags(cmd)
	if err != nil {
		return err
	}
	categories, _, err := resolveCategories(preset, nil)
	if err != nil {
		return err
	}
	pipe, err := heatmap.NewPipeline(heatmap.Config{
		Cols:       cols,
		Rows:       rows,
		Sigma:      sigma,
		Categories: categories,
	})
	if err != nil {
		return err
	}

	img, err := render.OpenImage(args[0])
	if err != nil {
		return err
	}
	grid := pipe.Finish(occupancy.Grid(img, threshold, cols, rows))
	block := dataset.LayoutPromptMarker + "\n" + dataset.RepeatedBlock(grid, categories) + "\n"

	if out == "" {
		_, err = fmt.Fprint(cmd.OutOrStdout(), block)
		return err
	}
	if err := os.WriteFile(out, []byte(block), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}
	return nil
}
