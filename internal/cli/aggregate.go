package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/posterlab/layoutheat/internal/dataset"
	"github.com/posterlab/layoutheat/internal/heatmap"
	"github.com/posterlab/layoutheat/internal/render"
)

func newAggregateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "aggregate",
		Short: "Average the heat grids of a dataset for inspection",
		Long: `Aggregate reads a heat JSONL file and computes the arithmetic mean grid
per category tag across all documents. Means can be printed as tagged
text lines and rendered as one PNG per tag.`,
		RunE: runAggregate,
	}
	cmd.Flags().String("jsonl", "", "input heat JSONL file")
	addGridFlags(cmd)
	cmd.Flags().String("out-dir", "", "write one <tag>.png per category into this directory")
	cmd.Flags().Int("cell-size", render.DefaultCellSize, "rendered pixels per grid cell")
	cmd.Flags().Bool("print", false, "print mean grids as tagged text lines")
	_ = cmd.MarkFlagRequired("jsonl")
	return cmd
}

func runAggregate(cmd *cobra.Command, _ []string) error {
	log := loggerFromCmd(cmd)
	flags := cmd.Flags()
	jsonlPath, _ := flags.GetString("jsonl")
	outDir, _ := flags.GetString("out-dir")
	cellSize, _ := flags.GetInt("cell-size")
	printText, _ := flags.GetBool("print")

	cols, rows, err := gridFromFlags(cmd)
	if err != nil {
		return err
	}

	f, err := os.Open(jsonlPath)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", jsonlPath, err)
	}
	defer f.Close()

	acc := heatmap.NewAccumulator(cols, rows)
	err = dataset.ReadRecords(f, cols*rows, func(_ int, grids map[string][]float64) error {
		return acc.AddDocument(grids)
	})
	if err != nil {
		return err
	}
	if acc.Docs() == 0 {
		log.Warn("no documents found", "jsonl", jsonlPath)
		return nil
	}

	mean := acc.Mean()
	if outDir != "" {
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", outDir, err)
		}
	}
	for _, tag := range acc.Tags() {
		if printText {
			fmt.Fprintln(cmd.OutOrStdout(), dataset.GridLine(tag, mean[tag]))
		}
		if outDir != "" {
			path := filepath.Join(outDir, tag+".png")
			if err := render.SavePNG(render.Heatmap(heatmap.Normalize(mean[tag]), cellSize), path); err != nil {
				return err
			}
			log.Debug("rendered mean grid", "tag", tag, "path", path)
		}
	}
	log.Info("aggregated dataset", "documents", acc.Docs(), "tags", len(mean))
	return nil
}
