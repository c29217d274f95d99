package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/posterlab/layoutheat/internal/dataset"
	"github.com/posterlab/layoutheat/internal/heatmap"
)

func newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Batch-convert annotation tasks into heat-map JSONL rows",
		Long: `Build reads Label Studio annotation tasks (a directory of per-task JSON
files, or one bulk export with --bulk), converts each task's rectangles
and polygons into blurred, normalized per-category heat grids, and
writes one fine-tuning record per task.`,
		RunE: runBuild,
	}
	cmd.Flags().String("src", "", "directory of per-task JSONs, or a bulk export file with --bulk")
	cmd.Flags().String("dst", "", "output JSONL file")
	cmd.Flags().Bool("bulk", false, "treat --src as a single bulk-export JSON array")
	addGridFlags(cmd)
	cmd.Flags().Float64("sigma", heatmap.DefaultSigma, "Gaussian blur radius in grid cells (0 disables)")
	cmd.Flags().String("preset", "layout", "category preset: layout or imagedeco")
	cmd.Flags().StringSlice("labels", nil, "explicit category list, overrides --preset")
	cmd.Flags().String("system", "", "system prompt override")
	cmd.Flags().Int("workers", 0, "concurrent documents (0 = number of CPUs)")
	cmd.Flags().Bool("strict", false, "abort the batch on the first schema failure")
	_ = cmd.MarkFlagRequired("src")
	_ = cmd.MarkFlagRequired("dst")
	return cmd
}

func runBuild(cmd *cobra.Command, _ []string) error {
	log := loggerFromCmd(cmd)
	flags := cmd.Flags()

	src, _ := flags.GetString("src")
	dst, _ := flags.GetString("dst")
	bulk, _ := flags.GetBool("bulk")
	sigma, _ := flags.GetFloat64("sigma")
	preset, _ := flags.GetString("preset")
	labels, _ := flags.GetStringSlice("labels")
	system, _ := flags.GetString("system")
	workers, _ := flags.GetInt("workers")
	strict, _ := flags.GetBool("strict")

	cols, rows, err := gridFromFlags(cmd)
	if err != nil {
		return err
	}
	categories, defaultSystem, err := resolveCategories(preset, labels)
	if err != nil {
		return err
	}
	if system == "" {
		system = defaultSystem
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

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}
	defer out.Close()

	builder := &dataset.Builder{
		Pipeline: pipe,
		System:   system,
		Log:      log,
		Workers:  workers,
		Strict:   strict,
	}
	n, err := builder.Run(src, bulk, out)
	if err != nil {
		return err
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to finalize %s: %w", dst, err)
	}
	log.Info("wrote dataset", "rows", n, "dst", dst)
	return nil
}
