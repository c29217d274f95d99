// Package cli wires the layoutheat commands. Each command corresponds
// to one step of the poster-layout dataset workflow: building heat
// datasets from annotations, deriving occupancy priors from images,
// inspecting aggregates, rendering grids, and preparing Label Studio
// projects.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/posterlab/layoutheat/internal/dataset"
	"github.com/posterlab/layoutheat/internal/heatmap"
	"github.com/posterlab/layoutheat/internal/logging"
)

// Version is set by ldflags during release builds.
var Version = "dev"

// NewRootCmd assembles the command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "layoutheat",
		Short:         "Convert Label Studio poster annotations into heat-map training rows",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("log-level", "info", "log level: debug, info, warn, error")

	root.AddCommand(
		newBuildCmd(),
		newOccupancyCmd(),
		newAggregateCmd(),
		newRenderCmd(),
		newSplitCmd(),
		newConvertCmd(),
	)
	return root
}

// loggerFromCmd builds the command logger from the persistent flag.
func loggerFromCmd(cmd *cobra.Command) logging.Logger {
	level, err := cmd.Flags().GetString("log-level")
	if err != nil {
		level = "info"
	}
	return logging.New(level)
}

// addGridFlags registers the shared grid-resolution flags.
func addGridFlags(cmd *cobra.Command) {
	cmd.Flags().Int("cols", heatmap.DefaultCols, "grid columns")
	cmd.Flags().Int("rows", heatmap.DefaultRows, "grid rows")
}

func gridFromFlags(cmd *cobra.Command) (cols, rows int, err error) {
	if cols, err = cmd.Flags().GetInt("cols"); err != nil {
		return 0, 0, err
	}
	if rows, err = cmd.Flags().GetInt("rows"); err != nil {
		return 0, 0, err
	}
	return cols, rows, nil
}

// resolveCategories maps a preset name (plus an optional explicit label
// list) onto the active category set and its default system prompt.
func resolveCategories(preset string, labels []string) (heatmap.CategorySet, string, error) {
	if len(labels) > 0 {
		return heatmap.NewCategorySet(labels...), dataset.LayoutSystemPrompt, nil
	}
	switch preset {
	case "layout":
		return heatmap.LayoutCategories, dataset.LayoutSystemPrompt, nil
	case "imagedeco":
		return heatmap.ImageDecoCategories, dataset.ImageDecoSystemPrompt, nil
	default:
		return heatmap.CategorySet{}, "", fmt.Errorf("unknown preset %q (want layout or imagedeco)", preset)
	}
}
