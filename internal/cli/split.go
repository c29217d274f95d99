package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/posterlab/layoutheat/internal/labelstudio"
)

func newSplitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "split <bulk-export.json>",
		Short: "Split a bulk export into per-annotation JSON files",
		Long: `Split explodes a Label Studio bulk export (one JSON array of tasks) into
one file per annotation, named annotation_<task>_<id>.json, in the
per-file layout the build command consumes.`,
		Args: cobra.ExactArgs(1),
		RunE: runSplit,
	}
	cmd.Flags().String("out-dir", "", "output directory for the split files")
	_ = cmd.MarkFlagRequired("out-dir")
	return cmd
}

func runSplit(cmd *cobra.Command, args []string) error {
	log := loggerFromCmd(cmd)
	outDir, _ := cmd.Flags().GetString("out-dir")

	raw, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}
	entries, err := labelstudio.SplitBulkExport(raw)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", outDir, err)
	}
	for _, e := range entries {
		path := filepath.Join(outDir, e.FileName)
		if err := os.WriteFile(path, e.Body, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		log.Debug("wrote annotation", "task", e.TaskID, "annotation", e.AnnotationID, "path", path)
	}
	log.Info("split bulk export", "annotations", len(entries), "out", outDir)
	return nil
}
