// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/abstract-extractor/internal/convert"
)

var batchCmd = &cobra.Command{
	Use:   "batch <dir>",
	Short: "Extract abstracts from every PDF in a directory",
	Long: `Batch processes every *.pdf directly inside dir, skipping earlier
*_abstract.pdf outputs. A PDF whose output already exists is skipped, so an
interrupted batch can be rerun. One status line is printed per PDF, followed
by a summary. The command fails if any PDF failed or had no abstract.`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func runBatch(cmd *cobra.Command, args []string) error {
	outDir, _ := cmd.Flags().GetString("out-dir")
	jobs, _ := cmd.Flags().GetInt("jobs")
	metadata, _ := cmd.Flags().GetBool("metadata")

	paths, err := convert.DiscoverPDFs(args[0])
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No PDFs found in %s\n", args[0])
		return nil
	}

	conv, done, err := newConverter(cfg)
	if err != nil {
		return err
	}
	defer done()

	result := conv.ConvertBatch(cmd.Context(), paths, convert.BatchOptions{
		OutDir:   outDir,
		Jobs:     jobs,
		Metadata: metadata,
	}, cmd.OutOrStdout())
	if err := cmd.Context().Err(); err != nil {
		return err
	}
	if result.HasFailures() {
		return fmt.Errorf("%d of %d PDF(s) failed or had no abstract", result.Failed+result.NotFound, result.Total())
	}
	return nil
}

func init() {
	batchCmd.Flags().String("out-dir", "", "directory for generated PDFs (default: next to each input)")
	batchCmd.Flags().IntP("jobs", "j", 1, "number of PDFs processed in parallel")
	batchCmd.Flags().Bool("metadata", false, "write a YAML sidecar next to each output PDF")

	rootCmd.AddCommand(batchCmd)
}
