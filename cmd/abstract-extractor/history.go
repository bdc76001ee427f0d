// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/abstract-extractor/internal/catalog"
	"github.com/pdiddy/abstract-extractor/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List or export past runs from the catalog",
	Long: `History reads the run catalog kept under catalog.dir when runs are made
with --catalog (or catalog.enabled: true). Runs are listed newest first as a
table, or exported as YAML or JSON.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	status, _ := cmd.Flags().GetString("status")
	paperID, _ := cmd.Flags().GetString("paper")
	contains, _ := cmd.Flags().GetString("contains")
	limit, _ := cmd.Flags().GetInt("limit")

	store, err := catalog.Open(cfg.Catalog)
	if err != nil {
		return err
	}
	defer store.Close()

	opts := catalog.QueryOptions{
		Status:   types.ExtractionStatus(status),
		PaperID:  paperID,
		Contains: contains,
		Limit:    limit,
	}

	switch format {
	case "table", "":
		entries, err := store.List(cmd.Context(), opts)
		if err != nil {
			return err
		}
		printHistory(cmd.OutOrStdout(), entries)
		return nil
	case string(catalog.FormatYAML), string(catalog.FormatJSON):
		return store.Export(cmd.Context(), cmd.OutOrStdout(), catalog.Format(format), opts)
	default:
		return fmt.Errorf("unsupported format %q: use table, yaml, or json", format)
	}
}

func printHistory(w io.Writer, entries []catalog.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return
	}

	fmt.Fprintf(w, "%-20s  %-24s  %-10s  %-8s  %s\n", "When", "Paper", "Status", "Method", "Abstract")
	fmt.Fprintln(w, strings.Repeat("-", 110))
	for _, e := range entries {
		fmt.Fprintf(w, "%-20s  %-24s  %-10s  %-8s  %s\n",
			e.ExtractedAt.Local().Format("2006-01-02 15:04:05"),
			clip(e.ID, 24), e.Status, e.Abstract.Method, clip(e.Abstract.Text, 40))
	}
	fmt.Fprintf(w, "\n%d runs\n", len(entries))
}

// clip shortens s to n runes, marking the cut with "...".
func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func init() {
	historyCmd.Flags().String("format", "table", "output format: table, yaml, or json")
	historyCmd.Flags().String("status", "", "filter by status: extracted, not_found, or failed")
	historyCmd.Flags().String("paper", "", "filter by paper ID (input file stem)")
	historyCmd.Flags().String("contains", "", "filter by text contained in the abstract")
	historyCmd.Flags().Int("limit", 20, "maximum runs to show")

	rootCmd.AddCommand(historyCmd)
}
