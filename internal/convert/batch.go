// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/abstract-extractor/internal/abstract"
	"github.com/pdiddy/abstract-extractor/pkg/types"
)

// BatchResult holds the outcome of a batch run.
type BatchResult struct {
	Extracted int
	Skipped   int
	NotFound  int
	Failed    int
}

// Total returns the number of PDFs processed.
func (r BatchResult) Total() int {
	return r.Extracted + r.Skipped + r.NotFound + r.Failed
}

// HasFailures reports whether any PDF failed or had no abstract.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0 || r.NotFound > 0
}

// BatchOptions controls ConvertBatch.
type BatchOptions struct {
	// OutDir receives the generated PDFs. Empty means next to each input.
	OutDir string

	// Jobs bounds how many PDFs are processed at once (default 1).
	Jobs int

	// Metadata writes a YAML sidecar for each output.
	Metadata bool
}

// DiscoverPDFs lists the PDFs directly inside dir in name order, leaving out
// outputs of earlier runs.
func DiscoverPDFs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", dir, abstract.ErrInputNotFound)
		}
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}

	var paths []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		if !strings.EqualFold(filepath.Ext(name), ".pdf") {
			continue
		}
		if strings.HasSuffix(stem(name), outputSuffix) {
			continue
		}
		paths = append(paths, filepath.Join(dir, name))
	}
	sort.Strings(paths)
	return paths, nil
}

// ConvertBatch processes every path, printing one status line per PDF to w
// followed by a summary. PDFs whose output already exists are skipped. A
// failing PDF does not stop the others; only cancellation of ctx does.
func (c *Converter) ConvertBatch(ctx context.Context, paths []string, opts BatchOptions, w io.Writer) BatchResult {
	var (
		mu     sync.Mutex
		result BatchResult
	)
	report := func(status types.ExtractionStatus, line string) {
		mu.Lock()
		defer mu.Unlock()
		switch status {
		case types.StatusExtracted:
			result.Extracted++
		case types.StatusSkipped:
			result.Skipped++
		case types.StatusNotFound:
			result.NotFound++
		default:
			result.Failed++
		}
		fmt.Fprintln(w, line)
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = 1
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	for _, p := range paths {
		p := p
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			base := stem(p)
			out := DefaultOutputPath(p, opts.OutDir)
			if _, err := os.Stat(out); err == nil {
				report(types.StatusSkipped, fmt.Sprintf("skipped:   %s (already exists)", base))
				return nil
			}

			paper, err := c.ConvertPaper(gctx, p, Options{OutputPath: out, Metadata: opts.Metadata})
			switch paper.Status {
			case types.StatusExtracted:
				report(paper.Status, fmt.Sprintf("extracted: %s (%s, %d chars)", base, paper.Abstract.Method, len([]rune(paper.Abstract.Text))))
			case types.StatusNotFound:
				report(paper.Status, fmt.Sprintf("not found: %s", base))
			default:
				report(paper.Status, fmt.Sprintf("failed:    %s (%v)", base, err))
			}
			return nil
		})
	}
	_ = g.Wait()

	fmt.Fprintf(w, "\nBatch summary: %d extracted, %d skipped, %d not found, %d failed (total: %d)\n",
		result.Extracted, result.Skipped, result.NotFound, result.Failed, result.Total())
	return result
}
