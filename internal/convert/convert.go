// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert drives abstract extraction for one PDF or a directory of
// them: validate the input, read the text of its leading pages, detect the
// abstract, and render it into a standalone PDF.
package convert

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/abstract-extractor/internal/abstract"
	"github.com/pdiddy/abstract-extractor/internal/pdftext"
	"github.com/pdiddy/abstract-extractor/internal/render"
	"github.com/pdiddy/abstract-extractor/pkg/types"
)

const (
	// outputSuffix is appended to the input stem to name the output PDF.
	outputSuffix = "_abstract"

	heading = "Abstract"
)

// Recorder receives the outcome of every run. The run catalog implements it.
type Recorder interface {
	Record(ctx context.Context, paper types.Paper) error
}

// Options controls a single conversion.
type Options struct {
	// OutputPath is the generated PDF. Empty means DefaultOutputPath(input, "").
	OutputPath string

	// Title overrides the rendered title "Abstract from <stem>".
	Title string

	// TextOut, when set, receives the abstract text instead of a PDF being
	// rendered.
	TextOut io.Writer

	// Metadata writes a YAML sidecar next to the output PDF.
	Metadata bool
}

// Converter runs the extraction pipeline. It holds no per-run state and is
// safe for concurrent use when its collaborators are.
type Converter struct {
	reader    pdftext.Reader
	extractor *abstract.Extractor
	renderer  render.Renderer
	maxPages  int
	recorder  Recorder
	validate  func(path string) error
	now       func() time.Time
}

// New returns a Converter reading at most maxPages leading pages.
func New(reader pdftext.Reader, extractor *abstract.Extractor, renderer render.Renderer, maxPages int) *Converter {
	if maxPages <= 0 {
		maxPages = types.DefaultMaxPages
	}
	return &Converter{
		reader:    reader,
		extractor: extractor,
		renderer:  renderer,
		maxPages:  maxPages,
		validate:  pdftext.Validate,
		now:       time.Now,
	}
}

// WithRecorder makes c report every run to r.
func (c *Converter) WithRecorder(r Recorder) *Converter {
	c.recorder = r
	return c
}

// DefaultOutputPath names the output for input: <stem>_abstract.pdf in outDir,
// or next to the input when outDir is empty.
func DefaultOutputPath(input, outDir string) string {
	if outDir == "" {
		outDir = filepath.Dir(input)
	}
	return filepath.Join(outDir, stem(input)+outputSuffix+".pdf")
}

// DefaultTitle is the title rendered when none is given.
func DefaultTitle(input string) string {
	return "Abstract from " + stem(input)
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// ConvertPaper extracts the abstract of the PDF at input and writes it out as
// opts directs. The returned Paper describes the run even on failure.
// Failures wrap one of the abstract.Err* kinds where one applies.
func (c *Converter) ConvertPaper(ctx context.Context, input string, opts Options) (types.Paper, error) {
	paper := types.Paper{
		ID:      stem(input),
		PDFPath: input,
		Title:   opts.Title,
		Status:  types.StatusFailed,
	}
	if paper.Title == "" {
		paper.Title = DefaultTitle(input)
	}
	if opts.TextOut == nil {
		paper.OutputPath = opts.OutputPath
		if paper.OutputPath == "" {
			paper.OutputPath = DefaultOutputPath(input, "")
		}
	}

	err := c.run(input, opts, &paper)
	switch {
	case err == nil:
		paper.Status = types.StatusExtracted
	case abstract.IsSoft(err):
		paper.Status = types.StatusNotFound
	}
	paper.ExtractedAt = c.now().UTC()

	if c.recorder != nil {
		if rerr := c.recorder.Record(ctx, paper); rerr != nil {
			slog.Warn("recording run in catalog", "file", input, "error", rerr)
		}
	}
	return paper, err
}

func (c *Converter) run(input string, opts Options, paper *types.Paper) error {
	log := slog.With("file", input)

	if err := c.validate(input); err != nil {
		return err
	}

	log.Debug("reading page text", "max_pages", c.maxPages)
	pages, err := c.reader.Pages(input, c.maxPages)
	if err != nil {
		return fmt.Errorf("reading text from %s: %w", input, err)
	}
	paper.PagesScanned = len(pages)
	if blank(pages) {
		return fmt.Errorf("%s: %w", input, abstract.ErrNoExtractableText)
	}

	a, ok := c.extractor.Extract(pages)
	if !ok {
		return fmt.Errorf("%s: %w", input, abstract.ErrNoAbstractFound)
	}
	paper.Abstract = a
	log.Info("abstract found", "method", a.Method, "label", a.Label, "chars", len([]rune(a.Text)))

	if opts.TextOut != nil {
		if _, err := fmt.Fprintln(opts.TextOut, a.Text); err != nil {
			return fmt.Errorf("writing abstract text: %w: %v", abstract.ErrOutputWriteFailed, err)
		}
		return nil
	}

	doc := render.Document{Title: paper.Title, Heading: heading, Body: a.Text}
	if err := render.WriteFile(c.renderer, paper.OutputPath, doc); err != nil {
		return err
	}
	log.Debug("wrote abstract PDF", "output", paper.OutputPath)

	if opts.Metadata {
		if err := writeSidecar(*paper, c.now().UTC()); err != nil {
			return err
		}
	}
	return nil
}

func blank(pages []string) bool {
	for _, p := range pages {
		if strings.TrimSpace(p) != "" {
			return false
		}
	}
	return true
}

// SidecarPath is the metadata file written beside output.
func SidecarPath(output string) string {
	return strings.TrimSuffix(output, filepath.Ext(output)) + ".yaml"
}

func writeSidecar(paper types.Paper, at time.Time) error {
	paper.Status = types.StatusExtracted
	paper.ExtractedAt = at
	data, err := yaml.Marshal(&paper)
	if err != nil {
		return fmt.Errorf("marshaling metadata: %w", err)
	}
	path := SidecarPath(paper.OutputPath)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing metadata %s: %w: %v", path, abstract.ErrOutputWriteFailed, err)
	}
	return nil
}
