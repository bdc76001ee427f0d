// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render lays out extracted abstracts as standalone PDF documents
// using github.com/go-pdf/fpdf. Text is set in an embedded UTF-8 TrueType
// font (the Go fonts by default), so Greek, Cyrillic, and math symbols keep
// their glyphs. The PDF core fonts remain available for Latin-1 text.
package render

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/pdiddy/abstract-extractor/internal/abstract"
	"github.com/pdiddy/abstract-extractor/pkg/types"
)

const (
	creator = "abstract-extractor"

	// lineSpacing is the body leading as a multiple of the font size.
	lineSpacing = 1.3

	ptPerMM = 72.0 / 25.4

	// customFamily names the font loaded from RenderConfig.FontFile.
	customFamily = "custom"
)

// goFonts holds the embedded Go font faces by fpdf style.
var goFonts = map[string][]byte{
	"":  goregular.TTF,
	"B": gobold.TTF,
}

// Document is the content of one generated PDF.
type Document struct {
	// Title is centered at the top of the first page.
	Title string
	// Heading precedes the body, e.g. "Abstract".
	Heading string
	// Body is the abstract text, rendered left-aligned.
	Body string
}

// Renderer writes a Document as PDF bytes.
type Renderer interface {
	Render(w io.Writer, doc Document) error
}

// PDFRenderer renders with fpdf according to a RenderConfig.
type PDFRenderer struct {
	cfg types.RenderConfig
	now func() time.Time
}

// NewPDFRenderer returns a renderer for cfg. Zero fields take their defaults.
func NewPDFRenderer(cfg types.RenderConfig) *PDFRenderer {
	full := types.Config{Render: cfg}
	full.Normalize()
	return &PDFRenderer{cfg: full.Render, now: time.Now}
}

func (r *PDFRenderer) newPDF(title string) *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", r.cfg.PageSize, "")
	m := r.cfg.MarginMM
	pdf.SetMargins(m, m, m)
	pdf.SetAutoPageBreak(true, m)
	pdf.SetCatalogSort(true)
	pdf.SetCreator(creator, true)
	if title != "" {
		pdf.SetTitle(title, true)
	}
	ts := r.now()
	pdf.SetCreationDate(ts)
	pdf.SetModificationDate(ts)
	return pdf
}

// Render implements Renderer.
func (r *PDFRenderer) Render(w io.Writer, doc Document) error {
	pdf := r.newPDF(doc.Title)
	tr := r.translator(pdf)
	pdf.AddPage()

	if doc.Title != "" {
		r.setFont(pdf, "B", r.cfg.TitleSize)
		pdf.MultiCell(0, leading(r.cfg.TitleSize), tr(doc.Title), "", "C", false)
		pdf.Ln(leading(r.cfg.TitleSize))
	}
	if doc.Heading != "" {
		size := r.cfg.BodySize + 2
		r.setFont(pdf, "B", size)
		pdf.MultiCell(0, leading(size), tr(doc.Heading), "", "L", false)
		pdf.Ln(leading(size) / 2)
	}

	r.setFont(pdf, "", r.cfg.BodySize)
	pdf.MultiCell(0, leading(r.cfg.BodySize), tr(doc.Body), "", "L", false)

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("rendering PDF: %w", err)
	}
	return nil
}

// utf8Font reports whether text is set in an embedded TrueType font rather
// than a core font.
func (r *PDFRenderer) utf8Font() bool {
	return r.cfg.FontFile != "" || strings.EqualFold(r.cfg.Font, types.FontGo)
}

// translator maps text into the encoding of the configured font. Embedded
// fonts take UTF-8 as is; core fonts take Windows-1252, and fpdf writes
// runes outside it as ".".
func (r *PDFRenderer) translator(pdf *fpdf.Fpdf) func(string) string {
	if r.utf8Font() {
		return func(s string) string { return s }
	}
	return pdf.UnicodeTranslatorFromDescriptor("")
}

// setFont selects style ("" or "B") at size, registering the embedded face
// on first use so unused faces are not written out.
func (r *PDFRenderer) setFont(pdf *fpdf.Fpdf, style string, size float64) {
	switch {
	case r.cfg.FontFile != "":
		pdf.AddUTF8Font(customFamily, style, r.cfg.FontFile)
		pdf.SetFont(customFamily, style, size)
	case strings.EqualFold(r.cfg.Font, types.FontGo):
		pdf.AddUTF8FontFromBytes(types.FontGo, style, goFonts[style])
		pdf.SetFont(types.FontGo, style, size)
	default:
		pdf.SetFont(r.cfg.Font, style, size)
	}
}

// RenderPages writes plain text with one PDF page per entry in pages. Each
// line of a page becomes a line of output; an empty line leaves a blank
// line's worth of vertical space, which reads back as a paragraph break.
func (r *PDFRenderer) RenderPages(w io.Writer, title string, pages []string) error {
	pdf := r.newPDF(title)
	tr := r.translator(pdf)
	h := leading(r.cfg.BodySize)

	for _, page := range pages {
		pdf.AddPage()
		r.setFont(pdf, "", r.cfg.BodySize)
		for _, line := range strings.Split(page, "\n") {
			if strings.TrimSpace(line) == "" {
				pdf.Ln(h)
				continue
			}
			pdf.MultiCell(0, h, tr(line), "", "L", false)
		}
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("rendering PDF: %w", err)
	}
	return nil
}

// leading returns the line height in millimetres for a font size in points.
func leading(sizePt float64) float64 {
	return sizePt * lineSpacing / ptPerMM
}

// WriteFile renders doc to path, creating parent directories. A partially
// written file is removed. Failures wrap abstract.ErrOutputWriteFailed.
func WriteFile(r Renderer, path string, doc Document) (err error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory %s: %w: %v", dir, abstract.ErrOutputWriteFailed, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w: %v", path, abstract.ErrOutputWriteFailed, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w: %v", path, abstract.ErrOutputWriteFailed, cerr)
		}
		if err != nil {
			_ = os.Remove(path)
		}
	}()

	if err := r.Render(f, doc); err != nil {
		if errors.Is(err, abstract.ErrOutputWriteFailed) {
			return err
		}
		return fmt.Errorf("writing %s: %w: %v", path, abstract.ErrOutputWriteFailed, err)
	}
	return nil
}
