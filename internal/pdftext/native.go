// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdftext

import (
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

const (
	// paragraphGap is the multiple of the line pitch above which a vertical
	// gap between rows is read as a paragraph break.
	paragraphGap = 1.5

	// rowTolerance is how far apart, in points, two glyph baselines may be
	// and still share a row.
	rowTolerance = 1.0

	// wordGap is the horizontal gap, as a fraction of the font size, that
	// separates two words drawn without a space glyph between them.
	wordGap = 0.2
)

// NativeReader extracts text with github.com/ledongthuc/pdf. Rows are
// rebuilt from glyph positions so line and paragraph breaks survive.
type NativeReader struct{}

// Pages implements Reader.
func (NativeReader) Pages(path string, max int) ([]string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening PDF %s: %w", path, err)
	}
	defer f.Close()

	n := r.NumPage()
	if max > 0 && n > max {
		n = max
	}

	pages := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		pages = append(pages, pageText(r, i, path))
	}
	return pages, nil
}

// pageText returns the text of page i or "" when the page has no text layer
// or cannot be decoded. The PDF library panics on some malformed content
// streams; that page is treated as empty.
func pageText(r *pdf.Reader, i int, path string) (text string) {
	defer func() {
		if rec := recover(); rec != nil {
			slog.Warn("page text decode panicked", "file", path, "page", i, "panic", rec)
			text = ""
		}
	}()

	p := r.Page(i)
	if p.V.IsNull() {
		return ""
	}

	lines := rows(p.Content().Text)
	slog.Debug("page text", "file", path, "page", i, "rows", len(lines))
	return assemble(lines)
}

// glyphRow collects the glyphs drawn on one baseline.
type glyphRow struct {
	y      float64
	glyphs []pdf.Text
}

// rows groups positioned glyphs into visual rows, top to bottom, each read
// left to right. Glyphs that share a position keep their drawing order.
func rows(glyphs []pdf.Text) []textLine {
	var grouped []*glyphRow
	for _, g := range glyphs {
		if g.S == "" || g.S == "\n" {
			continue
		}
		var row *glyphRow
		for _, r := range grouped {
			if math.Abs(r.y-g.Y) <= rowTolerance {
				row = r
				break
			}
		}
		if row == nil {
			row = &glyphRow{y: g.Y}
			grouped = append(grouped, row)
		}
		row.glyphs = append(row.glyphs, g)
	}

	sort.SliceStable(grouped, func(i, j int) bool { return grouped[i].y > grouped[j].y })

	lines := make([]textLine, 0, len(grouped))
	for _, r := range grouped {
		sort.SliceStable(r.glyphs, func(i, j int) bool { return r.glyphs[i].X < r.glyphs[j].X })
		lines = append(lines, textLine{y: r.y, text: joinGlyphs(r.glyphs)})
	}
	return lines
}

// joinGlyphs concatenates a row's glyphs, adding a space where the layout
// leaves a word-sized gap but draws no space glyph.
func joinGlyphs(glyphs []pdf.Text) string {
	var b strings.Builder
	for i, g := range glyphs {
		if i > 0 {
			prev := glyphs[i-1]
			gap := g.X - (prev.X + prev.W)
			if prev.W > 0 && gap > wordGap*g.FontSize && prev.S != " " && g.S != " " {
				b.WriteByte(' ')
			}
		}
		b.WriteString(g.S)
	}
	return b.String()
}

// textLine is one visual row of a page, y growing upwards.
type textLine struct {
	y    float64
	text string
}

// assemble joins rows, ordered top to bottom, into page text. A row that
// sits noticeably further below its predecessor than the tightest line pitch
// on the page starts a new paragraph, marked by a blank line.
func assemble(lines []textLine) string {
	pitch := 0.0
	for i := 1; i < len(lines); i++ {
		gap := lines[i-1].y - lines[i].y
		if gap > 0 && (pitch == 0 || gap < pitch) {
			pitch = gap
		}
	}

	var b strings.Builder
	for i, l := range lines {
		if i > 0 {
			b.WriteByte('\n')
			if pitch > 0 && lines[i-1].y-l.y > paragraphGap*pitch {
				b.WriteByte('\n')
			}
		}
		b.WriteString(strings.TrimRight(l.text, " \t"))
	}
	return b.String()
}
