// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/text/encoding/unicode"

	"github.com/pdiddy/abstract-extractor/internal/abstract"
	"github.com/pdiddy/abstract-extractor/internal/pdftext"
	"github.com/pdiddy/abstract-extractor/pkg/types"
)

func fixedRenderer() *PDFRenderer {
	r := NewPDFRenderer(types.RenderConfig{})
	r.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	return r
}

type failingRenderer struct{}

func (failingRenderer) Render(w io.Writer, doc Document) error {
	_, _ = w.Write([]byte("%PDF-partial"))
	return errors.New("layout exploded")
}

func TestRender_ProducesPDF(t *testing.T) {
	var buf bytes.Buffer
	err := fixedRenderer().Render(&buf, Document{Title: "Abstract from paper", Heading: "Abstract", Body: "Short body."})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	assert.Contains(t, buf.String(), "%%EOF")
}

func TestRender_Deterministic(t *testing.T) {
	doc := Document{Title: "T", Heading: "Abstract", Body: "Same input, same bytes."}
	var a, b bytes.Buffer
	require.NoError(t, fixedRenderer().Render(&a, doc))
	require.NoError(t, fixedRenderer().Render(&b, doc))
	assert.Equal(t, a.Bytes(), b.Bytes())
}

func TestRender_UnknownFontFails(t *testing.T) {
	r := NewPDFRenderer(types.RenderConfig{Font: "NoSuchFont"})
	err := r.Render(io.Discard, Document{Body: "x"})
	assert.Error(t, err)
}

func TestRender_TextReadsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.pdf")
	body := "We show that careful layout survives a round trip through the text layer."
	require.NoError(t, WriteFile(fixedRenderer(), path, Document{
		Title:   "Abstract from sample",
		Heading: "Abstract",
		Body:    body,
	}))

	require.NoError(t, pdftext.Validate(path))
	pages, err := pdftext.NativeReader{}.Pages(path, 0)
	require.NoError(t, err)
	require.Len(t, pages, 1)

	text := abstract.Clean(pages[0])
	assert.Contains(t, text, "Abstract from sample")
	assert.True(t, strings.HasSuffix(text, body), "got %q", text)
}

// pageContent returns the decoded content stream of page 1 of the PDF at path.
func pageContent(t *testing.T, path string) string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	outDir := t.TempDir()
	require.NoError(t, api.ExtractContent(f, outDir, "out.pdf", []string{"1"}, conf))
	data, err := os.ReadFile(filepath.Join(outDir, "out_Content_page_1.txt"))
	require.NoError(t, err)
	return string(data)
}

// utf16BE encodes s the way embedded-font text is written into a content stream.
func utf16BE(t *testing.T, s string) string {
	t.Helper()
	enc := unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewEncoder()
	out, err := enc.String(s)
	require.NoError(t, err)
	return out
}

func TestRender_NonLatinTextKeepsGlyphs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.pdf")
	body := "We bind α-helix proteins; Σ ≥ 0 in Москва."
	require.NoError(t, WriteFile(fixedRenderer(), path, Document{Heading: "Abstract", Body: body}))

	content := pageContent(t, path)
	for _, word := range []string{"α-helix", "Σ ≥ 0", "Москва"} {
		assert.Contains(t, content, utf16BE(t, word), "content stream should carry %q", word)
	}
	assert.NotContains(t, content, "......", "runes must not be replaced with dots")
}

func TestRender_Latin1ReadsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.pdf")
	body := "Études on naïve señor caching, über alles."
	require.NoError(t, WriteFile(fixedRenderer(), path, Document{Heading: "Abstract", Body: body}))

	pages, err := pdftext.NativeReader{}.Pages(path, 0)
	require.NoError(t, err)
	require.Len(t, pages, 1)
	assert.True(t, strings.HasSuffix(abstract.Clean(pages[0]), body), "got %q", pages[0])
}

func TestRender_CoreFont(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.pdf")
	r := NewPDFRenderer(types.RenderConfig{Font: "Times"})
	require.NoError(t, WriteFile(r, path, Document{Title: "T", Heading: "Abstract", Body: "Café au lait."}))

	pages, err := pdftext.NativeReader{}.Pages(path, 0)
	require.NoError(t, err)
	require.Len(t, pages, 1)
	assert.True(t, strings.HasSuffix(abstract.Clean(pages[0]), "Café au lait."), "got %q", pages[0])
}

func TestRender_FontFile(t *testing.T) {
	ttf := filepath.Join(t.TempDir(), "custom.ttf")
	require.NoError(t, os.WriteFile(ttf, goregular.TTF, 0o644))

	path := filepath.Join(t.TempDir(), "out.pdf")
	r := NewPDFRenderer(types.RenderConfig{FontFile: ttf})
	require.NoError(t, WriteFile(r, path, Document{Title: "T", Heading: "Abstract", Body: "Σ in Москва."}))
	assert.Contains(t, pageContent(t, path), utf16BE(t, "Москва"))

	missing := NewPDFRenderer(types.RenderConfig{FontFile: filepath.Join(t.TempDir(), "nope.ttf")})
	assert.Error(t, missing.Render(io.Discard, Document{Body: "x"}))
}

func TestRenderPages_OnePagePerEntry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pages.pdf")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, fixedRenderer().RenderPages(f, "Sample", []string{"Title\n\nAbstract: First.\nMore.", "Second page."}))
	require.NoError(t, f.Close())

	pages, err := pdftext.NativeReader{}.Pages(path, 0)
	require.NoError(t, err)
	require.Len(t, pages, 2)
	assert.Equal(t, "Title\n\nAbstract: First.\nMore.", pages[0])
	assert.Equal(t, "Second page.", pages[1])
}

func TestWriteFile(t *testing.T) {
	t.Run("creates parent directories", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "dir", "out.pdf")
		require.NoError(t, WriteFile(fixedRenderer(), path, Document{Body: "text"}))
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	})

	t.Run("render failure removes partial file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.pdf")
		err := WriteFile(failingRenderer{}, path, Document{Body: "text"})
		require.Error(t, err)
		assert.ErrorIs(t, err, abstract.ErrOutputWriteFailed)
		assert.Contains(t, err.Error(), "layout exploded")
		_, statErr := os.Stat(path)
		assert.True(t, os.IsNotExist(statErr))
	})

	t.Run("parent is a file", func(t *testing.T) {
		dir := t.TempDir()
		blocker := filepath.Join(dir, "blocker")
		require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))
		err := WriteFile(fixedRenderer(), filepath.Join(blocker, "out.pdf"), Document{Body: "text"})
		assert.ErrorIs(t, err, abstract.ErrOutputWriteFailed)
	})
}
