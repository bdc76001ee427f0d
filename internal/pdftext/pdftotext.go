// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdftext

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pdiddy/abstract-extractor/internal/container"
)

// formFeed separates pages in pdftotext output.
const formFeed = "\f"

// PdftotextReader pipes the PDF through poppler's pdftotext inside a
// container image. It depends on a container.Runtime injected at
// construction time.
type PdftotextReader struct {
	runtime container.Runtime
	image   string
}

// NewPdftotextReader verifies that image exists in rt before returning.
func NewPdftotextReader(rt container.Runtime, image string) (*PdftotextReader, error) {
	if err := rt.ImageExists(image); err != nil {
		return nil, fmt.Errorf("pdftotext image not available in %s: %w", rt.Name(), err)
	}
	return &PdftotextReader{runtime: rt, image: image}, nil
}

// Pages implements Reader.
func (p *PdftotextReader) Pages(path string, max int) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening PDF %s: %w", path, err)
	}
	defer f.Close()

	args := []string{"pdftotext", "-enc", "UTF-8", "-f", "1"}
	if max > 0 {
		args = append(args, "-l", strconv.Itoa(max))
	}
	args = append(args, "-", "-")

	var out bytes.Buffer
	if err := p.runtime.Run(p.image, args, f, &out); err != nil {
		return nil, fmt.Errorf("extracting text from %s with pdftotext: %w", path, err)
	}
	return splitPages(out.String(), max), nil
}

// splitPages breaks pdftotext output on form feeds. pdftotext terminates
// every page with one, so the empty tail is dropped.
func splitPages(out string, max int) []string {
	if out == "" {
		return nil
	}
	pages := strings.Split(out, formFeed)
	if len(pages) > 1 && strings.TrimSpace(pages[len(pages)-1]) == "" {
		pages = pages[:len(pages)-1]
	}
	if max > 0 && len(pages) > max {
		pages = pages[:max]
	}
	return pages
}
