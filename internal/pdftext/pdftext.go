// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdftext reads the text layer of the leading pages of a PDF. The
// native backend parses the file in-process; the pdftotext backend runs
// poppler inside a container. Both return one string per page, empty for a
// page without text.
package pdftext

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/pdiddy/abstract-extractor/internal/abstract"
	"github.com/pdiddy/abstract-extractor/internal/container"
	"github.com/pdiddy/abstract-extractor/pkg/types"
)

// headerWindow is how far into the file the %PDF- marker may appear.
const headerWindow = 1024

var pdfMagic = []byte("%PDF-")

func init() {
	// Keep pdfcpu from creating a config directory under the user's home.
	model.ConfigPath = "disable"
}

// Reader returns the text of up to max leading pages of the PDF at path.
// max <= 0 means every page.
type Reader interface {
	Pages(path string, max int) ([]string, error)
}

// NewReader returns the Reader selected by cfg.Backend.
func NewReader(cfg types.TextConfig) (Reader, error) {
	switch cfg.Backend {
	case types.BackendNative, "":
		return NativeReader{}, nil
	case types.BackendPdftotext:
		rt, err := container.DetectRuntime()
		if err != nil {
			return nil, err
		}
		return NewPdftotextReader(rt, cfg.Image)
	default:
		return nil, fmt.Errorf("unknown text backend %q: use %s or %s", cfg.Backend, types.BackendNative, types.BackendPdftotext)
	}
}

// Validate checks that path exists, is a regular readable file, and parses
// as a PDF. Failures wrap abstract.ErrInputNotFound or abstract.ErrNotAPDF.
func Validate(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%s: %w", path, abstract.ErrInputNotFound)
		}
		return fmt.Errorf("%s: %w: %v", path, abstract.ErrInputNotFound, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory: %w", path, abstract.ErrNotAPDF)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%s: %w: %v", path, abstract.ErrInputNotFound, err)
	}
	defer f.Close()

	head := make([]byte, headerWindow)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if !bytes.Contains(head[:n], pdfMagic) {
		return fmt.Errorf("%s has no PDF header: %w", path, abstract.ErrNotAPDF)
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("rewinding %s: %w", path, err)
	}
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	if err := api.Validate(f, conf); err != nil {
		return fmt.Errorf("%s: %w: %v", path, abstract.ErrNotAPDF, err)
	}
	return nil
}
