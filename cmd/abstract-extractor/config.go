// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/viper"

	"github.com/pdiddy/abstract-extractor/internal/abstract"
	"github.com/pdiddy/abstract-extractor/internal/catalog"
	"github.com/pdiddy/abstract-extractor/internal/convert"
	"github.com/pdiddy/abstract-extractor/internal/pdftext"
	"github.com/pdiddy/abstract-extractor/internal/render"
	"github.com/pdiddy/abstract-extractor/pkg/types"
)

// setDefaults registers every config key so that AutomaticEnv can bind it.
func setDefaults(v *viper.Viper) {
	d := types.DefaultConfig()

	v.SetDefault("extraction.max_pages", d.Extraction.MaxPages)
	v.SetDefault("extraction.min_paragraph_chars", d.Extraction.MinParagraphChars)
	v.SetDefault("extraction.max_abstract_chars", d.Extraction.MaxAbstractChars)

	v.SetDefault("text.backend", string(d.Text.Backend))
	v.SetDefault("text.image", d.Text.Image)

	v.SetDefault("render.page_size", d.Render.PageSize)
	v.SetDefault("render.margin_mm", d.Render.MarginMM)
	v.SetDefault("render.font", d.Render.Font)
	v.SetDefault("render.font_file", d.Render.FontFile)
	v.SetDefault("render.title_size", d.Render.TitleSize)
	v.SetDefault("render.body_size", d.Render.BodySize)

	v.SetDefault("catalog.enabled", d.Catalog.Enabled)
	v.SetDefault("catalog.dir", d.Catalog.Dir)

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("log.max_size_mb", d.Log.MaxSizeMB)
	v.SetDefault("log.max_backups", d.Log.MaxBackups)
	v.SetDefault("log.max_age_days", d.Log.MaxAgeDays)
	v.SetDefault("log.compress", d.Log.Compress)
}

// loadConfig decodes v into a normalized types.Config.
func loadConfig(v *viper.Viper) (types.Config, error) {
	c := types.DefaultConfig()
	if err := v.Unmarshal(&c); err != nil {
		return types.Config{}, fmt.Errorf("decoding config: %w", err)
	}
	c.Normalize()
	return c, nil
}

// newConverter wires the text backend, extractor, renderer, and, when
// enabled, the run catalog. The returned func closes the catalog.
func newConverter(c types.Config) (*convert.Converter, func(), error) {
	reader, err := pdftext.NewReader(c.Text)
	if err != nil {
		return nil, nil, err
	}
	conv := convert.New(reader, abstract.New(c.Extraction), render.NewPDFRenderer(c.Render), c.Extraction.MaxPages)
	slog.Debug("converter ready", "backend", c.Text.Backend, "max_pages", c.Extraction.MaxPages)

	if !c.Catalog.Enabled {
		return conv, func() {}, nil
	}
	store, err := catalog.Open(c.Catalog)
	if err != nil {
		return nil, nil, err
	}
	return conv.WithRecorder(store), func() {
		if err := store.Close(); err != nil {
			slog.Warn("closing catalog", "error", err)
		}
	}, nil
}
