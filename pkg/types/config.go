// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ExtractionConfig holds settings for abstract detection.
type ExtractionConfig struct {
	// MaxPages is the number of leading pages whose text is scanned (default 3).
	MaxPages int `json:"max_pages" yaml:"max_pages" mapstructure:"max_pages"`

	// MinParagraphChars is the length a paragraph must exceed to be used as
	// the fallback abstract (default 100).
	MinParagraphChars int `json:"min_paragraph_chars" yaml:"min_paragraph_chars" mapstructure:"min_paragraph_chars"`

	// MaxAbstractChars caps the length of a labeled capture (default 5000).
	MaxAbstractChars int `json:"max_abstract_chars" yaml:"max_abstract_chars" mapstructure:"max_abstract_chars"`
}

// TextBackend identifies the tool used to pull text out of the input PDF.
type TextBackend string

const (
	BackendNative    TextBackend = "native"
	BackendPdftotext TextBackend = "pdftotext"
)

// TextConfig holds settings for reading the input PDF.
type TextConfig struct {
	// Backend selects the text reader: native or pdftotext.
	Backend TextBackend `json:"backend" yaml:"backend" mapstructure:"backend"`

	// Image is the container image providing pdftotext for the pdftotext backend.
	Image string `json:"image" yaml:"image" mapstructure:"image"`
}

// RenderConfig holds page layout settings for the generated PDF.
type RenderConfig struct {
	// PageSize is an fpdf page size name such as "A4" or "Letter".
	PageSize string `json:"page_size" yaml:"page_size" mapstructure:"page_size"`

	// MarginMM is the margin on all four sides, in millimetres (default 25.4, one inch).
	MarginMM float64 `json:"margin_mm" yaml:"margin_mm" mapstructure:"margin_mm"`

	// Font is "Go" for the embedded UTF-8 Go fonts, or a core PDF font
	// family (Helvetica, Times, Courier), which covers Latin-1 only.
	Font string `json:"font" yaml:"font" mapstructure:"font"`

	// FontFile is a UTF-8 TrueType font used instead of Font, for scripts
	// the Go fonts lack (CJK, for one).
	FontFile string `json:"font_file,omitempty" yaml:"font_file,omitempty" mapstructure:"font_file"`

	// TitleSize is the title font size in points (default 16).
	TitleSize float64 `json:"title_size" yaml:"title_size" mapstructure:"title_size"`

	// BodySize is the body font size in points (default 11).
	BodySize float64 `json:"body_size" yaml:"body_size" mapstructure:"body_size"`
}

// CatalogConfig holds settings for the optional run catalog.
type CatalogConfig struct {
	// Enabled turns on recording of every run.
	Enabled bool `json:"enabled" yaml:"enabled" mapstructure:"enabled"`

	// Dir is the directory that holds catalog.db.
	Dir string `json:"dir" yaml:"dir" mapstructure:"dir"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level      string `json:"level" yaml:"level" mapstructure:"level"`
	File       string `json:"file" yaml:"file" mapstructure:"file"`
	MaxSizeMB  int    `json:"max_size_mb" yaml:"max_size_mb" mapstructure:"max_size_mb"`
	MaxBackups int    `json:"max_backups" yaml:"max_backups" mapstructure:"max_backups"`
	MaxAgeDays int    `json:"max_age_days" yaml:"max_age_days" mapstructure:"max_age_days"`
	Compress   bool   `json:"compress" yaml:"compress" mapstructure:"compress"`
}

// Config groups all settings read from the config file and environment.
type Config struct {
	Extraction ExtractionConfig `json:"extraction" yaml:"extraction" mapstructure:"extraction"`
	Text       TextConfig       `json:"text" yaml:"text" mapstructure:"text"`
	Render     RenderConfig     `json:"render" yaml:"render" mapstructure:"render"`
	Catalog    CatalogConfig    `json:"catalog" yaml:"catalog" mapstructure:"catalog"`
	Log        LogConfig        `json:"log" yaml:"log" mapstructure:"log"`
}

// FontGo selects the embedded Go TrueType fonts.
const FontGo = "Go"

// Defaults used by DefaultConfig and Normalize.
const (
	DefaultMaxPages          = 3
	DefaultMinParagraphChars = 100
	DefaultMaxAbstractChars  = 5000
	DefaultPdftotextImage    = "minidocks/poppler:latest"
	DefaultPageSize          = "A4"
	DefaultMarginMM          = 25.4
	DefaultFont              = FontGo
	DefaultTitleSize         = 16
	DefaultBodySize          = 11
	DefaultCatalogDir        = ".abstract-extractor"
)

// DefaultConfig returns a Config with every field at its default.
func DefaultConfig() Config {
	var c Config
	c.Text.Backend = BackendNative
	c.Log = LogConfig{
		Level:      "info",
		MaxSizeMB:  100,
		MaxBackups: 3,
		MaxAgeDays: 28,
		Compress:   true,
	}
	c.Normalize()
	return c
}

// Normalize replaces zero or out-of-range values with defaults.
func (c *Config) Normalize() {
	if c.Extraction.MaxPages <= 0 {
		c.Extraction.MaxPages = DefaultMaxPages
	}
	if c.Extraction.MinParagraphChars <= 0 {
		c.Extraction.MinParagraphChars = DefaultMinParagraphChars
	}
	if c.Extraction.MaxAbstractChars <= 0 {
		c.Extraction.MaxAbstractChars = DefaultMaxAbstractChars
	}
	if c.Text.Backend == "" {
		c.Text.Backend = BackendNative
	}
	if c.Text.Image == "" {
		c.Text.Image = DefaultPdftotextImage
	}
	if c.Render.PageSize == "" {
		c.Render.PageSize = DefaultPageSize
	}
	if c.Render.MarginMM <= 0 {
		c.Render.MarginMM = DefaultMarginMM
	}
	if c.Render.Font == "" {
		c.Render.Font = DefaultFont
	}
	if c.Render.TitleSize <= 0 {
		c.Render.TitleSize = DefaultTitleSize
	}
	if c.Render.BodySize <= 0 {
		c.Render.BodySize = DefaultBodySize
	}
	if c.Catalog.Dir == "" {
		c.Catalog.Dir = DefaultCatalogDir
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}
