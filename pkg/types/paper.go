// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// DetectionMethod records how an abstract was located.
type DetectionMethod string

const (
	// MethodLabel means a labeled heading (Abstract, Summary, Overview) matched.
	MethodLabel DetectionMethod = "label"
	// MethodFallback means the first substantial paragraph was used.
	MethodFallback DetectionMethod = "fallback"
)

// Abstract is the cleaned text identified as a document's abstract.
type Abstract struct {
	// Text is trimmed with internal whitespace collapsed to single spaces.
	Text string `json:"text" yaml:"text"`

	// Method reports whether a label or the paragraph fallback produced Text.
	Method DetectionMethod `json:"method" yaml:"method"`

	// Label is the heading keyword that matched, lower-cased. Empty for fallback.
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
}

// ExtractionStatus is the outcome of processing one input PDF.
type ExtractionStatus string

const (
	StatusNone      ExtractionStatus = "none"
	StatusExtracted ExtractionStatus = "extracted"
	StatusSkipped   ExtractionStatus = "skipped"
	StatusNotFound  ExtractionStatus = "not_found"
	StatusFailed    ExtractionStatus = "failed"
)

// Paper describes one input PDF and what was produced from it. It is written
// as the metadata sidecar and recorded in the run catalog.
type Paper struct {
	// ID is the input file stem (e.g. "2301.07041").
	ID string `json:"id" yaml:"id"`

	// PDFPath is the input PDF path.
	PDFPath string `json:"pdf_path" yaml:"pdf_path"`

	// OutputPath is the generated PDF path. Empty in print-only mode.
	OutputPath string `json:"output_path,omitempty" yaml:"output_path,omitempty"`

	// Title is the title rendered into the output PDF.
	Title string `json:"title" yaml:"title"`

	// PagesScanned is the number of leading pages whose text was read.
	PagesScanned int `json:"pages_scanned" yaml:"pages_scanned"`

	// Abstract is the detected abstract.
	Abstract Abstract `json:"abstract" yaml:"abstract"`

	// Status is the outcome of the run.
	Status ExtractionStatus `json:"status" yaml:"status"`

	// ExtractedAt is when the run finished.
	ExtractedAt time.Time `json:"extracted_at" yaml:"extracted_at"`
}
