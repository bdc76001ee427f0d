// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package abstract

import "errors"

// Error kinds surfaced by a single extraction run. Callers wrap them with
// context and test for them with errors.Is.
var (
	ErrInputNotFound     = errors.New("input not found")
	ErrNotAPDF           = errors.New("not a PDF")
	ErrNoExtractableText = errors.New("no extractable text")
	ErrNoAbstractFound   = errors.New("no abstract found")
	ErrOutputWriteFailed = errors.New("output write failed")
)

// IsSoft reports whether err is the expected "no abstract" outcome rather
// than an I/O or format failure.
func IsSoft(err error) bool {
	return errors.Is(err, ErrNoAbstractFound)
}
