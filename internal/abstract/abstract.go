// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package abstract locates the abstract of an academic document in the plain
// text of its first pages. Labeled headings (Abstract, Summary, Overview) are
// tried in priority order; when none yields content, the first substantial
// paragraph is used instead.
package abstract

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pdiddy/abstract-extractor/pkg/types"
)

// label pairs a heading keyword with the pattern that finds it. At the start
// of a line the keyword may stand alone or be followed by a colon, period, or
// dash. Mid-line it needs a colon or a long dash, as in "Title Abstract: ...".
type label struct {
	name string
	re   *regexp.Regexp
}

func newLabel(name string) label {
	return label{
		name: name,
		re: regexp.MustCompile(`(?im)(?:^[ \t]*` + name + `\b[ \t]*(?:[:.]|[-–—]+)?` +
			`|\b` + name + `[ \t]*(?::|[–—]+))`),
	}
}

// labels is tried in order; the first label with a non-empty capture wins.
var labels = []label{
	newLabel("abstract"),
	newLabel("summary"),
	newLabel("overview"),
}

var (
	// sectionHead matches a heading that closes the abstract when it begins
	// a line: a heading word, optionally numbered ("1 Introduction",
	// "I. INTRODUCTION"), or a bare first section number.
	sectionHead = `(?:(?:(?:\d+|[ivx]+)\.?[ \t]+)?(?:keywords?|index\s+terms|introduction|background)\b|(?:1|i)\.\s)`

	// terminatorRe finds the end of a labeled capture: a blank line or a
	// line that starts a new section. Line ends may be CRLF.
	terminatorRe = regexp.MustCompile(`(?i)\n[ \t\r]*(?:\n|` + sectionHead + `)`)

	// leadingHeadRe reports a capture that starts directly on a section heading.
	leadingHeadRe = regexp.MustCompile(`(?i)^` + sectionHead)

	// paragraphSplitRe separates paragraphs on blank-line runs.
	paragraphSplitRe = regexp.MustCompile(`\n[ \t\r]*\n`)
)

// Extractor finds abstracts in page text. It holds only configuration and
// is safe for concurrent use.
type Extractor struct {
	minParagraph int
	maxChars     int
}

// New returns an Extractor using the thresholds in cfg. Zero values fall back
// to the package defaults.
func New(cfg types.ExtractionConfig) *Extractor {
	e := &Extractor{
		minParagraph: cfg.MinParagraphChars,
		maxChars:     cfg.MaxAbstractChars,
	}
	if e.minParagraph <= 0 {
		e.minParagraph = types.DefaultMinParagraphChars
	}
	if e.maxChars <= 0 {
		e.maxChars = types.DefaultMaxAbstractChars
	}
	return e
}

// Extract returns the abstract found in pages, which must be in document
// order. The boolean is false when neither a labeled section nor a
// substantial paragraph exists.
func (e *Extractor) Extract(pages []string) (types.Abstract, bool) {
	buf := Join(pages)

	if a, ok := e.findLabeled(buf); ok {
		return a, true
	}
	if text, ok := e.firstParagraph(buf); ok {
		return types.Abstract{Text: text, Method: types.MethodFallback}, true
	}
	return types.Abstract{}, false
}

// Join concatenates page texts in order, one newline between pages.
func Join(pages []string) string {
	return strings.Join(pages, "\n")
}

func (e *Extractor) findLabeled(buf string) (types.Abstract, bool) {
	for _, l := range labels {
		for _, loc := range l.re.FindAllStringIndex(buf, -1) {
			text := Clean(e.capture(buf[loc[1]:]))
			if text == "" {
				continue
			}
			return types.Abstract{Text: text, Method: types.MethodLabel, Label: l.name}, true
		}
	}
	return types.Abstract{}, false
}

// capture returns the raw text after a label, up to the first terminator
// or the character cap.
func (e *Extractor) capture(rest string) string {
	rest = strings.TrimLeftFunc(rest, unicode.IsSpace)
	if leadingHeadRe.MatchString(rest) {
		return ""
	}
	if loc := terminatorRe.FindStringIndex(rest); loc != nil {
		rest = rest[:loc[0]]
	}
	return truncate(rest, e.maxChars)
}

func (e *Extractor) firstParagraph(buf string) (string, bool) {
	for _, p := range paragraphSplitRe.Split(buf, -1) {
		text := Clean(truncate(p, e.maxChars))
		if utf8.RuneCountInString(text) > e.minParagraph {
			return text, true
		}
	}
	return "", false
}

// truncate cuts s to at most max runes, backing off to the last whitespace
// so a word is not split.
func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	n := 0
	for i := range s {
		if n == max {
			s = s[:i]
			break
		}
		n++
	}
	if i := strings.LastIndexFunc(s, unicode.IsSpace); i > 0 {
		s = s[:i]
	}
	return s
}
