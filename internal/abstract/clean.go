// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package abstract

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	// hyphenBreakRe matches a word split across a line wrap ("extrac-\ntion").
	hyphenBreakRe = regexp.MustCompile(`(\p{L})-[ \t]*\r?\n[ \t]*(\p{Ll})`)

	whitespaceRe = regexp.MustCompile(`\s+`)
)

// Clean removes PDF extraction artifacts from s: compatibility characters
// such as ligatures are decomposed, hyphenated line wraps are joined, control
// and format characters are dropped, and whitespace runs collapse to a
// single space.
func Clean(s string) string {
	s = norm.NFKC.String(s)
	s = strings.Map(dropInvisible, s)
	s = hyphenBreakRe.ReplaceAllString(s, "$1$2")
	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

func dropInvisible(r rune) rune {
	switch {
	case r == '\n' || r == '\t' || r == '\r':
		return r
	case r == unicode.ReplacementChar:
		return -1
	case unicode.IsControl(r), unicode.Is(unicode.Cf, r):
		return -1
	case unicode.IsSpace(r):
		return ' '
	}
	return r
}
