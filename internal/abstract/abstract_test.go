// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package abstract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/abstract-extractor/pkg/types"
)

func defaultExtractor() *Extractor {
	return New(types.ExtractionConfig{})
}

// paragraph150 is a single paragraph of exactly 150 characters.
var paragraph150 = strings.Repeat("Graph neural networks learn. ", 5) + "Done."

func TestExtract_Labeled(t *testing.T) {
	tests := []struct {
		name      string
		pages     []string
		want      string
		wantLabel string
	}{
		{
			name:      "abstract followed by introduction",
			pages:     []string{"Title\n\nAbstract: This paper studies X. \n\nIntroduction\nBody..."},
			want:      "This paper studies X.",
			wantLabel: "abstract",
		},
		{
			name:      "introduction heading without blank line",
			pages:     []string{"Abstract: We   propose a\nnew   method for parsing.\nIntroduction\nParsing is hard."},
			want:      "We propose a new method for parsing.",
			wantLabel: "abstract",
		},
		{
			name:      "label on its own line",
			pages:     []string{"A Study\n\nABSTRACT\n\nWe measure things carefully.\n\n1. Introduction\nText."},
			want:      "We measure things carefully.",
			wantLabel: "abstract",
		},
		{
			name:      "ieee dash separator and index terms",
			pages:     []string{"Abstract—Networks are studied here.\nIndex Terms—graphs, networks"},
			want:      "Networks are studied here.",
			wantLabel: "abstract",
		},
		{
			name:      "keywords terminate capture",
			pages:     []string{"Abstract. Short result on caching.\nKeywords: cache, memory"},
			want:      "Short result on caching.",
			wantLabel: "abstract",
		},
		{
			name:      "summary only",
			pages:     []string{"Report\n\nSummary: The quarterly results improved.\n\nBackground\nDetails."},
			want:      "The quarterly results improved.",
			wantLabel: "summary",
		},
		{
			name:      "overview only",
			pages:     []string{"Overview\nThis document describes the system.\n"},
			want:      "This document describes the system.",
			wantLabel: "overview",
		},
		{
			name:      "abstract wins over summary",
			pages:     []string{"Summary: second choice.\n\nAbstract: first choice.\n\nIntroduction"},
			want:      "first choice.",
			wantLabel: "abstract",
		},
		{
			name:      "short abstract still wins over longer summary",
			pages:     []string{"Abstract: X.\n\nSummary: " + paragraph150},
			want:      "X.",
			wantLabel: "abstract",
		},
		{
			name:      "empty abstract capture falls through to summary",
			pages:     []string{"Abstract\n\nIntroduction\nText.\n\nSummary: The real content."},
			want:      "The real content.",
			wantLabel: "summary",
		},
		{
			name:      "abstract spanning a page boundary",
			pages:     []string{"Title\n\nAbstract: The first half", "and the second half.\n\nIntroduction"},
			want:      "The first half and the second half.",
			wantLabel: "abstract",
		},
		{
			name:      "numbered introduction without period",
			pages:     []string{"Title\nAbstract\nWe study X.\n1 Introduction\nBody text of the paper goes on here."},
			want:      "We study X.",
			wantLabel: "abstract",
		},
		{
			name:      "upper case numbered introduction",
			pages:     []string{"ABSTRACT\nWe study X.\n1 INTRODUCTION\nMore."},
			want:      "We study X.",
			wantLabel: "abstract",
		},
		{
			name:      "roman numbered introduction",
			pages:     []string{"Abstract\nWe study X.\nI. INTRODUCTION\nMore."},
			want:      "We study X.",
			wantLabel: "abstract",
		},
		{
			name:      "numbered background",
			pages:     []string{"Abstract: We study X.\n2 Background\nMore."},
			want:      "We study X.",
			wantLabel: "abstract",
		},
		{
			name:      "label after title on the same line",
			pages:     []string{"Title Abstract: This paper studies X.\n\nIntroduction\nBody..."},
			want:      "This paper studies X.",
			wantLabel: "abstract",
		},
		{
			name:      "mid-line label with em dash",
			pages:     []string{"A Study of Caches Abstract—Caches help.\nIndex Terms—memory"},
			want:      "Caches help.",
			wantLabel: "abstract",
		},
		{
			name:      "crlf blank line terminates",
			pages:     []string{"Abstract: This paper studies X.\r\n\r\nAcknowledgements go here."},
			want:      "This paper studies X.",
			wantLabel: "abstract",
		},
		{
			name:      "crlf section heading terminates",
			pages:     []string{"Abstract\r\nWe study X.\r\n1 Introduction\r\nMore."},
			want:      "We study X.",
			wantLabel: "abstract",
		},
		{
			name:      "hyphenated wrap is joined",
			pages:     []string{"Abstract: We study extrac-\ntion of text.\n\nIntroduction"},
			want:      "We study extraction of text.",
			wantLabel: "abstract",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := defaultExtractor().Extract(tt.pages)
			require.True(t, ok)
			assert.Equal(t, tt.want, got.Text)
			assert.Equal(t, types.MethodLabel, got.Method)
			assert.Equal(t, tt.wantLabel, got.Label)
		})
	}
}

func TestExtract_Fallback(t *testing.T) {
	require.Len(t, paragraph150, 150)

	pages := []string{"A Title\n\nShort line.\n\n" + paragraph150 + "\n\nAnother paragraph."}
	got, ok := defaultExtractor().Extract(pages)
	require.True(t, ok)
	assert.Equal(t, types.MethodFallback, got.Method)
	assert.Empty(t, got.Label)
	assert.Equal(t, strings.TrimSpace(paragraph150), got.Text)
}

func TestExtract_MidLineKeywordIsNotALabel(t *testing.T) {
	pages := []string{"The summary shows gains and the abstract idea holds.\n\n" + paragraph150}
	got, ok := defaultExtractor().Extract(pages)
	require.True(t, ok)
	assert.Equal(t, types.MethodFallback, got.Method)
	assert.Equal(t, strings.TrimSpace(paragraph150), got.Text)
}

func TestExtract_FallbackThresholdIsExclusive(t *testing.T) {
	exact := strings.Repeat("a", 100)
	_, ok := defaultExtractor().Extract([]string{exact})
	assert.False(t, ok, "a paragraph of exactly the threshold does not exceed it")

	_, ok = defaultExtractor().Extract([]string{exact + "b"})
	assert.True(t, ok)
}

func TestExtract_NotFound(t *testing.T) {
	tests := []struct {
		name  string
		pages []string
	}{
		{name: "no pages", pages: nil},
		{name: "blank pages", pages: []string{"", "   \n\n  "}},
		{name: "only short paragraphs", pages: []string{"Title\n\nBy A. Author\n\nUniversity of Somewhere\n\n2024"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := defaultExtractor().Extract(tt.pages)
			assert.False(t, ok)
			assert.Equal(t, types.Abstract{}, got)
		})
	}
}

func TestExtract_Idempotent(t *testing.T) {
	pages := []string{"Title\n\nAbstract: Repeatable   output.\n\nIntroduction", "page two"}
	e := defaultExtractor()

	first, ok1 := e.Extract(pages)
	second, ok2 := e.Extract(pages)
	assert.Equal(t, ok1, ok2)
	assert.Equal(t, first, second)
}

func TestExtract_CapsLongCapture(t *testing.T) {
	e := New(types.ExtractionConfig{MaxAbstractChars: 20})
	got, ok := e.Extract([]string{"Abstract: one two three four five six seven eight"})
	require.True(t, ok)
	assert.LessOrEqual(t, len(got.Text), 20)
	assert.Equal(t, "one two three four", got.Text)
}

func TestExtract_CustomMinParagraph(t *testing.T) {
	e := New(types.ExtractionConfig{MinParagraphChars: 10})
	got, ok := e.Extract([]string{"tiny\n\nlong enough text"})
	require.True(t, ok)
	assert.Equal(t, "long enough text", got.Text)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "héllo", truncate("héllo wörld", 8))
	assert.Equal(t, "abcdefgh", truncate("abcdefghij", 8), "no whitespace to back off to")
}
