// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package abstract

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "collapses whitespace", in: "  a \t b\n\n c  ", want: "a b c"},
		{name: "expands ligatures", in: "e\ufb03cient \ufb01ne", want: "efficient fine"},
		{name: "joins hyphenated wrap", in: "compu-\n  tation", want: "computation"},
		{name: "keeps hyphen before capital", in: "state-\nOf", want: "state- Of"},
		{name: "keeps inline hyphen", in: "well-known", want: "well-known"},
		{name: "drops control characters", in: "a\x00b\x07c", want: "abc"},
		{name: "drops soft hyphen and zero width space", in: "hy\u00adphen\u200bated", want: "hyphenated"},
		{name: "non-breaking space becomes space", in: "a\u00a0b", want: "a b"},
		{name: "drops replacement character", in: "x\ufffdy", want: "xy"},
		{name: "empty", in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Clean(tt.in))
		})
	}
}

func TestClean_Idempotent(t *testing.T) {
	in := "  Some text with ﬁgures and extrac-\ntion  "
	once := Clean(in)
	assert.Equal(t, once, Clean(once))
}

func TestIsSoft(t *testing.T) {
	assert.True(t, IsSoft(fmt.Errorf("paper.pdf: %w", ErrNoAbstractFound)))
	assert.False(t, IsSoft(fmt.Errorf("paper.pdf: %w", ErrNotAPDF)))
	assert.False(t, IsSoft(ErrOutputWriteFailed))
	assert.False(t, IsSoft(errors.New("other")))
}
