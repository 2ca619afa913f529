package textutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		n    int
		want string
	}{
		{name: "shorter than limit", in: "abc", n: 5, want: "abc"},
		{name: "exact limit", in: "abcde", n: 5, want: "abcde"},
		{name: "cut ascii", in: "abcdef", n: 3, want: "abc"},
		{name: "cut multibyte", in: "héllo wörld", n: 7, want: "héllo w"},
		{name: "zero limit", in: "abc", n: 0, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Truncate(tt.in, tt.n))
		})
	}
}

func TestTruncate_LongInput(t *testing.T) {
	in := strings.Repeat("é", 600)
	out := Truncate(in, 500)
	assert.Equal(t, 500, RuneLen(out))
}
