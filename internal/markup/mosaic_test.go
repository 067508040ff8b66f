package markup

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMosaic(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"single grapheme untouched", "a", "a"},
		{"two graphemes", "ab", "a░"},
		{"three graphemes", "abc", "a░c"},
		{"five graphemes", "abcde", "a░░░e"},
		{"six graphemes collapse interior", "abcdef", "ab██ef"},
		{"long name keeps two block glyphs", "abcdefghij", "ab██ij"},
		{"cjk", "张三丰", "张░丰"},
		{"emoji counts as one grapheme", "a👍c", "a░c"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Mosaic(tc.in))
		})
	}
}
