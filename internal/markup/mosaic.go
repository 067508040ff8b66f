package markup

import (
	"strings"

	"github.com/rivo/uniseg"
)

const (
	// mosaicGlyph replaces a single obscured grapheme.
	mosaicGlyph = "░"
	// mosaicBlock stands in for the whole discarded interior of long names.
	mosaicBlock = "█"
)

// Mosaic partially redacts a display name. Short names keep their first (and
// for longer ones, last) graphemes with the interior obscured glyph-per-glyph;
// names of six or more graphemes collapse the interior into a fixed two-block
// placeholder so the output does not leak the original length.
func Mosaic(name string) string {
	graphemes := splitGraphemes(name)
	n := len(graphemes)

	switch {
	case n <= 1:
		return name
	case n == 2:
		return graphemes[0] + mosaicGlyph
	case n <= 5:
		var b strings.Builder
		b.WriteString(graphemes[0])
		b.WriteString(strings.Repeat(mosaicGlyph, n-2))
		b.WriteString(graphemes[n-1])
		return b.String()
	default:
		var b strings.Builder
		b.WriteString(graphemes[0])
		b.WriteString(graphemes[1])
		b.WriteString(mosaicBlock)
		b.WriteString(mosaicBlock)
		b.WriteString(graphemes[n-2])
		b.WriteString(graphemes[n-1])
		return b.String()
	}
}

func splitGraphemes(s string) []string {
	var out []string
	state := -1
	for len(s) > 0 {
		var cluster string
		cluster, s, _, state = uniseg.FirstGraphemeClusterInString(s, state)
		out = append(out, cluster)
	}
	return out
}
