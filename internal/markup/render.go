package markup

import (
	"regexp"
	"strings"
)

// The richtext renderer understands the small markdown subset the core emits:
// bold, italic, inline code, and links (including user deep links).
var (
	linkPattern   = regexp.MustCompile(`\[([^\]]*)\]\(([^)]+)\)`)
	boldPattern   = regexp.MustCompile(`\*([^*]+)\*`)
	italicPattern = regexp.MustCompile(`_([^_]+)_`)
	codePattern   = regexp.MustCompile("`([^`]+)`")
)

// ToHTML converts markdown-flavored source to the platform's richtext markup.
// Escaped punctuation from raw-markup mode is unescaped first; HTML-sensitive
// characters are escaped before tags are reintroduced.
func ToHTML(source string) string {
	text := strings.NewReplacer(`\.`, ".", `\+`, "+", `\-`, "-", `\=`, "=").Replace(source)
	text = EscapeHTML(text)

	text = linkPattern.ReplaceAllString(text, `<a href="$2">$1</a>`)
	text = boldPattern.ReplaceAllString(text, "<b>$1</b>")
	text = italicPattern.ReplaceAllString(text, "<i>$1</i>")
	text = codePattern.ReplaceAllString(text, "<code>$1</code>")
	return text
}
