// Package markup renders user references and message text for the platform's
// two rich-text flavors, including the partial-redaction (mosaic) transform.
package markup

import "strings"

// markdownEscaper escapes the reserved punctuation the platform rejects in
// raw-markup mode when left bare.
var markdownEscaper = strings.NewReplacer(
	".", `\.`,
	"+", `\+`,
	"-", `\-`,
	"=", `\=`,
)

// EscapeMarkdown escapes reserved punctuation for raw-markup rendering.
func EscapeMarkdown(text string) string {
	return markdownEscaper.Replace(text)
}

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
)

// EscapeHTML escapes the characters with meaning in richtext rendering.
func EscapeHTML(text string) string {
	return htmlEscaper.Replace(text)
}
