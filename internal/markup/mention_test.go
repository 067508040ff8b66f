package markup

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/btx638/policr-mini/internal/telegram"
)

func TestMention(t *testing.T) {
	user := telegram.User{ID: 123456789, FirstName: "Wang", LastName: "Xiao-ming"}

	t.Run("anonymized shows bare id in markdown link", func(t *testing.T) {
		got := Mention(user, MentionOptions{Anonymize: true})
		assert.Equal(t, "[123456789](tg://user?id=123456789)", got)
	})

	t.Run("anonymized html stays a deep link", func(t *testing.T) {
		got := Mention(user, MentionOptions{Anonymize: true, Mode: telegram.ParseModeHTML})
		assert.Equal(t, `<a href="tg://user?id=123456789">123456789</a>`, got)
	})

	t.Run("full name escapes reserved punctuation", func(t *testing.T) {
		got := Mention(user, MentionOptions{})
		assert.Equal(t, `[Wang Xiao\-ming](tg://user?id=123456789)`, got)
	})

	t.Run("mosaic applies before linking", func(t *testing.T) {
		short := telegram.User{ID: 7, FirstName: "abc"}
		got := Mention(short, MentionOptions{Mosaic: true})
		assert.Equal(t, "[a░c](tg://user?id=7)", got)
	})

	t.Run("anonymize wins over mosaic", func(t *testing.T) {
		got := Mention(user, MentionOptions{Anonymize: true, Mosaic: true})
		assert.Contains(t, got, "123456789")
		assert.NotContains(t, got, "░")
	})

	t.Run("html escapes the display name", func(t *testing.T) {
		tricky := telegram.User{ID: 9, FirstName: "<b>"}
		got := Mention(tricky, MentionOptions{Mode: telegram.ParseModeHTML})
		assert.Equal(t, `<a href="tg://user?id=9">&lt;b&gt;</a>`, got)
	})
}

func TestEscapeMarkdown(t *testing.T) {
	assert.Equal(t, `1 \+ 1 \= 2\.`, EscapeMarkdown("1 + 1 = 2."))
	assert.Equal(t, `a\-b`, EscapeMarkdown("a-b"))
}

func TestToHTML(t *testing.T) {
	t.Run("bold and italic", func(t *testing.T) {
		assert.Equal(t, "<b>hi</b> <i>there</i>", ToHTML("*hi* _there_"))
	})

	t.Run("user deep link", func(t *testing.T) {
		got := ToHTML("[name](tg://user?id=42) joined")
		assert.Equal(t, `<a href="tg://user?id=42">name</a> joined`, got)
	})

	t.Run("unescapes raw-markup punctuation", func(t *testing.T) {
		assert.Equal(t, "done in 3.5s", ToHTML(`done in 3\.5s`))
	})

	t.Run("escapes angle brackets", func(t *testing.T) {
		assert.Equal(t, "&lt;script&gt;", ToHTML("<script>"))
	})
}
