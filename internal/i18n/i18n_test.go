package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBundleTranslate(t *testing.T) {
	bundle := NewBundle(map[string]string{
		"greet": "hello ${name}, you have ${count} messages",
	})

	t.Run("interpolates vars", func(t *testing.T) {
		got := bundle.Translate("greet", map[string]any{"name": "sam", "count": 3})
		assert.Equal(t, "hello sam, you have 3 messages", got)
	})

	t.Run("missing key falls back to key", func(t *testing.T) {
		assert.Equal(t, "nope", bundle.Translate("nope", nil))
	})

	t.Run("unreferenced vars ignored", func(t *testing.T) {
		got := bundle.Translate("greet", map[string]any{"name": "sam", "count": 1, "extra": true})
		assert.NotContains(t, got, "extra")
	})
}

func TestAlertKey(t *testing.T) {
	assert.Equal(t, "errors.not_found", AlertKey("not_found"))
	assert.Equal(t, "errors.target_mismatch", AlertKey("target_mismatch"))
	assert.Equal(t, "errors.already_processed", AlertKey("already_processed"))
	assert.Equal(t, "errors.generic", AlertKey("persistence"))
	assert.Equal(t, "errors.generic", AlertKey(""))
}
