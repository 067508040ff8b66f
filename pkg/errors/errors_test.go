package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeOf(t *testing.T) {
	t.Run("direct core error", func(t *testing.T) {
		err := New(CodeNotFound, "verification missing")
		assert.Equal(t, CodeNotFound, CodeOf(err))
	})

	t.Run("wrapped core error", func(t *testing.T) {
		inner := New(CodeTargetMismatch, "wrong caller")
		err := fmt.Errorf("handling callback: %w", inner)
		assert.Equal(t, CodeTargetMismatch, CodeOf(err))
	})

	t.Run("plain error defaults to internal", func(t *testing.T) {
		assert.Equal(t, CodeInternal, CodeOf(errors.New("boom")))
	})
}

func TestWrap(t *testing.T) {
	t.Run("nil passthrough", func(t *testing.T) {
		assert.NoError(t, Wrap(nil, CodePersistence, "update"))
	})

	t.Run("preserves cause", func(t *testing.T) {
		cause := errors.New("column violation")
		err := Wrap(cause, CodePersistence, "update chosen")
		assert.ErrorIs(t, err, cause)
		assert.Equal(t, CodePersistence, CodeOf(err))
		assert.Contains(t, err.Error(), "update chosen")
	})
}

func TestIsValidation(t *testing.T) {
	assert.True(t, IsValidation(New(CodeNotFound, "")))
	assert.True(t, IsValidation(New(CodeTargetMismatch, "")))
	assert.True(t, IsValidation(New(CodeAlreadyProcessed, "")))
	assert.False(t, IsValidation(New(CodeUnsupported, "")))
	assert.False(t, IsValidation(New(CodeInternal, "")))
	assert.False(t, IsValidation(errors.New("boom")))
}
