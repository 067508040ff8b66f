package telegram

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeTimeoutErr struct{}

func (fakeTimeoutErr) Error() string   { return "dial tcp: i/o timeout" }
func (fakeTimeoutErr) Timeout() bool   { return true }
func (fakeTimeoutErr) Temporary() bool { return true }

func TestIsRateLimited(t *testing.T) {
	t.Run("matching prefix", func(t *testing.T) {
		err := &APIError{Code: 429, Description: "Too Many Requests: retry after 5"}
		assert.True(t, IsRateLimited(err))
	})

	t.Run("wrapped", func(t *testing.T) {
		err := fmt.Errorf("send: %w", &APIError{Code: 429, Description: "Too Many Requests: retry after 1"})
		assert.True(t, IsRateLimited(err))
	})

	t.Run("other api error", func(t *testing.T) {
		err := &APIError{Code: 400, Description: "Bad Request: message to edit not found"}
		assert.False(t, IsRateLimited(err))
	})

	t.Run("non api error", func(t *testing.T) {
		assert.False(t, IsRateLimited(errors.New("Too Many Requests")))
	})
}

func TestIsTimeout(t *testing.T) {
	assert.True(t, IsTimeout(context.DeadlineExceeded))
	assert.True(t, IsTimeout(fmt.Errorf("send: %w", fakeTimeoutErr{})))
	assert.False(t, IsTimeout(&APIError{Code: 400, Description: "Bad Request"}))
	assert.False(t, IsTimeout(errors.New("boom")))
}
