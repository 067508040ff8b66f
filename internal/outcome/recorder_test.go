package outcome

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder(t *testing.T) {
	t.Run("emitted events reach the store with id and timestamp", func(t *testing.T) {
		store := NewInMemoryStore()
		rec := NewRecorder(store, 8)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go func() { _ = rec.Run(ctx) }()

		rec.Emit(Event{ChatID: 1, UserID: 10, VerificationID: 5, Status: "passed", ElapsedSeconds: 12})

		require.Eventually(t, func() bool {
			events, err := store.ListByChat(context.Background(), 1)
			return err == nil && len(events) == 1
		}, 2*time.Second, 10*time.Millisecond)

		events, err := store.ListByChat(context.Background(), 1)
		require.NoError(t, err)
		assert.NotEmpty(t, events[0].ID)
		assert.False(t, events[0].At.IsZero())
		assert.Equal(t, "passed", events[0].Status)
	})

	t.Run("full inbox drops instead of blocking", func(t *testing.T) {
		store := NewInMemoryStore()
		rec := NewRecorder(store, 1) // never run, so the inbox stays full

		rec.Emit(Event{ChatID: 1})

		done := make(chan struct{})
		go func() {
			rec.Emit(Event{ChatID: 2})
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("Emit blocked on a full inbox")
		}
	})
}
