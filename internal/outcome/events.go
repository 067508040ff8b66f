// Package outcome records how verifications resolve. Events feed the
// statistics the administrative surface reads; emission is fire-and-forget so
// the dispatcher's acknowledgement path never waits on the trail.
package outcome

import (
	"context"
	"time"
)

// Event is one resolved verification.
type Event struct {
	ID             string    `json:"id"`
	ChatID         int64     `json:"chat_id"`
	UserID         int64     `json:"user_id"`
	VerificationID int64     `json:"verification_id"`
	Status         string    `json:"status"`
	ElapsedSeconds int       `json:"elapsed_seconds"`
	At             time.Time `json:"at"`
}

// Store is the append-only sink behind the recorder.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListByChat(ctx context.Context, chatID int64) ([]Event, error)
}
