// Package entrance maintains the single shared, live-updated message that
// aggregates every pending verification in a chat. One message per chat keeps
// a join-storm from flooding the group with per-joiner posts.
package entrance

import "context"

// MessageIDStore maps a chat to the id of its current aggregate entrance
// message. The id may be stale relative to the platform (the message can have
// been deleted out from under us); callers treat edit failures as transport
// errors, not store inconsistencies.
type MessageIDStore interface {
	Get(ctx context.Context, chatID int64) (int64, error)
	Set(ctx context.Context, chatID, messageID int64) error
	Delete(ctx context.Context, chatID int64) error
}
