package chat

import "context"

// Store reads chat records. The core never writes chats; the administrative
// surface owns mutation.
type Store interface {
	GetByID(ctx context.Context, chatID int64) (*Chat, error)
}
