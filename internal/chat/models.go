// Package chat exposes the read-only chat records the core consults: the
// baseline permission flags a group normally grants its members.
package chat

import "github.com/btx638/policr-mini/internal/telegram"

// Chat is the stored group record. Permissions is the restoration target
// applied after a successful verification.
type Chat struct {
	ID          int64
	Title       string
	Permissions telegram.ChatPermissions
}
