// Package permission computes and applies the two permission states a group
// member can hold while the admission flow runs.
package permission

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/btx638/policr-mini/internal/chat"
	"github.com/btx638/policr-mini/internal/telegram"
)

// Controller applies permission sets through the platform API. Errors are
// returned to the caller untouched; retry belongs to whoever reports the
// outcome.
type Controller struct {
	api    telegram.API
	chats  chat.Store
	logger *slog.Logger
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger attaches a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// New constructs a Controller.
func New(api telegram.API, chats chat.Store, opts ...Option) (*Controller, error) {
	if api == nil {
		return nil, fmt.Errorf("platform api is required")
	}
	if chats == nil {
		return nil, fmt.Errorf("chat store is required")
	}
	c := &Controller{api: api, chats: chats, logger: slog.Default()}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Restrict locks a member down with the all-false flag set, regardless of the
// chat's baseline. Lockdown ignoring the baseline while restoration honors it
// is intentional: a pending member gets nothing.
func (c *Controller) Restrict(ctx context.Context, chatID, userID int64) error {
	return c.api.RestrictChatMember(ctx, telegram.RestrictChatMemberParams{
		ChatID:      chatID,
		UserID:      userID,
		Permissions: telegram.ChatPermissions{},
	})
}

// Derestrict re-applies the chat's stored baseline flags, restoring prior
// group policy rather than granting full access unconditionally.
func (c *Controller) Derestrict(ctx context.Context, chatID, userID int64) error {
	record, err := c.chats.GetByID(ctx, chatID)
	if err != nil {
		return err
	}
	return c.api.RestrictChatMember(ctx, telegram.RestrictChatMemberParams{
		ChatID:      chatID,
		UserID:      userID,
		Permissions: record.Permissions,
	})
}
