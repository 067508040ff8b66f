// Package kick removes members who failed verification. The default workflow
// bans then immediately unbans, so the user is out of the group but free to
// rejoin and face a fresh challenge.
package kick

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/btx638/policr-mini/internal/telegram"
)

// Reason tags why a member was removed.
type Reason string

const (
	// ReasonWronged marks a member who picked a wrong answer.
	ReasonWronged Reason = "wronged"
	// ReasonTimeout marks a member who never answered within the window.
	ReasonTimeout Reason = "timeout"
)

// Workflow performs the removal through the platform API.
type Workflow struct {
	api    telegram.API
	logger *slog.Logger
}

// Option configures a Workflow.
type Option func(*Workflow)

// WithLogger attaches a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Workflow) {
		w.logger = logger
	}
}

// New constructs a Workflow.
func New(api telegram.API, opts ...Option) (*Workflow, error) {
	if api == nil {
		return nil, fmt.Errorf("platform api is required")
	}
	w := &Workflow{api: api, logger: slog.Default()}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Kick removes the user from the chat. The unban directly after the ban turns
// a permanent ban into an ejection.
func (w *Workflow) Kick(ctx context.Context, chatID int64, user telegram.User, reason Reason) error {
	if err := w.api.BanChatMember(ctx, chatID, user.ID); err != nil {
		return fmt.Errorf("ban member %d: %w", user.ID, err)
	}
	if err := w.api.UnbanChatMember(ctx, chatID, user.ID); err != nil {
		return fmt.Errorf("unban member %d: %w", user.ID, err)
	}
	w.logger.Info("member kicked",
		"chat_id", chatID,
		"user_id", user.ID,
		"reason", string(reason),
	)
	return nil
}
