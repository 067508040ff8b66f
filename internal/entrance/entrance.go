package entrance

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/btx638/policr-mini/internal/delivery"
	"github.com/btx638/policr-mini/internal/i18n"
	"github.com/btx638/policr-mini/internal/markup"
	"github.com/btx638/policr-mini/internal/telegram"
	"github.com/btx638/policr-mini/internal/verification/models"
	"github.com/btx638/policr-mini/internal/verification/store"
	pkgerrors "github.com/btx638/policr-mini/pkg/errors"
)

// Deliverer is the slice of the delivery layer the aggregator uses.
type Deliverer interface {
	EditText(ctx context.Context, chatID, messageID int64, text string, opts ...delivery.Option) (*telegram.Message, error)
	DeleteMessage(ctx context.Context, chatID, messageID int64, opts ...delivery.Option) error
}

// Result reports what an update pass did. Updated is false under the benign
// race where the last pending verification was resolved between the caller's
// count read and our lookup.
type Result struct {
	Updated bool
	// Target is the still-waiting user the entrance message now references.
	Target int64
}

// Aggregator renders and maintains the per-chat unity entrance message.
type Aggregator struct {
	verifications store.VerificationStore
	messageIDs    MessageIDStore
	deliverer     Deliverer
	translator    i18n.Translator
	anonymize     bool
	logger        *slog.Logger
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithLogger attaches a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Aggregator) {
		a.logger = logger
	}
}

// WithAnonymize controls whether the referenced user is anonymized in the
// entrance text.
func WithAnonymize(anonymize bool) Option {
	return func(a *Aggregator) {
		a.anonymize = anonymize
	}
}

// New constructs an Aggregator.
func New(verifications store.VerificationStore, messageIDs MessageIDStore, deliverer Deliverer, translator i18n.Translator, opts ...Option) (*Aggregator, error) {
	if verifications == nil {
		return nil, fmt.Errorf("verification store is required")
	}
	if messageIDs == nil {
		return nil, fmt.Errorf("message id store is required")
	}
	if deliverer == nil {
		return nil, fmt.Errorf("deliverer is required")
	}
	if translator == nil {
		return nil, fmt.Errorf("translator is required")
	}
	a := &Aggregator{
		verifications: verifications,
		messageIDs:    messageIDs,
		deliverer:     deliverer,
		translator:    translator,
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// UpdateMessage re-renders the chat's entrance message to reference the
// most-recently-created still-waiting user, the current backlog count, and the
// countdown ceiling. A stale message id surfaces as a transport error from
// the edit call; it is not retried here.
func (a *Aggregator) UpdateMessage(ctx context.Context, chatID int64, count, maxSeconds int) (Result, error) {
	latest, err := a.verifications.FindLatestWaitingByChat(ctx, chatID)
	if err != nil {
		if pkgerrors.Is(err, pkgerrors.CodeNotFound) {
			return Result{}, nil
		}
		return Result{}, err
	}

	messageID, err := a.messageIDs.Get(ctx, chatID)
	if err != nil {
		if pkgerrors.Is(err, pkgerrors.CodeNotFound) {
			a.logger.Debug("no entrance message recorded for chat", "chat_id", chatID)
			return Result{}, nil
		}
		return Result{}, err
	}

	text := a.renderText(latest, count, maxSeconds)
	if _, err := a.deliverer.EditText(ctx, chatID, messageID, text, delivery.WithMode(delivery.ModeRich)); err != nil {
		return Result{}, pkgerrors.Wrap(err, pkgerrors.CodeTransport, "edit entrance message")
	}
	return Result{Updated: true, Target: latest.TargetUserID}, nil
}

// DeleteMessage removes the aggregate message outright once the backlog
// clears, and forgets its id.
func (a *Aggregator) DeleteMessage(ctx context.Context, chatID int64) error {
	messageID, err := a.messageIDs.Get(ctx, chatID)
	if err != nil {
		if pkgerrors.Is(err, pkgerrors.CodeNotFound) {
			return nil
		}
		return err
	}
	if err := a.deliverer.DeleteMessage(ctx, chatID, messageID); err != nil {
		return pkgerrors.Wrap(err, pkgerrors.CodeTransport, "delete entrance message")
	}
	return a.messageIDs.Delete(ctx, chatID)
}

func (a *Aggregator) renderText(latest *models.Verification, count, maxSeconds int) string {
	mention := markup.Mention(telegram.User{
		ID:        latest.TargetUserID,
		FirstName: latest.TargetUserName,
	}, markup.MentionOptions{Anonymize: a.anonymize})
	return a.translator.Translate("entrance.unity", map[string]any{
		"mention": mention,
		"count":   count,
		"seconds": maxSeconds,
	})
}
