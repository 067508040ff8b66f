package service

import (
	"context"
	"time"

	"github.com/btx638/policr-mini/internal/delivery"
	"github.com/btx638/policr-mini/internal/entrance"
	"github.com/btx638/policr-mini/internal/kick"
	"github.com/btx638/policr-mini/internal/outcome"
	"github.com/btx638/policr-mini/internal/scheduler"
	"github.com/btx638/policr-mini/internal/telegram"
)

// The dispatcher's collaborators, narrowed to what it actually calls so tests
// can swap fakes without standing up the full stack.

// Deliverer sends and deletes messages with the delivery layer's retry policy.
type Deliverer interface {
	SendText(ctx context.Context, chatID int64, text string, opts ...delivery.Option) (*telegram.Message, error)
	DeleteMessage(ctx context.Context, chatID, messageID int64, opts ...delivery.Option) error
}

// Scheduler runs detached jobs off the acknowledgement path.
type Scheduler interface {
	Submit(job scheduler.Job)
	SubmitAfter(job scheduler.Job, delay time.Duration)
}

// Permissions restores a verified member's baseline flags.
type Permissions interface {
	Derestrict(ctx context.Context, chatID, userID int64) error
}

// Kicker is the external removal workflow invoked on a wrong answer.
type Kicker interface {
	Kick(ctx context.Context, chatID int64, user telegram.User, reason kick.Reason) error
}

// Entrance maintains the chat's aggregate entrance message.
type Entrance interface {
	UpdateMessage(ctx context.Context, chatID int64, count, maxSeconds int) (entrance.Result, error)
	DeleteMessage(ctx context.Context, chatID int64) error
}

// Answerer acknowledges inbound callback events.
type Answerer interface {
	AnswerCallbackQuery(ctx context.Context, params telegram.AnswerCallbackQueryParams) error
}

// Recorder receives resolved-verification events, fire-and-forget.
type Recorder interface {
	Emit(event outcome.Event)
}
