package outcome

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Publisher fans an event out to an external stream after it is persisted.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// Recorder buffers events on a bounded channel and drains them to the store
// (and optional publisher) on a background worker. A full inbox drops the
// event with a log line; the dispatcher never blocks on the trail.
type Recorder struct {
	store     Store
	publisher Publisher
	inbox     chan Event
	logger    *slog.Logger
}

// RecorderOption configures a Recorder.
type RecorderOption func(*Recorder)

// WithLogger attaches a structured logger.
func WithLogger(logger *slog.Logger) RecorderOption {
	return func(r *Recorder) {
		r.logger = logger
	}
}

// WithPublisher fans persisted events out to an external stream.
func WithPublisher(publisher Publisher) RecorderOption {
	return func(r *Recorder) {
		r.publisher = publisher
	}
}

// NewRecorder constructs a Recorder with the given inbox capacity.
func NewRecorder(store Store, capacity int, opts ...RecorderOption) *Recorder {
	if capacity <= 0 {
		capacity = 256
	}
	r := &Recorder{
		store:  store,
		inbox:  make(chan Event, capacity),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Emit queues an event. Missing id/timestamp are filled in here so callers
// only describe what happened.
func (r *Recorder) Emit(event Event) {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.At.IsZero() {
		event.At = time.Now()
	}
	select {
	case r.inbox <- event:
	default:
		r.logger.Warn("outcome inbox full, dropping event",
			"chat_id", event.ChatID,
			"verification_id", event.VerificationID,
		)
	}
}

// Run drains the inbox until ctx is cancelled.
func (r *Recorder) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-r.inbox:
			if err := r.store.Append(ctx, event); err != nil {
				r.logger.Error("persist outcome event", "error", err, "chat_id", event.ChatID)
				continue
			}
			if r.publisher != nil {
				if err := r.publisher.Publish(ctx, event); err != nil {
					r.logger.Error("publish outcome event", "error", err, "chat_id", event.ChatID)
				}
			}
		}
	}
}
