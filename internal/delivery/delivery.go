// Package delivery wraps outbound platform calls with the retry policy the
// rest of the core relies on: immediate retry for transport timeouts,
// randomized backoff for rate-limit rejections, fail fast for everything else.
package delivery

import (
	"context"
	"log/slog"
	"math/rand"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/btx638/policr-mini/internal/markup"
	"github.com/btx638/policr-mini/internal/telegram"
)

var (
	attemptsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "policr_delivery_attempts_total",
		Help: "Platform API call attempts by operation",
	}, []string{"op"})
	retriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "policr_delivery_retries_total",
		Help: "Retries by operation and trigger (timeout or rate_limit)",
	}, []string{"op", "trigger"})
)

// backoffUnit is the base delay multiplied by remaining budget and jitter on a
// rate-limit rejection.
const backoffUnit = 800 * time.Millisecond

// jitterFactors are the uniform choices for backoff randomization.
var jitterFactors = []float64{0.2, 0.4, 0.8, 1.0}

// Deliverer performs outbound sends, edits and deletes. The retry loop is
// synchronous; callers that must not block route through the scheduler.
type Deliverer struct {
	api    telegram.API
	logger *slog.Logger

	// sleep and jitter are swappable for tests.
	sleep  func(time.Duration)
	jitter func() float64
}

// DelivererOption configures a Deliverer.
type DelivererOption func(*Deliverer)

// WithLogger attaches a structured logger.
func WithLogger(logger *slog.Logger) DelivererOption {
	return func(d *Deliverer) {
		d.logger = logger
	}
}

// WithSleep overrides the backoff sleep function.
func WithSleep(sleep func(time.Duration)) DelivererOption {
	return func(d *Deliverer) {
		d.sleep = sleep
	}
}

// WithJitter overrides the jitter draw.
func WithJitter(jitter func() float64) DelivererOption {
	return func(d *Deliverer) {
		d.jitter = jitter
	}
}

// New constructs a Deliverer over the given platform API.
func New(api telegram.API, opts ...DelivererOption) *Deliverer {
	d := &Deliverer{
		api:    api,
		logger: slog.Default(),
		sleep:  time.Sleep,
		jitter: func() float64 {
			return jitterFactors[rand.Intn(len(jitterFactors))] //nolint:gosec // backoff jitter doesn't need crypto rand
		},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// SendText sends a text message with the call options applied.
func (d *Deliverer) SendText(ctx context.Context, chatID int64, text string, opts ...Option) (*telegram.Message, error) {
	cfg := Resolve(opts)
	rendered, parseMode := renderText(text, cfg.Mode)

	var msg *telegram.Message
	err := d.withRetry(ctx, "send_text", cfg.RetryBudget, func(ctx context.Context) error {
		var callErr error
		msg, callErr = d.api.SendMessage(ctx, telegram.SendMessageParams{
			ChatID:                chatID,
			Text:                  rendered,
			ParseMode:             parseMode,
			DisableNotification:   cfg.DisableNotification,
			DisableWebPagePreview: cfg.DisableLinkPreview,
			ReplyToMessageID:      cfg.ReplyTo,
		})
		return callErr
	})
	if err != nil {
		return nil, err
	}
	return msg, nil
}

// SendPhoto sends a photo with an optional caption.
func (d *Deliverer) SendPhoto(ctx context.Context, chatID int64, photo, caption string, opts ...Option) (*telegram.Message, error) {
	cfg := Resolve(opts)
	rendered, parseMode := renderText(caption, cfg.Mode)

	var msg *telegram.Message
	err := d.withRetry(ctx, "send_photo", cfg.RetryBudget, func(ctx context.Context) error {
		var callErr error
		msg, callErr = d.api.SendPhoto(ctx, telegram.SendPhotoParams{
			ChatID:              chatID,
			Photo:               photo,
			Caption:             rendered,
			ParseMode:           parseMode,
			DisableNotification: cfg.DisableNotification,
		})
		return callErr
	})
	if err != nil {
		return nil, err
	}
	return msg, nil
}

// EditText rewrites a previously sent message in place.
func (d *Deliverer) EditText(ctx context.Context, chatID, messageID int64, text string, opts ...Option) (*telegram.Message, error) {
	cfg := Resolve(opts)
	rendered, parseMode := renderText(text, cfg.Mode)

	var msg *telegram.Message
	err := d.withRetry(ctx, "edit_text", cfg.RetryBudget, func(ctx context.Context) error {
		var callErr error
		msg, callErr = d.api.EditMessageText(ctx, telegram.EditMessageTextParams{
			ChatID:                chatID,
			MessageID:             messageID,
			Text:                  rendered,
			ParseMode:             parseMode,
			DisableWebPagePreview: cfg.DisableLinkPreview,
		})
		return callErr
	})
	if err != nil {
		return nil, err
	}
	return msg, nil
}

// DeleteMessage removes a message.
func (d *Deliverer) DeleteMessage(ctx context.Context, chatID, messageID int64, opts ...Option) error {
	cfg := Resolve(opts)
	return d.withRetry(ctx, "delete_message", cfg.RetryBudget, func(ctx context.Context) error {
		return d.api.DeleteMessage(ctx, chatID, messageID)
	})
}

// withRetry runs fn up to budget+1 times. Timeouts retry with zero delay;
// rate limits sleep backoffUnit × remaining budget × jitter first; anything
// else returns immediately. Once the budget is spent the last error wins.
func (d *Deliverer) withRetry(ctx context.Context, op string, budget int, fn func(context.Context) error) error {
	for {
		attemptsTotal.WithLabelValues(op).Inc()
		err := fn(ctx)
		if err == nil {
			return nil
		}

		switch {
		case telegram.IsTimeout(err):
			if budget == 0 {
				return err
			}
			budget--
			retriesTotal.WithLabelValues(op, "timeout").Inc()
		case telegram.IsRateLimited(err):
			if budget == 0 {
				return err
			}
			delay := time.Duration(float64(backoffUnit) * float64(budget) * d.jitter())
			d.logger.Debug("rate limited, backing off",
				"op", op,
				"delay", delay,
				"remaining_budget", budget,
			)
			d.sleep(delay)
			budget--
			retriesTotal.WithLabelValues(op, "rate_limit").Inc()
		default:
			return err
		}
	}
}

func renderText(text string, mode Mode) (string, telegram.ParseMode) {
	switch mode {
	case ModeRich:
		return markup.ToHTML(text), telegram.ParseModeHTML
	case ModeRaw:
		return text, telegram.ParseModeMarkdownV2
	default:
		return markup.EscapeMarkdown(text), telegram.ParseModeMarkdownV2
	}
}
