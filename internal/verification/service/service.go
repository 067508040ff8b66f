// Package service hosts the callback dispatcher and verification state
// machine. One inbound answer event flows through validation, resolution,
// side-effect scheduling and entrance upkeep before the callback is
// acknowledged; nothing escapes this boundary unhandled.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/btx638/policr-mini/internal/i18n"
	"github.com/btx638/policr-mini/internal/kick"
	"github.com/btx638/policr-mini/internal/markup"
	"github.com/btx638/policr-mini/internal/outcome"
	"github.com/btx638/policr-mini/internal/telegram"
	"github.com/btx638/policr-mini/internal/verification/models"
	"github.com/btx638/policr-mini/internal/verification/store"
	pkgerrors "github.com/btx638/policr-mini/pkg/errors"
)

var handledTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "policr_verifications_handled_total",
	Help: "Callback events handled, by verdict",
}, []string{"verdict"})

// publicNoticeTTL is how long the public "passed" notice stays in the chat.
const publicNoticeTTL = 8 * time.Second

// defaultSeconds is the countdown ceiling shown when a chat has no scheme.
const defaultSeconds = 300

// Event is an inbound answer event as extracted by the transport loop.
type Event struct {
	CallbackID string
	From       telegram.User
	MessageID  int64
	Payload    string
}

// Verdict tags the dispatch outcome for logging; callers never re-raise.
type Verdict string

const (
	VerdictPassed   Verdict = "passed"
	VerdictWronged  Verdict = "wronged"
	VerdictRejected Verdict = "rejected"
	VerdictErrored  Verdict = "errored"
)

// Outcome is the tagged result of one handled event.
type Outcome struct {
	Verdict        Verdict
	VerificationID int64
	Err            error
}

// Config carries the process-wide dispatch policy. Explicit fields, not
// ambient globals.
type Config struct {
	// Anonymize replaces display names with numeric ids in public text.
	Anonymize bool
	// DefaultSeconds is the countdown ceiling when a chat has no scheme.
	DefaultSeconds int
}

// Service is the dispatcher. Safe for concurrent use; all cross-event
// consistency rides on single-record store atomicity.
type Service struct {
	verifications store.VerificationStore
	schemes       store.SchemeStore
	deliverer     Deliverer
	pool          Scheduler
	permissions   Permissions
	kicker        Kicker
	entrance      Entrance
	answerer      Answerer
	translator    i18n.Translator

	cfg      Config
	recorder Recorder
	logger   *slog.Logger
	now      func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithLogger attaches a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithRecorder wires the outcome event trail.
func WithRecorder(recorder Recorder) Option {
	return func(s *Service) {
		s.recorder = recorder
	}
}

// WithConfig overrides the default dispatch policy.
func WithConfig(cfg Config) Option {
	return func(s *Service) {
		s.cfg = cfg
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// New constructs the dispatcher service.
func New(
	verifications store.VerificationStore,
	schemes store.SchemeStore,
	deliverer Deliverer,
	pool Scheduler,
	permissions Permissions,
	kicker Kicker,
	entranceAgg Entrance,
	answerer Answerer,
	translator i18n.Translator,
	opts ...Option,
) (*Service, error) {
	if verifications == nil {
		return nil, fmt.Errorf("verification store is required")
	}
	if schemes == nil {
		return nil, fmt.Errorf("scheme store is required")
	}
	if deliverer == nil {
		return nil, fmt.Errorf("deliverer is required")
	}
	if pool == nil {
		return nil, fmt.Errorf("scheduler is required")
	}
	if permissions == nil {
		return nil, fmt.Errorf("permission controller is required")
	}
	if kicker == nil {
		return nil, fmt.Errorf("kick workflow is required")
	}
	if entranceAgg == nil {
		return nil, fmt.Errorf("entrance aggregator is required")
	}
	if answerer == nil {
		return nil, fmt.Errorf("answerer is required")
	}
	if translator == nil {
		return nil, fmt.Errorf("translator is required")
	}

	s := &Service{
		verifications: verifications,
		schemes:       schemes,
		deliverer:     deliverer,
		pool:          pool,
		permissions:   permissions,
		kicker:        kicker,
		entrance:      entranceAgg,
		answerer:      answerer,
		translator:    translator,
		cfg:           Config{DefaultSeconds: defaultSeconds},
		logger:        slog.Default(),
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.cfg.DefaultSeconds <= 0 {
		s.cfg.DefaultSeconds = defaultSeconds
	}
	return s, nil
}

// HandleCallback processes one answer event and always acknowledges its
// callback id, success or failure. The returned outcome is for logging only.
func (s *Service) HandleCallback(ctx context.Context, event Event) Outcome {
	out := s.process(ctx, event)

	s.acknowledge(ctx, event.CallbackID, out)
	handledTotal.WithLabelValues(string(out.Verdict)).Inc()

	if out.Err != nil {
		if pkgerrors.IsValidation(out.Err) {
			s.logger.Info("callback rejected",
				"callback_id", event.CallbackID,
				"user_id", event.From.ID,
				"verification_id", out.VerificationID,
				"error", out.Err,
			)
		} else {
			s.logger.Error("callback handling failed",
				"callback_id", event.CallbackID,
				"user_id", event.From.ID,
				"payload", event.Payload,
				"verification_id", out.VerificationID,
				"error", out.Err,
			)
		}
	}
	return out
}

func (s *Service) process(ctx context.Context, event Event) Outcome {
	ans, err := parsePayload(event.Payload)
	if err != nil {
		return Outcome{Verdict: VerdictErrored, Err: err}
	}

	v, err := s.validityCheck(ctx, event.From.ID, ans.VerificationID)
	if err != nil {
		verdict := VerdictErrored
		if pkgerrors.IsValidation(err) {
			verdict = VerdictRejected
		}
		return Outcome{Verdict: verdict, VerificationID: ans.VerificationID, Err: err}
	}

	scheme, err := s.schemeFor(ctx, v.ChatID)
	if err != nil {
		return Outcome{Verdict: VerdictErrored, VerificationID: v.ID, Err: err}
	}

	var verdict Verdict
	if v.IsCorrect(ans.Chosen) {
		if err := s.handleCorrect(ctx, event, v); err != nil {
			return Outcome{Verdict: VerdictErrored, VerificationID: v.ID, Err: err}
		}
		verdict = VerdictPassed
	} else {
		if err := s.handleWrong(ctx, event, v, scheme); err != nil {
			return Outcome{Verdict: VerdictErrored, VerificationID: v.ID, Err: err}
		}
		verdict = VerdictWronged
	}

	if err := s.finishChat(ctx, v, ans.Chosen, scheme); err != nil {
		return Outcome{Verdict: VerdictErrored, VerificationID: v.ID, Err: err}
	}

	if s.recorder != nil {
		s.recorder.Emit(outcome.Event{
			ChatID:         v.ChatID,
			UserID:         v.TargetUserID,
			VerificationID: v.ID,
			Status:         string(verdict),
			ElapsedSeconds: s.elapsedSeconds(v),
		})
	}
	return Outcome{Verdict: verdict, VerificationID: v.ID}
}

// validityCheck fetches the verification and rejects answers from the wrong
// user or against a record that already left the waiting state. The status
// check is also the only guard against duplicate callback delivery.
func (s *Service) validityCheck(ctx context.Context, callerID, verificationID int64) (*models.Verification, error) {
	v, err := s.verifications.GetByID(ctx, verificationID)
	if err != nil {
		return nil, err
	}
	if v.TargetUserID != callerID {
		return nil, pkgerrors.Newf(pkgerrors.CodeTargetMismatch,
			"verification %d belongs to user %d, answered by %d", v.ID, v.TargetUserID, callerID)
	}
	if v.Status != models.StatusWaiting {
		return nil, pkgerrors.Newf(pkgerrors.CodeAlreadyProcessed,
			"verification %d is already %s", v.ID, v.Status)
	}
	return v, nil
}

func (s *Service) handleCorrect(ctx context.Context, event Event, v *models.Verification) error {
	if err := s.verifications.UpdateStatus(ctx, v.ID, models.StatusPassed); err != nil {
		return err
	}

	s.pool.Submit(&derestrictJob{permissions: s.permissions, chatID: v.ChatID, userID: v.TargetUserID})
	s.pool.Submit(&deleteMessageJob{deliverer: s.deliverer, chatID: v.TargetUserID, messageID: event.MessageID})
	s.pool.Submit(&privateNoticeJob{
		deliverer: s.deliverer,
		userID:    v.TargetUserID,
		text:      s.translator.Translate("verification.passed.private", nil),
	})

	mention := markup.Mention(event.From, markup.MentionOptions{Anonymize: s.cfg.Anonymize})
	text := s.translator.Translate("verification.passed.public", map[string]any{
		"mention": mention,
		"seconds": s.elapsedSeconds(v),
	})
	s.pool.Submit(&publicNoticeJob{
		deliverer: s.deliverer,
		pool:      s.pool,
		chatID:    v.ChatID,
		text:      text,
		ttl:       publicNoticeTTL,
	})
	return nil
}

func (s *Service) handleWrong(ctx context.Context, event Event, v *models.Verification, scheme *models.Scheme) error {
	if err := s.verifications.UpdateStatus(ctx, v.ID, models.StatusWronged); err != nil {
		return err
	}

	// The record stays wronged on an unsupported method; no rollback.
	if scheme.KillingMethod != models.KillKick {
		return pkgerrors.Newf(pkgerrors.CodeUnsupported,
			"killing method %q is not implemented", scheme.KillingMethod)
	}

	s.pool.Submit(&deleteMessageJob{deliverer: s.deliverer, chatID: v.TargetUserID, messageID: event.MessageID})
	s.pool.Submit(&privateNoticeJob{
		deliverer: s.deliverer,
		userID:    v.TargetUserID,
		text:      s.translator.Translate("verification.wronged.private", nil),
	})

	if err := s.kicker.Kick(ctx, v.ChatID, event.From, kick.ReasonWronged); err != nil {
		return pkgerrors.Wrap(err, pkgerrors.CodeInternal, "kick workflow")
	}
	return nil
}

// finishChat persists the chosen answer and recomputes the chat's entrance
// message. The chosen write happens on both branches and is not idempotent
// against duplicate delivery. The count read races concurrent answers; a
// stale >0 count skips the delete and is accepted.
func (s *Service) finishChat(ctx context.Context, v *models.Verification, chosen int, scheme *models.Scheme) error {
	if err := s.verifications.UpdateChosen(ctx, v.ID, chosen); err != nil {
		return err
	}

	count, err := s.verifications.CountWaitingByChat(ctx, v.ChatID)
	if err != nil {
		return pkgerrors.Wrap(err, pkgerrors.CodePersistence, "count waiting verifications")
	}
	if count == 0 {
		return s.entrance.DeleteMessage(ctx, v.ChatID)
	}

	seconds := scheme.Seconds
	if seconds <= 0 {
		seconds = s.cfg.DefaultSeconds
	}
	_, err = s.entrance.UpdateMessage(ctx, v.ChatID, count, seconds)
	return err
}

func (s *Service) schemeFor(ctx context.Context, chatID int64) (*models.Scheme, error) {
	scheme, err := s.schemes.FetchByChat(ctx, chatID)
	if err != nil {
		if pkgerrors.Is(err, pkgerrors.CodeNotFound) {
			return &models.Scheme{
				ChatID:        chatID,
				KillingMethod: models.KillKick,
				Seconds:       s.cfg.DefaultSeconds,
			}, nil
		}
		return nil, err
	}
	return scheme, nil
}

func (s *Service) elapsedSeconds(v *models.Verification) int {
	elapsed := int(s.now().Sub(v.CreatedAt).Seconds())
	if elapsed < 0 {
		elapsed = 0
	}
	return elapsed
}

// acknowledge answers the callback. Failures show a translated alert for
// validation errors and a generic one otherwise; an answer failure itself is
// only logged, never propagated.
func (s *Service) acknowledge(ctx context.Context, callbackID string, out Outcome) {
	params := telegram.AnswerCallbackQueryParams{CallbackQueryID: callbackID}
	if out.Err != nil {
		key := i18n.AlertKey(string(pkgerrors.CodeOf(out.Err)))
		params.Text = s.translator.Translate(key, nil)
		params.ShowAlert = true
	}
	if err := s.answerer.AnswerCallbackQuery(ctx, params); err != nil {
		s.logger.Error("answer callback failed", "callback_id", callbackID, "error", err)
	}
}
