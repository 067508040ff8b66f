package delivery

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/btx638/policr-mini/internal/telegram"
)

// scriptedAPI returns the queued error for each attempt, then succeeds.
type scriptedAPI struct {
	errs  []error
	calls int
	sent  []telegram.SendMessageParams
}

func (a *scriptedAPI) next() error {
	a.calls++
	if len(a.errs) == 0 {
		return nil
	}
	err := a.errs[0]
	a.errs = a.errs[1:]
	return err
}

func (a *scriptedAPI) SendMessage(_ context.Context, params telegram.SendMessageParams) (*telegram.Message, error) {
	if err := a.next(); err != nil {
		return nil, err
	}
	a.sent = append(a.sent, params)
	return &telegram.Message{MessageID: int64(a.calls), Chat: telegram.Chat{ID: params.ChatID}}, nil
}

func (a *scriptedAPI) SendPhoto(_ context.Context, params telegram.SendPhotoParams) (*telegram.Message, error) {
	if err := a.next(); err != nil {
		return nil, err
	}
	return &telegram.Message{MessageID: int64(a.calls), Chat: telegram.Chat{ID: params.ChatID}}, nil
}

func (a *scriptedAPI) EditMessageText(_ context.Context, params telegram.EditMessageTextParams) (*telegram.Message, error) {
	if err := a.next(); err != nil {
		return nil, err
	}
	return &telegram.Message{MessageID: params.MessageID, Chat: telegram.Chat{ID: params.ChatID}}, nil
}

func (a *scriptedAPI) DeleteMessage(context.Context, int64, int64) error {
	return a.next()
}

func (a *scriptedAPI) RestrictChatMember(context.Context, telegram.RestrictChatMemberParams) error {
	return a.next()
}

func (a *scriptedAPI) BanChatMember(context.Context, int64, int64) error   { return a.next() }
func (a *scriptedAPI) UnbanChatMember(context.Context, int64, int64) error { return a.next() }

func (a *scriptedAPI) AnswerCallbackQuery(context.Context, telegram.AnswerCallbackQueryParams) error {
	return a.next()
}

func (a *scriptedAPI) SendChatAction(context.Context, int64, string) error { return a.next() }

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func rateLimitErr() error {
	return &telegram.APIError{Code: 429, Description: "Too Many Requests: retry after 3"}
}

type DelivererSuite struct {
	suite.Suite
	api    *scriptedAPI
	slept  []time.Duration
	jitter float64
}

func TestDelivererSuite(t *testing.T) {
	suite.Run(t, new(DelivererSuite))
}

func (s *DelivererSuite) SetupTest() {
	s.api = &scriptedAPI{}
	s.slept = nil
	s.jitter = 1.0
}

func (s *DelivererSuite) deliverer() *Deliverer {
	return New(s.api,
		WithSleep(func(d time.Duration) { s.slept = append(s.slept, d) }),
		WithJitter(func() float64 { return s.jitter }),
	)
}

func (s *DelivererSuite) TestSendText() {
	ctx := context.Background()

	s.Run("default call escapes punctuation and suppresses noise", func() {
		s.SetupTest()
		_, err := s.deliverer().SendText(ctx, 100, "1 + 1 = 2.")
		s.NoError(err)
		s.Require().Len(s.api.sent, 1)
		sent := s.api.sent[0]
		s.Equal(`1 \+ 1 \= 2\.`, sent.Text)
		s.Equal(telegram.ParseModeMarkdownV2, sent.ParseMode)
		s.True(sent.DisableNotification)
		s.True(sent.DisableWebPagePreview)
	})

	s.Run("rich mode renders markdown to richtext", func() {
		s.SetupTest()
		_, err := s.deliverer().SendText(ctx, 100, "*done*", WithMode(ModeRich))
		s.NoError(err)
		s.Require().Len(s.api.sent, 1)
		s.Equal("<b>done</b>", s.api.sent[0].Text)
		s.Equal(telegram.ParseModeHTML, s.api.sent[0].ParseMode)
	})

	s.Run("raw mode passes text through", func() {
		s.SetupTest()
		_, err := s.deliverer().SendText(ctx, 100, "a.b", WithMode(ModeRaw))
		s.NoError(err)
		s.Require().Len(s.api.sent, 1)
		s.Equal("a.b", s.api.sent[0].Text)
	})
}

func (s *DelivererSuite) TestTimeoutRetry() {
	ctx := context.Background()

	s.Run("budget two and two timeouts makes exactly three attempts", func() {
		s.SetupTest()
		s.api.errs = []error{timeoutErr{}, timeoutErr{}}
		msg, err := s.deliverer().SendText(ctx, 1, "hi", WithRetryBudget(2))
		s.NoError(err)
		s.NotNil(msg)
		s.Equal(3, s.api.calls)
		s.Empty(s.slept, "timeouts retry with zero delay")
	})

	s.Run("exhausted budget returns last error without a fourth attempt", func() {
		s.SetupTest()
		s.api.errs = []error{timeoutErr{}, timeoutErr{}, timeoutErr{}}
		_, err := s.deliverer().SendText(ctx, 1, "hi", WithRetryBudget(2))
		s.Error(err)
		s.True(telegram.IsTimeout(err))
		s.Equal(3, s.api.calls)
	})
}

func (s *DelivererSuite) TestRateLimitBackoff() {
	ctx := context.Background()

	s.Run("delay scales with remaining budget and jitter", func() {
		s.SetupTest()
		s.jitter = 0.4
		s.api.errs = []error{rateLimitErr(), rateLimitErr()}
		_, err := s.deliverer().SendText(ctx, 1, "hi", WithRetryBudget(5))
		s.NoError(err)
		s.Equal(3, s.api.calls)
		s.Require().Len(s.slept, 2)
		s.Equal(time.Duration(float64(800*time.Millisecond)*5*0.4), s.slept[0])
		s.Equal(time.Duration(float64(800*time.Millisecond)*4*0.4), s.slept[1])
	})

	s.Run("zero budget fails immediately without sleeping", func() {
		s.SetupTest()
		s.api.errs = []error{rateLimitErr()}
		_, err := s.deliverer().SendText(ctx, 1, "hi", WithRetryBudget(0))
		s.Error(err)
		s.Equal(1, s.api.calls)
		s.Empty(s.slept)
	})
}

func (s *DelivererSuite) TestNonRetriableError() {
	ctx := context.Background()

	s.SetupTest()
	fatal := &telegram.APIError{Code: 400, Description: "Bad Request: chat not found"}
	s.api.errs = []error{fatal}
	_, err := s.deliverer().SendText(ctx, 1, "hi")
	s.Error(err)
	s.True(errors.Is(err, fatal) || err.Error() == fatal.Error())
	s.Equal(1, s.api.calls)
}

func (s *DelivererSuite) TestDeleteMessage() {
	ctx := context.Background()

	s.SetupTest()
	s.api.errs = []error{timeoutErr{}}
	err := s.deliverer().DeleteMessage(ctx, 7, 42)
	s.NoError(err)
	s.Equal(2, s.api.calls)
}
