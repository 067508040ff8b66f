package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/btx638/policr-mini/internal/platform/metrics"
	"github.com/btx638/policr-mini/internal/verification/service"
)

type recordingDispatcher struct {
	events []service.Event
}

func (d *recordingDispatcher) HandleCallback(_ context.Context, event service.Event) service.Outcome {
	d.events = append(d.events, event)
	return service.Outcome{Verdict: service.VerdictPassed}
}

var (
	transportMetrics     *metrics.Metrics
	transportMetricsOnce sync.Once
)

// sharedMetrics avoids duplicate prometheus registration across test cases.
func sharedMetrics() *metrics.Metrics {
	transportMetricsOnce.Do(func() {
		transportMetrics = metrics.New()
	})
	return transportMetrics
}

type UpdateHandlerSuite struct {
	suite.Suite
	dispatcher *recordingDispatcher
	router     http.Handler
}

func TestUpdateHandlerSuite(t *testing.T) {
	suite.Run(t, new(UpdateHandlerSuite))
}

func (s *UpdateHandlerSuite) SetupTest() {
	logger := slog.New(slog.DiscardHandler)
	s.dispatcher = &recordingDispatcher{}
	handler := NewUpdateHandler(s.dispatcher, sharedMetrics(), logger)
	s.router = NewRouter(handler, RouterConfig{WebhookSecret: "hunter2"}, logger)
}

func (s *UpdateHandlerSuite) post(body, secret string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/updates", strings.NewReader(body))
	if secret != "" {
		req.Header.Set("X-Telegram-Bot-Api-Secret-Token", secret)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *UpdateHandlerSuite) TestCallbackExtracted() {
	body := `{
		"update_id": 7,
		"callback_query": {
			"id": "cb-9",
			"from": {"id": 42, "first_name": "Joiner"},
			"message": {"message_id": 555, "chat": {"id": -100}},
			"data": "v1:2:13"
		}
	}`
	rec := s.post(body, "hunter2")

	s.Equal(http.StatusOK, rec.Code)
	s.Require().Len(s.dispatcher.events, 1)
	event := s.dispatcher.events[0]
	s.Equal("cb-9", event.CallbackID)
	s.Equal(int64(42), event.From.ID)
	s.Equal(int64(555), event.MessageID)
	s.Equal("v1:2:13", event.Payload)
}

func (s *UpdateHandlerSuite) TestNonCallbackUpdateIgnored() {
	rec := s.post(`{"update_id": 8}`, "hunter2")

	s.Equal(http.StatusOK, rec.Code)
	s.Empty(s.dispatcher.events)
}

func (s *UpdateHandlerSuite) TestBadSecretRejected() {
	s.Run("wrong secret", func() {
		rec := s.post(`{"update_id": 9}`, "wrong")
		s.Equal(http.StatusUnauthorized, rec.Code)
		s.Empty(s.dispatcher.events)
	})

	s.Run("missing secret", func() {
		rec := s.post(`{"update_id": 9}`, "")
		s.Equal(http.StatusUnauthorized, rec.Code)
		s.Empty(s.dispatcher.events)
	})
}

func (s *UpdateHandlerSuite) TestUndecodableBody() {
	rec := s.post(`{not json`, "hunter2")
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *UpdateHandlerSuite) TestHealth() {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"status":"ok"}`, rec.Body.String())
}
