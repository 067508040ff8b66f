package httptransport

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/btx638/policr-mini/internal/platform/metrics"
	"github.com/btx638/policr-mini/internal/telegram"
	"github.com/btx638/policr-mini/internal/verification/service"
)

// Dispatcher is the slice of the verification service the ingress calls.
type Dispatcher interface {
	HandleCallback(ctx context.Context, event service.Event) service.Outcome
}

// UpdateHandler turns webhook update envelopes into dispatcher events.
type UpdateHandler struct {
	dispatcher Dispatcher
	metrics    *metrics.Metrics
	logger     *slog.Logger
}

func NewUpdateHandler(dispatcher Dispatcher, m *metrics.Metrics, logger *slog.Logger) *UpdateHandler {
	return &UpdateHandler{dispatcher: dispatcher, metrics: m, logger: logger}
}

// HandleUpdate accepts one update. The platform retries deliveries that do not
// get a 2xx, so every processed or ignored update answers 200; only an
// unreadable body is a client error.
func (h *UpdateHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var update telegram.Update
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		h.logger.WarnContext(r.Context(), "undecodable update", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	cb := update.CallbackQuery
	if cb == nil || cb.Message == nil {
		h.metrics.UpdatesIgnored.Inc()
		w.WriteHeader(http.StatusOK)
		return
	}
	h.metrics.UpdatesReceived.Inc()

	out := h.dispatcher.HandleCallback(r.Context(), service.Event{
		CallbackID: cb.ID,
		From:       cb.From,
		MessageID:  cb.Message.MessageID,
		Payload:    cb.Data,
	})
	h.logger.DebugContext(r.Context(), "update handled",
		"update_id", update.UpdateID,
		"verdict", out.Verdict,
	)
	w.WriteHeader(http.StatusOK)
}
