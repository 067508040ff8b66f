// Package httptransport is the thin HTTP layer. It delegates to domain
// services without embedding business logic so transport concerns remain
// isolated.
package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/btx638/policr-mini/internal/platform/middleware"
)

// RouterConfig carries the transport-level wiring knobs.
type RouterConfig struct {
	WebhookSecret string
}

// NewRouter wires all public endpoints. Updates are the only authenticated
// surface; health and metrics stay open for the ingress and the scraper.
func NewRouter(h *UpdateHandler, cfg RouterConfig, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)

	r.Get("/healthz", handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireSecret(cfg.WebhookSecret, logger))
		r.Post("/updates", h.HandleUpdate)
	})
	return r
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
