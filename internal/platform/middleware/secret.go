package middleware

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
)

// secretHeader is the header the platform attaches to webhook deliveries.
const secretHeader = "X-Telegram-Bot-Api-Secret-Token"

// RequireSecret rejects update deliveries whose secret token header does not
// match the configured value. An empty configured secret disables the check,
// which is only acceptable behind a trusted ingress.
func RequireSecret(secret string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if secret != "" {
				got := r.Header.Get(secretHeader)
				if subtle.ConstantTimeCompare([]byte(got), []byte(secret)) != 1 {
					logger.WarnContext(r.Context(), "update rejected - bad secret token",
						"remote_addr", r.RemoteAddr,
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusUnauthorized)
					_, _ = w.Write([]byte(`{"error":"unauthorized"}`))
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
