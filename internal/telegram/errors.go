package telegram

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
)

// rateLimitPrefix is the description prefix the platform returns on 429s. The
// delivery layer keys its backoff branch off this exact prefix.
const rateLimitPrefix = "Too Many Requests"

// APIError is a non-2xx response from the platform API.
type APIError struct {
	Code        int
	Description string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("telegram: %d %s", e.Code, e.Description)
}

// IsRateLimited reports whether the error is the platform's rate-limit
// rejection, identified by its description prefix.
func IsRateLimited(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return strings.HasPrefix(apiErr.Description, rateLimitPrefix)
	}
	return false
}

// IsTimeout reports whether the error is a transport-level timeout, which the
// delivery layer retries immediately.
func IsTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
