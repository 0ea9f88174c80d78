package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/httprate"
)

// BurstGuardConfig holds the per-IP burst guard configuration
type BurstGuardConfig struct {
	RequestsPerMinute int
}

// DefaultBurstGuard returns the default burst guard config. The ceiling sits
// well above the game's own per-IP attempt limit so legitimate players never
// hit it; it exists to shed abusive floods before they reach the store.
func DefaultBurstGuard() BurstGuardConfig {
	return BurstGuardConfig{
		RequestsPerMinute: 120,
	}
}

// BurstGuardByIP creates a middleware that caps raw request volume per client
// IP using an in-process counter
func BurstGuardByIP(config BurstGuardConfig) func(next http.Handler) http.Handler {
	return httprate.Limit(
		config.RequestsPerMinute,
		1*time.Minute,
		httprate.WithKeyByRealIP(),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"error":"Too many requests"}`))
		}),
	)
}
