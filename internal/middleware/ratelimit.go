package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/httprate"

	"github.com/AdilKhanbpk/RemoteGuied-blog-sub001/internal/metrics"
)

// RateLimiter limits requests per client IP over a sliding window. The
// client IP is the connection's RemoteAddr; forwarded headers only count
// when chi's RealIP middleware has already rewritten RemoteAddr.
type RateLimiter struct {
	name    string
	limiter func(http.Handler) http.Handler
}

func NewRateLimiter(name string, limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{name: name}
	rl.limiter = httprate.Limit(
		limit,
		window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(rl.onLimit),
	)
	return rl
}

func (rl *RateLimiter) onLimit(w http.ResponseWriter, _ *http.Request) {
	metrics.RateLimitHits.WithLabelValues(rl.name).Inc()
	writeJSONError(w, http.StatusTooManyRequests, "Too many requests")
}

func (rl *RateLimiter) Limit(next http.Handler) http.Handler {
	return rl.limiter(next)
}
