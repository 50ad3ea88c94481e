package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/2beens/healthtrack/internal/audit"
	"github.com/2beens/healthtrack/internal/telemetry/metrics"
	"github.com/2beens/healthtrack/pkg"

	"github.com/go-redis/redis_rate/v9"
	log "github.com/sirupsen/logrus"
)

type RequestRateLimiter interface {
	Allow(ctx context.Context, key string, limit redis_rate.Limit) (*redis_rate.Result, error)
}

type AuditLogger interface {
	Log(r *http.Request, action string, details audit.Details)
}

// RateLimitKey is the limiter key of a client calling a route.
func RateLimitKey(routeName, clientIP string) string {
	return routeName + ":" + clientIP
}

// RateLimit allows allowedPerMin requests per minute for every client IP on the route.
func RateLimit(
	rateLimiter RequestRateLimiter,
	routeName string,
	allowedPerMin int,
	metricsManager *metrics.Manager,
	auditLogger AuditLogger,
) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			clientIP, err := pkg.ReadUserIP(r)
			if err != nil {
				clientIP = "unknown"
			}

			res, err := rateLimiter.Allow(
				r.Context(),
				RateLimitKey(routeName, clientIP),
				redis_rate.PerMinute(allowedPerMin),
			)
			if err != nil {
				log.Errorf("rate limit [%s] for %s: %s", routeName, clientIP, err)
				pkg.WriteJSONError(w, "rate limit internal error", http.StatusInternalServerError)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(allowedPerMin))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(max(0, res.Remaining)))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(res.ResetAfter).UnixMilli(), 10))

			if res.Allowed > 0 {
				next.ServeHTTP(w, r)
				return
			}

			if metricsManager != nil {
				metricsManager.CounterRateLimitedRequests.WithLabelValues(routeName).Inc()
			}
			if auditLogger != nil {
				auditLogger.Log(r, "rate_limit_block", audit.Details{"path": r.URL.Path})
			}

			if res.RetryAfter > 0 {
				w.Header().Set("Retry-After", strconv.Itoa(int(res.RetryAfter.Seconds()+0.5)))
			}
			pkg.WriteJSONError(w, "Too many requests", http.StatusTooManyRequests)
		})
	}
}
