package http

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/finebook/finebook/internal/auth"
	"github.com/finebook/finebook/internal/infra"
	uc "github.com/finebook/finebook/internal/usecase"
)

// TokenVerifier turns a bearer token into an identity.
type TokenVerifier interface {
	Verify(token string) (*auth.Identity, error)
}

// Limiter is satisfied by ratelimit.RateLimiter.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, int, error)
}

// Authenticate attaches the bearer token's identity to the request context.
// Requests without an Authorization header stay anonymous.
func Authenticate(v TokenVerifier) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok {
				errorResp(w, http.StatusUnauthorized, string(uc.KindUnauthenticated), "expected bearer token")
				return
			}
			id, err := v.Verify(token)
			if err != nil {
				errorResp(w, http.StatusUnauthorized, string(uc.KindUnauthenticated), err.Error())
				return
			}
			next.ServeHTTP(w, r.WithContext(auth.WithIdentity(r.Context(), id)))
		})
	}
}

// RateLimit rejects callers over the limit with 429. Calls are keyed by
// identity, or by remote address for anonymous callers. The limiter failing
// lets the call through.
func RateLimit(l Limiter, log infra.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			allowed, count, err := l.Allow(r.Context(), rateKey(r))
			if err != nil {
				log.Warnf("rate limiter: %v", err)
				next.ServeHTTP(w, r)
				return
			}
			if !allowed {
				w.Header().Set("Retry-After", "1")
				errorResp(w, http.StatusTooManyRequests, "resource-exhausted",
					"rate limit exceeded ("+strconv.Itoa(count)+" calls)")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func rateKey(r *http.Request) string {
	if id := auth.FromContext(r.Context()); id != nil {
		return "sub:" + id.Subject
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return "addr:" + host
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// Instrument records call counts and latency per procedure.
func Instrument(m *infra.Metrics) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			procedure := r.URL.Path
			if route := mux.CurrentRoute(r); route != nil {
				if tmpl, err := route.GetPathTemplate(); err == nil {
					procedure = tmpl
				}
			}
			procedure = strings.TrimPrefix(procedure, "/")

			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			start := time.Now()
			next.ServeHTTP(rec, r)
			m.Duration.WithLabelValues(procedure).Observe(time.Since(start).Seconds())
			m.Requests.WithLabelValues(procedure, strconv.Itoa(rec.status)).Inc()
		})
	}
}
