package api

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"runtime/debug"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Dubemernest23/akuko/errs"
	"github.com/Dubemernest23/akuko/metrics"
	"github.com/Dubemernest23/akuko/session"
)

type sessionMiddleware struct {
	responder Responder
	sessions  *session.Manager
}

func newSessionMiddleware(sessions *session.Manager, development bool) sessionMiddleware {
	logger := log.With().Str("handlerName", "sessionMiddleware").Logger()
	return sessionMiddleware{
		responder: NewResponder(logger, development),
		sessions:  sessions,
	}
}

// authenticate resolves the session cookie and puts the admin ID on the
// request context. Requests without a live session get a 401.
func (m sessionMiddleware) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(session.CookieName)
		if err != nil || cookie.Value == "" {
			m.responder.WriteError(w, errs.Unauthorized)
			return
		}

		adminID, err := m.sessions.Resolve(r.Context(), cookie.Value)
		if err != nil {
			if errors.Is(err, session.ErrNoSession) {
				m.responder.WriteError(w, errs.Unauthorized)
				return
			}
			m.responder.WriteError(w, err)
			return
		}

		updatedReq := r.WithContext(ctxWithAdminID(r.Context(), adminID))
		next.ServeHTTP(w, updatedReq)
	})
}

// loginRateLimiter limits login attempts per client IP using Redis counters.
func loginRateLimiter(rdb *redis.Client, responder Responder, limit int64, window time.Duration) func(http.Handler) http.Handler {
	const limiterName = "login"
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := fmt.Sprintf("akuko:rl:%s:%s", limiterName, clientIP(r))

			count, err := rdb.Incr(r.Context(), key).Result()
			if err != nil {
				responder.WriteError(w, errs.NewInternalError("rate limiter failed"))
				return
			}
			if count == 1 {
				_ = rdb.Expire(r.Context(), key, window).Err()
			}
			if count > limit {
				metrics.IncRateLimit(limiterName)
				w.Header().Set("Retry-After", fmt.Sprintf("%.f", window.Seconds()))
				responder.WriteError(w, errs.NewTooManyRequestsError("too many login attempts"))
				return
			}
			w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", limit))
			w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", limit-count))
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP prefers the first X-Forwarded-For hop, falling back to the socket
// address. The app runs behind a trusted proxy in production.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		for i := 0; i < len(fwd); i++ {
			if fwd[i] == ',' {
				return fwd[:i]
			}
		}
		return fwd
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

type statusResponseWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *statusResponseWriter) WriteHeader(statusCode int) {
	if !w.wroteHeader {
		w.status = statusCode
		w.wroteHeader = true
		w.ResponseWriter.WriteHeader(statusCode)
	}
}

// LogInternalServerErrors recovers from handler panics, logs the stack and
// answers 500 so a single bad request never takes the process down.
func LogInternalServerErrors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		srw := &statusResponseWriter{ResponseWriter: w, status: 200}

		defer func() {
			if err := recover(); err != nil {
				log.Error().
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Interface("panic", err).
					Str("stack", string(debug.Stack())).
					Msg("Recovered from panic")

				// Write 500 if nothing written yet
				if !srw.wroteHeader {
					srw.WriteHeader(http.StatusInternalServerError)
				}
			}
		}()

		next.ServeHTTP(srw, r)

		// Log 500s that weren't panics (e.g. manually set by handlers)
		if srw.status == http.StatusInternalServerError {
			log.Error().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Msg("500 error response")
		}
	})
}

// ColoredHTTPLoggingMiddleware logs HTTP requests with colored output based on status codes
func ColoredHTTPLoggingMiddleware(next http.Handler) http.Handler {
	// Set up colored console writer for development
	colorLogger := zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}).With().Timestamp().Logger()

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		srw := &statusResponseWriter{ResponseWriter: w, status: 200}

		next.ServeHTTP(srw, r)

		duration := time.Since(start)

		var logEvent *zerolog.Event
		switch {
		case srw.status >= 500:
			logEvent = colorLogger.Error()
		case srw.status >= 400:
			logEvent = colorLogger.Warn()
		default:
			logEvent = colorLogger.Info()
		}

		logEvent.
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", srw.status).
			Dur("duration", duration).
			Str("remote_addr", r.RemoteAddr).
			Msg("HTTP Request")
	})
}
