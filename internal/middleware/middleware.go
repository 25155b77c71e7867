package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	handlers "quillhub/internal/handler"
	"quillhub/internal/logging"
	"quillhub/internal/requestctx"
	"quillhub/internal/service"
	"quillhub/internal/sessioncookie"
)

type Middleware func(http.Handler) http.Handler

const RequestIDHeader = "X-Request-ID"

// SessionMiddleware resolves the session cookie into a request identity.
// Requests without a valid session continue anonymously and a stale cookie
// is cleared. Handlers decide whether anonymous access is allowed.
func SessionMiddleware(sessions service.SessionService, cookie sessioncookie.Cookie, log logging.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := cookie.Read(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			session, user, err := sessions.Validate(r.Context(), token)
			if err != nil {
				log.Error(r.Context(), "session lookup failed", "error", err)
				handlers.WriteError(w, "Internal server error", http.StatusInternalServerError)
				return
			}
			if user == nil {
				cookie.Clear(w)
				next.ServeHTTP(w, r)
				return
			}

			ctx := requestctx.WithIdentity(r.Context(), &requestctx.Identity{
				User:    user,
				Session: session,
				Token:   token,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func CORSMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+RequestIDHeader)

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// LoggingMiddleware tags the request with an id and logs one line per request.
func LoggingMiddleware(log logging.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get(RequestIDHeader)
			if requestID == "" {
				requestID = uuid.NewString()
			}
			w.Header().Set(RequestIDHeader, requestID)

			ctx := requestctx.WithRequestID(r.Context(), requestID)
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			start := time.Now()

			next.ServeHTTP(rec, r.WithContext(ctx))

			log.Info(ctx, "request",
				"request_id", requestID,
				"method", r.Method,
				"path", r.URL.Path,
				"status", rec.status,
				"duration", time.Since(start),
			)
		})
	}
}

func RecoverMiddleware(log logging.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if p := recover(); p != nil {
					log.Error(r.Context(), "panic in handler",
						"panic", fmt.Sprint(p),
						"path", r.URL.Path,
						"request_id", requestctx.RequestIDFromContext(r.Context()),
					)
					handlers.WriteError(w, "Internal server error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// Chain wraps h so that the first middleware is the innermost.
func Chain(h http.Handler, middlewares ...Middleware) http.Handler {
	for _, m := range middlewares {
		h = m(h)
	}
	return h
}
