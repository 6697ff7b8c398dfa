package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/learnhub/lms-webclient/internal/models"
	"github.com/learnhub/lms-webclient/internal/services"
	"go.uber.org/zap"
)

// Session id transport
const (
	SessionCookieName = "lms_session"
	SessionHeader     = "X-Session-ID"
)

const sessionKey contextKey = "session"

// SessionLoader resolves a session id to a live session.
// Unknown and expired ids yield services.ErrUnauthenticated.
type SessionLoader interface {
	Session(ctx context.Context, sessionID string) (*models.Session, error)
}

// SessionID extracts the session id from the session cookie or, failing that, the session header
func SessionID(r *http.Request) string {
	if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	return r.Header.Get(SessionHeader)
}

// SessionMiddleware loads the request's session into the context.
// Requests without a live session get 401.
func SessionMiddleware(loader SessionLoader, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := SessionID(r)
			if id == "" {
				writeUnauthorized(w)
				return
			}

			sess, err := loader.Session(r.Context(), id)
			switch {
			case err == nil && sess != nil:
			case err == nil, errors.Is(err, services.ErrUnauthenticated):
				logger.Debug("session rejected",
					zap.String("request_id", GetRequestID(r.Context())),
					zap.Error(err),
				)
				writeUnauthorized(w)
				return
			default:
				logger.Error("failed to load session",
					zap.String("request_id", GetRequestID(r.Context())),
					zap.Error(err),
				)
				writeJSONError(w, http.StatusInternalServerError, "failed to load session")
				return
			}

			ctx := context.WithValue(r.Context(), sessionKey, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetSession retrieves the session from context
func GetSession(ctx context.Context) (*models.Session, bool) {
	sess, ok := ctx.Value(sessionKey).(*models.Session)
	return sess, ok
}

// WithSession returns a copy of ctx carrying sess
func WithSession(ctx context.Context, sess *models.Session) context.Context {
	return context.WithValue(ctx, sessionKey, sess)
}

func writeUnauthorized(w http.ResponseWriter) {
	writeJSONError(w, http.StatusUnauthorized, "authentication required")
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
