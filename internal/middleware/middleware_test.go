package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/learnhub/lms-webclient/internal/models"
	"github.com/learnhub/lms-webclient/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// mockLoader is a mock implementation of SessionLoader
type mockLoader struct {
	sessions map[string]*models.Session
	err      error
}

func (m *mockLoader) Session(ctx context.Context, sessionID string) (*models.Session, error) {
	if m.err != nil {
		return nil, m.err
	}
	if sess, ok := m.sessions[sessionID]; ok {
		return sess, nil
	}
	return nil, services.ErrUnauthenticated
}

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestRequestIDMiddleware(t *testing.T) {
	tests := []struct {
		name     string
		header   string
		expected string
	}{
		{name: "keeps incoming id", header: "abc-123", expected: "abc-123"},
		{name: "generates id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen string
			h := RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen = GetRequestID(r.Context())
			}))
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("X-Request-ID", tt.header)
			}
			w := httptest.NewRecorder()

			h.ServeHTTP(w, req)

			require.NotEmpty(t, seen)
			if tt.expected != "" {
				assert.Equal(t, tt.expected, seen)
			}
			assert.Equal(t, seen, w.Header().Get("X-Request-ID"))
		})
	}
}

func TestRecoveryMiddleware(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	h := RecoveryMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))
	w := httptest.NewRecorder()

	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, w.Body.String())
}

func TestRequestSizeLimitMiddleware(t *testing.T) {
	h := RequestSizeLimitMiddleware(8)(http.HandlerFunc(okHandler))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("small")))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("much too large")))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestCORSMiddleware(t *testing.T) {
	tests := []struct {
		name           string
		allowed        []string
		origin         string
		method         string
		expectedOrigin string
		expectedStatus int
	}{
		{name: "wildcard echoes origin", allowed: []string{"*"}, origin: "http://app.local", method: http.MethodGet, expectedOrigin: "http://app.local", expectedStatus: http.StatusOK},
		{name: "listed origin", allowed: []string{"http://app.local"}, origin: "http://APP.local", method: http.MethodGet, expectedOrigin: "http://APP.local", expectedStatus: http.StatusOK},
		{name: "unlisted origin", allowed: []string{"http://app.local"}, origin: "http://evil.local", method: http.MethodGet, expectedStatus: http.StatusOK},
		{name: "no origin", allowed: []string{"*"}, method: http.MethodGet, expectedStatus: http.StatusOK},
		{name: "preflight", allowed: []string{"*"}, origin: "http://app.local", method: http.MethodOptions, expectedOrigin: "http://app.local", expectedStatus: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := CORSMiddleware(tt.allowed)(http.HandlerFunc(okHandler))
			req := httptest.NewRequest(tt.method, "/", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			w := httptest.NewRecorder()

			h.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectedOrigin, w.Header().Get("Access-Control-Allow-Origin"))
			assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), SessionHeader)
		})
	}
}

func TestSessionMiddleware(t *testing.T) {
	live := &models.Session{ID: "live", Email: "student@example.com"}
	loader := &mockLoader{sessions: map[string]*models.Session{"live": live}}
	logger, _ := zap.NewDevelopment()

	tests := []struct {
		name           string
		cookie         string
		header         string
		expectedStatus int
	}{
		{name: "cookie", cookie: "live", expectedStatus: http.StatusOK},
		{name: "header", header: "live", expectedStatus: http.StatusOK},
		{name: "cookie wins over header", cookie: "live", header: "stale", expectedStatus: http.StatusOK},
		{name: "unknown session", cookie: "stale", expectedStatus: http.StatusUnauthorized},
		{name: "no session", expectedStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen *models.Session
			h := SessionMiddleware(loader, logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen, _ = GetSession(r.Context())
			}))
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: tt.cookie})
			}
			if tt.header != "" {
				req.Header.Set(SessionHeader, tt.header)
			}
			w := httptest.NewRecorder()

			h.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				assert.Equal(t, live, seen)
			} else {
				assert.Nil(t, seen)
				assert.JSONEq(t, `{"error":"authentication required"}`, w.Body.String())
			}
		})
	}
}

func TestSessionMiddleware_LoaderFailure(t *testing.T) {
	tests := []struct {
		name            string
		err             error
		expectedStatus  int
		expectedMessage string
	}{
		{
			name:            "expired session",
			err:             fmt.Errorf("lookup: %w", services.ErrUnauthenticated),
			expectedStatus:  http.StatusUnauthorized,
			expectedMessage: "authentication required",
		},
		{
			name:            "store unavailable",
			err:             fmt.Errorf("failed to get session: %w", errors.New("dial tcp 127.0.0.1:6379: connection refused")),
			expectedStatus:  http.StatusInternalServerError,
			expectedMessage: "failed to load session",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zap.DebugLevel)
			called := false
			h := SessionMiddleware(&mockLoader{err: tt.err}, zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
			}))
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "sess-1"})
			w := httptest.NewRecorder()

			h.ServeHTTP(w, req)

			assert.False(t, called)
			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, `{"error":"`+tt.expectedMessage+`"}`, w.Body.String())
			if tt.expectedStatus == http.StatusInternalServerError {
				assert.Equal(t, 1, logs.FilterLevelExact(zap.ErrorLevel).Len())
			} else {
				assert.Equal(t, 0, logs.FilterLevelExact(zap.ErrorLevel).Len())
			}
		})
	}
}

func TestLoggerMiddleware(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	h := RequestIDMiddleware(LoggerMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})))
	w := httptest.NewRecorder()

	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusTeapot, w.Code)
}
