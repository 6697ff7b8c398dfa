package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/learnhub/lms-webclient/internal/middleware"
	"github.com/learnhub/lms-webclient/internal/models"
	"github.com/learnhub/lms-webclient/internal/session"
	"go.uber.org/zap"
)

// AuthService is the interface that wraps methods for login, registration and sessions.
type AuthService interface {
	// Method Login exchanges credentials for a bearer token held in a new session.
	//
	// Returns the session and the landing path for the role read from the token.
	// Rejected credentials yield services.ErrInvalidCredentials.
	Login(ctx context.Context, req *models.LoginRequest) (*models.Session, string, error)
	// Method Register creates a user account on the remote API.
	//
	// Requests without roles register a student.
	Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error)
	// Method Logout removes the session and discards its course views.
	Logout(ctx context.Context, sessionID string) error
	// Method Session retrieves a live session.
	Session(ctx context.Context, sessionID string) (*models.Session, error)
}

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	BaseHandler
	authService  AuthService
	cookieSecure bool
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService AuthService, cookieSecure bool, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler:  BaseHandler{logger: logger},
		authService:  authService,
		cookieSecure: cookieSecure,
	}
}

// RegisterRoutes registers all auth handler routes
// Note: This assumes the router is already scoped to /api/v1
func (h *AuthHandler) RegisterRoutes(r chi.Router, sessionMiddleware func(http.Handler) http.Handler) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/register", h.Register)
		r.Post("/logout", h.Logout)
	})
	r.With(sessionMiddleware).Get("/session", h.Session)
}

// Login handles POST /auth/login
// @Summary Login user
// @Description Authenticate with email and password. Opens a session stored in the lms_session HTTP-only cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Login request"
// @Success 200 {object} models.SessionResponse
// @Failure 400 {object} ErrorResponse "Invalid request body"
// @Failure 401 {object} ErrorResponse "Invalid credentials"
// @Failure 502 {object} ErrorResponse "Remote API unavailable"
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sess, landing, err := h.authService.Login(r.Context(), &req)
	if err != nil {
		h.respondServiceError(w, r, err, "failed to login")
		return
	}

	h.setSessionCookie(w, sess.ID, time.Until(sess.ExpiresAt))
	h.respondJSON(w, http.StatusOK, models.SessionResponse{
		Email:   sess.Email,
		Role:    sess.Role,
		Landing: landing,
	})
}

// Register handles POST /auth/register
// @Summary Register a new user
// @Description Create a user account. Roles default to ROLE_STUDENT.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.RegisterRequest true "Register request"
// @Success 201 {object} models.User
// @Failure 400 {object} ErrorResponse "Invalid request body or validation failed"
// @Failure 409 {object} ErrorResponse "User already exists"
// @Router /auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.authService.Register(r.Context(), &req)
	if err != nil {
		h.respondServiceError(w, r, err, "failed to register user")
		return
	}

	h.respondJSON(w, http.StatusCreated, user)
}

// Logout handles POST /auth/logout
// @Summary Logout user
// @Description Remove the current session and its course views. Always clears the session cookie.
// @Tags auth
// @Success 204
// @Failure 500 {object} ErrorResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	id := middleware.SessionID(r)
	h.setSessionCookie(w, "", -1)
	if id == "" {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	if err := h.authService.Logout(r.Context(), id); err != nil {
		h.respondServiceError(w, r, err, "failed to logout")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Session handles GET /session
// @Summary Current session
// @Description Email, role and landing page of the logged-in user
// @Tags auth
// @Security SessionID
// @Produce json
// @Success 200 {object} models.SessionResponse
// @Failure 401 {object} ErrorResponse
// @Router /session [get]
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	sess := h.session(r)
	if sess == nil {
		h.respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	h.respondJSON(w, http.StatusOK, models.SessionResponse{
		Email:   sess.Email,
		Role:    sess.Role,
		Landing: session.LandingPath(sess.Role),
	})
}

// setSessionCookie sets the session id as an HTTP-only cookie; a negative maxAge deletes it
func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, sessionID string, maxAge time.Duration) {
	cookie := &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    sessionID,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
	if maxAge < 0 {
		cookie.MaxAge = -1
	}
	http.SetCookie(w, cookie)
}
