package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/learnhub/lms-webclient/internal/models"
	"github.com/learnhub/lms-webclient/internal/session"
	"go.uber.org/zap"
)

// SessionStore persists sessions between requests
type SessionStore = session.Store

// ViewCloser discards the course views of a session
type ViewCloser interface {
	LeaveAll(sessionID string) int
	SessionIDs() []string
}

type authService struct {
	backends BackendFactory
	store    SessionStore
	views    ViewCloser
	ttl      time.Duration
	logger   *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(backends BackendFactory, store SessionStore, views ViewCloser, ttl time.Duration, logger *zap.Logger) *authService {
	return &authService{
		backends: backends,
		store:    store,
		views:    views,
		ttl:      ttl,
		logger:   logger,
	}
}

// Login exchanges credentials for a bearer token and opens a session holding it.
//
// Returns the new session together with the landing path for its role.
// A rejected login is reported as ErrInvalidCredentials.
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*models.Session, string, error) {
	req.Email = strings.TrimSpace(req.Email)
	if err := validateStruct(req); err != nil {
		return nil, "", err
	}

	token, err := s.backends("").Auth.Login(ctx, req)
	if err != nil {
		switch RemoteStatus(err) {
		case http.StatusUnauthorized, http.StatusForbidden, http.StatusBadRequest:
			s.logger.Info("login rejected", zap.String("email", req.Email))
			return nil, "", ErrInvalidCredentials
		}
		s.logger.Error("failed to login", zap.String("email", req.Email), zap.Error(err))
		return nil, "", fmt.Errorf("failed to login: %w", err)
	}
	if token == "" {
		s.logger.Error("login returned an empty token", zap.String("email", req.Email))
		return nil, "", fmt.Errorf("failed to login: empty token")
	}

	sess := session.New(token, req.Email, s.ttl)
	if err := s.store.Save(ctx, sess); err != nil {
		s.logger.Error("failed to save session", zap.String("email", req.Email), zap.Error(err))
		return nil, "", fmt.Errorf("failed to save session: %w", err)
	}

	s.logger.Info("user logged in",
		zap.String("email", sess.Email),
		zap.String("role", sess.Role),
		zap.String("session_id", sess.ID),
	)
	return sess, session.LandingPath(sess.Role), nil
}

// Register creates a user account. Requests without roles register a student.
func (s *authService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	req.Email = strings.TrimSpace(req.Email)
	if len(req.Roles) == 0 {
		req.Roles = []string{models.RoleStudent}
	}
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	user, err := s.backends("").Auth.Register(ctx, req)
	if err != nil {
		s.logger.Error("failed to register user", zap.String("email", req.Email), zap.Error(err))
		return nil, fmt.Errorf("failed to register user: %w", err)
	}
	return user, nil
}

// Logout removes the session and discards its course views
func (s *authService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return ErrUnauthenticated
	}

	closed := s.views.LeaveAll(sessionID)
	if err := s.store.Delete(ctx, sessionID); err != nil {
		s.logger.Error("failed to delete session", zap.String("session_id", sessionID), zap.Error(err))
		return fmt.Errorf("failed to delete session: %w", err)
	}

	s.logger.Info("user logged out", zap.String("session_id", sessionID), zap.Int("views_closed", closed))
	return nil
}

// Session retrieves a live session; unknown and expired ids yield ErrUnauthenticated
func (s *authService) Session(ctx context.Context, sessionID string) (*models.Session, error) {
	if sessionID == "" {
		return nil, ErrUnauthenticated
	}

	sess, err := s.store.Get(ctx, sessionID)
	if errors.Is(err, session.ErrNotFound) {
		return nil, ErrUnauthenticated
	}
	if err != nil {
		s.logger.Error("failed to get session", zap.String("session_id", sessionID), zap.Error(err))
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return sess, nil
}

// PruneViews discards the course views of sessions that expired or were removed
// from the store, and returns how many sessions were pruned
func (s *authService) PruneViews(ctx context.Context) int {
	pruned := 0
	for _, id := range s.views.SessionIDs() {
		_, err := s.store.Get(ctx, id)
		if errors.Is(err, session.ErrNotFound) {
			s.views.LeaveAll(id)
			pruned++
			continue
		}
		if err != nil {
			s.logger.Warn("failed to check session", zap.String("session_id", id), zap.Error(err))
		}
	}
	if pruned > 0 {
		s.logger.Info("pruned course views of ended sessions", zap.Int("sessions", pruned))
	}
	return pruned
}
