package repositories

import (
	"context"
	"strings"

	"github.com/learnhub/lms-webclient/internal/models"
)

type authRepository struct {
	api *APIClient
}

// NewAuthRepository creates a repository for login and registration.
// It is normally built on an anonymous APIClient.
func NewAuthRepository(api *APIClient) *authRepository {
	return &authRepository{api: api}
}

// Login exchanges credentials for an opaque bearer token
func (r *authRepository) Login(ctx context.Context, req *models.LoginRequest) (string, error) {
	resp, err := r.api.request(ctx).
		SetBody(req).
		Post("/auth/login")
	if err := r.api.check("login", resp, err); err != nil {
		return "", err
	}
	// The token is returned as the raw body, some deployments quote it
	return strings.Trim(strings.TrimSpace(resp.String()), `"`), nil
}

// Register creates a user account
func (r *authRepository) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	var user models.User
	resp, err := r.api.request(ctx).
		SetBody(req).
		SetResult(&user).
		Post("/auth/register")
	if err := r.api.check("register", resp, err); err != nil {
		return nil, err
	}
	return &user, nil
}
