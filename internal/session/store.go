package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/learnhub/lms-webclient/internal/models"
)

// ErrNotFound is returned when a session does not exist or has expired
var ErrNotFound = errors.New("session not found")

// Store keeps sessions between requests
type Store interface {
	// Method Save stores a session until its ExpiresAt.
	Save(ctx context.Context, s *models.Session) error
	// Method Get retrieves a live session.
	//
	// If the session does not exist or has expired, ErrNotFound is returned.
	Get(ctx context.Context, id string) (*models.Session, error)
	// Method Delete removes a session. Deleting a missing session is not an error.
	Delete(ctx context.Context, id string) error
}

var (
	_ Store = (*MemoryStore)(nil)
	_ Store = (*RedisStore)(nil)
)

// New creates a session for a freshly logged-in user
func New(token, email string, ttl time.Duration) *models.Session {
	now := time.Now().UTC()
	return &models.Session{
		ID:        uuid.New().String(),
		Token:     token,
		Email:     email,
		Role:      RoleFromToken(token),
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

// MemoryStore is a process-local Store
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]models.Session
	now      func() time.Time
}

// NewMemoryStore creates an empty in-memory session store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]models.Session),
		now:      time.Now,
	}
}

// Save stores a copy of s
func (m *MemoryStore) Save(ctx context.Context, s *models.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = *s
	return nil
}

// Get returns a copy of the stored session, dropping it if it has expired
func (m *MemoryStore) Get(ctx context.Context, id string) (*models.Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	if !s.ExpiresAt.IsZero() && !m.now().Before(s.ExpiresAt) {
		m.Delete(ctx, id)
		return nil, ErrNotFound
	}
	return &s, nil
}

// Delete removes a session
func (m *MemoryStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

// Sweep removes expired sessions and returns their ids
func (m *MemoryStore) Sweep() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	var expired []string
	for id, s := range m.sessions {
		if !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt) {
			delete(m.sessions, id)
			expired = append(expired, id)
		}
	}
	return expired
}
