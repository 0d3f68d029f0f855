// Package session holds the credential of the single panel session.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	domainErrors "github.com/polkiloo/marketpanel/internal/domain/errors"
	"github.com/polkiloo/marketpanel/internal/domain/model"
	"github.com/polkiloo/marketpanel/internal/domain/repository"
)

// Store caches the token and profile in memory and mirrors them to a repository.
// Token and profile are always written and removed together.
type Store struct {
	repo   repository.SessionRepository
	logger *slog.Logger

	mu      sync.RWMutex
	token   string
	profile *model.Profile
}

func NewStore(repo repository.SessionRepository, logger *slog.Logger) *Store {
	return &Store{repo: repo, logger: logger.With("component", "session")}
}

// Restore loads a previously persisted session. A missing or partial session is discarded.
func (s *Store) Restore(ctx context.Context) error {
	token, err := s.repo.Load(ctx, repository.SessionKeyToken)
	if errors.Is(err, domainErrors.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load token: %w", err)
	}

	raw, err := s.repo.Load(ctx, repository.SessionKeyUser)
	if err != nil && !errors.Is(err, domainErrors.ErrNotFound) {
		return fmt.Errorf("load user: %w", err)
	}

	var profile model.Profile
	if err != nil || json.Unmarshal([]byte(raw), &profile) != nil || token == "" {
		s.logger.Warn("discarding incomplete stored session")
		return s.repo.Delete(ctx, repository.SessionKeyToken, repository.SessionKeyUser)
	}

	s.mu.Lock()
	s.token = token
	s.profile = &profile
	s.mu.Unlock()

	s.logger.Info("session restored", "role", profile.Role)
	return nil
}

// Token returns the current credential.
func (s *Store) Token() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.token != ""
}

// Profile returns a copy of the cached profile.
func (s *Store) Profile() (model.Profile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.profile == nil {
		return model.Profile{}, false
	}
	return *s.profile, true
}

func (s *Store) Authenticated() bool {
	_, ok := s.Token()
	return ok
}

// Open persists token and profile, then makes them current.
func (s *Store) Open(ctx context.Context, token string, profile model.Profile) error {
	if token == "" {
		return fmt.Errorf("open session: empty token")
	}
	raw, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}

	if err := s.repo.Save(ctx, map[string]string{
		repository.SessionKeyToken: token,
		repository.SessionKeyUser:  string(raw),
	}); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	s.mu.Lock()
	s.token = token
	s.profile = &profile
	s.mu.Unlock()
	return nil
}

// Clear drops the session. The in-memory copy is dropped even if the repository fails.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.token = ""
	s.profile = nil
	s.mu.Unlock()

	if err := s.repo.Delete(ctx, repository.SessionKeyToken, repository.SessionKeyUser); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
