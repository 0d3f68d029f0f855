package test

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/polkiloo/marketpanel/internal/domain/model"
	"github.com/polkiloo/marketpanel/internal/session"
	"github.com/polkiloo/marketpanel/internal/storage/memory"
)

// DiscardLogger returns a JSON logger writing nowhere.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

// NewSession returns an in-memory session store. A non-empty role opens a session for it.
func NewSession(role model.Role) *session.Store {
	store := session.NewStore(memory.New(), DiscardLogger())
	if role != "" {
		profile := model.Profile{ID: string(role) + "-1", Email: string(role) + "@example.com", Role: role}
		_ = store.Open(context.Background(), "token-"+string(role), profile)
	}
	return store
}

// ErrStoreDown is returned by FailingSessionRepository.
var ErrStoreDown = errors.New("session store unavailable")

// FailingSessionRepository fails every call.
type FailingSessionRepository struct{}

func (FailingSessionRepository) Load(context.Context, string) (string, error) {
	return "", ErrStoreDown
}

func (FailingSessionRepository) Save(context.Context, map[string]string) error {
	return ErrStoreDown
}

func (FailingSessionRepository) Delete(context.Context, ...string) error {
	return ErrStoreDown
}
