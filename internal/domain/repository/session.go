package repository

import "context"

// Fixed keys of the session credential store.
const (
	SessionKeyToken = "token"
	SessionKeyUser  = "user"
)

// SessionRepository persists the session credential under fixed keys.
// Load returns errors.ErrNotFound for a missing key.
type SessionRepository interface {
	Load(ctx context.Context, key string) (string, error)
	Save(ctx context.Context, values map[string]string) error
	Delete(ctx context.Context, keys ...string) error
}
