package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	domainErrors "github.com/polkiloo/marketpanel/internal/domain/errors"
	"github.com/polkiloo/marketpanel/internal/domain/repository"
)

// Storage keeps the panel session in a local SQLite file.
type Storage struct {
	db        *sql.DB
	logger    *slog.Logger
	writeLock sync.Mutex
}

type sessionRepository struct {
	storage *Storage
}

// New opens the database at path and creates the schema if needed.
func New(ctx context.Context, path string, logger *slog.Logger) (*Storage, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	storage := &Storage{db: db, logger: logger.With("component", "sqlite", "path", path)}
	if err := storage.initSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return storage, nil
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`PRAGMA busy_timeout = 5000`,
		`CREATE TABLE IF NOT EXISTS panel_session (
			key        TEXT PRIMARY KEY,
			value      TEXT NOT NULL,
			updated_at INTEGER NOT NULL
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}

// Close releases the database handle.
func (s *Storage) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Storage) Sessions() repository.SessionRepository {
	return &sessionRepository{storage: s}
}

func (r *sessionRepository) Load(ctx context.Context, key string) (string, error) {
	var value string
	err := r.storage.db.QueryRowContext(ctx, `SELECT value FROM panel_session WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", domainErrors.ErrNotFound
		}
		return "", fmt.Errorf("query %s: %w", key, err)
	}
	return value, nil
}

func (r *sessionRepository) Save(ctx context.Context, values map[string]string) (err error) {
	r.storage.writeLock.Lock()
	defer r.storage.writeLock.Unlock()

	tx, err := r.storage.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	now := time.Now().Unix()
	for _, key := range slices.Sorted(maps.Keys(values)) {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO panel_session (key, value, updated_at) VALUES (?, ?, ?)
			 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
			key, values[key], now,
		)
		if err != nil {
			return fmt.Errorf("save %s: %w", key, err)
		}
	}
	return nil
}

func (r *sessionRepository) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	r.storage.writeLock.Lock()
	defer r.storage.writeLock.Unlock()

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(keys)), ",")
	args := make([]any, len(keys))
	for i, k := range keys {
		args[i] = k
	}

	if _, err := r.storage.db.ExecContext(ctx, `DELETE FROM panel_session WHERE key IN (`+placeholders+`)`, args...); err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	return nil
}
