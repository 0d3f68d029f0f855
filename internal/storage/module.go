// Package storage selects the session storage backend.
package storage

import (
	"context"
	"fmt"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/marketpanel/internal/config"
	"github.com/polkiloo/marketpanel/internal/domain/repository"
	"github.com/polkiloo/marketpanel/internal/storage/memory"
	"github.com/polkiloo/marketpanel/internal/storage/postgres"
	"github.com/polkiloo/marketpanel/internal/storage/sqlite"
)

// Module provides repository.Factory backed by the configured store.
var Module = fx.Options(
	fx.Provide(newFactory),
	fx.Provide(func(f repository.Factory) repository.SessionRepository { return f.Sessions() }),
)

type factoryParams struct {
	fx.In

	Ctx       context.Context
	Lifecycle fx.Lifecycle
	Config    *config.Config
	Logger    *slog.Logger
}

var (
	openSQLite   = sqlite.New
	openPostgres = postgres.New
)

func newFactory(p factoryParams) (repository.Factory, error) {
	switch p.Config.SessionStore {
	case config.SessionStoreSQLite:
		st, err := openSQLite(p.Ctx, p.Config.SQLitePath, p.Logger)
		if err != nil {
			return nil, fmt.Errorf("sqlite session store: %w", err)
		}
		p.Lifecycle.Append(fx.Hook{
			OnStop: func(context.Context) error { return st.Close() },
		})
		return st, nil
	case config.SessionStorePostgres:
		st, err := openPostgres(p.Ctx, p.Config.DatabaseURI, p.Logger)
		if err != nil {
			return nil, fmt.Errorf("postgres session store: %w", err)
		}
		p.Lifecycle.Append(fx.Hook{
			OnStop: func(context.Context) error {
				st.Close()
				return nil
			},
		})
		return st, nil
	default:
		return memory.New(), nil
	}
}
