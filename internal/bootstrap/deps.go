package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/Domenick1991/airbooking-client/config"
	"github.com/Domenick1991/airbooking-client/internal/apiclient"
	"github.com/Domenick1991/airbooking-client/internal/cache"
	"github.com/Domenick1991/airbooking-client/internal/repository"
	"github.com/Domenick1991/airbooking-client/internal/session"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// OpenSessionStore builds the configured session backend. The returned
// close function releases its connections.
func OpenSessionStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (session.Store, func(), error) {
	switch cfg.Session.Driver {
	case config.SessionDriverFile:
		return session.NewFileStore(cfg.Session.Path, cfg.Session.Key, logger), func() {}, nil
	case config.SessionDriverRedis:
		client := cache.NewClient(cfg.Redis)
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("connect redis: %w", err)
		}
		return session.NewRedisStore(client, cfg.Session.Key), func() { _ = client.Close() }, nil
	case config.SessionDriverPostgres:
		pool, err := pgxpool.New(ctx, cfg.Database.DSN())
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		repo := repository.NewSessionRepository(pool, cfg.Session.Key)
		if err := repo.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return repo, pool.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown session driver %q", cfg.Session.Driver)
}

func NewAPIClient(cfg *config.Config, store session.Store, logger *zap.Logger) *apiclient.Client {
	return apiclient.New(cfg.API.BaseURL, store,
		apiclient.WithLogger(logger),
		apiclient.WithTimeout(time.Duration(cfg.API.TimeoutSeconds)*time.Second),
	)
}
