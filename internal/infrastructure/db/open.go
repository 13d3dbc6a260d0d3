// Package db selects and opens the configured record store driver.
package db

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/selim-ammari/user-management/internal/core/ports"
	"github.com/selim-ammari/user-management/internal/infrastructure/config"
	"github.com/selim-ammari/user-management/internal/infrastructure/db/jsonfile"
	mongostore "github.com/selim-ammari/user-management/internal/infrastructure/db/mongo"
	"github.com/selim-ammari/user-management/internal/infrastructure/db/postgres"
	redisstore "github.com/selim-ammari/user-management/internal/infrastructure/db/redis"
	"github.com/selim-ammari/user-management/internal/infrastructure/db/sqlite"
)

// Open connects to the backend named by cfg.Driver and initializes the users
// document. The caller owns the returned store and must Close it.
func Open(ctx context.Context, cfg config.StoreConfig, log zerolog.Logger) (ports.RecordStore, error) {
	store, err := open(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	initCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	if err := store.Init(initCtx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("init %s store: %w", cfg.Driver, err)
	}

	log.Info().Str("driver", cfg.Driver).Msg("record store ready")
	return store, nil
}

func open(ctx context.Context, cfg config.StoreConfig, log zerolog.Logger) (ports.RecordStore, error) {
	switch cfg.Driver {
	case config.DriverFile, "":
		return jsonfile.NewStore(cfg.DataFile, log), nil

	case config.DriverSQLite:
		return sqlite.NewStore(cfg.SQLiteDSN, log)

	case config.DriverPostgres:
		return postgres.Connect(ctx, cfg.PostgresURL, log)

	case config.DriverMongo:
		return mongostore.Open(ctx, mongostore.Options{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
			Timeout:  cfg.Timeout,
		}, log)

	case config.DriverRedis:
		return redisstore.Open(ctx, redisstore.Options{
			Addr:    cfg.Redis.Addr,
			DB:      cfg.Redis.DB,
			Key:     cfg.Redis.Key,
			Timeout: cfg.Timeout,
		}, log)

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}
