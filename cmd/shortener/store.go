package main

import (
	"context"

	"go.uber.org/zap"

	"github.com/shorturlproject/shorturl/internal/config"
	"github.com/shorturlproject/shorturl/internal/repository"
	"github.com/shorturlproject/shorturl/internal/storage"
)

// openStore picks the backend: Redis, then PostgreSQL, then memory.
func openStore(ctx context.Context, opts *config.Options, logger *zap.Logger) (storage.KV, error) {
	switch {
	case opts.RedisURL != "":
		logger.Info("using redis storage")
		return storage.NewRedisStorage(ctx, opts.RedisURL)

	case opts.DatabaseDSN != "":
		logger.Info("using db storage")
		db, err := repository.InitDB(ctx, opts.DatabaseDSN, logger)
		if err != nil {
			return nil, err
		}
		return repository.CreatePostgresKV(db, logger), nil

	default:
		logger.Warn("using in memory storage, data is lost on restart")
		return storage.CreateMemoryStorage(), nil
	}
}
