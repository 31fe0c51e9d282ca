package main

import (
	"context"

	"ridehub/config"
	"ridehub/pkg/logger"
	"ridehub/storage"
	"ridehub/storage/localstore"
	"ridehub/storage/postgres"
	"ridehub/storage/redis"
)

// Clears every mutable collection. Useful between demo runs.
func main() {
	cfg := config.Load()
	log := logger.New(cfg.ServiceName, cfg.LoggerLevel)
	ctx := context.Background()

	var (
		kv  storage.KV
		err error
	)
	switch cfg.StoreDriver {
	case config.StoreDriverPostgres:
		kv, err = postgres.New(ctx, cfg, log)
	case config.StoreDriverRedis:
		kv, err = redis.New(ctx, cfg, log)
	default:
		kv, err = localstore.New(cfg.StorePath, log)
	}
	if err != nil {
		panic(err)
	}
	defer kv.Close()

	keys := []string{
		storage.KeyBookings,
		storage.KeyUsers,
		storage.KeyMessages,
		storage.KeyCurrentUser,
		storage.KeyChat,
	}
	for _, key := range keys {
		if err := kv.Delete(ctx, key); err != nil {
			log.Error("failed to clear collection", logger.String("key", key), logger.Error(err))
			continue
		}
	}
	log.Info("store cleared")
}
