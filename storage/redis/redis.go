// Package redis keeps each collection in a hash of doc and revision fields.
// The compare-and-set runs as a Lua script so the revision check and the
// write are one atomic step on the server.
package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"ridehub/config"
	"ridehub/pkg/logger"
	"ridehub/storage"
)

var casScript = redis.NewScript(`
local current = tonumber(redis.call('HGET', KEYS[1], 'revision') or '0')
if current ~= tonumber(ARGV[2]) then
  return 0
end
redis.call('HSET', KEYS[1], 'doc', ARGV[1], 'revision', current + 1)
return 1
`)

type Store struct {
	client *redis.Client
	prefix string
	log    logger.ILogger
}

func New(ctx context.Context, cfg config.Config, log logger.ILogger) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.RedisHost, cfg.RedisPort),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		log.Error("failed to connect Redis", logger.Error(err))
		return nil, err
	}
	log.Info("Redis connected")
	return &Store{client: client, prefix: cfg.ServiceName + ":", log: log}, nil
}

func (s *Store) Load(ctx context.Context, key string) ([]byte, int64, error) {
	values, err := s.client.HMGet(ctx, s.prefix+key, "doc", "revision").Result()
	if err != nil {
		s.log.Error("failed to load collection", logger.String("key", key), logger.Error(err))
		return nil, 0, err
	}
	if values[0] == nil {
		return nil, 0, nil
	}
	doc, ok := values[0].(string)
	if !ok {
		return nil, 0, fmt.Errorf("unexpected doc type for key %q", key)
	}
	var revision int64
	if rev, ok := values[1].(string); ok {
		if _, err := fmt.Sscan(rev, &revision); err != nil {
			return nil, 0, fmt.Errorf("bad revision for key %q: %w", key, err)
		}
	}
	return []byte(doc), revision, nil
}

func (s *Store) Store(ctx context.Context, key string, doc []byte, revision int64) error {
	ok, err := casScript.Run(ctx, s.client, []string{s.prefix + key}, string(doc), revision).Int()
	if err != nil {
		s.log.Error("failed to store collection", logger.String("key", key), logger.Error(err))
		return err
	}
	if ok == 0 {
		return storage.ErrConflict
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	err := s.client.Del(ctx, s.prefix+key).Err()
	if err != nil {
		s.log.Error("failed to delete collection", logger.String("key", key), logger.Error(err))
	}
	return err
}

func (s *Store) Close() {
	_ = s.client.Close()
}
