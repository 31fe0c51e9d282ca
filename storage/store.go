package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"ridehub/pkg/logger"
)

type Store struct {
	kv  KV
	log logger.ILogger
}

// New wraps a collections substrate with the typed per-entity repos.
func New(kv KV, log logger.ILogger) IStorage {
	return &Store{kv: kv, log: log}
}

func (s *Store) Close() {
	s.kv.Close()
}

func (s *Store) Booking() IBookingStorage { return &bookingRepo{kv: s.kv, log: s.log} }
func (s *Store) User() IUserStorage       { return &userRepo{kv: s.kv, log: s.log} }
func (s *Store) Message() IMessageStorage { return &messageRepo{kv: s.kv, log: s.log} }
func (s *Store) Chat() IChatStorage       { return &chatRepo{kv: s.kv, log: s.log} }
func (s *Store) Session() ISessionStorage { return &sessionRepo{kv: s.kv, log: s.log} }

// loadCollection decodes a whole collection. An absent or empty document is
// an empty collection, not an error.
func loadCollection[T any](ctx context.Context, kv KV, key string) ([]T, int64, error) {
	raw, revision, err := kv.Load(ctx, key)
	if err != nil {
		return nil, 0, err
	}
	if len(raw) == 0 {
		return nil, revision, nil
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, 0, fmt.Errorf("decode collection %q: %w", key, err)
	}
	return items, revision, nil
}

// saveCollection replaces a whole collection at the given revision.
func saveCollection[T any](ctx context.Context, kv KV, key string, items []T, revision int64) error {
	if items == nil {
		items = []T{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode collection %q: %w", key, err)
	}
	return kv.Store(ctx, key, raw, revision)
}
