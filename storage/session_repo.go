package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"ridehub/pkg/logger"
	"ridehub/pkg/models"
)

type sessionRepo struct {
	kv  KV
	log logger.ILogger
}

// Get returns the current session or nil when nobody is logged in.
func (r *sessionRepo) Get(ctx context.Context) (*models.Session, error) {
	raw, _, err := r.kv.Load(ctx, KeyCurrentUser)
	if err != nil {
		r.log.Error("failed to load session", logger.Error(err))
		return nil, err
	}
	if len(raw) == 0 {
		return nil, nil
	}
	var session models.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &session, nil
}

// Set overwrites the session unconditionally. The last login wins, which is
// fine for a single-record key.
func (r *sessionRepo) Set(ctx context.Context, session models.Session) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	_, revision, err := r.kv.Load(ctx, KeyCurrentUser)
	if err != nil {
		return err
	}
	if err := r.kv.Store(ctx, KeyCurrentUser, raw, revision); err != nil {
		r.log.Error("failed to save session", logger.Error(err))
		return err
	}
	return nil
}

func (r *sessionRepo) Clear(ctx context.Context) error {
	return r.kv.Delete(ctx, KeyCurrentUser)
}
