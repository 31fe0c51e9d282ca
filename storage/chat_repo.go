package storage

import (
	"context"

	"ridehub/pkg/logger"
	"ridehub/pkg/models"
)

type chatRepo struct {
	kv  KV
	log logger.ILogger
}

func (r *chatRepo) Load(ctx context.Context) ([]models.ChatMessage, int64, error) {
	messages, revision, err := loadCollection[models.ChatMessage](ctx, r.kv, KeyChat)
	if err != nil {
		r.log.Error("failed to load chat messages", logger.Error(err))
		return nil, 0, err
	}
	return messages, revision, nil
}

func (r *chatRepo) Append(ctx context.Context, message models.ChatMessage) error {
	messages, revision, err := r.Load(ctx)
	if err != nil {
		return err
	}
	if err := saveCollection(ctx, r.kv, KeyChat, append(messages, message), revision); err != nil {
		r.log.Error("failed to save chat messages", logger.Error(err))
		return err
	}
	return nil
}
