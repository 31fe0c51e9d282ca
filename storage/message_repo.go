package storage

import (
	"context"

	"ridehub/pkg/logger"
	"ridehub/pkg/models"
)

type messageRepo struct {
	kv  KV
	log logger.ILogger
}

func (r *messageRepo) Load(ctx context.Context) ([]models.ContactMessage, int64, error) {
	messages, revision, err := loadCollection[models.ContactMessage](ctx, r.kv, KeyMessages)
	if err != nil {
		r.log.Error("failed to load messages", logger.Error(err))
		return nil, 0, err
	}
	return messages, revision, nil
}

func (r *messageRepo) Save(ctx context.Context, messages []models.ContactMessage, revision int64) error {
	if err := saveCollection(ctx, r.kv, KeyMessages, messages, revision); err != nil {
		r.log.Error("failed to save messages", logger.Error(err))
		return err
	}
	return nil
}

func (r *messageRepo) Append(ctx context.Context, message models.ContactMessage) error {
	messages, revision, err := r.Load(ctx)
	if err != nil {
		return err
	}
	return r.Save(ctx, append(messages, message), revision)
}
