package storage

import (
	"context"

	"ridehub/pkg/logger"
	"ridehub/pkg/models"
)

type userRepo struct {
	kv  KV
	log logger.ILogger
}

func (r *userRepo) Load(ctx context.Context) ([]models.User, int64, error) {
	users, revision, err := loadCollection[models.User](ctx, r.kv, KeyUsers)
	if err != nil {
		r.log.Error("failed to load users", logger.Error(err))
		return nil, 0, err
	}
	return users, revision, nil
}

func (r *userRepo) Save(ctx context.Context, users []models.User, revision int64) error {
	if err := saveCollection(ctx, r.kv, KeyUsers, users, revision); err != nil {
		r.log.Error("failed to save users", logger.Error(err))
		return err
	}
	return nil
}

func (r *userRepo) Append(ctx context.Context, user models.User) error {
	users, revision, err := r.Load(ctx)
	if err != nil {
		return err
	}
	return r.Save(ctx, append(users, user), revision)
}

func (r *userRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	users, _, err := r.Load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Email == email {
			return &users[i], nil
		}
	}
	return nil, nil
}
