// Package postgres keeps the collections substrate in a single jsonb table.
// Each collection is one row; the revision column carries the optimistic
// concurrency token checked on every write.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"ridehub/config"
	"ridehub/pkg/logger"
	"ridehub/storage"
)

type Store struct {
	pool *pgxpool.Pool
	log  logger.ILogger
}

func New(ctx context.Context, cfg config.Config, log logger.ILogger) (*Store, error) {
	url := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		cfg.PostgresUser,
		cfg.PostgresPassword,
		cfg.PostgresHost,
		cfg.PostgresPort,
		cfg.PostgresDB,
	)

	poolConfig, err := pgxpool.ParseConfig(url)
	if err != nil {
		log.Error("error while parsing Postgres config", logger.Error(err))
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		log.Error("failed to connect Postgres", logger.Error(err))
		return nil, err
	}

	cwd, _ := os.Getwd()
	mPath := filepath.Join(cwd, "migrations")
	if _, err := os.Stat(filepath.Join(cwd, "migrations", "postgres")); err == nil {
		mPath = filepath.Join(cwd, "migrations", "postgres")
	}

	m, err := migrate.New("file://"+mPath, url)
	if err != nil {
		log.Error("migration init error or no migrations found", logger.Error(err))
	} else {
		if err = m.Up(); err != nil {
			if strings.Contains(err.Error(), "no change") {
				log.Info("no migrations to apply")
			} else {
				log.Error("migration up error", logger.Error(err))
				return nil, err
			}
		}
	}

	log.Info("Postgres connected")

	return &Store{
		pool: pool,
		log:  log,
	}, nil
}

func (s *Store) Load(ctx context.Context, key string) ([]byte, int64, error) {
	var (
		doc      []byte
		revision int64
	)
	query := `SELECT doc, revision FROM collections WHERE key = $1`
	err := s.pool.QueryRow(ctx, query, key).Scan(&doc, &revision)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, 0, nil
	}
	if err != nil {
		s.log.Error("failed to load collection", logger.String("key", key), logger.Error(err))
		return nil, 0, err
	}
	return doc, revision, nil
}

// Store is a compare-and-set: revision 0 means "create, must not exist yet",
// anything else updates only while the stored revision still matches.
func (s *Store) Store(ctx context.Context, key string, doc []byte, revision int64) error {
	var (
		query string
		args  []interface{}
	)
	if revision == 0 {
		query = `INSERT INTO collections (key, doc, revision) VALUES ($1, $2, 1) ON CONFLICT (key) DO NOTHING`
		args = []interface{}{key, doc}
	} else {
		query = `UPDATE collections SET doc = $2, revision = revision + 1 WHERE key = $1 AND revision = $3`
		args = []interface{}{key, doc, revision}
	}
	res, err := s.pool.Exec(ctx, query, args...)
	if err != nil {
		s.log.Error("failed to store collection", logger.String("key", key), logger.Error(err))
		return err
	}
	if res.RowsAffected() == 0 {
		return storage.ErrConflict
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM collections WHERE key = $1`, key)
	if err != nil {
		s.log.Error("failed to delete collection", logger.String("key", key), logger.Error(err))
	}
	return err
}

func (s *Store) Close() {
	s.pool.Close()
}

func (s *Store) GetPool() *pgxpool.Pool {
	return s.pool
}
