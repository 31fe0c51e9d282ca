// Package localstore is the default collections backend: a single JSON file
// holding every collection, the per-profile analogue of the browser store the
// demo originally ran on. Writes go through a temp file and rename so a crash
// never leaves a half-written store. The revision check only detects
// concurrent writers going through the same Store value; two processes
// sharing the file can still race, which is the substrate's documented
// limitation.
package localstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"ridehub/pkg/logger"
	"ridehub/storage"
)

type entry struct {
	Doc      json.RawMessage `json:"doc"`
	Revision int64           `json:"revision"`
}

type Store struct {
	path string
	log  logger.ILogger
	mu   sync.Mutex
}

func New(path string, log logger.ILogger) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create store directory: %w", err)
		}
	}
	s := &Store{path: path, log: log}
	// fail early on an unreadable or corrupt file
	if _, err := s.read(); err != nil {
		return nil, err
	}
	log.Info("file store opened", logger.String("path", path))
	return s, nil
}

func (s *Store) Load(_ context.Context, key string) ([]byte, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	image, err := s.read()
	if err != nil {
		return nil, 0, err
	}
	e, ok := image[key]
	if !ok {
		return nil, 0, nil
	}
	return e.Doc, e.Revision, nil
}

func (s *Store) Store(_ context.Context, key string, doc []byte, revision int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	image, err := s.read()
	if err != nil {
		return err
	}
	if image[key].Revision != revision {
		return storage.ErrConflict
	}
	image[key] = entry{Doc: json.RawMessage(doc), Revision: revision + 1}
	return s.write(image)
}

func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	image, err := s.read()
	if err != nil {
		return err
	}
	if _, ok := image[key]; !ok {
		return nil
	}
	delete(image, key)
	return s.write(image)
}

func (s *Store) Close() {}

func (s *Store) read() (map[string]entry, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]entry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read store file: %w", err)
	}
	if len(raw) == 0 {
		return map[string]entry{}, nil
	}
	var image map[string]entry
	if err := json.Unmarshal(raw, &image); err != nil {
		return nil, fmt.Errorf("decode store file %s: %w", s.path, err)
	}
	return image, nil
}

func (s *Store) write(image map[string]entry) error {
	raw, err := json.MarshalIndent(image, "", "  ")
	if err != nil {
		return fmt.Errorf("encode store file: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("write store file: %w", err)
	}
	return os.Rename(tmp, s.path)
}
