package database

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
)

// FileStore keeps one JSON file per document under dir.
type FileStore struct {
	dir     string
	version int
	mu      sync.Mutex
	log     *zap.Logger
}

func NewFileStore(dir string, version int, log *zap.Logger) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir %s: %w", dir, err)
	}
	return &FileStore{
		dir:     dir,
		version: version,
		log:     log.With(zap.String("store", "file")),
	}, nil
}

func (s *FileStore) path(name string) string {
	return filepath.Join(s.dir, name+".json")
}

func (s *FileStore) Load(ctx context.Context, name string, v any) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		s.log.Error("Failed to read document", zap.Error(err), zap.String("document", name))
		return false, fmt.Errorf("read %s: %w", name, err)
	}
	if err := decodeEnvelope(name, s.version, raw, v); err != nil {
		s.log.Error("Failed to decode document", zap.Error(err), zap.String("document", name))
		return false, err
	}
	return true, nil
}

// Save replaces the whole document through a temp file and rename.
func (s *FileStore) Save(ctx context.Context, name string, v any) error {
	raw, err := encodeEnvelope(s.version, v)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmp, err := os.CreateTemp(s.dir, name+".*.tmp")
	if err != nil {
		return fmt.Errorf("save %s: %w", name, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return fmt.Errorf("save %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("save %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), s.path(name)); err != nil {
		s.log.Error("Failed to replace document", zap.Error(err), zap.String("document", name))
		return fmt.Errorf("save %s: %w", name, err)
	}
	return nil
}

func (s *FileStore) Close() error { return nil }
