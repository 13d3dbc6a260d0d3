// Package jsonfile stores the user collection as one JSON file on disk.
package jsonfile

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/selim-ammari/user-management/internal/core/domain"
	"github.com/selim-ammari/user-management/internal/infrastructure/db/document"
)

// Store is a file-backed ports.RecordStore.
type Store struct {
	path string
	log  zerolog.Logger
}

// NewStore returns a Store persisting to path. Nothing touches the disk until
// Init or Save is called.
func NewStore(path string, log zerolog.Logger) *Store {
	return &Store{path: path, log: log.With().Str("store", "file").Str("path", path).Logger()}
}

// Path returns the file location.
func (s *Store) Path() string { return s.path }

// Init creates the parent directory and an empty collection file when absent.
func (s *Store) Init(ctx context.Context) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	if _, err := os.Stat(s.path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat data file: %w", err)
	}
	return s.write(document.Empty)
}

// Load reads the collection. A missing, unreadable or malformed file yields an
// empty collection.
func (s *Store) Load(ctx context.Context) ([]domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.log.Warn().Err(err).Msg("read users file, using empty collection")
		}
		return []domain.User{}, nil
	}

	users, err := document.Decode(data)
	if err != nil {
		s.log.Warn().Err(err).Msg("parse users file, using empty collection")
		return []domain.User{}, nil
	}
	return users, nil
}

// Save overwrites the whole file. The new content is written to a sibling
// temp file and renamed into place.
func (s *Store) Save(ctx context.Context, users []domain.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := document.Encode(users)
	if err != nil {
		return err
	}
	return s.write(data)
}

// Ping checks that the data directory is reachable.
func (s *Store) Ping(ctx context.Context) error {
	info, err := os.Stat(filepath.Dir(s.path))
	if err != nil {
		return fmt.Errorf("stat data dir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("data dir %s is not a directory", filepath.Dir(s.path))
	}
	return nil
}

func (s *Store) Close() error { return nil }

func (s *Store) write(data []byte) error {
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write users file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync users file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close users file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("chmod users file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replace users file: %w", err)
	}
	return nil
}
