// Package sqlite stores the user collection as a single row of an embedded
// SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"github.com/selim-ammari/user-management/internal/core/domain"
	"github.com/selim-ammari/user-management/internal/infrastructure/db/document"
)

type Store struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewStore opens the database at dsn. The schema is applied by Init.
func NewStore(dsn string, log zerolog.Logger) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// A single connection keeps writes serialized and lets in-memory DSNs
	// share one database.
	db.SetMaxOpenConns(1)

	return &Store{db: db, log: log.With().Str("store", "sqlite").Logger()}, nil
}

func (s *Store) Init(ctx context.Context) error {
	if err := s.ApplyMigrations(); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO documents (name, body) VALUES (?, ?) ON CONFLICT(name) DO NOTHING`,
		document.Name, string(document.Empty))
	if err != nil {
		return fmt.Errorf("init users document: %w", err)
	}
	return nil
}

func (s *Store) Load(ctx context.Context) ([]domain.User, error) {
	var body string
	err := s.db.QueryRowContext(ctx, `SELECT body FROM documents WHERE name = ?`, document.Name).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return []domain.User{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load users document: %w", err)
	}

	users, err := document.Decode([]byte(body))
	if err != nil {
		s.log.Warn().Err(err).Msg("parse users document, using empty collection")
		return []domain.User{}, nil
	}
	return users, nil
}

func (s *Store) Save(ctx context.Context, users []domain.User) error {
	data, err := document.Encode(users)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO documents (name, body) VALUES (?, ?)
		 ON CONFLICT(name) DO UPDATE SET body = excluded.body`,
		document.Name, string(data))
	if err != nil {
		return fmt.Errorf("save users document: %w", err)
	}
	return nil
}

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Close() error { return s.db.Close() }
