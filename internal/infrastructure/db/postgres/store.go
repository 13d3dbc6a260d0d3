// Package postgres stores the user collection as a single row of a
// PostgreSQL table.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/selim-ammari/user-management/internal/core/domain"
	"github.com/selim-ammari/user-management/internal/infrastructure/db/document"
)

const defaultTimeout = 10 * time.Second

const schema = `CREATE TABLE IF NOT EXISTS documents (
	name TEXT PRIMARY KEY,
	body TEXT NOT NULL
)`

type Store struct {
	pool *pgxpool.Pool
	log  zerolog.Logger
}

// Connect opens a connection pool and verifies it with a ping.
func Connect(ctx context.Context, url string, log zerolog.Logger) (*Store, error) {
	connectCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pool, err := pgxpool.New(connectCtx, url)
	if err != nil {
		return nil, fmt.Errorf("postgres connect: %w", err)
	}
	if err := pool.Ping(connectCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres ping: %w", err)
	}

	return &Store{pool: pool, log: log.With().Str("store", "postgres").Logger()}, nil
}

func (s *Store) Init(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("create documents table: %w", err)
	}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO documents (name, body) VALUES ($1, $2) ON CONFLICT (name) DO NOTHING`,
		document.Name, string(document.Empty))
	if err != nil {
		return fmt.Errorf("init users document: %w", err)
	}
	return nil
}

func (s *Store) Load(ctx context.Context) ([]domain.User, error) {
	var body string
	err := s.pool.QueryRow(ctx, `SELECT body FROM documents WHERE name = $1`, document.Name).Scan(&body)
	if errors.Is(err, pgx.ErrNoRows) {
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
	_, err = s.pool.Exec(ctx,
		`INSERT INTO documents (name, body) VALUES ($1, $2)
		 ON CONFLICT (name) DO UPDATE SET body = EXCLUDED.body`,
		document.Name, string(data))
	if err != nil {
		return fmt.Errorf("save users document: %w", err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *Store) Close() error {
	s.pool.Close()
	return nil
}
