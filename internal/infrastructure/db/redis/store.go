package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/selim-ammari/user-management/internal/core/domain"
	"github.com/selim-ammari/user-management/internal/infrastructure/db/document"
)

// DefaultKey is the key holding the encoded collection.
const DefaultKey = "user-management:users"

// Store keeps the user collection under a single string key.
type Store struct {
	client *redis.Client
	key    string
	log    zerolog.Logger
}

func NewStore(client *redis.Client, key string, log zerolog.Logger) *Store {
	if key == "" {
		key = DefaultKey
	}
	return &Store{
		client: client,
		key:    key,
		log:    log.With().Str("store", "redis").Str("key", key).Logger(),
	}
}

func (s *Store) Init(ctx context.Context) error {
	if err := s.client.SetNX(ctx, s.key, document.Empty, 0).Err(); err != nil {
		return fmt.Errorf("init users key: %w", err)
	}
	return nil
}

func (s *Store) Load(ctx context.Context) ([]domain.User, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return []domain.User{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load users key: %w", err)
	}

	users, err := document.Decode(data)
	if err != nil {
		s.log.Warn().Err(err).Msg("parse users key, using empty collection")
		return []domain.User{}, nil
	}
	return users, nil
}

func (s *Store) Save(ctx context.Context, users []domain.User) error {
	data, err := document.Encode(users)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("save users key: %w", err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *Store) Close() error { return s.client.Close() }
