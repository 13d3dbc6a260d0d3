package mongo

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/selim-ammari/user-management/internal/core/domain"
	"github.com/selim-ammari/user-management/internal/infrastructure/db/document"
)

const collectionDocuments = "documents"

// storedDocument keeps the encoded collection as text so every driver holds
// the same bytes.
type storedDocument struct {
	ID   string `bson:"_id"`
	Body string `bson:"body"`
}

// Store keeps the user collection in one MongoDB document.
type Store struct {
	client *mongo.Client
	col    *mongo.Collection
	log    zerolog.Logger
}

func NewStore(client *mongo.Client, db *mongo.Database, log zerolog.Logger) *Store {
	return &Store{
		client: client,
		col:    db.Collection(collectionDocuments),
		log:    log.With().Str("store", "mongo").Logger(),
	}
}

func (s *Store) Init(ctx context.Context) error {
	_, err := s.col.UpdateOne(ctx,
		bson.M{"_id": document.Name},
		bson.M{"$setOnInsert": bson.M{"body": string(document.Empty)}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("init users document: %w", err)
	}
	return nil
}

func (s *Store) Load(ctx context.Context) ([]domain.User, error) {
	var doc storedDocument
	err := s.col.FindOne(ctx, bson.M{"_id": document.Name}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return []domain.User{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load users document: %w", err)
	}

	users, err := document.Decode([]byte(doc.Body))
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
	_, err = s.col.ReplaceOne(ctx,
		bson.M{"_id": document.Name},
		storedDocument{ID: document.Name, Body: string(data)},
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("save users document: %w", err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

func (s *Store) Close() error {
	return s.client.Disconnect(context.Background())
}
