package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Options select the server and database holding the users document.
type Options struct {
	URI      string
	Database string
	// Timeout bounds server selection and the initial ping. Zero means 10s.
	Timeout time.Duration
}

// Open connects to MongoDB and returns a Store bound to opts.Database. The
// connection is verified before returning; Close releases it.
func Open(ctx context.Context, opts Options, log zerolog.Logger) (*Store, error) {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	dialCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(dialCtx, options.Client().
		ApplyURI(opts.URI).
		SetAppName("user-management").
		SetServerSelectionTimeout(timeout))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(dialCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping %s: %w", opts.URI, err)
	}

	return NewStore(client, client.Database(opts.Database), log), nil
}
