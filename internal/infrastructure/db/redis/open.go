package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Options select the server and key holding the users document.
type Options struct {
	Addr string
	DB   int
	Key  string
	// Timeout bounds dialing and the initial ping. Zero means 5s.
	Timeout time.Duration
}

// Open dials Redis, verifies it answers, and returns a Store on opts.Key.
func Open(ctx context.Context, opts Options, log zerolog.Logger) (*Store, error) {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	client := redis.NewClient(&redis.Options{
		Addr:        opts.Addr,
		DB:          opts.DB,
		DialTimeout: timeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", opts.Addr, err)
	}

	return NewStore(client, opts.Key, log), nil
}
