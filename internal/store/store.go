package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/BradenHooton/refusebot/internal/config"
	"github.com/cenkalti/backoff/v4"
	"github.com/redis/go-redis/v9"
)

// Store wraps the shared Redis client. It is constructed once at process
// start and handed to every component that needs it; all cross-request
// coordination goes through the store's atomic primitives (INCR, SETNX,
// EXPIRE), never through in-process locks, so multiple instances of the
// service can run against the same keyspace.
type Store struct {
	Client *redis.Client
	logger *slog.Logger
}

func NewStore(cfg *config.RedisConfig, logger *slog.Logger) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		PoolSize:    cfg.PoolSize,
		DialTimeout: cfg.DialTimeout,
		ReadTimeout: cfg.OpTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), cfg.DialTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("unable to ping redis: %w", err)
	}

	logger.Info("redis connection established",
		slog.String("addr", cfg.Addr),
		slog.Int("pool_size", cfg.PoolSize),
	)

	return &Store{Client: client, logger: logger}, nil
}

func (s *Store) Close() error {
	s.logger.Info("closing redis connection")
	return s.Client.Close()
}

func (s *Store) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := s.Client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis health check failed: %w", err)
	}
	return nil
}

// Retry runs op with a small bounded backoff and then fails fast so a store
// outage degrades the request instead of hanging it. Only safe for reads and
// idempotent writes; counter increments and SETNX must not go through here,
// a replayed increment would double-count.
func (s *Store) Retry(ctx context.Context, op func() error) error {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 50 * time.Millisecond
	bo.MaxInterval = 500 * time.Millisecond

	policy := backoff.WithContext(backoff.WithMaxRetries(bo, 2), ctx)

	return backoff.Retry(func() error {
		err := op()
		if errors.Is(err, redis.Nil) {
			// A miss is an answer, not a failure.
			return backoff.Permanent(err)
		}
		return err
	}, policy)
}
