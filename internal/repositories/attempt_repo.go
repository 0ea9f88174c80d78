package repositories

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/BradenHooton/refusebot/internal/models"
	"github.com/BradenHooton/refusebot/internal/store"
	"github.com/redis/go-redis/v9"
)

const attemptCounterPrefix = "attempts:"

func attemptCounterKey(userID string) string {
	return attemptCounterPrefix + userID
}

func attemptDetailKey(userID string, seq int64) string {
	return fmt.Sprintf("attempt:%s:%d", userID, seq)
}

// AttemptRepository tracks per-user attempt counters and per-attempt detail
// records in Redis. Counters carry a TTL refreshed on every attempt.
type AttemptRepository struct {
	store *store.Store
	ttl   time.Duration
}

func NewAttemptRepository(s *store.Store, ttl time.Duration) *AttemptRepository {
	return &AttemptRepository{store: s, ttl: ttl}
}

// RecordAttempt atomically increments the user's attempt counter and persists
// the message alongside it, refreshing the retention window on both keys.
// The INCR serializes concurrent attempts for the same user, so returned
// counts are unique and strictly increasing.
//
// The increment is deliberately not retried: replaying it on an ambiguous
// failure could hand two requests the same count. If the counter advanced but
// the auxiliary writes failed, the count is still returned along with the
// error so the caller can use it in degraded mode.
func (r *AttemptRepository) RecordAttempt(ctx context.Context, userID, message string) (int64, error) {
	client := r.store.Client
	counterKey := attemptCounterKey(userID)

	count, err := client.Incr(ctx, counterKey).Result()
	if err != nil {
		return 0, fmt.Errorf("increment attempt counter: %w (%w)", err, models.ErrStoreUnavailable)
	}

	detailKey := attemptDetailKey(userID, count)
	pipe := client.Pipeline()
	pipe.HSet(ctx, detailKey,
		"message", message,
		"timestamp", time.Now().UnixMilli(),
	)
	pipe.Expire(ctx, detailKey, r.ttl)
	pipe.Expire(ctx, counterKey, r.ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		return count, fmt.Errorf("persist attempt detail: %w (%w)", err, models.ErrStoreUnavailable)
	}

	return count, nil
}

// GetAttemptCount returns the user's current attempt count, 0 for users that
// have never played or whose counter has expired.
func (r *AttemptRepository) GetAttemptCount(ctx context.Context, userID string) (int64, error) {
	var count int64

	err := r.store.Retry(ctx, func() error {
		val, err := r.store.Client.Get(ctx, attemptCounterKey(userID)).Result()
		if err != nil {
			return err
		}
		count, err = strconv.ParseInt(val, 10, 64)
		return err
	})
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read attempt counter: %w (%w)", err, models.ErrStoreUnavailable)
	}

	return count, nil
}

// GetAttempt loads one recorded attempt, or nil if it has expired.
func (r *AttemptRepository) GetAttempt(ctx context.Context, userID string, seq int64) (*models.Attempt, error) {
	var fields map[string]string

	err := r.store.Retry(ctx, func() error {
		var err error
		fields, err = r.store.Client.HGetAll(ctx, attemptDetailKey(userID, seq)).Result()
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("read attempt detail: %w (%w)", err, models.ErrStoreUnavailable)
	}
	if len(fields) == 0 {
		return nil, nil
	}

	ms, _ := strconv.ParseInt(fields["timestamp"], 10, 64)
	return &models.Attempt{
		UserID:    userID,
		Sequence:  seq,
		Message:   fields["message"],
		Timestamp: time.UnixMilli(ms),
	}, nil
}

// AllCounts scans every live attempt counter and returns one entry per user.
// Cost is O(distinct users); callers are expected to run this on a polling
// cadence, not per request.
func (r *AttemptRepository) AllCounts(ctx context.Context) ([]models.LeaderboardEntry, error) {
	client := r.store.Client

	var keys []string
	err := r.store.Retry(ctx, func() error {
		keys = keys[:0]
		iter := client.Scan(ctx, 0, attemptCounterPrefix+"*", 100).Iterator()
		for iter.Next(ctx) {
			keys = append(keys, iter.Val())
		}
		return iter.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("scan attempt counters: %w (%w)", err, models.ErrStoreUnavailable)
	}
	if len(keys) == 0 {
		return nil, nil
	}

	vals, err := client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("read attempt counters: %w (%w)", err, models.ErrStoreUnavailable)
	}

	entries := make([]models.LeaderboardEntry, 0, len(keys))
	for i, v := range vals {
		s, ok := v.(string)
		if !ok {
			// Key expired between SCAN and MGET.
			continue
		}
		count, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			continue
		}
		entries = append(entries, models.LeaderboardEntry{
			Address:  strings.TrimPrefix(keys[i], attemptCounterPrefix),
			Attempts: count,
		})
	}

	return entries, nil
}
