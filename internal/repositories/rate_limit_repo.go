package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/BradenHooton/refusebot/internal/models"
	"github.com/BradenHooton/refusebot/internal/store"
)

const rateLimitPrefix = "ratelimit:"

// RateLimitRepository maintains per-source fixed-window request counters.
// The window starts at the first request (EXPIRE set only when the counter
// is created) and is removed implicitly when the TTL lapses, so windows
// slide from first use rather than aligning to the wall clock.
type RateLimitRepository struct {
	store  *store.Store
	window time.Duration
}

func NewRateLimitRepository(s *store.Store, window time.Duration) *RateLimitRepository {
	return &RateLimitRepository{store: s, window: window}
}

// IncrementWindow counts the current request and returns the post-increment
// total for the source's active window, including this request. Denied
// requests are counted too; the decision against the cap belongs to the
// service layer.
func (r *RateLimitRepository) IncrementWindow(ctx context.Context, sourceKey string) (int64, error) {
	key := rateLimitPrefix + sourceKey

	count, err := r.store.Client.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("increment rate window: %w (%w)", err, models.ErrStoreUnavailable)
	}

	if count == 1 {
		if err := r.store.Client.Expire(ctx, key, r.window).Err(); err != nil {
			return count, fmt.Errorf("start rate window: %w (%w)", err, models.ErrStoreUnavailable)
		}
	}

	return count, nil
}
