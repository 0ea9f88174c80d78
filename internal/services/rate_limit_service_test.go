package services

import (
	"context"
	"log/slog"
	"testing"

	"github.com/BradenHooton/refusebot/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestRateLimitService_AllowsUpToMax(t *testing.T) {
	var window int64
	repo := &MockRateLimitRepository{
		IncrementWindowFunc: func(ctx context.Context, sourceKey string) (int64, error) {
			window++
			return window, nil
		},
	}

	svc := NewRateLimitService(repo, 10, slog.Default())
	ctx := context.Background()

	for i := 1; i <= 10; i++ {
		assert.True(t, svc.Allow(ctx, "1.2.3.4"), "request %d should be allowed", i)
	}
	assert.False(t, svc.Allow(ctx, "1.2.3.4"), "11th request should be denied")
	assert.False(t, svc.Allow(ctx, "1.2.3.4"), "denied requests still count")
}

func TestRateLimitService_WindowResetAllowsAgain(t *testing.T) {
	window := int64(11)
	repo := &MockRateLimitRepository{
		IncrementWindowFunc: func(ctx context.Context, sourceKey string) (int64, error) {
			return window, nil
		},
	}

	svc := NewRateLimitService(repo, 10, slog.Default())
	ctx := context.Background()

	assert.False(t, svc.Allow(ctx, "1.2.3.4"))

	// Window expired: the store hands out a fresh count.
	window = 1
	assert.True(t, svc.Allow(ctx, "1.2.3.4"))
}

func TestRateLimitService_FailsOpenOnStoreError(t *testing.T) {
	repo := &MockRateLimitRepository{
		IncrementWindowFunc: func(ctx context.Context, sourceKey string) (int64, error) {
			return 0, models.ErrStoreUnavailable
		},
	}

	svc := NewRateLimitService(repo, 10, slog.Default())

	assert.True(t, svc.Allow(context.Background(), "1.2.3.4"))
}
