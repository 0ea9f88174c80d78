package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimitRepository_CountsWithinWindow(t *testing.T) {
	s, _ := newTestStore(t)
	repo := NewRateLimitRepository(s, time.Minute)
	ctx := context.Background()

	for i := int64(1); i <= 5; i++ {
		count, err := repo.IncrementWindow(ctx, "1.2.3.4")
		require.NoError(t, err)
		assert.Equal(t, i, count)
	}

	// Independent window per source.
	count, err := repo.IncrementWindow(ctx, "5.6.7.8")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestRateLimitRepository_WindowStartsAtFirstRequest(t *testing.T) {
	s, mr := newTestStore(t)
	repo := NewRateLimitRepository(s, time.Minute)
	ctx := context.Background()

	_, err := repo.IncrementWindow(ctx, "1.2.3.4")
	require.NoError(t, err)
	assert.Equal(t, time.Minute, mr.TTL("ratelimit:1.2.3.4"))

	// Later increments do not extend the window.
	mr.FastForward(30 * time.Second)
	_, err = repo.IncrementWindow(ctx, "1.2.3.4")
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, mr.TTL("ratelimit:1.2.3.4"))
}

func TestRateLimitRepository_WindowExpiryResetsCount(t *testing.T) {
	s, mr := newTestStore(t)
	repo := NewRateLimitRepository(s, time.Minute)
	ctx := context.Background()

	for i := 0; i < 12; i++ {
		_, err := repo.IncrementWindow(ctx, "1.2.3.4")
		require.NoError(t, err)
	}

	mr.FastForward(61 * time.Second)

	count, err := repo.IncrementWindow(ctx, "1.2.3.4")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
