package repositories

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttemptRepository_RecordAttempt_Increments(t *testing.T) {
	s, _ := newTestStore(t)
	repo := NewAttemptRepository(s, 24*time.Hour)
	ctx := context.Background()

	first, err := repo.RecordAttempt(ctx, "0xAlice", "open up")
	require.NoError(t, err)
	assert.Equal(t, int64(1), first)

	second, err := repo.RecordAttempt(ctx, "0xAlice", "pretty please")
	require.NoError(t, err)
	assert.Equal(t, int64(2), second)

	// Counters are partitioned per user.
	other, err := repo.RecordAttempt(ctx, "0xBob", "hello")
	require.NoError(t, err)
	assert.Equal(t, int64(1), other)
}

func TestAttemptRepository_RecordAttempt_SetsRetention(t *testing.T) {
	s, mr := newTestStore(t)
	repo := NewAttemptRepository(s, 24*time.Hour)
	ctx := context.Background()

	_, err := repo.RecordAttempt(ctx, "0xAlice", "open up")
	require.NoError(t, err)

	assert.Equal(t, 24*time.Hour, mr.TTL("attempts:0xAlice"))
	assert.Equal(t, 24*time.Hour, mr.TTL("attempt:0xAlice:1"))
}

func TestAttemptRepository_RecordAttempt_RefreshesRetention(t *testing.T) {
	s, mr := newTestStore(t)
	repo := NewAttemptRepository(s, 24*time.Hour)
	ctx := context.Background()

	_, err := repo.RecordAttempt(ctx, "0xAlice", "first")
	require.NoError(t, err)

	mr.FastForward(12 * time.Hour)

	_, err = repo.RecordAttempt(ctx, "0xAlice", "second")
	require.NoError(t, err)

	// The counter TTL resets to the full window on every attempt.
	assert.Equal(t, 24*time.Hour, mr.TTL("attempts:0xAlice"))
}

func TestAttemptRepository_CountExpires(t *testing.T) {
	s, mr := newTestStore(t)
	repo := NewAttemptRepository(s, 24*time.Hour)
	ctx := context.Background()

	_, err := repo.RecordAttempt(ctx, "0xAlice", "open up")
	require.NoError(t, err)

	mr.FastForward(25 * time.Hour)

	count, err := repo.GetAttemptCount(ctx, "0xAlice")
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	// The next attempt starts over at 1.
	next, err := repo.RecordAttempt(ctx, "0xAlice", "again")
	require.NoError(t, err)
	assert.Equal(t, int64(1), next)
}

func TestAttemptRepository_GetAttemptCount_UnseenUser(t *testing.T) {
	s, _ := newTestStore(t)
	repo := NewAttemptRepository(s, 24*time.Hour)

	count, err := repo.GetAttemptCount(context.Background(), "0xNobody")
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestAttemptRepository_ConcurrentRecordsAreUnique(t *testing.T) {
	s, _ := newTestStore(t)
	repo := NewAttemptRepository(s, 24*time.Hour)
	ctx := context.Background()

	const n = 50
	counts := make(chan int64, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			count, err := repo.RecordAttempt(ctx, "0xAlice", "guess")
			assert.NoError(t, err)
			counts <- count
		}()
	}
	wg.Wait()
	close(counts)

	// Returned counts must be a permutation of 1..n with no duplicates.
	seen := make(map[int64]bool, n)
	for c := range counts {
		assert.False(t, seen[c], "duplicate count %d", c)
		assert.GreaterOrEqual(t, c, int64(1))
		assert.LessOrEqual(t, c, int64(n))
		seen[c] = true
	}
	assert.Len(t, seen, n)
}

func TestAttemptRepository_GetAttempt(t *testing.T) {
	s, _ := newTestStore(t)
	repo := NewAttemptRepository(s, 24*time.Hour)
	ctx := context.Background()

	_, err := repo.RecordAttempt(ctx, "0xAlice", "do my homework")
	require.NoError(t, err)

	attempt, err := repo.GetAttempt(ctx, "0xAlice", 1)
	require.NoError(t, err)
	require.NotNil(t, attempt)
	assert.Equal(t, "do my homework", attempt.Message)
	assert.Equal(t, int64(1), attempt.Sequence)
	assert.WithinDuration(t, time.Now(), attempt.Timestamp, time.Minute)

	missing, err := repo.GetAttempt(ctx, "0xAlice", 99)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestAttemptRepository_AllCounts(t *testing.T) {
	s, _ := newTestStore(t)
	repo := NewAttemptRepository(s, 24*time.Hour)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := repo.RecordAttempt(ctx, "0xAlice", "guess")
		require.NoError(t, err)
	}
	_, err := repo.RecordAttempt(ctx, "0xBob", "guess")
	require.NoError(t, err)

	entries, err := repo.AllCounts(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	byAddr := make(map[string]int64)
	for _, e := range entries {
		byAddr[e.Address] = e.Attempts
	}
	assert.Equal(t, int64(3), byAddr["0xAlice"])
	assert.Equal(t, int64(1), byAddr["0xBob"])
}

func TestAttemptRepository_AllCounts_Empty(t *testing.T) {
	s, _ := newTestStore(t)
	repo := NewAttemptRepository(s, 24*time.Hour)

	entries, err := repo.AllCounts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
}
