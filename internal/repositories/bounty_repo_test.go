package repositories

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/BradenHooton/refusebot/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBountyRepository_TryClaim_FirstWriterWins(t *testing.T) {
	s, _ := newTestStore(t)
	repo := NewBountyRepository(s)
	ctx := context.Background()

	claimed, err := repo.IsClaimed(ctx)
	require.NoError(t, err)
	assert.False(t, claimed)

	won, err := repo.TryClaim(ctx, &models.BountyClaim{
		Winner:     "0xAlice",
		ProofToken: "proof-1",
		Timestamp:  time.Now().UnixMilli(),
	})
	require.NoError(t, err)
	assert.True(t, won)

	// Second claim loses and must not overwrite the stored winner.
	won, err = repo.TryClaim(ctx, &models.BountyClaim{
		Winner:     "0xBob",
		ProofToken: "proof-2",
		Timestamp:  time.Now().UnixMilli(),
	})
	require.NoError(t, err)
	assert.False(t, won)

	claimed, err = repo.IsClaimed(ctx)
	require.NoError(t, err)
	assert.True(t, claimed)

	winner, err := repo.GetWinner(ctx)
	require.NoError(t, err)
	require.NotNil(t, winner)
	assert.Equal(t, "0xAlice", winner.Winner)
	assert.Equal(t, "proof-1", winner.ProofToken)
}

func TestBountyRepository_ConcurrentClaims_ExactlyOneWins(t *testing.T) {
	s, _ := newTestStore(t)
	repo := NewBountyRepository(s)
	ctx := context.Background()

	const n = 20
	results := make(chan bool, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			won, err := repo.TryClaim(ctx, &models.BountyClaim{
				Winner:     "0xRacer",
				ProofToken: "proof",
				Timestamp:  time.Now().UnixMilli(),
			})
			assert.NoError(t, err)
			results <- won
		}(i)
	}
	wg.Wait()
	close(results)

	winners := 0
	for won := range results {
		if won {
			winners++
		}
	}
	assert.Equal(t, 1, winners)
}

func TestBountyRepository_GetWinner_Unclaimed(t *testing.T) {
	s, _ := newTestStore(t)
	repo := NewBountyRepository(s)

	winner, err := repo.GetWinner(context.Background())
	require.NoError(t, err)
	assert.Nil(t, winner)
}

func TestBountyRepository_ClaimHasNoExpiry(t *testing.T) {
	s, mr := newTestStore(t)
	repo := NewBountyRepository(s)
	ctx := context.Background()

	_, err := repo.TryClaim(ctx, &models.BountyClaim{Winner: "0xAlice"})
	require.NoError(t, err)

	mr.FastForward(48 * time.Hour)

	claimed, err := repo.IsClaimed(ctx)
	require.NoError(t, err)
	assert.True(t, claimed)
}
