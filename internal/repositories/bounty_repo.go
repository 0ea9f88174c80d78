package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/BradenHooton/refusebot/internal/models"
	"github.com/BradenHooton/refusebot/internal/store"
	"github.com/redis/go-redis/v9"
)

const bountyClaimKey = "bounty:claimed"

// BountyRepository holds the single-winner claim record. The claim is a
// SETNX against one well-known key, so exactly one writer system-wide can
// ever create it; everyone else sees the first writer's record.
type BountyRepository struct {
	store *store.Store
}

func NewBountyRepository(s *store.Store) *BountyRepository {
	return &BountyRepository{store: s}
}

// TryClaim attempts the first-writer-wins claim. Returns true only for the
// call that actually created the record. Not retried: SETNX is the race
// decider and a replay after an ambiguous failure could report a false loss
// for the true winner; callers fail fast instead.
func (r *BountyRepository) TryClaim(ctx context.Context, claim *models.BountyClaim) (bool, error) {
	payload, err := json.Marshal(claim)
	if err != nil {
		return false, fmt.Errorf("marshal bounty claim: %w", err)
	}

	// No expiry: the claim record is permanent.
	won, err := r.store.Client.SetNX(ctx, bountyClaimKey, payload, 0).Result()
	if err != nil {
		return false, fmt.Errorf("claim bounty: %w (%w)", err, models.ErrStoreUnavailable)
	}

	return won, nil
}

// IsClaimed reports whether the bounty has been claimed.
func (r *BountyRepository) IsClaimed(ctx context.Context) (bool, error) {
	var exists int64

	err := r.store.Retry(ctx, func() error {
		var err error
		exists, err = r.store.Client.Exists(ctx, bountyClaimKey).Result()
		return err
	})
	if err != nil {
		return false, fmt.Errorf("check bounty claim: %w (%w)", err, models.ErrStoreUnavailable)
	}

	return exists == 1, nil
}

// GetWinner returns the claim record, or nil if the bounty is unclaimed.
func (r *BountyRepository) GetWinner(ctx context.Context) (*models.BountyClaim, error) {
	var payload string

	err := r.store.Retry(ctx, func() error {
		var err error
		payload, err = r.store.Client.Get(ctx, bountyClaimKey).Result()
		return err
	})
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read bounty claim: %w (%w)", err, models.ErrStoreUnavailable)
	}

	var claim models.BountyClaim
	if err := json.Unmarshal([]byte(payload), &claim); err != nil {
		return nil, fmt.Errorf("unmarshal bounty claim: %w", err)
	}

	return &claim, nil
}
