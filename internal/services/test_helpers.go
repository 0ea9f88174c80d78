package services

import (
	"context"

	"github.com/BradenHooton/refusebot/internal/models"
)

// MockAttemptRepository implements AttemptRecorder and AttemptReader for testing
type MockAttemptRepository struct {
	RecordAttemptFunc   func(ctx context.Context, userID, message string) (int64, error)
	GetAttemptCountFunc func(ctx context.Context, userID string) (int64, error)
}

func (m *MockAttemptRepository) RecordAttempt(ctx context.Context, userID, message string) (int64, error) {
	if m.RecordAttemptFunc != nil {
		return m.RecordAttemptFunc(ctx, userID, message)
	}
	return 1, nil
}

func (m *MockAttemptRepository) GetAttemptCount(ctx context.Context, userID string) (int64, error) {
	if m.GetAttemptCountFunc != nil {
		return m.GetAttemptCountFunc(ctx, userID)
	}
	return 0, nil
}

// MockBountyRepository implements BountyRegister and BountyReader for testing
type MockBountyRepository struct {
	IsClaimedFunc func(ctx context.Context) (bool, error)
	TryClaimFunc  func(ctx context.Context, claim *models.BountyClaim) (bool, error)
	GetWinnerFunc func(ctx context.Context) (*models.BountyClaim, error)
}

func (m *MockBountyRepository) IsClaimed(ctx context.Context) (bool, error) {
	if m.IsClaimedFunc != nil {
		return m.IsClaimedFunc(ctx)
	}
	return false, nil
}

func (m *MockBountyRepository) TryClaim(ctx context.Context, claim *models.BountyClaim) (bool, error) {
	if m.TryClaimFunc != nil {
		return m.TryClaimFunc(ctx, claim)
	}
	return true, nil
}

func (m *MockBountyRepository) GetWinner(ctx context.Context) (*models.BountyClaim, error) {
	if m.GetWinnerFunc != nil {
		return m.GetWinnerFunc(ctx)
	}
	return nil, nil
}

// MockRateLimitRepository implements RateLimitRepository for testing
type MockRateLimitRepository struct {
	IncrementWindowFunc func(ctx context.Context, sourceKey string) (int64, error)
}

func (m *MockRateLimitRepository) IncrementWindow(ctx context.Context, sourceKey string) (int64, error) {
	if m.IncrementWindowFunc != nil {
		return m.IncrementWindowFunc(ctx, sourceKey)
	}
	return 1, nil
}

// MockRefusalBackend implements RefusalBackend for testing
type MockRefusalBackend struct {
	RefusalResponseFunc func(ctx context.Context, message string) string
}

func (m *MockRefusalBackend) RefusalResponse(ctx context.Context, message string) string {
	if m.RefusalResponseFunc != nil {
		return m.RefusalResponseFunc(ctx, message)
	}
	return "nah fam, not doing that"
}

// MockLeaderboardSource implements LeaderboardSource for testing
type MockLeaderboardSource struct {
	TopFunc func() []models.LeaderboardEntry
}

func (m *MockLeaderboardSource) Top() []models.LeaderboardEntry {
	if m.TopFunc != nil {
		return m.TopFunc()
	}
	return nil
}
