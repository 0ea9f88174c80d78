package services

import (
	"context"
	"log/slog"

	"github.com/BradenHooton/refusebot/internal/models"
)

// AttemptReader defines the read side of attempt tracking
type AttemptReader interface {
	GetAttemptCount(ctx context.Context, userID string) (int64, error)
}

// BountyReader defines the read side of the claim register
type BountyReader interface {
	GetWinner(ctx context.Context) (*models.BountyClaim, error)
}

// LeaderboardSource serves the most recent leaderboard snapshot. The snapshot
// is maintained on a polling cadence by the background refresher; the status
// path never scans the store itself.
type LeaderboardSource interface {
	Top() []models.LeaderboardEntry
}

// Status is the public game state served by the status endpoint.
type Status struct {
	Amount      string
	Currency    string
	Claimed     bool
	Winner      *models.BountyClaim
	Leaderboard []models.LeaderboardEntry
	Attempts    *int64 // nil unless a user address was supplied
}

// StatusService assembles the bounty state, leaderboard and optional
// per-user attempt count.
type StatusService struct {
	bounty      BountyReader
	attempts    AttemptReader
	leaderboard LeaderboardSource
	amount      string
	currency    string
	logger      *slog.Logger
}

// NewStatusService creates a new StatusService
func NewStatusService(
	bounty BountyReader,
	attempts AttemptReader,
	leaderboard LeaderboardSource,
	amount, currency string,
	logger *slog.Logger,
) *StatusService {
	return &StatusService{
		bounty:      bounty,
		attempts:    attempts,
		leaderboard: leaderboard,
		amount:      amount,
		currency:    currency,
		logger:      logger,
	}
}

// Snapshot returns the current game status. The bounty read is authoritative
// and fails the call on store outage; a failed per-user count read only
// omits the user stats.
func (s *StatusService) Snapshot(ctx context.Context, userAddress string) (*Status, error) {
	winner, err := s.bounty.GetWinner(ctx)
	if err != nil {
		s.logger.Error("failed to read bounty state", slog.Any("error", err))
		return nil, models.ErrStoreUnavailable
	}

	status := &Status{
		Amount:      s.amount,
		Currency:    s.currency,
		Claimed:     winner != nil,
		Winner:      winner,
		Leaderboard: s.leaderboard.Top(),
	}

	if userAddress != "" {
		count, err := s.attempts.GetAttemptCount(ctx, userAddress)
		if err != nil {
			s.logger.Error("failed to read attempt count",
				slog.String("user_id", userAddress),
				slog.Any("error", err))
		} else {
			status.Attempts = &count
		}
	}

	return status, nil
}
