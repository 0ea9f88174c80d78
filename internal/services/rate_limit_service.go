package services

import (
	"context"
	"log/slog"
)

// RateLimitRepository defines the store operations the limiter needs
type RateLimitRepository interface {
	IncrementWindow(ctx context.Context, sourceKey string) (int64, error)
}

// RateLimitService enforces a fixed-window request cap per source key
// (client IP). The window lives in the store so every service instance
// shares the same view.
type RateLimitService struct {
	repo   RateLimitRepository
	max    int64
	logger *slog.Logger
}

// NewRateLimitService creates a new RateLimitService
func NewRateLimitService(repo RateLimitRepository, max int64, logger *slog.Logger) *RateLimitService {
	return &RateLimitService{
		repo:   repo,
		max:    max,
		logger: logger,
	}
}

// Allow counts the current request against the source's active window and
// reports whether it stays within the cap. Denied requests are counted too,
// so a client that keeps hammering stays denied until the window expires
// naturally. Store failures fail open: availability beats throttling here,
// the game state itself is still guarded by the store's atomics.
func (s *RateLimitService) Allow(ctx context.Context, sourceKey string) bool {
	count, err := s.repo.IncrementWindow(ctx, sourceKey)
	if err != nil {
		s.logger.Error("rate limit check failed", slog.Any("error", err))
		return true
	}

	if count > s.max {
		s.logger.Warn("source rate limited",
			slog.String("source", sourceKey),
			slog.Int64("count", count))
		return false
	}

	return true
}
