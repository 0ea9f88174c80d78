package background

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/BradenHooton/refusebot/internal/models"
)

// LeaderboardScanner walks every live attempt counter. O(distinct users),
// which is why it runs on a polling cadence and not per request.
type LeaderboardScanner interface {
	AllCounts(ctx context.Context) ([]models.LeaderboardEntry, error)
}

// LeaderboardRefresher periodically recomputes the top-N leaderboard into an
// in-memory snapshot. The snapshot is display-only: game state on the chat
// path is always re-read from the store.
type LeaderboardRefresher struct {
	scanner  LeaderboardScanner
	size     int
	interval time.Duration
	logger   *slog.Logger
	stopCh   chan struct{}

	mu       sync.RWMutex
	snapshot []models.LeaderboardEntry
}

// NewLeaderboardRefresher creates a new LeaderboardRefresher
func NewLeaderboardRefresher(
	scanner LeaderboardScanner,
	size int,
	interval time.Duration,
	logger *slog.Logger,
) *LeaderboardRefresher {
	return &LeaderboardRefresher{
		scanner:  scanner,
		size:     size,
		interval: interval,
		logger:   logger,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the periodic refresh task
func (lr *LeaderboardRefresher) Start(ctx context.Context) {
	ticker := time.NewTicker(lr.interval)
	defer ticker.Stop()

	// Run immediately on startup
	lr.Refresh(ctx)

	for {
		select {
		case <-ticker.C:
			lr.Refresh(ctx)
		case <-lr.stopCh:
			lr.logger.Info("leaderboard refresher stopped")
			return
		case <-ctx.Done():
			lr.logger.Info("leaderboard refresher context cancelled")
			return
		}
	}
}

// Refresh recomputes the snapshot from the store. On scan failure the
// previous snapshot stays in place; stale display data beats no data.
func (lr *LeaderboardRefresher) Refresh(ctx context.Context) {
	refreshCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	entries, err := lr.scanner.AllCounts(refreshCtx)
	if err != nil {
		lr.logger.Error("failed to refresh leaderboard", slog.Any("error", err))
		return
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Attempts > entries[j].Attempts
	})
	if len(entries) > lr.size {
		entries = entries[:lr.size]
	}

	lr.mu.Lock()
	lr.snapshot = entries
	lr.mu.Unlock()
}

// Top returns the latest snapshot. The returned slice is shared read-only
// data; callers must not mutate it.
func (lr *LeaderboardRefresher) Top() []models.LeaderboardEntry {
	lr.mu.RLock()
	defer lr.mu.RUnlock()
	return lr.snapshot
}

// Stop signals the refresher to stop
func (lr *LeaderboardRefresher) Stop() {
	close(lr.stopCh)
}
