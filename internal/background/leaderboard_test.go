package background

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/BradenHooton/refusebot/internal/models"
	"github.com/stretchr/testify/assert"
)

type mockScanner struct {
	entries []models.LeaderboardEntry
	err     error
}

func (m *mockScanner) AllCounts(ctx context.Context) ([]models.LeaderboardEntry, error) {
	return m.entries, m.err
}

func TestLeaderboardRefresher_SortsDescending(t *testing.T) {
	scanner := &mockScanner{entries: []models.LeaderboardEntry{
		{Address: "0xLow", Attempts: 2},
		{Address: "0xHigh", Attempts: 30},
		{Address: "0xMid", Attempts: 14},
	}}

	lr := NewLeaderboardRefresher(scanner, 10, 0, slog.Default())
	lr.Refresh(context.Background())

	top := lr.Top()
	assert.Len(t, top, 3)
	assert.Equal(t, "0xHigh", top[0].Address)
	assert.Equal(t, "0xMid", top[1].Address)
	assert.Equal(t, "0xLow", top[2].Address)
}

func TestLeaderboardRefresher_TruncatesToSize(t *testing.T) {
	scanner := &mockScanner{entries: []models.LeaderboardEntry{
		{Address: "a", Attempts: 1},
		{Address: "b", Attempts: 2},
		{Address: "c", Attempts: 3},
	}}

	lr := NewLeaderboardRefresher(scanner, 2, 0, slog.Default())
	lr.Refresh(context.Background())

	top := lr.Top()
	assert.Len(t, top, 2)
	assert.Equal(t, "c", top[0].Address)
}

func TestLeaderboardRefresher_KeepsSnapshotOnScanError(t *testing.T) {
	scanner := &mockScanner{entries: []models.LeaderboardEntry{
		{Address: "a", Attempts: 1},
	}}

	lr := NewLeaderboardRefresher(scanner, 10, 0, slog.Default())
	lr.Refresh(context.Background())
	assert.Len(t, lr.Top(), 1)

	scanner.err = errors.New("connection refused")
	lr.Refresh(context.Background())

	assert.Len(t, lr.Top(), 1, "previous snapshot survives a failed refresh")
}

func TestLeaderboardRefresher_EmptyBeforeFirstRefresh(t *testing.T) {
	lr := NewLeaderboardRefresher(&mockScanner{}, 10, 0, slog.Default())
	assert.Empty(t, lr.Top())
}
