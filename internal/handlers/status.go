package handlers

import (
	"context"
	"net/http"

	"github.com/BradenHooton/refusebot/internal/services"
	pkghttp "github.com/BradenHooton/refusebot/pkg/http"
	"github.com/BradenHooton/refusebot/pkg/mask"
)

// StatusProvider defines the interface for reading game status
type StatusProvider interface {
	Snapshot(ctx context.Context, userAddress string) (*services.Status, error)
}

// StatusHandler handles the public status endpoint
type StatusHandler struct {
	status StatusProvider
}

// NewStatusHandler creates a new StatusHandler
func NewStatusHandler(status StatusProvider) *StatusHandler {
	return &StatusHandler{status: status}
}

// Response DTOs. Addresses are masked before they leave the service.

type WinnerResponse struct {
	Address    string `json:"address"`
	ProofToken string `json:"proofToken"`
	Timestamp  int64  `json:"timestamp"`
}

type BountyResponse struct {
	Amount   string          `json:"amount"`
	Currency string          `json:"currency"`
	Claimed  bool            `json:"claimed"`
	Winner   *WinnerResponse `json:"winner"`
}

type LeaderboardEntryResponse struct {
	Address  string `json:"address"`
	Attempts int64  `json:"attempts"`
}

type UserStatsResponse struct {
	Attempts int64 `json:"attempts"`
}

type StatusResponse struct {
	Bounty      BountyResponse             `json:"bounty"`
	Leaderboard []LeaderboardEntryResponse `json:"leaderboard"`
	UserStats   *UserStatsResponse         `json:"userStats,omitempty"`
}

// GetStatus returns the bounty state, leaderboard and optional user stats
//
// @Summary Get game status
// @Param address query string false "User address for per-user stats"
// @Produce json
// @Success 200 {object} StatusResponse
// @Failure 500 {object} pkghttp.ErrorResponse
// @Router /api/status [get]
func (h *StatusHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	userAddress := r.URL.Query().Get("address")

	status, err := h.status.Snapshot(r.Context(), userAddress)
	if err != nil {
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}

	resp := StatusResponse{
		Bounty: BountyResponse{
			Amount:   status.Amount,
			Currency: status.Currency,
			Claimed:  status.Claimed,
		},
		Leaderboard: make([]LeaderboardEntryResponse, 0, len(status.Leaderboard)),
	}

	if status.Winner != nil {
		resp.Bounty.Winner = &WinnerResponse{
			Address:    mask.Address(status.Winner.Winner),
			ProofToken: status.Winner.ProofToken,
			Timestamp:  status.Winner.Timestamp,
		}
	}

	for _, entry := range status.Leaderboard {
		resp.Leaderboard = append(resp.Leaderboard, LeaderboardEntryResponse{
			Address:  mask.Address(entry.Address),
			Attempts: entry.Attempts,
		})
	}

	if status.Attempts != nil {
		resp.UserStats = &UserStatsResponse{Attempts: *status.Attempts}
	}

	pkghttp.WriteJSON(w, http.StatusOK, resp)
}
