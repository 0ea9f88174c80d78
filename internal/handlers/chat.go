package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/BradenHooton/refusebot/internal/services"
	pkghttp "github.com/BradenHooton/refusebot/pkg/http"
)

// ChatOrchestrator defines the interface for running one chat turn
type ChatOrchestrator interface {
	HandleMessage(ctx context.Context, userID, message string) *services.ChatResult
}

// RateLimiter admits or denies a request by its source key
type RateLimiter interface {
	Allow(ctx context.Context, sourceKey string) bool
}

// Fixed body for denied requests; the persona stays in character even here.
const rateLimitedMessage = "Yo chill fam, you're spamming me harder than a Nigerian prince 🛑"

// ChatHandler handles the chat endpoint
type ChatHandler struct {
	chat     ChatOrchestrator
	limiter  RateLimiter
	ipConfig *pkghttp.IPConfig
}

// NewChatHandler creates a new ChatHandler
func NewChatHandler(chat ChatOrchestrator, limiter RateLimiter, ipConfig *pkghttp.IPConfig) *ChatHandler {
	return &ChatHandler{
		chat:     chat,
		limiter:  limiter,
		ipConfig: ipConfig,
	}
}

// ChatRequest represents the request body for a chat message
type ChatRequest struct {
	Message     string `json:"message" validate:"required,min=1,max=2000"`
	UserAddress string `json:"userAddress" validate:"required,min=1,max=128"`
}

// ChatResponse represents the outcome of a chat turn
type ChatResponse struct {
	Response      string `json:"response"`
	IsWin         bool   `json:"isWin"`
	AttemptCount  int64  `json:"attemptCount"`
	Hint          string `json:"hint,omitempty"`
	BountyClaimed bool   `json:"bountyClaimed"`
	Action        string `json:"action,omitempty"`
	Timestamp     int64  `json:"timestamp,omitempty"`
}

type rateLimitedResponse struct {
	Error    string `json:"error"`
	Response string `json:"response"`
}

// HandleChat processes one inbound chat message
//
// @Summary Send a chat message to the bot
// @Accept json
// @Produce json
// @Success 200 {object} ChatResponse
// @Failure 400 {object} pkghttp.ErrorResponse
// @Failure 429 {object} rateLimitedResponse
// @Router /api/chat [post]
func (h *ChatHandler) HandleChat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Message and userAddress required")
		return
	}

	if err := ValidateRequest(&req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	// Rate limiting is the first gate: denied requests terminate here and
	// are never recorded as attempts.
	sourceIP := pkghttp.ExtractClientIP(r, h.ipConfig)
	if !h.limiter.Allow(r.Context(), sourceIP) {
		pkghttp.WriteJSON(w, http.StatusTooManyRequests, rateLimitedResponse{
			Error:    "Too many requests",
			Response: rateLimitedMessage,
		})
		return
	}

	result := h.chat.HandleMessage(r.Context(), req.UserAddress, req.Message)

	pkghttp.WriteJSON(w, http.StatusOK, ChatResponse{
		Response:      result.Response,
		IsWin:         result.IsWin,
		AttemptCount:  result.AttemptCount,
		Hint:          result.Hint,
		BountyClaimed: result.BountyClaimed,
		Action:        result.Action,
		Timestamp:     result.Timestamp,
	})
}
