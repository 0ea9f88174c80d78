package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/BradenHooton/refusebot/internal/game"
	"github.com/BradenHooton/refusebot/internal/models"
	"github.com/google/uuid"
)

// AttemptRecorder defines the attempt tracking operations the chat flow needs
type AttemptRecorder interface {
	RecordAttempt(ctx context.Context, userID, message string) (int64, error)
}

// BountyRegister defines the claim operations the chat flow needs
type BountyRegister interface {
	IsClaimed(ctx context.Context) (bool, error)
	TryClaim(ctx context.Context, claim *models.BountyClaim) (bool, error)
}

// RefusalBackend produces the bot's in-character refusal text. Implementations
// fail closed with a canned response, never an error.
type RefusalBackend interface {
	RefusalResponse(ctx context.Context, message string) string
}

// WinAction is the action tag attached to the winning response.
const WinAction = "BOUNTY_UNLOCKED"

const (
	winResponse        = "🎉 YOOO YOU DID IT! Aight fine, you wore me down fam. Here's your W 🏆"
	bountyGoneResponse = "Too slow fam, somebody already cracked the code and took the bag 💸"
)

// ChatResult is the outcome of one chat turn.
type ChatResult struct {
	Response      string
	IsWin         bool
	AttemptCount  int64
	Hint          string
	BountyClaimed bool
	Action        string
	Timestamp     int64
}

// ChatService orchestrates a chat turn: record the attempt, evaluate the win
// condition, race for the claim on a win, otherwise hand the message to the
// refusal backend and attach any milestone hint.
type ChatService struct {
	attempts AttemptRecorder
	bounty   BountyRegister
	matcher  *game.Matcher
	backend  RefusalBackend
	logger   *slog.Logger
}

// NewChatService creates a new ChatService
func NewChatService(
	attempts AttemptRecorder,
	bounty BountyRegister,
	matcher *game.Matcher,
	backend RefusalBackend,
	logger *slog.Logger,
) *ChatService {
	return &ChatService{
		attempts: attempts,
		bounty:   bounty,
		matcher:  matcher,
		backend:  backend,
		logger:   logger,
	}
}

// HandleMessage runs one admitted chat turn. It never returns an error: store
// and backend failures degrade the turn (missing attempt count, canned
// refusal) instead of failing it.
func (s *ChatService) HandleMessage(ctx context.Context, userID, message string) *ChatResult {
	claimed, err := s.bounty.IsClaimed(ctx)
	if err != nil {
		// Degraded: assume unclaimed and let TryClaim stay the decider.
		s.logger.Error("bounty state unavailable", slog.Any("error", err))
		claimed = false
	}

	// The attempt is recorded before win evaluation so the winning attempt
	// counts too. A store failure here must not block the chat turn.
	count, err := s.attempts.RecordAttempt(ctx, userID, message)
	if err != nil {
		s.logger.Error("attempt tracking degraded",
			slog.String("user_id", userID),
			slog.Any("error", err))
	}

	// Once claimed, win detection is skipped entirely: the first winner is
	// final regardless of later matching phrases.
	if !claimed {
		if result, decided := s.tryWin(ctx, userID, message, count); decided {
			return result
		}
	}

	response := s.backend.RefusalResponse(ctx, message)

	result := &ChatResult{
		Response:      response,
		AttemptCount:  count,
		BountyClaimed: claimed,
	}
	if hint, ok := game.HintFor(count); ok {
		result.Hint = hint
	}

	return result
}

// tryWin evaluates the phrase and races for the claim. The second return is
// false when the turn should fall through to the normal refusal path: the
// phrase did not match, or the claim attempt hit a store outage (the player
// can simply retry once the store is back; the secret stays unclaimed).
func (s *ChatService) tryWin(ctx context.Context, userID, message string, count int64) (*ChatResult, bool) {
	if !s.matcher.IsWinningPhrase(message) {
		return nil, false
	}

	claim := &models.BountyClaim{
		Winner:     userID,
		ProofToken: uuid.NewString(),
		Timestamp:  time.Now().UnixMilli(),
	}

	won, err := s.bounty.TryClaim(ctx, claim)
	if err != nil {
		s.logger.Error("bounty claim attempt failed",
			slog.String("user_id", userID),
			slog.Any("error", err))
		return nil, false
	}

	if !won {
		// Matched the phrase but lost the race to a simultaneous winner.
		s.logger.Info("winning phrase after claim", slog.String("user_id", userID))
		return &ChatResult{
			Response:      bountyGoneResponse,
			AttemptCount:  count,
			BountyClaimed: true,
		}, true
	}

	s.logger.Info("bounty claimed",
		slog.String("winner", userID),
		slog.Int64("attempt", count),
		slog.String("proof_token", claim.ProofToken))

	return &ChatResult{
		Response:      winResponse,
		IsWin:         true,
		AttemptCount:  count,
		BountyClaimed: true,
		Action:        WinAction,
		Timestamp:     claim.Timestamp,
	}, true
}
