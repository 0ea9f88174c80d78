package game

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"regexp"
	"strings"
)

var (
	nonWordChars  = regexp.MustCompile(`[^\w\s]`)
	whitespaceRun = regexp.MustCompile(`\s+`)
)

// Normalize lowercases the input, strips everything that is not a word
// character or whitespace, collapses whitespace runs to a single space and
// trims the result. The phrasehash setup command uses this exact function, so
// provisioning and runtime checks can never diverge.
func Normalize(input string) string {
	s := strings.ToLower(input)
	s = nonWordChars.ReplaceAllString(s, "")
	s = whitespaceRun.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// HashPhrase returns the hex SHA-256 digest of the normalized phrase.
func HashPhrase(phrase string) string {
	sum := sha256.Sum256([]byte(Normalize(phrase)))
	return hex.EncodeToString(sum[:])
}

// Matcher compares candidate messages against the secret phrase digest
// loaded at startup. The plaintext phrase never exists in the process.
type Matcher struct {
	digest string
	logger *slog.Logger
}

func NewMatcher(digestHex string, logger *slog.Logger) *Matcher {
	return &Matcher{
		digest: strings.ToLower(digestHex),
		logger: logger,
	}
}

// IsWinningPhrase reports whether the candidate's normalized digest equals
// the secret digest. Plain comparison is fine here: this gates a game
// mechanic, not a secret-equality boundary against timing attacks.
func (m *Matcher) IsWinningPhrase(candidate string) bool {
	normalized := Normalize(candidate)
	sum := sha256.Sum256([]byte(normalized))
	match := hex.EncodeToString(sum[:]) == m.digest

	// Debug only: guess diagnostics are useful in development but the
	// candidate text must stay out of production logs.
	m.logger.Debug("win condition check",
		slog.String("normalized", normalized),
		slog.Bool("match", match),
	)

	return match
}
