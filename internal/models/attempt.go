package models

import "time"

// Attempt is one chat message submitted by a user, win or lose. Attempts are
// keyed by (user, sequence) where sequence is that user's running count.
type Attempt struct {
	UserID    string
	Sequence  int64
	Message   string
	Timestamp time.Time
}

// LeaderboardEntry pairs a user address with its current attempt count.
// Derived from the per-user counters on demand, never stored.
type LeaderboardEntry struct {
	Address  string `json:"address"`
	Attempts int64  `json:"attempts"`
}
