package models

// BountyClaim is the global single-winner claim record. Written exactly once
// by whichever request wins the race, immutable afterwards. Timestamp is
// unix milliseconds.
type BountyClaim struct {
	Winner     string `json:"winner"`
	ProofToken string `json:"proof_token"`
	Timestamp  int64  `json:"timestamp"`
}
