package models

import "errors"

// Sentinel errors for common failure conditions
var (
	ErrStoreUnavailable  = errors.New("store unavailable")
	ErrRateLimitExceeded = errors.New("rate limit exceeded")
	ErrBountyClaimed     = errors.New("bounty already claimed")
	ErrBadRequest        = errors.New("bad request")
	ErrInternalServer    = errors.New("internal server error")
)
