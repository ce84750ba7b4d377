package model

import "errors"

// Outcome sentinels shared by every workflow. Callers branch with errors.Is.
var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrUpstream         = errors.New("upstream failure")
	ErrInsufficientData = errors.New("insufficient data")
)
