package engine

import (
	"errors"
)

var (
	// ErrEmptyCandidateSet is returned when the input list is empty or
	// every candidate was dropped during normalization. It is the only
	// hard failure the optimizer produces.
	ErrEmptyCandidateSet = errors.New("no valid expiration candidates to optimize")

	// ErrTooManyCandidates guards the ranking sort against unbounded
	// untrusted input.
	ErrTooManyCandidates = errors.New("candidate list exceeds the optimizer limit")
)
