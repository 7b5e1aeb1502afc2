package service

import "errors"

// Stable error taxonomy surfaced to the API layer. Repositories and
// services wrap these with context via fmt.Errorf and %w.
var (
	// ErrInsufficientBalance means a debit exceeded the wallet's spendable balance
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrAlreadyStaked means a locked deposit already exists for the (match, wallet) pair
	ErrAlreadyStaked = errors.New("already staked for this match")

	// ErrNotFound means the requested row does not exist
	ErrNotFound = errors.New("not found")

	// ErrNotParticipant means the wallet is not a party to the match
	ErrNotParticipant = errors.New("wallet is not a participant in this match")

	// ErrSessionResolved means the session already reached its terminal outcome
	ErrSessionResolved = errors.New("session is already resolved")

	// ErrInvalidTransition means the requested match status change is not a
	// valid edge of the match state machine
	ErrInvalidTransition = errors.New("invalid match status transition")
)
