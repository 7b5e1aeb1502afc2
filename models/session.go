package models

import (
	"time"

	"github.com/google/uuid"
)

// Resolution represents the terminal outcome of a learning session
type Resolution string

const (
	// ResolutionRefunded means both stakes were returned
	ResolutionRefunded Resolution = "refunded"
	// ResolutionATreasury means user A's stake was forfeited (B was not satisfied)
	ResolutionATreasury Resolution = "a_treasury"
	// ResolutionBTreasury means user B's stake was forfeited (A was not satisfied)
	ResolutionBTreasury Resolution = "b_treasury"
	// ResolutionBothTreasury means both stakes were forfeited
	ResolutionBothTreasury Resolution = "both_treasury"
)

// LearningSession tracks the satisfaction votes for one match. Each side
// votes independently on whether they were satisfied with what the
// counterparty taught them; the session resolves once both votes are in.
type LearningSession struct {
	ID             uuid.UUID   `db:"id"`
	MatchID        uuid.UUID   `db:"match_id"`
	UserASatisfied *bool       `db:"user_a_satisfied"`
	UserBSatisfied *bool       `db:"user_b_satisfied"`
	UserAMarkedAt  *time.Time  `db:"user_a_marked_at"`
	UserBMarkedAt  *time.Time  `db:"user_b_marked_at"`
	Resolution     *Resolution `db:"resolution"`
	CreatedAt      time.Time   `db:"created_at"`
	CompletedAt    *time.Time  `db:"completed_at"`
}

// BothVoted checks whether both satisfaction votes are present
func (s *LearningSession) BothVoted() bool {
	return s.UserASatisfied != nil && s.UserBSatisfied != nil
}

// IsResolved checks whether the session has reached its terminal outcome.
// A resolved session accepts no further votes.
func (s *LearningSession) IsResolved() bool {
	return s.Resolution != nil
}

// VoteOutcome is the pair of satisfaction votes for a resolved session.
// The voter's vote determines the counterparty's fund disposition: if
// someone rates your teaching unsatisfactory, YOUR collateral is forfeited.
type VoteOutcome struct {
	ASatisfied bool
	BSatisfied bool
}

// RefundA reports whether user A's deposit is returned. A taught B, so A's
// stake comes back only if B was satisfied.
func (v VoteOutcome) RefundA() bool {
	return v.BSatisfied
}

// RefundB reports whether user B's deposit is returned
func (v VoteOutcome) RefundB() bool {
	return v.ASatisfied
}

// BothSatisfied reports whether the exchange completed cleanly
func (v VoteOutcome) BothSatisfied() bool {
	return v.ASatisfied && v.BSatisfied
}

// Resolution returns the session resolution label for this vote pair
func (v VoteOutcome) Resolution() Resolution {
	switch {
	case !v.ASatisfied && !v.BSatisfied:
		return ResolutionBothTreasury
	case !v.BSatisfied:
		// B was unhappy with A's teaching, A loses the stake
		return ResolutionATreasury
	case !v.ASatisfied:
		return ResolutionBTreasury
	default:
		return ResolutionRefunded
	}
}

// MatchStatus returns the terminal match status for this vote pair
func (v VoteOutcome) MatchStatus() MatchStatus {
	if v.BothSatisfied() {
		return MatchStatusCompleted
	}
	return MatchStatusDisputed
}
