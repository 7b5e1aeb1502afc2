package models

import (
	"time"
)

const (
	// ReputationGain is added when the counterparty was satisfied
	ReputationGain = 10
	// ReputationLoss is subtracted when the counterparty was not
	ReputationLoss = 5
)

// UserReputation accumulates per-wallet teaching outcomes. The score moves
// on the counterparty's vote, not the wallet's own: sessions you taught
// are what you are rated on.
type UserReputation struct {
	ID                 int64     `db:"id"`
	WalletAddress      string    `db:"wallet_address"`
	ReputationScore    int       `db:"reputation_score"`
	SuccessfulSessions int       `db:"successful_sessions"`
	TotalSessions      int       `db:"total_sessions"`
	CreatedAt          time.Time `db:"created_at"`
	UpdatedAt          time.Time `db:"updated_at"`
}

// NewReputation builds the first reputation row for a wallet from its
// first resolved session
func NewReputation(wallet string, counterpartySatisfied bool) *UserReputation {
	rep := &UserReputation{
		WalletAddress: wallet,
		TotalSessions: 1,
	}
	if counterpartySatisfied {
		rep.ReputationScore = ReputationGain
		rep.SuccessfulSessions = 1
	}
	return rep
}

// ApplyOutcome folds one resolved session into the accumulator
func (r *UserReputation) ApplyOutcome(counterpartySatisfied bool) {
	if counterpartySatisfied {
		r.ReputationScore += ReputationGain
		r.SuccessfulSessions++
	} else {
		r.ReputationScore -= ReputationLoss
	}
	r.TotalSessions++
}

// SatisfactionRate returns the fraction of sessions rated successful,
// or 0 when no sessions have resolved yet
func (r *UserReputation) SatisfactionRate() float64 {
	if r.TotalSessions == 0 {
		return 0
	}
	return float64(r.SuccessfulSessions) / float64(r.TotalSessions)
}

// LeaderboardRank describes a wallet's position on the reputation leaderboard
type LeaderboardRank struct {
	Rank       int
	Total      int
	Reputation *UserReputation
}
