package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVoteOutcome_Resolution(t *testing.T) {
	tests := []struct {
		name       string
		aSatisfied bool
		bSatisfied bool
		resolution Resolution
		status     MatchStatus
	}{
		{"both satisfied", true, true, ResolutionRefunded, MatchStatusCompleted},
		{"only A satisfied", true, false, ResolutionATreasury, MatchStatusDisputed},
		{"only B satisfied", false, true, ResolutionBTreasury, MatchStatusDisputed},
		{"neither satisfied", false, false, ResolutionBothTreasury, MatchStatusDisputed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome := VoteOutcome{ASatisfied: tt.aSatisfied, BSatisfied: tt.bSatisfied}
			assert.Equal(t, tt.resolution, outcome.Resolution())
			assert.Equal(t, tt.status, outcome.MatchStatus())
		})
	}
}

func TestVoteOutcome_RefundsFollowCounterpartyVote(t *testing.T) {
	// A's deposit comes back only when B was satisfied with A's teaching,
	// and vice versa
	outcome := VoteOutcome{ASatisfied: true, BSatisfied: false}
	assert.False(t, outcome.RefundA())
	assert.True(t, outcome.RefundB())

	outcome = VoteOutcome{ASatisfied: false, BSatisfied: true}
	assert.True(t, outcome.RefundA())
	assert.False(t, outcome.RefundB())

	outcome = VoteOutcome{ASatisfied: true, BSatisfied: true}
	assert.True(t, outcome.RefundA())
	assert.True(t, outcome.RefundB())

	outcome = VoteOutcome{ASatisfied: false, BSatisfied: false}
	assert.False(t, outcome.RefundA())
	assert.False(t, outcome.RefundB())
}

func TestLearningSession_BothVoted(t *testing.T) {
	session := &LearningSession{}
	assert.False(t, session.BothVoted())

	satisfied := true
	session.UserASatisfied = &satisfied
	assert.False(t, session.BothVoted())

	notSatisfied := false
	session.UserBSatisfied = &notSatisfied
	assert.True(t, session.BothVoted())
}

func TestLearningSession_IsResolved(t *testing.T) {
	session := &LearningSession{}
	assert.False(t, session.IsResolved())

	resolution := ResolutionRefunded
	session.Resolution = &resolution
	assert.True(t, session.IsResolved())
}
