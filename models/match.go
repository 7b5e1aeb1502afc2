package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MatchStatus represents the state of a skill match
type MatchStatus string

const (
	MatchStatusPending   MatchStatus = "pending"
	MatchStatusAccepted  MatchStatus = "accepted"
	MatchStatusStaked    MatchStatus = "staked"
	MatchStatusInSession MatchStatus = "in_session"
	MatchStatusCompleted MatchStatus = "completed"
	MatchStatusDisputed  MatchStatus = "disputed"
)

// SkillMatch represents a proposed bilateral skill exchange between two
// wallets, each teaching one skill to the other
type SkillMatch struct {
	ID            uuid.UUID        `db:"id"`
	UserAWallet   string           `db:"user_a_wallet"`
	UserBWallet   string           `db:"user_b_wallet"`
	SkillATeaches uuid.UUID        `db:"skill_a_teaches"`
	SkillBTeaches uuid.UUID        `db:"skill_b_teaches"`
	Status        MatchStatus      `db:"status"`
	StakeAmount   *decimal.Decimal `db:"stake_amount"`
	CreatedAt     time.Time        `db:"created_at"`
	UpdatedAt     time.Time        `db:"updated_at"`
}

// matchTransitions holds the allowed forward edges of the match state machine
var matchTransitions = map[MatchStatus][]MatchStatus{
	MatchStatusPending:   {MatchStatusAccepted},
	MatchStatusAccepted:  {MatchStatusStaked},
	MatchStatusStaked:    {MatchStatusInSession},
	MatchStatusInSession: {MatchStatusCompleted, MatchStatusDisputed},
}

// CanTransitionTo checks whether a status change is a valid forward edge
func (m *SkillMatch) CanTransitionTo(next MatchStatus) bool {
	for _, allowed := range matchTransitions[m.Status] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsParticipant checks if a wallet is involved in the match
func (m *SkillMatch) IsParticipant(wallet string) bool {
	wallet = strings.ToLower(wallet)
	return m.UserAWallet == wallet || m.UserBWallet == wallet
}

// IsUserA checks if the wallet is the match's initiating party
func (m *SkillMatch) IsUserA(wallet string) bool {
	return m.UserAWallet == strings.ToLower(wallet)
}

// Counterparty returns the opposite wallet for a given participant,
// or "" if the wallet is not a participant
func (m *SkillMatch) Counterparty(wallet string) string {
	wallet = strings.ToLower(wallet)
	if m.UserAWallet == wallet {
		return m.UserBWallet
	}
	if m.UserBWallet == wallet {
		return m.UserAWallet
	}
	return ""
}

// CanBeAccepted checks if the match can be accepted by the given wallet.
// Only the invited party (user B) accepts a pending match.
func (m *SkillMatch) CanBeAccepted(wallet string) bool {
	return m.Status == MatchStatusPending && m.UserBWallet == strings.ToLower(wallet)
}

// IsTerminal checks if the match has reached a final state
func (m *SkillMatch) IsTerminal() bool {
	return m.Status == MatchStatusCompleted || m.Status == MatchStatusDisputed
}
