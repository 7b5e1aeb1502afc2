package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Skill is a catalog entry users can teach or want to learn. The collateral
// amount determines the stake required for matches exchanging this skill.
type Skill struct {
	ID               uuid.UUID       `db:"id"`
	Name             string          `db:"name"`
	Category         string          `db:"category"`
	CollateralAmount decimal.Decimal `db:"collateral_amount"`
	CreatedAt        time.Time       `db:"created_at"`
}

// UserSkill links a wallet to a skill it offers to teach
type UserSkill struct {
	ID            uuid.UUID `db:"id"`
	WalletAddress string    `db:"wallet_address"`
	SkillID       uuid.UUID `db:"skill_id"`
	CreatedAt     time.Time `db:"created_at"`
	Skill         *Skill    `db:"-"`
}

// WantedSkill links a wallet to a skill it wants to learn
type WantedSkill struct {
	ID            uuid.UUID `db:"id"`
	WalletAddress string    `db:"wallet_address"`
	SkillID       uuid.UUID `db:"skill_id"`
	CreatedAt     time.Time `db:"created_at"`
	Skill         *Skill    `db:"-"`
}

// PotentialMatch is a complementary pairing: the other wallet teaches
// something we want and wants something we teach
type PotentialMatch struct {
	WalletAddress string
	TheyTeach     *Skill
	TheyWant      *Skill
}

// RequiredStake returns the stake both parties must lock for a match
// exchanging these two skills. The larger collateral of the pair applies
// so neither side is under-collateralized.
func RequiredStake(a, b *Skill) decimal.Decimal {
	if a.CollateralAmount.GreaterThanOrEqual(b.CollateralAmount) {
		return a.CollateralAmount
	}
	return b.CollateralAmount
}
