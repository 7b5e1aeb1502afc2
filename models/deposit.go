package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DepositStatus represents the lifecycle state of an escrow deposit
type DepositStatus string

const (
	DepositStatusLocked   DepositStatus = "locked"
	DepositStatusRefunded DepositStatus = "refunded"
	DepositStatusTreasury DepositStatus = "treasury"
)

// EscrowDeposit represents one participant's locked stake for one match.
// A deposit is created locked and transitions exactly once to refunded or
// treasury at resolution time.
type EscrowDeposit struct {
	ID            uuid.UUID       `db:"id"`
	MatchID       uuid.UUID       `db:"match_id"`
	WalletAddress string          `db:"wallet_address"`
	Amount        decimal.Decimal `db:"amount"`
	Status        DepositStatus   `db:"status"`
	CreatedAt     time.Time       `db:"created_at"`
	ResolvedAt    *time.Time      `db:"resolved_at"`
}

// IsLocked checks whether the deposit is still awaiting resolution
func (d *EscrowDeposit) IsLocked() bool {
	return d.Status == DepositStatusLocked
}
