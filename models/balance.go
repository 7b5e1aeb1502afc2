package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// UserBalance represents a wallet's spendable platform balance
type UserBalance struct {
	WalletAddress string          `db:"wallet_address"`
	Balance       decimal.Decimal `db:"balance"`
	CreatedAt     time.Time       `db:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at"`
}

// Treasury represents the singleton platform treasury balance.
// Forfeited escrow stakes accumulate here.
type Treasury struct {
	ID        int64           `db:"id"`
	Balance   decimal.Decimal `db:"balance"`
	UpdatedAt time.Time       `db:"updated_at"`
}

// RewardPool is the singleton community reward pool. It is funded by
// external contributions, never by escrow resolution.
type RewardPool struct {
	ID                 int64           `db:"id"`
	TotalAmount        decimal.Decimal `db:"total_amount"`
	LastDistributionAt *time.Time      `db:"last_distribution_at"`
	UpdatedAt          time.Time       `db:"updated_at"`
}
