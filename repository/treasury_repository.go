package repository

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"scrypto/database"
	"scrypto/models"
)

// TreasuryRepository implements data access for the singleton platform treasury
type TreasuryRepository struct {
	q queryable
}

// NewTreasuryRepository creates a new treasury repository
func NewTreasuryRepository(db *database.DB) *TreasuryRepository {
	return &TreasuryRepository{q: db.Pool}
}

// newTreasuryRepositoryWithTx creates a new treasury repository with a transaction
func newTreasuryRepositoryWithTx(tx queryable) *TreasuryRepository {
	return &TreasuryRepository{q: tx}
}

// treasuryID pins the singleton row; the schema enforces it with CHECK (id = 1)
const treasuryID = 1

// GetOrCreate returns the treasury row, lazily creating it at zero.
// Concurrent first callers race on the insert and all land on the same row.
func (r *TreasuryRepository) GetOrCreate(ctx context.Context) (*models.Treasury, error) {
	insert := `
		INSERT INTO platform_treasury (id)
		VALUES ($1)
		ON CONFLICT (id) DO NOTHING
	`

	if _, err := r.q.Exec(ctx, insert, treasuryID); err != nil {
		return nil, fmt.Errorf("failed to create treasury: %w", err)
	}

	query := `
		SELECT id, balance, updated_at
		FROM platform_treasury
		WHERE id = $1
	`

	var treasury models.Treasury
	err := r.q.QueryRow(ctx, query, treasuryID).Scan(&treasury.ID, &treasury.Balance, &treasury.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to get treasury: %w", err)
	}

	return &treasury, nil
}

// Credit adds forfeited stakes to the treasury
func (r *TreasuryRepository) Credit(ctx context.Context, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("amount must be positive")
	}

	if _, err := r.GetOrCreate(ctx); err != nil {
		return err
	}

	query := `
		UPDATE platform_treasury
		SET balance = balance + $1, updated_at = NOW()
		WHERE id = $2
	`

	if _, err := r.q.Exec(ctx, query, amount, treasuryID); err != nil {
		return fmt.Errorf("failed to credit treasury: %w", err)
	}

	return nil
}
