package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"scrypto/database"
	"scrypto/models"
	"scrypto/service"
)

// BalanceRepository implements wallet balance data access
type BalanceRepository struct {
	q queryable
}

// NewBalanceRepository creates a new balance repository
func NewBalanceRepository(db *database.DB) *BalanceRepository {
	return &BalanceRepository{q: db.Pool}
}

// newBalanceRepositoryWithTx creates a new balance repository with a transaction
func newBalanceRepositoryWithTx(tx queryable) *BalanceRepository {
	return &BalanceRepository{q: tx}
}

// GetByWallet retrieves a balance row by wallet address
func (r *BalanceRepository) GetByWallet(ctx context.Context, wallet string) (*models.UserBalance, error) {
	query := `
		SELECT wallet_address, balance, created_at, updated_at
		FROM user_balances
		WHERE wallet_address = $1
	`

	var balance models.UserBalance
	err := r.q.QueryRow(ctx, query, wallet).Scan(
		&balance.WalletAddress,
		&balance.Balance,
		&balance.CreatedAt,
		&balance.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get balance for wallet %s: %w", wallet, err)
	}

	return &balance, nil
}

// CreateIfAbsent inserts a balance row with the starting balance. Concurrent
// calls for the same wallet insert exactly one row.
func (r *BalanceRepository) CreateIfAbsent(ctx context.Context, wallet string, initial decimal.Decimal) error {
	query := `
		INSERT INTO user_balances (wallet_address, balance)
		VALUES ($1, $2)
		ON CONFLICT (wallet_address) DO NOTHING
	`

	if _, err := r.q.Exec(ctx, query, wallet, initial); err != nil {
		return fmt.Errorf("failed to create balance for wallet %s: %w", wallet, err)
	}

	return nil
}

// Add credits a wallet's balance atomically
func (r *BalanceRepository) Add(ctx context.Context, wallet string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("amount must be positive")
	}

	query := `
		UPDATE user_balances
		SET balance = balance + $1, updated_at = NOW()
		WHERE wallet_address = $2
	`

	result, err := r.q.Exec(ctx, query, amount, wallet)
	if err != nil {
		return fmt.Errorf("failed to add balance for wallet %s: %w", wallet, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("balance for wallet %s: %w", wallet, service.ErrNotFound)
	}

	return nil
}

// Deduct debits a wallet's balance atomically, failing if insufficient funds.
// The guard in the WHERE clause makes the check-and-debit a single statement,
// so concurrent stakes cannot overdraw the wallet.
func (r *BalanceRepository) Deduct(ctx context.Context, wallet string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("amount must be positive")
	}

	query := `
		UPDATE user_balances
		SET balance = balance - $1, updated_at = NOW()
		WHERE wallet_address = $2
		  AND balance >= $1
	`

	result, err := r.q.Exec(ctx, query, amount, wallet)
	if err != nil {
		return fmt.Errorf("failed to deduct balance for wallet %s: %w", wallet, err)
	}

	if result.RowsAffected() == 0 {
		balance, err := r.GetByWallet(ctx, wallet)
		if err != nil {
			return fmt.Errorf("failed to check balance: %w", err)
		}
		if balance == nil {
			return fmt.Errorf("balance for wallet %s: %w", wallet, service.ErrNotFound)
		}
		return fmt.Errorf("have %s, need %s: %w",
			balance.Balance.String(), amount.String(), service.ErrInsufficientBalance)
	}

	return nil
}
