package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"scrypto/database"
	"scrypto/models"
	"scrypto/service"
)

// DepositRepository implements escrow deposit data access
type DepositRepository struct {
	q queryable
}

// NewDepositRepository creates a new deposit repository
func NewDepositRepository(db *database.DB) *DepositRepository {
	return &DepositRepository{q: db.Pool}
}

// newDepositRepositoryWithTx creates a new deposit repository with a transaction
func newDepositRepositoryWithTx(tx queryable) *DepositRepository {
	return &DepositRepository{q: tx}
}

// Create inserts a new locked deposit. The partial unique index on
// (match_id, wallet_address) WHERE status = 'locked' backs the at-most-one
// live stake invariant; a duplicate surfaces as ErrAlreadyStaked.
func (r *DepositRepository) Create(ctx context.Context, deposit *models.EscrowDeposit) error {
	query := `
		INSERT INTO escrow_deposits (match_id, wallet_address, amount, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query,
		deposit.MatchID,
		deposit.WalletAddress,
		deposit.Amount,
		deposit.Status,
	).Scan(&deposit.ID, &deposit.CreatedAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return fmt.Errorf("deposit for match %s wallet %s: %w",
			deposit.MatchID, deposit.WalletAddress, service.ErrAlreadyStaked)
	}
	if err != nil {
		return fmt.Errorf("failed to create deposit: %w", err)
	}

	return nil
}

// GetByMatch returns all deposits for a match regardless of status
func (r *DepositRepository) GetByMatch(ctx context.Context, matchID uuid.UUID) ([]*models.EscrowDeposit, error) {
	query := `
		SELECT id, match_id, wallet_address, amount, status, created_at, resolved_at
		FROM escrow_deposits
		WHERE match_id = $1
		ORDER BY created_at
	`

	return r.queryDeposits(ctx, query, matchID)
}

// GetLockedByMatch returns deposits still awaiting resolution
func (r *DepositRepository) GetLockedByMatch(ctx context.Context, matchID uuid.UUID) ([]*models.EscrowDeposit, error) {
	query := `
		SELECT id, match_id, wallet_address, amount, status, created_at, resolved_at
		FROM escrow_deposits
		WHERE match_id = $1 AND status = 'locked'
		ORDER BY created_at
	`

	return r.queryDeposits(ctx, query, matchID)
}

func (r *DepositRepository) queryDeposits(ctx context.Context, query string, args ...any) ([]*models.EscrowDeposit, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query deposits: %w", err)
	}
	defer rows.Close()

	var deposits []*models.EscrowDeposit
	for rows.Next() {
		var deposit models.EscrowDeposit
		err := rows.Scan(
			&deposit.ID,
			&deposit.MatchID,
			&deposit.WalletAddress,
			&deposit.Amount,
			&deposit.Status,
			&deposit.CreatedAt,
			&deposit.ResolvedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan deposit: %w", err)
		}
		deposits = append(deposits, &deposit)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate deposits: %w", err)
	}

	return deposits, nil
}

// HasLocked checks whether the wallet has a locked deposit for the match
func (r *DepositRepository) HasLocked(ctx context.Context, matchID uuid.UUID, wallet string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM escrow_deposits
			WHERE match_id = $1 AND wallet_address = $2 AND status = 'locked'
		)
	`

	var exists bool
	if err := r.q.QueryRow(ctx, query, matchID, wallet).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check deposit existence: %w", err)
	}

	return exists, nil
}

// CountLocked returns the number of locked deposits for a match
func (r *DepositRepository) CountLocked(ctx context.Context, matchID uuid.UUID) (int, error) {
	query := `
		SELECT COUNT(*) FROM escrow_deposits
		WHERE match_id = $1 AND status = 'locked'
	`

	var count int
	if err := r.q.QueryRow(ctx, query, matchID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count locked deposits: %w", err)
	}

	return count, nil
}

// MarkResolved transitions a deposit out of the locked state. Deposits
// resolve exactly once; a second attempt affects no rows and errors.
func (r *DepositRepository) MarkResolved(ctx context.Context, id uuid.UUID, status models.DepositStatus, resolvedAt time.Time) error {
	query := `
		UPDATE escrow_deposits
		SET status = $1, resolved_at = $2
		WHERE id = $3 AND status = 'locked'
	`

	result, err := r.q.Exec(ctx, query, status, resolvedAt, id)
	if err != nil {
		return fmt.Errorf("failed to resolve deposit %s: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("locked deposit %s: %w", id, service.ErrNotFound)
	}

	return nil
}
