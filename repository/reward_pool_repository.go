package repository

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"scrypto/database"
	"scrypto/models"
)

// RewardPoolRepository implements data access for the singleton reward pool
type RewardPoolRepository struct {
	q queryable
}

// NewRewardPoolRepository creates a new reward pool repository
func NewRewardPoolRepository(db *database.DB) *RewardPoolRepository {
	return &RewardPoolRepository{q: db.Pool}
}

// newRewardPoolRepositoryWithTx creates a new reward pool repository with a transaction
func newRewardPoolRepositoryWithTx(tx queryable) *RewardPoolRepository {
	return &RewardPoolRepository{q: tx}
}

// rewardPoolID pins the singleton row; the schema enforces it with CHECK (id = 1)
const rewardPoolID = 1

// GetOrCreate returns the pool row, lazily creating it at zero.
// Concurrent first callers race on the insert and all land on the same row.
func (r *RewardPoolRepository) GetOrCreate(ctx context.Context) (*models.RewardPool, error) {
	insert := `
		INSERT INTO reward_pool (id)
		VALUES ($1)
		ON CONFLICT (id) DO NOTHING
	`

	if _, err := r.q.Exec(ctx, insert, rewardPoolID); err != nil {
		return nil, fmt.Errorf("failed to create reward pool: %w", err)
	}

	query := `
		SELECT id, total_amount, last_distribution_at, updated_at
		FROM reward_pool
		WHERE id = $1
	`

	var pool models.RewardPool
	err := r.q.QueryRow(ctx, query, rewardPoolID).Scan(
		&pool.ID,
		&pool.TotalAmount,
		&pool.LastDistributionAt,
		&pool.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get reward pool: %w", err)
	}

	return &pool, nil
}

// Add increments the pool total
func (r *RewardPoolRepository) Add(ctx context.Context, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("amount must be positive")
	}

	if _, err := r.GetOrCreate(ctx); err != nil {
		return err
	}

	query := `
		UPDATE reward_pool
		SET total_amount = total_amount + $1, updated_at = NOW()
		WHERE id = $2
	`

	if _, err := r.q.Exec(ctx, query, amount, rewardPoolID); err != nil {
		return fmt.Errorf("failed to add to reward pool: %w", err)
	}

	return nil
}
