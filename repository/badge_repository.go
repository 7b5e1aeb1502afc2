package repository

import (
	"context"
	"fmt"

	"scrypto/database"
	"scrypto/models"
)

// BadgeRepository implements badge data access
type BadgeRepository struct {
	q queryable
}

// NewBadgeRepository creates a new badge repository
func NewBadgeRepository(db *database.DB) *BadgeRepository {
	return &BadgeRepository{q: db.Pool}
}

// newBadgeRepositoryWithTx creates a new badge repository with a transaction
func newBadgeRepositoryWithTx(tx queryable) *BadgeRepository {
	return &BadgeRepository{q: tx}
}

// Award inserts a badge, reporting false if the wallet already holds it.
// The unique constraint on (wallet_address, badge_type) makes repeated
// awards a no-op rather than an error.
func (r *BadgeRepository) Award(ctx context.Context, badge *models.UserBadge) (bool, error) {
	query := `
		INSERT INTO user_badges (wallet_address, badge_type, badge_name, description)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (wallet_address, badge_type) DO NOTHING
	`

	result, err := r.q.Exec(ctx, query,
		badge.WalletAddress,
		badge.BadgeType,
		badge.BadgeName,
		badge.Description,
	)
	if err != nil {
		return false, fmt.Errorf("failed to award badge %s to wallet %s: %w",
			badge.BadgeType, badge.WalletAddress, err)
	}

	return result.RowsAffected() > 0, nil
}

// GetByWallet returns a wallet's badges, newest first
func (r *BadgeRepository) GetByWallet(ctx context.Context, wallet string) ([]*models.UserBadge, error) {
	query := `
		SELECT id, wallet_address, badge_type, badge_name, description, earned_at
		FROM user_badges
		WHERE wallet_address = $1
		ORDER BY earned_at DESC
	`

	rows, err := r.q.Query(ctx, query, wallet)
	if err != nil {
		return nil, fmt.Errorf("failed to query badges for wallet %s: %w", wallet, err)
	}
	defer rows.Close()

	var badges []*models.UserBadge
	for rows.Next() {
		var badge models.UserBadge
		err := rows.Scan(
			&badge.ID,
			&badge.WalletAddress,
			&badge.BadgeType,
			&badge.BadgeName,
			&badge.Description,
			&badge.EarnedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan badge: %w", err)
		}
		badges = append(badges, &badge)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate badges: %w", err)
	}

	return badges, nil
}
