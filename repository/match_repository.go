package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"scrypto/database"
	"scrypto/models"
	"scrypto/service"
)

// MatchRepository implements skill match data access
type MatchRepository struct {
	q queryable
}

// NewMatchRepository creates a new match repository
func NewMatchRepository(db *database.DB) *MatchRepository {
	return &MatchRepository{q: db.Pool}
}

// newMatchRepositoryWithTx creates a new match repository with a transaction
func newMatchRepositoryWithTx(tx queryable) *MatchRepository {
	return &MatchRepository{q: tx}
}

// Create inserts a new match
func (r *MatchRepository) Create(ctx context.Context, match *models.SkillMatch) error {
	query := `
		INSERT INTO skill_matches (user_a_wallet, user_b_wallet, skill_a_teaches, skill_b_teaches, status, stake_amount)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := r.q.QueryRow(ctx, query,
		match.UserAWallet,
		match.UserBWallet,
		match.SkillATeaches,
		match.SkillBTeaches,
		match.Status,
		match.StakeAmount,
	).Scan(&match.ID, &match.CreatedAt, &match.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create match: %w", err)
	}

	return nil
}

// GetByID retrieves a match by its ID
func (r *MatchRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.SkillMatch, error) {
	query := `
		SELECT id, user_a_wallet, user_b_wallet, skill_a_teaches, skill_b_teaches,
		       status, stake_amount, created_at, updated_at
		FROM skill_matches
		WHERE id = $1
	`

	var match models.SkillMatch
	err := r.q.QueryRow(ctx, query, id).Scan(
		&match.ID,
		&match.UserAWallet,
		&match.UserBWallet,
		&match.SkillATeaches,
		&match.SkillBTeaches,
		&match.Status,
		&match.StakeAmount,
		&match.CreatedAt,
		&match.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get match %s: %w", id, err)
	}

	return &match, nil
}

// UpdateStatus transitions a match's status label
func (r *MatchRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.MatchStatus) error {
	query := `
		UPDATE skill_matches
		SET status = $1, updated_at = NOW()
		WHERE id = $2
	`

	result, err := r.q.Exec(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("failed to update match %s status: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("match %s: %w", id, service.ErrNotFound)
	}

	return nil
}

// GetByWallet returns all matches the wallet participates in, newest first
func (r *MatchRepository) GetByWallet(ctx context.Context, wallet string) ([]*models.SkillMatch, error) {
	query := `
		SELECT id, user_a_wallet, user_b_wallet, skill_a_teaches, skill_b_teaches,
		       status, stake_amount, created_at, updated_at
		FROM skill_matches
		WHERE user_a_wallet = $1 OR user_b_wallet = $1
		ORDER BY created_at DESC
	`

	rows, err := r.q.Query(ctx, query, wallet)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches for wallet %s: %w", wallet, err)
	}
	defer rows.Close()

	var matches []*models.SkillMatch
	for rows.Next() {
		var match models.SkillMatch
		err := rows.Scan(
			&match.ID,
			&match.UserAWallet,
			&match.UserBWallet,
			&match.SkillATeaches,
			&match.SkillBTeaches,
			&match.Status,
			&match.StakeAmount,
			&match.CreatedAt,
			&match.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}
		matches = append(matches, &match)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate matches: %w", err)
	}

	return matches, nil
}
