package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"scrypto/database"
	"scrypto/models"
	"scrypto/service"
)

// ReputationRepository implements reputation data access
type ReputationRepository struct {
	q queryable
}

// NewReputationRepository creates a new reputation repository
func NewReputationRepository(db *database.DB) *ReputationRepository {
	return &ReputationRepository{q: db.Pool}
}

// newReputationRepositoryWithTx creates a new reputation repository with a transaction
func newReputationRepositoryWithTx(tx queryable) *ReputationRepository {
	return &ReputationRepository{q: tx}
}

const reputationColumns = `
	id, wallet_address, reputation_score, successful_sessions, total_sessions, created_at, updated_at
`

// GetByWallet retrieves a reputation row by wallet address
func (r *ReputationRepository) GetByWallet(ctx context.Context, wallet string) (*models.UserReputation, error) {
	query := `SELECT ` + reputationColumns + ` FROM user_reputation WHERE wallet_address = $1`

	var rep models.UserReputation
	err := r.q.QueryRow(ctx, query, wallet).Scan(
		&rep.ID,
		&rep.WalletAddress,
		&rep.ReputationScore,
		&rep.SuccessfulSessions,
		&rep.TotalSessions,
		&rep.CreatedAt,
		&rep.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get reputation for wallet %s: %w", wallet, err)
	}

	return &rep, nil
}

// Create inserts a wallet's first reputation row
func (r *ReputationRepository) Create(ctx context.Context, rep *models.UserReputation) error {
	query := `
		INSERT INTO user_reputation (wallet_address, reputation_score, successful_sessions, total_sessions)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	err := r.q.QueryRow(ctx, query,
		rep.WalletAddress,
		rep.ReputationScore,
		rep.SuccessfulSessions,
		rep.TotalSessions,
	).Scan(&rep.ID, &rep.CreatedAt, &rep.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create reputation for wallet %s: %w", rep.WalletAddress, err)
	}

	return nil
}

// Update persists an updated reputation accumulator
func (r *ReputationRepository) Update(ctx context.Context, rep *models.UserReputation) error {
	query := `
		UPDATE user_reputation
		SET reputation_score = $1, successful_sessions = $2, total_sessions = $3, updated_at = NOW()
		WHERE wallet_address = $4
	`

	result, err := r.q.Exec(ctx, query,
		rep.ReputationScore,
		rep.SuccessfulSessions,
		rep.TotalSessions,
		rep.WalletAddress,
	)
	if err != nil {
		return fmt.Errorf("failed to update reputation for wallet %s: %w", rep.WalletAddress, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("reputation for wallet %s: %w", rep.WalletAddress, service.ErrNotFound)
	}

	return nil
}

// GetTop returns the highest-scored wallets, best first
func (r *ReputationRepository) GetTop(ctx context.Context, limit int) ([]*models.UserReputation, error) {
	query := `
		SELECT ` + reputationColumns + `
		FROM user_reputation
		ORDER BY reputation_score DESC, wallet_address
		LIMIT $1
	`

	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}
	defer rows.Close()

	var reps []*models.UserReputation
	for rows.Next() {
		var rep models.UserReputation
		err := rows.Scan(
			&rep.ID,
			&rep.WalletAddress,
			&rep.ReputationScore,
			&rep.SuccessfulSessions,
			&rep.TotalSessions,
			&rep.CreatedAt,
			&rep.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reputation: %w", err)
		}
		reps = append(reps, &rep)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate leaderboard: %w", err)
	}

	return reps, nil
}

// GetRank returns a wallet's leaderboard position, or nil if unranked
func (r *ReputationRepository) GetRank(ctx context.Context, wallet string) (*models.LeaderboardRank, error) {
	query := `
		SELECT ranked.rank, ranked.total,
		       ranked.id, ranked.wallet_address, ranked.reputation_score,
		       ranked.successful_sessions, ranked.total_sessions, ranked.created_at, ranked.updated_at
		FROM (
			SELECT *,
			       RANK() OVER (ORDER BY reputation_score DESC) AS rank,
			       COUNT(*) OVER () AS total
			FROM user_reputation
		) ranked
		WHERE ranked.wallet_address = $1
	`

	var rank models.LeaderboardRank
	var rep models.UserReputation
	err := r.q.QueryRow(ctx, query, wallet).Scan(
		&rank.Rank,
		&rank.Total,
		&rep.ID,
		&rep.WalletAddress,
		&rep.ReputationScore,
		&rep.SuccessfulSessions,
		&rep.TotalSessions,
		&rep.CreatedAt,
		&rep.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get rank for wallet %s: %w", wallet, err)
	}

	rank.Reputation = &rep
	return &rank, nil
}

// IsTopProvider checks whether the wallet ranks within the top N by score
func (r *ReputationRepository) IsTopProvider(ctx context.Context, wallet string, topN int) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM (
				SELECT wallet_address
				FROM user_reputation
				ORDER BY reputation_score DESC, wallet_address
				LIMIT $2
			) top
			WHERE top.wallet_address = $1
		)
	`

	var topProvider bool
	if err := r.q.QueryRow(ctx, query, wallet, topN).Scan(&topProvider); err != nil {
		return false, fmt.Errorf("failed to check leaderboard position for wallet %s: %w", wallet, err)
	}

	return topProvider, nil
}
