package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"scrypto/database"
	"scrypto/models"
	"scrypto/service"
)

// SessionRepository implements learning session data access
type SessionRepository struct {
	q queryable
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *database.DB) *SessionRepository {
	return &SessionRepository{q: db.Pool}
}

// newSessionRepositoryWithTx creates a new session repository with a transaction
func newSessionRepositoryWithTx(tx queryable) *SessionRepository {
	return &SessionRepository{q: tx}
}

const sessionColumns = `
	id, match_id, user_a_satisfied, user_b_satisfied,
	user_a_marked_at, user_b_marked_at, resolution, created_at, completed_at
`

// Create inserts a new session for a match
func (r *SessionRepository) Create(ctx context.Context, session *models.LearningSession) error {
	query := `
		INSERT INTO learning_sessions (match_id)
		VALUES ($1)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query, session.MatchID).Scan(&session.ID, &session.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	return nil
}

// GetByID retrieves a session by its ID
func (r *SessionRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.LearningSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM learning_sessions WHERE id = $1`
	return r.scanSession(r.q.QueryRow(ctx, query, id))
}

// GetByMatch retrieves the session for a match
func (r *SessionRepository) GetByMatch(ctx context.Context, matchID uuid.UUID) (*models.LearningSession, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM learning_sessions
		WHERE match_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`
	return r.scanSession(r.q.QueryRow(ctx, query, matchID))
}

func (r *SessionRepository) scanSession(row pgx.Row) (*models.LearningSession, error) {
	var session models.LearningSession
	err := row.Scan(
		&session.ID,
		&session.MatchID,
		&session.UserASatisfied,
		&session.UserBSatisfied,
		&session.UserAMarkedAt,
		&session.UserBMarkedAt,
		&session.Resolution,
		&session.CreatedAt,
		&session.CompletedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return &session, nil
}

// GetByWallet returns sessions whose match involves the wallet, newest first
func (r *SessionRepository) GetByWallet(ctx context.Context, wallet string) ([]*models.LearningSession, error) {
	query := `
		SELECT s.id, s.match_id, s.user_a_satisfied, s.user_b_satisfied,
		       s.user_a_marked_at, s.user_b_marked_at, s.resolution, s.created_at, s.completed_at
		FROM learning_sessions s
		JOIN skill_matches m ON m.id = s.match_id
		WHERE m.user_a_wallet = $1 OR m.user_b_wallet = $1
		ORDER BY s.created_at DESC
	`

	rows, err := r.q.Query(ctx, query, wallet)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions for wallet %s: %w", wallet, err)
	}
	defer rows.Close()

	var sessions []*models.LearningSession
	for rows.Next() {
		var session models.LearningSession
		err := rows.Scan(
			&session.ID,
			&session.MatchID,
			&session.UserASatisfied,
			&session.UserBSatisfied,
			&session.UserAMarkedAt,
			&session.UserBMarkedAt,
			&session.Resolution,
			&session.CreatedAt,
			&session.CompletedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, &session)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sessions: %w", err)
	}

	return sessions, nil
}

// RecordVote stores one side's satisfaction vote with its timestamp.
// Votes on a resolved session are rejected by the resolution IS NULL guard.
func (r *SessionRepository) RecordVote(ctx context.Context, id uuid.UUID, isUserA bool, satisfied bool, markedAt time.Time) error {
	var query string
	if isUserA {
		query = `
			UPDATE learning_sessions
			SET user_a_satisfied = $1, user_a_marked_at = $2
			WHERE id = $3 AND resolution IS NULL
		`
	} else {
		query = `
			UPDATE learning_sessions
			SET user_b_satisfied = $1, user_b_marked_at = $2
			WHERE id = $3 AND resolution IS NULL
		`
	}

	result, err := r.q.Exec(ctx, query, satisfied, markedAt, id)
	if err != nil {
		return fmt.Errorf("failed to record vote for session %s: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("unresolved session %s: %w", id, service.ErrNotFound)
	}

	return nil
}

// SetResolution stores the terminal outcome of a session exactly once
func (r *SessionRepository) SetResolution(ctx context.Context, id uuid.UUID, resolution models.Resolution, completedAt time.Time) error {
	query := `
		UPDATE learning_sessions
		SET resolution = $1, completed_at = $2
		WHERE id = $3 AND resolution IS NULL
	`

	result, err := r.q.Exec(ctx, query, resolution, completedAt, id)
	if err != nil {
		return fmt.Errorf("failed to set resolution for session %s: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("session %s: %w", id, service.ErrSessionResolved)
	}

	return nil
}
