package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"scrypto/database"
	"scrypto/models"
)

// SkillRepository implements the skills catalog and the per-wallet
// taught/wanted skill sets
type SkillRepository struct {
	q queryable
}

// NewSkillRepository creates a new skill repository
func NewSkillRepository(db *database.DB) *SkillRepository {
	return &SkillRepository{q: db.Pool}
}

// newSkillRepositoryWithTx creates a new skill repository with a transaction
func newSkillRepositoryWithTx(tx queryable) *SkillRepository {
	return &SkillRepository{q: tx}
}

// List returns the full skill catalog
func (r *SkillRepository) List(ctx context.Context) ([]*models.Skill, error) {
	query := `
		SELECT id, name, category, collateral_amount, created_at
		FROM skills
		ORDER BY category, name
	`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query skills: %w", err)
	}
	defer rows.Close()

	var skills []*models.Skill
	for rows.Next() {
		skill, err := scanSkill(rows)
		if err != nil {
			return nil, err
		}
		skills = append(skills, skill)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate skills: %w", err)
	}

	return skills, nil
}

func scanSkill(row pgx.Row) (*models.Skill, error) {
	var skill models.Skill
	err := row.Scan(
		&skill.ID,
		&skill.Name,
		&skill.Category,
		&skill.CollateralAmount,
		&skill.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan skill: %w", err)
	}
	return &skill, nil
}

// GetByID retrieves a skill by its ID
func (r *SkillRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Skill, error) {
	query := `
		SELECT id, name, category, collateral_amount, created_at
		FROM skills
		WHERE id = $1
	`

	var skill models.Skill
	err := r.q.QueryRow(ctx, query, id).Scan(
		&skill.ID,
		&skill.Name,
		&skill.Category,
		&skill.CollateralAmount,
		&skill.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get skill %s: %w", id, err)
	}

	return &skill, nil
}

// AddUserSkill marks a skill as taught by the wallet
func (r *SkillRepository) AddUserSkill(ctx context.Context, wallet string, skillID uuid.UUID) error {
	query := `
		INSERT INTO user_skills (wallet_address, skill_id)
		VALUES ($1, $2)
		ON CONFLICT (wallet_address, skill_id) DO NOTHING
	`

	if _, err := r.q.Exec(ctx, query, wallet, skillID); err != nil {
		return fmt.Errorf("failed to add user skill: %w", err)
	}

	return nil
}

// AddWantedSkill marks a skill as wanted by the wallet
func (r *SkillRepository) AddWantedSkill(ctx context.Context, wallet string, skillID uuid.UUID) error {
	query := `
		INSERT INTO user_wanted_skills (wallet_address, skill_id)
		VALUES ($1, $2)
		ON CONFLICT (wallet_address, skill_id) DO NOTHING
	`

	if _, err := r.q.Exec(ctx, query, wallet, skillID); err != nil {
		return fmt.Errorf("failed to add wanted skill: %w", err)
	}

	return nil
}

// GetUserSkills returns the skills a wallet teaches
func (r *SkillRepository) GetUserSkills(ctx context.Context, wallet string) ([]*models.UserSkill, error) {
	query := `
		SELECT us.id, us.wallet_address, us.skill_id, us.created_at,
		       s.id, s.name, s.category, s.collateral_amount, s.created_at
		FROM user_skills us
		JOIN skills s ON s.id = us.skill_id
		WHERE us.wallet_address = $1
		ORDER BY us.created_at
	`

	rows, err := r.q.Query(ctx, query, wallet)
	if err != nil {
		return nil, fmt.Errorf("failed to query user skills for wallet %s: %w", wallet, err)
	}
	defer rows.Close()

	var userSkills []*models.UserSkill
	for rows.Next() {
		var us models.UserSkill
		var skill models.Skill
		err := rows.Scan(
			&us.ID, &us.WalletAddress, &us.SkillID, &us.CreatedAt,
			&skill.ID, &skill.Name, &skill.Category, &skill.CollateralAmount, &skill.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user skill: %w", err)
		}
		us.Skill = &skill
		userSkills = append(userSkills, &us)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate user skills: %w", err)
	}

	return userSkills, nil
}

// GetWantedSkills returns the skills a wallet wants to learn
func (r *SkillRepository) GetWantedSkills(ctx context.Context, wallet string) ([]*models.WantedSkill, error) {
	query := `
		SELECT ws.id, ws.wallet_address, ws.skill_id, ws.created_at,
		       s.id, s.name, s.category, s.collateral_amount, s.created_at
		FROM user_wanted_skills ws
		JOIN skills s ON s.id = ws.skill_id
		WHERE ws.wallet_address = $1
		ORDER BY ws.created_at
	`

	rows, err := r.q.Query(ctx, query, wallet)
	if err != nil {
		return nil, fmt.Errorf("failed to query wanted skills for wallet %s: %w", wallet, err)
	}
	defer rows.Close()

	var wantedSkills []*models.WantedSkill
	for rows.Next() {
		var ws models.WantedSkill
		var skill models.Skill
		err := rows.Scan(
			&ws.ID, &ws.WalletAddress, &ws.SkillID, &ws.CreatedAt,
			&skill.ID, &skill.Name, &skill.Category, &skill.CollateralAmount, &skill.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan wanted skill: %w", err)
		}
		ws.Skill = &skill
		wantedSkills = append(wantedSkills, &ws)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate wanted skills: %w", err)
	}

	return wantedSkills, nil
}

// FindComplementary returns wallets that teach something this wallet wants
// and want something this wallet teaches, one row per (teach, want) pairing
func (r *SkillRepository) FindComplementary(ctx context.Context, wallet string) ([]*models.PotentialMatch, error) {
	query := `
		SELECT teach.wallet_address,
		       ts.id, ts.name, ts.category, ts.collateral_amount, ts.created_at,
		       ws.id, ws.name, ws.category, ws.collateral_amount, ws.created_at
		FROM user_skills teach
		JOIN skills ts ON ts.id = teach.skill_id
		JOIN user_wanted_skills want ON want.wallet_address = teach.wallet_address
		JOIN skills ws ON ws.id = want.skill_id
		WHERE teach.wallet_address <> $1
		  AND teach.skill_id IN (SELECT skill_id FROM user_wanted_skills WHERE wallet_address = $1)
		  AND want.skill_id IN (SELECT skill_id FROM user_skills WHERE wallet_address = $1)
		ORDER BY teach.wallet_address
	`

	rows, err := r.q.Query(ctx, query, wallet)
	if err != nil {
		return nil, fmt.Errorf("failed to query potential matches for wallet %s: %w", wallet, err)
	}
	defer rows.Close()

	var matches []*models.PotentialMatch
	for rows.Next() {
		var match models.PotentialMatch
		var theyTeach, theyWant models.Skill
		err := rows.Scan(
			&match.WalletAddress,
			&theyTeach.ID, &theyTeach.Name, &theyTeach.Category, &theyTeach.CollateralAmount, &theyTeach.CreatedAt,
			&theyWant.ID, &theyWant.Name, &theyWant.Category, &theyWant.CollateralAmount, &theyWant.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan potential match: %w", err)
		}
		match.TheyTeach = &theyTeach
		match.TheyWant = &theyWant
		matches = append(matches, &match)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate potential matches: %w", err)
	}

	return matches, nil
}
