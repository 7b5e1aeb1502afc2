package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"scrypto/database"
	"scrypto/models"
)

// createTestSkill inserts a skill catalog row and returns its ID
func createTestSkill(t *testing.T, db *database.DB, name string, collateral decimal.Decimal) uuid.UUID {
	t.Helper()

	var id uuid.UUID
	err := db.QueryRow(context.Background(), `
		INSERT INTO skills (name, category, collateral_amount)
		VALUES ($1, 'testing', $2)
		RETURNING id
	`, name, collateral).Scan(&id)
	require.NoError(t, err)

	return id
}

// createTestMatch inserts a match row in the given status and returns its ID
func createTestMatch(t *testing.T, db *database.DB, walletA, walletB string, status models.MatchStatus) uuid.UUID {
	t.Helper()

	skillA := createTestSkill(t, db, "skill-a-"+uuid.NewString(), decimal.NewFromFloat(0.5))
	skillB := createTestSkill(t, db, "skill-b-"+uuid.NewString(), decimal.NewFromFloat(0.5))

	var id uuid.UUID
	err := db.QueryRow(context.Background(), `
		INSERT INTO skill_matches (user_a_wallet, user_b_wallet, skill_a_teaches, skill_b_teaches, status, stake_amount)
		VALUES ($1, $2, $3, $4, $5, 0.5)
		RETURNING id
	`, walletA, walletB, skillA, skillB, status).Scan(&id)
	require.NoError(t, err)

	return id
}

// seedBalance inserts a balance row with the given amount
func seedBalance(t *testing.T, db *database.DB, wallet string, amount decimal.Decimal) {
	t.Helper()

	_, err := db.Exec(context.Background(), `
		INSERT INTO user_balances (wallet_address, balance)
		VALUES ($1, $2)
	`, wallet, amount)
	require.NoError(t, err)
}
