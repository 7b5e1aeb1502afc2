package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scrypto/models"
	"scrypto/repository/testutil"
	"scrypto/service"
)

func TestDepositRepository_Create_DuplicateLockedStakeRejected(t *testing.T) {
	t.Parallel()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	testDB := testutil.SetupTestDatabase(t)

	repo := NewDepositRepository(testDB.DB)
	ctx := context.Background()

	matchID := createTestMatch(t, testDB.DB, testWalletA, testWalletB, models.MatchStatusAccepted)

	deposit := &models.EscrowDeposit{
		MatchID:       matchID,
		WalletAddress: testWalletA,
		Amount:        decimal.NewFromFloat(0.5),
		Status:        models.DepositStatusLocked,
	}
	require.NoError(t, repo.Create(ctx, deposit))
	assert.NotEqual(t, deposit.ID.String(), "00000000-0000-0000-0000-000000000000")

	// The partial unique index allows only one locked stake per wallet
	dup := &models.EscrowDeposit{
		MatchID:       matchID,
		WalletAddress: testWalletA,
		Amount:        decimal.NewFromFloat(0.5),
		Status:        models.DepositStatusLocked,
	}
	err := repo.Create(ctx, dup)
	assert.True(t, errors.Is(err, service.ErrAlreadyStaked))

	// The counterparty can still stake
	other := &models.EscrowDeposit{
		MatchID:       matchID,
		WalletAddress: testWalletB,
		Amount:        decimal.NewFromFloat(0.5),
		Status:        models.DepositStatusLocked,
	}
	require.NoError(t, repo.Create(ctx, other))

	count, err := repo.CountLocked(ctx, matchID)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestDepositRepository_MarkResolved(t *testing.T) {
	t.Parallel()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	testDB := testutil.SetupTestDatabase(t)

	repo := NewDepositRepository(testDB.DB)
	ctx := context.Background()

	matchID := createTestMatch(t, testDB.DB, testWalletA, testWalletB, models.MatchStatusInSession)

	deposit := &models.EscrowDeposit{
		MatchID:       matchID,
		WalletAddress: testWalletA,
		Amount:        decimal.NewFromFloat(0.5),
		Status:        models.DepositStatusLocked,
	}
	require.NoError(t, repo.Create(ctx, deposit))

	now := time.Now()
	require.NoError(t, repo.MarkResolved(ctx, deposit.ID, models.DepositStatusRefunded, now))

	// Deposits resolve exactly once
	err := repo.MarkResolved(ctx, deposit.ID, models.DepositStatusTreasury, now)
	assert.True(t, errors.Is(err, service.ErrNotFound))

	locked, err := repo.GetLockedByMatch(ctx, matchID)
	require.NoError(t, err)
	assert.Empty(t, locked)

	all, err := repo.GetByMatch(ctx, matchID)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, models.DepositStatusRefunded, all[0].Status)
	assert.NotNil(t, all[0].ResolvedAt)

	// Once resolved, the wallet may stake again on the same match
	again := &models.EscrowDeposit{
		MatchID:       matchID,
		WalletAddress: testWalletA,
		Amount:        decimal.NewFromFloat(0.5),
		Status:        models.DepositStatusLocked,
	}
	require.NoError(t, repo.Create(ctx, again))

	has, err := repo.HasLocked(ctx, matchID, testWalletA)
	require.NoError(t, err)
	assert.True(t, has)
}
