package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scrypto/repository/testutil"
	"scrypto/service"
)

const (
	testWalletA = "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	testWalletB = "0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
)

func TestBalanceRepository_CreateIfAbsent(t *testing.T) {
	t.Parallel()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	testDB := testutil.SetupTestDatabase(t)

	repo := NewBalanceRepository(testDB.DB)
	ctx := context.Background()

	one := decimal.NewFromInt(1)

	err := repo.CreateIfAbsent(ctx, testWalletA, one)
	require.NoError(t, err)

	balance, err := repo.GetByWallet(ctx, testWalletA)
	require.NoError(t, err)
	require.NotNil(t, balance)
	assert.True(t, balance.Balance.Equal(one))

	// A second call must not reset the stored balance
	require.NoError(t, repo.Deduct(ctx, testWalletA, decimal.NewFromFloat(0.25)))
	require.NoError(t, repo.CreateIfAbsent(ctx, testWalletA, one))

	balance, err = repo.GetByWallet(ctx, testWalletA)
	require.NoError(t, err)
	assert.True(t, balance.Balance.Equal(decimal.NewFromFloat(0.75)))
}

func TestBalanceRepository_GetByWallet_NotFound(t *testing.T) {
	t.Parallel()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	testDB := testutil.SetupTestDatabase(t)

	repo := NewBalanceRepository(testDB.DB)

	balance, err := repo.GetByWallet(context.Background(), testWalletA)
	require.NoError(t, err)
	assert.Nil(t, balance)
}

func TestBalanceRepository_Deduct(t *testing.T) {
	t.Parallel()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	testDB := testutil.SetupTestDatabase(t)

	repo := NewBalanceRepository(testDB.DB)
	ctx := context.Background()

	seedBalance(t, testDB.DB, testWalletA, decimal.NewFromInt(1))

	t.Run("sufficient funds", func(t *testing.T) {
		err := repo.Deduct(ctx, testWalletA, decimal.NewFromFloat(0.5))
		require.NoError(t, err)

		balance, err := repo.GetByWallet(ctx, testWalletA)
		require.NoError(t, err)
		assert.True(t, balance.Balance.Equal(decimal.NewFromFloat(0.5)))
	})

	t.Run("insufficient funds", func(t *testing.T) {
		err := repo.Deduct(ctx, testWalletA, decimal.NewFromInt(10))
		assert.True(t, errors.Is(err, service.ErrInsufficientBalance))

		// Balance untouched by the failed debit
		balance, err := repo.GetByWallet(ctx, testWalletA)
		require.NoError(t, err)
		assert.True(t, balance.Balance.Equal(decimal.NewFromFloat(0.5)))
	})

	t.Run("unknown wallet", func(t *testing.T) {
		err := repo.Deduct(ctx, testWalletB, decimal.NewFromFloat(0.1))
		assert.True(t, errors.Is(err, service.ErrNotFound))
	})
}

func TestBalanceRepository_Add(t *testing.T) {
	t.Parallel()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	testDB := testutil.SetupTestDatabase(t)

	repo := NewBalanceRepository(testDB.DB)
	ctx := context.Background()

	seedBalance(t, testDB.DB, testWalletA, decimal.NewFromInt(1))

	err := repo.Add(ctx, testWalletA, decimal.NewFromFloat(0.5))
	require.NoError(t, err)

	balance, err := repo.GetByWallet(ctx, testWalletA)
	require.NoError(t, err)
	assert.True(t, balance.Balance.Equal(decimal.NewFromFloat(1.5)))

	err = repo.Add(ctx, testWalletB, decimal.NewFromFloat(0.5))
	assert.True(t, errors.Is(err, service.ErrNotFound))
}
