package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"scrypto/events"
	"scrypto/models"
)

const (
	testWalletA = "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	testWalletB = "0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
	testWalletC = "0xcccccccccccccccccccccccccccccccccccccccc"
)

var testStartingBalance = decimal.NewFromInt(1)

func acceptedMatch(id uuid.UUID) *models.SkillMatch {
	return &models.SkillMatch{
		ID:          id,
		UserAWallet: testWalletA,
		UserBWallet: testWalletB,
		Status:      models.MatchStatusAccepted,
	}
}

func TestEscrowService_GetOrCreateBalance_NewWallet(t *testing.T) {
	ctx := context.Background()

	// Setup mocks
	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockBalanceRepo := new(MockBalanceRepository)

	mockUoW.SetRepositories(mockBalanceRepo, nil, nil, nil, nil, nil, nil, nil, nil, nil)

	service := NewEscrowService(mockFactory, testStartingBalance)

	// Mock expectations
	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockBalanceRepo.On("CreateIfAbsent", ctx, testWalletA, testStartingBalance).Return(nil)
	mockBalanceRepo.On("GetByWallet", ctx, testWalletA).Return(&models.UserBalance{
		WalletAddress: testWalletA,
		Balance:       testStartingBalance,
	}, nil)

	balance, err := service.GetOrCreateBalance(ctx, testWalletA)

	assert.NoError(t, err)
	assert.True(t, balance.Equal(testStartingBalance))

	mockFactory.AssertExpectations(t)
	mockUoW.AssertExpectations(t)
	mockBalanceRepo.AssertExpectations(t)
}

func TestEscrowService_GetOrCreateBalance_NormalizesWallet(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockBalanceRepo := new(MockBalanceRepository)

	mockUoW.SetRepositories(mockBalanceRepo, nil, nil, nil, nil, nil, nil, nil, nil, nil)

	service := NewEscrowService(mockFactory, testStartingBalance)

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	// The repo only ever sees the lowercased address
	mockBalanceRepo.On("CreateIfAbsent", ctx, testWalletA, testStartingBalance).Return(nil)
	mockBalanceRepo.On("GetByWallet", ctx, testWalletA).Return(&models.UserBalance{
		WalletAddress: testWalletA,
		Balance:       testStartingBalance,
	}, nil)

	_, err := service.GetOrCreateBalance(ctx, "0xAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA")

	assert.NoError(t, err)
	mockBalanceRepo.AssertExpectations(t)
}

func TestEscrowService_Stake_Success(t *testing.T) {
	ctx := context.Background()
	matchID := uuid.New()
	amount := decimal.NewFromFloat(0.5)

	// Setup mocks
	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockBalanceRepo := new(MockBalanceRepository)
	mockDepositRepo := new(MockDepositRepository)
	mockMatchRepo := new(MockMatchRepository)
	mockPublisher := new(MockEventPublisher)

	mockUoW.SetRepositories(mockBalanceRepo, nil, mockDepositRepo, mockMatchRepo, nil, nil, nil, nil, nil, mockPublisher)

	service := NewEscrowService(mockFactory, testStartingBalance)

	// Mock expectations
	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockMatchRepo.On("GetByID", ctx, matchID).Return(acceptedMatch(matchID), nil)
	mockDepositRepo.On("HasLocked", ctx, matchID, testWalletA).Return(false, nil)
	mockBalanceRepo.On("CreateIfAbsent", ctx, testWalletA, testStartingBalance).Return(nil)
	mockBalanceRepo.On("Deduct", ctx, testWalletA, amount).Return(nil)
	mockDepositRepo.On("Create", ctx, mock.MatchedBy(func(d *models.EscrowDeposit) bool {
		return d.MatchID == matchID && d.WalletAddress == testWalletA &&
			d.Amount.Equal(amount) && d.Status == models.DepositStatusLocked
	})).Return(nil)
	mockDepositRepo.On("CountLocked", ctx, matchID).Return(1, nil)

	mockPublisher.On("Publish", mock.AnythingOfType("events.BalanceChangeEvent")).Return()
	mockPublisher.On("Publish", mock.AnythingOfType("events.DepositLockedEvent")).Return()

	err := service.Stake(ctx, matchID, testWalletA, amount)

	assert.NoError(t, err)

	// First stake alone does not move the match forward
	mockMatchRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)

	mockFactory.AssertExpectations(t)
	mockUoW.AssertExpectations(t)
	mockBalanceRepo.AssertExpectations(t)
	mockDepositRepo.AssertExpectations(t)
	mockPublisher.AssertExpectations(t)
}

func TestEscrowService_Stake_SecondStakeMovesMatchToStaked(t *testing.T) {
	ctx := context.Background()
	matchID := uuid.New()
	amount := decimal.NewFromFloat(0.5)

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockBalanceRepo := new(MockBalanceRepository)
	mockDepositRepo := new(MockDepositRepository)
	mockMatchRepo := new(MockMatchRepository)
	mockPublisher := new(MockEventPublisher)

	mockUoW.SetRepositories(mockBalanceRepo, nil, mockDepositRepo, mockMatchRepo, nil, nil, nil, nil, nil, mockPublisher)

	service := NewEscrowService(mockFactory, testStartingBalance)

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockMatchRepo.On("GetByID", ctx, matchID).Return(acceptedMatch(matchID), nil)
	mockDepositRepo.On("HasLocked", ctx, matchID, testWalletB).Return(false, nil)
	mockBalanceRepo.On("CreateIfAbsent", ctx, testWalletB, testStartingBalance).Return(nil)
	mockBalanceRepo.On("Deduct", ctx, testWalletB, amount).Return(nil)
	mockDepositRepo.On("Create", ctx, mock.Anything).Return(nil)
	mockDepositRepo.On("CountLocked", ctx, matchID).Return(2, nil)
	mockMatchRepo.On("UpdateStatus", ctx, matchID, models.MatchStatusStaked).Return(nil)

	mockPublisher.On("Publish", mock.AnythingOfType("events.BalanceChangeEvent")).Return()
	mockPublisher.On("Publish", mock.AnythingOfType("events.DepositLockedEvent")).Return()
	mockPublisher.On("Publish", mock.MatchedBy(func(e events.Event) bool {
		ev, ok := e.(events.MatchStatusChangeEvent)
		return ok && ev.NewStatus == models.MatchStatusStaked
	})).Return()

	err := service.Stake(ctx, matchID, testWalletB, amount)

	assert.NoError(t, err)
	mockMatchRepo.AssertExpectations(t)
	mockPublisher.AssertExpectations(t)
}

func TestEscrowService_Stake_InsufficientBalance(t *testing.T) {
	ctx := context.Background()
	matchID := uuid.New()
	amount := decimal.NewFromInt(5)

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockBalanceRepo := new(MockBalanceRepository)
	mockDepositRepo := new(MockDepositRepository)
	mockMatchRepo := new(MockMatchRepository)

	mockUoW.SetRepositories(mockBalanceRepo, nil, mockDepositRepo, mockMatchRepo, nil, nil, nil, nil, nil, nil)

	service := NewEscrowService(mockFactory, testStartingBalance)

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)
	// No Commit expected: the transaction rolls back, restoring the balance

	mockMatchRepo.On("GetByID", ctx, matchID).Return(acceptedMatch(matchID), nil)
	mockDepositRepo.On("HasLocked", ctx, matchID, testWalletA).Return(false, nil)
	mockBalanceRepo.On("CreateIfAbsent", ctx, testWalletA, testStartingBalance).Return(nil)
	mockBalanceRepo.On("Deduct", ctx, testWalletA, amount).Return(ErrInsufficientBalance)

	err := service.Stake(ctx, matchID, testWalletA, amount)

	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrInsufficientBalance))

	mockDepositRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	mockUoW.AssertNotCalled(t, "Commit")
	mockUoW.AssertExpectations(t)
}

func TestEscrowService_Stake_DepositInsertFailureRollsBackDebit(t *testing.T) {
	ctx := context.Background()
	matchID := uuid.New()
	amount := decimal.NewFromFloat(0.5)

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockBalanceRepo := new(MockBalanceRepository)
	mockDepositRepo := new(MockDepositRepository)
	mockMatchRepo := new(MockMatchRepository)

	mockUoW.SetRepositories(mockBalanceRepo, nil, mockDepositRepo, mockMatchRepo, nil, nil, nil, nil, nil, nil)

	service := NewEscrowService(mockFactory, testStartingBalance)

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockMatchRepo.On("GetByID", ctx, matchID).Return(acceptedMatch(matchID), nil)
	mockDepositRepo.On("HasLocked", ctx, matchID, testWalletA).Return(false, nil)
	mockBalanceRepo.On("CreateIfAbsent", ctx, testWalletA, testStartingBalance).Return(nil)
	mockBalanceRepo.On("Deduct", ctx, testWalletA, amount).Return(nil)
	mockDepositRepo.On("Create", ctx, mock.Anything).Return(errors.New("insert failed"))

	err := service.Stake(ctx, matchID, testWalletA, amount)

	assert.Error(t, err)

	// The debit happened inside the transaction, so the rollback (and no
	// commit) is what restores the wallet balance
	mockUoW.AssertNotCalled(t, "Commit")
	mockUoW.AssertCalled(t, "Rollback")
}

func TestEscrowService_Stake_AlreadyStaked(t *testing.T) {
	ctx := context.Background()
	matchID := uuid.New()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockDepositRepo := new(MockDepositRepository)
	mockMatchRepo := new(MockMatchRepository)

	mockUoW.SetRepositories(nil, nil, mockDepositRepo, mockMatchRepo, nil, nil, nil, nil, nil, nil)

	service := NewEscrowService(mockFactory, testStartingBalance)

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockMatchRepo.On("GetByID", ctx, matchID).Return(acceptedMatch(matchID), nil)
	mockDepositRepo.On("HasLocked", ctx, matchID, testWalletA).Return(true, nil)

	err := service.Stake(ctx, matchID, testWalletA, decimal.NewFromFloat(0.5))

	assert.True(t, errors.Is(err, ErrAlreadyStaked))
}

func TestEscrowService_Stake_NotParticipant(t *testing.T) {
	ctx := context.Background()
	matchID := uuid.New()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockMatchRepo := new(MockMatchRepository)

	mockUoW.SetRepositories(nil, nil, nil, mockMatchRepo, nil, nil, nil, nil, nil, nil)

	service := NewEscrowService(mockFactory, testStartingBalance)

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockMatchRepo.On("GetByID", ctx, matchID).Return(acceptedMatch(matchID), nil)

	err := service.Stake(ctx, matchID, testWalletC, decimal.NewFromFloat(0.5))

	assert.True(t, errors.Is(err, ErrNotParticipant))
}

func TestEscrowService_Stake_MatchNotAccepted(t *testing.T) {
	ctx := context.Background()
	matchID := uuid.New()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockMatchRepo := new(MockMatchRepository)

	mockUoW.SetRepositories(nil, nil, nil, mockMatchRepo, nil, nil, nil, nil, nil, nil)

	service := NewEscrowService(mockFactory, testStartingBalance)

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	pending := acceptedMatch(matchID)
	pending.Status = models.MatchStatusPending
	mockMatchRepo.On("GetByID", ctx, matchID).Return(pending, nil)

	err := service.Stake(ctx, matchID, testWalletA, decimal.NewFromFloat(0.5))

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not ready for staking")
}

func TestEscrowService_Stake_RejectsWrongStakeAmount(t *testing.T) {
	ctx := context.Background()
	matchID := uuid.New()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockMatchRepo := new(MockMatchRepository)

	mockUoW.SetRepositories(nil, nil, nil, mockMatchRepo, nil, nil, nil, nil, nil, nil)

	service := NewEscrowService(mockFactory, testStartingBalance)

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	required := decimal.NewFromFloat(0.5)
	match := acceptedMatch(matchID)
	match.StakeAmount = &required
	mockMatchRepo.On("GetByID", ctx, matchID).Return(match, nil)

	err := service.Stake(ctx, matchID, testWalletA, decimal.NewFromFloat(0.25))

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "requires a stake of")
}

func TestEscrowService_Stake_RejectsNonPositiveAmount(t *testing.T) {
	ctx := context.Background()

	mockFactory := new(MockUnitOfWorkFactory)
	service := NewEscrowService(mockFactory, testStartingBalance)

	err := service.Stake(ctx, uuid.New(), testWalletA, decimal.Zero)
	assert.Error(t, err)

	err = service.Stake(ctx, uuid.New(), testWalletA, decimal.NewFromInt(-1))
	assert.Error(t, err)

	mockFactory.AssertNotCalled(t, "Create")
}

func TestEscrowService_BothStaked(t *testing.T) {
	ctx := context.Background()
	matchID := uuid.New()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockDepositRepo := new(MockDepositRepository)

	mockUoW.SetRepositories(nil, nil, mockDepositRepo, nil, nil, nil, nil, nil, nil, nil)

	service := NewEscrowService(mockFactory, testStartingBalance)

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockDepositRepo.On("CountLocked", ctx, matchID).Return(2, nil).Once()
	both, err := service.BothStaked(ctx, matchID)
	assert.NoError(t, err)
	assert.True(t, both)

	mockDepositRepo.On("CountLocked", ctx, matchID).Return(1, nil).Once()
	both, err = service.BothStaked(ctx, matchID)
	assert.NoError(t, err)
	assert.False(t, both)
}
