package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"scrypto/models"
)

func TestMatchService_CreateMatch(t *testing.T) {
	ctx := context.Background()
	skillAID := uuid.New()
	skillBID := uuid.New()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockMatchRepo := new(MockMatchRepository)
	mockSkillRepo := new(MockSkillRepository)

	mockUoW.SetRepositories(nil, nil, nil, mockMatchRepo, nil, nil, nil, nil, mockSkillRepo, nil)

	service := NewMatchService(mockFactory)

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockSkillRepo.On("GetByID", ctx, skillAID).Return(&models.Skill{
		ID:               skillAID,
		CollateralAmount: decimal.NewFromFloat(0.5),
	}, nil)
	mockSkillRepo.On("GetByID", ctx, skillBID).Return(&models.Skill{
		ID:               skillBID,
		CollateralAmount: decimal.NewFromFloat(2),
	}, nil)

	// The larger collateral of the pair becomes the required stake
	mockMatchRepo.On("Create", ctx, mock.MatchedBy(func(m *models.SkillMatch) bool {
		return m.UserAWallet == testWalletA &&
			m.UserBWallet == testWalletB &&
			m.Status == models.MatchStatusPending &&
			m.StakeAmount != nil && m.StakeAmount.Equal(decimal.NewFromFloat(2))
	})).Return(nil)

	match, err := service.CreateMatch(ctx, testWalletA, testWalletB, skillAID, skillBID)

	assert.NoError(t, err)
	assert.Equal(t, models.MatchStatusPending, match.Status)
	mockMatchRepo.AssertExpectations(t)
	mockSkillRepo.AssertExpectations(t)
}

func TestMatchService_CreateMatch_RejectsSelfMatch(t *testing.T) {
	ctx := context.Background()

	mockFactory := new(MockUnitOfWorkFactory)
	service := NewMatchService(mockFactory)

	_, err := service.CreateMatch(ctx, testWalletA, "0xAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA", uuid.New(), uuid.New())

	assert.Error(t, err)
	mockFactory.AssertNotCalled(t, "Create")
}

func TestMatchService_CreateMatch_UnknownSkill(t *testing.T) {
	ctx := context.Background()
	skillAID := uuid.New()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockMatchRepo := new(MockMatchRepository)
	mockSkillRepo := new(MockSkillRepository)

	mockUoW.SetRepositories(nil, nil, nil, mockMatchRepo, nil, nil, nil, nil, mockSkillRepo, nil)

	service := NewMatchService(mockFactory)

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockSkillRepo.On("GetByID", ctx, skillAID).Return(nil, nil)

	_, err := service.CreateMatch(ctx, testWalletA, testWalletB, skillAID, uuid.New())

	assert.True(t, errors.Is(err, ErrNotFound))
	mockMatchRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestMatchService_AcceptMatch(t *testing.T) {
	ctx := context.Background()
	matchID := uuid.New()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockMatchRepo := new(MockMatchRepository)

	mockUoW.SetRepositories(nil, nil, nil, mockMatchRepo, nil, nil, nil, nil, nil, nil)

	service := NewMatchService(mockFactory)

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	pending := &models.SkillMatch{
		ID:          matchID,
		UserAWallet: testWalletA,
		UserBWallet: testWalletB,
		Status:      models.MatchStatusPending,
	}
	mockMatchRepo.On("GetByID", ctx, matchID).Return(pending, nil)
	mockMatchRepo.On("UpdateStatus", ctx, matchID, models.MatchStatusAccepted).Return(nil)

	match, err := service.AcceptMatch(ctx, matchID, testWalletB)

	assert.NoError(t, err)
	assert.Equal(t, models.MatchStatusAccepted, match.Status)
	mockMatchRepo.AssertExpectations(t)
}

func TestMatchService_AcceptMatch_ProposerCannotAccept(t *testing.T) {
	ctx := context.Background()
	matchID := uuid.New()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockMatchRepo := new(MockMatchRepository)

	mockUoW.SetRepositories(nil, nil, nil, mockMatchRepo, nil, nil, nil, nil, nil, nil)

	service := NewMatchService(mockFactory)

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	pending := &models.SkillMatch{
		ID:          matchID,
		UserAWallet: testWalletA,
		UserBWallet: testWalletB,
		Status:      models.MatchStatusPending,
	}
	mockMatchRepo.On("GetByID", ctx, matchID).Return(pending, nil)

	_, err := service.AcceptMatch(ctx, matchID, testWalletA)

	assert.Error(t, err)
	mockMatchRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestMatchService_UpdateStatus_RejectsInvalidTransition(t *testing.T) {
	ctx := context.Background()
	matchID := uuid.New()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockMatchRepo := new(MockMatchRepository)

	mockUoW.SetRepositories(nil, nil, nil, mockMatchRepo, nil, nil, nil, nil, nil, nil)

	service := NewMatchService(mockFactory)

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	pending := &models.SkillMatch{
		ID:          matchID,
		UserAWallet: testWalletA,
		UserBWallet: testWalletB,
		Status:      models.MatchStatusPending,
	}
	mockMatchRepo.On("GetByID", ctx, matchID).Return(pending, nil)

	// Pending matches cannot jump straight to in_session
	_, err := service.UpdateStatus(ctx, matchID, models.MatchStatusInSession)

	assert.True(t, errors.Is(err, ErrInvalidTransition))
	mockMatchRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}
