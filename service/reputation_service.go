package service

import (
	"context"
	"fmt"
	"strings"

	"scrypto/models"
)

type reputationService struct {
	uowFactory UnitOfWorkFactory
}

// NewReputationService creates a new reputation service
func NewReputationService(uowFactory UnitOfWorkFactory) ReputationService {
	return &reputationService{
		uowFactory: uowFactory,
	}
}

// Update folds one resolved session into the wallet's accumulator
func (s *reputationService) Update(ctx context.Context, wallet string, counterpartySatisfied bool) (*models.UserReputation, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	rep, err := ApplyReputationOutcome(ctx, uow, strings.ToLower(wallet), counterpartySatisfied)
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return rep, nil
}

// GetByWallet returns a wallet's reputation, or nil when unranked
func (s *reputationService) GetByWallet(ctx context.Context, wallet string) (*models.UserReputation, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	rep, err := uow.ReputationRepository().GetByWallet(ctx, strings.ToLower(wallet))
	if err != nil {
		return nil, fmt.Errorf("failed to get reputation: %w", err)
	}

	return rep, nil
}

const (
	defaultLeaderboardLimit = 50
	maxLeaderboardLimit     = 100
)

// Leaderboard returns the top wallets by score
func (s *reputationService) Leaderboard(ctx context.Context, limit int) ([]*models.UserReputation, error) {
	if limit <= 0 {
		limit = defaultLeaderboardLimit
	}
	if limit > maxLeaderboardLimit {
		limit = maxLeaderboardLimit
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	leaderboard, err := uow.ReputationRepository().GetTop(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get leaderboard: %w", err)
	}

	return leaderboard, nil
}

// Rank returns the wallet's leaderboard position, or nil when unranked
func (s *reputationService) Rank(ctx context.Context, wallet string) (*models.LeaderboardRank, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	rank, err := uow.ReputationRepository().GetRank(ctx, strings.ToLower(wallet))
	if err != nil {
		return nil, fmt.Errorf("failed to get rank: %w", err)
	}

	return rank, nil
}
