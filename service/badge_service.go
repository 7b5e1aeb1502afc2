package service

import (
	"context"
	"fmt"
	"strings"

	"scrypto/models"
)

type badgeService struct {
	uowFactory UnitOfWorkFactory
}

// NewBadgeService creates a new badge service
func NewBadgeService(uowFactory UnitOfWorkFactory) BadgeService {
	return &badgeService{
		uowFactory: uowFactory,
	}
}

// CheckAndAward evaluates all badge rules for the wallet and awards any
// newly earned badges
func (s *badgeService) CheckAndAward(ctx context.Context, wallet string) ([]models.BadgeType, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	awarded, err := EvaluateBadges(ctx, uow, strings.ToLower(wallet))
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return awarded, nil
}

// GetBadges returns the wallet's badges
func (s *badgeService) GetBadges(ctx context.Context, wallet string) ([]*models.UserBadge, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	badges, err := uow.BadgeRepository().GetByWallet(ctx, strings.ToLower(wallet))
	if err != nil {
		return nil, fmt.Errorf("failed to get badges: %w", err)
	}

	return badges, nil
}
