package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"scrypto/models"
)

type rewardPoolService struct {
	uowFactory UnitOfWorkFactory
}

// NewRewardPoolService creates a new reward pool service
func NewRewardPoolService(uowFactory UnitOfWorkFactory) RewardPoolService {
	return &rewardPoolService{
		uowFactory: uowFactory,
	}
}

func (s *rewardPoolService) Get(ctx context.Context) (*models.RewardPool, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	pool, err := uow.RewardPoolRepository().GetOrCreate(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get reward pool: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return pool, nil
}

func (s *rewardPoolService) Contribute(ctx context.Context, amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("contribution amount must be positive, got %s", amount)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	if err := uow.RewardPoolRepository().Add(ctx, amount); err != nil {
		return fmt.Errorf("failed to credit reward pool: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
