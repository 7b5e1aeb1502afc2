package service

import (
	"context"
	"fmt"

	"scrypto/events"
	"scrypto/models"
)

// topProviderCutoff is the leaderboard position threshold for the
// top_provider badge
const topProviderCutoff = 10

// EvaluateBadges checks all badge rules against the wallet's current
// reputation and awards anything newly earned. Already-held badges are
// skipped; a wallet with no reputation yet earns nothing.
func EvaluateBadges(ctx context.Context, uow UnitOfWork, wallet string) ([]models.BadgeType, error) {
	rep, err := uow.ReputationRepository().GetByWallet(ctx, wallet)
	if err != nil {
		return nil, fmt.Errorf("failed to get reputation: %w", err)
	}
	if rep == nil {
		return nil, nil
	}

	topTen, err := uow.ReputationRepository().IsTopProvider(ctx, wallet, topProviderCutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to check leaderboard position: %w", err)
	}

	var awarded []models.BadgeType
	for _, badgeType := range models.QualifyingBadges(rep, topTen) {
		info := models.BadgeCatalog[badgeType]
		description := info.Description
		badge := &models.UserBadge{
			WalletAddress: wallet,
			BadgeType:     badgeType,
			BadgeName:     info.Name,
			Description:   &description,
		}

		inserted, err := uow.BadgeRepository().Award(ctx, badge)
		if err != nil {
			return nil, fmt.Errorf("failed to award badge %s: %w", badgeType, err)
		}
		if inserted {
			awarded = append(awarded, badgeType)
			uow.EventBus().Publish(events.BadgeAwardedEvent{
				WalletAddress: wallet,
				BadgeType:     badgeType,
			})
		}
	}

	return awarded, nil
}
