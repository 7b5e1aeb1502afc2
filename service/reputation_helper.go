package service

import (
	"context"
	"fmt"

	"scrypto/events"
	"scrypto/models"
)

// ApplyReputationOutcome folds one resolved session into a wallet's
// reputation accumulator and emits the change event. This is the single
// entry point for all reputation changes in the system; callers supply the
// COUNTERPARTY's satisfaction vote, since a wallet is rated on the
// sessions it taught.
func ApplyReputationOutcome(ctx context.Context, uow UnitOfWork, wallet string, counterpartySatisfied bool) (*models.UserReputation, error) {
	rep, err := uow.ReputationRepository().GetByWallet(ctx, wallet)
	if err != nil {
		return nil, fmt.Errorf("failed to get reputation: %w", err)
	}

	scoreDelta := models.ReputationGain
	if !counterpartySatisfied {
		scoreDelta = -models.ReputationLoss
	}

	if rep == nil {
		// First resolved session: an unsatisfied counterparty starts the
		// wallet at zero rather than negative
		rep = models.NewReputation(wallet, counterpartySatisfied)
		if err := uow.ReputationRepository().Create(ctx, rep); err != nil {
			return nil, fmt.Errorf("failed to create reputation: %w", err)
		}
		scoreDelta = rep.ReputationScore
	} else {
		rep.ApplyOutcome(counterpartySatisfied)
		if err := uow.ReputationRepository().Update(ctx, rep); err != nil {
			return nil, fmt.Errorf("failed to update reputation: %w", err)
		}
	}

	uow.EventBus().Publish(events.ReputationChangeEvent{
		WalletAddress:         wallet,
		ScoreDelta:            scoreDelta,
		NewScore:              rep.ReputationScore,
		CounterpartySatisfied: counterpartySatisfied,
	})

	return rep, nil
}
