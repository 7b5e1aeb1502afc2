package cmd

import (
	"context"

	log "github.com/sirupsen/logrus"

	"scrypto/events"
)

// registerEventLoggers attaches audit log handlers for the domain events
// emitted after each committed transaction
func registerEventLoggers(bus *events.Bus) {
	bus.Subscribe(events.EventTypeBalanceChange, func(ctx context.Context, e events.Event) {
		ev := e.(events.BalanceChangeEvent)
		log.WithFields(log.Fields{
			"wallet": ev.WalletAddress,
			"amount": ev.ChangeAmount,
			"reason": ev.Reason,
		}).Info("Balance changed")
	})

	bus.Subscribe(events.EventTypeDepositLocked, func(ctx context.Context, e events.Event) {
		ev := e.(events.DepositLockedEvent)
		log.WithFields(log.Fields{
			"matchID": ev.MatchID,
			"wallet":  ev.WalletAddress,
			"amount":  ev.Amount,
		}).Info("Deposit locked in escrow")
	})

	bus.Subscribe(events.EventTypeSessionResolved, func(ctx context.Context, e events.Event) {
		ev := e.(events.SessionResolvedEvent)
		log.WithFields(log.Fields{
			"sessionID":      ev.SessionID,
			"matchID":        ev.MatchID,
			"resolution":     ev.Resolution,
			"treasuryAmount": ev.TreasuryAmount,
		}).Info("Session resolved")
	})

	bus.Subscribe(events.EventTypeMatchStatusChange, func(ctx context.Context, e events.Event) {
		ev := e.(events.MatchStatusChangeEvent)
		log.WithFields(log.Fields{
			"matchID":   ev.MatchID,
			"oldStatus": ev.OldStatus,
			"newStatus": ev.NewStatus,
		}).Info("Match status changed")
	})

	bus.Subscribe(events.EventTypeReputationChange, func(ctx context.Context, e events.Event) {
		ev := e.(events.ReputationChangeEvent)
		log.WithFields(log.Fields{
			"wallet":     ev.WalletAddress,
			"scoreDelta": ev.ScoreDelta,
			"newScore":   ev.NewScore,
		}).Info("Reputation updated")
	})

	bus.Subscribe(events.EventTypeBadgeAwarded, func(ctx context.Context, e events.Event) {
		ev := e.(events.BadgeAwardedEvent)
		log.WithFields(log.Fields{
			"wallet": ev.WalletAddress,
			"badge":  ev.BadgeType,
		}).Info("Badge awarded")
	})
}
