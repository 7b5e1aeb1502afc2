package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"scrypto/events"
	"scrypto/models"
)

type sessionService struct {
	uowFactory UnitOfWorkFactory
}

// NewSessionService creates a new session service
func NewSessionService(uowFactory UnitOfWorkFactory) SessionService {
	return &sessionService{
		uowFactory: uowFactory,
	}
}

// CreateSession opens the session for a staked match and moves the match
// into the in_session state
func (s *sessionService) CreateSession(ctx context.Context, matchID uuid.UUID) (*models.LearningSession, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	match, err := uow.MatchRepository().GetByID(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to get match: %w", err)
	}
	if match == nil {
		return nil, fmt.Errorf("match %s: %w", matchID, ErrNotFound)
	}
	if !match.CanTransitionTo(models.MatchStatusInSession) {
		return nil, fmt.Errorf("match %s cannot start a session from status %s: %w",
			matchID, match.Status, ErrInvalidTransition)
	}

	session := &models.LearningSession{MatchID: matchID}
	if err := uow.SessionRepository().Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	if err := uow.MatchRepository().UpdateStatus(ctx, matchID, models.MatchStatusInSession); err != nil {
		return nil, fmt.Errorf("failed to update match status: %w", err)
	}

	uow.EventBus().Publish(events.MatchStatusChangeEvent{
		MatchID:   matchID,
		OldStatus: match.Status,
		NewStatus: models.MatchStatusInSession,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return session, nil
}

// GetSessionsByWallet returns the wallet's sessions, newest first
func (s *sessionService) GetSessionsByWallet(ctx context.Context, wallet string) ([]*models.LearningSession, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	sessions, err := uow.SessionRepository().GetByWallet(ctx, strings.ToLower(wallet))
	if err != nil {
		return nil, fmt.Errorf("failed to get sessions: %w", err)
	}

	return sessions, nil
}

// MarkSatisfaction records one side's satisfaction vote. When the second
// vote lands the session resolves inside the same transaction: deposits are
// routed, the match reaches its terminal status, reputations update and
// badges are checked.
func (s *sessionService) MarkSatisfaction(ctx context.Context, sessionID uuid.UUID, wallet string, satisfied bool) (*models.LearningSession, error) {
	wallet = strings.ToLower(wallet)

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	session, err := uow.SessionRepository().GetByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if session == nil {
		return nil, fmt.Errorf("session %s: %w", sessionID, ErrNotFound)
	}
	if session.IsResolved() {
		return nil, fmt.Errorf("session %s: %w", sessionID, ErrSessionResolved)
	}

	match, err := uow.MatchRepository().GetByID(ctx, session.MatchID)
	if err != nil {
		return nil, fmt.Errorf("failed to get match: %w", err)
	}
	if match == nil {
		return nil, fmt.Errorf("match %s: %w", session.MatchID, ErrNotFound)
	}
	if !match.IsParticipant(wallet) {
		return nil, fmt.Errorf("wallet %s on match %s: %w", wallet, match.ID, ErrNotParticipant)
	}

	now := time.Now()
	isUserA := match.IsUserA(wallet)
	if err := uow.SessionRepository().RecordVote(ctx, sessionID, isUserA, satisfied, now); err != nil {
		return nil, fmt.Errorf("failed to record vote: %w", err)
	}

	// Re-read to pick up both votes
	session, err = uow.SessionRepository().GetByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload session: %w", err)
	}

	if session.BothVoted() {
		if err := s.resolveSession(ctx, uow, match, session); err != nil {
			return nil, fmt.Errorf("failed to resolve session: %w", err)
		}
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return session, nil
}

// resolveSession handles the terminal outcome of a session (called within
// a transaction once both votes are present)
func (s *sessionService) resolveSession(ctx context.Context, uow UnitOfWork, match *models.SkillMatch, session *models.LearningSession) error {
	outcome := models.VoteOutcome{
		ASatisfied: *session.UserASatisfied,
		BSatisfied: *session.UserBSatisfied,
	}

	now := time.Now()
	resolution := outcome.Resolution()

	treasuryTotal, err := s.routeDeposits(ctx, uow, match, outcome, now)
	if err != nil {
		return err
	}

	if err := uow.SessionRepository().SetResolution(ctx, session.ID, resolution, now); err != nil {
		return err
	}
	session.Resolution = &resolution
	session.CompletedAt = &now

	newStatus := outcome.MatchStatus()
	if err := uow.MatchRepository().UpdateStatus(ctx, match.ID, newStatus); err != nil {
		return err
	}

	uow.EventBus().Publish(events.MatchStatusChangeEvent{
		MatchID:   match.ID,
		OldStatus: match.Status,
		NewStatus: newStatus,
	})

	// Each side is rated on the session it taught, so the counterparty's
	// vote is the success signal
	if _, err := ApplyReputationOutcome(ctx, uow, match.UserAWallet, outcome.BSatisfied); err != nil {
		return err
	}
	if _, err := ApplyReputationOutcome(ctx, uow, match.UserBWallet, outcome.ASatisfied); err != nil {
		return err
	}

	if _, err := EvaluateBadges(ctx, uow, match.UserAWallet); err != nil {
		return err
	}
	if _, err := EvaluateBadges(ctx, uow, match.UserBWallet); err != nil {
		return err
	}

	uow.EventBus().Publish(events.SessionResolvedEvent{
		SessionID:      session.ID,
		MatchID:        match.ID,
		Resolution:     resolution,
		TreasuryAmount: treasuryTotal,
	})

	log.WithFields(log.Fields{
		"sessionID":  session.ID,
		"matchID":    match.ID,
		"resolution": resolution,
	}).Info("Session resolved")

	return nil
}

// routeDeposits applies the per-deposit refund rule: a deposit is refunded
// iff the depositor's COUNTERPARTY was satisfied, otherwise it is forfeited.
// If someone rates your teaching unsatisfactory, YOUR collateral goes to
// the treasury. Forfeits accumulate into one treasury credit. With no
// locked deposits this is a benign no-op, which makes retries safe.
func (s *sessionService) routeDeposits(ctx context.Context, uow UnitOfWork, match *models.SkillMatch, outcome models.VoteOutcome, now time.Time) (decimal.Decimal, error) {
	deposits, err := uow.DepositRepository().GetLockedByMatch(ctx, match.ID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to get locked deposits: %w", err)
	}
	if len(deposits) == 0 {
		return decimal.Zero, nil
	}

	treasuryTotal := decimal.Zero
	for _, deposit := range deposits {
		refund := false
		switch deposit.WalletAddress {
		case match.UserAWallet:
			refund = outcome.RefundA()
		case match.UserBWallet:
			refund = outcome.RefundB()
		}

		if refund {
			if err := uow.BalanceRepository().Add(ctx, deposit.WalletAddress, deposit.Amount); err != nil {
				return decimal.Zero, fmt.Errorf("failed to refund deposit %s: %w", deposit.ID, err)
			}
			if err := uow.DepositRepository().MarkResolved(ctx, deposit.ID, models.DepositStatusRefunded, now); err != nil {
				return decimal.Zero, err
			}
			uow.EventBus().Publish(events.BalanceChangeEvent{
				WalletAddress: deposit.WalletAddress,
				ChangeAmount:  deposit.Amount,
				Reason:        "escrow_refund",
			})
		} else {
			treasuryTotal = treasuryTotal.Add(deposit.Amount)
			if err := uow.DepositRepository().MarkResolved(ctx, deposit.ID, models.DepositStatusTreasury, now); err != nil {
				return decimal.Zero, err
			}
		}
	}

	if treasuryTotal.IsPositive() {
		if err := uow.TreasuryRepository().Credit(ctx, treasuryTotal); err != nil {
			return decimal.Zero, fmt.Errorf("failed to credit treasury: %w", err)
		}
	}

	return treasuryTotal, nil
}
