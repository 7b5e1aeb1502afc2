package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"scrypto/events"
	"scrypto/models"
)

type matchService struct {
	uowFactory UnitOfWorkFactory
}

// NewMatchService creates a new match service
func NewMatchService(uowFactory UnitOfWorkFactory) MatchService {
	return &matchService{
		uowFactory: uowFactory,
	}
}

// FindPotentialMatches returns complementary pairings for the wallet
func (s *matchService) FindPotentialMatches(ctx context.Context, wallet string) ([]*models.PotentialMatch, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	matches, err := uow.SkillRepository().FindComplementary(ctx, strings.ToLower(wallet))
	if err != nil {
		return nil, fmt.Errorf("failed to find potential matches: %w", err)
	}

	return matches, nil
}

// CreateMatch proposes a bilateral exchange; the proposer is user A. The
// required stake is fixed at creation from the skills' collateral amounts.
func (s *matchService) CreateMatch(ctx context.Context, proposer, other string, proposerSkillID, otherSkillID uuid.UUID) (*models.SkillMatch, error) {
	proposer = strings.ToLower(proposer)
	other = strings.ToLower(other)

	if proposer == other {
		return nil, fmt.Errorf("cannot create a match with yourself")
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	skillA, err := uow.SkillRepository().GetByID(ctx, proposerSkillID)
	if err != nil {
		return nil, fmt.Errorf("failed to get proposer skill: %w", err)
	}
	if skillA == nil {
		return nil, fmt.Errorf("skill %s: %w", proposerSkillID, ErrNotFound)
	}

	skillB, err := uow.SkillRepository().GetByID(ctx, otherSkillID)
	if err != nil {
		return nil, fmt.Errorf("failed to get counterparty skill: %w", err)
	}
	if skillB == nil {
		return nil, fmt.Errorf("skill %s: %w", otherSkillID, ErrNotFound)
	}

	stake := models.RequiredStake(skillA, skillB)
	match := &models.SkillMatch{
		UserAWallet:   proposer,
		UserBWallet:   other,
		SkillATeaches: proposerSkillID,
		SkillBTeaches: otherSkillID,
		Status:        models.MatchStatusPending,
		StakeAmount:   &stake,
	}

	if err := uow.MatchRepository().Create(ctx, match); err != nil {
		return nil, fmt.Errorf("failed to create match: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return match, nil
}

// AcceptMatch lets the invited party move a pending match to accepted
func (s *matchService) AcceptMatch(ctx context.Context, matchID uuid.UUID, wallet string) (*models.SkillMatch, error) {
	wallet = strings.ToLower(wallet)

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
	if !match.CanBeAccepted(wallet) {
		return nil, fmt.Errorf("match %s cannot be accepted by wallet %s", matchID, wallet)
	}

	if err := uow.MatchRepository().UpdateStatus(ctx, matchID, models.MatchStatusAccepted); err != nil {
		return nil, fmt.Errorf("failed to update match status: %w", err)
	}

	uow.EventBus().Publish(events.MatchStatusChangeEvent{
		MatchID:   matchID,
		OldStatus: match.Status,
		NewStatus: models.MatchStatusAccepted,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	match.Status = models.MatchStatusAccepted
	return match, nil
}

// GetMatch retrieves a match by ID
func (s *matchService) GetMatch(ctx context.Context, matchID uuid.UUID) (*models.SkillMatch, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	match, err := uow.MatchRepository().GetByID(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to get match: %w", err)
	}

	return match, nil
}

// GetMatchesByWallet returns the wallet's matches, newest first
func (s *matchService) GetMatchesByWallet(ctx context.Context, wallet string) ([]*models.SkillMatch, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	matches, err := uow.MatchRepository().GetByWallet(ctx, strings.ToLower(wallet))
	if err != nil {
		return nil, fmt.Errorf("failed to get matches: %w", err)
	}

	return matches, nil
}

// UpdateStatus transitions a match along the state machine, rejecting
// invalid edges
func (s *matchService) UpdateStatus(ctx context.Context, matchID uuid.UUID, status models.MatchStatus) (*models.SkillMatch, error) {
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
	if !match.CanTransitionTo(status) {
		return nil, fmt.Errorf("match %s cannot move %s -> %s: %w",
			matchID, match.Status, status, ErrInvalidTransition)
	}

	if err := uow.MatchRepository().UpdateStatus(ctx, matchID, status); err != nil {
		return nil, fmt.Errorf("failed to update match status: %w", err)
	}

	uow.EventBus().Publish(events.MatchStatusChangeEvent{
		MatchID:   matchID,
		OldStatus: match.Status,
		NewStatus: status,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	match.Status = status
	return match, nil
}
