package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"scrypto/events"
	"scrypto/models"
)

type escrowService struct {
	uowFactory      UnitOfWorkFactory
	startingBalance decimal.Decimal
}

// NewEscrowService creates a new escrow service. New wallets are credited
// startingBalance on first access.
func NewEscrowService(uowFactory UnitOfWorkFactory, startingBalance decimal.Decimal) EscrowService {
	return &escrowService{
		uowFactory:      uowFactory,
		startingBalance: startingBalance,
	}
}

// GetOrCreateBalance returns the wallet's balance, lazily crediting the
// starting balance on first access
func (s *escrowService) GetOrCreateBalance(ctx context.Context, wallet string) (decimal.Decimal, error) {
	wallet = strings.ToLower(wallet)

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return decimal.Zero, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	if err := uow.BalanceRepository().CreateIfAbsent(ctx, wallet, s.startingBalance); err != nil {
		return decimal.Zero, fmt.Errorf("failed to ensure balance: %w", err)
	}

	balance, err := uow.BalanceRepository().GetByWallet(ctx, wallet)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to get balance: %w", err)
	}
	if balance == nil {
		return decimal.Zero, fmt.Errorf("balance for wallet %s: %w", wallet, ErrNotFound)
	}

	if err := uow.Commit(); err != nil {
		return decimal.Zero, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return balance.Balance, nil
}

// GetTreasuryBalance returns the platform treasury balance
func (s *escrowService) GetTreasuryBalance(ctx context.Context) (decimal.Decimal, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return decimal.Zero, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	treasury, err := uow.TreasuryRepository().GetOrCreate(ctx)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to get treasury: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return decimal.Zero, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return treasury.Balance, nil
}

// Stake debits the wallet and locks the amount in escrow for the match.
// The debit and the deposit insert share one transaction: if either fails
// the other is rolled back, so a failed deposit insert can never leave the
// wallet debited.
func (s *escrowService) Stake(ctx context.Context, matchID uuid.UUID, wallet string, amount decimal.Decimal) error {
	wallet = strings.ToLower(wallet)

	if !amount.IsPositive() {
		return fmt.Errorf("stake amount must be positive")
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	match, err := uow.MatchRepository().GetByID(ctx, matchID)
	if err != nil {
		return fmt.Errorf("failed to get match: %w", err)
	}
	if match == nil {
		return fmt.Errorf("match %s: %w", matchID, ErrNotFound)
	}
	if !match.IsParticipant(wallet) {
		return fmt.Errorf("wallet %s on match %s: %w", wallet, matchID, ErrNotParticipant)
	}
	if match.Status != models.MatchStatusAccepted {
		return fmt.Errorf("match %s is not ready for staking (status %s)", matchID, match.Status)
	}
	if match.StakeAmount != nil && !amount.Equal(*match.StakeAmount) {
		return fmt.Errorf("match %s requires a stake of %s, got %s", matchID, match.StakeAmount, amount)
	}

	staked, err := uow.DepositRepository().HasLocked(ctx, matchID, wallet)
	if err != nil {
		return fmt.Errorf("failed to check existing deposit: %w", err)
	}
	if staked {
		return fmt.Errorf("match %s wallet %s: %w", matchID, wallet, ErrAlreadyStaked)
	}

	// First-time stakers get their balance row created here so the
	// guarded debit below has something to debit
	if err := uow.BalanceRepository().CreateIfAbsent(ctx, wallet, s.startingBalance); err != nil {
		return fmt.Errorf("failed to ensure balance: %w", err)
	}

	if err := uow.BalanceRepository().Deduct(ctx, wallet, amount); err != nil {
		return fmt.Errorf("failed to deduct stake: %w", err)
	}

	deposit := &models.EscrowDeposit{
		MatchID:       matchID,
		WalletAddress: wallet,
		Amount:        amount,
		Status:        models.DepositStatusLocked,
	}

	if err := uow.DepositRepository().Create(ctx, deposit); err != nil {
		return fmt.Errorf("failed to create deposit: %w", err)
	}

	uow.EventBus().Publish(events.BalanceChangeEvent{
		WalletAddress: wallet,
		ChangeAmount:  amount.Neg(),
		Reason:        "stake",
	})
	uow.EventBus().Publish(events.DepositLockedEvent{
		MatchID:       matchID,
		WalletAddress: wallet,
		Amount:        amount,
	})

	// Second stake moves the match forward
	locked, err := uow.DepositRepository().CountLocked(ctx, matchID)
	if err != nil {
		return fmt.Errorf("failed to count deposits: %w", err)
	}
	if locked >= 2 {
		if err := uow.MatchRepository().UpdateStatus(ctx, matchID, models.MatchStatusStaked); err != nil {
			return fmt.Errorf("failed to update match status: %w", err)
		}
		uow.EventBus().Publish(events.MatchStatusChangeEvent{
			MatchID:   matchID,
			OldStatus: match.Status,
			NewStatus: models.MatchStatusStaked,
		})
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithFields(log.Fields{
		"matchID": matchID,
		"wallet":  wallet,
		"amount":  amount.String(),
	}).Info("Stake locked in escrow")

	return nil
}

// GetDeposits returns all deposits for a match
func (s *escrowService) GetDeposits(ctx context.Context, matchID uuid.UUID) ([]*models.EscrowDeposit, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	deposits, err := uow.DepositRepository().GetByMatch(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to get deposits: %w", err)
	}

	return deposits, nil
}

// HasStaked checks whether the wallet has a locked stake for the match
func (s *escrowService) HasStaked(ctx context.Context, matchID uuid.UUID, wallet string) (bool, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	staked, err := uow.DepositRepository().HasLocked(ctx, matchID, strings.ToLower(wallet))
	if err != nil {
		return false, fmt.Errorf("failed to check deposit: %w", err)
	}

	return staked, nil
}

// BothStaked checks whether both parties have locked stakes
func (s *escrowService) BothStaked(ctx context.Context, matchID uuid.UUID) (bool, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	locked, err := uow.DepositRepository().CountLocked(ctx, matchID)
	if err != nil {
		return false, fmt.Errorf("failed to count deposits: %w", err)
	}

	return locked >= 2, nil
}
