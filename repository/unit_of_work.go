package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"scrypto/database"
	"scrypto/events"
	"scrypto/service"
)

// unitOfWork implements the UnitOfWork interface
type unitOfWork struct {
	db               *database.DB
	tx               pgx.Tx
	ctx              context.Context
	transactionalBus *events.TransactionalBus
	balanceRepo      service.BalanceRepository
	treasuryRepo     service.TreasuryRepository
	depositRepo      service.DepositRepository
	matchRepo        service.MatchRepository
	sessionRepo      service.SessionRepository
	reputationRepo   service.ReputationRepository
	badgeRepo        service.BadgeRepository
	rewardPoolRepo   service.RewardPoolRepository
	skillRepo        service.SkillRepository
}

type unitOfWorkFactory struct {
	db       *database.DB
	eventBus *events.Bus
}

// NewUnitOfWorkFactory creates a new UnitOfWork factory
func NewUnitOfWorkFactory(db *database.DB, eventBus *events.Bus) service.UnitOfWorkFactory {
	return &unitOfWorkFactory{
		db:       db,
		eventBus: eventBus,
	}
}

func (f *unitOfWorkFactory) Create() service.UnitOfWork {
	return &unitOfWork{
		db:               f.db,
		transactionalBus: events.NewTransactionalBus(f.eventBus),
	}
}

// Begin starts a new transaction
func (u *unitOfWork) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}

	tx, err := u.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	u.tx = tx
	u.ctx = ctx

	// Create repositories with the transaction
	u.balanceRepo = newBalanceRepositoryWithTx(tx)
	u.treasuryRepo = newTreasuryRepositoryWithTx(tx)
	u.depositRepo = newDepositRepositoryWithTx(tx)
	u.matchRepo = newMatchRepositoryWithTx(tx)
	u.sessionRepo = newSessionRepositoryWithTx(tx)
	u.reputationRepo = newReputationRepositoryWithTx(tx)
	u.badgeRepo = newBadgeRepositoryWithTx(tx)
	u.rewardPoolRepo = newRewardPoolRepositoryWithTx(tx)
	u.skillRepo = newSkillRepositoryWithTx(tx)

	return nil
}

// Commit commits the transaction and flushes pending events
func (u *unitOfWork) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}

	if err := u.tx.Commit(u.ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	u.tx = nil

	if u.transactionalBus != nil {
		u.transactionalBus.Flush(u.ctx)
	}

	return nil
}

// Rollback rolls back the transaction and discards pending events
func (u *unitOfWork) Rollback() error {
	if u.tx == nil {
		return nil // Nothing to rollback
	}

	err := u.tx.Rollback(u.ctx)
	if err != nil && err != pgx.ErrTxClosed {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}

	u.tx = nil

	if u.transactionalBus != nil {
		u.transactionalBus.Discard()
	}

	return nil
}

func (u *unitOfWork) BalanceRepository() service.BalanceRepository {
	if u.balanceRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.balanceRepo
}

func (u *unitOfWork) TreasuryRepository() service.TreasuryRepository {
	if u.treasuryRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.treasuryRepo
}

func (u *unitOfWork) DepositRepository() service.DepositRepository {
	if u.depositRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.depositRepo
}

func (u *unitOfWork) MatchRepository() service.MatchRepository {
	if u.matchRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.matchRepo
}

func (u *unitOfWork) SessionRepository() service.SessionRepository {
	if u.sessionRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.sessionRepo
}

func (u *unitOfWork) ReputationRepository() service.ReputationRepository {
	if u.reputationRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.reputationRepo
}

func (u *unitOfWork) BadgeRepository() service.BadgeRepository {
	if u.badgeRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.badgeRepo
}

func (u *unitOfWork) RewardPoolRepository() service.RewardPoolRepository {
	if u.rewardPoolRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.rewardPoolRepo
}

func (u *unitOfWork) SkillRepository() service.SkillRepository {
	if u.skillRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.skillRepo
}

func (u *unitOfWork) EventBus() service.EventPublisher {
	if u.transactionalBus == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.transactionalBus
}
