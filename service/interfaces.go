package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"scrypto/events"
	"scrypto/models"
)

// BalanceRepository defines the interface for wallet balance data access
type BalanceRepository interface {
	// GetByWallet retrieves a balance row, or nil if the wallet has none yet
	GetByWallet(ctx context.Context, wallet string) (*models.UserBalance, error)

	// CreateIfAbsent inserts a balance row with the starting balance.
	// Safe to call concurrently for the same wallet.
	CreateIfAbsent(ctx context.Context, wallet string, initial decimal.Decimal) error

	// Add credits a wallet's balance atomically
	Add(ctx context.Context, wallet string, amount decimal.Decimal) error

	// Deduct debits a wallet's balance atomically, failing with
	// ErrInsufficientBalance when the balance does not cover the amount
	Deduct(ctx context.Context, wallet string, amount decimal.Decimal) error
}

// TreasuryRepository defines the interface for the singleton platform treasury
type TreasuryRepository interface {
	// GetOrCreate returns the treasury row, creating it at zero if absent
	GetOrCreate(ctx context.Context) (*models.Treasury, error)

	// Credit adds forfeited stakes to the treasury, creating the row if absent
	Credit(ctx context.Context, amount decimal.Decimal) error
}

// DepositRepository defines the interface for escrow deposit data access
type DepositRepository interface {
	// Create inserts a new locked deposit
	Create(ctx context.Context, deposit *models.EscrowDeposit) error

	// GetByMatch returns all deposits for a match regardless of status
	GetByMatch(ctx context.Context, matchID uuid.UUID) ([]*models.EscrowDeposit, error)

	// GetLockedByMatch returns deposits still awaiting resolution
	GetLockedByMatch(ctx context.Context, matchID uuid.UUID) ([]*models.EscrowDeposit, error)

	// HasLocked checks whether the wallet has a locked deposit for the match
	HasLocked(ctx context.Context, matchID uuid.UUID, wallet string) (bool, error)

	// CountLocked returns the number of locked deposits for a match
	CountLocked(ctx context.Context, matchID uuid.UUID) (int, error)

	// MarkResolved transitions a deposit out of the locked state
	MarkResolved(ctx context.Context, id uuid.UUID, status models.DepositStatus, resolvedAt time.Time) error
}

// MatchRepository defines the interface for skill match data access
type MatchRepository interface {
	// Create inserts a new pending match
	Create(ctx context.Context, match *models.SkillMatch) error

	// GetByID retrieves a match, or nil if absent
	GetByID(ctx context.Context, id uuid.UUID) (*models.SkillMatch, error)

	// UpdateStatus transitions a match's status label
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.MatchStatus) error

	// GetByWallet returns all matches the wallet participates in, newest first
	GetByWallet(ctx context.Context, wallet string) ([]*models.SkillMatch, error)
}

// SessionRepository defines the interface for learning session data access
type SessionRepository interface {
	// Create inserts a new session for a match
	Create(ctx context.Context, session *models.LearningSession) error

	// GetByID retrieves a session, or nil if absent
	GetByID(ctx context.Context, id uuid.UUID) (*models.LearningSession, error)

	// GetByMatch retrieves the session for a match, or nil if absent
	GetByMatch(ctx context.Context, matchID uuid.UUID) (*models.LearningSession, error)

	// GetByWallet returns sessions whose match involves the wallet, newest first
	GetByWallet(ctx context.Context, wallet string) ([]*models.LearningSession, error)

	// RecordVote stores one side's satisfaction vote with its timestamp
	RecordVote(ctx context.Context, id uuid.UUID, isUserA bool, satisfied bool, markedAt time.Time) error

	// SetResolution stores the terminal outcome of a session
	SetResolution(ctx context.Context, id uuid.UUID, resolution models.Resolution, completedAt time.Time) error
}

// ReputationRepository defines the interface for reputation data access
type ReputationRepository interface {
	// GetByWallet retrieves a reputation row, or nil if absent
	GetByWallet(ctx context.Context, wallet string) (*models.UserReputation, error)

	// Create inserts a wallet's first reputation row
	Create(ctx context.Context, rep *models.UserReputation) error

	// Update persists an updated reputation accumulator
	Update(ctx context.Context, rep *models.UserReputation) error

	// GetTop returns the highest-scored wallets, best first
	GetTop(ctx context.Context, limit int) ([]*models.UserReputation, error)

	// GetRank returns a wallet's leaderboard position, or nil if unranked
	GetRank(ctx context.Context, wallet string) (*models.LeaderboardRank, error)

	// IsTopProvider checks whether the wallet ranks within the top N by score
	IsTopProvider(ctx context.Context, wallet string, topN int) (bool, error)
}

// BadgeRepository defines the interface for badge data access
type BadgeRepository interface {
	// Award inserts a badge, reporting false if the wallet already holds it
	Award(ctx context.Context, badge *models.UserBadge) (bool, error)

	// GetByWallet returns a wallet's badges, newest first
	GetByWallet(ctx context.Context, wallet string) ([]*models.UserBadge, error)
}

// RewardPoolRepository defines the interface for the singleton reward pool
type RewardPoolRepository interface {
	// GetOrCreate returns the pool row, creating it at zero if absent
	GetOrCreate(ctx context.Context) (*models.RewardPool, error)

	// Add increments the pool total, creating the row if absent
	Add(ctx context.Context, amount decimal.Decimal) error
}

// SkillRepository defines the interface for the skills catalog and the
// per-wallet taught/wanted skill sets
type SkillRepository interface {
	// List returns the full skill catalog
	List(ctx context.Context) ([]*models.Skill, error)

	// GetByID retrieves a skill, or nil if absent
	GetByID(ctx context.Context, id uuid.UUID) (*models.Skill, error)

	// AddUserSkill marks a skill as taught by the wallet (no-op if present)
	AddUserSkill(ctx context.Context, wallet string, skillID uuid.UUID) error

	// AddWantedSkill marks a skill as wanted by the wallet (no-op if present)
	AddWantedSkill(ctx context.Context, wallet string, skillID uuid.UUID) error

	// GetUserSkills returns the skills a wallet teaches
	GetUserSkills(ctx context.Context, wallet string) ([]*models.UserSkill, error)

	// GetWantedSkills returns the skills a wallet wants to learn
	GetWantedSkills(ctx context.Context, wallet string) ([]*models.WantedSkill, error)

	// FindComplementary returns wallets that teach something this wallet
	// wants and want something this wallet teaches
	FindComplementary(ctx context.Context, wallet string) ([]*models.PotentialMatch, error)
}

// EventPublisher defines the interface for publishing events within a
// unit of work; publishes are held until the transaction commits
type EventPublisher interface {
	Publish(event events.Event)
}

// UnitOfWork provides transactional access to all repositories
type UnitOfWork interface {
	// Begin starts the transaction
	Begin(ctx context.Context) error

	// Commit commits the transaction and flushes pending events
	Commit() error

	// Rollback rolls back the transaction and discards pending events.
	// Safe to call after Commit.
	Rollback() error

	BalanceRepository() BalanceRepository
	TreasuryRepository() TreasuryRepository
	DepositRepository() DepositRepository
	MatchRepository() MatchRepository
	SessionRepository() SessionRepository
	ReputationRepository() ReputationRepository
	BadgeRepository() BadgeRepository
	RewardPoolRepository() RewardPoolRepository
	SkillRepository() SkillRepository
	EventBus() EventPublisher
}

// UnitOfWorkFactory creates units of work
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// EscrowService defines balance ledger and escrow stake operations
type EscrowService interface {
	// GetOrCreateBalance returns the wallet's balance, lazily crediting the
	// starting balance on first access
	GetOrCreateBalance(ctx context.Context, wallet string) (decimal.Decimal, error)

	// GetTreasuryBalance returns the platform treasury balance
	GetTreasuryBalance(ctx context.Context) (decimal.Decimal, error)

	// Stake debits the wallet and locks the amount in escrow for the match
	Stake(ctx context.Context, matchID uuid.UUID, wallet string, amount decimal.Decimal) error

	// GetDeposits returns all deposits for a match
	GetDeposits(ctx context.Context, matchID uuid.UUID) ([]*models.EscrowDeposit, error)

	// HasStaked checks whether the wallet has a locked stake for the match
	HasStaked(ctx context.Context, matchID uuid.UUID, wallet string) (bool, error)

	// BothStaked checks whether both parties have locked stakes
	BothStaked(ctx context.Context, matchID uuid.UUID) (bool, error)
}

// SessionService defines learning session and resolution operations
type SessionService interface {
	// CreateSession opens the session for a staked match and moves the
	// match into the in_session state
	CreateSession(ctx context.Context, matchID uuid.UUID) (*models.LearningSession, error)

	// GetSessionsByWallet returns the wallet's sessions, newest first
	GetSessionsByWallet(ctx context.Context, wallet string) ([]*models.LearningSession, error)

	// MarkSatisfaction records one side's satisfaction vote. When the second
	// vote lands, the session resolves: deposits are routed, the match
	// reaches its terminal status, reputations update and badges are checked,
	// all within a single transaction.
	MarkSatisfaction(ctx context.Context, sessionID uuid.UUID, wallet string, satisfied bool) (*models.LearningSession, error)
}

// MatchService defines match lifecycle operations
type MatchService interface {
	// FindPotentialMatches returns complementary pairings for the wallet
	FindPotentialMatches(ctx context.Context, wallet string) ([]*models.PotentialMatch, error)

	// CreateMatch proposes a bilateral exchange; the proposer is user A
	CreateMatch(ctx context.Context, proposer, other string, proposerSkillID, otherSkillID uuid.UUID) (*models.SkillMatch, error)

	// AcceptMatch lets the invited party move a pending match to accepted
	AcceptMatch(ctx context.Context, matchID uuid.UUID, wallet string) (*models.SkillMatch, error)

	// GetMatch retrieves a match by ID
	GetMatch(ctx context.Context, matchID uuid.UUID) (*models.SkillMatch, error)

	// GetMatchesByWallet returns the wallet's matches, newest first
	GetMatchesByWallet(ctx context.Context, wallet string) ([]*models.SkillMatch, error)

	// UpdateStatus transitions a match along the state machine, rejecting
	// invalid edges with ErrInvalidTransition
	UpdateStatus(ctx context.Context, matchID uuid.UUID, status models.MatchStatus) (*models.SkillMatch, error)
}

// SkillService defines skill catalog operations
type SkillService interface {
	// ListSkills returns the catalog
	ListSkills(ctx context.Context) ([]*models.Skill, error)

	// AddUserSkill marks a skill as taught by the wallet
	AddUserSkill(ctx context.Context, wallet string, skillID uuid.UUID) error

	// AddWantedSkill marks a skill as wanted by the wallet
	AddWantedSkill(ctx context.Context, wallet string, skillID uuid.UUID) error

	// GetUserSkills returns the skills a wallet teaches
	GetUserSkills(ctx context.Context, wallet string) ([]*models.UserSkill, error)

	// GetWantedSkills returns the skills a wallet wants
	GetWantedSkills(ctx context.Context, wallet string) ([]*models.WantedSkill, error)
}

// ReputationService defines reputation operations
type ReputationService interface {
	// Update folds one resolved session into the wallet's accumulator,
	// using the counterparty's satisfaction vote as the success signal
	Update(ctx context.Context, wallet string, counterpartySatisfied bool) (*models.UserReputation, error)

	// GetByWallet returns a wallet's reputation, or nil when unranked
	GetByWallet(ctx context.Context, wallet string) (*models.UserReputation, error)

	// Leaderboard returns the top wallets by score
	Leaderboard(ctx context.Context, limit int) ([]*models.UserReputation, error)

	// Rank returns the wallet's leaderboard position, or nil when unranked
	Rank(ctx context.Context, wallet string) (*models.LeaderboardRank, error)
}

// BadgeService defines badge operations
type BadgeService interface {
	// CheckAndAward evaluates all badge rules for the wallet and awards any
	// newly earned badges, returning the types awarded this call
	CheckAndAward(ctx context.Context, wallet string) ([]models.BadgeType, error)

	// GetBadges returns the wallet's badges
	GetBadges(ctx context.Context, wallet string) ([]*models.UserBadge, error)
}

// RewardPoolService defines reward pool operations
type RewardPoolService interface {
	// Get returns the pool, creating it at zero on first access
	Get(ctx context.Context) (*models.RewardPool, error)

	// Contribute adds an external contribution to the pool
	Contribute(ctx context.Context, amount decimal.Decimal) error
}
