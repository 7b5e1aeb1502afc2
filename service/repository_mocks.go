package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"scrypto/events"
	"scrypto/models"
)

// MockBalanceRepository is a mock implementation of BalanceRepository
type MockBalanceRepository struct {
	mock.Mock
}

func (m *MockBalanceRepository) GetByWallet(ctx context.Context, wallet string) (*models.UserBalance, error) {
	args := m.Called(ctx, wallet)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserBalance), args.Error(1)
}

func (m *MockBalanceRepository) CreateIfAbsent(ctx context.Context, wallet string, initial decimal.Decimal) error {
	args := m.Called(ctx, wallet, initial)
	return args.Error(0)
}

func (m *MockBalanceRepository) Add(ctx context.Context, wallet string, amount decimal.Decimal) error {
	args := m.Called(ctx, wallet, amount)
	return args.Error(0)
}

func (m *MockBalanceRepository) Deduct(ctx context.Context, wallet string, amount decimal.Decimal) error {
	args := m.Called(ctx, wallet, amount)
	return args.Error(0)
}

// MockTreasuryRepository is a mock implementation of TreasuryRepository
type MockTreasuryRepository struct {
	mock.Mock
}

func (m *MockTreasuryRepository) GetOrCreate(ctx context.Context) (*models.Treasury, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Treasury), args.Error(1)
}

func (m *MockTreasuryRepository) Credit(ctx context.Context, amount decimal.Decimal) error {
	args := m.Called(ctx, amount)
	return args.Error(0)
}

// MockDepositRepository is a mock implementation of DepositRepository
type MockDepositRepository struct {
	mock.Mock
}

func (m *MockDepositRepository) Create(ctx context.Context, deposit *models.EscrowDeposit) error {
	args := m.Called(ctx, deposit)
	return args.Error(0)
}

func (m *MockDepositRepository) GetByMatch(ctx context.Context, matchID uuid.UUID) ([]*models.EscrowDeposit, error) {
	args := m.Called(ctx, matchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.EscrowDeposit), args.Error(1)
}

func (m *MockDepositRepository) GetLockedByMatch(ctx context.Context, matchID uuid.UUID) ([]*models.EscrowDeposit, error) {
	args := m.Called(ctx, matchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.EscrowDeposit), args.Error(1)
}

func (m *MockDepositRepository) HasLocked(ctx context.Context, matchID uuid.UUID, wallet string) (bool, error) {
	args := m.Called(ctx, matchID, wallet)
	return args.Bool(0), args.Error(1)
}

func (m *MockDepositRepository) CountLocked(ctx context.Context, matchID uuid.UUID) (int, error) {
	args := m.Called(ctx, matchID)
	return args.Int(0), args.Error(1)
}

func (m *MockDepositRepository) MarkResolved(ctx context.Context, id uuid.UUID, status models.DepositStatus, resolvedAt time.Time) error {
	args := m.Called(ctx, id, status, resolvedAt)
	return args.Error(0)
}

// MockMatchRepository is a mock implementation of MatchRepository
type MockMatchRepository struct {
	mock.Mock
}

func (m *MockMatchRepository) Create(ctx context.Context, match *models.SkillMatch) error {
	args := m.Called(ctx, match)
	return args.Error(0)
}

func (m *MockMatchRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.SkillMatch, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SkillMatch), args.Error(1)
}

func (m *MockMatchRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.MatchStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockMatchRepository) GetByWallet(ctx context.Context, wallet string) ([]*models.SkillMatch, error) {
	args := m.Called(ctx, wallet)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.SkillMatch), args.Error(1)
}

// MockSessionRepository is a mock implementation of SessionRepository
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) Create(ctx context.Context, session *models.LearningSession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockSessionRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.LearningSession, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LearningSession), args.Error(1)
}

func (m *MockSessionRepository) GetByMatch(ctx context.Context, matchID uuid.UUID) (*models.LearningSession, error) {
	args := m.Called(ctx, matchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LearningSession), args.Error(1)
}

func (m *MockSessionRepository) GetByWallet(ctx context.Context, wallet string) ([]*models.LearningSession, error) {
	args := m.Called(ctx, wallet)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.LearningSession), args.Error(1)
}

func (m *MockSessionRepository) RecordVote(ctx context.Context, id uuid.UUID, isUserA bool, satisfied bool, markedAt time.Time) error {
	args := m.Called(ctx, id, isUserA, satisfied, markedAt)
	return args.Error(0)
}

func (m *MockSessionRepository) SetResolution(ctx context.Context, id uuid.UUID, resolution models.Resolution, completedAt time.Time) error {
	args := m.Called(ctx, id, resolution, completedAt)
	return args.Error(0)
}

// MockReputationRepository is a mock implementation of ReputationRepository
type MockReputationRepository struct {
	mock.Mock
}

func (m *MockReputationRepository) GetByWallet(ctx context.Context, wallet string) (*models.UserReputation, error) {
	args := m.Called(ctx, wallet)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserReputation), args.Error(1)
}

func (m *MockReputationRepository) Create(ctx context.Context, rep *models.UserReputation) error {
	args := m.Called(ctx, rep)
	return args.Error(0)
}

func (m *MockReputationRepository) Update(ctx context.Context, rep *models.UserReputation) error {
	args := m.Called(ctx, rep)
	return args.Error(0)
}

func (m *MockReputationRepository) GetTop(ctx context.Context, limit int) ([]*models.UserReputation, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.UserReputation), args.Error(1)
}

func (m *MockReputationRepository) GetRank(ctx context.Context, wallet string) (*models.LeaderboardRank, error) {
	args := m.Called(ctx, wallet)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LeaderboardRank), args.Error(1)
}

func (m *MockReputationRepository) IsTopProvider(ctx context.Context, wallet string, topN int) (bool, error) {
	args := m.Called(ctx, wallet, topN)
	return args.Bool(0), args.Error(1)
}

// MockBadgeRepository is a mock implementation of BadgeRepository
type MockBadgeRepository struct {
	mock.Mock
}

func (m *MockBadgeRepository) Award(ctx context.Context, badge *models.UserBadge) (bool, error) {
	args := m.Called(ctx, badge)
	return args.Bool(0), args.Error(1)
}

func (m *MockBadgeRepository) GetByWallet(ctx context.Context, wallet string) ([]*models.UserBadge, error) {
	args := m.Called(ctx, wallet)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.UserBadge), args.Error(1)
}

// MockRewardPoolRepository is a mock implementation of RewardPoolRepository
type MockRewardPoolRepository struct {
	mock.Mock
}

func (m *MockRewardPoolRepository) GetOrCreate(ctx context.Context) (*models.RewardPool, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RewardPool), args.Error(1)
}

func (m *MockRewardPoolRepository) Add(ctx context.Context, amount decimal.Decimal) error {
	args := m.Called(ctx, amount)
	return args.Error(0)
}

// MockSkillRepository is a mock implementation of SkillRepository
type MockSkillRepository struct {
	mock.Mock
}

func (m *MockSkillRepository) List(ctx context.Context) ([]*models.Skill, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Skill), args.Error(1)
}

func (m *MockSkillRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Skill, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Skill), args.Error(1)
}

func (m *MockSkillRepository) AddUserSkill(ctx context.Context, wallet string, skillID uuid.UUID) error {
	args := m.Called(ctx, wallet, skillID)
	return args.Error(0)
}

func (m *MockSkillRepository) AddWantedSkill(ctx context.Context, wallet string, skillID uuid.UUID) error {
	args := m.Called(ctx, wallet, skillID)
	return args.Error(0)
}

func (m *MockSkillRepository) GetUserSkills(ctx context.Context, wallet string) ([]*models.UserSkill, error) {
	args := m.Called(ctx, wallet)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.UserSkill), args.Error(1)
}

func (m *MockSkillRepository) GetWantedSkills(ctx context.Context, wallet string) ([]*models.WantedSkill, error) {
	args := m.Called(ctx, wallet)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.WantedSkill), args.Error(1)
}

func (m *MockSkillRepository) FindComplementary(ctx context.Context, wallet string) ([]*models.PotentialMatch, error) {
	args := m.Called(ctx, wallet)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.PotentialMatch), args.Error(1)
}

// MockEventPublisher is a mock implementation of EventPublisher for testing
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(event events.Event) {
	m.Called(event)
}

// noopEventPublisher drops events; used when a test does not care about them
type noopEventPublisher struct{}

func (noopEventPublisher) Publish(events.Event) {}

// MockUnitOfWork is a mock implementation of UnitOfWork. Repository accessors
// return whatever SetRepositories stored rather than going through mock.Called.
type MockUnitOfWork struct {
	mock.Mock

	balanceRepo    BalanceRepository
	treasuryRepo   TreasuryRepository
	depositRepo    DepositRepository
	matchRepo      MatchRepository
	sessionRepo    SessionRepository
	reputationRepo ReputationRepository
	badgeRepo      BadgeRepository
	rewardPoolRepo RewardPoolRepository
	skillRepo      SkillRepository
	eventBus       EventPublisher
}

// SetRepositories wires mock repositories into the unit of work. Nil entries
// are fine for repositories a test never touches; a nil bus drops events.
func (m *MockUnitOfWork) SetRepositories(
	balance BalanceRepository,
	treasury TreasuryRepository,
	deposit DepositRepository,
	match MatchRepository,
	session SessionRepository,
	reputation ReputationRepository,
	badge BadgeRepository,
	rewardPool RewardPoolRepository,
	skill SkillRepository,
	bus EventPublisher,
) {
	m.balanceRepo = balance
	m.treasuryRepo = treasury
	m.depositRepo = deposit
	m.matchRepo = match
	m.sessionRepo = session
	m.reputationRepo = reputation
	m.badgeRepo = badge
	m.rewardPoolRepo = rewardPool
	m.skillRepo = skill
	if bus == nil {
		bus = noopEventPublisher{}
	}
	m.eventBus = bus
}

func (m *MockUnitOfWork) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) BalanceRepository() BalanceRepository       { return m.balanceRepo }
func (m *MockUnitOfWork) TreasuryRepository() TreasuryRepository    { return m.treasuryRepo }
func (m *MockUnitOfWork) DepositRepository() DepositRepository      { return m.depositRepo }
func (m *MockUnitOfWork) MatchRepository() MatchRepository          { return m.matchRepo }
func (m *MockUnitOfWork) SessionRepository() SessionRepository      { return m.sessionRepo }
func (m *MockUnitOfWork) ReputationRepository() ReputationRepository {
	return m.reputationRepo
}
func (m *MockUnitOfWork) BadgeRepository() BadgeRepository           { return m.badgeRepo }
func (m *MockUnitOfWork) RewardPoolRepository() RewardPoolRepository { return m.rewardPoolRepo }
func (m *MockUnitOfWork) SkillRepository() SkillRepository           { return m.skillRepo }
func (m *MockUnitOfWork) EventBus() EventPublisher {
	if m.eventBus == nil {
		return noopEventPublisher{}
	}
	return m.eventBus
}

// MockUnitOfWorkFactory is a mock implementation of UnitOfWorkFactory
type MockUnitOfWorkFactory struct {
	mock.Mock
}

func (m *MockUnitOfWorkFactory) Create() UnitOfWork {
	args := m.Called()
	return args.Get(0).(UnitOfWork)
}
