package events

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"scrypto/models"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeBalanceChange     EventType = "balance_change"
	EventTypeDepositLocked     EventType = "deposit_locked"
	EventTypeSessionResolved   EventType = "session_resolved"
	EventTypeMatchStatusChange EventType = "match_status_change"
	EventTypeReputationChange  EventType = "reputation_change"
	EventTypeBadgeAwarded      EventType = "badge_awarded"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// BalanceChangeEvent represents a wallet balance change that occurred
type BalanceChangeEvent struct {
	WalletAddress string
	ChangeAmount  decimal.Decimal
	Reason        string
}

func (e BalanceChangeEvent) Type() EventType {
	return EventTypeBalanceChange
}

// DepositLockedEvent represents a stake locked into escrow
type DepositLockedEvent struct {
	MatchID       uuid.UUID
	WalletAddress string
	Amount        decimal.Decimal
}

func (e DepositLockedEvent) Type() EventType {
	return EventTypeDepositLocked
}

// SessionResolvedEvent represents a session reaching its terminal outcome
type SessionResolvedEvent struct {
	SessionID      uuid.UUID
	MatchID        uuid.UUID
	Resolution     models.Resolution
	TreasuryAmount decimal.Decimal
}

func (e SessionResolvedEvent) Type() EventType {
	return EventTypeSessionResolved
}

// MatchStatusChangeEvent represents a match state transition
type MatchStatusChangeEvent struct {
	MatchID   uuid.UUID
	OldStatus models.MatchStatus
	NewStatus models.MatchStatus
}

func (e MatchStatusChangeEvent) Type() EventType {
	return EventTypeMatchStatusChange
}

// ReputationChangeEvent represents a reputation score update
type ReputationChangeEvent struct {
	WalletAddress         string
	ScoreDelta            int
	NewScore              int
	CounterpartySatisfied bool
}

func (e ReputationChangeEvent) Type() EventType {
	return EventTypeReputationChange
}

// BadgeAwardedEvent represents a newly earned badge
type BadgeAwardedEvent struct {
	WalletAddress string
	BadgeType     models.BadgeType
}

func (e BadgeAwardedEvent) Type() EventType {
	return EventTypeBadgeAwarded
}

// Handler is a function that handles events
type Handler func(ctx context.Context, event Event)

// Bus manages event subscriptions and dispatching
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[EventType][]Handler),
	}
}

// Subscribe adds a handler for a specific event type
func (b *Bus) Subscribe(eventType EventType, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)

	log.WithFields(log.Fields{
		"eventType":    eventType,
		"handlerCount": len(b.handlers[eventType]),
	}).Debug("Subscribed handler to event type")
}

// Emit publishes an event to all registered handlers
func (b *Bus) Emit(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[event.Type()]))
	copy(handlers, b.handlers[event.Type()])
	b.mu.RUnlock()

	log.WithFields(log.Fields{
		"eventType":    event.Type(),
		"handlerCount": len(handlers),
	}).Debug("Emitting event to handlers")

	// Call handlers asynchronously to avoid blocking
	for i, handler := range handlers {
		go func(h Handler, handlerIndex int) {
			defer func() {
				if r := recover(); r != nil {
					log.WithFields(log.Fields{
						"eventType":    event.Type(),
						"handlerIndex": handlerIndex,
						"panic":        r,
					}).Error("Event handler panicked")
				}
			}()
			h(ctx, event)
		}(handler, i)
	}
}

// TransactionalBus holds pending events coupled to a unit of work.
// Flushes to the underlying event bus after commit.
type TransactionalBus struct {
	real    *Bus
	pending []Event // stashed until Flush
}

func NewTransactionalBus(real *Bus) *TransactionalBus {
	return &TransactionalBus{real: real}
}

func (b *TransactionalBus) Publish(e Event) {
	b.pending = append(b.pending, e)
}

// Flush emits all pending events; called after successful DB commit
func (b *TransactionalBus) Flush(ctx context.Context) error {
	// Events are processed independently of the transaction lifecycle,
	// so emission uses a fresh context rather than the (possibly expired)
	// transaction context.
	eventCtx := context.Background()

	for _, ev := range b.pending {
		b.real.Emit(eventCtx, ev)
	}
	b.pending = nil
	return nil
}

// Discard drops all pending events; called after rollback
func (b *TransactionalBus) Discard() {
	b.pending = nil
}
