package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/planora/bidboard/internal/core/domain"
)

// BidRepository is the durable bid store. Implementations keep the
// (eventID, service) secondary index consistent with every create and update,
// and enforce optimistic concurrency through the expectedVersion arguments.
type BidRepository interface {
	Create(ctx context.Context, bid *domain.Bid) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Bid, error)
	ListByService(ctx context.Context, eventID uuid.UUID, service string) ([]domain.Bid, error)
	ListByEvent(ctx context.Context, eventID uuid.UUID) ([]domain.Bid, error)

	// Update persists the mutable fields of bid (price, original price, status,
	// negotiation count) if the stored version still equals expectedVersion.
	Update(ctx context.Context, bid *domain.Bid, expectedVersion int) (*domain.Bid, error)

	// FinalizeCascade atomically finalizes the target bid and closes every
	// open sibling in the same (event, service) scope. Partial application is
	// never observable.
	FinalizeCascade(ctx context.Context, bidID uuid.UUID, expectedVersion int) (*domain.FinalizeResult, error)
}

// ScopeLocker serializes finalization per (event, service) scope. Acquire
// blocks until the scope lock is held or ctx is done; the returned release
// function must be called exactly once after commit or abort.
type ScopeLocker interface {
	Acquire(ctx context.Context, eventID uuid.UUID, service string) (release func(), err error)
}

// Notifier informs external collaborators of bid transitions to finalized,
// declined or closed. Calls are fire-and-forget: implementations must not
// block and have no way to fail the transition.
type Notifier interface {
	BidTransitioned(ctx context.Context, bid domain.Bid)
}
