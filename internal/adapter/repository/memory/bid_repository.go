package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/planora/bidboard/internal/core/domain"
)

type scopeKey struct {
	eventID uuid.UUID
	service string
}

// BidRepository is an in-memory bid store with the same version and
// secondary-index contract as the Postgres adapter. A single mutex makes
// every operation, including the finalize cascade, atomic.
type BidRepository struct {
	mu    sync.Mutex
	bids  map[uuid.UUID]*domain.Bid
	index map[scopeKey][]uuid.UUID
}

func NewBidRepository() *BidRepository {
	return &BidRepository{
		bids:  make(map[uuid.UUID]*domain.Bid),
		index: make(map[scopeKey][]uuid.UUID),
	}
}

func (r *BidRepository) Create(_ context.Context, bid *domain.Bid) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.bids[bid.ID]; exists {
		return domain.ErrDuplicateID
	}

	stored := cloneBid(bid)
	r.bids[bid.ID] = stored

	key := scopeKey{eventID: bid.EventID, service: bid.Service}
	r.index[key] = append(r.index[key], bid.ID)

	return nil
}

func (r *BidRepository) GetByID(_ context.Context, id uuid.UUID) (*domain.Bid, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	bid, ok := r.bids[id]
	if !ok {
		return nil, &domain.NotFoundError{ID: id}
	}
	return cloneBid(bid), nil
}

func (r *BidRepository) ListByService(_ context.Context, eventID uuid.UUID, service string) ([]domain.Bid, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.scopeBids(scopeKey{eventID: eventID, service: service}), nil
}

func (r *BidRepository) ListByEvent(_ context.Context, eventID uuid.UUID) ([]domain.Bid, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var bids []domain.Bid
	for _, bid := range r.bids {
		if bid.EventID == eventID {
			bids = append(bids, *cloneBid(bid))
		}
	}

	sort.Slice(bids, func(i, j int) bool {
		if !bids[i].SubmittedAt.Equal(bids[j].SubmittedAt) {
			return bids[i].SubmittedAt.Before(bids[j].SubmittedAt)
		}
		return bids[i].ID.String() < bids[j].ID.String()
	})

	return bids, nil
}

func (r *BidRepository) Update(_ context.Context, bid *domain.Bid, expectedVersion int) (*domain.Bid, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.bids[bid.ID]
	if !ok {
		return nil, &domain.NotFoundError{ID: bid.ID}
	}

	if stored.Version != expectedVersion {
		return nil, &domain.ConcurrencyConflictError{ID: bid.ID, ExpectedVersion: expectedVersion}
	}

	stored.OfferedPrice = bid.OfferedPrice
	if bid.OriginalPrice != nil {
		p := *bid.OriginalPrice
		stored.OriginalPrice = &p
	}
	stored.Status = bid.Status
	stored.NegotiationCount = bid.NegotiationCount
	stored.Version++

	return cloneBid(stored), nil
}

func (r *BidRepository) FinalizeCascade(_ context.Context, bidID uuid.UUID, expectedVersion int) (*domain.FinalizeResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	target, ok := r.bids[bidID]
	if !ok {
		return nil, &domain.NotFoundError{ID: bidID}
	}

	if target.Version != expectedVersion {
		return nil, &domain.ConcurrencyConflictError{ID: bidID, ExpectedVersion: expectedVersion}
	}

	target.Status = domain.BidFinalized
	target.Version++

	var closed []domain.Bid
	key := scopeKey{eventID: target.EventID, service: target.Service}
	for _, id := range r.index[key] {
		if id == bidID {
			continue
		}
		sibling := r.bids[id]
		if sibling.IsOpen() {
			sibling.Status = domain.BidClosed
			sibling.Version++
			closed = append(closed, *cloneBid(sibling))
		}
	}

	return &domain.FinalizeResult{Finalized: cloneBid(target), Closed: closed}, nil
}

func (r *BidRepository) scopeBids(key scopeKey) []domain.Bid {
	ids := r.index[key]
	bids := make([]domain.Bid, 0, len(ids))
	for _, id := range ids {
		bids = append(bids, *cloneBid(r.bids[id]))
	}
	return bids
}

func cloneBid(bid *domain.Bid) *domain.Bid {
	clone := *bid
	if bid.OriginalPrice != nil {
		p := *bid.OriginalPrice
		clone.OriginalPrice = &p
	}
	if bid.Inclusions != nil {
		clone.Inclusions = append([]string(nil), bid.Inclusions...)
	}
	return &clone
}
