package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/planora/bidboard/internal/core/domain"
	"github.com/planora/bidboard/internal/core/ports"
)

type SubmitBidRequest struct {
	EventID      string          `json:"eventId"`
	VendorID     string          `json:"vendorId"`
	VendorName   string          `json:"vendorName"`
	VendorRating float64         `json:"vendorRating"`
	Service      string          `json:"service"`
	OfferedPrice decimal.Decimal `json:"offeredPrice"`
	PackageName  string          `json:"packageName"`
	Inclusions   []string        `json:"inclusions"`
	Timeline     string          `json:"timeline"`
}

// BidService coordinates every guarded bid transition. Finalization is
// serialized per (event, service) through the scope locker; negotiate and
// decline rely on per-bid optimistic versions only.
type BidService struct {
	repo        ports.BidRepository
	locker      ports.ScopeLocker
	notifier    ports.Notifier
	redisClient *redis.Client
	logger      zerolog.Logger
}

func NewBidService(repo ports.BidRepository, locker ports.ScopeLocker, notifier ports.Notifier, redisClient *redis.Client, logger zerolog.Logger) *BidService {
	return &BidService{
		repo:        repo,
		locker:      locker,
		notifier:    notifier,
		redisClient: redisClient,
		logger:      logger,
	}
}

// SubmitBid creates a new bid for an event's service with status new.
func (s *BidService) SubmitBid(ctx context.Context, req SubmitBidRequest) (*domain.Bid, error) {
	eventID, err := uuid.Parse(req.EventID)
	if err != nil {
		return nil, &domain.ValidationError{Field: "eventId", Msg: "must be a valid uuid"}
	}

	vendorID, err := uuid.Parse(req.VendorID)
	if err != nil {
		return nil, &domain.ValidationError{Field: "vendorId", Msg: "must be a valid uuid"}
	}

	if req.Service == "" {
		return nil, &domain.ValidationError{Field: "service", Msg: "must not be empty"}
	}

	if req.VendorName == "" {
		return nil, &domain.ValidationError{Field: "vendorName", Msg: "must not be empty"}
	}

	if !req.OfferedPrice.IsPositive() {
		return nil, &domain.ValidationError{Field: "offeredPrice", Msg: "must be positive"}
	}

	bid := &domain.Bid{
		ID:               uuid.New(),
		EventID:          eventID,
		VendorID:         vendorID,
		VendorName:       req.VendorName,
		VendorRating:     req.VendorRating,
		Service:          req.Service,
		OfferedPrice:     req.OfferedPrice,
		PackageName:      req.PackageName,
		Inclusions:       req.Inclusions,
		Timeline:         req.Timeline,
		SubmittedAt:      time.Now().UTC(),
		Status:           domain.BidNew,
		NegotiationCount: 0,
		Version:          1,
	}

	if err := s.repo.Create(ctx, bid); err != nil {
		return nil, err
	}

	s.invalidateEventCache(ctx, eventID)

	s.logger.Info().
		Str("bid_id", bid.ID.String()).
		Str("event_id", eventID.String()).
		Str("service", bid.Service).
		Msg("bid submitted")

	return bid, nil
}

// GetBid returns one bid by id, letting callers re-read after a version conflict.
func (s *BidService) GetBid(ctx context.Context, bidID uuid.UUID) (*domain.Bid, error) {
	return s.repo.GetByID(ctx, bidID)
}

// Negotiate records an accepted counter-offer: the first one preserves the
// originally offered price, and every one bumps the negotiation round count.
func (s *BidService) Negotiate(ctx context.Context, bidID uuid.UUID, newPrice decimal.Decimal, expectedVersion int) (*domain.Bid, error) {
	if !newPrice.IsPositive() {
		return nil, &domain.ValidationError{Field: "newPrice", Msg: "must be positive"}
	}

	bid, err := s.repo.GetByID(ctx, bidID)
	if err != nil {
		return nil, err
	}

	siblings, err := s.siblingsOf(ctx, bid)
	if err != nil {
		return nil, err
	}

	// Guard rejection takes precedence over version staleness: an action that
	// is not permitted at all reports the state conflict, not the stale read.
	decision := domain.EvaluateTransitions(bid, siblings)
	if !decision.Can(domain.ActionNegotiate) {
		return nil, decision.Reject(domain.ActionNegotiate)
	}

	if bid.Version != expectedVersion {
		return nil, &domain.ConcurrencyConflictError{ID: bidID, ExpectedVersion: expectedVersion}
	}

	if bid.OriginalPrice == nil {
		first := bid.OfferedPrice
		bid.OriginalPrice = &first
	}
	bid.OfferedPrice = newPrice
	bid.Status = domain.BidUnderNegotiation
	bid.NegotiationCount++

	updated, err := s.repo.Update(ctx, bid, expectedVersion)
	if err != nil {
		return nil, err
	}

	s.invalidateEventCache(ctx, bid.EventID)

	s.logger.Info().
		Str("bid_id", bidID.String()).
		Int("round", updated.NegotiationCount).
		Str("price", updated.OfferedPrice.String()).
		Msg("bid negotiated")

	return updated, nil
}

// Finalize locks in the bid's vendor for its service and closes every open
// competing bid in the same scope. The whole cascade commits atomically under
// an exclusive (event, service) lock; a concurrent finalize for another bid
// in the scope re-reads after acquiring the lock and gets
// ServiceAlreadyFinalized.
func (s *BidService) Finalize(ctx context.Context, bidID uuid.UUID, expectedVersion int) (*domain.FinalizeResult, error) {
	bid, err := s.repo.GetByID(ctx, bidID)
	if err != nil {
		return nil, err
	}

	release, err := s.locker.Acquire(ctx, bid.EventID, bid.Service)
	if err != nil {
		return nil, fmt.Errorf("acquire scope lock: %w", err)
	}
	defer release()

	// Re-read under the lock so the guard never acts on a stale snapshot.
	bid, err = s.repo.GetByID(ctx, bidID)
	if err != nil {
		return nil, err
	}

	siblings, err := s.siblingsOf(ctx, bid)
	if err != nil {
		return nil, err
	}

	decision := domain.EvaluateTransitions(bid, siblings)
	if !decision.Can(domain.ActionFinalize) {
		return nil, decision.Reject(domain.ActionFinalize)
	}

	if bid.Version != expectedVersion {
		return nil, &domain.ConcurrencyConflictError{ID: bidID, ExpectedVersion: expectedVersion}
	}

	result, err := s.repo.FinalizeCascade(ctx, bidID, expectedVersion)
	if err != nil {
		return nil, err
	}

	s.invalidateEventCache(ctx, bid.EventID)

	s.notify(ctx, *result.Finalized)
	for _, closed := range result.Closed {
		s.notify(ctx, closed)
	}

	s.logger.Info().
		Str("bid_id", bidID.String()).
		Str("event_id", bid.EventID.String()).
		Str("service", bid.Service).
		Int("closed", len(result.Closed)).
		Msg("bid finalized")

	return result, nil
}

// Decline marks the bid declined. Siblings are unaffected.
func (s *BidService) Decline(ctx context.Context, bidID uuid.UUID, expectedVersion int) (*domain.Bid, error) {
	bid, err := s.repo.GetByID(ctx, bidID)
	if err != nil {
		return nil, err
	}

	siblings, err := s.siblingsOf(ctx, bid)
	if err != nil {
		return nil, err
	}

	decision := domain.EvaluateTransitions(bid, siblings)
	if !decision.Can(domain.ActionDecline) {
		return nil, decision.Reject(domain.ActionDecline)
	}

	if bid.Version != expectedVersion {
		return nil, &domain.ConcurrencyConflictError{ID: bidID, ExpectedVersion: expectedVersion}
	}

	bid.Status = domain.BidDeclined

	updated, err := s.repo.Update(ctx, bid, expectedVersion)
	if err != nil {
		return nil, err
	}

	s.invalidateEventCache(ctx, bid.EventID)
	s.notify(ctx, *updated)

	s.logger.Info().
		Str("bid_id", bidID.String()).
		Msg("bid declined")

	return updated, nil
}

func (s *BidService) siblingsOf(ctx context.Context, bid *domain.Bid) ([]domain.Bid, error) {
	all, err := s.repo.ListByService(ctx, bid.EventID, bid.Service)
	if err != nil {
		return nil, err
	}

	siblings := make([]domain.Bid, 0, len(all))
	for _, other := range all {
		if other.ID != bid.ID {
			siblings = append(siblings, other)
		}
	}
	return siblings, nil
}

func (s *BidService) invalidateEventCache(ctx context.Context, eventID uuid.UUID) {
	if s.redisClient == nil {
		return
	}

	cacheKey := fmt.Sprintf("bids:%s", eventID.String())
	if err := s.redisClient.Del(ctx, cacheKey).Err(); err != nil {
		s.logger.Warn().Err(err).Str("key", cacheKey).Msg("cache invalidation failed")
	}
}

func (s *BidService) notify(ctx context.Context, bid domain.Bid) {
	if s.notifier == nil {
		return
	}
	s.notifier.BidTransitioned(ctx, bid)
}
