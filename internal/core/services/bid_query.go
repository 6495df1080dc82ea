package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/planora/bidboard/internal/core/domain"
	"github.com/planora/bidboard/internal/core/ports"
)

// StatusAll and ServiceAll disable the corresponding equality filter.
const (
	StatusAll  = "all"
	ServiceAll = "all"
)

// Filter holds the query predicates; they combine with logical AND.
// Zero values mean "no constraint" (price range defaults to [0, +inf)).
type Filter struct {
	Search   string
	Status   string
	Service  string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
}

// ServiceGroup is one service category's surviving bids, in store order.
type ServiceGroup struct {
	Service string       `json:"service"`
	Bids    []domain.Bid `json:"bids"`
}

// BidQuery is the read-only projection over the store: search, status and
// price-range filtering with per-service grouping. The unfiltered per-event
// list is cached in Redis and invalidated by the write side.
type BidQuery struct {
	repo        ports.BidRepository
	redisClient *redis.Client
	cacheTTL    time.Duration
	logger      zerolog.Logger
}

func NewBidQuery(repo ports.BidRepository, redisClient *redis.Client, cacheTTL time.Duration, logger zerolog.Logger) *BidQuery {
	return &BidQuery{
		repo:        repo,
		redisClient: redisClient,
		cacheTTL:    cacheTTL,
		logger:      logger,
	}
}

// List returns the event's bids that survive every filter, grouped by service
// in first-seen store order. Groups with no surviving bids are omitted.
func (q *BidQuery) List(ctx context.Context, eventID uuid.UUID, f Filter) ([]ServiceGroup, error) {
	bids, err := q.loadEventBids(ctx, eventID)
	if err != nil {
		return nil, err
	}

	return GroupByService(bids, FilterBids(bids, f)), nil
}

func (q *BidQuery) loadEventBids(ctx context.Context, eventID uuid.UUID) ([]domain.Bid, error) {
	cacheKey := fmt.Sprintf("bids:%s", eventID.String())

	if q.redisClient != nil {
		cached, err := q.redisClient.Get(ctx, cacheKey).Result()
		if err == nil {
			var bids []domain.Bid
			if err := json.Unmarshal([]byte(cached), &bids); err == nil {
				return bids, nil
			}
			q.logger.Warn().Str("key", cacheKey).Msg("discarding unreadable cache entry")
		}
	}

	bids, err := q.repo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if q.redisClient != nil {
		if data, err := json.Marshal(bids); err == nil {
			if err := q.redisClient.Set(ctx, cacheKey, data, q.cacheTTL).Err(); err != nil {
				q.logger.Warn().Err(err).Str("key", cacheKey).Msg("cache write failed")
			}
		}
	}

	return bids, nil
}

// FilterBids applies the AND of all predicates in f, preserving input order.
func FilterBids(bids []domain.Bid, f Filter) []domain.Bid {
	var out []domain.Bid
	for _, bid := range bids {
		if matches(bid, f) {
			out = append(out, bid)
		}
	}
	return out
}

func matches(bid domain.Bid, f Filter) bool {
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(bid.VendorName), needle) &&
			!strings.Contains(strings.ToLower(bid.PackageName), needle) {
			return false
		}
	}

	if f.Status != "" && f.Status != StatusAll && string(bid.Status) != f.Status {
		return false
	}

	if f.Service != "" && f.Service != ServiceAll && bid.Service != f.Service {
		return false
	}

	if f.MinPrice != nil && bid.OfferedPrice.LessThan(*f.MinPrice) {
		return false
	}

	if f.MaxPrice != nil && bid.OfferedPrice.GreaterThan(*f.MaxPrice) {
		return false
	}

	return true
}

// GroupByService buckets the filtered bids by service category. Group order
// comes from the first occurrence of each service in the store-ordered all
// slice, so filtering a service's earliest bid never reorders the groups.
// Services with no surviving bids are omitted.
func GroupByService(all, filtered []domain.Bid) []ServiceGroup {
	byService := make(map[string][]domain.Bid)
	for _, bid := range filtered {
		byService[bid.Service] = append(byService[bid.Service], bid)
	}

	var groups []ServiceGroup
	seen := make(map[string]bool)
	for _, bid := range all {
		if seen[bid.Service] {
			continue
		}
		seen[bid.Service] = true

		if bids, ok := byService[bid.Service]; ok {
			groups = append(groups, ServiceGroup{Service: bid.Service, Bids: bids})
		}
	}

	return groups
}
