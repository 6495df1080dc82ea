package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/planora/bidboard/internal/core/domain"
	"github.com/planora/bidboard/internal/core/ports/mocks"
	"github.com/planora/bidboard/internal/core/services"
)

func newOpenBid(eventID uuid.UUID, service string, price int64) *domain.Bid {
	return &domain.Bid{
		ID:           uuid.New(),
		EventID:      eventID,
		VendorID:     uuid.New(),
		VendorName:   "Aurora Lens Studio",
		Service:      service,
		OfferedPrice: decimal.NewFromInt(price),
		PackageName:  "Full Day Coverage",
		SubmittedAt:  time.Now().UTC(),
		Status:       domain.BidNew,
		Version:      1,
	}
}

func TestSubmitBid_Success(t *testing.T) {
	mockRepo := mocks.NewBidRepository(t)
	mockLocker := mocks.NewScopeLocker(t)
	db, mockRedis := redismock.NewClientMock()

	service := services.NewBidService(mockRepo, mockLocker, nil, db, zerolog.Nop())

	ctx := context.Background()
	eventID := uuid.New()

	req := services.SubmitBidRequest{
		EventID:      eventID.String(),
		VendorID:     uuid.New().String(),
		VendorName:   "Aurora Lens Studio",
		VendorRating: 4.8,
		Service:      "Photographer",
		OfferedPrice: decimal.NewFromInt(4500),
		PackageName:  "Full Day Coverage",
		Inclusions:   []string{"8 hours", "2 shooters"},
		Timeline:     "4 weeks",
	}

	mockRepo.On("Create", ctx, mock.AnythingOfType("*domain.Bid")).Return(nil)
	mockRedis.ExpectDel(fmt.Sprintf("bids:%s", eventID.String())).SetVal(1)

	bid, err := service.SubmitBid(ctx, req)

	assert.NoError(t, err)
	if assert.NotNil(t, bid) {
		assert.Equal(t, domain.BidNew, bid.Status)
		assert.Equal(t, 0, bid.NegotiationCount)
		assert.Equal(t, 1, bid.Version)
		assert.Nil(t, bid.OriginalPrice)
		assert.False(t, bid.SubmittedAt.IsZero())
	}

	if err := mockRedis.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestSubmitBid_RejectsNonPositivePrice(t *testing.T) {
	mockRepo := mocks.NewBidRepository(t)
	mockLocker := mocks.NewScopeLocker(t)
	db, _ := redismock.NewClientMock()

	service := services.NewBidService(mockRepo, mockLocker, nil, db, zerolog.Nop())

	req := services.SubmitBidRequest{
		EventID:      uuid.New().String(),
		VendorID:     uuid.New().String(),
		VendorName:   "Aurora Lens Studio",
		Service:      "Photographer",
		OfferedPrice: decimal.Zero,
	}

	bid, err := service.SubmitBid(context.Background(), req)

	assert.Nil(t, bid)
	var validationErr *domain.ValidationError
	assert.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "offeredPrice", validationErr.Field)
}

func TestNegotiate_FirstRoundPreservesOriginalPrice(t *testing.T) {
	mockRepo := mocks.NewBidRepository(t)
	mockLocker := mocks.NewScopeLocker(t)
	db, mockRedis := redismock.NewClientMock()

	service := services.NewBidService(mockRepo, mockLocker, nil, db, zerolog.Nop())

	ctx := context.Background()
	eventID := uuid.New()
	bid := newOpenBid(eventID, "Photographer", 4500)

	mockRepo.On("GetByID", ctx, bid.ID).Return(bid, nil)
	mockRepo.On("ListByService", ctx, eventID, "Photographer").Return([]domain.Bid{*bid}, nil)
	mockRepo.On("Update", ctx, mock.AnythingOfType("*domain.Bid"), 1).Return(
		func(_ context.Context, b *domain.Bid, expectedVersion int) *domain.Bid {
			updated := *b
			updated.Version = expectedVersion + 1
			return &updated
		}, nil)
	mockRedis.ExpectDel(fmt.Sprintf("bids:%s", eventID.String())).SetVal(1)

	updated, err := service.Negotiate(ctx, bid.ID, decimal.NewFromInt(4200), 1)

	assert.NoError(t, err)
	if assert.NotNil(t, updated) {
		assert.Equal(t, domain.BidUnderNegotiation, updated.Status)
		assert.Equal(t, 1, updated.NegotiationCount)
		assert.True(t, updated.OfferedPrice.Equal(decimal.NewFromInt(4200)))
		if assert.NotNil(t, updated.OriginalPrice) {
			assert.True(t, updated.OriginalPrice.Equal(decimal.NewFromInt(4500)))
		}
	}

	if err := mockRedis.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestNegotiate_LaterRoundsKeepOriginalPrice(t *testing.T) {
	mockRepo := mocks.NewBidRepository(t)
	mockLocker := mocks.NewScopeLocker(t)
	db, mockRedis := redismock.NewClientMock()

	service := services.NewBidService(mockRepo, mockLocker, nil, db, zerolog.Nop())

	ctx := context.Background()
	eventID := uuid.New()
	bid := newOpenBid(eventID, "Photographer", 4500)
	first := decimal.NewFromInt(4500)
	bid.OriginalPrice = &first
	bid.OfferedPrice = decimal.NewFromInt(4200)
	bid.Status = domain.BidUnderNegotiation
	bid.NegotiationCount = 1
	bid.Version = 2

	mockRepo.On("GetByID", ctx, bid.ID).Return(bid, nil)
	mockRepo.On("ListByService", ctx, eventID, "Photographer").Return([]domain.Bid{*bid}, nil)
	mockRepo.On("Update", ctx, mock.AnythingOfType("*domain.Bid"), 2).Return(
		func(_ context.Context, b *domain.Bid, expectedVersion int) *domain.Bid {
			updated := *b
			updated.Version = expectedVersion + 1
			return &updated
		}, nil)
	mockRedis.ExpectDel(fmt.Sprintf("bids:%s", eventID.String())).SetVal(1)

	updated, err := service.Negotiate(ctx, bid.ID, decimal.NewFromInt(4000), 2)

	assert.NoError(t, err)
	if assert.NotNil(t, updated) {
		assert.Equal(t, 2, updated.NegotiationCount)
		assert.True(t, updated.OfferedPrice.Equal(decimal.NewFromInt(4000)))
		assert.True(t, updated.OriginalPrice.Equal(decimal.NewFromInt(4500)), "original price is write-once")
	}
}

func TestNegotiate_Fail_FinalizedBid(t *testing.T) {
	mockRepo := mocks.NewBidRepository(t)
	mockLocker := mocks.NewScopeLocker(t)
	db, _ := redismock.NewClientMock()

	service := services.NewBidService(mockRepo, mockLocker, nil, db, zerolog.Nop())

	ctx := context.Background()
	eventID := uuid.New()
	bid := newOpenBid(eventID, "Photographer", 4500)
	bid.Status = domain.BidFinalized
	bid.Version = 3

	mockRepo.On("GetByID", ctx, bid.ID).Return(bid, nil)
	mockRepo.On("ListByService", ctx, eventID, "Photographer").Return([]domain.Bid{*bid}, nil)

	updated, err := service.Negotiate(ctx, bid.ID, decimal.NewFromInt(4000), 3)

	assert.Nil(t, updated)
	var stateErr *domain.StateConflictError
	assert.ErrorAs(t, err, &stateErr)
	assert.Equal(t, domain.ReasonVendorFinalizedLocked, stateErr.Reason)
}

func TestNegotiate_Fail_StaleVersion(t *testing.T) {
	mockRepo := mocks.NewBidRepository(t)
	mockLocker := mocks.NewScopeLocker(t)
	db, _ := redismock.NewClientMock()

	service := services.NewBidService(mockRepo, mockLocker, nil, db, zerolog.Nop())

	ctx := context.Background()
	eventID := uuid.New()
	bid := newOpenBid(eventID, "Photographer", 4500)
	bid.Version = 2

	mockRepo.On("GetByID", ctx, bid.ID).Return(bid, nil)
	mockRepo.On("ListByService", ctx, eventID, "Photographer").Return([]domain.Bid{*bid}, nil)

	updated, err := service.Negotiate(ctx, bid.ID, decimal.NewFromInt(4000), 1)

	assert.Nil(t, updated)
	var versionErr *domain.ConcurrencyConflictError
	assert.ErrorAs(t, err, &versionErr)
	assert.Equal(t, 1, versionErr.ExpectedVersion)
}

func TestFinalize_Success_CascadesSiblings(t *testing.T) {
	mockRepo := mocks.NewBidRepository(t)
	mockLocker := mocks.NewScopeLocker(t)
	mockNotifier := mocks.NewNotifier(t)
	db, mockRedis := redismock.NewClientMock()

	service := services.NewBidService(mockRepo, mockLocker, mockNotifier, db, zerolog.Nop())

	ctx := context.Background()
	eventID := uuid.New()

	target := newOpenBid(eventID, "Photographer", 4200)
	target.Status = domain.BidUnderNegotiation
	target.Version = 2
	rival := newOpenBid(eventID, "Photographer", 5000)

	finalized := *target
	finalized.Status = domain.BidFinalized
	finalized.Version = 3
	closedRival := *rival
	closedRival.Status = domain.BidClosed
	closedRival.Version = 2

	released := false
	mockLocker.On("Acquire", ctx, eventID, "Photographer").Return(func() { released = true }, nil)
	mockRepo.On("GetByID", ctx, target.ID).Return(target, nil)
	mockRepo.On("ListByService", ctx, eventID, "Photographer").Return([]domain.Bid{*target, *rival}, nil)
	mockRepo.On("FinalizeCascade", ctx, target.ID, 2).Return(
		&domain.FinalizeResult{Finalized: &finalized, Closed: []domain.Bid{closedRival}}, nil)
	mockNotifier.On("BidTransitioned", ctx, mock.AnythingOfType("domain.Bid")).Return()
	mockRedis.ExpectDel(fmt.Sprintf("bids:%s", eventID.String())).SetVal(1)

	result, err := service.Finalize(ctx, target.ID, 2)

	assert.NoError(t, err)
	if assert.NotNil(t, result) {
		assert.Equal(t, domain.BidFinalized, result.Finalized.Status)
		if assert.Len(t, result.Closed, 1) {
			assert.Equal(t, domain.BidClosed, result.Closed[0].Status)
			assert.Equal(t, rival.ID, result.Closed[0].ID)
		}
	}
	assert.True(t, released, "scope lock must be released")

	mockNotifier.AssertNumberOfCalls(t, "BidTransitioned", 2)

	if err := mockRedis.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestFinalize_Fail_SiblingAlreadyFinalized(t *testing.T) {
	mockRepo := mocks.NewBidRepository(t)
	mockLocker := mocks.NewScopeLocker(t)
	db, _ := redismock.NewClientMock()

	service := services.NewBidService(mockRepo, mockLocker, nil, db, zerolog.Nop())

	ctx := context.Background()
	eventID := uuid.New()

	target := newOpenBid(eventID, "Photographer", 4200)
	winner := newOpenBid(eventID, "Photographer", 5000)
	winner.Status = domain.BidFinalized

	released := false
	mockLocker.On("Acquire", ctx, eventID, "Photographer").Return(func() { released = true }, nil)
	mockRepo.On("GetByID", ctx, target.ID).Return(target, nil)
	mockRepo.On("ListByService", ctx, eventID, "Photographer").Return([]domain.Bid{*target, *winner}, nil)

	result, err := service.Finalize(ctx, target.ID, 1)

	assert.Nil(t, result)
	var stateErr *domain.StateConflictError
	assert.ErrorAs(t, err, &stateErr)
	assert.Equal(t, domain.ReasonServiceAlreadyFinalized, stateErr.Reason)
	assert.True(t, released, "scope lock must be released on rejection")
}

func TestDecline_Success_NoCascade(t *testing.T) {
	mockRepo := mocks.NewBidRepository(t)
	mockLocker := mocks.NewScopeLocker(t)
	mockNotifier := mocks.NewNotifier(t)
	db, mockRedis := redismock.NewClientMock()

	service := services.NewBidService(mockRepo, mockLocker, mockNotifier, db, zerolog.Nop())

	ctx := context.Background()
	eventID := uuid.New()
	bid := newOpenBid(eventID, "DJ", 1200)

	mockRepo.On("GetByID", ctx, bid.ID).Return(bid, nil)
	mockRepo.On("ListByService", ctx, eventID, "DJ").Return([]domain.Bid{*bid}, nil)
	mockRepo.On("Update", ctx, mock.AnythingOfType("*domain.Bid"), 1).Return(
		func(_ context.Context, b *domain.Bid, expectedVersion int) *domain.Bid {
			updated := *b
			updated.Version = expectedVersion + 1
			return &updated
		}, nil)
	mockNotifier.On("BidTransitioned", ctx, mock.AnythingOfType("domain.Bid")).Return()
	mockRedis.ExpectDel(fmt.Sprintf("bids:%s", eventID.String())).SetVal(1)

	updated, err := service.Decline(ctx, bid.ID, 1)

	assert.NoError(t, err)
	if assert.NotNil(t, updated) {
		assert.Equal(t, domain.BidDeclined, updated.Status)
	}
	mockNotifier.AssertNumberOfCalls(t, "BidTransitioned", 1)
}

func TestDecline_Fail_AlreadyDeclined(t *testing.T) {
	mockRepo := mocks.NewBidRepository(t)
	mockLocker := mocks.NewScopeLocker(t)
	db, _ := redismock.NewClientMock()

	service := services.NewBidService(mockRepo, mockLocker, nil, db, zerolog.Nop())

	ctx := context.Background()
	eventID := uuid.New()
	bid := newOpenBid(eventID, "DJ", 1200)
	bid.Status = domain.BidDeclined
	bid.Version = 2

	mockRepo.On("GetByID", ctx, bid.ID).Return(bid, nil)
	mockRepo.On("ListByService", ctx, eventID, "DJ").Return([]domain.Bid{*bid}, nil)

	updated, err := service.Decline(ctx, bid.ID, 2)

	assert.Nil(t, updated)
	var stateErr *domain.StateConflictError
	assert.ErrorAs(t, err, &stateErr)
	assert.Equal(t, domain.ReasonBidDeclined, stateErr.Reason)
}
