package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/planora/bidboard/internal/core/domain"
)

const bidColumns = `id, event_id, vendor_id, vendor_name, vendor_rating, service,
	offered_price, original_price, package_name, inclusions, timeline,
	submitted_at, status, negotiation_count, version`

// BidRepository is the durable bid store. The (event_id, service) composite
// index backs sibling lookups and defines the finalize transaction scope.
type BidRepository struct {
	db *sql.DB
}

func NewBidRepository(db *sql.DB) *BidRepository {
	return &BidRepository{db: db}
}

func (r *BidRepository) Create(ctx context.Context, bid *domain.Bid) error {
	query := `
	INSERT INTO bids (` + bidColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	var original decimal.NullDecimal
	if bid.OriginalPrice != nil {
		original = decimal.NullDecimal{Decimal: *bid.OriginalPrice, Valid: true}
	}

	_, err := r.db.ExecContext(ctx, query,
		bid.ID,
		bid.EventID,
		bid.VendorID,
		bid.VendorName,
		bid.VendorRating,
		bid.Service,
		bid.OfferedPrice,
		original,
		bid.PackageName,
		pq.Array(bid.Inclusions),
		bid.Timeline,
		bid.SubmittedAt,
		bid.Status,
		bid.NegotiationCount,
		bid.Version,
	)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return domain.ErrDuplicateID
	}

	return err
}

func (r *BidRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Bid, error) {
	query := `SELECT ` + bidColumns + ` FROM bids WHERE id = $1`

	bid, err := scanBid(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &domain.NotFoundError{ID: id}
		}
		return nil, err
	}

	return bid, nil
}

func (r *BidRepository) ListByService(ctx context.Context, eventID uuid.UUID, service string) ([]domain.Bid, error) {
	query := `
	SELECT ` + bidColumns + `
	FROM bids
	WHERE event_id = $1 AND service = $2
	ORDER BY submitted_at, id
	`

	rows, err := r.db.QueryContext(ctx, query, eventID, service)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectBids(rows)
}

func (r *BidRepository) ListByEvent(ctx context.Context, eventID uuid.UUID) ([]domain.Bid, error) {
	query := `
	SELECT ` + bidColumns + `
	FROM bids
	WHERE event_id = $1
	ORDER BY submitted_at, id
	`

	rows, err := r.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectBids(rows)
}

// Update persists the mutable fields if the stored version still matches
// expectedVersion. Zero rows affected means either the bid is gone or someone
// else wrote first; a follow-up read disambiguates the two.
func (r *BidRepository) Update(ctx context.Context, bid *domain.Bid, expectedVersion int) (*domain.Bid, error) {
	query := `
	UPDATE bids
	SET offered_price = $1,
		original_price = $2,
		status = $3,
		negotiation_count = $4,
		version = version + 1
	WHERE id = $5 AND version = $6
	RETURNING ` + bidColumns

	var original decimal.NullDecimal
	if bid.OriginalPrice != nil {
		original = decimal.NullDecimal{Decimal: *bid.OriginalPrice, Valid: true}
	}

	updated, err := scanBid(r.db.QueryRowContext(ctx, query,
		bid.OfferedPrice,
		original,
		bid.Status,
		bid.NegotiationCount,
		bid.ID,
		expectedVersion,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, r.versionConflict(ctx, bid.ID, expectedVersion)
		}
		return nil, err
	}

	return updated, nil
}

// FinalizeCascade finalizes the target and closes every open sibling in the
// same (event, service) scope within one transaction.
func (r *BidRepository) FinalizeCascade(ctx context.Context, bidID uuid.UUID, expectedVersion int) (*domain.FinalizeResult, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	finalizeQuery := `
	UPDATE bids
	SET status = $1, version = version + 1
	WHERE id = $2 AND version = $3
	RETURNING ` + bidColumns

	finalized, err := scanBid(tx.QueryRowContext(ctx, finalizeQuery, domain.BidFinalized, bidID, expectedVersion))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, r.versionConflict(ctx, bidID, expectedVersion)
		}
		return nil, err
	}

	closeQuery := `
	UPDATE bids
	SET status = $1, version = version + 1
	WHERE event_id = $2 AND service = $3 AND id <> $4 AND status = ANY($5)
	RETURNING ` + bidColumns

	openStatuses := pq.Array([]string{string(domain.BidNew), string(domain.BidUnderNegotiation)})
	rows, err := tx.QueryContext(ctx, closeQuery, domain.BidClosed, finalized.EventID, finalized.Service, bidID, openStatuses)
	if err != nil {
		return nil, err
	}

	closed, err := collectBids(rows)
	rows.Close()
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &domain.FinalizeResult{Finalized: finalized, Closed: closed}, nil
}

func (r *BidRepository) versionConflict(ctx context.Context, id uuid.UUID, expectedVersion int) error {
	var current int
	err := r.db.QueryRowContext(ctx, `SELECT version FROM bids WHERE id = $1`, id).Scan(&current)
	if errors.Is(err, sql.ErrNoRows) {
		return &domain.NotFoundError{ID: id}
	}
	if err != nil {
		return err
	}
	return &domain.ConcurrencyConflictError{ID: id, ExpectedVersion: expectedVersion}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBid(row rowScanner) (*domain.Bid, error) {
	var bid domain.Bid
	var original decimal.NullDecimal

	err := row.Scan(
		&bid.ID,
		&bid.EventID,
		&bid.VendorID,
		&bid.VendorName,
		&bid.VendorRating,
		&bid.Service,
		&bid.OfferedPrice,
		&original,
		&bid.PackageName,
		pq.Array(&bid.Inclusions),
		&bid.Timeline,
		&bid.SubmittedAt,
		&bid.Status,
		&bid.NegotiationCount,
		&bid.Version,
	)
	if err != nil {
		return nil, err
	}

	if original.Valid {
		bid.OriginalPrice = &original.Decimal
	}

	return &bid, nil
}

func collectBids(rows *sql.Rows) ([]domain.Bid, error) {
	var bids []domain.Bid
	for rows.Next() {
		bid, err := scanBid(rows)
		if err != nil {
			return nil, err
		}
		bids = append(bids, *bid)
	}
	return bids, rows.Err()
}
