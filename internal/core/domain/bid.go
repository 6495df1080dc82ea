package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BidStatus string

const (
	BidNew              BidStatus = "new"
	BidUnderNegotiation BidStatus = "under-negotiation"
	BidFinalized        BidStatus = "finalized"
	BidDeclined         BidStatus = "declined"
	BidClosed           BidStatus = "closed"
)

// Bid is a vendor's priced offer for one service category of one event.
// OriginalPrice is nil until the first accepted negotiation and immutable
// afterwards. Version backs optimistic concurrency: it starts at 1 and is
// bumped by the store on every successful write.
type Bid struct {
	ID               uuid.UUID        `json:"id"`
	EventID          uuid.UUID        `json:"eventId"`
	VendorID         uuid.UUID        `json:"vendorId"`
	VendorName       string           `json:"vendorName"`
	VendorRating     float64          `json:"vendorRating"`
	Service          string           `json:"service"`
	OfferedPrice     decimal.Decimal  `json:"offeredPrice"`
	OriginalPrice    *decimal.Decimal `json:"originalPrice,omitempty"`
	PackageName      string           `json:"packageName"`
	Inclusions       []string         `json:"inclusions"`
	Timeline         string           `json:"timeline"`
	SubmittedAt      time.Time        `json:"submittedAt"`
	Status           BidStatus        `json:"status"`
	NegotiationCount int              `json:"negotiationCount"`
	Version          int              `json:"version"`
}

// IsTerminal reports whether no further transitions are permitted.
func (b *Bid) IsTerminal() bool {
	return b.Status == BidFinalized || b.Status == BidDeclined || b.Status == BidClosed
}

func (b *Bid) IsOpen() bool {
	return b.Status == BidNew || b.Status == BidUnderNegotiation
}

// FinalizeResult is the outcome of a finalize cascade: the winning bid and
// every competing sibling that was closed in the same transaction.
type FinalizeResult struct {
	Finalized *Bid  `json:"finalized"`
	Closed    []Bid `json:"closed"`
}
