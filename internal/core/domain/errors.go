package domain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Reason identifies why a transition is not permitted. Reasons are first-class
// data carried on errors so callers can explain a disabled action without
// parsing error text.
type Reason string

const (
	ReasonServiceAlreadyFinalized  Reason = "ServiceAlreadyFinalized"
	ReasonAlreadyFinalized         Reason = "AlreadyFinalized"
	ReasonBidDeclined              Reason = "BidDeclined"
	ReasonCompetingVendorFinalized Reason = "CompetingVendorFinalized"
	ReasonVendorFinalizedLocked    Reason = "VendorFinalizedLocked"
	ReasonVersionConflict          Reason = "VersionConflict"
)

// ErrDuplicateID is returned by the store when a bid id already exists.
var ErrDuplicateID = errors.New("bid id already exists")

type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Msg)
}

// StateConflictError reports a guard rejection for a requested action.
type StateConflictError struct {
	Action Action
	Reason Reason
}

func (e *StateConflictError) Error() string {
	return fmt.Sprintf("%s not permitted: %s", e.Action, e.Reason)
}

// ConcurrencyConflictError reports a stale expected version. The caller must
// re-read the bid and retry; writes are never silently merged.
type ConcurrencyConflictError struct {
	ID              uuid.UUID
	ExpectedVersion int
}

func (e *ConcurrencyConflictError) Error() string {
	return fmt.Sprintf("bid %s: stale version %d", e.ID, e.ExpectedVersion)
}

type NotFoundError struct {
	ID uuid.UUID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("bid %s not found", e.ID)
}
