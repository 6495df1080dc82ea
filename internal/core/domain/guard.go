package domain

type Action string

const (
	ActionNegotiate Action = "negotiate"
	ActionFinalize  Action = "finalize"
	ActionDecline   Action = "decline"
)

// Actions lists every guarded transition.
var Actions = []Action{ActionNegotiate, ActionFinalize, ActionDecline}

// Decision is the guard's verdict for one bid: the set of currently permitted
// actions and, for each disallowed action, the reason it is blocked.
type Decision struct {
	Allowed map[Action]bool
	Reasons map[Action]Reason
}

func (d Decision) Can(a Action) bool {
	return d.Allowed[a]
}

// Reject returns the guard's reason for a disallowed action as a typed error.
func (d Decision) Reject(a Action) error {
	return &StateConflictError{Action: a, Reason: d.Reasons[a]}
}

// EvaluateTransitions computes which actions are permitted for bid given its
// same-service siblings (all other bids sharing the bid's event and service).
// It never mutates state; the coordinator re-evaluates it immediately before
// applying a transition so decisions are never acted on stale.
func EvaluateTransitions(bid *Bid, siblings []Bid) Decision {
	d := Decision{
		Allowed: make(map[Action]bool, len(Actions)),
		Reasons: make(map[Action]Reason, len(Actions)),
	}

	switch bid.Status {
	case BidFinalized:
		d.Reasons[ActionNegotiate] = ReasonVendorFinalizedLocked
		d.Reasons[ActionFinalize] = ReasonAlreadyFinalized
		d.Reasons[ActionDecline] = ReasonAlreadyFinalized
	case BidDeclined:
		for _, a := range Actions {
			d.Reasons[a] = ReasonBidDeclined
		}
	case BidClosed:
		// A closed bid always lost to a finalized sibling, so a late finalize
		// attempt reports the service-level exclusivity conflict.
		d.Reasons[ActionNegotiate] = ReasonCompetingVendorFinalized
		d.Reasons[ActionDecline] = ReasonCompetingVendorFinalized
		d.Reasons[ActionFinalize] = ReasonServiceAlreadyFinalized
	default:
		d.Allowed[ActionNegotiate] = true
		d.Allowed[ActionDecline] = true
		if siblingFinalized(siblings) {
			d.Reasons[ActionFinalize] = ReasonServiceAlreadyFinalized
		} else {
			d.Allowed[ActionFinalize] = true
		}
	}

	return d
}

func siblingFinalized(siblings []Bid) bool {
	for i := range siblings {
		if siblings[i].Status == BidFinalized {
			return true
		}
	}
	return false
}
