package notifier

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/planora/bidboard/internal/core/domain"
)

// LogNotifier emits bid transition events as structured log lines. It stands
// in for the external notification dispatcher, which consumes the same
// fire-and-forget contract.
type LogNotifier struct {
	logger zerolog.Logger
}

func NewLogNotifier(logger zerolog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) BidTransitioned(_ context.Context, bid domain.Bid) {
	n.logger.Info().
		Str("bid_id", bid.ID.String()).
		Str("event_id", bid.EventID.String()).
		Str("service", bid.Service).
		Str("vendor", bid.VendorName).
		Str("status", string(bid.Status)).
		Msg("bid transition")
}
