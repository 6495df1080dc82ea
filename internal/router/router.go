package router

import (
	"net/http"

	"github.com/planora/bidboard/internal/adapter/handler"
)

func InitRoutes(bidHandler *handler.BidHandler) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/ping", handler.Ping)

	mux.HandleFunc("POST /api/bids", bidHandler.SubmitBid)
	mux.HandleFunc("GET /api/bids/{bidId}", bidHandler.GetBid)
	mux.HandleFunc("POST /api/bids/{bidId}/negotiate", bidHandler.NegotiateBid)
	mux.HandleFunc("POST /api/bids/{bidId}/finalize", bidHandler.FinalizeBid)
	mux.HandleFunc("POST /api/bids/{bidId}/decline", bidHandler.DeclineBid)

	mux.HandleFunc("GET /api/events/{eventId}/bids", bidHandler.ListEventBids)

	return mux
}
