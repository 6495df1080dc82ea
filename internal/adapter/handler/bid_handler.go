package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/planora/bidboard/internal/core/domain"
	"github.com/planora/bidboard/internal/core/services"
)

type BidHandler struct {
	svc   *services.BidService
	query *services.BidQuery
}

func NewBidHandler(svc *services.BidService, query *services.BidQuery) *BidHandler {
	return &BidHandler{svc: svc, query: query}
}

type negotiateRequest struct {
	NewPrice        decimal.Decimal `json:"newPrice"`
	ExpectedVersion int             `json:"expectedVersion"`
}

type versionedRequest struct {
	ExpectedVersion int `json:"expectedVersion"`
}

func (h *BidHandler) SubmitBid(w http.ResponseWriter, r *http.Request) {
	var req services.SubmitBidRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorBody(w, http.StatusBadRequest, "", "invalid json body")
		return
	}

	bid, err := h.svc.SubmitBid(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, bid)
}

func (h *BidHandler) GetBid(w http.ResponseWriter, r *http.Request) {
	bidID, ok := parseBidID(w, r)
	if !ok {
		return
	}

	bid, err := h.svc.GetBid(r.Context(), bidID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, bid)
}

func (h *BidHandler) NegotiateBid(w http.ResponseWriter, r *http.Request) {
	bidID, ok := parseBidID(w, r)
	if !ok {
		return
	}

	var req negotiateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorBody(w, http.StatusBadRequest, "", "invalid json body")
		return
	}

	bid, err := h.svc.Negotiate(r.Context(), bidID, req.NewPrice, req.ExpectedVersion)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, bid)
}

func (h *BidHandler) FinalizeBid(w http.ResponseWriter, r *http.Request) {
	bidID, ok := parseBidID(w, r)
	if !ok {
		return
	}

	var req versionedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorBody(w, http.StatusBadRequest, "", "invalid json body")
		return
	}

	result, err := h.svc.Finalize(r.Context(), bidID, req.ExpectedVersion)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *BidHandler) DeclineBid(w http.ResponseWriter, r *http.Request) {
	bidID, ok := parseBidID(w, r)
	if !ok {
		return
	}

	var req versionedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorBody(w, http.StatusBadRequest, "", "invalid json body")
		return
	}

	bid, err := h.svc.Decline(r.Context(), bidID, req.ExpectedVersion)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, bid)
}

func (h *BidHandler) ListEventBids(w http.ResponseWriter, r *http.Request) {
	eventID, err := uuid.Parse(r.PathValue("eventId"))
	if err != nil {
		writeErrorBody(w, http.StatusBadRequest, "", "invalid event id")
		return
	}

	filter, err := parseFilter(r)
	if err != nil {
		writeError(w, err)
		return
	}

	groups, err := h.query.List(r.Context(), eventID, filter)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"groups": groups})
}

func Ping(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func parseBidID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	bidID, err := uuid.Parse(r.PathValue("bidId"))
	if err != nil {
		writeErrorBody(w, http.StatusBadRequest, "", "invalid bid id")
		return uuid.Nil, false
	}
	return bidID, true
}

func parseFilter(r *http.Request) (services.Filter, error) {
	q := r.URL.Query()
	filter := services.Filter{
		Search:  q.Get("search"),
		Status:  q.Get("status"),
		Service: q.Get("service"),
	}

	if raw := q.Get("minPrice"); raw != "" {
		min, err := decimal.NewFromString(raw)
		if err != nil {
			return filter, &domain.ValidationError{Field: "minPrice", Msg: "must be a number"}
		}
		filter.MinPrice = &min
	}

	if raw := q.Get("maxPrice"); raw != "" {
		max, err := decimal.NewFromString(raw)
		if err != nil {
			return filter, &domain.ValidationError{Field: "maxPrice", Msg: "must be a number"}
		}
		filter.MaxPrice = &max
	}

	return filter, nil
}

func writeError(w http.ResponseWriter, err error) {
	var validationErr *domain.ValidationError
	var notFoundErr *domain.NotFoundError
	var stateErr *domain.StateConflictError
	var versionErr *domain.ConcurrencyConflictError

	switch {
	case errors.As(err, &validationErr):
		writeErrorBody(w, http.StatusBadRequest, "", validationErr.Error())
	case errors.As(err, &notFoundErr):
		writeErrorBody(w, http.StatusNotFound, "", notFoundErr.Error())
	case errors.As(err, &stateErr):
		writeErrorBody(w, http.StatusConflict, string(stateErr.Reason), stateErr.Error())
	case errors.As(err, &versionErr):
		writeErrorBody(w, http.StatusConflict, string(domain.ReasonVersionConflict), versionErr.Error())
	default:
		writeErrorBody(w, http.StatusInternalServerError, "", "internal server error")
	}
}

func writeErrorBody(w http.ResponseWriter, status int, reason, msg string) {
	body := map[string]string{"error": msg}
	if reason != "" {
		body["reason"] = reason
	}
	writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
