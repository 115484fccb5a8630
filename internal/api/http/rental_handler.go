package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"rentledger/internal/domain"
	"rentledger/internal/service"

	"github.com/gorilla/mux"
)

type RentalHandler struct {
	rentalSvc service.RentalService
}

func NewRentalHandler(rentalSvc service.RentalService) *RentalHandler {
	return &RentalHandler{rentalSvc: rentalSvc}
}

func (h *RentalHandler) Create(w http.ResponseWriter, r *http.Request) {
	callerID, err := PartyIDFromContext(r.Context())
	if err != nil {
		writeErrorMessage(w, http.StatusUnauthorized, err.Error())
		return
	}

	var req struct {
		AssetID       int64 `json:"asset_id"`
		DurationUnits int64 `json:"duration_units"`
		BondCents     int64 `json:"bond_cents"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rental, err := h.rentalSvc.CreateRental(r.Context(), callerID, req.AssetID, req.DurationUnits, req.BondCents)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rental)
}

// ConfirmPickup records the caller's half of the pickup handshake. The
// rental is addressed by id in the path, or by its asset with the
// asset_id query parameter on the collection route.
func (h *RentalHandler) ConfirmPickup(w http.ResponseWriter, r *http.Request) {
	h.confirm(w, r, h.rentalSvc.ConfirmPickup)
}

// ConfirmReturn records the caller's half of the return handshake. The
// second confirmation settles the rental in the same transaction.
func (h *RentalHandler) ConfirmReturn(w http.ResponseWriter, r *http.Request) {
	h.confirm(w, r, h.rentalSvc.ConfirmReturn)
}

type confirmFunc func(ctx context.Context, callerID int64, ref service.RentalRef) (*domain.Rental, error)

func (h *RentalHandler) confirm(w http.ResponseWriter, r *http.Request, op confirmFunc) {
	callerID, err := PartyIDFromContext(r.Context())
	if err != nil {
		writeErrorMessage(w, http.StatusUnauthorized, err.Error())
		return
	}

	ref, err := rentalRef(r)
	if err != nil {
		writeErrorMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	rental, err := op(r.Context(), callerID, ref)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

func (h *RentalHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.simpleAction(w, r, h.rentalSvc.CancelRental)
}

func (h *RentalHandler) Dispute(w http.ResponseWriter, r *http.Request) {
	h.simpleAction(w, r, h.rentalSvc.DisputeRental)
}

func (h *RentalHandler) Get(w http.ResponseWriter, r *http.Request) {
	h.simpleAction(w, r, h.rentalSvc.GetRental)
}

func (h *RentalHandler) simpleAction(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, callerID, rentalID int64) (*domain.Rental, error)) {
	callerID, err := PartyIDFromContext(r.Context())
	if err != nil {
		writeErrorMessage(w, http.StatusUnauthorized, err.Error())
		return
	}
	rentalID, err := pathID(r, "id")
	if err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid rental id")
		return
	}

	rental, err := op(r.Context(), callerID, rentalID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

// List returns the caller's rentals. role=owner lists rentals of assets
// the caller lends out; the default lists rentals the caller borrowed.
func (h *RentalHandler) List(w http.ResponseWriter, r *http.Request) {
	callerID, err := PartyIDFromContext(r.Context())
	if err != nil {
		writeErrorMessage(w, http.StatusUnauthorized, err.Error())
		return
	}
	page, pageSize := pagination(r)
	status := r.URL.Query().Get("status")

	var (
		rentals []domain.Rental
		count   int64
	)
	if r.URL.Query().Get("role") == "owner" {
		rentals, count, err = h.rentalSvc.ListLendings(r.Context(), callerID, status, page, pageSize)
	} else {
		rentals, count, err = h.rentalSvc.ListRentals(r.Context(), callerID, status, page, pageSize)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"rentals": rentals,
		"total":   count,
	})
}

// rentalRef resolves the rental addressed by the request. A rental id in
// the path always wins; the asset_id query form applies only on the
// collection routes, which carry no path id.
func rentalRef(r *http.Request) (service.RentalRef, error) {
	if raw, ok := mux.Vars(r)["id"]; ok && raw != "" {
		rentalID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || rentalID <= 0 {
			return service.RentalRef{}, domain.ErrInvalidArgument
		}
		return service.RentalRef{RentalID: rentalID}, nil
	}
	if raw := r.URL.Query().Get("asset_id"); raw != "" {
		assetID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || assetID <= 0 {
			return service.RentalRef{}, domain.ErrInvalidArgument
		}
		return service.RentalRef{AssetID: assetID}, nil
	}
	return service.RentalRef{}, domain.ErrInvalidArgument
}
