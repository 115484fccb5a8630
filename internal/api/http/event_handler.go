package http

import (
	"net/http"
	"strconv"

	"rentledger/internal/service"
)

type EventHandler struct {
	eventSvc service.EventService
}

func NewEventHandler(eventSvc service.EventService) *EventHandler {
	return &EventHandler{eventSvc: eventSvc}
}

// List streams the audit trail in insertion order. after_id resumes a
// previous read; rental_id narrows the trail to a single rental.
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	if raw := r.URL.Query().Get("rental_id"); raw != "" {
		rentalID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || rentalID <= 0 {
			writeErrorMessage(w, http.StatusBadRequest, "invalid rental id")
			return
		}
		events, err := h.eventSvc.ListRentalEvents(r.Context(), rentalID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"events": events})
		return
	}

	afterID, _ := strconv.ParseInt(r.URL.Query().Get("after_id"), 10, 64)
	limit, _ := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64)

	events, err := h.eventSvc.ListEvents(r.Context(), afterID, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"events": events})
}
