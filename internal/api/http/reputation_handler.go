package http

import (
	"net/http"

	"rentledger/internal/service"
)

type ReputationHandler struct {
	reputationSvc service.ReputationService
}

func NewReputationHandler(reputationSvc service.ReputationService) *ReputationHandler {
	return &ReputationHandler{reputationSvc: reputationSvc}
}

func (h *ReputationHandler) Get(w http.ResponseWriter, r *http.Request) {
	partyID, err := pathID(r, "id")
	if err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid party id")
		return
	}

	rep, err := h.reputationSvc.GetReputation(r.Context(), partyID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}
