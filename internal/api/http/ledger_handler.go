package http

import (
	"encoding/json"
	"net/http"

	"rentledger/internal/service"
)

type LedgerHandler struct {
	ledgerSvc service.LedgerService
}

func NewLedgerHandler(ledgerSvc service.LedgerService) *LedgerHandler {
	return &LedgerHandler{ledgerSvc: ledgerSvc}
}

func (h *LedgerHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	callerID, err := PartyIDFromContext(r.Context())
	if err != nil {
		writeErrorMessage(w, http.StatusUnauthorized, err.Error())
		return
	}

	var req struct {
		AmountCents int64 `json:"amount_cents"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	account, err := h.ledgerSvc.Deposit(r.Context(), callerID, req.AmountCents)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, account)
}

func (h *LedgerHandler) Balance(w http.ResponseWriter, r *http.Request) {
	callerID, err := PartyIDFromContext(r.Context())
	if err != nil {
		writeErrorMessage(w, http.StatusUnauthorized, err.Error())
		return
	}

	account, err := h.ledgerSvc.GetAccount(r.Context(), callerID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, account)
}

func (h *LedgerHandler) Transactions(w http.ResponseWriter, r *http.Request) {
	callerID, err := PartyIDFromContext(r.Context())
	if err != nil {
		writeErrorMessage(w, http.StatusUnauthorized, err.Error())
		return
	}
	page, pageSize := pagination(r)

	entries, count, err := h.ledgerSvc.ListEntries(r.Context(), callerID, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"entries": entries,
		"total":   count,
	})
}
