package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"rentledger/internal/domain"
	"rentledger/internal/logger"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		if err := json.NewEncoder(w).Encode(body); err != nil {
			logger.Error("Failed to encode response", "error", err)
		}
	}
}

func writeErrorMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeError maps domain errors onto HTTP status codes. Unknown errors
// are logged and reported as 500 without leaking details.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrAssetNotFound),
		errors.Is(err, domain.ErrRentalNotFound),
		errors.Is(err, domain.ErrAccountNotFound):
		writeErrorMessage(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrNotOwner),
		errors.Is(err, domain.ErrNotParticipant),
		errors.Is(err, domain.ErrNotBorrower):
		writeErrorMessage(w, http.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrAssetUnavailable),
		errors.Is(err, domain.ErrAssetBusy),
		errors.Is(err, domain.ErrRentalNotPending),
		errors.Is(err, domain.ErrRentalNotActive),
		errors.Is(err, domain.ErrAlreadyConfirmed),
		errors.Is(err, domain.ErrAccountFrozen),
		errors.Is(err, domain.ErrInvalidTransition):
		writeErrorMessage(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrSelfRental),
		errors.Is(err, domain.ErrInvalidDuration),
		errors.Is(err, domain.ErrBondMismatch),
		errors.Is(err, domain.ErrInsufficientFunds),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrAmountOverflow),
		errors.Is(err, domain.ErrInvalidArgument):
		writeErrorMessage(w, http.StatusUnprocessableEntity, err.Error())
	default:
		logger.Error("Internal error handling request", "error", err)
		writeErrorMessage(w, http.StatusInternalServerError, "internal server error")
	}
}
