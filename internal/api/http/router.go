package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// NewRouter wires all API routes under /api/v1 behind the auth
// middleware.
func NewRouter(
	auth *AuthMiddleware,
	assets *AssetHandler,
	rentals *RentalHandler,
	ledger *LedgerHandler,
	reputation *ReputationHandler,
	events *EventHandler,
) http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(auth.Handler)

	api.HandleFunc("/assets", assets.Register).Methods(http.MethodPost)
	api.HandleFunc("/assets", assets.List).Methods(http.MethodGet)
	api.HandleFunc("/assets/{id:[0-9]+}", assets.Get).Methods(http.MethodGet)
	api.HandleFunc("/assets/{id:[0-9]+}", assets.Update).Methods(http.MethodPatch)
	api.HandleFunc("/assets/{id:[0-9]+}/availability", assets.SetAvailability).Methods(http.MethodPost)

	api.HandleFunc("/rentals", rentals.Create).Methods(http.MethodPost)
	api.HandleFunc("/rentals", rentals.List).Methods(http.MethodGet)
	api.HandleFunc("/rentals/{id:[0-9]+}", rentals.Get).Methods(http.MethodGet)
	api.HandleFunc("/rentals/{id:[0-9]+}/pickup", rentals.ConfirmPickup).Methods(http.MethodPost)
	api.HandleFunc("/rentals/{id:[0-9]+}/return", rentals.ConfirmReturn).Methods(http.MethodPost)
	// Asset-addressed handshake variants for callers that track the
	// asset rather than the rental id.
	api.HandleFunc("/rentals/pickup", rentals.ConfirmPickup).
		Methods(http.MethodPost).Queries("asset_id", "{asset_id:[0-9]+}")
	api.HandleFunc("/rentals/return", rentals.ConfirmReturn).
		Methods(http.MethodPost).Queries("asset_id", "{asset_id:[0-9]+}")
	api.HandleFunc("/rentals/{id:[0-9]+}/cancel", rentals.Cancel).Methods(http.MethodPost)
	api.HandleFunc("/rentals/{id:[0-9]+}/dispute", rentals.Dispute).Methods(http.MethodPost)

	api.HandleFunc("/ledger/deposit", ledger.Deposit).Methods(http.MethodPost)
	api.HandleFunc("/ledger/balance", ledger.Balance).Methods(http.MethodGet)
	api.HandleFunc("/ledger/transactions", ledger.Transactions).Methods(http.MethodGet)

	api.HandleFunc("/reputation/{id:[0-9]+}", reputation.Get).Methods(http.MethodGet)
	api.HandleFunc("/events", events.List).Methods(http.MethodGet)

	return r
}
