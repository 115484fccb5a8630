package domain

import "time"

// Reputation deltas applied at settlement.
const (
	ReputationOnTimeBorrower = 5
	ReputationLateBorrower   = -10
	ReputationOwnerCompleted = 5
)

// Reputation tracks a party's cumulative score and completed-rental count.
// The score is signed and unbounded; both fields change only at settlement.
type Reputation struct {
	PartyID          int64     `json:"party_id"`
	Score            int64     `json:"score"`
	CompletedRentals int64     `json:"completed_rentals"`
	UpdatedOn        time.Time `json:"updated_on"`
}
