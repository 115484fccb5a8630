package domain

import "time"

type RentalStatus string

const (
	RentalStatusPending   RentalStatus = "PENDING"
	RentalStatusActive    RentalStatus = "ACTIVE"
	RentalStatusCompleted RentalStatus = "COMPLETED"
	RentalStatusDisputed  RentalStatus = "DISPUTED"
	RentalStatusCancelled RentalStatus = "CANCELLED"
)

type RentalAction string

const (
	RentalActionActivate RentalAction = "ACTIVATE"
	RentalActionComplete RentalAction = "COMPLETE"
	RentalActionCancel   RentalAction = "CANCEL"
	RentalActionDispute  RentalAction = "DISPUTE"
)

// rentalTransitions is the single source of truth for lifecycle legality.
// COMPLETED, DISPUTED and CANCELLED have no outgoing edges.
var rentalTransitions = map[RentalStatus]map[RentalAction]RentalStatus{
	RentalStatusPending: {
		RentalActionActivate: RentalStatusActive,
		RentalActionCancel:   RentalStatusCancelled,
	},
	RentalStatusActive: {
		RentalActionComplete: RentalStatusCompleted,
		RentalActionDispute:  RentalStatusDisputed,
	},
}

// NextRentalStatus resolves the transition table for (current, action).
// The error identifies which precondition failed: actions that require a
// pending rental report ErrRentalNotPending, actions that require an active
// rental report ErrRentalNotActive.
func NextRentalStatus(current RentalStatus, action RentalAction) (RentalStatus, error) {
	if next, ok := rentalTransitions[current][action]; ok {
		return next, nil
	}
	switch action {
	case RentalActionActivate, RentalActionCancel:
		return "", ErrRentalNotPending
	case RentalActionComplete, RentalActionDispute:
		return "", ErrRentalNotActive
	}
	return "", ErrInvalidTransition
}

// Rental is one custody agreement between an asset owner and a borrower.
// Fee and bond are snapshots taken from the asset at creation time; all
// settlement math uses the snapshots, not live asset prices.
type Rental struct {
	ID              int64 `json:"id"`
	AssetID         int64 `json:"asset_id"`
	BorrowerID      int64 `json:"borrower_id"`
	OwnerID         int64 `json:"owner_id"`
	FeePerUnitCents int64 `json:"fee_per_unit_cents"`
	BondCents       int64 `json:"bond_cents"`
	DurationUnits   int64 `json:"duration_units"`
	// StartTime and ActualReturnTime are unix seconds, zero until the
	// corresponding handshake completes. EndTime is fixed at creation.
	StartTime        int64        `json:"start_time"`
	EndTime          int64        `json:"end_time"`
	ActualReturnTime int64        `json:"actual_return_time"`
	Status           RentalStatus `json:"status"`
	// Confirmation flags live on the rental row, so every new rental
	// starts with a clean handshake state and confirmations can never
	// leak from an earlier rental of the same asset.
	PickupConfirmedOwner    bool `json:"pickup_confirmed_owner"`
	PickupConfirmedBorrower bool `json:"pickup_confirmed_borrower"`
	ReturnConfirmedOwner    bool `json:"return_confirmed_owner"`
	ReturnConfirmedBorrower bool `json:"return_confirmed_borrower"`
	// Settlement outcome, zero until the rental completes.
	ChargeCents int64     `json:"charge_cents"`
	RefundCents int64     `json:"refund_cents"`
	CreatedOn   time.Time `json:"created_on"`
	UpdatedOn   time.Time `json:"updated_on"`
}

// IsParticipant reports whether partyID is the owner or the borrower.
func (r *Rental) IsParticipant(partyID int64) bool {
	return partyID == r.OwnerID || partyID == r.BorrowerID
}

// Terminal reports whether the rental can no longer change state.
func (r *Rental) Terminal() bool {
	return len(rentalTransitions[r.Status]) == 0
}

// PickupConfirmed reports whether partyID already confirmed pickup.
func (r *Rental) PickupConfirmed(partyID int64) bool {
	if partyID == r.OwnerID {
		return r.PickupConfirmedOwner
	}
	return r.PickupConfirmedBorrower
}

// ReturnConfirmed reports whether partyID already confirmed return.
func (r *Rental) ReturnConfirmed(partyID int64) bool {
	if partyID == r.OwnerID {
		return r.ReturnConfirmedOwner
	}
	return r.ReturnConfirmedBorrower
}
