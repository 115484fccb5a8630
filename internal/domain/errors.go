package domain

import "errors"

// Precondition failures. Every mutating operation validates all of these
// before touching state, so a returned error always means nothing changed.
var (
	ErrAssetNotFound    = errors.New("asset not found")
	ErrAssetUnavailable = errors.New("asset is not available")
	ErrAssetBusy        = errors.New("asset has a pending or active rental")
	ErrSelfRental       = errors.New("owner cannot rent their own asset")
	ErrNotOwner         = errors.New("caller is not the asset owner")
	ErrInvalidDuration  = errors.New("rental duration must be positive")
	ErrBondMismatch     = errors.New("supplied value does not match the safety bond")

	ErrRentalNotFound    = errors.New("rental not found")
	ErrRentalNotPending  = errors.New("rental is not pending")
	ErrRentalNotActive   = errors.New("rental is not active")
	ErrNotParticipant    = errors.New("caller is not a rental participant")
	ErrNotBorrower       = errors.New("caller is not the borrower")
	ErrAlreadyConfirmed  = errors.New("caller has already confirmed")
	ErrInvalidTransition = errors.New("invalid rental state transition")

	ErrAccountNotFound   = errors.New("account not found")
	ErrAccountFrozen     = errors.New("account cannot accept funds")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrEscrowUnderflow   = errors.New("escrow balance below released bond")

	// ErrAmountOverflow is fatal for the triggering operation: money math
	// must fail rather than wrap.
	ErrAmountOverflow = errors.New("amount arithmetic overflow")

	ErrInvalidAmount   = errors.New("amount must be positive")
	ErrInvalidArgument = errors.New("invalid argument")
)
