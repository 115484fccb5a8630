package domain

import "time"

// Account holds a party's spendable balance and the escrow locked on
// their behalf. A frozen account rejects incoming and outgoing transfers.
type Account struct {
	PartyID           int64     `json:"party_id"`
	BalanceCents      int64     `json:"balance_cents"`
	EscrowLockedCents int64     `json:"escrow_locked_cents"`
	Frozen            bool      `json:"frozen"`
	CreatedOn         time.Time `json:"created_on"`
	UpdatedOn         time.Time `json:"updated_on"`
}

// CanReceive reports whether the account accepts incoming funds.
func (a *Account) CanReceive() bool {
	return !a.Frozen
}

type EntryType string

const (
	EntryTypeDeposit      EntryType = "DEPOSIT"
	EntryTypeBondLock     EntryType = "BOND_LOCK"
	EntryTypeBondRelease  EntryType = "BOND_RELEASE"
	EntryTypeBondRefund   EntryType = "BOND_REFUND"
	EntryTypeRentalCharge EntryType = "RENTAL_CHARGE"
)

// LedgerEntry records one fund movement. Amount is positive for credits
// to the party's spendable balance and negative for debits.
type LedgerEntry struct {
	ID          int64     `json:"id"`
	PartyID     int64     `json:"party_id"`
	AmountCents int64     `json:"amount_cents"`
	Type        EntryType `json:"type"`
	RentalID    *int64    `json:"rental_id,omitempty"`
	Description string    `json:"description"`
	CreatedOn   time.Time `json:"created_on"`
}
