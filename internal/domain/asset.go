package domain

import "time"

type AssetStatus string

const (
	AssetStatusAvailable   AssetStatus = "AVAILABLE"
	AssetStatusUnavailable AssetStatus = "UNAVAILABLE" // soft-disabled by the owner
	AssetStatusRented      AssetStatus = "RENTED"      // held by a pending or active rental
)

// Asset is a physical item listed for rental. Assets are never deleted;
// owners soft-disable them by setting the status to UNAVAILABLE.
type Asset struct {
	ID              int64       `json:"id"`
	OwnerID         int64       `json:"owner_id"`
	Name            string      `json:"name"`
	Description     string      `json:"description"`
	FeePerUnitCents int64       `json:"fee_per_unit_cents"`
	BondCents       int64       `json:"bond_cents"`
	Status          AssetStatus `json:"status"`
	// ActiveRentalID is the rental currently holding this asset
	// (status PENDING or ACTIVE). Zero when the asset is free.
	ActiveRentalID int64     `json:"active_rental_id"`
	CreatedOn      time.Time `json:"created_on"`
	UpdatedOn      time.Time `json:"updated_on"`
}

// Available reports whether the asset can accept a new rental request.
func (a *Asset) Available() bool {
	return a.Status == AssetStatusAvailable
}
