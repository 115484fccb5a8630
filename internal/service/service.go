package service

import (
	"context"

	"rentledger/internal/domain"
)

// RentalRef addresses a rental either directly by id or through the
// asset it holds; exactly one field must be set. Both forms resolve to
// the same pending-or-active rental.
type RentalRef struct {
	RentalID int64
	AssetID  int64
}

type CatalogService interface {
	RegisterAsset(ctx context.Context, ownerID int64, name, description string, feePerUnitCents, bondCents int64) (*domain.Asset, error)
	GetAsset(ctx context.Context, assetID int64) (*domain.Asset, error)
	UpdateAsset(ctx context.Context, callerID, assetID int64, name, description string, feePerUnitCents, bondCents int64) (*domain.Asset, error)
	SetAvailability(ctx context.Context, callerID, assetID int64, available bool) (*domain.Asset, error)
	ListAvailableAssets(ctx context.Context, page, pageSize int64) ([]domain.Asset, int64, error)
	ListAssetsByOwner(ctx context.Context, ownerID, page, pageSize int64) ([]domain.Asset, int64, error)
}

type RentalService interface {
	// CreateRental opens a PENDING rental, locking exactly the asset's
	// safety bond from the borrower's account into escrow.
	CreateRental(ctx context.Context, borrowerID, assetID, durationUnits, suppliedCents int64) (*domain.Rental, error)
	// ConfirmPickup records one side of the pickup handshake; when both
	// participants have confirmed, the rental becomes ACTIVE.
	ConfirmPickup(ctx context.Context, callerID int64, ref RentalRef) (*domain.Rental, error)
	// ConfirmReturn records one side of the return handshake; when both
	// participants have confirmed, the rental settles synchronously.
	ConfirmReturn(ctx context.Context, callerID int64, ref RentalRef) (*domain.Rental, error)
	// CancelRental aborts a PENDING rental and refunds the full bond.
	// Only the borrower may cancel, and never after activation.
	CancelRental(ctx context.Context, callerID, rentalID int64) (*domain.Rental, error)
	// DisputeRental flags an ACTIVE rental for out-of-band arbitration;
	// the bond stays in escrow.
	DisputeRental(ctx context.Context, callerID, rentalID int64) (*domain.Rental, error)
	GetRental(ctx context.Context, callerID, rentalID int64) (*domain.Rental, error)
	ListRentals(ctx context.Context, borrowerID int64, status string, page, pageSize int64) ([]domain.Rental, int64, error)
	ListLendings(ctx context.Context, ownerID int64, status string, page, pageSize int64) ([]domain.Rental, int64, error)
}

type LedgerService interface {
	// Deposit credits a party's spendable balance, opening the account
	// on first use.
	Deposit(ctx context.Context, partyID, amountCents int64) (*domain.Account, error)
	GetAccount(ctx context.Context, partyID int64) (*domain.Account, error)
	ListEntries(ctx context.Context, partyID int64, page, pageSize int64) ([]domain.LedgerEntry, int64, error)
}

type ReputationService interface {
	GetReputation(ctx context.Context, partyID int64) (*domain.Reputation, error)
}

type EventService interface {
	ListEvents(ctx context.Context, afterID, limit int64) ([]domain.Event, error)
	ListRentalEvents(ctx context.Context, rentalID int64) ([]domain.Event, error)
}
