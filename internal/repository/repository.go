package repository

import (
	"context"

	"rentledger/internal/domain"
)

type AssetRepository interface {
	Create(ctx context.Context, asset *domain.Asset) error
	GetByID(ctx context.Context, id int64) (*domain.Asset, error)
	// GetByIDForUpdate locks the asset row for the remainder of the
	// enclosing transaction. The availability flag on the locked row is
	// the mutual-exclusion gate for concurrent rental creation.
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Asset, error)
	Update(ctx context.Context, asset *domain.Asset) error
	ListAvailable(ctx context.Context, page, pageSize int64) ([]domain.Asset, int64, error)
	ListByOwner(ctx context.Context, ownerID int64, page, pageSize int64) ([]domain.Asset, int64, error)
}

type RentalRepository interface {
	Create(ctx context.Context, rental *domain.Rental) error
	GetByID(ctx context.Context, id int64) (*domain.Rental, error)
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Rental, error)
	// GetActiveByAsset resolves the asset's single PENDING or ACTIVE
	// rental, locking it. Returns domain.ErrRentalNotFound if none.
	GetActiveByAsset(ctx context.Context, assetID int64) (*domain.Rental, error)
	Update(ctx context.Context, rental *domain.Rental) error
	ListByBorrower(ctx context.Context, borrowerID int64, status string, page, pageSize int64) ([]domain.Rental, int64, error)
	ListByOwner(ctx context.Context, ownerID int64, status string, page, pageSize int64) ([]domain.Rental, int64, error)
	// ListOverdue returns ACTIVE rentals whose end time has passed.
	ListOverdue(ctx context.Context, now int64) ([]domain.Rental, error)
}

type LedgerRepository interface {
	CreateAccount(ctx context.Context, account *domain.Account) error
	GetAccount(ctx context.Context, partyID int64) (*domain.Account, error)
	GetAccountForUpdate(ctx context.Context, partyID int64) (*domain.Account, error)
	UpdateAccount(ctx context.Context, account *domain.Account) error
	CreateEntry(ctx context.Context, entry *domain.LedgerEntry) error
	ListEntries(ctx context.Context, partyID int64, page, pageSize int64) ([]domain.LedgerEntry, int64, error)
}

type ReputationRepository interface {
	Get(ctx context.Context, partyID int64) (*domain.Reputation, error)
	// Apply upserts the party's record, adding scoreDelta and, when
	// completed is true, incrementing the completed-rental counter.
	Apply(ctx context.Context, partyID int64, scoreDelta int64, completed bool) error
}

type EventRepository interface {
	Append(ctx context.Context, event *domain.Event) error
	List(ctx context.Context, afterID int64, limit int64) ([]domain.Event, error)
	ListByRental(ctx context.Context, rentalID int64) ([]domain.Event, error)
}

// Store bundles the repositories and the transaction boundary. WithinTx
// runs fn against a transaction-scoped Store; fn either fully commits or
// fully aborts, so no operation ever observes a partial effect.
type Store interface {
	Assets() AssetRepository
	Rentals() RentalRepository
	Ledger() LedgerRepository
	Reputation() ReputationRepository
	Events() EventRepository
	WithinTx(ctx context.Context, fn func(Store) error) error
}
