package service

import (
	"context"
	"fmt"

	"rentledger/internal/clock"
	"rentledger/internal/domain"
	"rentledger/internal/repository"
	"rentledger/internal/utils"
)

type rentalService struct {
	store repository.Store
	clock clock.Clock
	// Seconds per agreed rental duration unit and per late-penalty unit.
	durationUnitSeconds int64
	penaltyUnitSeconds  int64
}

func NewRentalService(store repository.Store, clk clock.Clock, durationUnitSeconds, penaltyUnitSeconds int64) RentalService {
	return &rentalService{
		store:               store,
		clock:               clk,
		durationUnitSeconds: durationUnitSeconds,
		penaltyUnitSeconds:  penaltyUnitSeconds,
	}
}

func (s *rentalService) CreateRental(ctx context.Context, borrowerID, assetID, durationUnits, suppliedCents int64) (*domain.Rental, error) {
	if durationUnits <= 0 {
		return nil, domain.ErrInvalidDuration
	}
	now := s.clock.Now().Unix()

	var rental *domain.Rental
	err := s.store.WithinTx(ctx, func(st repository.Store) error {
		// The asset row lock serializes concurrent creation attempts;
		// the first committer flips the availability gate.
		asset, err := st.Assets().GetByIDForUpdate(ctx, assetID)
		if err != nil {
			return err
		}
		if !asset.Available() {
			return domain.ErrAssetUnavailable
		}
		if asset.OwnerID == borrowerID {
			return domain.ErrSelfRental
		}
		if suppliedCents != asset.BondCents {
			return domain.ErrBondMismatch
		}

		span, err := utils.CheckedMul(durationUnits, s.durationUnitSeconds)
		if err != nil {
			return err
		}
		endTime, err := utils.CheckedAdd(now, span)
		if err != nil {
			return err
		}

		if err := lockBond(ctx, st, borrowerID, asset.BondCents); err != nil {
			return err
		}

		rental = &domain.Rental{
			AssetID:         asset.ID,
			BorrowerID:      borrowerID,
			OwnerID:         asset.OwnerID,
			FeePerUnitCents: asset.FeePerUnitCents,
			BondCents:       asset.BondCents,
			DurationUnits:   durationUnits,
			EndTime:         endTime,
			Status:          domain.RentalStatusPending,
		}
		if err := st.Rentals().Create(ctx, rental); err != nil {
			return err
		}

		asset.Status = domain.AssetStatusRented
		asset.ActiveRentalID = rental.ID
		if err := st.Assets().Update(ctx, asset); err != nil {
			return err
		}

		if err := appendRentalEvent(ctx, st, domain.EventBondLocked, rental, borrowerID, asset.BondCents); err != nil {
			return err
		}
		return appendRentalEvent(ctx, st, domain.EventRentalRequested, rental, borrowerID, 0)
	})
	if err != nil {
		return nil, err
	}
	return rental, nil
}

func (s *rentalService) ConfirmPickup(ctx context.Context, callerID int64, ref RentalRef) (*domain.Rental, error) {
	now := s.clock.Now().Unix()

	var rental *domain.Rental
	err := s.store.WithinTx(ctx, func(st repository.Store) error {
		rt, err := resolveRental(ctx, st, ref)
		if err != nil {
			return err
		}
		if !rt.IsParticipant(callerID) {
			return domain.ErrNotParticipant
		}
		if rt.Status != domain.RentalStatusPending {
			return domain.ErrRentalNotPending
		}
		if rt.PickupConfirmed(callerID) {
			return domain.ErrAlreadyConfirmed
		}

		if callerID == rt.OwnerID {
			rt.PickupConfirmedOwner = true
		} else {
			rt.PickupConfirmedBorrower = true
		}

		if rt.PickupConfirmedOwner && rt.PickupConfirmedBorrower {
			next, err := domain.NextRentalStatus(rt.Status, domain.RentalActionActivate)
			if err != nil {
				return err
			}
			rt.Status = next
			rt.StartTime = now
			if err := st.Rentals().Update(ctx, rt); err != nil {
				return err
			}
			rental = rt
			return appendRentalEvent(ctx, st, domain.EventRentalActivated, rt, callerID, 0)
		}

		if err := st.Rentals().Update(ctx, rt); err != nil {
			return err
		}
		rental = rt
		return appendRentalEvent(ctx, st, domain.EventPickupConfirmed, rt, callerID, 0)
	})
	if err != nil {
		return nil, err
	}
	return rental, nil
}

func (s *rentalService) ConfirmReturn(ctx context.Context, callerID int64, ref RentalRef) (*domain.Rental, error) {
	now := s.clock.Now().Unix()

	var rental *domain.Rental
	err := s.store.WithinTx(ctx, func(st repository.Store) error {
		rt, err := resolveRental(ctx, st, ref)
		if err != nil {
			return err
		}
		if !rt.IsParticipant(callerID) {
			return domain.ErrNotParticipant
		}
		if rt.Status != domain.RentalStatusActive {
			return domain.ErrRentalNotActive
		}
		if rt.ReturnConfirmed(callerID) {
			return domain.ErrAlreadyConfirmed
		}

		if callerID == rt.OwnerID {
			rt.ReturnConfirmedOwner = true
		} else {
			rt.ReturnConfirmedBorrower = true
		}

		if err := appendRentalEvent(ctx, st, domain.EventReturnConfirmed, rt, callerID, 0); err != nil {
			return err
		}

		if rt.ReturnConfirmedOwner && rt.ReturnConfirmedBorrower {
			// Settlement runs inside this same transaction: if any
			// transfer is rejected, the whole return confirmation
			// aborts and the rental stays ACTIVE.
			if err := settleRental(ctx, st, rt, callerID, now, s.penaltyUnitSeconds); err != nil {
				return err
			}
		}

		if err := st.Rentals().Update(ctx, rt); err != nil {
			return err
		}
		rental = rt
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rental, nil
}

func (s *rentalService) CancelRental(ctx context.Context, callerID, rentalID int64) (*domain.Rental, error) {
	var rental *domain.Rental
	err := s.store.WithinTx(ctx, func(st repository.Store) error {
		rt, err := st.Rentals().GetByIDForUpdate(ctx, rentalID)
		if err != nil {
			return err
		}
		if rt.BorrowerID != callerID {
			return domain.ErrNotBorrower
		}

		next, err := domain.NextRentalStatus(rt.Status, domain.RentalActionCancel)
		if err != nil {
			return err
		}
		rt.Status = next

		if err := releaseBond(ctx, st, rt, rt.BondCents); err != nil {
			return err
		}
		if err := releaseAsset(ctx, st, rt.AssetID); err != nil {
			return err
		}
		if err := st.Rentals().Update(ctx, rt); err != nil {
			return err
		}

		if err := appendRentalEvent(ctx, st, domain.EventBondReleased, rt, callerID, rt.BondCents); err != nil {
			return err
		}
		if err := appendRentalEvent(ctx, st, domain.EventRentalCancelled, rt, callerID, 0); err != nil {
			return err
		}
		rental = rt
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rental, nil
}

func (s *rentalService) DisputeRental(ctx context.Context, callerID, rentalID int64) (*domain.Rental, error) {
	var rental *domain.Rental
	err := s.store.WithinTx(ctx, func(st repository.Store) error {
		rt, err := st.Rentals().GetByIDForUpdate(ctx, rentalID)
		if err != nil {
			return err
		}
		if !rt.IsParticipant(callerID) {
			return domain.ErrNotParticipant
		}

		next, err := domain.NextRentalStatus(rt.Status, domain.RentalActionDispute)
		if err != nil {
			return err
		}
		// The bond stays in escrow and the asset stays held until
		// arbitration resolves the dispute out of band.
		rt.Status = next
		if err := st.Rentals().Update(ctx, rt); err != nil {
			return err
		}
		rental = rt
		return appendRentalEvent(ctx, st, domain.EventRentalDisputed, rt, callerID, 0)
	})
	if err != nil {
		return nil, err
	}
	return rental, nil
}

func (s *rentalService) GetRental(ctx context.Context, callerID, rentalID int64) (*domain.Rental, error) {
	rt, err := s.store.Rentals().GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if !rt.IsParticipant(callerID) {
		return nil, domain.ErrNotParticipant
	}
	return rt, nil
}

func (s *rentalService) ListRentals(ctx context.Context, borrowerID int64, status string, page, pageSize int64) ([]domain.Rental, int64, error) {
	return s.store.Rentals().ListByBorrower(ctx, borrowerID, status, page, pageSize)
}

func (s *rentalService) ListLendings(ctx context.Context, ownerID int64, status string, page, pageSize int64) ([]domain.Rental, int64, error) {
	return s.store.Rentals().ListByOwner(ctx, ownerID, status, page, pageSize)
}

// resolveRental locks and returns the rental addressed by ref.
func resolveRental(ctx context.Context, st repository.Store, ref RentalRef) (*domain.Rental, error) {
	switch {
	case ref.RentalID > 0:
		return st.Rentals().GetByIDForUpdate(ctx, ref.RentalID)
	case ref.AssetID > 0:
		return st.Rentals().GetActiveByAsset(ctx, ref.AssetID)
	default:
		return nil, domain.ErrRentalNotFound
	}
}

// lockBond moves bondCents from the borrower's spendable balance into
// escrow.
func lockBond(ctx context.Context, st repository.Store, borrowerID, bondCents int64) error {
	acct, err := st.Ledger().GetAccountForUpdate(ctx, borrowerID)
	if err != nil {
		return err
	}
	if acct.Frozen {
		return domain.ErrAccountFrozen
	}
	if acct.BalanceCents < bondCents {
		return domain.ErrInsufficientFunds
	}

	locked, err := utils.CheckedAdd(acct.EscrowLockedCents, bondCents)
	if err != nil {
		return err
	}
	acct.BalanceCents -= bondCents
	acct.EscrowLockedCents = locked
	if err := st.Ledger().UpdateAccount(ctx, acct); err != nil {
		return err
	}
	return st.Ledger().CreateEntry(ctx, &domain.LedgerEntry{
		PartyID:     borrowerID,
		AmountCents: -bondCents,
		Type:        domain.EntryTypeBondLock,
		Description: "safety bond locked in escrow",
	})
}

// releaseBond releases the full original bond from the borrower's escrow
// and credits refundCents of it back to their spendable balance. Any
// remainder is the owner's charge, recorded by the owner-side entry.
func releaseBond(ctx context.Context, st repository.Store, rt *domain.Rental, refundCents int64) error {
	acct, err := st.Ledger().GetAccountForUpdate(ctx, rt.BorrowerID)
	if err != nil {
		return err
	}
	// Frozen accounts reject the refund credit like any other incoming
	// transfer; the release aborts and the bond stays in escrow.
	if !acct.CanReceive() {
		return domain.ErrAccountFrozen
	}
	if acct.EscrowLockedCents < rt.BondCents {
		return domain.ErrEscrowUnderflow
	}

	balance, err := utils.CheckedAdd(acct.BalanceCents, refundCents)
	if err != nil {
		return err
	}
	acct.EscrowLockedCents -= rt.BondCents
	acct.BalanceCents = balance
	if err := st.Ledger().UpdateAccount(ctx, acct); err != nil {
		return err
	}

	return st.Ledger().CreateEntry(ctx, &domain.LedgerEntry{
		PartyID:     rt.BorrowerID,
		AmountCents: refundCents,
		Type:        domain.EntryTypeBondRefund,
		RentalID:    &rt.ID,
		Description: fmt.Sprintf("bond refund for rental %d", rt.ID),
	})
}

// releaseAsset restores availability and clears the active-rental index.
func releaseAsset(ctx context.Context, st repository.Store, assetID int64) error {
	asset, err := st.Assets().GetByIDForUpdate(ctx, assetID)
	if err != nil {
		return err
	}
	asset.Status = domain.AssetStatusAvailable
	asset.ActiveRentalID = 0
	return st.Assets().Update(ctx, asset)
}

func appendRentalEvent(ctx context.Context, st repository.Store, typ domain.EventType, rt *domain.Rental, actorID, amountCents int64) error {
	return st.Events().Append(ctx, &domain.Event{
		Type:        typ,
		AssetID:     rt.AssetID,
		RentalID:    rt.ID,
		ActorID:     actorID,
		AmountCents: amountCents,
		Status:      rt.Status,
	})
}
