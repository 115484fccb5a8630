package service

import (
	"context"
	"fmt"

	"rentledger/internal/domain"
	"rentledger/internal/repository"
	"rentledger/internal/utils"
)

// settleRental performs the Active→Completed transition: fee and penalty
// computation, escrow disbursement, reputation adjustment and custody
// release. It mutates rt in place; the caller persists the rental row.
// Everything runs in the caller's transaction, so a rejected transfer
// aborts the whole settlement and the rental stays ACTIVE.
func settleRental(ctx context.Context, st repository.Store, rt *domain.Rental, actorID, now, penaltyUnitSeconds int64) error {
	next, err := domain.NextRentalStatus(rt.Status, domain.RentalActionComplete)
	if err != nil {
		return err
	}

	breakdown, err := utils.ComputeSettlement(rt.FeePerUnitCents, rt.BondCents, rt.DurationUnits, rt.EndTime, now, penaltyUnitSeconds)
	if err != nil {
		return err
	}

	rt.Status = next
	rt.ActualReturnTime = now
	rt.ChargeCents = breakdown.ChargeCents
	rt.RefundCents = breakdown.RefundCents

	// Owner first: if the owner's account cannot accept funds, no
	// escrow bookkeeping has happened yet.
	if err := creditOwner(ctx, st, rt, breakdown.ChargeCents); err != nil {
		return err
	}
	if err := releaseBond(ctx, st, rt, breakdown.RefundCents); err != nil {
		return err
	}

	borrowerDelta := int64(domain.ReputationOnTimeBorrower)
	if breakdown.Late {
		borrowerDelta = domain.ReputationLateBorrower
	}
	if err := st.Reputation().Apply(ctx, rt.BorrowerID, borrowerDelta, true); err != nil {
		return err
	}
	if err := st.Reputation().Apply(ctx, rt.OwnerID, domain.ReputationOwnerCompleted, true); err != nil {
		return err
	}

	if err := releaseAsset(ctx, st, rt.AssetID); err != nil {
		return err
	}

	if err := appendRentalEvent(ctx, st, domain.EventBondReleased, rt, actorID, rt.BondCents); err != nil {
		return err
	}
	if err := appendRentalEvent(ctx, st, domain.EventReputationAdjusted, rt, rt.BorrowerID, borrowerDelta); err != nil {
		return err
	}
	if err := appendRentalEvent(ctx, st, domain.EventReputationAdjusted, rt, rt.OwnerID, domain.ReputationOwnerCompleted); err != nil {
		return err
	}
	return appendRentalEvent(ctx, st, domain.EventRentalCompleted, rt, actorID, breakdown.ChargeCents)
}

// creditOwner transfers the settled charge to the asset owner.
func creditOwner(ctx context.Context, st repository.Store, rt *domain.Rental, chargeCents int64) error {
	acct, err := st.Ledger().GetAccountForUpdate(ctx, rt.OwnerID)
	if err != nil {
		return err
	}
	if !acct.CanReceive() {
		return domain.ErrAccountFrozen
	}

	balance, err := utils.CheckedAdd(acct.BalanceCents, chargeCents)
	if err != nil {
		return err
	}
	acct.BalanceCents = balance
	if err := st.Ledger().UpdateAccount(ctx, acct); err != nil {
		return err
	}

	return st.Ledger().CreateEntry(ctx, &domain.LedgerEntry{
		PartyID:     rt.OwnerID,
		AmountCents: chargeCents,
		Type:        domain.EntryTypeRentalCharge,
		RentalID:    &rt.ID,
		Description: fmt.Sprintf("rental earnings for rental %d", rt.ID),
	})
}
