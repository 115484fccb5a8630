package utils

import (
	"math"

	"rentledger/internal/domain"
)

// Late penalty: 5% of the bond per started penalty unit, capped at the
// full bond.
const latePenaltyPercentPerUnit = 5

// SettlementBreakdown is the full outcome of settling one rental.
// ChargeCents goes to the owner, RefundCents back to the borrower, and
// ChargeCents + RefundCents always equals the bond.
type SettlementBreakdown struct {
	BaseFeeCents int64
	Late         bool
	LateUnits    int64
	PenaltyCents int64
	ChargeCents  int64
	RefundCents  int64
}

// CheckedAdd returns a+b or domain.ErrAmountOverflow on int64 overflow.
func CheckedAdd(a, b int64) (int64, error) {
	if b > 0 && a > math.MaxInt64-b {
		return 0, domain.ErrAmountOverflow
	}
	if b < 0 && a < math.MinInt64-b {
		return 0, domain.ErrAmountOverflow
	}
	return a + b, nil
}

// CheckedMul returns a*b or domain.ErrAmountOverflow on int64 overflow.
func CheckedMul(a, b int64) (int64, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	// MinInt64 * -1 wraps without tripping the division check below.
	if (a == math.MinInt64 && b == -1) || (b == math.MinInt64 && a == -1) {
		return 0, domain.ErrAmountOverflow
	}
	p := a * b
	if p/b != a {
		return 0, domain.ErrAmountOverflow
	}
	return p, nil
}

// ComputeSettlement calculates the fund split for a completed rental.
//
//	baseFee = feePerUnit * durationUnits   (agreed duration, not elapsed time)
//	lateUnits = ceil(overage / penaltyUnit): any overage, even one second,
//	            counts as a full unit
//	penalty = bond * 5% * lateUnits, integer division, capped at bond
//	charge  = min(baseFee + penalty, bond)
//	refund  = bond - charge
//
// All inputs are non-negative; overflow fails the whole settlement.
func ComputeSettlement(feePerUnitCents, bondCents, durationUnits, endTime, actualReturnTime, penaltyUnitSeconds int64) (SettlementBreakdown, error) {
	if feePerUnitCents < 0 || bondCents <= 0 || durationUnits <= 0 || penaltyUnitSeconds <= 0 {
		return SettlementBreakdown{}, domain.ErrInvalidArgument
	}

	baseFee, err := CheckedMul(feePerUnitCents, durationUnits)
	if err != nil {
		return SettlementBreakdown{}, err
	}

	b := SettlementBreakdown{BaseFeeCents: baseFee}

	if actualReturnTime > endTime {
		b.Late = true
		b.LateUnits = (actualReturnTime-endTime-1)/penaltyUnitSeconds + 1

		raw, err := CheckedMul(bondCents, latePenaltyPercentPerUnit)
		if err != nil {
			return SettlementBreakdown{}, err
		}
		raw, err = CheckedMul(raw, b.LateUnits)
		if err != nil {
			return SettlementBreakdown{}, err
		}
		b.PenaltyCents = raw / 100
		if b.PenaltyCents > bondCents {
			b.PenaltyCents = bondCents
		}
	}

	charge, err := CheckedAdd(baseFee, b.PenaltyCents)
	if err != nil {
		return SettlementBreakdown{}, err
	}
	// The owner is never paid more than the bond covers, even when the
	// base fee alone exceeds it.
	if charge > bondCents {
		charge = bondCents
	}
	b.ChargeCents = charge
	b.RefundCents = bondCents - charge

	return b, nil
}
