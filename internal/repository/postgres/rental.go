package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"rentledger/internal/domain"
	"rentledger/internal/repository"
)

type rentalRepository struct {
	db dbtx
}

func NewRentalRepository(db dbtx) repository.RentalRepository {
	return &rentalRepository{db: db}
}

const rentalColumns = `id, asset_id, borrower_id, owner_id, fee_per_unit_cents, bond_cents, duration_units,
	start_time, end_time, actual_return_time, status,
	pickup_confirmed_owner, pickup_confirmed_borrower, return_confirmed_owner, return_confirmed_borrower,
	charge_cents, refund_cents, created_on, updated_on`

func (r *rentalRepository) Create(ctx context.Context, rt *domain.Rental) error {
	query := `INSERT INTO rentals (asset_id, borrower_id, owner_id, fee_per_unit_cents, bond_cents, duration_units,
	          start_time, end_time, actual_return_time, status,
	          pickup_confirmed_owner, pickup_confirmed_borrower, return_confirmed_owner, return_confirmed_borrower,
	          charge_cents, refund_cents, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18) RETURNING id`
	now := time.Now()
	rt.CreatedOn = now
	rt.UpdatedOn = now
	return r.db.QueryRowContext(ctx, query,
		rt.AssetID, rt.BorrowerID, rt.OwnerID, rt.FeePerUnitCents, rt.BondCents, rt.DurationUnits,
		rt.StartTime, rt.EndTime, rt.ActualReturnTime, rt.Status,
		rt.PickupConfirmedOwner, rt.PickupConfirmedBorrower, rt.ReturnConfirmedOwner, rt.ReturnConfirmedBorrower,
		rt.ChargeCents, rt.RefundCents, now, now).Scan(&rt.ID)
}

func (r *rentalRepository) GetByID(ctx context.Context, id int64) (*domain.Rental, error) {
	return r.get(ctx, `SELECT `+rentalColumns+` FROM rentals WHERE id = $1`, id)
}

func (r *rentalRepository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Rental, error) {
	return r.get(ctx, `SELECT `+rentalColumns+` FROM rentals WHERE id = $1 FOR UPDATE`, id)
}

func (r *rentalRepository) GetActiveByAsset(ctx context.Context, assetID int64) (*domain.Rental, error) {
	return r.get(ctx, `SELECT `+rentalColumns+` FROM rentals WHERE asset_id = $1 AND status IN ('PENDING', 'ACTIVE') FOR UPDATE`, assetID)
}

func (r *rentalRepository) get(ctx context.Context, query string, arg int64) (*domain.Rental, error) {
	rt := &domain.Rental{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&rt.ID, &rt.AssetID, &rt.BorrowerID, &rt.OwnerID, &rt.FeePerUnitCents, &rt.BondCents, &rt.DurationUnits,
		&rt.StartTime, &rt.EndTime, &rt.ActualReturnTime, &rt.Status,
		&rt.PickupConfirmedOwner, &rt.PickupConfirmedBorrower, &rt.ReturnConfirmedOwner, &rt.ReturnConfirmedBorrower,
		&rt.ChargeCents, &rt.RefundCents, &rt.CreatedOn, &rt.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrRentalNotFound
	}
	if err != nil {
		return nil, err
	}
	return rt, nil
}

func (r *rentalRepository) Update(ctx context.Context, rt *domain.Rental) error {
	query := `UPDATE rentals SET start_time=$1, actual_return_time=$2, status=$3,
	          pickup_confirmed_owner=$4, pickup_confirmed_borrower=$5, return_confirmed_owner=$6, return_confirmed_borrower=$7,
	          charge_cents=$8, refund_cents=$9, updated_on=$10 WHERE id=$11`
	res, err := r.db.ExecContext(ctx, query,
		rt.StartTime, rt.ActualReturnTime, rt.Status,
		rt.PickupConfirmedOwner, rt.PickupConfirmedBorrower, rt.ReturnConfirmedOwner, rt.ReturnConfirmedBorrower,
		rt.ChargeCents, rt.RefundCents, time.Now(), rt.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrRentalNotFound
	}
	return nil
}

func (r *rentalRepository) ListByBorrower(ctx context.Context, borrowerID int64, status string, page, pageSize int64) ([]domain.Rental, int64, error) {
	return r.list(ctx, "borrower_id", borrowerID, status, page, pageSize)
}

func (r *rentalRepository) ListByOwner(ctx context.Context, ownerID int64, status string, page, pageSize int64) ([]domain.Rental, int64, error) {
	return r.list(ctx, "owner_id", ownerID, status, page, pageSize)
}

func (r *rentalRepository) list(ctx context.Context, partyColumn string, partyID int64, status string, page, pageSize int64) ([]domain.Rental, int64, error) {
	where := fmt.Sprintf("%s = $1", partyColumn)
	args := []interface{}{partyID}
	if status != "" {
		where += " AND status = $2"
		args = append(args, status)
	}

	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM rentals WHERE `+where, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE ` + where +
		` ORDER BY created_on DESC LIMIT ` + placeholder(len(args)+1) + ` OFFSET ` + placeholder(len(args)+2)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	rentals, err := scanRentals(rows)
	if err != nil {
		return nil, 0, err
	}
	return rentals, count, nil
}

func (r *rentalRepository) ListOverdue(ctx context.Context, now int64) ([]domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE status = 'ACTIVE' AND end_time < $1 ORDER BY end_time`
	rows, err := r.db.QueryContext(ctx, query, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRentals(rows)
}

func scanRentals(rows *sql.Rows) ([]domain.Rental, error) {
	var rentals []domain.Rental
	for rows.Next() {
		var rt domain.Rental
		if err := rows.Scan(
			&rt.ID, &rt.AssetID, &rt.BorrowerID, &rt.OwnerID, &rt.FeePerUnitCents, &rt.BondCents, &rt.DurationUnits,
			&rt.StartTime, &rt.EndTime, &rt.ActualReturnTime, &rt.Status,
			&rt.PickupConfirmedOwner, &rt.PickupConfirmedBorrower, &rt.ReturnConfirmedOwner, &rt.ReturnConfirmedBorrower,
			&rt.ChargeCents, &rt.RefundCents, &rt.CreatedOn, &rt.UpdatedOn); err != nil {
			return nil, err
		}
		rentals = append(rentals, rt)
	}
	return rentals, rows.Err()
}
