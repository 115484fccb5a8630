package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"rentledger/internal/domain"
	"rentledger/internal/repository"
)

type assetRepository struct {
	db dbtx
}

func NewAssetRepository(db dbtx) repository.AssetRepository {
	return &assetRepository{db: db}
}

const assetColumns = `id, owner_id, name, description, fee_per_unit_cents, bond_cents, status, active_rental_id, created_on, updated_on`

func (r *assetRepository) Create(ctx context.Context, a *domain.Asset) error {
	query := `INSERT INTO assets (owner_id, name, description, fee_per_unit_cents, bond_cents, status, active_rental_id, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, 0, $7, $8) RETURNING id`
	now := time.Now()
	a.CreatedOn = now
	a.UpdatedOn = now
	return r.db.QueryRowContext(ctx, query, a.OwnerID, a.Name, a.Description, a.FeePerUnitCents, a.BondCents, a.Status, now, now).Scan(&a.ID)
}

func (r *assetRepository) GetByID(ctx context.Context, id int64) (*domain.Asset, error) {
	return r.get(ctx, `SELECT `+assetColumns+` FROM assets WHERE id = $1`, id)
}

func (r *assetRepository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Asset, error) {
	return r.get(ctx, `SELECT `+assetColumns+` FROM assets WHERE id = $1 FOR UPDATE`, id)
}

func (r *assetRepository) get(ctx context.Context, query string, id int64) (*domain.Asset, error) {
	a := &domain.Asset{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&a.ID, &a.OwnerID, &a.Name, &a.Description, &a.FeePerUnitCents, &a.BondCents,
		&a.Status, &a.ActiveRentalID, &a.CreatedOn, &a.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrAssetNotFound
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *assetRepository) Update(ctx context.Context, a *domain.Asset) error {
	query := `UPDATE assets SET name=$1, description=$2, fee_per_unit_cents=$3, bond_cents=$4, status=$5, active_rental_id=$6, updated_on=$7 WHERE id=$8`
	res, err := r.db.ExecContext(ctx, query, a.Name, a.Description, a.FeePerUnitCents, a.BondCents, a.Status, a.ActiveRentalID, time.Now(), a.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrAssetNotFound
	}
	return nil
}

func (r *assetRepository) ListAvailable(ctx context.Context, page, pageSize int64) ([]domain.Asset, int64, error) {
	return r.list(ctx, `status = 'AVAILABLE'`, nil, page, pageSize)
}

func (r *assetRepository) ListByOwner(ctx context.Context, ownerID int64, page, pageSize int64) ([]domain.Asset, int64, error) {
	return r.list(ctx, `owner_id = $1`, []interface{}{ownerID}, page, pageSize)
}

func (r *assetRepository) list(ctx context.Context, where string, args []interface{}, page, pageSize int64) ([]domain.Asset, int64, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM assets WHERE `+where, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	query := `SELECT ` + assetColumns + ` FROM assets WHERE ` + where + ` ORDER BY id LIMIT ` + placeholder(len(args)+1) + ` OFFSET ` + placeholder(len(args)+2)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var assets []domain.Asset
	for rows.Next() {
		var a domain.Asset
		if err := rows.Scan(&a.ID, &a.OwnerID, &a.Name, &a.Description, &a.FeePerUnitCents, &a.BondCents,
			&a.Status, &a.ActiveRentalID, &a.CreatedOn, &a.UpdatedOn); err != nil {
			return nil, 0, err
		}
		assets = append(assets, a)
	}
	return assets, count, rows.Err()
}
