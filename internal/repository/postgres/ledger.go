package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"rentledger/internal/domain"
	"rentledger/internal/repository"
)

type ledgerRepository struct {
	db dbtx
}

func NewLedgerRepository(db dbtx) repository.LedgerRepository {
	return &ledgerRepository{db: db}
}

const accountColumns = `party_id, balance_cents, escrow_locked_cents, frozen, created_on, updated_on`

func (r *ledgerRepository) CreateAccount(ctx context.Context, a *domain.Account) error {
	query := `INSERT INTO accounts (party_id, balance_cents, escrow_locked_cents, frozen, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6)`
	now := time.Now()
	a.CreatedOn = now
	a.UpdatedOn = now
	_, err := r.db.ExecContext(ctx, query, a.PartyID, a.BalanceCents, a.EscrowLockedCents, a.Frozen, now, now)
	return err
}

func (r *ledgerRepository) GetAccount(ctx context.Context, partyID int64) (*domain.Account, error) {
	return r.getAccount(ctx, `SELECT `+accountColumns+` FROM accounts WHERE party_id = $1`, partyID)
}

func (r *ledgerRepository) GetAccountForUpdate(ctx context.Context, partyID int64) (*domain.Account, error) {
	return r.getAccount(ctx, `SELECT `+accountColumns+` FROM accounts WHERE party_id = $1 FOR UPDATE`, partyID)
}

func (r *ledgerRepository) getAccount(ctx context.Context, query string, partyID int64) (*domain.Account, error) {
	a := &domain.Account{}
	err := r.db.QueryRowContext(ctx, query, partyID).Scan(
		&a.PartyID, &a.BalanceCents, &a.EscrowLockedCents, &a.Frozen, &a.CreatedOn, &a.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrAccountNotFound
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *ledgerRepository) UpdateAccount(ctx context.Context, a *domain.Account) error {
	query := `UPDATE accounts SET balance_cents=$1, escrow_locked_cents=$2, frozen=$3, updated_on=$4 WHERE party_id=$5`
	res, err := r.db.ExecContext(ctx, query, a.BalanceCents, a.EscrowLockedCents, a.Frozen, time.Now(), a.PartyID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

func (r *ledgerRepository) CreateEntry(ctx context.Context, e *domain.LedgerEntry) error {
	query := `INSERT INTO ledger_entries (party_id, amount_cents, type, rental_id, description, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	now := time.Now()
	e.CreatedOn = now
	return r.db.QueryRowContext(ctx, query, e.PartyID, e.AmountCents, e.Type, e.RentalID, e.Description, now).Scan(&e.ID)
}

func (r *ledgerRepository) ListEntries(ctx context.Context, partyID int64, page, pageSize int64) ([]domain.LedgerEntry, int64, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM ledger_entries WHERE party_id = $1`, partyID).Scan(&count); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	query := `SELECT id, party_id, amount_cents, type, rental_id, description, created_on
	          FROM ledger_entries WHERE party_id = $1 ORDER BY id DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, partyID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var entries []domain.LedgerEntry
	for rows.Next() {
		var e domain.LedgerEntry
		if err := rows.Scan(&e.ID, &e.PartyID, &e.AmountCents, &e.Type, &e.RentalID, &e.Description, &e.CreatedOn); err != nil {
			return nil, 0, err
		}
		entries = append(entries, e)
	}
	return entries, count, rows.Err()
}
