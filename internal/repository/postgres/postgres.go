package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"rentledger/internal/repository"

	_ "github.com/lib/pq"
)

// dbtx is satisfied by both *sql.DB and *sql.Tx so every repository can
// run standalone or inside a Store transaction.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

type Store struct {
	db *sql.DB
	tx *sql.Tx

	assets     repository.AssetRepository
	rentals    repository.RentalRepository
	ledger     repository.LedgerRepository
	reputation repository.ReputationRepository
	events     repository.EventRepository
}

func NewStore(db *sql.DB) *Store {
	return newStore(db, nil, db)
}

func newStore(db *sql.DB, tx *sql.Tx, q dbtx) *Store {
	return &Store{
		db:         db,
		tx:         tx,
		assets:     NewAssetRepository(q),
		rentals:    NewRentalRepository(q),
		ledger:     NewLedgerRepository(q),
		reputation: NewReputationRepository(q),
		events:     NewEventRepository(q),
	}
}

// placeholder returns the n-th positional query parameter ($1, $2, ...).
func placeholder(n int) string { return fmt.Sprintf("$%d", n) }

func (s *Store) Assets() repository.AssetRepository          { return s.assets }
func (s *Store) Rentals() repository.RentalRepository        { return s.rentals }
func (s *Store) Ledger() repository.LedgerRepository         { return s.ledger }
func (s *Store) Reputation() repository.ReputationRepository { return s.reputation }
func (s *Store) Events() repository.EventRepository          { return s.events }

// WithinTx runs fn inside one database transaction. A Store that is
// already transaction-scoped reuses its transaction, so service code can
// compose helpers without nesting.
func (s *Store) WithinTx(ctx context.Context, fn func(repository.Store) error) error {
	if s.tx != nil {
		return fn(s)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	txStore := newStore(s.db, tx, tx)
	if err := fn(txStore); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}
	return tx.Commit()
}
