package postgres

import (
	"context"
	"testing"
	"time"

	"rentledger/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedgerRepository_GetAccount(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewLedgerRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"party_id", "balance_cents", "escrow_locked_cents", "frozen", "created_on", "updated_on"}).
			AddRow(2, 1000, 500, false, time.Now(), time.Now())

		mock.ExpectQuery("SELECT (.+) FROM accounts WHERE party_id = \\$1").
			WithArgs(int64(2)).
			WillReturnRows(rows)

		acct, err := repo.GetAccount(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, int64(1000), acct.BalanceCents)
		assert.Equal(t, int64(500), acct.EscrowLockedCents)
		assert.False(t, acct.Frozen)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM accounts WHERE party_id = \\$1").
			WithArgs(int64(404)).
			WillReturnRows(sqlmock.NewRows([]string{"party_id", "balance_cents", "escrow_locked_cents", "frozen", "created_on", "updated_on"}))

		_, err := repo.GetAccount(ctx, 404)
		assert.ErrorIs(t, err, domain.ErrAccountNotFound)
	})
}

func TestLedgerRepository_UpdateAccount(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewLedgerRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		acct := &domain.Account{PartyID: 2, BalanceCents: 900, EscrowLockedCents: 600}

		mock.ExpectExec("UPDATE accounts SET").
			WithArgs(acct.BalanceCents, acct.EscrowLockedCents, acct.Frozen, sqlmock.AnyArg(), acct.PartyID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateAccount(ctx, acct)
		assert.NoError(t, err)
	})

	t.Run("MissingRow", func(t *testing.T) {
		mock.ExpectExec("UPDATE accounts SET").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateAccount(ctx, &domain.Account{PartyID: 404})
		assert.ErrorIs(t, err, domain.ErrAccountNotFound)
	})
}

func TestLedgerRepository_CreateEntry(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewLedgerRepository(db)
	ctx := context.Background()

	rentalID := int64(7)
	entry := &domain.LedgerEntry{
		PartyID:     2,
		AmountCents: -5000,
		Type:        domain.EntryTypeBondLock,
		RentalID:    &rentalID,
		Description: "safety bond locked in escrow",
	}

	mock.ExpectQuery("INSERT INTO ledger_entries").
		WithArgs(entry.PartyID, entry.AmountCents, entry.Type, entry.RentalID, entry.Description, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(33))

	err = repo.CreateEntry(ctx, entry)
	require.NoError(t, err)
	assert.Equal(t, int64(33), entry.ID)
}

func TestReputationRepository_Apply(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewReputationRepository(db)
	ctx := context.Background()

	t.Run("CompletedRentalIncrements", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO reputation").
			WithArgs(int64(2), int64(5), int64(1), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Apply(ctx, 2, 5, true)
		assert.NoError(t, err)
	})

	t.Run("ScoreOnlyAdjustment", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO reputation").
			WithArgs(int64(2), int64(-10), int64(0), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Apply(ctx, 2, -10, false)
		assert.NoError(t, err)
	})
}

func TestReputationRepository_Get(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewReputationRepository(db)
	ctx := context.Background()

	t.Run("UnknownPartyStartsAtZero", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM reputation WHERE party_id = \\$1").
			WithArgs(int64(99)).
			WillReturnRows(sqlmock.NewRows([]string{"party_id", "score", "completed_rentals", "updated_on"}))

		rep, err := repo.Get(ctx, 99)
		require.NoError(t, err)
		assert.Equal(t, int64(99), rep.PartyID)
		assert.Equal(t, int64(0), rep.Score)
	})
}

func TestEventRepository_Append(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewEventRepository(db)
	ctx := context.Background()

	event := &domain.Event{
		Type:     domain.EventRentalRequested,
		AssetID:  10,
		RentalID: 7,
		ActorID:  2,
		Status:   domain.RentalStatusPending,
	}

	mock.ExpectQuery("INSERT INTO events").
		WithArgs(sqlmock.AnyArg(), event.Type, event.AssetID, event.RentalID, event.ActorID, event.AmountCents, event.Status, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	err = repo.Append(ctx, event)
	require.NoError(t, err)
	assert.Equal(t, int64(1), event.ID)
	assert.NotEmpty(t, event.EventID)
}
