package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"rentledger/internal/config"
	"rentledger/internal/domain"
	"rentledger/internal/repository"

	"github.com/stretchr/testify/assert"
)

type stubClock struct{ now time.Time }

func (c stubClock) Now() time.Time { return c.now }

type stubRentalRepo struct {
	repository.RentalRepository
	overdue []domain.Rental
	err     error
	gotNow  int64
}

func (r *stubRentalRepo) ListOverdue(_ context.Context, now int64) ([]domain.Rental, error) {
	r.gotNow = now
	return r.overdue, r.err
}

type stubEventRepo struct {
	repository.EventRepository
	appended []domain.Event
	failOn   int64
}

func (r *stubEventRepo) Append(_ context.Context, e *domain.Event) error {
	if r.failOn != 0 && e.RentalID == r.failOn {
		return errors.New("append failed")
	}
	r.appended = append(r.appended, *e)
	return nil
}

type stubStore struct {
	repository.Store
	rentals *stubRentalRepo
	events  *stubEventRepo
}

func (s *stubStore) Rentals() repository.RentalRepository { return s.rentals }
func (s *stubStore) Events() repository.EventRepository   { return s.events }

func TestSendOverdueReminders(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)

	t.Run("AppendsOneReminderPerOverdueRental", func(t *testing.T) {
		store := &stubStore{
			rentals: &stubRentalRepo{overdue: []domain.Rental{
				{ID: 7, AssetID: 10, BorrowerID: 2, Status: domain.RentalStatusActive},
				{ID: 8, AssetID: 11, BorrowerID: 3, Status: domain.RentalStatusActive},
			}},
			events: &stubEventRepo{},
		}
		jr := NewJobRunner(store, stubClock{now: now}, &config.Config{})

		jr.SendOverdueReminders()

		assert.Equal(t, now.Unix(), store.rentals.gotNow)
		assert.Len(t, store.events.appended, 2)
		for _, e := range store.events.appended {
			assert.Equal(t, domain.EventOverdueReminder, e.Type)
			// Reminders never change the rental's status.
			assert.Equal(t, domain.RentalStatusActive, e.Status)
		}
	})

	t.Run("ContinuesAfterAppendFailure", func(t *testing.T) {
		store := &stubStore{
			rentals: &stubRentalRepo{overdue: []domain.Rental{
				{ID: 7, AssetID: 10},
				{ID: 8, AssetID: 11},
			}},
			events: &stubEventRepo{failOn: 7},
		}
		jr := NewJobRunner(store, stubClock{now: now}, &config.Config{})

		jr.SendOverdueReminders()

		assert.Len(t, store.events.appended, 1)
		assert.Equal(t, int64(8), store.events.appended[0].RentalID)
	})

	t.Run("ListFailureIsNonFatal", func(t *testing.T) {
		store := &stubStore{
			rentals: &stubRentalRepo{err: errors.New("db down")},
			events:  &stubEventRepo{},
		}
		jr := NewJobRunner(store, stubClock{now: now}, &config.Config{})

		jr.SendOverdueReminders()

		assert.Empty(t, store.events.appended)
	})
}
