package postgres

import (
	"context"
	"database/sql"
	"time"

	"rentledger/internal/domain"
	"rentledger/internal/repository"

	"github.com/google/uuid"
)

type eventRepository struct {
	db dbtx
}

func NewEventRepository(db dbtx) repository.EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) Append(ctx context.Context, e *domain.Event) error {
	if e.EventID == "" {
		e.EventID = uuid.NewString()
	}
	query := `INSERT INTO events (event_id, type, asset_id, rental_id, actor_id, amount_cents, status, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	now := time.Now()
	e.CreatedOn = now
	return r.db.QueryRowContext(ctx, query, e.EventID, e.Type, e.AssetID, e.RentalID, e.ActorID, e.AmountCents, e.Status, now).Scan(&e.ID)
}

func (r *eventRepository) List(ctx context.Context, afterID int64, limit int64) ([]domain.Event, error) {
	query := `SELECT id, event_id, type, asset_id, rental_id, actor_id, amount_cents, status, created_on
	          FROM events WHERE id > $1 ORDER BY id LIMIT $2`
	rows, err := r.db.QueryContext(ctx, query, afterID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEvents(rows)
}

func (r *eventRepository) ListByRental(ctx context.Context, rentalID int64) ([]domain.Event, error) {
	query := `SELECT id, event_id, type, asset_id, rental_id, actor_id, amount_cents, status, created_on
	          FROM events WHERE rental_id = $1 ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, rentalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEvents(rows)
}

func scanEvents(rows *sql.Rows) ([]domain.Event, error) {
	var events []domain.Event
	for rows.Next() {
		var e domain.Event
		if err := rows.Scan(&e.ID, &e.EventID, &e.Type, &e.AssetID, &e.RentalID, &e.ActorID, &e.AmountCents, &e.Status, &e.CreatedOn); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
