package service

import (
	"context"

	"rentledger/internal/domain"
	"rentledger/internal/repository"
)

const maxEventPageSize = 500

type eventService struct {
	store repository.Store
}

func NewEventService(store repository.Store) EventService {
	return &eventService{store: store}
}

func (s *eventService) ListEvents(ctx context.Context, afterID, limit int64) ([]domain.Event, error) {
	if limit <= 0 || limit > maxEventPageSize {
		limit = maxEventPageSize
	}
	return s.store.Events().List(ctx, afterID, limit)
}

func (s *eventService) ListRentalEvents(ctx context.Context, rentalID int64) ([]domain.Event, error) {
	return s.store.Events().ListByRental(ctx, rentalID)
}
