package service

import (
	"context"

	"rentledger/internal/domain"
	"rentledger/internal/repository"
)

type reputationService struct {
	store repository.Store
}

func NewReputationService(store repository.Store) ReputationService {
	return &reputationService{store: store}
}

func (s *reputationService) GetReputation(ctx context.Context, partyID int64) (*domain.Reputation, error) {
	return s.store.Reputation().Get(ctx, partyID)
}
