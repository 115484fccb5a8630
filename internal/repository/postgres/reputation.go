package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"rentledger/internal/domain"
	"rentledger/internal/repository"
)

type reputationRepository struct {
	db dbtx
}

func NewReputationRepository(db dbtx) repository.ReputationRepository {
	return &reputationRepository{db: db}
}

func (r *reputationRepository) Get(ctx context.Context, partyID int64) (*domain.Reputation, error) {
	rep := &domain.Reputation{}
	query := `SELECT party_id, score, completed_rentals, updated_on FROM reputation WHERE party_id = $1`
	err := r.db.QueryRowContext(ctx, query, partyID).Scan(&rep.PartyID, &rep.Score, &rep.CompletedRentals, &rep.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		// Parties start with a zero record; absence is not an error.
		return &domain.Reputation{PartyID: partyID}, nil
	}
	if err != nil {
		return nil, err
	}
	return rep, nil
}

func (r *reputationRepository) Apply(ctx context.Context, partyID int64, scoreDelta int64, completed bool) error {
	inc := int64(0)
	if completed {
		inc = 1
	}
	query := `INSERT INTO reputation (party_id, score, completed_rentals, updated_on)
	          VALUES ($1, $2, $3, $4)
	          ON CONFLICT (party_id) DO UPDATE
	          SET score = reputation.score + EXCLUDED.score,
	              completed_rentals = reputation.completed_rentals + EXCLUDED.completed_rentals,
	              updated_on = EXCLUDED.updated_on`
	_, err := r.db.ExecContext(ctx, query, partyID, scoreDelta, inc, time.Now())
	return err
}
