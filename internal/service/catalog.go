package service

import (
	"context"
	"strings"

	"rentledger/internal/domain"
	"rentledger/internal/repository"
)

type catalogService struct {
	store repository.Store
}

func NewCatalogService(store repository.Store) CatalogService {
	return &catalogService{store: store}
}

func (s *catalogService) RegisterAsset(ctx context.Context, ownerID int64, name, description string, feePerUnitCents, bondCents int64) (*domain.Asset, error) {
	if strings.TrimSpace(name) == "" {
		return nil, domain.ErrInvalidArgument
	}
	if feePerUnitCents < 0 || bondCents <= 0 {
		return nil, domain.ErrInvalidArgument
	}

	asset := &domain.Asset{
		OwnerID:         ownerID,
		Name:            name,
		Description:     description,
		FeePerUnitCents: feePerUnitCents,
		BondCents:       bondCents,
		Status:          domain.AssetStatusAvailable,
	}

	err := s.store.WithinTx(ctx, func(st repository.Store) error {
		if err := st.Assets().Create(ctx, asset); err != nil {
			return err
		}
		return st.Events().Append(ctx, &domain.Event{
			Type:    domain.EventAssetRegistered,
			AssetID: asset.ID,
			ActorID: ownerID,
		})
	})
	if err != nil {
		return nil, err
	}
	return asset, nil
}

func (s *catalogService) GetAsset(ctx context.Context, assetID int64) (*domain.Asset, error) {
	return s.store.Assets().GetByID(ctx, assetID)
}

// UpdateAsset changes pricing or description. Rejected while a rental
// holds the asset, since the rental snapshot was taken from these fields.
func (s *catalogService) UpdateAsset(ctx context.Context, callerID, assetID int64, name, description string, feePerUnitCents, bondCents int64) (*domain.Asset, error) {
	if strings.TrimSpace(name) == "" || feePerUnitCents < 0 || bondCents <= 0 {
		return nil, domain.ErrInvalidArgument
	}

	var asset *domain.Asset
	err := s.store.WithinTx(ctx, func(st repository.Store) error {
		a, err := st.Assets().GetByIDForUpdate(ctx, assetID)
		if err != nil {
			return err
		}
		if a.OwnerID != callerID {
			return domain.ErrNotOwner
		}
		if a.Status == domain.AssetStatusRented {
			return domain.ErrAssetBusy
		}

		a.Name = name
		a.Description = description
		a.FeePerUnitCents = feePerUnitCents
		a.BondCents = bondCents
		if err := st.Assets().Update(ctx, a); err != nil {
			return err
		}
		asset = a
		return st.Events().Append(ctx, &domain.Event{
			Type:    domain.EventAssetUpdated,
			AssetID: a.ID,
			ActorID: callerID,
		})
	})
	if err != nil {
		return nil, err
	}
	return asset, nil
}

// SetAvailability soft-enables or soft-disables a free asset. An asset
// held by a rental cannot be toggled; custody release restores it.
func (s *catalogService) SetAvailability(ctx context.Context, callerID, assetID int64, available bool) (*domain.Asset, error) {
	var asset *domain.Asset
	err := s.store.WithinTx(ctx, func(st repository.Store) error {
		a, err := st.Assets().GetByIDForUpdate(ctx, assetID)
		if err != nil {
			return err
		}
		if a.OwnerID != callerID {
			return domain.ErrNotOwner
		}
		if a.Status == domain.AssetStatusRented {
			return domain.ErrAssetBusy
		}

		if available {
			a.Status = domain.AssetStatusAvailable
		} else {
			a.Status = domain.AssetStatusUnavailable
		}
		if err := st.Assets().Update(ctx, a); err != nil {
			return err
		}
		asset = a
		return st.Events().Append(ctx, &domain.Event{
			Type:    domain.EventAssetUpdated,
			AssetID: a.ID,
			ActorID: callerID,
		})
	})
	if err != nil {
		return nil, err
	}
	return asset, nil
}

func (s *catalogService) ListAvailableAssets(ctx context.Context, page, pageSize int64) ([]domain.Asset, int64, error) {
	return s.store.Assets().ListAvailable(ctx, page, pageSize)
}

func (s *catalogService) ListAssetsByOwner(ctx context.Context, ownerID, page, pageSize int64) ([]domain.Asset, int64, error) {
	return s.store.Assets().ListByOwner(ctx, ownerID, page, pageSize)
}
