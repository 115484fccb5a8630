package service

import (
	"context"
	"time"

	"rentledger/internal/domain"
	"rentledger/internal/repository"

	"github.com/stretchr/testify/mock"
)

// fixedClock pins Now() so settlement math is deterministic.
type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

// MockAssetRepo
type MockAssetRepo struct {
	mock.Mock
}

func (m *MockAssetRepo) Create(ctx context.Context, asset *domain.Asset) error {
	args := m.Called(ctx, asset)
	return args.Error(0)
}
func (m *MockAssetRepo) GetByID(ctx context.Context, id int64) (*domain.Asset, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Asset), args.Error(1)
}
func (m *MockAssetRepo) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Asset, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Asset), args.Error(1)
}
func (m *MockAssetRepo) Update(ctx context.Context, asset *domain.Asset) error {
	args := m.Called(ctx, asset)
	return args.Error(0)
}
func (m *MockAssetRepo) ListAvailable(ctx context.Context, page, pageSize int64) ([]domain.Asset, int64, error) {
	args := m.Called(ctx, page, pageSize)
	return args.Get(0).([]domain.Asset), args.Get(1).(int64), args.Error(2)
}
func (m *MockAssetRepo) ListByOwner(ctx context.Context, ownerID int64, page, pageSize int64) ([]domain.Asset, int64, error) {
	args := m.Called(ctx, ownerID, page, pageSize)
	return args.Get(0).([]domain.Asset), args.Get(1).(int64), args.Error(2)
}

// MockRentalRepo
type MockRentalRepo struct {
	mock.Mock
}

func (m *MockRentalRepo) Create(ctx context.Context, rental *domain.Rental) error {
	args := m.Called(ctx, rental)
	return args.Error(0)
}
func (m *MockRentalRepo) GetByID(ctx context.Context, id int64) (*domain.Rental, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Rental, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) GetActiveByAsset(ctx context.Context, assetID int64) (*domain.Rental, error) {
	args := m.Called(ctx, assetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) Update(ctx context.Context, rental *domain.Rental) error {
	args := m.Called(ctx, rental)
	return args.Error(0)
}
func (m *MockRentalRepo) ListByBorrower(ctx context.Context, borrowerID int64, status string, page, pageSize int64) ([]domain.Rental, int64, error) {
	args := m.Called(ctx, borrowerID, status, page, pageSize)
	return args.Get(0).([]domain.Rental), args.Get(1).(int64), args.Error(2)
}
func (m *MockRentalRepo) ListByOwner(ctx context.Context, ownerID int64, status string, page, pageSize int64) ([]domain.Rental, int64, error) {
	args := m.Called(ctx, ownerID, status, page, pageSize)
	return args.Get(0).([]domain.Rental), args.Get(1).(int64), args.Error(2)
}
func (m *MockRentalRepo) ListOverdue(ctx context.Context, now int64) ([]domain.Rental, error) {
	args := m.Called(ctx, now)
	return args.Get(0).([]domain.Rental), args.Error(1)
}

// MockLedgerRepo
type MockLedgerRepo struct {
	mock.Mock
}

func (m *MockLedgerRepo) CreateAccount(ctx context.Context, account *domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}
func (m *MockLedgerRepo) GetAccount(ctx context.Context, partyID int64) (*domain.Account, error) {
	args := m.Called(ctx, partyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockLedgerRepo) GetAccountForUpdate(ctx context.Context, partyID int64) (*domain.Account, error) {
	args := m.Called(ctx, partyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockLedgerRepo) UpdateAccount(ctx context.Context, account *domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}
func (m *MockLedgerRepo) CreateEntry(ctx context.Context, entry *domain.LedgerEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}
func (m *MockLedgerRepo) ListEntries(ctx context.Context, partyID int64, page, pageSize int64) ([]domain.LedgerEntry, int64, error) {
	args := m.Called(ctx, partyID, page, pageSize)
	return args.Get(0).([]domain.LedgerEntry), args.Get(1).(int64), args.Error(2)
}

// MockReputationRepo
type MockReputationRepo struct {
	mock.Mock
}

func (m *MockReputationRepo) Get(ctx context.Context, partyID int64) (*domain.Reputation, error) {
	args := m.Called(ctx, partyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reputation), args.Error(1)
}
func (m *MockReputationRepo) Apply(ctx context.Context, partyID int64, scoreDelta int64, completed bool) error {
	args := m.Called(ctx, partyID, scoreDelta, completed)
	return args.Error(0)
}

// MockEventRepo
type MockEventRepo struct {
	mock.Mock
}

func (m *MockEventRepo) Append(ctx context.Context, event *domain.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
func (m *MockEventRepo) List(ctx context.Context, afterID int64, limit int64) ([]domain.Event, error) {
	args := m.Called(ctx, afterID, limit)
	return args.Get(0).([]domain.Event), args.Error(1)
}
func (m *MockEventRepo) ListByRental(ctx context.Context, rentalID int64) ([]domain.Event, error) {
	args := m.Called(ctx, rentalID)
	return args.Get(0).([]domain.Event), args.Error(1)
}

// mockStore bundles the repo mocks. WithinTx hands the same store to fn,
// matching the transaction-scoped view the real store provides.
type mockStore struct {
	assets     *MockAssetRepo
	rentals    *MockRentalRepo
	ledger     *MockLedgerRepo
	reputation *MockReputationRepo
	events     *MockEventRepo
}

func newMockStore() *mockStore {
	return &mockStore{
		assets:     &MockAssetRepo{},
		rentals:    &MockRentalRepo{},
		ledger:     &MockLedgerRepo{},
		reputation: &MockReputationRepo{},
		events:     &MockEventRepo{},
	}
}

func (s *mockStore) Assets() repository.AssetRepository          { return s.assets }
func (s *mockStore) Rentals() repository.RentalRepository        { return s.rentals }
func (s *mockStore) Ledger() repository.LedgerRepository         { return s.ledger }
func (s *mockStore) Reputation() repository.ReputationRepository { return s.reputation }
func (s *mockStore) Events() repository.EventRepository          { return s.events }
func (s *mockStore) WithinTx(ctx context.Context, fn func(repository.Store) error) error {
	return fn(s)
}

func (s *mockStore) assertExpectations(t mock.TestingT) {
	s.assets.AssertExpectations(t)
	s.rentals.AssertExpectations(t)
	s.ledger.AssertExpectations(t)
	s.reputation.AssertExpectations(t)
	s.events.AssertExpectations(t)
}
