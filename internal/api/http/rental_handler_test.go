package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"rentledger/internal/domain"
	"rentledger/internal/service"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRentalService
type MockRentalService struct {
	mock.Mock
}

func (m *MockRentalService) CreateRental(ctx context.Context, borrowerID, assetID, durationUnits, suppliedCents int64) (*domain.Rental, error) {
	args := m.Called(ctx, borrowerID, assetID, durationUnits, suppliedCents)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalService) ConfirmPickup(ctx context.Context, callerID int64, ref service.RentalRef) (*domain.Rental, error) {
	args := m.Called(ctx, callerID, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalService) ConfirmReturn(ctx context.Context, callerID int64, ref service.RentalRef) (*domain.Rental, error) {
	args := m.Called(ctx, callerID, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalService) CancelRental(ctx context.Context, callerID, rentalID int64) (*domain.Rental, error) {
	args := m.Called(ctx, callerID, rentalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalService) DisputeRental(ctx context.Context, callerID, rentalID int64) (*domain.Rental, error) {
	args := m.Called(ctx, callerID, rentalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalService) GetRental(ctx context.Context, callerID, rentalID int64) (*domain.Rental, error) {
	args := m.Called(ctx, callerID, rentalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalService) ListRentals(ctx context.Context, borrowerID int64, status string, page, pageSize int64) ([]domain.Rental, int64, error) {
	args := m.Called(ctx, borrowerID, status, page, pageSize)
	return args.Get(0).([]domain.Rental), args.Get(1).(int64), args.Error(2)
}
func (m *MockRentalService) ListLendings(ctx context.Context, ownerID int64, status string, page, pageSize int64) ([]domain.Rental, int64, error) {
	args := m.Called(ctx, ownerID, status, page, pageSize)
	return args.Get(0).([]domain.Rental), args.Get(1).(int64), args.Error(2)
}

func authedRequest(method, target, body string) *http.Request {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	return r.WithContext(WithPartyID(r.Context(), 2))
}

func TestRentalHandler_Create(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := &MockRentalService{}
		h := NewRentalHandler(svc)

		svc.On("CreateRental", mock.Anything, int64(2), int64(10), int64(3), int64(5000)).
			Return(&domain.Rental{ID: 7, Status: domain.RentalStatusPending}, nil)

		w := httptest.NewRecorder()
		h.Create(w, authedRequest(http.MethodPost, "/api/v1/rentals",
			`{"asset_id":10,"duration_units":3,"bond_cents":5000}`))

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"id":7`)
		svc.AssertExpectations(t)
	})

	t.Run("BondMismatchMapsTo422", func(t *testing.T) {
		svc := &MockRentalService{}
		h := NewRentalHandler(svc)

		svc.On("CreateRental", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, domain.ErrBondMismatch)

		w := httptest.NewRecorder()
		h.Create(w, authedRequest(http.MethodPost, "/api/v1/rentals",
			`{"asset_id":10,"duration_units":3,"bond_cents":1}`))

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("MissingIdentity", func(t *testing.T) {
		h := NewRentalHandler(&MockRentalService{})

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/api/v1/rentals", strings.NewReader(`{}`))
		h.Create(w, r)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("BadBody", func(t *testing.T) {
		h := NewRentalHandler(&MockRentalService{})

		w := httptest.NewRecorder()
		h.Create(w, authedRequest(http.MethodPost, "/api/v1/rentals", "{not json"))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestRentalHandler_ConfirmPickup(t *testing.T) {
	t.Run("ByRentalID", func(t *testing.T) {
		svc := &MockRentalService{}
		h := NewRentalHandler(svc)

		svc.On("ConfirmPickup", mock.Anything, int64(2), service.RentalRef{RentalID: 7}).
			Return(&domain.Rental{ID: 7, Status: domain.RentalStatusActive}, nil)

		r := mux.SetURLVars(authedRequest(http.MethodPost, "/api/v1/rentals/7/pickup", ""),
			map[string]string{"id": "7"})
		w := httptest.NewRecorder()
		h.ConfirmPickup(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("ByAssetID", func(t *testing.T) {
		svc := &MockRentalService{}
		h := NewRentalHandler(svc)

		svc.On("ConfirmPickup", mock.Anything, int64(2), service.RentalRef{AssetID: 10}).
			Return(&domain.Rental{ID: 7}, nil)

		w := httptest.NewRecorder()
		h.ConfirmPickup(w, authedRequest(http.MethodPost, "/api/v1/rentals/pickup?asset_id=10", ""))

		assert.Equal(t, http.StatusOK, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("PathIDWinsOverAssetQuery", func(t *testing.T) {
		// A stray asset_id on a rental-addressed route must not redirect
		// the confirmation to another rental.
		svc := &MockRentalService{}
		h := NewRentalHandler(svc)

		svc.On("ConfirmPickup", mock.Anything, int64(2), service.RentalRef{RentalID: 7}).
			Return(&domain.Rental{ID: 7}, nil)

		r := mux.SetURLVars(authedRequest(http.MethodPost, "/api/v1/rentals/7/pickup?asset_id=10", ""),
			map[string]string{"id": "7"})
		w := httptest.NewRecorder()
		h.ConfirmPickup(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("ConflictOnRepeat", func(t *testing.T) {
		svc := &MockRentalService{}
		h := NewRentalHandler(svc)

		svc.On("ConfirmPickup", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, domain.ErrAlreadyConfirmed)

		r := mux.SetURLVars(authedRequest(http.MethodPost, "/api/v1/rentals/7/pickup", ""),
			map[string]string{"id": "7"})
		w := httptest.NewRecorder()
		h.ConfirmPickup(w, r)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestRentalHandler_Cancel(t *testing.T) {
	svc := &MockRentalService{}
	h := NewRentalHandler(svc)

	svc.On("CancelRental", mock.Anything, int64(2), int64(7)).
		Return(&domain.Rental{ID: 7, Status: domain.RentalStatusCancelled}, nil)

	r := mux.SetURLVars(authedRequest(http.MethodPost, "/api/v1/rentals/7/cancel", ""),
		map[string]string{"id": "7"})
	w := httptest.NewRecorder()
	h.Cancel(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"CANCELLED"`)
}

func TestRentalHandler_List(t *testing.T) {
	t.Run("BorrowerDefault", func(t *testing.T) {
		svc := &MockRentalService{}
		h := NewRentalHandler(svc)

		svc.On("ListRentals", mock.Anything, int64(2), "", int64(1), int64(20)).
			Return([]domain.Rental{{ID: 7}}, int64(1), nil)

		w := httptest.NewRecorder()
		h.List(w, authedRequest(http.MethodGet, "/api/v1/rentals", ""))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"total":1`)
	})

	t.Run("OwnerRole", func(t *testing.T) {
		svc := &MockRentalService{}
		h := NewRentalHandler(svc)

		svc.On("ListLendings", mock.Anything, int64(2), "ACTIVE", int64(1), int64(20)).
			Return([]domain.Rental{}, int64(0), nil)

		w := httptest.NewRecorder()
		h.List(w, authedRequest(http.MethodGet, "/api/v1/rentals?role=owner&status=ACTIVE", ""))

		assert.Equal(t, http.StatusOK, w.Code)
		svc.AssertExpectations(t)
	})
}
