package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"gamehub-backend/internal/domain"
	"gamehub-backend/internal/security"
)

// MockRentalService
type MockRentalService struct {
	mock.Mock
}

func (m *MockRentalService) StartRental(ctx context.Context, employeeID, consoleID, extraControllers int32, cubicleLabel, notes string) (*domain.RentalWithDetail, error) {
	args := m.Called(ctx, employeeID, consoleID, extraControllers, cubicleLabel, notes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RentalWithDetail), args.Error(1)
}
func (m *MockRentalService) FinalizeRental(ctx context.Context, rentalID int32) (*domain.RentalWithDetail, *domain.Charge, error) {
	args := m.Called(ctx, rentalID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.RentalWithDetail), args.Get(1).(*domain.Charge), args.Error(2)
}
func (m *MockRentalService) EstimateCharge(ctx context.Context, rentalID int32) (*domain.Charge, error) {
	args := m.Called(ctx, rentalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Charge), args.Error(1)
}
func (m *MockRentalService) GetRental(ctx context.Context, id int32) (*domain.RentalWithDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RentalWithDetail), args.Error(1)
}
func (m *MockRentalService) ListActiveRentals(ctx context.Context) ([]domain.RentalWithDetail, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.RentalWithDetail), args.Error(1)
}
func (m *MockRentalService) EarningsReport(ctx context.Context, from, to time.Time) (*domain.EarningsReport, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EarningsReport), args.Error(1)
}

const testSecret = "test-secret-test-secret-test-secret!"

func testTokens() security.TokenManager {
	return security.NewTokenManager(testSecret, time.Hour, 7*24*time.Hour)
}

func TestWriteError_StatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", domain.ValidationError("bad input"), http.StatusBadRequest},
		{"not found", domain.NotFound("missing"), http.StatusNotFound},
		{"precondition", domain.PreconditionFailed("busy"), http.StatusConflict},
		{"invalid state", domain.InvalidState("already closed"), http.StatusConflict},
		{"persistence", domain.PersistenceError("db down", nil), http.StatusBadGateway},
		{"token", security.ErrExpiredToken, http.StatusUnauthorized},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(rec, tc.err)
			assert.Equal(t, tc.status, rec.Code)
		})
	}
}

func TestAuthMiddleware(t *testing.T) {
	tokens := testTokens()
	handler := AuthMiddleware(tokens)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := ClaimsFrom(r.Context())
		assert.NotNil(t, claims)
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("Missing token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("Refresh token rejected for API access", func(t *testing.T) {
		refresh, err := tokens.GenerateRefreshToken(3, "ana@example.com")
		assert.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set("Authorization", "Bearer "+refresh)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("Valid access token passes", func(t *testing.T) {
		access, err := tokens.GenerateAccessToken(3, "ana@example.com", domain.UserRoleEmployee)
		assert.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set("Authorization", "Bearer "+access)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRequireManager(t *testing.T) {
	tokens := testTokens()
	handler := AuthMiddleware(tokens)(RequireManager(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})))

	t.Run("Employee forbidden", func(t *testing.T) {
		access, err := tokens.GenerateAccessToken(3, "ana@example.com", domain.UserRoleEmployee)
		assert.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set("Authorization", "Bearer "+access)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("Manager allowed", func(t *testing.T) {
		access, err := tokens.GenerateAccessToken(9, "sam@example.com", domain.UserRoleManager)
		assert.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set("Authorization", "Bearer "+access)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRentalHandler_Routes(t *testing.T) {
	tokens := testTokens()
	access, err := tokens.GenerateAccessToken(3, "ana@example.com", domain.UserRoleEmployee)
	assert.NoError(t, err)

	newRouter := func(svc *MockRentalService) http.Handler {
		return NewRouter(Services{Rentals: svc}, tokens, time.UTC)
	}

	t.Run("Start rental uses token identity", func(t *testing.T) {
		svc := new(MockRentalService)
		router := newRouter(svc)

		rental := &domain.RentalWithDetail{
			Rental: domain.Rental{ID: 41, Folio: "GH-20260901-0042", Status: domain.RentalStatusActive},
		}
		svc.On("StartRental", mock.Anything, int32(3), int32(7), int32(1), "C-04", "").Return(rental, nil)

		body, _ := json.Marshal(map[string]any{
			"console_id":        7,
			"extra_controllers": 1,
			"cubicle_label":     "C-04",
		})
		req := httptest.NewRequest(http.MethodPost, "/api/v1/rentals", bytes.NewReader(body))
		req.Header.Set("Authorization", "Bearer "+access)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		var got domain.RentalWithDetail
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, "GH-20260901-0042", got.Folio)
	})

	t.Run("Finalize conflict surfaces 409", func(t *testing.T) {
		svc := new(MockRentalService)
		router := newRouter(svc)

		svc.On("FinalizeRental", mock.Anything, int32(41)).Return(nil, nil, domain.InvalidState("rental 41 is already finalized"))

		req := httptest.NewRequest(http.MethodPost, "/api/v1/rentals/41/finalize", nil)
		req.Header.Set("Authorization", "Bearer "+access)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("Earnings report is manager-only", func(t *testing.T) {
		svc := new(MockRentalService)
		router := newRouter(svc)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/earnings?from=2026-09-01&to=2026-09-02", nil)
		req.Header.Set("Authorization", "Bearer "+access)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
		svc.AssertNotCalled(t, "EarningsReport", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Earnings range uses shop-local day boundaries", func(t *testing.T) {
		loc, err := time.LoadLocation("America/Mexico_City")
		assert.NoError(t, err)
		manager, err := tokens.GenerateAccessToken(9, "sam@example.com", domain.UserRoleManager)
		assert.NoError(t, err)

		svc := new(MockRentalService)
		router := NewRouter(Services{Rentals: svc}, tokens, loc)

		// A rental closing 23:30 local on Sep 1 lands on Sep 2 in UTC; the
		// queried range must still contain it.
		closedLate := time.Date(2026, 9, 1, 23, 30, 0, 0, loc)
		svc.On("EarningsReport", mock.Anything,
			mock.MatchedBy(func(from time.Time) bool { return !from.After(closedLate) }),
			mock.MatchedBy(func(to time.Time) bool { return !to.Before(closedLate) }),
		).Return(&domain.EarningsReport{}, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/earnings?from=2026-09-01&to=2026-09-01", nil)
		req.Header.Set("Authorization", "Bearer "+manager)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("Estimate returns the preview", func(t *testing.T) {
		svc := new(MockRentalService)
		router := newRouter(svc)

		svc.On("EstimateCharge", mock.Anything, int32(41)).Return(&domain.Charge{
			ElapsedMinutes: 95,
			FinalTotal:     decimal.NewFromInt(95),
		}, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/rentals/41/estimate", nil)
		req.Header.Set("Authorization", "Bearer "+access)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var got domain.Charge
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, int32(95), got.ElapsedMinutes)
	})
}
