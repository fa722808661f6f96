package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"gamehub-backend/internal/domain"
	"gamehub-backend/internal/repository"
)

// MockRentalRepo
type MockRentalRepo struct {
	mock.Mock
}

func (m *MockRentalRepo) Start(ctx context.Context, rental *domain.Rental, detail *domain.RentalDetail) error {
	args := m.Called(ctx, rental, detail)
	return args.Error(0)
}
func (m *MockRentalRepo) GetByID(ctx context.Context, id int32) (*domain.RentalWithDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RentalWithDetail), args.Error(1)
}
func (m *MockRentalRepo) Finalize(ctx context.Context, rentalID, consoleID int32, upd repository.FinalizeUpdate) error {
	args := m.Called(ctx, rentalID, consoleID, upd)
	return args.Error(0)
}
func (m *MockRentalRepo) ListActive(ctx context.Context) ([]domain.RentalWithDetail, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.RentalWithDetail), args.Error(1)
}
func (m *MockRentalRepo) QueryFinalized(ctx context.Context, from, to time.Time) ([]domain.RentalWithDetail, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).([]domain.RentalWithDetail), args.Error(1)
}

// MockConsoleRepo
type MockConsoleRepo struct {
	mock.Mock
}

func (m *MockConsoleRepo) Create(ctx context.Context, c *domain.Console) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}
func (m *MockConsoleRepo) GetByID(ctx context.Context, id int32) (*domain.Console, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Console), args.Error(1)
}
func (m *MockConsoleRepo) Update(ctx context.Context, c *domain.Console) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}
func (m *MockConsoleRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockConsoleRepo) List(ctx context.Context, status domain.ConsoleStatus) ([]domain.Console, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]domain.Console), args.Error(1)
}
func (m *MockConsoleRepo) UpdateStatusIf(ctx context.Context, id int32, expected, next domain.ConsoleStatus) error {
	args := m.Called(ctx, id, expected, next)
	return args.Error(0)
}
func (m *MockConsoleRepo) CountByStatus(ctx context.Context) (map[domain.ConsoleStatus]int32, error) {
	args := m.Called(ctx)
	return args.Get(0).(map[domain.ConsoleStatus]int32), args.Error(1)
}

// MockControllerRepo
type MockControllerRepo struct {
	mock.Mock
}

func (m *MockControllerRepo) Create(ctx context.Context, c *domain.Controller) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}
func (m *MockControllerRepo) GetByID(ctx context.Context, id int32) (*domain.Controller, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Controller), args.Error(1)
}
func (m *MockControllerRepo) Update(ctx context.Context, c *domain.Controller) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}
func (m *MockControllerRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockControllerRepo) List(ctx context.Context, status domain.ControllerStatus) ([]domain.Controller, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]domain.Controller), args.Error(1)
}
func (m *MockControllerRepo) ListByConsole(ctx context.Context, consoleID int32) ([]domain.Controller, error) {
	args := m.Called(ctx, consoleID)
	return args.Get(0).([]domain.Controller), args.Error(1)
}
func (m *MockControllerRepo) CountByConsole(ctx context.Context, consoleID int32) (int32, error) {
	args := m.Called(ctx, consoleID)
	return args.Get(0).(int32), args.Error(1)
}
func (m *MockControllerRepo) CountAvailableByConsole(ctx context.Context, consoleID int32) (int32, error) {
	args := m.Called(ctx, consoleID)
	return args.Get(0).(int32), args.Error(1)
}
func (m *MockControllerRepo) UpdateStatusIf(ctx context.Context, id int32, expected, next domain.ControllerStatus) error {
	args := m.Called(ctx, id, expected, next)
	return args.Error(0)
}
func (m *MockControllerRepo) CountByStatus(ctx context.Context) (map[domain.ControllerStatus]int32, error) {
	args := m.Called(ctx)
	return args.Get(0).(map[domain.ControllerStatus]int32), args.Error(1)
}

// MockPriceScheduleRepo
type MockPriceScheduleRepo struct {
	mock.Mock
}

func (m *MockPriceScheduleRepo) GetActive(ctx context.Context) (*domain.PriceSchedule, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PriceSchedule), args.Error(1)
}
func (m *MockPriceScheduleRepo) Replace(ctx context.Context, ps *domain.PriceSchedule) error {
	args := m.Called(ctx, ps)
	return args.Error(0)
}
func (m *MockPriceScheduleRepo) List(ctx context.Context) ([]domain.PriceSchedule, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.PriceSchedule), args.Error(1)
}

// MockRepairRepo
type MockRepairRepo struct {
	mock.Mock
}

func (m *MockRepairRepo) Create(ctx context.Context, rep *domain.Repair) error {
	args := m.Called(ctx, rep)
	return args.Error(0)
}
func (m *MockRepairRepo) GetByID(ctx context.Context, id int32) (*domain.Repair, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Repair), args.Error(1)
}
func (m *MockRepairRepo) Update(ctx context.Context, rep *domain.Repair) error {
	args := m.Called(ctx, rep)
	return args.Error(0)
}
func (m *MockRepairRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockRepairRepo) ListOpen(ctx context.Context) ([]domain.Repair, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Repair), args.Error(1)
}
func (m *MockRepairRepo) List(ctx context.Context) ([]domain.Repair, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Repair), args.Error(1)
}

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) List(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.User), args.Error(1)
}
func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockUserRepo) ListActiveManagers(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.User), args.Error(1)
}
