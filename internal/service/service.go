package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"gamehub-backend/internal/domain"
)

type AuthService interface {
	// Login verifies credentials server-side and issues access + refresh
	// tokens. Inactive accounts are rejected.
	Login(ctx context.Context, email, password string) (*domain.User, string, string, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
}

type UserService interface {
	CreateUser(ctx context.Context, actorID int32, user *domain.User, password string) error
	GetUser(ctx context.Context, id int32) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	UpdateUser(ctx context.Context, user *domain.User, newPassword string) error
	DeleteUser(ctx context.Context, id int32) error
}

type EquipmentService interface {
	CreateConsole(ctx context.Context, c *domain.Console) error
	GetConsole(ctx context.Context, id int32) (*domain.Console, error)
	UpdateConsole(ctx context.Context, c *domain.Console) error
	DeleteConsole(ctx context.Context, id int32) error
	ListConsoles(ctx context.Context, status domain.ConsoleStatus) ([]domain.Console, error)

	CreateController(ctx context.Context, c *domain.Controller) error
	UpdateController(ctx context.Context, c *domain.Controller) error
	DeleteController(ctx context.Context, id int32) error
	ListControllers(ctx context.Context, status domain.ControllerStatus) ([]domain.Controller, error)
	ListConsoleControllers(ctx context.Context, consoleID int32) ([]domain.Controller, error)

	InventorySummary(ctx context.Context) (*domain.InventorySummary, error)
}

type RentalService interface {
	// StartRental opens a rental for one console plus extraControllers beyond
	// the included one, snapshotting the active price schedule.
	StartRental(ctx context.Context, employeeID, consoleID, extraControllers int32, cubicleLabel, notes string) (*domain.RentalWithDetail, error)
	// FinalizeRental closes an active rental: computes the charge, persists
	// it, and releases the console and its rented controllers.
	FinalizeRental(ctx context.Context, rentalID int32) (*domain.RentalWithDetail, *domain.Charge, error)
	// EstimateCharge previews the ticket for an active rental using the same
	// formula finalize uses, evaluated at now.
	EstimateCharge(ctx context.Context, rentalID int32) (*domain.Charge, error)
	GetRental(ctx context.Context, id int32) (*domain.RentalWithDetail, error)
	ListActiveRentals(ctx context.Context) ([]domain.RentalWithDetail, error)
	// EarningsReport sums finalized rentals closed within [from, to], grouped
	// by calendar day in the deployment timezone.
	EarningsReport(ctx context.Context, from, to time.Time) (*domain.EarningsReport, error)
}

type RepairService interface {
	RegisterRepair(ctx context.Context, in RegisterRepairInput) (*domain.Repair, error)
	FinalizeRepair(ctx context.Context, repairID int32) (*domain.Repair, error)
	ListOpenRepairs(ctx context.Context) ([]domain.Repair, error)
	ListRepairs(ctx context.Context) ([]domain.Repair, error)
	DeleteRepair(ctx context.Context, id int32) error
}

// RegisterRepairInput carries a repair registration. EquipmentID may be nil
// for walk-in equipment that is not part of the shop inventory; the snapshot
// fields are then taken from the input as-is.
type RegisterRepairInput struct {
	EquipmentType     domain.EquipmentType
	EquipmentID       *int32
	EquipmentName     string
	Brand             string
	Model             string
	SerialNumber      string
	Description       string
	EstimatedExitDate *time.Time
}

type PricingService interface {
	GetActiveSchedule(ctx context.Context) (*domain.PriceSchedule, error)
	// SetPriceSchedule supersedes the active schedule with a new one. Both
	// writes happen in one transaction; exactly one schedule stays active.
	SetPriceSchedule(ctx context.Context, modifiedBy int32, hourlyRate, extraControllerRate decimal.Decimal) (*domain.PriceSchedule, error)
	ListSchedules(ctx context.Context) ([]domain.PriceSchedule, error)
}

type EmailService interface {
	SendEarningsDigest(ctx context.Context, to, toName string, report *domain.EarningsReport) error
}
