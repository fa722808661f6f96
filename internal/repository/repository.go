package repository

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"gamehub-backend/internal/domain"
)

// Sentinel errors surfaced by the conditional-update paths. Services translate
// them into typed domain errors.
var (
	// ErrConsoleUnavailable: the console was not in `available` when the
	// rental tried to claim it.
	ErrConsoleUnavailable = errors.New("console is not available")
	// ErrControllerShortfall: fewer available controllers on the console than
	// the rental needs. The claiming transaction rolls back entirely.
	ErrControllerShortfall = errors.New("not enough available controllers")
	// ErrRentalNotActive: the rental was already finalized when the finalize
	// update ran.
	ErrRentalNotActive = errors.New("rental is not active")
	// ErrEquipmentBusy: the equipment was not in the status a repair
	// transition expected.
	ErrEquipmentBusy = errors.New("equipment is not in the expected status")
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id int32) error
	ListActiveManagers(ctx context.Context) ([]domain.User, error)
}

type ConsoleRepository interface {
	Create(ctx context.Context, c *domain.Console) error
	GetByID(ctx context.Context, id int32) (*domain.Console, error)
	Update(ctx context.Context, c *domain.Console) error
	Delete(ctx context.Context, id int32) error
	List(ctx context.Context, status domain.ConsoleStatus) ([]domain.Console, error)
	// UpdateStatusIf flips the status only when the current status matches
	// expected; returns ErrEquipmentBusy when no row changed.
	UpdateStatusIf(ctx context.Context, id int32, expected, next domain.ConsoleStatus) error
	CountByStatus(ctx context.Context) (map[domain.ConsoleStatus]int32, error)
}

type ControllerRepository interface {
	Create(ctx context.Context, c *domain.Controller) error
	GetByID(ctx context.Context, id int32) (*domain.Controller, error)
	Update(ctx context.Context, c *domain.Controller) error
	Delete(ctx context.Context, id int32) error
	List(ctx context.Context, status domain.ControllerStatus) ([]domain.Controller, error)
	// ListByConsole returns controllers ordered by id ascending — the
	// tie-break rule rental claiming relies on.
	ListByConsole(ctx context.Context, consoleID int32) ([]domain.Controller, error)
	CountByConsole(ctx context.Context, consoleID int32) (int32, error)
	CountAvailableByConsole(ctx context.Context, consoleID int32) (int32, error)
	UpdateStatusIf(ctx context.Context, id int32, expected, next domain.ControllerStatus) error
	CountByStatus(ctx context.Context) (map[domain.ControllerStatus]int32, error)
}

type PriceScheduleRepository interface {
	GetActive(ctx context.Context) (*domain.PriceSchedule, error)
	// Replace deactivates the current active schedule and inserts the new one
	// in a single transaction, preserving the at-most-one-active invariant.
	Replace(ctx context.Context, ps *domain.PriceSchedule) error
	List(ctx context.Context) ([]domain.PriceSchedule, error)
}

// FinalizeUpdate carries the computed billing outcome to be persisted when a
// rental closes.
type FinalizeUpdate struct {
	EndTime     time.Time
	MinutesUsed int32
	BaseTotal   decimal.Decimal
	FinalTotal  decimal.Decimal
}

type RentalRepository interface {
	// Start claims the console and the lowest-id available controllers and
	// persists the rental plus its detail, all in one transaction. The folio
	// is generated inside the transaction from the rental counter.
	Start(ctx context.Context, rental *domain.Rental, detail *domain.RentalDetail) error
	GetByID(ctx context.Context, id int32) (*domain.RentalWithDetail, error)
	// Finalize persists the charge and releases the console and its rented
	// controllers in one transaction. Only an `active` rental row is updated;
	// ErrRentalNotActive otherwise and nothing is released.
	Finalize(ctx context.Context, rentalID, consoleID int32, upd FinalizeUpdate) error
	ListActive(ctx context.Context) ([]domain.RentalWithDetail, error)
	// QueryFinalized returns finalized rentals whose end time falls in
	// [from, to], newest first, with detail and console attached.
	QueryFinalized(ctx context.Context, from, to time.Time) ([]domain.RentalWithDetail, error)
}

type RepairRepository interface {
	Create(ctx context.Context, rep *domain.Repair) error
	GetByID(ctx context.Context, id int32) (*domain.Repair, error)
	Update(ctx context.Context, rep *domain.Repair) error
	Delete(ctx context.Context, id int32) error
	ListOpen(ctx context.Context) ([]domain.Repair, error)
	List(ctx context.Context) ([]domain.Repair, error)
}
