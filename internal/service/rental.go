package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"gamehub-backend/internal/domain"
	"gamehub-backend/internal/logger"
	"gamehub-backend/internal/repository"
	"gamehub-backend/internal/utils"
)

type rentalService struct {
	rentalRepo     repository.RentalRepository
	consoleRepo    repository.ConsoleRepository
	controllerRepo repository.ControllerRepository
	priceRepo      repository.PriceScheduleRepository
	loc            *time.Location
	now            func() time.Time
}

// NewRentalService builds the rental lifecycle engine. loc is the deployment
// timezone used for earnings grouping; it is fixed per deployment, never
// inferred per request.
func NewRentalService(
	rentalRepo repository.RentalRepository,
	consoleRepo repository.ConsoleRepository,
	controllerRepo repository.ControllerRepository,
	priceRepo repository.PriceScheduleRepository,
	loc *time.Location,
) RentalService {
	return &rentalService{
		rentalRepo:     rentalRepo,
		consoleRepo:    consoleRepo,
		controllerRepo: controllerRepo,
		priceRepo:      priceRepo,
		loc:            loc,
		now:            time.Now,
	}
}

func (s *rentalService) StartRental(ctx context.Context, employeeID, consoleID, extraControllers int32, cubicleLabel, notes string) (*domain.RentalWithDetail, error) {
	if cubicleLabel == "" {
		return nil, domain.ValidationError("cubicle label is required")
	}
	if extraControllers < 0 {
		return nil, domain.ValidationError("extra controller count cannot be negative")
	}

	schedule, err := s.priceRepo.GetActive(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ValidationError("no active price schedule is configured")
		}
		return nil, domain.PersistenceError("loading price schedule", err)
	}

	console, err := s.consoleRepo.GetByID(ctx, consoleID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFound(fmt.Sprintf("console %d not found", consoleID))
		}
		return nil, domain.PersistenceError("loading console", err)
	}
	if console.Status != domain.ConsoleStatusAvailable {
		return nil, domain.PreconditionFailed(fmt.Sprintf("console %d is %s, not available", consoleID, console.Status))
	}

	needed := extraControllers + 1
	if needed > console.MaxControllers {
		return nil, domain.ValidationError(fmt.Sprintf("console %d supports at most %d controllers", consoleID, console.MaxControllers))
	}
	available, err := s.controllerRepo.CountAvailableByConsole(ctx, consoleID)
	if err != nil {
		return nil, domain.PersistenceError("counting available controllers", err)
	}
	if available < needed {
		return nil, domain.PreconditionFailed(fmt.Sprintf("console %d has %d available controllers, %d needed", consoleID, available, needed))
	}

	rental := &domain.Rental{
		CubicleLabel: cubicleLabel,
		EmployeeID:   employeeID,
		Status:       domain.RentalStatusActive,
		StartTime:    s.now(),
		Notes:        notes,
	}
	detail := &domain.RentalDetail{
		ConsoleID:                  consoleID,
		ExtraControllerCount:       extraControllers,
		HourlyRateApplied:          schedule.HourlyRate,
		ExtraControllerRateApplied: schedule.ExtraControllerRate,
		Subtotal:                   decimal.Zero,
	}

	// The availability precheck above gives a friendly message; the claim
	// itself re-verifies inside one transaction, so a losing racer fails
	// cleanly here instead of half-renting.
	if err := s.rentalRepo.Start(ctx, rental, detail); err != nil {
		switch {
		case errors.Is(err, repository.ErrConsoleUnavailable):
			return nil, domain.PreconditionFailed(fmt.Sprintf("console %d was claimed by another rental", consoleID))
		case errors.Is(err, repository.ErrControllerShortfall):
			return nil, domain.PreconditionFailed(fmt.Sprintf("console %d no longer has %d available controllers", consoleID, needed))
		default:
			return nil, domain.PersistenceError("starting rental", err)
		}
	}

	logger.Info("Rental started", "rental_id", rental.ID, "folio", rental.Folio, "console_id", consoleID, "extra_controllers", extraControllers, "employee_id", employeeID)

	return &domain.RentalWithDetail{Rental: *rental, Detail: detail}, nil
}

// chargeAt computes the ticket for an active rental at the given instant.
// Finalize and estimate share it so the preview can never drift from the
// committed amount.
func chargeAt(rd *domain.RentalWithDetail, at time.Time) (domain.Charge, error) {
	if rd.Detail == nil {
		return domain.Charge{}, domain.PersistenceError(fmt.Sprintf("rental %d has no detail row", rd.ID), nil)
	}
	minutes := utils.ElapsedMinutes(rd.StartTime, at)
	return utils.ComputeCharge(minutes, rd.Detail.HourlyRateApplied, rd.Detail.ExtraControllerRateApplied, rd.Detail.ExtraControllerCount), nil
}

func (s *rentalService) FinalizeRental(ctx context.Context, rentalID int32) (*domain.RentalWithDetail, *domain.Charge, error) {
	rd, err := s.getRental(ctx, rentalID)
	if err != nil {
		return nil, nil, err
	}
	if rd.Status != domain.RentalStatusActive {
		return nil, nil, domain.InvalidState(fmt.Sprintf("rental %d is already %s", rentalID, rd.Status))
	}

	end := s.now()
	charge, err := chargeAt(rd, end)
	if err != nil {
		return nil, nil, err
	}

	upd := repository.FinalizeUpdate{
		EndTime:     end,
		MinutesUsed: charge.ElapsedMinutes,
		BaseTotal:   charge.TimeCost,
		FinalTotal:  charge.FinalTotal,
	}
	if err := s.rentalRepo.Finalize(ctx, rentalID, rd.Detail.ConsoleID, upd); err != nil {
		if errors.Is(err, repository.ErrRentalNotActive) {
			return nil, nil, domain.InvalidState(fmt.Sprintf("rental %d is already finalized", rentalID))
		}
		return nil, nil, domain.PersistenceError("finalizing rental", err)
	}

	rd.Status = domain.RentalStatusFinalized
	rd.EndTime = &end
	rd.TotalMinutesUsed = &charge.ElapsedMinutes
	rd.BaseTotal = &charge.TimeCost
	rd.FinalTotal = &charge.FinalTotal
	rd.Detail.Subtotal = charge.FinalTotal

	logger.Info("Rental finalized", "rental_id", rentalID, "folio", rd.Folio, "minutes", charge.ElapsedMinutes, "final_total", charge.FinalTotal)

	return rd, &charge, nil
}

func (s *rentalService) EstimateCharge(ctx context.Context, rentalID int32) (*domain.Charge, error) {
	rd, err := s.getRental(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if rd.Status != domain.RentalStatusActive {
		return nil, domain.InvalidState(fmt.Sprintf("rental %d is already %s", rentalID, rd.Status))
	}
	charge, err := chargeAt(rd, s.now())
	if err != nil {
		return nil, err
	}
	return &charge, nil
}

func (s *rentalService) GetRental(ctx context.Context, id int32) (*domain.RentalWithDetail, error) {
	return s.getRental(ctx, id)
}

func (s *rentalService) getRental(ctx context.Context, id int32) (*domain.RentalWithDetail, error) {
	rd, err := s.rentalRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFound(fmt.Sprintf("rental %d not found", id))
		}
		return nil, domain.PersistenceError("loading rental", err)
	}
	return rd, nil
}

func (s *rentalService) ListActiveRentals(ctx context.Context) ([]domain.RentalWithDetail, error) {
	rentals, err := s.rentalRepo.ListActive(ctx)
	if err != nil {
		return nil, domain.PersistenceError("listing active rentals", err)
	}
	return rentals, nil
}

func (s *rentalService) EarningsReport(ctx context.Context, from, to time.Time) (*domain.EarningsReport, error) {
	if to.Before(from) {
		return nil, domain.ValidationError("report range end precedes its start")
	}

	rentals, err := s.rentalRepo.QueryFinalized(ctx, from, to)
	if err != nil {
		return nil, domain.PersistenceError("querying finalized rentals", err)
	}

	report := &domain.EarningsReport{From: from, To: to, GrandTotal: decimal.Zero}
	index := make(map[string]int)
	for _, rd := range rentals {
		// Grouping key is the local calendar day the rental closed, falling
		// back to its start for rows missing an end time.
		ref := rd.StartTime
		if rd.EndTime != nil {
			ref = *rd.EndTime
		}
		day := ref.In(s.loc).Format("2006-01-02")

		total := decimal.Zero
		if rd.FinalTotal != nil {
			total = *rd.FinalTotal
		}

		i, ok := index[day]
		if !ok {
			i = len(report.Days)
			index[day] = i
			report.Days = append(report.Days, domain.DailyEarnings{Date: day, Total: decimal.Zero})
		}
		report.Days[i].Total = report.Days[i].Total.Add(total)
		report.Days[i].Rentals = append(report.Days[i].Rentals, rd)
		report.GrandTotal = report.GrandTotal.Add(total)
	}
	return report, nil
}
