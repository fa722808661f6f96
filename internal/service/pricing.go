package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/shopspring/decimal"

	"gamehub-backend/internal/domain"
	"gamehub-backend/internal/logger"
	"gamehub-backend/internal/repository"
)

type pricingService struct {
	priceRepo repository.PriceScheduleRepository
}

func NewPricingService(priceRepo repository.PriceScheduleRepository) PricingService {
	return &pricingService{priceRepo: priceRepo}
}

func (s *pricingService) GetActiveSchedule(ctx context.Context) (*domain.PriceSchedule, error) {
	ps, err := s.priceRepo.GetActive(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFound("no active price schedule")
		}
		return nil, domain.PersistenceError("loading price schedule", err)
	}
	return ps, nil
}

func (s *pricingService) SetPriceSchedule(ctx context.Context, modifiedBy int32, hourlyRate, extraControllerRate decimal.Decimal) (*domain.PriceSchedule, error) {
	if hourlyRate.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ValidationError("hourly rate must be greater than zero")
	}
	if extraControllerRate.IsNegative() {
		return nil, domain.ValidationError("extra controller rate cannot be negative")
	}

	ps := &domain.PriceSchedule{
		HourlyRate:          hourlyRate,
		ExtraControllerRate: extraControllerRate,
		ModifiedBy:          &modifiedBy,
	}
	if err := s.priceRepo.Replace(ctx, ps); err != nil {
		return nil, domain.PersistenceError("replacing price schedule", err)
	}

	logger.Info("Price schedule replaced", "schedule_id", ps.ID, "hourly_rate", hourlyRate, "extra_controller_rate", extraControllerRate, "modified_by", modifiedBy)
	return ps, nil
}

func (s *pricingService) ListSchedules(ctx context.Context) ([]domain.PriceSchedule, error) {
	schedules, err := s.priceRepo.List(ctx)
	if err != nil {
		return nil, domain.PersistenceError("listing price schedules", err)
	}
	return schedules, nil
}
