package postgres

import (
	"context"
	"database/sql"
	"time"

	"gamehub-backend/internal/domain"
	"gamehub-backend/internal/repository"
)

type priceScheduleRepository struct {
	db *sql.DB
}

func NewPriceScheduleRepository(db *sql.DB) repository.PriceScheduleRepository {
	return &priceScheduleRepository{db: db}
}

const scheduleColumns = `id, hourly_rate, extra_controller_rate, active, valid_from, valid_until, modified_by`

func scanSchedule(row interface{ Scan(...any) error }) (*domain.PriceSchedule, error) {
	ps := &domain.PriceSchedule{}
	err := row.Scan(&ps.ID, &ps.HourlyRate, &ps.ExtraControllerRate, &ps.Active, &ps.ValidFrom, &ps.ValidUntil, &ps.ModifiedBy)
	if err != nil {
		return nil, err
	}
	return ps, nil
}

func (r *priceScheduleRepository) GetActive(ctx context.Context) (*domain.PriceSchedule, error) {
	query := `SELECT ` + scheduleColumns + ` FROM price_schedules WHERE active ORDER BY valid_from DESC LIMIT 1`
	return scanSchedule(r.db.QueryRowContext(ctx, query))
}

// Replace supersedes the active schedule: the old row is deactivated with
// valid_until stamped, the new row inserted as active, both inside one
// transaction so readers never observe zero or two active schedules.
func (r *priceScheduleRepository) Replace(ctx context.Context, ps *domain.PriceSchedule) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now()
	if _, err := tx.ExecContext(ctx, `UPDATE price_schedules SET active=false, valid_until=$1 WHERE active`, now); err != nil {
		return err
	}

	query := `INSERT INTO price_schedules (hourly_rate, extra_controller_rate, active, valid_from, modified_by)
	          VALUES ($1, $2, true, $3, $4) RETURNING id`
	if err := tx.QueryRowContext(ctx, query, ps.HourlyRate, ps.ExtraControllerRate, now, ps.ModifiedBy).Scan(&ps.ID); err != nil {
		return err
	}
	ps.Active = true
	ps.ValidFrom = now

	return tx.Commit()
}

func (r *priceScheduleRepository) List(ctx context.Context) ([]domain.PriceSchedule, error) {
	query := `SELECT ` + scheduleColumns + ` FROM price_schedules ORDER BY valid_from DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var schedules []domain.PriceSchedule
	for rows.Next() {
		ps, err := scanSchedule(rows)
		if err != nil {
			return nil, err
		}
		schedules = append(schedules, *ps)
	}
	return schedules, rows.Err()
}
