package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"gamehub-backend/internal/domain"
)

func TestPriceScheduleRepository_Replace(t *testing.T) {
	ctx := context.Background()

	t.Run("Deactivates old and inserts new in one transaction", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("error opening mock database: %v", err)
		}
		defer db.Close()

		repo := NewPriceScheduleRepository(db)
		modifiedBy := int32(9)
		ps := &domain.PriceSchedule{
			HourlyRate:          decimal.NewFromInt(60),
			ExtraControllerRate: decimal.NewFromInt(25),
			ModifiedBy:          &modifiedBy,
		}

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE price_schedules SET active=false").
			WithArgs(sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("INSERT INTO price_schedules").
			WithArgs(ps.HourlyRate, ps.ExtraControllerRate, sqlmock.AnyArg(), &modifiedBy).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))
		mock.ExpectCommit()

		err = repo.Replace(ctx, ps)
		assert.NoError(t, err)
		assert.Equal(t, int32(5), ps.ID)
		assert.True(t, ps.Active)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Insert failure rolls back the deactivation", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("error opening mock database: %v", err)
		}
		defer db.Close()

		repo := NewPriceScheduleRepository(db)
		ps := &domain.PriceSchedule{
			HourlyRate:          decimal.NewFromInt(60),
			ExtraControllerRate: decimal.NewFromInt(25),
		}

		insertErr := errors.New("insert failed")
		mock.ExpectBegin()
		mock.ExpectExec("UPDATE price_schedules SET active=false").
			WithArgs(sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("INSERT INTO price_schedules").
			WillReturnError(insertErr)
		mock.ExpectRollback()

		err = repo.Replace(ctx, ps)
		assert.ErrorIs(t, err, insertErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPriceScheduleRepository_GetActive(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("error opening mock database: %v", err)
		}
		defer db.Close()

		repo := NewPriceScheduleRepository(db)
		validFrom := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

		rows := sqlmock.NewRows([]string{"id", "hourly_rate", "extra_controller_rate", "active", "valid_from", "valid_until", "modified_by"}).
			AddRow(5, "60", "25", true, validFrom, nil, 9)
		mock.ExpectQuery("SELECT (.+) FROM price_schedules WHERE active").
			WillReturnRows(rows)

		ps, err := repo.GetActive(ctx)
		assert.NoError(t, err)
		assert.True(t, ps.HourlyRate.Equal(decimal.NewFromInt(60)))
		assert.True(t, ps.Active)
		assert.Nil(t, ps.ValidUntil)
	})

	t.Run("None configured", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("error opening mock database: %v", err)
		}
		defer db.Close()

		repo := NewPriceScheduleRepository(db)
		mock.ExpectQuery("SELECT (.+) FROM price_schedules WHERE active").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		ps, err := repo.GetActive(ctx)
		assert.Nil(t, ps)
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})
}
