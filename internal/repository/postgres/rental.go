package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"gamehub-backend/internal/domain"
	"gamehub-backend/internal/repository"
	"gamehub-backend/internal/utils"
)

type rentalRepository struct {
	db          *sql.DB
	folioPrefix string
	loc         *time.Location
}

func NewRentalRepository(db *sql.DB, folioPrefix string, loc *time.Location) repository.RentalRepository {
	return &rentalRepository{db: db, folioPrefix: folioPrefix, loc: loc}
}

// Start runs the whole claim as one transaction: the console flips
// available→rented only if it still is available, the lowest-id available
// controllers are locked and flipped, and the rental plus detail rows are
// inserted with the snapshot rates the service resolved. Any shortfall rolls
// everything back, so a losing racer sees a clean failure instead of a
// half-rented console.
func (r *rentalRepository) Start(ctx context.Context, rental *domain.Rental, detail *domain.RentalDetail) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE consoles SET status=$1, updated_on=$2 WHERE id=$3 AND status=$4`,
		domain.ConsoleStatusRented, time.Now(), detail.ConsoleID, domain.ConsoleStatusAvailable)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return repository.ErrConsoleUnavailable
	}

	needed := detail.ExtraControllerCount + 1
	rows, err := tx.QueryContext(ctx,
		`SELECT id FROM controllers WHERE console_id=$1 AND status=$2 ORDER BY id ASC LIMIT $3 FOR UPDATE`,
		detail.ConsoleID, domain.ControllerStatusAvailable, needed)
	if err != nil {
		return err
	}
	var ids []int32
	for rows.Next() {
		var id int32
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return err
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}
	if int32(len(ids)) < needed {
		return repository.ErrControllerShortfall
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE controllers SET status=$1 WHERE id = ANY($2)`,
		domain.ControllerStatusRented, pq.Array(ids)); err != nil {
		return err
	}

	var counter int64
	if err := tx.QueryRowContext(ctx, `SELECT nextval('rental_folio_seq')`).Scan(&counter); err != nil {
		return err
	}
	rental.Folio = utils.FormatFolio(r.folioPrefix, rental.StartTime.In(r.loc), counter)

	err = tx.QueryRowContext(ctx,
		`INSERT INTO rentals (folio, cubicle_label, employee_id, status, start_time, notes, created_on)
		 VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
		rental.Folio, rental.CubicleLabel, rental.EmployeeID, rental.Status, rental.StartTime, rental.Notes, time.Now()).Scan(&rental.ID)
	if err != nil {
		return err
	}

	detail.RentalID = rental.ID
	err = tx.QueryRowContext(ctx,
		`INSERT INTO rental_details (rental_id, console_id, extra_controller_count, hourly_rate_applied, extra_controller_rate_applied, subtotal)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		detail.RentalID, detail.ConsoleID, detail.ExtraControllerCount, detail.HourlyRateApplied, detail.ExtraControllerRateApplied, detail.Subtotal).Scan(&detail.ID)
	if err != nil {
		return err
	}

	return tx.Commit()
}

const rentalJoinColumns = `r.id, r.folio, r.cubicle_label, r.employee_id, r.status, r.start_time, r.end_time,
	r.total_minutes_used, r.base_total, r.final_total, COALESCE(r.notes, ''), r.created_on, r.finalized_on,
	d.id, d.console_id, d.extra_controller_count, d.hourly_rate_applied, d.extra_controller_rate_applied, d.subtotal,
	c.name, c.brand, c.model`

const rentalJoin = ` FROM rentals r
	LEFT JOIN rental_details d ON d.rental_id = r.id
	LEFT JOIN consoles c ON c.id = d.console_id`

func scanRentalWithDetail(row interface{ Scan(...any) error }) (*domain.RentalWithDetail, error) {
	rd := &domain.RentalWithDetail{}
	var detailID, consoleID, extraCount sql.NullInt32
	var baseTotal, finalTotal, hourly, extraRate, subtotal decimal.NullDecimal
	var consoleName, consoleBrand, consoleModel sql.NullString

	err := row.Scan(&rd.ID, &rd.Folio, &rd.CubicleLabel, &rd.EmployeeID, &rd.Status, &rd.StartTime, &rd.EndTime,
		&rd.TotalMinutesUsed, &baseTotal, &finalTotal, &rd.Notes, &rd.CreatedOn, &rd.FinalizedOn,
		&detailID, &consoleID, &extraCount, &hourly, &extraRate, &subtotal,
		&consoleName, &consoleBrand, &consoleModel)
	if err != nil {
		return nil, err
	}

	if baseTotal.Valid {
		rd.BaseTotal = &baseTotal.Decimal
	}
	if finalTotal.Valid {
		rd.FinalTotal = &finalTotal.Decimal
	}

	if detailID.Valid {
		d := &domain.RentalDetail{
			ID:                         detailID.Int32,
			RentalID:                   rd.ID,
			ConsoleID:                  consoleID.Int32,
			ExtraControllerCount:       extraCount.Int32,
			HourlyRateApplied:          hourly.Decimal,
			ExtraControllerRateApplied: extraRate.Decimal,
			Subtotal:                   subtotal.Decimal,
		}
		if consoleName.Valid {
			d.Console = &domain.Console{
				ID:    consoleID.Int32,
				Name:  consoleName.String,
				Brand: consoleBrand.String,
				Model: consoleModel.String,
			}
		}
		rd.Detail = d
	}
	return rd, nil
}

func (r *rentalRepository) GetByID(ctx context.Context, id int32) (*domain.RentalWithDetail, error) {
	query := `SELECT ` + rentalJoinColumns + rentalJoin + ` WHERE r.id = $1`
	return scanRentalWithDetail(r.db.QueryRowContext(ctx, query, id))
}

// Finalize persists the charge and releases the equipment in one transaction.
// The rental row only updates while still active, which is what makes a
// second finalize (or a concurrent one) fail instead of re-billing and
// re-releasing.
func (r *rentalRepository) Finalize(ctx context.Context, rentalID, consoleID int32, upd repository.FinalizeUpdate) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE rentals SET status=$1, end_time=$2, total_minutes_used=$3, base_total=$4, final_total=$5, finalized_on=$6
		 WHERE id=$7 AND status=$8`,
		domain.RentalStatusFinalized, upd.EndTime, upd.MinutesUsed, upd.BaseTotal, upd.FinalTotal, time.Now(),
		rentalID, domain.RentalStatusActive)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return repository.ErrRentalNotActive
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE rental_details SET subtotal=$1 WHERE rental_id=$2`, upd.FinalTotal, rentalID); err != nil {
		return err
	}

	// Conditional releases: equipment pulled into repair mid-rental keeps its
	// repair status.
	if _, err := tx.ExecContext(ctx,
		`UPDATE consoles SET status=$1, updated_on=$2 WHERE id=$3 AND status=$4`,
		domain.ConsoleStatusAvailable, time.Now(), consoleID, domain.ConsoleStatusRented); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE controllers SET status=$1 WHERE console_id=$2 AND status=$3`,
		domain.ControllerStatusAvailable, consoleID, domain.ControllerStatusRented); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *rentalRepository) ListActive(ctx context.Context) ([]domain.RentalWithDetail, error) {
	query := `SELECT ` + rentalJoinColumns + rentalJoin + ` WHERE r.status = $1 ORDER BY r.start_time DESC`
	return r.queryRentals(ctx, query, domain.RentalStatusActive)
}

func (r *rentalRepository) QueryFinalized(ctx context.Context, from, to time.Time) ([]domain.RentalWithDetail, error) {
	query := `SELECT ` + rentalJoinColumns + rentalJoin + `
		WHERE r.status = $1 AND COALESCE(r.end_time, r.start_time) BETWEEN $2 AND $3
		ORDER BY COALESCE(r.end_time, r.start_time) DESC`
	return r.queryRentals(ctx, query, domain.RentalStatusFinalized, from, to)
}

func (r *rentalRepository) queryRentals(ctx context.Context, query string, args ...any) ([]domain.RentalWithDetail, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rentals []domain.RentalWithDetail
	for rows.Next() {
		rd, err := scanRentalWithDetail(rows)
		if err != nil {
			return nil, err
		}
		rentals = append(rentals, *rd)
	}
	return rentals, rows.Err()
}
