package postgres

import (
	"context"
	"database/sql"
	"time"

	"gamehub-backend/internal/domain"
	"gamehub-backend/internal/repository"
)

type consoleRepository struct {
	db *sql.DB
}

func NewConsoleRepository(db *sql.DB) repository.ConsoleRepository {
	return &consoleRepository{db: db}
}

const consoleColumns = `id, name, brand, model, serial_number, COALESCE(storage, ''), included_controllers, max_controllers, status, acquired_on, COALESCE(notes, ''), created_on, updated_on`

func scanConsole(row interface{ Scan(...any) error }) (*domain.Console, error) {
	c := &domain.Console{}
	err := row.Scan(&c.ID, &c.Name, &c.Brand, &c.Model, &c.SerialNumber, &c.Storage, &c.IncludedControllers, &c.MaxControllers, &c.Status, &c.AcquiredOn, &c.Notes, &c.CreatedOn, &c.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *consoleRepository) Create(ctx context.Context, c *domain.Console) error {
	query := `INSERT INTO consoles (name, brand, model, serial_number, storage, included_controllers, max_controllers, status, acquired_on, notes, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id`
	return r.db.QueryRowContext(ctx, query, c.Name, c.Brand, c.Model, c.SerialNumber, c.Storage, c.IncludedControllers, c.MaxControllers, c.Status, c.AcquiredOn, c.Notes, time.Now()).Scan(&c.ID)
}

func (r *consoleRepository) GetByID(ctx context.Context, id int32) (*domain.Console, error) {
	query := `SELECT ` + consoleColumns + ` FROM consoles WHERE id = $1`
	return scanConsole(r.db.QueryRowContext(ctx, query, id))
}

func (r *consoleRepository) Update(ctx context.Context, c *domain.Console) error {
	query := `UPDATE consoles SET name=$1, brand=$2, model=$3, serial_number=$4, storage=$5, included_controllers=$6, max_controllers=$7, status=$8, acquired_on=$9, notes=$10, updated_on=$11 WHERE id=$12`
	_, err := r.db.ExecContext(ctx, query, c.Name, c.Brand, c.Model, c.SerialNumber, c.Storage, c.IncludedControllers, c.MaxControllers, c.Status, c.AcquiredOn, c.Notes, time.Now(), c.ID)
	return err
}

func (r *consoleRepository) Delete(ctx context.Context, id int32) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM consoles WHERE id = $1`, id)
	return err
}

func (r *consoleRepository) List(ctx context.Context, status domain.ConsoleStatus) ([]domain.Console, error) {
	query := `SELECT ` + consoleColumns + ` FROM consoles`
	args := []any{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY brand, id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var consoles []domain.Console
	for rows.Next() {
		c, err := scanConsole(rows)
		if err != nil {
			return nil, err
		}
		consoles = append(consoles, *c)
	}
	return consoles, rows.Err()
}

func (r *consoleRepository) UpdateStatusIf(ctx context.Context, id int32, expected, next domain.ConsoleStatus) error {
	query := `UPDATE consoles SET status=$1, updated_on=$2 WHERE id=$3 AND status=$4`
	res, err := r.db.ExecContext(ctx, query, next, time.Now(), id, expected)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrEquipmentBusy
	}
	return nil
}

func (r *consoleRepository) CountByStatus(ctx context.Context) (map[domain.ConsoleStatus]int32, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT status, count(*) FROM consoles GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[domain.ConsoleStatus]int32)
	for rows.Next() {
		var status domain.ConsoleStatus
		var n int32
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, rows.Err()
}
