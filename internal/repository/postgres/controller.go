package postgres

import (
	"context"
	"database/sql"
	"time"

	"gamehub-backend/internal/domain"
	"gamehub-backend/internal/repository"
)

type controllerRepository struct {
	db *sql.DB
}

func NewControllerRepository(db *sql.DB) repository.ControllerRepository {
	return &controllerRepository{db: db}
}

const controllerColumns = `id, console_id, label, status, COALESCE(notes, ''), created_on`

func scanController(row interface{ Scan(...any) error }) (*domain.Controller, error) {
	c := &domain.Controller{}
	err := row.Scan(&c.ID, &c.ConsoleID, &c.Label, &c.Status, &c.Notes, &c.CreatedOn)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *controllerRepository) Create(ctx context.Context, c *domain.Controller) error {
	query := `INSERT INTO controllers (console_id, label, status, notes, created_on)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`
	return r.db.QueryRowContext(ctx, query, c.ConsoleID, c.Label, c.Status, c.Notes, time.Now()).Scan(&c.ID)
}

func (r *controllerRepository) GetByID(ctx context.Context, id int32) (*domain.Controller, error) {
	query := `SELECT ` + controllerColumns + ` FROM controllers WHERE id = $1`
	return scanController(r.db.QueryRowContext(ctx, query, id))
}

func (r *controllerRepository) Update(ctx context.Context, c *domain.Controller) error {
	query := `UPDATE controllers SET console_id=$1, label=$2, status=$3, notes=$4 WHERE id=$5`
	_, err := r.db.ExecContext(ctx, query, c.ConsoleID, c.Label, c.Status, c.Notes, c.ID)
	return err
}

func (r *controllerRepository) Delete(ctx context.Context, id int32) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM controllers WHERE id = $1`, id)
	return err
}

func (r *controllerRepository) List(ctx context.Context, status domain.ControllerStatus) ([]domain.Controller, error) {
	query := `SELECT c.id, c.console_id, c.label, c.status, COALESCE(c.notes, ''), c.created_on,
	                 k.name, k.brand, k.model, k.max_controllers
	          FROM controllers c JOIN consoles k ON k.id = c.console_id`
	args := []any{}
	if status != "" {
		query += ` WHERE c.status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY c.console_id, c.id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var controllers []domain.Controller
	for rows.Next() {
		c := domain.Controller{Console: &domain.Console{}}
		if err := rows.Scan(&c.ID, &c.ConsoleID, &c.Label, &c.Status, &c.Notes, &c.CreatedOn,
			&c.Console.Name, &c.Console.Brand, &c.Console.Model, &c.Console.MaxControllers); err != nil {
			return nil, err
		}
		c.Console.ID = c.ConsoleID
		controllers = append(controllers, c)
	}
	return controllers, rows.Err()
}

func (r *controllerRepository) ListByConsole(ctx context.Context, consoleID int32) ([]domain.Controller, error) {
	query := `SELECT ` + controllerColumns + ` FROM controllers WHERE console_id = $1 ORDER BY id ASC`
	rows, err := r.db.QueryContext(ctx, query, consoleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var controllers []domain.Controller
	for rows.Next() {
		c, err := scanController(rows)
		if err != nil {
			return nil, err
		}
		controllers = append(controllers, *c)
	}
	return controllers, rows.Err()
}

func (r *controllerRepository) CountByConsole(ctx context.Context, consoleID int32) (int32, error) {
	var n int32
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM controllers WHERE console_id = $1 AND status <> $2`, consoleID, domain.ControllerStatusDecommissioned).Scan(&n)
	return n, err
}

func (r *controllerRepository) CountAvailableByConsole(ctx context.Context, consoleID int32) (int32, error) {
	var n int32
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM controllers WHERE console_id = $1 AND status = $2`, consoleID, domain.ControllerStatusAvailable).Scan(&n)
	return n, err
}

func (r *controllerRepository) UpdateStatusIf(ctx context.Context, id int32, expected, next domain.ControllerStatus) error {
	res, err := r.db.ExecContext(ctx, `UPDATE controllers SET status=$1 WHERE id=$2 AND status=$3`, next, id, expected)
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

func (r *controllerRepository) CountByStatus(ctx context.Context) (map[domain.ControllerStatus]int32, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT status, count(*) FROM controllers GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[domain.ControllerStatus]int32)
	for rows.Next() {
		var status domain.ControllerStatus
		var n int32
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, rows.Err()
}
