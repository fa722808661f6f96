package postgres

import (
	"context"
	"database/sql"

	"gamehub-backend/internal/domain"
	"gamehub-backend/internal/repository"
)

type repairRepository struct {
	db *sql.DB
}

func NewRepairRepository(db *sql.DB) repository.RepairRepository {
	return &repairRepository{db: db}
}

const repairColumns = `id, equipment_type, equipment_id, COALESCE(equipment_name, ''), COALESCE(brand, ''), COALESCE(model, ''), COALESCE(serial_number, ''), description, entry_date, estimated_exit_date, exit_date, status`

func scanRepair(row interface{ Scan(...any) error }) (*domain.Repair, error) {
	rep := &domain.Repair{}
	err := row.Scan(&rep.ID, &rep.EquipmentType, &rep.EquipmentID, &rep.EquipmentName, &rep.Brand, &rep.Model, &rep.SerialNumber, &rep.Description, &rep.EntryDate, &rep.EstimatedExitDate, &rep.ExitDate, &rep.Status)
	if err != nil {
		return nil, err
	}
	return rep, nil
}

func (r *repairRepository) Create(ctx context.Context, rep *domain.Repair) error {
	query := `INSERT INTO repairs (equipment_type, equipment_id, equipment_name, brand, model, serial_number, description, entry_date, estimated_exit_date, status)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
	return r.db.QueryRowContext(ctx, query, rep.EquipmentType, rep.EquipmentID, rep.EquipmentName, rep.Brand, rep.Model, rep.SerialNumber, rep.Description, rep.EntryDate, rep.EstimatedExitDate, rep.Status).Scan(&rep.ID)
}

func (r *repairRepository) GetByID(ctx context.Context, id int32) (*domain.Repair, error) {
	query := `SELECT ` + repairColumns + ` FROM repairs WHERE id = $1`
	return scanRepair(r.db.QueryRowContext(ctx, query, id))
}

func (r *repairRepository) Update(ctx context.Context, rep *domain.Repair) error {
	query := `UPDATE repairs SET equipment_type=$1, equipment_id=$2, equipment_name=$3, brand=$4, model=$5, serial_number=$6, description=$7, entry_date=$8, estimated_exit_date=$9, exit_date=$10, status=$11 WHERE id=$12`
	_, err := r.db.ExecContext(ctx, query, rep.EquipmentType, rep.EquipmentID, rep.EquipmentName, rep.Brand, rep.Model, rep.SerialNumber, rep.Description, rep.EntryDate, rep.EstimatedExitDate, rep.ExitDate, rep.Status, rep.ID)
	return err
}

func (r *repairRepository) Delete(ctx context.Context, id int32) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM repairs WHERE id = $1`, id)
	return err
}

func (r *repairRepository) ListOpen(ctx context.Context) ([]domain.Repair, error) {
	query := `SELECT ` + repairColumns + ` FROM repairs WHERE status = $1 ORDER BY entry_date DESC`
	return r.queryRepairs(ctx, query, domain.RepairStatusInRepair)
}

func (r *repairRepository) List(ctx context.Context) ([]domain.Repair, error) {
	query := `SELECT ` + repairColumns + ` FROM repairs ORDER BY entry_date DESC`
	return r.queryRepairs(ctx, query)
}

func (r *repairRepository) queryRepairs(ctx context.Context, query string, args ...any) ([]domain.Repair, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var repairs []domain.Repair
	for rows.Next() {
		rep, err := scanRepair(rows)
		if err != nil {
			return nil, err
		}
		repairs = append(repairs, *rep)
	}
	return repairs, rows.Err()
}
