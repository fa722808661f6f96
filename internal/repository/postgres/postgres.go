package postgres

import (
	"database/sql"
	"time"

	_ "github.com/lib/pq"

	"gamehub-backend/internal/repository"
)

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.ConsoleRepository
	repository.ControllerRepository
	repository.PriceScheduleRepository
	repository.RentalRepository
	repository.RepairRepository
}

// NewStore wires every repository against the shared connection pool. The
// folio prefix and location are fixed per deployment; rentals stamp folios in
// that timezone regardless of where a request originates.
func NewStore(db *sql.DB, folioPrefix string, loc *time.Location) *Store {
	return &Store{
		db:                      db,
		UserRepository:          NewUserRepository(db),
		ConsoleRepository:       NewConsoleRepository(db),
		ControllerRepository:    NewControllerRepository(db),
		PriceScheduleRepository: NewPriceScheduleRepository(db),
		RentalRepository:        NewRentalRepository(db, folioPrefix, loc),
		RepairRepository:        NewRepairRepository(db),
	}
}
