package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"gamehub-backend/internal/domain"
	"gamehub-backend/internal/logger"
	"gamehub-backend/internal/repository"
)

type equipmentService struct {
	consoleRepo    repository.ConsoleRepository
	controllerRepo repository.ControllerRepository
}

func NewEquipmentService(
	consoleRepo repository.ConsoleRepository,
	controllerRepo repository.ControllerRepository,
) EquipmentService {
	return &equipmentService{
		consoleRepo:    consoleRepo,
		controllerRepo: controllerRepo,
	}
}

func validateConsole(c *domain.Console) error {
	if c.Name == "" {
		return domain.ValidationError("console name is required")
	}
	if c.SerialNumber == "" {
		return domain.ValidationError("serial number is required")
	}
	if c.IncludedControllers < 1 {
		return domain.ValidationError("a console includes at least one controller")
	}
	if c.MaxControllers < c.IncludedControllers {
		return domain.ValidationError("max controllers cannot be below the included count")
	}
	return nil
}

func (s *equipmentService) CreateConsole(ctx context.Context, c *domain.Console) error {
	if err := validateConsole(c); err != nil {
		return err
	}
	if c.Status == "" {
		c.Status = domain.ConsoleStatusAvailable
	}
	if err := s.consoleRepo.Create(ctx, c); err != nil {
		return domain.PersistenceError("creating console", err)
	}
	logger.Info("Console created", "console_id", c.ID, "name", c.Name)
	return nil
}

func (s *equipmentService) GetConsole(ctx context.Context, id int32) (*domain.Console, error) {
	c, err := s.consoleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFound(fmt.Sprintf("console %d not found", id))
		}
		return nil, domain.PersistenceError("loading console", err)
	}
	return c, nil
}

func (s *equipmentService) UpdateConsole(ctx context.Context, c *domain.Console) error {
	if err := validateConsole(c); err != nil {
		return err
	}
	current, err := s.GetConsole(ctx, c.ID)
	if err != nil {
		return err
	}
	if current.Status == domain.ConsoleStatusRented && c.Status != current.Status {
		return domain.InvalidState(fmt.Sprintf("console %d is rented; finalize the rental first", c.ID))
	}
	if err := s.consoleRepo.Update(ctx, c); err != nil {
		return domain.PersistenceError("updating console", err)
	}
	return nil
}

func (s *equipmentService) DeleteConsole(ctx context.Context, id int32) error {
	current, err := s.GetConsole(ctx, id)
	if err != nil {
		return err
	}
	if current.Status == domain.ConsoleStatusRented {
		return domain.InvalidState(fmt.Sprintf("console %d is rented", id))
	}
	n, err := s.controllerRepo.CountByConsole(ctx, id)
	if err != nil {
		return domain.PersistenceError("counting controllers", err)
	}
	if n > 0 {
		return domain.InvalidState(fmt.Sprintf("console %d still has %d controllers attached", id, n))
	}
	if err := s.consoleRepo.Delete(ctx, id); err != nil {
		return domain.PersistenceError("deleting console", err)
	}
	logger.Info("Console deleted", "console_id", id)
	return nil
}

func (s *equipmentService) ListConsoles(ctx context.Context, status domain.ConsoleStatus) ([]domain.Console, error) {
	consoles, err := s.consoleRepo.List(ctx, status)
	if err != nil {
		return nil, domain.PersistenceError("listing consoles", err)
	}
	return consoles, nil
}

func (s *equipmentService) CreateController(ctx context.Context, c *domain.Controller) error {
	if c.Label == "" {
		return domain.ValidationError("controller label is required")
	}
	console, err := s.GetConsole(ctx, c.ConsoleID)
	if err != nil {
		return err
	}
	n, err := s.controllerRepo.CountByConsole(ctx, c.ConsoleID)
	if err != nil {
		return domain.PersistenceError("counting controllers", err)
	}
	if n >= console.MaxControllers {
		return domain.PreconditionFailed(fmt.Sprintf("console %d already holds its maximum of %d controllers", c.ConsoleID, console.MaxControllers))
	}
	if c.Status == "" {
		c.Status = domain.ControllerStatusAvailable
	}
	if err := s.controllerRepo.Create(ctx, c); err != nil {
		return domain.PersistenceError("creating controller", err)
	}
	logger.Info("Controller created", "controller_id", c.ID, "console_id", c.ConsoleID)
	return nil
}

func (s *equipmentService) UpdateController(ctx context.Context, c *domain.Controller) error {
	if c.Label == "" {
		return domain.ValidationError("controller label is required")
	}
	current, err := s.controllerRepo.GetByID(ctx, c.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NotFound(fmt.Sprintf("controller %d not found", c.ID))
		}
		return domain.PersistenceError("loading controller", err)
	}
	if current.Status == domain.ControllerStatusRented && c.Status != current.Status {
		return domain.InvalidState(fmt.Sprintf("controller %d is rented; finalize the rental first", c.ID))
	}
	if err := s.controllerRepo.Update(ctx, c); err != nil {
		return domain.PersistenceError("updating controller", err)
	}
	return nil
}

func (s *equipmentService) DeleteController(ctx context.Context, id int32) error {
	current, err := s.controllerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NotFound(fmt.Sprintf("controller %d not found", id))
		}
		return domain.PersistenceError("loading controller", err)
	}
	if current.Status == domain.ControllerStatusRented {
		return domain.InvalidState(fmt.Sprintf("controller %d is rented", id))
	}
	if err := s.controllerRepo.Delete(ctx, id); err != nil {
		return domain.PersistenceError("deleting controller", err)
	}
	logger.Info("Controller deleted", "controller_id", id)
	return nil
}

func (s *equipmentService) ListControllers(ctx context.Context, status domain.ControllerStatus) ([]domain.Controller, error) {
	controllers, err := s.controllerRepo.List(ctx, status)
	if err != nil {
		return nil, domain.PersistenceError("listing controllers", err)
	}
	return controllers, nil
}

func (s *equipmentService) ListConsoleControllers(ctx context.Context, consoleID int32) ([]domain.Controller, error) {
	if _, err := s.GetConsole(ctx, consoleID); err != nil {
		return nil, err
	}
	controllers, err := s.controllerRepo.ListByConsole(ctx, consoleID)
	if err != nil {
		return nil, domain.PersistenceError("listing console controllers", err)
	}
	return controllers, nil
}

func (s *equipmentService) InventorySummary(ctx context.Context) (*domain.InventorySummary, error) {
	consoles, err := s.consoleRepo.CountByStatus(ctx)
	if err != nil {
		return nil, domain.PersistenceError("counting consoles", err)
	}
	controllers, err := s.controllerRepo.CountByStatus(ctx)
	if err != nil {
		return nil, domain.PersistenceError("counting controllers", err)
	}
	return &domain.InventorySummary{Consoles: consoles, Controllers: controllers}, nil
}
