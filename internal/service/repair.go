package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"gamehub-backend/internal/domain"
	"gamehub-backend/internal/logger"
	"gamehub-backend/internal/repository"
)

type repairService struct {
	repairRepo     repository.RepairRepository
	consoleRepo    repository.ConsoleRepository
	controllerRepo repository.ControllerRepository
	now            func() time.Time
}

func NewRepairService(
	repairRepo repository.RepairRepository,
	consoleRepo repository.ConsoleRepository,
	controllerRepo repository.ControllerRepository,
) RepairService {
	return &repairService{
		repairRepo:     repairRepo,
		consoleRepo:    consoleRepo,
		controllerRepo: controllerRepo,
		now:            time.Now,
	}
}

func (s *repairService) RegisterRepair(ctx context.Context, in RegisterRepairInput) (*domain.Repair, error) {
	if in.Description == "" {
		return nil, domain.ValidationError("failure description is required")
	}
	if in.EquipmentType != domain.EquipmentTypeConsole && in.EquipmentType != domain.EquipmentTypeController {
		return nil, domain.ValidationError(fmt.Sprintf("unknown equipment type %q", in.EquipmentType))
	}

	rep := &domain.Repair{
		EquipmentType:     in.EquipmentType,
		EquipmentID:       in.EquipmentID,
		EquipmentName:     in.EquipmentName,
		Brand:             in.Brand,
		Model:             in.Model,
		SerialNumber:      in.SerialNumber,
		Description:       in.Description,
		EntryDate:         s.now(),
		EstimatedExitDate: in.EstimatedExitDate,
		Status:            domain.RepairStatusInRepair,
	}

	// Inventory equipment is snapshotted and pulled out of circulation;
	// walk-in equipment is recorded as described by the caller.
	if in.EquipmentID != nil {
		if err := s.pullEquipment(ctx, rep, *in.EquipmentID); err != nil {
			return nil, err
		}
	}

	if err := s.repairRepo.Create(ctx, rep); err != nil {
		return nil, domain.PersistenceError("creating repair", err)
	}

	logger.Info("Repair registered", "repair_id", rep.ID, "equipment_type", rep.EquipmentType, "equipment_id", in.EquipmentID)
	return rep, nil
}

func (s *repairService) pullEquipment(ctx context.Context, rep *domain.Repair, equipmentID int32) error {
	switch rep.EquipmentType {
	case domain.EquipmentTypeConsole:
		console, err := s.consoleRepo.GetByID(ctx, equipmentID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return domain.NotFound(fmt.Sprintf("console %d not found", equipmentID))
			}
			return domain.PersistenceError("loading console", err)
		}
		if console.Status == domain.ConsoleStatusRented || console.Status == domain.ConsoleStatusInRepair {
			return domain.InvalidState(fmt.Sprintf("console %d is %s", equipmentID, console.Status))
		}
		if err := s.consoleRepo.UpdateStatusIf(ctx, equipmentID, console.Status, domain.ConsoleStatusInRepair); err != nil {
			if errors.Is(err, repository.ErrEquipmentBusy) {
				return domain.PreconditionFailed(fmt.Sprintf("console %d changed status before it could be pulled", equipmentID))
			}
			return domain.PersistenceError("pulling console into repair", err)
		}
		rep.EquipmentName, rep.Brand, rep.Model, rep.SerialNumber = console.Name, console.Brand, console.Model, console.SerialNumber

	case domain.EquipmentTypeController:
		controller, err := s.controllerRepo.GetByID(ctx, equipmentID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return domain.NotFound(fmt.Sprintf("controller %d not found", equipmentID))
			}
			return domain.PersistenceError("loading controller", err)
		}
		if controller.Status == domain.ControllerStatusRented || controller.Status == domain.ControllerStatusInRepair {
			return domain.InvalidState(fmt.Sprintf("controller %d is %s", equipmentID, controller.Status))
		}
		if err := s.controllerRepo.UpdateStatusIf(ctx, equipmentID, controller.Status, domain.ControllerStatusInRepair); err != nil {
			if errors.Is(err, repository.ErrEquipmentBusy) {
				return domain.PreconditionFailed(fmt.Sprintf("controller %d changed status before it could be pulled", equipmentID))
			}
			return domain.PersistenceError("pulling controller into repair", err)
		}
		rep.EquipmentName, rep.Brand, rep.Model, rep.SerialNumber = controller.Label, "", "", ""
	}
	return nil
}

func (s *repairService) FinalizeRepair(ctx context.Context, repairID int32) (*domain.Repair, error) {
	rep, err := s.repairRepo.GetByID(ctx, repairID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFound(fmt.Sprintf("repair %d not found", repairID))
		}
		return nil, domain.PersistenceError("loading repair", err)
	}
	if rep.Status != domain.RepairStatusInRepair {
		return nil, domain.InvalidState(fmt.Sprintf("repair %d is already %s", repairID, rep.Status))
	}

	exit := s.now()
	rep.Status = domain.RepairStatusRepaired
	rep.ExitDate = &exit
	if err := s.repairRepo.Update(ctx, rep); err != nil {
		return nil, domain.PersistenceError("closing repair", err)
	}

	// Conditional release: equipment decommissioned while on the bench stays
	// where the operator put it.
	if rep.EquipmentID != nil {
		switch rep.EquipmentType {
		case domain.EquipmentTypeConsole:
			err = s.consoleRepo.UpdateStatusIf(ctx, *rep.EquipmentID, domain.ConsoleStatusInRepair, domain.ConsoleStatusAvailable)
		case domain.EquipmentTypeController:
			err = s.controllerRepo.UpdateStatusIf(ctx, *rep.EquipmentID, domain.ControllerStatusInRepair, domain.ControllerStatusAvailable)
		}
		if err != nil && !errors.Is(err, repository.ErrEquipmentBusy) {
			return nil, domain.PersistenceError("releasing equipment from repair", err)
		}
	}

	logger.Info("Repair finalized", "repair_id", repairID)
	return rep, nil
}

func (s *repairService) ListOpenRepairs(ctx context.Context) ([]domain.Repair, error) {
	repairs, err := s.repairRepo.ListOpen(ctx)
	if err != nil {
		return nil, domain.PersistenceError("listing open repairs", err)
	}
	return repairs, nil
}

func (s *repairService) ListRepairs(ctx context.Context) ([]domain.Repair, error) {
	repairs, err := s.repairRepo.List(ctx)
	if err != nil {
		return nil, domain.PersistenceError("listing repairs", err)
	}
	return repairs, nil
}

func (s *repairService) DeleteRepair(ctx context.Context, id int32) error {
	rep, err := s.repairRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NotFound(fmt.Sprintf("repair %d not found", id))
		}
		return domain.PersistenceError("loading repair", err)
	}
	if rep.Status == domain.RepairStatusInRepair {
		return domain.InvalidState(fmt.Sprintf("repair %d is still open", id))
	}
	if err := s.repairRepo.Delete(ctx, id); err != nil {
		return domain.PersistenceError("deleting repair", err)
	}
	return nil
}
