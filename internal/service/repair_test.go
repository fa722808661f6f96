package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"gamehub-backend/internal/domain"
	"gamehub-backend/internal/repository"
)

func int32Ptr(v int32) *int32 { return &v }

func TestRepairService_RegisterRepair(t *testing.T) {
	ctx := context.Background()

	t.Run("Inventory console snapshot and pull", func(t *testing.T) {
		repairRepo := new(MockRepairRepo)
		consoleRepo := new(MockConsoleRepo)
		svc := NewRepairService(repairRepo, consoleRepo, new(MockControllerRepo)).(*repairService)
		svc.now = func() time.Time { return time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC) }

		consoleRepo.On("GetByID", ctx, int32(7)).Return(&domain.Console{
			ID:           7,
			Name:         "PS5 Station 2",
			Brand:        "Sony",
			Model:        "CFI-2015",
			SerialNumber: "SN-0007",
			Status:       domain.ConsoleStatusAvailable,
		}, nil)
		consoleRepo.On("UpdateStatusIf", ctx, int32(7), domain.ConsoleStatusAvailable, domain.ConsoleStatusInRepair).Return(nil)
		repairRepo.On("Create", ctx, mock.AnythingOfType("*domain.Repair")).Return(nil)

		rep, err := svc.RegisterRepair(ctx, RegisterRepairInput{
			EquipmentType: domain.EquipmentTypeConsole,
			EquipmentID:   int32Ptr(7),
			Description:   "HDMI port loose",
		})
		assert.NoError(t, err)
		assert.Equal(t, domain.RepairStatusInRepair, rep.Status)
		// Snapshot comes from the inventory row, not the caller.
		assert.Equal(t, "PS5 Station 2", rep.EquipmentName)
		assert.Equal(t, "SN-0007", rep.SerialNumber)
	})

	t.Run("Rented equipment rejected", func(t *testing.T) {
		repairRepo := new(MockRepairRepo)
		consoleRepo := new(MockConsoleRepo)
		svc := NewRepairService(repairRepo, consoleRepo, new(MockControllerRepo))

		consoleRepo.On("GetByID", ctx, int32(7)).Return(&domain.Console{
			ID:     7,
			Status: domain.ConsoleStatusRented,
		}, nil)

		rep, err := svc.RegisterRepair(ctx, RegisterRepairInput{
			EquipmentType: domain.EquipmentTypeConsole,
			EquipmentID:   int32Ptr(7),
			Description:   "overheating",
		})
		assert.Nil(t, rep)
		assert.Equal(t, domain.ErrKindInvalidState, domain.KindOf(err))
		repairRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		consoleRepo.AssertNotCalled(t, "UpdateStatusIf", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Lost pull race", func(t *testing.T) {
		repairRepo := new(MockRepairRepo)
		consoleRepo := new(MockConsoleRepo)
		svc := NewRepairService(repairRepo, consoleRepo, new(MockControllerRepo))

		consoleRepo.On("GetByID", ctx, int32(7)).Return(&domain.Console{
			ID:     7,
			Status: domain.ConsoleStatusAvailable,
		}, nil)
		// A rental claimed the console between the read and the flip.
		consoleRepo.On("UpdateStatusIf", ctx, int32(7), domain.ConsoleStatusAvailable, domain.ConsoleStatusInRepair).Return(repository.ErrEquipmentBusy)

		rep, err := svc.RegisterRepair(ctx, RegisterRepairInput{
			EquipmentType: domain.EquipmentTypeConsole,
			EquipmentID:   int32Ptr(7),
			Description:   "flickering output",
		})
		assert.Nil(t, rep)
		assert.Equal(t, domain.ErrKindPreconditionFailed, domain.KindOf(err))
		repairRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Walk-in equipment uses caller fields", func(t *testing.T) {
		repairRepo := new(MockRepairRepo)
		consoleRepo := new(MockConsoleRepo)
		svc := NewRepairService(repairRepo, consoleRepo, new(MockControllerRepo))

		repairRepo.On("Create", ctx, mock.AnythingOfType("*domain.Repair")).Return(nil)

		rep, err := svc.RegisterRepair(ctx, RegisterRepairInput{
			EquipmentType: domain.EquipmentTypeConsole,
			EquipmentName: "Customer Xbox",
			Brand:         "Microsoft",
			Description:   "disc drive jammed",
		})
		assert.NoError(t, err)
		assert.Nil(t, rep.EquipmentID)
		assert.Equal(t, "Customer Xbox", rep.EquipmentName)
		consoleRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("Missing description", func(t *testing.T) {
		svc := NewRepairService(new(MockRepairRepo), new(MockConsoleRepo), new(MockControllerRepo))

		rep, err := svc.RegisterRepair(ctx, RegisterRepairInput{
			EquipmentType: domain.EquipmentTypeController,
			EquipmentID:   int32Ptr(3),
		})
		assert.Nil(t, rep)
		assert.Equal(t, domain.ErrKindValidation, domain.KindOf(err))
	})
}

func TestRepairService_FinalizeRepair(t *testing.T) {
	ctx := context.Background()

	t.Run("Releases inventory controller", func(t *testing.T) {
		repairRepo := new(MockRepairRepo)
		controllerRepo := new(MockControllerRepo)
		svc := NewRepairService(repairRepo, new(MockConsoleRepo), controllerRepo).(*repairService)
		exit := time.Date(2026, 9, 3, 12, 0, 0, 0, time.UTC)
		svc.now = func() time.Time { return exit }

		repairRepo.On("GetByID", ctx, int32(5)).Return(&domain.Repair{
			ID:            5,
			EquipmentType: domain.EquipmentTypeController,
			EquipmentID:   int32Ptr(12),
			Status:        domain.RepairStatusInRepair,
		}, nil)
		repairRepo.On("Update", ctx, mock.MatchedBy(func(rep *domain.Repair) bool {
			return rep.Status == domain.RepairStatusRepaired && rep.ExitDate != nil && rep.ExitDate.Equal(exit)
		})).Return(nil)
		controllerRepo.On("UpdateStatusIf", ctx, int32(12), domain.ControllerStatusInRepair, domain.ControllerStatusAvailable).Return(nil)

		rep, err := svc.FinalizeRepair(ctx, 5)
		assert.NoError(t, err)
		assert.Equal(t, domain.RepairStatusRepaired, rep.Status)
	})

	t.Run("Already repaired", func(t *testing.T) {
		repairRepo := new(MockRepairRepo)
		svc := NewRepairService(repairRepo, new(MockConsoleRepo), new(MockControllerRepo))

		repairRepo.On("GetByID", ctx, int32(5)).Return(&domain.Repair{
			ID:     5,
			Status: domain.RepairStatusRepaired,
		}, nil)

		rep, err := svc.FinalizeRepair(ctx, 5)
		assert.Nil(t, rep)
		assert.Equal(t, domain.ErrKindInvalidState, domain.KindOf(err))
		repairRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestRepairService_DeleteRepair(t *testing.T) {
	ctx := context.Background()

	t.Run("Open repair cannot be deleted", func(t *testing.T) {
		repairRepo := new(MockRepairRepo)
		svc := NewRepairService(repairRepo, new(MockConsoleRepo), new(MockControllerRepo))

		repairRepo.On("GetByID", ctx, int32(5)).Return(&domain.Repair{
			ID:     5,
			Status: domain.RepairStatusInRepair,
		}, nil)

		err := svc.DeleteRepair(ctx, 5)
		assert.Equal(t, domain.ErrKindInvalidState, domain.KindOf(err))
		repairRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("Closed repair deleted", func(t *testing.T) {
		repairRepo := new(MockRepairRepo)
		svc := NewRepairService(repairRepo, new(MockConsoleRepo), new(MockControllerRepo))

		repairRepo.On("GetByID", ctx, int32(5)).Return(&domain.Repair{
			ID:     5,
			Status: domain.RepairStatusRepaired,
		}, nil)
		repairRepo.On("Delete", ctx, int32(5)).Return(nil)

		err := svc.DeleteRepair(ctx, 5)
		assert.NoError(t, err)
	})
}
