package domain

import "time"

type EquipmentType string

const (
	EquipmentTypeConsole    EquipmentType = "console"
	EquipmentTypeController EquipmentType = "controller"
)

type ConsoleStatus string

const (
	ConsoleStatusAvailable ConsoleStatus = "available"
	ConsoleStatusRented    ConsoleStatus = "rented"
	ConsoleStatusInRepair  ConsoleStatus = "in_repair"
	ConsoleStatusRetired   ConsoleStatus = "retired"
)

type ControllerStatus string

const (
	ControllerStatusAvailable      ControllerStatus = "available"
	ControllerStatusRented         ControllerStatus = "rented"
	ControllerStatusInRepair       ControllerStatus = "in_repair"
	ControllerStatusDecommissioned ControllerStatus = "decommissioned"
)

type Console struct {
	ID                  int32         `json:"id"`
	Name                string        `json:"name"`
	Brand               string        `json:"brand"`
	Model               string        `json:"model"`
	SerialNumber        string        `json:"serial_number"`
	Storage             string        `json:"storage,omitempty"`
	IncludedControllers int32         `json:"included_controllers"`
	MaxControllers      int32         `json:"max_controllers"`
	Status              ConsoleStatus `json:"status"`
	AcquiredOn          *time.Time    `json:"acquired_on,omitempty"`
	Notes               string        `json:"notes,omitempty"`
	CreatedOn           time.Time     `json:"created_on"`
	UpdatedOn           *time.Time    `json:"updated_on,omitempty"`
}

type Controller struct {
	ID        int32            `json:"id"`
	ConsoleID int32            `json:"console_id"`
	Label     string           `json:"label"`
	Status    ControllerStatus `json:"status"`
	Notes     string           `json:"notes,omitempty"`
	CreatedOn time.Time        `json:"created_on"`
	// Populated when listing controllers with their console.
	Console *Console `json:"console,omitempty"`
}

// InventorySummary holds per-status counts for the dashboard overview.
type InventorySummary struct {
	Consoles    map[ConsoleStatus]int32    `json:"consoles"`
	Controllers map[ControllerStatus]int32 `json:"controllers"`
}
