package domain

import "time"

type RepairStatus string

const (
	RepairStatusInRepair RepairStatus = "in_repair"
	RepairStatusRepaired RepairStatus = "repaired"
)

// Repair tracks one piece of equipment through the shop's repair bench.
// EquipmentID is nullable: walk-in equipment that is not part of the
// inventory can be repaired too. The name/brand/model/serial fields are a
// point-in-time copy taken at registration for audit purposes; they are
// never re-synced with the live equipment row.
type Repair struct {
	ID                int32         `json:"id"`
	EquipmentType     EquipmentType `json:"equipment_type"`
	EquipmentID       *int32        `json:"equipment_id,omitempty"`
	EquipmentName     string        `json:"equipment_name,omitempty"`
	Brand             string        `json:"brand,omitempty"`
	Model             string        `json:"model,omitempty"`
	SerialNumber      string        `json:"serial_number,omitempty"`
	Description       string        `json:"description"`
	EntryDate         time.Time     `json:"entry_date"`
	EstimatedExitDate *time.Time    `json:"estimated_exit_date,omitempty"`
	ExitDate          *time.Time    `json:"exit_date,omitempty"`
	Status            RepairStatus  `json:"status"`
}
