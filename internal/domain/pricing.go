package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceSchedule is one row of the global pricing configuration. At most one
// row is active at any time; superseded rows are deactivated, never deleted.
type PriceSchedule struct {
	ID                  int32           `json:"id"`
	HourlyRate          decimal.Decimal `json:"hourly_rate"`
	ExtraControllerRate decimal.Decimal `json:"extra_controller_rate"`
	Active              bool            `json:"active"`
	ValidFrom           time.Time       `json:"valid_from"`
	ValidUntil          *time.Time      `json:"valid_until,omitempty"`
	ModifiedBy          *int32          `json:"modified_by,omitempty"`
}
