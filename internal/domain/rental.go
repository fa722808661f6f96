package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type RentalStatus string

const (
	RentalStatusActive    RentalStatus = "active"
	RentalStatusFinalized RentalStatus = "finalized"
)

type Rental struct {
	ID               int32            `json:"id"`
	Folio            string           `json:"folio"`
	CubicleLabel     string           `json:"cubicle_label"`
	EmployeeID       int32            `json:"employee_id"`
	Status           RentalStatus     `json:"status"`
	StartTime        time.Time        `json:"start_time"`
	EndTime          *time.Time       `json:"end_time,omitempty"`
	TotalMinutesUsed *int32           `json:"total_minutes_used,omitempty"`
	BaseTotal        *decimal.Decimal `json:"base_total,omitempty"`
	FinalTotal       *decimal.Decimal `json:"final_total,omitempty"`
	Notes            string           `json:"notes,omitempty"`
	CreatedOn        time.Time        `json:"created_on"`
	FinalizedOn      *time.Time       `json:"finalized_on,omitempty"`
}

// RentalDetail is the single line item of a rental: the console, the number
// of controllers rented beyond the included one, and the rates captured from
// the active price schedule when the rental started. All billing uses these
// snapshots, not live schedule rows.
type RentalDetail struct {
	ID                         int32           `json:"id"`
	RentalID                   int32           `json:"rental_id"`
	ConsoleID                  int32           `json:"console_id"`
	ExtraControllerCount       int32           `json:"extra_controller_count"`
	HourlyRateApplied          decimal.Decimal `json:"hourly_rate_applied"`
	ExtraControllerRateApplied decimal.Decimal `json:"extra_controller_rate_applied"`
	Subtotal                   decimal.Decimal `json:"subtotal"`
	// Populated when fetching rentals with their console.
	Console *Console `json:"console,omitempty"`
}

// RentalWithDetail pairs a rental with its one detail row.
type RentalWithDetail struct {
	Rental
	Detail *RentalDetail `json:"detail,omitempty"`
}

// Charge is the billing outcome of finalizing (or previewing) a rental.
type Charge struct {
	ElapsedMinutes      int32           `json:"elapsed_minutes"`
	FullHours           int32           `json:"full_hours"`
	RemainderMinutes    int32           `json:"remainder_minutes"`
	TimeCost            decimal.Decimal `json:"time_cost"`
	ExtraControllerCost decimal.Decimal `json:"extra_controller_cost"`
	FinalTotal          decimal.Decimal `json:"final_total"`
}

// DailyEarnings groups finalized rentals by the local calendar day they closed.
type DailyEarnings struct {
	Date    string             `json:"date"` // YYYY-MM-DD in the deployment timezone
	Total   decimal.Decimal    `json:"total"`
	Rentals []RentalWithDetail `json:"rentals"`
}

type EarningsReport struct {
	From       time.Time       `json:"from"`
	To         time.Time       `json:"to"`
	Days       []DailyEarnings `json:"days"`
	GrandTotal decimal.Decimal `json:"grand_total"`
}
