package jobs

import (
	"context"
	"time"

	"gamehub-backend/internal/logger"
)

// SendEarningsDigest mails the current business day's earnings summary to
// every active manager. Scheduled after closing, 23:05 in the shop's local
// timezone, so the day it reports on is effectively complete.
func (jr *JobRunner) SendEarningsDigest() {
	jr.runWithRecovery("SendEarningsDigest", func() {
		ctx := context.Background()

		loc, err := time.LoadLocation(jr.config.Billing.Timezone)
		if err != nil {
			logger.Error("Invalid billing timezone", "timezone", jr.config.Billing.Timezone, "error", err)
			return
		}

		now := time.Now().In(loc)
		dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
		dayEnd := dayStart.Add(24*time.Hour - time.Nanosecond)

		report, err := jr.services.Rental.EarningsReport(ctx, dayStart, dayEnd)
		if err != nil {
			logger.Error("Failed to build earnings report", "error", err)
			return
		}
		if len(report.Days) == 0 {
			logger.Info("No finalized rentals today, skipping digest")
			return
		}

		managers, err := jr.userRepo.ListActiveManagers(ctx)
		if err != nil {
			logger.Error("Failed to list managers", "error", err)
			return
		}

		sent := 0
		for _, m := range managers {
			name := m.FirstName + " " + m.LastName
			if err := jr.services.Email.SendEarningsDigest(ctx, m.Email, name, report); err != nil {
				logger.Error("Failed to send digest", "to", m.Email, "error", err)
				continue
			}
			sent++
		}
		logger.Info("Earnings digest distributed", "managers", sent, "grand_total", report.GrandTotal)
	})
}

// SweepLongRunningRentals flags active rentals older than the configured
// threshold. Forgotten checkouts otherwise keep accruing charges silently.
func (jr *JobRunner) SweepLongRunningRentals() {
	jr.runWithRecovery("SweepLongRunningRentals", func() {
		ctx := context.Background()

		rentals, err := jr.services.Rental.ListActiveRentals(ctx)
		if err != nil {
			logger.Error("Failed to list active rentals", "error", err)
			return
		}

		cutoff := time.Now().Add(-time.Duration(jr.config.Billing.LongRentalHours) * time.Hour)
		flagged := 0
		for _, r := range rentals {
			if r.Rental.StartTime.After(cutoff) {
				continue
			}
			flagged++
			logger.Warn("Rental open past threshold",
				"rental_id", r.Rental.ID,
				"folio", r.Rental.Folio,
				"cubicle", r.Rental.CubicleLabel,
				"started", r.Rental.StartTime,
				"hours_open", int(time.Since(r.Rental.StartTime).Hours()),
			)
		}

		if flagged > 0 {
			logger.Info("Long-running rental sweep finished", "flagged", flagged, "active", len(rentals))
		}
	})
}
