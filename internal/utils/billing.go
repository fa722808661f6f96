package utils

import (
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"gamehub-backend/internal/domain"
)

var two = decimal.NewFromInt(2)

// ElapsedMinutes returns the whole minutes between start and now, rounded up,
// with a floor of one minute. A rental that is closed the instant it opens
// still bills as one minute of use.
func ElapsedMinutes(start, now time.Time) int32 {
	mins := int32(math.Ceil(now.Sub(start).Minutes()))
	if mins < 1 {
		mins = 1
	}
	return mins
}

// TimeCost computes the tiered partial-hour charge. Full hours bill at the
// hourly rate. A remainder of 36-59 minutes bills a whole extra hour; 1-35
// minutes bills half an hour; an exact hour boundary adds nothing. The
// 36-minute threshold is the shop's rule, not a rounding artifact.
func TimeCost(elapsedMinutes int32, hourlyRate decimal.Decimal) decimal.Decimal {
	fullHours := elapsedMinutes / 60
	remainder := elapsedMinutes % 60

	total := hourlyRate.Mul(decimal.NewFromInt32(fullHours))
	switch {
	case remainder >= 36:
		total = total.Add(hourlyRate)
	case remainder >= 1:
		total = total.Add(hourlyRate.Div(two))
	}
	return total
}

// ComputeCharge is the single authoritative billing function. Both the
// finalize path and the estimate preview go through it so the ticket shown
// to the customer always matches the amount persisted.
func ComputeCharge(elapsedMinutes int32, hourlyRate, extraControllerRate decimal.Decimal, extraControllers int32) domain.Charge {
	timeCost := TimeCost(elapsedMinutes, hourlyRate)
	extraCost := extraControllerRate.Mul(decimal.NewFromInt32(extraControllers))

	return domain.Charge{
		ElapsedMinutes:      elapsedMinutes,
		FullHours:           elapsedMinutes / 60,
		RemainderMinutes:    elapsedMinutes % 60,
		TimeCost:            timeCost,
		ExtraControllerCost: extraCost,
		FinalTotal:          timeCost.Add(extraCost).Round(2),
	}
}

// FormatFolio builds the human ticket code: PREFIX-YYYYMMDD-NNNN, where NNNN
// are the four low-order digits of a monotonic counter. Uniqueness is
// best-effort by design; the rental id remains the real key.
func FormatFolio(prefix string, day time.Time, counter int64) string {
	return fmt.Sprintf("%s-%s-%04d", prefix, day.Format("20060102"), counter%10000)
}
