package tracking

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// MinimumHours is the smallest billable block: any tracked session shorter
// than 15 minutes bills as 0.25 hours.
var MinimumHours = decimal.RequireFromString("0.25")

// MinimumMinutes is the minute-granularity floor matching MinimumHours.
const MinimumMinutes = 15

// HoursFromDuration converts an elapsed duration to billable hours:
// minutes/60 rounded to two decimals, floored at MinimumHours.
func HoursFromDuration(d time.Duration) decimal.Decimal {
	hours := decimal.NewFromFloat(d.Minutes()).Div(decimal.NewFromInt(60)).Round(2)
	if hours.LessThan(MinimumHours) {
		return MinimumHours
	}
	return hours
}

// MinutesFromDuration converts an elapsed duration to whole billable
// minutes, floored at MinimumMinutes.
//
// The two converters apply their floors independently; at boundary values
// they can disagree with each other's rounding. That mirrors how the
// tracked values are displayed and is deliberate.
func MinutesFromDuration(d time.Duration) int {
	minutes := int(math.Round(d.Minutes()))
	if minutes < MinimumMinutes {
		return MinimumMinutes
	}
	return minutes
}
