package pricing

import (
	"math"
	"time"

	"gearmarket-backend/internal/domain"
)

const (
	daysPerWeek  = 7
	daysPerMonth = 30
)

// DurationDays computes the rental duration in days as
// ceil((end - start) / 24h), floored at 1 day.
func DurationDays(start, end time.Time) int32 {
	hours := end.Sub(start).Hours()
	days := int32(math.Ceil(hours / 24))
	if days < 1 {
		days = 1
	}
	return days
}

// SelectRate picks the per-day rate for a duration following the tier rule:
// monthly/30 when the rental runs 30 days or more and a monthly rate is
// offered, weekly/7 when it runs 7 days or more and a weekly rate is
// offered, otherwise the daily rate. The derived per-day rate is rounded
// to the nearest cent.
func SelectRate(p domain.ProductPricing, durationDays int32) (int64, domain.DurationType) {
	if durationDays >= daysPerMonth && p.MonthlyCents > 0 {
		return roundedDiv(p.MonthlyCents, daysPerMonth), domain.DurationTypeMonthly
	}
	if durationDays >= daysPerWeek && p.WeeklyCents > 0 {
		return roundedDiv(p.WeeklyCents, daysPerWeek), domain.DurationTypeWeekly
	}
	return p.DailyCents, domain.DurationTypeDaily
}

// Charge computes the rental charge for one line item:
// selected per-day rate x duration x quantity.
func Charge(p domain.ProductPricing, durationDays, quantity int32) (int64, domain.DurationType) {
	rate, tier := SelectRate(p, durationDays)
	return rate * int64(durationDays) * int64(quantity), tier
}

// Tax computes tax on a subtotal at a basis-point rate (1000 = 10%),
// rounded to the nearest cent. Security deposits are not taxed.
func Tax(subtotalCents int64, rateBps int32) int64 {
	return roundedDiv(subtotalCents*int64(rateBps), 10000)
}

// roundedDiv divides non-negative cents amounts, rounding half up.
func roundedDiv(amount, divisor int64) int64 {
	return (amount + divisor/2) / divisor
}
