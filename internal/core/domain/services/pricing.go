package services

import (
	"fmt"
	"math"

	"dispatch/internal/pkg/errs"
)

// DefaultHourlyRateCents is the standard cleaning rate, $45.00 per hour.
const DefaultHourlyRateCents = 4500

// Pricer computes job prices from the requested duration.
type Pricer struct {
	hourlyRateCents int64
}

func NewPricer(hourlyRateCents int) (Pricer, error) {
	if hourlyRateCents <= 0 {
		return Pricer{}, errs.NewValueIsInvalidErrorWithCause(
			"hourly rate", fmt.Errorf("%d is not greater than 0", hourlyRateCents))
	}
	return Pricer{hourlyRateCents: int64(hourlyRateCents)}, nil
}

// Price returns round(minutes / 60 * rate) in cents, at least 1. A price that
// does not fit the price_cents column is out of range.
// Rounding is half away from zero and done in integer arithmetic,
// so 30 minutes at 4500/h is exactly 2250.
func (p Pricer) Price(minutes int) (int, error) {
	if minutes <= 0 {
		return 0, errs.NewValueIsInvalidErrorWithCause("minutes", fmt.Errorf("%d is not greater than 0", minutes))
	}
	if p.hourlyRateCents <= 0 {
		return 0, errs.NewValueIsRequiredError("hourly rate")
	}

	cents := (int64(minutes)*p.hourlyRateCents + 30) / 60
	if cents > math.MaxInt32 {
		return 0, errs.NewValueIsOutOfRangeError("price", cents, 1, math.MaxInt32)
	}
	return int(max(cents, 1)), nil
}
