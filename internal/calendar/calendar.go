// Package calendar converts option expiry date strings into the
// years-to-expiry figure the pricing model takes as T.
package calendar

import (
	"fmt"
	"time"
)

// DefaultLayout parses expiries written like "1/21/2022".
const DefaultLayout = "1/2/2006"

// yearHours is the fixed 365-day year used to annualize the time to expiry.
const yearHours = 365 * 24

// ParseExpiry parses an expiry date string. An empty layout falls back to
// DefaultLayout.
func ParseExpiry(datestring, layout string) (time.Time, error) {
	if layout == "" {
		layout = DefaultLayout
	}
	expiry, err := time.Parse(layout, datestring)
	if err != nil {
		return time.Time{}, fmt.Errorf("calendar: parsing expiry %q: %w", datestring, err)
	}
	return expiry, nil
}

// YearsToExpiry returns the time from now until the expiry described by
// datestring, in fractional years. The result is negative when the expiry
// has already passed; callers must guard before feeding it to the model.
func YearsToExpiry(datestring, layout string) (float64, error) {
	return YearsToExpiryAt(datestring, layout, time.Now())
}

// YearsToExpiryAt is YearsToExpiry evaluated against an explicit current
// time, for deterministic callers and tests.
func YearsToExpiryAt(datestring, layout string, now time.Time) (float64, error) {
	expiry, err := ParseExpiry(datestring, layout)
	if err != nil {
		return 0, err
	}
	return YearsBetween(now, expiry), nil
}

// YearsBetween returns the span from now to expiry in fractional 365-day
// years.
func YearsBetween(now, expiry time.Time) float64 {
	return expiry.Sub(now).Hours() / yearHours
}
