// Package freshness derives inventory freshness statuses from expiry dates.
package freshness

import (
	"time"

	"rasoimate/internal/models"
)

// ExpiringWindowDays is the number of days before expiry during which an
// item counts as expiring. The window is inclusive on both ends: an item
// expiring today and an item expiring in exactly seven days are both
// reported as expiring.
const ExpiringWindowDays = 7

// DateLayout is the wire format for expiry dates (calendar date, no time)
const DateLayout = "2006-01-02"

// Classify maps an optional expiry date and a reference time to a freshness
// status. Both dates are truncated to local midnight before comparison, so
// the time-of-day of either argument never affects the result. A nil expiry
// always classifies as fresh.
func Classify(expiry *time.Time, today time.Time) models.FreshnessStatus {
	if expiry == nil {
		return models.StatusFresh
	}

	diffDays := daysBetween(today, *expiry)
	switch {
	case diffDays < 0:
		return models.StatusExpired
	case diffDays <= ExpiringWindowDays:
		return models.StatusExpiring
	default:
		return models.StatusFresh
	}
}

// Midnight truncates a time to local midnight
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// daysBetween counts whole calendar days from one date to another. The
// calendar dates are re-anchored in UTC so that DST transitions cannot
// shorten or stretch a day.
func daysBetween(from, to time.Time) int {
	fy, fm, fd := from.Date()
	ty, tm, td := to.Date()
	f := time.Date(fy, fm, fd, 0, 0, 0, 0, time.UTC)
	t := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	return int(t.Sub(f).Hours() / 24)
}

// ParseExpiry parses an ISO calendar date. Malformed input is rejected with
// a validation error rather than silently treated as fresh.
func ParseExpiry(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, models.NewValidationError("expiry", "must be a calendar date in YYYY-MM-DD form")
	}
	return t, nil
}
