package utils

import "time"

// AddMonths adds n calendar months to t. Consent validity is configured in
// months, so the deadline has to move by whole calendar months; a fixed
// 30-day approximation drifts by several days per year.
func AddMonths(t time.Time, n int) time.Time {
	return t.AddDate(0, n, 0)
}

// MonthsMaxAge returns the number of seconds from now until n calendar
// months from now, for use as a cookie Max-Age.
func MonthsMaxAge(now time.Time, n int) int {
	return int(AddMonths(now, n).Sub(now) / time.Second)
}
