package common

import "time"

// Freshness TTLs for portal-side data.
//
// The snapshot document only changes when the builder runs (daily/weekly),
// so a 1-hour window avoids re-reading it on every page view without ever
// serving meaningfully stale returns. Allocations are immutable reference
// data and are memoised for the life of the process.
const (
	FreshnessSnapshot = 1 * time.Hour
)

// IsFresh reports whether stored is still within ttl as of now. Taking the
// evaluation time explicitly keeps callers with an injected clock testable.
// A zero stored time is never fresh.
func IsFresh(stored, now time.Time, ttl time.Duration) bool {
	if stored.IsZero() {
		return false
	}
	return now.Sub(stored) < ttl
}

// RollingBaseline returns the ISO date exactly 12 calendar months before
// now. This is the start of the trailing-return window and must be
// recomputed on every use: a cached snapshot whose baseline date no longer
// matches is treated as produced under an older window and discarded.
func RollingBaseline(now time.Time) string {
	return ISODate(now.AddDate(-1, 0, 0))
}

// ISODate formats a time as an ISO calendar date ("2006-01-02").
func ISODate(t time.Time) string {
	return t.Format("2006-01-02")
}
