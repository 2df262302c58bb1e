// Package schedule provides the calendar arithmetic for cron-triggered
// collection jobs.
package schedule

import (
	"fmt"
	"time"
)

// Frequency is how often a job runs.
type Frequency string

// Supported frequencies.
const (
	Daily   Frequency = "daily"
	Weekly  Frequency = "weekly"
	Monthly Frequency = "monthly"
)

// NextRunAt returns the next run time after from: the following midnight
// UTC for daily jobs, the following Monday midnight for weekly jobs, and
// the first of the following month for monthly jobs.
func NextRunAt(freq Frequency, from time.Time) (time.Time, error) {
	from = from.UTC()
	midnight := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)

	switch freq {
	case Daily:
		return midnight.AddDate(0, 0, 1), nil
	case Weekly:
		daysUntilMonday := (int(time.Monday) - int(midnight.Weekday()) + 7) % 7
		if daysUntilMonday == 0 {
			daysUntilMonday = 7
		}
		return midnight.AddDate(0, 0, daysUntilMonday), nil
	case Monthly:
		return time.Date(from.Year(), from.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0), nil
	default:
		return time.Time{}, fmt.Errorf("unknown frequency %q", freq)
	}
}

// ShouldRunNow reports whether a job with the given frequency and last run
// time is due at now. A job that has never run is always due.
func ShouldRunNow(freq Frequency, lastRun *time.Time, now time.Time) (bool, error) {
	if lastRun == nil {
		return true, nil
	}
	next, err := NextRunAt(freq, *lastRun)
	if err != nil {
		return false, err
	}
	return !now.UTC().Before(next), nil
}

// RunID returns the storage run identifier for a run at the given time:
// YYYY-MM-DD for daily jobs, YYYY-MM for monthly jobs.
func RunID(freq Frequency, at time.Time) string {
	at = at.UTC()
	if freq == Monthly {
		return at.Format("2006-01")
	}
	return at.Format("2006-01-02")
}
