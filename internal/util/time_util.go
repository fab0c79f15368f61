package util

import (
	"time"
)

// TruncateToDay drops the time-of-day component, keeping UTC calendar dates
// comparable regardless of where a timestamp came from.
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
