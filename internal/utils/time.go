package utils

import "time"

// DayKey renders t as a calendar-day string. Day-scoped caches compare these
// keys by string equality, so two times on the same local day always produce
// the same key regardless of time of day.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
