package utils

import (
	"testing"
	"time"
)

func TestDayKey(t *testing.T) {
	cases := []struct {
		in   time.Time
		want string
	}{
		{time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC), "2026-08-31"},
		{time.Date(2026, 8, 31, 23, 59, 59, 0, time.UTC), "2026-08-31"},
		{time.Date(2026, 1, 2, 12, 0, 0, 0, time.UTC), "2026-01-02"},
	}
	for _, tc := range cases {
		if got := DayKey(tc.in); got != tc.want {
			t.Errorf("DayKey(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestDayKey_DistinguishesDays(t *testing.T) {
	a := time.Date(2026, 8, 31, 23, 59, 59, 0, time.UTC)
	b := a.Add(time.Second)
	if DayKey(a) == DayKey(b) {
		t.Errorf("adjacent days share a key: %q", DayKey(a))
	}
}
