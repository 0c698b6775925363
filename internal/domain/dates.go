package domain

import "time"

// DateLayout is the storage and display layout for schedule dates.
const DateLayout = "2006-01-02"

// AddDays offsets t by n calendar days.
func AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

// ParseDate parses a YYYY-MM-DD string as a UTC date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}
