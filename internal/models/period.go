package models

import (
	"fmt"
	"time"
)

// Period restricts a query or summary to one calendar month.
// The zero value means "all time".
type Period struct {
	Year  int
	Month time.Month
}

// AllTime is the unrestricted period.
var AllTime = Period{}

// MonthOf returns the period containing t, evaluated in UTC.
func MonthOf(t time.Time) Period {
	t = t.UTC()
	return Period{Year: t.Year(), Month: t.Month()}
}

// IsAllTime reports whether p applies no restriction.
func (p Period) IsAllTime() bool {
	return p.Year == 0 && p.Month == 0
}

// Validate checks that a restricted period names a real month.
func (p Period) Validate() error {
	if p.IsAllTime() {
		return nil
	}
	if p.Month < time.January || p.Month > time.December {
		return fmt.Errorf("invalid month %d: must be between 1 and 12", p.Month)
	}
	if p.Year < 1 || p.Year > 9999 {
		return fmt.Errorf("invalid year %d", p.Year)
	}
	return nil
}

// Bounds returns the half-open UTC interval [start, end) covered by p.
// Only meaningful when p is not AllTime.
func (p Period) Bounds() (start, end time.Time) {
	start = time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

// Contains reports whether t falls inside p.
func (p Period) Contains(t time.Time) bool {
	if p.IsAllTime() {
		return true
	}
	start, end := p.Bounds()
	t = t.UTC()
	return !t.Before(start) && t.Before(end)
}

func (p Period) String() string {
	if p.IsAllTime() {
		return "all time"
	}
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}
