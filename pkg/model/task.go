package model

import (
	"fmt"
	"time"
)

// DateLayout is the ISO-8601 calendar date layout produced by date pickers.
const DateLayout = "2006-01-02"

// Date is an optional calendar date kept verbatim as entered.
// The empty string means "unset".
type Date string

// NewDate formats t as a Date.
func NewDate(t time.Time) Date {
	if t.IsZero() {
		return ""
	}
	return Date(t.Format(DateLayout))
}

// IsZero reports whether the date is unset.
func (d Date) IsZero() bool {
	return d == ""
}

// Time parses the date in loc. An unset date yields the zero time.
func (d Date) Time(loc *time.Location) (time.Time, error) {
	if d.IsZero() {
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation(DateLayout, string(d), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", string(d), err)
	}
	return t, nil
}

// Task is a single to-do item. Field names on the wire are kept stable so
// previously stored snapshots stay readable.
type Task struct {
	ID          int64  `json:"id" yaml:"id" toml:"id"`
	Title       string `json:"text" yaml:"text" toml:"text"`
	Description string `json:"textarea" yaml:"textarea" toml:"textarea"`
	Completed   bool   `json:"completed" yaml:"completed" toml:"completed"`
	StartDate   Date   `json:"startDate" yaml:"startDate" toml:"startDate"`
	EndDate     Date   `json:"endDate" yaml:"endDate" toml:"endDate"`
}

// HasDates reports whether either end of the date range is set.
func (t Task) HasDates() bool {
	return !t.StartDate.IsZero() || !t.EndDate.IsZero()
}
