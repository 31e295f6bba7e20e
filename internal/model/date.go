package model

import (
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Date is a calendar date without a time-of-day component. Follow-up and
// first-contact dates are compared day-by-day, never by timestamp.
type Date struct {
	time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar day.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, m, d)
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date{Time: t}, nil
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// SameDay reports whether d falls on the same calendar day as t.
func (d Date) SameDay(t time.Time) bool {
	return d.Year() == t.Year() && d.YearDay() == t.YearDay()
}

// BeforeDay reports whether d is strictly before the calendar day of t.
func (d Date) BeforeDay(t time.Time) bool {
	return d.Time.Before(DateOf(t).Time)
}

// AfterDay reports whether d is strictly after the calendar day of t.
func (d Date) AfterDay(t time.Time) bool {
	return d.Time.After(DateOf(t).Time)
}

func (d Date) AddDays(n int) Date {
	return DateOf(d.AddDate(0, 0, n))
}
