package services

import "time"

type Clock interface {
	Now() time.Time
}

type systemClock struct {
	location *time.Location
}

func NewClock(location *time.Location) Clock {
	return systemClock{location: location}
}

func (c systemClock) Now() time.Time {
	return time.Now().In(c.location)
}

type fixedClock struct {
	now time.Time
}

// NewFixedClock always reports the same moment.
func NewFixedClock(now time.Time) Clock {
	return fixedClock{now: now}
}

func (c fixedClock) Now() time.Time {
	return c.now
}

// Day truncates a moment to the calendar day it falls on, the way DATE columns are read back.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func today(c Clock) time.Time {
	return Day(c.Now())
}

func addDays(day time.Time, days int) time.Time {
	return day.AddDate(0, 0, days)
}

func daysBetween(from, to time.Time) int {
	return int(Day(to).Sub(Day(from)).Hours() / 24)
}
