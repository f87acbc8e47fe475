// Package timeutil provides utility functions and types for working with
// time-related operations.
package timeutil

import (
	"fmt"
	"math"
	"time"
)

// DayKeyLayout is the layout of calendar day keys. Keys in this layout sort
// lexicographically in chronological order.
const DayKeyLayout = "2006-01-02"

// Round rounds a time value in seconds, minutes, or hours to the nearest integer.
func Round(t float64) int {
	return int(math.Round(t))
}

// RoundToStart resets the given time to the start of the day.
func RoundToStart(t time.Time) time.Time {
	return time.Date(
		t.Year(),
		t.Month(),
		t.Day(),
		0,
		0,
		0,
		0,
		t.Location(),
	)
}

// RoundToEnd resets the given time to the last instant of the day.
func RoundToEnd(t time.Time) time.Time {
	return time.Date(
		t.Year(),
		t.Month(),
		t.Day(),
		23,
		59,
		59,
		int(time.Second-time.Nanosecond),
		t.Location(),
	)
}

// StartOfMonth returns midnight on the first day of the month of t.
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// EndOfMonth returns the last instant of the month of t.
func EndOfMonth(t time.Time) time.Time {
	return RoundToEnd(StartOfMonth(t).AddDate(0, 1, -1))
}

// StartOfWeek returns midnight on the Sunday that begins the week of t.
func StartOfWeek(t time.Time) time.Time {
	return RoundToStart(t).AddDate(0, 0, -int(t.Weekday()))
}

// DayKey returns the calendar day of t in loc, formatted as yyyy-MM-dd.
func DayKey(t time.Time, loc *time.Location) string {
	if loc != nil {
		t = t.In(loc)
	}

	return t.Format(DayKeyLayout)
}

// HMS splits a duration into whole hours, minutes and seconds. Negative
// durations are treated as zero.
func HMS(d time.Duration) (hrs, mins, secs int) {
	if d < 0 {
		d = 0
	}

	total := int(d / time.Second)

	hrs = total / 3600
	mins = (total % 3600) / 60
	secs = total % 60

	return
}

// FormatDuration renders a duration as "<H>h <M>m <S>s".
func FormatDuration(d time.Duration) string {
	h, m, s := HMS(d)

	return fmt.Sprintf("%dh %dm %ds", h, m, s)
}

// FormatClock renders a duration as a zero padded HH:MM:SS stopwatch face.
func FormatClock(d time.Duration) string {
	h, m, s := HMS(d)

	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// Seconds converts a fractional number of seconds to a time.Duration.
func Seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
