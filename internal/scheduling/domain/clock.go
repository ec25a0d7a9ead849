// Package domain contains the pure scheduling logic: time windows,
// overlap detection, slot enumeration, the appointment state machine and
// the permission matrix. It has no persistence or transport dependencies.
package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TimeOfDay is a wall-clock time expressed as minutes since midnight.
// Using minutes keeps interval arithmetic exact and comparison trivial.
type TimeOfDay int

// MinutesPerDay bounds valid TimeOfDay values.
const MinutesPerDay = 24 * 60

// ParseClock parses "HH:MM" (or "H:MM") into a TimeOfDay.
func ParseClock(s string) (TimeOfDay, error) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid clock value %q", s)
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 || hours > 23 {
		return 0, fmt.Errorf("invalid clock value %q", s)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes < 0 || minutes > 59 || len(parts[1]) != 2 {
		return 0, fmt.Errorf("invalid clock value %q", s)
	}

	return TimeOfDay(hours*60 + minutes), nil
}

// MustClock parses a clock value and panics on failure. For constants in
// tests and default configuration only.
func MustClock(s string) TimeOfDay {
	t, err := ParseClock(s)
	if err != nil {
		panic(err)
	}
	return t
}

// FromTime converts the clock portion of a time.Time to a TimeOfDay.
func FromTime(t time.Time) TimeOfDay {
	return TimeOfDay(t.Hour()*60 + t.Minute())
}

// String formats the time as "HH:MM".
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// Add returns the time shifted by the given number of minutes.
func (t TimeOfDay) Add(minutes int) TimeOfDay {
	return t + TimeOfDay(minutes)
}

// Window is a half-open [Start, End) wall-clock interval within one day.
type Window struct {
	Start TimeOfDay
	End   TimeOfDay
}

// IsEmpty reports whether the window contains no time.
func (w Window) IsEmpty() bool {
	return w.Start >= w.End
}

// Intersect returns the overlap of two windows. The result may be empty.
func (w Window) Intersect(other Window) Window {
	out := Window{Start: w.Start, End: w.End}
	if other.Start > out.Start {
		out.Start = other.Start
	}
	if other.End < out.End {
		out.End = other.End
	}
	return out
}

// WeekdayIndex maps a calendar date to the Monday=0 weekday convention
// used by the opening-hours table and employee schedules.
func WeekdayIndex(date time.Time) int {
	return (int(date.Weekday()) + 6) % 7
}

// weekdayNames are the schedule keys for employee overrides, Monday first.
var weekdayNames = [7]string{
	"lundi", "mardi", "mercredi", "jeudi", "vendredi", "samedi", "dimanche",
}

// WeekdayName returns the schedule key for a Monday=0 weekday index.
func WeekdayName(weekday int) string {
	if weekday < 0 || weekday > 6 {
		return ""
	}
	return weekdayNames[weekday]
}
