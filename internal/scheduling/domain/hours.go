package domain

import (
	"fmt"
	"strings"
)

// OpeningHour is one row of a salon's weekly opening-hours table.
type OpeningHour struct {
	Weekday int // Monday = 0
	Open    TimeOfDay
	Close   TimeOfDay
	Closed  bool
}

// DefaultSalonWindow is substituted when a salon has no configured entry
// for a weekday. Hours that were never configured must not make the salon
// unbookable.
var DefaultSalonWindow = Window{Start: MustClock("08:00"), End: MustClock("18:00")}

// SalonDayWindow resolves a salon's effective open/close window for a
// weekday. Returns the window and whether the salon is open at all.
func SalonDayWindow(hours []OpeningHour, weekday int) (Window, bool) {
	return SalonDayWindowWithDefault(hours, weekday, DefaultSalonWindow)
}

// SalonDayWindowWithDefault is SalonDayWindow with a caller-supplied
// fallback window, letting deployments configure their own default hours.
func SalonDayWindowWithDefault(hours []OpeningHour, weekday int, fallback Window) (Window, bool) {
	for _, entry := range hours {
		if entry.Weekday != weekday {
			continue
		}
		if entry.Closed {
			return Window{}, false
		}
		return Window{Start: entry.Open, End: entry.Close}, true
	}
	return fallback, true
}

// MalformedScheduleError reports an unparsable employee working-hours
// override. The resolver degrades to "day off"; callers log and continue.
type MalformedScheduleError struct {
	Weekday string
	Raw     string
}

func (e *MalformedScheduleError) Error() string {
	return fmt.Sprintf("malformed schedule for %s: %q", e.Weekday, e.Raw)
}

// EmployeeDayWindow resolves an employee's working window for a weekday.
//
// The schedule maps weekday names to "HH:MM-HH:MM" ranges. An absent entry
// means the employee follows the salon's window for that date. An entry
// that cannot be parsed means "day off" — never extra hours — and a
// *MalformedScheduleError is returned alongside for logging.
func EmployeeDayWindow(schedule map[string]string, weekday int, salon Window) (Window, bool, error) {
	raw, ok := schedule[WeekdayName(weekday)]
	if !ok || strings.TrimSpace(raw) == "" {
		return salon, true, nil
	}

	window, err := parseRange(raw)
	if err != nil {
		return Window{}, false, &MalformedScheduleError{Weekday: WeekdayName(weekday), Raw: raw}
	}
	if window.IsEmpty() {
		return Window{}, false, &MalformedScheduleError{Weekday: WeekdayName(weekday), Raw: raw}
	}

	return window, true, nil
}

// parseRange parses a "HH:MM-HH:MM" working-hours override.
func parseRange(raw string) (Window, error) {
	parts := strings.SplitN(strings.TrimSpace(raw), "-", 2)
	if len(parts) != 2 {
		return Window{}, fmt.Errorf("invalid range %q", raw)
	}

	start, err := ParseClock(parts[0])
	if err != nil {
		return Window{}, err
	}
	end, err := ParseClock(parts[1])
	if err != nil {
		return Window{}, err
	}

	return Window{Start: start, End: end}, nil
}
