package domain

import (
	"errors"
	"testing"
)

func TestSalonDayWindowDefaults(t *testing.T) {
	// No configured rows at all: every day falls back to 08:00-18:00.
	window, open := SalonDayWindow(nil, 2)
	if !open {
		t.Fatal("unconfigured weekday must be open")
	}
	if window != DefaultSalonWindow {
		t.Errorf("window = %v, want default %v", window, DefaultSalonWindow)
	}
}

func TestSalonDayWindowExplicitEntry(t *testing.T) {
	hours := []OpeningHour{
		{Weekday: 0, Open: MustClock("10:00"), Close: MustClock("19:00")},
		{Weekday: 6, Closed: true},
	}

	window, open := SalonDayWindow(hours, 0)
	if !open {
		t.Fatal("Monday must be open")
	}
	if window.Start != MustClock("10:00") || window.End != MustClock("19:00") {
		t.Errorf("Monday window = %v-%v, want 10:00-19:00", window.Start, window.End)
	}

	if _, open := SalonDayWindow(hours, 6); open {
		t.Error("Sunday is marked closed, expected open=false")
	}

	// A weekday with no row still defaults, even when others are configured.
	window, open = SalonDayWindow(hours, 3)
	if !open || window != DefaultSalonWindow {
		t.Errorf("Thursday = %v open=%v, want default window open", window, open)
	}
}

func TestEmployeeDayWindowFollowsSalonWhenAbsent(t *testing.T) {
	salon := Window{Start: MustClock("08:00"), End: MustClock("18:00")}

	window, working, err := EmployeeDayWindow(nil, 0, salon)
	if err != nil || !working {
		t.Fatalf("absent schedule: working=%v err=%v, want working", working, err)
	}
	if window != salon {
		t.Errorf("window = %v, want salon window %v", window, salon)
	}

	// Blank entries are treated the same as absent ones.
	window, working, err = EmployeeDayWindow(map[string]string{"lundi": "  "}, 0, salon)
	if err != nil || !working || window != salon {
		t.Errorf("blank entry: window=%v working=%v err=%v, want salon window", window, working, err)
	}
}

func TestEmployeeDayWindowOverride(t *testing.T) {
	salon := Window{Start: MustClock("08:00"), End: MustClock("18:00")}
	schedule := map[string]string{"mardi": "09:00-14:00"}

	window, working, err := EmployeeDayWindow(schedule, 1, salon)
	if err != nil || !working {
		t.Fatalf("working=%v err=%v, want working", working, err)
	}
	if window.Start != MustClock("09:00") || window.End != MustClock("14:00") {
		t.Errorf("window = %v-%v, want 09:00-14:00", window.Start, window.End)
	}
}

func TestEmployeeDayWindowMalformedMeansDayOff(t *testing.T) {
	salon := Window{Start: MustClock("08:00"), End: MustClock("18:00")}

	for _, raw := range []string{"garbage", "09:00", "25:00-26:00", "14:00-09:00", "09:00-09:00"} {
		_, working, err := EmployeeDayWindow(map[string]string{"lundi": raw}, 0, salon)
		if working {
			t.Errorf("%q: expected day off", raw)
		}
		var malformed *MalformedScheduleError
		if !errors.As(err, &malformed) {
			t.Errorf("%q: expected MalformedScheduleError, got %v", raw, err)
			continue
		}
		if malformed.Raw != raw || malformed.Weekday != "lundi" {
			t.Errorf("%q: error carries %q/%q, want raw value and weekday name", raw, malformed.Raw, malformed.Weekday)
		}
	}
}
