package domain

import (
	"testing"
	"time"
)

func TestParseClock(t *testing.T) {
	cases := []struct {
		in      string
		want    TimeOfDay
		wantErr bool
	}{
		{"08:00", 480, false},
		{"00:00", 0, false},
		{"23:59", 1439, false},
		{"9:30", 570, false},
		{" 10:15 ", 615, false},
		{"24:00", 0, true},
		{"12:60", 0, true},
		{"12:5", 0, true},
		{"noon", 0, true},
		{"", 0, true},
		{"12", 0, true},
	}

	for _, tc := range cases {
		got, err := ParseClock(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseClock(%q): expected error, got %v", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseClock(%q): unexpected error: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseClock(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestTimeOfDayString(t *testing.T) {
	if got := MustClock("08:05").String(); got != "08:05" {
		t.Errorf("String() = %q, want %q", got, "08:05")
	}
	if got := MustClock("17:30").Add(30).String(); got != "18:00" {
		t.Errorf("Add(30).String() = %q, want %q", got, "18:00")
	}
}

func TestWeekdayIndex(t *testing.T) {
	monday := time.Date(2026, time.August, 31, 0, 0, 0, 0, time.UTC)
	sunday := time.Date(2026, time.August, 30, 0, 0, 0, 0, time.UTC)

	if got := WeekdayIndex(monday); got != 0 {
		t.Errorf("WeekdayIndex(Monday) = %d, want 0", got)
	}
	if got := WeekdayIndex(sunday); got != 6 {
		t.Errorf("WeekdayIndex(Sunday) = %d, want 6", got)
	}
	if got := WeekdayName(WeekdayIndex(monday)); got != "lundi" {
		t.Errorf("WeekdayName(Monday) = %q, want %q", got, "lundi")
	}
	if got := WeekdayName(WeekdayIndex(sunday)); got != "dimanche" {
		t.Errorf("WeekdayName(Sunday) = %q, want %q", got, "dimanche")
	}
}

func TestWindowIntersect(t *testing.T) {
	salon := Window{Start: MustClock("08:00"), End: MustClock("18:00")}
	employee := Window{Start: MustClock("09:00"), End: MustClock("14:00")}

	got := salon.Intersect(employee)
	if got.Start != MustClock("09:00") || got.End != MustClock("14:00") {
		t.Errorf("Intersect = %v-%v, want 09:00-14:00", got.Start, got.End)
	}

	disjoint := Window{Start: MustClock("19:00"), End: MustClock("21:00")}
	if !salon.Intersect(disjoint).IsEmpty() {
		t.Error("expected empty intersection for disjoint windows")
	}
}
