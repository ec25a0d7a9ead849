package domain

import "testing"

func TestIntervalOverlaps(t *testing.T) {
	existing := NewInterval(MustClock("10:00"), 60)

	cases := []struct {
		name      string
		candidate Interval
		want      bool
	}{
		{"starts inside", NewInterval(MustClock("10:15"), 30), true},
		{"spans entirely", NewInterval(MustClock("09:30"), 120), true},
		{"contained", NewInterval(MustClock("10:20"), 10), true},
		{"identical", NewInterval(MustClock("10:00"), 60), true},
		{"ends inside", NewInterval(MustClock("09:30"), 45), true},
		{"back to back after", NewInterval(MustClock("11:00"), 30), false},
		{"back to back before", NewInterval(MustClock("09:00"), 60), false},
		{"well before", NewInterval(MustClock("08:00"), 30), false},
		{"well after", NewInterval(MustClock("12:00"), 30), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.candidate.Overlaps(existing); got != tc.want {
				t.Errorf("Overlaps = %v, want %v", got, tc.want)
			}
			// Overlap is symmetric.
			if got := existing.Overlaps(tc.candidate); got != tc.want {
				t.Errorf("reverse Overlaps = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestAnyOverlap(t *testing.T) {
	busy := []Interval{
		NewInterval(MustClock("09:00"), 30),
		NewInterval(MustClock("11:00"), 60),
	}

	if !AnyOverlap(NewInterval(MustClock("11:30"), 60), busy) {
		t.Error("expected collision with 11:00-12:00 booking")
	}
	if AnyOverlap(NewInterval(MustClock("09:30"), 90), busy) {
		t.Error("09:30-11:00 fits exactly between bookings, expected no collision")
	}
	if AnyOverlap(NewInterval(MustClock("10:00"), 30), nil) {
		t.Error("empty busy list must never collide")
	}
}
