package domain

// Interval is a booked [Start, End) span on a single employee's day.
type Interval struct {
	Start TimeOfDay
	End   TimeOfDay
}

// NewInterval builds the interval occupied by a booking starting at start
// and lasting durationMinutes.
func NewInterval(start TimeOfDay, durationMinutes int) Interval {
	return Interval{Start: start, End: start.Add(durationMinutes)}
}

// Overlaps reports whether two half-open intervals share any time.
// [s1,e1) and [s2,e2) overlap iff s1 < e2 && e1 > s2, which makes
// back-to-back bookings (e1 == s2) non-conflicting.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start < other.End && i.End > other.Start
}

// AnyOverlap reports whether the candidate interval collides with any of
// the existing busy intervals. Read-only; callers pass only the intervals
// of active appointments.
func AnyOverlap(candidate Interval, busy []Interval) bool {
	for _, existing := range busy {
		if candidate.Overlaps(existing) {
			return true
		}
	}
	return false
}
