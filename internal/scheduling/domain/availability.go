package domain

// DefaultSlotGranularityMinutes is the candidate slot step used when the
// caller does not specify one.
const DefaultSlotGranularityMinutes = 30

// AvailableSlots enumerates bookable start times for a service of the
// given duration within the intersection of the salon and employee
// windows, skipping candidates that collide with existing busy intervals.
//
// The output is deterministic and strictly increasing. Candidates whose
// implied end would run past the effective close time are discarded: the
// whole service must fit. Filtering out slots already in the past is a
// caller concern and only applies when the queried date is today.
func AvailableSlots(salonWin, employeeWin Window, busy []Interval, serviceDurationMinutes, granularityMinutes int) []TimeOfDay {
	if serviceDurationMinutes <= 0 {
		return nil
	}
	if granularityMinutes <= 0 {
		granularityMinutes = DefaultSlotGranularityMinutes
	}

	effective := salonWin.Intersect(employeeWin)
	if effective.IsEmpty() {
		return nil
	}

	var slots []TimeOfDay
	for start := effective.Start; start.Add(serviceDurationMinutes) <= effective.End; start = start.Add(granularityMinutes) {
		candidate := NewInterval(start, serviceDurationMinutes)
		if AnyOverlap(candidate, busy) {
			continue
		}
		slots = append(slots, start)
	}

	return slots
}
