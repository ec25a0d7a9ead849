package domain

import "testing"

var fullDay = Window{Start: MustClock("08:00"), End: MustClock("18:00")}

func TestAvailableSlotsFullOpenDay(t *testing.T) {
	slots := AvailableSlots(fullDay, fullDay, nil, 30, 30)

	if len(slots) != 20 {
		t.Fatalf("expected 20 slots, got %d", len(slots))
	}
	if slots[0] != MustClock("08:00") {
		t.Errorf("first slot = %s, want 08:00", slots[0])
	}
	if slots[len(slots)-1] != MustClock("17:30") {
		t.Errorf("last slot = %s, want 17:30", slots[len(slots)-1])
	}
	for i := 1; i < len(slots); i++ {
		if slots[i] <= slots[i-1] {
			t.Fatalf("slots not strictly increasing at index %d", i)
		}
	}
}

func TestAvailableSlotsServiceMustFitBeforeClose(t *testing.T) {
	slots := AvailableSlots(fullDay, fullDay, nil, 60, 30)

	if len(slots) != 19 {
		t.Fatalf("expected 19 slots for a 60-minute service, got %d", len(slots))
	}
	if slots[len(slots)-1] != MustClock("17:00") {
		t.Errorf("last slot = %s, want 17:00 so the hour fits before 18:00", slots[len(slots)-1])
	}
}

func TestAvailableSlotsSkipsBusyIntervals(t *testing.T) {
	busy := []Interval{NewInterval(MustClock("10:00"), 60)}
	slots := AvailableSlots(fullDay, fullDay, busy, 60, 30)

	for _, s := range slots {
		if NewInterval(s, 60).Overlaps(busy[0]) {
			t.Errorf("slot %s overlaps busy 10:00-11:00", s)
		}
	}

	// 09:00 ends exactly when the booking starts and 11:00 starts exactly
	// when it ends; both must remain bookable.
	assertContains(t, slots, MustClock("09:00"))
	assertContains(t, slots, MustClock("11:00"))
	assertNotContains(t, slots, MustClock("09:30"))
	assertNotContains(t, slots, MustClock("10:00"))
	assertNotContains(t, slots, MustClock("10:30"))
}

func TestAvailableSlotsEmployeeWindowNarrows(t *testing.T) {
	employee := Window{Start: MustClock("09:00"), End: MustClock("14:00")}
	slots := AvailableSlots(fullDay, employee, nil, 30, 30)

	if slots[0] != MustClock("09:00") {
		t.Errorf("first slot = %s, want 09:00", slots[0])
	}
	if slots[len(slots)-1] != MustClock("13:30") {
		t.Errorf("last slot = %s, want 13:30", slots[len(slots)-1])
	}
}

func TestAvailableSlotsEmptyIntersection(t *testing.T) {
	employee := Window{Start: MustClock("19:00"), End: MustClock("21:00")}
	if slots := AvailableSlots(fullDay, employee, nil, 30, 30); slots != nil {
		t.Errorf("expected no slots outside opening hours, got %v", slots)
	}
}

func TestAvailableSlotsGuards(t *testing.T) {
	if slots := AvailableSlots(fullDay, fullDay, nil, 0, 30); slots != nil {
		t.Errorf("zero duration must yield no slots, got %v", slots)
	}
	if slots := AvailableSlots(fullDay, fullDay, nil, -15, 30); slots != nil {
		t.Errorf("negative duration must yield no slots, got %v", slots)
	}

	// Non-positive granularity falls back to the default step.
	withDefault := AvailableSlots(fullDay, fullDay, nil, 30, 0)
	if len(withDefault) != 20 {
		t.Errorf("expected default granularity to produce 20 slots, got %d", len(withDefault))
	}
}

func assertContains(t *testing.T, slots []TimeOfDay, want TimeOfDay) {
	t.Helper()
	for _, s := range slots {
		if s == want {
			return
		}
	}
	t.Errorf("expected slot %s to be present", want)
}

func assertNotContains(t *testing.T, slots []TimeOfDay, unwanted TimeOfDay) {
	t.Helper()
	for _, s := range slots {
		if s == unwanted {
			t.Errorf("expected slot %s to be excluded", unwanted)
		}
	}
}
