package domain

import (
	"errors"
	"testing"
)

var allStatuses = []Status{
	StatusPending, StatusConfirmed, StatusInProgress,
	StatusCompleted, StatusCancelled, StatusNoShow,
}

func TestNextFullTable(t *testing.T) {
	// want maps (action, from) to the resulting status; pairs not listed
	// must return InvalidTransitionError.
	want := map[Action]map[Status]Status{
		ActionConfirm: {
			StatusPending: StatusConfirmed,
		},
		ActionStart: {
			StatusPending:   StatusInProgress,
			StatusConfirmed: StatusInProgress,
		},
		ActionComplete: {
			StatusPending:    StatusCompleted,
			StatusConfirmed:  StatusCompleted,
			StatusInProgress: StatusCompleted,
		},
		ActionCancel: {
			StatusPending:    StatusCancelled,
			StatusConfirmed:  StatusCancelled,
			StatusInProgress: StatusCancelled,
			StatusNoShow:     StatusCancelled,
		},
		ActionMarkNoShow: {
			StatusPending:    StatusNoShow,
			StatusConfirmed:  StatusNoShow,
			StatusInProgress: StatusNoShow,
		},
		ActionReschedule: {
			StatusPending:    StatusPending,
			StatusConfirmed:  StatusPending,
			StatusInProgress: StatusPending,
			StatusNoShow:     StatusPending,
		},
		ActionReassign: {
			StatusPending:    StatusPending,
			StatusConfirmed:  StatusConfirmed,
			StatusInProgress: StatusInProgress,
			StatusNoShow:     StatusNoShow,
		},
	}

	for _, action := range TransitionActions {
		for _, from := range allStatuses {
			got, err := Next(from, action)
			expected, allowed := want[action][from]

			if allowed {
				if err != nil {
					t.Errorf("%s from %s: unexpected error %v", action, from, err)
					continue
				}
				if got != expected {
					t.Errorf("%s from %s = %s, want %s", action, from, got, expected)
				}
				continue
			}

			var invalid *InvalidTransitionError
			if !errors.As(err, &invalid) {
				t.Errorf("%s from %s: expected InvalidTransitionError, got %v", action, from, err)
				continue
			}
			if invalid.From != from || invalid.Action != action {
				t.Errorf("%s from %s: error carries %s/%s", action, from, invalid.From, invalid.Action)
			}
		}
	}
}

func TestTerminalStatesRejectEverything(t *testing.T) {
	for _, from := range []Status{StatusCompleted, StatusCancelled} {
		for _, action := range TransitionActions {
			if CanTransition(from, action) {
				t.Errorf("%s must be final, but %s was allowed", from, action)
			}
		}
	}
}

func TestInvalidTransitionErrorMessage(t *testing.T) {
	_, err := Next(StatusCompleted, ActionCancel)
	if err == nil {
		t.Fatal("expected error")
	}
	want := "cannot cancel appointment in status COMPLETED"
	if err.Error() != want {
		t.Errorf("message = %q, want %q", err.Error(), want)
	}
}

func TestStatusClassification(t *testing.T) {
	for _, s := range allStatuses {
		if s.IsActive() == s.IsTerminal() {
			t.Errorf("%s: active and terminal must be mutually exclusive", s)
		}
	}
	if got := len(ActiveStatuses()); got != 3 {
		t.Errorf("ActiveStatuses returned %d values, want 3", got)
	}
}

func TestParseStatus(t *testing.T) {
	if _, err := ParseStatus("CONFIRMED"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if _, err := ParseStatus("confirmed"); err == nil {
		t.Error("status values are uppercase, lowercase must be rejected")
	}
}
