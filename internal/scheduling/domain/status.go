package domain

import "fmt"

// Status is the lifecycle state of an appointment.
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusConfirmed  Status = "CONFIRMED"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
	StatusCancelled  Status = "CANCELLED"
	StatusNoShow     Status = "NO_SHOW"
)

// IsActive reports whether the appointment occupies calendar time.
// Only active appointments participate in conflict detection.
func (s Status) IsActive() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusInProgress:
		return true
	}
	return false
}

// IsTerminal reports whether no further lifecycle transitions apply.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// ActiveStatuses returns the status values that block calendar slots,
// for use in repository queries.
func ActiveStatuses() []string {
	return []string{string(StatusPending), string(StatusConfirmed), string(StatusInProgress)}
}

// ParseStatus validates a raw status value.
func ParseStatus(raw string) (Status, error) {
	switch Status(raw) {
	case StatusPending, StatusConfirmed, StatusInProgress, StatusCompleted, StatusCancelled, StatusNoShow:
		return Status(raw), nil
	}
	return "", fmt.Errorf("unknown appointment status %q", raw)
}

// Action is an operation an actor can attempt on the calendar.
type Action string

const (
	ActionCreate     Action = "create"
	ActionList       Action = "list"
	ActionView       Action = "view"
	ActionUpdate     Action = "update"
	ActionDelete     Action = "delete"
	ActionConfirm    Action = "confirm"
	ActionStart      Action = "start"
	ActionComplete   Action = "complete"
	ActionCancel     Action = "cancel"
	ActionMarkNoShow Action = "no_show"
	ActionReschedule Action = "reschedule"
	ActionReassign   Action = "reassign"
)

// TransitionActions are the lifecycle actions handled by the state machine,
// in table order.
var TransitionActions = []Action{
	ActionConfirm, ActionStart, ActionComplete, ActionCancel,
	ActionMarkNoShow, ActionReschedule, ActionReassign,
}

// InvalidTransitionError reports a state machine precondition violation,
// naming the current state and the requested action.
type InvalidTransitionError struct {
	From   Status
	Action Action
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot %s appointment in status %s", e.Action, e.From)
}

// Next applies a lifecycle action to the current status and returns the
// resulting status. Disallowed (state, action) pairs return a
// *InvalidTransitionError and never a generic fault.
//
//	confirm     Pending                               → Confirmed
//	start       Pending, Confirmed                    → InProgress
//	complete    Pending, Confirmed, InProgress        → Completed
//	cancel      Pending, Confirmed, InProgress, NoShow → Cancelled
//	no_show     Pending, Confirmed, InProgress        → NoShow
//	reschedule  Pending, Confirmed, InProgress, NoShow → Pending
//	reassign    Pending, Confirmed, InProgress, NoShow → unchanged
func Next(from Status, action Action) (Status, error) {
	invalid := &InvalidTransitionError{From: from, Action: action}

	switch action {
	case ActionConfirm:
		if from == StatusPending {
			return StatusConfirmed, nil
		}
	case ActionStart:
		if from == StatusPending || from == StatusConfirmed {
			return StatusInProgress, nil
		}
	case ActionComplete:
		if from.IsActive() {
			return StatusCompleted, nil
		}
	case ActionCancel:
		if from != StatusCompleted && from != StatusCancelled {
			return StatusCancelled, nil
		}
	case ActionMarkNoShow:
		if from.IsActive() {
			return StatusNoShow, nil
		}
	case ActionReschedule:
		if from != StatusCompleted && from != StatusCancelled {
			return StatusPending, nil
		}
	case ActionReassign:
		if from != StatusCompleted && from != StatusCancelled {
			return from, nil
		}
	}

	return "", invalid
}

// CanTransition reports whether the action is allowed from the status.
func CanTransition(from Status, action Action) bool {
	_, err := Next(from, action)
	return err == nil
}
