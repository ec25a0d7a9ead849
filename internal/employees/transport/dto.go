package transport

import (
	"time"

	"github.com/google/uuid"
)

// CreateEmployeeRequest adds a staff member to the salon. WorkSchedule
// maps French weekday names ("lundi".."dimanche") to "HH:MM-HH:MM"; days
// left out inherit the salon's opening hours.
type CreateEmployeeRequest struct {
	FirstName    string            `json:"firstName" binding:"required"`
	LastName     string            `json:"lastName" binding:"required"`
	Role         string            `json:"role" binding:"required,oneof=COIFFEUR RECEPTIONNISTE"`
	WorkSchedule map[string]string `json:"workSchedule,omitempty"`
	IsAvailable  *bool             `json:"isAvailable,omitempty"`
}

type UpdateEmployeeRequest struct {
	FirstName    string            `json:"firstName" binding:"required"`
	LastName     string            `json:"lastName" binding:"required"`
	Role         string            `json:"role" binding:"required,oneof=COIFFEUR RECEPTIONNISTE"`
	WorkSchedule map[string]string `json:"workSchedule,omitempty"`
	IsAvailable  *bool             `json:"isAvailable,omitempty"`
}

type EmployeeResponse struct {
	ID           uuid.UUID         `json:"id"`
	SalonID      uuid.UUID         `json:"salonId"`
	FirstName    string            `json:"firstName"`
	LastName     string            `json:"lastName"`
	Role         string            `json:"role"`
	WorkSchedule map[string]string `json:"workSchedule,omitempty"`
	IsAvailable  bool              `json:"isAvailable"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}

// PermissionOverridesRequest sets per-employee deviations from the role
// defaults. Omitted fields keep the role default for that action.
type PermissionOverridesRequest struct {
	CanCreate     *bool `json:"canCreate,omitempty"`
	CanViewAll    *bool `json:"canViewAll,omitempty"`
	CanConfirm    *bool `json:"canConfirm,omitempty"`
	CanStart      *bool `json:"canStart,omitempty"`
	CanComplete   *bool `json:"canComplete,omitempty"`
	CanCancel     *bool `json:"canCancel,omitempty"`
	CanMarkNoShow *bool `json:"canMarkNoShow,omitempty"`
	CanReschedule *bool `json:"canReschedule,omitempty"`
	CanReassign   *bool `json:"canReassign,omitempty"`
	CanUpdate     *bool `json:"canUpdate,omitempty"`
	CanDelete     *bool `json:"canDelete,omitempty"`
}

type PermissionOverridesResponse struct {
	EmployeeID uuid.UUID `json:"employeeId"`
	PermissionOverridesRequest
}
