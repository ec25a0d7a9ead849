// Package scheduler enqueues and processes delayed background tasks on
// Redis via asynq, currently client reminders sent ahead of appointments.
package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskAppointmentReminder = "scheduling.appointment.reminder"

// AppointmentReminderPayload identifies the appointment a reminder is for.
// IDs travel as strings so the payload stays a stable JSON contract.
type AppointmentReminderPayload struct {
	AppointmentID string `json:"appointmentId"`
	SalonID       string `json:"salonId"`
}

func NewAppointmentReminderTask(payload AppointmentReminderPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskAppointmentReminder, data), nil
}

func ParseAppointmentReminderPayload(task *asynq.Task) (AppointmentReminderPayload, error) {
	var payload AppointmentReminderPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return AppointmentReminderPayload{}, err
	}
	return payload, nil
}
