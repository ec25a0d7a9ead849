// Package email delivers transactional mail: booking confirmations,
// appointment reminders and the salon welcome message.
package email

import "context"

// Sender delivers transactional emails. Implementations must be safe for
// concurrent use.
type Sender interface {
	SendBookingConfirmation(ctx context.Context, toEmail, clientName, salonName, serviceName, employeeName, date, startTime string) error
	SendAppointmentReminder(ctx context.Context, toEmail, clientName, salonName, serviceName, date, startTime string) error
	SendSalonWelcome(ctx context.Context, toEmail, salonName string) error
}

// NoopSender satisfies Sender without delivering anything. Used when SMTP
// is not configured, typically in development.
type NoopSender struct{}

func (NoopSender) SendBookingConfirmation(context.Context, string, string, string, string, string, string, string) error {
	return nil
}

func (NoopSender) SendAppointmentReminder(context.Context, string, string, string, string, string, string) error {
	return nil
}

func (NoopSender) SendSalonWelcome(context.Context, string, string) error {
	return nil
}
