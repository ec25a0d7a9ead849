package email

import (
	"context"
	"fmt"
	"net"
	"time"

	"salon_backend/platform/config"

	gomail "github.com/wneessen/go-mail"
)

// SMTPSender implements Sender over a direct SMTP connection via go-mail.
type SMTPSender struct {
	host      string
	port      int
	username  string
	password  string
	fromName  string
	fromEmail string
}

// NewSender builds the configured Sender, falling back to NoopSender when
// email delivery is disabled.
func NewSender(cfg config.EmailConfig) Sender {
	if !cfg.GetEmailEnabled() {
		return NoopSender{}
	}
	return &SMTPSender{
		host:      cfg.GetSMTPHost(),
		port:      cfg.GetSMTPPort(),
		username:  cfg.GetSMTPUsername(),
		password:  cfg.GetSMTPPassword(),
		fromName:  cfg.GetEmailFromName(),
		fromEmail: cfg.GetEmailFromAddress(),
	}
}

func (s *SMTPSender) send(ctx context.Context, toEmail, subject, htmlContent string) error {
	msg := gomail.NewMsg()
	if err := msg.FromFormat(s.fromName, s.fromEmail); err != nil {
		return fmt.Errorf("smtp from: %w", err)
	}
	if err := msg.To(toEmail); err != nil {
		return fmt.Errorf("smtp to: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextHTML, htmlContent)

	client, err := gomail.NewClient(s.host,
		gomail.WithPort(s.port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(s.username),
		gomail.WithPassword(s.password),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
		gomail.WithTimeout(15*time.Second),
		gomail.WithDialContextFunc(func(dctx context.Context, _ string, addr string) (net.Conn, error) {
			return (&net.Dialer{}).DialContext(dctx, "tcp4", addr)
		}),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}

	return nil
}

func (s *SMTPSender) SendBookingConfirmation(ctx context.Context, toEmail, clientName, salonName, serviceName, employeeName, date, startTime string) error {
	content, err := renderEmailTemplate("booking_confirmation.html", bookingConfirmationData{
		baseEmailData: baseEmailData{
			Title:   "Rendez-vous confirmé",
			Heading: "Rendez-vous confirmé",
		},
		ClientName:   clientName,
		SalonName:    salonName,
		ServiceName:  serviceName,
		EmployeeName: employeeName,
		Date:         date,
		StartTime:    startTime,
	})
	if err != nil {
		return err
	}
	return s.send(ctx, toEmail, fmt.Sprintf(subjectBookingConfirmationFmt, salonName), content)
}

func (s *SMTPSender) SendAppointmentReminder(ctx context.Context, toEmail, clientName, salonName, serviceName, date, startTime string) error {
	content, err := renderEmailTemplate("appointment_reminder.html", appointmentReminderData{
		baseEmailData: baseEmailData{
			Title:   "Rappel de rendez-vous",
			Heading: "Rappel de rendez-vous",
		},
		ClientName:  clientName,
		SalonName:   salonName,
		ServiceName: serviceName,
		Date:        date,
		StartTime:   startTime,
	})
	if err != nil {
		return err
	}
	return s.send(ctx, toEmail, fmt.Sprintf(subjectAppointmentReminderFmt, salonName), content)
}

func (s *SMTPSender) SendSalonWelcome(ctx context.Context, toEmail, salonName string) error {
	content, err := renderEmailTemplate("salon_welcome.html", salonWelcomeData{
		baseEmailData: baseEmailData{
			Title:   "Bienvenue",
			Heading: "Bienvenue",
		},
		SalonName: salonName,
	})
	if err != nil {
		return err
	}
	return s.send(ctx, toEmail, subjectSalonWelcome, content)
}
