package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

type baseEmailData struct {
	Title   string
	Heading string
}

type bookingConfirmationData struct {
	baseEmailData
	ClientName   string
	SalonName    string
	ServiceName  string
	EmployeeName string
	Date         string
	StartTime    string
}

type appointmentReminderData struct {
	baseEmailData
	ClientName  string
	SalonName   string
	ServiceName string
	Date        string
	StartTime   string
}

type salonWelcomeData struct {
	baseEmailData
	SalonName string
}

func renderEmailTemplate(name string, data any) (string, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+name)
	if err != nil {
		return "", fmt.Errorf("parse email template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		return "", fmt.Errorf("render email template %s: %w", name, err)
	}
	return buf.String(), nil
}
