// Package service implements payment recording: money received for
// appointments, at booking time or at the desk.
package service

import (
	"context"
	"time"

	"salon_backend/internal/payments/repository"
	"salon_backend/internal/payments/transport"
	"salon_backend/platform/apperr"
	"salon_backend/platform/sanitize"

	"github.com/google/uuid"
)

// Methods accepted on the wire.
const (
	MethodCash        = "CASH"
	MethodCard        = "CARD"
	MethodMobileMoney = "MOBILE_MONEY"
)

func validMethod(method string) bool {
	switch method {
	case MethodCash, MethodCard, MethodMobileMoney:
		return true
	}
	return false
}

type Service struct {
	repo *repository.Repository
}

func New(repo *repository.Repository) *Service {
	return &Service{repo: repo}
}

// Record registers a payment against an appointment. Cancelled and no-show
// appointments cannot take payments.
func (s *Service) Record(ctx context.Context, salonID uuid.UUID, recordedBy *uuid.UUID, req transport.RecordPaymentRequest) (*transport.PaymentResponse, error) {
	payment, err := s.record(ctx, salonID, req.AppointmentID, recordedBy, req.Amount, req.Method, sanitize.TextPtr(req.Notes))
	if err != nil {
		return nil, err
	}
	resp := toResponse(payment)
	return &resp, nil
}

// RecordForAppointment implements the booking-flow hook: an upfront payment
// taken together with the appointment itself.
func (s *Service) RecordForAppointment(ctx context.Context, salonID, appointmentID uuid.UUID, recordedBy *uuid.UUID, amount float64, method string) error {
	_, err := s.record(ctx, salonID, appointmentID, recordedBy, amount, method, nil)
	return err
}

func (s *Service) record(ctx context.Context, salonID, appointmentID uuid.UUID, recordedBy *uuid.UUID, amount float64, method string, notes *string) (*repository.Payment, error) {
	if amount <= 0 {
		return nil, apperr.Validation("amount must be positive")
	}
	if !validMethod(method) {
		return nil, apperr.Validation("unknown payment method")
	}

	status, err := s.repo.GetAppointmentStatus(ctx, appointmentID, salonID)
	if err != nil {
		return nil, err
	}
	if status == "CANCELLED" || status == "NO_SHOW" {
		return nil, apperr.Conflict("cannot record a payment for a " + status + " appointment")
	}

	payment := &repository.Payment{
		SalonID:       salonID,
		AppointmentID: appointmentID,
		Amount:        amount,
		Method:        method,
		Notes:         notes,
		RecordedBy:    recordedBy,
	}
	if err := s.repo.Create(ctx, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

func (s *Service) ListByAppointment(ctx context.Context, salonID, appointmentID uuid.UUID) ([]transport.PaymentResponse, error) {
	payments, err := s.repo.ListByAppointment(ctx, appointmentID, salonID)
	if err != nil {
		return nil, err
	}
	return toResponses(payments), nil
}

// DaySummary returns the till view for one calendar day.
func (s *Service) DaySummary(ctx context.Context, salonID uuid.UUID, rawDate string) (*transport.DayPaymentsResponse, error) {
	date, err := time.Parse("2006-01-02", rawDate)
	if err != nil {
		return nil, apperr.BadRequest("invalid date format, expected YYYY-MM-DD")
	}

	payments, err := s.repo.ListForDay(ctx, salonID, date)
	if err != nil {
		return nil, err
	}
	byMethod, err := s.repo.SumForDay(ctx, salonID, date)
	if err != nil {
		return nil, err
	}

	var total float64
	for _, sum := range byMethod {
		total += sum
	}

	return &transport.DayPaymentsResponse{
		Date:     rawDate,
		Total:    total,
		ByMethod: byMethod,
		Payments: toResponses(payments),
	}, nil
}

func toResponse(p *repository.Payment) transport.PaymentResponse {
	return transport.PaymentResponse{
		ID:            p.ID,
		AppointmentID: p.AppointmentID,
		Amount:        p.Amount,
		Method:        p.Method,
		Notes:         p.Notes,
		RecordedBy:    p.RecordedBy,
		CreatedAt:     p.CreatedAt,
	}
}

func toResponses(payments []repository.Payment) []transport.PaymentResponse {
	out := make([]transport.PaymentResponse, len(payments))
	for i := range payments {
		out[i] = toResponse(&payments[i])
	}
	return out
}
