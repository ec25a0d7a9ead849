package service

import (
	"context"

	"salon_backend/internal/scheduling/domain"
	"salon_backend/internal/scheduling/transport"
	"salon_backend/platform/apperr"
	"salon_backend/platform/phone"

	"github.com/google/uuid"
)

// PublicClient is the directory's view of a client, enough for the public
// booking flow to identify or create one.
type PublicClient struct {
	ID        uuid.UUID
	FirstName string
	LastName  string
	Phone     string
	Email     *string
}

// PublicClientInput carries the fields a first-time visitor provides.
type PublicClientInput struct {
	FirstName string
	LastName  string
	Phone     string
	Email     *string
}

// ClientDirectory looks up and registers clients on behalf of the public
// booking page. The clients module provides the implementation.
type ClientDirectory interface {
	FindByPhone(ctx context.Context, salonID uuid.UUID, phoneE164 string) (*PublicClient, error)
	Create(ctx context.Context, salonID uuid.UUID, input PublicClientInput) (*PublicClient, error)
}

// SetClientDirectory wires the clients module in. Must be called before
// the public booking routes are served.
func (s *Service) SetClientDirectory(dir ClientDirectory) {
	s.clients = dir
}

// PublicCheckClient tells the booking page whether a phone number is
// already registered with the salon, so returning clients skip the form.
func (s *Service) PublicCheckClient(ctx context.Context, salonID uuid.UUID, rawPhone string) (*transport.PublicClientCheckResponse, error) {
	normalized := phone.NormalizeE164(rawPhone)
	if normalized == "" {
		return nil, apperr.BadRequest("phone number is required")
	}

	client, err := s.clients.FindByPhone(ctx, salonID, normalized)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return &transport.PublicClientCheckResponse{Exists: false}, nil
	}

	return &transport.PublicClientCheckResponse{
		Exists:    true,
		FirstName: client.FirstName,
	}, nil
}

// PublicBook books an appointment for an anonymous visitor: the client is
// matched by phone number or registered on the fly, then the booking goes
// through the same locked write path as a staff booking.
func (s *Service) PublicBook(ctx context.Context, salonID uuid.UUID, req transport.PublicBookingRequest) (*transport.AppointmentResponse, error) {
	normalized := phone.NormalizeE164(req.Phone)
	if normalized == "" {
		return nil, apperr.BadRequest("phone number is required")
	}

	client, err := s.clients.FindByPhone(ctx, salonID, normalized)
	if err != nil {
		return nil, err
	}
	if client == nil {
		client, err = s.clients.Create(ctx, salonID, PublicClientInput{
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Phone:     normalized,
			Email:     req.Email,
		})
		if err != nil {
			return nil, err
		}
	}

	actor := Actor{SalonID: salonID, Role: domain.Role("")}
	resp, err := s.create(ctx, actor, transport.CreateAppointmentRequest{
		ClientID:   client.ID,
		EmployeeID: req.EmployeeID,
		ServiceID:  req.ServiceID,
		Date:       req.Date,
		StartTime:  req.StartTime,
		Notes:      req.Notes,
	}, true)
	if err != nil {
		return nil, err
	}

	return resp, nil
}
