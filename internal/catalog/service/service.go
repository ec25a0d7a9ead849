// Package service implements the service catalog: the offerings clients
// can book, with their durations and prices.
package service

import (
	"context"

	"salon_backend/internal/catalog/repository"
	"salon_backend/internal/catalog/transport"
	"salon_backend/platform/sanitize"

	"github.com/google/uuid"
)

type Service struct {
	repo *repository.Repository
}

func New(repo *repository.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, salonID uuid.UUID, req transport.CreateServiceRequest) (*transport.ServiceResponse, error) {
	svc := &repository.Service{
		SalonID:         salonID,
		Name:            sanitize.Text(req.Name),
		Description:     sanitize.TextPtr(req.Description),
		DurationMinutes: req.DurationMinutes,
		Price:           req.Price,
		IsActive:        true,
	}
	if req.IsActive != nil {
		svc.IsActive = *req.IsActive
	}

	if err := s.repo.Create(ctx, svc); err != nil {
		return nil, err
	}

	resp := toResponse(svc)
	return &resp, nil
}

func (s *Service) GetByID(ctx context.Context, salonID, id uuid.UUID) (*transport.ServiceResponse, error) {
	svc, err := s.repo.GetByID(ctx, id, salonID)
	if err != nil {
		return nil, err
	}
	resp := toResponse(svc)
	return &resp, nil
}

func (s *Service) List(ctx context.Context, salonID uuid.UUID, activeOnly bool) ([]transport.ServiceResponse, error) {
	services, err := s.repo.List(ctx, salonID, activeOnly)
	if err != nil {
		return nil, err
	}

	out := make([]transport.ServiceResponse, len(services))
	for i := range services {
		out[i] = toResponse(&services[i])
	}
	return out, nil
}

// ListPublic returns active offerings in the booking-page shape.
func (s *Service) ListPublic(ctx context.Context, salonID uuid.UUID) ([]transport.PublicServiceResponse, error) {
	services, err := s.repo.List(ctx, salonID, true)
	if err != nil {
		return nil, err
	}

	out := make([]transport.PublicServiceResponse, len(services))
	for i, svc := range services {
		out[i] = transport.PublicServiceResponse{
			ID:              svc.ID,
			Name:            svc.Name,
			Description:     svc.Description,
			DurationMinutes: svc.DurationMinutes,
			Price:           svc.Price,
		}
	}
	return out, nil
}

func (s *Service) Update(ctx context.Context, salonID, id uuid.UUID, req transport.UpdateServiceRequest) (*transport.ServiceResponse, error) {
	svc, err := s.repo.GetByID(ctx, id, salonID)
	if err != nil {
		return nil, err
	}

	svc.Name = sanitize.Text(req.Name)
	svc.Description = sanitize.TextPtr(req.Description)
	svc.DurationMinutes = req.DurationMinutes
	svc.Price = req.Price
	if req.IsActive != nil {
		svc.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, svc); err != nil {
		return nil, err
	}

	resp := toResponse(svc)
	return &resp, nil
}

// Deactivate retires a service; existing appointments keep referencing it.
func (s *Service) Deactivate(ctx context.Context, salonID, id uuid.UUID) error {
	return s.repo.Deactivate(ctx, id, salonID)
}

func toResponse(svc *repository.Service) transport.ServiceResponse {
	return transport.ServiceResponse{
		ID:              svc.ID,
		SalonID:         svc.SalonID,
		Name:            svc.Name,
		Description:     svc.Description,
		DurationMinutes: svc.DurationMinutes,
		Price:           svc.Price,
		IsActive:        svc.IsActive,
		CreatedAt:       svc.CreatedAt,
		UpdatedAt:       svc.UpdatedAt,
	}
}
