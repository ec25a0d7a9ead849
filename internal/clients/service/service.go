// Package service implements client directory management for salon staff.
package service

import (
	"context"

	"salon_backend/internal/clients/repository"
	"salon_backend/internal/clients/transport"
	"salon_backend/platform/apperr"
	"salon_backend/platform/phone"
	"salon_backend/platform/sanitize"

	"github.com/google/uuid"
)

type Service struct {
	repo *repository.Repository
}

func New(repo *repository.Repository) *Service {
	return &Service{repo: repo}
}

// Create registers a client. The phone number is normalized to E.164 and
// must be unique within the salon.
func (s *Service) Create(ctx context.Context, salonID uuid.UUID, req transport.CreateClientRequest) (*transport.ClientResponse, error) {
	normalized := phone.NormalizeE164(req.Phone)
	if normalized == "" {
		return nil, apperr.Validation("phone number is required")
	}

	existing, err := s.repo.FindByPhone(ctx, salonID, normalized)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Conflict("a client with this phone number already exists")
	}

	client := &repository.Client{
		SalonID:   salonID,
		FirstName: sanitize.Text(req.FirstName),
		LastName:  sanitize.Text(req.LastName),
		Phone:     normalized,
		Email:     req.Email,
		Notes:     sanitize.TextPtr(req.Notes),
	}
	if err := s.repo.Create(ctx, client); err != nil {
		return nil, err
	}

	resp := toResponse(client)
	return &resp, nil
}

func (s *Service) GetByID(ctx context.Context, salonID, id uuid.UUID) (*transport.ClientResponse, error) {
	client, err := s.repo.GetByID(ctx, id, salonID)
	if err != nil {
		return nil, err
	}
	resp := toResponse(client)
	return &resp, nil
}

func (s *Service) List(ctx context.Context, salonID uuid.UUID, req transport.ListClientsRequest) (*transport.ClientListResponse, error) {
	params := repository.ListParams{
		SalonID:  salonID,
		Search:   req.Search,
		Page:     max(req.Page, 1),
		PageSize: clampPageSize(req.PageSize),
	}

	result, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	items := make([]transport.ClientResponse, len(result.Items))
	for i := range result.Items {
		items[i] = toResponse(&result.Items[i])
	}
	return &transport.ClientListResponse{
		Items:      items,
		Total:      result.Total,
		Page:       result.Page,
		PageSize:   result.PageSize,
		TotalPages: result.TotalPages,
	}, nil
}

func (s *Service) Update(ctx context.Context, salonID, id uuid.UUID, req transport.UpdateClientRequest) (*transport.ClientResponse, error) {
	normalized := phone.NormalizeE164(req.Phone)
	if normalized == "" {
		return nil, apperr.Validation("phone number is required")
	}

	client, err := s.repo.GetByID(ctx, id, salonID)
	if err != nil {
		return nil, err
	}

	if normalized != client.Phone {
		existing, err := s.repo.FindByPhone(ctx, salonID, normalized)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, apperr.Conflict("a client with this phone number already exists")
		}
	}

	client.FirstName = sanitize.Text(req.FirstName)
	client.LastName = sanitize.Text(req.LastName)
	client.Phone = normalized
	client.Email = req.Email
	client.Notes = sanitize.TextPtr(req.Notes)

	if err := s.repo.Update(ctx, client); err != nil {
		return nil, err
	}

	resp := toResponse(client)
	return &resp, nil
}

func (s *Service) Delete(ctx context.Context, salonID, id uuid.UUID) error {
	return s.repo.Delete(ctx, id, salonID)
}

func toResponse(client *repository.Client) transport.ClientResponse {
	return transport.ClientResponse{
		ID:        client.ID,
		SalonID:   client.SalonID,
		FirstName: client.FirstName,
		LastName:  client.LastName,
		Phone:     client.Phone,
		Email:     client.Email,
		Notes:     client.Notes,
		CreatedAt: client.CreatedAt,
		UpdatedAt: client.UpdatedAt,
	}
}

func clampPageSize(size int) int {
	if size < 1 || size > 100 {
		return 50
	}
	return size
}
