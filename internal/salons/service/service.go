// Package service implements salon profile and opening-hours management.
package service

import (
	"context"

	"salon_backend/internal/salons/repository"
	"salon_backend/internal/salons/transport"
	"salon_backend/internal/scheduling/domain"
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

// Get returns the salon profile.
func (s *Service) Get(ctx context.Context, salonID uuid.UUID) (*transport.SalonResponse, error) {
	salon, err := s.repo.GetByID(ctx, salonID)
	if err != nil {
		return nil, err
	}
	resp := toResponse(salon)
	return &resp, nil
}

// Update edits the salon profile.
func (s *Service) Update(ctx context.Context, salonID uuid.UUID, req transport.UpdateSalonRequest) (*transport.SalonResponse, error) {
	var normalizedPhone *string
	if req.Phone != nil {
		value := phone.NormalizeE164(*req.Phone)
		normalizedPhone = &value
	}

	salon, err := s.repo.Update(ctx, salonID, sanitize.Text(req.Name), normalizedPhone, sanitize.TextPtr(req.Address))
	if err != nil {
		return nil, err
	}
	resp := toResponse(salon)
	return &resp, nil
}

// GetOpeningHours returns the weekly hours table.
func (s *Service) GetOpeningHours(ctx context.Context, salonID uuid.UUID) (*transport.OpeningHoursResponse, error) {
	hours, err := s.repo.ListOpeningHours(ctx, salonID)
	if err != nil {
		return nil, err
	}

	entries := make([]transport.OpeningHourEntry, len(hours))
	for i, entry := range hours {
		entries[i] = transport.OpeningHourEntry{
			Weekday: entry.Weekday,
			Open:    entry.Open.String(),
			Close:   entry.Close.String(),
			Closed:  entry.Closed,
		}
	}
	return &transport.OpeningHoursResponse{Hours: entries}, nil
}

// UpdateOpeningHours replaces the weekly hours table. Every weekday must
// appear exactly once and open days need a non-empty window.
func (s *Service) UpdateOpeningHours(ctx context.Context, salonID uuid.UUID, req transport.UpdateOpeningHoursRequest) (*transport.OpeningHoursResponse, error) {
	hours, err := parseWeeklyHours(req.Hours)
	if err != nil {
		return nil, err
	}

	if err := s.repo.ReplaceOpeningHours(ctx, salonID, hours); err != nil {
		return nil, err
	}
	return s.GetOpeningHours(ctx, salonID)
}

func parseWeeklyHours(entries []transport.OpeningHourEntry) ([]domain.OpeningHour, error) {
	if len(entries) != 7 {
		return nil, apperr.Validation("exactly seven weekday entries are required")
	}

	seen := make(map[int]bool, 7)
	hours := make([]domain.OpeningHour, 0, 7)
	for _, entry := range entries {
		if entry.Weekday < 0 || entry.Weekday > 6 {
			return nil, apperr.Validation("weekday must be between 0 (lundi) and 6 (dimanche)")
		}
		if seen[entry.Weekday] {
			return nil, apperr.Validation("duplicate weekday entry")
		}
		seen[entry.Weekday] = true

		parsed := domain.OpeningHour{Weekday: entry.Weekday, Closed: entry.Closed}
		if !entry.Closed {
			open, err := domain.ParseClock(entry.Open)
			if err != nil {
				return nil, apperr.Validation("invalid open time, expected HH:MM")
			}
			closeAt, err := domain.ParseClock(entry.Close)
			if err != nil {
				return nil, apperr.Validation("invalid close time, expected HH:MM")
			}
			if open >= closeAt {
				return nil, apperr.Validation("open time must be before close time")
			}
			parsed.Open = open
			parsed.Close = closeAt
		}
		hours = append(hours, parsed)
	}

	return hours, nil
}

func toResponse(salon *repository.Salon) transport.SalonResponse {
	return transport.SalonResponse{
		ID:        salon.ID,
		Name:      salon.Name,
		Phone:     salon.Phone,
		Address:   salon.Address,
		CreatedAt: salon.CreatedAt,
		UpdatedAt: salon.UpdatedAt,
	}
}
