// Package adapter exposes the client directory to other bounded contexts.
// The scheduling module defines the interface it needs; this adapter
// satisfies it without leaking clients internals.
package adapter

import (
	"context"

	"salon_backend/internal/clients/repository"
	schedservice "salon_backend/internal/scheduling/service"
	"salon_backend/platform/sanitize"

	"github.com/google/uuid"
)

// Directory implements the scheduling module's ClientDirectory using the
// clients repository.
type Directory struct {
	repo *repository.Repository
}

// NewDirectory creates the adapter.
func NewDirectory(repo *repository.Repository) *Directory {
	return &Directory{repo: repo}
}

// FindByPhone implements scheduling's ClientDirectory. Returns nil when
// no client matches.
func (d *Directory) FindByPhone(ctx context.Context, salonID uuid.UUID, phoneE164 string) (*schedservice.PublicClient, error) {
	client, err := d.repo.FindByPhone(ctx, salonID, phoneE164)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, nil
	}
	return toPublicClient(client), nil
}

// Create implements scheduling's ClientDirectory for first-time visitors.
func (d *Directory) Create(ctx context.Context, salonID uuid.UUID, input schedservice.PublicClientInput) (*schedservice.PublicClient, error) {
	client := &repository.Client{
		SalonID:   salonID,
		FirstName: sanitize.Text(input.FirstName),
		LastName:  sanitize.Text(input.LastName),
		Phone:     input.Phone,
		Email:     input.Email,
	}
	if err := d.repo.Create(ctx, client); err != nil {
		return nil, err
	}
	return toPublicClient(client), nil
}

func toPublicClient(client *repository.Client) *schedservice.PublicClient {
	return &schedservice.PublicClient{
		ID:        client.ID,
		FirstName: client.FirstName,
		LastName:  client.LastName,
		Phone:     client.Phone,
		Email:     client.Email,
	}
}

// Compile-time check that Directory satisfies the scheduling interface
var _ schedservice.ClientDirectory = (*Directory)(nil)
