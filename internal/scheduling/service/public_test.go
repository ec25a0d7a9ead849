package service

import (
	"context"
	"testing"

	"salon_backend/internal/scheduling/repository"
	"salon_backend/internal/scheduling/transport"

	"github.com/google/uuid"
)

// fakeDirectory is an in-memory ClientDirectory keyed by phone. It writes
// registered clients through to the fake store so the booking path can
// load them back.
type fakeDirectory struct {
	store   *fakeStore
	salonID uuid.UUID
	byPhone map[string]*PublicClient
	created int
}

func newFakeDirectory(f *fixture) *fakeDirectory {
	return &fakeDirectory{
		store:   f.store,
		salonID: f.salonID,
		byPhone: make(map[string]*PublicClient),
	}
}

func (d *fakeDirectory) seed(phoneE164, firstName, lastName string) *PublicClient {
	client := &PublicClient{ID: uuid.New(), FirstName: firstName, LastName: lastName, Phone: phoneE164}
	d.byPhone[phoneE164] = client
	d.store.clients[client.ID] = &repository.ClientInfo{
		ID: client.ID, SalonID: d.salonID,
		FirstName: firstName, LastName: lastName, Phone: phoneE164,
	}
	return client
}

func (d *fakeDirectory) FindByPhone(_ context.Context, _ uuid.UUID, phoneE164 string) (*PublicClient, error) {
	return d.byPhone[phoneE164], nil
}

func (d *fakeDirectory) Create(_ context.Context, _ uuid.UUID, input PublicClientInput) (*PublicClient, error) {
	d.created++
	client := d.seed(input.Phone, input.FirstName, input.LastName)
	client.Email = input.Email
	return client, nil
}

func TestPublicCheckClient(t *testing.T) {
	f := newFixture(t)
	dir := newFakeDirectory(f)
	f.svc.SetClientDirectory(dir)
	dir.seed("+33612345678", "Marie", "Durand")

	resp, err := f.svc.PublicCheckClient(context.Background(), f.salonID, "+33 6 12 34 56 78")
	if err != nil {
		t.Fatalf("PublicCheckClient() error = %v", err)
	}
	if !resp.Exists || resp.FirstName != "Marie" {
		t.Errorf("response = %+v, want existing client Marie", resp)
	}

	resp, err = f.svc.PublicCheckClient(context.Background(), f.salonID, "+33 7 98 76 54 32")
	if err != nil {
		t.Fatalf("PublicCheckClient() error = %v", err)
	}
	if resp.Exists {
		t.Errorf("unknown phone reported as existing")
	}
}

func TestPublicBookRegistersNewClient(t *testing.T) {
	f := newFixture(t)
	dir := newFakeDirectory(f)
	f.svc.SetClientDirectory(dir)

	resp, err := f.svc.PublicBook(context.Background(), f.salonID, transport.PublicBookingRequest{
		FirstName:  "Marie",
		LastName:   "Durand",
		Phone:      "+33 6 12 34 56 78",
		EmployeeID: f.empID,
		ServiceID:  f.svcID,
		Date:       "2026-09-07",
		StartTime:  "10:00",
	})
	if err != nil {
		t.Fatalf("PublicBook() error = %v", err)
	}

	if dir.created != 1 {
		t.Errorf("created %d clients, want 1", dir.created)
	}
	if resp.Status != "PENDING" {
		t.Errorf("status = %s, want PENDING", resp.Status)
	}

	// Normalized before hitting the directory
	if _, ok := dir.byPhone["+33612345678"]; !ok {
		t.Error("client not registered under the normalized phone number")
	}
}

func TestPublicBookReusesExistingClient(t *testing.T) {
	f := newFixture(t)
	dir := newFakeDirectory(f)
	f.svc.SetClientDirectory(dir)
	existing := dir.seed("+33612345678", "Marie", "Durand")

	resp, err := f.svc.PublicBook(context.Background(), f.salonID, transport.PublicBookingRequest{
		FirstName:  "Marie",
		LastName:   "Durand",
		Phone:      "+33 6 12 34 56 78",
		EmployeeID: f.empID,
		ServiceID:  f.svcID,
		Date:       "2026-09-07",
		StartTime:  "10:00",
	})
	if err != nil {
		t.Fatalf("PublicBook() error = %v", err)
	}

	if dir.created != 0 {
		t.Errorf("created %d clients, want 0", dir.created)
	}
	if resp.ClientID != existing.ID {
		t.Errorf("clientID = %s, want existing %s", resp.ClientID, existing.ID)
	}
}

func TestPublicBookConflictingSlot(t *testing.T) {
	f := newFixture(t)
	dir := newFakeDirectory(f)
	f.svc.SetClientDirectory(dir)

	req := transport.PublicBookingRequest{
		FirstName:  "Marie",
		LastName:   "Durand",
		Phone:      "+33 6 12 34 56 78",
		EmployeeID: f.empID,
		ServiceID:  f.svcID,
		Date:       "2026-09-07",
		StartTime:  "10:00",
	}
	if _, err := f.svc.PublicBook(context.Background(), f.salonID, req); err != nil {
		t.Fatalf("first PublicBook() error = %v", err)
	}

	if _, err := f.svc.PublicBook(context.Background(), f.salonID, req); err == nil {
		t.Fatal("second PublicBook() on the same slot should fail")
	}
}
