package service

import (
	"context"
	"testing"

	"salon_backend/internal/employees/repository"
	"salon_backend/internal/scheduling/domain"
	"salon_backend/platform/apperr"

	"github.com/google/uuid"
)

// fakeStore is an in-memory Store for permission lifecycle tests.
type fakeStore struct {
	employees map[uuid.UUID]*repository.Employee
	overrides map[uuid.UUID]*domain.PermissionOverrides
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		employees: make(map[uuid.UUID]*repository.Employee),
		overrides: make(map[uuid.UUID]*domain.PermissionOverrides),
	}
}

func (f *fakeStore) Create(_ context.Context, emp *repository.Employee) error {
	if emp.ID == uuid.Nil {
		emp.ID = uuid.New()
	}
	stored := *emp
	f.employees[emp.ID] = &stored
	return nil
}

func (f *fakeStore) GetByID(_ context.Context, id, salonID uuid.UUID) (*repository.Employee, error) {
	emp, ok := f.employees[id]
	if !ok || emp.SalonID != salonID {
		return nil, apperr.NotFound("employee not found")
	}
	copied := *emp
	return &copied, nil
}

func (f *fakeStore) List(_ context.Context, salonID uuid.UUID) ([]repository.Employee, error) {
	var items []repository.Employee
	for _, emp := range f.employees {
		if emp.SalonID == salonID {
			items = append(items, *emp)
		}
	}
	return items, nil
}

func (f *fakeStore) Update(_ context.Context, emp *repository.Employee) error {
	stored := *emp
	f.employees[emp.ID] = &stored
	return nil
}

func (f *fakeStore) Delete(_ context.Context, id, salonID uuid.UUID) error {
	if _, err := f.GetByID(context.Background(), id, salonID); err != nil {
		return err
	}
	delete(f.employees, id)
	return nil
}

func (f *fakeStore) GetPermissionOverrides(_ context.Context, employeeID, _ uuid.UUID) (*domain.PermissionOverrides, error) {
	return f.overrides[employeeID], nil
}

func (f *fakeStore) UpsertPermissionOverrides(_ context.Context, employeeID, _ uuid.UUID, o *domain.PermissionOverrides) error {
	copied := *o
	f.overrides[employeeID] = &copied
	return nil
}

func (f *fakeStore) DeletePermissionOverrides(_ context.Context, employeeID, _ uuid.UUID) error {
	delete(f.overrides, employeeID)
	return nil
}

func seedEmployee(store *fakeStore, salonID uuid.UUID) uuid.UUID {
	id := uuid.New()
	store.employees[id] = &repository.Employee{
		ID: id, SalonID: salonID,
		FirstName: "Awa", LastName: "Diop",
		Role: "COIFFEUR", IsAvailable: true,
	}
	return id
}

func TestGetPermissionsCreatesRowOnFirstAccess(t *testing.T) {
	store := newFakeStore()
	svc := New(store)
	salonID := uuid.New()
	empID := seedEmployee(store, salonID)

	resp, err := svc.GetPermissions(context.Background(), salonID, empID)
	if err != nil {
		t.Fatalf("GetPermissions() error = %v", err)
	}

	if resp.CanCreate != nil || resp.CanCancel != nil {
		t.Errorf("expected all overrides unset, got %+v", resp)
	}
	if _, ok := store.overrides[empID]; !ok {
		t.Error("expected an all-unset override row after first access")
	}
}

func TestGetPermissionsReturnsExistingOverrides(t *testing.T) {
	store := newFakeStore()
	svc := New(store)
	salonID := uuid.New()
	empID := seedEmployee(store, salonID)

	allowed := true
	store.overrides[empID] = &domain.PermissionOverrides{CanCreate: &allowed}

	resp, err := svc.GetPermissions(context.Background(), salonID, empID)
	if err != nil {
		t.Fatalf("GetPermissions() error = %v", err)
	}

	if resp.CanCreate == nil || !*resp.CanCreate {
		t.Errorf("CanCreate = %v, want grant preserved", resp.CanCreate)
	}
	if resp.CanCancel != nil {
		t.Errorf("CanCancel = %v, want unset", resp.CanCancel)
	}
}

func TestGetPermissionsUnknownEmployee(t *testing.T) {
	store := newFakeStore()
	svc := New(store)

	_, err := svc.GetPermissions(context.Background(), uuid.New(), uuid.New())
	if apperr.GetKind(err) != apperr.KindNotFound {
		t.Fatalf("GetPermissions() error = %v, want not found", err)
	}
}

func TestValidateSchedule(t *testing.T) {
	tests := []struct {
		name     string
		schedule map[string]string
		wantErr  bool
	}{
		{
			name:     "empty schedule is valid",
			schedule: map[string]string{},
		},
		{
			name: "full week",
			schedule: map[string]string{
				"lundi":    "09:00-17:00",
				"mardi":    "09:00-17:00",
				"mercredi": "09:00-17:00",
				"jeudi":    "09:00-17:00",
				"vendredi": "09:00-17:00",
				"samedi":   "10:00-14:00",
				"dimanche": "10:00-12:00",
			},
		},
		{
			name:     "spaces around times are tolerated",
			schedule: map[string]string{"lundi": "09:00 - 17:00"},
		},
		{
			name:     "unknown weekday",
			schedule: map[string]string{"monday": "09:00-17:00"},
			wantErr:  true,
		},
		{
			name:     "missing dash",
			schedule: map[string]string{"lundi": "09:00 17:00"},
			wantErr:  true,
		},
		{
			name:     "malformed start time",
			schedule: map[string]string{"lundi": "9h-17:00"},
			wantErr:  true,
		},
		{
			name:     "malformed end time",
			schedule: map[string]string{"lundi": "09:00-25:00"},
			wantErr:  true,
		},
		{
			name:     "start equals end",
			schedule: map[string]string{"lundi": "09:00-09:00"},
			wantErr:  true,
		},
		{
			name:     "start after end",
			schedule: map[string]string{"lundi": "17:00-09:00"},
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateSchedule(tt.schedule)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error, got nil")
				}
				if apperr.GetKind(err) != apperr.KindValidation {
					t.Errorf("expected validation error, got kind %v", apperr.GetKind(err))
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
