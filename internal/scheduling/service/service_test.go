package service

import (
	"context"
	"testing"
	"time"

	"salon_backend/internal/scheduling/domain"
	"salon_backend/internal/scheduling/repository"
	"salon_backend/internal/scheduling/transport"
	"salon_backend/platform/apperr"
	"salon_backend/platform/logger"

	"github.com/google/uuid"
)

// fakeStore is an in-memory Store. Lookups return the stored entity
// regardless of the salon argument so tests can exercise the service's own
// tenant-consistency guard.
type fakeStore struct {
	appointments map[uuid.UUID]*repository.Appointment
	employees    map[uuid.UUID]*repository.Employee
	services     map[uuid.UUID]*repository.ServiceInfo
	clients      map[uuid.UUID]*repository.ClientInfo
	hours        []domain.OpeningHour
	overrides    map[uuid.UUID]*domain.PermissionOverrides
	salonName    string

	// beforeStatusWrite runs just before a status write applies, letting
	// tests interleave a concurrent change between read and write.
	beforeStatusWrite func()
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		appointments: make(map[uuid.UUID]*repository.Appointment),
		employees:    make(map[uuid.UUID]*repository.Employee),
		services:     make(map[uuid.UUID]*repository.ServiceInfo),
		clients:      make(map[uuid.UUID]*repository.ClientInfo),
		overrides:    make(map[uuid.UUID]*domain.PermissionOverrides),
		salonName:    "Salon Test",
	}
}

func (f *fakeStore) Create(_ context.Context, appt *repository.Appointment) error {
	stored := *appt
	f.appointments[appt.ID] = &stored
	return nil
}

func (f *fakeStore) GetByID(_ context.Context, id, _ uuid.UUID) (*repository.Appointment, error) {
	appt, ok := f.appointments[id]
	if !ok {
		return nil, apperr.NotFound("appointment not found")
	}
	copied := *appt
	return &copied, nil
}

func (f *fakeStore) UpdateStatus(_ context.Context, id, _ uuid.UUID, fromStatus, toStatus string, notes *string) error {
	if f.beforeStatusWrite != nil {
		f.beforeStatusWrite()
	}
	appt, ok := f.appointments[id]
	if !ok {
		return apperr.NotFound("appointment not found")
	}
	if appt.Status != fromStatus {
		return apperr.InvalidTransition("appointment was moved to " + appt.Status + " by another request")
	}
	appt.Status = toStatus
	if notes != nil {
		appt.Notes = notes
	}
	return nil
}

func (f *fakeStore) UpdateSlot(_ context.Context, id, _, employeeID uuid.UUID, date time.Time, startMinutes int, fromStatus, toStatus string, notes *string) error {
	if f.beforeStatusWrite != nil {
		f.beforeStatusWrite()
	}
	appt, ok := f.appointments[id]
	if !ok {
		return apperr.NotFound("appointment not found")
	}
	if appt.Status != fromStatus {
		return apperr.InvalidTransition("appointment was moved to " + appt.Status + " by another request")
	}
	appt.EmployeeID = employeeID
	appt.Date = date
	appt.StartMinutes = startMinutes
	appt.Status = toStatus
	if notes != nil {
		appt.Notes = notes
	}
	return nil
}

func (f *fakeStore) UpdateNotes(_ context.Context, id, _ uuid.UUID, notes *string) error {
	appt, ok := f.appointments[id]
	if !ok {
		return apperr.NotFound("appointment not found")
	}
	appt.Notes = notes
	return nil
}

func (f *fakeStore) Delete(_ context.Context, id, _ uuid.UUID) error {
	if _, ok := f.appointments[id]; !ok {
		return apperr.NotFound("appointment not found")
	}
	delete(f.appointments, id)
	return nil
}

func (f *fakeStore) List(_ context.Context, params repository.ListParams) (*repository.ListResult, error) {
	var items []repository.Appointment
	for _, appt := range f.appointments {
		if appt.SalonID == params.SalonID {
			items = append(items, *appt)
		}
	}
	return &repository.ListResult{
		Items: items, Total: len(items),
		Page: params.Page, PageSize: params.PageSize, TotalPages: 1,
	}, nil
}

func (f *fakeStore) ListForDate(_ context.Context, salonID uuid.UUID, date time.Time) ([]repository.Appointment, error) {
	var items []repository.Appointment
	for _, appt := range f.appointments {
		if appt.SalonID == salonID && appt.Date.Equal(date) {
			items = append(items, *appt)
		}
	}
	return items, nil
}

func (f *fakeStore) ListUpcoming(_ context.Context, salonID uuid.UUID, from time.Time, _ int) ([]repository.Appointment, error) {
	var items []repository.Appointment
	for _, appt := range f.appointments {
		if appt.SalonID == salonID && !appt.Date.Before(from) && domain.Status(appt.Status).IsActive() {
			items = append(items, *appt)
		}
	}
	return items, nil
}

func (f *fakeStore) ListEmployeeDay(_ context.Context, _, employeeID uuid.UUID, date time.Time, excludeID uuid.UUID) ([]repository.Appointment, error) {
	var items []repository.Appointment
	for _, appt := range f.appointments {
		if appt.ID == excludeID || appt.EmployeeID != employeeID || !appt.Date.Equal(date) {
			continue
		}
		if domain.Status(appt.Status).IsActive() {
			items = append(items, *appt)
		}
	}
	return items, nil
}

func (f *fakeStore) GetEmployee(_ context.Context, id, _ uuid.UUID) (*repository.Employee, error) {
	emp, ok := f.employees[id]
	if !ok {
		return nil, apperr.NotFound("employee not found")
	}
	return emp, nil
}

func (f *fakeStore) LockEmployee(ctx context.Context, id, salonID uuid.UUID) (*repository.Employee, error) {
	return f.GetEmployee(ctx, id, salonID)
}

func (f *fakeStore) ListBookableEmployees(_ context.Context, salonID uuid.UUID) ([]repository.Employee, error) {
	var items []repository.Employee
	for _, emp := range f.employees {
		if emp.SalonID == salonID && emp.IsAvailable {
			items = append(items, *emp)
		}
	}
	return items, nil
}

func (f *fakeStore) ListOpeningHours(_ context.Context, _ uuid.UUID) ([]domain.OpeningHour, error) {
	return f.hours, nil
}

func (f *fakeStore) GetService(_ context.Context, id, _ uuid.UUID) (*repository.ServiceInfo, error) {
	svc, ok := f.services[id]
	if !ok {
		return nil, apperr.NotFound("service not found")
	}
	return svc, nil
}

func (f *fakeStore) GetClient(_ context.Context, id, _ uuid.UUID) (*repository.ClientInfo, error) {
	client, ok := f.clients[id]
	if !ok {
		return nil, apperr.NotFound("client not found")
	}
	return client, nil
}

func (f *fakeStore) GetSalonName(_ context.Context, _ uuid.UUID) (string, error) {
	return f.salonName, nil
}

func (f *fakeStore) GetPermissionOverrides(_ context.Context, employeeID, _ uuid.UUID) (*domain.PermissionOverrides, error) {
	return f.overrides[employeeID], nil
}

func (f *fakeStore) CountByStatusForDay(_ context.Context, salonID uuid.UUID, date time.Time) (repository.StatusCounts, error) {
	counts := make(repository.StatusCounts)
	for _, appt := range f.appointments {
		if appt.SalonID == salonID && appt.Date.Equal(date) {
			counts[appt.Status]++
		}
	}
	return counts, nil
}

func (f *fakeStore) SumRevenueForDay(_ context.Context, salonID uuid.UUID, date time.Time) (float64, error) {
	var total float64
	for _, appt := range f.appointments {
		if appt.SalonID != salonID || !appt.Date.Equal(date) || appt.Status != string(domain.StatusCompleted) {
			continue
		}
		if svc, ok := f.services[appt.ServiceID]; ok {
			total += svc.Price
		}
	}
	return total, nil
}

func (f *fakeStore) InTx(_ context.Context, fn func(tx Store) error) error {
	return fn(f)
}

type testConfig struct{}

func (testConfig) GetDefaultOpenTime() string     { return "08:00" }
func (testConfig) GetDefaultCloseTime() string    { return "18:00" }
func (testConfig) GetSlotGranularityMinutes() int { return 30 }
func (testConfig) GetReminderLead() time.Duration { return 0 }

// fixture is a salon with one employee, one service and one client, open
// every day 08:00-18:00, employee working 09:00-17:00.
type fixture struct {
	store    *fakeStore
	svc      *Service
	salonID  uuid.UUID
	empID    uuid.UUID
	svcID    uuid.UUID
	clientID uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := newFakeStore()
	f := &fixture{
		store:    store,
		svc:      New(store, nil, nil, nil, logger.New("test"), testConfig{}),
		salonID:  uuid.New(),
		empID:    uuid.New(),
		svcID:    uuid.New(),
		clientID: uuid.New(),
	}

	schedule := make(map[string]string)
	for i := 0; i < 7; i++ {
		schedule[domain.WeekdayName(i)] = "09:00-17:00"
	}
	store.employees[f.empID] = &repository.Employee{
		ID: f.empID, SalonID: f.salonID,
		FirstName: "Awa", LastName: "Diop",
		WorkSchedule: schedule, IsAvailable: true,
	}
	store.services[f.svcID] = &repository.ServiceInfo{
		ID: f.svcID, SalonID: f.salonID,
		Name: "Coupe femme", DurationMinutes: 60, Price: 35, IsActive: true,
	}
	store.clients[f.clientID] = &repository.ClientInfo{
		ID: f.clientID, SalonID: f.salonID,
		FirstName: "Fatou", LastName: "Ndiaye", Phone: "+221771234567",
	}
	return f
}

func (f *fixture) admin() Actor {
	return Actor{UserID: uuid.New(), Role: domain.RoleAdmin, SalonID: f.salonID}
}

func (f *fixture) createRequest(date, start string) transport.CreateAppointmentRequest {
	return transport.CreateAppointmentRequest{
		ClientID:   f.clientID,
		EmployeeID: f.empID,
		ServiceID:  f.svcID,
		Date:       date,
		StartTime:  start,
	}
}

func TestCreateBooksSlot(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.Create(context.Background(), f.admin(), f.createRequest("2026-09-07", "10:00"))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if resp.Status != string(domain.StatusPending) {
		t.Errorf("status = %s, want PENDING", resp.Status)
	}
	if resp.StartTime != "10:00" || resp.EndTime != "11:00" {
		t.Errorf("slot = %s-%s, want 10:00-11:00", resp.StartTime, resp.EndTime)
	}
	if len(f.store.appointments) != 1 {
		t.Errorf("stored %d appointments, want 1", len(f.store.appointments))
	}
}

func TestCreateRejectsConflictingSlot(t *testing.T) {
	f := newFixture(t)
	actor := f.admin()

	if _, err := f.svc.Create(context.Background(), actor, f.createRequest("2026-09-07", "10:00")); err != nil {
		t.Fatalf("first Create() error = %v", err)
	}

	// Overlaps 10:00-11:00
	_, err := f.svc.Create(context.Background(), actor, f.createRequest("2026-09-07", "10:30"))
	if apperr.GetCode(err) != apperr.CodeSlotUnavailable {
		t.Fatalf("Create() error = %v, want code %s", err, apperr.CodeSlotUnavailable)
	}

	if len(f.store.appointments) != 1 {
		t.Errorf("stored %d appointments, want 1", len(f.store.appointments))
	}
}

func TestCreateBackToBackSlots(t *testing.T) {
	f := newFixture(t)
	actor := f.admin()

	if _, err := f.svc.Create(context.Background(), actor, f.createRequest("2026-09-07", "10:00")); err != nil {
		t.Fatalf("first Create() error = %v", err)
	}
	// 11:00 starts exactly where the first ends: no conflict
	if _, err := f.svc.Create(context.Background(), actor, f.createRequest("2026-09-07", "11:00")); err != nil {
		t.Fatalf("back-to-back Create() error = %v", err)
	}
}

func TestCreateOutsideWorkingHours(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name  string
		start string
	}{
		{"before employee starts", "08:00"},
		{"would run past employee end", "16:30"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Create(context.Background(), f.admin(), f.createRequest("2026-09-07", tt.start))
			if apperr.GetCode(err) != apperr.CodeSlotUnavailable {
				t.Errorf("Create(%s) error = %v, want code %s", tt.start, err, apperr.CodeSlotUnavailable)
			}
		})
	}
}

func TestCreateUnavailableEmployee(t *testing.T) {
	f := newFixture(t)
	f.store.employees[f.empID].IsAvailable = false

	_, err := f.svc.Create(context.Background(), f.admin(), f.createRequest("2026-09-07", "10:00"))
	if apperr.GetCode(err) != apperr.CodeSlotUnavailable {
		t.Fatalf("Create() error = %v, want code %s", err, apperr.CodeSlotUnavailable)
	}
}

func TestCreateInactiveService(t *testing.T) {
	f := newFixture(t)
	f.store.services[f.svcID].IsActive = false

	_, err := f.svc.Create(context.Background(), f.admin(), f.createRequest("2026-09-07", "10:00"))
	if apperr.GetKind(err) != apperr.KindValidation {
		t.Fatalf("Create() error = %v, want validation error", err)
	}
}

func TestCreateCrossTenantClient(t *testing.T) {
	f := newFixture(t)
	f.store.clients[f.clientID].SalonID = uuid.New()

	_, err := f.svc.Create(context.Background(), f.admin(), f.createRequest("2026-09-07", "10:00"))
	if apperr.GetCode(err) != apperr.CodeCrossTenantMismatch {
		t.Fatalf("Create() error = %v, want code %s", err, apperr.CodeCrossTenantMismatch)
	}
}

func TestCreatePermissionDenied(t *testing.T) {
	f := newFixture(t)
	coiffeur := Actor{UserID: uuid.New(), Role: domain.RoleCoiffeur, SalonID: f.salonID, EmployeeID: &f.empID}

	_, err := f.svc.Create(context.Background(), coiffeur, f.createRequest("2026-09-07", "10:00"))
	if apperr.GetCode(err) != apperr.CodePermissionDenied {
		t.Fatalf("Create() error = %v, want code %s", err, apperr.CodePermissionDenied)
	}
}

func TestCreateAllowedByOverride(t *testing.T) {
	f := newFixture(t)
	allowed := true
	f.store.overrides[f.empID] = &domain.PermissionOverrides{CanCreate: &allowed}
	coiffeur := Actor{UserID: uuid.New(), Role: domain.RoleCoiffeur, SalonID: f.salonID, EmployeeID: &f.empID}

	if _, err := f.svc.Create(context.Background(), coiffeur, f.createRequest("2026-09-07", "10:00")); err != nil {
		t.Fatalf("Create() with override error = %v", err)
	}
}

func TestTransitionLifecycle(t *testing.T) {
	f := newFixture(t)
	actor := f.admin()
	ctx := context.Background()

	created, err := f.svc.Create(ctx, actor, f.createRequest("2026-09-07", "10:00"))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	confirmed, err := f.svc.Confirm(ctx, actor, created.ID)
	if err != nil {
		t.Fatalf("Confirm() error = %v", err)
	}
	if confirmed.Status != string(domain.StatusConfirmed) {
		t.Errorf("status = %s, want CONFIRMED", confirmed.Status)
	}

	started, err := f.svc.Start(ctx, actor, created.ID)
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if started.Status != string(domain.StatusInProgress) {
		t.Errorf("status = %s, want IN_PROGRESS", started.Status)
	}

	completed, err := f.svc.Complete(ctx, actor, created.ID)
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if completed.Status != string(domain.StatusCompleted) {
		t.Errorf("status = %s, want COMPLETED", completed.Status)
	}

	// Completed is terminal
	if _, err := f.svc.Cancel(ctx, actor, created.ID, transport.CancelAppointmentRequest{}); apperr.GetCode(err) != apperr.CodeInvalidTransition {
		t.Errorf("Cancel() after complete error = %v, want code %s", err, apperr.CodeInvalidTransition)
	}
}

func TestConfirmTwiceFails(t *testing.T) {
	f := newFixture(t)
	actor := f.admin()
	ctx := context.Background()

	created, err := f.svc.Create(ctx, actor, f.createRequest("2026-09-07", "10:00"))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := f.svc.Confirm(ctx, actor, created.ID); err != nil {
		t.Fatalf("Confirm() error = %v", err)
	}

	_, err = f.svc.Confirm(ctx, actor, created.ID)
	if apperr.GetCode(err) != apperr.CodeInvalidTransition {
		t.Fatalf("second Confirm() error = %v, want code %s", err, apperr.CodeInvalidTransition)
	}
}

func TestCancelAppendsReason(t *testing.T) {
	f := newFixture(t)
	actor := f.admin()
	ctx := context.Background()

	created, err := f.svc.Create(ctx, actor, f.createRequest("2026-09-07", "10:00"))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	reason := "client malade"
	cancelled, err := f.svc.Cancel(ctx, actor, created.ID, transport.CancelAppointmentRequest{Reason: &reason})
	if err != nil {
		t.Fatalf("Cancel() error = %v", err)
	}
	if cancelled.Status != string(domain.StatusCancelled) {
		t.Errorf("status = %s, want CANCELLED", cancelled.Status)
	}
	if cancelled.Notes == nil || *cancelled.Notes != "Annulation: client malade" {
		t.Errorf("notes = %v, want cancellation reason", cancelled.Notes)
	}
}

func TestCancelledSlotIsFreed(t *testing.T) {
	f := newFixture(t)
	actor := f.admin()
	ctx := context.Background()

	created, err := f.svc.Create(ctx, actor, f.createRequest("2026-09-07", "10:00"))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := f.svc.Cancel(ctx, actor, created.ID, transport.CancelAppointmentRequest{}); err != nil {
		t.Fatalf("Cancel() error = %v", err)
	}

	// The cancelled appointment no longer blocks the slot
	if _, err := f.svc.Create(ctx, actor, f.createRequest("2026-09-07", "10:00")); err != nil {
		t.Fatalf("rebooking freed slot error = %v", err)
	}
}

func TestRescheduleMovesAndResetsStatus(t *testing.T) {
	f := newFixture(t)
	actor := f.admin()
	ctx := context.Background()

	created, err := f.svc.Create(ctx, actor, f.createRequest("2026-09-07", "10:00"))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := f.svc.Confirm(ctx, actor, created.ID); err != nil {
		t.Fatalf("Confirm() error = %v", err)
	}

	moved, err := f.svc.Reschedule(ctx, actor, created.ID, transport.RescheduleAppointmentRequest{
		Date: "2026-09-08", StartTime: "14:00",
	})
	if err != nil {
		t.Fatalf("Reschedule() error = %v", err)
	}
	if moved.Date != "2026-09-08" || moved.StartTime != "14:00" {
		t.Errorf("slot = %s %s, want 2026-09-08 14:00", moved.Date, moved.StartTime)
	}
	if moved.Status != string(domain.StatusPending) {
		t.Errorf("status = %s, want PENDING after reschedule", moved.Status)
	}
}

func TestRescheduleConflictLeavesAppointmentUnchanged(t *testing.T) {
	f := newFixture(t)
	actor := f.admin()
	ctx := context.Background()

	if _, err := f.svc.Create(ctx, actor, f.createRequest("2026-09-07", "10:00")); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	second, err := f.svc.Create(ctx, actor, f.createRequest("2026-09-07", "14:00"))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	_, err = f.svc.Reschedule(ctx, actor, second.ID, transport.RescheduleAppointmentRequest{
		Date: "2026-09-07", StartTime: "10:30",
	})
	if apperr.GetCode(err) != apperr.CodeSlotUnavailable {
		t.Fatalf("Reschedule() error = %v, want code %s", err, apperr.CodeSlotUnavailable)
	}

	stored := f.store.appointments[second.ID]
	if stored.StartMinutes != 14*60 || stored.Status != string(domain.StatusPending) {
		t.Errorf("appointment changed after failed reschedule: start=%d status=%s", stored.StartMinutes, stored.Status)
	}
}

func TestReassignKeepsStatusAndSlot(t *testing.T) {
	f := newFixture(t)
	actor := f.admin()
	ctx := context.Background()

	otherEmp := uuid.New()
	schedule := make(map[string]string)
	for i := 0; i < 7; i++ {
		schedule[domain.WeekdayName(i)] = "09:00-17:00"
	}
	f.store.employees[otherEmp] = &repository.Employee{
		ID: otherEmp, SalonID: f.salonID,
		FirstName: "Binta", LastName: "Sall",
		WorkSchedule: schedule, IsAvailable: true,
	}

	created, err := f.svc.Create(ctx, actor, f.createRequest("2026-09-07", "10:00"))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := f.svc.Confirm(ctx, actor, created.ID); err != nil {
		t.Fatalf("Confirm() error = %v", err)
	}

	moved, err := f.svc.Reassign(ctx, actor, created.ID, transport.ReassignAppointmentRequest{EmployeeID: otherEmp})
	if err != nil {
		t.Fatalf("Reassign() error = %v", err)
	}
	if moved.EmployeeID != otherEmp {
		t.Errorf("employee = %s, want %s", moved.EmployeeID, otherEmp)
	}
	if moved.Status != string(domain.StatusConfirmed) {
		t.Errorf("status = %s, want CONFIRMED preserved", moved.Status)
	}
	if moved.StartTime != "10:00" {
		t.Errorf("startTime = %s, want 10:00", moved.StartTime)
	}
}

func TestRescheduleAppendsPriorSlotNote(t *testing.T) {
	f := newFixture(t)
	actor := f.admin()
	ctx := context.Background()

	created, err := f.svc.Create(ctx, actor, f.createRequest("2026-09-07", "10:00"))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	moved, err := f.svc.Reschedule(ctx, actor, created.ID, transport.RescheduleAppointmentRequest{
		Date: "2026-09-08", StartTime: "14:00",
	})
	if err != nil {
		t.Fatalf("Reschedule() error = %v", err)
	}

	want := "Reprogrammé: 2026-09-07 10:00 -> 2026-09-08 14:00"
	if moved.Notes == nil || *moved.Notes != want {
		t.Errorf("response notes = %v, want %q", moved.Notes, want)
	}
	stored := f.store.appointments[created.ID]
	if stored.Notes == nil || *stored.Notes != want {
		t.Errorf("stored notes = %v, want %q", stored.Notes, want)
	}
}

func TestReassignAppendsAuditNote(t *testing.T) {
	f := newFixture(t)
	actor := f.admin()
	ctx := context.Background()

	otherEmp := uuid.New()
	schedule := make(map[string]string)
	for i := 0; i < 7; i++ {
		schedule[domain.WeekdayName(i)] = "09:00-17:00"
	}
	f.store.employees[otherEmp] = &repository.Employee{
		ID: otherEmp, SalonID: f.salonID,
		FirstName: "Binta", LastName: "Sall",
		WorkSchedule: schedule, IsAvailable: true,
	}

	created, err := f.svc.Create(ctx, actor, f.createRequest("2026-09-07", "10:00"))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	moved, err := f.svc.Reassign(ctx, actor, created.ID, transport.ReassignAppointmentRequest{EmployeeID: otherEmp})
	if err != nil {
		t.Fatalf("Reassign() error = %v", err)
	}

	want := "Réassigné: Awa Diop -> Binta Sall"
	if moved.Notes == nil || *moved.Notes != want {
		t.Errorf("response notes = %v, want %q", moved.Notes, want)
	}
	stored := f.store.appointments[created.ID]
	if stored.Notes == nil || *stored.Notes != want {
		t.Errorf("stored notes = %v, want %q", stored.Notes, want)
	}
}

func TestReassignConflictLeavesAppointmentUnchanged(t *testing.T) {
	f := newFixture(t)
	actor := f.admin()
	ctx := context.Background()

	otherEmp := uuid.New()
	schedule := make(map[string]string)
	for i := 0; i < 7; i++ {
		schedule[domain.WeekdayName(i)] = "09:00-17:00"
	}
	f.store.employees[otherEmp] = &repository.Employee{
		ID: otherEmp, SalonID: f.salonID,
		FirstName: "Binta", LastName: "Sall",
		WorkSchedule: schedule, IsAvailable: true,
	}

	created, err := f.svc.Create(ctx, actor, f.createRequest("2026-09-07", "10:00"))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	// The target employee already has an overlapping booking
	if _, err := f.svc.Create(ctx, actor, transport.CreateAppointmentRequest{
		ClientID: f.clientID, EmployeeID: otherEmp, ServiceID: f.svcID,
		Date: "2026-09-07", StartTime: "10:30",
	}); err != nil {
		t.Fatalf("Create() for target employee error = %v", err)
	}

	_, err = f.svc.Reassign(ctx, actor, created.ID, transport.ReassignAppointmentRequest{EmployeeID: otherEmp})
	if apperr.GetCode(err) != apperr.CodeSlotUnavailable {
		t.Fatalf("Reassign() error = %v, want code %s", err, apperr.CodeSlotUnavailable)
	}

	stored := f.store.appointments[created.ID]
	if stored.EmployeeID != f.empID || stored.StartMinutes != 10*60 || stored.Status != string(domain.StatusPending) {
		t.Errorf("appointment changed after failed reassign: employee=%s start=%d status=%s",
			stored.EmployeeID, stored.StartMinutes, stored.Status)
	}
	if stored.Notes != nil {
		t.Errorf("notes = %q, want none after failed reassign", *stored.Notes)
	}
}

func TestStatusWriteDetectsConcurrentChange(t *testing.T) {
	f := newFixture(t)
	actor := f.admin()
	ctx := context.Background()

	created, err := f.svc.Create(ctx, actor, f.createRequest("2026-09-07", "10:00"))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// A cancel lands between the confirm's read and its write
	f.store.beforeStatusWrite = func() {
		f.store.beforeStatusWrite = nil
		f.store.appointments[created.ID].Status = string(domain.StatusCancelled)
	}

	_, err = f.svc.Confirm(ctx, actor, created.ID)
	if apperr.GetCode(err) != apperr.CodeInvalidTransition {
		t.Fatalf("Confirm() error = %v, want code %s", err, apperr.CodeInvalidTransition)
	}
	if got := f.store.appointments[created.ID].Status; got != string(domain.StatusCancelled) {
		t.Errorf("status = %s, want CANCELLED preserved", got)
	}
}

func TestCheckAvailability(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.svc.Create(ctx, f.admin(), f.createRequest("2026-09-07", "10:00")); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	tests := []struct {
		name      string
		start     string
		available bool
	}{
		{"free slot", "14:00", true},
		{"taken slot", "10:00", false},
		{"overlapping slot", "09:30", false},
		{"outside hours", "07:00", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := f.svc.CheckAvailability(ctx, f.salonID, transport.AvailabilityCheckRequest{
				EmployeeID: f.empID, ServiceID: f.svcID,
				Date: "2026-09-07", StartTime: tt.start,
			})
			if err != nil {
				t.Fatalf("CheckAvailability() error = %v", err)
			}
			if resp.Available != tt.available {
				t.Errorf("available = %v, want %v (reason: %s)", resp.Available, tt.available, resp.Reason)
			}
		})
	}
}

func TestAvailableSlotsRespectsBookings(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.svc.Create(ctx, f.admin(), f.createRequest("2026-09-07", "10:00")); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	resp, err := f.svc.AvailableSlots(ctx, f.salonID, transport.AvailableSlotsRequest{
		EmployeeID: f.empID, ServiceID: f.svcID, Date: "2026-09-07",
	}, false)
	if err != nil {
		t.Fatalf("AvailableSlots() error = %v", err)
	}

	for _, slot := range resp.Slots {
		if slot == "10:00" || slot == "10:30" {
			t.Errorf("slot %s should be blocked by the 10:00-11:00 booking", slot)
		}
	}
	if resp.Slots[0] != "09:00" {
		t.Errorf("first slot = %s, want 09:00 (employee start)", resp.Slots[0])
	}
	last := resp.Slots[len(resp.Slots)-1]
	if last != "16:00" {
		t.Errorf("last slot = %s, want 16:00 (last fit before 17:00)", last)
	}
}

func TestAvailableSlotsFiltersPastToday(t *testing.T) {
	f := newFixture(t)
	f.svc.now = func() time.Time {
		return time.Date(2026, 9, 7, 12, 0, 0, 0, time.UTC)
	}

	resp, err := f.svc.AvailableSlots(context.Background(), f.salonID, transport.AvailableSlotsRequest{
		EmployeeID: f.empID, ServiceID: f.svcID, Date: "2026-09-07",
	}, true)
	if err != nil {
		t.Fatalf("AvailableSlots() error = %v", err)
	}

	for _, slot := range resp.Slots {
		if slot <= "12:00" {
			t.Errorf("slot %s is in the past and should be filtered", slot)
		}
	}
	if len(resp.Slots) == 0 {
		t.Error("expected afternoon slots to remain")
	}
}

func TestAvailableEmployeesSkipsBusy(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	otherEmp := uuid.New()
	schedule := make(map[string]string)
	for i := 0; i < 7; i++ {
		schedule[domain.WeekdayName(i)] = "09:00-17:00"
	}
	f.store.employees[otherEmp] = &repository.Employee{
		ID: otherEmp, SalonID: f.salonID,
		FirstName: "Binta", LastName: "Sall",
		WorkSchedule: schedule, IsAvailable: true,
	}

	if _, err := f.svc.Create(ctx, f.admin(), f.createRequest("2026-09-07", "10:00")); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	resp, err := f.svc.AvailableEmployees(ctx, f.salonID, transport.AvailableEmployeesRequest{
		ServiceID: f.svcID, Date: "2026-09-07", StartTime: "10:00",
	})
	if err != nil {
		t.Fatalf("AvailableEmployees() error = %v", err)
	}

	if len(resp.Employees) != 1 || resp.Employees[0].ID != otherEmp {
		t.Fatalf("employees = %v, want only the free employee %s", resp.Employees, otherEmp)
	}
}

func TestMalformedScheduleTreatedAsDayOff(t *testing.T) {
	f := newFixture(t)
	f.store.employees[f.empID].WorkSchedule[domain.WeekdayName(domain.WeekdayIndex(time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)))] = "garbage"

	_, err := f.svc.Create(context.Background(), f.admin(), f.createRequest("2026-09-07", "10:00"))
	if apperr.GetCode(err) != apperr.CodeSlotUnavailable {
		t.Fatalf("Create() error = %v, want code %s", err, apperr.CodeSlotUnavailable)
	}
}
