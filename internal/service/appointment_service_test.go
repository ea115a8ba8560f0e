package service

import (
	"errors"
	"testing"
	"time"

	"clinic-appointment-backend/internal/models"
)

// -- Fakes --

type fakeAppointmentStore struct {
	rows   map[uint]*models.Appointment
	nextID uint

	// mimic gorm preloads on FindByID
	doctors  map[uint]*models.Doctor
	profiles map[uint]*models.Profile
}

func newFakeAppointmentStore(doctors map[uint]*models.Doctor, profiles map[uint]*models.Profile) *fakeAppointmentStore {
	return &fakeAppointmentStore{
		rows:     make(map[uint]*models.Appointment),
		nextID:   1,
		doctors:  doctors,
		profiles: profiles,
	}
}

func (f *fakeAppointmentStore) isActive(a *models.Appointment) bool {
	for _, status := range models.ActiveStatuses {
		if a.Status == status {
			return true
		}
	}
	return false
}

func (f *fakeAppointmentStore) SlotTaken(doctorID uint, date, timeLabel string) (bool, error) {
	for _, a := range f.rows {
		if a.DoctorID == doctorID && a.AppointmentDate == date && a.AppointmentTime == timeLabel && f.isActive(a) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAppointmentStore) CreateIfSlotFree(a *models.Appointment) (bool, error) {
	taken, _ := f.SlotTaken(a.DoctorID, a.AppointmentDate, a.AppointmentTime)
	if taken {
		return false, nil
	}
	a.ID = f.nextID
	f.nextID++
	a.CreatedAt = time.Now()
	f.rows[a.ID] = a
	return true, nil
}

func (f *fakeAppointmentStore) FindByID(id uint) (*models.Appointment, error) {
	a, ok := f.rows[id]
	if !ok {
		return nil, errors.New("appointment not found")
	}
	copied := *a
	copied.Patient = f.profiles[a.PatientID]
	copied.Doctor = f.doctors[a.DoctorID]
	return &copied, nil
}

func (f *fakeAppointmentStore) Update(id uint, updates map[string]interface{}) error {
	a, ok := f.rows[id]
	if !ok {
		return errors.New("appointment not found")
	}
	if v, ok := updates["status"]; ok {
		a.Status = v.(string)
	}
	if v, ok := updates["notes"]; ok {
		notes := v.(string)
		a.Notes = &notes
	}
	if v, ok := updates["approved_by"]; ok {
		actor := v.(uint)
		a.ApprovedBy = &actor
	}
	if v, ok := updates["approved_at"]; ok {
		at := v.(time.Time)
		a.ApprovedAt = &at
	}
	return nil
}

func (f *fakeAppointmentStore) Delete(id uint) error {
	delete(f.rows, id)
	return nil
}

func (f *fakeAppointmentStore) ListByPatient(patientID uint) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, a := range f.rows {
		if a.PatientID == patientID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeAppointmentStore) ListAll(status, date string) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, a := range f.rows {
		if status != "" && a.Status != status {
			continue
		}
		if date != "" && a.AppointmentDate != date {
			continue
		}
		out = append(out, *a)
	}
	return out, nil
}

type fakeDoctorFinder struct {
	doctors map[uint]*models.Doctor
}

func (f *fakeDoctorFinder) FindByID(id uint) (*models.Doctor, error) {
	d, ok := f.doctors[id]
	if !ok {
		return nil, errors.New("doctor not found")
	}
	return d, nil
}

type fakeProfileFinder struct {
	profiles map[uint]*models.Profile
}

func (f *fakeProfileFinder) FindByID(id uint) (*models.Profile, error) {
	p, ok := f.profiles[id]
	if !ok {
		return nil, errors.New("profile not found")
	}
	return p, nil
}

type enqueued struct {
	template  string
	recipient string
	variables map[string]string
}

type fakeNotifier struct {
	sent []enqueued
}

func (f *fakeNotifier) Enqueue(templateName, recipient string, variables map[string]string) {
	f.sent = append(f.sent, enqueued{templateName, recipient, variables})
}

type fakeAudit struct{}

func (fakeAudit) CreateAuditLog(profileID *uint, action string, details string) error {
	return nil
}

// -- Helpers --

func newTestService() (*AppointmentService, *fakeAppointmentStore, *fakeNotifier) {
	notifier := &fakeNotifier{}
	doctors := &fakeDoctorFinder{doctors: map[uint]*models.Doctor{
		1: {ID: 1, FullName: "Dr. House", Specialization: "Diagnostics", Available: true},
		2: {ID: 2, FullName: "Dr. Grey", Specialization: "Surgery", Available: false},
	}}
	profiles := &fakeProfileFinder{profiles: map[uint]*models.Profile{
		10: {ID: 10, Email: "pat@example.com", FullName: "Pat Doe", Role: models.RolePatient},
	}}
	store := newFakeAppointmentStore(doctors.doctors, profiles.profiles)

	svc := NewAppointmentService(store, doctors, profiles, notifier, fakeAudit{})
	svc.now = func() time.Time {
		return time.Date(2025, 5, 30, 12, 0, 0, 0, time.UTC)
	}
	return svc, store, notifier
}

func mustCreate(t *testing.T, svc *AppointmentService, doctorID uint, date, timeLabel string) *models.Appointment {
	t.Helper()
	appointment, err := svc.Create(CreateAppointmentInput{
		PatientID:       10,
		DoctorID:        doctorID,
		AppointmentDate: date,
		AppointmentTime: timeLabel,
		Reason:          "checkup",
	})
	if err != nil {
		t.Fatalf("Create(%s %s): %v", date, timeLabel, err)
	}
	return appointment
}

// -- Tests --

func TestListAvailableSlots(t *testing.T) {
	svc, _, _ := newTestService()

	slots, err := svc.ListAvailableSlots(1, "2025-06-01")
	if err != nil {
		t.Fatalf("ListAvailableSlots: %v", err)
	}
	if len(slots) != 9 {
		t.Fatalf("expected 9 free slots on an empty day, got %d", len(slots))
	}

	mustCreate(t, svc, 1, "2025-06-01", "10:00")

	slots, err = svc.ListAvailableSlots(1, "2025-06-01")
	if err != nil {
		t.Fatalf("ListAvailableSlots after booking: %v", err)
	}
	if len(slots) != 8 {
		t.Fatalf("expected 8 free slots after booking, got %d", len(slots))
	}
	for _, slot := range slots {
		if slot == "10:00" {
			t.Fatal("booked slot 10:00 still listed as available")
		}
		if !ValidSlot(slot) {
			t.Fatalf("off-grid slot returned: %s", slot)
		}
	}
}

func TestCheckAvailability(t *testing.T) {
	svc, _, _ := newTestService()

	available, message, err := svc.CheckAvailability(1, "2025-06-01", "09:00")
	if err != nil {
		t.Fatalf("CheckAvailability: %v", err)
	}
	if !available {
		t.Fatalf("expected slot available, got %q", message)
	}

	mustCreate(t, svc, 1, "2025-06-01", "09:00")

	available, message, err = svc.CheckAvailability(1, "2025-06-01", "09:00")
	if err != nil {
		t.Fatalf("CheckAvailability after booking: %v", err)
	}
	if available {
		t.Fatal("expected slot taken after booking")
	}
	if message != "Time slot is already booked" {
		t.Fatalf("unexpected message: %q", message)
	}
}

func TestCheckAvailabilityRejectsOffGridSlot(t *testing.T) {
	svc, _, _ := newTestService()

	_, _, err := svc.CheckAvailability(1, "2025-06-01", "08:30")
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for off-grid slot, got %v", err)
	}
}

func TestCancelledAppointmentFreesSlot(t *testing.T) {
	svc, _, _ := newTestService()

	appointment := mustCreate(t, svc, 1, "2025-06-01", "11:00")

	if _, err := svc.Transition(appointment.ID, "reject", "", 99); err != nil {
		t.Fatalf("reject: %v", err)
	}

	available, _, err := svc.CheckAvailability(1, "2025-06-01", "11:00")
	if err != nil {
		t.Fatalf("CheckAvailability: %v", err)
	}
	if !available {
		t.Fatal("cancelled appointment should not block re-booking")
	}

	// The freed slot can be booked again.
	mustCreate(t, svc, 1, "2025-06-01", "11:00")
}

func TestCreateRejectsTakenSlot(t *testing.T) {
	svc, _, _ := newTestService()

	mustCreate(t, svc, 1, "2025-06-01", "10:00")

	_, err := svc.Create(CreateAppointmentInput{
		PatientID:       10,
		DoctorID:        1,
		AppointmentDate: "2025-06-01",
		AppointmentTime: "10:00",
		Reason:          "second booking",
	})
	if !errors.Is(err, ErrSlotTaken) {
		t.Fatalf("expected ErrSlotTaken, got %v", err)
	}
}

func TestCreateValidation(t *testing.T) {
	svc, _, _ := newTestService()

	cases := []struct {
		name  string
		input CreateAppointmentInput
	}{
		{
			name: "missing reason",
			input: CreateAppointmentInput{
				PatientID: 10, DoctorID: 1,
				AppointmentDate: "2025-06-01", AppointmentTime: "10:00",
			},
		},
		{
			name: "past date",
			input: CreateAppointmentInput{
				PatientID: 10, DoctorID: 1,
				AppointmentDate: "2025-05-29", AppointmentTime: "10:00",
				Reason: "checkup",
			},
		},
		{
			name: "off-grid time",
			input: CreateAppointmentInput{
				PatientID: 10, DoctorID: 1,
				AppointmentDate: "2025-06-01", AppointmentTime: "18:00",
				Reason: "checkup",
			},
		},
		{
			name: "bad date format",
			input: CreateAppointmentInput{
				PatientID: 10, DoctorID: 1,
				AppointmentDate: "06/01/2025", AppointmentTime: "10:00",
				Reason: "checkup",
			},
		},
		{
			name: "unavailable doctor",
			input: CreateAppointmentInput{
				PatientID: 10, DoctorID: 2,
				AppointmentDate: "2025-06-01", AppointmentTime: "10:00",
				Reason: "checkup",
			},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := svc.Create(c.input); !errors.Is(err, ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestCreateOnTodayIsAllowed(t *testing.T) {
	svc, _, _ := newTestService()
	mustCreate(t, svc, 1, "2025-05-30", "15:00")
}

func TestCreateEnqueuesConfirmation(t *testing.T) {
	svc, _, notifier := newTestService()

	mustCreate(t, svc, 1, "2025-06-01", "10:00")

	if len(notifier.sent) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(notifier.sent))
	}
	sent := notifier.sent[0]
	if sent.template != "appointment_pending" {
		t.Fatalf("unexpected template: %s", sent.template)
	}
	if sent.recipient != "pat@example.com" {
		t.Fatalf("unexpected recipient: %s", sent.recipient)
	}
	if sent.variables["doctor_name"] != "Dr. House" {
		t.Fatalf("unexpected doctor_name: %s", sent.variables["doctor_name"])
	}
}

func TestRejectSetsDefaultNote(t *testing.T) {
	svc, store, notifier := newTestService()

	appointment := mustCreate(t, svc, 1, "2025-06-01", "10:00")

	updated, err := svc.Transition(appointment.ID, "reject", "", 99)
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if updated.Status != models.StatusCancelled {
		t.Fatalf("expected status cancelled, got %s", updated.Status)
	}

	stored := store.rows[appointment.ID]
	if stored.Notes == nil || *stored.Notes != "Rejected by admin" {
		t.Fatalf("expected default rejection note, got %v", stored.Notes)
	}
	if stored.Status != models.StatusCancelled {
		t.Fatalf("stored status = %s", stored.Status)
	}

	last := notifier.sent[len(notifier.sent)-1]
	if last.template != "appointment_cancelled" {
		t.Fatalf("expected appointment_cancelled notification, got %s", last.template)
	}
}

func TestRejectKeepsGivenNote(t *testing.T) {
	svc, store, _ := newTestService()

	appointment := mustCreate(t, svc, 1, "2025-06-01", "10:00")

	if _, err := svc.Transition(appointment.ID, "reject", "Doctor unavailable", 99); err != nil {
		t.Fatalf("reject: %v", err)
	}

	stored := store.rows[appointment.ID]
	if stored.Notes == nil || *stored.Notes != "Doctor unavailable" {
		t.Fatalf("expected given note to be kept, got %v", stored.Notes)
	}
}

func TestApproveSetsApprovalMetadata(t *testing.T) {
	svc, store, notifier := newTestService()

	appointment := mustCreate(t, svc, 1, "2025-06-01", "10:00")

	updated, err := svc.Transition(appointment.ID, "approve", "", 99)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if updated.Status != models.StatusApproved {
		t.Fatalf("expected status approved, got %s", updated.Status)
	}

	stored := store.rows[appointment.ID]
	if stored.ApprovedBy == nil || *stored.ApprovedBy != 99 {
		t.Fatalf("expected approved_by 99, got %v", stored.ApprovedBy)
	}
	if stored.ApprovedAt == nil {
		t.Fatal("expected approved_at to be set")
	}

	last := notifier.sent[len(notifier.sent)-1]
	if last.template != "appointment_approved" {
		t.Fatalf("expected appointment_approved notification, got %s", last.template)
	}
}

func TestApproveNonPendingFails(t *testing.T) {
	svc, store, _ := newTestService()

	appointment := mustCreate(t, svc, 1, "2025-06-01", "10:00")
	if _, err := svc.Transition(appointment.ID, "approve", "", 99); err != nil {
		t.Fatalf("first approve: %v", err)
	}

	before := *store.rows[appointment.ID]

	_, err := svc.Transition(appointment.ID, "approve", "", 99)
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}

	after := *store.rows[appointment.ID]
	if before.Status != after.Status || !before.ApprovedAt.Equal(*after.ApprovedAt) {
		t.Fatal("failed transition must not mutate the row")
	}
}

func TestCompleteRequiresApproved(t *testing.T) {
	svc, _, _ := newTestService()

	appointment := mustCreate(t, svc, 1, "2025-05-30", "08:00")

	if _, err := svc.Transition(appointment.ID, "complete", "", 99); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition completing a pending appointment, got %v", err)
	}
}

func TestCompleteRequiresDatePassed(t *testing.T) {
	svc, store, _ := newTestService()

	appointment := mustCreate(t, svc, 1, "2025-06-01", "10:00")
	if _, err := svc.Transition(appointment.ID, "approve", "", 99); err != nil {
		t.Fatalf("approve: %v", err)
	}

	if _, err := svc.Transition(appointment.ID, "complete", "", 99); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition for a future appointment, got %v", err)
	}

	// Once the date has passed, completing succeeds.
	svc.now = func() time.Time {
		return time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	}
	updated, err := svc.Transition(appointment.ID, "complete", "all good", 99)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if updated.Status != models.StatusCompleted {
		t.Fatalf("expected status completed, got %s", updated.Status)
	}
	if stored := store.rows[appointment.ID]; stored.Notes == nil || *stored.Notes != "all good" {
		t.Fatalf("expected completion note, got %v", stored.Notes)
	}
}

func TestDeleteRemovesRowRegardlessOfStatus(t *testing.T) {
	svc, store, _ := newTestService()

	appointment := mustCreate(t, svc, 1, "2025-06-01", "10:00")
	if _, err := svc.Transition(appointment.ID, "approve", "", 99); err != nil {
		t.Fatalf("approve: %v", err)
	}

	if _, err := svc.Transition(appointment.ID, "delete", "", 99); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok := store.rows[appointment.ID]; ok {
		t.Fatal("expected appointment row to be removed")
	}
}

func TestTransitionUnknownAction(t *testing.T) {
	svc, _, _ := newTestService()

	appointment := mustCreate(t, svc, 1, "2025-06-01", "10:00")

	if _, err := svc.Transition(appointment.ID, "postpone", "", 99); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for unknown action, got %v", err)
	}
}

func TestTransitionMissingAppointment(t *testing.T) {
	svc, _, _ := newTestService()

	if _, err := svc.Transition(12345, "approve", "", 99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
