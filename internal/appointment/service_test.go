package appointment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/clinicdesk/appointment-service/internal/notify"
	redisclient "github.com/clinicdesk/appointment-service/internal/redis"
)

// fakeRepo is an in-memory Repository. It mimics the store's exclusion
// constraint: inserts and updates into an occupied interval fail with
// ErrTimeSlotTaken even if the caller skipped the conflict scan.
type fakeRepo struct {
	patients     []*Patient
	doctors      []*Doctor
	appointments map[uuid.UUID]*Appointment
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{appointments: map[uuid.UUID]*Appointment{}}
}

func (r *fakeRepo) addPatient(name string) *Patient {
	p := &Patient{
		ID:     uuid.New(),
		UserID: uuid.New(),
		Name:   name,
		Email:  name + "@example.com",
	}
	r.patients = append(r.patients, p)
	return p
}

func (r *fakeRepo) addDoctor(approved bool, availability []AvailabilityEntry) *Doctor {
	d := &Doctor{
		ID:           uuid.New(),
		UserID:       uuid.New(),
		Name:         "Dr. Example",
		Email:        "doctor@example.com",
		Approved:     approved,
		Availability: availability,
	}
	r.doctors = append(r.doctors, d)
	return d
}

func (r *fakeRepo) GetPatientByUserID(_ context.Context, userID uuid.UUID) (*Patient, error) {
	for _, p := range r.patients {
		if p.UserID == userID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, ErrPatientNotFound
}

func (r *fakeRepo) GetDoctorByUserID(_ context.Context, userID uuid.UUID) (*Doctor, error) {
	for _, d := range r.doctors {
		if d.UserID == userID {
			cp := *d
			return &cp, nil
		}
	}
	return nil, ErrDoctorNotFound
}

func (r *fakeRepo) GetDoctorByID(_ context.Context, id uuid.UUID) (*Doctor, error) {
	for _, d := range r.doctors {
		if d.ID == id {
			cp := *d
			return &cp, nil
		}
	}
	return nil, ErrDoctorNotFound
}

func overlapsInterval(a *Appointment, date time.Time, startTime, endTime string) bool {
	if !a.Date.Equal(date) {
		return false
	}
	return a.StartTime < endTime && a.EndTime > startTime
}

func (r *fakeRepo) FindConflict(_ context.Context, doctorID uuid.UUID, date time.Time, startTime, endTime string, excludeID *uuid.UUID) (*Appointment, error) {
	for _, a := range r.appointments {
		if a.DoctorID != doctorID || a.Status == StatusCancelled {
			continue
		}
		if excludeID != nil && a.ID == *excludeID {
			continue
		}
		if overlapsInterval(a, date, startTime, endTime) {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeRepo) CreateAppointment(ctx context.Context, doctorID, patientID uuid.UUID, date time.Time, startTime, endTime string) (*Appointment, error) {
	if conflict, _ := r.FindConflict(ctx, doctorID, date, startTime, endTime, nil); conflict != nil {
		return nil, ErrTimeSlotTaken
	}

	appt := &Appointment{
		ID:        uuid.New(),
		DoctorID:  doctorID,
		PatientID: patientID,
		Date:      date,
		StartTime: startTime,
		EndTime:   endTime,
		Status:    StatusPending,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	r.appointments[appt.ID] = appt

	cp := *appt
	return &cp, nil
}

func (r *fakeRepo) UpdateAppointment(ctx context.Context, appt *Appointment) (*Appointment, error) {
	stored, ok := r.appointments[appt.ID]
	if !ok {
		return nil, ErrAppointmentNotFound
	}

	if appt.Status != StatusCancelled {
		if conflict, _ := r.FindConflict(ctx, appt.DoctorID, appt.Date, appt.StartTime, appt.EndTime, &appt.ID); conflict != nil {
			return nil, ErrTimeSlotTaken
		}
	}

	*stored = *appt
	stored.UpdatedAt = time.Now()

	cp := *stored
	return &cp, nil
}

func (r *fakeRepo) GetAppointmentByIDAndDoctor(_ context.Context, id, doctorID uuid.UUID) (*Appointment, error) {
	a, ok := r.appointments[id]
	if !ok || a.DoctorID != doctorID {
		return nil, ErrAppointmentNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *fakeRepo) GetAppointmentByIDAndPatient(_ context.Context, id, patientID uuid.UUID) (*Appointment, error) {
	a, ok := r.appointments[id]
	if !ok || a.PatientID != patientID {
		return nil, ErrAppointmentNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *fakeRepo) GetAppointmentDetail(ctx context.Context, id uuid.UUID) (*AppointmentDetail, error) {
	a, ok := r.appointments[id]
	if !ok {
		return nil, ErrAppointmentNotFound
	}

	det := AppointmentDetail{Appointment: *a}
	if d, err := r.GetDoctorByID(ctx, a.DoctorID); err == nil {
		det.Doctor = d
	}
	for _, p := range r.patients {
		if p.ID == a.PatientID {
			cp := *p
			det.Patient = &cp
		}
	}
	return &det, nil
}

func (r *fakeRepo) ListByPatient(ctx context.Context, patientID uuid.UUID, status *Status, limit, offset int) ([]AppointmentDetail, error) {
	var out []AppointmentDetail
	for id, a := range r.appointments {
		if a.PatientID != patientID {
			continue
		}
		if status != nil && a.Status != *status {
			continue
		}
		det, err := r.GetAppointmentDetail(ctx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, *det)
	}
	return page(out, limit, offset), nil
}

func (r *fakeRepo) ListByDoctor(ctx context.Context, doctorID uuid.UUID, status *Status, limit, offset int) ([]AppointmentDetail, error) {
	var out []AppointmentDetail
	for id, a := range r.appointments {
		if a.DoctorID != doctorID {
			continue
		}
		if status != nil && a.Status != *status {
			continue
		}
		det, err := r.GetAppointmentDetail(ctx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, *det)
	}
	return page(out, limit, offset), nil
}

func page(items []AppointmentDetail, limit, offset int) []AppointmentDetail {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit < len(items) {
		items = items[:limit]
	}
	return items
}

type passLocker struct {
	calls int
}

func (l *passLocker) WithDoctorDayLock(ctx context.Context, _ uuid.UUID, _ time.Time, fn func(context.Context) error) error {
	l.calls++
	return fn(ctx)
}

type deniedLocker struct{}

func (deniedLocker) WithDoctorDayLock(context.Context, uuid.UUID, time.Time, func(context.Context) error) error {
	return redisclient.ErrLockNotAcquired
}

type recordingNotifier struct {
	err        error
	recipients []string
	sent       []notify.BookingConfirmation
}

func (n *recordingNotifier) SendBookingConfirmation(_ context.Context, recipient string, summary notify.BookingConfirmation) error {
	if n.err != nil {
		return n.err
	}
	n.recipients = append(n.recipients, recipient)
	n.sent = append(n.sent, summary)
	return nil
}

func newTestService(repo *fakeRepo) (*Service, *recordingNotifier) {
	n := &recordingNotifier{}
	return NewService(repo, &passLocker{}, n, zap.NewNop()), n
}

func sundaySchedule() []AvailabilityEntry {
	return []AvailabilityEntry{
		{Day: "Sunday", Slots: []AvailabilitySlot{{StartTime: "09:00", EndTime: "13:00"}}},
	}
}

func TestBookAppointment(t *testing.T) {
	ctx := context.Background()
	sunday := mustDay(t, "2026-03-01")

	t.Run("doctor with no schedule accepts any time", func(t *testing.T) {
		repo := newFakeRepo()
		patient := repo.addPatient("alice")
		doctor := repo.addDoctor(true, nil)
		svc, notifier := newTestService(repo)

		det, err := svc.BookAppointment(ctx, patient.UserID, BookingRequest{
			DoctorID:  doctor.ID,
			Date:      sunday,
			StartTime: "10:00",
			EndTime:   "10:30",
		})
		require.NoError(t, err)
		assert.Equal(t, StatusPending, det.Status)
		assert.Equal(t, doctor.ID, det.DoctorID)
		assert.Equal(t, patient.ID, det.PatientID)
		require.NotNil(t, det.Doctor)
		require.NotNil(t, det.Patient)

		require.Len(t, notifier.sent, 1)
		assert.Equal(t, patient.Email, notifier.recipients[0])
		assert.Equal(t, "2026-03-01", notifier.sent[0].Date)
		assert.Equal(t, "pending", notifier.sent[0].Status)
	})

	t.Run("overlapping booking is rejected", func(t *testing.T) {
		repo := newFakeRepo()
		alice := repo.addPatient("alice")
		bob := repo.addPatient("bob")
		doctor := repo.addDoctor(true, sundaySchedule())
		svc, _ := newTestService(repo)

		_, err := svc.BookAppointment(ctx, alice.UserID, BookingRequest{
			DoctorID: doctor.ID, Date: sunday, StartTime: "10:00", EndTime: "10:30",
		})
		require.NoError(t, err)

		_, err = svc.BookAppointment(ctx, bob.UserID, BookingRequest{
			DoctorID: doctor.ID, Date: sunday, StartTime: "10:15", EndTime: "10:45",
		})
		assert.ErrorIs(t, err, ErrTimeSlotTaken)
	})

	t.Run("adjacent intervals do not conflict", func(t *testing.T) {
		repo := newFakeRepo()
		alice := repo.addPatient("alice")
		bob := repo.addPatient("bob")
		doctor := repo.addDoctor(true, sundaySchedule())
		svc, _ := newTestService(repo)

		_, err := svc.BookAppointment(ctx, alice.UserID, BookingRequest{
			DoctorID: doctor.ID, Date: sunday, StartTime: "10:00", EndTime: "10:30",
		})
		require.NoError(t, err)

		_, err = svc.BookAppointment(ctx, bob.UserID, BookingRequest{
			DoctorID: doctor.ID, Date: sunday, StartTime: "10:30", EndTime: "11:00",
		})
		assert.NoError(t, err)
	})

	t.Run("request outside availability is rejected", func(t *testing.T) {
		repo := newFakeRepo()
		patient := repo.addPatient("alice")
		doctor := repo.addDoctor(true, sundaySchedule())
		svc, _ := newTestService(repo)

		_, err := svc.BookAppointment(ctx, patient.UserID, BookingRequest{
			DoctorID: doctor.ID, Date: sunday, StartTime: "08:00", EndTime: "08:30",
		})
		assert.ErrorIs(t, err, ErrOutsideAvailability)

		_, err = svc.BookAppointment(ctx, patient.UserID, BookingRequest{
			DoctorID: doctor.ID, Date: sunday, StartTime: "12:30", EndTime: "13:30",
		})
		assert.ErrorIs(t, err, ErrOutsideAvailability)

		monday := mustDay(t, "2026-03-02")
		_, err = svc.BookAppointment(ctx, patient.UserID, BookingRequest{
			DoctorID: doctor.ID, Date: monday, StartTime: "10:00", EndTime: "10:30",
		})
		assert.ErrorIs(t, err, ErrDoctorUnavailableDay)
	})

	t.Run("unapproved doctor cannot be booked", func(t *testing.T) {
		repo := newFakeRepo()
		patient := repo.addPatient("alice")
		doctor := repo.addDoctor(false, nil)
		svc, _ := newTestService(repo)

		_, err := svc.BookAppointment(ctx, patient.UserID, BookingRequest{
			DoctorID: doctor.ID, Date: sunday, StartTime: "10:00", EndTime: "10:30",
		})
		assert.ErrorIs(t, err, ErrDoctorNotApproved)
	})

	t.Run("unknown patient or doctor", func(t *testing.T) {
		repo := newFakeRepo()
		patient := repo.addPatient("alice")
		doctor := repo.addDoctor(true, nil)
		svc, _ := newTestService(repo)

		_, err := svc.BookAppointment(ctx, uuid.New(), BookingRequest{
			DoctorID: doctor.ID, Date: sunday, StartTime: "10:00", EndTime: "10:30",
		})
		assert.ErrorIs(t, err, ErrPatientNotFound)

		_, err = svc.BookAppointment(ctx, patient.UserID, BookingRequest{
			DoctorID: uuid.New(), Date: sunday, StartTime: "10:00", EndTime: "10:30",
		})
		assert.ErrorIs(t, err, ErrDoctorNotFound)
	})

	t.Run("inverted time range is rejected", func(t *testing.T) {
		repo := newFakeRepo()
		patient := repo.addPatient("alice")
		doctor := repo.addDoctor(true, nil)
		svc, _ := newTestService(repo)

		_, err := svc.BookAppointment(ctx, patient.UserID, BookingRequest{
			DoctorID: doctor.ID, Date: sunday, StartTime: "11:00", EndTime: "10:00",
		})
		assert.ErrorIs(t, err, ErrInvalidTimeRange)
	})

	t.Run("date is normalized to the calendar day", func(t *testing.T) {
		repo := newFakeRepo()
		patient := repo.addPatient("alice")
		doctor := repo.addDoctor(true, nil)
		svc, _ := newTestService(repo)

		afternoon := sunday.Add(14*time.Hour + 42*time.Minute)
		det, err := svc.BookAppointment(ctx, patient.UserID, BookingRequest{
			DoctorID: doctor.ID, Date: afternoon, StartTime: "10:00", EndTime: "10:30",
		})
		require.NoError(t, err)
		assert.True(t, det.Date.Equal(sunday), "stored date should be midnight")
	})

	t.Run("notification failure does not fail the booking", func(t *testing.T) {
		repo := newFakeRepo()
		patient := repo.addPatient("alice")
		doctor := repo.addDoctor(true, nil)
		notifier := &recordingNotifier{err: errors.New("smtp relay down")}
		svc := NewService(repo, &passLocker{}, notifier, zap.NewNop())

		det, err := svc.BookAppointment(ctx, patient.UserID, BookingRequest{
			DoctorID: doctor.ID, Date: sunday, StartTime: "10:00", EndTime: "10:30",
		})
		require.NoError(t, err)
		assert.Equal(t, StatusPending, det.Status)
	})

	t.Run("lock contention maps to booking in progress", func(t *testing.T) {
		repo := newFakeRepo()
		patient := repo.addPatient("alice")
		doctor := repo.addDoctor(true, nil)
		svc := NewService(repo, deniedLocker{}, &recordingNotifier{}, zap.NewNop())

		_, err := svc.BookAppointment(ctx, patient.UserID, BookingRequest{
			DoctorID: doctor.ID, Date: sunday, StartTime: "10:00", EndTime: "10:30",
		})
		assert.ErrorIs(t, err, ErrBookingInProgress)
		assert.Empty(t, repo.appointments)
	})
}

func TestUpdateAppointmentByDoctor(t *testing.T) {
	ctx := context.Background()
	sunday := mustDay(t, "2026-03-01")

	setup := func(t *testing.T) (*Service, *fakeRepo, *Patient, *Doctor, *AppointmentDetail) {
		repo := newFakeRepo()
		patient := repo.addPatient("alice")
		doctor := repo.addDoctor(true, nil)
		svc, _ := newTestService(repo)

		det, err := svc.BookAppointment(ctx, patient.UserID, BookingRequest{
			DoctorID: doctor.ID, Date: sunday, StartTime: "10:00", EndTime: "10:30",
		})
		require.NoError(t, err)
		return svc, repo, patient, doctor, det
	}

	status := func(s Status) *Status { return &s }
	str := func(s string) *string { return &s }

	t.Run("confirm pending appointment", func(t *testing.T) {
		svc, _, _, doctor, det := setup(t)

		updated, err := svc.UpdateAppointmentByDoctor(ctx, doctor.UserID, det.ID, DoctorUpdate{Status: status(StatusConfirmed)})
		require.NoError(t, err)
		assert.Equal(t, StatusConfirmed, updated.Status)
	})

	t.Run("pending cannot jump to completed", func(t *testing.T) {
		svc, _, _, doctor, det := setup(t)

		_, err := svc.UpdateAppointmentByDoctor(ctx, doctor.UserID, det.ID, DoctorUpdate{Status: status(StatusCompleted)})
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("cancel is terminal", func(t *testing.T) {
		svc, _, _, doctor, det := setup(t)

		_, err := svc.UpdateAppointmentByDoctor(ctx, doctor.UserID, det.ID, DoctorUpdate{Status: status(StatusConfirmed)})
		require.NoError(t, err)

		updated, err := svc.UpdateAppointmentByDoctor(ctx, doctor.UserID, det.ID, DoctorUpdate{Status: status(StatusCancelled)})
		require.NoError(t, err)
		assert.Equal(t, StatusCancelled, updated.Status)

		_, err = svc.UpdateAppointmentByDoctor(ctx, doctor.UserID, det.ID, DoctorUpdate{Status: status(StatusCancelled)})
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("notes are replaced wholesale", func(t *testing.T) {
		svc, _, _, doctor, det := setup(t)

		updated, err := svc.UpdateAppointmentByDoctor(ctx, doctor.UserID, det.ID, DoctorUpdate{Notes: str("bring previous scans")})
		require.NoError(t, err)
		assert.Equal(t, "bring previous scans", updated.Notes)
		assert.Equal(t, StatusPending, updated.Status)

		updated, err = svc.UpdateAppointmentByDoctor(ctx, doctor.UserID, det.ID, DoctorUpdate{Notes: str("")})
		require.NoError(t, err)
		assert.Equal(t, "", updated.Notes)
	})

	t.Run("appointment of another doctor is not found", func(t *testing.T) {
		svc, repo, _, _, det := setup(t)
		other := repo.addDoctor(true, nil)

		_, err := svc.UpdateAppointmentByDoctor(ctx, other.UserID, det.ID, DoctorUpdate{Status: status(StatusConfirmed)})
		assert.ErrorIs(t, err, ErrAppointmentNotFound)
	})
}

func TestUpdateAppointmentByPatient(t *testing.T) {
	ctx := context.Background()
	sunday := mustDay(t, "2026-03-01")

	setup := func(t *testing.T, availability []AvailabilityEntry) (*Service, *fakeRepo, *Patient, *Doctor, *AppointmentDetail) {
		repo := newFakeRepo()
		patient := repo.addPatient("alice")
		doctor := repo.addDoctor(true, availability)
		svc, _ := newTestService(repo)

		det, err := svc.BookAppointment(ctx, patient.UserID, BookingRequest{
			DoctorID: doctor.ID, Date: sunday, StartTime: "10:00", EndTime: "10:30",
		})
		require.NoError(t, err)
		return svc, repo, patient, doctor, det
	}

	status := func(s Status) *Status { return &s }
	str := func(s string) *string { return &s }

	t.Run("cancel pending appointment", func(t *testing.T) {
		svc, _, patient, _, det := setup(t, nil)

		updated, err := svc.UpdateAppointmentByPatient(ctx, patient.UserID, det.ID, PatientUpdate{Status: status(StatusCancelled)})
		require.NoError(t, err)
		assert.Equal(t, StatusCancelled, updated.Status)

		_, err = svc.UpdateAppointmentByPatient(ctx, patient.UserID, det.ID, PatientUpdate{Status: status(StatusCancelled)})
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("reschedule resets a confirmed appointment to pending", func(t *testing.T) {
		svc, _, patient, doctor, det := setup(t, nil)

		_, err := svc.UpdateAppointmentByDoctor(ctx, doctor.UserID, det.ID, DoctorUpdate{Status: status(StatusConfirmed)})
		require.NoError(t, err)

		updated, err := svc.UpdateAppointmentByPatient(ctx, patient.UserID, det.ID, PatientUpdate{
			StartTime: str("11:00"),
			EndTime:   str("11:30"),
		})
		require.NoError(t, err)
		assert.Equal(t, StatusPending, updated.Status)
		assert.Equal(t, "11:00", updated.StartTime)
		assert.Equal(t, "11:30", updated.EndTime)
		assert.True(t, updated.Date.Equal(sunday), "unspecified date keeps current value")
	})

	t.Run("reschedule to its own time succeeds", func(t *testing.T) {
		svc, _, patient, _, det := setup(t, nil)

		updated, err := svc.UpdateAppointmentByPatient(ctx, patient.UserID, det.ID, PatientUpdate{
			StartTime: str("10:00"),
			EndTime:   str("10:30"),
		})
		require.NoError(t, err)
		assert.Equal(t, "10:00", updated.StartTime)
	})

	t.Run("reschedule into an occupied interval is rejected", func(t *testing.T) {
		svc, repo, patient, doctor, det := setup(t, nil)

		bob := repo.addPatient("bob")
		_, err := svc.BookAppointment(ctx, bob.UserID, BookingRequest{
			DoctorID: doctor.ID, Date: sunday, StartTime: "11:00", EndTime: "11:30",
		})
		require.NoError(t, err)

		_, err = svc.UpdateAppointmentByPatient(ctx, patient.UserID, det.ID, PatientUpdate{
			StartTime: str("11:15"),
			EndTime:   str("11:45"),
		})
		assert.ErrorIs(t, err, ErrTimeSlotTaken)
	})

	t.Run("reschedule re-checks availability", func(t *testing.T) {
		svc, _, patient, _, det := setup(t, sundaySchedule())

		_, err := svc.UpdateAppointmentByPatient(ctx, patient.UserID, det.ID, PatientUpdate{
			StartTime: str("14:00"),
			EndTime:   str("14:30"),
		})
		assert.ErrorIs(t, err, ErrOutsideAvailability)

		monday := mustDay(t, "2026-03-02")
		_, err = svc.UpdateAppointmentByPatient(ctx, patient.UserID, det.ID, PatientUpdate{Date: &monday})
		assert.ErrorIs(t, err, ErrDoctorUnavailableDay)
	})

	t.Run("mixed cancel and reschedule payload is rejected", func(t *testing.T) {
		svc, _, patient, _, det := setup(t, nil)

		_, err := svc.UpdateAppointmentByPatient(ctx, patient.UserID, det.ID, PatientUpdate{
			Status:    status(StatusCancelled),
			StartTime: str("11:00"),
		})
		assert.ErrorIs(t, err, ErrMixedUpdate)
	})

	t.Run("empty update is rejected", func(t *testing.T) {
		svc, _, patient, _, det := setup(t, nil)

		_, err := svc.UpdateAppointmentByPatient(ctx, patient.UserID, det.ID, PatientUpdate{})
		assert.ErrorIs(t, err, ErrNoUpdateData)

		// patients cannot confirm their own appointments
		_, err = svc.UpdateAppointmentByPatient(ctx, patient.UserID, det.ID, PatientUpdate{Status: status(StatusConfirmed)})
		assert.ErrorIs(t, err, ErrNoUpdateData)
	})

	t.Run("appointment of another patient is not found", func(t *testing.T) {
		svc, repo, _, _, det := setup(t, nil)
		mallory := repo.addPatient("mallory")

		_, err := svc.UpdateAppointmentByPatient(ctx, mallory.UserID, det.ID, PatientUpdate{Status: status(StatusCancelled)})
		assert.ErrorIs(t, err, ErrAppointmentNotFound)
	})
}

func TestListAppointments(t *testing.T) {
	ctx := context.Background()
	sunday := mustDay(t, "2026-03-01")

	repo := newFakeRepo()
	patient := repo.addPatient("alice")
	doctor := repo.addDoctor(true, nil)
	svc, _ := newTestService(repo)

	for _, slot := range [][2]string{{"09:00", "09:30"}, {"10:00", "10:30"}, {"11:00", "11:30"}} {
		_, err := svc.BookAppointment(ctx, patient.UserID, BookingRequest{
			DoctorID: doctor.ID, Date: sunday, StartTime: slot[0], EndTime: slot[1],
		})
		require.NoError(t, err)
	}

	t.Run("patient sees own appointments", func(t *testing.T) {
		items, err := svc.ListPatientAppointments(ctx, patient.UserID, nil, 0, 0)
		require.NoError(t, err)
		assert.Len(t, items, 3)
	})

	t.Run("status filter applies", func(t *testing.T) {
		pending := StatusPending
		items, err := svc.ListDoctorAppointments(ctx, doctor.UserID, &pending, 0, 0)
		require.NoError(t, err)
		assert.Len(t, items, 3)

		cancelled := StatusCancelled
		items, err = svc.ListDoctorAppointments(ctx, doctor.UserID, &cancelled, 0, 0)
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("limit clamps the page", func(t *testing.T) {
		items, err := svc.ListDoctorAppointments(ctx, doctor.UserID, nil, 2, 0)
		require.NoError(t, err)
		assert.Len(t, items, 2)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.ListPatientAppointments(ctx, uuid.New(), nil, 0, 0)
		assert.ErrorIs(t, err, ErrPatientNotFound)
	})
}

func TestGetDoctorAvailability(t *testing.T) {
	ctx := context.Background()

	repo := newFakeRepo()
	doctor := repo.addDoctor(true, sundaySchedule())
	svc, _ := newTestService(repo)

	entries, err := svc.GetDoctorAvailability(ctx, doctor.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Sunday", entries[0].Day)

	_, err = svc.GetDoctorAvailability(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrDoctorNotFound)
}
