package appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/clinicdesk/appointment-service/internal/notify"
	redisclient "github.com/clinicdesk/appointment-service/internal/redis"
)

var (
	ErrDoctorNotApproved    = errors.New("doctor is not approved yet")
	ErrDoctorUnavailableDay = errors.New("doctor is not available on this day")
	ErrOutsideAvailability  = errors.New("requested time is not within the doctor's available slots")
	ErrBookingInProgress    = errors.New("slot is currently being booked, please retry")
	ErrInvalidTimeRange     = errors.New("invalid appointment time range")
	ErrNoUpdateData         = errors.New("no valid update data provided")
	ErrMixedUpdate          = errors.New("cannot cancel and reschedule in the same request")
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

type Service struct {
	repo     Repository
	locker   redisclient.Locker
	notifier notify.Notifier
	log      *zap.Logger
}

func NewService(repo Repository, locker redisclient.Locker, notifier notify.Notifier, log *zap.Logger) *Service {
	return &Service{
		repo:     repo,
		locker:   locker,
		notifier: notifier,
		log:      log,
	}
}

type BookingRequest struct {
	DoctorID  uuid.UUID
	Date      time.Time
	StartTime string
	EndTime   string
}

// BookAppointment reserves a time interval with a doctor for a patient. The
// conflict check and the insert run under a per-doctor-day distributed lock,
// and the store's exclusion constraint backs the same guarantee so that no
// two non-cancelled appointments can ever overlap for one doctor.
func (s *Service) BookAppointment(ctx context.Context, patientUserID uuid.UUID, req BookingRequest) (*AppointmentDetail, error) {
	patient, err := s.repo.GetPatientByUserID(ctx, patientUserID)
	if err != nil {
		if errors.Is(err, ErrPatientNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("load patient: %w", err)
	}

	doctor, err := s.repo.GetDoctorByID(ctx, req.DoctorID)
	if err != nil {
		if errors.Is(err, ErrDoctorNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("load doctor: %w", err)
	}
	if !doctor.Approved {
		return nil, ErrDoctorNotApproved
	}

	startMin, endMin, err := parseTimeRange(req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	day := normalizeDate(req.Date)

	if err := checkAvailability(doctor.Availability, day, startMin, endMin); err != nil {
		return nil, err
	}

	var created *Appointment

	err = s.locker.WithDoctorDayLock(ctx, doctor.ID, day, func(lockCtx context.Context) error {
		conflict, err := s.repo.FindConflict(lockCtx, doctor.ID, day, req.StartTime, req.EndTime, nil)
		if err != nil {
			return fmt.Errorf("check conflict: %w", err)
		}
		if conflict != nil {
			return ErrTimeSlotTaken
		}

		appt, err := s.repo.CreateAppointment(lockCtx, doctor.ID, patient.ID, day, req.StartTime, req.EndTime)
		if err != nil {
			if errors.Is(err, ErrTimeSlotTaken) {
				return err
			}
			return fmt.Errorf("create appointment: %w", err)
		}

		created = appt
		return nil
	})
	if err != nil {
		if errors.Is(err, redisclient.ErrLockNotAcquired) {
			return nil, ErrBookingInProgress
		}
		return nil, err
	}

	// The appointment is committed at this point; notification failure is
	// logged and swallowed, never surfaced to the caller.
	s.sendBookingConfirmation(ctx, patient, doctor, created)

	return s.repo.GetAppointmentDetail(ctx, created.ID)
}

type DoctorUpdate struct {
	Status *Status
	Notes  *string
}

// UpdateAppointmentByDoctor lets a doctor confirm, cancel, or complete an
// appointment and replace its notes. The appointment must belong to the
// acting doctor.
func (s *Service) UpdateAppointmentByDoctor(ctx context.Context, doctorUserID, appointmentID uuid.UUID, upd DoctorUpdate) (*AppointmentDetail, error) {
	doctor, err := s.repo.GetDoctorByUserID(ctx, doctorUserID)
	if err != nil {
		if errors.Is(err, ErrDoctorNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("load doctor: %w", err)
	}

	appt, err := s.repo.GetAppointmentByIDAndDoctor(ctx, appointmentID, doctor.ID)
	if err != nil {
		if errors.Is(err, ErrAppointmentNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("load appointment: %w", err)
	}

	if upd.Status != nil {
		if err := checkTransition(appt.Status, *upd.Status); err != nil {
			return nil, err
		}
		appt.Status = *upd.Status
	}
	if upd.Notes != nil {
		appt.Notes = *upd.Notes
	}

	if _, err := s.repo.UpdateAppointment(ctx, appt); err != nil {
		return nil, fmt.Errorf("update appointment: %w", err)
	}

	return s.repo.GetAppointmentDetail(ctx, appt.ID)
}

type PatientUpdate struct {
	Status    *Status
	Date      *time.Time
	StartTime *string
	EndTime   *string
}

func (u PatientUpdate) wantsReschedule() bool {
	return u.Date != nil || u.StartTime != nil || u.EndTime != nil
}

// UpdateAppointmentByPatient handles the patient-side mutations: cancelling,
// or rescheduling to a new date/time. A reschedule re-validates availability
// and conflicts (excluding the appointment itself) and always resets the
// status to pending so the doctor has to confirm the new time.
func (s *Service) UpdateAppointmentByPatient(ctx context.Context, patientUserID, appointmentID uuid.UUID, upd PatientUpdate) (*AppointmentDetail, error) {
	patient, err := s.repo.GetPatientByUserID(ctx, patientUserID)
	if err != nil {
		if errors.Is(err, ErrPatientNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("load patient: %w", err)
	}

	appt, err := s.repo.GetAppointmentByIDAndPatient(ctx, appointmentID, patient.ID)
	if err != nil {
		if errors.Is(err, ErrAppointmentNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("load appointment: %w", err)
	}

	wantsCancel := upd.Status != nil && *upd.Status == StatusCancelled
	if wantsCancel && upd.wantsReschedule() {
		return nil, ErrMixedUpdate
	}

	switch {
	case wantsCancel:
		if err := checkTransition(appt.Status, StatusCancelled); err != nil {
			return nil, err
		}
		appt.Status = StatusCancelled

		if _, err := s.repo.UpdateAppointment(ctx, appt); err != nil {
			return nil, fmt.Errorf("cancel appointment: %w", err)
		}

	case upd.wantsReschedule():
		if err := s.reschedule(ctx, appt, upd); err != nil {
			return nil, err
		}

	default:
		return nil, ErrNoUpdateData
	}

	return s.repo.GetAppointmentDetail(ctx, appt.ID)
}

func (s *Service) reschedule(ctx context.Context, appt *Appointment, upd PatientUpdate) error {
	newDate := appt.Date
	if upd.Date != nil {
		newDate = normalizeDate(*upd.Date)
	}
	newStart := appt.StartTime
	if upd.StartTime != nil {
		newStart = *upd.StartTime
	}
	newEnd := appt.EndTime
	if upd.EndTime != nil {
		newEnd = *upd.EndTime
	}

	startMin, endMin, err := parseTimeRange(newStart, newEnd)
	if err != nil {
		return err
	}

	doctor, err := s.repo.GetDoctorByID(ctx, appt.DoctorID)
	if err != nil {
		if errors.Is(err, ErrDoctorNotFound) {
			return err
		}
		return fmt.Errorf("load doctor: %w", err)
	}

	if err := checkAvailability(doctor.Availability, newDate, startMin, endMin); err != nil {
		return err
	}

	err = s.locker.WithDoctorDayLock(ctx, doctor.ID, newDate, func(lockCtx context.Context) error {
		conflict, err := s.repo.FindConflict(lockCtx, doctor.ID, newDate, newStart, newEnd, &appt.ID)
		if err != nil {
			return fmt.Errorf("check conflict: %w", err)
		}
		if conflict != nil {
			return ErrTimeSlotTaken
		}

		appt.Date = newDate
		appt.StartTime = newStart
		appt.EndTime = newEnd
		appt.Status = StatusPending

		if _, err := s.repo.UpdateAppointment(lockCtx, appt); err != nil {
			if errors.Is(err, ErrTimeSlotTaken) {
				return err
			}
			return fmt.Errorf("reschedule appointment: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, redisclient.ErrLockNotAcquired) {
			return ErrBookingInProgress
		}
		return err
	}

	return nil
}

// GetAppointment retrieves a fully hydrated appointment by id.
func (s *Service) GetAppointment(ctx context.Context, id uuid.UUID) (*AppointmentDetail, error) {
	return s.repo.GetAppointmentDetail(ctx, id)
}

// ListPatientAppointments returns the acting patient's appointments, newest
// day first, optionally filtered by status.
func (s *Service) ListPatientAppointments(ctx context.Context, patientUserID uuid.UUID, status *Status, limit, offset int) ([]AppointmentDetail, error) {
	patient, err := s.repo.GetPatientByUserID(ctx, patientUserID)
	if err != nil {
		if errors.Is(err, ErrPatientNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("load patient: %w", err)
	}

	limit, offset = clampPage(limit, offset)
	return s.repo.ListByPatient(ctx, patient.ID, status, limit, offset)
}

// ListDoctorAppointments returns the acting doctor's appointments.
func (s *Service) ListDoctorAppointments(ctx context.Context, doctorUserID uuid.UUID, status *Status, limit, offset int) ([]AppointmentDetail, error) {
	doctor, err := s.repo.GetDoctorByUserID(ctx, doctorUserID)
	if err != nil {
		if errors.Is(err, ErrDoctorNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("load doctor: %w", err)
	}

	limit, offset = clampPage(limit, offset)
	return s.repo.ListByDoctor(ctx, doctor.ID, status, limit, offset)
}

// GetDoctorAvailability returns a doctor's published weekly schedule.
func (s *Service) GetDoctorAvailability(ctx context.Context, doctorID uuid.UUID) ([]AvailabilityEntry, error) {
	doctor, err := s.repo.GetDoctorByID(ctx, doctorID)
	if err != nil {
		if errors.Is(err, ErrDoctorNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("load doctor: %w", err)
	}
	return doctor.Availability, nil
}

func (s *Service) sendBookingConfirmation(ctx context.Context, patient *Patient, doctor *Doctor, appt *Appointment) {
	summary := notify.BookingConfirmation{
		AppointmentID: appt.ID.String(),
		PatientName:   patient.Name,
		DoctorName:    doctor.Name,
		Date:          appt.Date.Format("2006-01-02"),
		StartTime:     appt.StartTime,
		EndTime:       appt.EndTime,
		Status:        string(appt.Status),
	}

	if err := s.notifier.SendBookingConfirmation(ctx, patient.Email, summary); err != nil {
		s.log.Warn("failed to send booking confirmation",
			zap.String("appointment_id", appt.ID.String()),
			zap.Error(err),
		)
	}
}

// normalizeDate strips the time of day so the stored value is a pure
// calendar day.
func normalizeDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
