package appointment

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrPatientNotFound     = errors.New("patient profile not found")
	ErrDoctorNotFound      = errors.New("doctor not found")
	ErrAppointmentNotFound = errors.New("appointment not found")

	// ErrTimeSlotTaken is returned both by the application-level conflict
	// scan and by the store when the overlap exclusion constraint fires.
	ErrTimeSlotTaken = errors.New("this time slot is already booked")
)

// Repository contains all DB interactions needed by the service.
type Repository interface {
	GetPatientByUserID(ctx context.Context, userID uuid.UUID) (*Patient, error)
	GetDoctorByUserID(ctx context.Context, userID uuid.UUID) (*Doctor, error)
	GetDoctorByID(ctx context.Context, id uuid.UUID) (*Doctor, error)

	// FindConflict scans the doctor's calendar day for a non-cancelled
	// appointment overlapping [startTime, endTime). excludeID skips the
	// appointment being rescheduled so it cannot conflict with itself.
	// Returns nil when no conflict exists.
	FindConflict(ctx context.Context, doctorID uuid.UUID, date time.Time, startTime, endTime string, excludeID *uuid.UUID) (*Appointment, error)

	// CreateAppointment inserts a new pending appointment. A violation of
	// the overlap exclusion constraint surfaces as ErrTimeSlotTaken.
	CreateAppointment(ctx context.Context, doctorID, patientID uuid.UUID, date time.Time, startTime, endTime string) (*Appointment, error)

	// UpdateAppointment persists status, notes, and date/time changes.
	// Rescheduling into an occupied interval surfaces as ErrTimeSlotTaken.
	UpdateAppointment(ctx context.Context, appt *Appointment) (*Appointment, error)

	GetAppointmentByIDAndDoctor(ctx context.Context, id, doctorID uuid.UUID) (*Appointment, error)
	GetAppointmentByIDAndPatient(ctx context.Context, id, patientID uuid.UUID) (*Appointment, error)

	GetAppointmentDetail(ctx context.Context, id uuid.UUID) (*AppointmentDetail, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID, status *Status, limit, offset int) ([]AppointmentDetail, error)
	ListByDoctor(ctx context.Context, doctorID uuid.UUID, status *Status, limit, offset int) ([]AppointmentDetail, error)
}
