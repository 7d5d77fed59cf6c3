package appointment

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

// AvailabilitySlot is a contiguous time-of-day interval during which a doctor
// accepts appointments. Times are zero-padded 24-hour "HH:mm" strings.
type AvailabilitySlot struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// AvailabilityEntry pairs a weekday name (Sunday..Saturday) with its slots.
// Days without an entry are not worked. An empty schedule means the doctor
// has not published one yet.
type AvailabilityEntry struct {
	Day   string             `json:"day"`
	Slots []AvailabilitySlot `json:"slots"`
}

type Patient struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	Email     string
	Phone     *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Doctor struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	Name         string
	Email        string
	Specialty    *string
	Bio          string
	Approved     bool
	Availability []AvailabilityEntry
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Appointment is one reservation of a doctor's time by a patient. Date holds
// the calendar day only (midnight local); the time of day lives in StartTime
// and EndTime as "HH:mm" strings.
type Appointment struct {
	ID        uuid.UUID
	DoctorID  uuid.UUID
	PatientID uuid.UUID
	Date      time.Time
	StartTime string
	EndTime   string
	Status    Status
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// AppointmentDetail is an appointment with its doctor and patient resolved.
type AppointmentDetail struct {
	Appointment
	Doctor  *Doctor
	Patient *Patient
}
