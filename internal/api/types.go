package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/clinicdesk/appointment-service/internal/appointment"
)

type BookAppointmentRequest struct {
	DoctorID  string `json:"doctor" validate:"required,uuid"`
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime string `json:"startTime" validate:"required,datetime=15:04"`
	EndTime   string `json:"endTime" validate:"required,datetime=15:04"`
}

type DoctorUpdateRequest struct {
	Status *string `json:"status,omitempty" validate:"omitempty,oneof=pending confirmed cancelled completed"`
	Notes  *string `json:"notes,omitempty"`
}

type PatientUpdateRequest struct {
	Status    *string `json:"status,omitempty" validate:"omitempty,oneof=pending confirmed cancelled completed"`
	Date      *string `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	StartTime *string `json:"startTime,omitempty" validate:"omitempty,datetime=15:04"`
	EndTime   *string `json:"endTime,omitempty" validate:"omitempty,datetime=15:04"`
}

type PartyResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Specialty *string   `json:"specialty,omitempty"`
}

type AppointmentResponse struct {
	ID        uuid.UUID      `json:"id"`
	DoctorID  uuid.UUID      `json:"doctor_id"`
	PatientID uuid.UUID      `json:"patient_id"`
	Doctor    *PartyResponse `json:"doctor,omitempty"`
	Patient   *PartyResponse `json:"patient,omitempty"`
	Date      string         `json:"date"`
	StartTime string         `json:"startTime"`
	EndTime   string         `json:"endTime"`
	Status    string         `json:"status"`
	Notes     string         `json:"notes"`
	CreatedAt time.Time      `json:"created_at"`
}

type ListResponse struct {
	Items []AppointmentResponse `json:"items"`
	Count int                   `json:"count"`
}

type AvailabilityResponse struct {
	DoctorID     uuid.UUID                       `json:"doctor_id"`
	Availability []appointment.AvailabilityEntry `json:"availability"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func toAppointmentResponse(det *appointment.AppointmentDetail) AppointmentResponse {
	resp := AppointmentResponse{
		ID:        det.ID,
		DoctorID:  det.DoctorID,
		PatientID: det.PatientID,
		Date:      det.Date.Format("2006-01-02"),
		StartTime: det.StartTime,
		EndTime:   det.EndTime,
		Status:    string(det.Status),
		Notes:     det.Notes,
		CreatedAt: det.CreatedAt,
	}

	if det.Doctor != nil {
		resp.Doctor = &PartyResponse{
			ID:        det.Doctor.ID,
			Name:      det.Doctor.Name,
			Email:     det.Doctor.Email,
			Specialty: det.Doctor.Specialty,
		}
	}
	if det.Patient != nil {
		resp.Patient = &PartyResponse{
			ID:    det.Patient.ID,
			Name:  det.Patient.Name,
			Email: det.Patient.Email,
		}
	}

	return resp
}
