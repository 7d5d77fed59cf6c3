package notify

import "context"

// BookingConfirmation is the summary delivered to the patient once a booking
// has been durably committed.
type BookingConfirmation struct {
	AppointmentID string `json:"appointment_id"`
	PatientName   string `json:"patient_name"`
	DoctorName    string `json:"doctor_name"`
	Date          string `json:"date"`
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
	Status        string `json:"status"`
}

// Notifier delivers booking confirmations. Delivery is best effort from the
// booking engine's point of view; an error here never fails a booking.
// Implementations must be safe for concurrent use.
type Notifier interface {
	SendBookingConfirmation(ctx context.Context, recipient string, summary BookingConfirmation) error
}
