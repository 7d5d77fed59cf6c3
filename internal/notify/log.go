package notify

import (
	"context"

	"go.uber.org/zap"
)

// LogNotifier stands in when no message broker is configured. It records the
// confirmation in the service log instead of delivering it.
type LogNotifier struct {
	log *zap.Logger
}

func NewLogNotifier(log *zap.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) SendBookingConfirmation(_ context.Context, recipient string, summary BookingConfirmation) error {
	n.log.Info("booking confirmation",
		zap.String("recipient", recipient),
		zap.String("appointment_id", summary.AppointmentID),
		zap.String("doctor", summary.DoctorName),
		zap.String("date", summary.Date),
		zap.String("start_time", summary.StartTime),
		zap.String("end_time", summary.EndTime),
	)
	return nil
}
