package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/clinicdesk/appointment-service/internal/appointment"
)

// Service is the slice of the booking engine the HTTP layer depends on.
type Service interface {
	BookAppointment(ctx context.Context, patientUserID uuid.UUID, req appointment.BookingRequest) (*appointment.AppointmentDetail, error)
	UpdateAppointmentByDoctor(ctx context.Context, doctorUserID, appointmentID uuid.UUID, upd appointment.DoctorUpdate) (*appointment.AppointmentDetail, error)
	UpdateAppointmentByPatient(ctx context.Context, patientUserID, appointmentID uuid.UUID, upd appointment.PatientUpdate) (*appointment.AppointmentDetail, error)
	GetAppointment(ctx context.Context, id uuid.UUID) (*appointment.AppointmentDetail, error)
	ListPatientAppointments(ctx context.Context, patientUserID uuid.UUID, status *appointment.Status, limit, offset int) ([]appointment.AppointmentDetail, error)
	ListDoctorAppointments(ctx context.Context, doctorUserID uuid.UUID, status *appointment.Status, limit, offset int) ([]appointment.AppointmentDetail, error)
	GetDoctorAvailability(ctx context.Context, doctorID uuid.UUID) ([]appointment.AvailabilityEntry, error)
}

type RouterConfig struct {
	Service Service
	PgPool  *pgxpool.Pool
	Redis   *redis.Client
	Logger  *zap.Logger
	Env     string
	Version string
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware(cfg.Logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-User-ID", "X-Request-ID"},
	}))

	// Health endpoints
	health := NewHealthHandler(cfg.PgPool, cfg.Redis, cfg.Env, cfg.Version)
	r.Get("/health/live", health.Liveness)
	r.Get("/health/ready", health.Readiness)

	// Booking
	r.Post("/appointments", bookAppointmentHandler(cfg.Service))
	r.Get("/appointments/{id}", getAppointmentHandler(cfg.Service))

	// Patient-side appointment management
	r.Route("/patients/appointments", func(r chi.Router) {
		r.Get("/", listPatientAppointmentsHandler(cfg.Service))
		r.Patch("/{id}", updatePatientAppointmentHandler(cfg.Service))
	})

	// Doctor-side appointment management
	r.Route("/doctors", func(r chi.Router) {
		r.Get("/appointments", listDoctorAppointmentsHandler(cfg.Service))
		r.Patch("/appointments/{id}", updateDoctorAppointmentHandler(cfg.Service))
		r.Get("/{id}/availability", doctorAvailabilityHandler(cfg.Service))
	})

	return r
}
