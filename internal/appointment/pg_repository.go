package appointment

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SQLSTATE raised when the appointments overlap exclusion constraint fires.
const exclusionViolation = "23P01"

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

// Helpers

func scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient
	var phone *string

	err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.Name,
		&p.Email,
		&phone,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPatientNotFound
		}
		return nil, err
	}

	p.Phone = phone
	return &p, nil
}

func scanDoctor(row pgx.Row) (*Doctor, error) {
	var d Doctor
	var specialty *string

	err := row.Scan(
		&d.ID,
		&d.UserID,
		&d.Name,
		&d.Email,
		&specialty,
		&d.Bio,
		&d.Approved,
		&d.Availability,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrDoctorNotFound
		}
		return nil, err
	}

	d.Specialty = specialty
	return &d, nil
}

func scanAppointment(row pgx.Row) (*Appointment, error) {
	var a Appointment

	err := row.Scan(
		&a.ID,
		&a.DoctorID,
		&a.PatientID,
		&a.Date,
		&a.StartTime,
		&a.EndTime,
		&a.Status,
		&a.Notes,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAppointmentNotFound
		}
		return nil, err
	}

	return &a, nil
}

func isExclusionViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == exclusionViolation
}

// Interface methods

func (r *PgRepository) GetPatientByUserID(ctx context.Context, userID uuid.UUID) (*Patient, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, user_id, name, email, phone, created_at, updated_at
		FROM patients
		WHERE user_id = $1
	`, userID)
	return scanPatient(row)
}

func (r *PgRepository) GetDoctorByUserID(ctx context.Context, userID uuid.UUID) (*Doctor, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, user_id, name, email, specialty, bio, is_approved, availability, created_at, updated_at
		FROM doctors
		WHERE user_id = $1
	`, userID)
	return scanDoctor(row)
}

func (r *PgRepository) GetDoctorByID(ctx context.Context, id uuid.UUID) (*Doctor, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, user_id, name, email, specialty, bio, is_approved, availability, created_at, updated_at
		FROM doctors
		WHERE id = $1
	`, id)
	return scanDoctor(row)
}

func (r *PgRepository) FindConflict(ctx context.Context, doctorID uuid.UUID, date time.Time, startTime, endTime string, excludeID *uuid.UUID) (*Appointment, error) {
	// Lexicographic comparison on start_time/end_time is safe: the schema
	// constrains both columns to zero-padded HH:mm.
	row := r.pool.QueryRow(ctx, `
		SELECT id, doctor_id, patient_id, appointment_date, start_time, end_time, status, notes, created_at, updated_at
		FROM appointments
		WHERE doctor_id = $1
		  AND appointment_date = $2
		  AND start_time < $4
		  AND end_time > $3
		  AND status <> 'cancelled'
		  AND ($5::uuid IS NULL OR id <> $5)
		ORDER BY start_time
		LIMIT 1
	`, doctorID, date, startTime, endTime, excludeID)

	appt, err := scanAppointment(row)
	if err != nil {
		if errors.Is(err, ErrAppointmentNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return appt, nil
}

func (r *PgRepository) CreateAppointment(ctx context.Context, doctorID, patientID uuid.UUID, date time.Time, startTime, endTime string) (*Appointment, error) {
	id := uuid.New()

	row := r.pool.QueryRow(ctx, `
		INSERT INTO appointments (id, doctor_id, patient_id, appointment_date, start_time, end_time, status, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, 'pending', '', now(), now())
		RETURNING id, doctor_id, patient_id, appointment_date, start_time, end_time, status, notes, created_at, updated_at
	`, id, doctorID, patientID, date, startTime, endTime)

	appt, err := scanAppointment(row)
	if err != nil {
		if isExclusionViolation(err) {
			return nil, ErrTimeSlotTaken
		}
		return nil, err
	}
	return appt, nil
}

func (r *PgRepository) UpdateAppointment(ctx context.Context, appt *Appointment) (*Appointment, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE appointments
		SET appointment_date = $2,
		    start_time = $3,
		    end_time = $4,
		    status = $5,
		    notes = $6,
		    updated_at = now()
		WHERE id = $1
		RETURNING id, doctor_id, patient_id, appointment_date, start_time, end_time, status, notes, created_at, updated_at
	`, appt.ID, appt.Date, appt.StartTime, appt.EndTime, appt.Status, appt.Notes)

	updated, err := scanAppointment(row)
	if err != nil {
		if isExclusionViolation(err) {
			return nil, ErrTimeSlotTaken
		}
		return nil, err
	}
	return updated, nil
}

func (r *PgRepository) GetAppointmentByIDAndDoctor(ctx context.Context, id, doctorID uuid.UUID) (*Appointment, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, doctor_id, patient_id, appointment_date, start_time, end_time, status, notes, created_at, updated_at
		FROM appointments
		WHERE id = $1 AND doctor_id = $2
	`, id, doctorID)
	return scanAppointment(row)
}

func (r *PgRepository) GetAppointmentByIDAndPatient(ctx context.Context, id, patientID uuid.UUID) (*Appointment, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, doctor_id, patient_id, appointment_date, start_time, end_time, status, notes, created_at, updated_at
		FROM appointments
		WHERE id = $1 AND patient_id = $2
	`, id, patientID)
	return scanAppointment(row)
}

const detailColumns = `
	a.id, a.doctor_id, a.patient_id, a.appointment_date, a.start_time, a.end_time, a.status, a.notes, a.created_at, a.updated_at,
	d.id, d.user_id, d.name, d.email, d.specialty, d.bio, d.is_approved, d.availability, d.created_at, d.updated_at,
	p.id, p.user_id, p.name, p.email, p.phone, p.created_at, p.updated_at
`

func scanDetail(row pgx.Row) (*AppointmentDetail, error) {
	var det AppointmentDetail
	var d Doctor
	var p Patient

	err := row.Scan(
		&det.ID, &det.DoctorID, &det.PatientID, &det.Date, &det.StartTime, &det.EndTime, &det.Status, &det.Notes, &det.CreatedAt, &det.UpdatedAt,
		&d.ID, &d.UserID, &d.Name, &d.Email, &d.Specialty, &d.Bio, &d.Approved, &d.Availability, &d.CreatedAt, &d.UpdatedAt,
		&p.ID, &p.UserID, &p.Name, &p.Email, &p.Phone, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAppointmentNotFound
		}
		return nil, err
	}

	det.Doctor = &d
	det.Patient = &p
	return &det, nil
}

func (r *PgRepository) GetAppointmentDetail(ctx context.Context, id uuid.UUID) (*AppointmentDetail, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+detailColumns+`
		FROM appointments a
		JOIN doctors d ON d.id = a.doctor_id
		JOIN patients p ON p.id = a.patient_id
		WHERE a.id = $1
	`, id)
	return scanDetail(row)
}

func (r *PgRepository) ListByPatient(ctx context.Context, patientID uuid.UUID, status *Status, limit, offset int) ([]AppointmentDetail, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+detailColumns+`
		FROM appointments a
		JOIN doctors d ON d.id = a.doctor_id
		JOIN patients p ON p.id = a.patient_id
		WHERE a.patient_id = $1
		  AND ($2::text IS NULL OR a.status = $2)
		ORDER BY a.appointment_date DESC, a.start_time DESC
		LIMIT $3 OFFSET $4
	`, patientID, status, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectDetails(rows)
}

func (r *PgRepository) ListByDoctor(ctx context.Context, doctorID uuid.UUID, status *Status, limit, offset int) ([]AppointmentDetail, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+detailColumns+`
		FROM appointments a
		JOIN doctors d ON d.id = a.doctor_id
		JOIN patients p ON p.id = a.patient_id
		WHERE a.doctor_id = $1
		  AND ($2::text IS NULL OR a.status = $2)
		ORDER BY a.appointment_date DESC, a.start_time DESC
		LIMIT $3 OFFSET $4
	`, doctorID, status, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectDetails(rows)
}

func collectDetails(rows pgx.Rows) ([]AppointmentDetail, error) {
	var result []AppointmentDetail
	for rows.Next() {
		det, err := scanDetail(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *det)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}
