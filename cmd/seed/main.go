package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinicdesk/appointment-service/internal/appointment"
	"github.com/clinicdesk/appointment-service/internal/db"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("seed starting")

	dsn := os.Getenv("POSTGRES_DSN")
	if dsn == "" {
		log.Fatal("POSTGRES_DSN is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := db.ConnectPostgres(ctx, dsn)
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	gofakeit.Seed(time.Now().UnixNano())

	if err := seedDoctors(context.Background(), pool, 50); err != nil {
		log.Fatalf("seed doctors: %v", err)
	}
	if err := seedPatients(context.Background(), pool, 500); err != nil {
		log.Fatalf("seed patients: %v", err)
	}

	log.Println("seed complete")
}

var specialties = []string{
	"Dermatology",
	"Cardiology",
	"General Practice",
	"Orthopedics",
	"Endocrinology",
	"Neurology",
	"Pediatrics",
	"Psychiatry",
	"Ophthalmology",
	"ENT",
}

var workdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}

func randomAvailability() []appointment.AvailabilityEntry {
	// Roughly one doctor in five has not published a schedule yet.
	if gofakeit.Number(1, 5) == 1 {
		return []appointment.AvailabilityEntry{}
	}

	var entries []appointment.AvailabilityEntry
	for _, day := range workdays {
		if gofakeit.Bool() {
			continue
		}
		startHour := gofakeit.Number(8, 10)
		entries = append(entries, appointment.AvailabilityEntry{
			Day: day,
			Slots: []appointment.AvailabilitySlot{
				{
					StartTime: fmt.Sprintf("%02d:00", startHour),
					EndTime:   fmt.Sprintf("%02d:00", startHour+4),
				},
				{
					StartTime: "14:00",
					EndTime:   fmt.Sprintf("%02d:00", gofakeit.Number(17, 19)),
				},
			},
		})
	}
	return entries
}

func seedDoctors(ctx context.Context, pool *pgxpool.Pool, count int) error {
	log.Printf("seeding %d doctors", count)

	for i := 0; i < count; i++ {
		availability, err := json.Marshal(randomAvailability())
		if err != nil {
			return err
		}

		specialty := specialties[gofakeit.Number(0, len(specialties)-1)]
		approved := gofakeit.Number(1, 10) > 1 // most doctors are approved

		_, err = pool.Exec(ctx, `
			INSERT INTO doctors (id, user_id, name, email, specialty, bio, is_approved, availability, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now(), now())
		`,
			uuid.New(),
			uuid.New(),
			"Dr. "+gofakeit.Name(),
			gofakeit.Email(),
			specialty,
			gofakeit.Sentence(12),
			approved,
			availability,
		)
		if err != nil {
			return err
		}
	}

	return nil
}

func seedPatients(ctx context.Context, pool *pgxpool.Pool, count int) error {
	log.Printf("seeding %d patients", count)

	for i := 0; i < count; i++ {
		phone := gofakeit.Phone()

		_, err := pool.Exec(ctx, `
			INSERT INTO patients (id, user_id, name, email, phone, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, now(), now())
		`,
			uuid.New(),
			uuid.New(),
			gofakeit.Name(),
			gofakeit.Email(),
			phone,
		)
		if err != nil {
			return err
		}
	}

	return nil
}
