package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/mediscribe/mediscribe-api/config"
	"github.com/mediscribe/mediscribe-api/pkg/helpers"
)

type seedPatient struct {
	name      string
	age       int
	condition string
	lastVisit string
	email     string
	phone     string
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := "jane.doe@example.com"
	password := "password123"
	hash, err := helpers.NewHasher(helpers.PasswordCost).Hash(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var id string
	err = db.QueryRow(`
		INSERT INTO users (full_name, email, password_hash, role, is_verified)
		VALUES ($1, $2, $3, 'doctor', false)
		ON CONFLICT (email) DO UPDATE SET full_name = EXCLUDED.full_name
		RETURNING id
	`, "Dr. Jane Doe", email, hash).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded doctor: id=%s email=%s password=%s\n", id, email, password)

	patients := []seedPatient{
		{"Robert Hayes", 45, "Hypertension", "2025-10-15", "robert.hayes@example.com", "+1 (555) 201-0001"},
		{"Maria Santos", 32, "Atrial Fibrillation", "2025-10-14", "maria.santos@example.com", "+1 (555) 201-0002"},
		{"James Whitfield", 58, "Coronary Artery Disease", "2025-10-13", "james.whitfield@example.com", "+1 (555) 201-0003"},
		{"Aisha Khan", 28, "Myocarditis", "2025-10-12", "aisha.khan@example.com", "+1 (555) 201-0004"},
		{"George Miller", 65, "Heart Failure", "2025-10-11", "george.miller@example.com", "+1 (555) 201-0005"},
		{"Linda Park", 52, "Arrhythmia", "2025-10-10", "linda.park@example.com", "+1 (555) 201-0006"},
		{"Tom Okafor", 41, "Valvular Heart Disease", "2025-10-09", "tom.okafor@example.com", "+1 (555) 201-0007"},
		{"Elena Petrova", 55, "Cardiomyopathy", "2025-10-08", "elena.petrova@example.com", "+1 (555) 201-0008"},
	}
	for _, p := range patients {
		if _, err := db.Exec(`
			INSERT INTO patients (name, age, condition, last_visit, email, phone)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT DO NOTHING
		`, p.name, p.age, p.condition, p.lastVisit, p.email, p.phone); err != nil {
			log.Fatalf("failed to seed patient %s: %v", p.name, err)
		}
	}
	fmt.Printf("seeded %d patients\n", len(patients))
}
