package main

import (
	"context"
	"log"
	"time"

	"confportal-backend/internal/config"
	"confportal-backend/internal/database"
	"confportal-backend/internal/models"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Initialize configuration
	cfg := config.New()

	// Initialize database connection
	db, err := database.NewConnection(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	ctx := context.Background()

	// Create users
	users := []struct {
		Email    string
		Password string
		Name     string
		Role     string
	}{
		{"author@example.com", "password123", "Alice Author", "author"},
		{"reviewer@example.com", "password123", "Rita Reviewer", "reviewer"},
		{"admin@example.com", "password123", "David Admin", "admin"},
	}

	for _, u := range users {
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)

		_, err := db.Pool.Exec(ctx, `
			INSERT INTO users (email, password_hash, name, role)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (email) DO NOTHING
		`, u.Email, string(hashedPassword), u.Name, u.Role)
		if err != nil {
			log.Fatalf("Failed to seed user %s: %v", u.Email, err)
		}
	}

	// Create review questionnaire
	questions := []struct {
		Text string
		Type string
	}{
		{"How would you rate the overall quality of the paper?", models.QuestionRating},
		{"Is the methodology sound?", models.QuestionYesNo},
		{"Summarize the paper's main contribution.", models.QuestionText},
	}

	for _, q := range questions {
		var min, max *int
		if q.Type == models.QuestionRating {
			lo, hi := 1, 5
			min, max = &lo, &hi
		}
		_, err := db.Pool.Exec(ctx, `
			INSERT INTO questions (text, type, min, max)
			SELECT $1, $2, $3, $4
			WHERE NOT EXISTS (SELECT 1 FROM questions WHERE text = $1)
		`, q.Text, q.Type, min, max)
		if err != nil {
			log.Fatalf("Failed to seed question: %v", err)
		}
	}

	// Create a sample conference owned by the admin
	var adminID string
	if err := db.Pool.QueryRow(ctx, `SELECT id FROM users WHERE email = 'admin@example.com'`).Scan(&adminID); err != nil {
		log.Fatalf("Failed to look up admin: %v", err)
	}

	now := time.Now()
	_, err = db.Pool.Exec(ctx, `
		INSERT INTO conferences (year, location, university, start_date, end_date, submission_deadline, status, created_by)
		SELECT $1, $2, $3, $4, $5, $6, $7, $8
		WHERE NOT EXISTS (SELECT 1 FROM conferences WHERE location = $2 AND year = $1)
	`, now.Year(), "Lisbon", "Universidade de Lisboa",
		now.AddDate(0, 0, -1), now.AddDate(0, 1, 0), now.AddDate(0, 0, 14),
		models.ConferenceOngoing, adminID)
	if err != nil {
		log.Fatalf("Failed to seed conference: %v", err)
	}

	log.Println("Seed data created successfully")
}
