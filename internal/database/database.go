package database

import (
	"context"
	"fmt"
	"log"

	"confportal-backend/internal/config"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Database struct {
	Pool *pgxpool.Pool
}

func NewConnection(cfg *config.Config) (*Database, error) {
	ctx := context.Background()

	pool, err := pgxpool.New(ctx, cfg.GetDatabaseURL())
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	// Test the connection
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}

	log.Println("Successfully connected to database")
	return &Database{Pool: pool}, nil
}

func (db *Database) Close() {
	if db.Pool != nil {
		db.Pool.Close()
	}
}

func (db *Database) GetDB() *pgxpool.Pool {
	return db.Pool
}

func RunMigrations(db *Database) error {
	ctx := context.Background()

	createUsersTable := `
	CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		email VARCHAR(255) UNIQUE NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		name VARCHAR(255) NOT NULL,
		role VARCHAR(50) NOT NULL CHECK (role IN ('author', 'reviewer', 'admin')),
		affiliation VARCHAR(255) DEFAULT '',
		bio TEXT DEFAULT '',
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);`

	createCategoriesTable := `
	CREATE TABLE IF NOT EXISTS categories (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		name VARCHAR(255) UNIQUE NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);`

	createConferencesTable := `
	CREATE TABLE IF NOT EXISTS conferences (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		year INTEGER NOT NULL,
		location VARCHAR(255) NOT NULL,
		university VARCHAR(255) NOT NULL,
		start_date TIMESTAMP WITH TIME ZONE NOT NULL,
		end_date TIMESTAMP WITH TIME ZONE NOT NULL,
		submission_deadline TIMESTAMP WITH TIME ZONE NOT NULL,
		review_deadline TIMESTAMP WITH TIME ZONE,
		status VARCHAR(50) NOT NULL DEFAULT 'upcoming' CHECK (status IN ('upcoming', 'ongoing', 'completed', 'canceled')),
		created_by UUID REFERENCES users(id) ON DELETE SET NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		CHECK (start_date <= end_date)
	);`

	createConferenceCategoriesTable := `
	CREATE TABLE IF NOT EXISTS conference_categories (
		conference_id UUID REFERENCES conferences(id) ON DELETE CASCADE,
		category_id UUID REFERENCES categories(id) ON DELETE CASCADE,
		PRIMARY KEY (conference_id, category_id)
	);`

	createQuestionsTable := `
	CREATE TABLE IF NOT EXISTS questions (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		text TEXT NOT NULL,
		type VARCHAR(50) NOT NULL CHECK (type IN ('rating', 'yes_no', 'text')),
		min INTEGER,
		max INTEGER,
		category VARCHAR(255) DEFAULT '',
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);`

	createPapersTable := `
	CREATE TABLE IF NOT EXISTS papers (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		title VARCHAR(500) NOT NULL,
		abstract TEXT DEFAULT '',
		keywords TEXT[] NOT NULL DEFAULT '{}',
		authors TEXT[] NOT NULL DEFAULT '{}',
		category_id UUID REFERENCES categories(id) ON DELETE SET NULL,
		conference_id UUID NOT NULL REFERENCES conferences(id) ON DELETE CASCADE,
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		reviewer_id UUID REFERENCES users(id) ON DELETE SET NULL,
		file_url TEXT NOT NULL,
		status VARCHAR(50) NOT NULL DEFAULT 'draft' CHECK (status IN ('draft', 'submitted', 'under_review', 'accepted', 'accepted_with_changes', 'rejected')),
		final_version BOOLEAN NOT NULL DEFAULT FALSE,
		resubmission_allowed BOOLEAN NOT NULL DEFAULT FALSE,
		submitted_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);`

	// The unique pair index is the sole safeguard against two concurrent
	// submissions of a review for the same paper by the same reviewer.
	createReviewsTable := `
	CREATE TABLE IF NOT EXISTS reviews (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		paper_id UUID NOT NULL REFERENCES papers(id) ON DELETE CASCADE,
		reviewer_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		responses JSONB NOT NULL DEFAULT '[]',
		comments TEXT DEFAULT '',
		recommendation VARCHAR(50) NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		UNIQUE(paper_id, reviewer_id)
	);`

	createNotificationsTable := `
	CREATE TABLE IF NOT EXISTS notifications (
		id SERIAL PRIMARY KEY,
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		message TEXT NOT NULL,
		paper_id UUID REFERENCES papers(id) ON DELETE CASCADE,
		is_read BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);`

	// The status+date indexes keep the lifecycle sweeps cheap enough to run
	// inline before conference reads.
	createIndexes := `
	CREATE INDEX IF NOT EXISTS idx_users_email ON users(email);
	CREATE INDEX IF NOT EXISTS idx_conferences_status ON conferences(status);
	CREATE INDEX IF NOT EXISTS idx_conferences_dates ON conferences(start_date, end_date);
	CREATE INDEX IF NOT EXISTS idx_conferences_deadline ON conferences(status, submission_deadline);
	CREATE INDEX IF NOT EXISTS idx_papers_conference_id ON papers(conference_id);
	CREATE INDEX IF NOT EXISTS idx_papers_user_id ON papers(user_id);
	CREATE INDEX IF NOT EXISTS idx_papers_reviewer_id ON papers(reviewer_id);
	CREATE INDEX IF NOT EXISTS idx_papers_status ON papers(status);
	CREATE INDEX IF NOT EXISTS idx_reviews_paper_id ON reviews(paper_id);
	CREATE INDEX IF NOT EXISTS idx_reviews_reviewer_id ON reviews(reviewer_id);
	CREATE INDEX IF NOT EXISTS idx_notifications_user_id ON notifications(user_id);`

	migrations := []string{
		createUsersTable,
		createCategoriesTable,
		createConferencesTable,
		createConferenceCategoriesTable,
		createQuestionsTable,
		createPapersTable,
		createReviewsTable,
		createNotificationsTable,
		createIndexes,
	}

	for _, migration := range migrations {
		if _, err := db.Pool.Exec(ctx, migration); err != nil {
			return fmt.Errorf("failed to run migration: %w", err)
		}
	}

	log.Println("Database migrations completed successfully")
	return nil
}

func (db *Database) BeginTx(ctx context.Context) (pgx.Tx, error) {
	return db.Pool.Begin(ctx)
}

func (db *Database) QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row {
	return db.Pool.QueryRow(ctx, sql, args...)
}

func (db *Database) Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error) {
	return db.Pool.Query(ctx, sql, args...)
}

func (db *Database) Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error) {
	return db.Pool.Exec(ctx, sql, args...)
}
