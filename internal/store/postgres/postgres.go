// Package postgres implements the store interfaces on PostgreSQL via sqlx.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/dmiher/complaint-portal/internal/store"
	"github.com/dmiher/complaint-portal/pkg/config"
)

const uniqueViolation = "23505"

// Store is the PostgreSQL-backed persistence bundle.
type Store struct {
	db         *sqlx.DB
	students   *StudentStore
	faculty    *FacultyStore
	complaints *ComplaintStore
}

// Open connects to PostgreSQL, bootstraps the schema and returns the store.
func Open(cfg config.DatabaseConfig) (*Store, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host,
		cfg.Port,
		cfg.User,
		cfg.Password,
		cfg.Name,
		cfg.SSLMode,
	)

	db, err := sqlx.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	db.SetConnMaxLifetime(1 * time.Hour)
	db.SetConnMaxIdleTime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	s := New(db)
	if err := s.migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// New wraps an existing connection without running migrations. Used by tests.
func New(db *sqlx.DB) *Store {
	return &Store{
		db:         db,
		students:   &StudentStore{db: db},
		faculty:    &FacultyStore{db: db},
		complaints: &ComplaintStore{db: db},
	}
}

func (s *Store) Students() store.StudentStore     { return s.students }
func (s *Store) Faculty() store.FacultyStore      { return s.faculty }
func (s *Store) Complaints() store.ComplaintStore { return s.complaints }

// Ping reports backend reachability.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close releases the connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS students (
			id VARCHAR(50) PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			email VARCHAR(100) UNIQUE NOT NULL,
			password_hash VARCHAR(255) NOT NULL,
			dept VARCHAR(50) NOT NULL,
			course VARCHAR(50) NOT NULL,
			year VARCHAR(20) NOT NULL DEFAULT '',
			phone VARCHAR(20) NOT NULL DEFAULT '',
			registered_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS faculty (
			id VARCHAR(50) PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			email VARCHAR(100) UNIQUE NOT NULL,
			password_hash VARCHAR(255) NOT NULL,
			department VARCHAR(100) NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS complaints (
			id VARCHAR(50) PRIMARY KEY,
			student_id VARCHAR(50) NOT NULL REFERENCES students(id) ON DELETE CASCADE,
			student_name VARCHAR(100) NOT NULL,
			student_email VARCHAR(100) NOT NULL,
			department VARCHAR(50) NOT NULL,
			year VARCHAR(20) NOT NULL DEFAULT '',
			complaint_type VARCHAR(50) NOT NULL,
			subject VARCHAR(200) NOT NULL,
			description TEXT NOT NULL,
			status VARCHAR(50) NOT NULL DEFAULT 'Pending',
			faculty_response TEXT,
			attachment_filename VARCHAR(255),
			attachment_mimetype VARCHAR(100),
			attachment_data TEXT,
			attachment_size BIGINT,
			attachment_uploaded_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			responded_at TIMESTAMPTZ
		)`,
		`CREATE INDEX IF NOT EXISTS idx_students_course ON students (course)`,
		`CREATE INDEX IF NOT EXISTS idx_complaints_student_id ON complaints (student_id)`,
		`CREATE INDEX IF NOT EXISTS idx_complaints_status ON complaints (status)`,
		`CREATE INDEX IF NOT EXISTS idx_complaints_created_at ON complaints (created_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return store.ErrDuplicate
	}
	return err
}
