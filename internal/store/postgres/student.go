package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/dmiher/complaint-portal/internal/models"
)

const studentColumns = "id, name, email, password_hash, dept, course, year, phone, registered_at"

// StudentStore manages student rows.
type StudentStore struct {
	db *sqlx.DB
}

// Create inserts a student.
func (s *StudentStore) Create(ctx context.Context, student *models.Student) error {
	query := `INSERT INTO students (id, name, email, password_hash, dept, course, year, phone, registered_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := s.db.ExecContext(ctx, query,
		student.ID,
		student.Name,
		student.Email,
		student.PasswordHash,
		student.Department,
		student.Course,
		student.Year,
		student.Phone,
		student.RegisteredAt,
	)
	if err != nil {
		return translate(err)
	}
	return nil
}

// FindByID fetches a student by ID.
func (s *StudentStore) FindByID(ctx context.Context, id string) (*models.Student, error) {
	query := fmt.Sprintf("SELECT %s FROM students WHERE id = $1 LIMIT 1", studentColumns)
	var student models.Student
	if err := s.db.GetContext(ctx, &student, query, id); err != nil {
		return nil, translate(err)
	}
	return &student, nil
}

// FindByEmail fetches a student by email.
func (s *StudentStore) FindByEmail(ctx context.Context, email string) (*models.Student, error) {
	query := fmt.Sprintf("SELECT %s FROM students WHERE email = $1 LIMIT 1", studentColumns)
	var student models.Student
	if err := s.db.GetContext(ctx, &student, query, email); err != nil {
		return nil, translate(err)
	}
	return &student, nil
}

// CountByCourse counts registered students in a course.
func (s *StudentStore) CountByCourse(ctx context.Context, course string) (int, error) {
	var count int
	if err := s.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM students WHERE course = $1", course); err != nil {
		return 0, translate(err)
	}
	return count, nil
}

// List returns all students ordered by course then ID.
func (s *StudentStore) List(ctx context.Context) ([]models.Student, error) {
	query := fmt.Sprintf("SELECT %s FROM students ORDER BY course ASC, id ASC", studentColumns)
	students := []models.Student{}
	if err := s.db.SelectContext(ctx, &students, query); err != nil {
		return nil, translate(err)
	}
	return students, nil
}
