package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/dmiher/complaint-portal/internal/models"
)

const facultyColumns = "id, name, email, password_hash, department, created_at"

// FacultyStore manages faculty rows.
type FacultyStore struct {
	db *sqlx.DB
}

// Create inserts a faculty account.
func (s *FacultyStore) Create(ctx context.Context, faculty *models.Faculty) error {
	query := `INSERT INTO faculty (id, name, email, password_hash, department, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := s.db.ExecContext(ctx, query,
		faculty.ID,
		faculty.Name,
		faculty.Email,
		faculty.PasswordHash,
		faculty.Department,
		faculty.CreatedAt,
	)
	if err != nil {
		return translate(err)
	}
	return nil
}

// FindByEmail fetches a faculty account by email.
func (s *FacultyStore) FindByEmail(ctx context.Context, email string) (*models.Faculty, error) {
	query := "SELECT " + facultyColumns + " FROM faculty WHERE email = $1 LIMIT 1"
	var faculty models.Faculty
	if err := s.db.GetContext(ctx, &faculty, query, email); err != nil {
		return nil, translate(err)
	}
	return &faculty, nil
}

// Count returns the number of faculty accounts.
func (s *FacultyStore) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM faculty"); err != nil {
		return 0, translate(err)
	}
	return count, nil
}
