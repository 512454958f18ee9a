// Package store defines the persistence boundary of the portal. The domain
// services depend only on these interfaces; the postgres, mongo and jsonfile
// subpackages provide interchangeable adapters selected at startup.
package store

import (
	"context"
	"errors"

	"github.com/dmiher/complaint-portal/internal/models"
)

// Sentinel errors adapters must translate driver failures into.
var (
	ErrNotFound  = errors.New("store: not found")
	ErrDuplicate = errors.New("store: duplicate key")
)

// StudentStore persists student records.
type StudentStore interface {
	Create(ctx context.Context, student *models.Student) error
	FindByID(ctx context.Context, id string) (*models.Student, error)
	FindByEmail(ctx context.Context, email string) (*models.Student, error)
	CountByCourse(ctx context.Context, course string) (int, error)
	List(ctx context.Context) ([]models.Student, error)
}

// FacultyStore persists faculty accounts.
type FacultyStore interface {
	Create(ctx context.Context, faculty *models.Faculty) error
	FindByEmail(ctx context.Context, email string) (*models.Faculty, error)
	Count(ctx context.Context) (int, error)
}

// ComplaintStore persists complaints. List orders newest created_at first.
// Delete is idempotent: removing an unknown id is not an error.
type ComplaintStore interface {
	Create(ctx context.Context, complaint *models.Complaint) error
	FindByID(ctx context.Context, id string) (*models.Complaint, error)
	Update(ctx context.Context, complaint *models.Complaint) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]models.Complaint, error)
	ListByStudent(ctx context.Context, studentID string) ([]models.Complaint, error)
}

// Store bundles the entity stores with backend lifecycle control.
type Store interface {
	Students() StudentStore
	Faculty() FacultyStore
	Complaints() ComplaintStore
	Ping(ctx context.Context) error
	Close() error
}
