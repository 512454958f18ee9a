package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/dmiher/complaint-portal/internal/models"
	"github.com/dmiher/complaint-portal/internal/store"
	appErrors "github.com/dmiher/complaint-portal/pkg/errors"
)

// maxIDRetries bounds the retry loop for course-sequence collisions under
// concurrent registrations.
const maxIDRetries = 3

type studentStore interface {
	Create(ctx context.Context, student *models.Student) error
	FindByEmail(ctx context.Context, email string) (*models.Student, error)
	CountByCourse(ctx context.Context, course string) (int, error)
	List(ctx context.Context) ([]models.Student, error)
}

// RegisterStudentRequest holds the registration payload.
type RegisterStudentRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
	Course   string `json:"course" validate:"required"`
	Year     string `json:"year"`
	Phone    string `json:"phone"`
}

// StudentService implements the student registry.
type StudentService struct {
	repo      studentStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStudentService constructs the student service.
func NewStudentService(repo studentStore, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{repo: repo, validator: validate, logger: logger}
}

// Register creates a student account. The generated ID is
// {coursePrefix}{year}{sequence}, where the sequence is the current count of
// students in the course plus one, zero-padded to three digits. ID collisions
// from concurrent registrations are retried with the next sequence number.
func (s *StudentService) Register(ctx context.Context, req RegisterStudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid registration payload")
	}

	if !ValidateInstitutionalEmail(req.Email) {
		return nil, appErrors.Clone(appErrors.ErrInvalidEmailFormat, "")
	}

	if _, err := s.repo.FindByEmail(ctx, req.Email); err == nil {
		return nil, appErrors.Clone(appErrors.ErrDuplicateEmail, "")
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, wrapStoreErr(err, "failed to check existing email")
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}

	course := strings.ToLower(req.Course)
	count, err := s.repo.CountByCourse(ctx, course)
	if err != nil {
		return nil, wrapStoreErr(err, "failed to count course students")
	}

	student := &models.Student{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Department:   strings.ToUpper(course),
		Course:       course,
		Year:         req.Year,
		Phone:        req.Phone,
		RegisteredAt: time.Now().UTC(),
	}

	sequence := count + 1
	for attempt := 0; attempt < maxIDRetries; attempt++ {
		student.ID = generateStudentID(course, sequence)
		err = s.repo.Create(ctx, student)
		if err == nil {
			s.logger.Info("student registered",
				zap.String("student_id", student.ID),
				zap.String("course", course),
			)
			return student, nil
		}
		if !errors.Is(err, store.ErrDuplicate) {
			return nil, wrapStoreErr(err, "failed to persist student")
		}
		// Either the email raced in or the course sequence collided.
		if _, lookupErr := s.repo.FindByEmail(ctx, req.Email); lookupErr == nil {
			return nil, appErrors.Clone(appErrors.ErrDuplicateEmail, "")
		}
		sequence++
	}
	return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to allocate student id")
}

// List returns all students grouped by course, ordered by ID inside each
// group.
func (s *StudentService) List(ctx context.Context) (map[string][]models.Student, error) {
	students, err := s.repo.List(ctx)
	if err != nil {
		return nil, wrapStoreErr(err, "failed to list students")
	}
	grouped := make(map[string][]models.Student)
	for _, student := range students {
		grouped[student.Course] = append(grouped[student.Course], student)
	}
	return grouped, nil
}

func generateStudentID(course string, sequence int) string {
	return fmt.Sprintf("%s%d%03d", models.PrefixForCourse(course), time.Now().Year(), sequence)
}
