package store

import (
	"context"
	"time"

	"github.com/dmiher/complaint-portal/internal/models"
)

// ObserveFunc records the latency of one storage operation.
type ObserveFunc func(driver, operation string, duration time.Duration)

// WithMetrics wraps a Store so every operation reports its latency through
// observe. The wrapped store is otherwise transparent.
func WithMetrics(s Store, driver string, observe ObserveFunc) Store {
	if observe == nil {
		return s
	}
	m := &measuredStore{inner: s, driver: driver, observe: observe}
	m.students = &measuredStudents{m: m, inner: s.Students()}
	m.faculty = &measuredFaculty{m: m, inner: s.Faculty()}
	m.complaints = &measuredComplaints{m: m, inner: s.Complaints()}
	return m
}

type measuredStore struct {
	inner      Store
	driver     string
	observe    ObserveFunc
	students   *measuredStudents
	faculty    *measuredFaculty
	complaints *measuredComplaints
}

func (m *measuredStore) time(operation string) func() {
	start := time.Now()
	return func() { m.observe(m.driver, operation, time.Since(start)) }
}

func (m *measuredStore) Students() StudentStore     { return m.students }
func (m *measuredStore) Faculty() FacultyStore      { return m.faculty }
func (m *measuredStore) Complaints() ComplaintStore { return m.complaints }

func (m *measuredStore) Ping(ctx context.Context) error {
	defer m.time("ping")()
	return m.inner.Ping(ctx)
}

func (m *measuredStore) Close() error { return m.inner.Close() }

type measuredStudents struct {
	m     *measuredStore
	inner StudentStore
}

func (s *measuredStudents) Create(ctx context.Context, student *models.Student) error {
	defer s.m.time("student_create")()
	return s.inner.Create(ctx, student)
}

func (s *measuredStudents) FindByID(ctx context.Context, id string) (*models.Student, error) {
	defer s.m.time("student_find_by_id")()
	return s.inner.FindByID(ctx, id)
}

func (s *measuredStudents) FindByEmail(ctx context.Context, email string) (*models.Student, error) {
	defer s.m.time("student_find_by_email")()
	return s.inner.FindByEmail(ctx, email)
}

func (s *measuredStudents) CountByCourse(ctx context.Context, course string) (int, error) {
	defer s.m.time("student_count_by_course")()
	return s.inner.CountByCourse(ctx, course)
}

func (s *measuredStudents) List(ctx context.Context) ([]models.Student, error) {
	defer s.m.time("student_list")()
	return s.inner.List(ctx)
}

type measuredFaculty struct {
	m     *measuredStore
	inner FacultyStore
}

func (s *measuredFaculty) Create(ctx context.Context, faculty *models.Faculty) error {
	defer s.m.time("faculty_create")()
	return s.inner.Create(ctx, faculty)
}

func (s *measuredFaculty) FindByEmail(ctx context.Context, email string) (*models.Faculty, error) {
	defer s.m.time("faculty_find_by_email")()
	return s.inner.FindByEmail(ctx, email)
}

func (s *measuredFaculty) Count(ctx context.Context) (int, error) {
	defer s.m.time("faculty_count")()
	return s.inner.Count(ctx)
}

type measuredComplaints struct {
	m     *measuredStore
	inner ComplaintStore
}

func (s *measuredComplaints) Create(ctx context.Context, complaint *models.Complaint) error {
	defer s.m.time("complaint_create")()
	return s.inner.Create(ctx, complaint)
}

func (s *measuredComplaints) FindByID(ctx context.Context, id string) (*models.Complaint, error) {
	defer s.m.time("complaint_find_by_id")()
	return s.inner.FindByID(ctx, id)
}

func (s *measuredComplaints) Update(ctx context.Context, complaint *models.Complaint) error {
	defer s.m.time("complaint_update")()
	return s.inner.Update(ctx, complaint)
}

func (s *measuredComplaints) Delete(ctx context.Context, id string) error {
	defer s.m.time("complaint_delete")()
	return s.inner.Delete(ctx, id)
}

func (s *measuredComplaints) List(ctx context.Context) ([]models.Complaint, error) {
	defer s.m.time("complaint_list")()
	return s.inner.List(ctx)
}

func (s *measuredComplaints) ListByStudent(ctx context.Context, studentID string) ([]models.Complaint, error) {
	defer s.m.time("complaint_list_by_student")()
	return s.inner.ListByStudent(ctx, studentID)
}
