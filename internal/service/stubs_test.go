package service

import (
	"context"
	"sort"
	"sync"

	"github.com/dmiher/complaint-portal/internal/models"
	"github.com/dmiher/complaint-portal/internal/store"
)

type studentStoreStub struct {
	mu       sync.Mutex
	students map[string]*models.Student

	failCreates int
}

func newStudentStoreStub() *studentStoreStub {
	return &studentStoreStub{students: make(map[string]*models.Student)}
}

func (s *studentStoreStub) Create(ctx context.Context, student *models.Student) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failCreates > 0 {
		s.failCreates--
		return store.ErrDuplicate
	}
	if _, ok := s.students[student.ID]; ok {
		return store.ErrDuplicate
	}
	for _, existing := range s.students {
		if existing.Email == student.Email {
			return store.ErrDuplicate
		}
	}
	copy := *student
	s.students[student.ID] = &copy
	return nil
}

func (s *studentStoreStub) FindByID(ctx context.Context, id string) (*models.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if student, ok := s.students[id]; ok {
		copy := *student
		return &copy, nil
	}
	return nil, store.ErrNotFound
}

func (s *studentStoreStub) FindByEmail(ctx context.Context, email string) (*models.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, student := range s.students {
		if student.Email == email {
			copy := *student
			return &copy, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *studentStoreStub) CountByCourse(ctx context.Context, course string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, student := range s.students {
		if student.Course == course {
			count++
		}
	}
	return count, nil
}

func (s *studentStoreStub) List(ctx context.Context) ([]models.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	students := make([]models.Student, 0, len(s.students))
	for _, student := range s.students {
		students = append(students, *student)
	}
	sort.Slice(students, func(i, j int) bool { return students[i].ID < students[j].ID })
	return students, nil
}

type facultyStoreStub struct {
	accounts map[string]*models.Faculty
}

func newFacultyStoreStub() *facultyStoreStub {
	return &facultyStoreStub{accounts: make(map[string]*models.Faculty)}
}

func (s *facultyStoreStub) Create(ctx context.Context, faculty *models.Faculty) error {
	if _, ok := s.accounts[faculty.Email]; ok {
		return store.ErrDuplicate
	}
	copy := *faculty
	s.accounts[faculty.Email] = &copy
	return nil
}

func (s *facultyStoreStub) FindByEmail(ctx context.Context, email string) (*models.Faculty, error) {
	if faculty, ok := s.accounts[email]; ok {
		copy := *faculty
		return &copy, nil
	}
	return nil, store.ErrNotFound
}

func (s *facultyStoreStub) Count(ctx context.Context) (int, error) {
	return len(s.accounts), nil
}

type complaintStoreStub struct {
	mu         sync.Mutex
	complaints map[string]*models.Complaint
}

func newComplaintStoreStub() *complaintStoreStub {
	return &complaintStoreStub{complaints: make(map[string]*models.Complaint)}
}

func (s *complaintStoreStub) Create(ctx context.Context, complaint *models.Complaint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.complaints[complaint.ID]; ok {
		return store.ErrDuplicate
	}
	copy := *complaint
	s.complaints[complaint.ID] = &copy
	return nil
}

func (s *complaintStoreStub) FindByID(ctx context.Context, id string) (*models.Complaint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if complaint, ok := s.complaints[id]; ok {
		copy := *complaint
		return &copy, nil
	}
	return nil, store.ErrNotFound
}

func (s *complaintStoreStub) Update(ctx context.Context, complaint *models.Complaint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.complaints[complaint.ID]; !ok {
		return store.ErrNotFound
	}
	copy := *complaint
	s.complaints[complaint.ID] = &copy
	return nil
}

func (s *complaintStoreStub) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.complaints, id)
	return nil
}

func (s *complaintStoreStub) List(ctx context.Context) ([]models.Complaint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	complaints := make([]models.Complaint, 0, len(s.complaints))
	for _, complaint := range s.complaints {
		complaints = append(complaints, *complaint)
	}
	sort.Slice(complaints, func(i, j int) bool {
		return complaints[i].CreatedAt.After(complaints[j].CreatedAt)
	})
	return complaints, nil
}

func (s *complaintStoreStub) ListByStudent(ctx context.Context, studentID string) ([]models.Complaint, error) {
	all, _ := s.List(ctx)
	filtered := make([]models.Complaint, 0, len(all))
	for _, complaint := range all {
		if complaint.StudentID == studentID {
			filtered = append(filtered, complaint)
		}
	}
	return filtered, nil
}

type cacheStub struct {
	cached      []models.Complaint
	hasValue    bool
	gets        int
	sets        int
	invalidates int
}

func (c *cacheStub) Get(ctx context.Context) ([]models.Complaint, bool) {
	c.gets++
	return c.cached, c.hasValue
}

func (c *cacheStub) Set(ctx context.Context, complaints []models.Complaint) {
	c.sets++
	c.cached = complaints
	c.hasValue = true
}

func (c *cacheStub) Invalidate(ctx context.Context) {
	c.invalidates++
	c.cached = nil
	c.hasValue = false
}
