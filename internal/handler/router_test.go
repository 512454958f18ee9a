package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/dmiher/complaint-portal/internal/middleware"
	"github.com/dmiher/complaint-portal/internal/models"
	"github.com/dmiher/complaint-portal/internal/service"
	"github.com/dmiher/complaint-portal/internal/store"
)

type memStudents struct {
	mu       sync.Mutex
	students map[string]*models.Student
}

func newMemStudents() *memStudents {
	return &memStudents{students: make(map[string]*models.Student)}
}

func (s *memStudents) Create(ctx context.Context, student *models.Student) error {
	s.mu.Lock()
	defer s.mu.Unlock()
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

func (s *memStudents) FindByEmail(ctx context.Context, email string) (*models.Student, error) {
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

func (s *memStudents) CountByCourse(ctx context.Context, course string) (int, error) {
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

func (s *memStudents) List(ctx context.Context) ([]models.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	students := make([]models.Student, 0, len(s.students))
	for _, student := range s.students {
		students = append(students, *student)
	}
	sort.Slice(students, func(i, j int) bool { return students[i].ID < students[j].ID })
	return students, nil
}

type memFaculty struct {
	accounts map[string]*models.Faculty
}

func (s *memFaculty) FindByEmail(ctx context.Context, email string) (*models.Faculty, error) {
	if faculty, ok := s.accounts[email]; ok {
		copy := *faculty
		return &copy, nil
	}
	return nil, store.ErrNotFound
}

type memComplaints struct {
	mu         sync.Mutex
	complaints map[string]*models.Complaint
}

func newMemComplaints() *memComplaints {
	return &memComplaints{complaints: make(map[string]*models.Complaint)}
}

func (s *memComplaints) Create(ctx context.Context, complaint *models.Complaint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.complaints[complaint.ID]; ok {
		return store.ErrDuplicate
	}
	copy := *complaint
	s.complaints[complaint.ID] = &copy
	return nil
}

func (s *memComplaints) FindByID(ctx context.Context, id string) (*models.Complaint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if complaint, ok := s.complaints[id]; ok {
		copy := *complaint
		return &copy, nil
	}
	return nil, store.ErrNotFound
}

func (s *memComplaints) Update(ctx context.Context, complaint *models.Complaint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.complaints[complaint.ID]; !ok {
		return store.ErrNotFound
	}
	copy := *complaint
	s.complaints[complaint.ID] = &copy
	return nil
}

func (s *memComplaints) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.complaints, id)
	return nil
}

func (s *memComplaints) List(ctx context.Context) ([]models.Complaint, error) {
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

func (s *memComplaints) ListByStudent(ctx context.Context, studentID string) ([]models.Complaint, error) {
	all, _ := s.List(ctx)
	filtered := make([]models.Complaint, 0, len(all))
	for _, complaint := range all {
		if complaint.StudentID == studentID {
			filtered = append(filtered, complaint)
		}
	}
	return filtered, nil
}

type portalFixture struct {
	router *gin.Engine
	auth   *service.AuthService
}

func newPortalFixture(t *testing.T) *portalFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hash, err := service.HashPassword("admin123")
	require.NoError(t, err)
	faculty := &memFaculty{accounts: map[string]*models.Faculty{
		"sc2024sa99999@dmiher.edu.in": {
			ID:           "FAC2024001",
			Name:         "Dr. Admin Faculty",
			Email:        "sc2024sa99999@dmiher.edu.in",
			PasswordHash: hash,
			Department:   "Administration",
		},
	}}
	students := newMemStudents()
	complaints := newMemComplaints()

	authService := service.NewAuthService(faculty, students, nil, nil, service.AuthConfig{
		Secret:     "test-secret",
		Expiration: time.Hour,
		Issuer:     "complaint-portal",
	})
	studentService := service.NewStudentService(students, nil, nil)
	complaintService := service.NewComplaintService(complaints, nil, nil, nil, nil, nil)

	authHandler := NewAuthHandler(authService)
	studentHandler := NewStudentHandler(studentService)
	complaintHandler := NewComplaintHandler(complaintService)

	router := gin.New()
	api := router.Group("/api")
	api.POST("/login", authHandler.Login)
	api.POST("/student/register", studentHandler.Register)
	api.GET("/complaints", complaintHandler.List)
	api.POST("/complaints", complaintHandler.Submit)

	facultyOnly := api.Group("")
	facultyOnly.Use(middleware.JWT(authService), middleware.RequireFaculty())
	facultyOnly.GET("/students", studentHandler.List)
	facultyOnly.PUT("/complaints/:id", complaintHandler.Respond)
	facultyOnly.DELETE("/complaints/:id", complaintHandler.Delete)
	facultyOnly.GET("/complaints/export", complaintHandler.Export)

	return &portalFixture{router: router, auth: authService}
}

func (f *portalFixture) perform(req *http.Request) *httptest.ResponseRecorder {
	resp := httptest.NewRecorder()
	f.router.ServeHTTP(resp, req)
	return resp
}

func (f *portalFixture) facultyToken(t *testing.T) string {
	t.Helper()
	res, err := f.auth.Login(context.Background(), models.LoginRequest{
		Email:    "sc2024sa99999@dmiher.edu.in",
		Password: "admin123",
	})
	require.NoError(t, err)
	return res.AccessToken
}
