package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmiher/complaint-portal/internal/models"
	appErrors "github.com/dmiher/complaint-portal/pkg/errors"
)

func TestRegisterGeneratesCourseScopedID(t *testing.T) {
	repo := newStudentStoreStub()
	seedStudent(t, repo, "BCA2023001", "sc2023sa00001@dmiher.edu.in", "bca123")
	seedStudent(t, repo, "BCA2023002", "sc2023sa00002@dmiher.edu.in", "bca123")

	svc := NewStudentService(repo, nil, nil)
	student, err := svc.Register(context.Background(), RegisterStudentRequest{
		Name:     "Ravi Kulkarni",
		Email:    "sc2024sa00099@dmiher.edu.in",
		Password: "secret1",
		Course:   "bca",
	})
	require.NoError(t, err)

	expected := fmt.Sprintf("BCA%d003", time.Now().Year())
	assert.Equal(t, expected, student.ID)
	assert.Equal(t, "BCA", student.Department)
	assert.Equal(t, "bca", student.Course)
	assert.False(t, student.RegisteredAt.IsZero())
	assert.NotEqual(t, "secret1", student.PasswordHash)
}

func TestRegisterUnknownCourseUsesFallbackPrefix(t *testing.T) {
	svc := NewStudentService(newStudentStoreStub(), nil, nil)
	student, err := svc.Register(context.Background(), RegisterStudentRequest{
		Name:     "Meera Kale",
		Email:    "sc2024sa00100@dmiher.edu.in",
		Password: "secret1",
		Course:   "general",
	})
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("STU%d001", time.Now().Year()), student.ID)
}

func TestRegisterRejectsInvalidEmail(t *testing.T) {
	svc := NewStudentService(newStudentStoreStub(), nil, nil)
	_, err := svc.Register(context.Background(), RegisterStudentRequest{
		Name:     "Ravi Kulkarni",
		Email:    "ravi@gmail.com",
		Password: "secret1",
		Course:   "bca",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidEmailFormat.Code, appErrors.FromError(err).Code)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := newStudentStoreStub()
	svc := NewStudentService(repo, nil, nil)

	req := RegisterStudentRequest{
		Name:     "Ravi Kulkarni",
		Email:    "sc2024sa00099@dmiher.edu.in",
		Password: "secret1",
		Course:   "bca",
	}
	_, err := svc.Register(context.Background(), req)
	require.NoError(t, err)

	req.Name = "Someone Else"
	_, err = svc.Register(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrDuplicateEmail.Code, appErrors.FromError(err).Code)

	students, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, students, 1)
}

func TestRegisterRetriesSequenceCollision(t *testing.T) {
	repo := newStudentStoreStub()
	// Simulate a concurrent registration grabbing the first computed ID.
	repo.failCreates = 1

	svc := NewStudentService(repo, nil, nil)
	student, err := svc.Register(context.Background(), RegisterStudentRequest{
		Name:     "Ravi Kulkarni",
		Email:    "sc2024sa00099@dmiher.edu.in",
		Password: "secret1",
		Course:   "bca",
	})
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("BCA%d002", time.Now().Year()), student.ID)
}

func TestRegisterValidationFailure(t *testing.T) {
	svc := NewStudentService(newStudentStoreStub(), nil, nil)
	_, err := svc.Register(context.Background(), RegisterStudentRequest{
		Name:   "No Password",
		Email:  "sc2024sa00099@dmiher.edu.in",
		Course: "bca",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestListGroupsByCourse(t *testing.T) {
	repo := newStudentStoreStub()
	seedStudent(t, repo, "BCA2023001", "sc2023sa00001@dmiher.edu.in", "bca123")
	seedStudent(t, repo, "BCA2023002", "sc2023sa00002@dmiher.edu.in", "bca123")

	hash, err := HashPassword("mca123")
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), &models.Student{
		ID:           "MCA2023001",
		Name:         "Priya Deshmukh",
		Email:        "sc2023sa00007@dmiher.edu.in",
		PasswordHash: hash,
		Department:   "MCA",
		Course:       "mca",
	}))

	svc := NewStudentService(repo, nil, nil)
	grouped, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, grouped, 2)
	assert.Len(t, grouped["bca"], 2)
	assert.Len(t, grouped["mca"], 1)
}
