package postgres

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmiher/complaint-portal/internal/models"
	"github.com/dmiher/complaint-portal/internal/store"
)

func newMock(t *testing.T) (*Store, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return New(sqlx.NewDb(db, "sqlmock")), mock, func() { db.Close() }
}

func studentRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "dept", "course", "year", "phone", "registered_at"})
}

func complaintRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "student_id", "student_name", "student_email", "department", "year",
		"complaint_type", "subject", "description", "status", "faculty_response",
		"attachment_filename", "attachment_mimetype", "attachment_data", "attachment_size", "attachment_uploaded_at",
		"created_at", "responded_at",
	})
}

func TestStudentStoreCreate(t *testing.T) {
	s, mock, cleanup := newMock(t)
	defer cleanup()

	mock.ExpectExec("INSERT INTO students").
		WithArgs("BCA2024001", "Aarav Sharma", "sc2024sa00001@dmiher.edu.in", "hashed", "BCA", "bca", "1st Year", "9800000001", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := s.Students().Create(context.Background(), &models.Student{
		ID:           "BCA2024001",
		Name:         "Aarav Sharma",
		Email:        "sc2024sa00001@dmiher.edu.in",
		PasswordHash: "hashed",
		Department:   "BCA",
		Course:       "bca",
		Year:         "1st Year",
		Phone:        "9800000001",
		RegisteredAt: time.Now().UTC(),
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentStoreCreateDuplicate(t *testing.T) {
	s, mock, cleanup := newMock(t)
	defer cleanup()

	mock.ExpectExec("INSERT INTO students").
		WillReturnError(&pq.Error{Code: "23505"})

	err := s.Students().Create(context.Background(), &models.Student{ID: "BCA2024001"})
	require.ErrorIs(t, err, store.ErrDuplicate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentStoreFindByEmailNotFound(t *testing.T) {
	s, mock, cleanup := newMock(t)
	defer cleanup()

	mock.ExpectQuery("SELECT (.+) FROM students WHERE email").
		WithArgs("sc2024sa00001@dmiher.edu.in").
		WillReturnRows(studentRows())

	_, err := s.Students().FindByEmail(context.Background(), "sc2024sa00001@dmiher.edu.in")
	require.ErrorIs(t, err, store.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentStoreCountByCourse(t *testing.T) {
	s, mock, cleanup := newMock(t)
	defer cleanup()

	mock.ExpectQuery("SELECT COUNT").
		WithArgs("bca").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	count, err := s.Students().CountByCourse(context.Background(), "bca")
	require.NoError(t, err)
	assert.Equal(t, 7, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentStoreList(t *testing.T) {
	s, mock, cleanup := newMock(t)
	defer cleanup()

	rows := studentRows().
		AddRow("BCA2024001", "Aarav Sharma", "sc2024sa00001@dmiher.edu.in", "hashed", "BCA", "bca", "1st Year", "", time.Now()).
		AddRow("MCA2024001", "Priya Deshmukh", "sc2024sa00007@dmiher.edu.in", "hashed", "MCA", "mca", "1st Year", "", time.Now())
	mock.ExpectQuery("SELECT (.+) FROM students ORDER BY course").
		WillReturnRows(rows)

	students, err := s.Students().List(context.Background())
	require.NoError(t, err)
	assert.Len(t, students, 2)
	assert.Equal(t, "bca", students[0].Course)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFacultyStoreFindByEmail(t *testing.T) {
	s, mock, cleanup := newMock(t)
	defer cleanup()

	rows := sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "department", "created_at"}).
		AddRow("FAC2024001", "Dr. Admin Faculty", "sc2024sa99999@dmiher.edu.in", "hashed", "Administration", time.Now())
	mock.ExpectQuery("SELECT (.+) FROM faculty WHERE email").
		WithArgs("sc2024sa99999@dmiher.edu.in").
		WillReturnRows(rows)

	faculty, err := s.Faculty().FindByEmail(context.Background(), "sc2024sa99999@dmiher.edu.in")
	require.NoError(t, err)
	assert.Equal(t, "FAC2024001", faculty.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestComplaintStoreFindByIDWithAttachment(t *testing.T) {
	s, mock, cleanup := newMock(t)
	defer cleanup()

	now := time.Now().UTC()
	rows := complaintRows().AddRow(
		"CMF5K2A9XYZ", "BCA2023001", "Aarav Sharma", "sc2023sa00001@dmiher.edu.in", "BCA", "2nd Year",
		"Infrastructure", "Broken projector", "Flickering for a week", "Pending", nil,
		"projector.png", "image/png", "ZmFrZQ==", int64(4), now,
		now, nil,
	)
	mock.ExpectQuery("SELECT (.+) FROM complaints WHERE id").
		WithArgs("CMF5K2A9XYZ").
		WillReturnRows(rows)

	complaint, err := s.Complaints().FindByID(context.Background(), "CMF5K2A9XYZ")
	require.NoError(t, err)
	require.NotNil(t, complaint.Attachment)
	assert.Equal(t, "projector.png", complaint.Attachment.Filename)
	assert.Equal(t, int64(4), complaint.Attachment.Size)
	assert.Nil(t, complaint.RespondedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestComplaintStoreFindByIDWithoutAttachment(t *testing.T) {
	s, mock, cleanup := newMock(t)
	defer cleanup()

	now := time.Now().UTC()
	rows := complaintRows().AddRow(
		"CMF5K2A9XYZ", "BCA2023001", "Aarav Sharma", "sc2023sa00001@dmiher.edu.in", "BCA", "2nd Year",
		"Infrastructure", "Broken projector", "Flickering for a week", "Pending", nil,
		nil, nil, nil, nil, nil,
		now, nil,
	)
	mock.ExpectQuery("SELECT (.+) FROM complaints WHERE id").
		WithArgs("CMF5K2A9XYZ").
		WillReturnRows(rows)

	complaint, err := s.Complaints().FindByID(context.Background(), "CMF5K2A9XYZ")
	require.NoError(t, err)
	assert.Nil(t, complaint.Attachment)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestComplaintStoreUpdateNotFound(t *testing.T) {
	s, mock, cleanup := newMock(t)
	defer cleanup()

	mock.ExpectExec("UPDATE complaints SET").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.Complaints().Update(context.Background(), &models.Complaint{ID: "CUNKNOWN"})
	require.ErrorIs(t, err, store.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestComplaintStoreDeleteUnknownID(t *testing.T) {
	s, mock, cleanup := newMock(t)
	defer cleanup()

	mock.ExpectExec("DELETE FROM complaints").
		WithArgs("CUNKNOWN").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.Complaints().Delete(context.Background(), "CUNKNOWN")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestComplaintStoreListByStudent(t *testing.T) {
	s, mock, cleanup := newMock(t)
	defer cleanup()

	now := time.Now().UTC()
	rows := complaintRows().AddRow(
		"CMF5K2A9XYZ", "BCA2023001", "Aarav Sharma", "sc2023sa00001@dmiher.edu.in", "BCA", "2nd Year",
		"Infrastructure", "Broken projector", "Flickering for a week", "Resolved", "fixed",
		nil, nil, nil, nil, nil,
		now, now,
	)
	mock.ExpectQuery("SELECT (.+) FROM complaints WHERE student_id").
		WithArgs("BCA2023001").
		WillReturnRows(rows)

	complaints, err := s.Complaints().ListByStudent(context.Background(), "BCA2023001")
	require.NoError(t, err)
	require.Len(t, complaints, 1)
	require.NotNil(t, complaints[0].FacultyResponse)
	assert.Equal(t, "fixed", *complaints[0].FacultyResponse)
	require.NotNil(t, complaints[0].RespondedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}
