package postgres

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/dmiher/complaint-portal/internal/models"
)

const complaintColumns = `id, student_id, student_name, student_email, department, year,
	complaint_type, subject, description, status, faculty_response,
	attachment_filename, attachment_mimetype, attachment_data, attachment_size, attachment_uploaded_at,
	created_at, responded_at`

// ComplaintStore manages complaint rows.
type ComplaintStore struct {
	db *sqlx.DB
}

type complaintRow struct {
	models.Complaint
	AttachmentFilename   sql.NullString `db:"attachment_filename"`
	AttachmentMimetype   sql.NullString `db:"attachment_mimetype"`
	AttachmentData       sql.NullString `db:"attachment_data"`
	AttachmentSize       sql.NullInt64  `db:"attachment_size"`
	AttachmentUploadedAt sql.NullTime   `db:"attachment_uploaded_at"`
}

func (r *complaintRow) toModel() models.Complaint {
	c := r.Complaint
	if r.AttachmentFilename.Valid {
		c.Attachment = &models.Attachment{
			Filename:   r.AttachmentFilename.String,
			Mimetype:   r.AttachmentMimetype.String,
			Data:       r.AttachmentData.String,
			Size:       r.AttachmentSize.Int64,
			UploadedAt: r.AttachmentUploadedAt.Time,
		}
	}
	return c
}

func attachmentFields(c *models.Complaint) (filename, mimetype, data sql.NullString, size sql.NullInt64, uploadedAt sql.NullTime) {
	if c.Attachment == nil {
		return
	}
	filename = sql.NullString{String: c.Attachment.Filename, Valid: true}
	mimetype = sql.NullString{String: c.Attachment.Mimetype, Valid: true}
	data = sql.NullString{String: c.Attachment.Data, Valid: true}
	size = sql.NullInt64{Int64: c.Attachment.Size, Valid: true}
	uploadedAt = sql.NullTime{Time: c.Attachment.UploadedAt, Valid: true}
	return
}

// Create inserts a complaint.
func (s *ComplaintStore) Create(ctx context.Context, complaint *models.Complaint) error {
	filename, mimetype, data, size, uploadedAt := attachmentFields(complaint)
	query := `INSERT INTO complaints (id, student_id, student_name, student_email, department, year,
		complaint_type, subject, description, status, faculty_response,
		attachment_filename, attachment_mimetype, attachment_data, attachment_size, attachment_uploaded_at,
		created_at, responded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	_, err := s.db.ExecContext(ctx, query,
		complaint.ID,
		complaint.StudentID,
		complaint.StudentName,
		complaint.StudentEmail,
		complaint.Department,
		complaint.Year,
		complaint.ComplaintType,
		complaint.Subject,
		complaint.Description,
		complaint.Status,
		complaint.FacultyResponse,
		filename, mimetype, data, size, uploadedAt,
		complaint.CreatedAt,
		complaint.RespondedAt,
	)
	if err != nil {
		return translate(err)
	}
	return nil
}

// FindByID fetches a complaint by ID.
func (s *ComplaintStore) FindByID(ctx context.Context, id string) (*models.Complaint, error) {
	query := "SELECT " + complaintColumns + " FROM complaints WHERE id = $1 LIMIT 1"
	var row complaintRow
	if err := s.db.GetContext(ctx, &row, query, id); err != nil {
		return nil, translate(err)
	}
	c := row.toModel()
	return &c, nil
}

// Update overwrites the mutable complaint fields.
func (s *ComplaintStore) Update(ctx context.Context, complaint *models.Complaint) error {
	query := `UPDATE complaints SET status = $2, faculty_response = $3, responded_at = $4 WHERE id = $1`
	res, err := s.db.ExecContext(ctx, query,
		complaint.ID,
		complaint.Status,
		complaint.FacultyResponse,
		complaint.RespondedAt,
	)
	if err != nil {
		return translate(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return translate(sql.ErrNoRows)
	}
	return nil
}

// Delete removes a complaint. Unknown ids are ignored.
func (s *ComplaintStore) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM complaints WHERE id = $1", id); err != nil {
		return translate(err)
	}
	return nil
}

// List returns all complaints, newest first.
func (s *ComplaintStore) List(ctx context.Context) ([]models.Complaint, error) {
	query := "SELECT " + complaintColumns + " FROM complaints ORDER BY created_at DESC"
	return s.selectComplaints(ctx, query)
}

// ListByStudent returns one student's complaints, newest first.
func (s *ComplaintStore) ListByStudent(ctx context.Context, studentID string) ([]models.Complaint, error) {
	query := "SELECT " + complaintColumns + " FROM complaints WHERE student_id = $1 ORDER BY created_at DESC"
	return s.selectComplaints(ctx, query, studentID)
}

func (s *ComplaintStore) selectComplaints(ctx context.Context, query string, args ...interface{}) ([]models.Complaint, error) {
	rows := []complaintRow{}
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, translate(err)
	}
	complaints := make([]models.Complaint, 0, len(rows))
	for i := range rows {
		complaints = append(complaints, rows[i].toModel())
	}
	return complaints, nil
}
