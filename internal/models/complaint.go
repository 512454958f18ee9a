package models

import "time"

// Canonical complaint statuses. The status field is an open string: faculty
// may assign other labels, and the ledger accepts any non-empty value.
const (
	StatusPending  = "Pending"
	StatusResolved = "Resolved"
)

// Attachment is an optional file bundled with a complaint, transported as
// base64. The portal never touches a filesystem path for attachments.
type Attachment struct {
	Filename   string    `db:"filename" json:"filename" bson:"filename"`
	Mimetype   string    `db:"mimetype" json:"mimetype" bson:"mimetype"`
	Data       string    `db:"data" json:"data" bson:"data"`
	Size       int64     `db:"size" json:"size" bson:"size"`
	UploadedAt time.Time `db:"uploaded_at" json:"uploaded_at" bson:"uploaded_at"`
}

// Complaint is a student-submitted issue tracked to faculty resolution.
type Complaint struct {
	ID              string      `db:"id" json:"id" bson:"id"`
	StudentID       string      `db:"student_id" json:"student_id" bson:"student_id"`
	StudentName     string      `db:"student_name" json:"student_name" bson:"student_name"`
	StudentEmail    string      `db:"student_email" json:"student_email" bson:"student_email"`
	Department      string      `db:"department" json:"department" bson:"department"`
	Year            string      `db:"year" json:"year" bson:"year"`
	ComplaintType   string      `db:"complaint_type" json:"complaint_type" bson:"complaint_type"`
	Subject         string      `db:"subject" json:"subject" bson:"subject"`
	Description     string      `db:"description" json:"description" bson:"description"`
	Status          string      `db:"status" json:"status" bson:"status"`
	FacultyResponse *string     `db:"faculty_response" json:"faculty_response" bson:"faculty_response"`
	Attachment      *Attachment `db:"-" json:"attachment,omitempty" bson:"attachment,omitempty"`
	CreatedAt       time.Time   `db:"created_at" json:"created_at" bson:"created_at"`
	RespondedAt     *time.Time  `db:"responded_at" json:"responded_at" bson:"responded_at"`
}

// ComplaintUpdate carries a partial faculty update. Nil fields are left
// unchanged.
type ComplaintUpdate struct {
	Status          *string
	FacultyResponse *string
}
