package models

import "time"

// Student represents a learner registered on the portal.
//
// ID follows the course-scoped sequence format, e.g. BCA2023001.
type Student struct {
	ID           string    `db:"id" json:"id" bson:"id"`
	Name         string    `db:"name" json:"name" bson:"name"`
	Email        string    `db:"email" json:"email" bson:"email"`
	PasswordHash string    `db:"password_hash" json:"-" bson:"password_hash"`
	Department   string    `db:"dept" json:"dept" bson:"dept"`
	Course       string    `db:"course" json:"course" bson:"course"`
	Year         string    `db:"year" json:"year" bson:"year"`
	Phone        string    `db:"phone" json:"phone,omitempty" bson:"phone,omitempty"`
	RegisteredAt time.Time `db:"registered_at" json:"registered_at" bson:"registered_at"`
}

// CoursePrefixes maps course codes to student ID prefixes.
var CoursePrefixes = map[string]string{
	"bca":      "BCA",
	"bba":      "BBA",
	"mca":      "MCA",
	"bsc_aids": "BSCAIDS",
}

// DefaultCoursePrefix is used for courses without a dedicated prefix.
const DefaultCoursePrefix = "STU"

// PrefixForCourse resolves the ID prefix for a course code.
func PrefixForCourse(course string) string {
	if prefix, ok := CoursePrefixes[course]; ok {
		return prefix
	}
	return DefaultCoursePrefix
}
