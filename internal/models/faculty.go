package models

import "time"

// Faculty represents a staff reviewer account.
//
// Faculty accounts are seeded at startup; there is no public registration path.
type Faculty struct {
	ID           string    `db:"id" json:"id" bson:"id"`
	Name         string    `db:"name" json:"name" bson:"name"`
	Email        string    `db:"email" json:"email" bson:"email"`
	PasswordHash string    `db:"password_hash" json:"-" bson:"password_hash"`
	Department   string    `db:"department" json:"department" bson:"department"`
	CreatedAt    time.Time `db:"created_at" json:"created_at" bson:"created_at"`
}
