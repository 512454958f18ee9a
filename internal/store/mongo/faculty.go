package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dmiher/complaint-portal/internal/models"
)

// FacultyStore manages faculty documents.
type FacultyStore struct {
	col *mongo.Collection
}

// Create inserts a faculty document.
func (s *FacultyStore) Create(ctx context.Context, faculty *models.Faculty) error {
	_, err := s.col.InsertOne(ctx, faculty)
	return translate(err)
}

// FindByEmail fetches a faculty account by email.
func (s *FacultyStore) FindByEmail(ctx context.Context, email string) (*models.Faculty, error) {
	var faculty models.Faculty
	if err := s.col.FindOne(ctx, bson.M{"email": email}).Decode(&faculty); err != nil {
		return nil, translate(err)
	}
	return &faculty, nil
}

// Count returns the number of faculty accounts.
func (s *FacultyStore) Count(ctx context.Context) (int, error) {
	count, err := s.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, translate(err)
	}
	return int(count), nil
}
