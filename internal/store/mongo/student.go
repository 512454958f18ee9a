package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dmiher/complaint-portal/internal/models"
)

// StudentStore manages student documents.
type StudentStore struct {
	col *mongo.Collection
}

// Create inserts a student document.
func (s *StudentStore) Create(ctx context.Context, student *models.Student) error {
	_, err := s.col.InsertOne(ctx, student)
	return translate(err)
}

// FindByID fetches a student by portal ID.
func (s *StudentStore) FindByID(ctx context.Context, id string) (*models.Student, error) {
	return s.findOne(ctx, bson.M{"id": id})
}

// FindByEmail fetches a student by email.
func (s *StudentStore) FindByEmail(ctx context.Context, email string) (*models.Student, error) {
	return s.findOne(ctx, bson.M{"email": email})
}

func (s *StudentStore) findOne(ctx context.Context, filter bson.M) (*models.Student, error) {
	var student models.Student
	if err := s.col.FindOne(ctx, filter).Decode(&student); err != nil {
		return nil, translate(err)
	}
	return &student, nil
}

// CountByCourse counts students registered in a course.
func (s *StudentStore) CountByCourse(ctx context.Context, course string) (int, error) {
	count, err := s.col.CountDocuments(ctx, bson.M{"course": course})
	if err != nil {
		return 0, translate(err)
	}
	return int(count), nil
}

// List returns all students ordered by course then ID.
func (s *StudentStore) List(ctx context.Context) ([]models.Student, error) {
	opts := options.Find().SetSort(bson.D{{Key: "course", Value: 1}, {Key: "id", Value: 1}})
	cursor, err := s.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, translate(err)
	}
	defer cursor.Close(ctx)

	students := []models.Student{}
	if err := cursor.All(ctx, &students); err != nil {
		return nil, translate(err)
	}
	return students, nil
}
