package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dmiher/complaint-portal/internal/models"
	"github.com/dmiher/complaint-portal/internal/store"
)

// ComplaintStore manages complaint documents.
type ComplaintStore struct {
	col *mongo.Collection
}

// Create inserts a complaint document.
func (s *ComplaintStore) Create(ctx context.Context, complaint *models.Complaint) error {
	_, err := s.col.InsertOne(ctx, complaint)
	return translate(err)
}

// FindByID fetches a complaint by portal ID.
func (s *ComplaintStore) FindByID(ctx context.Context, id string) (*models.Complaint, error) {
	var complaint models.Complaint
	if err := s.col.FindOne(ctx, bson.M{"id": id}).Decode(&complaint); err != nil {
		return nil, translate(err)
	}
	return &complaint, nil
}

// Update overwrites the mutable complaint fields.
func (s *ComplaintStore) Update(ctx context.Context, complaint *models.Complaint) error {
	update := bson.M{"$set": bson.M{
		"status":           complaint.Status,
		"faculty_response": complaint.FacultyResponse,
		"responded_at":     complaint.RespondedAt,
	}}
	res, err := s.col.UpdateOne(ctx, bson.M{"id": complaint.ID}, update)
	if err != nil {
		return translate(err)
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

// Delete removes a complaint. Unknown ids are ignored.
func (s *ComplaintStore) Delete(ctx context.Context, id string) error {
	_, err := s.col.DeleteOne(ctx, bson.M{"id": id})
	return translate(err)
}

// List returns all complaints, newest first.
func (s *ComplaintStore) List(ctx context.Context) ([]models.Complaint, error) {
	return s.find(ctx, bson.M{})
}

// ListByStudent returns one student's complaints, newest first.
func (s *ComplaintStore) ListByStudent(ctx context.Context, studentID string) ([]models.Complaint, error) {
	return s.find(ctx, bson.M{"student_id": studentID})
}

func (s *ComplaintStore) find(ctx context.Context, filter bson.M) ([]models.Complaint, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, translate(err)
	}
	defer cursor.Close(ctx)

	complaints := []models.Complaint{}
	if err := cursor.All(ctx, &complaints); err != nil {
		return nil, translate(err)
	}
	return complaints, nil
}
