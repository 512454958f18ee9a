// Package mongo implements the store interfaces on MongoDB via the official
// driver.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/dmiher/complaint-portal/internal/store"
	"github.com/dmiher/complaint-portal/pkg/config"
)

const (
	studentsCollection   = "students"
	facultyCollection    = "faculty"
	complaintsCollection = "complaints"

	connectTimeout = 10 * time.Second
)

// Store is the MongoDB-backed persistence bundle.
type Store struct {
	client     *mongo.Client
	db         *mongo.Database
	students   *StudentStore
	faculty    *FacultyStore
	complaints *ComplaintStore
}

// Open connects to MongoDB, ensures indexes and returns the store.
func Open(cfg config.MongoConfig) (*Store, error) {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	db := client.Database(cfg.Database)
	s := &Store{
		client:     client,
		db:         db,
		students:   &StudentStore{col: db.Collection(studentsCollection)},
		faculty:    &FacultyStore{col: db.Collection(facultyCollection)},
		complaints: &ComplaintStore{col: db.Collection(complaintsCollection)},
	}

	if err := s.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return s, nil
}

func (s *Store) ensureIndexes(ctx context.Context) error {
	unique := options.Index().SetUnique(true)

	indexes := map[*mongo.Collection][]mongo.IndexModel{
		s.students.col: {
			{Keys: bson.M{"id": 1}, Options: unique},
			{Keys: bson.M{"email": 1}, Options: unique},
			{Keys: bson.M{"course": 1}},
		},
		s.faculty.col: {
			{Keys: bson.M{"email": 1}, Options: unique},
		},
		s.complaints.col: {
			{Keys: bson.M{"id": 1}, Options: unique},
			{Keys: bson.M{"student_id": 1}},
			{Keys: bson.M{"created_at": -1}},
		},
	}

	for col, models := range indexes {
		if _, err := col.Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes on %s: %w", col.Name(), err)
		}
	}
	return nil
}

func (s *Store) Students() store.StudentStore     { return s.students }
func (s *Store) Faculty() store.FacultyStore      { return s.faculty }
func (s *Store) Complaints() store.ComplaintStore { return s.complaints }

// Ping reports backend reachability.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client.
func (s *Store) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	return s.client.Disconnect(ctx)
}

func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return store.ErrNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return store.ErrDuplicate
	}
	return err
}
