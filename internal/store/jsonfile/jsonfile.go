// Package jsonfile implements the store interfaces on flat JSON files for
// single-node deployments without a database. A single mutex guards
// whole-file read-modify-write cycles; the adapter assumes one process owns
// the data directory.
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/dmiher/complaint-portal/internal/models"
	"github.com/dmiher/complaint-portal/internal/store"
)

const (
	studentsFile   = "students.json"
	facultyFile    = "faculty.json"
	complaintsFile = "complaints.json"
)

// Store is the JSON-file-backed persistence bundle.
type Store struct {
	dir        string
	mu         sync.Mutex
	students   *StudentStore
	faculty    *FacultyStore
	complaints *ComplaintStore
}

// Open prepares the data directory and initializes empty data files.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	s := &Store{dir: dir}
	s.students = &StudentStore{store: s}
	s.faculty = &FacultyStore{store: s}
	s.complaints = &ComplaintStore{store: s}

	for _, name := range []string{studentsFile, facultyFile, complaintsFile} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			if err := os.WriteFile(path, []byte("[]"), 0o644); err != nil {
				return nil, fmt.Errorf("init %s: %w", name, err)
			}
		}
	}
	return s, nil
}

func (s *Store) Students() store.StudentStore     { return s.students }
func (s *Store) Faculty() store.FacultyStore      { return s.faculty }
func (s *Store) Complaints() store.ComplaintStore { return s.complaints }

// Ping verifies the data directory is still accessible.
func (s *Store) Ping(ctx context.Context) error {
	_, err := os.Stat(s.dir)
	return err
}

// Close is a no-op; files are written synchronously.
func (s *Store) Close() error { return nil }

func readFile[T any](s *Store, name string) ([]T, error) {
	raw, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	return items, nil
}

func writeFile[T any](s *Store, name string, items []T) error {
	raw, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	tmp := filepath.Join(s.dir, name+".tmp")
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := os.Rename(tmp, filepath.Join(s.dir, name)); err != nil {
		return fmt.Errorf("replace %s: %w", name, err)
	}
	return nil
}

// persistedStudent keeps the credential hash in the file even though the
// Student model hides it from API serialization.
type persistedStudent struct {
	models.Student
	PasswordHash string `json:"password_hash"`
}

type persistedFaculty struct {
	models.Faculty
	PasswordHash string `json:"password_hash"`
}

// StudentStore manages the students file.
type StudentStore struct {
	store *Store
}

func (s *StudentStore) Create(ctx context.Context, student *models.Student) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	students, err := readFile[persistedStudent](s.store, studentsFile)
	if err != nil {
		return err
	}
	for _, existing := range students {
		if existing.Email == student.Email || existing.ID == student.ID {
			return store.ErrDuplicate
		}
	}
	students = append(students, persistedStudent{Student: *student, PasswordHash: student.PasswordHash})
	return writeFile(s.store, studentsFile, students)
}

func (s *StudentStore) FindByID(ctx context.Context, id string) (*models.Student, error) {
	return s.findBy(func(student persistedStudent) bool { return student.ID == id })
}

func (s *StudentStore) FindByEmail(ctx context.Context, email string) (*models.Student, error) {
	return s.findBy(func(student persistedStudent) bool { return student.Email == email })
}

func (s *StudentStore) findBy(match func(persistedStudent) bool) (*models.Student, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	students, err := readFile[persistedStudent](s.store, studentsFile)
	if err != nil {
		return nil, err
	}
	for _, candidate := range students {
		if match(candidate) {
			result := candidate.Student
			result.PasswordHash = candidate.PasswordHash
			return &result, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *StudentStore) CountByCourse(ctx context.Context, course string) (int, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	students, err := readFile[persistedStudent](s.store, studentsFile)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, student := range students {
		if student.Course == course {
			count++
		}
	}
	return count, nil
}

func (s *StudentStore) List(ctx context.Context) ([]models.Student, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	persisted, err := readFile[persistedStudent](s.store, studentsFile)
	if err != nil {
		return nil, err
	}
	students := make([]models.Student, 0, len(persisted))
	for _, p := range persisted {
		student := p.Student
		student.PasswordHash = p.PasswordHash
		students = append(students, student)
	}
	sort.Slice(students, func(i, j int) bool {
		if students[i].Course != students[j].Course {
			return students[i].Course < students[j].Course
		}
		return students[i].ID < students[j].ID
	})
	return students, nil
}

// FacultyStore manages the faculty file.
type FacultyStore struct {
	store *Store
}

func (s *FacultyStore) Create(ctx context.Context, faculty *models.Faculty) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	accounts, err := readFile[persistedFaculty](s.store, facultyFile)
	if err != nil {
		return err
	}
	for _, existing := range accounts {
		if existing.Email == faculty.Email {
			return store.ErrDuplicate
		}
	}
	accounts = append(accounts, persistedFaculty{Faculty: *faculty, PasswordHash: faculty.PasswordHash})
	return writeFile(s.store, facultyFile, accounts)
}

func (s *FacultyStore) FindByEmail(ctx context.Context, email string) (*models.Faculty, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	accounts, err := readFile[persistedFaculty](s.store, facultyFile)
	if err != nil {
		return nil, err
	}
	for _, candidate := range accounts {
		if candidate.Email == email {
			result := candidate.Faculty
			result.PasswordHash = candidate.PasswordHash
			return &result, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *FacultyStore) Count(ctx context.Context) (int, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	accounts, err := readFile[persistedFaculty](s.store, facultyFile)
	if err != nil {
		return 0, err
	}
	return len(accounts), nil
}

// ComplaintStore manages the complaints file.
type ComplaintStore struct {
	store *Store
}

func (s *ComplaintStore) Create(ctx context.Context, complaint *models.Complaint) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	complaints, err := readFile[models.Complaint](s.store, complaintsFile)
	if err != nil {
		return err
	}
	for _, existing := range complaints {
		if existing.ID == complaint.ID {
			return store.ErrDuplicate
		}
	}
	complaints = append(complaints, *complaint)
	return writeFile(s.store, complaintsFile, complaints)
}

func (s *ComplaintStore) FindByID(ctx context.Context, id string) (*models.Complaint, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	complaints, err := readFile[models.Complaint](s.store, complaintsFile)
	if err != nil {
		return nil, err
	}
	for i := range complaints {
		if complaints[i].ID == id {
			result := complaints[i]
			return &result, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *ComplaintStore) Update(ctx context.Context, complaint *models.Complaint) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	complaints, err := readFile[models.Complaint](s.store, complaintsFile)
	if err != nil {
		return err
	}
	for i := range complaints {
		if complaints[i].ID == complaint.ID {
			complaints[i].Status = complaint.Status
			complaints[i].FacultyResponse = complaint.FacultyResponse
			complaints[i].RespondedAt = complaint.RespondedAt
			return writeFile(s.store, complaintsFile, complaints)
		}
	}
	return store.ErrNotFound
}

func (s *ComplaintStore) Delete(ctx context.Context, id string) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	complaints, err := readFile[models.Complaint](s.store, complaintsFile)
	if err != nil {
		return err
	}
	filtered := complaints[:0]
	for _, candidate := range complaints {
		if candidate.ID != id {
			filtered = append(filtered, candidate)
		}
	}
	return writeFile(s.store, complaintsFile, filtered)
}

func (s *ComplaintStore) List(ctx context.Context) ([]models.Complaint, error) {
	return s.list(func(models.Complaint) bool { return true })
}

func (s *ComplaintStore) ListByStudent(ctx context.Context, studentID string) ([]models.Complaint, error) {
	return s.list(func(c models.Complaint) bool { return c.StudentID == studentID })
}

func (s *ComplaintStore) list(match func(models.Complaint) bool) ([]models.Complaint, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	complaints, err := readFile[models.Complaint](s.store, complaintsFile)
	if err != nil {
		return nil, err
	}
	filtered := make([]models.Complaint, 0, len(complaints))
	for _, candidate := range complaints {
		if match(candidate) {
			filtered = append(filtered, candidate)
		}
	}
	sort.Slice(filtered, func(i, j int) bool {
		return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
	})
	return filtered, nil
}
