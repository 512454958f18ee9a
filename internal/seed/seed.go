// Package seed installs the default accounts on an empty store: one faculty
// reviewer and the demo student roster. Seeding is idempotent and skipped
// when the store already holds data.
package seed

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/dmiher/complaint-portal/internal/models"
	"github.com/dmiher/complaint-portal/internal/service"
	"github.com/dmiher/complaint-portal/internal/store"
)

type seedStudent struct {
	id       string
	password string
	name     string
	dept     string
	email    string
	year     string
	course   string
}

var defaultStudents = []seedStudent{
	{"BCA2023001", "bca123", "Aarav Sharma", "BCA", "sc2023sa00001@dmiher.edu.in", "3rd Year", "bca"},
	{"BCA2023002", "bca123", "Isha Patel", "BCA", "sc2023sa00002@dmiher.edu.in", "2nd Year", "bca"},
	{"BCA2023003", "bca123", "Rohan Verma", "BCA", "sc2023sa00003@dmiher.edu.in", "1st Year", "bca"},
	{"BBA2023001", "bba123", "Neha Gupta", "BBA", "sc2023sa00004@dmiher.edu.in", "3rd Year", "bba"},
	{"BBA2023002", "bba123", "Karan Singh", "BBA", "sc2023sa00005@dmiher.edu.in", "2nd Year", "bba"},
	{"BBA2023003", "bba123", "Priya Reddy", "BBA", "sc2023sa00006@dmiher.edu.in", "1st Year", "bba"},
	{"MCA2023001", "mca123", "Vikram Joshi", "MCA", "sc2023sa00007@dmiher.edu.in", "2nd Year", "mca"},
	{"MCA2023002", "mca123", "Anjali Desai", "MCA", "sc2023sa00008@dmiher.edu.in", "1st Year", "mca"},
	{"MCA2023003", "mca123", "Rajesh Kumar", "MCA", "sc2023sa00009@dmiher.edu.in", "2nd Year", "mca"},
	{"BSCAIDS2023001", "aids123", "Sneha Iyer", "BSc AIDS", "sc2023sa00010@dmiher.edu.in", "3rd Year", "bsc_aids"},
	{"BSCAIDS2023002", "aids123", "Arun Mehta", "BSc AIDS", "sc2023sa00011@dmiher.edu.in", "2nd Year", "bsc_aids"},
	{"BSCAIDS2023003", "aids123", "Pooja Nair", "BSc AIDS", "sc2023sa00012@dmiher.edu.in", "1st Year", "bsc_aids"},
}

// Run seeds default data into an empty store.
func Run(ctx context.Context, s store.Store, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	facultyCount, err := s.Faculty().Count(ctx)
	if err != nil {
		return fmt.Errorf("count faculty: %w", err)
	}
	if facultyCount == 0 {
		hash, err := service.HashPassword("admin123")
		if err != nil {
			return fmt.Errorf("hash faculty password: %w", err)
		}
		faculty := &models.Faculty{
			ID:           "FAC2024001",
			Name:         "Dr. Admin Faculty",
			Email:        "sc2024sa99999@dmiher.edu.in",
			PasswordHash: hash,
			Department:   "Administration",
			CreatedAt:    time.Now().UTC(),
		}
		if err := s.Faculty().Create(ctx, faculty); err != nil {
			return fmt.Errorf("seed faculty: %w", err)
		}
		logger.Info("default faculty account created", zap.String("email", faculty.Email))
	}

	students, err := s.Students().List(ctx)
	if err != nil {
		return fmt.Errorf("list students: %w", err)
	}
	if len(students) > 0 {
		return nil
	}

	now := time.Now().UTC()
	for _, seed := range defaultStudents {
		hash, err := service.HashPassword(seed.password)
		if err != nil {
			return fmt.Errorf("hash student password: %w", err)
		}
		student := &models.Student{
			ID:           seed.id,
			Name:         seed.name,
			Email:        seed.email,
			PasswordHash: hash,
			Department:   seed.dept,
			Course:       seed.course,
			Year:         seed.year,
			RegisteredAt: now,
		}
		if err := s.Students().Create(ctx, student); err != nil {
			return fmt.Errorf("seed student %s: %w", seed.id, err)
		}
	}
	logger.Info("default students created", zap.Int("count", len(defaultStudents)))
	return nil
}
