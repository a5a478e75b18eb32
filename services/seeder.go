package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Mathew-2006/school-website/models"
	"github.com/Mathew-2006/school-website/repository"
	"golang.org/x/crypto/bcrypt"
)

// DatabaseSeeder handles database seeding operations
type DatabaseSeeder struct {
	repo *repository.GORMRepository
	docs *repository.DocumentStore
}

// NewDatabaseSeeder creates a new database seeder
func NewDatabaseSeeder(repo *repository.GORMRepository, docs *repository.DocumentStore) *DatabaseSeeder {
	return &DatabaseSeeder{repo: repo, docs: docs}
}

type seedStudent struct {
	email  string
	record models.StudentRecord
}

// SeedDatabase seeds demo student accounts and their records (idempotent)
func (s *DatabaseSeeder) SeedDatabase() error {
	ctx := context.Background()

	// Hash default password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	students := []seedStudent{
		{
			email: "jane.wanjiku@example.com",
			record: models.StudentRecord{
				FullName:      "Jane Wanjiku",
				RegNo:         "SCT-2024-001",
				Class:         "Form 3 East",
				Gender:        "Female",
				DOB:           "2008-03-14",
				Email:         "jane.wanjiku@example.com",
				CurrentUnits:  3,
				PreviousUnits: 5,
			},
		},
		{
			email: "brian.otieno@example.com",
			record: models.StudentRecord{
				FullName:      "Brian Otieno",
				RegNo:         "SCT-2024-002",
				Class:         "Form 2 West",
				Gender:        "Male",
				DOB:           "2009-07-02",
				Email:         "brian.otieno@example.com",
				CurrentUnits:  0,
				PreviousUnits: 0,
			},
		},
	}

	for _, student := range students {
		if err := s.seedStudent(ctx, student, string(hashedPassword)); err != nil {
			slog.Error("Failed to seed student", "email", student.email, "error", err)
		}
	}

	slog.Info("Database seeding completed")
	return nil
}

// seedStudent creates the auth user and its student document (idempotent)
func (s *DatabaseSeeder) seedStudent(ctx context.Context, student seedStudent, hashedPassword string) error {
	// Check if user already exists
	existingUser, err := s.repo.GetUserByEmail(ctx, student.email)
	if err != nil {
		return fmt.Errorf("error checking user %s: %w", student.email, err)
	}

	user := existingUser
	if user == nil {
		user = &models.User{
			Email:    student.email,
			Password: hashedPassword,
			FullName: student.record.FullName,
			Role:     "student",
		}
		if err := s.repo.CreateUser(ctx, user); err != nil {
			return fmt.Errorf("failed to create user %s: %w", student.email, err)
		}
		slog.Info("Created user", "email", student.email)
	} else {
		slog.Info("User already exists, skipping", "email", student.email)
	}

	// Check if the student document already exists
	doc, err := s.docs.GetDocument(ctx, models.StudentsCollection, user.ID)
	if err != nil {
		return fmt.Errorf("error checking student record %s: %w", student.email, err)
	}
	if doc != nil {
		slog.Info("Student record already exists, skipping", "email", student.email)
		return nil
	}

	if _, err := s.docs.SetDocument(ctx, models.StudentsCollection, user.ID, student.record.ToDocument()); err != nil {
		return fmt.Errorf("failed to create student record %s: %w", student.email, err)
	}

	slog.Info("Created student record", "email", student.email, "user_id", user.ID)
	return nil
}
