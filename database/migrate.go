package database

import (
	"context"
	"fmt"

	"github.com/rpupo63/portfolio-backend/models"
	"golang.org/x/crypto/bcrypt"
)

func managedModels() []any {
	return []any{
		&models.Admin{},
		&models.Profile{},
		&models.Project{},
		&models.TechStackEntry{},
		&models.Skill{},
	}
}

// Migrate creates missing tables, columns and indexes. Running it against an
// up to date schema changes nothing.
func (d Database) Migrate(ctx context.Context) error {
	if err := d.db.WithContext(ctx).AutoMigrate(managedModels()...); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	return nil
}

type SeedConfig struct {
	AdminUsername string
	AdminPassword string
	AdminEmail    string
}

type SeedResult struct {
	AdminCreated   bool
	ProfileCreated bool
}

// Seed inserts the default admin when the admin table is empty and the default
// profile when the profile table is empty. Both checks run in one transaction,
// so seeding an already seeded database is a no-op.
func (d Database) Seed(ctx context.Context, cfg SeedConfig) (SeedResult, error) {
	var result SeedResult

	err := d.Transaction(ctx, func(tx Database) error {
		admins, err := tx.AdminRepo().Count(ctx)
		if err != nil {
			return fmt.Errorf("count admins: %w", err)
		}
		if admins == 0 {
			hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
			if err != nil {
				return fmt.Errorf("hash admin password: %w", err)
			}
			admin := &models.Admin{
				Username:     cfg.AdminUsername,
				PasswordHash: string(hash),
				Email:        cfg.AdminEmail,
			}
			if err := tx.AdminRepo().Add(ctx, admin); err != nil {
				return fmt.Errorf("insert default admin: %w", err)
			}
			result.AdminCreated = true
		}

		profile, err := tx.ProfileRepo().Find(ctx)
		if err != nil {
			return fmt.Errorf("find profile: %w", err)
		}
		if profile == nil {
			if err := tx.ProfileRepo().Add(ctx, defaultProfile()); err != nil {
				return fmt.Errorf("insert default profile: %w", err)
			}
			result.ProfileCreated = true
		}
		return nil
	})

	return result, err
}

func defaultProfile() *models.Profile {
	return &models.Profile{
		ID:                   models.DefaultProfileID,
		Name:                 "Your Name",
		Role:                 "Full Stack Developer",
		ProfessionalIdentity: "Building scalable web applications",
		Bio:                  "I am a passionate developer with expertise in building modern web applications.",
		Email:                "your.email@example.com",
	}
}
