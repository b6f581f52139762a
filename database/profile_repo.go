package database

import (
	"context"
	"errors"

	"github.com/rpupo63/portfolio-backend/models"
	"gorm.io/gorm"
)

type ProfileRepo struct {
	db *gorm.DB
}

func NewProfileRepo(db *gorm.DB) *ProfileRepo {
	return &ProfileRepo{db}
}

// Find returns the profile row, or nil when the table is empty.
func (r *ProfileRepo) Find(ctx context.Context) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.WithContext(ctx).Order("id ASC").First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// FindByID returns nil without an error when no profile has the given id.
func (r *ProfileRepo) FindByID(ctx context.Context, id int64) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.WithContext(ctx).First(&profile, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// Add inserts a new profile into the database
func (r *ProfileRepo) Add(ctx context.Context, profile *models.Profile) error {
	return r.db.WithContext(ctx).Create(profile).Error
}

// Update overwrites every content field of the profile and refreshes updated_at.
func (r *ProfileRepo) Update(ctx context.Context, profile *models.Profile) error {
	return r.db.WithContext(ctx).
		Model(&models.Profile{}).
		Where("id = ?", profile.ID).
		Updates(map[string]any{
			"name":                  profile.Name,
			"role":                  profile.Role,
			"professional_identity": profile.ProfessionalIdentity,
			"bio":                   profile.Bio,
			"profile_image_url":     profile.ProfileImageURL,
			"resume_url":            profile.ResumeURL,
			"email":                 profile.Email,
			"github_url":            profile.GithubURL,
			"linkedin_url":          profile.LinkedinURL,
			"twitter_url":           profile.TwitterURL,
		}).Error
}
