package database

import (
	"context"
	"errors"

	"github.com/rpupo63/portfolio-backend/models"
	"gorm.io/gorm"
)

type ProjectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{db}
}

// FindAll returns all projects, lowest display_order first and newest first
// among equal display_order values. TechStack is left empty.
func (r *ProjectRepo) FindAll(ctx context.Context) ([]*models.Project, error) {
	projects := []*models.Project{}
	err := r.db.WithContext(ctx).
		Order("display_order ASC").
		Order("created_at DESC").
		Order("id DESC").
		Find(&projects).Error
	return projects, err
}

// FindByID returns nil without an error when the project does not exist.
func (r *ProjectRepo) FindByID(ctx context.Context, id int64) (*models.Project, error) {
	var project models.Project
	err := r.db.WithContext(ctx).First(&project, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// Exists reports whether a project with the given id is stored.
func (r *ProjectRepo) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Project{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// Add inserts a new project and sets project.ID.
func (r *ProjectRepo) Add(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

// Update overwrites the scalar fields of the project with the given id.
func (r *ProjectRepo) Update(ctx context.Context, id int64, project *models.Project) error {
	return r.db.WithContext(ctx).
		Model(&models.Project{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"title":                project.Title,
			"short_description":    project.ShortDescription,
			"detailed_description": project.DetailedDescription,
			"category":             project.Category,
			"image_url":            project.ImageURL,
			"github_link":          project.GithubLink,
			"live_link":            project.LiveLink,
			"video_url":            project.VideoURL,
			"display_order":        project.DisplayOrder,
		}).Error
}

// Delete removes a project from the database by id
func (r *ProjectRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&models.Project{}, id).Error
}
