package database

import (
	"context"

	"github.com/rpupo63/portfolio-backend/models"
	"gorm.io/gorm"
)

type SkillRepo struct {
	db *gorm.DB
}

func NewSkillRepo(db *gorm.DB) *SkillRepo {
	return &SkillRepo{db}
}

// FindAll returns all skills in display order, newest first among ties.
func (r *SkillRepo) FindAll(ctx context.Context) ([]*models.Skill, error) {
	skills := []*models.Skill{}
	err := r.db.WithContext(ctx).
		Order("display_order ASC").
		Order("created_at DESC").
		Order("id DESC").
		Find(&skills).Error
	return skills, err
}

// Add inserts a new skill and sets skill.ID.
func (r *SkillRepo) Add(ctx context.Context, skill *models.Skill) error {
	return r.db.WithContext(ctx).Create(skill).Error
}

// Exists reports whether a skill with the given id is stored.
func (r *SkillRepo) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Skill{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// Update overwrites the editable fields of the skill with the given id.
func (r *SkillRepo) Update(ctx context.Context, id int64, skill *models.Skill) error {
	return r.db.WithContext(ctx).
		Model(&models.Skill{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"name":              skill.Name,
			"category":          skill.Category,
			"proficiency_level": skill.ProficiencyLevel,
			"display_order":     skill.DisplayOrder,
		}).Error
}

// Delete removes a skill from the database by id
func (r *SkillRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&models.Skill{}, id).Error
}
