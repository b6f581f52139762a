package models

import "time"

type Skill struct {
	ID               int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Name             string    `json:"name" gorm:"size:100;not null"`
	Category         string    `json:"category" gorm:"size:100"`
	ProficiencyLevel int       `json:"proficiency_level" gorm:"not null;default:0"`
	DisplayOrder     int       `json:"display_order" gorm:"not null;default:0;index:idx_skill_order"`
	CreatedAt        time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (Skill) TableName() string {
	return "skills"
}
