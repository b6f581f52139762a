package models

import "time"

// Project is a portfolio entry. TechStack is derived from tech_stack rows and
// is not a column of projects.
type Project struct {
	ID                  int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Title               string    `json:"title" gorm:"size:200;not null"`
	ShortDescription    string    `json:"short_description" gorm:"type:text"`
	DetailedDescription string    `json:"detailed_description" gorm:"type:text"`
	Category            string    `json:"category" gorm:"size:100"`
	ImageURL            string    `json:"image_url" gorm:"size:500"`
	GithubLink          string    `json:"github_link" gorm:"size:500"`
	LiveLink            string    `json:"live_link" gorm:"size:500"`
	VideoURL            string    `json:"video_url" gorm:"size:500"`
	DisplayOrder        int       `json:"display_order" gorm:"not null;default:0;index:idx_project_order"`
	CreatedAt           time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt           time.Time `json:"updated_at" gorm:"autoUpdateTime"`
	TechStack           []string  `json:"tech_stack" gorm:"-"`
}

func (Project) TableName() string {
	return "projects"
}

// TechStackEntry is one technology attached to a project. Entries are listed
// in insertion order.
type TechStackEntry struct {
	ID         int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	ProjectID  int64  `json:"project_id" gorm:"not null;index:idx_tech_project"`
	Technology string `json:"technology" gorm:"size:100;not null"`

	Project *Project `json:"-" gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE"`
}

func (TechStackEntry) TableName() string {
	return "tech_stack"
}
