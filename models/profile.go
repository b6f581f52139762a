package models

import "time"

// DefaultProfileID is the id of the singleton profile row.
const DefaultProfileID int64 = 1

type Profile struct {
	ID                   int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Name                 string    `json:"name" gorm:"size:100;not null"`
	Role                 string    `json:"role" gorm:"size:200;not null"`
	ProfessionalIdentity string    `json:"professional_identity" gorm:"type:text"`
	Bio                  string    `json:"bio" gorm:"type:text"`
	ProfileImageURL      string    `json:"profile_image_url" gorm:"size:500"`
	ResumeURL            string    `json:"resume_url" gorm:"size:500"`
	Email                string    `json:"email" gorm:"size:255"`
	GithubURL            string    `json:"github_url" gorm:"size:500"`
	LinkedinURL          string    `json:"linkedin_url" gorm:"size:500"`
	TwitterURL           string    `json:"twitter_url" gorm:"size:500"`
	UpdatedAt            time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Profile) TableName() string {
	return "profile"
}
