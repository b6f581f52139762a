package api

import (
	"github.com/rpupo63/portfolio-backend/models"
	"github.com/rpupo63/portfolio-backend/services"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type projectRequest struct {
	Title               string            `json:"title"`
	ShortDescription    string            `json:"short_description"`
	DetailedDescription string            `json:"detailed_description"`
	Category            string            `json:"category"`
	ImageURL            string            `json:"image_url"`
	GithubLink          string            `json:"github_link"`
	LiveLink            string            `json:"live_link"`
	VideoURL            string            `json:"video_url"`
	DisplayOrder        models.LenientInt `json:"display_order"`
	TechStack           stringList        `json:"tech_stack"`
}

func (p projectRequest) input() services.ProjectInput {
	return services.ProjectInput{
		Title:               p.Title,
		ShortDescription:    p.ShortDescription,
		DetailedDescription: p.DetailedDescription,
		Category:            p.Category,
		ImageURL:            p.ImageURL,
		GithubLink:          p.GithubLink,
		LiveLink:            p.LiveLink,
		VideoURL:            p.VideoURL,
		DisplayOrder:        p.DisplayOrder.Int(),
		TechStack:           p.TechStack,
	}
}

type skillRequest struct {
	Name             string            `json:"name"`
	Category         string            `json:"category"`
	ProficiencyLevel models.LenientInt `json:"proficiency_level"`
	DisplayOrder     models.LenientInt `json:"display_order"`
}

func (s skillRequest) input() services.SkillInput {
	return services.SkillInput{
		Name:             s.Name,
		Category:         s.Category,
		ProficiencyLevel: s.ProficiencyLevel.Int(),
		DisplayOrder:     s.DisplayOrder.Int(),
	}
}
