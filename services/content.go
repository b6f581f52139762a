package services

import (
	"context"
	"errors"
	"strings"

	"github.com/rpupo63/portfolio-backend/database"
	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type ProfileInput struct {
	Name                 string `json:"name" validate:"required,max=100"`
	Role                 string `json:"role" validate:"required,max=200"`
	ProfessionalIdentity string `json:"professional_identity"`
	Bio                  string `json:"bio"`
	ProfileImageURL      string `json:"profile_image_url" validate:"max=500"`
	ResumeURL            string `json:"resume_url" validate:"max=500"`
	Email                string `json:"email" validate:"max=255"`
	GithubURL            string `json:"github_url" validate:"max=500"`
	LinkedinURL          string `json:"linkedin_url" validate:"max=500"`
	TwitterURL           string `json:"twitter_url" validate:"max=500"`
}

type ProjectInput struct {
	Title               string   `json:"title" validate:"required,max=200"`
	ShortDescription    string   `json:"short_description"`
	DetailedDescription string   `json:"detailed_description"`
	Category            string   `json:"category" validate:"max=100"`
	ImageURL            string   `json:"image_url" validate:"max=500"`
	GithubLink          string   `json:"github_link" validate:"max=500"`
	LiveLink            string   `json:"live_link" validate:"max=500"`
	VideoURL            string   `json:"video_url" validate:"max=500"`
	DisplayOrder        int      `json:"display_order"`
	TechStack           []string `json:"tech_stack" validate:"dive,max=100"`
}

// normalized trims the input and turns social links into absolute https URLs.
// Length limits apply to the stored form.
func (in ProfileInput) normalized() ProfileInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Role = strings.TrimSpace(in.Role)
	in.ProfileImageURL = strings.TrimSpace(in.ProfileImageURL)
	in.ResumeURL = strings.TrimSpace(in.ResumeURL)
	in.Email = strings.TrimSpace(in.Email)
	in.GithubURL = NormalizeURL(in.GithubURL)
	in.LinkedinURL = NormalizeURL(in.LinkedinURL)
	in.TwitterURL = NormalizeURL(in.TwitterURL)
	return in
}

func (in ProjectInput) normalized() ProjectInput {
	in.Title = strings.TrimSpace(in.Title)
	in.ImageURL = strings.TrimSpace(in.ImageURL)
	in.GithubLink = strings.TrimSpace(in.GithubLink)
	in.LiveLink = strings.TrimSpace(in.LiveLink)
	in.VideoURL = strings.TrimSpace(in.VideoURL)
	in.TechStack = cleanTechStack(in.TechStack)
	return in
}

type SkillInput struct {
	Name             string `json:"name" validate:"required,max=100"`
	Category         string `json:"category" validate:"max=100"`
	ProficiencyLevel int    `json:"proficiency_level" validate:"gte=0,lte=100"`
	DisplayOrder     int    `json:"display_order"`
}

// ContentService reads and edits the profile, projects and skills.
type ContentService struct {
	db     database.Database
	logger zerolog.Logger
}

func NewContentService(db database.Database) *ContentService {
	return &ContentService{
		db:     db,
		logger: log.With().Str("service", "content").Logger(),
	}
}

// GetProfile returns the singleton profile.
func (s *ContentService) GetProfile(ctx context.Context) (*models.Profile, error) {
	profile, err := s.db.ProfileRepo().Find(ctx)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "profile", err)
	}
	if profile == nil {
		return nil, errs.NewNotFoundError("Profile not found")
	}
	return profile, nil
}

// UpsertProfile writes the profile row with the fixed id, creating it on first
// use and overwriting it afterwards.
// Social links are normalized to absolute https URLs.
func (s *ContentService) UpsertProfile(ctx context.Context, in ProfileInput) error {
	in = in.normalized()
	if err := validateInput(in); err != nil {
		return err
	}

	profile := models.Profile{
		Name:                 in.Name,
		Role:                 in.Role,
		ProfessionalIdentity: in.ProfessionalIdentity,
		Bio:                  in.Bio,
		ProfileImageURL:      in.ProfileImageURL,
		ResumeURL:            in.ResumeURL,
		Email:                in.Email,
		GithubURL:            in.GithubURL,
		LinkedinURL:          in.LinkedinURL,
		TwitterURL:           in.TwitterURL,
	}

	err := s.db.Transaction(ctx, func(tx database.Database) error {
		existing, err := tx.ProfileRepo().FindByID(ctx, models.DefaultProfileID)
		if err != nil {
			return err
		}
		profile.ID = models.DefaultProfileID
		if existing == nil {
			return tx.ProfileRepo().Add(ctx, &profile)
		}
		return tx.ProfileRepo().Update(ctx, &profile)
	})
	return dbError("update", "profile", err)
}

// ListProjects returns every project with its tech stack.
func (s *ContentService) ListProjects(ctx context.Context) ([]*models.Project, error) {
	projects, err := s.db.ProjectRepo().FindAll(ctx)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "projects", err)
	}

	ids := make([]int64, len(projects))
	for i, p := range projects {
		ids[i] = p.ID
	}

	stacks, err := s.db.TechStackRepo().FindByProjects(ctx, ids)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "tech stack", err)
	}

	for _, p := range projects {
		p.TechStack = stacks[p.ID]
		if p.TechStack == nil {
			p.TechStack = []string{}
		}
	}
	return projects, nil
}

func (s *ContentService) GetProject(ctx context.Context, id int64) (*models.Project, error) {
	project, err := s.db.ProjectRepo().FindByID(ctx, id)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "project", err)
	}
	if project == nil {
		return nil, errs.NewNotFoundError("Project not found")
	}

	project.TechStack, err = s.db.TechStackRepo().FindByProject(ctx, id)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "tech stack", err)
	}
	return project, nil
}

// CreateProject stores the project and its tech stack atomically and returns
// the new id.
func (s *ContentService) CreateProject(ctx context.Context, in ProjectInput) (int64, error) {
	in = in.normalized()
	if err := validateInput(in); err != nil {
		return 0, err
	}

	project := projectFromInput(in)
	err := s.db.Transaction(ctx, func(tx database.Database) error {
		if err := tx.ProjectRepo().Add(ctx, project); err != nil {
			return err
		}
		return tx.TechStackRepo().Add(ctx, project.ID, in.TechStack)
	})
	if err != nil {
		return 0, dbError("create", "project", err)
	}

	s.logger.Info().Int64("projectId", project.ID).Int("techStack", len(in.TechStack)).Msg("project created")
	return project.ID, nil
}

// UpdateProject overwrites the project fields and replaces its whole tech stack.
func (s *ContentService) UpdateProject(ctx context.Context, id int64, in ProjectInput) error {
	in = in.normalized()
	if err := validateInput(in); err != nil {
		return err
	}

	project := projectFromInput(in)
	err := s.db.Transaction(ctx, func(tx database.Database) error {
		exists, err := tx.ProjectRepo().Exists(ctx, id)
		if err != nil {
			return err
		}
		if !exists {
			return errs.NewNotFoundError("Project not found")
		}

		if err := tx.ProjectRepo().Update(ctx, id, project); err != nil {
			return err
		}
		if _, err := tx.TechStackRepo().DeleteByProject(ctx, id); err != nil {
			return err
		}
		return tx.TechStackRepo().Add(ctx, id, in.TechStack)
	})
	return dbError("update", "project", err)
}

// DeleteProject removes the project and its tech stack. Deleting a missing
// project succeeds.
func (s *ContentService) DeleteProject(ctx context.Context, id int64) error {
	err := s.db.Transaction(ctx, func(tx database.Database) error {
		if _, err := tx.TechStackRepo().DeleteByProject(ctx, id); err != nil {
			return err
		}
		return tx.ProjectRepo().Delete(ctx, id)
	})
	return dbError("delete", "project", err)
}

func (s *ContentService) ListSkills(ctx context.Context) ([]*models.Skill, error) {
	skills, err := s.db.SkillRepo().FindAll(ctx)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "skills", err)
	}
	return skills, nil
}

func (s *ContentService) CreateSkill(ctx context.Context, in SkillInput) (int64, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := validateInput(in); err != nil {
		return 0, err
	}

	skill := skillFromInput(in)
	if err := s.db.SkillRepo().Add(ctx, skill); err != nil {
		return 0, errs.NewDatabaseError("create", "skill", err)
	}
	return skill.ID, nil
}

func (s *ContentService) UpdateSkill(ctx context.Context, id int64, in SkillInput) error {
	in.Name = strings.TrimSpace(in.Name)
	if err := validateInput(in); err != nil {
		return err
	}

	skill := skillFromInput(in)
	err := s.db.Transaction(ctx, func(tx database.Database) error {
		exists, err := tx.SkillRepo().Exists(ctx, id)
		if err != nil {
			return err
		}
		if !exists {
			return errs.NewNotFoundError("Skill not found")
		}
		return tx.SkillRepo().Update(ctx, id, skill)
	})
	return dbError("update", "skill", err)
}

// DeleteSkill removes a skill. Deleting a missing skill succeeds.
func (s *ContentService) DeleteSkill(ctx context.Context, id int64) error {
	if err := s.db.SkillRepo().Delete(ctx, id); err != nil {
		return errs.NewDatabaseError("delete", "skill", err)
	}
	return nil
}

func projectFromInput(in ProjectInput) *models.Project {
	return &models.Project{
		Title:               in.Title,
		ShortDescription:    in.ShortDescription,
		DetailedDescription: in.DetailedDescription,
		Category:            in.Category,
		ImageURL:            in.ImageURL,
		GithubLink:          in.GithubLink,
		LiveLink:            in.LiveLink,
		VideoURL:            in.VideoURL,
		DisplayOrder:        in.DisplayOrder,
	}
}

func skillFromInput(in SkillInput) *models.Skill {
	return &models.Skill{
		Name:             in.Name,
		Category:         in.Category,
		ProficiencyLevel: in.ProficiencyLevel,
		DisplayOrder:     in.DisplayOrder,
	}
}

// cleanTechStack trims entries and drops blank ones, keeping order.
func cleanTechStack(stack []string) []string {
	cleaned := make([]string, 0, len(stack))
	for _, technology := range stack {
		if technology = strings.TrimSpace(technology); technology != "" {
			cleaned = append(cleaned, technology)
		}
	}
	return cleaned
}

// dbError leaves ApiErr values raised inside a transaction untouched and
// wraps everything else as a database failure.
func dbError(operation, entity string, err error) error {
	if err == nil {
		return nil
	}
	var apiErr *errs.ApiErr
	if errors.As(err, &apiErr) {
		return err
	}
	return errs.NewDatabaseError(operation, entity, err)
}
