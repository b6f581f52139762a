package services

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/rpupo63/portfolio-backend/database/dbtest"
	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContentService(t *testing.T) *ContentService {
	t.Helper()
	return NewContentService(dbtest.New(t))
}

func TestProfileUpsert(t *testing.T) {
	ctx := context.Background()
	svc := newContentService(t)

	_, err := svc.GetProfile(ctx)
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))

	err = svc.UpsertProfile(ctx, ProfileInput{
		Name:        "Ada",
		Role:        "Engineer",
		GithubURL:   "github.com/ada",
		LinkedinURL: "www.linkedin.com/in/ada",
		TwitterURL:  "https://twitter.com/ada",
	})
	require.NoError(t, err)

	profile, err := svc.GetProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultProfileID, profile.ID)
	assert.Equal(t, "https://github.com/ada", profile.GithubURL)
	assert.Equal(t, "https://linkedin.com/in/ada", profile.LinkedinURL)
	assert.Equal(t, "https://twitter.com/ada", profile.TwitterURL)
	firstUpdate := profile.UpdatedAt

	err = svc.UpsertProfile(ctx, ProfileInput{Name: "Ada Lovelace", Role: "Engineer"})
	require.NoError(t, err)

	profile, err = svc.GetProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultProfileID, profile.ID)
	assert.Equal(t, "Ada Lovelace", profile.Name)
	assert.Empty(t, profile.GithubURL, "every field is overwritten")
	assert.True(t, profile.UpdatedAt.After(firstUpdate))
}

func TestProfileUpsertWritesFixedRow(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)
	svc := NewContentService(db)

	require.NoError(t, db.ProfileRepo().Add(ctx, &models.Profile{ID: 7, Name: "Stray", Role: "Imported"}))

	err := svc.UpsertProfile(ctx, ProfileInput{Name: "Ada", Role: "Engineer"})
	require.NoError(t, err)

	profile, err := svc.GetProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultProfileID, profile.ID)
	assert.Equal(t, "Ada", profile.Name)

	stray, err := db.ProfileRepo().FindByID(ctx, 7)
	require.NoError(t, err)
	require.NotNil(t, stray)
	assert.Equal(t, "Stray", stray.Name, "other rows are left alone")
}

func TestProfileLinkLengthCheckedAfterNormalizing(t *testing.T) {
	ctx := context.Background()
	svc := newContentService(t)

	bare := "github.com/" + strings.Repeat("a", 495-len("github.com/"))
	require.Len(t, bare, 495)

	err := svc.UpsertProfile(ctx, ProfileInput{Name: "Ada", Role: "Engineer", GithubURL: bare})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, errs.StatusCode(err))

	var apiErr *errs.ApiErr
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "github_url", apiErr.Field)

	fits := "github.com/" + strings.Repeat("a", 492-len("github.com/"))
	require.NoError(t, svc.UpsertProfile(ctx, ProfileInput{Name: "Ada", Role: "Engineer", GithubURL: fits}))

	profile, err := svc.GetProfile(ctx)
	require.NoError(t, err)
	assert.Len(t, profile.GithubURL, 500)
}

func TestProfileRequiresNameAndRole(t *testing.T) {
	svc := newContentService(t)

	err := svc.UpsertProfile(context.Background(), ProfileInput{Name: "  ", Role: "Engineer"})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, errs.StatusCode(err))

	var apiErr *errs.ApiErr
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "name", apiErr.Field)
}

func TestCreateProjectKeepsTechStackOrder(t *testing.T) {
	ctx := context.Background()
	svc := newContentService(t)

	id, err := svc.CreateProject(ctx, ProjectInput{
		Title:     "Portfolio",
		TechStack: []string{"React", " Go ", "", "SQLite"},
	})
	require.NoError(t, err)

	project, err := svc.GetProject(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Portfolio", project.Title)
	assert.Equal(t, []string{"React", "Go", "SQLite"}, project.TechStack)
}

func TestCreateProjectWithEmptyTechStack(t *testing.T) {
	ctx := context.Background()
	svc := newContentService(t)

	id, err := svc.CreateProject(ctx, ProjectInput{Title: "Bare"})
	require.NoError(t, err)

	project, err := svc.GetProject(ctx, id)
	require.NoError(t, err)
	assert.NotNil(t, project.TechStack)
	assert.Empty(t, project.TechStack)
}

func TestUpdateProjectReplacesTechStack(t *testing.T) {
	ctx := context.Background()
	svc := newContentService(t)

	id, err := svc.CreateProject(ctx, ProjectInput{Title: "CMS", TechStack: []string{"PHP", "MySQL"}})
	require.NoError(t, err)

	err = svc.UpdateProject(ctx, id, ProjectInput{
		Title:        "CMS v2",
		DisplayOrder: 4,
		TechStack:    []string{"Go", "Postgres", "React"},
	})
	require.NoError(t, err)

	project, err := svc.GetProject(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "CMS v2", project.Title)
	assert.Equal(t, 4, project.DisplayOrder)
	assert.Equal(t, []string{"Go", "Postgres", "React"}, project.TechStack)
}

func TestUpdateMissingProject(t *testing.T) {
	svc := newContentService(t)

	err := svc.UpdateProject(context.Background(), 404, ProjectInput{Title: "Ghost"})
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, errs.StatusCode(err))
}

func TestDeleteProjectRemovesTechStack(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)
	svc := NewContentService(db)

	id, err := svc.CreateProject(ctx, ProjectInput{Title: "Doomed", TechStack: []string{"Go", "Redis"}})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteProject(ctx, id))

	_, err = svc.GetProject(ctx, id)
	assert.True(t, errs.IsNotFound(err))

	stack, err := db.TechStackRepo().FindByProject(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, stack)

	assert.NoError(t, svc.DeleteProject(ctx, id), "deleting twice still succeeds")
}

func TestListProjectsOrdering(t *testing.T) {
	ctx := context.Background()
	svc := newContentService(t)

	for _, in := range []ProjectInput{
		{Title: "second tier", DisplayOrder: 2, TechStack: []string{"C"}},
		{Title: "first tier, older", DisplayOrder: 1},
		{Title: "first tier, newer", DisplayOrder: 1, TechStack: []string{"Go", "HTMX"}},
	} {
		_, err := svc.CreateProject(ctx, in)
		require.NoError(t, err)
	}

	projects, err := svc.ListProjects(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 3)

	assert.Equal(t, "first tier, newer", projects[0].Title)
	assert.Equal(t, []string{"Go", "HTMX"}, projects[0].TechStack)
	assert.Equal(t, "first tier, older", projects[1].Title)
	assert.Equal(t, []string{}, projects[1].TechStack)
	assert.Equal(t, "second tier", projects[2].Title)
	assert.Equal(t, []string{"C"}, projects[2].TechStack)
}

func TestProjectRequiresTitle(t *testing.T) {
	svc := newContentService(t)

	_, err := svc.CreateProject(context.Background(), ProjectInput{TechStack: []string{"Go"}})
	require.Error(t, err)
	assert.True(t, errs.IsValidation(err))
}

func TestSkillLifecycle(t *testing.T) {
	ctx := context.Background()
	svc := newContentService(t)

	goID, err := svc.CreateSkill(ctx, SkillInput{Name: "Go", Category: "Backend", ProficiencyLevel: 90, DisplayOrder: 1})
	require.NoError(t, err)
	_, err = svc.CreateSkill(ctx, SkillInput{Name: "CSS"})
	require.NoError(t, err)

	skills, err := svc.ListSkills(ctx)
	require.NoError(t, err)
	require.Len(t, skills, 2)
	assert.Equal(t, "CSS", skills[0].Name)
	assert.Equal(t, 0, skills[0].ProficiencyLevel)
	assert.Equal(t, "Go", skills[1].Name)

	require.NoError(t, svc.UpdateSkill(ctx, goID, SkillInput{Name: "Golang", ProficiencyLevel: 95}))
	err = svc.UpdateSkill(ctx, 999, SkillInput{Name: "Nope"})
	assert.True(t, errs.IsNotFound(err))

	require.NoError(t, svc.DeleteSkill(ctx, goID))
	skills, err = svc.ListSkills(ctx)
	require.NoError(t, err)
	require.Len(t, skills, 1)
	assert.Equal(t, "CSS", skills[0].Name)
}

func TestSkillProficiencyBounds(t *testing.T) {
	ctx := context.Background()
	svc := newContentService(t)

	for _, level := range []int{-1, 101} {
		_, err := svc.CreateSkill(ctx, SkillInput{Name: "Go", ProficiencyLevel: level})
		require.Error(t, err)

		var apiErr *errs.ApiErr
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
		assert.Equal(t, "proficiency_level", apiErr.Field)
	}

	_, err := svc.CreateSkill(ctx, SkillInput{Name: "Go", ProficiencyLevel: 100})
	assert.NoError(t, err)
}
