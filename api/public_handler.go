package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/models"
	"github.com/rpupo63/portfolio-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type publicHandler struct {
	responder Responder
	logger    zerolog.Logger
	content   *services.ContentService
}

func newPublicHandler(content *services.ContentService) publicHandler {
	logger := log.With().Str("handlerName", "publicHandler").Logger()

	return publicHandler{
		responder: NewResponder(logger),
		logger:    logger,
		content:   content,
	}
}

type profileResponse struct {
	Success bool            `json:"success"`
	Profile *models.Profile `json:"profile"`
}

type projectsResponse struct {
	Success  bool              `json:"success"`
	Projects []*models.Project `json:"projects"`
}

type projectResponse struct {
	Success bool            `json:"success"`
	Project *models.Project `json:"project"`
}

type skillsResponse struct {
	Success bool            `json:"success"`
	Skills  []*models.Skill `json:"skills"`
}

// getProfile returns the portfolio owner's profile
// @Router /api/public [get]
func (h publicHandler) getProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profile, err := h.content.GetProfile(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, profileResponse{Success: true, Profile: profile})
	}
}

// getAllProjects returns every project with its tech stack
// @Router /api/public/projects [get]
func (h publicHandler) getAllProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects, err := h.content.ListProjects(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if projects == nil {
			projects = []*models.Project{}
		}
		h.responder.WriteJSON(w, projectsResponse{Success: true, Projects: projects})
	}
}

// getProject returns a single project by id
// @Router /api/public/projects/{id} [get]
func (h publicHandler) getProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := pathID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project, err := h.content.GetProject(r.Context(), projectID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, projectResponse{Success: true, Project: project})
	}
}

// getAllSkills returns every skill
// @Router /api/public/skills [get]
func (h publicHandler) getAllSkills() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		skills, err := h.content.ListSkills(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if skills == nil {
			skills = []*models.Skill{}
		}
		h.responder.WriteJSON(w, skillsResponse{Success: true, Skills: skills})
	}
}

// pathID parses the {id} route parameter as a positive integer.
func pathID(r *http.Request) (int64, error) {
	idStr := chi.URLParam(r, "id")
	if idStr == "" {
		return 0, errs.NewBadRequestError("missing id")
	}

	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		return 0, errs.NewBadRequestError("invalid id")
	}
	return id, nil
}
