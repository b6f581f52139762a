package api

import (
	"net/http"

	"github.com/rpupo63/portfolio-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// adminHandler serves the content writes. Every route runs behind the auth
// middleware.
type adminHandler struct {
	responder Responder
	logger    zerolog.Logger
	content   *services.ContentService
}

func newAdminHandler(content *services.ContentService) adminHandler {
	logger := log.With().Str("handlerName", "adminHandler").Logger()

	return adminHandler{
		responder: NewResponder(logger),
		logger:    logger,
		content:   content,
	}
}

type projectCreatedResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	ProjectID int64  `json:"projectId"`
}

type skillCreatedResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	SkillID int64  `json:"skillId"`
}

// @Router /api/admin/profile [put]
func (h adminHandler) updateProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req services.ProfileInput
		if err := decodeBody(w, r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.content.UpsertProfile(r.Context(), req); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteMessage(w, "Profile updated successfully")
	}
}

// @Router /api/admin/projects [post]
func (h adminHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req projectRequest
		if err := decodeBody(w, r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		projectID, err := h.content.CreateProject(r.Context(), req.input())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, projectCreatedResponse{
			Success:   true,
			Message:   "Project created successfully",
			ProjectID: projectID,
		})
	}
}

// @Router /api/admin/projects/{id} [put]
func (h adminHandler) updateProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := pathID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var req projectRequest
		if err := decodeBody(w, r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.content.UpdateProject(r.Context(), projectID, req.input()); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteMessage(w, "Project updated successfully")
	}
}

// @Router /api/admin/projects/{id} [delete]
func (h adminHandler) deleteProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := pathID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.content.DeleteProject(r.Context(), projectID); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.logger.Info().Int64("projectId", projectID).Msg("project deleted")
		h.responder.WriteMessage(w, "Project deleted successfully")
	}
}

// @Router /api/admin/skills [post]
func (h adminHandler) createSkill() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req skillRequest
		if err := decodeBody(w, r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		skillID, err := h.content.CreateSkill(r.Context(), req.input())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, skillCreatedResponse{
			Success: true,
			Message: "Skill added successfully",
			SkillID: skillID,
		})
	}
}

// @Router /api/admin/skills/{id} [put]
func (h adminHandler) updateSkill() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		skillID, err := pathID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var req skillRequest
		if err := decodeBody(w, r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.content.UpdateSkill(r.Context(), skillID, req.input()); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteMessage(w, "Skill updated successfully")
	}
}

// @Router /api/admin/skills/{id} [delete]
func (h adminHandler) deleteSkill() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		skillID, err := pathID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.content.DeleteSkill(r.Context(), skillID); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteMessage(w, "Skill deleted successfully")
	}
}
