package api

import (
	"net/http"

	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type authHandler struct {
	responder Responder
	logger    zerolog.Logger
	auth      *services.AuthService
}

func newAuthHandler(auth *services.AuthService) authHandler {
	logger := log.With().Str("handlerName", "authHandler").Logger()

	return authHandler{
		responder: NewResponder(logger),
		logger:    logger,
		auth:      auth,
	}
}

type loginResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Token   string            `json:"token"`
	Admin   services.Identity `json:"admin"`
}

type verifyResponse struct {
	Success bool              `json:"success"`
	Admin   services.Identity `json:"admin"`
}

// login exchanges admin credentials for a bearer token
// @Router /api/auth/login [post]
func (h authHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := decodeBody(w, r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		result, err := h.auth.Login(r.Context(), req.Username, req.Password)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.logger.Info().Int64("adminId", result.Admin.ID).Msg("admin logged in")
		h.responder.WriteJSON(w, loginResponse{
			Success: true,
			Message: "Login successful",
			Token:   result.Token,
			Admin:   result.Admin,
		})
	}
}

// verify reports the identity of a valid token. It runs behind the auth middleware.
// @Router /api/auth/verify [get]
func (h authHandler) verify() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, err := ctxGetIdentity(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewUnauthorizedError("Invalid token"))
			return
		}

		h.responder.WriteJSON(w, verifyResponse{
			Success: true,
			Admin:   services.Identity{ID: identity.ID, Username: identity.Username},
		})
	}
}
