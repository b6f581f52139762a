package api

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Pinger is satisfied by database.Database.
type Pinger interface {
	Ping(ctx context.Context) error
}

type healthHandler struct {
	responder   Responder
	logger      zerolog.Logger
	db          Pinger
	startupTime time.Time
}

func newHealthHandler(db Pinger, startupTime time.Time) healthHandler {
	logger := log.With().Str("handlerName", "healthHandler").Logger()

	return healthHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		db:          db,
		startupTime: startupTime,
	}
}

type healthResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	Uptime   string `json:"uptime"`
	Database string `json:"database,omitempty"`
}

// @Router /api/health [get]
func (h healthHandler) health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := healthResponse{
			Success: true,
			Message: "Server is running",
			Uptime:  time.Since(h.startupTime).Round(time.Second).String(),
		}

		if h.db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()

			resp.Database = "ok"
			if err := h.db.Ping(ctx); err != nil {
				h.logger.Warn().Err(err).Msg("database ping failed")
				resp.Database = "unavailable"
			}
		}

		h.responder.WriteJSON(w, resp)
	}
}
