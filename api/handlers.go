package api

import (
	"time"
)

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	authHandler   authHandler
	publicHandler publicHandler
	adminHandler  adminHandler
	uploadHandler uploadHandler
	healthHandler healthHandler
}

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(deps Dependencies, startupTime time.Time) *routeHandlers {
	return &routeHandlers{
		authHandler:   newAuthHandler(deps.Auth),
		publicHandler: newPublicHandler(deps.Content),
		adminHandler:  newAdminHandler(deps.Content),
		uploadHandler: newUploadHandler(deps.Assets),
		healthHandler: newHealthHandler(deps.DB, startupTime),
	}
}
