package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/rpupo63/portfolio-backend/config"
	"github.com/rpupo63/portfolio-backend/services"
	"github.com/rs/zerolog/log"
)

// Dependencies are the services the routes delegate to. DB is optional and
// only used by the health check.
type Dependencies struct {
	Auth    *services.AuthService
	Content *services.ContentService
	Assets  *services.AssetService
	DB      Pinger
}

type Server struct {
	*http.Server
	startupTime time.Time
}

func NewServer(settings config.Settings, deps Dependencies) (Server, error) {
	if deps.Auth == nil || deps.Content == nil || deps.Assets == nil {
		return Server{}, errors.New("auth, content and asset services are required")
	}

	address := fmt.Sprintf("0.0.0.0:%s", settings.Port) // Bind to 0.0.0.0 for external access

	// Capture startup time
	startupTime := time.Now()

	opts := []func(*router){
		withStartupTime(startupTime),
		withAcceptedOrigins(settings.AcceptedOrigins),
		withStaticDir(settings.StaticDir),
	}
	if settings.Assets.Store == "local" {
		opts = append(opts, withUploadDir(settings.Assets.UploadDir))
	}

	server := &http.Server{
		Addr:         address,
		Handler:      newRouter(deps, opts...),
		ReadTimeout:  settings.ReadTimeout,  // Timeout for reading the entire request
		WriteTimeout: settings.WriteTimeout, // Timeout for writing the response
		IdleTimeout:  settings.IdleTimeout,  // Timeout for idle connections
	}

	return Server{server, startupTime}, nil
}

type router struct {
	startupTime     time.Time
	acceptedOrigins []string
	uploadDir       string
	staticDir       string
}

func withStartupTime(startupTime time.Time) func(*router) {
	return func(r *router) {
		r.startupTime = startupTime
	}
}

func withAcceptedOrigins(origins []string) func(*router) {
	return func(r *router) {
		r.acceptedOrigins = origins
	}
}

func withUploadDir(dir string) func(*router) {
	return func(r *router) {
		r.uploadDir = dir
	}
}

func withStaticDir(dir string) func(*router) {
	return func(r *router) {
		r.staticDir = dir
	}
}

func newRouter(deps Dependencies, opts ...func(*router)) *chi.Mux {
	router := router{
		startupTime:     time.Now(),
		acceptedOrigins: []string{"*"},
	}
	for _, opt := range opts {
		opt(&router)
	}

	chiRouter := chi.NewRouter()
	chiRouter.Use(LogInternalServerErrors)
	chiRouter.Use(MetricsMiddleware)
	chiRouter.Use(corsHandler(router.acceptedOrigins))
	chiRouter.Use(RequestLoggingMiddleware)

	handlers := initializeHandlers(deps, router.startupTime)
	authMiddleware := newAuthMiddleware(deps.Auth)

	setupAPIRoutes(chiRouter, handlers, authMiddleware)
	setupSupportRoutes(chiRouter, router.uploadDir, router.staticDir)

	return chiRouter
}

func corsHandler(origins []string) func(http.Handler) http.Handler {
	allowAll := len(origins) == 0
	for _, origin := range origins {
		if origin == "*" {
			allowAll = true
		}
	}
	if allowAll {
		origins = []string{"*"}
	}

	return cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: !allowAll,
		MaxAge:           300,
	})
}

// Start serves until the server is shut down. A graceful shutdown is not an error.
func (s Server) Start() error {
	log.Info().Msgf("Server started on: %s", s.Addr)
	if err := s.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s Server) ShutdownGracefully(timeout time.Duration) {
	log.Info().Msg("Gracefully shutting down...")

	gracefulCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(gracefulCtx); err != nil {
		log.Error().Msgf("Error shutting down the server: %v", err)
	} else {
		log.Info().Msg("HttpServer gracefully shut down")
	}
}

// Uptime is the time since the server was created.
func (s Server) Uptime() time.Duration {
	return time.Since(s.startupTime)
}
