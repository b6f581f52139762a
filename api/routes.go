package api

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rs/zerolog/log"
)

// setupAPIRoutes sets up the public, auth and admin routes
func setupAPIRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.healthHandler.health())

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", handlers.authHandler.login())
			r.With(authMiddleware.authenticate).Get("/verify", handlers.authHandler.verify())
		})

		r.Route("/public", func(r chi.Router) {
			r.Get("/", handlers.publicHandler.getProfile())
			r.Get("/projects", handlers.publicHandler.getAllProjects())
			r.Get("/projects/{id}", handlers.publicHandler.getProject())
			r.Get("/skills", handlers.publicHandler.getAllSkills())
		})

		// Authenticated routes
		r.Route("/admin", func(r chi.Router) {
			r.Use(authMiddleware.authenticate)

			r.Put("/profile", handlers.adminHandler.updateProfile())

			r.Post("/projects", handlers.adminHandler.createProject())
			r.Put("/projects/{id}", handlers.adminHandler.updateProject())
			r.Delete("/projects/{id}", handlers.adminHandler.deleteProject())

			r.Post("/skills", handlers.adminHandler.createSkill())
			r.Put("/skills/{id}", handlers.adminHandler.updateSkill())
			r.Delete("/skills/{id}", handlers.adminHandler.deleteSkill())

			r.Post("/upload", handlers.uploadHandler.uploadImage())
			r.Post("/upload-resume", handlers.uploadHandler.uploadResume())
		})
	})
}

// setupSupportRoutes serves metrics, locally stored uploads and the client build.
func setupSupportRoutes(r chi.Router, uploadDir, staticDir string) {
	responder := NewResponder(log.With().Str("handlerName", "fallback").Logger())

	notFound := func(w http.ResponseWriter, r *http.Request) {
		responder.WriteError(w, errs.NewNotFoundError("Route not found"))
	}
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		responder.WriteError(w, errs.NewApiErr(http.StatusMethodNotAllowed, "Method not allowed"))
	})

	r.Handle("/metrics", promhttp.Handler())

	if uploadDir != "" {
		r.Handle("/uploads/*", http.StripPrefix("/uploads/", noDirListing(http.FileServer(http.Dir(uploadDir)))))
	}

	if staticDir != "" {
		r.NotFound(spaHandler(staticDir, notFound))
	} else {
		r.NotFound(notFound)
	}
}

func noDirListing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "" || strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// spaHandler serves files from dir and answers unknown paths with index.html
// so the client side router can resolve them. API paths never fall back.
func spaHandler(dir string, notFound http.HandlerFunc) http.HandlerFunc {
	fileServer := http.FileServer(http.Dir(dir))
	index := filepath.Join(dir, "index.html")

	return func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/") || (r.Method != http.MethodGet && r.Method != http.MethodHead) {
			notFound(w, r)
			return
		}

		name := filepath.Join(dir, filepath.FromSlash(path.Clean("/"+r.URL.Path)))
		if info, err := os.Stat(name); err != nil || info.IsDir() {
			http.ServeFile(w, r, index)
			return
		}
		fileServer.ServeHTTP(w, r)
	}
}
