package api

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	// maxUploadBodyBytes leaves room for multipart framing around the
	// largest accepted file.
	maxUploadBodyBytes = services.MaxResumeBytes + 1<<20
	maxUploadMemory    = 16 << 20
)

type uploadHandler struct {
	responder Responder
	logger    zerolog.Logger
	assets    *services.AssetService
}

func newUploadHandler(assets *services.AssetService) uploadHandler {
	logger := log.With().Str("handlerName", "uploadHandler").Logger()

	return uploadHandler{
		responder: NewResponder(logger),
		logger:    logger,
		assets:    assets,
	}
}

type uploadResponse struct {
	Success bool   `json:"success"`
	URL     string `json:"url"`
	Message string `json:"message"`
}

type uploadFunc func(ctx context.Context, upload services.Upload) (string, error)

// @Router /api/admin/upload [post]
func (h uploadHandler) uploadImage() http.HandlerFunc {
	return h.handle("image", h.assets.UploadImage, "File uploaded successfully")
}

// @Router /api/admin/upload-resume [post]
func (h uploadHandler) uploadResume() http.HandlerFunc {
	return h.handle("resume", h.assets.UploadResume, "Resume uploaded successfully")
}

func (h uploadHandler) handle(field string, upload uploadFunc, message string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxUploadBodyBytes)

		file, err := readFormFile(r, field)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		url, err := upload(r.Context(), file)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, uploadResponse{Success: true, URL: url, Message: message})
	}
}

// readFormFile loads the multipart file stored under field.
func readFormFile(r *http.Request, field string) (services.Upload, error) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		switch {
		case isMaxBytesError(err):
			return services.Upload{}, errs.NewMaxBodySizeExceededError(maxUploadBodyBytes)
		case errors.Is(err, http.ErrNotMultipart), errors.Is(err, http.ErrMissingBoundary):
			return services.Upload{}, errs.NewNoFileUploadedError(field)
		default:
			return services.Upload{}, errs.NewMalformedPayloadError("multipart", err)
		}
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return services.Upload{}, errs.NewNoFileUploadedError(field)
		}
		return services.Upload{}, errs.NewMalformedPayloadError("multipart", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return services.Upload{}, errs.NewMalformedPayloadError("multipart", err)
	}

	return services.Upload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}
