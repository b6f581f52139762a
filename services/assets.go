package services

import (
	"context"
	"errors"
	"mime"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/metrics"
	"github.com/rpupo63/portfolio-backend/storage"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	gobreaker "github.com/sony/gobreaker/v2"
)

const (
	MaxImageBytes  int64 = 5 << 20
	MaxResumeBytes int64 = 10 << 20

	imageFolder  = "portfolio/images"
	resumeFolder = "portfolio/resumes"
)

// Upload is a file received from the admin UI.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

type uploadRule struct {
	kind          string
	folder        string
	mode          storage.Mode
	maxBytes      int64
	extensions    map[string]bool
	mimeTypes     map[string]bool
	rejectMessage string
	failMessage   string
}

var (
	imageRule = uploadRule{
		kind:     "image",
		folder:   imageFolder,
		mode:     storage.ModeImage,
		maxBytes: MaxImageBytes,
		extensions: map[string]bool{
			".jpeg": true, ".jpg": true, ".png": true, ".gif": true, ".webp": true,
		},
		mimeTypes: map[string]bool{
			"image/jpeg": true, "image/jpg": true, "image/png": true, "image/gif": true, "image/webp": true,
		},
		rejectMessage: "Only image files are allowed!",
		failMessage:   "Error uploading file",
	}

	resumeRule = uploadRule{
		kind:          "resume",
		folder:        resumeFolder,
		mode:          storage.ModeRaw,
		maxBytes:      MaxResumeBytes,
		extensions:    map[string]bool{".pdf": true},
		mimeTypes:     map[string]bool{"application/pdf": true},
		rejectMessage: "Only PDF files are allowed!",
		failMessage:   "Error uploading resume",
	}
)

type AssetConfig struct {
	// Timeout bounds a single call to the asset host.
	Timeout time.Duration
	// FailureThreshold is the number of consecutive host failures that opens
	// the circuit.
	FailureThreshold uint32
	// CooldownPeriod is how long the circuit stays open before a trial call.
	CooldownPeriod time.Duration
}

// AssetService validates uploads and forwards them to the asset host.
type AssetService struct {
	store   storage.AssetStore
	breaker *gobreaker.CircuitBreaker[string]
	timeout time.Duration
	logger  zerolog.Logger
}

func NewAssetService(store storage.AssetStore, cfg AssetConfig) *AssetService {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.FailureThreshold == 0 {
		cfg.FailureThreshold = 5
	}
	if cfg.CooldownPeriod <= 0 {
		cfg.CooldownPeriod = 30 * time.Second
	}

	logger := log.With().Str("service", "assets").Str("store", store.Name()).Logger()

	breaker := gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
		Name:        "asset-store",
		MaxRequests: 1,
		Timeout:     cfg.CooldownPeriod,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		// A caller that went away says nothing about the host. The per-call
		// deadline still counts.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn().Str("from", from.String()).Str("to", to.String()).Msg("asset store circuit changed state")
			metrics.AssetStoreCircuitState.Set(float64(to))
		},
	})

	return &AssetService{
		store:   store,
		breaker: breaker,
		timeout: cfg.Timeout,
		logger:  logger,
	}
}

// UploadImage accepts jpeg, png, gif and webp images up to 5 MiB.
func (s *AssetService) UploadImage(ctx context.Context, upload Upload) (string, error) {
	return s.upload(ctx, imageRule, upload)
}

// UploadResume accepts PDF documents up to 10 MiB, stored in raw mode.
func (s *AssetService) UploadResume(ctx context.Context, upload Upload) (string, error) {
	return s.upload(ctx, resumeRule, upload)
}

func (s *AssetService) upload(ctx context.Context, rule uploadRule, upload Upload) (string, error) {
	contentType, err := rule.check(upload)
	if err != nil {
		metrics.UploadsTotal.WithLabelValues(rule.kind, "rejected").Inc()
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(upload.Filename))
	obj := storage.Object{
		Key:         path.Join(rule.folder, uuid.NewString()+ext),
		Filename:    filepath.Base(upload.Filename),
		ContentType: contentType,
		Body:        upload.Data,
		Mode:        rule.mode,
	}

	if err := ctx.Err(); err != nil {
		metrics.UploadsTotal.WithLabelValues(rule.kind, "canceled").Inc()
		return "", errs.NewUploadFailedError(rule.failMessage, err)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	url, err := s.breaker.Execute(func() (string, error) {
		return s.store.Put(ctx, obj)
	})
	if errors.Is(err, context.Canceled) {
		metrics.UploadsTotal.WithLabelValues(rule.kind, "canceled").Inc()
		s.logger.Debug().Str("kind", rule.kind).Str("key", obj.Key).Msg("asset upload canceled by caller")
		return "", errs.NewUploadFailedError(rule.failMessage, err)
	}
	if err != nil {
		metrics.UploadsTotal.WithLabelValues(rule.kind, "failed").Inc()
		s.logger.Error().Err(err).
			Str("kind", rule.kind).
			Str("key", obj.Key).
			Dur("elapsed", time.Since(start)).
			Msg("asset upload failed")
		return "", errs.NewUploadFailedError(rule.failMessage, err)
	}

	metrics.UploadsTotal.WithLabelValues(rule.kind, "stored").Inc()
	metrics.UploadBytes.WithLabelValues(rule.kind).Observe(float64(len(upload.Data)))
	s.logger.Info().Str("kind", rule.kind).Str("key", obj.Key).Int("bytes", len(upload.Data)).Msg("asset uploaded")
	return url, nil
}

// check validates size, extension and MIME type and returns the bare MIME type.
func (r uploadRule) check(upload Upload) (string, error) {
	if len(upload.Data) == 0 {
		return "", errs.NewNoFileUploadedError(r.kind)
	}
	if int64(len(upload.Data)) > r.maxBytes {
		return "", errs.NewFileTooLargeError(r.maxBytes)
	}

	ext := strings.ToLower(filepath.Ext(upload.Filename))
	mediaType, _, err := mime.ParseMediaType(upload.ContentType)
	if err != nil {
		mediaType = ""
	}
	mediaType = strings.ToLower(mediaType)

	if !r.extensions[ext] || !r.mimeTypes[mediaType] {
		return "", errs.NewUnsupportedFileTypeError(r.rejectMessage)
	}
	return mediaType, nil
}
