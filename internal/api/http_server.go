package api

import (
	"strings"
	"time"

	"inkwell/internal/auth"
	"inkwell/internal/config"
	"inkwell/internal/model"
	"inkwell/internal/service"
	"inkwell/internal/storage"
)

// HTTPHandler serves the public blog API and the admin surface.
type HTTPHandler struct {
	cfg               config.Config
	repo              model.Repository
	storage           storage.Storage
	storagePublicBase string

	sessions *service.SessionService
	slugs    *service.SlugService
	preview  *auth.PreviewManager
}

// NewHTTPHandler creates the HTTP handler and wires its services.
func NewHTTPHandler(cfg config.Config, repo model.Repository, store storage.Storage) (*HTTPHandler, error) {
	previewTTL := time.Duration(cfg.PreviewTTLMinutes) * time.Minute
	previewManager, err := auth.NewPreviewManager(cfg.PreviewSecret, "inkwell", previewTTL)
	if err != nil {
		return nil, err
	}

	return &HTTPHandler{
		cfg:               cfg,
		repo:              repo,
		storage:           store,
		storagePublicBase: normalisePublicBase(cfg.StoragePublicBaseURL),
		sessions:          service.NewSessionService(repo),
		slugs:             service.NewSlugService(repo),
		preview:           previewManager,
	}, nil
}

// normalisePublicBase normalises the public URL base path.
func normalisePublicBase(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		trimmed = "/files"
	}
	if strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://") {
		return strings.TrimRight(trimmed, "/")
	}
	if !strings.HasPrefix(trimmed, "/") {
		trimmed = "/" + trimmed
	}
	return strings.TrimRight(trimmed, "/")
}
