package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"inkwell/internal/entity"
	"inkwell/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// allowedUploadExtensions is the image allowlist for media uploads.
var allowedUploadExtensions = map[string]struct{}{
	"jpg":  {},
	"jpeg": {},
	"png":  {},
	"gif":  {},
	"webp": {},
}

// UploadMedia accepts a multipart image upload, stores it through the
// configured backend, and records it in the media library.
func (h *HTTPHandler) UploadMedia(c *gin.Context) {
	requestUser := CurrentUser(c)
	if requestUser == nil {
		Unauthorized(c, "authentication required")
		return
	}
	if h.repo == nil || h.storage == nil {
		ServiceUnavailable(c, "media storage not available")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		BadRequest(c, ErrCodeInvalidRequest, "file is required")
		return
	}

	maxBytes := h.cfg.MaxUploadSizeMB * 1024 * 1024
	if maxBytes > 0 && fileHeader.Size > maxBytes {
		ErrorResponse(c, http.StatusRequestEntityTooLarge, ErrCodeUploadTooLarge, "file exceeds the upload size limit")
		return
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(fileHeader.Filename), "."))
	if _, ok := allowedUploadExtensions[ext]; !ok {
		BadRequest(c, ErrCodeUploadBadFormat, "unsupported file type")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		logrus.WithError(err).Error("failed to open uploaded file")
		InternalError(c, "failed to read upload")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		logrus.WithError(err).Error("failed to read uploaded file")
		InternalError(c, "failed to read upload")
		return
	}
	if len(data) == 0 {
		BadRequest(c, ErrCodeInvalidRequest, "uploaded file is empty")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	key, err := h.storage.Save(ctx, data, storage.SaveOptions{
		Category:  "media",
		BaseName:  uuid.NewString(),
		Extension: ext,
	})
	if err != nil {
		logrus.WithError(err).Error("failed to store upload")
		InternalError(c, "failed to store upload")
		return
	}

	media := &entity.DbMedia{
		FileName:    filepath.Base(fileHeader.Filename),
		Path:        key,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        int64(len(data)),
		UploaderID:  requestUser.ID,
	}
	if err := h.repo.CreateMedia(ctx, media); err != nil {
		logrus.WithError(err).Error("failed to record upload")
		InternalError(c, "failed to record upload")
		return
	}

	c.JSON(http.StatusCreated, entity.MediaUploadResponse{Media: h.makeMediaItem(media)})
}

// ListMedia returns the media library, newest first.
func (h *HTTPHandler) ListMedia(c *gin.Context) {
	if h.repo == nil {
		ServiceUnavailable(c, "media repository not available")
		return
	}

	var query entity.MediaQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		BadRequest(c, ErrCodeInvalidRequest, "invalid query parameters")
		return
	}
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.PageSize <= 0 {
		query.PageSize = 20
	}
	if query.PageSize > 100 {
		query.PageSize = 100
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	records, meta, err := h.repo.ListMedia(ctx, &query)
	if err != nil {
		logrus.WithError(err).Error("failed to list media")
		InternalError(c, "failed to load media")
		return
	}

	response := entity.MediaListResponse{
		Media: make([]entity.MediaItem, 0, len(records)),
		Meta:  meta,
	}
	for idx := range records {
		response.Media = append(response.Media, h.makeMediaItem(&records[idx]))
	}
	c.JSON(http.StatusOK, response)
}

// DeleteMedia removes a media record and its stored object.
func (h *HTTPHandler) DeleteMedia(c *gin.Context) {
	if h.repo == nil {
		ServiceUnavailable(c, "media repository not available")
		return
	}

	mediaID, ok := pathID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	media, err := h.repo.GetMediaByID(ctx, mediaID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, ErrCodeMediaNotFound, "media not found")
			return
		}
		logrus.WithError(err).WithField("media_id", mediaID).Error("failed to load media")
		InternalError(c, "failed to load media")
		return
	}

	if h.storage != nil {
		if err := h.storage.Delete(ctx, media.Path); err != nil {
			logrus.WithError(err).WithField("media_id", mediaID).Error("failed to delete stored object")
			InternalError(c, "failed to delete media")
			return
		}
	}

	if err := h.repo.DeleteMedia(ctx, media.ID); err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		logrus.WithError(err).WithField("media_id", mediaID).Error("failed to delete media record")
		InternalError(c, "failed to delete media")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *HTTPHandler) makeMediaItem(media *entity.DbMedia) entity.MediaItem {
	if media == nil {
		return entity.MediaItem{}
	}
	return entity.MediaItem{
		DbMedia: *media,
		URL:     h.publicURL(media.Path),
	}
}
