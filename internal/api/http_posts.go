package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"inkwell/internal/entity"
	"inkwell/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ListPublishedPosts serves the public blog index: published posts only,
// newest first, with optional tag and keyword filters.
func (h *HTTPHandler) ListPublishedPosts(c *gin.Context) {
	h.listPosts(c, true)
}

// ListAllPosts serves the admin dashboard index including drafts.
func (h *HTTPHandler) ListAllPosts(c *gin.Context) {
	h.listPosts(c, false)
}

func (h *HTTPHandler) listPosts(c *gin.Context, publishedOnly bool) {
	if h.repo == nil {
		ServiceUnavailable(c, "post repository not available")
		return
	}

	var query entity.PostQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		BadRequest(c, ErrCodeInvalidRequest, "invalid query parameters")
		return
	}
	query.PublishedOnly = publishedOnly
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

	posts, meta, err := h.repo.ListPosts(ctx, &query)
	if err != nil {
		logrus.WithError(err).Error("failed to list posts")
		InternalError(c, "failed to load posts")
		return
	}

	c.JSON(http.StatusOK, entity.PostListResponse{Posts: posts, Meta: meta})
}

// GetPostBySlug serves one public post. Drafts are only visible with a valid
// preview token; an invalid or missing token yields the same 404 as an
// unknown slug.
func (h *HTTPHandler) GetPostBySlug(c *gin.Context) {
	if h.repo == nil {
		ServiceUnavailable(c, "post repository not available")
		return
	}

	slug := strings.TrimSpace(c.Param("slug"))
	if slug == "" {
		BadRequest(c, ErrCodeInvalidRequest, "slug is required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	post, err := h.repo.GetPostBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, ErrCodePostNotFound, "post not found")
			return
		}
		logrus.WithError(err).WithField("slug", slug).Error("failed to load post")
		InternalError(c, "failed to load post")
		return
	}

	if !post.Published && !h.previewAllowed(c, post.ID) {
		NotFound(c, ErrCodePostNotFound, "post not found")
		return
	}

	c.JSON(http.StatusOK, entity.PostDetailResponse{Post: *post})
}

// previewAllowed reports whether the request carries a preview token granting
// access to the given draft.
func (h *HTTPHandler) previewAllowed(c *gin.Context, postID uint) bool {
	token := strings.TrimSpace(c.Query("preview"))
	if token == "" {
		return false
	}
	grantedID, err := h.preview.ParseToken(token)
	if err != nil {
		return false
	}
	return grantedID == postID
}

// CreatePost creates a post. The slug is allocated from the title unless the
// caller supplied one explicitly.
func (h *HTTPHandler) CreatePost(c *gin.Context) {
	requestUser := CurrentUser(c)
	if requestUser == nil {
		Unauthorized(c, "authentication required")
		return
	}
	if h.repo == nil {
		ServiceUnavailable(c, "post repository not available")
		return
	}

	var req entity.PostCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		MissingField(c, "title")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	slug, ok := h.resolveSlug(c, ctx, req.Slug, title, 0)
	if !ok {
		return
	}

	post := &entity.DbPost{
		Slug:       slug,
		Title:      title,
		Subtitle:   strings.TrimSpace(req.Subtitle),
		Content:    req.Content,
		Excerpt:    strings.TrimSpace(req.Excerpt),
		CoverImage: strings.TrimSpace(req.CoverImage),
		Tags:       entity.StringArray(req.Tags),
		Published:  req.Published,
		AuthorID:   requestUser.ID,
	}
	if req.Published {
		now := time.Now()
		post.PublishedAt = &now
	}

	if err := h.repo.CreatePost(ctx, post); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// The unique index caught a concurrent allocation of the same slug.
			Conflict(c, ErrCodeSlugTaken, "slug already in use")
			return
		}
		logrus.WithError(err).Error("failed to create post")
		InternalError(c, "failed to create post")
		return
	}

	c.JSON(http.StatusCreated, entity.PostDetailResponse{Post: *post})
}

// resolveSlug returns the slug for a create or rename: the explicit one
// (normalised and checked for uniqueness) when supplied, otherwise a fresh
// allocation from the title. On failure it writes the error response and
// returns ok=false.
func (h *HTTPHandler) resolveSlug(c *gin.Context, ctx context.Context, explicit, title string, ignoreID uint) (string, bool) {
	if trimmed := strings.TrimSpace(explicit); trimmed != "" {
		normalized := service.NormalizeSlug(trimmed)
		if normalized == "" {
			BadRequest(c, ErrCodeEmptySlug, "slug has no usable characters")
			return "", false
		}
		available, err := h.slugs.IsSlugAvailable(ctx, normalized, ignoreID)
		if err != nil {
			logrus.WithError(err).Error("failed to check slug availability")
			InternalError(c, "failed to allocate slug")
			return "", false
		}
		if !available {
			Conflict(c, ErrCodeSlugTaken, "slug already in use")
			return "", false
		}
		return normalized, true
	}

	slug, err := h.slugs.GenerateUniqueSlug(ctx, title)
	if err != nil {
		logrus.WithError(err).Error("failed to allocate slug")
		InternalError(c, "failed to allocate slug")
		return "", false
	}
	if slug == "" {
		BadRequest(c, ErrCodeEmptySlug, "title has no usable characters for a slug")
		return "", false
	}
	return slug, true
}

// UpdatePost applies a partial update. The slug only changes when the caller
// supplies one explicitly; it is then re-checked for uniqueness.
func (h *HTTPHandler) UpdatePost(c *gin.Context) {
	if h.repo == nil {
		ServiceUnavailable(c, "post repository not available")
		return
	}

	postID, ok := pathID(c)
	if !ok {
		return
	}

	var req entity.PostUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	post, err := h.repo.GetPostByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, ErrCodePostNotFound, "post not found")
			return
		}
		logrus.WithError(err).WithField("post_id", postID).Error("failed to load post")
		InternalError(c, "failed to load post")
		return
	}

	updates := entity.PostUpdates{}
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			MissingField(c, "title")
			return
		}
		updates.Title = &title
	}
	if req.Slug != nil {
		slug, ok := h.resolveSlug(c, ctx, *req.Slug, "", post.ID)
		if !ok {
			return
		}
		updates.Slug = &slug
	}
	if req.Subtitle != nil {
		subtitle := strings.TrimSpace(*req.Subtitle)
		updates.Subtitle = &subtitle
	}
	if req.Content != nil {
		updates.Content = req.Content
	}
	if req.Excerpt != nil {
		excerpt := strings.TrimSpace(*req.Excerpt)
		updates.Excerpt = &excerpt
	}
	if req.CoverImage != nil {
		cover := strings.TrimSpace(*req.CoverImage)
		updates.CoverImage = &cover
	}
	if req.Tags != nil {
		tags := entity.StringArray(*req.Tags)
		updates.Tags = &tags
	}

	if updates.IsEmpty() {
		BadRequest(c, ErrCodeInvalidRequest, "nothing to update")
		return
	}

	if err := h.repo.UpdatePost(ctx, post.ID, updates); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			Conflict(c, ErrCodeSlugTaken, "slug already in use")
			return
		}
		logrus.WithError(err).WithField("post_id", postID).Error("failed to update post")
		InternalError(c, "failed to update post")
		return
	}

	updated, err := h.repo.GetPostByID(ctx, post.ID)
	if err != nil {
		logrus.WithError(err).WithField("post_id", postID).Error("failed to reload post")
		InternalError(c, "failed to load post")
		return
	}
	c.JSON(http.StatusOK, entity.PostDetailResponse{Post: *updated})
}

// PublishPost marks a post published, stamping published_at on the first
// transition only.
func (h *HTTPHandler) PublishPost(c *gin.Context) {
	h.setPublished(c, true)
}

// UnpublishPost reverts a post to draft. The published_at stamp is kept so a
// republish preserves the original publication date.
func (h *HTTPHandler) UnpublishPost(c *gin.Context) {
	h.setPublished(c, false)
}

func (h *HTTPHandler) setPublished(c *gin.Context, published bool) {
	if h.repo == nil {
		ServiceUnavailable(c, "post repository not available")
		return
	}

	postID, ok := pathID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	post, err := h.repo.GetPostByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, ErrCodePostNotFound, "post not found")
			return
		}
		logrus.WithError(err).WithField("post_id", postID).Error("failed to load post")
		InternalError(c, "failed to load post")
		return
	}

	updates := entity.PostUpdates{Published: &published}
	if published && post.PublishedAt == nil {
		now := time.Now()
		updates.PublishedAt = entity.NullableTime{Set: true, Value: now}
	}

	if err := h.repo.UpdatePost(ctx, post.ID, updates); err != nil {
		logrus.WithError(err).WithField("post_id", postID).Error("failed to change publication state")
		InternalError(c, "failed to update post")
		return
	}

	updated, err := h.repo.GetPostByID(ctx, post.ID)
	if err != nil {
		logrus.WithError(err).WithField("post_id", postID).Error("failed to reload post")
		InternalError(c, "failed to load post")
		return
	}
	c.JSON(http.StatusOK, entity.PostDetailResponse{Post: *updated})
}

// DeletePost removes a post permanently.
func (h *HTTPHandler) DeletePost(c *gin.Context) {
	if h.repo == nil {
		ServiceUnavailable(c, "post repository not available")
		return
	}

	postID, ok := pathID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.repo.DeletePost(ctx, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, ErrCodePostNotFound, "post not found")
			return
		}
		logrus.WithError(err).WithField("post_id", postID).Error("failed to delete post")
		InternalError(c, "failed to delete post")
		return
	}
	c.Status(http.StatusNoContent)
}

// IssuePreviewToken returns a share-link token for an unpublished post.
func (h *HTTPHandler) IssuePreviewToken(c *gin.Context) {
	if h.repo == nil {
		ServiceUnavailable(c, "post repository not available")
		return
	}

	postID, ok := pathID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	post, err := h.repo.GetPostByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, ErrCodePostNotFound, "post not found")
			return
		}
		logrus.WithError(err).WithField("post_id", postID).Error("failed to load post")
		InternalError(c, "failed to load post")
		return
	}

	token, expiresAt, err := h.preview.IssueToken(post.ID)
	if err != nil {
		logrus.WithError(err).WithField("post_id", postID).Error("failed to issue preview token")
		InternalError(c, "failed to issue preview token")
		return
	}
	c.JSON(http.StatusOK, entity.PreviewTokenResponse{Token: token, ExpiresAt: expiresAt})
}

// pathID parses the :id path parameter, writing a 400 on failure.
func pathID(c *gin.Context) (uint, bool) {
	rawID := strings.TrimSpace(c.Param("id"))
	id, err := strconv.ParseUint(rawID, 10, 64)
	if err != nil || id == 0 {
		BadRequest(c, ErrCodeInvalidRequest, "invalid id")
		return 0, false
	}
	return uint(id), true
}
