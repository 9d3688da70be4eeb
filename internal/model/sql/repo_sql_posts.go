package sql

import (
	"context"
	"fmt"
	"strings"

	"inkwell/internal/entity"

	"gorm.io/gorm"
)

// CreatePost persists a new post.
func (r *GormRepository) CreatePost(ctx context.Context, post *entity.DbPost) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if post == nil {
		return fmt.Errorf("post is nil")
	}
	return r.db.WithContext(ctx).Create(post).Error
}

// UpdatePost updates an existing post entry.
func (r *GormRepository) UpdatePost(ctx context.Context, id uint, updates entity.PostUpdates) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return fmt.Errorf("invalid post id")
	}
	if updates.IsEmpty() {
		return nil
	}
	return r.db.WithContext(ctx).Model(&entity.DbPost{}).Where("id = ?", id).Updates(updates.ToMap()).Error
}

// GetPostByID loads a post by ID.
func (r *GormRepository) GetPostByID(ctx context.Context, id uint) (*entity.DbPost, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return nil, fmt.Errorf("invalid post id")
	}
	var post entity.DbPost
	if err := r.db.WithContext(ctx).First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// GetPostBySlug loads a post by exact slug match.
func (r *GormRepository) GetPostBySlug(ctx context.Context, slug string) (*entity.DbPost, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	if strings.TrimSpace(slug) == "" {
		return nil, fmt.Errorf("slug is empty")
	}
	var post entity.DbPost
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// ListPosts returns paginated posts, newest first. Published posts are
// ordered by publication time, drafts by creation time.
func (r *GormRepository) ListPosts(ctx context.Context, params *entity.PostQuery) ([]entity.DbPost, *entity.Meta, error) {
	if r == nil || r.db == nil {
		return nil, nil, fmt.Errorf("repository not initialised")
	}

	query := r.db.WithContext(ctx).Model(&entity.DbPost{})
	if params != nil {
		if params.PublishedOnly {
			query = query.Where("published = ?", true)
		}
		if tag := strings.TrimSpace(params.Tag); tag != "" {
			// Tags are stored as a JSON string array; match the quoted element.
			query = query.Where("tags LIKE ?", "%\""+tag+"\"%")
		}
		if keyword := strings.TrimSpace(params.Keyword); keyword != "" {
			kw := "%" + strings.ToLower(keyword) + "%"
			query = query.Where("LOWER(title) LIKE ? OR LOWER(excerpt) LIKE ?", kw, kw)
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, nil, err
	}

	var base *entity.BaseParams
	if params != nil {
		base = &params.BaseParams
	}
	page, pageSize, offset := pageWindow(base)

	order := "created_at DESC"
	if params != nil && params.PublishedOnly {
		order = "published_at DESC"
	}

	var posts []entity.DbPost
	if err := query.Order(order).Offset(offset).Limit(pageSize).Find(&posts).Error; err != nil {
		return nil, nil, err
	}

	meta := r.calculatePagination(total, page, pageSize)
	return posts, meta, nil
}

// DeletePost removes a post by ID.
func (r *GormRepository) DeletePost(ctx context.Context, id uint) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return fmt.Errorf("invalid post id")
	}
	result := r.db.WithContext(ctx).Delete(&entity.DbPost{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
