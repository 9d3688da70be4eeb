package sql

import (
	"context"
	"fmt"

	"inkwell/internal/entity"

	"gorm.io/gorm"
)

// CreateMedia persists a new media record.
func (r *GormRepository) CreateMedia(ctx context.Context, media *entity.DbMedia) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if media == nil {
		return fmt.Errorf("media is nil")
	}
	return r.db.WithContext(ctx).Create(media).Error
}

// GetMediaByID loads a media record by ID.
func (r *GormRepository) GetMediaByID(ctx context.Context, id uint) (*entity.DbMedia, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return nil, fmt.Errorf("invalid media id")
	}
	var media entity.DbMedia
	if err := r.db.WithContext(ctx).First(&media, id).Error; err != nil {
		return nil, err
	}
	return &media, nil
}

// ListMedia returns paginated media records, newest first.
func (r *GormRepository) ListMedia(ctx context.Context, params *entity.MediaQuery) ([]entity.DbMedia, *entity.Meta, error) {
	if r == nil || r.db == nil {
		return nil, nil, fmt.Errorf("repository not initialised")
	}

	query := r.db.WithContext(ctx).Model(&entity.DbMedia{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, nil, err
	}

	var base *entity.BaseParams
	if params != nil {
		base = &params.BaseParams
	}
	page, pageSize, offset := pageWindow(base)

	var media []entity.DbMedia
	if err := query.Order("id DESC").Offset(offset).Limit(pageSize).Find(&media).Error; err != nil {
		return nil, nil, err
	}

	meta := r.calculatePagination(total, page, pageSize)
	return media, meta, nil
}

// DeleteMedia removes a media record by ID.
func (r *GormRepository) DeleteMedia(ctx context.Context, id uint) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return fmt.Errorf("invalid media id")
	}
	result := r.db.WithContext(ctx).Delete(&entity.DbMedia{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CreateContactMessage persists a contact form submission.
func (r *GormRepository) CreateContactMessage(ctx context.Context, msg *entity.DbContactMessage) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if msg == nil {
		return fmt.Errorf("message is nil")
	}
	return r.db.WithContext(ctx).Create(msg).Error
}

// UpdateContactMessage updates an existing contact message.
func (r *GormRepository) UpdateContactMessage(ctx context.Context, id uint, updates entity.ContactUpdates) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return fmt.Errorf("invalid message id")
	}
	if updates.IsEmpty() {
		return nil
	}
	return r.db.WithContext(ctx).Model(&entity.DbContactMessage{}).Where("id = ?", id).Updates(updates.ToMap()).Error
}

// ListContactMessages returns paginated contact messages, newest first.
func (r *GormRepository) ListContactMessages(ctx context.Context, params *entity.ContactQuery) ([]entity.DbContactMessage, *entity.Meta, error) {
	if r == nil || r.db == nil {
		return nil, nil, fmt.Errorf("repository not initialised")
	}

	query := r.db.WithContext(ctx).Model(&entity.DbContactMessage{})
	if params != nil && params.UnreadOnly {
		query = query.Where("is_read = ?", false)
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

	var messages []entity.DbContactMessage
	if err := query.Order("id DESC").Offset(offset).Limit(pageSize).Find(&messages).Error; err != nil {
		return nil, nil, err
	}

	meta := r.calculatePagination(total, page, pageSize)
	return messages, meta, nil
}

// DeleteContactMessage removes a contact message by ID.
func (r *GormRepository) DeleteContactMessage(ctx context.Context, id uint) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return fmt.Errorf("invalid message id")
	}
	result := r.db.WithContext(ctx).Delete(&entity.DbContactMessage{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
