package entity

import "time"

// DbMedia represents an uploaded file tracked in the media library. Path is
// the storage-specific key returned by the configured backend.
type DbMedia struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	FileName    string    `gorm:"column:file_name;type:varchar(255);not null" json:"file_name"`
	Path        string    `gorm:"column:path;type:varchar(512);not null" json:"path"`
	ContentType string    `gorm:"column:content_type;type:varchar(100)" json:"content_type"`
	Size        int64     `gorm:"column:size;not null" json:"size"`
	UploaderID  uint      `gorm:"column:uploader_id;index;not null" json:"uploader_id"`
}

// TableName overrides default pluralised name.
func (DbMedia) TableName() string {
	return "media"
}

// MediaQuery supports listing media with pagination.
type MediaQuery struct {
	BaseParams
}

// MediaItem is a media record enriched with its public URL.
type MediaItem struct {
	DbMedia
	URL string `json:"url"`
}

type MediaListResponse struct {
	Media []MediaItem `json:"media"`
	Meta  *Meta       `json:"meta"`
}

type MediaUploadResponse struct {
	Media MediaItem `json:"media"`
}
