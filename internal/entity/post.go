package entity

import "time"

// DbPost represents a persisted blog post. The slug is unique among all posts
// and is allocated before insert; the column-level unique index is only a
// backstop against concurrent creation.
type DbPost struct {
	ID          uint        `gorm:"primarykey" json:"id"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
	Slug        string      `gorm:"column:slug;type:varchar(255);uniqueIndex;not null" json:"slug"`
	Title       string      `gorm:"column:title;type:varchar(255);not null" json:"title"`
	Subtitle    string      `gorm:"column:subtitle;type:varchar(255)" json:"subtitle"`
	Content     string      `gorm:"column:content;type:text" json:"content"`
	Excerpt     string      `gorm:"column:excerpt;type:text" json:"excerpt"`
	CoverImage  string      `gorm:"column:cover_image;type:varchar(512)" json:"cover_image"`
	Tags        StringArray `gorm:"column:tags;type:text" json:"tags"`
	Published   bool        `gorm:"column:published;index;not null;default:false" json:"published"`
	AuthorID    uint        `gorm:"column:author_id;index;not null" json:"author_id"`
	PublishedAt *time.Time  `gorm:"column:published_at" json:"published_at,omitempty"`
}

// TableName overrides default pluralised name.
func (DbPost) TableName() string {
	return "posts"
}

// PostQuery supports listing posts with pagination and filters.
type PostQuery struct {
	BaseParams
	Tag           string `json:"tag" form:"tag" query:"tag"`
	Keyword       string `json:"keyword" form:"keyword" query:"keyword"`
	PublishedOnly bool   `json:"-" form:"-"`
}

type PostCreateRequest struct {
	Title      string   `json:"title" binding:"required"`
	Slug       string   `json:"slug"`
	Subtitle   string   `json:"subtitle"`
	Content    string   `json:"content" binding:"required"`
	Excerpt    string   `json:"excerpt"`
	CoverImage string   `json:"cover_image"`
	Tags       []string `json:"tags"`
	Published  bool     `json:"published"`
}

type PostUpdateRequest struct {
	Title      *string   `json:"title,omitempty"`
	Slug       *string   `json:"slug,omitempty"`
	Subtitle   *string   `json:"subtitle,omitempty"`
	Content    *string   `json:"content,omitempty"`
	Excerpt    *string   `json:"excerpt,omitempty"`
	CoverImage *string   `json:"cover_image,omitempty"`
	Tags       *[]string `json:"tags,omitempty"`
}

type PostListResponse struct {
	Posts []DbPost `json:"posts"`
	Meta  *Meta    `json:"meta"`
}

type PostDetailResponse struct {
	Post DbPost `json:"post"`
}

// PreviewTokenResponse carries a share link token for an unpublished draft.
type PreviewTokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
