package entity

// UserUpdates holds optional user fields for a partial update.
type UserUpdates struct {
	DisplayName  *string
	Role         *string
	PasswordHash *string
	IsActive     *bool
}

// ToMap converts set fields to a GORM updates map.
func (u UserUpdates) ToMap() map[string]interface{} {
	updates := make(map[string]interface{})
	if u.DisplayName != nil {
		updates["display_name"] = *u.DisplayName
	}
	if u.Role != nil {
		updates["role"] = *u.Role
	}
	if u.PasswordHash != nil {
		updates["password_hash"] = *u.PasswordHash
	}
	if u.IsActive != nil {
		updates["is_active"] = *u.IsActive
	}
	return updates
}

// IsEmpty reports whether no fields are set.
func (u UserUpdates) IsEmpty() bool {
	return len(u.ToMap()) == 0
}

// PostUpdates holds optional post fields for a partial update.
type PostUpdates struct {
	Title       *string
	Slug        *string
	Subtitle    *string
	Content     *string
	Excerpt     *string
	CoverImage  *string
	Tags        *StringArray
	Published   *bool
	PublishedAt NullableTime
}

// NullableTime distinguishes "leave unchanged" from "set to NULL".
type NullableTime struct {
	Set   bool
	Value interface{}
}

// ToMap converts set fields to a GORM updates map.
func (u PostUpdates) ToMap() map[string]interface{} {
	updates := make(map[string]interface{})
	if u.Title != nil {
		updates["title"] = *u.Title
	}
	if u.Slug != nil {
		updates["slug"] = *u.Slug
	}
	if u.Subtitle != nil {
		updates["subtitle"] = *u.Subtitle
	}
	if u.Content != nil {
		updates["content"] = *u.Content
	}
	if u.Excerpt != nil {
		updates["excerpt"] = *u.Excerpt
	}
	if u.CoverImage != nil {
		updates["cover_image"] = *u.CoverImage
	}
	if u.Tags != nil {
		updates["tags"] = *u.Tags
	}
	if u.Published != nil {
		updates["published"] = *u.Published
	}
	if u.PublishedAt.Set {
		updates["published_at"] = u.PublishedAt.Value
	}
	return updates
}

// IsEmpty reports whether no fields are set.
func (u PostUpdates) IsEmpty() bool {
	return len(u.ToMap()) == 0
}

// ContactUpdates holds optional contact-message fields for a partial update.
type ContactUpdates struct {
	Read *bool
}

// ToMap converts set fields to a GORM updates map.
func (u ContactUpdates) ToMap() map[string]interface{} {
	updates := make(map[string]interface{})
	if u.Read != nil {
		updates["is_read"] = *u.Read
	}
	return updates
}

// IsEmpty reports whether no fields are set.
func (u ContactUpdates) IsEmpty() bool {
	return len(u.ToMap()) == 0
}
