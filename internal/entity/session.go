package entity

import "time"

// DbSession represents one authenticated login. The token is an opaque random
// string; a row is deleted on logout or lazily once its expiry has passed.
type DbSession struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	UserID    uint      `gorm:"column:user_id;index;not null" json:"user_id"`
	Token     string    `gorm:"column:token;type:varchar(255);uniqueIndex;not null" json:"-"`
	ExpiresAt time.Time `gorm:"column:expires_at;not null" json:"expires_at"`
}

// TableName overrides default pluralised name.
func (DbSession) TableName() string {
	return "sessions"
}

// Expired reports whether the session is past its expiry instant.
func (s *DbSession) Expired(now time.Time) bool {
	return s != nil && now.After(s.ExpiresAt)
}
