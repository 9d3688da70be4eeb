package entity

import "time"

// DbContactMessage is one submission from the public contact form.
type DbContactMessage struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Name      string    `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Email     string    `gorm:"column:email;type:varchar(255);not null" json:"email"`
	Subject   string    `gorm:"column:subject;type:varchar(255)" json:"subject"`
	Body      string    `gorm:"column:body;type:text;not null" json:"body"`
	Read      bool      `gorm:"column:is_read;index;not null;default:false" json:"read"`
}

// TableName overrides default pluralised name.
func (DbContactMessage) TableName() string {
	return "contact_messages"
}

// ContactQuery supports listing contact messages with pagination.
type ContactQuery struct {
	BaseParams
	UnreadOnly bool `json:"unread_only" form:"unread_only" query:"unread_only"`
}

type ContactSubmitRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject"`
	Body    string `json:"body" binding:"required"`
}

type ContactListResponse struct {
	Messages []DbContactMessage `json:"messages"`
	Meta     *Meta              `json:"meta"`
}
