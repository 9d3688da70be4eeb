package model

import (
	"context"

	"inkwell/internal/entity"
)

// Repository defines the persistence operations of the application.
type Repository interface {
	// Users
	CreateUser(ctx context.Context, user *entity.DbUser) error
	UpdateUser(ctx context.Context, id uint, updates entity.UserUpdates) error
	GetUserByID(ctx context.Context, id uint) (*entity.DbUser, error)
	GetUserByIdentifier(ctx context.Context, identifier string) (*entity.DbUser, error)
	CountUsers(ctx context.Context) (int64, error)

	// Sessions
	CreateSession(ctx context.Context, session *entity.DbSession) error
	GetSessionByToken(ctx context.Context, token string) (*entity.DbSession, error)
	DeleteSessionByID(ctx context.Context, id uint) error
	DeleteSessionByToken(ctx context.Context, token string) (bool, error)
	DeleteSessionsByUser(ctx context.Context, userID uint) (int64, error)

	// Posts
	CreatePost(ctx context.Context, post *entity.DbPost) error
	UpdatePost(ctx context.Context, id uint, updates entity.PostUpdates) error
	GetPostByID(ctx context.Context, id uint) (*entity.DbPost, error)
	GetPostBySlug(ctx context.Context, slug string) (*entity.DbPost, error)
	ListPosts(ctx context.Context, params *entity.PostQuery) ([]entity.DbPost, *entity.Meta, error)
	DeletePost(ctx context.Context, id uint) error

	// Media library
	CreateMedia(ctx context.Context, media *entity.DbMedia) error
	GetMediaByID(ctx context.Context, id uint) (*entity.DbMedia, error)
	ListMedia(ctx context.Context, params *entity.MediaQuery) ([]entity.DbMedia, *entity.Meta, error)
	DeleteMedia(ctx context.Context, id uint) error

	// Contact inbox
	CreateContactMessage(ctx context.Context, msg *entity.DbContactMessage) error
	UpdateContactMessage(ctx context.Context, id uint, updates entity.ContactUpdates) error
	ListContactMessages(ctx context.Context, params *entity.ContactQuery) ([]entity.DbContactMessage, *entity.Meta, error)
	DeleteContactMessage(ctx context.Context, id uint) error
}
