package model

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"inkwell/internal/config"
	"inkwell/internal/entity"

	"gorm.io/gorm"
)

func newTestRepository(t *testing.T) Repository {
	t.Helper()
	cfg := &config.Config{
		DBType: DBTypeSQLite,
		DBPath: filepath.Join(t.TempDir(), "test.db"),
	}
	repo, err := InitRepository(cfg)
	if err != nil {
		t.Fatalf("InitRepository returned error: %v", err)
	}
	return repo
}

func TestCreatePostDuplicateSlug(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	first := &entity.DbPost{Slug: "dup", Title: "First", AuthorID: 1}
	if err := repo.CreatePost(ctx, first); err != nil {
		t.Fatalf("CreatePost returned error: %v", err)
	}

	second := &entity.DbPost{Slug: "dup", Title: "Second", AuthorID: 1}
	err := repo.CreatePost(ctx, second)
	if err == nil {
		t.Fatal("second CreatePost with same slug succeeded")
	}
	// Handlers map this sentinel to 409; the driver error must be translated.
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Errorf("unique violation is %v, want gorm.ErrDuplicatedKey", err)
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	first := &entity.DbUser{
		Email:        "admin@example.com",
		Username:     "admin",
		PasswordHash: "hash",
		Role:         entity.UserRoleAdmin,
		IsActive:     true,
	}
	if err := repo.CreateUser(ctx, first); err != nil {
		t.Fatalf("CreateUser returned error: %v", err)
	}

	second := &entity.DbUser{
		Email:        "admin@example.com",
		Username:     "other",
		PasswordHash: "hash",
		Role:         entity.UserRoleAdmin,
		IsActive:     true,
	}
	err := repo.CreateUser(ctx, second)
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Errorf("duplicate email error = %v, want gorm.ErrDuplicatedKey", err)
	}
}

func TestListContactMessagesUnreadOnly(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	for _, msg := range []*entity.DbContactMessage{
		{Name: "a", Email: "a@example.com", Body: "first"},
		{Name: "b", Email: "b@example.com", Body: "second"},
	} {
		if err := repo.CreateContactMessage(ctx, msg); err != nil {
			t.Fatalf("CreateContactMessage returned error: %v", err)
		}
	}

	read := true
	if err := repo.UpdateContactMessage(ctx, 1, entity.ContactUpdates{Read: &read}); err != nil {
		t.Fatalf("UpdateContactMessage returned error: %v", err)
	}

	messages, meta, err := repo.ListContactMessages(ctx, &entity.ContactQuery{UnreadOnly: true})
	if err != nil {
		t.Fatalf("ListContactMessages returned error: %v", err)
	}
	if meta.Total != 1 {
		t.Errorf("meta.Total = %d, want 1", meta.Total)
	}
	if len(messages) != 1 || messages[0].Body != "second" {
		t.Errorf("unread messages = %+v, want only the second", messages)
	}
	if messages[0].Read {
		t.Error("unread listing returned a read message")
	}
}
