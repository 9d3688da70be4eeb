package service

import (
	"context"
	"testing"

	"inkwell/internal/entity"

	"gorm.io/gorm"
)

// fakePostStore is an in-memory PostStore keyed by slug.
type fakePostStore struct {
	posts map[string]*entity.DbPost
}

func newFakePostStore(slugs ...string) *fakePostStore {
	store := &fakePostStore{posts: make(map[string]*entity.DbPost)}
	for i, slug := range slugs {
		store.posts[slug] = &entity.DbPost{ID: uint(i + 1), Slug: slug}
	}
	return store
}

func (f *fakePostStore) GetPostBySlug(_ context.Context, slug string) (*entity.DbPost, error) {
	post, ok := f.posts[slug]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return post, nil
}

func TestNormalizeSlug(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Hello, World!", "hello-world"},
		{"Hello World", "hello-world"},
		{"  spaced   out  ", "spaced-out"},
		{"UPPER_case_OK", "upper_case_ok"},
		{"multi---dash!!!title", "multi-dash-title"},
		{"2024 year in review", "2024-year-in-review"},
		{"你好世界", "你好世界"},
		{"日本語のタイトル", "日本語のタイトル"},
		{"한국어 제목", "한국어-제목"},
		{"Mixed 中文 title", "mixed-中文-title"},
		{"!!!", ""},
		{"", ""},
		{"---", ""},
		{"émigré café", "migr-caf"},
	}
	for _, tt := range tests {
		if got := NormalizeSlug(tt.title); got != tt.want {
			t.Errorf("NormalizeSlug(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}
}

func TestGenerateUniqueSlug(t *testing.T) {
	ctx := context.Background()

	t.Run("free slug", func(t *testing.T) {
		svc := NewSlugService(newFakePostStore())
		slug, err := svc.GenerateUniqueSlug(ctx, "My First Post")
		if err != nil {
			t.Fatalf("GenerateUniqueSlug returned error: %v", err)
		}
		if slug != "my-first-post" {
			t.Errorf("slug = %q, want %q", slug, "my-first-post")
		}
	})

	t.Run("taken slug gets suffix", func(t *testing.T) {
		svc := NewSlugService(newFakePostStore("my-first-post"))
		slug, err := svc.GenerateUniqueSlug(ctx, "My First Post")
		if err != nil {
			t.Fatalf("GenerateUniqueSlug returned error: %v", err)
		}
		if slug != "my-first-post-1" {
			t.Errorf("slug = %q, want %q", slug, "my-first-post-1")
		}
	})

	t.Run("suffix increments past collisions", func(t *testing.T) {
		svc := NewSlugService(newFakePostStore("my-first-post", "my-first-post-1", "my-first-post-2"))
		slug, err := svc.GenerateUniqueSlug(ctx, "My First Post")
		if err != nil {
			t.Fatalf("GenerateUniqueSlug returned error: %v", err)
		}
		if slug != "my-first-post-3" {
			t.Errorf("slug = %q, want %q", slug, "my-first-post-3")
		}
	})

	t.Run("unusable title yields empty", func(t *testing.T) {
		svc := NewSlugService(newFakePostStore())
		slug, err := svc.GenerateUniqueSlug(ctx, "!!! ???")
		if err != nil {
			t.Fatalf("GenerateUniqueSlug returned error: %v", err)
		}
		if slug != "" {
			t.Errorf("slug = %q, want empty string", slug)
		}
	})
}

func TestIsSlugAvailable(t *testing.T) {
	ctx := context.Background()
	svc := NewSlugService(newFakePostStore("taken-slug"))

	available, err := svc.IsSlugAvailable(ctx, "free-slug", 0)
	if err != nil {
		t.Fatalf("IsSlugAvailable returned error: %v", err)
	}
	if !available {
		t.Error("free slug reported as taken")
	}

	available, err = svc.IsSlugAvailable(ctx, "taken-slug", 0)
	if err != nil {
		t.Fatalf("IsSlugAvailable returned error: %v", err)
	}
	if available {
		t.Error("taken slug reported as available")
	}

	// The owning post may keep its own slug on update.
	available, err = svc.IsSlugAvailable(ctx, "taken-slug", 1)
	if err != nil {
		t.Fatalf("IsSlugAvailable returned error: %v", err)
	}
	if !available {
		t.Error("slug not available to its own post")
	}
}
