package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"inkwell/internal/entity"

	"gorm.io/gorm"
)

// PostStore is the subset of the repository the slug allocator needs.
type PostStore interface {
	GetPostBySlug(ctx context.Context, slug string) (*entity.DbPost, error)
}

// slugStripPattern matches every run of characters that may not appear in a
// slug: anything outside ASCII word characters and the CJK-safe ranges
// (CJK Unified Ideographs, Hiragana, Katakana, Hangul syllables).
var slugStripPattern = regexp.MustCompile(`[^a-z0-9_\x{4E00}-\x{9FFF}\x{3040}-\x{30FF}\x{AC00}-\x{D7AF}]+`)

// SlugService derives unique, URL-safe post identifiers from titles.
type SlugService struct {
	store PostStore
}

// NewSlugService creates a slug allocator over the given store.
func NewSlugService(store PostStore) *SlugService {
	return &SlugService{store: store}
}

// NormalizeSlug lowercases the title, collapses every run of disallowed
// characters to a single hyphen, and strips leading and trailing hyphens.
// A title with no usable characters normalises to the empty string.
func NormalizeSlug(title string) string {
	lowered := strings.ToLower(title)
	replaced := slugStripPattern.ReplaceAllString(lowered, "-")
	return strings.Trim(replaced, "-")
}

// GenerateUniqueSlug derives a slug from the title and probes existing posts,
// appending -1, -2, ... until an unused candidate is found. The returned slug
// is free at the instant of the check; the slug column's unique index is the
// backstop against a concurrent insert. An empty result means the title had
// no usable characters and must be rejected by the caller.
func (s *SlugService) GenerateUniqueSlug(ctx context.Context, title string) (string, error) {
	base := NormalizeSlug(title)
	if base == "" {
		return "", nil
	}

	candidate := base
	for i := 1; ; i++ {
		taken, err := s.slugTaken(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}

// IsSlugAvailable reports whether the slug is unused, ignoring the post with
// the given ID. Pass zero to consider every post.
func (s *SlugService) IsSlugAvailable(ctx context.Context, slug string, ignoreID uint) (bool, error) {
	post, err := s.store.GetPostBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return true, nil
		}
		return false, err
	}
	return post.ID == ignoreID, nil
}

func (s *SlugService) slugTaken(ctx context.Context, slug string) (bool, error) {
	_, err := s.store.GetPostBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
