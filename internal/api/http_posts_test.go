package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"inkwell/internal/config"
	"inkwell/internal/entity"
	"inkwell/internal/model"
	"inkwell/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// stubPostRepo overrides just the methods the post handlers touch; anything
// else panics, which makes an unexpected call obvious in a test.
type stubPostRepo struct {
	model.Repository
	createErr error
	updateErr error
	existing  *entity.DbPost
}

func (s *stubPostRepo) GetPostBySlug(context.Context, string) (*entity.DbPost, error) {
	return nil, gorm.ErrRecordNotFound
}

func (s *stubPostRepo) CreatePost(context.Context, *entity.DbPost) error {
	return s.createErr
}

func (s *stubPostRepo) GetPostByID(context.Context, uint) (*entity.DbPost, error) {
	if s.existing == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.existing, nil
}

func (s *stubPostRepo) UpdatePost(context.Context, uint, entity.PostUpdates) error {
	return s.updateErr
}

func newPostRouter(repo *stubPostRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := &HTTPHandler{
		cfg:   config.Config{},
		repo:  repo,
		slugs: service.NewSlugService(repo),
	}
	r := gin.New()
	asAdmin := func(c *gin.Context) {
		c.Set(currentUserContextKey, &RequestUser{ID: 1, Role: entity.UserRoleAdmin})
	}
	r.POST("/posts", asAdmin, h.CreatePost)
	r.PATCH("/posts/:id", asAdmin, h.UpdatePost)
	return r
}

func TestCreatePostSlugRaceConflict(t *testing.T) {
	// The slug probe saw the candidate as free, but a concurrent insert won;
	// the unique-index violation must surface as a 409, not a 500.
	router := newPostRouter(&stubPostRepo{createErr: gorm.ErrDuplicatedKey})

	body := strings.NewReader(`{"title":"My Post","content":"hello"}`)
	req := httptest.NewRequest(http.MethodPost, "/posts", body)
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusConflict {
		t.Errorf("status = %d, want %d", resp.Code, http.StatusConflict)
	}
	if !strings.Contains(resp.Body.String(), ErrCodeSlugTaken) {
		t.Errorf("body = %s, want code %s", resp.Body.String(), ErrCodeSlugTaken)
	}
}

func TestCreatePostSuccess(t *testing.T) {
	router := newPostRouter(&stubPostRepo{})

	body := strings.NewReader(`{"title":"My Post","content":"hello"}`)
	req := httptest.NewRequest(http.MethodPost, "/posts", body)
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d, body %s", resp.Code, http.StatusCreated, resp.Body.String())
	}
	if !strings.Contains(resp.Body.String(), `"slug":"my-post"`) {
		t.Errorf("body = %s, want slug my-post", resp.Body.String())
	}
}

func TestUpdatePostRenameConflict(t *testing.T) {
	repo := &stubPostRepo{
		existing:  &entity.DbPost{ID: 3, Slug: "old-slug", Title: "Old"},
		updateErr: gorm.ErrDuplicatedKey,
	}
	router := newPostRouter(repo)

	body := strings.NewReader(`{"slug":"new-slug"}`)
	req := httptest.NewRequest(http.MethodPatch, "/posts/3", body)
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusConflict {
		t.Errorf("status = %d, want %d", resp.Code, http.StatusConflict)
	}
	if !strings.Contains(resp.Body.String(), ErrCodeSlugTaken) {
		t.Errorf("body = %s, want code %s", resp.Body.String(), ErrCodeSlugTaken)
	}
}
