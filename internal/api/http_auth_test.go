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

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// stubUserRepo covers the registration path only.
type stubUserRepo struct {
	model.Repository
	userCount int64
	createErr error
}

func (s *stubUserRepo) CountUsers(context.Context) (int64, error) {
	return s.userCount, nil
}

func (s *stubUserRepo) CreateUser(context.Context, *entity.DbUser) error {
	return s.createErr
}

func newRegisterRouter(repo *stubUserRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := &HTTPHandler{cfg: config.Config{}, repo: repo}
	r := gin.New()
	r.POST("/register", h.Register)
	return r
}

func postRegister(router *gin.Engine) *httptest.ResponseRecorder {
	body := strings.NewReader(`{"email":"admin@example.com","username":"admin","password":"longpassword"}`)
	req := httptest.NewRequest(http.MethodPost, "/register", body)
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestRegisterClosedAfterFirstUser(t *testing.T) {
	router := newRegisterRouter(&stubUserRepo{userCount: 1})

	resp := postRegister(router)
	if resp.Code != http.StatusForbidden {
		t.Errorf("status = %d, want %d", resp.Code, http.StatusForbidden)
	}
	if !strings.Contains(resp.Body.String(), ErrCodeRegistrationClosed) {
		t.Errorf("body = %s, want code %s", resp.Body.String(), ErrCodeRegistrationClosed)
	}
}

func TestRegisterDuplicateAccountConflict(t *testing.T) {
	// Two concurrent first-boot registrations: the count said zero but the
	// unique index rejected the second insert.
	router := newRegisterRouter(&stubUserRepo{userCount: 0, createErr: gorm.ErrDuplicatedKey})

	resp := postRegister(router)
	if resp.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", resp.Code, http.StatusBadRequest)
	}
	if !strings.Contains(resp.Body.String(), ErrCodeEmailExists) {
		t.Errorf("body = %s, want code %s", resp.Body.String(), ErrCodeEmailExists)
	}
}
