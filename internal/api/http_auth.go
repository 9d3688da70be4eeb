package api

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"inkwell/internal/auth"
	"inkwell/internal/entity"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Register creates the operator account. It is only open while the users
// table is empty; afterwards registration is closed for good.
func (h *HTTPHandler) Register(c *gin.Context) {
	if h.repo == nil {
		ServiceUnavailable(c, "user repository not available")
		return
	}

	var req entity.AuthRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	count, err := h.repo.CountUsers(ctx)
	if err != nil {
		logrus.WithError(err).Error("failed to count users during registration")
		InternalError(c, "failed to process registration")
		return
	}

	if count > 0 {
		ErrorResponse(c, http.StatusForbidden, ErrCodeRegistrationClosed, "registration disabled")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	username := strings.TrimSpace(req.Username)
	password := strings.TrimSpace(req.Password)
	if email == "" || username == "" || password == "" {
		BadRequest(c, ErrCodeInvalidRequest, "email, username, and password are required")
		return
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		logrus.WithError(err).Error("failed to hash password")
		InternalError(c, "failed to register user")
		return
	}

	user := &entity.DbUser{
		Email:        email,
		Username:     username,
		PasswordHash: hash,
		DisplayName:  strings.TrimSpace(req.DisplayName),
		Role:         entity.UserRoleAdmin,
		IsActive:     true,
	}

	if err := h.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			BadRequest(c, ErrCodeEmailExists, "email or username already registered")
			return
		}
		logrus.WithError(err).Error("failed to create initial user")
		InternalError(c, "failed to register user")
		return
	}

	result, err := h.sessions.Login(ctx, user.Email, password)
	if err != nil || result == nil {
		logrus.WithError(err).Error("failed to create session for new user")
		InternalError(c, "failed to create session")
		return
	}

	h.setAuthCookie(c, result.Token, h.sessions.TTL())
	c.JSON(http.StatusCreated, entity.AuthResponse{
		User:      makeUserSummary(result.User),
		ExpiresAt: result.ExpiresAt,
	})
}

// Login verifies credentials and installs the session cookie. Bad credentials
// are a 401, never a 500.
func (h *HTTPHandler) Login(c *gin.Context) {
	if h.repo == nil {
		ServiceUnavailable(c, "user repository not available")
		return
	}

	var req entity.AuthLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	identifier := strings.TrimSpace(req.Identifier)
	password := strings.TrimSpace(req.Password)
	if identifier == "" || password == "" {
		BadRequest(c, ErrCodeInvalidRequest, "identifier and password are required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	result, err := h.sessions.Login(ctx, identifier, password)
	if err != nil {
		logrus.WithError(err).Error("login failed")
		InternalError(c, "failed to process login")
		return
	}
	if result == nil {
		logrus.WithField("identifier", identifier).Warn("login attempt rejected")
		ErrorResponse(c, http.StatusUnauthorized, ErrCodeInvalidCredentials, "invalid credentials")
		return
	}

	h.setAuthCookie(c, result.Token, h.sessions.TTL())
	c.JSON(http.StatusOK, entity.AuthResponse{
		User:      makeUserSummary(result.User),
		ExpiresAt: result.ExpiresAt,
	})
}

// Logout revokes the current session and clears the cookie. Logging out twice
// is safe; the second call simply reports that nothing was revoked.
func (h *HTTPHandler) Logout(c *gin.Context) {
	token := requestToken(c)
	h.clearAuthCookie(c)
	if token == "" {
		c.JSON(http.StatusOK, gin.H{"revoked": false})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	revoked, err := h.sessions.Logout(ctx, token)
	if err != nil {
		logrus.WithError(err).Error("failed to revoke session")
		InternalError(c, "failed to log out")
		return
	}
	c.JSON(http.StatusOK, gin.H{"revoked": revoked})
}

// AuthStatus reports whether an operator account exists yet.
func (h *HTTPHandler) AuthStatus(c *gin.Context) {
	if h.repo == nil {
		c.JSON(http.StatusOK, entity.AuthStatusResponse{HasUser: false})
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()
	count, err := h.repo.CountUsers(ctx)
	if err != nil {
		logrus.WithError(err).Error("failed to count users for auth status")
		InternalError(c, "failed to check auth status")
		return
	}
	c.JSON(http.StatusOK, entity.AuthStatusResponse{HasUser: count > 0})
}

// Me returns the authenticated user's profile.
func (h *HTTPHandler) Me(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		Unauthorized(c, "authentication required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	dbUser, err := h.repo.GetUserByID(ctx, user.ID)
	if err != nil {
		logrus.WithError(err).WithField("user_id", user.ID).Error("failed to load user profile")
		InternalError(c, "failed to load profile")
		return
	}

	c.JSON(http.StatusOK, makeUserSummary(dbUser))
}

// UpdateProfile changes the operator's display name and/or password. A
// password change requires the current password and revokes every other
// session.
func (h *HTTPHandler) UpdateProfile(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		Unauthorized(c, "authentication required")
		return
	}

	var req entity.ProfileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	updates := entity.UserUpdates{}
	if req.DisplayName != nil {
		trimmed := strings.TrimSpace(*req.DisplayName)
		updates.DisplayName = &trimmed
	}

	if req.Password != nil {
		newPassword := strings.TrimSpace(*req.Password)
		if len(newPassword) < 8 {
			BadRequest(c, ErrCodeInvalidRequest, "password must be at least 8 characters")
			return
		}

		dbUser, err := h.repo.GetUserByID(ctx, user.ID)
		if err != nil {
			logrus.WithError(err).WithField("user_id", user.ID).Error("failed to load user for password change")
			InternalError(c, "failed to update profile")
			return
		}
		if err := auth.VerifyPassword(dbUser.PasswordHash, req.CurrentPassword); err != nil {
			ErrorResponse(c, http.StatusUnauthorized, ErrCodeInvalidCredentials, "current password is incorrect")
			return
		}

		hash, err := auth.HashPassword(newPassword)
		if err != nil {
			logrus.WithError(err).Error("failed to hash password")
			InternalError(c, "failed to update profile")
			return
		}
		updates.PasswordHash = &hash
	}

	if updates.IsEmpty() {
		BadRequest(c, ErrCodeInvalidRequest, "nothing to update")
		return
	}

	if err := h.repo.UpdateUser(ctx, user.ID, updates); err != nil {
		logrus.WithError(err).WithField("user_id", user.ID).Error("failed to update profile")
		InternalError(c, "failed to update profile")
		return
	}

	// A changed password invalidates every existing login, including the
	// current one; the client must sign in again.
	if updates.PasswordHash != nil {
		if _, err := h.sessions.RevokeAll(ctx, user.ID); err != nil {
			logrus.WithError(err).WithField("user_id", user.ID).Error("failed to revoke sessions after password change")
			InternalError(c, "failed to update profile")
			return
		}
		h.clearAuthCookie(c)
	}

	dbUser, err := h.repo.GetUserByID(ctx, user.ID)
	if err != nil {
		logrus.WithError(err).WithField("user_id", user.ID).Error("failed to reload profile")
		InternalError(c, "failed to load profile")
		return
	}
	c.JSON(http.StatusOK, makeUserSummary(dbUser))
}

// RevokeSessions deletes every session of the operator, logging out all
// devices including this one.
func (h *HTTPHandler) RevokeSessions(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		Unauthorized(c, "authentication required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	count, err := h.sessions.RevokeAll(ctx, user.ID)
	if err != nil {
		logrus.WithError(err).WithField("user_id", user.ID).Error("failed to revoke sessions")
		InternalError(c, "failed to revoke sessions")
		return
	}
	h.clearAuthCookie(c)
	c.JSON(http.StatusOK, gin.H{"revoked": count})
}

func makeUserSummary(user *entity.DbUser) entity.UserSummary {
	if user == nil {
		return entity.UserSummary{}
	}
	return entity.UserSummary{
		ID:          user.ID,
		Email:       user.Email,
		Username:    user.Username,
		DisplayName: user.DisplayName,
		Role:        user.Role,
		IsActive:    user.IsActive,
		CreatedAt:   user.CreatedAt,
		UpdatedAt:   user.UpdatedAt,
	}
}
