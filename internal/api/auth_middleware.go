package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"inkwell/internal/entity"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	currentUserContextKey = "current-user"

	// authCookieName is the bearer cookie carrying the session token.
	authCookieName = "auth_token"
)

// RequestUser stores the authenticated user of the current request.
type RequestUser struct {
	ID          uint
	Email       string
	Username    string
	DisplayName string
	Role        string
}

// IsAdmin reports whether the user carries the admin role.
func (u *RequestUser) IsAdmin() bool {
	if u == nil {
		return false
	}
	return u.Role == entity.UserRoleAdmin
}

// requestToken extracts the session token from the auth cookie, falling back
// to an Authorization: Bearer header for non-browser clients.
func requestToken(c *gin.Context) string {
	if cookie, err := c.Cookie(authCookieName); err == nil {
		if token := strings.TrimSpace(cookie); token != "" {
			return token
		}
	}
	authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// AuthMiddleware resolves the session token to a user and aborts with 401
// when the token is missing, unknown, or expired. The cookie is cleared on a
// failed validation so the browser does not keep resending a dead token.
func (h *HTTPHandler) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := requestToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, APIError{
				Code:    ErrCodeUnauthorized,
				Message: "authentication required",
			})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		user, err := h.sessions.ValidateSession(ctx, token)
		if err != nil {
			logrus.WithError(err).Error("failed to validate session")
			c.AbortWithStatusJSON(http.StatusInternalServerError, APIError{
				Code:    ErrCodeInternalError,
				Message: "failed to validate session",
			})
			return
		}
		if user == nil {
			h.clearAuthCookie(c)
			c.AbortWithStatusJSON(http.StatusUnauthorized, APIError{
				Code:    ErrCodeSessionExpired,
				Message: "session is invalid or expired",
			})
			return
		}

		requestUser := &RequestUser{
			ID:          user.ID,
			Email:       user.Email,
			Username:    user.Username,
			DisplayName: user.DisplayName,
			Role:        user.Role,
		}

		c.Set(currentUserContextKey, requestUser)
		c.Next()
	}
}

// RequireAdmin guards the admin surface.
func (h *HTTPHandler) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil || !user.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, APIError{
				Code:    ErrCodeForbidden,
				Message: "admin privileges required",
			})
			return
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated user of the request, if any.
func CurrentUser(c *gin.Context) *RequestUser {
	value, exists := c.Get(currentUserContextKey)
	if !exists {
		return nil
	}
	user, ok := value.(*RequestUser)
	if !ok {
		return nil
	}
	return user
}

// setAuthCookie installs the session cookie for the token's lifetime.
func (h *HTTPHandler) setAuthCookie(c *gin.Context, token string, ttl time.Duration) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(authCookieName, token, int(ttl.Seconds()), "/", "", h.cfg.CookieSecure, true)
}

// clearAuthCookie removes the session cookie.
func (h *HTTPHandler) clearAuthCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(authCookieName, "", -1, "/", "", h.cfg.CookieSecure, true)
}
