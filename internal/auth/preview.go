package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// PreviewClaims are the JWT claims of a draft share link.
type PreviewClaims struct {
	PostID uint `json:"pid"`
	jwt.RegisteredClaims
}

// PreviewManager signs and validates share-link tokens for unpublished posts.
type PreviewManager struct {
	secret []byte
	issuer string
	expiry time.Duration
}

// NewPreviewManager creates a preview token manager.
func NewPreviewManager(secret, issuer string, expiry time.Duration) (*PreviewManager, error) {
	trimmed := strings.TrimSpace(secret)
	if trimmed == "" {
		return nil, errors.New("preview secret must not be empty")
	}
	if expiry <= 0 {
		expiry = time.Hour * 24
	}
	if strings.TrimSpace(issuer) == "" {
		issuer = "inkwell"
	}
	return &PreviewManager{
		secret: []byte(trimmed),
		issuer: issuer,
		expiry: expiry,
	}, nil
}

// IssueToken signs a preview token for the given post.
func (m *PreviewManager) IssueToken(postID uint) (string, time.Time, error) {
	if m == nil {
		return "", time.Time{}, errors.New("preview manager is nil")
	}
	if postID == 0 {
		return "", time.Time{}, errors.New("invalid post for preview token")
	}
	now := time.Now().UTC()
	expiry := now.Add(m.expiry)

	claims := PreviewClaims{
		PostID: postID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", postID),
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiry),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiry, nil
}

// ParseToken validates a preview token and returns the post ID it grants
// access to.
func (m *PreviewManager) ParseToken(tokenString string) (uint, error) {
	if m == nil {
		return 0, errors.New("preview manager is nil")
	}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	token, err := parser.ParseWithClaims(tokenString, &PreviewClaims{}, func(token *jwt.Token) (interface{}, error) {
		return m.secret, nil
	})
	if err != nil {
		return 0, err
	}
	claims, ok := token.Claims.(*PreviewClaims)
	if !ok || !token.Valid || claims.PostID == 0 {
		return 0, errors.New("invalid preview token claims")
	}
	return claims.PostID, nil
}
