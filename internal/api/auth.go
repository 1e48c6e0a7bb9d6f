package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/thenoetrevino/salesboard/internal/models"
)

// Claims are the JWT claims the API accepts. The subject is the user id.
type Claims struct {
	jwt.RegisteredClaims
	AppMetadata AppMetadata `json:"app_metadata"`
}

// AppMetadata carries role flags set by the identity provider
type AppMetadata struct {
	IsSuperAdmin bool `json:"is_super_admin"`
}

// ErrNoSecret is returned when signing or verifying without a secret
var ErrNoSecret = errors.New("jwt secret is not configured")

// IssueToken signs an HS256 token for userID valid for ttl
func IssueToken(secret []byte, userID string, superAdmin bool, ttl time.Duration) (string, error) {
	if len(secret) == 0 {
		return "", ErrNoSecret
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			Issuer:    "salesboard",
		},
		AppMetadata: AppMetadata{IsSuperAdmin: superAdmin},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// ParseToken verifies an HS256 token and returns its claims
func ParseToken(secret []byte, tokenStr string) (*Claims, error) {
	if len(secret) == 0 {
		return nil, ErrNoSecret
	}
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims,
		func(*jwt.Token) (any, error) { return secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return nil, fmt.Errorf("token validation failed: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.Subject == "" {
		return nil, errors.New("token subject is required")
	}
	return claims, nil
}

type viewerKey struct{}

// WithViewer stores the authenticated viewer on ctx
func WithViewer(ctx context.Context, v models.Viewer) context.Context {
	return context.WithValue(ctx, viewerKey{}, v)
}

// ViewerFrom returns the viewer stored by the auth middleware
func ViewerFrom(ctx context.Context) (models.Viewer, bool) {
	v, ok := ctx.Value(viewerKey{}).(models.Viewer)
	return v, ok
}

// requireAuth rejects requests without a valid bearer token. With no
// secret configured every request is rejected.
func requireAuth(secret []byte, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeUnauthorized(w, r, "Missing Authorization header")
			return
		}

		scheme, tokenStr, ok := strings.Cut(authHeader, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || tokenStr == "" {
			writeUnauthorized(w, r, "Invalid Authorization header format (expected 'Bearer <token>')")
			return
		}

		if len(secret) == 0 {
			writeUnauthorized(w, r, "Authentication not configured")
			return
		}

		claims, err := ParseToken(secret, tokenStr)
		if err != nil {
			writeUnauthorized(w, r, "Invalid or expired token")
			return
		}

		viewer := models.Viewer{UserID: claims.Subject, IsSuperAdmin: claims.AppMetadata.IsSuperAdmin}
		next(w, r.WithContext(WithViewer(r.Context(), viewer)))
	}
}
