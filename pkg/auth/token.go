package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sreedhargoud/camrental-backend/pkg/config"
	apperrors "github.com/sreedhargoud/camrental-backend/pkg/errors"
)

const (
	// RoleAdmin gates the admin panel endpoints.
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

// Claims are the access-token claims carried by every authenticated
// request.
type Claims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// Identity is the authenticated caller as seen by handlers.
type Identity struct {
	UserID string
	Email  string
	Name   string
	Role   string
}

// IsAdmin reports whether the identity may use admin endpoints.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// IssueAccessToken signs a token for the identity.
func IssueAccessToken(cfg config.JWTConfig, identity Identity, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Email: identity.Email,
		Name:  identity.Name,
		Role:  identity.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.UserID,
			Issuer:    cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("signing access token: %w", err)
	}
	return signed, nil
}

// ParseAccessToken validates the token and extracts the identity.
func ParseAccessToken(cfg config.JWTConfig, raw string) (Identity, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Header["alg"])
		}
		return []byte(cfg.Secret), nil
	}, jwt.WithIssuer(cfg.Issuer), jwt.WithExpirationRequired())
	if err != nil {
		return Identity{}, apperrors.Wrap(apperrors.CodeUnauthorized, err, "invalid token")
	}
	if !token.Valid || claims.Subject == "" {
		return Identity{}, apperrors.New(apperrors.CodeUnauthorized, "invalid token")
	}
	return Identity{
		UserID: claims.Subject,
		Email:  claims.Email,
		Name:   claims.Name,
		Role:   claims.Role,
	}, nil
}
