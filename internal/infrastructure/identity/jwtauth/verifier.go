package jwtauth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/riskibarqy/esports-hub/internal/domain/user"
	"github.com/riskibarqy/esports-hub/internal/usecase"
)

// DefaultAudience is the audience GoTrue stamps on user access tokens.
const DefaultAudience = "authenticated"

type accessClaims struct {
	jwt.RegisteredClaims
	Email       string `json:"email"`
	Role        string `json:"role"`
	AppMetadata struct {
		Role string `json:"role"`
	} `json:"app_metadata"`
}

// Verifier checks HS256 access tokens signed with the identity provider's JWT secret.
type Verifier struct {
	secret   []byte
	audience string
	leeway   time.Duration
}

func NewVerifier(secret, audience string) *Verifier {
	audience = strings.TrimSpace(audience)
	if audience == "" {
		audience = DefaultAudience
	}
	return &Verifier{
		secret:   []byte(secret),
		audience: audience,
		leeway:   30 * time.Second,
	}
}

func (v *Verifier) VerifyAccessToken(_ context.Context, token string) (user.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return user.Principal{}, fmt.Errorf("%w: token is required", usecase.ErrUnauthorized)
	}

	parsed, err := jwt.ParseWithClaims(token, &accessClaims{}, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(v.audience),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(v.leeway),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return user.Principal{}, fmt.Errorf("%w: token expired", usecase.ErrUnauthorized)
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return user.Principal{}, fmt.Errorf("%w: invalid token signature", usecase.ErrUnauthorized)
		default:
			return user.Principal{}, fmt.Errorf("%w: invalid token: %v", usecase.ErrUnauthorized, err)
		}
	}

	claims, ok := parsed.Claims.(*accessClaims)
	if !ok || !parsed.Valid || strings.TrimSpace(claims.Subject) == "" {
		return user.Principal{}, fmt.Errorf("%w: invalid token claims", usecase.ErrUnauthorized)
	}

	// The top-level role claim is the database role ("authenticated"); the
	// application role lives in app_metadata.
	return user.Principal{
		UserID: claims.Subject,
		Email:  strings.ToLower(strings.TrimSpace(claims.Email)),
		Role:   user.NormalizeRole(claims.AppMetadata.Role),
	}, nil
}
