package jwtauth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/riskibarqy/esports-hub/internal/domain/user"
	"github.com/riskibarqy/esports-hub/internal/usecase"
)

const testSecret = "super-secret-jwt-token-with-at-least-32-characters"

func signToken(t *testing.T, method jwt.SigningMethod, key any, claims jwt.MapClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(method, claims).SignedString(key)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func baseClaims(exp time.Time) jwt.MapClaims {
	return jwt.MapClaims{
		"sub":          "user-1",
		"email":        "Admin@Example.com",
		"aud":          "authenticated",
		"role":         "authenticated",
		"exp":          exp.Unix(),
		"app_metadata": map[string]any{"role": "admin", "provider": "email"},
	}
}

func TestVerifier_ReadsAppMetadataRole(t *testing.T) {
	t.Parallel()

	token := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), baseClaims(time.Now().Add(time.Hour)))

	principal, err := NewVerifier(testSecret, "").VerifyAccessToken(context.Background(), token)
	if err != nil {
		t.Fatalf("verify token: %v", err)
	}
	if principal.UserID != "user-1" || principal.Email != "admin@example.com" || principal.Role != user.RoleAdmin {
		t.Fatalf("unexpected principal: %+v", principal)
	}
}

func TestVerifier_DefaultsToUserRole(t *testing.T) {
	t.Parallel()

	claims := baseClaims(time.Now().Add(time.Hour))
	delete(claims, "app_metadata")
	token := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), claims)

	principal, err := NewVerifier(testSecret, "").VerifyAccessToken(context.Background(), token)
	if err != nil {
		t.Fatalf("verify token: %v", err)
	}
	if principal.IsAdmin() {
		t.Fatalf("token without app role must not be admin")
	}
}

func TestVerifier_Rejects(t *testing.T) {
	t.Parallel()

	verifier := NewVerifier(testSecret, "")
	noExp := baseClaims(time.Now())
	delete(noExp, "exp")
	wrongAud := baseClaims(time.Now().Add(time.Hour))
	wrongAud["aud"] = "service_role"

	cases := map[string]string{
		"expired":        signToken(t, jwt.SigningMethodHS256, []byte(testSecret), baseClaims(time.Now().Add(-time.Hour))),
		"wrong secret":   signToken(t, jwt.SigningMethodHS256, []byte("another-secret"), baseClaims(time.Now().Add(time.Hour))),
		"unsigned":       signToken(t, jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, baseClaims(time.Now().Add(time.Hour))),
		"missing exp":    signToken(t, jwt.SigningMethodHS256, []byte(testSecret), noExp),
		"wrong audience": signToken(t, jwt.SigningMethodHS256, []byte(testSecret), wrongAud),
		"garbage":        "not-a-jwt",
		"empty":          "  ",
	}
	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := verifier.VerifyAccessToken(context.Background(), token); !errors.Is(err, usecase.ErrUnauthorized) {
				t.Fatalf("expected ErrUnauthorized, got %v", err)
			}
		})
	}
}
