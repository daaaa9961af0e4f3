package usecase

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/riskibarqy/esports-hub/internal/domain/user"
)

const minPasswordLength = 6

// OAuthProviders are the social sign-in providers enabled on the identity provider.
var OAuthProviders = map[string]struct{}{
	"google":  {},
	"github":  {},
	"discord": {},
	"twitch":  {},
}

// IdentityProvider is the account backend used for session establishment.
type IdentityProvider interface {
	SignInWithPassword(ctx context.Context, email, password string) (user.Session, error)
	SignUp(ctx context.Context, email, password, redirectTo string) (user.SignUpResult, error)
	SendMagicLink(ctx context.Context, email, redirectTo string) error
	AuthorizeURL(provider, redirectTo string) string
	ExchangeCode(ctx context.Context, authCode, codeVerifier string) (user.Session, error)
}

// TokenVerifier resolves an access token to its principal.
type TokenVerifier interface {
	VerifyAccessToken(ctx context.Context, token string) (user.Principal, error)
}

type AuthService struct {
	provider    IdentityProvider
	redirectURL string
}

func NewAuthService(provider IdentityProvider, redirectURL string) *AuthService {
	return &AuthService{
		provider:    provider,
		redirectURL: strings.TrimSpace(redirectURL),
	}
}

func (s *AuthService) SignIn(ctx context.Context, email, password string) (user.Session, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.SignIn")
	defer span.End()

	email, err := normalizeEmail(email)
	if err != nil {
		return user.Session{}, err
	}
	if password == "" {
		return user.Session{}, fmt.Errorf("%w: password is required", ErrInvalidInput)
	}

	session, err := s.provider.SignInWithPassword(ctx, email, password)
	if err != nil {
		return user.Session{}, fmt.Errorf("sign in: %w", err)
	}
	return session, nil
}

func (s *AuthService) SignUp(ctx context.Context, email, password string) (user.SignUpResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.SignUp")
	defer span.End()

	email, err := normalizeEmail(email)
	if err != nil {
		return user.SignUpResult{}, err
	}
	if len(password) < minPasswordLength {
		return user.SignUpResult{}, fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLength)
	}

	result, err := s.provider.SignUp(ctx, email, password, s.redirectURL)
	if err != nil {
		return user.SignUpResult{}, fmt.Errorf("sign up: %w", err)
	}
	return result, nil
}

func (s *AuthService) SendMagicLink(ctx context.Context, email string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.SendMagicLink")
	defer span.End()

	email, err := normalizeEmail(email)
	if err != nil {
		return err
	}
	if err := s.provider.SendMagicLink(ctx, email, s.redirectURL); err != nil {
		return fmt.Errorf("send magic link: %w", err)
	}
	return nil
}

// OAuthURL returns the provider authorize URL the browser should be sent to.
func (s *AuthService) OAuthURL(ctx context.Context, provider string) (string, error) {
	_, span := startUsecaseSpan(ctx, "usecase.AuthService.OAuthURL")
	defer span.End()

	provider = strings.ToLower(strings.TrimSpace(provider))
	if _, ok := OAuthProviders[provider]; !ok {
		return "", fmt.Errorf("%w: unsupported oauth provider %q", ErrInvalidInput, provider)
	}
	return s.provider.AuthorizeURL(provider, s.redirectURL), nil
}

// ExchangeCode completes an OAuth or magic-link callback.
func (s *AuthService) ExchangeCode(ctx context.Context, authCode, codeVerifier string) (user.Session, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.ExchangeCode")
	defer span.End()

	authCode = strings.TrimSpace(authCode)
	if authCode == "" {
		return user.Session{}, fmt.Errorf("%w: auth code is required", ErrInvalidInput)
	}

	session, err := s.provider.ExchangeCode(ctx, authCode, strings.TrimSpace(codeVerifier))
	if err != nil {
		return user.Session{}, fmt.Errorf("exchange auth code: %w", err)
	}
	return session, nil
}

func normalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return "", fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return "", fmt.Errorf("%w: email is invalid", ErrInvalidInput)
	}
	return email, nil
}
