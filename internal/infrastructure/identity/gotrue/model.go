package gotrue

import (
	"strings"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/esports-hub/internal/domain/user"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type otpRequest struct {
	Email      string `json:"email"`
	CreateUser bool   `json:"create_user"`
}

type pkceRequest struct {
	AuthCode     string `json:"auth_code"`
	CodeVerifier string `json:"code_verifier"`
}

type userResponse struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	AppMetadata struct {
		Role string `json:"role"`
	} `json:"app_metadata"`
}

func (u userResponse) toPrincipal() user.Principal {
	return user.Principal{
		UserID: u.ID,
		Email:  strings.ToLower(strings.TrimSpace(u.Email)),
		Role:   user.NormalizeRole(u.AppMetadata.Role),
	}
}

// sessionResponse decodes both a session and the bare user that signup
// returns while email confirmation is pending.
type sessionResponse struct {
	AccessToken  string       `json:"access_token"`
	TokenType    string       `json:"token_type"`
	ExpiresIn    int          `json:"expires_in"`
	RefreshToken string       `json:"refresh_token"`
	User         userResponse `json:"user"`
	userResponse
}

func (s sessionResponse) toSession() (user.Session, error) {
	if s.AccessToken == "" {
		return user.Session{}, crerr.New("invalid token response: access_token is empty")
	}
	return user.Session{
		AccessToken:  s.AccessToken,
		RefreshToken: s.RefreshToken,
		ExpiresIn:    s.ExpiresIn,
		TokenType:    s.TokenType,
		User:         s.User.toPrincipal(),
	}, nil
}

type errorResponse struct {
	ErrorDescription string `json:"error_description"`
	Msg              string `json:"msg"`
	Message          string `json:"message"`
	Error            string `json:"error"`
}
