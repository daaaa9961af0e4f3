package user

import "strings"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Principal is the authenticated caller resolved from an access token.
type Principal struct {
	UserID string
	Email  string
	Role   string
}

func (p Principal) IsAdmin() bool {
	return strings.EqualFold(strings.TrimSpace(p.Role), RoleAdmin)
}

// NormalizeRole maps unknown or empty roles to RoleUser.
func NormalizeRole(role string) string {
	if strings.EqualFold(strings.TrimSpace(role), RoleAdmin) {
		return RoleAdmin
	}
	return RoleUser
}

// Session is the token pair issued by the identity provider.
type Session struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int
	TokenType    string
	User         Principal
}

// SignUpResult reports a new account and whether the provider waits for email confirmation.
type SignUpResult struct {
	User                 Principal
	ConfirmationRequired bool
}
