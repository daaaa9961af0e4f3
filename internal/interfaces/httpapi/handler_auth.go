package httpapi

import (
	"fmt"
	"net/http"

	"github.com/riskibarqy/esports-hub/internal/domain/user"
	"github.com/riskibarqy/esports-hub/internal/usecase"
)

type signInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type signUpRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type magicLinkRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type exchangeCodeRequest struct {
	AuthCode     string `json:"authCode" validate:"required"`
	CodeVerifier string `json:"codeVerifier"`
}

type principalDTO struct {
	UserID  string `json:"userId"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	IsAdmin bool   `json:"isAdmin"`
}

type sessionDTO struct {
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
	ExpiresIn    int          `json:"expiresIn"`
	TokenType    string       `json:"tokenType"`
	User         principalDTO `json:"user"`
}

type signUpDTO struct {
	User                 principalDTO `json:"user"`
	ConfirmationRequired bool         `json:"confirmationRequired"`
}

func (h *Handler) SignIn(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SignIn")
	defer span.End()

	var req signInRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	session, err := h.authService.SignIn(ctx, req.Email, req.Password)
	if err != nil {
		h.logger.WarnContext(ctx, "sign in failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, sessionToDTO(session))
}

func (h *Handler) SignUp(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SignUp")
	defer span.End()

	var req signUpRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.authService.SignUp(ctx, req.Email, req.Password)
	if err != nil {
		h.logger.WarnContext(ctx, "sign up failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, signUpDTO{
		User:                 principalToDTO(result.User),
		ConfirmationRequired: result.ConfirmationRequired,
	})
}

func (h *Handler) SendMagicLink(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SendMagicLink")
	defer span.End()

	var req magicLinkRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.authService.SendMagicLink(ctx, req.Email); err != nil {
		h.logger.WarnContext(ctx, "send magic link failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusAccepted, map[string]bool{"sent": true})
}

func (h *Handler) OAuthURL(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.OAuthURL")
	defer span.End()

	provider := r.PathValue("provider")
	url, err := h.authService.OAuthURL(ctx, provider)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"url": url})
}

func (h *Handler) ExchangeCode(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ExchangeCode")
	defer span.End()

	var req exchangeCodeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	session, err := h.authService.ExchangeCode(ctx, req.AuthCode, req.CodeVerifier)
	if err != nil {
		h.logger.WarnContext(ctx, "exchange auth code failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, sessionToDTO(session))
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Me")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	writeSuccess(ctx, w, http.StatusOK, principalToDTO(principal))
}

func principalToDTO(p user.Principal) principalDTO {
	return principalDTO{
		UserID:  p.UserID,
		Email:   p.Email,
		Role:    p.Role,
		IsAdmin: p.IsAdmin(),
	}
}

func sessionToDTO(s user.Session) sessionDTO {
	return sessionDTO{
		AccessToken:  s.AccessToken,
		RefreshToken: s.RefreshToken,
		ExpiresIn:    s.ExpiresIn,
		TokenType:    s.TokenType,
		User:         principalToDTO(s.User),
	}
}
