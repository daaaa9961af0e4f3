package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/riskibarqy/esports-hub/internal/domain/team"
	"github.com/riskibarqy/esports-hub/internal/usecase"
)

type teamRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Country string `json:"country" validate:"max=64"`
	LogoURL string `json:"logoUrl" validate:"omitempty,url"`
}

type teamDTO struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Country   string `json:"country"`
	LogoURL   string `json:"logoUrl"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeams")
	defer span.End()

	teams, err := h.teamService.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list teams failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]teamDTO, 0, len(teams))
	for _, t := range teams {
		items = append(items, teamToDTO(t))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeam")
	defer span.End()

	teamID, err := pathID(r, "teamID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.teamService.Get(ctx, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "get team failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamToDTO(item))
}

func (h *Handler) ListTeamRoster(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeamRoster")
	defer span.End()

	teamID, err := pathID(r, "teamID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	limit, err := queryLimit(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	players, err := h.teamService.Roster(ctx, teamID, limit)
	if err != nil {
		h.logger.WarnContext(ctx, "list team roster failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]playerDTO, 0, len(players))
	for _, p := range players {
		items = append(items, playerToDTO(p))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateTeam")
	defer span.End()

	var req teamRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.teamService.Create(ctx, usecase.TeamInput{
		Name:    req.Name,
		Country: req.Country,
		LogoURL: req.LogoURL,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create team failed", "name", req.Name, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, teamToDTO(item))
}

func (h *Handler) UpdateTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateTeam")
	defer span.End()

	teamID, err := pathID(r, "teamID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req teamRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.teamService.Update(ctx, teamID, usecase.TeamInput{
		Name:    req.Name,
		Country: req.Country,
		LogoURL: req.LogoURL,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "update team failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamToDTO(item))
}

func (h *Handler) DeleteTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteTeam")
	defer span.End()

	teamID, err := pathID(r, "teamID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.teamService.Delete(ctx, teamID); err != nil {
		h.logger.WarnContext(ctx, "delete team failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{"id": teamID, "deleted": true})
}

func (h *Handler) UploadTeamLogo(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UploadTeamLogo")
	defer span.End()

	teamID, err := pathID(r, "teamID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	upload, closeUpload, err := h.readUpload(ctx, w, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	defer closeUpload()

	item, err := h.mediaService.UploadTeamLogo(ctx, teamID, upload)
	if err != nil {
		h.logger.WarnContext(ctx, "upload team logo failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamToDTO(item))
}

// readUpload extracts the "file" part of a multipart form, bounded by the media size limit.
func (h *Handler) readUpload(ctx context.Context, w http.ResponseWriter, r *http.Request) (usecase.Upload, func(), error) {
	_, span := startSpan(ctx, "httpapi.Handler.readUpload")
	defer span.End()

	noop := func() {}
	limit := h.mediaService.MaxUploadBytes()
	// Multipart framing adds a little on top of the file itself.
	r.Body = http.MaxBytesReader(w, r.Body, limit+64<<10)
	if err := r.ParseMultipartForm(limit); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return usecase.Upload{}, noop, fmt.Errorf("%w: file exceeds %d bytes", usecase.ErrInvalidInput, limit)
		}
		return usecase.Upload{}, noop, fmt.Errorf("%w: invalid multipart form: %v", usecase.ErrInvalidInput, err)
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return usecase.Upload{}, noop, fmt.Errorf("%w: file field is required", usecase.ErrInvalidInput)
	}

	return usecase.Upload{
		Filename:    header.Filename,
		ContentType: strings.TrimSpace(header.Header.Get("Content-Type")),
		Size:        header.Size,
		Body:        file,
	}, func() { _ = file.Close() }, nil
}

func teamToDTO(v team.Team) teamDTO {
	return teamDTO{
		ID:        v.ID,
		Name:      v.Name,
		Country:   v.Country,
		LogoURL:   v.LogoURL,
		CreatedAt: formatTime(v.CreatedAt),
		UpdatedAt: formatTime(v.UpdatedAt),
	}
}
