package httpapi

import (
	"net/http"

	"github.com/riskibarqy/esports-hub/internal/domain/player"
	"github.com/riskibarqy/esports-hub/internal/usecase"
)

type playerRequest struct {
	Name      string `json:"name" validate:"required,max=100"`
	TeamID    *int64 `json:"teamId" validate:"omitempty,gte=0"`
	Country   string `json:"country" validate:"max=64"`
	AvatarURL string `json:"avatarUrl" validate:"omitempty,url"`
}

type playerDTO struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	TeamID    *int64 `json:"teamId"`
	Country   string `json:"country"`
	AvatarURL string `json:"avatarUrl"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// ListPlayers lists every player, or one team's roster when teamId is given.
func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayers")
	defer span.End()

	teamID, err := queryID(r, "teamId")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var players []player.Player
	if teamID > 0 {
		players, err = h.teamService.Roster(ctx, teamID, 0)
	} else {
		players, err = h.playerService.List(ctx)
	}
	if err != nil {
		h.logger.WarnContext(ctx, "list players failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]playerDTO, 0, len(players))
	for _, p := range players {
		items = append(items, playerToDTO(p))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayer")
	defer span.End()

	playerID, err := pathID(r, "playerID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.playerService.Get(ctx, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "get player failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerToDTO(item))
}

func (h *Handler) CreatePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreatePlayer")
	defer span.End()

	var req playerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.playerService.Create(ctx, req.toInput())
	if err != nil {
		h.logger.WarnContext(ctx, "create player failed", "name", req.Name, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, playerToDTO(item))
}

func (h *Handler) UpdatePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdatePlayer")
	defer span.End()

	playerID, err := pathID(r, "playerID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req playerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.playerService.Update(ctx, playerID, req.toInput())
	if err != nil {
		h.logger.WarnContext(ctx, "update player failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerToDTO(item))
}

func (h *Handler) DeletePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeletePlayer")
	defer span.End()

	playerID, err := pathID(r, "playerID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.playerService.Delete(ctx, playerID); err != nil {
		h.logger.WarnContext(ctx, "delete player failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{"id": playerID, "deleted": true})
}

func (h *Handler) UploadPlayerAvatar(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UploadPlayerAvatar")
	defer span.End()

	playerID, err := pathID(r, "playerID")
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

	item, err := h.mediaService.UploadPlayerAvatar(ctx, playerID, upload)
	if err != nil {
		h.logger.WarnContext(ctx, "upload player avatar failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerToDTO(item))
}

func (r playerRequest) toInput() usecase.PlayerInput {
	return usecase.PlayerInput{
		Name:      r.Name,
		TeamID:    r.TeamID,
		Country:   r.Country,
		AvatarURL: r.AvatarURL,
	}
}

func playerToDTO(v player.Player) playerDTO {
	return playerDTO{
		ID:        v.ID,
		Name:      v.Name,
		TeamID:    v.TeamID,
		Country:   v.Country,
		AvatarURL: v.AvatarURL,
		CreatedAt: formatTime(v.CreatedAt),
		UpdatedAt: formatTime(v.UpdatedAt),
	}
}
