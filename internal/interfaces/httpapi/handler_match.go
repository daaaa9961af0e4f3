package httpapi

import (
	"net/http"

	"github.com/riskibarqy/esports-hub/internal/domain/match"
	"github.com/riskibarqy/esports-hub/internal/usecase"
)

type matchRequest struct {
	TournamentID    int64   `json:"tournamentId" validate:"required,gt=0"`
	Team1ID         int64   `json:"team1Id" validate:"required,gt=0"`
	Team2ID         int64   `json:"team2Id" validate:"required,gt=0,nefield=Team1ID"`
	ScheduledAt     *string `json:"scheduledAt"`
	MapName         string  `json:"mapName" validate:"max=100"`
	GameMode        string  `json:"gameMode" validate:"max=100"`
	Round           string  `json:"round" validate:"max=100"`
	Status          string  `json:"status" validate:"omitempty,oneof=scheduled live completed cancelled"`
	SeriesFormat    string  `json:"seriesFormat" validate:"max=8"`
	ExpectedVersion int64   `json:"expectedVersion" validate:"gte=0"`
}

type teamRefDTO struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	LogoURL string `json:"logoUrl"`
}

type matchDTO struct {
	ID             int64      `json:"id"`
	TournamentID   int64      `json:"tournamentId"`
	TournamentName string     `json:"tournamentName"`
	Team1          teamRefDTO `json:"team1"`
	Team2          teamRefDTO `json:"team2"`
	ScheduledAt    *string    `json:"scheduledAt"`
	MapName        string     `json:"mapName"`
	GameMode       string     `json:"gameMode"`
	Round          string     `json:"round"`
	Status         string     `json:"status"`
	SeriesFormat   string     `json:"seriesFormat"`
	Team1Wins      int        `json:"team1Wins"`
	Team2Wins      int        `json:"team2Wins"`
	WinnerTeamID   *int64     `json:"winnerTeamId"`
	Version        int64      `json:"version"`
	UpdatedAt      string     `json:"updatedAt"`
}

type matchMapDTO struct {
	ID              int64  `json:"id"`
	Number          int    `json:"number"`
	MapName         string `json:"mapName"`
	GameMode        string `json:"gameMode"`
	Team1Score      int    `json:"team1Score"`
	Team2Score      int    `json:"team2Score"`
	WinnerTeamID    *int64 `json:"winnerTeamId"`
	Status          string `json:"status"`
	DurationSeconds *int   `json:"durationSeconds"`
}

type matchDetailDTO struct {
	matchDTO
	Maps []matchMapDTO `json:"maps"`
}

// ListMatches supports tournamentId and teamId query filters.
func (h *Handler) ListMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatches")
	defer span.End()

	tournamentID, err := queryID(r, "tournamentId")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	teamID, err := queryID(r, "teamId")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	listings, err := h.matchService.List(ctx, match.Filter{TournamentID: tournamentID, TeamID: teamID})
	if err != nil {
		h.logger.WarnContext(ctx, "list matches failed", "tournament_id", tournamentID, "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchesToDTO(listings))
}

func (h *Handler) ListTournamentMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTournamentMatches")
	defer span.End()

	tournamentID, err := pathID(r, "tournamentID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	listings, err := h.matchService.ListByTournament(ctx, tournamentID)
	if err != nil {
		h.logger.WarnContext(ctx, "list tournament matches failed", "tournament_id", tournamentID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchesToDTO(listings))
}

func (h *Handler) GetMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatch")
	defer span.End()

	matchID, err := pathID(r, "matchID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.matchService.Get(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "get match failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}
	maps, err := h.matchService.Maps(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "list match maps failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchDetailDTO{
		matchDTO: matchToDTO(item),
		Maps:     mapsToDTO(maps),
	})
}

func (h *Handler) CreateMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateMatch")
	defer span.End()

	input, err := h.decodeMatch(w, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.matchService.Create(ctx, input)
	if err != nil {
		h.logger.WarnContext(ctx, "create match failed", "tournament_id", input.TournamentID, "error", err)
		writeError(ctx, w, err)
		return
	}

	h.writeMatch(w, r, http.StatusCreated, created)
}

func (h *Handler) UpdateMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateMatch")
	defer span.End()

	matchID, err := pathID(r, "matchID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	input, err := h.decodeMatch(w, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	updated, err := h.matchService.Update(ctx, matchID, input)
	if err != nil {
		h.logger.WarnContext(ctx, "update match failed", "match_id", matchID, "expected_version", input.ExpectedVersion, "error", err)
		writeError(ctx, w, err)
		return
	}

	h.writeMatch(w, r, http.StatusOK, updated)
}

func (h *Handler) DeleteMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteMatch")
	defer span.End()

	matchID, err := pathID(r, "matchID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.matchService.Delete(ctx, matchID); err != nil {
		h.logger.WarnContext(ctx, "delete match failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{"id": matchID, "deleted": true})
}

// writeMatch responds with the joined listing, falling back to the bare row if the reload fails.
func (h *Handler) writeMatch(w http.ResponseWriter, r *http.Request, status int, item match.Match) {
	ctx := r.Context()
	listing, err := h.matchService.Get(ctx, item.ID)
	if err != nil {
		h.logger.WarnContext(ctx, "reload match failed", "match_id", item.ID, "error", err)
		listing = match.Listing{
			Match: item,
			Team1: match.TeamRef{ID: item.Team1ID},
			Team2: match.TeamRef{ID: item.Team2ID},
		}
	}
	writeSuccess(ctx, w, status, matchToDTO(listing))
}

func (h *Handler) decodeMatch(w http.ResponseWriter, r *http.Request) (usecase.MatchInput, error) {
	var req matchRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return usecase.MatchInput{}, err
	}
	if err := h.validateRequest(r.Context(), req); err != nil {
		return usecase.MatchInput{}, err
	}
	scheduledAt, err := parseOptionalTime(req.ScheduledAt, "scheduledAt")
	if err != nil {
		return usecase.MatchInput{}, err
	}

	return usecase.MatchInput{
		TournamentID:    req.TournamentID,
		Team1ID:         req.Team1ID,
		Team2ID:         req.Team2ID,
		ScheduledAt:     scheduledAt,
		MapName:         req.MapName,
		GameMode:        req.GameMode,
		Round:           req.Round,
		Status:          req.Status,
		SeriesFormat:    req.SeriesFormat,
		ExpectedVersion: req.ExpectedVersion,
	}, nil
}

func matchesToDTO(listings []match.Listing) []matchDTO {
	items := make([]matchDTO, 0, len(listings))
	for _, l := range listings {
		items = append(items, matchToDTO(l))
	}
	return items
}

func matchToDTO(v match.Listing) matchDTO {
	return matchDTO{
		ID:             v.ID,
		TournamentID:   v.TournamentID,
		TournamentName: v.TournamentName,
		Team1:          teamRefDTO{ID: v.Team1.ID, Name: v.Team1.Name, LogoURL: v.Team1.LogoURL},
		Team2:          teamRefDTO{ID: v.Team2.ID, Name: v.Team2.Name, LogoURL: v.Team2.LogoURL},
		ScheduledAt:    formatOptionalTime(v.ScheduledAt),
		MapName:        v.MapName,
		GameMode:       v.GameMode,
		Round:          v.Round,
		Status:         string(v.Status),
		SeriesFormat:   string(v.SeriesFormat),
		Team1Wins:      v.Team1Wins,
		Team2Wins:      v.Team2Wins,
		WinnerTeamID:   v.WinnerTeamID,
		Version:        v.Version,
		UpdatedAt:      formatTime(v.UpdatedAt),
	}
}

func mapsToDTO(maps []match.Map) []matchMapDTO {
	items := make([]matchMapDTO, 0, len(maps))
	for _, m := range maps {
		items = append(items, matchMapDTO{
			ID:              m.ID,
			Number:          m.Number,
			MapName:         m.MapName,
			GameMode:        string(m.GameMode),
			Team1Score:      m.Team1Score,
			Team2Score:      m.Team2Score,
			WinnerTeamID:    m.WinnerTeamID,
			Status:          string(m.Status),
			DurationSeconds: m.DurationSeconds,
		})
	}
	return items
}
