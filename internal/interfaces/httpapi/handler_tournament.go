package httpapi

import (
	"net/http"

	"github.com/riskibarqy/esports-hub/internal/domain/tournament"
	"github.com/riskibarqy/esports-hub/internal/usecase"
)

type tournamentRequest struct {
	Name      string  `json:"name" validate:"required,max=200"`
	Game      string  `json:"game" validate:"required,max=100"`
	StartDate *string `json:"startDate"`
	EndDate   *string `json:"endDate"`
	PrizePool string  `json:"prizePool" validate:"max=32"`
	Status    string  `json:"status" validate:"omitempty,oneof=upcoming live completed"`
}

type tournamentDTO struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	Game           string  `json:"game"`
	StartDate      *string `json:"startDate"`
	EndDate        *string `json:"endDate"`
	PrizePool      *string `json:"prizePool"`
	PrizePoolCents *int64  `json:"prizePoolCents"`
	Status         string  `json:"status"`
	CreatedAt      string  `json:"createdAt"`
	UpdatedAt      string  `json:"updatedAt"`
}

type rebuildResultDTO struct {
	TournamentID int64 `json:"tournamentId"`
	MatchCount   int   `json:"matchCount"`
	Updated      int   `json:"updated"`
	Unchanged    int   `json:"unchanged"`
	Failed       int   `json:"failed"`
	WorkerCount  int   `json:"workerCount"`
}

func (h *Handler) ListTournaments(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTournaments")
	defer span.End()

	tournaments, err := h.tournamentService.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list tournaments failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]tournamentDTO, 0, len(tournaments))
	for _, t := range tournaments {
		items = append(items, tournamentToDTO(t))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetTournament(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTournament")
	defer span.End()

	tournamentID, err := pathID(r, "tournamentID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.tournamentService.Get(ctx, tournamentID)
	if err != nil {
		h.logger.WarnContext(ctx, "get tournament failed", "tournament_id", tournamentID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, tournamentToDTO(item))
}

func (h *Handler) CreateTournament(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateTournament")
	defer span.End()

	input, err := h.decodeTournament(w, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.tournamentService.Create(ctx, input)
	if err != nil {
		h.logger.WarnContext(ctx, "create tournament failed", "name", input.Name, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, tournamentToDTO(item))
}

func (h *Handler) UpdateTournament(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateTournament")
	defer span.End()

	tournamentID, err := pathID(r, "tournamentID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	input, err := h.decodeTournament(w, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.tournamentService.Update(ctx, tournamentID, input)
	if err != nil {
		h.logger.WarnContext(ctx, "update tournament failed", "tournament_id", tournamentID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, tournamentToDTO(item))
}

func (h *Handler) DeleteTournament(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteTournament")
	defer span.End()

	tournamentID, err := pathID(r, "tournamentID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.tournamentService.Delete(ctx, tournamentID); err != nil {
		h.logger.WarnContext(ctx, "delete tournament failed", "tournament_id", tournamentID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{"id": tournamentID, "deleted": true})
}

func (h *Handler) RebuildSeries(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RebuildSeries")
	defer span.End()

	tournamentID, err := pathID(r, "tournamentID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.seriesService.RebuildTournament(ctx, tournamentID)
	if err != nil {
		h.logger.WarnContext(ctx, "rebuild series failed", "tournament_id", tournamentID, "error", err)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "series rebuilt",
		"tournament_id", tournamentID,
		"matches", result.MatchCount,
		"updated", result.Updated,
		"failed", result.Failed,
	)
	writeSuccess(ctx, w, http.StatusOK, rebuildResultDTO{
		TournamentID: result.TournamentID,
		MatchCount:   result.MatchCount,
		Updated:      result.Updated,
		Unchanged:    result.Unchanged,
		Failed:       result.Failed,
		WorkerCount:  result.WorkerCount,
	})
}

func (h *Handler) decodeTournament(w http.ResponseWriter, r *http.Request) (usecase.TournamentInput, error) {
	var req tournamentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return usecase.TournamentInput{}, err
	}
	if err := h.validateRequest(r.Context(), req); err != nil {
		return usecase.TournamentInput{}, err
	}

	start, err := parseOptionalTime(req.StartDate, "startDate")
	if err != nil {
		return usecase.TournamentInput{}, err
	}
	end, err := parseOptionalTime(req.EndDate, "endDate")
	if err != nil {
		return usecase.TournamentInput{}, err
	}

	return usecase.TournamentInput{
		Name:      req.Name,
		Game:      req.Game,
		StartDate: start,
		EndDate:   end,
		PrizePool: req.PrizePool,
		Status:    req.Status,
	}, nil
}

func tournamentToDTO(v tournament.Tournament) tournamentDTO {
	var prize *string
	if v.PrizePoolCents != nil {
		formatted := tournament.FormatPrizePool(*v.PrizePoolCents)
		prize = &formatted
	}

	return tournamentDTO{
		ID:             v.ID,
		Name:           v.Name,
		Game:           v.Game,
		StartDate:      formatOptionalTime(v.StartDate),
		EndDate:        formatOptionalTime(v.EndDate),
		PrizePool:      prize,
		PrizePoolCents: v.PrizePoolCents,
		Status:         string(v.Status),
		CreatedAt:      formatTime(v.CreatedAt),
		UpdatedAt:      formatTime(v.UpdatedAt),
	}
}
