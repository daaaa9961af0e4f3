package httpapi

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/valyala/bytebufferpool"

	"github.com/riskibarqy/esports-hub/internal/domain/matchstats"
	"github.com/riskibarqy/esports-hub/internal/domain/player"
	"github.com/riskibarqy/esports-hub/internal/usecase"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type saveStatsRequest struct {
	ExpectedVersion int64              `json:"expectedVersion" validate:"gte=0"`
	Maps            []mapPatchRequest  `json:"maps" validate:"dive"`
	Stats           []statPatchRequest `json:"stats" validate:"dive"`
}

type mapPatchRequest struct {
	MapID           int64   `json:"mapId" validate:"required,gt=0"`
	MapName         *string `json:"mapName" validate:"omitempty,max=100"`
	GameMode        *string `json:"gameMode" validate:"omitempty,max=100"`
	Team1Score      *int    `json:"team1Score" validate:"omitempty,gte=0"`
	Team2Score      *int    `json:"team2Score" validate:"omitempty,gte=0"`
	WinnerTeamID    *int64  `json:"winnerTeamId" validate:"omitempty,gte=0"`
	DurationSeconds *int    `json:"durationSeconds" validate:"omitempty,gte=0"`
}

type statPatchRequest struct {
	MapID           int64 `json:"mapId" validate:"required,gt=0"`
	PlayerID        int64 `json:"playerId" validate:"required,gt=0"`
	Kills           *int  `json:"kills" validate:"omitempty,gte=0"`
	Deaths          *int  `json:"deaths" validate:"omitempty,gte=0"`
	Assists         *int  `json:"assists" validate:"omitempty,gte=0"`
	DamageDealt     *int  `json:"damageDealt" validate:"omitempty,gte=0"`
	DamageTaken     *int  `json:"damageTaken" validate:"omitempty,gte=0"`
	ShotsFired      *int  `json:"shotsFired" validate:"omitempty,gte=0"`
	ShotsHit        *int  `json:"shotsHit" validate:"omitempty,gte=0"`
	Headshots       *int  `json:"headshots" validate:"omitempty,gte=0"`
	Score           *int  `json:"score" validate:"omitempty,gte=0"`
	TimeOnObjective *int  `json:"timeOnObjective" validate:"omitempty,gte=0"`
	Captures        *int  `json:"captures" validate:"omitempty,gte=0"`
	Defends         *int  `json:"defends" validate:"omitempty,gte=0"`
	Plants          *int  `json:"plants" validate:"omitempty,gte=0"`
	Defuses         *int  `json:"defuses" validate:"omitempty,gte=0"`
	Clutches        *int  `json:"clutches" validate:"omitempty,gte=0"`
	FirstBloods     *int  `json:"firstBloods" validate:"omitempty,gte=0"`
	BestStreak      *int  `json:"bestStreak" validate:"omitempty,gte=0"`
	MVP             *bool `json:"mvp"`
}

type statDTO struct {
	MapID           int64 `json:"mapId"`
	PlayerID        int64 `json:"playerId"`
	TeamID          int64 `json:"teamId"`
	Kills           int   `json:"kills"`
	Deaths          int   `json:"deaths"`
	Assists         int   `json:"assists"`
	DamageDealt     int   `json:"damageDealt"`
	DamageTaken     int   `json:"damageTaken"`
	ShotsFired      int   `json:"shotsFired"`
	ShotsHit        int   `json:"shotsHit"`
	Headshots       int   `json:"headshots"`
	Score           int   `json:"score"`
	TimeOnObjective int   `json:"timeOnObjective"`
	Captures        int   `json:"captures"`
	Defends         int   `json:"defends"`
	Plants          int   `json:"plants"`
	Defuses         int   `json:"defuses"`
	Clutches        int   `json:"clutches"`
	FirstBloods     int   `json:"firstBloods"`
	BestStreak      int   `json:"bestStreak"`
	MVP             bool  `json:"mvp"`
}

type statsSheetDTO struct {
	Match       matchDTO      `json:"match"`
	Maps        []matchMapDTO `json:"maps"`
	Team1Roster []playerDTO   `json:"team1Roster"`
	Team2Roster []playerDTO   `json:"team2Roster"`
	Stats       []statDTO     `json:"stats"`
}

// OpenStats loads the statistics editor of a match; maps are created on first open.
func (h *Handler) OpenStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.OpenStats")
	defer span.End()

	matchID, err := pathID(r, "matchID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	sheet, err := h.statsService.Open(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "open match stats failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, sheetToDTO(sheet))
}

func (h *Handler) SaveStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SaveStats")
	defer span.End()

	matchID, err := pathID(r, "matchID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req saveStatsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	sheet, err := h.statsService.Save(ctx, req.toInput(matchID))
	if err != nil {
		h.logger.WarnContext(ctx, "save match stats failed", "match_id", matchID, "expected_version", req.ExpectedVersion, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, sheetToDTO(sheet))
}

// ExportStats streams the statistics workbook of a match as an attachment.
func (h *Handler) ExportStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ExportStats")
	defer span.End()

	matchID, err := pathID(r, "matchID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := h.statsService.Export(ctx, matchID, buf); err != nil {
		h.logger.WarnContext(ctx, "export match stats failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="match-%d-stats.xlsx"`, matchID))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.B); err != nil {
		h.logger.WarnContext(ctx, "write stats export failed", "match_id", matchID, "error", err)
	}
}

func (r saveStatsRequest) toInput(matchID int64) usecase.SaveStatsInput {
	input := usecase.SaveStatsInput{
		MatchID:         matchID,
		ExpectedVersion: r.ExpectedVersion,
		Maps:            make([]usecase.MapUpdate, 0, len(r.Maps)),
		Stats:           make([]usecase.StatUpdate, 0, len(r.Stats)),
	}
	for _, m := range r.Maps {
		input.Maps = append(input.Maps, usecase.MapUpdate{
			MapID: m.MapID,
			Patch: matchstats.MapPatch{
				MapName:         m.MapName,
				GameMode:        m.GameMode,
				Team1Score:      m.Team1Score,
				Team2Score:      m.Team2Score,
				WinnerTeamID:    m.WinnerTeamID,
				DurationSeconds: m.DurationSeconds,
			},
		})
	}
	for _, s := range r.Stats {
		input.Stats = append(input.Stats, usecase.StatUpdate{
			MapID:    s.MapID,
			PlayerID: s.PlayerID,
			Patch: matchstats.Patch{
				Kills:           s.Kills,
				Deaths:          s.Deaths,
				Assists:         s.Assists,
				DamageDealt:     s.DamageDealt,
				DamageTaken:     s.DamageTaken,
				ShotsFired:      s.ShotsFired,
				ShotsHit:        s.ShotsHit,
				Headshots:       s.Headshots,
				Score:           s.Score,
				TimeOnObjective: s.TimeOnObjective,
				Captures:        s.Captures,
				Defends:         s.Defends,
				Plants:          s.Plants,
				Defuses:         s.Defuses,
				Clutches:        s.Clutches,
				FirstBloods:     s.FirstBloods,
				BestStreak:      s.BestStreak,
				MVP:             s.MVP,
			},
		})
	}
	return input
}

// sheetToDTO lists one row per map and rostered player, followed by stored rows of players no longer rostered.
func sheetToDTO(sheet *matchstats.Sheet) statsSheetDTO {
	out := statsSheetDTO{
		Match:       matchToDTO(sheet.Match),
		Maps:        mapsToDTO(sheet.Maps),
		Team1Roster: rosterToDTO(sheet.Team1Roster),
		Team2Roster: rosterToDTO(sheet.Team2Roster),
	}

	seen := make(map[matchstats.Key]struct{})
	for _, m := range sheet.Maps {
		for _, roster := range [][]player.Player{sheet.Team1Roster, sheet.Team2Roster} {
			for _, p := range roster {
				row := sheet.Stat(m.ID, p.ID)
				seen[row.Key()] = struct{}{}
				out.Stats = append(out.Stats, statToDTO(row))
			}
		}
	}
	for _, row := range sheet.Stats() {
		if _, ok := seen[row.Key()]; ok {
			continue
		}
		out.Stats = append(out.Stats, statToDTO(row))
	}
	if out.Stats == nil {
		out.Stats = []statDTO{}
	}
	return out
}

func rosterToDTO(players []player.Player) []playerDTO {
	items := make([]playerDTO, 0, len(players))
	for _, p := range players {
		items = append(items, playerToDTO(p))
	}
	return items
}

func statToDTO(v matchstats.PlayerMapStat) statDTO {
	return statDTO{
		MapID:           v.MapID,
		PlayerID:        v.PlayerID,
		TeamID:          v.TeamID,
		Kills:           v.Kills,
		Deaths:          v.Deaths,
		Assists:         v.Assists,
		DamageDealt:     v.DamageDealt,
		DamageTaken:     v.DamageTaken,
		ShotsFired:      v.ShotsFired,
		ShotsHit:        v.ShotsHit,
		Headshots:       v.Headshots,
		Score:           v.Score,
		TimeOnObjective: v.TimeOnObjective,
		Captures:        v.Captures,
		Defends:         v.Defends,
		Plants:          v.Plants,
		Defuses:         v.Defuses,
		Clutches:        v.Clutches,
		FirstBloods:     v.FirstBloods,
		BestStreak:      v.BestStreak,
		MVP:             v.MVP,
	}
}
