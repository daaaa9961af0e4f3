package report

import (
	"fmt"
	"io"

	"github.com/riskibarqy/esports-hub/internal/domain/match"
	"github.com/riskibarqy/esports-hub/internal/domain/matchstats"
	"github.com/riskibarqy/esports-hub/internal/domain/player"
	"github.com/xuri/excelize/v2"
)

const summarySheet = "Summary"

// StatsWorkbook renders a stats sheet as xlsx: a summary sheet followed by one
// worksheet per map with a row for every rostered player.
type StatsWorkbook struct{}

func NewStatsWorkbook() *StatsWorkbook {
	return &StatsWorkbook{}
}

func (StatsWorkbook) WriteSheet(w io.Writer, sheet *matchstats.Sheet) error {
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return fmt.Errorf("rename summary sheet: %w", err)
	}
	if err := writeSummary(f, sheet, header); err != nil {
		return err
	}

	for _, m := range sheet.Maps {
		name := MapSheetName(m)
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("create sheet %q: %w", name, err)
		}
		if err := writeMapSheet(f, name, sheet, m, header); err != nil {
			return err
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// MapSheetName is the worksheet title for a map, e.g. "Map 2 - Search and Destroy".
func MapSheetName(m match.Map) string {
	name := fmt.Sprintf("Map %d - %s", m.Number, m.GameMode)
	if len(name) > excelize.MaxSheetNameLength {
		name = name[:excelize.MaxSheetNameLength]
	}
	return name
}

func writeSummary(f *excelize.File, sheet *matchstats.Sheet, header int) error {
	listing := sheet.Match
	result := sheet.Result()
	winner := ""
	if result.WinnerTeamID != nil {
		winner = teamName(listing, *result.WinnerTeamID)
	}

	rows := [][]any{
		{"Tournament", listing.TournamentName},
		{"Match", fmt.Sprintf("%s vs %s", listing.Team1.Name, listing.Team2.Name)},
		{"Format", string(listing.SeriesFormat)},
		{"Series", fmt.Sprintf("%d - %d", result.Team1Wins, result.Team2Wins)},
		{"Status", string(result.Status)},
		{"Winner", winner},
		{},
		{"Map", "Mode", "Name", listing.Team1.Name, listing.Team2.Name, "Winner"},
	}
	for _, m := range sheet.Maps {
		mapWinner := ""
		if m.WinnerTeamID != nil {
			mapWinner = teamName(listing, *m.WinnerTeamID)
		}
		rows = append(rows, []any{m.Number, string(m.GameMode), m.MapName, m.Team1Score, m.Team2Score, mapWinner})
	}

	if err := setRows(f, summarySheet, rows); err != nil {
		return err
	}
	if err := f.SetColStyle(summarySheet, "A", header); err != nil {
		return fmt.Errorf("style summary labels: %w", err)
	}
	if err := f.SetRowStyle(summarySheet, 8, 8, header); err != nil {
		return fmt.Errorf("style summary header: %w", err)
	}
	return f.SetColWidth(summarySheet, "A", "F", 18)
}

func writeMapSheet(f *excelize.File, name string, sheet *matchstats.Sheet, m match.Map, header int) error {
	head := []any{"Team", "Player"}
	for _, label := range matchstats.CounterLabels {
		head = append(head, label)
	}
	head = append(head, "MVP")

	rows := [][]any{head}
	appendRoster := func(teamLabel string, roster []player.Player) {
		for _, p := range roster {
			stat := sheet.Stat(m.ID, p.ID)
			row := []any{teamLabel, p.Name}
			for _, v := range stat.Counters.Values() {
				row = append(row, v)
			}
			mvp := ""
			if stat.MVP {
				mvp = "yes"
			}
			rows = append(rows, append(row, mvp))
		}
	}
	appendRoster(sheet.Match.Team1.Name, sheet.Team1Roster)
	appendRoster(sheet.Match.Team2.Name, sheet.Team2Roster)

	if err := setRows(f, name, rows); err != nil {
		return err
	}
	if err := f.SetRowStyle(name, 1, 1, header); err != nil {
		return fmt.Errorf("style %q header: %w", name, err)
	}
	if err := f.SetPanes(name, &excelize.Panes{Freeze: true, XSplit: 2, YSplit: 1, TopLeftCell: "C2", ActivePane: "bottomRight"}); err != nil {
		return fmt.Errorf("freeze %q panes: %w", name, err)
	}
	return f.SetColWidth(name, "A", "B", 18)
}

func setRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("resolve cell: %w", err)
		}
		values := row
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("write %q row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

func teamName(listing match.Listing, teamID int64) string {
	switch teamID {
	case listing.Team1ID:
		return listing.Team1.Name
	case listing.Team2ID:
		return listing.Team2.Name
	default:
		return ""
	}
}
