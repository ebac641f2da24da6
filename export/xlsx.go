package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/ezBadminton/badmintondraw/core"
	"github.com/xuri/excelize/v2"
)

const SummarySheet = "Summary"

// Excel limits sheet names to 31 characters
const maxSheetName = 31

var xlsxHeader = []any{"Match", "Round", "Court", "Time", "Team A", "Club A", "Score", "Club B", "Team B", "Status", "Winner"}

var standingsHeader = []any{"Group", "Rank", "Team", "Played", "Won", "Lost", "Points", "Diff"}

// Writes the tournament as a workbook with a summary sheet and
// one sheet per category. Group phase categories get their
// standings below the matches.
func WriteXLSX(w io.Writer, t *core.Tournament) error {
	f := excelize.NewFile()
	defer f.Close()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return err
	}
	taken := []string{SummarySheet}
	sheetNames := make([]string, 0, len(t.Categories))
	for _, c := range t.Categories {
		name := uniqueSheetName(c.Name, taken)
		taken = append(taken, name)
		sheetNames = append(sheetNames, name)
	}

	if err := writeSummary(f, t, sheetNames, bold); err != nil {
		return err
	}

	for i, c := range t.Categories {
		if _, err := f.NewSheet(sheetNames[i]); err != nil {
			return err
		}
		if err := writeCategory(f, sheetNames[i], c, bold); err != nil {
			return fmt.Errorf("failed to write sheet %q: %w", sheetNames[i], err)
		}
	}

	return f.Write(w)
}

func writeSummary(f *excelize.File, t *core.Tournament, sheetNames []string, bold int) error {
	rows := [][]any{
		{"Tournament", t.Name},
		{"Venue", orNA(t.Venue)},
		{"Date", orNA(t.Date)},
		{"Organizer", orNA(t.Organizer)},
		{"Last updated", t.LastUpdated.Format("2006-01-02 15:04")},
		{},
		{"Category", "Players", "Status", "Sheet"},
	}
	for i, c := range t.Categories {
		status := "Waiting for draw"
		if c.DrawDone {
			status = "Drawn"
		}
		rows = append(rows, []any{c.Name, len(c.Players), status, sheetNames[i]})
	}

	if err := setRows(f, SummarySheet, 1, rows); err != nil {
		return err
	}
	if err := f.SetCellStyle(SummarySheet, "A1", "A5", bold); err != nil {
		return err
	}
	if err := f.SetCellStyle(SummarySheet, "A7", "D7", bold); err != nil {
		return err
	}
	return f.SetColWidth(SummarySheet, "A", "D", 24)
}

func writeCategory(f *excelize.File, sheet string, c *core.Category, bold int) error {
	rows := [][]any{xlsxHeader}
	for _, r := range Rows(c) {
		score := Blank
		if r.Status == StatusCompleted {
			score = fmt.Sprintf("%v - %v", r.ScoreA, r.ScoreB)
		}
		rows = append(rows, []any{r.ID, r.Round, r.Court, r.Time, r.TeamA, r.ClubA, score, r.ClubB, r.TeamB, r.Status, r.Winner})
	}
	if err := setRows(f, sheet, 1, rows); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", "K1", bold); err != nil {
		return err
	}

	if len(c.Groups) > 0 {
		start := len(rows) + 2
		standings := [][]any{standingsHeader}
		groupStandings := c.Standings()
		for i, g := range c.Groups {
			for rank, s := range groupStandings[i] {
				team, _ := c.TeamByID(s.TeamID)
				standings = append(standings, []any{g.Name, rank + 1, TeamName(&team), s.Played, s.Won, s.Lost, s.Points, s.Diff})
			}
		}
		if err := setRows(f, sheet, start, standings); err != nil {
			return err
		}
		first, _ := excelize.CoordinatesToCellName(1, start)
		last, _ := excelize.CoordinatesToCellName(len(standingsHeader), start)
		if err := f.SetCellStyle(sheet, first, last, bold); err != nil {
			return err
		}
	}

	return f.SetColWidth(sheet, "A", "K", 16)
}

func setRows(f *excelize.File, sheet string, startRow int, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, startRow+i)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

// Returns a valid sheet name for the category that is not
// taken yet
func uniqueSheetName(name string, taken []string) string {
	base := strings.Map(func(r rune) rune {
		if strings.ContainsRune(`:\/?*[]`, r) {
			return '_'
		}
		return r
	}, strings.TrimSpace(name))
	base = strings.Trim(base, "'")
	if base == "" {
		base = "Category"
	}

	candidate := truncate(base, maxSheetName)
	for i := 2; containsFold(taken, candidate); i += 1 {
		suffix := fmt.Sprintf(" (%v)", i)
		candidate = truncate(base, maxSheetName-len(suffix)) + suffix
	}
	return candidate
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// Sheet names are case insensitive
func containsFold(names []string, name string) bool {
	for _, n := range names {
		if strings.EqualFold(n, name) {
			return true
		}
	}
	return false
}
