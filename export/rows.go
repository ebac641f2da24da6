package export

import (
	"cmp"
	"slices"

	"github.com/ezBadminton/badmintondraw/core"
)

const (
	StatusCompleted = "Completed"
	StatusReady     = "Ready"
	StatusPending   = "Pending"
)

// Shown for a side whose team is not known yet
const UnknownTeam = "TBD"

// Shown for empty cells
const Blank = "-"

// One match as a spreadsheet row
type Row struct {
	ID     string `json:"id"`
	Round  string `json:"round"`
	Court  string `json:"court"`
	Time   string `json:"time"`
	TeamA  string `json:"teamA"`
	ClubA  string `json:"clubA"`
	ScoreA int    `json:"scoreA"`
	ScoreB int    `json:"scoreB"`
	ClubB  string `json:"clubB"`
	TeamB  string `json:"teamB"`
	Status string `json:"status"`
	Winner string `json:"winner"`
}

// Returns the rows of all matches of the category ordered by
// round and then position. Group matches come first.
func Rows(category *core.Category) []Row {
	matches := slices.Clone(category.AllMatches())
	slices.SortStableFunc(matches, func(a, b *core.Match) int {
		if c := cmp.Compare(a.RoundIndex, b.RoundIndex); c != 0 {
			return c
		}
		return cmp.Compare(a.Position, b.Position)
	})

	rows := make([]Row, 0, len(matches))
	for _, m := range matches {
		rows = append(rows, matchRow(m))
	}
	return rows
}

func matchRow(m *core.Match) Row {
	row := Row{
		ID:     m.ID,
		Round:  string(m.RoundKey),
		Court:  orBlank(m.Court),
		Time:   orBlank(m.ScheduledTime),
		TeamA:  TeamName(m.TeamA),
		ClubA:  club(m.TeamA),
		ClubB:  club(m.TeamB),
		TeamB:  TeamName(m.TeamB),
		Status: StatusPending,
		Winner: Blank,
	}

	if m.Score != nil {
		row.ScoreA = m.Score.A
		row.ScoreB = m.Score.B
	}

	switch {
	case m.Winner() != nil:
		row.Status = StatusCompleted
		row.Winner = TeamName(m.Winner())
	case m.IsReady():
		row.Status = StatusReady
	}

	return row
}

func TeamName(team *core.Team) string {
	if team == nil {
		return UnknownTeam
	}
	return team.Name()
}

func club(team *core.Team) string {
	if team == nil {
		return Blank
	}
	return orBlank(team.Club)
}

func orBlank(s string) string {
	if s == "" {
		return Blank
	}
	return s
}
