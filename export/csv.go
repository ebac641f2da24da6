package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/ezBadminton/badmintondraw/core"
)

// Lets spreadsheet programs detect UTF-8
const byteOrderMark = "\ufeff"

var csvHeader = []string{"Round", "Match", "Team A", "Score A", "Score B", "Team B", "Status", "Winner"}

// Writes the tournament as one CSV file with an info block at
// the top and a section per category
func WriteCSV(w io.Writer, t *core.Tournament) error {
	if _, err := io.WriteString(w, byteOrderMark); err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	records := [][]string{
		{"Tournament", t.Name},
		{"Venue", orNA(t.Venue)},
		{"Date", orNA(t.Date)},
		{"Organizer", orNA(t.Organizer)},
		{},
	}

	for _, c := range t.Categories {
		records = append(records, []string{fmt.Sprintf("--- %v ---", c.Name)}, csvHeader)
		for _, r := range Rows(c) {
			records = append(records, []string{
				r.Round,
				r.ID,
				r.TeamA,
				strconv.Itoa(r.ScoreA),
				strconv.Itoa(r.ScoreB),
				r.TeamB,
				r.Status,
				r.Winner,
			})
		}
		records = append(records, []string{})
	}

	if err := cw.WriteAll(records); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	return nil
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
