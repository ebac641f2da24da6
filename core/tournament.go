package core

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
)

// The whole state of one tournament. It is saved and loaded as
// one document.
type Tournament struct {
	ID        string `json:"id"`
	Name      string `json:"tournamentName"`
	Venue     string `json:"venue"`
	Date      string `json:"date"`
	Organizer string `json:"organizer"`

	// The web app URL that the tournament is synced to
	SheetURL string `json:"googleSheetId,omitempty"`
	// The spreadsheet that the web app reported back
	SpreadsheetURL string `json:"linkedSpreadsheetUrl,omitempty"`

	Categories []*Category `json:"categories"`

	ClubProtection bool `json:"clubProtection"`
	// Number of courts or comma separated court names
	Courts string `json:"courtCount"`
	// Minutes per match
	MatchDuration int `json:"matchDuration"`
	// HH:MM
	StartTime string `json:"startTime"`

	LastUpdated time.Time `json:"lastUpdated"`
}

// The listing entry of a saved tournament
type TournamentMetadata struct {
	ID          string    `json:"id" bson:"id"`
	Name        string    `json:"name" bson:"name"`
	Date        string    `json:"date" bson:"date"`
	Venue       string    `json:"venue" bson:"venue"`
	PlayerCount int       `json:"playerCount" bson:"playerCount"`
	LastUpdated time.Time `json:"lastUpdated" bson:"lastUpdated"`
	CloudLinked bool      `json:"isCloudLinked" bson:"isCloudLinked"`
}

func NewTournament(name string) *Tournament {
	return &Tournament{
		ID:             uuid.NewString(),
		Name:           name,
		Categories:     []*Category{},
		ClubProtection: true,
		Courts:         "4",
		MatchDuration:  30,
		StartTime:      "08:00",
		LastUpdated:    time.Now().UTC(),
	}
}

func (t *Tournament) AddCategory(category *Category) {
	t.Categories = append(t.Categories, category)
}

// Returns the category with the given id. A category name
// (case insensitive) works as well.
func (t *Tournament) Category(idOrName string) (*Category, error) {
	for _, c := range t.Categories {
		if c.ID == idOrName {
			return c, nil
		}
	}
	for _, c := range t.Categories {
		if strings.EqualFold(c.Name, idOrName) {
			return c, nil
		}
	}
	return nil, fmt.Errorf("%w: %v", ErrCategoryNotFound, idOrName)
}

func (t *Tournament) RemoveCategory(id string) error {
	i := slices.IndexFunc(t.Categories, func(c *Category) bool { return c.ID == id })
	if i < 0 {
		return fmt.Errorf("%w: %v", ErrCategoryNotFound, id)
	}
	t.Categories = slices.Delete(t.Categories, i, i+1)
	return nil
}

func (t *Tournament) PlayerCount() int {
	count := 0
	for _, c := range t.Categories {
		count += len(c.Players)
	}
	return count
}

func (t *Tournament) Touch() {
	t.LastUpdated = time.Now().UTC()
}

func (t *Tournament) Metadata() TournamentMetadata {
	return TournamentMetadata{
		ID:          t.ID,
		Name:        t.Name,
		Date:        t.Date,
		Venue:       t.Venue,
		PlayerCount: t.PlayerCount(),
		LastUpdated: t.LastUpdated,
		CloudLinked: t.SheetURL != "",
	}
}
