package core

import (
	"fmt"
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// The club of players who did not name one
const DefaultClub = "Independent"

type EventType string

const (
	Singles EventType = "SINGLES"
	Doubles EventType = "DOUBLES"
)

// Number of players in one team of this event type
func (e EventType) TeamSize() int {
	if e == Doubles {
		return 2
	}
	return 1
}

type Player struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Club string `json:"club"`
	Code string `json:"code"`
}

// A team of 1 (singles) or 2 (doubles) players.
//
// Teams are rebuilt from the roster whenever it changes so
// their IDs are not stable across roster edits.
type Team struct {
	ID      string   `json:"id"`
	Code    string   `json:"teamCode"`
	Players []Player `json:"players"`
	// The club of the first player
	Club string `json:"club"`
	// 0 means unseeded
	Seed int `json:"seed,omitempty"`
}

func (t *Team) Name() string {
	names := make([]string, 0, len(t.Players))
	for _, p := range t.Players {
		names = append(names, p.Name)
	}
	return strings.Join(names, " & ")
}

func (t *Team) clone() *Team {
	if t == nil {
		return nil
	}
	c := *t
	c.Players = append([]Player(nil), t.Players...)
	return &c
}

// Returns the player code for the player at the 0-based index.
// e.g. P-001 for index 0
func PlayerCode(index int) string {
	return fmt.Sprintf("P-%03d", index+1)
}

// Returns the team code for the team at the 0-based index.
// Singles teams are prefixed with S, doubles teams with D.
func TeamCode(index int, eventType EventType) string {
	prefix := "S"
	if eventType == Doubles {
		prefix = "D"
	}
	return fmt.Sprintf("%v-%03d", prefix, index+1)
}

// Groups the players into teams in the given order.
//
// Doubles teams take the players pair-wise. An odd player
// at the end forms a team on their own.
func CreateTeams(players []Player, eventType EventType) []Team {
	step := eventType.TeamSize()
	batch := gonanoid.Must(10)

	teams := make([]Team, 0, (len(players)+step-1)/step)
	for i := 0; i < len(players); i += step {
		index := i / step
		teamPlayers := append([]Player(nil), players[i:min(i+step, len(players))]...)

		club := teamPlayers[0].Club
		if club == "" {
			club = DefaultClub
		}

		team := Team{
			ID:      fmt.Sprintf("team-%v-%v", batch, index),
			Code:    TeamCode(index, eventType),
			Players: teamPlayers,
			Club:    club,
		}
		teams = append(teams, team)
	}

	return teams
}
