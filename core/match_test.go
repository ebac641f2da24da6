package core

import (
	"fmt"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
)

func NewScore(a, b int) *Score {
	return &Score{A: a, B: b}
}

// Returns num singles teams with ids t0, t1, ... that all
// belong to different clubs
func TeamSlice(num int) []Team {
	teams := make([]Team, 0, num)
	for i := range num {
		id := fmt.Sprintf("t%v", i)
		player := Player{ID: "p" + id, Name: "Player " + id, Club: "Club " + id, Code: PlayerCode(i)}
		team := Team{
			ID:      id,
			Code:    TeamCode(i, Singles),
			Players: []Player{player},
			Club:    player.Club,
		}
		teams = append(teams, team)
	}
	return teams
}

// Returns a generated roster of num players spread over
// numClubs clubs
func FakeRoster(seed int64, num, numClubs int) []Player {
	faker := gofakeit.New(uint64(seed))
	clubs := make([]string, 0, numClubs)
	for i := range numClubs {
		clubs = append(clubs, fmt.Sprintf("%v BC %v", faker.City(), i))
	}

	players := make([]Player, 0, num)
	for i := range num {
		player := Player{
			ID:   faker.UUID(),
			Name: faker.Name(),
			Club: clubs[faker.Number(0, numClubs-1)],
			Code: PlayerCode(i),
		}
		players = append(players, player)
	}
	return players
}

func findMatch(t *testing.T, matches []*Match, id string) *Match {
	t.Helper()
	for _, m := range matches {
		if m.ID == id {
			return m
		}
	}
	t.Fatalf("The match %v is not in the list", id)
	return nil
}

func teamID(team *Team) string {
	if team == nil {
		return ""
	}
	return team.ID
}

func TestScoreOutcome(t *testing.T) {
	m := &Match{}
	if m.Outcome() != Undecided {
		t.Fatal("A match without score is decided")
	}

	m.Score = NewScore(0, 0)
	if _, err := m.Score.GetWinner(); err != ErrZeroScore || m.IsDecided() {
		t.Fatal("A zero score is decided")
	}

	m.Score = NewScore(15, 15)
	if _, err := m.Score.GetWinner(); err != ErrEqualScore || m.IsDecided() {
		t.Fatal("An equal score is decided")
	}

	m.Score = NewScore(21, 0)
	if m.Outcome() != WonA {
		t.Fatal("A 21-0 score did not go to side A")
	}

	m.Score = NewScore(19, 21)
	if m.Outcome() != WonB {
		t.Fatal("A 19-21 score did not go to side B")
	}
}

func TestCodes(t *testing.T) {
	if PlayerCode(0) != "P-001" || PlayerCode(122) != "P-123" {
		t.Fatal("The player codes are not 1-based and zero padded")
	}
	if TeamCode(4, Singles) != "S-005" || TeamCode(11, Doubles) != "D-012" {
		t.Fatal("The team codes have the wrong prefix or number")
	}
}

func TestCreateTeams(t *testing.T) {
	players := FakeRoster(1, 5, 2)
	players[4].Club = ""

	singles := CreateTeams(players, Singles)
	if len(singles) != 5 {
		t.Fatal("Singles did not create one team per player")
	}

	doubles := CreateTeams(players, Doubles)
	if len(doubles) != 3 {
		t.Fatal("Doubles did not create one team per two players")
	}

	eq1 := doubles[0].Players[0].ID == players[0].ID
	eq2 := doubles[0].Players[1].ID == players[1].ID
	eq3 := doubles[1].Players[0].ID == players[2].ID
	if !eq1 || !eq2 || !eq3 {
		t.Fatal("The teams did not keep the player order")
	}

	if len(doubles[2].Players) != 1 || doubles[2].Club != DefaultClub {
		t.Fatal("The odd player did not form a team with the default club")
	}

	if doubles[1].Club != players[2].Club || doubles[1].Code != "D-002" {
		t.Fatal("The team did not get the club of the first player or the right code")
	}

	if doubles[0].ID == doubles[1].ID {
		t.Fatal("Two teams got the same id")
	}
}
