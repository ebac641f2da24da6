package core

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFillFiveTeams(t *testing.T) {
	teams := TeamSlice(5)
	bracket := BuildBracket(5, false)
	matches := FillBracket(teams, bracket)

	playIn := findMatch(t, matches, "p-0")
	semi1 := findMatch(t, matches, "m-1-0")
	semi2 := findMatch(t, matches, "m-1-1")

	eq1 := teamID(playIn.TeamA) == "t0"
	eq2 := teamID(playIn.TeamB) == "t1"
	if !eq1 || !eq2 {
		t.Fatal("The first two teams were not placed into the play-in")
	}

	eq1 = semi1.TeamA == nil && semi1.SlotA.Type == SourceWinnerOf
	eq2 = teamID(semi1.TeamB) == "t2"
	if !eq1 || !eq2 {
		t.Fatal("The third team did not take the bye side next to the play-in winner")
	}

	eq1 = teamID(semi2.TeamA) == "t3"
	eq2 = teamID(semi2.TeamB) == "t4"
	if !eq1 || !eq2 {
		t.Fatal("The last two teams did not take the second semi-final")
	}

	eq1 = semi2.SlotA.Type == SourcePair && semi2.SlotA.TeamID == "t3"
	eq2 = playIn.SlotB.Type == SourcePair && playIn.SlotB.TeamID == "t1"
	if !eq1 || !eq2 {
		t.Fatal("The filled sides did not become team sources")
	}

	if findMatch(t, bracket, "m-1-1").TeamA != nil || !findMatch(t, bracket, "m-1-1").SlotA.IsBye() {
		t.Fatal("Filling modified the input bracket")
	}
}

func TestFillRunsOut(t *testing.T) {
	bracket := BuildBracket(5, false)

	matches := FillBracket(TeamSlice(3), bracket)
	semi1 := findMatch(t, matches, "m-1-0")
	semi2 := findMatch(t, matches, "m-1-1")
	if teamID(semi1.TeamB) != "t2" {
		t.Fatal("The third team did not take the first bye side")
	}
	if semi2.TeamA != nil || semi2.TeamB != nil || !semi2.SlotA.IsBye() || !semi2.SlotB.IsBye() {
		t.Fatal("Sides without a team are not left as byes")
	}

	// A single team is not enough for a play-in
	matches = FillBracket(TeamSlice(1), bracket)
	playIn := findMatch(t, matches, "p-0")
	semi1 = findMatch(t, matches, "m-1-0")
	if playIn.TeamA != nil || teamID(semi1.TeamB) != "t0" {
		t.Fatal("A single team was not put into the first bye side")
	}
}

func TestFillWithoutTeams(t *testing.T) {
	bracket := BuildBracket(6, true)
	filled := FillBracket(nil, bracket)

	if diff := cmp.Diff(bracket, filled); diff != "" {
		t.Fatalf("Filling without teams changed the bracket (-want +got):\n%s", diff)
	}
}

func TestFillPowerOfTwo(t *testing.T) {
	teams := TeamSlice(8)
	matches := FillBracket(teams, BuildBracket(8, false))

	for i := range 4 {
		m := findMatch(t, matches, "m-1-"+string(rune('0'+i)))
		eq1 := teamID(m.TeamA) == teams[2*i].ID
		eq2 := teamID(m.TeamB) == teams[2*i+1].ID
		if !eq1 || !eq2 {
			t.Fatalf("The first round match %v did not get the teams in draw order", i)
		}
	}
}
