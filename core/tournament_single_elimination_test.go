package core

import (
	"errors"
	"testing"
)

func countRound(matches []*Match, key RoundKey) int {
	count := 0
	for _, m := range matches {
		if m.RoundKey == key {
			count += 1
		}
	}
	return count
}

func TestBracketSize(t *testing.T) {
	for teamCount := 2; teamCount <= 70; teamCount += 1 {
		for _, thirdPlace := range []bool{false, true} {
			matches := BuildBracket(teamCount, thirdPlace)

			mainSize := 1 << getNumRounds(teamCount)
			numPlayIns := teamCount - mainSize
			numThirdPlace := 0
			if thirdPlace && mainSize >= 4 {
				numThirdPlace = 1
			}

			if len(matches) != teamCount-1+numThirdPlace {
				t.Fatalf("A bracket of %v teams has %v matches", teamCount, len(matches))
			}
			if countRound(matches, RoundPlayIn) != numPlayIns {
				t.Fatalf("A bracket of %v teams has the wrong number of play-ins", teamCount)
			}
			if countRound(matches, RoundThirdPlace) != numThirdPlace {
				t.Fatalf("A bracket of %v teams has the wrong number of third place matches", teamCount)
			}
			if countRound(matches, RoundFinal) != 1 {
				t.Fatalf("A bracket of %v teams does not have one final", teamCount)
			}

			if err := ValidateBracket(matches); err != nil {
				t.Fatalf("A bracket of %v teams is invalid: %v", teamCount, err)
			}

			for i, m := range matches {
				if m.MatchNumber < 1 || m.MatchNumber > len(matches) {
					t.Fatalf("Match %v of a %v team bracket has no valid number", i, teamCount)
				}
			}
		}
	}
}

func TestTooFewTeams(t *testing.T) {
	for _, n := range []int{-3, 0, 1} {
		if len(BuildBracket(n, true)) != 0 {
			t.Fatalf("A bracket was built for %v teams", n)
		}
	}
}

// 5 teams: one play-in, two semi-finals, a final
func TestFiveTeamBracket(t *testing.T) {
	matches := BuildBracket(5, false)
	if len(matches) != 4 {
		t.Fatal("The 5 team bracket does not have 4 matches")
	}

	playIn := findMatch(t, matches, "p-0")
	semi1 := findMatch(t, matches, "m-1-0")
	semi2 := findMatch(t, matches, "m-1-1")
	final := findMatch(t, matches, "m-2-0")

	eq1 := playIn.RoundKey == RoundPlayIn && playIn.RoundIndex == 0
	eq2 := semi1.RoundKey == RoundSemi && semi2.RoundKey == RoundSemi
	eq3 := final.RoundKey == RoundFinal && final.RoundIndex == 2
	if !eq1 || !eq2 || !eq3 {
		t.Fatal("The rounds of the 5 team bracket have the wrong labels")
	}

	eq1 = playIn.Next.MatchID == semi1.ID && playIn.Next.Target == SlotA
	eq2 = semi1.SlotA.Type == SourceWinnerOf && semi1.SlotA.MatchID == playIn.ID
	if !eq1 || !eq2 {
		t.Fatal("The play-in winner does not go to the first side of the first semi-final")
	}

	eq1 = semi1.SlotB.IsBye() && semi2.SlotA.IsBye() && semi2.SlotB.IsBye()
	if !eq1 {
		t.Fatal("The remaining first round sides are not byes")
	}

	if semi1.NextLoser != nil || semi2.NextLoser != nil {
		t.Fatal("The semi-finals have a loser link without a third place match")
	}

	if final.Next != nil {
		t.Fatal("The final has a next match")
	}
}

// 8 teams with third place match: QF, SF, F and 3RD
func TestEightTeamBracket(t *testing.T) {
	matches := BuildBracket(8, true)
	if len(matches) != 8 {
		t.Fatal("The 8 team bracket does not have 8 matches")
	}

	eq1 := countRound(matches, RoundQuarter) == 4
	eq2 := countRound(matches, RoundSemi) == 2
	eq3 := countRound(matches, RoundFinal) == 1
	eq4 := countRound(matches, RoundPlayIn) == 0
	if !eq1 || !eq2 || !eq3 || !eq4 {
		t.Fatal("The 8 team bracket has the wrong rounds")
	}

	qf2 := findMatch(t, matches, "m-1-1")
	qf3 := findMatch(t, matches, "m-1-2")
	if qf2.Next.MatchID != "m-2-0" || qf2.Next.Target != SlotB {
		t.Fatal("The second quarter-final does not feed side B of the first semi-final")
	}
	if qf3.Next.MatchID != "m-2-1" || qf3.Next.Target != SlotA {
		t.Fatal("The third quarter-final does not feed side A of the second semi-final")
	}

	semi1 := findMatch(t, matches, "m-2-0")
	semi2 := findMatch(t, matches, "m-2-1")
	eq1 = semi1.NextLoser.MatchID == "m-3rd" && semi1.NextLoser.Target == SlotA
	eq2 = semi2.NextLoser.MatchID == "m-3rd" && semi2.NextLoser.Target == SlotB
	if !eq1 || !eq2 {
		t.Fatal("The semi-final losers do not feed the third place match")
	}

	final := findMatch(t, matches, "m-3-0")
	thirdPlace := findMatch(t, matches, "m-3rd")
	if thirdPlace.RoundIndex != final.RoundIndex || thirdPlace.Position != 1 {
		t.Fatal("The third place match is not next to the final")
	}

	for _, m := range matches {
		if m.RoundKey == RoundQuarter && (m.SlotA.Type != SourceBye || m.SlotB.Type != SourceBye) {
			t.Fatal("The first round sides of a power of two bracket are not open for the draw")
		}
	}
}

func TestPlayInSpread(t *testing.T) {
	matches := BuildBracket(13, false)

	expected := map[string]Link{
		"p-0": {MatchID: "m-1-0", Target: SlotA},
		"p-1": {MatchID: "m-1-3", Target: SlotA},
		"p-2": {MatchID: "m-1-1", Target: SlotA},
		"p-3": {MatchID: "m-1-2", Target: SlotA},
		"p-4": {MatchID: "m-1-2", Target: SlotB},
	}

	for id, link := range expected {
		playIn := findMatch(t, matches, id)
		if *playIn.Next != link {
			t.Fatalf("The play-in %v feeds %v instead of %v", id, *playIn.Next, link)
		}
	}
}

func TestRoundLabels(t *testing.T) {
	matches := BuildBracket(128, false)

	expected := []RoundKey{Round128, Round64, Round32, Round16, RoundQuarter, RoundSemi, RoundFinal}
	for _, m := range matches {
		if m.RoundKey != expected[m.RoundIndex-1] {
			t.Fatalf("The round %v is labeled %v", m.RoundIndex, m.RoundKey)
		}
	}

	matches = BuildBracket(256, false)
	for _, m := range matches {
		if m.RoundIndex <= 2 && m.RoundKey != Round128 {
			t.Fatal("Rounds further away from the final are not labeled R128")
		}
	}
}

func TestValidateBracket(t *testing.T) {
	matches := BuildBracket(8, true)

	broken := cloneMatches(matches)
	findMatch(t, broken, "m-1-0").Next.MatchID = "unknown"
	if err := ValidateBracket(broken); !errors.Is(err, ErrDanglingLink) {
		t.Fatal("A link to an unknown match did not error")
	}

	broken = cloneMatches(matches)
	findMatch(t, broken, "m-1-1").Next.Target = SlotA
	if err := ValidateBracket(broken); !errors.Is(err, ErrDoubleFeed) {
		t.Fatal("Two links into the same side did not error")
	}

	broken = cloneMatches(matches)
	findMatch(t, broken, "m-3-0").Next = &Link{MatchID: "m-1-0", Target: SlotA}
	if err := ValidateBracket(broken); !errors.Is(err, ErrBracketCycle) {
		t.Fatal("A cyclic link did not error")
	}

	broken = cloneMatches(matches)
	broken = append(broken, findMatch(t, broken, "m-1-0").clone())
	if err := ValidateBracket(broken); !errors.Is(err, ErrDuplicateMatch) {
		t.Fatal("A duplicate match id did not error")
	}
}

func TestEditingPolicy(t *testing.T) {
	matches := FillBracket(TeamSlice(4), BuildBracket(4, true))

	semi1 := findMatch(t, matches, "m-1-0")
	semi2 := findMatch(t, matches, "m-1-1")
	semi1.Score = NewScore(21, 10)
	semi2.Score = NewScore(21, 12)
	matches = Propagate(matches)

	editable := EditableMatches(matches)
	if len(editable) != 2 {
		t.Fatal("The decided semi-finals are not editable")
	}

	findMatch(t, matches, "m-2-0").Score = NewScore(0, 0)
	if len(EditableMatches(matches)) != 2 {
		t.Fatal("A placeholder score in the final locked the semi-finals")
	}

	findMatch(t, matches, "m-2-0").Score = NewScore(21, 19)

	policy, err := NewEliminationEditingPolicy(matches)
	if err != nil {
		t.Fatal(err)
	}

	if policy.CanEdit("m-1-0") || policy.CanEdit("m-1-1") {
		t.Fatal("A semi-final is editable after the final has a result")
	}
	if !policy.CanEdit("m-2-0") || !policy.CanEdit("m-3rd") {
		t.Fatal("The final or the third place match is not editable")
	}

	editable = policy.EditableMatches()
	if len(editable) != 1 || editable[0].ID != "m-2-0" {
		t.Fatal("The decided final is not the only editable match")
	}
}

func TestDownstream(t *testing.T) {
	matches := BuildBracket(8, true)
	g, err := NewBracketGraph(matches)
	if err != nil {
		t.Fatal(err)
	}

	downstream := g.Downstream("m-1-0")
	ids := make([]string, 0, len(downstream))
	for _, m := range downstream {
		ids = append(ids, m.ID)
	}

	if len(ids) != 3 || ids[0] != "m-2-0" {
		t.Fatalf("The first quarter-final affects %v", ids)
	}
}
