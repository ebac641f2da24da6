package core

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// Sets the score of the group match between the two teams
func scoreGroupMatch(t *testing.T, group Group, a, b string, scoreA, scoreB int) {
	t.Helper()
	for _, m := range group.Matches {
		if teamID(m.TeamA) == a && teamID(m.TeamB) == b {
			m.Score = NewScore(scoreA, scoreB)
			return
		}
		if teamID(m.TeamA) == b && teamID(m.TeamB) == a {
			m.Score = NewScore(scoreB, scoreA)
			return
		}
	}
	t.Fatalf("The group has no match between %v and %v", a, b)
}

func TestRankings(t *testing.T) {
	group := GenerateGroups(TeamSlice(4), 4)[0]
	if len(group.Matches) != 6 {
		t.Fatal("A group of 4 does not have 6 matches")
	}

	scoreGroupMatch(t, group, "t0", "t1", 21, 10)
	scoreGroupMatch(t, group, "t0", "t2", 21, 19)
	scoreGroupMatch(t, group, "t1", "t2", 21, 5)

	stats := Rankings(group)

	expected := []TeamStats{
		{TeamID: "t0", Played: 2, Won: 2, Lost: 0, Points: 4, Diff: 13},
		{TeamID: "t1", Played: 2, Won: 1, Lost: 1, Points: 2, Diff: 5},
		{TeamID: "t3", Played: 0, Won: 0, Lost: 0, Points: 0, Diff: 0},
		{TeamID: "t2", Played: 2, Won: 0, Lost: 2, Points: 0, Diff: -18},
	}
	if diff := cmp.Diff(expected, stats); diff != "" {
		t.Fatalf("The rankings are wrong (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff(stats, Rankings(group)); diff != "" {
		t.Fatal("Ranking the same scores twice gave a different order")
	}
}

func TestRankingsIgnoreUndecided(t *testing.T) {
	group := GenerateGroups(TeamSlice(3), 3)[0]
	scoreGroupMatch(t, group, "t0", "t1", 0, 0)
	scoreGroupMatch(t, group, "t1", "t2", 15, 15)

	for _, s := range Rankings(group) {
		if s.Played != 0 || s.Points != 0 || s.Diff != 0 {
			t.Fatalf("The undecided matches were counted for %v", s.TeamID)
		}
	}
}

func TestRankingTies(t *testing.T) {
	group := GenerateGroups(TeamSlice(4), 4)[0]
	scoreGroupMatch(t, group, "t0", "t1", 21, 11)
	scoreGroupMatch(t, group, "t2", "t3", 21, 11)

	stats := Rankings(group)
	if stats[0].TeamID != "t0" || stats[1].TeamID != "t2" {
		t.Fatal("Tied teams did not keep their group order")
	}

	ties := RankingTies(stats)
	eq1 := len(ties) == 2
	eq2 := eq1 && len(ties[0]) == 2 && ties[0][0].Points == WinPoints && ties[1][0].Points == 0
	if !eq1 || !eq2 {
		t.Fatal("The two ties of the group were not found")
	}

	if len(BlockingTies(stats, 2)) != 0 {
		t.Fatal("A cut between two ties was reported as blocking")
	}

	blocking := BlockingTies(stats, 1)
	if len(blocking) != 1 || len(blocking[0]) != 2 || blocking[0][0].Points != WinPoints {
		t.Fatal("The tie on the first place was not reported as blocking")
	}
}

func TestQualifiers(t *testing.T) {
	groups := GenerateGroups(TeamSlice(6), 3)
	scoreGroupMatch(t, groups[0], "t1", "t0", 21, 4)
	scoreGroupMatch(t, groups[0], "t2", "t0", 21, 8)
	scoreGroupMatch(t, groups[0], "t1", "t2", 21, 17)
	scoreGroupMatch(t, groups[1], "t5", "t3", 21, 9)
	scoreGroupMatch(t, groups[1], "t5", "t4", 21, 9)

	qualifiers, err := Qualifiers(groups, 2)
	if err != nil {
		t.Fatal(err)
	}

	got := teamIDs(qualifiers)
	expected := []string{"t1", "t2", "t5", "t3"}
	if diff := cmp.Diff(expected, got); diff != "" {
		t.Fatalf("The qualifiers are wrong (-want +got):\n%s", diff)
	}

	// t3 and t4 are level on the cut of the second group
	ties := QualificationTies(groups, 2)
	if len(ties) != 1 || len(ties[0]) != 2 {
		t.Fatal("The tie on the qualification cut was not reported")
	}
}

func TestTooFewQualifiers(t *testing.T) {
	groups := GenerateGroups(TeamSlice(4), 4)

	_, err := Qualifiers(groups, 1)
	if !errors.Is(err, ErrTooFewQualifiers) {
		t.Fatal("A single qualifier was accepted")
	}

	_, err = Qualifiers(groups, 0)
	if !errors.Is(err, ErrTooFewQualifiers) {
		t.Fatal("Advancing no teams was accepted")
	}

	_, err = Qualifiers(nil, 2)
	if !errors.Is(err, ErrTooFewQualifiers) {
		t.Fatal("Qualifiers were found without groups")
	}
}
