package core

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseCourts(t *testing.T) {
	expected := map[string][]string{
		"3":                  {"Court 1", "Court 2", "Court 3"},
		" 2 ":                {"Court 1", "Court 2"},
		"3.5":                {"Court 1", "Court 2", "Court 3"},
		"0.5":                {},
		"NaN":                {"NaN"},
		"0":                  {},
		"-2":                 {},
		"":                   {},
		"A,B":                {"A", "B"},
		" A , B ,,":          {"A", "B"},
		`"Hall 1, left", B`: {"Hall 1, left", "B"},
		"Center Court":       {"Center Court"},
	}

	for input, courts := range expected {
		got := ParseCourts(input)
		if diff := cmp.Diff(courts, got); diff != "" {
			t.Fatalf("The courts of %q are wrong (-want +got):\n%s", input, diff)
		}
	}
}

func TestScheduleTwoCourts(t *testing.T) {
	group := GenerateGroups(TeamSlice(3), 3)[0]
	matches := Schedule(group.Matches, "A,B", "08:00", 30)

	expected := []struct{ court, time string }{
		{"A", "08:00"},
		{"B", "08:00"},
		{"A", "08:30"},
	}
	for i, e := range expected {
		m := matches[i]
		if m.Court != e.court || m.ScheduledTime != e.time {
			t.Fatalf("Match %v was scheduled on %v at %v", i+1, m.Court, m.ScheduledTime)
		}
		if m.MatchNumber != i+1 {
			t.Fatalf("Match %v was numbered %v", i+1, m.MatchNumber)
		}
	}

	if group.Matches[0].Court != "" {
		t.Fatal("Scheduling modified its input")
	}
}

func TestScheduleSkipsLateRounds(t *testing.T) {
	matches := FillBracket(TeamSlice(8), BuildBracket(8, true))
	matches = Schedule(matches, "2", "10:00", 25)

	for _, m := range matches {
		switch m.RoundKey {
		case RoundQuarter:
			if m.Court == "" || m.ScheduledTime == "" {
				t.Fatalf("The quarter-final %v was not scheduled", m.ID)
			}
		default:
			if m.Court != "" || m.ScheduledTime != "" {
				t.Fatalf("The %v match %v was scheduled automatically", m.RoundKey, m.ID)
			}
		}
	}

	quarter4 := findMatch(t, matches, "m-1-3")
	if quarter4.Court != "Court 2" || quarter4.ScheduledTime != "10:25" {
		t.Fatal("The last quarter-final did not go on the second court after the first slot")
	}
}

// Ready matches go first, times wrap around at midnight and
// manually scheduled matches are kept
func TestScheduleOrder(t *testing.T) {
	matches := FillBracket(TeamSlice(9), BuildBracket(9, false))
	manual := findMatch(t, matches, "m-1-2")
	manual.Court = "Show Court"
	manual.ScheduledTime = "12:00"

	matches = Schedule(matches, "Main", "23:30", 20)

	expected := []struct {
		id   string
		time string
	}{
		{"p-0", "23:30"},
		{"m-1-1", "23:50"},
		{"m-1-3", "00:10"},
		{"m-1-0", "00:30"},
		{"m-1-2", "12:00"},
	}
	for i, e := range expected {
		m := findMatch(t, matches, e.id)
		if m.ScheduledTime != e.time {
			t.Fatalf("The match %v was scheduled at %v instead of %v", e.id, m.ScheduledTime, e.time)
		}
		// Numbers count from the start time on, past midnight
		if m.MatchNumber != i+1 {
			t.Fatalf("The match %v at %v has the number %v instead of %v", e.id, e.time, m.MatchNumber, i+1)
		}
	}

	if findMatch(t, matches, "m-1-2").Court != "Show Court" {
		t.Fatal("The court of a manually scheduled match was changed")
	}
}

func TestScheduleInvalidInput(t *testing.T) {
	matches := FillBracket(TeamSlice(8), BuildBracket(8, false))

	inputs := []struct {
		courts   string
		start    string
		duration int
	}{
		{"0", "08:00", 30},
		{"", "08:00", 30},
		{"2", "8am", 30},
		{"2", "08:00", -5},
	}
	for _, in := range inputs {
		got := Schedule(matches, in.courts, in.start, in.duration)
		if diff := cmp.Diff(matches, got); diff != "" {
			t.Fatalf("Scheduling with %+v changed the matches (-want +got):\n%s", in, diff)
		}
	}
}

func TestClearSchedule(t *testing.T) {
	matches := FillBracket(TeamSlice(8), BuildBracket(8, false))
	final := findMatch(t, matches, "m-3-0")
	final.Court = "Center"
	final.ScheduledTime = "18:00"

	matches = ClearSchedule(Schedule(matches, "4", "09:00", 30))
	for _, m := range matches {
		if m.ID != final.ID && (m.Court != "" || m.ScheduledTime != "") {
			t.Fatalf("The schedule of %v was not cleared", m.ID)
		}
	}
	if findMatch(t, matches, final.ID).ScheduledTime != "18:00" {
		t.Fatal("Clearing the schedule removed the manual final time")
	}
}

func TestRenumber(t *testing.T) {
	matches := FillBracket(TeamSlice(9), BuildBracket(9, false))
	semi1 := findMatch(t, matches, "m-2-0")
	semi1.Court = "A"
	semi1.ScheduledTime = "09:00"
	quarter4 := findMatch(t, matches, "m-1-3")
	quarter4.Court = "B"
	quarter4.ScheduledTime = "09:00"

	matches = Renumber(matches, "")

	expected := map[string]int{
		"m-2-0": 1,
		"m-1-3": 2,
		"p-0":   3,
		"m-1-1": 4,
		"m-1-2": 5,
		"m-1-0": 6,
		"m-2-1": 7,
		"m-3-0": 8,
	}
	for id, number := range expected {
		if findMatch(t, matches, id).MatchNumber != number {
			t.Fatalf("The match %v has the number %v instead of %v", id, findMatch(t, matches, id).MatchNumber, number)
		}
	}
}
