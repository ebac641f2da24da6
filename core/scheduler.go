package core

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/go-andiamo/splitter"
)

// Layout of scheduled times
const ClockLayout = "15:04"

// Rounds that organizers put on court by hand
var manualRounds = []RoundKey{RoundSemi, RoundFinal, RoundThirdPlace}

var courtSplitter, _ = splitter.NewSplitter(',', splitter.DoubleQuotes)

// Parses the court input of the organizer.
//
// A plain number n yields the courts "Court 1" to "Court n"
// (3.5 yields 3 courts).
// Anything else is read as a comma separated list of court
// names. Names that contain a comma can be put in double quotes.
// Blank names are dropped.
func ParseCourts(input string) []string {
	input = strings.TrimSpace(input)
	if !strings.Contains(input, ",") {
		if f, err := strconv.ParseFloat(input, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
			n := int(f)
			courts := make([]string, 0, max(n, 0))
			for i := range n {
				courts = append(courts, fmt.Sprintf("Court %v", i+1))
			}
			return courts
		}
	}

	parts, err := courtSplitter.Split(input)
	if err != nil {
		// Unbalanced quotes
		parts = strings.Split(input, ",")
	}

	courts := make([]string, 0, len(parts))
	for _, p := range parts {
		name := strings.TrimSpace(strings.Trim(strings.TrimSpace(p), `"`))
		if name != "" {
			courts = append(courts, name)
		}
	}
	return courts
}

// Parses a HH:MM time of day
func ParseClock(s string) (time.Time, error) {
	return time.Parse(ClockLayout, strings.TrimSpace(s))
}

// Assigns a court and a time to the matches that do not have a
// scheduled time yet. Semi-finals, the final and the third place
// match are left to the organizer.
//
// Matches with both teams known go first, then earlier rounds,
// then lower positions. The courts are taken in turns and each
// court starts at startTime with one match every durationMinutes.
// Times wrap around at midnight.
//
// Without courts, with an invalid start time or a negative
// duration the matches are returned unchanged. The result is
// renumbered.
func Schedule(matches []*Match, courtNames string, startTime string, durationMinutes int) []*Match {
	scheduled := cloneMatches(matches)

	courts := ParseCourts(courtNames)
	start, err := ParseClock(startTime)
	if len(courts) == 0 || err != nil || durationMinutes < 0 {
		return scheduled
	}

	eligible := make([]*Match, 0, len(scheduled))
	for _, m := range scheduled {
		if m.ScheduledTime == "" && !slices.Contains(manualRounds, m.RoundKey) {
			eligible = append(eligible, m)
		}
	}
	slices.SortStableFunc(eligible, compareReadiness)

	courtUsage := make([]int, len(courts))
	for i, m := range eligible {
		court := i % len(courts)
		orderInCourt := courtUsage[court]
		courtUsage[court] += 1

		offset := time.Duration(orderInCourt*durationMinutes) * time.Minute
		m.Court = courts[court]
		m.ScheduledTime = start.Add(offset).Format(ClockLayout)
	}

	return Renumber(scheduled, startTime)
}

// Removes court and time from all matches that [Schedule]
// assigns automatically
func ClearSchedule(matches []*Match) []*Match {
	cleared := cloneMatches(matches)
	for _, m := range cleared {
		if !slices.Contains(manualRounds, m.RoundKey) {
			m.Court = ""
			m.ScheduledTime = ""
		}
	}
	return cleared
}

// Assigns the match numbers 1..n in display order.
//
// Scheduled matches come first ordered by time and then court.
// The day starts at dayStart (midnight when it is not a valid
// time) so times before it count as after midnight.
// The rest follows with matches that have both teams known
// first, then by round and position.
func Renumber(matches []*Match, dayStart string) []*Match {
	renumbered := cloneMatches(matches)

	start, err := ParseClock(dayStart)
	if err != nil {
		start, _ = ParseClock("00:00")
	}

	order := slices.Clone(renumbered)
	slices.SortStableFunc(order, func(a, b *Match) int {
		return compareMatchOrder(a, b, start)
	})
	for i, m := range order {
		m.MatchNumber = i + 1
	}

	return renumbered
}

// Returns the minutes from dayStart to the clock time. Times
// before dayStart are on the next day.
func minutesSince(clock string, dayStart time.Time) (int, bool) {
	t, err := ParseClock(clock)
	if err != nil {
		return 0, false
	}
	minutes := int(t.Sub(dayStart).Minutes())
	if minutes < 0 {
		minutes += 24 * 60
	}
	return minutes, true
}

func compareMatchOrder(a, b *Match, dayStart time.Time) int {
	scheduledA := a.ScheduledTime != ""
	scheduledB := b.ScheduledTime != ""

	switch {
	case scheduledA && scheduledB:
		minutesA, okA := minutesSince(a.ScheduledTime, dayStart)
		minutesB, okB := minutesSince(b.ScheduledTime, dayStart)
		c := strings.Compare(a.ScheduledTime, b.ScheduledTime)
		if okA && okB {
			c = cmp.Compare(minutesA, minutesB)
		}
		if c != 0 {
			return c
		}
		return strings.Compare(a.Court, b.Court)
	case scheduledA:
		return -1
	case scheduledB:
		return 1
	}

	return compareReadiness(a, b)
}

func compareReadiness(a, b *Match) int {
	if c := cmp.Compare(readiness(b), readiness(a)); c != 0 {
		return c
	}
	if c := cmp.Compare(a.RoundIndex, b.RoundIndex); c != 0 {
		return c
	}
	return cmp.Compare(a.Position, b.Position)
}

func readiness(m *Match) int {
	if m.IsReady() {
		return 1
	}
	return 0
}
