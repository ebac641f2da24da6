package core

// Points a team gets for a won group match
const WinPoints = 2

// The standing of a team in its group
type TeamStats struct {
	TeamID string `json:"teamId"`
	Played int    `json:"played"`
	Won    int    `json:"won"`
	Lost   int    `json:"lost"`
	Points int    `json:"points"`
	// Sum of the own points minus the opponent's points
	Diff int `json:"diff"`
}

// Creates the stats for each of the teams from the decided
// matches. The stats are in the order of the teams.
//
// Only matches where both opponents are among the teams are
// counted.
func CreateStats(teams []Team, matches []*Match) []TeamStats {
	stats := make([]TeamStats, 0, len(teams))
	index := make(map[string]int, len(teams))
	for i, t := range teams {
		index[t.ID] = i
		stats = append(stats, TeamStats{TeamID: t.ID})
	}

	for _, m := range matches {
		extractMatchStats(m, index, stats)
	}

	return stats
}

func extractMatchStats(match *Match, index map[string]int, stats []TeamStats) {
	if !match.IsReady() {
		return
	}

	i1, ok1 := index[match.TeamA.ID]
	i2, ok2 := index[match.TeamB.ID]
	if !ok1 || !ok2 {
		return
	}

	outcome := match.Outcome()
	if outcome == Undecided {
		return
	}

	s1 := &stats[i1]
	s2 := &stats[i2]

	s1.Played += 1
	s2.Played += 1

	if outcome == WonA {
		s1.Won += 1
		s1.Points += WinPoints
		s2.Lost += 1
	} else {
		s2.Won += 1
		s2.Points += WinPoints
		s1.Lost += 1
	}

	diff := match.Score.A - match.Score.B
	s1.Diff += diff
	s2.Diff -= diff
}
