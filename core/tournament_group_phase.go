package core

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// A round robin group. Its standings are derived from the
// match scores with [Rankings] and never stored.
type Group struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Teams   []Team   `json:"teams"`
	Matches []*Match `json:"matches"`
}

// Splits the teams into groups of teamsPerGroup in the given
// order (the last group takes the rest) and creates the round
// robin matches of each group.
//
// Returns an empty slice when teamsPerGroup is less than 1 or
// there are no teams.
func GenerateGroups(teams []Team, teamsPerGroup int) []Group {
	if teamsPerGroup < 1 || len(teams) == 0 {
		return []Group{}
	}

	numGroups := len(teams) / teamsPerGroup
	if len(teams)%teamsPerGroup != 0 {
		numGroups += 1
	}

	batch := gonanoid.Must(10)
	groups := make([]Group, 0, numGroups)
	for i := range numGroups {
		groupTeams := teams[i*teamsPerGroup : min((i+1)*teamsPerGroup, len(teams))]
		group := Group{
			ID:    fmt.Sprintf("group-%v-%v", batch, i),
			Name:  "Group " + GroupLetter(i),
			Teams: append([]Team(nil), groupTeams...),
		}
		group.Matches = createGroupMatches(group.ID, group.Teams)
		groups = append(groups, group)
	}

	return groups
}

func createGroupMatches(groupID string, teams []Team) []*Match {
	pairings := roundRobinPairings(len(teams))
	matches := make([]*Match, 0, len(pairings))
	for i, pairing := range pairings {
		teamA := teams[pairing[0]]
		teamB := teams[pairing[1]]
		match := &Match{
			ID:         fmt.Sprintf("gm-%v-%v", groupID, i),
			RoundKey:   RoundGroup,
			RoundIndex: 0,
			Position:   i + 1,
			SlotA:      NewPairSource(teamA.ID),
			SlotB:      NewPairSource(teamB.ID),
			TeamA:      teamA.clone(),
			TeamB:      teamB.clone(),
			GroupID:    groupID,
		}
		matches = append(matches, match)
	}
	return matches
}

// Returns the letter(s) of the group at the 0-based index.
// A to Z, then AA, AB, ...
func GroupLetter(index int) string {
	letters := ""
	for index >= 0 {
		letters = string(rune('A'+index%26)) + letters
		index = index/26 - 1
	}
	return letters
}

// Returns the matches of all groups with the matches of the
// same position taken from each group in turn
func GroupPhaseMatches(groups []Group) []*Match {
	maxMatches := 0
	total := 0
	for _, g := range groups {
		maxMatches = max(maxMatches, len(g.Matches))
		total += len(g.Matches)
	}

	matches := make([]*Match, 0, total)
	for i := range maxMatches {
		for _, g := range groups {
			if i > len(g.Matches)-1 {
				continue
			}
			matches = append(matches, g.Matches[i])
		}
	}
	return matches
}
