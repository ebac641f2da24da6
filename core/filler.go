package core

import (
	"cmp"
	"slices"
)

// Places the teams in draw order into a bracket skeleton.
//
// The play-ins take two teams each (by ascending position) as long
// as at least two teams are left. Then the first round BYE sides
// take one team each, A before B, by ascending position.
// Sides that are left over stay BYE.
//
// The input is not modified. The filled bracket is propagated
// before it is returned.
func FillBracket(teams []Team, matches []*Match) []*Match {
	filled := cloneMatches(matches)
	if len(teams) == 0 {
		return filled
	}

	next := 0
	place := func(m *Match, slot SlotName) {
		team := teams[next]
		next += 1
		m.setSource(slot, NewPairSource(team.ID))
		m.setTeam(slot, team.clone())
	}

	playIns := filterByPosition(filled, func(m *Match) bool {
		return m.RoundKey == RoundPlayIn
	})
	for _, m := range playIns {
		if next+1 >= len(teams) {
			break
		}
		place(m, SlotA)
		place(m, SlotB)
	}

	firstRound := filterByPosition(filled, func(m *Match) bool {
		return m.IsKnockout() && m.RoundIndex == 1
	})
	for _, m := range firstRound {
		for _, slot := range []SlotName{SlotA, SlotB} {
			if next < len(teams) && m.Source(slot).IsBye() {
				place(m, slot)
			}
		}
	}

	return Propagate(filled)
}

// Returns the matches that satisfy the filter sorted
// by their position
func filterByPosition(matches []*Match, filter func(m *Match) bool) []*Match {
	filtered := make([]*Match, 0, len(matches))
	for _, m := range matches {
		if filter(m) {
			filtered = append(filtered, m)
		}
	}
	slices.SortStableFunc(filtered, func(a, b *Match) int {
		return cmp.Compare(a.Position, b.Position)
	})
	return filtered
}
