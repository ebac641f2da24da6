package core

import (
	"cmp"
	"slices"
)

// Moves the winners and losers of all decided matches into the
// matches that their links point to. The sides fed by undecided
// matches are emptied.
//
// Matches are processed by increasing round index so a changed
// result cascades all the way to the final in one call.
// Links to unknown matches are ignored.
//
// The input is not modified and propagating twice yields the
// same result as propagating once.
func Propagate(matches []*Match) []*Match {
	updated := cloneMatches(matches)
	index := indexMatches(updated)

	order := slices.Clone(updated)
	slices.SortStableFunc(order, func(a, b *Match) int {
		return cmp.Compare(a.RoundIndex, b.RoundIndex)
	})

	for _, m := range order {
		if m.Next != nil {
			if i, ok := index[m.Next.MatchID]; ok {
				updated[i].setTeam(m.Next.Target, m.Winner().clone())
			}
		}
		if m.NextLoser != nil {
			if i, ok := index[m.NextLoser.MatchID]; ok {
				updated[i].setTeam(m.NextLoser.Target, m.Loser().clone())
			}
		}
	}

	return updated
}
