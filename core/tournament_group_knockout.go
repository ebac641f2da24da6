package core

import "errors"

var (
	ErrTooFewQualifiers = errors.New("less than 2 teams qualify for the knockout")
)

// Returns the teams that advance from the groups to the knockout
// in seeding order. That is the top advancePerGroup teams of each
// group, by group order and then by rank.
//
// Ties on the qualification cut are not resolved. Check them with
// [BlockingTies] before relying on the result.
func Qualifiers(groups []Group, advancePerGroup int) ([]Team, error) {
	if advancePerGroup < 1 {
		return nil, ErrTooFewQualifiers
	}

	qualifiers := make([]Team, 0, len(groups)*advancePerGroup)
	for _, g := range groups {
		teams := make(map[string]Team, len(g.Teams))
		for _, t := range g.Teams {
			teams[t.ID] = t
		}

		stats := Rankings(g)
		for _, s := range stats[:min(advancePerGroup, len(stats))] {
			qualifiers = append(qualifiers, teams[s.TeamID])
		}
	}

	if len(qualifiers) < 2 {
		return nil, ErrTooFewQualifiers
	}

	return qualifiers, nil
}

// Returns the ties of each group that straddle its qualification
// cut. Groups without such a tie are left out.
func QualificationTies(groups []Group, advancePerGroup int) [][]TeamStats {
	ties := make([][]TeamStats, 0, len(groups))
	for _, g := range groups {
		ties = append(ties, BlockingTies(Rankings(g), advancePerGroup)...)
	}
	return ties
}
