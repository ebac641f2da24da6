package core

import (
	"cmp"
	"math/rand"
	"slices"
	"time"
)

// Returns a random draw order of the teams. The input is not
// modified.
//
// With protect set (and at least 4 teams) teams of the same club
// are kept from meeting in the first pairing. Draw order indices
// 2k and 2k+1 form a pairing. Clubs are placed largest first and
// their members alternate between the top and the bottom half
// of the draw order. When a club has too many teams to avoid each
// other the remaining members are placed anyway.
//
// A nil rng is seeded from the clock.
func Shuffle(teams []Team, protect bool, rng *rand.Rand) []Team {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	if !protect || len(teams) < 4 {
		order := slices.Clone(teams)
		shuffle(order, rng)
		return order
	}

	return clubProtectedShuffle(teams, rng)
}

// Shuffles the teams with a random source that is seeded with
// rngSeed. The same seed always yields the same draw order.
func SeededShuffle(teams []Team, protect bool, rngSeed int64) []Team {
	rng := rand.New(rand.NewSource(rngSeed))
	return Shuffle(teams, protect, rng)
}

func clubProtectedShuffle(teams []Team, rng *rand.Rand) []Team {
	clubs := groupByClub(teams)
	slices.SortStableFunc(clubs, func(a, b []Team) int {
		return cmp.Compare(len(b), len(a))
	})

	numTeams := len(teams)
	top := indexRange(0, numTeams/2)
	bottom := indexRange(numTeams/2, numTeams)
	shuffle(top, rng)
	shuffle(bottom, rng)
	pools := [2][]int{top, bottom}

	order := make([]*Team, numTeams)
	for k, club := range clubs {
		shuffle(club, rng)
		half := k % 2
		for i := range club {
			index := pickSlot(&pools, half, club[i].Club, order)
			order[index] = &club[i]
			half = 1 - half
		}
	}

	shuffled := make([]Team, 0, numTeams)
	for _, t := range order {
		shuffled = append(shuffled, *t)
	}
	return shuffled
}

// Takes a free draw order index out of the pools.
//
// The preferred half is searched for an index whose pairing
// partner is not of the same club, then the other half. If
// neither has one the first free index is taken, preferred
// half first.
func pickSlot(pools *[2][]int, preferred int, club string, order []*Team) int {
	safe := func(index int) bool {
		partner := index ^ 1
		return partner >= len(order) || order[partner] == nil || order[partner].Club != club
	}

	halves := [2]int{preferred, 1 - preferred}
	for _, h := range halves {
		if j := slices.IndexFunc(pools[h], safe); j >= 0 {
			return takeIndex(pools, h, j)
		}
	}
	for _, h := range halves {
		if len(pools[h]) > 0 {
			return takeIndex(pools, h, 0)
		}
	}

	panic("no free draw order index left")
}

func takeIndex(pools *[2][]int, half, j int) int {
	index := pools[half][j]
	pools[half] = slices.Delete(pools[half], j, j+1)
	return index
}

// Splits the teams by club. The clubs are in order of their
// first appearance.
func groupByClub(teams []Team) [][]Team {
	clubIndex := make(map[string]int)
	clubs := make([][]Team, 0, len(teams))
	for _, t := range teams {
		i, ok := clubIndex[t.Club]
		if !ok {
			i = len(clubs)
			clubIndex[t.Club] = i
			clubs = append(clubs, nil)
		}
		clubs[i] = append(clubs[i], t)
	}
	return clubs
}

func indexRange(start, end int) []int {
	indices := make([]int, 0, end-start)
	for i := start; i < end; i += 1 {
		indices = append(indices, i)
	}
	return indices
}

// Counts the pairings of the draw order (indices 2k and 2k+1)
// whose teams are of the same club
func ClubCollisions(order []Team) int {
	collisions := 0
	for i := 0; i+1 < len(order); i += 2 {
		if order[i].Club == order[i+1].Club {
			collisions += 1
		}
	}
	return collisions
}

func shuffle[S ~[]E, E any](slice S, rng *rand.Rand) {
	rng.Shuffle(
		len(slice),
		func(i, j int) { slice[i], slice[j] = slice[j], slice[i] },
	)
}
