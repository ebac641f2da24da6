package core

// Returns every pairing of a round robin between numEntries
// entries exactly once as index pairs.
//
// The pairings are ordered round by round so consecutive
// pairings of one round involve disjoint entries. An odd number
// of entries gets a virtual bye entry whose pairings are left out.
func roundRobinPairings(numEntries int) [][2]int {
	if numEntries < 2 {
		return nil
	}

	numSlots := numEntries
	if numSlots%2 != 0 {
		numSlots += 1
	}
	numRounds := numSlots - 1
	numMatches := numSlots / 2

	pairings := make([][2]int, 0, numEntries*(numEntries-1)/2)
	for roundI := range numRounds {
		for matchI := range numMatches {
			i1, i2 := pickOpponents(numSlots, roundI, matchI)
			if i1 >= numEntries || i2 >= numEntries {
				continue
			}
			pairings = append(pairings, [2]int{i1, i2})
		}
	}

	return pairings
}

// Returns the opponents of the specified match by its indices
// while making sure the share of first-named matches is evenly
// distributed among the entries
func pickOpponents(numSlots, roundI, matchI int) (int, int) {
	i1 := matchI
	i2 := numSlots - 1 - matchI

	i1 = roundRobinCircleIndex(i1, numSlots, roundI)
	i2 = roundRobinCircleIndex(i2, numSlots, roundI)

	if matchI == 0 && roundI%2 != 0 {
		i1, i2 = i2, i1
	}

	return i1, i2
}

// Rotates the given index according to https://en.wikipedia.org/wiki/Round-robin_tournament#Circle_method
func roundRobinCircleIndex(index, length, round int) int {
	if index == 0 {
		return 0
	}
	index -= 1
	index -= round
	index += length - 1
	index %= length - 1
	index += 1
	return index
}
