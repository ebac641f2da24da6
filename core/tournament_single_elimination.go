package core

import "fmt"

// Builds the empty skeleton of a single elimination bracket
// for teamCount teams.
//
// The main draw has the size of the largest power of two that
// fits the team count. The excess teams play in a play-in round
// whose winners join the first main round. All first round sides
// that are not fed by a play-in are BYE sides for the filler to
// place teams into.
//
// When includeThirdPlace is set and the main draw has at least 4
// spots the semi-final losers meet in a third place match.
//
// Returns an empty slice for less than 2 teams.
func BuildBracket(teamCount int, includeThirdPlace bool) []*Match {
	if teamCount < 2 {
		return []*Match{}
	}

	numRounds := getNumRounds(teamCount)
	mainSize := 1 << numRounds
	numPlayIns := teamCount - mainSize

	rounds := make([][]*Match, 0, numRounds)
	for r := 1; r <= numRounds; r += 1 {
		rounds = append(rounds, createRound(mainSize, numRounds, r))
	}

	var thirdPlace *Match
	if mainSize >= 4 && includeThirdPlace {
		thirdPlace = &Match{
			ID:         "m-3rd",
			RoundKey:   RoundThirdPlace,
			RoundIndex: numRounds,
			Position:   1,
		}
	}

	for i := 1; i < len(rounds); i += 1 {
		linkMatches(rounds[i-1], rounds[i], thirdPlace)
	}

	firstRound := rounds[0]
	playIns := createPlayIns(firstRound, numPlayIns)

	for _, m := range firstRound {
		if m.SlotA == nil {
			m.SlotA = NewByeSource()
		}
		if m.SlotB == nil {
			m.SlotB = NewByeSource()
		}
	}

	matches := make([]*Match, 0, numPlayIns+getNumMatches(numRounds)+1)
	matches = append(matches, playIns...)
	for _, round := range rounds {
		matches = append(matches, round...)
	}
	if thirdPlace != nil {
		matches = append(matches, thirdPlace)
	}

	return Renumber(matches, "")
}

// Creates the matches of main round r (1-based)
func createRound(mainSize, numRounds, r int) []*Match {
	numMatches := mainSize >> r
	roundKey := roundLabel(numRounds - r + 1)

	round := make([]*Match, 0, numMatches)
	for position := range numMatches {
		match := &Match{
			ID:         fmt.Sprintf("m-%v-%v", r, position),
			RoundKey:   roundKey,
			RoundIndex: r,
			Position:   position,
		}
		round = append(round, match)
	}

	return round
}

// Links the winners of the round to the following round.
// The match at position m feeds position m/2.
//
// Semi-finals additionally send their losers to the third place
// match if there is one.
func linkMatches(round, followingRound []*Match, thirdPlace *Match) {
	for _, m := range round {
		followingMatch := followingRound[m.Position/2]
		slot := slotFor(m.Position)

		m.Next = &Link{MatchID: followingMatch.ID, Target: slot}
		followingMatch.setSource(slot, NewWinnerSource(m.ID))

		if thirdPlace != nil && m.RoundKey == RoundSemi {
			m.NextLoser = &Link{MatchID: thirdPlace.ID, Target: slot}
		}
	}
}

// Creates the play-in matches and assigns each of them a side
// in the first round.
//
// The targets alternate between the top and the bottom end of
// the first round so play-in winners are spread over both halves
// of the draw.
func createPlayIns(firstRound []*Match, numPlayIns int) []*Match {
	playIns := make([]*Match, 0, numPlayIns)
	for i := range numPlayIns {
		targetIndex := i / 2
		if i%2 != 0 {
			targetIndex = len(firstRound) - 1 - i/2
		}
		target := firstRound[targetIndex]

		slot := SlotA
		if target.SlotA != nil {
			slot = SlotB
		}

		playIn := &Match{
			ID:         fmt.Sprintf("p-%v", i),
			RoundKey:   RoundPlayIn,
			RoundIndex: 0,
			Position:   i,
			Next:       &Link{MatchID: target.ID, Target: slot},
		}
		target.setSource(slot, NewWinnerSource(playIn.ID))

		playIns = append(playIns, playIn)
	}
	return playIns
}

// Returns the number of rounds of a bracket with the largest
// power of two main draw that fits numSlots.
func getNumRounds(numSlots int) int {
	rounds := 0
	for numSlots > 1 {
		numSlots >>= 1
		rounds += 1
	}
	return rounds
}

func getNumMatches(numRounds int) int {
	numMatches := 0
	for i := range numRounds {
		numMatches += 1 << i
	}
	return numMatches
}

// Decides which bracket matches can still have their result
// edited without invalidating later results.
type EliminationEditingPolicy struct {
	matches      []*Match
	bracketGraph *BracketGraph
}

func NewEliminationEditingPolicy(matches []*Match) (*EliminationEditingPolicy, error) {
	g, err := NewBracketGraph(matches)
	if err != nil {
		return nil, err
	}
	policy := &EliminationEditingPolicy{
		matches:      matches,
		bracketGraph: g,
	}
	return policy, nil
}

// Returns the comprehensive list of decided matches that are
// editable
func (e *EliminationEditingPolicy) EditableMatches() []*Match {
	editable := make([]*Match, 0, len(e.matches))
	for _, m := range e.matches {
		if m.IsDecided() && e.isEditable(m) {
			editable = append(editable, m)
		}
	}
	return editable
}

// Returns true when the result of the match can change.
// That is the case as long as none of the matches that its
// result flows into is decided. A 0 - 0 placeholder does not
// lock.
func (e *EliminationEditingPolicy) CanEdit(matchID string) bool {
	m, err := e.bracketGraph.Vertex(matchID)
	if err != nil {
		return false
	}
	return e.isEditable(m)
}

func (e *EliminationEditingPolicy) isEditable(match *Match) bool {
	for _, m := range e.bracketGraph.Downstream(match.ID) {
		if m.IsDecided() {
			return false
		}
	}
	return true
}

// Returns the decided matches whose result can still be edited.
// Nil when the links of the matches are invalid.
func EditableMatches(matches []*Match) []*Match {
	policy, err := NewEliminationEditingPolicy(matches)
	if err != nil {
		return nil
	}
	return policy.EditableMatches()
}
