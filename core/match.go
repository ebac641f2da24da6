package core

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNoScore    = errors.New("no score")
	ErrZeroScore  = errors.New("zero score")
	ErrEqualScore = errors.New("equal score")
)

// The semantic label of a round
type RoundKey string

const (
	RoundPlayIn     RoundKey = "PLAYIN"
	Round128        RoundKey = "R128"
	Round64         RoundKey = "R64"
	Round32         RoundKey = "R32"
	Round16         RoundKey = "R16"
	RoundQuarter    RoundKey = "QF"
	RoundSemi       RoundKey = "SF"
	RoundFinal      RoundKey = "F"
	RoundThirdPlace RoundKey = "3RD"
	RoundGroup      RoundKey = "GROUP"
)

// Returns the round label of a main draw round by its
// distance from the final. The final has distance 1.
func roundLabel(distance int) RoundKey {
	switch distance {
	case 1:
		return RoundFinal
	case 2:
		return RoundSemi
	case 3:
		return RoundQuarter
	case 4:
		return Round16
	case 5:
		return Round32
	case 6:
		return Round64
	default:
		return Round128
	}
}

// The recorded points of a match in a single game.
// A nil *Score means no result was entered.
type Score struct {
	A int `json:"scoreA"`
	B int `json:"scoreB"`
}

// Returns 0 when side A won, 1 when side B won.
//
// A score of zero to zero is a placeholder and a tie has
// no winner in badminton, so both are undecided.
func (s *Score) GetWinner() (int, error) {
	switch {
	case s == nil:
		return -1, ErrNoScore
	case s.A <= 0 && s.B <= 0:
		return -1, ErrZeroScore
	case s.A == s.B:
		return -1, ErrEqualScore
	case s.A > s.B:
		return 0, nil
	default:
		return 1, nil
	}
}

func (s *Score) clone() *Score {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}

type Outcome int

const (
	Undecided Outcome = iota
	WonA
	WonB
)

func (o Outcome) String() string {
	switch o {
	case WonA:
		return "won A"
	case WonB:
		return "won B"
	default:
		return "undecided"
	}
}

// A match between the teams on its two sides.
//
// Besides the occupants it stores where the sides get
// their teams from (SlotA, SlotB) and where its winner
// and loser move on to (Next, NextLoser).
type Match struct {
	ID          string   `json:"id"`
	MatchNumber int      `json:"matchNumber"`
	RoundKey    RoundKey `json:"roundKey"`
	// Depth from the play-in round (0) towards the final
	RoundIndex int `json:"roundIndex"`
	// Index inside of the round, top to bottom
	Position int `json:"position"`

	SlotA *SlotSource `json:"slotA"`
	SlotB *SlotSource `json:"slotB"`

	TeamA *Team `json:"teamA,omitempty"`
	TeamB *Team `json:"teamB,omitempty"`

	Score *Score `json:"score,omitempty"`

	Next      *Link `json:"next,omitempty"`
	NextLoser *Link `json:"nextLoser,omitempty"`

	Court         string `json:"court,omitempty"`
	ScheduledTime string `json:"scheduledTime,omitempty"`

	GroupID string `json:"groupId,omitempty"`
}

func (m *Match) Outcome() Outcome {
	winner, err := m.Score.GetWinner()
	if err != nil {
		return Undecided
	}
	if winner == 0 {
		return WonA
	}
	return WonB
}

func (m *Match) IsDecided() bool {
	return m.Outcome() != Undecided
}

// Returns true when the teams on both sides are known
func (m *Match) IsReady() bool {
	return m.TeamA != nil && m.TeamB != nil
}

// Returns the team of the winning side or nil when the
// match is undecided or the winning side is empty.
//
// A decided match with one empty side is a walkover so its
// winner is known without an opponent.
func (m *Match) Winner() *Team {
	switch m.Outcome() {
	case WonA:
		return m.TeamA
	case WonB:
		return m.TeamB
	}
	return nil
}

// Returns the team of the losing side. Nil when there is no
// winner or the losing side is empty (walkover).
func (m *Match) Loser() *Team {
	if m.Winner() == nil {
		return nil
	}
	switch m.Outcome() {
	case WonA:
		return m.TeamB
	case WonB:
		return m.TeamA
	}
	return nil
}

// Returns true when the score can be entered on the match.
// That needs both teams or, for a walkover, the team of the
// winning side.
func (m *Match) CanScore(score *Score) bool {
	if m.IsReady() {
		return true
	}
	winner, err := score.GetWinner()
	if err != nil {
		return false
	}
	if winner == 0 {
		return m.TeamA != nil
	}
	return m.TeamB != nil
}

func (m *Match) Team(slot SlotName) *Team {
	if slot == SlotA {
		return m.TeamA
	}
	return m.TeamB
}

func (m *Match) setTeam(slot SlotName, team *Team) {
	if slot == SlotA {
		m.TeamA = team
	} else {
		m.TeamB = team
	}
}

func (m *Match) Source(slot SlotName) *SlotSource {
	if slot == SlotA {
		return m.SlotA
	}
	return m.SlotB
}

func (m *Match) setSource(slot SlotName, source *SlotSource) {
	if slot == SlotA {
		m.SlotA = source
	} else {
		m.SlotB = source
	}
}

func (m *Match) ContainsTeam(teamID string) bool {
	return (m.TeamA != nil && m.TeamA.ID == teamID) ||
		(m.TeamB != nil && m.TeamB.ID == teamID)
}

func (m *Match) IsKnockout() bool {
	return m.RoundKey != RoundGroup
}

func (m *Match) clone() *Match {
	c := *m
	c.SlotA = m.SlotA.clone()
	c.SlotB = m.SlotB.clone()
	c.TeamA = m.TeamA.clone()
	c.TeamB = m.TeamB.clone()
	c.Score = m.Score.clone()
	c.Next = m.Next.clone()
	c.NextLoser = m.NextLoser.clone()
	return &c
}

func (m *Match) String() string {
	var sb strings.Builder
	sb.WriteString(m.ID)
	sb.WriteString(": ")
	if m.TeamA == nil {
		sb.WriteString("[Empty]")
	} else {
		sb.WriteString(m.TeamA.Name())
	}
	sb.WriteString(" vs. ")
	if m.TeamB == nil {
		sb.WriteString("[Empty]")
	} else {
		sb.WriteString(m.TeamB.Name())
	}

	if m.Score != nil {
		sb.WriteString(fmt.Sprintf("\t%v - %v", m.Score.A, m.Score.B))
	}

	return sb.String()
}

// Returns a deep copy of the matches
func cloneMatches(matches []*Match) []*Match {
	clones := make([]*Match, 0, len(matches))
	for _, m := range matches {
		clones = append(clones, m.clone())
	}
	return clones
}

// Maps the match IDs to their index in the slice
func indexMatches(matches []*Match) map[string]int {
	index := make(map[string]int, len(matches))
	for i, m := range matches {
		index[m.ID] = i
	}
	return index
}
