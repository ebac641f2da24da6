package core

// The origin of one side of a match.
//
// A side can be filled from one of 3 sources:
//   - A team that was placed there directly by the draw (PAIR)
//   - The winner of an earlier match (WINNER_OF)
//   - Nothing at all, the opponent advances without playing (BYE)
//
// First round BYE sides are the spots that the bracket filler
// places teams into. After filling they become PAIR sources.
type SlotSource struct {
	Type    SourceType `json:"type"`
	TeamID  string     `json:"pairId,omitempty"`
	MatchID string     `json:"matchId,omitempty"`
}

type SourceType string

const (
	SourcePair     SourceType = "PAIR"
	SourceWinnerOf SourceType = "WINNER_OF"
	SourceBye      SourceType = "BYE"
)

// One of the two sides of a match
type SlotName string

const (
	SlotA SlotName = "A"
	SlotB SlotName = "B"
)

func (n SlotName) Other() SlotName {
	if n == SlotA {
		return SlotB
	}
	return SlotA
}

// slotFor returns A for even positions and B for odd ones
func slotFor(position int) SlotName {
	if position%2 == 0 {
		return SlotA
	}
	return SlotB
}

// Points to the side of a later match that receives
// a team out of this match.
type Link struct {
	MatchID string   `json:"matchId"`
	Target  SlotName `json:"targetSlot"`
}

func (s *SlotSource) IsBye() bool {
	return s != nil && s.Type == SourceBye
}

func (s *SlotSource) clone() *SlotSource {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}

func (l *Link) clone() *Link {
	if l == nil {
		return nil
	}
	c := *l
	return &c
}

func NewPairSource(teamID string) *SlotSource {
	return &SlotSource{Type: SourcePair, TeamID: teamID}
}

func NewWinnerSource(matchID string) *SlotSource {
	return &SlotSource{Type: SourceWinnerOf, MatchID: matchID}
}

func NewByeSource() *SlotSource {
	return &SlotSource{Type: SourceBye}
}
