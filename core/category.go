package core

import (
	"errors"
	"fmt"
	"slices"

	"github.com/ezBadminton/badmintondraw/badminton"
	"github.com/google/uuid"
)

var (
	ErrMatchNotFound  = errors.New("match not found")
	ErrMatchLocked    = errors.New("a following match already has a result")
	ErrMatchNotReady  = errors.New("the opponents of the match are not known yet")
	ErrPlayerNotFound = errors.New("player not found")
	ErrTooFewTeams    = errors.New("at least 2 teams are needed for a draw")
	ErrNoGroups       = errors.New("the category has no groups")
	ErrWrongFormat    = errors.New("not possible in the format of the category")
)

type Format string

const (
	SingleElimination     Format = "SINGLE_ELIMINATION"
	GroupStageElimination Format = "GROUP_STAGE_ELIMINATION"
)

// Name prefix of the players in the preview bracket before the draw
const PlaceholderPrefix = "POSITION"

// One competition of a tournament (e.g. men's doubles).
//
// Every change of the roster or the draw rebuilds the teams and
// matches from scratch. Only scores are carried forward by
// propagation.
type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	EventType EventType `json:"eventType"`
	Format    Format    `json:"format"`

	Players []Player `json:"players"`
	Teams   []Team   `json:"teams"`
	// The knockout bracket
	Matches []*Match `json:"matches"`
	Groups  []Group  `json:"groups,omitempty"`

	DrawDone        bool `json:"isDrawDone"`
	ThirdPlaceMatch bool `json:"hasThirdPlaceMatch"`
	TeamsPerGroup   int  `json:"teamsPerGroup"`
	AdvancePerGroup int  `json:"advancePerGroup"`

	// When set, scores are checked against these rules
	ScoreRules *badminton.Rules `json:"scoreRules,omitempty"`
}

func NewCategory(name string, eventType EventType, format Format) *Category {
	return &Category{
		ID:              uuid.NewString(),
		Name:            name,
		EventType:       eventType,
		Format:          format,
		Players:         []Player{},
		Teams:           []Team{},
		Matches:         []*Match{},
		ThirdPlaceMatch: true,
		TeamsPerGroup:   4,
		AdvancePerGroup: 2,
	}
}

// Replaces the roster and rebuilds the teams.
// The draw is reset.
func (c *Category) SetPlayers(players []Player) {
	c.Players = slices.Clone(players)
	c.rebuild()
}

func (c *Category) AddPlayers(players ...Player) {
	c.SetPlayers(slices.Concat(c.Players, players))
}

func (c *Category) RemovePlayer(playerID string) error {
	i := slices.IndexFunc(c.Players, func(p Player) bool { return p.ID == playerID })
	if i < 0 {
		return fmt.Errorf("%w: %v", ErrPlayerNotFound, playerID)
	}
	c.SetPlayers(slices.Delete(slices.Clone(c.Players), i, i+1))
	return nil
}

// Rebuilds the teams from the roster. Single elimination
// categories get a preview bracket with placeholder names.
func (c *Category) rebuild() {
	c.Teams = CreateTeams(c.Players, c.EventType)
	c.DrawDone = false
	c.Groups = nil
	c.Matches = []*Match{}

	if c.Format == SingleElimination {
		bracket := BuildBracket(len(c.Teams), c.ThirdPlaceMatch)
		c.Matches = FillBracket(placeholderTeams(c.Teams), bracket)
	}
}

func placeholderTeams(teams []Team) []Team {
	placeholders := make([]Team, 0, len(teams))
	for i, t := range teams {
		p := *t.clone()
		for j := range p.Players {
			p.Players[j].Name = fmt.Sprintf("%v %v", PlaceholderPrefix, i+1)
		}
		placeholders = append(placeholders, p)
	}
	return placeholders
}

// Draws the category with the teams in the given order.
//
// Single elimination categories get their bracket filled.
// Group categories get their groups while the knockout is
// built later by [Category.AdvanceGroups].
func (c *Category) Draw(order []Team) error {
	if len(order) < 2 {
		return ErrTooFewTeams
	}

	c.Teams = slices.Clone(order)
	c.Groups = nil
	c.Matches = []*Match{}

	switch c.Format {
	case GroupStageElimination:
		c.Groups = GenerateGroups(c.Teams, c.TeamsPerGroup)
	default:
		bracket := BuildBracket(len(c.Teams), c.ThirdPlaceMatch)
		c.Matches = FillBracket(c.Teams, bracket)
	}

	c.DrawDone = true
	return nil
}

// Draws the category in a random (club protected) order
func (c *Category) ShuffleDraw(protect bool, rngSeed int64) error {
	return c.Draw(SeededShuffle(c.Teams, protect, rngSeed))
}

// Returns the group matches followed by the knockout matches
func (c *Category) AllMatches() []*Match {
	return slices.Concat(GroupPhaseMatches(c.Groups), c.Matches)
}

func (c *Category) FindMatch(matchID string) (*Match, error) {
	for _, m := range c.AllMatches() {
		if m.ID == matchID {
			return m, nil
		}
	}
	return nil, fmt.Errorf("%w: %v", ErrMatchNotFound, matchID)
}

// Records the score of a match and moves the winner on.
//
// A score of 0 - 0 is stored as a placeholder and leaves the
// match undecided. A match with one empty side only takes a
// score that lets its team win (walkover). Other scores are
// checked against the score rules if the category has them.
//
// Knockout results can only change as long as no following
// match has a result.
func (c *Category) SetScore(matchID string, a, b int) error {
	match, err := c.FindMatch(matchID)
	if err != nil {
		return err
	}

	score := &Score{A: a, B: b}
	if a != 0 || b != 0 {
		if !match.CanScore(score) {
			return fmt.Errorf("%w: %v", ErrMatchNotReady, matchID)
		}
		if c.ScoreRules != nil {
			if err := c.ScoreRules.Validate(a, b); err != nil {
				return fmt.Errorf("invalid score %v-%v: %w", a, b, err)
			}
		}
	}

	return c.updateScore(match, score)
}

// Removes the score of a match
func (c *Category) ClearScore(matchID string) error {
	match, err := c.FindMatch(matchID)
	if err != nil {
		return err
	}
	return c.updateScore(match, nil)
}

func (c *Category) updateScore(match *Match, score *Score) error {
	if !match.IsKnockout() {
		match.Score = score
		return nil
	}

	policy, err := NewEliminationEditingPolicy(c.Matches)
	if err != nil {
		return err
	}
	if !policy.CanEdit(match.ID) {
		return fmt.Errorf("%w: %v", ErrMatchLocked, match.ID)
	}

	match.Score = score
	c.Matches = Propagate(c.Matches)
	return nil
}

// Returns the standings of each group
func (c *Category) Standings() [][]TeamStats {
	standings := make([][]TeamStats, 0, len(c.Groups))
	for _, g := range c.Groups {
		standings = append(standings, Rankings(g))
	}
	return standings
}

// Builds the knockout bracket from the group qualifiers.
//
// The returned ties are standings ties on a qualification cut.
// The bracket is built regardless but the organizer should
// settle them.
func (c *Category) AdvanceGroups() ([][]TeamStats, error) {
	if c.Format != GroupStageElimination {
		return nil, ErrWrongFormat
	}
	if len(c.Groups) == 0 {
		return nil, ErrNoGroups
	}

	qualifiers, err := Qualifiers(c.Groups, c.AdvancePerGroup)
	if err != nil {
		return nil, err
	}

	bracket := BuildBracket(len(qualifiers), c.ThirdPlaceMatch)
	c.Matches = FillBracket(qualifiers, bracket)

	return QualificationTies(c.Groups, c.AdvancePerGroup), nil
}

// Assigns courts and times to all matches of the category that
// need them. With reschedule set, the automatic assignments are
// removed first.
func (c *Category) AutoSchedule(courts, startTime string, durationMinutes int, reschedule bool) {
	matches := c.AllMatches()
	if reschedule {
		matches = ClearSchedule(matches)
	}
	c.applySchedule(Schedule(matches, courts, startTime, durationMinutes))
}

// Copies the scheduling data of the matches onto the matches
// of the category with the same id
func (c *Category) applySchedule(matches []*Match) {
	byID := make(map[string]*Match, len(matches))
	for _, m := range matches {
		byID[m.ID] = m
	}

	for _, m := range c.AllMatches() {
		s, ok := byID[m.ID]
		if !ok {
			continue
		}
		m.Court = s.Court
		m.ScheduledTime = s.ScheduledTime
		m.MatchNumber = s.MatchNumber
	}
}

func (c *Category) TeamByID(teamID string) (Team, bool) {
	i := slices.IndexFunc(c.Teams, func(t Team) bool { return t.ID == teamID })
	if i < 0 {
		return Team{}, false
	}
	return c.Teams[i], true
}

// The final placements of a knockout
type Podium struct {
	Champion *Team
	RunnerUp *Team
	// The third place match winner or both semi-final losers
	// when there is no third place match
	Third []*Team
}

// Returns the placements that the knockout results decided
// so far
func (c *Category) Podium() Podium {
	podium := Podium{}
	hasThirdPlace := false
	semiLosers := make([]*Team, 0, 2)

	for _, m := range c.Matches {
		switch m.RoundKey {
		case RoundFinal:
			podium.Champion = m.Winner()
			podium.RunnerUp = m.Loser()
		case RoundThirdPlace:
			hasThirdPlace = true
			if w := m.Winner(); w != nil {
				podium.Third = []*Team{w}
			}
		case RoundSemi:
			if l := m.Loser(); l != nil {
				semiLosers = append(semiLosers, l)
			}
		}
	}

	if !hasThirdPlace {
		podium.Third = semiLosers
	}

	return podium
}
