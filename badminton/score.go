package badminton

import "errors"

var (
	ErrPointsZero = errors.New("winning points are zero or less")
	ErrMaxPoints  = errors.New("max points are less than winning points")

	ErrUndetermined   = errors.New("the game has equal points")
	ErrNegativePoints = errors.New("negative points")
	ErrTooManyPoints  = errors.New("points exceed the max points setting")
	ErrTooFewPoints   = errors.New("game winner points are less than the winning point setting")
	ErrInvalidMargin  = errors.New("the winning point margin is invalid")
)

// The scoring rules of a single game
type Rules struct {
	WinningPoints  int  `json:"winningPoints" yaml:"winning_points"`
	MaxPoints      int  `json:"maxPoints" yaml:"max_points"`
	TwoPointMargin bool `json:"twoPointMargin" yaml:"two_point_margin"`
}

func NewRules(winningPoints, maxPoints int, twoPointMargin bool) (Rules, error) {
	if !twoPointMargin {
		maxPoints = winningPoints
	}

	rules := Rules{winningPoints, maxPoints, twoPointMargin}

	if winningPoints <= 0 {
		return rules, ErrPointsZero
	}
	if maxPoints < winningPoints {
		return rules, ErrMaxPoints
	}

	return rules, nil
}

// Game to 21 with a two point margin capped at 30
func DefaultRules() Rules {
	return Rules{WinningPoints: 21, MaxPoints: 30, TwoPointMargin: true}
}

// Checks that a and b are the final points of a game under
// these rules
func (r Rules) Validate(a, b int) error {
	winningMargin := 1
	if r.TwoPointMargin {
		winningMargin = 2
	}

	w := max(a, b)
	l := min(a, b)

	switch {
	case l < 0:
		return ErrNegativePoints
	case w == l:
		return ErrUndetermined
	case w < r.WinningPoints:
		return ErrTooFewPoints
	case w > r.MaxPoints:
		return ErrTooManyPoints
	case w == r.WinningPoints && w < r.MaxPoints && w-l < winningMargin:
		fallthrough
	case w < r.MaxPoints && w > r.WinningPoints && w-l != winningMargin:
		fallthrough
	case w == r.MaxPoints && w > r.WinningPoints && w-l > winningMargin:
		return ErrInvalidMargin
	}

	return nil
}

// Returns the points of a won game where the loser scored
// nothing
func (r Rules) MaxScore() (int, int) {
	return r.WinningPoints, 0
}
