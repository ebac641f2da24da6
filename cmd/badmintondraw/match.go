package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/ezBadminton/badmintondraw/badminton"
	"github.com/ezBadminton/badmintondraw/core"
	"github.com/urfave/cli/v2"
)

func scoreCommand(r *runner) *cli.Command {
	return &cli.Command{
		Name:      "score",
		Usage:     "enter the result of a match",
		ArgsUsage: "MATCH [POINTS_A POINTS_B]",
		Flags: []cli.Flag{
			categoryFlag(),
			&cli.StringFlag{Name: "walkover", Usage: "side that wins without playing, a or b"},
			&cli.BoolFlag{Name: "clear", Usage: "remove the result"},
		},
		Action: func(c *cli.Context) error {
			t, category, err := r.loadCategory(c)
			if err != nil {
				return err
			}

			matchID := c.Args().First()
			if matchID == "" {
				return fmt.Errorf("%w: the match is missing", errUsage)
			}

			switch {
			case c.Bool("clear"):
				err = category.ClearScore(matchID)
			case c.IsSet("walkover"):
				rules := badminton.DefaultRules()
				if category.ScoreRules != nil {
					rules = *category.ScoreRules
				}
				won, lost := rules.MaxScore()
				switch strings.ToLower(c.String("walkover")) {
				case "a":
					err = category.SetScore(matchID, won, lost)
				case "b":
					err = category.SetScore(matchID, lost, won)
				default:
					return fmt.Errorf("%w: the walkover side is a or b", errUsage)
				}
			default:
				a, b, parseErr := parsePoints(c.Args().Get(1), c.Args().Get(2))
				if parseErr != nil {
					return parseErr
				}
				err = category.SetScore(matchID, a, b)
			}
			if err != nil {
				return err
			}

			if err := r.save(c, t); err != nil {
				return err
			}

			match, err := category.FindMatch(matchID)
			if err != nil {
				return err
			}
			fmt.Fprintln(c.App.Writer, match)
			if next := nextMatch(category, match); next != nil {
				fmt.Fprintf(c.App.Writer, "Next: %v\n", next)
			}
			return nil
		},
	}
}

func parsePoints(a, b string) (int, int, error) {
	pointsA, errA := strconv.Atoi(a)
	pointsB, errB := strconv.Atoi(b)
	if errA != nil || errB != nil {
		return 0, 0, fmt.Errorf("%w: the points of both sides are needed", errUsage)
	}
	return pointsA, pointsB, nil
}

// Returns the match that the winner of the match moves on to
func nextMatch(category *core.Category, match *core.Match) *core.Match {
	if match.Next == nil {
		return nil
	}
	next, err := category.FindMatch(match.Next.MatchID)
	if err != nil {
		return nil
	}
	return next
}

func advanceCommand(r *runner) *cli.Command {
	return &cli.Command{
		Name:  "advance",
		Usage: "build the knockout from the group standings",
		Flags: []cli.Flag{categoryFlag()},
		Action: func(c *cli.Context) error {
			t, category, err := r.loadCategory(c)
			if err != nil {
				return err
			}

			ties, err := category.AdvanceGroups()
			if err != nil {
				return err
			}
			if err := r.save(c, t); err != nil {
				return err
			}

			for _, tie := range ties {
				names := make([]string, 0, len(tie))
				for _, s := range tie {
					team, _ := category.TeamByID(s.TeamID)
					names = append(names, team.Name())
				}
				r.logger.Warn().Strs("teams", names).Msg("tie on the qualification cut")
				fmt.Fprintf(c.App.Writer, "Tie on the qualification cut: %v\n", strings.Join(names, ", "))
			}

			printMatches(c.App.Writer, category.Matches)
			return nil
		},
	}
}

func scheduleCommand(r *runner) *cli.Command {
	return &cli.Command{
		Name:  "schedule",
		Usage: "assign courts and times to the matches",
		Flags: []cli.Flag{
			categoryFlag(),
			&cli.StringFlag{Name: "courts", Usage: "number of courts or comma separated court names"},
			&cli.StringFlag{Name: "start", Usage: "start time as HH:MM"},
			&cli.IntFlag{Name: "duration", Usage: "minutes per match"},
			&cli.BoolFlag{Name: "reschedule", Usage: "replace the existing assignments"},
		},
		Action: func(c *cli.Context) error {
			t, category, err := r.loadCategory(c)
			if err != nil {
				return err
			}

			if c.IsSet("courts") {
				t.Courts = c.String("courts")
			}
			if c.IsSet("start") {
				if _, err := core.ParseClock(c.String("start")); err != nil {
					return fmt.Errorf("%w: %w", errUsage, err)
				}
				t.StartTime = c.String("start")
			}
			if c.IsSet("duration") {
				t.MatchDuration = c.Int("duration")
			}

			category.AutoSchedule(t.Courts, t.StartTime, t.MatchDuration, c.Bool("reschedule"))
			if err := r.save(c, t); err != nil {
				return err
			}

			printMatches(c.App.Writer, category.AllMatches())
			return nil
		},
	}
}

func standingsCommand(r *runner) *cli.Command {
	return &cli.Command{
		Name:  "standings",
		Usage: "show the group standings",
		Flags: []cli.Flag{categoryFlag()},
		Action: func(c *cli.Context) error {
			_, category, err := r.loadCategory(c)
			if err != nil {
				return err
			}
			if len(category.Groups) == 0 {
				return core.ErrNoGroups
			}

			standings := category.Standings()
			for i, g := range category.Groups {
				fmt.Fprintf(c.App.Writer, "\n== %v\n", g.Name)
				printStandings(c.App.Writer, category, standings[i])
			}
			return nil
		},
	}
}

// Teams that share their rank with another team are marked
// with a "="
func printStandings(out io.Writer, category *core.Category, stats []core.TeamStats) {
	tied := make(map[string]bool)
	for _, tie := range core.RankingTies(stats) {
		for _, s := range tie {
			tied[s.TeamID] = true
		}
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "#\tTEAM\tP\tW\tL\tPTS\tDIFF")
	for rank, s := range stats {
		team, _ := category.TeamByID(s.TeamID)
		marker := ""
		if tied[s.TeamID] {
			marker = "="
		}
		fmt.Fprintf(w, "%v%v\t%v\t%v\t%v\t%v\t%v\t%+d\n", rank+1, marker, team.Name(), s.Played, s.Won, s.Lost, s.Points, s.Diff)
	}
	w.Flush()
}
