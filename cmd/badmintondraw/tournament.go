package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/ezBadminton/badmintondraw/core"
	"github.com/ezBadminton/badmintondraw/export"
	"github.com/ezBadminton/badmintondraw/internal/roster"
	"github.com/urfave/cli/v2"
)

func tournamentCommand(r *runner) *cli.Command {
	return &cli.Command{
		Name:  "tournament",
		Usage: "create, list and show tournaments",
		Subcommands: []*cli.Command{
			{
				Name:      "new",
				Usage:     "create a tournament",
				ArgsUsage: "NAME",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "venue"},
					&cli.StringFlag{Name: "date", Usage: "e.g. 2026-10-17"},
					&cli.StringFlag{Name: "organizer"},
				},
				Action: func(c *cli.Context) error {
					name := strings.Join(c.Args().Slice(), " ")
					if name == "" {
						return fmt.Errorf("%w: the tournament needs a name", errUsage)
					}

					t := core.NewTournament(name)
					t.Venue = c.String("venue")
					t.Date = c.String("date")
					t.Organizer = c.String("organizer")
					t.SheetURL = r.cfg.Sync.SheetURL
					r.cfg.Defaults.ApplyTournament(t)

					if err := r.save(c, t); err != nil {
						return err
					}
					fmt.Fprintf(c.App.Writer, "Created tournament %v (%v)\n", t.Name, t.ID)
					return nil
				},
			},
			{
				Name:  "list",
				Usage: "list the saved tournaments",
				Action: func(c *cli.Context) error {
					list, err := r.repo.List(c.Context)
					if err != nil {
						return err
					}

					w := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
					fmt.Fprintln(w, "ID\tNAME\tDATE\tPLAYERS\tUPDATED\tSYNCED")
					for _, meta := range list {
						fmt.Fprintf(w, "%v\t%v\t%v\t%v\t%v\t%v\n",
							meta.ID,
							meta.Name,
							orDash(meta.Date),
							meta.PlayerCount,
							meta.LastUpdated.Local().Format("2006-01-02 15:04"),
							meta.CloudLinked,
						)
					}
					return w.Flush()
				},
			},
			{
				Name:  "show",
				Usage: "show the categories and matches of the tournament",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "player",
						Aliases: []string{"p"},
						Usage:   "only show the matches of this player (name or code)",
					},
				},
				Action: func(c *cli.Context) error {
					t, err := r.load(c)
					if err != nil {
						return err
					}
					printTournament(c.App.Writer, t, c.String("player"))
					return nil
				},
			},
		},
	}
}

func printTournament(w io.Writer, t *core.Tournament, playerQuery string) {
	fmt.Fprintf(w, "%v\n", t.Name)
	if t.Venue != "" || t.Date != "" {
		fmt.Fprintf(w, "%v %v\n", t.Venue, t.Date)
	}

	for _, c := range t.Categories {
		status := "not drawn"
		if c.DrawDone {
			status = "drawn"
		}
		fmt.Fprintf(w, "\n== %v (%v, %v players, %v)\n", c.Name, strings.ToLower(string(c.EventType)), len(c.Players), status)

		matches := c.AllMatches()
		if playerQuery != "" {
			matches = playerMatches(c, matches, playerQuery)
		}
		printMatches(w, matches)

		if editable := core.EditableMatches(c.Matches); playerQuery == "" && len(editable) > 0 {
			ids := make([]string, 0, len(editable))
			for _, m := range editable {
				ids = append(ids, m.ID)
			}
			fmt.Fprintf(w, "Editable results: %v\n", strings.Join(ids, ", "))
		}

		podium := c.Podium()
		if podium.Champion != nil {
			fmt.Fprintf(w, "Champion: %v\n", podium.Champion.Name())
			if podium.RunnerUp != nil {
				fmt.Fprintf(w, "Runner-up: %v\n", podium.RunnerUp.Name())
			}
			for _, team := range podium.Third {
				fmt.Fprintf(w, "Third: %v\n", team.Name())
			}
		}
	}
}

// Returns the matches of the team of the best matching player
func playerMatches(c *core.Category, matches []*core.Match, query string) []*core.Match {
	found := roster.Find(c.Players, query)
	if len(found) == 0 {
		return nil
	}

	var teamID string
	for _, team := range c.Teams {
		for _, p := range team.Players {
			if p.ID == found[0].ID {
				teamID = team.ID
			}
		}
	}

	filtered := make([]*core.Match, 0)
	for _, m := range matches {
		if m.ContainsTeam(teamID) {
			filtered = append(filtered, m)
		}
	}
	return filtered
}

func printMatches(out io.Writer, matches []*core.Match) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, m := range matches {
		fmt.Fprintf(w, "#%v\t%v\t%v\t%v\t%v\n",
			m.MatchNumber,
			m.RoundKey,
			orDash(m.Court),
			orDash(m.ScheduledTime),
			m,
		)
	}
	w.Flush()
}

func orDash(s string) string {
	if s == "" {
		return export.Blank
	}
	return s
}
