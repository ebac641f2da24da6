package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/ezBadminton/badmintondraw/core"
	"github.com/ezBadminton/badmintondraw/internal/roster"
	"github.com/urfave/cli/v2"
)

var errAmbiguousPlayer = errors.New("more than one player matches")

func categoryCommand(r *runner) *cli.Command {
	return &cli.Command{
		Name:  "category",
		Usage: "manage the categories of the tournament",
		Subcommands: []*cli.Command{
			{
				Name:      "add",
				Usage:     "add a category",
				ArgsUsage: "NAME",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "doubles", Usage: "teams of two players"},
					&cli.BoolFlag{Name: "groups", Usage: "group stage before the knockout"},
					&cli.BoolFlag{Name: "no-third-place", Usage: "no third place match"},
					&cli.IntFlag{Name: "teams-per-group"},
					&cli.IntFlag{Name: "advance", Usage: "teams per group that advance"},
				},
				Action: func(c *cli.Context) error {
					name := strings.Join(c.Args().Slice(), " ")
					if name == "" {
						return fmt.Errorf("%w: the category needs a name", errUsage)
					}

					t, err := r.load(c)
					if err != nil {
						return err
					}

					eventType := core.Singles
					if c.Bool("doubles") {
						eventType = core.Doubles
					}
					format := core.SingleElimination
					if c.Bool("groups") {
						format = core.GroupStageElimination
					}

					category := core.NewCategory(name, eventType, format)
					r.cfg.Defaults.ApplyCategory(category)
					if c.Bool("no-third-place") {
						category.ThirdPlaceMatch = false
					}
					if c.IsSet("teams-per-group") {
						category.TeamsPerGroup = c.Int("teams-per-group")
					}
					if c.IsSet("advance") {
						category.AdvancePerGroup = c.Int("advance")
					}
					t.AddCategory(category)

					if err := r.save(c, t); err != nil {
						return err
					}
					fmt.Fprintf(c.App.Writer, "Added category %v (%v)\n", category.Name, category.ID)
					return nil
				},
			},
			{
				Name:      "remove",
				Usage:     "remove a category",
				ArgsUsage: "NAME|ID",
				Action: func(c *cli.Context) error {
					t, err := r.load(c)
					if err != nil {
						return err
					}
					category, err := t.Category(c.Args().First())
					if err != nil {
						return err
					}
					if err := t.RemoveCategory(category.ID); err != nil {
						return err
					}
					return r.save(c, t)
				},
			},
		},
	}
}

func playersCommand(r *runner) *cli.Command {
	return &cli.Command{
		Name:  "players",
		Usage: "manage the roster of a category",
		Subcommands: []*cli.Command{
			{
				Name:      "add",
				Usage:     "add players, one 'Name | Club' per argument or line of the file",
				ArgsUsage: "[PLAYER...]",
				Flags: []cli.Flag{
					categoryFlag(),
					&cli.StringFlag{Name: "file", Aliases: []string{"f"}, Usage: "read the players from a file, - for stdin"},
				},
				Action: func(c *cli.Context) error {
					t, category, err := r.loadCategory(c)
					if err != nil {
						return err
					}

					text, err := rosterText(c)
					if err != nil {
						return err
					}
					players := roster.Parse(text, len(category.Players))
					if len(players) == 0 {
						return fmt.Errorf("%w: no players given", errUsage)
					}

					if category.DrawDone {
						r.logger.Warn().Str("category", category.Name).Msg("the draw is reset by the roster change")
					}
					category.AddPlayers(players...)

					if err := r.save(c, t); err != nil {
						return err
					}
					fmt.Fprintf(c.App.Writer, "Added %v players to %v (%v teams)\n", len(players), category.Name, len(category.Teams))
					return nil
				},
			},
			{
				Name:      "remove",
				Usage:     "remove a player by name or code",
				ArgsUsage: "PLAYER",
				Flags:     []cli.Flag{categoryFlag()},
				Action: func(c *cli.Context) error {
					t, category, err := r.loadCategory(c)
					if err != nil {
						return err
					}

					query := strings.Join(c.Args().Slice(), " ")
					found := roster.Find(category.Players, query)
					switch {
					case len(found) == 0:
						return fmt.Errorf("%w: %v", core.ErrPlayerNotFound, query)
					case len(found) > 1 && !strings.EqualFold(found[0].Name, query):
						names := make([]string, 0, len(found))
						for _, p := range found {
							names = append(names, fmt.Sprintf("%v (%v)", p.Name, p.Code))
						}
						return fmt.Errorf("%w %q: %v", errAmbiguousPlayer, query, strings.Join(names, ", "))
					}

					if err := category.RemovePlayer(found[0].ID); err != nil {
						return err
					}
					if err := r.save(c, t); err != nil {
						return err
					}
					fmt.Fprintf(c.App.Writer, "Removed %v from %v\n", found[0].Name, category.Name)
					return nil
				},
			},
			{
				Name:  "list",
				Usage: "list the teams of a category",
				Flags: []cli.Flag{categoryFlag()},
				Action: func(c *cli.Context) error {
					_, category, err := r.loadCategory(c)
					if err != nil {
						return err
					}
					printTeams(c.App.Writer, category.Teams)
					return nil
				},
			},
		},
	}
}

func rosterText(c *cli.Context) (string, error) {
	switch file := c.String("file"); file {
	case "":
		return strings.Join(c.Args().Slice(), "\n"), nil
	case "-":
		data, err := io.ReadAll(c.App.Reader)
		return string(data), err
	default:
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("failed to read the roster: %w", err)
		}
		return string(data), nil
	}
}

func printTeams(out io.Writer, teams []core.Team) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, team := range teams {
		codes := make([]string, 0, len(team.Players))
		for _, p := range team.Players {
			codes = append(codes, p.Code)
		}
		fmt.Fprintf(w, "%v\t%v\t%v\t%v\n", team.Code, team.Name(), team.Club, strings.Join(codes, ","))
	}
	w.Flush()
}

func drawCommand(r *runner) *cli.Command {
	return &cli.Command{
		Name:  "draw",
		Usage: "draw the category in a random order",
		Flags: []cli.Flag{
			categoryFlag(),
			&cli.Int64Flag{Name: "seed", Usage: "seed of the random order, random by default"},
			&cli.BoolFlag{Name: "no-protection", Usage: "allow players of the same club to meet early"},
		},
		Action: func(c *cli.Context) error {
			t, category, err := r.loadCategory(c)
			if err != nil {
				return err
			}

			seed := time.Now().UnixNano()
			if c.IsSet("seed") {
				seed = c.Int64("seed")
			}
			protect := t.ClubProtection && !c.Bool("no-protection")

			if err := category.ShuffleDraw(protect, seed); err != nil {
				return err
			}
			if err := r.save(c, t); err != nil {
				return err
			}

			r.logger.Info().
				Str("category", category.Name).
				Int64("seed", seed).
				Bool("club_protection", protect).
				Msg("category drawn")

			fmt.Fprintf(c.App.Writer, "Drew %v teams in %v\n", len(category.Teams), category.Name)
			if category.Format == core.SingleElimination && protect {
				if n := core.ClubCollisions(category.Teams); n > 0 {
					fmt.Fprintf(c.App.Writer, "%v pairs of the draw order are from the same club\n", n)
				}
			}
			printMatches(c.App.Writer, category.AllMatches())
			return nil
		},
	}
}
