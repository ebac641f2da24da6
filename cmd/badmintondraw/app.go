package main

import (
	"errors"
	"fmt"

	"github.com/ezBadminton/badmintondraw/core"
	"github.com/ezBadminton/badmintondraw/internal/config"
	"github.com/ezBadminton/badmintondraw/internal/logger"
	"github.com/ezBadminton/badmintondraw/internal/store"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"
)

var (
	errNoTournament = errors.New("no tournament saved yet, create one with 'tournament new'")
	errUsage        = errors.New("wrong arguments")
)

// Holds what the commands share. The fields are set up from the
// configuration before the first command runs unless they are
// set already.
type runner struct {
	cfg    *config.Config
	repo   store.Repository
	logger zerolog.Logger
}

func newApp(r *runner) *cli.App {
	return &cli.App{
		Name:  "badmintondraw",
		Usage: "draws, scores and schedules badminton tournaments",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "path to the configuration file",
				Value: "config.yaml",
			},
			&cli.StringFlag{
				Name:    "tournament",
				Aliases: []string{"t"},
				Usage:   "id of the tournament, the most recently updated one by default",
			},
		},
		Before: r.setup,
		After:  r.close,
		Commands: []*cli.Command{
			tournamentCommand(r),
			categoryCommand(r),
			playersCommand(r),
			drawCommand(r),
			scoreCommand(r),
			advanceCommand(r),
			scheduleCommand(r),
			standingsCommand(r),
			exportCommand(r),
			syncCommand(r),
		},
	}
}

func (r *runner) setup(c *cli.Context) error {
	if r.cfg == nil {
		cfg, err := config.LoadConfig(c.String("config"))
		if err != nil {
			return err
		}
		r.cfg = cfg
		r.logger = logger.New(cfg.LogLevel)
	}

	if r.repo == nil {
		repo, err := store.Open(c.Context, r.cfg.Store, r.logger)
		if err != nil {
			return fmt.Errorf("failed to open the %v store: %w", r.cfg.Store.Driver, err)
		}
		r.repo = repo
	}
	return nil
}

func (r *runner) close(c *cli.Context) error {
	if r.repo == nil {
		return nil
	}
	return r.repo.Close(c.Context)
}

// Loads the tournament that the --tournament flag names
func (r *runner) load(c *cli.Context) (*core.Tournament, error) {
	id := c.String("tournament")
	if id == "" {
		list, err := r.repo.List(c.Context)
		if err != nil {
			return nil, err
		}
		if len(list) == 0 {
			return nil, errNoTournament
		}
		id = list[0].ID
	}
	return r.repo.Load(c.Context, id)
}

// Loads the tournament and the category that the --category
// flag names
func (r *runner) loadCategory(c *cli.Context) (*core.Tournament, *core.Category, error) {
	t, err := r.load(c)
	if err != nil {
		return nil, nil, err
	}
	category, err := t.Category(c.String("category"))
	if err != nil {
		return nil, nil, err
	}
	return t, category, nil
}

func (r *runner) save(c *cli.Context, t *core.Tournament) error {
	t.Touch()
	if err := r.repo.Save(c.Context, t); err != nil {
		return err
	}
	r.logger.Debug().Str("tournament", t.ID).Msg("tournament saved")
	return nil
}

func categoryFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "category",
		Aliases:  []string{"c"},
		Usage:    "id or name of the category",
		Required: true,
	}
}
