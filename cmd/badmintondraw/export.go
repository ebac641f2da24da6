package main

import (
	"errors"
	"fmt"

	"github.com/ezBadminton/badmintondraw/export"
	"github.com/urfave/cli/v2"
)

var errNoSheetURL = errors.New("no web app url, pass --url or set BADMINTON_SHEET_URL")

func exportCommand(r *runner) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "write the tournament as CSV and XLSX files",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "dir", Aliases: []string{"o"}, Usage: "output directory", Value: "."},
		},
		Action: func(c *cli.Context) error {
			t, err := r.load(c)
			if err != nil {
				return err
			}

			paths, err := export.WriteFiles(c.Context, t, c.String("dir"))
			if err != nil {
				return err
			}
			for _, p := range paths {
				fmt.Fprintln(c.App.Writer, p)
			}
			return nil
		},
	}
}

func syncCommand(r *runner) *cli.Command {
	return &cli.Command{
		Name:  "sync",
		Usage: "post the tournament to the spreadsheet web app",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "url", Usage: "web app url, remembered for the next syncs"},
		},
		Action: func(c *cli.Context) error {
			t, err := r.load(c)
			if err != nil {
				return err
			}

			url := c.String("url")
			if url == "" {
				url = t.SheetURL
			}
			if url == "" {
				url = r.cfg.Sync.SheetURL
			}
			if url == "" {
				return errNoSheetURL
			}

			syncer, err := export.NewSheetSyncer(url, r.cfg.Sync.Interval, r.cfg.Sync.Timeout, r.logger)
			if err != nil {
				return err
			}
			if err := syncer.Sync(c.Context, t); err != nil {
				return err
			}

			t.SheetURL = url
			if err := r.save(c, t); err != nil {
				return err
			}
			fmt.Fprintf(c.App.Writer, "Synced %v\n", t.Name)
			return nil
		},
	}
}
