package main

import (
	"encoding/json"

	"github.com/urfave/cli/v2"

	"github.com/technosupport/site-safety/internal/logs"
)

func logsCommand() *cli.Command {
	return &cli.Command{
		Name:  "logs",
		Usage: "Print one page of detection events as JSON",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "page", Value: logs.DefaultPage},
			&cli.IntFlag{Name: "limit", Value: logs.DefaultLimit},
		},
		Action: func(c *cli.Context) error {
			cc, err := newCommandContext(c)
			if err != nil {
				return err
			}
			defer cc.Logger.Sync()

			store := logs.NewStore(cc.Config.Storage.DetectionLog, cc.Logger)
			page, err := store.Query(c.Context, c.Int("page"), c.Int("limit"))
			if err != nil {
				return err
			}

			enc := json.NewEncoder(c.App.Writer)
			enc.SetIndent("", "  ")
			return enc.Encode(page)
		},
	}
}
