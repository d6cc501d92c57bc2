package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

func main() {
	app := &cli.App{
		Name:  "site-safety",
		Usage: "Site safety monitoring dashboard server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to YAML config file",
				EnvVars: []string{"SAFETY_CONFIG"},
			},
			&cli.StringSliceFlag{
				Name:  "env-file",
				Usage: "dotenv files to load before reading config",
				Value: cli.NewStringSlice(".env"),
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "development logging at debug level",
			},
		},
		Commands: []*cli.Command{
			serveCommand(),
			logsCommand(),
			versionCommand(),
		},
		DefaultCommand: "serve",
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Print build information",
		Action: func(c *cli.Context) error {
			fmt.Fprintf(c.App.Writer, "Site Safety\n")
			fmt.Fprintf(c.App.Writer, "Version:    %s\n", Version)
			fmt.Fprintf(c.App.Writer, "Commit:     %s\n", Commit)
			fmt.Fprintf(c.App.Writer, "Build Date: %s\n", BuildDate)
			return nil
		},
	}
}
