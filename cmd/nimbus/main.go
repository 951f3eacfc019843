package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/five82/nimbus/internal/app"
	"github.com/five82/nimbus/internal/weather"
)

const version = "0.1.0"

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := command().Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "nimbus: %v\n", err)
		return 1
	}
	return 0
}

func command() *cli.Command {
	return &cli.Command{
		Name:    "nimbus",
		Usage:   "Terminal weather backed by OpenWeatherMap",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file (default ~/.config/nimbus/config.toml)",
			},
			&cli.StringFlag{
				Name:  "prefs",
				Usage: "Path to preferences file (default ~/.config/nimbus/prefs.toml)",
			},
			&cli.IntFlag{
				Name:  "refresh",
				Usage: "Refresh interval in seconds, overrides refresh_interval",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Log at debug level",
			},
		},
		Action: runTUI,
		Commands: []*cli.Command{
			{
				Name:      "now",
				Usage:     "Print the weather for a location (or the saved one) and exit",
				ArgsUsage: "[location]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "units",
						Aliases: []string{"u"},
						Usage:   "metric or imperial",
					},
				},
				Action: runNow,
			},
		},
	}
}

func options(cmd *cli.Command) app.Options {
	return app.Options{
		ConfigPath:   cmd.String("config"),
		PrefsPath:    cmd.String("prefs"),
		RefreshEvery: int(cmd.Int("refresh")),
		Debug:        cmd.Bool("debug"),
		Version:      version,
	}
}

func runTUI(ctx context.Context, cmd *cli.Command) error {
	return app.Run(ctx, options(cmd))
}

func runNow(ctx context.Context, cmd *cli.Command) error {
	var units *weather.Units
	if raw := cmd.String("units"); raw != "" {
		parsed, err := weather.ParseUnits(raw)
		if err != nil {
			return err
		}
		units = &parsed
	}

	query := strings.TrimSpace(strings.Join(cmd.Args().Slice(), " "))
	view, err := app.Now(ctx, options(cmd), query, units)
	if err != nil {
		return err
	}
	fmt.Print(app.Report(view))
	return nil
}
