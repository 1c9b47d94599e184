package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/fwojciec/linediff/config"
	"github.com/fwojciec/linediff/gitdiff"
	"github.com/fwojciec/linediff/history"
	"github.com/fwojciec/linediff/lcs"
	"github.com/fwojciec/linediff/unified"
)

const version = "0.1.0"

func main() {
	app := &cli.App{
		Name:    "linediff",
		Usage:   "Compute, apply and track line diffs",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Load configuration from `FILE`",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level (trace, debug, info, warn, error)",
			},
			&cli.StringFlag{
				Name:  "history",
				Usage: "History log `FILE` (\"none\" disables history)",
			},
		},
		Commands: []*cli.Command{
			diffCommand(),
			applyCommand(),
			statCommand(),
			historyCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func diffCommand() *cli.Command {
	return &cli.Command{
		Name:      "diff",
		Usage:     "Compute the unified diff between two files",
		ArgsUsage: "OLD NEW",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "context",
				Aliases: []string{"C"},
				Usage:   "Lines of unchanged context around each hunk",
				Value:   -1, // -1 means "use config"
			},
			&cli.BoolFlag{
				Name:  "stat",
				Usage: "Print a stats summary instead of the diff",
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 2 {
				return errors.New("diff requires exactly two file arguments")
			}
			app, cfg, err := newApp(c)
			if err != nil {
				return err
			}
			contextLines := c.Int("context")
			if contextLines < 0 {
				contextLines = cfg.Diff.Context
			}
			err = app.RunDiff(c.Context, c.Args().Get(0), c.Args().Get(1), contextLines, c.Bool("stat"))
			if errors.Is(err, ErrNoChanges) {
				app.Log.Info().Msg("files are identical")
				return nil
			}
			return err
		},
	}
}

func applyCommand() *cli.Command {
	return &cli.Command{
		Name:      "apply",
		Usage:     "Apply a patch to a file, verifying its context first",
		ArgsUsage: "PATCH TARGET",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "git",
				Usage: "Parse the patch as a git-style patch",
			},
			&cli.BoolFlag{
				Name:    "in-place",
				Aliases: []string{"w"},
				Usage:   "Write the result back to TARGET instead of stdout",
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 2 {
				return errors.New("apply requires a patch and a target file")
			}
			app, _, err := newApp(c)
			if err != nil {
				return err
			}
			return app.RunApply(c.Context, c.Args().Get(0), c.Args().Get(1), c.Bool("git"), c.Bool("in-place"))
		},
	}
}

func statCommand() *cli.Command {
	return &cli.Command{
		Name:      "stat",
		Usage:     "Print addition/deletion counts for one or more patches",
		ArgsUsage: "PATCH...",
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return errors.New("stat requires at least one patch file")
			}
			app, _, err := newApp(c)
			if err != nil {
				return err
			}
			return app.RunStat(c.Context, c.Args().Slice())
		},
	}
}

func historyCommand() *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "List recorded diff actions",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"n"},
				Usage:   "Show at most `N` records",
				Value:   20,
			},
		},
		Action: func(c *cli.Context) error {
			app, _, err := newApp(c)
			if err != nil {
				return err
			}
			return app.RunHistory(c.Context, c.Int("limit"))
		},
	}
}

// newApp builds the App from configuration and flags.
func newApp(c *cli.Context) (*App, *config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, nil, err
	}

	levelName := cfg.Log.Level
	if c.IsSet("log-level") {
		levelName = c.String("log-level")
	}
	level, err := zerolog.ParseLevel(levelName)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", levelName, err)
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()

	historyPath := cfg.History.Path
	if c.IsSet("history") {
		historyPath = c.String("history")
	}
	var store *history.Store
	if historyPath != "" && historyPath != "none" {
		if err := os.MkdirAll(filepath.Dir(historyPath), 0o755); err != nil {
			return nil, nil, fmt.Errorf("creating history directory: %w", err)
		}
		store, err = history.NewStore(historyPath)
		if err != nil {
			return nil, nil, err
		}
	}

	codec := unified.NewCodec()
	return &App{
		Differ:    lcs.NewDiffer(),
		Formatter: codec,
		Parser:    codec,
		Git:       gitdiff.NewParser(),
		Store:     store,
		Out:       os.Stdout,
		Log:       logger,
	}, cfg, nil
}
