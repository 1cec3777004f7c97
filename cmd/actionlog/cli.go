package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/crimson-sun/actionlog/internal/config"
	"github.com/crimson-sun/actionlog/internal/engine/interaction"
	"github.com/crimson-sun/actionlog/internal/engine/taxonomy"
	"github.com/crimson-sun/actionlog/internal/logging"
	"github.com/crimson-sun/actionlog/internal/model"
	"github.com/crimson-sun/actionlog/internal/output/sqlite"
)

// newCLIApp creates the CLI application with all commands. cfg holds the
// environment defaults that flags override.
func newCLIApp(cfg config.Config) *cli.App {
	app := &cli.App{
		Name:    "actionlog",
		Usage:   "Audit log of player actions from a game client session",
		Version: config.Version,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "log-level", Value: cfg.LogLevel, Usage: "Diagnostics level: debug|info|warn|error"},
		},
		Before: func(c *cli.Context) error {
			cfg.LogLevel = c.String("log-level")
			logging.Init(cfg.Output.JSON, logging.ParseLevel(cfg.LogLevel))
			return nil
		},
		Commands: []*cli.Command{
			replayCmd(&cfg),
			listenCmd(&cfg),
			checkCmd(),
			categoriesCmd(),
			historyCmd(&cfg),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// pipelineFlags are shared by the commands that stream a session.
func pipelineFlags(cfg *config.Config) []cli.Flag {
	return []cli.Flag{
		&cli.StringSliceFlag{Name: "output", Aliases: []string{"o"}, Value: cli.NewStringSlice(cfg.Output.Outputs...), Usage: "Outputs: stdout|file|sqlite|webhook|slog"},
		&cli.BoolFlag{Name: "json", Value: cfg.Output.JSON, Usage: "Write JSON records instead of bare lines"},
		&cli.BoolFlag{Name: "pretty", Value: cfg.Output.Pretty, Usage: "Indent JSON on stdout"},
		&cli.StringFlag{Name: "file-path", Value: cfg.Output.FilePath, Usage: "Path for the file output"},
		&cli.Int64Flag{Name: "file-max-size", Value: cfg.Output.FileMaxSize, Usage: "Rotate the file output at this many bytes (0 = never)"},
		&cli.StringFlag{Name: "db-path", Value: cfg.Output.DBPath, Usage: "Database for the sqlite output"},
		&cli.StringFlag{Name: "webhook-url", Value: cfg.Output.WebhookURL, Usage: "Endpoint for the webhook output"},
		&cli.BoolFlag{Name: "enabled", Value: cfg.Engine.Enabled, Usage: "Process events at all"},
		&cli.BoolFlag{Name: "projectiles", Value: cfg.Engine.Projectiles, Usage: "Report projectiles"},
		&cli.BoolFlag{Name: "forget-on-despawn", Value: cfg.Engine.ForgetOnDespawn, Usage: "Announce NPCs again after they despawn"},
		&cli.IntFlag{Name: "window", Value: cfg.Engine.DebounceWindow, Usage: "Debounce window in ticks"},
		&cli.IntFlag{Name: "capacity", Value: cfg.Engine.DebounceCapacity, Usage: "Debounce cache entries"},
		&cli.IntFlag{Name: "toggle-suppress", Value: cfg.Engine.ToggleSuppress, Usage: "Ticks a prayer toggle mutes flicker"},
		&cli.StringFlag{Name: "metrics-addr", Value: cfg.MetricsAddr, Usage: "Serve prometheus metrics on this address"},
	}
}

// applyPipelineFlags copies flag values over the environment config.
func applyPipelineFlags(c *cli.Context, cfg config.Config) config.Config {
	cfg.Output.Outputs = c.StringSlice("output")
	cfg.Output.JSON = c.Bool("json")
	cfg.Output.Pretty = c.Bool("pretty")
	cfg.Output.FilePath = c.String("file-path")
	cfg.Output.FileMaxSize = c.Int64("file-max-size")
	cfg.Output.DBPath = c.String("db-path")
	cfg.Output.WebhookURL = c.String("webhook-url")
	cfg.Engine.Enabled = c.Bool("enabled")
	cfg.Engine.Projectiles = c.Bool("projectiles")
	cfg.Engine.ForgetOnDespawn = c.Bool("forget-on-despawn")
	cfg.Engine.DebounceWindow = c.Int("window")
	cfg.Engine.DebounceCapacity = c.Int("capacity")
	cfg.Engine.ToggleSuppress = c.Int("toggle-suppress")
	cfg.MetricsAddr = c.String("metrics-addr")
	return cfg
}

// replayCmd creates the replay command.
func replayCmd(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "replay",
		Usage:     "Replay a recorded session transcript (JSONL or YAML)",
		ArgsUsage: "[path|-]",
		Flags: append(pipelineFlags(cfg),
			&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Value: cfg.Connector.Format, Usage: "Transcript format: jsonl|yaml (default: from extension)"},
		),
		Action: func(c *cli.Context) error {
			cfg := applyPipelineFlags(c, *cfg)
			cfg.Connector.Provider = "file"
			cfg.Connector.Format = c.String("format")
			if c.NArg() > 0 {
				cfg.Connector.Source = c.Args().First()
			}
			if cfg.Connector.Source == "" {
				return cli.Exit("replay: transcript path is required", 1)
			}
			return exitOnError(run(c.Context, cfg))
		},
	}
}

// listenCmd creates the listen command.
func listenCmd(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "listen",
		Usage:     "Stream a live session from a host websocket feed",
		ArgsUsage: "[ws-url]",
		Flags: append(pipelineFlags(cfg),
			&cli.StringFlag{Name: "api-key", Value: cfg.Connector.APIKey, Usage: "Bearer token sent on connect"},
		),
		Action: func(c *cli.Context) error {
			cfg := applyPipelineFlags(c, *cfg)
			cfg.Connector.Provider = "websocket"
			cfg.Connector.APIKey = c.String("api-key")
			if c.NArg() > 0 {
				cfg.Connector.Source = c.Args().First()
			}
			if cfg.Connector.Source == "" {
				return cli.Exit("listen: endpoint is required", 1)
			}
			return exitOnError(run(c.Context, cfg))
		},
	}
}

// checkResult is the output of the check command.
type checkResult struct {
	Snapshot model.InteractionSnapshot `json:"snapshot"`
	Fishing  bool                      `json:"fishing"`
	Mining   bool                      `json:"mining"`
}

// checkCmd creates the check command.
func checkCmd() *cli.Command {
	return &cli.Command{
		Name:  "check",
		Usage: "Evaluate the fishing and mining predicates for a player snapshot",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "animation", Aliases: []string{"a"}, Value: interaction.NoAnimation, Usage: "Current animation id"},
			&cli.StringFlag{Name: "target", Aliases: []string{"t"}, Usage: "Name of the interaction target"},
			&cli.IntFlag{Name: "graphic", Value: -1, Usage: "Graphic id playing on the target"},
		},
		Action: func(c *cli.Context) error {
			snap := model.InteractionSnapshot{
				Animation:     c.Int("animation"),
				HasTarget:     c.IsSet("target") || c.IsSet("graphic"),
				TargetName:    c.String("target"),
				TargetGraphic: c.Int("graphic"),
			}
			return outputJSON(checkResult{
				Snapshot: snap,
				Fishing:  interaction.IsFishing(snap),
				Mining:   interaction.IsMining(snap),
			})
		},
	}
}

// categoriesCmd creates the categories command.
func categoriesCmd() *cli.Command {
	return &cli.Command{
		Name:  "categories",
		Usage: "List action categories and the menu codes that map to them",
		Action: func(c *cli.Context) error {
			return outputJSON(taxonomy.Default())
		},
	}
}

// historyCmd creates the history command.
func historyCmd(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "Query actions persisted by the sqlite output",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "db-path", Value: cfg.Output.DBPath, Usage: "Database written by the sqlite output"},
			&cli.StringFlag{Name: "category", Aliases: []string{"c"}, Usage: "Only this category"},
			&cli.IntFlag{Name: "limit", Aliases: []string{"n"}, Value: 100, Usage: "Show only the most recent N rows (0 = all)"},
			&cli.BoolFlag{Name: "counts", Usage: "Print per-category totals instead of rows"},
			&cli.BoolFlag{Name: "json", Usage: "Print rows as JSON"},
		},
		Action: func(c *cli.Context) error {
			path := c.String("db-path")
			if path == "" {
				return cli.Exit("history: --db-path is required", 1)
			}
			db, err := sqlite.Open(path)
			if err != nil {
				return exitOnError(err)
			}
			defer db.Close()

			if c.Bool("counts") {
				counts, err := db.Counts(c.Context)
				if err != nil {
					return exitOnError(err)
				}
				return outputJSON(counts)
			}

			rows, err := db.Query(c.Context, sqlite.Filter{
				Category: model.Category(c.String("category")),
				Limit:    c.Int("limit"),
			})
			if err != nil {
				return exitOnError(err)
			}
			if c.Bool("json") {
				return outputJSON(rows)
			}
			for _, r := range rows {
				fmt.Fprintln(os.Stdout, r.Line)
			}
			return nil
		},
	}
}

// outputJSON writes v to stdout as indented JSON.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// exitOnError formats err for the CLI.
func exitOnError(err error) error {
	if err == nil {
		return nil
	}
	return cli.Exit(err.Error(), 1)
}
