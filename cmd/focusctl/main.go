// Package main implements focusctl, a command line client that prints a
// user's focus list straight from the task database.
//
// Usage:
//
//	focusctl -user 42 [-mode deadline] [-focus-limit 5] [-waiting-limit 5] [-o table|json|yaml]
//	focusctl -driver sqlite -db ./focus.db -migrate -seed fixtures.yaml -user 1
//	focusctl -print-token -user 42
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/phrazzld/focus-api/internal/config"
	"github.com/phrazzld/focus-api/internal/domain"
	"github.com/phrazzld/focus-api/internal/fixtures"
	"github.com/phrazzld/focus-api/internal/platform/backend"
	"github.com/phrazzld/focus-api/internal/platform/logger"
	"github.com/phrazzld/focus-api/internal/report"
	"github.com/phrazzld/focus-api/internal/service/auth"
	"github.com/phrazzld/focus-api/internal/service/focus"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr, time.Now); err != nil {
		fmt.Fprintf(os.Stderr, "focusctl: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	configFile   string
	driver       string
	dbURL        string
	userID       int64
	focusLimit   int
	waitingLimit int
	mode         string
	output       string
	seed         string
	migrate      bool
	printToken   bool
	verbose      bool
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	fs := flag.NewFlagSet("focusctl", flag.ContinueOnError)
	fs.SetOutput(stderr)

	opts := &options{}
	fs.StringVar(&opts.configFile, "config", "", "path to a config file (overrides FOCUS_CONFIG_FILE)")
	fs.StringVar(&opts.driver, "driver", "", "database driver, postgres or sqlite (overrides config)")
	fs.StringVar(&opts.dbURL, "db", "", "database URL or SQLite path (overrides config)")
	fs.Int64Var(&opts.userID, "user", 0, "id of the user whose tasks are ranked")
	fs.IntVar(&opts.focusLimit, "focus-limit", -1, "maximum ready tasks (default from config)")
	fs.IntVar(&opts.waitingLimit, "waiting-limit", -1, "maximum blocked tasks (default from config)")
	fs.StringVar(&opts.mode, "mode", "", "priority, deadline or successor_impact (default from config)")
	fs.StringVar(&opts.output, "o", "table", "output format: table, json or yaml")
	fs.StringVar(&opts.seed, "seed", "", "load a YAML fixture file before ranking")
	fs.BoolVar(&opts.migrate, "migrate", false, "apply pending migrations before anything else")
	fs.BoolVar(&opts.printToken, "print-token", false, "print an API bearer token for -user and exit")
	fs.BoolVar(&opts.verbose, "v", false, "log at debug level to stderr")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	return opts, nil
}

func (o *options) overrides() map[string]any {
	m := map[string]any{}
	if o.driver != "" {
		m["database.driver"] = o.driver
	}
	if o.dbURL != "" {
		m["database.url"] = o.dbURL
	}
	if o.migrate {
		m["database.auto_migrate"] = true
	}
	return m
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer, now func() time.Time) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	format, err := report.ParseFormat(opts.output)
	if err != nil {
		return err
	}

	cfg, err := config.LoadWithOverrides(opts.configFile, opts.overrides())
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	level := "warn"
	if opts.verbose {
		level = "debug"
	}
	log, err := logger.Setup(logger.LoggerConfig{Level: level, Format: "text", Output: stderr})
	if err != nil {
		return err
	}

	if opts.printToken {
		return printToken(ctx, cfg.Auth, opts.userID, stdout)
	}

	b, err := backend.Open(ctx, cfg.Database, log)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = b.Close() }()

	if opts.seed != "" {
		if err := seed(ctx, b, opts.seed, now, log, stderr); err != nil {
			return err
		}
	}

	if opts.userID == 0 {
		if opts.seed != "" || opts.migrate {
			return nil
		}
		return errors.New("-user is required")
	}

	q, err := buildQuery(opts, cfg.Focus)
	if err != nil {
		return err
	}

	svc := b.FocusService(cfg.Focus, log, focus.WithClock(now))
	result, err := svc.GetFocusTasks(ctx, q)
	if err != nil {
		return err
	}

	return report.Write(stdout, result, format, now())
}

func buildQuery(opts *options, defaults config.FocusConfig) (focus.Query, error) {
	modeName := opts.mode
	if modeName == "" {
		modeName = defaults.DefaultMode
	}
	mode, err := domain.ParseScorePriorityMode(modeName)
	if err != nil {
		return focus.Query{}, err
	}

	q := focus.Query{
		UserID:       opts.userID,
		FocusLimit:   defaults.DefaultFocusLimit,
		WaitingLimit: defaults.DefaultWaitingLimit,
		Mode:         mode,
	}
	if opts.focusLimit >= 0 {
		q.FocusLimit = opts.focusLimit
	}
	if opts.waitingLimit >= 0 {
		q.WaitingLimit = opts.waitingLimit
	}
	return q, nil
}

func seed(ctx context.Context, b *backend.Backend, path string, now func() time.Time, log *slog.Logger, stderr io.Writer) error {
	doc, err := fixtures.LoadFile(path)
	if err != nil {
		return err
	}

	summary, err := fixtures.NewLoader(b.DB, b.Tasks, now, log).Load(ctx, doc)
	if err != nil {
		return fmt.Errorf("failed to load fixtures: %w", err)
	}

	fmt.Fprintf(stderr, "seeded %d workspaces, %d items, %d tasks\n",
		summary.Workspaces, summary.Items, summary.Tasks)
	return nil
}

func printToken(ctx context.Context, cfg config.AuthConfig, userID int64, stdout io.Writer) error {
	if userID <= 0 {
		return errors.New("-print-token needs a positive -user")
	}

	jwtService, err := auth.NewJWTService(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize JWT service: %w", err)
	}

	token, err := jwtService.GenerateToken(ctx, userID)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(stdout, token)
	return err
}
