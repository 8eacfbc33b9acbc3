// Package main serves the focus list over the Model Context Protocol on stdio.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/phrazzld/focus-api/internal/config"
	"github.com/phrazzld/focus-api/internal/mcp"
	"github.com/phrazzld/focus-api/internal/platform/backend"
	"github.com/phrazzld/focus-api/internal/platform/logger"
)

const version = "0.1.0"

func main() {
	configFile := flag.String("config", "", "path to a config file (overrides FOCUS_CONFIG_FILE)")
	flag.Parse()

	if err := run(context.Background(), *configFile); err != nil {
		fmt.Fprintf(os.Stderr, "focus-mcp: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configFile string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// stdout carries the protocol, so logs go to stderr.
	log, err := logger.Setup(logger.LoggerConfig{
		Level:  cfg.Server.LogLevel,
		Format: cfg.Server.LogFormat,
		Output: os.Stderr,
	})
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	b, err := backend.Open(ctx, cfg.Database, log)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = b.Close() }()

	s := mcp.NewServer(b.FocusService(cfg.Focus, log), cfg.Focus, log, version)
	log.Info("serving MCP on stdio", "tool", mcp.ToolGetFocusTasks)
	return mcp.Serve(s)
}
