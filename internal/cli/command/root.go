// Package command provides CLI command definitions for registry-cli.
//
// It uses urfave/cli/v2 for command parsing. Every command opens the
// badger-backed store configured by flags, environment variables or
// the config file, runs against a registry bound to the configured
// namespace, and closes the store again.
package command

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	registry "github.com/lesichkovm/registryjs"
	"github.com/lesichkovm/registryjs/internal/cli/config"
	"github.com/lesichkovm/registryjs/internal/cli/output"
	"github.com/lesichkovm/registryjs/internal/infra/buildinfo"
	"github.com/lesichkovm/registryjs/internal/telemetry/logger"
	"github.com/lesichkovm/registryjs/substrate/badgerstore"
)

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:    "registry-cli",
		Usage:   "Namespaced key-value registry tool",
		Version: buildinfo.String(),
		Flags:   globalFlags(),
		Commands: []*cli.Command{
			SetCommand(),
			GetCommand(),
			RemoveCommand(),
			KeysCommand(),
			EmptyCommand(),
			ExportCommand(),
			ImportCommand(),
			ConfigCommand(),
		},
		Before: setup,
	}
}

// globalFlags returns the global CLI flags.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Config file path",
			EnvVars: []string{"REGISTRY_CONFIG"},
		},
		&cli.StringFlag{
			Name:    "data-dir",
			Aliases: []string{"d"},
			Usage:   "Badger data directory",
		},
		&cli.BoolFlag{
			Name:  "in-memory",
			Usage: "Keep data in memory only (nothing is persisted)",
		},
		&cli.StringFlag{
			Name:    "namespace",
			Aliases: []string{"n"},
			Usage:   "Namespace label",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output format: table, json",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"V"},
			Usage:   "Enable debug logging",
		},
	}
}

// setup loads configuration, applies flag overrides and builds the
// logger, stashing both in the app metadata for commands to pick up.
func setup(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if dir := c.String("data-dir"); dir != "" {
		cfg.Store.Dir = dir
	}
	if c.Bool("in-memory") {
		cfg.Store.InMemory = true
	}
	if ns := c.String("namespace"); ns != "" {
		cfg.Namespace = ns
	}
	if format := c.String("output"); format != "" {
		cfg.Output = format
	}
	if c.Bool("verbose") {
		cfg.Log.Level = "debug"
	}

	log := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})

	c.App.Metadata["config"] = cfg
	c.App.Metadata["logger"] = log
	return nil
}

func getConfig(c *cli.Context) *config.CLIConfig {
	if cfg, ok := c.App.Metadata["config"].(*config.CLIConfig); ok {
		return cfg
	}
	return config.Default()
}

func getLogger(c *cli.Context) *slog.Logger {
	if log, ok := c.App.Metadata["logger"].(*slog.Logger); ok {
		return log
	}
	return slog.Default()
}

func formatter(c *cli.Context) output.Formatter {
	return output.NewFormatter(output.Format(getConfig(c).Output))
}

// openRegistry opens the configured store and binds a registry to the
// configured namespace. The returned closer must be called before the
// process exits to release the badger lock.
func openRegistry(c *cli.Context) (*registry.Registry, func(), error) {
	cfg := getConfig(c)
	log := getLogger(c)

	storeCfg := badgerstore.DefaultConfig(cfg.Store.Dir)
	storeCfg.InMemory = cfg.Store.InMemory
	storeCfg.Logger = log

	store, err := badgerstore.Open(storeCfg)
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}

	reg, err := registry.New(cfg.Namespace,
		registry.WithSubstrate(store),
		registry.WithLogger(log),
	)
	if err != nil {
		store.Close()
		return nil, nil, err
	}

	closer := func() {
		if err := store.Close(); err != nil {
			log.Warn("close store", "error", err)
		}
	}
	return reg, closer, nil
}

// openSubstrate opens the configured store without binding a registry,
// for commands that operate on raw substrate entries.
func openSubstrate(c *cli.Context) (*badgerstore.Store, func(), error) {
	cfg := getConfig(c)
	log := getLogger(c)

	storeCfg := badgerstore.DefaultConfig(cfg.Store.Dir)
	storeCfg.InMemory = cfg.Store.InMemory
	storeCfg.Logger = log

	store, err := badgerstore.Open(storeCfg)
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}

	closer := func() {
		if err := store.Close(); err != nil {
			log.Warn("close store", "error", err)
		}
	}
	return store, closer, nil
}

// PrintError prints an error message to stderr.
func PrintError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
}
