package command

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/lesichkovm/registryjs/internal/cli/output"
	"github.com/lesichkovm/registryjs/pkg/namespace"
)

// ConfigCommand returns the config subcommand group.
func ConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Inspect the effective configuration",
		Subcommands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "Show the merged configuration",
				Action: configShow,
			},
			{
				Name:   "namespace",
				Usage:  "Show the derived namespace token",
				Action: configNamespace,
			},
		},
	}
}

func configShow(c *cli.Context) error {
	cfg := getConfig(c)

	merged := map[string]string{
		"store.dir":      cfg.Store.Dir,
		"store.inmemory": fmt.Sprintf("%t", cfg.Store.InMemory),
		"namespace":      cfg.Namespace,
		"output":         cfg.Output,
		"log.level":      cfg.Log.Level,
		"log.format":     cfg.Log.Format,
	}
	return formatter(c).Format(os.Stdout, merged)
}

func configNamespace(c *cli.Context) error {
	cfg := getConfig(c)

	table := &output.Table{Headers: []string{"LABEL", "TOKEN"}}
	table.AddRow(cfg.Namespace, namespace.Derive(cfg.Namespace, nil))
	return formatter(c).Format(os.Stdout, table)
}
