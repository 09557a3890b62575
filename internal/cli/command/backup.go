package command

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/lesichkovm/registryjs/internal/backup"
	"github.com/lesichkovm/registryjs/pkg/namespace"
)

// ExportCommand returns the export command.
func ExportCommand() *cli.Command {
	return &cli.Command{
		Name:      "export",
		Usage:     "Export the namespace to an encrypted archive",
		ArgsUsage: "FILE",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "passphrase",
				Aliases: []string{"p"},
				Usage:   "Archive passphrase",
				EnvVars: []string{"REGISTRY_PASSPHRASE"},
			},
		},
		Action: backupExport,
	}
}

// ImportCommand returns the import command.
func ImportCommand() *cli.Command {
	return &cli.Command{
		Name:      "import",
		Usage:     "Restore entries from an encrypted archive",
		ArgsUsage: "FILE",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "passphrase",
				Aliases: []string{"p"},
				Usage:   "Archive passphrase",
				EnvVars: []string{"REGISTRY_PASSPHRASE"},
			},
		},
		Action: backupImport,
	}
}

func passphrase(c *cli.Context) ([]byte, error) {
	p := c.String("passphrase")
	if p == "" {
		return nil, fmt.Errorf("passphrase required (flag --passphrase or REGISTRY_PASSPHRASE)")
	}
	return []byte(p), nil
}

func backupExport(c *cli.Context) error {
	path := c.Args().First()
	if path == "" {
		return fmt.Errorf("archive file required")
	}

	pass, err := passphrase(c)
	if err != nil {
		return err
	}

	sub, closer, err := openSubstrate(c)
	if err != nil {
		return err
	}
	defer closer()

	ctx, cancel := commandContext()
	defer cancel()

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("create archive: %w", err)
	}
	defer f.Close()

	token := namespace.Derive(getConfig(c).Namespace, nil)
	manifest, err := backup.Export(ctx, sub, token, pass, f)
	if err != nil {
		os.Remove(path)
		return err
	}

	fmt.Printf("Exported %d entries to %s (archive %s).\n", len(manifest.Entries), path, manifest.ID)
	return nil
}

func backupImport(c *cli.Context) error {
	path := c.Args().First()
	if path == "" {
		return fmt.Errorf("archive file required")
	}

	pass, err := passphrase(c)
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	defer f.Close()

	sub, closer, err := openSubstrate(c)
	if err != nil {
		return err
	}
	defer closer()

	ctx, cancel := commandContext()
	defer cancel()

	manifest, err := backup.Import(ctx, sub, pass, f)
	if err != nil {
		return err
	}

	fmt.Printf("Restored %d entries from archive %s.\n", len(manifest.Entries), manifest.ID)
	return nil
}
