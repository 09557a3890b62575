package command

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/lesichkovm/registryjs/pkg/codec"
)

// SetCommand returns the set command.
func SetCommand() *cli.Command {
	return &cli.Command{
		Name:      "set",
		Usage:     "Store a value under a key",
		ArgsUsage: "KEY VALUE",
		Flags: []cli.Flag{
			&cli.DurationFlag{
				Name:    "ttl",
				Aliases: []string{"t"},
				Usage:   "Expiration (e.g., 5m, 12h); zero stores forever",
			},
			&cli.BoolFlag{
				Name:  "raw",
				Usage: "Store VALUE as a plain string, without JSON parsing",
			},
		},
		Action: kvSet,
	}
}

// GetCommand returns the get command.
func GetCommand() *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "Read the value stored under a key",
		ArgsUsage: "KEY",
		Action:    kvGet,
	}
}

// RemoveCommand returns the remove command.
func RemoveCommand() *cli.Command {
	return &cli.Command{
		Name:      "remove",
		Aliases:   []string{"rm"},
		Usage:     "Delete the value stored under a key",
		ArgsUsage: "KEY",
		Action:    kvRemove,
	}
}

// KeysCommand returns the keys command.
func KeysCommand() *cli.Command {
	return &cli.Command{
		Name:   "keys",
		Usage:  "List keys in the namespace",
		Action: kvKeys,
	}
}

// EmptyCommand returns the empty command.
func EmptyCommand() *cli.Command {
	return &cli.Command{
		Name:  "empty",
		Usage: "Delete every entry in the namespace",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "force",
				Aliases: []string{"f"},
				Usage:   "Skip confirmation",
			},
		},
		Action: kvEmpty,
	}
}

func commandContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 30*time.Second)
}

// parseValue interprets the VALUE argument. JSON text is stored as the
// value it denotes; anything that does not parse is stored as a plain
// string, so `set theme dark` works without quoting gymnastics.
func parseValue(raw string, forceRaw bool) codec.Value {
	if forceRaw {
		return codec.String(raw)
	}
	if v, err := codec.DecodeJSON(raw); err == nil {
		return v
	}
	return codec.String(raw)
}

func kvSet(c *cli.Context) error {
	key := c.Args().Get(0)
	if key == "" {
		return fmt.Errorf("key required")
	}
	if c.Args().Len() < 2 {
		return fmt.Errorf("value required")
	}

	reg, closer, err := openRegistry(c)
	if err != nil {
		return err
	}
	defer closer()

	ctx, cancel := commandContext()
	defer cancel()

	value := parseValue(c.Args().Get(1), c.Bool("raw"))
	if err := reg.Set(ctx, key, value, c.Duration("ttl")); err != nil {
		return err
	}

	fmt.Printf("Stored %q in namespace %s.\n", key, reg.Namespace())
	return nil
}

func kvGet(c *cli.Context) error {
	key := c.Args().First()
	if key == "" {
		return fmt.Errorf("key required")
	}

	reg, closer, err := openRegistry(c)
	if err != nil {
		return err
	}
	defer closer()

	ctx, cancel := commandContext()
	defer cancel()

	value, err := reg.Get(ctx, key)
	if err != nil {
		return err
	}

	return formatter(c).Format(os.Stdout, value.String())
}

func kvRemove(c *cli.Context) error {
	key := c.Args().First()
	if key == "" {
		return fmt.Errorf("key required")
	}

	reg, closer, err := openRegistry(c)
	if err != nil {
		return err
	}
	defer closer()

	ctx, cancel := commandContext()
	defer cancel()

	if err := reg.Remove(ctx, key); err != nil {
		return err
	}

	fmt.Printf("Removed %q.\n", key)
	return nil
}

func kvKeys(c *cli.Context) error {
	reg, closer, err := openRegistry(c)
	if err != nil {
		return err
	}
	defer closer()

	ctx, cancel := commandContext()
	defer cancel()

	keys, err := reg.Keys(ctx)
	if err != nil {
		return err
	}

	return formatter(c).Format(os.Stdout, keys)
}

func kvEmpty(c *cli.Context) error {
	cfg := getConfig(c)

	if !c.Bool("force") {
		fmt.Printf("This will delete every entry in namespace '%s'. Type '%s' to confirm: ", cfg.Namespace, cfg.Namespace)
		var confirm string
		fmt.Scanln(&confirm)
		if confirm != cfg.Namespace {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	reg, closer, err := openRegistry(c)
	if err != nil {
		return err
	}
	defer closer()

	ctx, cancel := commandContext()
	defer cancel()

	if err := reg.Empty(ctx); err != nil {
		return err
	}

	fmt.Printf("Namespace '%s' emptied.\n", cfg.Namespace)
	return nil
}
