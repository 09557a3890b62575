// Package main provides the entry point for registry-cli.
//
// registry-cli manages a local namespaced key-value registry backed by
// badger:
//
//   - set / get / remove / keys / empty within a namespace
//   - export and import of encrypted namespace archives
//   - configuration inspection
//
// Usage:
//
//	registry-cli [command] [flags]
//	registry-cli --namespace myapp set user '{"name":"Ann"}' --ttl 12h
//	registry-cli --namespace myapp get user -o json
package main

import (
	"fmt"
	"os"

	"github.com/lesichkovm/registryjs/internal/cli/command"
)

func main() {
	app := command.App()

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
