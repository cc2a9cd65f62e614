// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"

	"github.com/bureau-foundation/netcore/cmd/netcore/cli"
	"github.com/bureau-foundation/netcore/lib/process"
	"github.com/bureau-foundation/netcore/lib/version"
)

func main() {
	if err := run(newApp(), os.Args[1:]); err != nil {
		process.Fatal(err)
	}
}

func run(a *app, args []string) error {
	if len(args) == 1 && args[0] == "--version" {
		version.Fprint(a.stdout, "netcore")
		return nil
	}
	return rootCommand(a).Execute(args)
}

func rootCommand(a *app) *cli.Command {
	return &cli.Command{
		Name:    "netcore",
		Summary: "Bounded reads, escaping and path ordering tools",
		Description: `Netcore exposes the netcore primitives on the command line.

Every command accepts --config to select a netcore.yaml file and
--verbose to log debug records to stderr.`,
		HelpOutput: a.stderr,
		Subcommands: []*cli.Command{
			escapeCommand(a),
			unescapeCommand(a),
			quoteCommand(a),
			readCommand(a),
			sortPathsCommand(a),
			findPathCommand(a),
			nextSizeCommand(a),
			versionCommand(a),
		},
		Examples: []cli.Example{
			{
				Description: "Show a file with control bytes escaped",
				Command:     "netcore read --max 65536 /etc/NetworkManager/system-connections/home.nmconnection",
			},
			{
				Description: "Digest a secret without printing it",
				Command:     "netcore read --secret --digest /run/secrets/psk",
			},
		},
	}
}

func versionCommand(a *app) *cli.Command {
	return &cli.Command{
		Name:    "version",
		Summary: "Print version information",
		Run: func(args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("version takes no arguments")
			}
			fmt.Fprintln(a.stdout, "netcore "+version.Full())
			return nil
		},
	}
}
