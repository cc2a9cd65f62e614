// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"slices"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/netcore/cmd/netcore/cli"
	"github.com/bureau-foundation/netcore/lib/bsearch"
	"github.com/bureau-foundation/netcore/lib/dbuspath"
)

func sortPathsCommand(a *app) *cli.Command {
	var unique bool

	return &cli.Command{
		Name:    "sort-paths",
		Summary: "Sort D-Bus object paths",
		Description: `Read object paths, one per line, from FILE (or standard input when
FILE is absent or "-") and print them in order. Paths whose final
components are decimal numbers sort numerically, so /Devices/2 comes
before /Devices/10. Empty lines are ignored.`,
		Usage: "netcore sort-paths [flags] [FILE|-]",
		Examples: []cli.Example{
			{
				Description: "Order device paths",
				Command:     "busctl tree --list org.freedesktop.NetworkManager | netcore sort-paths --unique",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := a.commonFlags("sort-paths")
			flagSet.BoolVarP(&unique, "unique", "u", false, "print each path once")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) > 1 {
				return fmt.Errorf("expected at most one FILE, got %d", len(args))
			}
			if err := a.setup("sort-paths"); err != nil {
				return err
			}

			source := "-"
			if len(args) == 1 {
				source = args[0]
			}
			paths, err := a.readObjectPaths(source)
			if err != nil {
				return err
			}

			var sorted []string
			if unique {
				for _, path := range paths {
					sorted = dbuspath.Insert(sorted, path)
				}
			} else {
				sorted = paths
				dbuspath.Sort(sorted)
			}

			a.logger.Debug("sorted paths", "input", len(paths), "output", len(sorted))
			for _, path := range sorted {
				fmt.Fprintln(a.stdout, path)
			}
			return nil
		},
	}
}

func findPathCommand(a *app) *cli.Command {
	var in string

	return &cli.Command{
		Name:    "find-path",
		Summary: "Binary search a sorted path list",
		Description: `Search the sorted object paths in --in for PATH. Prints "found INDEX"
and exits 0, or "missing INDEX" with the position PATH would be
inserted at and exits 1. The list must be in sort-paths order.`,
		Usage: "netcore find-path --in FILE [flags] PATH",
		Flags: func() *pflag.FlagSet {
			flagSet := a.commonFlags("find-path")
			flagSet.StringVar(&in, "in", "", "file of sorted paths, one per line (\"-\" for standard input)")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("expected exactly one PATH, got %d", len(args))
			}
			if in == "" {
				return fmt.Errorf("--in is required")
			}
			if err := a.setup("find-path"); err != nil {
				return err
			}

			paths, err := a.readObjectPaths(in)
			if err != nil {
				return err
			}
			if !slices.IsSortedFunc(paths, dbuspath.Compare) {
				return fmt.Errorf("%s is not sorted; run it through sort-paths first", in)
			}

			index, found := bsearch.InsertionPoint(dbuspath.Index(paths, args[0]))
			if found {
				fmt.Fprintf(a.stdout, "found %d\n", index)
				return nil
			}
			fmt.Fprintf(a.stdout, "missing %d\n", index)
			return &cli.ExitError{Code: 1}
		},
	}
}

// readObjectPaths reads non-empty lines from source and checks that
// each one is an absolute path.
func (a *app) readObjectPaths(source string) ([]string, error) {
	lines, err := a.readLines(source)
	if err != nil {
		return nil, err
	}
	for number, line := range lines {
		if line[0] != '/' {
			return nil, fmt.Errorf("%s: path %d (%q) does not start with /", source, number+1, line)
		}
	}
	return lines, nil
}
