// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/netcore/cmd/netcore/cli"
	"github.com/bureau-foundation/netcore/lib/growth"
)

func nextSizeCommand(a *app) *cli.Command {
	var noRealloc bool

	return &cli.Command{
		Name:    "next-size",
		Summary: "Print the allocation size chosen for each requested size",
		Description: `Print "REQUESTED SIZE" for each argument, where SIZE is the buffer
capacity the growth schedule allocates for a request of REQUESTED
bytes. Large sizes are rounded to whole pages unless --no-realloc
selects the schedule used when growth copies instead of reallocating.`,
		Usage: "netcore next-size [flags] REQUESTED...",
		Examples: []cli.Example{
			{
				Description: "Show the schedule around the page boundary",
				Command:     "netcore next-size 1000 4000 5000 100000",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := a.commonFlags("next-size")
			flagSet.BoolVar(&noRealloc, "no-realloc", false, "use the copy-on-grow schedule")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) == 0 {
				return fmt.Errorf("expected at least one REQUESTED size")
			}
			if err := a.setup("next-size"); err != nil {
				return err
			}

			requested := make([]uint, len(args))
			for index, arg := range args {
				value, err := strconv.ParseUint(arg, 10, strconv.IntSize)
				if err != nil {
					return fmt.Errorf("invalid size %q: %w", arg, err)
				}
				requested[index] = uint(value)
			}

			for _, size := range requested {
				fmt.Fprintf(a.stdout, "%d %d\n", size, growth.NextSize(!noRealloc, size))
			}
			return nil
		},
	}
}
