// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/netcore/cmd/netcore/cli"
	"github.com/bureau-foundation/netcore/lib/secret"
	"github.com/bureau-foundation/netcore/lib/strbuf"
	"github.com/bureau-foundation/netcore/lib/utf8safe"
)

func escapeCommand(a *app) *cli.Command {
	var control, nonASCII, secretInput bool

	return &cli.Command{
		Name:    "escape",
		Summary: "Escape text into printable, valid UTF-8",
		Description: `Escape TEXT, or standard input when TEXT is absent or "-".

Invalid UTF-8, NUL and backslash are always written as \ooo octal or
\\. --control and --non-ascii add control bytes and bytes of 0x7F and
above. The escape section of the configuration sets the defaults.`,
		Usage: "netcore escape [flags] [TEXT|-]",
		Examples: []cli.Example{
			{
				Description: "Escape a connection id containing a tab",
				Command:     "printf 'home\\twifi' | netcore escape --control",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := a.commonFlags("escape")
			flagSet.BoolVar(&control, "control", false, "also escape ASCII control bytes")
			flagSet.BoolVar(&nonASCII, "non-ascii", false, "also escape every byte of 0x7F and above")
			flagSet.BoolVar(&secretInput, "secret", false, "hold the input in locked memory and wipe copies")
			return flagSet
		},
		Run: func(args []string) error {
			if err := a.setup("escape"); err != nil {
				return err
			}

			data, release, err := a.input(args, secretInput)
			if err != nil {
				return err
			}
			defer release()

			flags := a.escapeFlags(control, nonASCII)
			if !secretInput {
				fmt.Fprintf(a.stdout, "%s\n", utf8safe.Escape(data, flags))
				return nil
			}

			escaped := utf8safe.EscapeCopy(data, flags|utf8safe.Secret)
			defer secret.Zero(escaped)
			if _, err := a.stdout.Write(escaped); err != nil {
				return err
			}
			_, err = fmt.Fprintln(a.stdout)
			return err
		},
	}
}

func unescapeCommand(a *app) *cli.Command {
	return &cli.Command{
		Name:    "unescape",
		Summary: "Reverse escape",
		Description: `Unescape TEXT, or standard input when TEXT is absent or "-", and
write the resulting bytes unchanged. C escapes (\b \f \n \r \t \v),
one to three octal digits, and any other escaped character taken
literally are decoded. A trailing lone backslash is dropped.`,
		Usage: "netcore unescape [flags] [TEXT|-]",
		Flags: func() *pflag.FlagSet {
			return a.commonFlags("unescape")
		},
		Run: func(args []string) error {
			if err := a.setup("unescape"); err != nil {
				return err
			}

			data, release, err := a.input(args, false)
			if err != nil {
				return err
			}
			defer release()

			_, err = a.stdout.Write(utf8safe.Unescape(data))
			return err
		},
	}
}

func quoteCommand(a *app) *cli.Command {
	var width int
	var null bool

	return &cli.Command{
		Name:    "quote",
		Summary: "Quote a value into a fixed-size buffer",
		Description: `Write VALUE in double quotes into a buffer of --width bytes, as a
log line would. A value that does not fit ends in "^" instead of the
closing quote. --null quotes a missing value, printed as (null).`,
		Usage: "netcore quote [flags] [VALUE]",
		Examples: []cli.Example{
			{
				Description: "Quote into a 6 byte buffer",
				Command:     "netcore quote --width 6 hello",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := a.commonFlags("quote")
			flagSet.IntVar(&width, "width", 0, "buffer size including quotes and terminator (default: quote.width)")
			flagSet.BoolVar(&null, "null", false, "quote a missing value")
			return flagSet
		},
		Run: func(args []string) error {
			if err := a.setup("quote"); err != nil {
				return err
			}

			var value *string
			switch {
			case null && len(args) > 0:
				return fmt.Errorf("--null takes no VALUE")
			case !null && len(args) != 1:
				return fmt.Errorf("expected exactly one VALUE, got %d", len(args))
			case !null:
				value = &args[0]
			}

			if width == 0 {
				width = a.config.Quote.Width
			}
			if width < 0 {
				return fmt.Errorf("--width must not be negative, got %d", width)
			}

			fmt.Fprintln(a.stdout, strbuf.Quote(make([]byte, width), value))
			return nil
		},
	}
}
