// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func TestCommand_Execute_DispatchesToSubcommand(t *testing.T) {
	var called string

	root := &Command{
		Name: "netcore",
		Subcommands: []*Command{
			{
				Name: "escape",
				Run: func(args []string) error {
					called = "escape"
					return nil
				},
			},
			{
				Name: "read",
				Run: func(args []string) error {
					called = "read"
					return nil
				},
			},
		},
	}

	if err := root.Execute([]string{"read"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if called != "read" {
		t.Errorf("dispatched to %q, want %q", called, "read")
	}
}

func TestCommand_Execute_FlagParsing(t *testing.T) {
	var maxLength int
	var target string

	command := &Command{
		Name: "read",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("read", pflag.ContinueOnError)
			flagSet.IntVar(&maxLength, "max", 0, "read cap")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				target = args[0]
			}
			return nil
		},
	}

	if err := command.Execute([]string{"--max", "4096", "/etc/hostname"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if maxLength != 4096 {
		t.Errorf("maxLength = %d, want 4096", maxLength)
	}
	if target != "/etc/hostname" {
		t.Errorf("target = %q, want %q", target, "/etc/hostname")
	}
}

func TestCommand_Execute_UnknownFlagSuggestion(t *testing.T) {
	command := &Command{
		Name: "escape",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("escape", pflag.ContinueOnError)
			flagSet.Bool("control", false, "escape control bytes")
			flagSet.Bool("secret", false, "treat input as secret")
			return flagSet
		},
		Run: func(args []string) error { return nil },
	}

	err := command.Execute([]string{"--contrl"})
	if err == nil {
		t.Fatal("Execute() = nil, want error for unknown flag")
	}
	errStr := err.Error()
	if !strings.Contains(errStr, "did you mean --control") {
		t.Errorf("error = %q, want suggestion for '--control'", errStr)
	}
	if !strings.Contains(errStr, "--help") {
		t.Errorf("error = %q, should point to --help", errStr)
	}
}

func TestCommand_Execute_UnknownFlagNoSuggestion(t *testing.T) {
	command := &Command{
		Name: "escape",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("escape", pflag.ContinueOnError)
			flagSet.Bool("control", false, "escape control bytes")
			return flagSet
		},
		Run: func(args []string) error { return nil },
	}

	err := command.Execute([]string{"--zzzzzzzzz"})
	if err == nil {
		t.Fatal("Execute() = nil, want error for unknown flag")
	}
	if strings.Contains(err.Error(), "did you mean") {
		t.Errorf("error = %q, should not suggest for distant flag", err.Error())
	}
}

func TestCommand_Execute_UnknownSubcommandSuggestion(t *testing.T) {
	root := &Command{
		Name: "netcore",
		Subcommands: []*Command{
			{Name: "escape"},
			{Name: "unescape"},
			{Name: "sort-paths"},
		},
	}

	err := root.Execute([]string{"sort-path"})
	if err == nil {
		t.Fatal("Execute() = nil, want error for unknown subcommand")
	}
	if !strings.Contains(err.Error(), `did you mean "sort-paths"`) {
		t.Errorf("error = %q, want suggestion for 'sort-paths'", err.Error())
	}
}

func TestCommand_Execute_HelpFlag(t *testing.T) {
	for _, helpArg := range []string{"-h", "--help", "help"} {
		t.Run(helpArg, func(t *testing.T) {
			var buffer bytes.Buffer
			root := &Command{
				Name:       "netcore",
				Summary:    "network primitive tools",
				HelpOutput: &buffer,
				Subcommands: []*Command{
					{Name: "read", Summary: "Bounded read of a file"},
				},
			}

			if err := root.Execute([]string{helpArg}); err != nil {
				t.Errorf("Execute(%q) error: %v", helpArg, err)
			}
			if !strings.Contains(buffer.String(), "Bounded read of a file") {
				t.Errorf("help not written to HelpOutput: %q", buffer.String())
			}
		})
	}
}

func TestCommand_Execute_SubcommandHelpInheritsOutput(t *testing.T) {
	var buffer bytes.Buffer
	root := &Command{
		Name:       "netcore",
		HelpOutput: &buffer,
		Subcommands: []*Command{
			{
				Name:    "next-size",
				Summary: "Print allocation sizes",
				Flags: func() *pflag.FlagSet {
					return pflag.NewFlagSet("next-size", pflag.ContinueOnError)
				},
				Run: func([]string) error { return nil },
			},
		},
	}

	if err := root.Execute([]string{"next-size", "--help"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if !strings.Contains(buffer.String(), "netcore next-size") {
		t.Errorf("expected subcommand help in parent's output, got %q", buffer.String())
	}
}

func TestCommand_Execute_NoArgsShowsHelp(t *testing.T) {
	root := &Command{
		Name:       "netcore",
		HelpOutput: &bytes.Buffer{},
		Subcommands: []*Command{
			{Name: "read", Summary: "Bounded read of a file"},
		},
	}

	err := root.Execute([]string{})
	if err == nil || !strings.Contains(err.Error(), "subcommand required") {
		t.Errorf("error = %v, want 'subcommand required'", err)
	}
}

func TestCommand_PrintHelp(t *testing.T) {
	command := &Command{
		Name:        "netcore",
		Description: "Escape, quote, search and read with hard limits.",
		Subcommands: []*Command{
			{Name: "escape", Summary: "Escape text for display"},
			{Name: "read", Summary: "Bounded read of a file"},
		},
		Examples: []Example{
			{
				Description: "Read a secret and print its digest",
				Command:     "netcore read --secret --digest /etc/netcore/psk",
			},
		},
	}

	var buffer bytes.Buffer
	command.PrintHelp(&buffer)
	output := buffer.String()

	for _, want := range []string{
		"Escape, quote, search and read with hard limits.",
		"Usage:",
		"netcore <command> [flags]",
		"Commands:",
		"escape",
		"Escape text for display",
		"Examples:",
		"netcore read --secret --digest /etc/netcore/psk",
		"Run 'netcore <command> --help'",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("help output missing %q\n\nFull output:\n%s", want, output)
		}
	}
}

func TestCommand_PrintHelp_WithFlags(t *testing.T) {
	command := &Command{
		Name:    "quote",
		Summary: "Quote a value into a fixed buffer",
		Usage:   "netcore quote [flags] [VALUE]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("quote", pflag.ContinueOnError)
			flagSet.Int("size", 64, "buffer size")
			flagSet.Bool("null", false, "quote a missing value")
			return flagSet
		},
	}

	var buffer bytes.Buffer
	command.PrintHelp(&buffer)
	output := buffer.String()

	for _, want := range []string{"netcore quote [flags] [VALUE]", "Flags:", "--size", "--null"} {
		if !strings.Contains(output, want) {
			t.Errorf("help output missing %q\n\nFull output:\n%s", want, output)
		}
	}
}

func TestCommand_FullName(t *testing.T) {
	root := &Command{Name: "netcore"}
	read := &Command{Name: "read", parent: root}

	if got := root.fullName(); got != "netcore" {
		t.Errorf("root.fullName() = %q, want %q", got, "netcore")
	}
	if got := read.fullName(); got != "netcore read" {
		t.Errorf("read.fullName() = %q, want %q", got, "netcore read")
	}
}

func TestExitError(t *testing.T) {
	err := &ExitError{Code: 1}
	if err.ExitCode() != 1 || err.Error() != "exit code 1" {
		t.Errorf("ExitError = (%d, %q)", err.ExitCode(), err.Error())
	}
}

func TestNewCommandLogger_JSONWhenNotTerminal(t *testing.T) {
	var buffer bytes.Buffer
	logger := NewCommandLogger(&buffer, false)
	logger.Debug("hidden")
	logger.Info("read complete", "length", 12)

	output := buffer.String()
	if strings.Contains(output, "hidden") {
		t.Errorf("debug record logged without verbose: %q", output)
	}
	if !strings.Contains(output, `"msg":"read complete"`) || !strings.Contains(output, `"length":12`) {
		t.Errorf("expected a JSON record, got %q", output)
	}

	buffer.Reset()
	NewCommandLogger(&buffer, true).Debug("shown")
	if !strings.Contains(buffer.String(), "shown") {
		t.Errorf("verbose logger dropped a debug record: %q", buffer.String())
	}
}
