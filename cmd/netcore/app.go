// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"golang.org/x/sys/unix"

	"github.com/bureau-foundation/netcore/cmd/netcore/cli"
	"github.com/bureau-foundation/netcore/lib/config"
	"github.com/bureau-foundation/netcore/lib/contents"
	"github.com/bureau-foundation/netcore/lib/utf8safe"
)

// app carries the process streams and the state shared by every
// subcommand. Tests substitute the streams.
type app struct {
	stdin  *os.File
	stdout io.Writer
	stderr io.Writer

	configPath string
	verbose    bool

	config *config.Config
	logger *slog.Logger
}

func newApp() *app {
	return &app{stdin: os.Stdin, stdout: os.Stdout, stderr: os.Stderr}
}

// commonFlags returns a flag set holding the flags every subcommand
// accepts.
func (a *app) commonFlags(name string) *pflag.FlagSet {
	flagSet := pflag.NewFlagSet(name, pflag.ContinueOnError)
	flagSet.StringVar(&a.configPath, "config", "", "path to netcore.yaml (default: $"+config.EnvironmentVariable+", else built-in defaults)")
	flagSet.BoolVarP(&a.verbose, "verbose", "v", false, "log debug records to stderr")
	return flagSet
}

// setup loads and validates the configuration and creates the logger.
// Subcommands call it first thing in Run, after flags are parsed.
func (a *app) setup(command string) error {
	var loaded *config.Config
	var err error
	switch {
	case a.configPath != "":
		loaded, err = config.LoadFile(a.configPath)
	case os.Getenv(config.EnvironmentVariable) != "":
		loaded, err = config.Load()
	default:
		loaded = config.Default()
	}
	if err != nil {
		return err
	}
	if err := loaded.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	a.config = loaded
	a.logger = cli.NewCommandLogger(a.stderr, a.verbose).With("command", command)
	a.logger.Debug("configuration loaded",
		"environment", loaded.Environment,
		"max_length", loaded.Reader.MaxLength,
	)
	return nil
}

// escapeFlags combines the configured escape defaults with the
// command-line switches. A switch can only add escaping.
func (a *app) escapeFlags(control, nonASCII bool) utf8safe.Flags {
	var flags utf8safe.Flags
	if control || a.config.Escape.Control {
		flags |= utf8safe.EscapeControl
	}
	if nonASCII || a.config.Escape.NonASCII {
		flags |= utf8safe.EscapeNonASCII
	}
	return flags
}

// readStdin performs a bounded read of standard input. A configured
// poll timeout bounds the wait for the first byte.
func (a *app) readStdin(options contents.Options) (*contents.Contents, error) {
	fd := int(a.stdin.Fd())

	timeout, err := a.config.PollTimeout()
	if err != nil {
		return nil, err
	}
	if timeout >= 0 {
		revents, err := contents.WaitForEvent(fd, unix.POLLIN, timeout)
		if err != nil {
			return nil, err
		}
		if revents == 0 {
			return nil, fmt.Errorf("no input on stdin within %s", timeout)
		}
	}

	result, err := contents.ReadFD(fd, options)
	if err != nil {
		return nil, fmt.Errorf("reading stdin: %w", err)
	}
	return result, nil
}

// readPath performs a bounded read of path, or of standard input when
// path is "-". Relative paths resolve against reader.base_directory
// when one is configured.
func (a *app) readPath(path string, options contents.Options) (*contents.Contents, error) {
	if path == "-" {
		return a.readStdin(options)
	}

	dirfd := -1
	if base := a.config.Reader.BaseDirectory; base != "" && !filepath.IsAbs(path) {
		directory, err := unix.Open(base, unix.O_RDONLY|unix.O_DIRECTORY|unix.O_CLOEXEC, 0)
		if err != nil {
			return nil, fmt.Errorf("opening base directory %s: %w", base, err)
		}
		defer unix.Close(directory)
		dirfd = directory
	}

	return contents.ReadFile(dirfd, path, options)
}

// input returns the single positional argument, or the contents of
// standard input when there is none or it is "-". The returned
// function releases any read buffer.
func (a *app) input(args []string, secretInput bool) ([]byte, func(), error) {
	switch {
	case len(args) > 1:
		return nil, nil, fmt.Errorf("expected at most one argument, got %d", len(args))
	case len(args) == 1 && args[0] != "-":
		return []byte(args[0]), func() {}, nil
	}

	result, err := a.readStdin(contents.Options{
		MaxLength: a.config.Reader.MaxLength,
		Secret:    secretInput,
	})
	if err != nil {
		return nil, nil, err
	}
	return result.Bytes(), func() { result.Release() }, nil
}

// readLines performs a bounded read of path and splits it into
// non-empty lines.
func (a *app) readLines(path string) ([]string, error) {
	result, err := a.readPath(path, contents.Options{MaxLength: a.config.Reader.MaxLength})
	if err != nil {
		return nil, err
	}
	defer result.Release()

	var lines []string
	for _, line := range bytes.Split(result.Bytes(), []byte{'\n'}) {
		if len(line) > 0 {
			lines = append(lines, string(line))
		}
	}
	return lines, nil
}
