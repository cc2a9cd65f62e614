// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/netcore/cmd/netcore/cli"
	"github.com/bureau-foundation/netcore/lib/codec"
	"github.com/bureau-foundation/netcore/lib/contenthash"
	"github.com/bureau-foundation/netcore/lib/contents"
	"github.com/bureau-foundation/netcore/lib/utf8safe"
)

// readReport describes one bounded read. Content is the escaped data
// and is never filled in for secret reads.
type readReport struct {
	Path    string              `json:"path"`
	Length  int                 `json:"length"`
	Secret  bool                `json:"secret,omitempty"`
	Digest  *contenthash.Digest `json:"digest,omitempty"`
	Content string              `json:"content,omitempty"`
}

func readCommand(a *app) *cli.Command {
	var (
		maxLength   int
		secretInput bool
		format      string
		digest      bool
		control     bool
		nonASCII    bool
	)

	return &cli.Command{
		Name:    "read",
		Summary: "Bounded read of a file, FIFO or standard input",
		Description: `Read PATH ("-" for standard input) refusing anything of --max bytes
or more, then print it escaped or print a report about it.

--secret keeps the data in locked memory that is wiped on exit and
never prints it: text output shows only the length, structured output
omits the content. --digest adds the keyed BLAKE3 digest of the data.

Formats: text (default), json, cbor (deterministic) and cbor-diag
(CBOR in diagnostic notation).`,
		Usage: "netcore read [flags] PATH|-",
		Examples: []cli.Example{
			{
				Description: "Print a keyfile with control bytes escaped",
				Command:     "netcore read --control /etc/NetworkManager/system-connections/home.nmconnection",
			},
			{
				Description: "Digest a pre-shared key",
				Command:     "netcore read --secret --digest /run/secrets/psk",
			},
			{
				Description: "Emit a JSON report for a piped document",
				Command:     "curl -s https://example.com/config | netcore read --format json -",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := a.commonFlags("read")
			flagSet.IntVar(&maxLength, "max", 0, "refuse content of this many bytes or more (default: reader.max_length)")
			flagSet.BoolVar(&secretInput, "secret", false, "hold the data in locked memory and never print it")
			flagSet.StringVar(&format, "format", "text", "output format: text, json, cbor, cbor-diag")
			flagSet.BoolVar(&digest, "digest", false, "include the keyed BLAKE3 digest of the data")
			flagSet.BoolVar(&control, "control", false, "escape ASCII control bytes in printed content")
			flagSet.BoolVar(&nonASCII, "non-ascii", false, "escape every byte of 0x7F and above in printed content")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("expected exactly one PATH, got %d", len(args))
			}
			switch format {
			case "text", "json", "cbor", "cbor-diag":
			default:
				return fmt.Errorf("unknown format %q (want text, json, cbor or cbor-diag)", format)
			}
			if maxLength < 0 {
				return fmt.Errorf("--max must not be negative, got %d", maxLength)
			}
			if err := a.setup("read"); err != nil {
				return err
			}
			if maxLength == 0 {
				maxLength = a.config.Reader.MaxLength
			}

			path := args[0]
			result, err := a.readPath(path, contents.Options{MaxLength: maxLength, Secret: secretInput})
			if err != nil {
				return err
			}
			defer result.Release()

			a.logger.Debug("read complete",
				"path", path,
				"length", result.Len(),
				"secret", result.Secret(),
			)

			report := readReport{
				Path:   path,
				Length: result.Len(),
				Secret: result.Secret(),
			}
			if digest {
				sum := contenthash.Sum(result.Bytes())
				report.Digest = &sum
			}

			flags := a.escapeFlags(control, nonASCII)
			if format == "text" {
				return a.writeReadText(report, result.Bytes(), flags)
			}
			if !report.Secret {
				report.Content = string(utf8safe.Escape(result.Bytes(), flags))
			}
			return a.writeReadReport(report, format)
		},
	}
}

func (a *app) writeReadText(report readReport, data []byte, flags utf8safe.Flags) error {
	var err error
	switch {
	case report.Digest != nil:
		_, err = fmt.Fprintf(a.stdout, "%s  %s\n", report.Digest, report.Path)
	case report.Secret:
		_, err = fmt.Fprintf(a.stdout, "%d bytes (secret)  %s\n", report.Length, report.Path)
	default:
		_, err = a.stdout.Write(utf8safe.Escape(data, flags))
	}
	return err
}

func (a *app) writeReadReport(report readReport, format string) error {
	switch format {
	case "json":
		encoder := json.NewEncoder(a.stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(report)
	case "cbor":
		return codec.NewEncoder(a.stdout).Encode(report)
	default:
		data, err := codec.Marshal(report)
		if err != nil {
			return fmt.Errorf("encoding report: %w", err)
		}
		diagnostic, err := codec.Diagnose(data)
		if err != nil {
			return fmt.Errorf("rendering report: %w", err)
		}
		_, err = fmt.Fprintln(a.stdout, diagnostic)
		return err
	}
}
