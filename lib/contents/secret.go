// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package contents

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/bureau-foundation/netcore/lib/secret"
)

// ReadSecretFromPath reads a secret from a file, or from standard
// input when path is "-". An interactive terminal is read without
// echo up to the first newline; anything else is read to end of file
// under the maxLength limit (zero means DefaultMaxLength).
//
// Surrounding ASCII whitespace is removed and wiped. The result lives
// in locked memory; the caller must Release it. An empty secret is an
// error.
func ReadSecretFromPath(path string, maxLength int) (*secret.Shared, error) {
	return readSecret(path, os.Stdin, Options{MaxLength: maxLength, Secret: true})
}

func readSecret(path string, stdin *os.File, options Options) (*secret.Shared, error) {
	options.Secret = true

	if path == "-" && term.IsTerminal(int(stdin.Fd())) {
		return readSecretTerminal(stdin, options)
	}

	var source *Contents
	var err error
	if path == "-" {
		source, err = ReadFD(int(stdin.Fd()), options)
	} else {
		source, err = ReadFile(-1, path, options)
	}
	if err != nil {
		return nil, err
	}
	defer source.Release()

	return keepTrimmed(source.Bytes(), options)
}

func readSecretTerminal(stdin *os.File, options Options) (*secret.Shared, error) {
	password, err := term.ReadPassword(int(stdin.Fd()))
	defer secret.Zero(password)
	if err != nil {
		return nil, fmt.Errorf("contents: reading secret from terminal: %w", err)
	}
	if maxLength := options.maxLength(); len(password) > maxLength-1 {
		return nil, tooLarge(int64(len(password)), maxLength)
	}
	return keepTrimmed(password, options)
}

// keepTrimmed wipes the whitespace around data in place and copies
// what remains into a fresh secret allocation.
func keepTrimmed(data []byte, options Options) (*secret.Shared, error) {
	trimmed := secret.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, errors.New("contents: secret is empty")
	}
	shared, err := secret.CopyWithAllocator(trimmed, options.allocator())
	if err != nil {
		return nil, fmt.Errorf("contents: %w: %w", ErrAllocation, err)
	}
	return shared, nil
}
