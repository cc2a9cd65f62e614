// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/sys/unix"
)

// TempFile writes content to a new file in t.TempDir() and returns its
// path. The file name starts with prefix.
func TempFile(t *testing.T, prefix string, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), UniqueID(prefix))
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("writing temporary file: %v", err)
	}
	return path
}

// Fifo creates a named pipe in t.TempDir() and returns its path.
// Opening it blocks until the other end is opened too, so tests
// normally open the writer side from a goroutine.
func Fifo(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), UniqueID("fifo"))
	if err := unix.Mkfifo(path, 0o600); err != nil {
		t.Fatalf("creating fifo: %v", err)
	}
	return path
}
