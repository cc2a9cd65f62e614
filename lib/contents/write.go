// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package contents

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteFile atomically replaces path with data. The bytes go to a
// temporary file in the same directory, created with mode, which is
// renamed over path. Readers see either the old file or the new one.
//
// When path already exists with content, the temporary file is synced
// before the rename so a crash cannot leave an empty replacement
// behind. On any failure the temporary file is removed and path is
// untouched.
func WriteFile(path string, data []byte, mode os.FileMode) error {
	temporary, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("contents: creating temporary file for %s: %w", path, err)
	}
	temporaryPath := temporary.Name()

	success := false
	defer func() {
		if !success {
			temporary.Close()
			os.Remove(temporaryPath)
		}
	}()

	if err := temporary.Chmod(mode); err != nil {
		return fmt.Errorf("contents: setting mode on %s: %w", temporaryPath, err)
	}
	if _, err := temporary.Write(data); err != nil {
		return fmt.Errorf("contents: writing %s: %w", temporaryPath, err)
	}

	if existing, err := os.Stat(path); err == nil && existing.Size() > 0 {
		if err := temporary.Sync(); err != nil {
			return fmt.Errorf("contents: syncing %s: %w", temporaryPath, err)
		}
	}
	if err := temporary.Close(); err != nil {
		return fmt.Errorf("contents: closing %s: %w", temporaryPath, err)
	}

	if err := os.Rename(temporaryPath, path); err != nil {
		return fmt.Errorf("contents: renaming %s to %s: %w", temporaryPath, path, err)
	}
	success = true
	return nil
}
