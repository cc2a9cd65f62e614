// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package process

import (
	"fmt"
	"io"
	"os"
)

// ExitCoder is implemented by errors that choose the process exit
// status and have already reported themselves to the user.
type ExitCoder interface {
	ExitCode() int
}

// Fatal writes "error: err" to stderr and exits with code 1. This is
// the standard binary entrypoint error handler. Use it in main() for
// errors from run() where the structured logger may not be
// initialized.
func Fatal(err error) {
	os.Exit(Report(os.Stderr, err))
}

// Report writes err to w the way Fatal does and returns the exit
// code Fatal would use. An error implementing ExitCoder is not
// printed: its code is returned as is.
func Report(w io.Writer, err error) int {
	if coder, ok := err.(ExitCoder); ok {
		return coder.ExitCode()
	}
	fmt.Fprintf(w, "error: %v\n", err)
	return 1
}
