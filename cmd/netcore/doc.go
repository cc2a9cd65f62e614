// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Netcore is a command-line front end to the netcore primitives. It
// escapes and unescapes text (escape, unescape), quotes values into
// fixed-size buffers (quote), performs bounded and secret-aware file
// reads with optional digests (read), orders and searches D-Bus
// object paths (sort-paths, find-path), and prints the allocation
// growth schedule (next-size).
//
// Configuration comes from --config, else the file named by
// NETCORE_CONFIG, else built-in defaults. Logs go to stderr: text on
// a terminal, JSON otherwise.
package main
