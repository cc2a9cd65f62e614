// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for netcore
// tools.
//
// Configuration is loaded from a single file specified by either the
// NETCORE_CONFIG environment variable (via [Load]) or a --config flag
// (via [LoadFile]). There are no fallbacks, no ~/.config discovery,
// and no automatic file search. A tool run without either uses
// [Default].
//
// The configuration file supports environment-specific sections
// (development, staging, production) that override base values when
// [Config].Environment matches. Production defaults are stricter when
// the file has no production section: control bytes are always
// escaped on output and the read cap drops to [ProductionMaxLength].
//
// The file itself is read through lib/contents with a 1 MiB cap, so a
// runaway or hostile config path cannot exhaust memory.
//
// Variable expansion is performed on reader.base_directory after
// loading: ${HOME} and ${VAR:-default} patterns are expanded. No other
// environment variables override config values.
//
// Key exports:
//
//   - [Config] -- master struct with Reader, Escape, Quote
//   - [Default] -- returns a Config with development defaults
//   - [Load] and [LoadFile] -- the two entry points for loading
package config
