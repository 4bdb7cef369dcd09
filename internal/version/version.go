// Copyright © 2025 Roknuzzaman Rokon roknuzzamanrokon113@gmail.com
// SPDX-License-Identifier: MIT

// Package version holds the build version stamped in by the release process.
package version

// Version is overridden at build time via -ldflags.
var Version = "dev"
