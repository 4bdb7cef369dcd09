// Copyright © 2025 Roknuzzaman Rokon roknuzzamanrokon113@gmail.com
// SPDX-License-Identifier: MIT

// Package command defines the CLI command set for hitactl. It wires flags,
// validators, actions, and shell completion for subcommands.
package command
