// Copyright © 2025 Roknuzzaman Rokon roknuzzamanrokon113@gmail.com
// SPDX-License-Identifier: MIT

// hitactl is the main package for the hitactl command line tool. It wires the
// CLI, delegates to internal packages, and serves as the entry point.
package main
