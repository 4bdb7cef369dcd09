// Copyright © 2025 Roknuzzaman Rokon roknuzzamanrokon113@gmail.com
// SPDX-License-Identifier: MIT

// Package output provides sorting, filtering, paging and emission utilities
// used by commands to present results in various formats.
package output
