// Copyright © 2025 Roknuzzaman Rokon roknuzzamanrokon113@gmail.com
// SPDX-License-Identifier: MIT

// Package api is the HTTP client for the HITA backend. Every call resolves
// to a uniform success/error envelope; typed wrappers cover the user,
// points, supplier, analytics and export endpoints.
package api
