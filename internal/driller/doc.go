// Copyright © 2025 Roknuzzaman Rokon roknuzzamanrokon113@gmail.com
// SPDX-License-Identifier: MIT

// Package driller extracts values from the backend's loose JSON documents by
// dotted path, tolerating the array-wrapping quirks of the listing
// endpoints.
package driller
