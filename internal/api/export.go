// Copyright (c) 2025 Roknuzzaman Rokon <roknuzzamanrokon113@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"encoding/json"
	"errors"
)

var ErrUnknownExport = errors.New("unknown export kind")

// ExportKind names a server-side export document.
type ExportKind string

const (
	ExportUsers     ExportKind = "users"
	ExportAnalytics ExportKind = "analytics"
)

// Export fetches an export document from the backend. Exports are full
// snapshots; the diff and push commands operate on the returned bytes.
func (c *Client) Export(ctx context.Context, kind ExportKind) (json.RawMessage, error) {
	var path string
	switch kind {
	case ExportUsers:
		path = "/export/users"
	case ExportAnalytics:
		path = "/export/analytics"
	default:
		return nil, ErrUnknownExport
	}

	env, err := c.get(ctx, path, nil)
	if err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, env.Err
	}
	return env.Data, nil
}
