// Copyright (c) 2025 Roknuzzaman Rokon <roknuzzamanrokon113@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"encoding/json"
	"strconv"
)

// GeneralAnalyticsRaw returns the general-users analytics document. The
// shape varies with backend releases, so it stays a raw document and the
// output layer drills it.
func (c *Client) GeneralAnalyticsRaw(ctx context.Context) (json.RawMessage, error) {
	env, err := c.get(ctx, "/user/analytics/general", nil)
	if err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, env.Err
	}
	return env.Data, nil
}

// UserAnalyticsRaw returns the analytics document for one user.
func (c *Client) UserAnalyticsRaw(ctx context.Context, userID int64) (json.RawMessage, error) {
	if userID == 0 {
		return nil, ErrUserIDRequired
	}

	env, err := c.get(ctx, "/user/analytics/"+strconv.FormatInt(userID, 10), nil)
	if err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, env.Err
	}
	return env.Data, nil
}

// HotelsRaw returns the hotel inventory document.
func (c *Client) HotelsRaw(ctx context.Context) (json.RawMessage, error) {
	env, err := c.get(ctx, "/hotel/all", nil)
	if err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, env.Err
	}
	return env.Data, nil
}
