// Copyright (c) 2025 Roknuzzaman Rokon <roknuzzamanrokon113@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// AllocationType names a point package the backend knows how to grant.
type AllocationType string

const (
	AdminUserPackage AllocationType = "admin_user_package"
	OneYearPackage   AllocationType = "one_year_package"
	OneMonthPackage  AllocationType = "one_month_package"
	PerRequestPoint  AllocationType = "per_request_point"
	GuestPoint       AllocationType = "guest_point"
)

// AllocationTypes lists every valid allocation type, in the order the
// dashboard presents them.
var AllocationTypes = []AllocationType{
	AdminUserPackage,
	OneYearPackage,
	OneMonthPackage,
	PerRequestPoint,
	GuestPoint,
}

var ErrBadAllocationType = errors.New("unknown allocation type")

// Valid reports whether t is one of the known allocation types.
func (t AllocationType) Valid() bool {
	for _, known := range AllocationTypes {
		if t == known {
			return true
		}
	}
	return false
}

// GivePointsRequest is the payload for the point allocation endpoint.
type GivePointsRequest struct {
	ReceiverEmail  string         `json:"receiver_email"`
	ReceiverID     int64          `json:"receiver_id"`
	AllocationType AllocationType `json:"allocation_type"`
}

// GivePoints grants a point package to a user. The allocation type is
// validated locally before any request goes out so a typo never reaches the
// ledger.
func (c *Client) GivePoints(ctx context.Context, req GivePointsRequest) error {
	if !req.AllocationType.Valid() {
		return fmt.Errorf("%q: %w", req.AllocationType, ErrBadAllocationType)
	}

	env, err := c.Do(ctx, http.MethodPost, "/user/points/give", nil, req)
	if err != nil {
		return err
	}
	if !env.Success {
		return env.Err
	}
	return nil
}
