// Copyright (c) 2025 Roknuzzaman Rokon <roknuzzamanrokon113@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// Sentinel errors for caller-checkable conditions. These enable callers to
// detect specific cases via errors.Is/As while keeping messages consistent.
var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrUserIDRequired   = errors.New("user id is required")
)

// User is the backend's user record. The backend serves two listing variants
// (general and admin) with the same shape; fields absent from one variant
// simply come back zero-valued.
type User struct {
	ID            int64  `json:"id"`
	Email         string `json:"email"`
	Name          string `json:"name"`
	Role          string `json:"role"`
	IsActive      bool   `json:"is_active"`
	PointsBalance int64  `json:"points_balance"`
	Supplier      bool   `json:"is_supplier"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

// UserKind selects which of the two user listings to hit.
type UserKind string

const (
	GeneralUsers UserKind = "general"
	AdminUsers   UserKind = "admin"
)

// CheckMe verifies the current token and returns the authenticated user.
func (c *Client) CheckMe(ctx context.Context) (User, error) {
	env, err := c.get(ctx, "/user/check-me", nil)
	if err != nil {
		return User{}, err
	}
	if !env.Success {
		if env.Err.Status == http.StatusUnauthorized {
			return User{}, fmt.Errorf("%s: %w", env.Err.Message, ErrNotAuthenticated)
		}
		return User{}, env.Err
	}

	var u User
	if err := json.Unmarshal(env.Data, &u); err != nil {
		return User{}, fmt.Errorf("failed to unmarshal user: %w", err)
	}
	return u, nil
}

// ListUsersRaw returns the raw listing document for the given kind. Query
// commands keep the document loose and drill it with gjson downstream.
func (c *Client) ListUsersRaw(ctx context.Context, kind UserKind) (json.RawMessage, error) {
	path := "/user/all-general-user"
	if kind == AdminUsers {
		path = "/user/all-admin-user"
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

// ListUsers returns the typed listing for the given kind.
func (c *Client) ListUsers(ctx context.Context, kind UserKind) ([]User, error) {
	raw, err := c.ListUsersRaw(ctx, kind)
	if err != nil {
		return nil, err
	}

	var users []User
	if err := json.Unmarshal(raw, &users); err != nil {
		return nil, fmt.Errorf("failed to unmarshal users: %w", err)
	}
	return users, nil
}

// CreateUserRequest is the payload for CreateUser.
type CreateUserRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	Password string `json:"password,omitempty"`
}

// CreateUser creates a user and returns the stored record.
func (c *Client) CreateUser(ctx context.Context, req CreateUserRequest) (User, error) {
	env, err := c.Do(ctx, http.MethodPost, "/users/create", nil, req)
	if err != nil {
		return User{}, err
	}
	if !env.Success {
		return User{}, env.Err
	}

	var u User
	if err := json.Unmarshal(env.Data, &u); err != nil {
		return User{}, fmt.Errorf("failed to unmarshal user: %w", err)
	}
	return u, nil
}

// UpdateUserRequest carries the mutable fields for UpdateUser. Nil pointers
// are omitted so the backend applies a partial update.
type UpdateUserRequest struct {
	Email    *string `json:"email,omitempty"`
	Name     *string `json:"name,omitempty"`
	Role     *string `json:"role,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

// UpdateUser applies a partial update and returns the stored record.
func (c *Client) UpdateUser(ctx context.Context, id int64, req UpdateUserRequest) (User, error) {
	if id == 0 {
		return User{}, ErrUserIDRequired
	}

	env, err := c.Do(ctx, http.MethodPut, "/users/update/"+strconv.FormatInt(id, 10), nil, req)
	if err != nil {
		return User{}, err
	}
	if !env.Success {
		return User{}, env.Err
	}

	var u User
	if err := json.Unmarshal(env.Data, &u); err != nil {
		return User{}, fmt.Errorf("failed to unmarshal user: %w", err)
	}
	return u, nil
}

// DeleteUser removes a user.
func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	if id == 0 {
		return ErrUserIDRequired
	}

	env, err := c.Do(ctx, http.MethodDelete, "/users/delete/"+strconv.FormatInt(id, 10), nil, nil)
	if err != nil {
		return err
	}
	if !env.Success {
		return env.Err
	}
	return nil
}

// idQuery builds the ?user_id= query used by the permissions endpoints.
func idQuery(id int64) url.Values {
	q := url.Values{}
	q.Set("user_id", strconv.FormatInt(id, 10))
	return q
}
