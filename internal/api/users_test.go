// Copyright (c) 2025 Roknuzzaman Rokon <roknuzzamanrokon113@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// hitaHandler is a minimal stand-in for the backend routes the tests touch.
func hitaHandler(t *testing.T) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method + " " + r.URL.Path {
		case "GET /user/all-general-user":
			w.Write([]byte(`{"success":true,"data":[` +
				`{"id":1,"email":"anik@hita.example","name":"Anik","role":"general","is_active":true,"points_balance":1200},` +
				`{"id":2,"email":"mitu@hita.example","name":"Mitu","role":"general","is_active":false,"points_balance":0}]}`))
		case "GET /user/all-admin-user":
			w.Write([]byte(`{"success":true,"data":[` +
				`{"id":9,"email":"zia@hita.example","name":"Zia","role":"admin","is_active":true,"points_balance":99000}]}`))
		case "GET /user/check-me":
			if r.Header.Get("Authorization") != "Bearer good" {
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"detail":"Could not validate credentials"}`))
				return
			}
			w.Write([]byte(`{"success":true,"data":{"id":9,"email":"zia@hita.example","role":"admin"}}`))
		case "POST /users/create":
			var req CreateUserRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			if req.Email == "" {
				w.WriteHeader(http.StatusUnprocessableEntity)
				w.Write([]byte(`{"detail":[{"loc":["body","email"],"msg":"field required"}]}`))
				return
			}
			w.Write([]byte(`{"success":true,"data":{"id":42,"email":"` + req.Email + `","name":"` + req.Name + `","role":"` + req.Role + `","is_active":true}}`))
		case "PUT /users/update/2":
			w.Write([]byte(`{"success":true,"data":{"id":2,"email":"mitu@hita.example","is_active":true}}`))
		case "DELETE /users/delete/2":
			w.Write([]byte(`{"success":true}`))
		case "DELETE /users/delete/404":
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"message":"user not found"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"message":"no such route"}`))
		}
	}
}

func newBackendClient(t *testing.T, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(hitaHandler(t))
	t.Cleanup(srv.Close)
	c, err := New(srv.URL, opts...)
	require.NoError(t, err)
	return c
}

func TestListUsersGeneral(t *testing.T) {
	c := newBackendClient(t)

	users, err := c.ListUsers(context.Background(), GeneralUsers)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, int64(1), users[0].ID)
	assert.Equal(t, "anik@hita.example", users[0].Email)
	assert.True(t, users[0].IsActive)
	assert.EqualValues(t, 1200, users[0].PointsBalance)
	assert.False(t, users[1].IsActive)
}

func TestListUsersAdmin(t *testing.T) {
	c := newBackendClient(t)

	users, err := c.ListUsers(context.Background(), AdminUsers)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "admin", users[0].Role)
	assert.EqualValues(t, 99000, users[0].PointsBalance)
}

func TestListUsersRawKeepsDocument(t *testing.T) {
	c := newBackendClient(t)

	raw, err := c.ListUsersRaw(context.Background(), AdminUsers)
	require.NoError(t, err)
	assert.JSONEq(t,
		`[{"id":9,"email":"zia@hita.example","name":"Zia","role":"admin","is_active":true,"points_balance":99000}]`,
		string(raw))
}

func TestCheckMe(t *testing.T) {
	c := newBackendClient(t, WithToken("good"))

	me, err := c.CheckMe(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(9), me.ID)
	assert.Equal(t, "admin", me.Role)
}

func TestCheckMeBadToken(t *testing.T) {
	c := newBackendClient(t, WithToken("stale"))

	_, err := c.CheckMe(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotAuthenticated)
	assert.Contains(t, err.Error(), "Could not validate credentials")
}

func TestCreateUser(t *testing.T) {
	c := newBackendClient(t)

	u, err := c.CreateUser(context.Background(), CreateUserRequest{
		Email: "new@hita.example",
		Name:  "New User",
		Role:  "general",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(42), u.ID)
	assert.Equal(t, "new@hita.example", u.Email)
	assert.True(t, u.IsActive)
}

func TestCreateUserValidationError(t *testing.T) {
	c := newBackendClient(t)

	_, err := c.CreateUser(context.Background(), CreateUserRequest{Name: "No Email"})
	require.Error(t, err)

	var call *CallError
	require.ErrorAs(t, err, &call)
	assert.Equal(t, http.StatusUnprocessableEntity, call.Status)
	assert.Equal(t, "email: field required", call.Message)
}

func TestUpdateUserPartialBody(t *testing.T) {
	// Only set pointers must appear in the payload.
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{"success":true,"data":{"id":2,"is_active":true}}`))
	}))
	t.Cleanup(srv.Close)
	c, err := New(srv.URL)
	require.NoError(t, err)

	active := true
	_, err = c.UpdateUser(context.Background(), 2, UpdateUserRequest{IsActive: &active})
	require.NoError(t, err)

	assert.Equal(t, map[string]any{"is_active": true}, gotBody)
}

func TestUpdateUserRequiresID(t *testing.T) {
	c := newBackendClient(t)

	_, err := c.UpdateUser(context.Background(), 0, UpdateUserRequest{})
	assert.ErrorIs(t, err, ErrUserIDRequired)
}

func TestDeleteUser(t *testing.T) {
	c := newBackendClient(t)

	require.NoError(t, c.DeleteUser(context.Background(), 2))

	err := c.DeleteUser(context.Background(), 404)
	require.Error(t, err)
	var call *CallError
	require.True(t, errors.As(err, &call))
	assert.True(t, call.IsNotFound())
}
