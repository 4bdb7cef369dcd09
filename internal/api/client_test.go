// Copyright (c) 2025 Roknuzzaman Rokon <roknuzzamanrokon113@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient points a Client at an httptest server.
func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := New(srv.URL, opts...)
	require.NoError(t, err)
	return c
}

func TestNewPrependsScheme(t *testing.T) {
	c, err := New("api.hita.app")
	require.NoError(t, err)
	assert.Equal(t, "https://api.hita.app", c.BaseURL())
}

func TestNewKeepsExplicitScheme(t *testing.T) {
	c, err := New("http://localhost:8000")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000", c.BaseURL())
}

func TestDoSetsHeaders(t *testing.T) {
	var got http.Header
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.Write([]byte(`{"success":true,"data":{}}`))
	}, WithToken("tok-123"), WithUserAgent("hitactl/test"))

	_, err := c.Do(context.Background(), http.MethodGet, "/user/check-me", nil, nil)
	require.NoError(t, err)

	assert.Equal(t, "Bearer tok-123", got.Get("Authorization"))
	assert.Equal(t, "hitactl/test", got.Get("User-Agent"))
	assert.Equal(t, "application/json", got.Get("Accept"))
	// No body means no Content-Type.
	assert.Empty(t, got.Get("Content-Type"))
}

func TestDoOmitsAuthorizationWithoutToken(t *testing.T) {
	var got http.Header
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.Write([]byte(`{}`))
	})

	_, err := c.Do(context.Background(), http.MethodGet, "/hotel/all", nil, nil)
	require.NoError(t, err)
	assert.Empty(t, got.Get("Authorization"))
}

func TestDoEncodesQuery(t *testing.T) {
	var gotQuery url.Values
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`{"success":true,"data":{}}`))
	})

	q := url.Values{}
	q.Set("user_id", "42")
	_, err := c.Do(context.Background(), http.MethodPost, "/permissions/admin/activate_supplier", q, nil)
	require.NoError(t, err)
	assert.Equal(t, "42", gotQuery.Get("user_id"))
}

func TestDoSuccessEnvelope(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"data":[{"id":1}]}`))
	})

	env, err := c.Do(context.Background(), http.MethodGet, "/user/all-general-user", nil, nil)
	require.NoError(t, err)
	assert.True(t, env.Success)
	assert.JSONEq(t, `[{"id":1}]`, string(env.Data))
	assert.Nil(t, env.Err)
}

func TestDoErrorEnvelopeFromBody(t *testing.T) {
	// 200 with success:false is still the error branch.
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false,"error":"token expired"}`))
	})

	env, err := c.Do(context.Background(), http.MethodGet, "/user/check-me", nil, nil)
	require.NoError(t, err)
	assert.False(t, env.Success)
	require.NotNil(t, env.Err)
	assert.Equal(t, "token expired", env.Err.Message)
	assert.Equal(t, 0, env.Err.Status)
}

func TestDoErrorEnvelopeFromStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"detail":"Not enough permissions"}`))
	})

	env, err := c.Do(context.Background(), http.MethodGet, "/export/users", nil, nil)
	require.NoError(t, err)
	assert.False(t, env.Success)
	require.NotNil(t, env.Err)
	assert.Equal(t, http.StatusForbidden, env.Err.Status)
	assert.True(t, env.Err.IsPermission())
	assert.Equal(t, "Not enough permissions", env.Err.Message)
}

func TestDoBareDocumentIsData(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":7,"name":"Sea Pearl"}]`))
	})

	env, err := c.Do(context.Background(), http.MethodGet, "/hotel/all", nil, nil)
	require.NoError(t, err)
	assert.True(t, env.Success)
	assert.JSONEq(t, `[{"id":7,"name":"Sea Pearl"}]`, string(env.Data))
}

func TestDoContextCancellation(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Do(ctx, http.MethodGet, "/user/check-me", nil, nil)
	assert.Error(t, err)
}

func TestCallErrorString(t *testing.T) {
	e := &CallError{Status: 404, Message: "user not found"}
	assert.Equal(t, "user not found (HTTP 404)", e.Error())
	assert.True(t, e.IsNotFound())

	bare := &CallError{Message: "token expired"}
	assert.Equal(t, "token expired", bare.Error())
}
