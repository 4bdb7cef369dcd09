// Copyright (c) 2025 Roknuzzaman Rokon <roknuzzamanrokon113@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pathRecordingClient(t *testing.T, body string, gotPath *string) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*gotPath = r.URL.Path
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	c, err := New(srv.URL)
	require.NoError(t, err)
	return c
}

func TestGeneralAnalyticsRaw(t *testing.T) {
	var gotPath string
	c := pathRecordingClient(t,
		`{"success":true,"data":{"total_users":120,"active_users":97,"total_suppliers":14,"total_points":410000}}`,
		&gotPath)

	doc, err := c.GeneralAnalyticsRaw(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/user/analytics/general", gotPath)
	assert.JSONEq(t,
		`{"total_users":120,"active_users":97,"total_suppliers":14,"total_points":410000}`,
		string(doc))
}

func TestUserAnalyticsRaw(t *testing.T) {
	var gotPath string
	c := pathRecordingClient(t,
		`{"success":true,"data":{"user_id":42,"total_requests":318}}`, &gotPath)

	doc, err := c.UserAnalyticsRaw(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, "/user/analytics/42", gotPath)
	assert.Contains(t, string(doc), `"total_requests":318`)

	_, err = c.UserAnalyticsRaw(context.Background(), 0)
	assert.ErrorIs(t, err, ErrUserIDRequired)
}

func TestHotelsRaw(t *testing.T) {
	var gotPath string
	c := pathRecordingClient(t, `[{"id":7,"name":"Sea Pearl","city":"Cox's Bazar"}]`, &gotPath)

	doc, err := c.HotelsRaw(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/hotel/all", gotPath)
	assert.Contains(t, string(doc), "Sea Pearl")
}

func TestExportPaths(t *testing.T) {
	var gotPath string
	c := pathRecordingClient(t, `{"success":true,"data":{"exported_at":"2025-08-01"}}`, &gotPath)

	_, err := c.Export(context.Background(), ExportUsers)
	require.NoError(t, err)
	assert.Equal(t, "/export/users", gotPath)

	_, err = c.Export(context.Background(), ExportAnalytics)
	require.NoError(t, err)
	assert.Equal(t, "/export/analytics", gotPath)

	_, err = c.Export(context.Background(), ExportKind("hotels"))
	assert.ErrorIs(t, err, ErrUnknownExport)
}
