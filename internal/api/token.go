// Copyright (c) 2025 Roknuzzaman Rokon <roknuzzamanrokon113@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/RoknuzamanRokon/hitactl/internal/config"
)

// ResolveToken retrieves the bearer token for the given backend host.
// The precedence is:
//  1. HITA_TOKEN_<host> (dots replaced with underscores)
//  2. HITA_TOKEN
//  3. token in the config file
//  4. token in the credentials file (~/.hita/credentials.json)
func ResolveToken(host string) (string, error) {
	hostKey := strings.ReplaceAll(host, ".", "_")
	token := os.Getenv("HITA_TOKEN_" + hostKey)
	if token == "" {
		token = os.Getenv("HITA_TOKEN")
	}

	// If token was overridden by an environment variable, use that value and
	// go home early.
	if token != "" {
		return token, nil
	}

	token, _ = config.GetString("token", "")
	if token != "" {
		return token, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	credsFile := filepath.Join(home, ".hita", "credentials.json")
	data, err := os.ReadFile(credsFile)
	if err != nil {
		return "", fmt.Errorf("failed to read credentials file: %w", err)
	}

	var creds struct {
		Credentials map[string]struct {
			Token string `json:"token"`
		} `json:"credentials"`
	}

	if err := json.Unmarshal(data, &creds); err != nil {
		return "", fmt.Errorf("failed to unmarshal credentials file: %w", err)
	}

	if cred, ok := creds.Credentials[host]; ok {
		return cred.Token, nil
	}

	return "", nil
}
