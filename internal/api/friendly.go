// Copyright (c) 2025 Roknuzzaman Rokon <roknuzzamanrokon113@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"errors"
	"fmt"
)

// ErrorContext carries the call context used to build actionable messages.
type ErrorContext struct {
	Host      string
	User      string
	Operation string
	Resource  string
}

// Friendly translates a backend failure into a message a human can act on,
// preserving the original error for errors.Is/As. 403 and 404 get distinct
// copy because the dashboard treats them differently from generic failures.
func Friendly(err error, ctxErr ErrorContext) error {
	if err == nil {
		return nil
	}

	var call *CallError
	if !errors.As(err, &call) {
		return fmt.Errorf("failed to %s on %s: %w", ctxErr.Operation, ctxErr.Host, err)
	}

	switch {
	case call.IsPermission():
		return fmt.Errorf(
			"you do not have permission to %s (host=%s, user=%s). Ask an admin to grant the %s permission: %w",
			ctxErr.Operation, ctxErr.Host, ctxErr.User, ctxErr.Resource, err)
	case call.IsNotFound():
		return fmt.Errorf(
			"%s not found while trying to %s on %s. Check the id/email and try again: %w",
			ctxErr.Resource, ctxErr.Operation, ctxErr.Host, err)
	default:
		return fmt.Errorf("failed to %s on %s: %w", ctxErr.Operation, ctxErr.Host, err)
	}
}
