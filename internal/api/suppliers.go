// Copyright (c) 2025 Roknuzzaman Rokon <roknuzzamanrokon113@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"net/http"
)

// supplierToggle is the payload for the supplier permission endpoints.
type supplierToggle struct {
	ProviderActivisionList []string `json:"provider_activision_list"`
}

// ActivateSupplier enables the given providers for a user.
func (c *Client) ActivateSupplier(ctx context.Context, userID int64, providers []string) error {
	return c.toggleSupplier(ctx, "/permissions/admin/activate_supplier", userID, providers)
}

// DeactivateSupplier disables the given providers for a user.
func (c *Client) DeactivateSupplier(ctx context.Context, userID int64, providers []string) error {
	return c.toggleSupplier(ctx, "/permissions/admin/deactivate_supplier", userID, providers)
}

func (c *Client) toggleSupplier(ctx context.Context, path string, userID int64, providers []string) error {
	if userID == 0 {
		return ErrUserIDRequired
	}

	env, err := c.Do(ctx, http.MethodPost, path, idQuery(userID), supplierToggle{
		ProviderActivisionList: providers,
	})
	if err != nil {
		return err
	}
	if !env.Success {
		return env.Err
	}
	return nil
}
