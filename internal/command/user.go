// Copyright © 2025 Roknuzzaman Rokon roknuzzamanrokon113@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/RoknuzamanRokon/hitactl/internal/api"
	"github.com/RoknuzamanRokon/hitactl/internal/meta"
	"github.com/RoknuzamanRokon/hitactl/internal/picker"
)

func UserCreateCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	client, err := NewClient(cmd)
	if err != nil {
		return err
	}

	req := api.CreateUserRequest{
		Email:    cmd.String("email"),
		Name:     cmd.String("name"),
		Role:     cmd.String("role"),
		Password: cmd.String("password"),
	}

	user, err := client.CreateUser(ctx, req)
	if err != nil {
		return api.Friendly(err, api.ErrorContext{
			Host:      cmd.String("host"),
			User:      req.Email,
			Operation: "create user",
			Resource:  "user",
		})
	}

	InvalidateUserCaches(cmd)

	doc, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to marshal user: %w", err)
	}
	EmitDataset(doc, BuildAttrs(cmd, "id", "email", "name", "role"), cmd, "")
	return nil
}

func UserUpdateCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	client, err := NewClient(cmd)
	if err != nil {
		return err
	}

	target, err := ResolveTargetUser(ctx, cmd, client, userPicker(ctx, cmd, client))
	if err != nil {
		return err
	}

	// Only the flags the user actually set travel in the payload; the backend
	// treats absent fields as unchanged.
	var req api.UpdateUserRequest
	if cmd.IsSet("email") {
		v := cmd.String("email")
		req.Email = &v
	}
	if cmd.IsSet("name") {
		v := cmd.String("name")
		req.Name = &v
	}
	if cmd.IsSet("role") {
		v := cmd.String("role")
		req.Role = &v
	}
	if cmd.IsSet("active") {
		v := cmd.Bool("active")
		req.IsActive = &v
	}

	user, err := client.UpdateUser(ctx, target.ID, req)
	if err != nil {
		return api.Friendly(err, api.ErrorContext{
			Host:      cmd.String("host"),
			User:      target.Email,
			Operation: "update user",
			Resource:  "user",
		})
	}

	InvalidateUserCaches(cmd)

	doc, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to marshal user: %w", err)
	}
	EmitDataset(doc, BuildAttrs(cmd, "id", "email", "name", "role", "is_active"), cmd, "")
	return nil
}

func UserDeleteCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	client, err := NewClient(cmd)
	if err != nil {
		return err
	}

	target, err := ResolveTargetUser(ctx, cmd, client, userPicker(ctx, cmd, client))
	if err != nil {
		return err
	}

	if !Confirm(cmd, fmt.Sprintf("delete user %s (%d)", target.Email, target.ID)) {
		return nil
	}

	if err := client.DeleteUser(ctx, target.ID); err != nil {
		return api.Friendly(err, api.ErrorContext{
			Host:      cmd.String("host"),
			User:      target.Email,
			Operation: "delete user",
			Resource:  "user",
		})
	}

	InvalidateUserCaches(cmd)

	fmt.Printf("deleted %s\n", target.Email)
	return nil
}

// userPicker wraps the interactive selector over the general listing.
func userPicker(ctx context.Context, cmd *cli.Command, client *api.Client) func() (*api.User, error) {
	return func() (*api.User, error) {
		return picker.Pick(func() ([]api.User, error) {
			return client.ListUsers(ctx, api.GeneralUsers)
		})
	}
}

func UserCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "user",
		Usage:     "create, update and delete users",
		UsageText: `hitactl user <create|update|delete> [options]`,
		Metadata: map[string]any{
			"meta": meta,
		},
		Commands: []*cli.Command{
			{
				Name:      "create",
				Usage:     "create a user",
				UsageText: `hitactl user create --email E --name N [options]`,
				Metadata:  map[string]any{"meta": meta},
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:     "email",
						Usage:    "email for the new user",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "name",
						Usage:    "display name for the new user",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "role",
						Usage: "role for the new user",
						Value: "general",
					},
					&cli.StringFlag{
						Name:  "password",
						Usage: "initial password, omit to let the backend invite",
					},
					NewHostFlag("user", meta.Config.Source),
					tldrFlag,
				}, NewGlobalFlags("user")...),
				Action: UserCreateCommandAction,
			},
			{
				Name:      "update",
				Usage:     "update a user",
				UsageText: `hitactl user update --user ID [options]`,
				Metadata:  map[string]any{"meta": meta},
				Flags: append([]cli.Flag{
					NewUserFlag("user id to update"),
					&cli.StringFlag{Name: "email", Usage: "new email"},
					&cli.StringFlag{Name: "name", Usage: "new display name"},
					&cli.StringFlag{Name: "role", Usage: "new role"},
					&cli.BoolWithInverseFlag{
						Name:  "active",
						Usage: "activate (or --no-active to deactivate)",
					},
					NewHostFlag("user", meta.Config.Source),
					tldrFlag,
				}, NewGlobalFlags("user")...),
				Action: UserUpdateCommandAction,
			},
			{
				Name:      "delete",
				Usage:     "delete a user",
				UsageText: `hitactl user delete --user ID [--yes]`,
				Metadata:  map[string]any{"meta": meta},
				Flags: []cli.Flag{
					NewUserFlag("user id to delete"),
					NewHostFlag("user", meta.Config.Source),
					tldrFlag,
					yesFlag,
				},
				Action: UserDeleteCommandAction,
			},
		},
	}
}
