// Copyright © 2025 Roknuzzaman Rokon roknuzzamanrokon113@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"fmt"
	"os"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/RoknuzamanRokon/hitactl/internal/api"
	"github.com/RoknuzamanRokon/hitactl/internal/meta"
	"github.com/RoknuzamanRokon/hitactl/internal/optimistic"
)

func SupplierToggleCommandAction(ctx context.Context, cmd *cli.Command, activate bool) error {
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

	providers := cmd.StringSlice("provider")

	operation := "deactivate supplier"
	if activate {
		operation = "activate supplier"
	}

	mutation := optimistic.Mutation[api.User]{
		Current: *target,
		Stage: func(u api.User) api.User {
			u.Supplier = activate
			return u
		},
		Commit: func(ctx context.Context) (api.User, error) {
			var err error
			if activate {
				err = client.ActivateSupplier(ctx, target.ID, providers)
			} else {
				err = client.DeactivateSupplier(ctx, target.ID, providers)
			}
			if err != nil {
				return *target, err
			}
			committed := *target
			committed.Supplier = activate
			return committed, nil
		},
	}

	render := func(u api.User) {
		state := "off"
		if u.Supplier {
			state = "on"
		}
		fmt.Fprintf(os.Stderr, "%s  supplier %s\n", u.Email, state)
	}

	_, result, err := mutation.Run(ctx, render)
	if err != nil {
		return api.Friendly(err, api.ErrorContext{
			Host:      cmd.String("host"),
			User:      target.Email,
			Operation: operation,
			Resource:  "supplier",
		})
	}

	if result == optimistic.Committed {
		InvalidateUserCaches(cmd)
		state := "deactivated"
		if activate {
			state = "activated"
		}
		fmt.Printf("supplier %s for %s\n", state, target.Email)
	}
	return nil
}

func supplierSubcommand(name string, usage string, meta meta.Meta, activate bool) *cli.Command {
	return &cli.Command{
		Name:      name,
		Usage:     usage,
		UsageText: fmt.Sprintf(`hitactl supplier %s --user ID [--provider P ...]`, name),
		Metadata:  map[string]any{"meta": meta},
		Flags: []cli.Flag{
			NewUserFlag("user id to toggle"),
			&cli.StringSliceFlag{
				Name:    "provider",
				Aliases: []string{"p"},
				Usage:   "provider to include in the toggle, repeatable",
			},
			NewHostFlag("supplier", meta.Config.Source),
			tldrFlag,
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return SupplierToggleCommandAction(ctx, c, activate)
		},
	}
}

func SupplierCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "supplier",
		Usage:     "toggle supplier access for users",
		UsageText: `hitactl supplier <activate|deactivate> [options]`,
		Metadata: map[string]any{
			"meta": meta,
		},
		Commands: []*cli.Command{
			supplierSubcommand("activate", "turn supplier access on", meta, true),
			supplierSubcommand("deactivate", "turn supplier access off", meta, false),
		},
	}
}
