// Copyright © 2025 Roknuzzaman Rokon roknuzzamanrokon113@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"fmt"
	"os"

	"github.com/apex/log"
	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"github.com/RoknuzamanRokon/hitactl/internal/api"
	"github.com/RoknuzamanRokon/hitactl/internal/meta"
	"github.com/RoknuzamanRokon/hitactl/internal/optimistic"
)

func PointsGiveCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	client, err := NewClient(cmd)
	if err != nil {
		return err
	}

	allocation := api.AllocationType(cmd.String("type"))

	// --email addresses a user directly; otherwise resolve by --user or the
	// interactive picker.
	var target api.User
	if email := cmd.String("email"); email != "" {
		target = api.User{Email: email}
	} else {
		picked, err := ResolveTargetUser(ctx, cmd, client, userPicker(ctx, cmd, client))
		if err != nil {
			return err
		}
		target = *picked
	}

	mutation := optimistic.Mutation[api.User]{
		Current: target,
		Commit: func(ctx context.Context) (api.User, error) {
			req := api.GivePointsRequest{
				ReceiverEmail:  target.Email,
				ReceiverID:     target.ID,
				AllocationType: allocation,
			}
			if err := client.GivePoints(ctx, req); err != nil {
				return target, err
			}
			return target, nil
		},
	}

	render := func(u api.User) {
		if u.ID == 0 {
			fmt.Fprintf(os.Stderr, "%s\n", u.Email)
			return
		}
		fmt.Fprintf(os.Stderr, "%s  balance %s\n", u.Email, humanize.Comma(u.PointsBalance))
	}

	_, result, err := mutation.Run(ctx, render)
	if err != nil {
		return api.Friendly(err, api.ErrorContext{
			Host:      cmd.String("host"),
			User:      target.Email,
			Operation: "give points",
			Resource:  "points",
		})
	}

	if result == optimistic.Committed {
		InvalidateUserCaches(cmd)
		fmt.Printf("gave %s to %s\n", allocation, target.Email)
	}
	return nil
}

func PointsCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "points",
		Usage:     "manage point allocations",
		UsageText: `hitactl points give --type T [--user ID | --email E]`,
		Metadata: map[string]any{
			"meta": meta,
		},
		Commands: []*cli.Command{
			{
				Name:      "give",
				Usage:     "allocate points to a user",
				UsageText: `hitactl points give --type T [--user ID | --email E]`,
				Metadata:  map[string]any{"meta": meta},
				Flags: []cli.Flag{
					NewUserFlag("user id to receive the allocation"),
					&cli.StringFlag{
						Name:  "email",
						Usage: "email of the user to receive the allocation",
					},
					&cli.StringFlag{
						Name:     "type",
						Usage:    "allocation type",
						Required: true,
						Validator: func(value string) error {
							return FlagValidators(value, AllocationTypeValidator)
						},
					},
					NewHostFlag("points", meta.Config.Source),
					tldrFlag,
				},
				Action: PointsGiveCommandAction,
			},
		},
	}
}
