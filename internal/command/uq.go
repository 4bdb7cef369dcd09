// Copyright © 2025 Roknuzzaman Rokon roknuzzamanrokon113@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"encoding/json"

	"github.com/apex/log"
	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/RoknuzamanRokon/hitactl/internal/api"
	"github.com/RoknuzamanRokon/hitactl/internal/meta"
)

func UqCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	// Bail out early if we're just dumping tldr.
	if ShortCircuitTLDR(ctx, cmd, "uq") {
		return nil
	}

	attrs := BuildAttrs(cmd, "id", "email", "name", "role", "is_active", "points_balance")
	log.Debugf("attrs: %v", attrs)

	client, err := NewClient(cmd)
	if err != nil {
		return err
	}

	// The general and admin listings are the same view over a different
	// slice of users, so one command serves both.
	kind := api.UserKind(cmd.String("kind"))
	key := "users." + cmd.String("kind")

	return RunWithWatch(ctx, cmd, func(ctx context.Context) error {
		doc, fromCache, age, err := FetchCached(ctx, cmd, key,
			func(ctx context.Context) (json.RawMessage, error) {
				return client.ListUsersRaw(ctx, kind)
			})
		if err != nil {
			return api.Friendly(err, api.ErrorContext{
				Host:      cmd.String("host"),
				Operation: "list users",
				Resource:  "user",
			})
		}

		CacheNotice(cmd, fromCache, age)
		EmitDataset(doc, attrs, cmd, "")
		return nil
	})
}

func UqCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	qcb := QueryCommandBuilder{
		Name:      "uq",
		Usage:     "user query",
		UsageText: `hitactl uq [options]`,
		Meta:      meta,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "kind",
				Aliases: []string{"k"},
				Usage:   "user listing to query (general or admin)",
				Sources: cli.NewValueSourceChain(
					yaml.YAML("uq.kind", altsrc.StringSourcer(meta.Config.Source)),
				),
				Value: string(api.GeneralUsers),
				Validator: func(value string) error {
					return FlagValidators(value, KindValidator)
				},
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := UqCommandValidator(ctx, c); err != nil {
				return err
			}
			return UqCommandAction(ctx, c)
		},
	}
	return qcb.Build()
}

func UqCommandValidator(ctx context.Context, cmd *cli.Command) error {
	return GlobalFlagsValidator(ctx, cmd)
}
