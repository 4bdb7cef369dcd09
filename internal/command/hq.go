// Copyright © 2025 Roknuzzaman Rokon roknuzzamanrokon113@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"context"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/RoknuzamanRokon/hitactl/internal/api"
	"github.com/RoknuzamanRokon/hitactl/internal/meta"
)

func HqCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "hq") {
		return nil
	}

	attrs := BuildAttrs(cmd, "id", "name", "city", "country", "supplier", "is_active")
	log.Debugf("attrs: %v", attrs)

	client, err := NewClient(cmd)
	if err != nil {
		return err
	}

	return RunWithWatch(ctx, cmd, func(ctx context.Context) error {
		doc, fromCache, age, err := FetchCached(ctx, cmd, "hotels", client.HotelsRaw)
		if err != nil {
			return api.Friendly(err, api.ErrorContext{
				Host:      cmd.String("host"),
				Operation: "list hotels",
				Resource:  "hotel",
			})
		}

		CacheNotice(cmd, fromCache, age)
		EmitDataset(doc, attrs, cmd, "")
		return nil
	})
}

func HqCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	qcb := QueryCommandBuilder{
		Name:      "hq",
		Usage:     "hotel query",
		UsageText: `hitactl hq [options]`,
		Meta:      meta,
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := HqCommandValidator(ctx, c); err != nil {
				return err
			}
			return HqCommandAction(ctx, c)
		},
	}
	return qcb.Build()
}

func HqCommandValidator(ctx context.Context, cmd *cli.Command) error {
	return GlobalFlagsValidator(ctx, cmd)
}
