// Copyright © 2025 Roknuzzaman Rokon roknuzzamanrokon113@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/RoknuzamanRokon/hitactl/internal/api"
	"github.com/RoknuzamanRokon/hitactl/internal/meta"
)

func AqCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "aq") {
		return nil
	}

	client, err := NewClient(cmd)
	if err != nil {
		return err
	}

	users := cmd.IntSlice("user")
	if len(users) == 0 {
		return generalAnalytics(ctx, cmd, client)
	}
	return userAnalytics(ctx, cmd, client, users)
}

// generalAnalytics renders the platform-wide dashboard numbers.
func generalAnalytics(ctx context.Context, cmd *cli.Command, client *api.Client) error {
	attrs := BuildAttrs(cmd, "total_users", "active_users", "total_suppliers", "total_points")
	log.Debugf("attrs: %v", attrs)

	return RunWithWatch(ctx, cmd, func(ctx context.Context) error {
		doc, fromCache, age, err := FetchCached(ctx, cmd, "analytics.general",
			client.GeneralAnalyticsRaw)
		if err != nil {
			return api.Friendly(err, api.ErrorContext{
				Host:      cmd.String("host"),
				Operation: "fetch analytics",
				Resource:  "analytics",
			})
		}

		CacheNotice(cmd, fromCache, age)
		EmitDataset(doc, attrs, cmd, "")
		return nil
	})
}

// userAnalytics fans out one fetch per requested user and renders the
// combined dataset. Each user's document lands in its own cache entry, so a
// later aq for a subset of the same users is served from cache.
func userAnalytics(ctx context.Context, cmd *cli.Command, client *api.Client, users []int) error {
	attrs := BuildAttrs(cmd, "user_id", "email", "points_balance", "total_requests")
	log.Debugf("attrs: %v", attrs)

	return RunWithWatch(ctx, cmd, func(ctx context.Context) error {
		docs := make([]json.RawMessage, len(users))

		g, gctx := errgroup.WithContext(ctx)
		for i, id := range users {
			g.Go(func() error {
				doc, _, _, err := FetchCached(gctx, cmd, fmt.Sprintf("analytics.user.%d", id),
					func(ctx context.Context) (json.RawMessage, error) {
						return client.UserAnalyticsRaw(ctx, int64(id))
					})
				if err != nil {
					return api.Friendly(err, api.ErrorContext{
						Host:      cmd.String("host"),
						User:      fmt.Sprintf("%d", id),
						Operation: "fetch user analytics",
						Resource:  "analytics",
					})
				}
				docs[i] = doc
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		// Stitch the per-user documents into one dataset, preserving the
		// order they were asked for.
		var raw bytes.Buffer
		raw.WriteByte('[')
		for i, doc := range docs {
			if i > 0 {
				raw.WriteByte(',')
			}
			raw.Write(doc)
		}
		raw.WriteByte(']')

		EmitDataset(raw.Bytes(), attrs, cmd, "")
		return nil
	})
}

func AqCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	qcb := QueryCommandBuilder{
		Name:      "aq",
		Usage:     "analytics query",
		UsageText: `hitactl aq [options]`,
		Meta:      meta,
		Flags: []cli.Flag{
			&cli.IntSliceFlag{
				Name:    "user",
				Aliases: []string{"u"},
				Usage:   "user id to fetch analytics for, repeatable",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := AqCommandValidator(ctx, c); err != nil {
				return err
			}
			return AqCommandAction(ctx, c)
		},
	}
	return qcb.Build()
}

func AqCommandValidator(ctx context.Context, cmd *cli.Command) error {
	return GlobalFlagsValidator(ctx, cmd)
}
