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
)

func WhoamiCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "whoami") {
		return nil
	}

	attrs := BuildAttrs(cmd, "id", "email", "name", "role")
	log.Debugf("attrs: %v", attrs)

	client, err := NewClient(cmd)
	if err != nil {
		return err
	}

	user, err := client.CheckMe(ctx)
	if err != nil {
		return api.Friendly(err, api.ErrorContext{
			Host:      cmd.String("host"),
			Operation: "verify token",
			Resource:  "user",
		})
	}

	doc, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to marshal user: %w", err)
	}

	EmitDataset(doc, attrs, cmd, "")
	return nil
}

func WhoamiCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	qcb := QueryCommandBuilder{
		Name:      "whoami",
		Usage:     "show the authenticated user",
		UsageText: `hitactl whoami [options]`,
		Meta:      meta,
		Action: func(ctx context.Context, c *cli.Command) error {
			return WhoamiCommandAction(ctx, c)
		},
	}
	return qcb.Build()
}
