// Copyright © 2025 Roknuzzaman Rokon roknuzzamanrokon113@gmail.com
// SPDX-License-Identifier: MIT
package command

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/RoknuzamanRokon/hitactl/internal/config"
	"github.com/RoknuzamanRokon/hitactl/internal/meta"
	"github.com/RoknuzamanRokon/hitactl/internal/store"
)

func InitApp(ctx context.Context, args []string) (*cli.Command, error) {

	// Save the CWD at startup and then defer restoring it so we're tidy.
	sd, _ := os.Getwd()
	defer func() {
		if err := os.Chdir(sd); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to restore directory: %v\n", err)
		}
	}()

	// The arg[1] immediately following the binary (arg[0]) is the hitactl
	// subcommand and also represents the namespace key to be used when
	// retrieving config values. arg[1] could be -h/--help, so ignore it if it
	// appears to be a flag.
	var ns string
	if len(args) > 1 && !strings.HasPrefix(args[1], "-") {
		ns = args[1]
	}

	cfg, _ := config.Load(ns)
	meta := meta.Meta{
		Args:        args,
		Config:      cfg,
		Context:     ctx,
		StartingDir: sd,
		// One cache store per process, injected into every command. Queries
		// within a single run (and every tick of --watch) share it.
		Store: store.New(),
	}

	app := &cli.Command{
		Name:  "hitactl",
		Usage: "HITA platform control",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "version",
				Aliases:     []string{"v"},
				Usage:       "hitactl version info",
				HideDefault: true,
			},
		},
	}

	app.Commands = append(app.Commands,
		AqCommandBuilder(app, meta),
		ExportCommandBuilder(app, meta),
		HqCommandBuilder(app, meta),
		PointsCommandBuilder(app, meta),
		SupplierCommandBuilder(app, meta),
		UqCommandBuilder(app, meta),
		UserCommandBuilder(app, meta),
		WhoamiCommandBuilder(app, meta),
		CompletionCommandBuilder(app, meta),
	)

	// Make sure flags are sorted for the --help text.
	for _, cmd := range app.Commands {
		sort.Slice(cmd.Flags, func(i, j int) bool {
			return cmd.Flags[i].Names()[0] < cmd.Flags[j].Names()[0]
		})
	}

	return app, nil
}
