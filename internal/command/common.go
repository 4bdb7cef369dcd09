// Copyright (c) 2025 Roknuzzaman Rokon <roknuzzamanrokon113@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"syscall"
	"time"

	"github.com/apex/log"
	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/RoknuzamanRokon/hitactl/internal/api"
	"github.com/RoknuzamanRokon/hitactl/internal/attrs"
	"github.com/RoknuzamanRokon/hitactl/internal/config"
	"github.com/RoknuzamanRokon/hitactl/internal/meta"
	"github.com/RoknuzamanRokon/hitactl/internal/output"
	"github.com/RoknuzamanRokon/hitactl/internal/resource"
	"github.com/RoknuzamanRokon/hitactl/internal/version"
)

// ShortCircuitTLDR checks the --tldr flag and, if present and available,
// runs `tldr hitactl <subcmd>` and returns true so the caller can exit early.
func ShortCircuitTLDR(ctx context.Context, cmd *cli.Command, subcmd string) bool {
	if cmd.Bool("tldr") {
		if _, err := exec.LookPath("tldr"); err == nil {
			c := exec.CommandContext(ctx, "tldr", "hitactl", subcmd)
			c.Stdout = os.Stdout
			c.Stderr = os.Stderr
			_ = c.Run()
		}
		return true
	}
	return false
}

// BuildAttrs constructs an AttrList with defaults and optional extras from
// --attrs, then applies the global transform spec.
func BuildAttrs(cmd *cli.Command, defaults ...string) (al attrs.AttrList) {
	//nolint:errcheck
	{
		for _, d := range defaults {
			al.Set(d)
		}
		if extras := cmd.String("attrs"); extras != "" {
			al.Set(extras)
		}
		al.SetGlobalTransformSpec()
	}
	return
}

// EmitDataset passes a raw JSON document to the common output routine.
func EmitDataset(doc []byte, al attrs.AttrList, cmd *cli.Command, parent string) {
	var raw bytes.Buffer
	raw.Write(doc)
	output.SliceDiceSpit(raw, al, cmd, parent, os.Stdout)
}

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// NewClient builds the API client for the command's host, resolving the token
// through the usual chain and finally prompting when stdin is a terminal.
func NewClient(cmd *cli.Command) (*api.Client, error) {
	host := cmd.String("host")

	token, err := api.ResolveToken(host)
	if err != nil {
		if !term.IsTerminal(int(syscall.Stdin)) {
			return nil, err
		}
		fmt.Fprintf(os.Stderr, "Token for %s: ", host)
		raw, terr := term.ReadPassword(int(syscall.Stdin))
		fmt.Fprintln(os.Stderr)
		if terr != nil || len(raw) == 0 {
			return nil, err
		}
		token = strings.TrimSpace(string(raw))
	}

	return api.New(host,
		api.WithToken(token),
		api.WithUserAgent("hitactl/"+version.Version),
	)
}

// defaultTTL is used when the config has no cache.ttl entry for a resource.
const defaultTTL = 5 * time.Minute

// ResourceTTL returns the configured TTL for a cache key. Keys are dotted
// ("users.general"); the config entry uses the first segment, so
// cache.ttl.users covers both listing variants.
func ResourceTTL(key string) time.Duration {
	segment := key
	if i := strings.Index(key, "."); i > 0 {
		segment = key[:i]
	}
	ttl, _ := config.GetDuration("cache.ttl."+segment, defaultTTL)
	return ttl
}

// FetchCached runs a loader through the injected cache store, honoring the
// --no-cache and --refresh flags. It returns the document plus whether it was
// served from cache and how old it is.
func FetchCached(
	ctx context.Context,
	cmd *cli.Command,
	key string,
	loader func(context.Context) (json.RawMessage, error),
) (json.RawMessage, bool, time.Duration, error) {

	m := GetMeta(cmd)
	if cmd.Bool("no-cache") || m.Store == nil {
		doc, err := loader(ctx)
		return doc, false, 0, err
	}

	res := resource.New(m.Store, key, ResourceTTL(key), loader)

	var snap resource.Snapshot[json.RawMessage]
	if cmd.Bool("refresh") {
		snap = res.ForceRefresh(ctx)
	} else {
		snap = res.Get(ctx)
	}

	return snap.Data, snap.FromCache, snap.Age, snap.Err
}

// CacheNotice tells the user on stderr when they are looking at cached data.
// Quiet for fresh fetches and structured outputs piped elsewhere.
func CacheNotice(cmd *cli.Command, fromCache bool, age time.Duration) {
	if !fromCache || age <= 0 {
		return
	}
	if cmd.String("output") != "text" {
		return
	}
	fmt.Fprintf(os.Stderr, "cached data from %s (--refresh to reload)\n",
		humanize.Time(time.Now().Add(-age)))
}

// RunWithWatch executes render once, or on a timer when --watch is set. The
// watch loop stops when the context is canceled.
func RunWithWatch(ctx context.Context, cmd *cli.Command, render func(context.Context) error) error {
	interval := cmd.Duration("watch")
	if interval <= 0 {
		return render(ctx)
	}

	if err := render(ctx); err != nil {
		return err
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			fmt.Println()
			if err := render(ctx); err != nil {
				// Keep watching. The stale snapshot is still on screen and
				// the next tick may succeed.
				log.WithError(err).Error("refresh failed")
			}
		}
	}
}

// Confirm prompts for a y/N answer on stdin. --yes short-circuits to true.
func Confirm(cmd *cli.Command, prompt string) bool {
	if cmd.Bool("yes") {
		return true
	}

	fmt.Fprintf(os.Stderr, "%s [y/N]: ", prompt)
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

// InvalidateUserCaches drops the listing entries a user mutation touches.
func InvalidateUserCaches(cmd *cli.Command) {
	m := GetMeta(cmd)
	if m.Store == nil {
		return
	}
	m.Store.Invalidate("users.general")
	m.Store.Invalidate("users.admin")
}

// ResolveTargetUser finds the user a mutation should operate on: --user wins,
// otherwise the interactive picker (when the picker callback is non-nil and
// stdin is a terminal).
func ResolveTargetUser(
	ctx context.Context,
	cmd *cli.Command,
	client *api.Client,
	pick func() (*api.User, error),
) (*api.User, error) {

	if id := cmd.Int("user"); id > 0 {
		users, err := client.ListUsers(ctx, api.GeneralUsers)
		if err != nil {
			return nil, err
		}
		for i := range users {
			if users[i].ID == int64(id) {
				return &users[i], nil
			}
		}
		// Not in the general listing. Admin users are valid targets too.
		admins, err := client.ListUsers(ctx, api.AdminUsers)
		if err != nil {
			return nil, err
		}
		for i := range admins {
			if admins[i].ID == int64(id) {
				return &admins[i], nil
			}
		}
		return nil, fmt.Errorf("user %d: %w", id, errNoSuchUser)
	}

	if pick == nil || !term.IsTerminal(int(syscall.Stdin)) {
		return nil, errors.New("no --user given and no terminal for interactive selection")
	}

	return pick()
}

var errNoSuchUser = errors.New("no such user")

// QueryCommandBuilder is a helper that constructs a cli.Command for query
// subcommands (uq, aq, hq, whoami) using a consistent pattern. The builder
// automatically wires metadata, adds the tldr flag, applies global, cache and
// host flags, and sets up validators.
type QueryCommandBuilder struct {
	Name      string
	Usage     string
	UsageText string
	Flags     []cli.Flag
	Action    func(context.Context, *cli.Command) error
	Meta      meta.Meta
}

// Build returns a configured cli.Command from the builder.
func (qcb *QueryCommandBuilder) Build() *cli.Command {
	return &cli.Command{
		Name:      qcb.Name,
		Usage:     qcb.Usage,
		UsageText: qcb.UsageText,
		Metadata: map[string]any{
			"meta": qcb.Meta,
		},
		Flags: append(qcb.Flags, append([]cli.Flag{
			tldrFlag,
			NewHostFlag(qcb.Name, qcb.Meta.Config.Source),
		}, append(NewCacheFlags(qcb.Name), NewGlobalFlags(qcb.Name)...)...)...),
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			return ctx, GlobalFlagsValidator(ctx, c)
		},
		Action: qcb.Action,
	}
}
