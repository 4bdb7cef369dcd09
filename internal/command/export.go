// Copyright © 2025 Roknuzzaman Rokon roknuzzamanrokon113@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/RoknuzamanRokon/hitactl/internal/api"
	"github.com/RoknuzamanRokon/hitactl/internal/aws"
	"github.com/RoknuzamanRokon/hitactl/internal/differ"
	"github.com/RoknuzamanRokon/hitactl/internal/meta"
	"github.com/RoknuzamanRokon/hitactl/internal/seal"
)

// exportDocument fetches the named export, sealing it when --encrypt is set.
func exportDocument(ctx context.Context, cmd *cli.Command, kind api.ExportKind) ([]byte, error) {
	client, err := NewClient(cmd)
	if err != nil {
		return nil, err
	}

	doc, err := client.Export(ctx, kind)
	if err != nil {
		return nil, api.Friendly(err, api.ErrorContext{
			Host:      cmd.String("host"),
			Operation: fmt.Sprintf("export %s", kind),
			Resource:  "export",
		})
	}

	if cmd.Bool("encrypt") {
		passphrase, err := exportPassphrase(cmd)
		if err != nil {
			return nil, err
		}
		return seal.Seal(doc, passphrase)
	}

	return doc, nil
}

// exportPassphrase resolves the passphrase: flag, then env, then prompt.
func exportPassphrase(cmd *cli.Command) (string, error) {
	if p := cmd.String("passphrase"); p != "" {
		return p, nil
	}
	if p := os.Getenv("HITACTL_PASSPHRASE"); p != "" {
		return p, nil
	}
	return seal.GetPassphrase()
}

// readExportFile reads a plain or sealed export file, decrypting as needed.
func readExportFile(cmd *cli.Command, path string) ([]byte, error) {
	doc, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if seal.IsSealed(doc) {
		passphrase, err := exportPassphrase(cmd)
		if err != nil {
			return nil, err
		}
		return seal.Open(doc, passphrase)
	}

	return doc, nil
}

func writeExport(cmd *cli.Command, doc []byte) error {
	out := cmd.String("out")
	if out == "" {
		_, err := os.Stdout.Write(doc)
		return err
	}
	if err := os.WriteFile(out, doc, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}
	fmt.Fprintf(os.Stderr, "wrote %s\n", out)
	return nil
}

func ExportFetchCommandAction(ctx context.Context, cmd *cli.Command, kind api.ExportKind) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	doc, err := exportDocument(ctx, cmd, kind)
	if err != nil {
		return err
	}
	return writeExport(cmd, doc)
}

func ExportDiffCommandAction(ctx context.Context, cmd *cli.Command) error {
	args := cmd.Args().Slice()
	if len(args) != 2 {
		return errors.New("export diff needs exactly two files")
	}

	left, err := readExportFile(cmd, args[0])
	if err != nil {
		return err
	}
	right, err := readExportFile(cmd, args[1])
	if err != nil {
		return err
	}

	var out string
	var changed bool
	if cmd.String("output") == "json" {
		out, changed, err = differ.DiffDeltas(left, right)
	} else {
		out, changed, err = differ.Diff(left, right, cmd.Bool("color"))
	}
	if err != nil {
		return err
	}

	if !changed {
		fmt.Fprintln(os.Stderr, "no differences")
		return nil
	}

	fmt.Print(out)
	return nil
}

func ExportPushCommandAction(ctx context.Context, cmd *cli.Command, kind api.ExportKind) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	doc, err := exportDocument(ctx, cmd, kind)
	if err != nil {
		return err
	}

	var opts []aws.Option
	if profile := cmd.String("profile"); profile != "" {
		opts = append(opts, aws.WithProfile(profile))
	}
	if region := cmd.String("region"); region != "" {
		opts = append(opts, aws.WithRegion(region))
	}

	awsCfg, err := aws.LoadAWSConfig(ctx, opts...)
	if err != nil {
		return fmt.Errorf("failed to load AWS config: %w", err)
	}

	key := cmd.String("key")
	if key == "" {
		key = fmt.Sprintf("hitactl/%s-%s.json", kind, time.Now().Format("2006-01-02"))
	}

	bucket := cmd.String("bucket")
	if err := aws.PushObject(ctx, aws.NewS3(awsCfg), bucket, key, doc); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "pushed s3://%s/%s\n", bucket, key)
	return nil
}

func exportFetchFlags(meta meta.Meta) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "out",
			Usage: "write the export to a file instead of stdout",
		},
		&cli.BoolFlag{
			Name:        "encrypt",
			Usage:       "seal the export with a passphrase",
			HideDefault: true,
		},
		&cli.StringFlag{
			Name:  "passphrase",
			Usage: "passphrase for sealed exports",
		},
		NewHostFlag("export", meta.Config.Source),
		tldrFlag,
	}
}

func ExportCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "export",
		Usage:     "fetch, diff and push export snapshots",
		UsageText: `hitactl export <users|analytics|diff|push> [options]`,
		Metadata: map[string]any{
			"meta": meta,
		},
		Commands: []*cli.Command{
			{
				Name:      "users",
				Usage:     "export the user base",
				UsageText: `hitactl export users [--out F] [--encrypt]`,
				Metadata:  map[string]any{"meta": meta},
				Flags:     exportFetchFlags(meta),
				Action: func(ctx context.Context, c *cli.Command) error {
					return ExportFetchCommandAction(ctx, c, api.ExportUsers)
				},
			},
			{
				Name:      "analytics",
				Usage:     "export the analytics snapshot",
				UsageText: `hitactl export analytics [--out F] [--encrypt]`,
				Metadata:  map[string]any{"meta": meta},
				Flags:     exportFetchFlags(meta),
				Action: func(ctx context.Context, c *cli.Command) error {
					return ExportFetchCommandAction(ctx, c, api.ExportAnalytics)
				},
			},
			{
				Name:      "diff",
				Usage:     "diff two export snapshots",
				UsageText: `hitactl export diff OLD NEW`,
				Metadata:  map[string]any{"meta": meta},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "passphrase",
						Usage: "passphrase for sealed exports",
					},
					&cli.BoolWithInverseFlag{
						Name:    "color",
						Aliases: []string{"c"},
						Usage:   "enable colored diff output",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "output format (text or json)",
						Value:   "text",
					},
					tldrFlag,
				},
				Action: ExportDiffCommandAction,
			},
			{
				Name:      "push",
				Usage:     "push an export snapshot to S3",
				UsageText: `hitactl export push --kind <users|analytics> --bucket B [--key K]`,
				Metadata:  map[string]any{"meta": meta},
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:  "kind",
						Usage: "export to push (users or analytics)",
						Value: string(api.ExportUsers),
						Validator: func(value string) error {
							return FlagValidators(value, ExportKindValidator)
						},
					},
					&cli.StringFlag{
						Name:     "bucket",
						Usage:    "destination S3 bucket",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "key",
						Usage: "destination object key, defaults to hitactl/<kind>-<date>.json",
					},
					&cli.StringFlag{
						Name:  "profile",
						Usage: "AWS shared config profile",
					},
					&cli.StringFlag{
						Name:  "region",
						Usage: "AWS region override",
					},
				}, exportFetchFlags(meta)...),
				Action: func(ctx context.Context, c *cli.Command) error {
					return ExportPushCommandAction(ctx, c, api.ExportKind(c.String("kind")))
				},
			},
		},
	}
}
