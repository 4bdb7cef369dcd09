// Copyright (c) 2025 Roknuzzaman Rokon <roknuzzamanrokon113@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"os/exec"

	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/RoknuzamanRokon/hitactl/internal/config"
)

func init() {
	cfg, _ = config.Load("")
}

var (
	cfg config.ConfigType

	tldrFlag *cli.BoolFlag = &cli.BoolFlag{
		Name:        "tldr",
		Usage:       "show tldr page",
		Hidden:      !pathHas("tldr"),
		HideDefault: true,
	}

	yesFlag *cli.BoolFlag = &cli.BoolFlag{
		Name:        "yes",
		Aliases:     []string{"y"},
		Usage:       "skip confirmation prompt",
		HideDefault: true,
	}
)

func NewGlobalFlags(params ...string) (flags []cli.Flag) {
	flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "attrs",
			Aliases: []string{"a"},
			Usage:   "comma-separated list of attributes to include in results",
		},
		&cli.BoolWithInverseFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored text output",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(params[0]+"."+"color", altsrc.StringSourcer(cfg.Source)),
				yaml.YAML("color", altsrc.StringSourcer(cfg.Source)),
			),
			Value: false,
		},
		&cli.StringFlag{
			Name:    "filter",
			Aliases: []string{"f"},
			Usage:   "comma-separated list of filters to apply to results",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(params[0]+"."+"output", altsrc.StringSourcer(cfg.Source)),
				yaml.YAML("output", altsrc.StringSourcer(cfg.Source)),
			),
			Value: "text",
			Validator: func(value string) error {
				return FlagValidators(value, OutputValidator)
			},
		},
		&cli.IntFlag{
			Name:  "page",
			Usage: "page of results to show",
			Value: 1,
			Sources: cli.NewValueSourceChain(
				yaml.YAML(params[0]+"."+"page", altsrc.StringSourcer(cfg.Source)),
			),
			HideDefault: true,
		},
		&cli.IntFlag{
			Name:  "page-size",
			Usage: "results per page, 0 shows everything",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(params[0]+"."+"page-size", altsrc.StringSourcer(cfg.Source)),
				yaml.YAML("page-size", altsrc.StringSourcer(cfg.Source)),
			),
			HideDefault: true,
		},
		&cli.StringFlag{
			Name:    "sort",
			Aliases: []string{"s"},
			Usage:   "comma-separated list of attributes to sort the results by",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(params[0]+"."+"sort", altsrc.StringSourcer(cfg.Source)),
			),
		},
		&cli.BoolWithInverseFlag{
			Name:    "titles",
			Aliases: []string{"t"},
			Usage:   "show titles with text output",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(params[0]+"."+"titles", altsrc.StringSourcer(cfg.Source)),
				yaml.YAML("titles", altsrc.StringSourcer(cfg.Source)),
			),
			Value: false,
		},
	}

	return
}

// NewCacheFlags constructs the cache behavior flags shared by the query
// commands.
func NewCacheFlags(params ...string) (flags []cli.Flag) {
	flags = []cli.Flag{
		&cli.BoolFlag{
			Name:        "refresh",
			Aliases:     []string{"r"},
			Usage:       "force a reload even when the cache is fresh",
			HideDefault: true,
		},
		&cli.BoolFlag{
			Name:        "no-cache",
			Usage:       "bypass the resource cache entirely",
			HideDefault: true,
		},
		&cli.DurationFlag{
			Name:  "watch",
			Usage: "re-render every interval, serving cached data while revalidating",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(params[0]+"."+"watch", altsrc.StringSourcer(cfg.Source)),
			),
			HideDefault: true,
		},
	}

	return
}

// NewHostFlag constructs a cli.StringFlag for the "host" flag, optionally
// namespaced to a command and config file. params[1] is the config file.
func NewHostFlag(params ...string) (flag *cli.StringFlag) {
	flag = &cli.StringFlag{
		Name:  "host",
		Usage: "backend host to call",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("HITACTL_HOST"),
			cli.EnvVar("HITA_HOST"),
		),
		Value: "api.hita.app",
	}

	if len(params) == 2 {
		flag = NameSpacedValueChainFlagFromConfigFile(params[0], params[1], flag)
	}

	return
}

// NewUserFlag constructs the flag that targets a command at one user by id.
func NewUserFlag(usage string) *cli.IntFlag {
	return &cli.IntFlag{
		Name:        "user",
		Aliases:     []string{"u"},
		Usage:       usage,
		HideDefault: true,
	}
}

// NameSpacedValueChainFlagFromConfigFile adds namespaced and global config file
// sources to the given flag's Sources chain.
func NameSpacedValueChainFlagFromConfigFile(ns string, path string, flag *cli.StringFlag) *cli.StringFlag {
	src := yaml.YAML(ns+"."+flag.Name, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	src = yaml.YAML(flag.Name, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	return flag
}

// pathHas checks if the given executable exists on PATH.
func pathHas(target string) bool {
	_, err := exec.LookPath(target)
	return err == nil
}
