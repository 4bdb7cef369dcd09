package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/RoknuzamanRokon/hitactl/internal/meta"
)

const bashCompletionScript = `# bash completion for hitactl
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_hitactl()
{
    local cur prev cmd
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "aq export hq points supplier uq user whoami completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
  local common="--attrs -a --color -c --filter -f --output -o --page --page-size --sort -s --titles -t --tldr"
  local cache="--refresh -r --no-cache --watch"

    case "$cmd" in
    uq)
      local opts="$common $cache --host --kind -k"
            ;;
        aq)
      local opts="$common $cache --host --user -u"
            ;;
        hq)
      local opts="$common $cache --host"
            ;;
        whoami)
      local opts="$common $cache --host"
            ;;
        user)
      local opts="create update delete --host --user -u --email --name --role --active --no-active --password --yes -y"
            ;;
        points)
      local opts="give --host --user -u --email --type"
            ;;
        supplier)
      local opts="activate deactivate --host --user -u --provider -p"
            ;;
        export)
      local opts="users analytics diff push --host --out --encrypt --passphrase --bucket --key --kind --profile --region"
            ;;
        completion)
            local opts="bash zsh"
            COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
            return 0
            ;;
        *)
            local opts="$common"
            ;;
    esac

    if [[ "$prev" == "--output" || "$prev" == "-o" ]]; then
        COMPREPLY=( $(compgen -W "text json raw yaml" -- "$cur") )
        return 0
    fi

    if [[ "$prev" == "--kind" || "$prev" == "-k" ]]; then
        COMPREPLY=( $(compgen -W "general admin" -- "$cur") )
        return 0
    fi

  COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
  return 0
}

complete -F _hitactl hitactl
`

const zshCompletionScript = `#compdef hitactl

_hitactl() {
  local -a cmds
  cmds=(
    'aq:analytics query'
    'export:fetch, diff and push export snapshots'
    'hq:hotel query'
    'points:manage point allocations'
    'supplier:toggle supplier access'
    'uq:user query'
    'user:create, update and delete users'
    'whoami:show the authenticated user'
    'completion:generate shell completion script'
  )

  local -a common
  common=(
  '(-a --attrs)'{-a,--attrs}'[attributes to include]:attrs'
  '(-c --color)'{-c,--color}'[enable colored text]'
  '(-f --filter)'{-f,--filter}'[filters to apply]:filters'
  '(-o --output)'{-o,--output}'[output format]:format:(text json raw yaml)'
  '--page[page of results]:page'
  '--page-size[results per page]:size'
  '(-s --sort)'{-s,--sort}'[sort attributes]:attrs'
  '(-t --titles)'{-t,--titles}'[show titles]'
  '(-r --refresh)'{-r,--refresh}'[force a reload]'
  '--no-cache[bypass the resource cache]'
  '--watch[re-render every interval]:interval'
  '--tldr[show tldr page]'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'hitactl commands' cmds
    return
  fi

  local curcontext="$curcontext" state line
  case $words[2] in
    uq)
      _arguments -C \
        $common \
        '--host[backend host]' \
        '(-k --kind)'{-k,--kind}'[user listing]:kind:(general admin)'
      ;;
    aq)
      _arguments -C \
        $common \
        '--host[backend host]' \
        '(-u --user)'{-u,--user}'[user id]:id'
      ;;
    hq|whoami)
      _arguments -C \
        $common \
        '--host[backend host]'
      ;;
    user)
      _arguments -C \
        '1: :((create update delete))' \
        '--host[backend host]' \
        '(-u --user)'{-u,--user}'[user id]:id' \
        '--email[email]:email' \
        '--name[name]:name' \
        '--role[role]:role' \
        '(-y --yes)'{-y,--yes}'[skip confirmation]'
      ;;
    points)
      _arguments -C \
        '1: :((give))' \
        '--host[backend host]' \
        '(-u --user)'{-u,--user}'[user id]:id' \
        '--email[email]:email' \
        '--type[allocation type]:type:(admin_user_package one_year_package one_month_package per_request_point guest_point)'
      ;;
    supplier)
      _arguments -C \
        '1: :((activate deactivate))' \
        '--host[backend host]' \
        '(-u --user)'{-u,--user}'[user id]:id' \
        '(-p --provider)'{-p,--provider}'[provider]:provider'
      ;;
    export)
      _arguments -C \
        '1: :((users analytics diff push))' \
        '--host[backend host]' \
        '--out[output file]:file:_files' \
        '--encrypt[seal with a passphrase]' \
        '--passphrase[passphrase]:passphrase' \
        '--bucket[S3 bucket]:bucket' \
        '--key[S3 object key]:key' \
        '*:file:_files'
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
    *)
      _arguments -C $common
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _hitactl hitactl
`

func CompletionCommandAction(ctx context.Context, cmd *cli.Command) error {
	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	}
	switch shell {
	case "bash":
		fmt.Fprint(os.Stdout, bashCompletionScript)
	case "zsh":
		fmt.Fprint(os.Stdout, zshCompletionScript)
	default:
		// Try to detect from SHELL or print help
		sh := os.Getenv("SHELL")
		if strings.HasSuffix(sh, "zsh") {
			fmt.Fprint(os.Stdout, zshCompletionScript)
		} else if strings.HasSuffix(sh, "bash") {
			fmt.Fprint(os.Stdout, bashCompletionScript)
		} else {
			fmt.Fprintln(os.Stderr, "usage: hitactl completion [bash|zsh]")
			return nil
		}
	}
	return nil
}

func CompletionCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "hitactl completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: CompletionCommandAction,
	}
}
