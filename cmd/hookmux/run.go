package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/hookmux/hookmux/internal/config"
	"github.com/hookmux/hookmux/internal/dispatch"
	"github.com/hookmux/hookmux/internal/hook"
)

var (
	runNoAbort     bool
	runLocalConfig string
)

var runCmd = &cobra.Command{
	Use:   "run <hook> [args...]",
	Short: "Dispatch a hook explicitly, outside of git",
	Long: `Run the configured plugins for a hook without being invoked by git.
Useful for trying out a hook setup before wiring the symlinks.

Arguments after the hook name follow the same convention git uses for
that hook; hooks that read stdin (pre-receive, post-receive, pre-push)
read it here too.

Examples:
  # Validate a commit message file
  hookmux run commit-msg .git/COMMIT_EDITMSG

  # Replay a ref update, reporting failures without aborting
  echo "$old $new refs/heads/main" | hookmux run pre-receive --no-abort

  # Try an alternate repository configuration
  hookmux run pre-commit --local-config ./hookmux-ci.yml`,
	Args: cobra.MinimumNArgs(1),
	RunE: runHook,
}

func init() {
	runCmd.Flags().BoolVar(&runNoAbort, "no-abort", false, "Report failures but exit zero")
	runCmd.Flags().StringVar(&runLocalConfig, "local-config", "", "Extra scope file applied above the repository scope")
	rootCmd.AddCommand(runCmd)
}

func runHook(cmd *cobra.Command, args []string) error {
	t, normalized, err := hook.Route(hook.Invocation{
		Prog:  args[0],
		Argv:  args[1:],
		Stdin: os.Stdin,
	})
	if err != nil {
		return err
	}

	var extra []config.Scope
	if runLocalConfig != "" {
		scope, err := config.LoadScopeFrom(config.ScopeRuntime, runLocalConfig)
		if err != nil {
			return err
		}
		extra = append(extra, scope)
	}
	if runNoAbort {
		off := false
		extra = append(extra, config.RuntimeScope(config.File{AbortOnError: &off}))
	}

	code, err := executeHook(t, normalized, extra)
	if err != nil {
		return err
	}
	if code != dispatch.ExitAllow {
		os.Exit(code)
	}
	return nil
}
