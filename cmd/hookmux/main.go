package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/hookmux/hookmux/internal/hook"
	"github.com/hookmux/hookmux/internal/hookerrors"
	"github.com/hookmux/hookmux/internal/logger"
)

// CLI entry point for the hookmux driver

var (
	// Version information - will be set via ldflags during build
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	rootVerbose bool
	rootDebug   bool
)

var rootCmd = &cobra.Command{
	Use:   "hookmux",
	Short: "Dispatch git hooks to configured policy plugins",
	Long: `hookmux is a single driver for all git hooks. Symlinked into
.git/hooks/ under each hook name, it resolves layered configuration
(system, user, repository), runs the policy plugins enabled for the
invoked hook in order, prints a consolidated report, and exits zero or
non-zero to let git proceed or abort.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(rootVerbose, rootDebug)
	},
}

func init() {
	rootCmd.SetVersionTemplate(`{{with .Name}}{{printf "%s " .}}{{end}}{{printf "version %s" .Version}}
Commit: {{.Annotations.commit}}
Built: {{.Annotations.date}}
`)

	if rootCmd.Annotations == nil {
		rootCmd.Annotations = make(map[string]string)
	}
	rootCmd.Annotations["commit"] = commit
	rootCmd.Annotations["date"] = date

	rootCmd.PersistentFlags().BoolVar(&rootVerbose, "verbose", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&rootDebug, "debug", false, "Enable debug output")
}

func main() {
	// When git invokes us through a .git/hooks symlink, the program name is
	// the hook name. That path never goes through cobra.
	if name := filepath.Base(os.Args[0]); hook.Known(name) {
		logger.Init(false, false)
		os.Exit(runAsHook(name, os.Args[1:]))
	}

	if err := rootCmd.Execute(); err != nil {
		printError(err)
		os.Exit(1)
	}
}

// printError renders structured errors with their context and fix hints
func printError(err error) {
	var structured *hookerrors.Error
	if errors.As(err, &structured) {
		fmt.Fprint(os.Stderr, structured.Format())
		return
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
}
