package main

import (
	"fmt"
	"os"
	"time"

	"github.com/hookmux/hookmux/internal/config"
	"github.com/hookmux/hookmux/internal/dispatch"
	"github.com/hookmux/hookmux/internal/hook"
	"github.com/hookmux/hookmux/internal/journal"
	"github.com/hookmux/hookmux/internal/logger"
	"github.com/hookmux/hookmux/internal/plugin"
)

// builtins holds statically linked plugins, registered before any script
// plugins. This is the compile-time extension point: a custom build appends
// descriptors here from an init function.
var builtins []plugin.Descriptor

// runAsHook handles the symlink entry path: route the invocation, dispatch,
// and turn any fatal setup error into an abort
func runAsHook(name string, argv []string) int {
	t, args, err := hook.Route(hook.Invocation{Prog: name, Argv: argv, Stdin: os.Stdin})
	if err != nil {
		printError(err)
		return dispatch.ExitAbort
	}

	code, err := executeHook(t, args, nil)
	if err != nil {
		printError(err)
		return dispatch.ExitAbort
	}
	return code
}

// executeHook runs the full pipeline for one routed hook invocation:
// load scopes, resolve the effective config, build the registry, dispatch,
// report, and decide the exit code. Extra scopes (runtime overrides) are
// appended above the local scope.
func executeHook(t hook.Type, args *hook.Args, extra []config.Scope) (int, error) {
	scopes, repoRoot, err := config.LoadScopes()
	if err != nil {
		return 0, err
	}
	scopes = append(scopes, extra...)

	cfg := config.Resolve(scopes...)

	registry, err := buildRegistry(cfg, repoRoot)
	if err != nil {
		return 0, err
	}

	report, err := dispatch.New(registry).Dispatch(t, args, cfg)
	if err != nil {
		return 0, err
	}

	// Report on stderr: git relays hook stderr to the user, and some hooks
	// reserve stdout for git itself.
	if len(report.Entries) > 0 {
		fmt.Fprint(os.Stderr, report.Format())
	} else {
		logger.Verbose("[hookmux] no plugins enabled for %s", t)
	}

	code := dispatch.ExitCode(report.Overall(), cfg.AbortOnError(), t)
	recordRun(repoRoot, t, report, code)
	return code, nil
}

// buildRegistry registers the statically linked plugins followed by the
// script plugins declared in configuration, in declaration order
func buildRegistry(cfg *config.Effective, repoRoot string) (*plugin.Registry, error) {
	registry := plugin.NewRegistry()

	for _, d := range builtins {
		if err := registry.Register(d); err != nil {
			return nil, err
		}
	}

	for _, s := range cfg.Scripts() {
		hooks := make([]hook.Type, 0, len(s.Hooks))
		for _, h := range s.Hooks {
			hooks = append(hooks, hook.Type(h))
		}
		if err := registry.Register(plugin.NewScript(s.Name, s.Path, s.EnvFile, hooks, repoRoot)); err != nil {
			return nil, err
		}
	}

	return registry, nil
}

// recordRun appends the dispatch to the run journal, best-effort
func recordRun(repoRoot string, t hook.Type, report *dispatch.Report, code int) {
	run := journal.Run{
		Time:     time.Now(),
		Repo:     repoRoot,
		Hook:     t.String(),
		Overall:  string(report.Overall()),
		ExitCode: code,
	}
	for _, entry := range report.Entries {
		run.Plugins = append(run.Plugins, journal.PluginResult{
			Plugin: entry.Plugin,
			Status: string(entry.Outcome.Status),
		})
	}

	if err := journal.Record(run); err != nil {
		logger.Debug("[hookmux] journal record skipped: %v", err)
	}
}
