package plugin

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/hookmux/hookmux/internal/hook"
	"github.com/hookmux/hookmux/internal/logger"
)

// WarnExitCode is the exit status a check script uses to report a warning.
// Exit 0 is a pass, any other non-zero exit is a failure.
const WarnExitCode = 2

// NewScript builds a descriptor whose check routine runs an external script.
// Script plugins are the runtime extension point: plugins are loaded by
// declaration in configuration rather than compiled in.
//
// The script receives the hook's original positional arguments as argv and
// any ref/push updates on stdin, mirroring what git passed to the driver.
// Plugin settings are exported as HOOKMUX_OPT_<KEY> environment variables,
// and an optional env file is loaded into the child environment. Stdout
// lines become the outcome messages.
func NewScript(id, scriptPath, envFile string, hooks []hook.Type, repoRoot string) Descriptor {
	return Descriptor{
		ID:    id,
		Hooks: hooks,
		Check: scriptCheck(id, scriptPath, envFile, repoRoot),
	}
}

func scriptCheck(id, scriptPath, envFile, repoRoot string) CheckFunc {
	return func(t hook.Type, args *hook.Args, settings map[string]string) Outcome {
		path := scriptPath
		if !filepath.IsAbs(path) {
			path = filepath.Join(repoRoot, path)
		}

		info, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				return Fail(fmt.Sprintf("check script not found: %s", path))
			}
			return Fail(fmt.Sprintf("failed to stat check script: %v", err))
		}
		if info.Mode()&0o111 == 0 {
			logger.Warn("check script %s is not executable, attempting to run anyway", scriptPath)
		}

		// #nosec G204 - script path is declared in a configuration scope (trusted source)
		cmd := exec.Command(path, args.Raw...)
		cmd.Dir = repoRoot
		cmd.Env = append(os.Environ(), scriptEnv(id, t, repoRoot, envFile, settings)...)
		cmd.Stdin = strings.NewReader(scriptStdin(t, args))

		var stdout strings.Builder
		cmd.Stdout = &stdout
		cmd.Stderr = os.Stderr

		logger.Debug("[%s] executing check script: %s", id, path)
		runErr := cmd.Run()

		messages := splitMessages(stdout.String())
		if runErr == nil {
			return Outcome{Status: StatusPass, Messages: messages}
		}

		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			if exitErr.ExitCode() == WarnExitCode {
				return Outcome{Status: StatusWarn, Messages: messages}
			}
			if len(messages) == 0 {
				messages = []string{fmt.Sprintf("check script exited with code %d", exitErr.ExitCode())}
			}
			return Outcome{Status: StatusFail, Messages: messages}
		}

		return Fail(fmt.Sprintf("failed to run check script: %v", runErr))
	}
}

// scriptEnv constructs the environment variables passed to a check script
func scriptEnv(id string, t hook.Type, repoRoot, envFile string, settings map[string]string) []string {
	env := []string{
		fmt.Sprintf("HOOKMUX_HOOK=%s", t),
		fmt.Sprintf("HOOKMUX_PLUGIN=%s", id),
		fmt.Sprintf("HOOKMUX_REPO=%s", repoRoot),
	}

	if envFile != "" {
		path := envFile
		if !filepath.IsAbs(path) {
			path = filepath.Join(repoRoot, path)
		}
		if _, err := os.Stat(path); err == nil {
			vars, err := godotenv.Read(path)
			if err != nil {
				logger.Warn("failed to parse env file %s: %v", envFile, err)
			} else {
				for k, v := range vars {
					env = append(env, fmt.Sprintf("%s=%s", k, v))
				}
			}
		}
		// Missing env file is not an error; the declaration is optional input.
	}

	for k, v := range settings {
		env = append(env, fmt.Sprintf("HOOKMUX_OPT_%s=%s", optKey(k), v))
	}

	return env
}

// optKey normalizes a settings key into an environment variable suffix
func optKey(key string) string {
	key = strings.ToUpper(key)
	key = strings.ReplaceAll(key, "-", "_")
	key = strings.ReplaceAll(key, ".", "_")
	return key
}

// scriptStdin serializes ref or push updates for the hooks whose git
// contract delivers them on stdin. The update hook gets its triple via argv.
func scriptStdin(t hook.Type, args *hook.Args) string {
	var sb strings.Builder
	switch t {
	case hook.PreReceive, hook.PostReceive:
		for _, u := range args.RefUpdates {
			fmt.Fprintf(&sb, "%s %s %s\n", u.OldSHA, u.NewSHA, u.RefName)
		}
	case hook.PrePush:
		for _, u := range args.PushUpdates {
			fmt.Fprintf(&sb, "%s %s %s %s\n", u.LocalRef, u.LocalSHA, u.RemoteRef, u.RemoteSHA)
		}
	}
	return sb.String()
}

// splitMessages turns script stdout into outcome messages, one per non-empty line
func splitMessages(output string) []string {
	var messages []string
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		messages = append(messages, line)
	}
	return messages
}
