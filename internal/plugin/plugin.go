// Package plugin defines the capability contract for policy plugins and the
// process-wide registry that catalogs them.
package plugin

import "github.com/hookmux/hookmux/internal/hook"

// Status represents the verdict of one plugin check
type Status string

const (
	// StatusPass indicates the check passed
	StatusPass Status = "pass"
	// StatusWarn indicates the check passed with warnings
	StatusWarn Status = "warn"
	// StatusFail indicates the check failed
	StatusFail Status = "fail"
)

// Severity returns the numeric severity of a status (higher is worse)
func (s Status) Severity() int {
	switch s {
	case StatusPass:
		return 0
	case StatusWarn:
		return 1
	case StatusFail:
		return 2
	default:
		return 0
	}
}

// Outcome is the immutable result of one plugin check for one hook run
type Outcome struct {
	Status   Status   `json:"status"`
	Messages []string `json:"messages,omitempty"`
}

// Pass builds a passing outcome with optional informational messages
func Pass(messages ...string) Outcome {
	return Outcome{Status: StatusPass, Messages: messages}
}

// Warn builds a warning outcome
func Warn(messages ...string) Outcome {
	return Outcome{Status: StatusWarn, Messages: messages}
}

// Fail builds a failing outcome
func Fail(messages ...string) Outcome {
	return Outcome{Status: StatusFail, Messages: messages}
}

// CheckFunc is the single capability interface every plugin implements: one
// check routine receiving the hook type, the normalized arguments, and the
// configuration slice namespaced to the plugin. A policy violation is
// reported through the returned Outcome, never through a panic.
type CheckFunc func(t hook.Type, args *hook.Args, settings map[string]string) Outcome

// Descriptor declares a plugin: its identifier, the hook types it serves,
// and its check routine
type Descriptor struct {
	ID    string
	Hooks []hook.Type
	Check CheckFunc
}

// Serves reports whether the plugin can handle the given hook type
func (d Descriptor) Serves(t hook.Type) bool {
	for _, h := range d.Hooks {
		if h == t {
			return true
		}
	}
	return false
}
