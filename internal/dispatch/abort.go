package dispatch

import (
	"github.com/hookmux/hookmux/internal/hook"
	"github.com/hookmux/hookmux/internal/plugin"
)

// Exit codes understood by git: zero lets the operation proceed, any
// non-zero value aborts it. hookmux always uses 1 for the abort case.
const (
	ExitAllow = 0
	ExitAbort = 1
)

// ExitCode converts the aggregated verdict and the abort-on-error setting
// into the process exit status. Warnings never abort. Disabling abort
// changes only the exit code; the report is emitted either way. Hook types
// that run after git has acted always allow, regardless of outcomes.
func ExitCode(overall plugin.Status, abortOnError bool, t hook.Type) int {
	if overall != plugin.StatusFail {
		return ExitAllow
	}
	if !abortOnError || !t.CanAbort() {
		return ExitAllow
	}
	return ExitAbort
}
