// Package dispatch orchestrates one hook run: selecting enabled plugins,
// invoking them in order, aggregating verdicts, and deciding the exit code.
package dispatch

import (
	"github.com/hookmux/hookmux/internal/config"
	"github.com/hookmux/hookmux/internal/hook"
	"github.com/hookmux/hookmux/internal/hookerrors"
	"github.com/hookmux/hookmux/internal/logger"
	"github.com/hookmux/hookmux/internal/plugin"
)

// Dispatcher runs the enabled plugins for one hook invocation
type Dispatcher struct {
	registry *plugin.Registry
}

// New creates a Dispatcher over a plugin registry
func New(registry *plugin.Registry) *Dispatcher {
	return &Dispatcher{registry: registry}
}

// Dispatch runs every enabled plugin serving the hook type, strictly
// sequentially in registration order, and collects the outcomes. Each
// plugin runs exactly once; a plugin that is not enabled is never invoked.
// An enabled identifier with no registered plugin is a fatal error, caught
// here before any plugin runs.
func (d *Dispatcher) Dispatch(t hook.Type, args *hook.Args, cfg *config.Effective) (*Report, error) {
	enabled := cfg.PluginsFor(t)

	// Validate the enabled list up front so a deployment mistake aborts
	// before any check has side effects.
	enabledSet := make(map[string]bool, len(enabled))
	for _, id := range enabled {
		if _, err := d.registry.Lookup(id); err != nil {
			return nil, err
		}
		enabledSet[id] = true
	}

	report := NewReport(t)
	for _, desc := range d.registry.Resolve(t) {
		if !enabledSet[desc.ID] {
			continue
		}
		logger.Verbose("[hookmux] running plugin %s for %s", desc.ID, t)
		report.Add(desc.ID, d.invoke(desc, t, args, cfg.PluginSettings(desc.ID)))
	}

	return report, nil
}

// invoke runs one plugin check. An unexpected fault inside the check is
// recovered into a failing outcome so the remaining plugins still run.
func (d *Dispatcher) invoke(desc plugin.Descriptor, t hook.Type, args *hook.Args, settings map[string]string) (outcome plugin.Outcome) {
	defer func() {
		if r := recover(); r != nil {
			internal := hookerrors.PluginInternal(desc.ID, r)
			logger.Debug("[hookmux] %s", internal.Error())
			outcome = plugin.Fail(internal.Error())
		}
	}()

	return desc.Check(t, args, settings)
}
