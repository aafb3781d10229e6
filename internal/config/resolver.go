package config

import (
	"sort"

	"github.com/hookmux/hookmux/internal/hook"
)

// Effective is the merged view of all configuration scopes. It is derived
// once per invocation and read-only afterwards.
type Effective struct {
	abortOnError bool
	plugins      []string
	hookPlugins  map[hook.Type][]string
	settings     map[string]map[string]string
	scripts      []Script
	sources      []string
}

// Resolve merges scopes into an effective configuration. Scopes are given
// lowest precedence first. Single-valued keys take the value from the
// highest scope that sets them; list-valued keys concatenate across scopes
// in scope order with duplicates removed keeping the first occurrence;
// per-plugin settings merge key-wise with higher scopes winning.
func Resolve(scopes ...Scope) *Effective {
	eff := &Effective{
		abortOnError: true,
		hookPlugins:  make(map[hook.Type][]string),
		settings:     make(map[string]map[string]string),
	}

	scriptIndex := make(map[string]int)

	for _, scope := range scopes {
		file := scope.File

		if scope.Path != "" {
			eff.sources = append(eff.sources, scope.Path)
		}

		if file.AbortOnError != nil {
			eff.abortOnError = *file.AbortOnError
		}

		eff.plugins = appendUnique(eff.plugins, file.Plugins...)

		for name, ids := range file.Hooks {
			t := hook.Type(name)
			eff.hookPlugins[t] = appendUnique(eff.hookPlugins[t], ids...)
		}

		for pluginID, kv := range file.Settings {
			merged := eff.settings[pluginID]
			if merged == nil {
				merged = make(map[string]string)
				eff.settings[pluginID] = merged
			}
			for k, v := range kv {
				merged[k] = v
			}
		}

		for _, script := range file.Scripts {
			if idx, exists := scriptIndex[script.Name]; exists {
				// Higher scope replaces the declaration; order of first
				// declaration is kept.
				eff.scripts[idx] = script
				continue
			}
			scriptIndex[script.Name] = len(eff.scripts)
			eff.scripts = append(eff.scripts, script)
		}
	}

	return eff
}

// AbortOnError reports whether an aggregated failure should block the git
// operation (default true)
func (e *Effective) AbortOnError() bool {
	return e.abortOnError
}

// Plugins returns the globally enabled plugin identifiers
func (e *Effective) Plugins() []string {
	return append([]string(nil), e.plugins...)
}

// PluginsFor returns the plugin identifiers enabled for a hook type: the
// global list plus any hook-specific additions, duplicates removed keeping
// the first occurrence
func (e *Effective) PluginsFor(t hook.Type) []string {
	enabled := append([]string(nil), e.plugins...)
	return appendUnique(enabled, e.hookPlugins[t]...)
}

// PluginSettings returns a copy of the settings namespaced to one plugin
func (e *Effective) PluginSettings(id string) map[string]string {
	settings := make(map[string]string, len(e.settings[id]))
	for k, v := range e.settings[id] {
		settings[k] = v
	}
	return settings
}

// Scripts returns the script plugin declarations in first-declaration order
func (e *Effective) Scripts() []Script {
	return append([]Script(nil), e.scripts...)
}

// Sources returns the scope file paths that contributed to this configuration
func (e *Effective) Sources() []string {
	return append([]string(nil), e.sources...)
}

// Snapshot renders the effective configuration back into the file schema,
// for display by 'hookmux config'
func (e *Effective) Snapshot() File {
	abort := e.abortOnError
	snap := File{
		Version:      SupportedVersion,
		Plugins:      e.Plugins(),
		AbortOnError: &abort,
		Scripts:      e.Scripts(),
	}

	if len(e.hookPlugins) > 0 {
		snap.Hooks = make(map[string][]string, len(e.hookPlugins))
		for t, ids := range e.hookPlugins {
			snap.Hooks[t.String()] = append([]string(nil), ids...)
		}
	}

	if len(e.settings) > 0 {
		snap.Settings = make(map[string]map[string]string, len(e.settings))
		ids := make([]string, 0, len(e.settings))
		for id := range e.settings {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			snap.Settings[id] = e.PluginSettings(id)
		}
	}

	return snap
}

// appendUnique appends values to list, skipping any already present
func appendUnique(list []string, values ...string) []string {
	present := make(map[string]bool, len(list))
	for _, v := range list {
		present[v] = true
	}
	for _, v := range values {
		if present[v] {
			continue
		}
		present[v] = true
		list = append(list, v)
	}
	return list
}
