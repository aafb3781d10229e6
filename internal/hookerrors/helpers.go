package hookerrors

import (
	"fmt"
	"strings"
)

// ConfigParse returns an error for a malformed configuration source
func ConfigParse(path string, cause error) *Error {
	err := New(ErrConfigParse, "Configuration file is invalid").
		WithContext("File", path).
		WithFixes(
			"Check the YAML syntax in the file",
			"Run 'hookmux config' after fixing to inspect the merged result",
		)
	if cause != nil {
		err = err.WithCause(cause)
	}
	return err
}

// UnrecognizedHook returns an error when the invocation name maps to no known hook
func UnrecognizedHook(name string) *Error {
	return New(ErrUnrecognizedHook, fmt.Sprintf("'%s' is not a recognized git hook", name)).
		WithContext("Invoked as", name).
		WithFixes(
			"Symlink hookmux into .git/hooks/ under a supported hook name",
			"Run 'hookmux run <hook>' to dispatch a hook explicitly",
		)
}

// MalformedHookInput returns an error when git-supplied hook input cannot be parsed
func MalformedHookInput(hookName, detail string) *Error {
	return New(ErrUnrecognizedHook, fmt.Sprintf("Malformed input for %s hook", hookName)).
		WithContext("Detail", detail).
		WithFix("This hook is normally invoked by git; check the arguments and stdin format")
}

// DuplicatePlugin returns an error when a plugin identifier is registered twice
func DuplicatePlugin(id string) *Error {
	return New(ErrDuplicatePlugin, fmt.Sprintf("Plugin '%s' is already registered", id)).
		WithContext("Plugin", id).
		WithFixes(
			"Each plugin identifier may be registered exactly once",
			"Check for duplicate 'scripts' entries across configuration scopes",
		)
}

// UnknownPlugin returns an error when an enabled plugin identifier is not registered
func UnknownPlugin(id string, available []string) *Error {
	err := New(ErrUnknownPlugin, fmt.Sprintf("Plugin '%s' is enabled but not registered", id)).
		WithContext("Plugin", id)

	if len(available) > 0 {
		err = err.WithContext("Registered plugins", strings.Join(available, ", "))
	}

	err = err.WithFixes(
		"Remove the identifier from the 'plugins' list",
		"Or declare it under 'scripts' in a configuration scope",
	)

	return err
}

// PluginInternal returns an error describing an unexpected fault inside a plugin
func PluginInternal(id string, fault interface{}) *Error {
	return New(ErrPluginInternal, fmt.Sprintf("Plugin '%s' failed internally: %v", id, fault)).
		WithContext("Plugin", id)
}

// JournalLocked returns an error when the journal lock cannot be acquired
func JournalLocked(path string, cause error) *Error {
	err := New(ErrJournalLocked, "Could not lock the run journal").
		WithContext("Lock file", path).
		WithFix("Another hookmux process may be running; the journal entry is skipped")
	if cause != nil {
		err = err.WithCause(cause)
	}
	return err
}
