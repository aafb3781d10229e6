package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hookmux/hookmux/internal/hookerrors"
)

// chdir changes the working directory for the duration of the test,
// restoring the original directory on cleanup (t.Chdir needs Go 1.24+).
func chdir(t *testing.T, dir string) {
	t.Helper()
	orig, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		if err := os.Chdir(orig); err != nil {
			t.Errorf("restoring working directory: %v", err)
		}
	})
}

func writeScopeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadScopeFrom_Valid(t *testing.T) {
	dir := t.TempDir()
	path := writeScopeFile(t, dir, "config.yml", `
version: 1
plugins:
  - check-message
  - check-issue
abortOnError: false
hooks:
  commit-msg:
    - check-signoff
settings:
  check-issue:
    pattern: "PROJ-[0-9]+"
scripts:
  - name: check-signoff
    path: .hooks/signoff.sh
    hooks: [commit-msg]
`)

	scope, err := LoadScopeFrom(ScopeLocal, path)
	require.NoError(t, err)

	assert.Equal(t, ScopeLocal, scope.Name)
	assert.Equal(t, path, scope.Path)
	assert.Equal(t, []string{"check-message", "check-issue"}, scope.File.Plugins)
	require.NotNil(t, scope.File.AbortOnError)
	assert.False(t, *scope.File.AbortOnError)
	assert.Equal(t, []string{"check-signoff"}, scope.File.Hooks["commit-msg"])
	assert.Equal(t, "PROJ-[0-9]+", scope.File.Settings["check-issue"]["pattern"])
	require.Len(t, scope.File.Scripts, 1)
	assert.Equal(t, "check-signoff", scope.File.Scripts[0].Name)
}

func TestLoadScopeFrom_MalformedYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeScopeFile(t, dir, "config.yml", "version: 1\nplugins: [unterminated\n")

	_, err := LoadScopeFrom(ScopeLocal, path)
	require.Error(t, err)
	assert.True(t, hookerrors.IsType(err, hookerrors.ErrConfigParse))
}

func TestLoadScopeFrom_MissingVersion(t *testing.T) {
	dir := t.TempDir()
	path := writeScopeFile(t, dir, "config.yml", "plugins: [a]\n")

	_, err := LoadScopeFrom(ScopeLocal, path)
	require.Error(t, err)
	assert.True(t, hookerrors.IsType(err, hookerrors.ErrConfigParse))
	assert.Contains(t, err.Error(), "invalid")
}

func TestLoadScopeFrom_UnsupportedVersion(t *testing.T) {
	dir := t.TempDir()
	path := writeScopeFile(t, dir, "config.yml", "version: 99\n")

	_, err := LoadScopeFrom(ScopeLocal, path)
	require.Error(t, err)
	assert.True(t, hookerrors.IsType(err, hookerrors.ErrConfigParse))
}

func TestLoadScopeFrom_UnknownHookName(t *testing.T) {
	dir := t.TempDir()
	path := writeScopeFile(t, dir, "config.yml", `
version: 1
hooks:
  post-deploy: [a]
`)

	_, err := LoadScopeFrom(ScopeLocal, path)
	require.Error(t, err)
	assert.True(t, hookerrors.IsType(err, hookerrors.ErrConfigParse))
}

func TestLoadScopeFrom_ScriptValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			"missing name",
			"version: 1\nscripts:\n  - path: x.sh\n    hooks: [pre-commit]\n",
		},
		{
			"missing path",
			"version: 1\nscripts:\n  - name: x\n    hooks: [pre-commit]\n",
		},
		{
			"no hooks",
			"version: 1\nscripts:\n  - name: x\n    path: x.sh\n",
		},
		{
			"unknown hook",
			"version: 1\nscripts:\n  - name: x\n    path: x.sh\n    hooks: [post-deploy]\n",
		},
		{
			"duplicate names",
			"version: 1\nscripts:\n  - name: x\n    path: a.sh\n    hooks: [pre-commit]\n  - name: x\n    path: b.sh\n    hooks: [pre-commit]\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := writeScopeFile(t, dir, "config.yml", tt.content)

			_, err := LoadScopeFrom(ScopeLocal, path)
			require.Error(t, err)
			assert.True(t, hookerrors.IsType(err, hookerrors.ErrConfigParse))
		})
	}
}

func TestLoadScopes_MissingFilesAreEmptyScopes(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, ".config"))

	origSystem := SystemPath
	SystemPath = filepath.Join(dir, "no-such-system.yml")
	defer func() { SystemPath = origSystem }()

	scopes, repoRoot, err := LoadScopes()
	require.NoError(t, err)
	require.Len(t, scopes, 3)

	assert.Equal(t, ScopeSystem, scopes[0].Name)
	assert.Equal(t, ScopeGlobal, scopes[1].Name)
	assert.Equal(t, ScopeLocal, scopes[2].Name)
	for _, scope := range scopes {
		assert.Empty(t, scope.Path)
		assert.Empty(t, scope.File.Plugins)
	}
	assert.NotEmpty(t, repoRoot)
}

func TestLoadScopes_LocalWalkUp(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, ".config"))

	origSystem := SystemPath
	SystemPath = filepath.Join(dir, "no-such-system.yml")
	defer func() { SystemPath = origSystem }()

	repoDir := filepath.Join(dir, "repo")
	nested := filepath.Join(repoDir, "sub", "pkg")
	require.NoError(t, os.MkdirAll(nested, 0o750))
	writeScopeFile(t, repoDir, LocalFileName, "version: 1\nplugins: [local-check]\n")

	chdir(t, nested)

	scopes, repoRoot, err := LoadScopes()
	require.NoError(t, err)

	local := scopes[2]
	assert.Equal(t, []string{"local-check"}, local.File.Plugins)
	assert.Equal(t, filepath.Join(repoDir, LocalFileName), local.Path)
	// macOS tempdirs resolve through symlinks, compare the suffix only.
	assert.Equal(t, filepath.Base(repoDir), filepath.Base(repoRoot))
}

func TestRuntimeScope_DefaultsVersion(t *testing.T) {
	scope := RuntimeScope(File{Plugins: []string{"x"}})
	assert.Equal(t, ScopeRuntime, scope.Name)
	assert.Equal(t, SupportedVersion, scope.File.Version)
}
