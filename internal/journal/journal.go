// Package journal keeps a short, flock-protected history of hook runs in
// ~/.hookmux/journal.json. Recording is best-effort: a locked or corrupt
// journal never blocks a hook.
package journal

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"github.com/hookmux/hookmux/internal/hookerrors"
	"github.com/hookmux/hookmux/internal/logger"
)

var (
	// MaxRuns is the number of most recent runs kept in the journal
	MaxRuns = 100
	// LockTimeout is the timeout for acquiring the journal lock
	LockTimeout = 2 * time.Second
)

// PluginResult summarizes one plugin's outcome within a recorded run
type PluginResult struct {
	Plugin string `json:"plugin"`
	Status string `json:"status"`
}

// Run is one recorded hook dispatch
type Run struct {
	Time     time.Time      `json:"time"`
	Repo     string         `json:"repo"`
	Hook     string         `json:"hook"`
	Overall  string         `json:"overall"`
	ExitCode int            `json:"exitCode"`
	Plugins  []PluginResult `json:"plugins,omitempty"`
}

// Journal is the on-disk run history. The caller MUST call Close() after
// Load() to release the file lock.
type Journal struct {
	Runs  []Run        `json:"runs"`
	flock *flock.Flock `json:"-"`
}

// Path returns the path to the journal file
func Path() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".hookmux", "journal.json"), nil
}

// LockPath returns the path to the journal lock file
func LockPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".hookmux", "journal.json.lock"), nil
}

// Load reads the journal under its file lock. A missing or corrupt file
// yields an empty journal (the lock is kept either way).
func Load() (*Journal, error) {
	journalPath, err := Path()
	if err != nil {
		return nil, err
	}

	lockPath, err := LockPath()
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(journalPath), 0o750); err != nil {
		return nil, fmt.Errorf("failed to create journal directory: %w", err)
	}

	fileLock := flock.New(lockPath)

	ctx, cancel := context.WithTimeout(context.Background(), LockTimeout)
	defer cancel()

	locked, err := fileLock.TryLockContext(ctx, 100*time.Millisecond)
	if err != nil {
		return nil, hookerrors.JournalLocked(lockPath, err)
	}
	if !locked {
		return nil, hookerrors.JournalLocked(lockPath, fmt.Errorf("waited %v", LockTimeout))
	}

	journal := &Journal{
		Runs:  make([]Run, 0),
		flock: fileLock,
	}

	if _, err := os.Stat(journalPath); os.IsNotExist(err) {
		return journal, nil
	}

	// #nosec G304 - journalPath comes from the fixed Path() function
	data, err := os.ReadFile(journalPath)
	if err != nil {
		_ = fileLock.Unlock()
		return nil, fmt.Errorf("failed to read journal: %w", err)
	}

	var loaded struct {
		Runs []Run `json:"runs"`
	}
	if err := json.Unmarshal(data, &loaded); err != nil {
		logger.Warn("corrupt journal file, starting a new one: %v", err)
		return journal, nil
	}

	if loaded.Runs != nil {
		journal.Runs = loaded.Runs
	}

	return journal, nil
}

// Append adds a run, trimming the journal to the most recent MaxRuns
func (j *Journal) Append(run Run) {
	j.Runs = append(j.Runs, run)
	if len(j.Runs) > MaxRuns {
		j.Runs = j.Runs[len(j.Runs)-MaxRuns:]
	}
}

// Recent returns up to n runs, most recent first
func (j *Journal) Recent(n int) []Run {
	if n <= 0 || n > len(j.Runs) {
		n = len(j.Runs)
	}

	recent := make([]Run, 0, n)
	for i := len(j.Runs) - 1; i >= len(j.Runs)-n; i-- {
		recent = append(recent, j.Runs[i])
	}
	return recent
}

// Save writes the journal atomically
func (j *Journal) Save() error {
	journalPath, err := Path()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(journalPath), 0o750); err != nil {
		return fmt.Errorf("failed to create journal directory: %w", err)
	}

	data, err := json.MarshalIndent(j, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal journal: %w", err)
	}

	tempFile := journalPath + ".tmp"
	if err := os.WriteFile(tempFile, data, 0o600); err != nil {
		return fmt.Errorf("failed to write temporary journal: %w", err)
	}

	if err := os.Rename(tempFile, journalPath); err != nil {
		_ = os.Remove(tempFile)
		return fmt.Errorf("failed to save journal: %w", err)
	}

	return nil
}

// Close releases the journal file lock
func (j *Journal) Close() error {
	if j.flock != nil {
		if err := j.flock.Unlock(); err != nil {
			return fmt.Errorf("failed to release journal lock: %w", err)
		}
	}
	return nil
}

// Record appends one run under the lock. Intended for the hot path after a
// dispatch, where journal problems must not affect the hook's exit code.
func Record(run Run) error {
	journal, err := Load()
	if err != nil {
		return err
	}
	defer func() {
		_ = journal.Close()
	}()

	journal.Append(run)
	return journal.Save()
}
