package hook

import (
	"bufio"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/hookmux/hookmux/internal/hookerrors"
)

// Route maps a physical invocation to a hook type and its normalized
// arguments. The program basename selects the hook via the fixed table of
// supported names; the argument and stdin conventions follow what git
// passes to each hook.
func Route(inv Invocation) (Type, *Args, error) {
	name := filepath.Base(inv.Prog)
	t := Type(name)
	if !t.Valid() {
		return "", nil, hookerrors.UnrecognizedHook(name)
	}

	args := &Args{
		Hook: t,
		Raw:  append([]string(nil), inv.Argv...),
	}

	switch t {
	case CommitMsg:
		if len(inv.Argv) < 1 {
			return "", nil, hookerrors.MalformedHookInput(name, "expected the commit message file path as the first argument")
		}
		args.MessageFile = inv.Argv[0]

	case PrepareCommitMsg:
		if len(inv.Argv) < 1 {
			return "", nil, hookerrors.MalformedHookInput(name, "expected the commit message file path as the first argument")
		}
		args.MessageFile = inv.Argv[0]
		if len(inv.Argv) > 1 {
			args.MessageSource = inv.Argv[1]
		}
		if len(inv.Argv) > 2 {
			args.CommitSHA = inv.Argv[2]
		}

	case PreReceive, PostReceive:
		updates, err := parseRefUpdates(inv.Stdin)
		if err != nil {
			return "", nil, hookerrors.MalformedHookInput(name, err.Error())
		}
		args.RefUpdates = updates

	case Update:
		if len(inv.Argv) < 3 {
			return "", nil, hookerrors.MalformedHookInput(name, "expected <ref-name> <old-sha> <new-sha> arguments")
		}
		args.RefUpdates = []RefUpdate{{
			RefName: inv.Argv[0],
			OldSHA:  inv.Argv[1],
			NewSHA:  inv.Argv[2],
		}}

	case PrePush:
		if len(inv.Argv) < 2 {
			return "", nil, hookerrors.MalformedHookInput(name, "expected <remote-name> <remote-url> arguments")
		}
		args.Remote = inv.Argv[0]
		args.RemoteURL = inv.Argv[1]
		updates, err := parsePushUpdates(inv.Stdin)
		if err != nil {
			return "", nil, hookerrors.MalformedHookInput(name, err.Error())
		}
		args.PushUpdates = updates

	case PreRebase:
		if len(inv.Argv) < 1 {
			return "", nil, hookerrors.MalformedHookInput(name, "expected the upstream as the first argument")
		}
		args.Upstream = inv.Argv[0]
		if len(inv.Argv) > 1 {
			args.Branch = inv.Argv[1]
		}
	}

	return t, args, nil
}

// parseRefUpdates reads "<old-sha> <new-sha> <ref-name>" lines from stdin
func parseRefUpdates(r io.Reader) ([]RefUpdate, error) {
	if r == nil {
		return nil, nil
	}

	var updates []RefUpdate
	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 3 {
			return nil, fmt.Errorf("line %d: expected '<old-sha> <new-sha> <ref-name>', got %q", lineNum, line)
		}

		updates = append(updates, RefUpdate{
			OldSHA:  fields[0],
			NewSHA:  fields[1],
			RefName: fields[2],
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading ref updates: %w", err)
	}

	return updates, nil
}

// parsePushUpdates reads "<local-ref> <local-sha> <remote-ref> <remote-sha>" lines from stdin
func parsePushUpdates(r io.Reader) ([]PushUpdate, error) {
	if r == nil {
		return nil, nil
	}

	var updates []PushUpdate
	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 4 {
			return nil, fmt.Errorf("line %d: expected '<local-ref> <local-sha> <remote-ref> <remote-sha>', got %q", lineNum, line)
		}

		updates = append(updates, PushUpdate{
			LocalRef:  fields[0],
			LocalSHA:  fields[1],
			RemoteRef: fields[2],
			RemoteSHA: fields[3],
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading push updates: %w", err)
	}

	return updates, nil
}
