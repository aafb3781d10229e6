// Package hook defines the git hook types hookmux can serve and routes a
// physical invocation to one of them.
package hook

import "io"

// Type identifies one of the git hooks hookmux can be invoked as
type Type string

const (
	// PreCommit is invoked before a commit is created
	PreCommit Type = "pre-commit"

	// PrepareCommitMsg is invoked before the commit message editor opens
	PrepareCommitMsg Type = "prepare-commit-msg"

	// CommitMsg is invoked to validate or rewrite the commit message
	CommitMsg Type = "commit-msg"

	// PostCommit is invoked after a commit has been created
	PostCommit Type = "post-commit"

	// PreRebase is invoked before a rebase starts
	PreRebase Type = "pre-rebase"

	// PrePush is invoked before refs are pushed to a remote
	PrePush Type = "pre-push"

	// PostCheckout is invoked after a checkout or switch
	PostCheckout Type = "post-checkout"

	// PostMerge is invoked after a merge completes
	PostMerge Type = "post-merge"

	// PreReceive is invoked server-side before refs are updated
	PreReceive Type = "pre-receive"

	// Update is invoked server-side once per ref being updated
	Update Type = "update"

	// PostReceive is invoked server-side after refs have been updated
	PostReceive Type = "post-receive"
)

// All lists every supported hook type in a stable order
var All = []Type{
	PreCommit,
	PrepareCommitMsg,
	CommitMsg,
	PostCommit,
	PreRebase,
	PrePush,
	PostCheckout,
	PostMerge,
	PreReceive,
	Update,
	PostReceive,
}

// String returns the git hook name for a Type
func (t Type) String() string {
	return string(t)
}

// Valid checks if a Type is one of the supported hook names
func (t Type) Valid() bool {
	switch t {
	case PreCommit, PrepareCommitMsg, CommitMsg, PostCommit, PreRebase,
		PrePush, PostCheckout, PostMerge, PreReceive, Update, PostReceive:
		return true
	default:
		return false
	}
}

// CanAbort reports whether a non-zero exit from this hook can still stop the
// git operation. Hooks that run after git has already acted cannot.
func (t Type) CanAbort() bool {
	switch t {
	case PostCommit, PostCheckout, PostMerge, PostReceive:
		return false
	default:
		return t.Valid()
	}
}

// Known checks whether a program name matches a supported hook
func Known(name string) bool {
	return Type(name).Valid()
}

// Invocation is the physical call git made: program name, positional
// arguments, and whatever git piped on stdin. Captured once per process.
type Invocation struct {
	Prog  string
	Argv  []string
	Stdin io.Reader
}

// RefUpdate is one (old, new, ref) triple as supplied to the receive-side hooks
type RefUpdate struct {
	OldSHA  string `json:"oldSha"`
	NewSHA  string `json:"newSha"`
	RefName string `json:"refName"`
}

// PushUpdate is one ref pair as supplied on stdin to pre-push
type PushUpdate struct {
	LocalRef  string `json:"localRef"`
	LocalSHA  string `json:"localSha"`
	RemoteRef string `json:"remoteRef"`
	RemoteSHA string `json:"remoteSha"`
}

// Args is the normalized argument bundle for one hook invocation.
// Which fields are populated depends on the hook type; Raw always holds
// the original positional arguments.
type Args struct {
	Hook Type
	Raw  []string

	// MessageFile is the commit message file path (commit-msg, prepare-commit-msg)
	MessageFile string

	// MessageSource and CommitSHA carry prepare-commit-msg's optional extras
	MessageSource string
	CommitSHA     string

	// RefUpdates holds receive-side triples (pre-receive, post-receive, update)
	RefUpdates []RefUpdate

	// Remote and RemoteURL identify the push target (pre-push)
	Remote    string
	RemoteURL string

	// PushUpdates holds the refs being pushed (pre-push)
	PushUpdates []PushUpdate

	// Upstream and Branch describe the rebase (pre-rebase); Branch may be empty
	Upstream string
	Branch   string
}
