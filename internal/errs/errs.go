// Package errs defines the error taxonomy shared by every package in
// git-subrebase: precondition failures, interactive cancellation, the
// locally-recovered conflict/already-applied outcomes, and the two fatal
// submodule conditions (missing child, detached child).
package errs

import "errors"

// Sentinel errors. Wrap these with fmt.Errorf("...: %w", Err...) so
// errors.Is keeps working across package boundaries.
var (
	// ErrPrecondition covers a dirty worktree at root, an index
	// lockfile at any node, or an unresolvable target ref.
	ErrPrecondition = errors.New("precondition failed")

	// ErrInteractiveCancel covers a "No" answer to a Y/n prompt, an
	// invalid menu index, or an observed interrupt at a prompt.
	ErrInteractiveCancel = errors.New("cancelled")

	// ErrConflict is raised by a store.RebaseEngine when starting or
	// committing a rebase step hits a conflict. Callers recover from
	// this locally; it should never escape internal/rebase.
	ErrConflict = errors.New("rebase conflict")

	// ErrAlreadyApplied names the empty-patch case of a commit step.
	// The gogit engine reports that case as store.RebaseAlreadyApplied
	// with a nil error, which the driver records as success; the driver
	// does not treat this error value as success.
	ErrAlreadyApplied = errors.New("patch already applied")

	// ErrMissingChild: a submodule added within the rebase range lacks
	// either a final-head or target-head tree entry.
	ErrMissingChild = errors.New("submodule missing final or target head")

	// ErrChildDetached: a submodule's HEAD does not peel to a commit.
	ErrChildDetached = errors.New("submodule HEAD is not a commit")

	// ErrStore covers any other object-store error, including the
	// repo-cycle case. A submodule deleted mid-range is not detected:
	// the driver skips it for the replayed commits that do not pin it.
	ErrStore = errors.New("store error")
)
