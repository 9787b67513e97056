// Package store declares the contracts this tool needs from an underlying
// version-control object store: refs, objects, a working tree/index, a
// rebase primitive, and submodule enumeration. None of these are
// implemented here — see internal/store/gogit for the concrete adapter
// built on go-git/v5. Keeping the contracts in their own package lets
// internal/forest, internal/preflight, internal/rebase, and
// internal/finalize depend only on interfaces, and lets tests substitute
// go.uber.org/mock fakes for all of them.
package store

import (
	"context"
	"time"
)

// CommitID is the opaque content-address of a commit (a hex object id).
// It is a plain string so CommitMap (internal/rebase) can use it directly
// as a map key.
type CommitID = string

// Scope distinguishes local from remote branches.
type Scope int

const (
	ScopeLocal Scope = iota
	ScopeRemote
)

// EntryKind is the kind of a tree entry encountered during a pre-order
// tree walk.
type EntryKind int

const (
	EntryBlob EntryKind = iota
	EntryTree
	EntryCommit
	EntryTag
)

// TreeEntry is one (path, kind, id) triple yielded by a pre-order walk.
type TreeEntry struct {
	Path string
	Name string
	Kind EntryKind
	ID   string
}

// ResetMode selects between `git reset --mixed` and `git reset --hard`.
type ResetMode int

const (
	ResetMixed ResetMode = iota
	ResetHard
)

// DeltaStatus is the per-entry status of diff(index -> worktree).
type DeltaStatus int

const (
	DeltaUnmodified DeltaStatus = iota
	DeltaModified
	DeltaAdded
	DeltaDeleted
)

// DiffEntry is one line of diff(index -> worktree).
type DiffEntry struct {
	Path   string
	Status DeltaStatus
	// OldID is the id the index currently records for Path; for a
	// submodule entry this is the pinned commit before the diff.
	OldID string
}

// Signature is an author/committer identity plus timestamp.
type Signature struct {
	Name  string
	Email string
	When  time.Time
}

// Ref is a resolved reference: its name and the commit it (transitively)
// points at.
type Ref struct {
	Name     string // e.g. "refs/heads/main", or "HEAD" if detached
	IsHEAD   bool
	Short    string // e.g. "main"
	CommitID string
}

// RebaseOutcome distinguishes the three ways a rebase step can land: a
// plain success, a conflict the caller must let the user resolve, or a
// no-op because the change was already present upstream.
type RebaseOutcome int

const (
	RebaseOK RebaseOutcome = iota
	RebaseConflict
	RebaseAlreadyApplied
)

// CommitMeta describes a pending rebase operation about to be replayed.
type CommitMeta struct {
	OriginalID string
	Author     Signature
	Committer  Signature
	Message    string
}

// CommitSigner is a pluggable hook for producing the replayed commit
// object itself. Passthrough returning true means "use the store's
// default commit creation"; returning false means NewID is the commit
// object the signer itself produced and wrote to the store.
type CommitSigner interface {
	Sign(meta CommitMeta, treeID string, parents []string) (newID string, passthrough bool, err error)
}

// RebaseEngine is the external rebase primitive: start a replay, iterate
// pending operations, commit or skip each one, and finish or abort. A
// single RebaseEngine instance is scoped to one repository and one
// rebase range.
type RebaseEngine interface {
	// Start begins replaying branch's commits in (upstream, branch]
	// onto onto. Returns ErrConflict (wrapped) if starting itself
	// conflicts (e.g. a dirty checkout); the caller may retry after
	// the user resolves it.
	Start(ctx context.Context, branch, upstream, onto string) error

	// Next returns the original commit id of the next pending
	// operation, or ok=false when the replay is exhausted.
	Next(ctx context.Context) (originalID string, ok bool, err error)

	// Commit asks the engine to write the replayed commit for the
	// operation most recently returned by Next, using signer as the
	// commit-creation callback. Returns the new commit id and
	// outcome; RebaseConflict means the caller should let the user
	// resolve and call Commit again for the same op.
	Commit(ctx context.Context, signer CommitSigner) (newID string, outcome RebaseOutcome, err error)

	// Finish completes the rebase after the last successful Commit.
	Finish(ctx context.Context) error
}

// Submodule is a handle to one submodule entry of a parent repository.
type Submodule interface {
	Name() string
	Path() string
	// Open returns the submodule's own Repo, or an error if it has
	// not been initialized/cloned into the worktree.
	Open() (Repo, error)
	// Update runs init+recursive update for this submodule by
	// shelling out to git, the way a plain submodule checkout does.
	Update(ctx context.Context, init, recursive bool) (stdout, stderr string, err error)
	// IsEmptyDir reports whether the submodule's working directory is
	// empty (or absent) on disk, as opposed to containing files left
	// over from a checkout that simply isn't a valid git repository.
	IsEmptyDir() (bool, error)
	Sync() error
	Reload() error
}

// Workspace is the index/worktree surface of a single repository.
type Workspace interface {
	// Diff returns diff(index -> worktree), one entry per changed path.
	Diff() ([]DiffEntry, error)
	// UpdateAllAndAdd runs the moral equivalent of
	// `git add -A -- <paths>` against the index (update-all then
	// add-path) and writes the index.
	UpdateAllAndAdd(paths []string) error
	Reset(commitID string, mode ResetMode) error
	SetHead(refName string) error
	SetHeadDetached(commitID string) error
	Signature() Signature
}

// Repo is the full object-store adapter contract this tool drives a
// repository through.
type Repo interface {
	Workspace

	// ResolveShortName resolves a short ref/revision name to a commit id.
	ResolveShortName(name string) (commitID string, err error)

	// Head returns the current HEAD ref (detached or symbolic).
	Head() (Ref, error)

	// FindBranch looks up a branch by (name, scope).
	FindBranch(name string, scope Scope) (Ref, bool, error)
	// ListBranches lists every branch in scope.
	ListBranches(scope Scope) ([]Ref, error)
	// CreateBranch creates or force-moves a local branch to commitID.
	CreateBranch(name string, commitID string, force bool) error
	// SetUpstream records name's upstream as remoteRef (a remote
	// branch's full name).
	SetUpstream(name string, remoteRef string) error
	// Upstream returns the remote-tracking ref configured for the
	// local branch named name, reading the repository's actual
	// branch.<name>.remote/.merge configuration rather than guessing
	// from ref names. ok is false when the branch has no upstream
	// configured (or doesn't exist).
	Upstream(name string) (remoteRef string, ok bool, err error)
	// DeleteRef deletes a local reference; returns nil if absent.
	DeleteRef(name string) error
	// PeelToCommit resolves ref to the commit it points at.
	PeelToCommit(refName string) (commitID string, err error)

	// FindCommit resolves a commit id.
	FindCommit(commitID string) (exists bool, err error)
	// Tree returns the root tree id of commitID.
	Tree(commitID string) (treeID string, err error)
	// WalkTree walks treeID pre-order.
	WalkTree(treeID string, fn func(TreeEntry) error) error
	// MergeBase returns the merge-base of two commits.
	MergeBase(a, b string) (commitID string, err error)
	// RevList walks commits in (base, head] topologically, oldest
	// first.
	RevList(head, base string) ([]string, error)

	// NewRebase constructs a RebaseEngine scoped to this repository.
	NewRebase() RebaseEngine

	// Submodules enumerates the submodules declared in the worktree.
	Submodules() ([]Submodule, error)
	// SubmoduleAtTree resolves the commit a submodule is pinned to in
	// treeID, matching by combined path.
	SubmoduleAtTree(sub Submodule, treeID string) (commitID string, present bool, err error)

	// HasIndexLock reports whether an external index.lock file is
	// present, a fatal precondition failure for anything this tool
	// does.
	HasIndexLock() (bool, error)

	// Path is a stable on-disk identity for this repository, used by
	// internal/forest to detect submodule cycles.
	Path() string
}
