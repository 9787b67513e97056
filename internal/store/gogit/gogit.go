// Package gogit adapts github.com/go-git/go-git/v5 to the store.Repo
// contract: ref and object access, the index/worktree surface, submodule
// enumeration, and manual commit construction (object.NewTreeWalker,
// Worktree.Submodules, Storer.SetEncodedObject) all live here, so the
// rebase driver itself only ever talks to the store interfaces.
package gogit

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/filemode"
	"github.com/go-git/go-git/v5/plumbing/format/index"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/apenwarr/git-subrebase/internal/errs"
	"github.com/apenwarr/git-subrebase/internal/store"
)

// Adapter implements store.Repo on top of a single *git.Repository.
type Adapter struct {
	dir  string
	repo *git.Repository
	wt   *git.Worktree
}

// Open opens an existing repository at dir (the root, or a submodule's
// working directory).
func Open(dir string) (*Adapter, error) {
	repo, err := git.PlainOpen(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", errs.ErrStore, dir, err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("%w: worktree %s: %v", errs.ErrStore, dir, err)
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		abs = dir
	}
	return &Adapter{dir: abs, repo: repo, wt: wt}, nil
}

func (a *Adapter) Path() string { return a.dir }

func (a *Adapter) ResolveShortName(name string) (string, error) {
	h, err := a.repo.ResolveRevision(plumbing.Revision(name))
	if err != nil {
		return "", fmt.Errorf("%w: resolve %q: %v", errs.ErrPrecondition, name, err)
	}
	return h.String(), nil
}

func (a *Adapter) Head() (store.Ref, error) {
	ref, err := a.repo.Head()
	if err != nil {
		return store.Ref{}, fmt.Errorf("%w: head: %v", errs.ErrStore, err)
	}
	return refFromPlumbing(ref), nil
}

func refFromPlumbing(ref *plumbing.Reference) store.Ref {
	name := ref.Name().String()
	short := ref.Name().Short()
	return store.Ref{
		Name:     name,
		IsHEAD:   name == "HEAD" || name == plumbing.HEAD.String(),
		Short:    short,
		CommitID: ref.Hash().String(),
	}
}

func (a *Adapter) FindBranch(name string, scope store.Scope) (store.Ref, bool, error) {
	refName := branchRefName(name, scope)
	ref, err := a.repo.Reference(refName, true)
	if err != nil {
		if err == plumbing.ErrReferenceNotFound {
			return store.Ref{}, false, nil
		}
		return store.Ref{}, false, fmt.Errorf("%w: find-branch %s: %v", errs.ErrStore, name, err)
	}
	return refFromPlumbing(ref), true, nil
}

func branchRefName(name string, scope store.Scope) plumbing.ReferenceName {
	if scope == store.ScopeRemote {
		if strings.HasPrefix(name, "refs/remotes/") {
			return plumbing.ReferenceName(name)
		}
		return plumbing.NewRemoteReferenceName(remoteOf(name), branchOf(name))
	}
	if strings.HasPrefix(name, "refs/heads/") {
		return plumbing.ReferenceName(name)
	}
	return plumbing.NewBranchReferenceName(name)
}

// remoteOf/branchOf split "origin/main" into ("origin", "main"); a bare
// name with no slash is treated as remote "origin".
func remoteOf(name string) string {
	if i := strings.Index(name, "/"); i >= 0 {
		return name[:i]
	}
	return "origin"
}

func branchOf(name string) string {
	if i := strings.Index(name, "/"); i >= 0 {
		return name[i+1:]
	}
	return name
}

func (a *Adapter) ListBranches(scope store.Scope) ([]store.Ref, error) {
	refs, err := a.repo.Storer.IterReferences()
	if err != nil {
		return nil, fmt.Errorf("%w: iter-references: %v", errs.ErrStore, err)
	}
	defer refs.Close()

	prefix := "refs/heads/"
	if scope == store.ScopeRemote {
		prefix = "refs/remotes/"
	}

	var out []store.Ref
	err = refs.ForEach(func(ref *plumbing.Reference) error {
		if ref.Type() != plumbing.HashReference {
			return nil
		}
		if !strings.HasPrefix(ref.Name().String(), prefix) {
			return nil
		}
		out = append(out, refFromPlumbing(ref))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: list-branches: %v", errs.ErrStore, err)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (a *Adapter) CreateBranch(name string, commitID string, force bool) error {
	refName := plumbing.NewBranchReferenceName(name)
	if !force {
		if _, err := a.repo.Reference(refName, false); err == nil {
			return fmt.Errorf("%w: branch %s already exists", errs.ErrStore, name)
		}
	}
	ref := plumbing.NewHashReference(refName, plumbing.NewHash(commitID))
	if err := a.repo.Storer.SetReference(ref); err != nil {
		return fmt.Errorf("%w: create-branch %s: %v", errs.ErrStore, name, err)
	}
	return nil
}

func (a *Adapter) SetUpstream(name string, remoteRef string) error {
	remote := remoteOf(strings.TrimPrefix(remoteRef, "refs/remotes/"))
	merge := plumbing.NewBranchReferenceName(branchOf(strings.TrimPrefix(remoteRef, "refs/remotes/")))
	err := a.repo.CreateBranch(&config.Branch{
		Name:   name,
		Remote: remote,
		Merge:  merge,
	})
	if err != nil {
		return fmt.Errorf("%w: set-upstream %s -> %s: %v", errs.ErrStore, name, remoteRef, err)
	}
	return nil
}

func (a *Adapter) Upstream(name string) (string, bool, error) {
	cfg, err := a.repo.Config()
	if err != nil {
		return "", false, fmt.Errorf("%w: config: %v", errs.ErrStore, err)
	}
	branch, ok := cfg.Branches[name]
	if !ok || branch.Remote == "" || branch.Merge == "" {
		return "", false, nil
	}
	if branch.Remote == "." {
		return branch.Merge.String(), true, nil
	}
	return plumbing.NewRemoteReferenceName(branch.Remote, branch.Merge.Short()).String(), true, nil
}

func (a *Adapter) DeleteRef(name string) error {
	refName := plumbing.NewBranchReferenceName(name)
	err := a.repo.Storer.RemoveReference(refName)
	if err != nil && err != plumbing.ErrReferenceNotFound {
		return fmt.Errorf("%w: delete-ref %s: %v", errs.ErrStore, name, err)
	}
	return nil
}

func (a *Adapter) PeelToCommit(refName string) (string, error) {
	ref, err := a.repo.Reference(plumbing.ReferenceName(refName), true)
	if err != nil {
		return "", fmt.Errorf("%w: peel %s: %v", errs.ErrStore, refName, err)
	}
	commit, err := a.repo.CommitObject(ref.Hash())
	if err != nil {
		return "", fmt.Errorf("%w: peel %s to commit: %v", errs.ErrStore, refName, err)
	}
	return commit.Hash.String(), nil
}

func (a *Adapter) FindCommit(commitID string) (bool, error) {
	_, err := a.repo.CommitObject(plumbing.NewHash(commitID))
	if err != nil {
		if err == plumbing.ErrObjectNotFound {
			return false, nil
		}
		return false, fmt.Errorf("%w: find-commit %s: %v", errs.ErrStore, commitID, err)
	}
	return true, nil
}

func (a *Adapter) Tree(commitID string) (string, error) {
	commit, err := a.repo.CommitObject(plumbing.NewHash(commitID))
	if err != nil {
		return "", fmt.Errorf("%w: commit %s: %v", errs.ErrStore, commitID, err)
	}
	return commit.TreeHash.String(), nil
}

func (a *Adapter) WalkTree(treeID string, fn func(store.TreeEntry) error) error {
	tree, err := a.repo.TreeObject(plumbing.NewHash(treeID))
	if err != nil {
		return fmt.Errorf("%w: tree %s: %v", errs.ErrStore, treeID, err)
	}
	walker := object.NewTreeWalker(tree, true, nil)
	defer walker.Close()
	for {
		name, entry, err := walker.Next()
		if err != nil {
			if err != io.EOF {
				return fmt.Errorf("%w: tree-walk %s: %v", errs.ErrStore, treeID, err)
			}
			break
		}
		if err := fn(store.TreeEntry{
			Path: name,
			Name: entry.Name,
			Kind: entryKind(entry.Mode),
			ID:   entry.Hash.String(),
		}); err != nil {
			return err
		}
	}
	return nil
}

func entryKind(mode filemode.FileMode) store.EntryKind {
	switch mode {
	case filemode.Submodule:
		return store.EntryCommit
	case filemode.Dir:
		return store.EntryTree
	default:
		return store.EntryBlob
	}
}

func (a *Adapter) MergeBase(x, y string) (string, error) {
	cx, err := a.repo.CommitObject(plumbing.NewHash(x))
	if err != nil {
		return "", fmt.Errorf("%w: merge-base commit %s: %v", errs.ErrStore, x, err)
	}
	cy, err := a.repo.CommitObject(plumbing.NewHash(y))
	if err != nil {
		return "", fmt.Errorf("%w: merge-base commit %s: %v", errs.ErrStore, y, err)
	}
	bases, err := cx.MergeBase(cy)
	if err != nil || len(bases) == 0 {
		return "", fmt.Errorf("%w: no merge base between %s and %s", errs.ErrStore, x, y)
	}
	return bases[0].Hash.String(), nil
}

// RevList walks commits in (base, head] topologically and time-ordered,
// oldest first.
func (a *Adapter) RevList(head, base string) ([]string, error) {
	baseHash := plumbing.NewHash(base)
	iter, err := a.repo.Log(&git.LogOptions{
		From:  plumbing.NewHash(head),
		Order: git.LogOrderCommitterTime,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: log: %v", errs.ErrStore, err)
	}
	defer iter.Close()

	var ids []string
	err = iter.ForEach(func(c *object.Commit) error {
		if c.Hash == baseHash {
			return storerStop
		}
		ids = append(ids, c.Hash.String())
		return nil
	})
	if err != nil && err != storerStop {
		return nil, fmt.Errorf("%w: rev-list: %v", errs.ErrStore, err)
	}
	// iter.ForEach walks newest-first; reverse to oldest-first.
	for i, j := 0, len(ids)-1; i < j; i, j = i+1, j-1 {
		ids[i], ids[j] = ids[j], ids[i]
	}
	return ids, nil
}

var storerStop = fmt.Errorf("stop")

func (a *Adapter) NewRebase() store.RebaseEngine {
	return newEngine(a)
}

func (a *Adapter) HasIndexLock() (bool, error) {
	// go-git repositories opened with PlainOpen keep the .git
	// directory on disk at <dir>/.git; the lockfile convention is
	// the same as command-line git's.
	gitDir := filepath.Join(a.dir, ".git")
	if fi, err := os.Stat(gitDir); err == nil && !fi.IsDir() {
		// .git is a gitfile (submodule); resolve it the way
		// command-line git does, with a "gitdir: <path>" pointer.
		if resolved, ok := resolveGitFile(gitDir); ok {
			gitDir = resolved
		}
	}
	_, err := os.Stat(filepath.Join(gitDir, "index.lock"))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("%w: stat index.lock: %v", errs.ErrStore, err)
}

func resolveGitFile(path string) (string, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	const prefix = "gitdir: "
	s := strings.TrimSpace(string(data))
	if !strings.HasPrefix(s, prefix) {
		return "", false
	}
	return strings.TrimPrefix(s, prefix), true
}

// --- Workspace ---

func (a *Adapter) Diff() ([]store.DiffEntry, error) {
	status, err := a.wt.Status()
	if err != nil {
		return nil, fmt.Errorf("%w: status: %v", errs.ErrStore, err)
	}
	idx, err := a.repo.Storer.Index()
	if err != nil {
		return nil, fmt.Errorf("%w: index: %v", errs.ErrStore, err)
	}
	entryByPath := make(map[string]*index.Entry, len(idx.Entries))
	for _, e := range idx.Entries {
		entryByPath[e.Name] = e
	}

	var out []store.DiffEntry
	for path, fs := range status {
		if fs.Worktree == git.Unmodified && fs.Staging == git.Unmodified {
			continue
		}
		d := store.DiffEntry{Path: path, Status: deltaStatus(fs)}
		if e, ok := entryByPath[path]; ok {
			d.OldID = e.Hash.String()
		}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}

func deltaStatus(fs git.FileStatus) store.DeltaStatus {
	switch fs.Worktree {
	case git.Added:
		return store.DeltaAdded
	case git.Deleted:
		return store.DeltaDeleted
	case git.Unmodified:
		if fs.Staging == git.Added {
			return store.DeltaAdded
		}
		return store.DeltaModified
	default:
		return store.DeltaModified
	}
}

// UpdateAllAndAdd re-stages paths at their current on-disk (or, for a
// submodule path, current-HEAD) content.
func (a *Adapter) UpdateAllAndAdd(paths []string) error {
	idx, err := a.repo.Storer.Index()
	if err != nil {
		return fmt.Errorf("%w: index: %v", errs.ErrStore, err)
	}
	for _, p := range paths {
		if sub, err := a.submoduleHash(p); err == nil {
			setIndexGitlink(idx, p, sub)
			continue
		}
		if _, err := a.wt.Add(p); err != nil {
			return fmt.Errorf("%w: add %s: %v", errs.ErrStore, p, err)
		}
	}
	return a.repo.Storer.SetIndex(idx)
}

func (a *Adapter) submoduleHash(path string) (plumbing.Hash, error) {
	subs, err := a.wt.Submodules()
	if err != nil {
		return plumbing.ZeroHash, err
	}
	for _, s := range subs {
		if s.Config().Path == path {
			status, err := s.Status()
			if err != nil {
				return plumbing.ZeroHash, err
			}
			return status.Current, nil
		}
	}
	return plumbing.ZeroHash, fmt.Errorf("not a submodule")
}

func setIndexGitlink(idx *index.Index, path string, hash plumbing.Hash) {
	for _, e := range idx.Entries {
		if e.Name == path {
			e.Hash = hash
			e.Mode = filemode.Submodule
			return
		}
	}
	idx.Entries = append(idx.Entries, &index.Entry{
		Name: path,
		Hash: hash,
		Mode: filemode.Submodule,
	})
}

func (a *Adapter) Reset(commitID string, mode store.ResetMode) error {
	m := git.MixedReset
	if mode == store.ResetHard {
		m = git.HardReset
	}
	err := a.wt.Reset(&git.ResetOptions{Commit: plumbing.NewHash(commitID), Mode: m})
	if err != nil {
		return fmt.Errorf("%w: reset %s: %v", errs.ErrStore, commitID, err)
	}
	return nil
}

func (a *Adapter) SetHead(refName string) error {
	ref := plumbing.NewSymbolicReference(plumbing.HEAD, plumbing.ReferenceName(refName))
	if err := a.repo.Storer.SetReference(ref); err != nil {
		return fmt.Errorf("%w: set-head %s: %v", errs.ErrStore, refName, err)
	}
	return nil
}

func (a *Adapter) SetHeadDetached(commitID string) error {
	ref := plumbing.NewHashReference(plumbing.HEAD, plumbing.NewHash(commitID))
	if err := a.repo.Storer.SetReference(ref); err != nil {
		return fmt.Errorf("%w: set-head-detached %s: %v", errs.ErrStore, commitID, err)
	}
	return nil
}

func (a *Adapter) Signature() store.Signature {
	cfg, err := a.repo.ConfigScoped(config.GlobalScope)
	if err != nil || cfg.User.Name == "" {
		return store.Signature{Name: "git-subrebase", Email: "git-subrebase@localhost", When: time.Now()}
	}
	return store.Signature{Name: cfg.User.Name, Email: cfg.User.Email, When: time.Now()}
}

// --- Submodules ---

func (a *Adapter) Submodules() ([]store.Submodule, error) {
	subs, err := a.wt.Submodules()
	if err != nil {
		return nil, fmt.Errorf("%w: submodules: %v", errs.ErrStore, err)
	}
	out := make([]store.Submodule, 0, len(subs))
	for _, s := range subs {
		out = append(out, &submoduleAdapter{sub: s, parentDir: a.dir})
	}
	return out, nil
}

func (a *Adapter) SubmoduleAtTree(sub store.Submodule, treeID string) (string, bool, error) {
	var found string
	err := a.WalkTree(treeID, func(e store.TreeEntry) error {
		if found != "" {
			return nil
		}
		if e.Kind == store.EntryCommit && e.Path == sub.Path() {
			found = e.ID
		}
		return nil
	})
	if err != nil {
		return "", false, err
	}
	return found, found != "", nil
}

type submoduleAdapter struct {
	sub       *git.Submodule
	parentDir string
}

func (s *submoduleAdapter) Name() string { return s.sub.Config().Name }
func (s *submoduleAdapter) Path() string { return s.sub.Config().Path }

func (s *submoduleAdapter) Open() (store.Repo, error) {
	status, err := s.sub.Status()
	if err != nil {
		return nil, fmt.Errorf("%w: submodule status %s: %v", errs.ErrStore, s.Name(), err)
	}
	if status.Current.IsZero() {
		return nil, fmt.Errorf("%w: submodule %s not initialized", errs.ErrStore, s.Name())
	}
	repo, err := s.sub.Repository()
	if err != nil {
		return nil, fmt.Errorf("%w: submodule repository %s: %v", errs.ErrStore, s.Name(), err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("%w: submodule worktree %s: %v", errs.ErrStore, s.Name(), err)
	}
	return &Adapter{dir: wt.Filesystem.Root(), repo: repo, wt: wt}, nil
}

// IsEmptyDir reports whether the submodule's working directory exists
// and is empty, as opposed to containing files that simply didn't add
// up to a valid git checkout.
func (s *submoduleAdapter) IsEmptyDir() (bool, error) {
	dir := filepath.Join(s.parentDir, s.Path())
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return true, nil
		}
		return false, fmt.Errorf("%w: read-dir %s: %v", errs.ErrStore, dir, err)
	}
	return len(entries) == 0, nil
}

// Update shells out to `git submodule update --init --recursive <name>`
// rather than go-git's own (network-unaware) SubmoduleUpdateOptions,
// since a cold submodule needs the real git binary's clone/fetch
// machinery.
func (s *submoduleAdapter) Update(ctx context.Context, init, recursive bool) (string, string, error) {
	args := []string{"submodule", "update"}
	if init {
		args = append(args, "--init")
	}
	if recursive {
		args = append(args, "--recursive")
	}
	args = append(args, s.Name())

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = s.parentDir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	if err != nil {
		return stdout.String(), stderr.String(), fmt.Errorf("%w: submodule update %s: %v", errs.ErrStore, s.Name(), err)
	}
	return stdout.String(), stderr.String(), nil
}

func (s *submoduleAdapter) Sync() error {
	if err := s.sub.Sync(); err != nil {
		return fmt.Errorf("%w: submodule sync %s: %v", errs.ErrStore, s.Name(), err)
	}
	return nil
}

func (s *submoduleAdapter) Reload() error { return nil }
