package gogit

import (
	"context"
	"fmt"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/filemode"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/apenwarr/git-subrebase/internal/errs"
	"github.com/apenwarr/git-subrebase/internal/store"
)

// engine is the concrete store.RebaseEngine built on go-git/v5. go-git
// has no interactive-rebase primitive of its own, so engine replays each
// original commit by copying its tree, applying any submodule-pointer
// overrides the driver has staged in the index since the last step, and
// writing a new commit object directly through the repository's object
// storer.
type engine struct {
	repo *Adapter

	branchRef plumbing.ReferenceName
	ops       []plumbing.Hash
	idx       int
	curOp     plumbing.Hash
	parent    plumbing.Hash
}

func newEngine(a *Adapter) *engine {
	return &engine{repo: a}
}

func (e *engine) Start(ctx context.Context, branch, upstream, onto string) error {
	branchHash := plumbing.NewHash(branch)
	upstreamHash := plumbing.NewHash(upstream)
	ontoHash := plumbing.NewHash(onto)

	ops, err := e.repo.RevList(branchHash.String(), upstreamHash.String())
	if err != nil {
		return err
	}
	e.ops = make([]plumbing.Hash, len(ops))
	for i, id := range ops {
		e.ops[i] = plumbing.NewHash(id)
	}
	e.idx = 0
	e.parent = ontoHash

	ref, err := e.repo.repo.Head()
	if err != nil {
		return fmt.Errorf("%w: rebase start: head: %v", errs.ErrStore, err)
	}
	e.branchRef = ref.Name()

	if err := e.repo.wt.Reset(&git.ResetOptions{Commit: ontoHash, Mode: git.HardReset}); err != nil {
		return fmt.Errorf("%w: rebase start: reset to onto %s: %v", errs.ErrConflict, onto, err)
	}
	return nil
}

func (e *engine) Next(ctx context.Context) (string, bool, error) {
	if e.idx >= len(e.ops) {
		return "", false, nil
	}
	e.curOp = e.ops[e.idx]
	e.idx++
	return e.curOp.String(), true, nil
}

func (e *engine) Commit(ctx context.Context, signer store.CommitSigner) (string, store.RebaseOutcome, error) {
	original, err := e.repo.repo.CommitObject(e.curOp)
	if err != nil {
		return "", 0, fmt.Errorf("%w: rebase commit: load %s: %v", errs.ErrStore, e.curOp, err)
	}

	newTreeHash, err := e.applyIndexOverrides(original.TreeHash)
	if err != nil {
		return "", 0, err
	}

	parentCommit, err := e.repo.repo.CommitObject(e.parent)
	if err != nil {
		return "", 0, fmt.Errorf("%w: rebase commit: load parent %s: %v", errs.ErrStore, e.parent, err)
	}

	if newTreeHash == parentCommit.TreeHash {
		// Empty patch: nothing this commit added survives reparenting.
		return e.parent.String(), store.RebaseAlreadyApplied, nil
	}

	meta := store.CommitMeta{
		OriginalID: e.curOp.String(),
		Author:     signatureOf(original.Author),
		Committer:  e.repo.Signature(),
		Message:    original.Message,
	}
	parents := []string{e.parent.String()}

	newID, passthrough, err := signer.Sign(meta, newTreeHash.String(), parents)
	if err != nil {
		return "", 0, fmt.Errorf("%w: commit signer: %v", errs.ErrStore, err)
	}
	var newHash plumbing.Hash
	if passthrough {
		newHash, err = buildCommit(e.repo.repo.Storer, meta, newTreeHash, parents, "")
		if err != nil {
			return "", 0, err
		}
	} else {
		newHash = plumbing.NewHash(newID)
	}

	ref := plumbing.NewHashReference(e.branchRef, newHash)
	if err := e.repo.repo.Storer.SetReference(ref); err != nil {
		return "", 0, fmt.Errorf("%w: advance %s: %v", errs.ErrStore, e.branchRef, err)
	}
	if err := e.repo.wt.Reset(&git.ResetOptions{Commit: newHash, Mode: git.HardReset}); err != nil {
		return "", 0, fmt.Errorf("%w: checkout rebased commit %s: %v", errs.ErrStore, newHash, err)
	}

	e.parent = newHash
	return newHash.String(), store.RebaseOK, nil
}

func (e *engine) Finish(ctx context.Context) error {
	return nil
}

// applyIndexOverrides rewrites original's tree with whatever submodule
// gitlink entries the driver has staged into the index (via
// Workspace.UpdateAllAndAdd) that differ from the tree's own entries.
func (e *engine) applyIndexOverrides(origTree plumbing.Hash) (plumbing.Hash, error) {
	idx, err := e.repo.repo.Storer.Index()
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("%w: index: %v", errs.ErrStore, err)
	}

	result := origTree
	for _, entry := range idx.Entries {
		if entry.Mode != filemode.Submodule {
			continue
		}
		cur, err := currentEntryHash(e.repo.repo.Storer, result, entry.Name)
		if err != nil {
			return plumbing.ZeroHash, err
		}
		if cur == entry.Hash {
			continue
		}
		result, err = overridePath(e.repo.repo.Storer, result, entry.Name, entry.Hash, filemode.Submodule)
		if err != nil {
			return plumbing.ZeroHash, err
		}
	}
	return result, nil
}

// currentEntryHash looks up the hash currently recorded for path inside
// treeHash, returning plumbing.ZeroHash if the path isn't present yet.
func currentEntryHash(s interface {
	EncodedObject(plumbing.ObjectType, plumbing.Hash) (plumbing.EncodedObject, error)
}, treeHash plumbing.Hash, path string) (plumbing.Hash, error) {
	obj, err := s.EncodedObject(plumbing.TreeObject, treeHash)
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("%w: load tree %s: %v", errs.ErrStore, treeHash, err)
	}
	tree := object.Tree{}
	if err := tree.Decode(obj); err != nil {
		return plumbing.ZeroHash, fmt.Errorf("%w: decode tree %s: %v", errs.ErrStore, treeHash, err)
	}
	entry, err := tree.FindEntry(path)
	if err != nil {
		return plumbing.ZeroHash, nil
	}
	return entry.Hash, nil
}

func signatureOf(sig object.Signature) store.Signature {
	return store.Signature{Name: sig.Name, Email: sig.Email, When: sig.When}
}

// buildCommit writes a plain, unsigned commit object -- the default
// commit creation used whenever the configured signer passes through --
// directly via the object storer.
func buildCommit(s interface {
	NewEncodedObject() plumbing.EncodedObject
	SetEncodedObject(plumbing.EncodedObject) (plumbing.Hash, error)
}, meta store.CommitMeta, treeHash plumbing.Hash, parents []string, gpgsig string) (plumbing.Hash, error) {
	c := &object.Commit{
		Author:       object.Signature{Name: meta.Author.Name, Email: meta.Author.Email, When: meta.Author.When},
		Committer:    object.Signature{Name: meta.Committer.Name, Email: meta.Committer.Email, When: meta.Committer.When},
		TreeHash:     treeHash,
		Message:      meta.Message,
		PGPSignature: gpgsig,
	}
	for _, p := range parents {
		c.ParentHashes = append(c.ParentHashes, plumbing.NewHash(p))
	}

	enc := s.NewEncodedObject()
	if err := c.Encode(enc); err != nil {
		return plumbing.ZeroHash, fmt.Errorf("%w: encode commit: %v", errs.ErrStore, err)
	}
	hash, err := s.SetEncodedObject(enc)
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("%w: store commit: %v", errs.ErrStore, err)
	}
	return hash, nil
}
