package rebase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/apenwarr/git-subrebase/internal/errs"
	"github.com/apenwarr/git-subrebase/internal/forest"
	"github.com/apenwarr/git-subrebase/internal/prompt"
	"github.com/apenwarr/git-subrebase/internal/store"
)

// Driver visits every forest.Node post-order and rebases it onto the
// node's target commit, substituting submodule pointers between replay
// steps so that each rewritten commit in a parent repository references
// the corresponding rewritten commit of every child.
type Driver struct {
	Prompt prompt.Prompter
	Signer store.CommitSigner
}

// Visit is a forest.Visitor[*ForestResult]; pass it to forest.Walk.
func (d *Driver) Visit(ctx context.Context, node forest.Node, children map[string]*ForestResult) (*ForestResult, error) {
	log := logrus.WithField("path", forest.NodePath(node.Path))
	repo := node.Repo
	target := node.Target

	entry, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: head: %v", errs.ErrStore, forest.NodePath(node.Path), err)
	}

	subsByName, subsByPath, err := submoduleIndex(repo)
	if err != nil {
		return nil, err
	}

	// Step 1: back up HEAD and plant the four marker branches there.
	backupName := fmt.Sprintf("backup/%s_%s", entry.Short, time.Now().Format("15-04-05"))
	if err := repo.CreateBranch(backupName, entry.CommitID, true); err != nil {
		return nil, err
	}
	for _, m := range AllMarkers {
		if err := repo.CreateBranch(m, entry.CommitID, true); err != nil {
			return nil, err
		}
	}
	if err := repo.SetHead(markerRefName(MarkerNew)); err != nil {
		return nil, err
	}
	log.WithField("backup", backupName).Info("backed up HEAD")

	// Step 2: snapshot every child's entry HEAD ref, so step 7 can put
	// each child's working copy back the way it found it.
	childEntryRefs := make(map[string]store.Ref, len(subsByName))
	for name := range children {
		sub, ok := subsByName[name]
		if !ok {
			continue
		}
		childRepo, err := sub.Open()
		if err != nil {
			return nil, fmt.Errorf("%w: reopen child %s: %v", errs.ErrStore, name, err)
		}
		ref, err := childRepo.Head()
		if err != nil {
			return nil, fmt.Errorf("%w: child %s head: %v", errs.ErrStore, name, err)
		}
		childEntryRefs[name] = ref
	}

	result := newForestResult()
	result.Children = children

	// Step 3: fast paths.
	if entry.CommitID == target {
		result.Commits[target] = target
		if err := restoreHead(repo, entry); err != nil {
			return nil, err
		}
		return result, nil
	}

	base, err := repo.MergeBase(entry.CommitID, target)
	if err != nil {
		return nil, err
	}
	if base == target {
		ids, err := repo.RevList(entry.CommitID, base)
		if err != nil {
			return nil, err
		}
		result.Commits[base] = base
		for _, id := range ids {
			result.Commits[id] = id
		}
		if err := restoreHead(repo, entry); err != nil {
			return nil, err
		}
		return result, nil
	}
	result.Commits[base] = target

	// Step 4: start the replay, retrying through conflicts the way the
	// original lets the user fix the working tree and press ENTER.
	engine := repo.NewRebase()
	for {
		err := engine.Start(ctx, entry.CommitID, base, target)
		if err == nil {
			break
		}
		if !errors.Is(err, errs.ErrConflict) {
			return nil, err
		}
		if perr := d.Prompt.PressEnter("resolve the conflict, then press ENTER to retry"); perr != nil {
			return nil, perr
		}
	}

	// Step 5: fold any already-dirty index entries (typically a
	// submodule left pointing somewhere other than its pre-rebase
	// pin) into the starting point before the first replay step.
	if err := d.cleanIndex(repo, subsByPath); err != nil {
		return nil, err
	}

	// Step 6: the replay loop.
	for {
		origID, ok, err := engine.Next(ctx)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		if err := repo.CreateBranch(MarkerTrack, origID, true); err != nil {
			return nil, err
		}

		tree, err := repo.Tree(origID)
		if err != nil {
			return nil, err
		}
		if err := d.fixupSubmodules(ctx, repo, entry.CommitID, tree, subsByName, result); err != nil {
			return nil, err
		}

		var newID string
		var outcome store.RebaseOutcome
		for {
			newID, outcome, err = engine.Commit(ctx, d.Signer)
			if err == nil && outcome != store.RebaseConflict {
				break
			}
			if err != nil && !errors.Is(err, errs.ErrConflict) {
				return nil, err
			}
			if perr := d.Prompt.PressEnter("resolve the conflict, then press ENTER to retry"); perr != nil {
				return nil, perr
			}
		}
		result.Commits[origID] = newID
		if outcome == store.RebaseAlreadyApplied {
			log.WithField("commit", origID).Debug("already applied, skipped")
		}
	}
	if err := engine.Finish(ctx); err != nil {
		return nil, err
	}

	// Step 7: restore this node's own HEAD and every child's HEAD to
	// where step 1/2 found them; the finalize pass is what later
	// advances the original branch onto the rebased history.
	if err := restoreHead(repo, entry); err != nil {
		return nil, err
	}
	if err := repo.Reset(entry.CommitID, store.ResetHard); err != nil {
		return nil, err
	}
	for name, ref := range childEntryRefs {
		sub, ok := subsByName[name]
		if !ok {
			continue
		}
		childRepo, err := sub.Open()
		if err != nil {
			return nil, err
		}
		if err := restoreHead(childRepo, ref); err != nil {
			return nil, err
		}
		if err := childRepo.Reset(ref.CommitID, store.ResetHard); err != nil {
			return nil, err
		}
	}

	return result, nil
}

func submoduleIndex(repo store.Repo) (byName map[string]store.Submodule, byPath map[string]store.Submodule, err error) {
	subs, err := repo.Submodules()
	if err != nil {
		return nil, nil, err
	}
	byName = make(map[string]store.Submodule, len(subs))
	byPath = make(map[string]store.Submodule, len(subs))
	for _, s := range subs {
		byName[s.Name()] = s
		byPath[s.Path()] = s
	}
	return byName, byPath, nil
}

// cleanIndex folds every submodule path the worktree status already
// reports as dirty against the index back in before the first replay
// step runs (other dirty paths are left alone), so a
// submodule left pointing at a stale commit (from a previous interrupted
// run, or simply from having been checked out) doesn't leak into the
// rebased history.
func (d *Driver) cleanIndex(repo store.Repo, subsByPath map[string]store.Submodule) error {
	diffs, err := repo.Diff()
	if err != nil {
		return err
	}
	var dirty []string
	for _, entry := range diffs {
		if entry.Status == store.DeltaUnmodified {
			continue
		}
		sub, ok := subsByPath[entry.Path]
		if !ok {
			continue
		}
		childRepo, err := sub.Open()
		if err != nil {
			return err
		}
		if err := childRepo.SetHead(markerRefName(MarkerCur)); err != nil {
			return err
		}
		if entry.OldID != "" {
			if err := childRepo.Reset(entry.OldID, store.ResetHard); err != nil {
				return err
			}
		}
		dirty = append(dirty, entry.Path)
	}
	if len(dirty) == 0 {
		return nil
	}
	return repo.UpdateAllAndAdd(dirty)
}

// fixupSubmodules substitutes, for every submodule pinned in the
// replayed commit's tree, the rebased commit corresponding to its
// original pin. A submodule that has no known child result yet (it
// wasn't part of the pre-collected forest because this node's target
// tree does not pin it) is rebased on the spot by adoptNewSubmodule.
// Only submodules in subsByName are considered, and one that is not
// pinned in the replayed commit's tree is skipped for that commit.
func (d *Driver) fixupSubmodules(
	ctx context.Context,
	repo store.Repo,
	entryCommitID string,
	tree string,
	subsByName map[string]store.Submodule,
	result *ForestResult,
) error {
	for name, sub := range subsByName {
		expected, present, err := repo.SubmoduleAtTree(sub, tree)
		if err != nil {
			return err
		}
		if !present {
			continue
		}

		childResult, known := result.Children[name]
		if !known {
			childResult, err = d.adoptNewSubmodule(ctx, repo, sub, entryCommitID, expected)
			if err != nil {
				return err
			}
			result.Children[name] = childResult
		}

		want := expected
		if converted, ok := childResult.Commits[expected]; ok {
			want = converted
		}

		childRepo, err := sub.Open()
		if err != nil {
			stdout, stderr, uerr := sub.Update(ctx, true, true)
			if uerr != nil {
				return fmt.Errorf("%w: submodule %s: update: %v (%s / %s)", errs.ErrMissingChild, name, uerr, stdout, stderr)
			}
			childRepo, err = sub.Open()
			if err != nil {
				return fmt.Errorf("%w: submodule %s still will not open: %v", errs.ErrMissingChild, name, err)
			}
		}

		headCommit, err := d.resolveChildHead(childRepo)
		if err != nil {
			return err
		}
		if headCommit == want {
			continue
		}

		if err := childRepo.SetHead(markerRefName(MarkerCur)); err != nil {
			return err
		}
		if err := childRepo.Reset(want, store.ResetHard); err != nil {
			return err
		}
		if err := repo.UpdateAllAndAdd([]string{sub.Path()}); err != nil {
			return err
		}
	}
	return nil
}

// resolveChildHead returns the child's current HEAD commit, prompting
// the user to pick a branch if the child somehow ended up detached with
// no recorded commit to compare against.
func (d *Driver) resolveChildHead(childRepo store.Repo) (string, error) {
	for {
		ref, err := childRepo.Head()
		if err == nil && ref.CommitID != "" {
			return ref.CommitID, nil
		}
		branches, berr := childRepo.ListBranches(store.ScopeLocal)
		if berr != nil {
			return "", berr
		}
		names := make([]string, len(branches))
		for i, b := range branches {
			names[i] = b.Short
		}
		idx, merr := d.Prompt.Menu("submodule HEAD is detached; pick a branch", names)
		if merr != nil {
			return "", fmt.Errorf("%w: %v", errs.ErrChildDetached, merr)
		}
		if err := childRepo.SetHead(branches[idx].Name); err != nil {
			return "", err
		}
	}
}

// adoptNewSubmodule handles a submodule pinned in a replayed commit's
// tree that has no entry in the forest's pre-collected child results,
// because this node's target tree does not pin it (it was added
// somewhere within the rebase range itself). It reads the submodule's
// pin at the node's own entry tree -- the newest, still-unrebased state
// of the submodule -- detaches the submodule there, and rebases it onto
// targetHeadPin, the pin recorded in the commit currently being
// replayed. The resulting ForestResult lets fixupSubmodules translate
// that pin, and any other pin from the same submodule encountered later
// in this replay, into its rebased counterpart.
func (d *Driver) adoptNewSubmodule(ctx context.Context, repo store.Repo, sub store.Submodule, entryCommitID, targetHeadPin string) (*ForestResult, error) {
	name := sub.Name()

	entryTree, err := repo.Tree(entryCommitID)
	if err != nil {
		return nil, fmt.Errorf("%w: submodule %s: entry tree: %v", errs.ErrMissingChild, name, err)
	}
	finalPin, finalPresent, err := repo.SubmoduleAtTree(sub, entryTree)
	if err != nil {
		return nil, fmt.Errorf("%w: submodule %s: pin at entry tree: %v", errs.ErrMissingChild, name, err)
	}
	if !finalPresent {
		return nil, fmt.Errorf("%w: cannot rebase newly added submodule %s: not pinned at HEAD", errs.ErrMissingChild, name)
	}

	childRepo, err := sub.Open()
	if err != nil {
		stdout, stderr, uerr := sub.Update(ctx, true, true)
		if uerr != nil {
			return nil, fmt.Errorf("%w: submodule %s: %v (%s / %s)", errs.ErrMissingChild, name, uerr, stdout, stderr)
		}
		childRepo, err = sub.Open()
		if err != nil {
			return nil, fmt.Errorf("%w: submodule %s: %v", errs.ErrMissingChild, name, err)
		}
	}

	if err := childRepo.SetHeadDetached(finalPin); err != nil {
		return nil, fmt.Errorf("%w: submodule %s: detach to %s: %v", errs.ErrMissingChild, name, finalPin, err)
	}

	childResult, err := forest.Walk(ctx, childRepo, targetHeadPin, d.Visit)
	if err != nil {
		return nil, err
	}
	return childResult, nil
}
