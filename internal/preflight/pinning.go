// Package preflight checks, before any rebase begins, which nodes of the
// forest are not sitting on a real, named local branch -- a detached
// HEAD, or one of the driver's own marker branches left behind by a
// prior interrupted run -- and pins them to one. A node with submodules
// is flagged only when its own HEAD needs pinning and every one of its
// submodules was flagged too (see detectVisitor); otherwise it is left
// on its current HEAD. It runs in three passes over the forest: detect
// which nodes need fixing up, resolve a branch for each (a Y/n prompt
// for a single candidate, a menu for several), then apply the fix.
package preflight

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/apenwarr/git-subrebase/internal/errs"
	"github.com/apenwarr/git-subrebase/internal/forest"
	"github.com/apenwarr/git-subrebase/internal/prompt"
	"github.com/apenwarr/git-subrebase/internal/rebase"
	"github.com/apenwarr/git-subrebase/internal/store"
)

// needsCheckout reports whether a node's HEAD is unnamed (truly
// detached) or sitting on one of the driver's marker branches.
func needsCheckout(ref store.Ref) bool {
	if ref.IsHEAD {
		return true
	}
	short := ref.Short
	return short == rebase.MarkerOld || short == rebase.MarkerCur ||
		short == rebase.MarkerNew || short == rebase.MarkerTrack
}

// Pass A: detect.
//
// A parent node only needs pinning on its own account if, in addition to
// its own HEAD needing it, EVERY child that itself needed pinning was
// successfully resolved -- i.e. propagation up the tree uses `&&`
// between "this node's own HEAD needs checkout" and "every child in
// childResults needed checkout", not `||`. This is the reading under
// which a forest with one already-pinned leaf doesn't spuriously flag
// its ancestors.
func detectVisitor(ctx context.Context, node forest.Node, children map[string]bool) (bool, error) {
	ref, err := node.Repo.Head()
	if err != nil {
		return false, fmt.Errorf("%w: %s: head: %v", errs.ErrStore, forest.NodePath(node.Path), err)
	}
	own := needsCheckout(ref)
	if len(children) == 0 {
		return own, nil
	}
	allChildren := true
	for _, v := range children {
		if !v {
			allChildren = false
			break
		}
	}
	return own && allChildren, nil
}

// Detect runs Pass A over the whole forest and returns, per node path
// (joined with "/", root as "*root*"), whether that node needs pinning.
func Detect(ctx context.Context, repo store.Repo, target string) (map[string]bool, error) {
	needs := map[string]bool{}
	_, err := forest.Walk(ctx, repo, target, func(ctx context.Context, node forest.Node, children map[string]bool) (bool, error) {
		own, err := detectVisitor(ctx, node, children)
		if err != nil {
			return false, err
		}
		needs[forest.NodePath(node.Path)] = own
		return own, nil
	})
	return needs, err
}

// candidate is one of the branch-tier search results of Pass B.
type candidate struct {
	ref        store.Ref
	upstream   string // non-empty if this candidate implies a SetUpstream call
	isFromRemote bool
}

// resolveCandidates implements the tiered branch search:
// 1. a local branch tracking a remote branch at HEAD
// 2. any other local branch at HEAD
// 3. a remote branch at HEAD (to be checked out as a new local branch)
// 4. any local branch at all
func resolveCandidates(repo store.Repo, headCommit string) ([]candidate, error) {
	var tracked, local []candidate

	locals, err := repo.ListBranches(store.ScopeLocal)
	if err != nil {
		return nil, err
	}
	for _, b := range locals {
		if b.CommitID != headCommit {
			continue
		}
		local = append(local, candidate{ref: b})
	}

	remotes, err := repo.ListBranches(store.ScopeRemote)
	if err != nil {
		return nil, err
	}
	var remoteAtHead []candidate
	for _, r := range remotes {
		if r.CommitID != headCommit {
			continue
		}
		remoteAtHead = append(remoteAtHead, candidate{ref: r, isFromRemote: true})
	}

	for _, l := range local {
		upstream, ok, err := repo.Upstream(l.ref.Short)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		for _, r := range remoteAtHead {
			if r.ref.Name == upstream {
				tracked = append(tracked, candidate{ref: l.ref, upstream: r.ref.Name})
			}
		}
	}
	if len(tracked) > 0 {
		return tracked, nil
	}
	if len(local) > 0 {
		return local, nil
	}
	if len(remoteAtHead) > 0 {
		return remoteAtHead, nil
	}

	allLocal, err := repo.ListBranches(store.ScopeLocal)
	if err != nil {
		return nil, err
	}
	out := make([]candidate, len(allLocal))
	for i, b := range allLocal {
		out[i] = candidate{ref: b}
	}
	return out, nil
}

// Resolver chooses, then applies, a checkout for every node Detect
// flagged. It holds the prompter used for Y/n confirmations and the
// numbered "any local branch" fallback menu.
type Resolver struct {
	Prompt prompt.Prompter
}

// Resolve runs Passes B and C together for a single node already known
// (from Detect) to need pinning: it finds a candidate branch, confirms
// it with the user (or presents a menu when the first non-empty tier
// holds more than one candidate), creates a dated backup of the current HEAD, checks
// out the chosen branch, records an upstream if the candidate came from
// a remote-tracking pair, and hard-resets the worktree to match.
func (r *Resolver) Resolve(repo store.Repo, path []string) error {
	log := logrus.WithField("path", forest.NodePath(path))

	ref, err := repo.Head()
	if err != nil {
		return err
	}
	candidates, err := resolveCandidates(repo, ref.CommitID)
	if err != nil {
		return err
	}
	if len(candidates) == 0 {
		return fmt.Errorf("%w: %s: no branch exists at HEAD %s and no local branches exist to choose from",
			errs.ErrPrecondition, forest.NodePath(path), ref.CommitID)
	}

	var chosen candidate
	if len(candidates) == 1 {
		c := candidates[0]
		msg := fmt.Sprintf("check out %s at %s", c.ref.Short, forest.NodePath(path))
		if err := r.Prompt.Confirm(msg); err != nil {
			return err
		}
		chosen = c
	} else {
		names := make([]string, len(candidates))
		for i, c := range candidates {
			names[i] = c.ref.Short
		}
		idx, err := r.Prompt.Menu(fmt.Sprintf("multiple branches match HEAD at %s, pick one", forest.NodePath(path)), names)
		if err != nil {
			return err
		}
		chosen = candidates[idx]
	}

	backupName := fmt.Sprintf("backup/%s_%s", chosen.ref.Short, time.Now().Format("15-04-05"))
	if err := repo.CreateBranch(backupName, ref.CommitID, true); err != nil {
		return err
	}

	if chosen.isFromRemote {
		localName := branchOfRemote(chosen.ref.Short)
		if err := repo.CreateBranch(localName, chosen.ref.CommitID, true); err != nil {
			return err
		}
		if err := repo.SetHead(plainBranchRef(localName)); err != nil {
			return err
		}
		if err := repo.SetUpstream(localName, chosen.ref.Name); err != nil {
			return err
		}
	} else {
		if err := repo.SetHead(plainBranchRef(chosen.ref.Short)); err != nil {
			return err
		}
		if chosen.upstream != "" {
			if err := repo.SetUpstream(chosen.ref.Short, chosen.upstream); err != nil {
				return err
			}
		}
	}

	if err := repo.Reset(ref.CommitID, store.ResetMixed); err != nil {
		return err
	}
	if err := repo.Reset(ref.CommitID, store.ResetHard); err != nil {
		return err
	}
	log.WithField("branch", chosen.ref.Short).Info("pinned HEAD")
	return nil
}

func plainBranchRef(short string) string { return "refs/heads/" + short }

// branchOfRemote strips a leading "<remote>/" from a remote-tracking
// branch's short name, the way `git checkout <remote>/<branch>` picks
// the new local branch's name.
func branchOfRemote(short string) string {
	if i := strings.Index(short, "/"); i >= 0 {
		return short[i+1:]
	}
	return short
}

// ApplyAll walks the forest and applies Resolve at every node Detect
// flagged, post-order like every other forest pass, so a child is
// pinned before its parent. Which nodes get pinned is decided once, by
// Detect, before any node is changed.
func ApplyAll(ctx context.Context, repo store.Repo, target string, r *Resolver) error {
	needs, err := Detect(ctx, repo, target)
	if err != nil {
		return err
	}
	_, err = forest.Walk(ctx, repo, target, func(ctx context.Context, node forest.Node, _ map[string]struct{}) (struct{}, error) {
		if needs[forest.NodePath(node.Path)] {
			if err := r.Resolve(node.Repo, node.Path); err != nil {
				return struct{}{}, err
			}
		}
		return struct{}{}, nil
	})
	return err
}

// CleanupLeftoverMarkers scans the forest for any of the four marker
// branches left behind by a prior run that never reached finalize, and
// -- after a single ENTER confirmation -- deletes all four wherever
// found. Backup branches are never touched.
func CleanupLeftoverMarkers(ctx context.Context, repo store.Repo, target string, p prompt.Prompter) error {
	type hit struct {
		path []string
		repo store.Repo
	}
	var hits []hit

	_, err := forest.Walk(ctx, repo, target, func(ctx context.Context, node forest.Node, _ map[string]struct{}) (struct{}, error) {
		for _, m := range rebase.AllMarkers {
			if _, ok, err := node.Repo.FindBranch(m, store.ScopeLocal); err != nil {
				return struct{}{}, err
			} else if ok {
				hits = append(hits, hit{path: node.Path, repo: node.Repo})
				break
			}
		}
		return struct{}{}, nil
	})
	if err != nil {
		return err
	}
	if len(hits) == 0 {
		return nil
	}

	names := make([]string, len(hits))
	for i, h := range hits {
		names[i] = forest.NodePath(h.path)
	}
	if err := p.PressEnter(fmt.Sprintf(
		"leftover rebase markers found at: %s -- press ENTER to delete them and continue",
		strings.Join(names, ", "))); err != nil {
		return err
	}
	for _, h := range hits {
		for _, m := range rebase.AllMarkers {
			if err := h.repo.DeleteRef(m); err != nil {
				return err
			}
		}
	}
	return nil
}
