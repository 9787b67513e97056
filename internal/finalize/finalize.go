// Package finalize lands the result of a rebase: once every forest node
// has replayed successfully, it advances each node's original branch
// onto its multi_rebase_new marker and deletes the four markers; if
// anything failed partway through, it restores every node from
// multi_rebase_old instead. Backup branches created during the run are
// never touched by either path.
package finalize

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/apenwarr/git-subrebase/internal/errs"
	"github.com/apenwarr/git-subrebase/internal/forest"
	"github.com/apenwarr/git-subrebase/internal/rebase"
	"github.com/apenwarr/git-subrebase/internal/store"
)

// Plan is the snapshot finalize needs per node: the branch name the
// node's HEAD pointed at on entry (empty if it was detached) and the
// commit id HEAD pointed at on entry.
type Plan struct {
	Branch  string
	EntryID string
}

// Success walks the forest and, at every node, moves Plan.Branch to
// point at the multi_rebase_new marker, then deletes all four markers.
// A node whose entry HEAD was detached is left on multi_rebase_new's
// commit with no branch to advance.
func Success(ctx context.Context, repo store.Repo, target string, plans map[string]Plan) error {
	_, err := forest.Walk(ctx, repo, target, func(ctx context.Context, node forest.Node, _ map[string]struct{}) (struct{}, error) {
		return struct{}{}, applyAt(node.Repo, node.Path, plans, true)
	})
	return err
}

// Rollback walks the forest and, at every node, restores Plan.Branch
// (or just resets if it was detached) to multi_rebase_old's commit --
// the pre-rebase state recorded before any replay began -- then deletes
// all four markers.
func Rollback(ctx context.Context, repo store.Repo, target string, plans map[string]Plan) error {
	_, err := forest.Walk(ctx, repo, target, func(ctx context.Context, node forest.Node, _ map[string]struct{}) (struct{}, error) {
		return struct{}{}, applyAt(node.Repo, node.Path, plans, false)
	})
	return err
}

func applyAt(repo store.Repo, path []string, plans map[string]Plan, success bool) error {
	log := logrus.WithField("path", forest.NodePath(path))
	plan, ok := plans[forest.NodePath(path)]
	if !ok {
		return fmt.Errorf("%w: no finalize plan recorded for %s", errs.ErrStore, forest.NodePath(path))
	}

	marker := rebase.MarkerOld
	if success {
		marker = rebase.MarkerNew
	}
	ref, found, err := repo.FindBranch(marker, store.ScopeLocal)
	if err != nil {
		return err
	}
	if !found {
		// This node never reached marker creation (or a previous run
		// already finalized it and cleaned the markers up): nothing
		// to do here.
		log.Debug("no markers found, already up to date")
		return nil
	}

	if plan.Branch != "" {
		if err := repo.CreateBranch(plan.Branch, ref.CommitID, true); err != nil {
			return err
		}
		if err := repo.SetHead("refs/heads/" + plan.Branch); err != nil {
			return err
		}
	} else {
		if err := repo.SetHeadDetached(ref.CommitID); err != nil {
			return err
		}
	}
	if err := repo.Reset(ref.CommitID, store.ResetHard); err != nil {
		return err
	}

	for _, m := range rebase.AllMarkers {
		if err := repo.DeleteRef(m); err != nil {
			return err
		}
	}

	if success {
		log.Info("finalized")
	} else {
		log.Warn("rolled back")
	}
	return nil
}

// PlansFromEntry builds the finalize.Plan map from the same pre-replay
// HEAD snapshot the rebase driver takes at step 1/2, one entry per
// forest node.
func PlansFromEntry(ctx context.Context, repo store.Repo, target string) (map[string]Plan, error) {
	plans := map[string]Plan{}
	_, err := forest.Walk(ctx, repo, target, func(ctx context.Context, node forest.Node, _ map[string]struct{}) (struct{}, error) {
		ref, err := node.Repo.Head()
		if err != nil {
			return struct{}{}, err
		}
		p := Plan{EntryID: ref.CommitID}
		if !ref.IsHEAD {
			p.Branch = ref.Short
		}
		plans[forest.NodePath(node.Path)] = p
		return struct{}{}, nil
	})
	return plans, err
}
