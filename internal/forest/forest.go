// Package forest implements the post-order submodule-forest traversal
// that every other pass of this tool builds on: a generic recursive walk
// over the nested repository tree rooted at a target commit, collecting
// each child's result into a name-keyed map before invoking a Visitor on
// the parent.
package forest

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/apenwarr/git-subrebase/internal/errs"
	"github.com/apenwarr/git-subrebase/internal/store"
)

// Node describes one repository in the forest at the point the Visitor
// is invoked.
type Node struct {
	Repo      store.Repo
	Submodule store.Submodule // nil at the root
	Target    string          // commit id this node is being driven toward
	Path      []string        // path-from-root, e.g. ["vendor", "widget"]
}

// NodePath renders a forest path for logging and error messages:
// "*root*" for the root, "a/b/c" for nested nodes.
func NodePath(path []string) string {
	if len(path) == 0 {
		return "*root*"
	}
	return strings.Join(path, "/")
}

// Visitor is applied to a node after every child has been visited and
// its result collected. childResults is keyed by submodule name (the
// name declared in .gitmodules, not the filesystem path).
type Visitor[T any] func(ctx context.Context, node Node, childResults map[string]T) (T, error)

// Walk performs the post-order forest traversal: every submodule is
// visited before the repository that contains it.
func Walk[T any](ctx context.Context, repo store.Repo, target string, visit Visitor[T]) (T, error) {
	return walk(ctx, repo, nil, target, nil, visit, map[string]bool{})
}

func walk[T any](
	ctx context.Context,
	repo store.Repo,
	sub store.Submodule,
	target string,
	path []string,
	visit Visitor[T],
	onChain map[string]bool,
) (T, error) {
	var zero T

	rp := repo.Path()
	if onChain[rp] {
		return zero, fmt.Errorf("%w: submodule cycle detected at %s", errs.ErrStore, NodePath(path))
	}
	onChain[rp] = true
	defer delete(onChain, rp)

	log := logrus.WithField("path", NodePath(path))

	subs, err := repo.Submodules()
	if err != nil {
		return zero, fmt.Errorf("%w: submodules(%s): %v", errs.ErrStore, NodePath(path), err)
	}

	targetTree, err := repo.Tree(target)
	if err != nil {
		return zero, fmt.Errorf("%w: tree(%s): %v", errs.ErrStore, target, err)
	}

	childResults := make(map[string]T, len(subs))
	for _, s := range subs {
		childTarget, present, terr := repo.SubmoduleAtTree(s, targetTree)
		if terr != nil {
			return zero, fmt.Errorf("%w: submodule-at-tree(%s): %v", errs.ErrStore, s.Name(), terr)
		}

		childRepo, err := openOrInit(ctx, s, present, log)
		if err != nil {
			return zero, err
		}
		if childRepo == nil {
			// Either the submodule directory can't be opened but
			// the parent's target tree no longer pins it here
			// (silently skipped), or the target tree simply
			// doesn't pin it at all.
			continue
		}
		if !present {
			continue
		}

		childPath := append(append([]string{}, path...), s.Name())
		res, err := walk(ctx, childRepo, s, childTarget, childPath, visit, onChain)
		if err != nil {
			return zero, err
		}
		childResults[s.Name()] = res
	}

	node := Node{Repo: repo, Submodule: sub, Target: target, Path: path}
	result, err := visit(ctx, node, childResults)
	if err != nil {
		return zero, err
	}
	return result, nil
}

// openOrInit tries to open the submodule; if that fails and the
// directory is empty, shell out to init+recursive update and retry. A
// non-empty directory that fails to open is never handed to the update
// collaborator -- it's left-over content, not an uninitialized
// checkout -- and goes straight to the fatal/skip decision below. If it
// still fails to open, a nil repo with a nil error means "silently skip"
// (present is false: the target tree no longer pins this submodule
// here); present being true makes that same failure fatal.
func openOrInit(ctx context.Context, s store.Submodule, present bool, log *logrus.Entry) (store.Repo, error) {
	childRepo, err := s.Open()
	if err == nil {
		return childRepo, nil
	}

	empty, eerr := s.IsEmptyDir()
	if eerr != nil {
		return nil, fmt.Errorf("%w: submodule %s: check empty dir: %v", errs.ErrStore, s.Name(), eerr)
	}
	if !empty {
		if !present {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: submodule %s failed to open and its directory is not empty: %v", errs.ErrStore, s.Name(), err)
	}

	log.WithField("submodule", s.Name()).Info("submodule directory is empty, attempting update")
	stdout, stderr, uerr := s.Update(ctx, true, true)
	if stdout != "" {
		log.Debug(stdout)
	}
	if stderr != "" {
		log.Debug(stderr)
	}
	if uerr != nil {
		if !present {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: submodule update(%s): %v", errs.ErrStore, s.Name(), uerr)
	}

	childRepo, err = s.Open()
	if err == nil {
		return childRepo, nil
	}

	if !present {
		return nil, nil
	}
	return nil, fmt.Errorf("%w: submodule %s failed to open after update: %v", errs.ErrStore, s.Name(), err)
}
