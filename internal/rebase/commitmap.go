// Package rebase implements the per-repository rebase driver: for each
// forest node it computes the rebase range, backs up HEAD, replays
// commits, and between replay steps substitutes submodule pointers so
// each new commit references the rebased child commit corresponding to
// the original reference.
package rebase

import "github.com/apenwarr/git-subrebase/internal/store"

// CommitMap maps a pre-rebase commit id to its post-rebase counterpart
// at a single repository node.
type CommitMap map[string]string

// ForestResult is the recursive result carried out of a node: its own
// CommitMap plus, per submodule name, that child's ForestResult.
type ForestResult struct {
	Commits  CommitMap
	Children map[string]*ForestResult
}

func newForestResult() *ForestResult {
	return &ForestResult{Commits: CommitMap{}, Children: map[string]*ForestResult{}}
}

// Marker branch names. These are a cross-package contract: the
// leftover-marker detector in internal/preflight looks for these same
// four names, through these constants.
const (
	MarkerOld   = "multi_rebase_old"
	MarkerCur   = "multi_rebase_cur"
	MarkerNew   = "multi_rebase_new"
	MarkerTrack = "multi_rebase_track"
)

// AllMarkers lists every marker branch name, in a stable order.
var AllMarkers = []string{MarkerOld, MarkerCur, MarkerNew, MarkerTrack}

func markerRefName(name string) string { return "refs/heads/" + name }

// restoreHead points repo's HEAD back at entry's original ref, detaching
// to the commit id if entry was itself detached.
func restoreHead(repo store.Repo, entry store.Ref) error {
	if entry.IsHEAD {
		return repo.SetHeadDetached(entry.CommitID)
	}
	return repo.SetHead(entry.Name)
}
