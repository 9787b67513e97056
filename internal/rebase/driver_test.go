package rebase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/apenwarr/git-subrebase/internal/forest"
	"github.com/apenwarr/git-subrebase/internal/prompt"
	"github.com/apenwarr/git-subrebase/internal/rebase"
	"github.com/apenwarr/git-subrebase/internal/store"
	"github.com/apenwarr/git-subrebase/internal/store/storemock"
)

// noPrompt fails the test if the driver ever needs to ask the user
// anything; the fixtures below never produce a conflict.
type noPrompt struct{ t *testing.T }

func (n noPrompt) Confirm(string) error                { n.t.Fatal("unexpected Confirm"); return nil }
func (n noPrompt) Menu(string, []string) (int, error)   { n.t.Fatal("unexpected Menu"); return 0, nil }
func (n noPrompt) PressEnter(string) error              { n.t.Fatal("unexpected PressEnter"); return nil }

var _ prompt.Prompter = noPrompt{}

func TestDriver_Visit_HeadAlreadyAtTarget(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := storemock.NewMockRepo(ctrl)

	head := store.Ref{Name: "refs/heads/main", Short: "main", CommitID: "c1"}
	repo.EXPECT().Head().Return(head, nil)
	repo.EXPECT().Submodules().Return(nil, nil)

	repo.EXPECT().CreateBranch(gomock.Any(), "c1", true).Return(nil).Times(5) // backup + 4 markers
	repo.EXPECT().SetHead("refs/heads/multi_rebase_new").Return(nil)
	repo.EXPECT().SetHead("refs/heads/main").Return(nil)

	d := &rebase.Driver{Prompt: noPrompt{t: t}, Signer: nil}
	node := forest.Node{Repo: repo, Target: "c1", Path: nil}

	result, err := d.Visit(context.Background(), node, map[string]*rebase.ForestResult{})
	require.NoError(t, err)
	assert.Equal(t, "c1", result.Commits["c1"])
}

func TestDriver_Visit_FastForward(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := storemock.NewMockRepo(ctrl)

	head := store.Ref{Name: "refs/heads/main", Short: "main", CommitID: "new"}
	repo.EXPECT().Head().Return(head, nil)
	repo.EXPECT().Submodules().Return(nil, nil)
	repo.EXPECT().CreateBranch(gomock.Any(), "new", true).Return(nil).Times(5)
	repo.EXPECT().SetHead("refs/heads/multi_rebase_new").Return(nil)
	repo.EXPECT().MergeBase("new", "old").Return("old", nil)
	repo.EXPECT().RevList("new", "old").Return([]string{"mid", "new"}, nil)
	repo.EXPECT().SetHead("refs/heads/main").Return(nil)

	d := &rebase.Driver{Prompt: noPrompt{t: t}, Signer: nil}
	node := forest.Node{Repo: repo, Target: "old", Path: nil}

	result, err := d.Visit(context.Background(), node, map[string]*rebase.ForestResult{})
	require.NoError(t, err)
	assert.Equal(t, "old", result.Commits["old"])
	assert.Equal(t, "mid", result.Commits["mid"])
	assert.Equal(t, "new", result.Commits["new"])
}

func TestDriver_Visit_FullReplay_OneCommit_NoSubmodules(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := storemock.NewMockRepo(ctrl)
	engine := storemock.NewMockRebaseEngine(ctrl)

	head := store.Ref{Name: "refs/heads/main", Short: "main", CommitID: "head1"}
	repo.EXPECT().Head().Return(head, nil)
	repo.EXPECT().Submodules().Return(nil, nil).AnyTimes()
	repo.EXPECT().CreateBranch(gomock.Any(), "head1", true).Return(nil).Times(5)
	repo.EXPECT().SetHead("refs/heads/multi_rebase_new").Return(nil)
	repo.EXPECT().MergeBase("head1", "target1").Return("base1", nil)
	repo.EXPECT().NewRebase().Return(engine)
	repo.EXPECT().Diff().Return(nil, nil)

	engine.EXPECT().Start(gomock.Any(), "head1", "base1", "target1").Return(nil)
	engine.EXPECT().Next(gomock.Any()).Return("orig1", true, nil)
	repo.EXPECT().CreateBranch(rebase.MarkerTrack, "orig1", true).Return(nil)
	repo.EXPECT().Tree("orig1").Return("tree1", nil)
	engine.EXPECT().Commit(gomock.Any(), gomock.Any()).Return("new1", store.RebaseOK, nil)
	engine.EXPECT().Next(gomock.Any()).Return("", false, nil)
	engine.EXPECT().Finish(gomock.Any()).Return(nil)

	repo.EXPECT().SetHead("refs/heads/main").Return(nil)
	repo.EXPECT().Reset("head1", store.ResetHard).Return(nil)

	d := &rebase.Driver{Prompt: noPrompt{t: t}}
	node := forest.Node{Repo: repo, Target: "target1", Path: nil}

	result, err := d.Visit(context.Background(), node, map[string]*rebase.ForestResult{})
	require.NoError(t, err)
	assert.Equal(t, "target1", result.Commits["base1"])
	assert.Equal(t, "new1", result.Commits["orig1"])
}

// TestDriver_Visit_AdoptsSubmoduleNotInPrecollectedForest exercises a
// submodule that forest.Walk never visited ahead of time (this node's
// target tree does not pin it) but that does turn up
// pinned in one of the commits being replayed. fixupSubmodules has to
// rebase it on the spot, via adoptNewSubmodule, rather than treat it as
// already covered by childResults.
//
// adoptNewSubmodule must read the submodule's pin at the parent's entry
// tree (the newest, not-yet-rebased state) to decide where to detach the
// child repository, separately from the pin recorded in the commit
// currently being replayed (the target the child gets rebased onto).
// Those two pins are deliberately different here, so a test that let the
// child walk itself (old HEAD -> old HEAD, as the previous, buggy
// implementation did) would produce a trivial identity map and this
// assertion on a genuinely rebased child commit would fail.
func TestDriver_Visit_AdoptsSubmoduleNotInPrecollectedForest(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := storemock.NewMockRepo(ctrl)
	engine := storemock.NewMockRebaseEngine(ctrl)
	sub := storemock.NewMockSubmodule(ctrl)
	child := storemock.NewMockRepo(ctrl)
	childEngine := storemock.NewMockRebaseEngine(ctrl)

	head := store.Ref{Name: "refs/heads/main", Short: "main", CommitID: "head1"}
	repo.EXPECT().Head().Return(head, nil)
	repo.EXPECT().Submodules().Return([]store.Submodule{sub}, nil).AnyTimes()
	sub.EXPECT().Name().Return("widget").AnyTimes()
	sub.EXPECT().Path().Return("widget").AnyTimes()
	repo.EXPECT().CreateBranch(gomock.Any(), "head1", true).Return(nil).Times(5)
	repo.EXPECT().SetHead("refs/heads/multi_rebase_new").Return(nil)
	repo.EXPECT().MergeBase("head1", "target1").Return("base1", nil)
	repo.EXPECT().NewRebase().Return(engine)
	repo.EXPECT().Diff().Return(nil, nil)

	engine.EXPECT().Start(gomock.Any(), "head1", "base1", "target1").Return(nil)
	engine.EXPECT().Next(gomock.Any()).Return("orig1", true, nil)
	repo.EXPECT().CreateBranch(rebase.MarkerTrack, "orig1", true).Return(nil)
	repo.EXPECT().Tree("orig1").Return("tree1", nil)

	// The pin recorded in the commit being replayed: what the child
	// needs to end up rebased onto.
	repo.EXPECT().SubmoduleAtTree(sub, "tree1").Return("subTarget1", true, nil)

	// adoptNewSubmodule: reads the pin at the parent's own entry tree
	// (head1), distinct from subTarget1 above, and detaches there.
	repo.EXPECT().Tree("head1").Return("entryTree1", nil)
	repo.EXPECT().SubmoduleAtTree(sub, "entryTree1").Return("subFinal1", true, nil)
	sub.EXPECT().Open().Return(child, nil)
	child.EXPECT().SetHeadDetached("subFinal1").Return(nil)

	// The recursive walk of the child repository, now detached at
	// subFinal1 and being driven toward subTarget1.
	child.EXPECT().Path().Return("/root/widget").AnyTimes()
	child.EXPECT().Submodules().Return(nil, nil).AnyTimes()
	child.EXPECT().Tree("subTarget1").Return("subTargetTree1", nil)

	childEntry := store.Ref{IsHEAD: true, CommitID: "subFinal1"}
	child.EXPECT().Head().Return(childEntry, nil)
	child.EXPECT().CreateBranch(gomock.Any(), "subFinal1", true).Return(nil).Times(5)
	child.EXPECT().SetHead("refs/heads/multi_rebase_new").Return(nil)
	child.EXPECT().MergeBase("subFinal1", "subTarget1").Return("subBase1", nil)
	child.EXPECT().NewRebase().Return(childEngine)
	child.EXPECT().Diff().Return(nil, nil)

	childEngine.EXPECT().Start(gomock.Any(), "subFinal1", "subBase1", "subTarget1").Return(nil)
	childEngine.EXPECT().Next(gomock.Any()).Return("subOrig1", true, nil)
	child.EXPECT().CreateBranch(rebase.MarkerTrack, "subOrig1", true).Return(nil)
	child.EXPECT().Tree("subOrig1").Return("subOrigTree1", nil)
	childEngine.EXPECT().Commit(gomock.Any(), gomock.Any()).Return("subNew1", store.RebaseOK, nil)
	childEngine.EXPECT().Next(gomock.Any()).Return("", false, nil)
	childEngine.EXPECT().Finish(gomock.Any()).Return(nil)

	child.EXPECT().SetHeadDetached("subFinal1").Return(nil)
	child.EXPECT().Reset("subFinal1", store.ResetHard).Return(nil)

	// Back in the parent's fixupSubmodules: the adopted submodule's
	// pin from the replayed commit (subTarget1) has no entry yet in
	// its freshly-built CommitMap, so the parent points the submodule
	// at it unchanged, and re-opens the child to do so.
	sub.EXPECT().Open().Return(child, nil)
	child.EXPECT().Head().Return(store.Ref{IsHEAD: true, CommitID: "subFinal1"}, nil)
	child.EXPECT().SetHead("refs/heads/multi_rebase_cur").Return(nil)
	child.EXPECT().Reset("subTarget1", store.ResetHard).Return(nil)
	repo.EXPECT().UpdateAllAndAdd([]string{"widget"}).Return(nil)

	engine.EXPECT().Commit(gomock.Any(), gomock.Any()).Return("new1", store.RebaseOK, nil)
	engine.EXPECT().Next(gomock.Any()).Return("", false, nil)
	engine.EXPECT().Finish(gomock.Any()).Return(nil)

	repo.EXPECT().SetHead("refs/heads/main").Return(nil)
	repo.EXPECT().Reset("head1", store.ResetHard).Return(nil)

	d := &rebase.Driver{Prompt: noPrompt{t: t}}
	node := forest.Node{Repo: repo, Target: "target1", Path: nil}

	result, err := d.Visit(context.Background(), node, map[string]*rebase.ForestResult{})
	require.NoError(t, err)
	assert.Equal(t, "new1", result.Commits["orig1"])

	childResult, ok := result.Children["widget"]
	require.True(t, ok)
	assert.Equal(t, "subTarget1", childResult.Commits["subBase1"])
	assert.Equal(t, "subNew1", childResult.Commits["subOrig1"])
	assert.NotEqual(t, childResult.Commits["subOrig1"], "subOrig1", "adopted submodule must be genuinely rebased, not walked against itself")
}
