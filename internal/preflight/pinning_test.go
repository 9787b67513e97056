package preflight_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/apenwarr/git-subrebase/internal/preflight"
	"github.com/apenwarr/git-subrebase/internal/rebase"
	"github.com/apenwarr/git-subrebase/internal/store"
	"github.com/apenwarr/git-subrebase/internal/store/storemock"
)

func TestDetect_RootPinned_ChildDetached_ParentNotFlagged(t *testing.T) {
	// A parent whose own HEAD is fine must NOT be flagged just because
	// one child needs pinning -- the parent's entry only turns true when
	// every child needed it too.
	ctrl := gomock.NewController(t)
	root := storemock.NewMockRepo(ctrl)
	child := storemock.NewMockRepo(ctrl)
	sub := storemock.NewMockSubmodule(ctrl)

	root.EXPECT().Path().Return("/root").AnyTimes()
	child.EXPECT().Path().Return("/root/vendor").AnyTimes()

	root.EXPECT().Tree("target").Return("root-tree", nil)
	root.EXPECT().Submodules().Return([]store.Submodule{sub}, nil)
	sub.EXPECT().Name().Return("vendor").AnyTimes()
	root.EXPECT().SubmoduleAtTree(sub, "root-tree").Return("child-target", true, nil)
	sub.EXPECT().Open().Return(child, nil)

	child.EXPECT().Submodules().Return(nil, nil)
	child.EXPECT().Tree("child-target").Return("child-tree", nil)
	child.EXPECT().Head().Return(store.Ref{IsHEAD: true, CommitID: "c1"}, nil)

	root.EXPECT().Head().Return(store.Ref{Name: "refs/heads/main", Short: "main", CommitID: "r1"}, nil)

	needs, err := preflight.Detect(context.Background(), root, "target")
	require.NoError(t, err)
	assert.True(t, needs["vendor"])
	assert.False(t, needs["*root*"])
}

func TestDetect_RootDetached_NoSubmodules_Flagged(t *testing.T) {
	ctrl := gomock.NewController(t)
	root := storemock.NewMockRepo(ctrl)
	root.EXPECT().Path().Return("/root").AnyTimes()
	root.EXPECT().Tree("target").Return("root-tree", nil)
	root.EXPECT().Submodules().Return(nil, nil)
	root.EXPECT().Head().Return(store.Ref{IsHEAD: true, CommitID: "r1"}, nil)

	needs, err := preflight.Detect(context.Background(), root, "target")
	require.NoError(t, err)
	assert.True(t, needs["*root*"])
}

func TestDetect_MarkerBranchCountsAsNeedingCheckout(t *testing.T) {
	ctrl := gomock.NewController(t)
	root := storemock.NewMockRepo(ctrl)
	root.EXPECT().Path().Return("/root").AnyTimes()
	root.EXPECT().Tree("target").Return("root-tree", nil)
	root.EXPECT().Submodules().Return(nil, nil)
	root.EXPECT().Head().Return(store.Ref{Name: "refs/heads/" + rebase.MarkerTrack, Short: rebase.MarkerTrack, CommitID: "r1"}, nil)

	needs, err := preflight.Detect(context.Background(), root, "target")
	require.NoError(t, err)
	assert.True(t, needs["*root*"])
}

func TestCleanupLeftoverMarkers_NoneFound_NoPrompt(t *testing.T) {
	ctrl := gomock.NewController(t)
	root := storemock.NewMockRepo(ctrl)
	root.EXPECT().Path().Return("/root").AnyTimes()
	root.EXPECT().Tree("target").Return("root-tree", nil)
	root.EXPECT().Submodules().Return(nil, nil)
	for _, m := range rebase.AllMarkers {
		root.EXPECT().FindBranch(m, store.ScopeLocal).Return(store.Ref{}, false, nil)
	}

	err := preflight.CleanupLeftoverMarkers(context.Background(), root, "target", failPrompt{t})
	require.NoError(t, err)
}

type failPrompt struct{ t *testing.T }

func (f failPrompt) Confirm(string) error              { f.t.Fatal("unexpected Confirm"); return nil }
func (f failPrompt) Menu(string, []string) (int, error) { f.t.Fatal("unexpected Menu"); return 0, nil }
func (f failPrompt) PressEnter(string) error           { f.t.Fatal("unexpected PressEnter"); return nil }
