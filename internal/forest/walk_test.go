package forest_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/apenwarr/git-subrebase/internal/forest"
	"github.com/apenwarr/git-subrebase/internal/store"
	"github.com/apenwarr/git-subrebase/internal/store/storemock"
)

func TestWalk_NoSubmodules_VisitsRootOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := storemock.NewMockRepo(ctrl)

	repo.EXPECT().Submodules().Return(nil, nil)
	repo.EXPECT().Tree("target").Return("tree1", nil)
	repo.EXPECT().Path().Return("/root").AnyTimes()

	var visited []string
	got, err := forest.Walk(context.Background(), repo, "target", func(ctx context.Context, node forest.Node, children map[string]int) (int, error) {
		visited = append(visited, forest.NodePath(node.Path))
		assert.Empty(t, children)
		return 42, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 42, got)
	assert.Equal(t, []string{"*root*"}, visited)
}

func TestWalk_OneSubmodule_ChildVisitedBeforeParent(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := storemock.NewMockRepo(ctrl)
	childRepo := storemock.NewMockRepo(ctrl)
	sub := storemock.NewMockSubmodule(ctrl)

	repo.EXPECT().Path().Return("/root").AnyTimes()
	childRepo.EXPECT().Path().Return("/root/vendor").AnyTimes()

	repo.EXPECT().Tree("target").Return("root-tree", nil)
	repo.EXPECT().Submodules().Return([]store.Submodule{sub}, nil)
	sub.EXPECT().Name().Return("vendor").AnyTimes()
	sub.EXPECT().Path().Return("vendor").AnyTimes()
	repo.EXPECT().SubmoduleAtTree(sub, "root-tree").Return("child-target", true, nil)
	sub.EXPECT().Open().Return(childRepo, nil)

	childRepo.EXPECT().Submodules().Return(nil, nil)
	childRepo.EXPECT().Tree("child-target").Return("child-tree", nil)

	var order []string
	_, err := forest.Walk(context.Background(), repo, "target", func(ctx context.Context, node forest.Node, children map[string]int) (int, error) {
		order = append(order, forest.NodePath(node.Path))
		return 0, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"vendor", "*root*"}, order)
}

func TestWalk_SubmoduleAbsentFromTarget_IsSkipped(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := storemock.NewMockRepo(ctrl)
	sub := storemock.NewMockSubmodule(ctrl)

	dummyChild := storemock.NewMockRepo(ctrl)

	repo.EXPECT().Path().Return("/root").AnyTimes()
	repo.EXPECT().Tree("target").Return("root-tree", nil)
	repo.EXPECT().Submodules().Return([]store.Submodule{sub}, nil)
	sub.EXPECT().Name().Return("vendor").AnyTimes()
	repo.EXPECT().SubmoduleAtTree(sub, "root-tree").Return("", false, nil)
	sub.EXPECT().Open().Return(dummyChild, nil)

	var visited int
	_, err := forest.Walk(context.Background(), repo, "target", func(ctx context.Context, node forest.Node, children map[string]int) (int, error) {
		visited++
		assert.Empty(t, children)
		return 0, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, visited)
}
