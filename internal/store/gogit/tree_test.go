package gogit

import (
	"testing"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/filemode"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/storage/memory"
	"github.com/stretchr/testify/require"
)

func blobHash(t *testing.T, s *memory.Storage, content string) plumbing.Hash {
	t.Helper()
	obj := s.NewEncodedObject()
	obj.SetType(plumbing.BlobObject)
	w, err := obj.Writer()
	require.NoError(t, err)
	_, err = w.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	h, err := s.SetEncodedObject(obj)
	require.NoError(t, err)
	return h
}

func decodeTree(t *testing.T, s *memory.Storage, h plumbing.Hash) *object.Tree {
	t.Helper()
	obj, err := s.EncodedObject(plumbing.TreeObject, h)
	require.NoError(t, err)
	tree := &object.Tree{}
	require.NoError(t, tree.Decode(obj))
	return tree
}

func TestOverridePath_TopLevelSubmodulePointer(t *testing.T) {
	s := memory.NewStorage()
	readme := blobHash(t, s, "hello\n")
	root, err := writeTree(s, &object.Tree{Entries: []object.TreeEntry{
		{Name: "README.md", Mode: filemode.Regular, Hash: readme},
		{Name: "vendor", Mode: filemode.Submodule, Hash: plumbing.NewHash("1111111111111111111111111111111111111111")},
	}})
	require.NoError(t, err)

	newSub := plumbing.NewHash("2222222222222222222222222222222222222222")
	newRoot, err := overridePath(s, root, "vendor", newSub, filemode.Submodule)
	require.NoError(t, err)
	require.NotEqual(t, root, newRoot)

	tree := decodeTree(t, s, newRoot)
	entry, err := tree.FindEntry("vendor")
	require.NoError(t, err)
	require.Equal(t, newSub, entry.Hash)

	readmeEntry, err := tree.FindEntry("README.md")
	require.NoError(t, err)
	require.Equal(t, readme, readmeEntry.Hash)
}

func TestOverridePath_NestedSubmodule_CreatesIntermediateTree(t *testing.T) {
	s := memory.NewStorage()
	root, err := writeTree(s, &object.Tree{})
	require.NoError(t, err)

	newSub := plumbing.NewHash("3333333333333333333333333333333333333333")
	newRoot, err := overridePath(s, root, "libs/widget", newSub, filemode.Submodule)
	require.NoError(t, err)

	tree := decodeTree(t, s, newRoot)
	libsEntry, err := tree.FindEntry("libs")
	require.NoError(t, err)
	require.Equal(t, filemode.Dir, libsEntry.Mode)

	libsTree := decodeTree(t, s, libsEntry.Hash)
	widgetEntry, err := libsTree.FindEntry("widget")
	require.NoError(t, err)
	require.Equal(t, newSub, widgetEntry.Hash)
	require.Equal(t, filemode.Submodule, widgetEntry.Mode)
}

func TestOverridePath_SiblingEntriesUntouched(t *testing.T) {
	s := memory.NewStorage()
	a := blobHash(t, s, "a\n")
	b := blobHash(t, s, "b\n")
	libsTree, err := writeTree(s, &object.Tree{Entries: []object.TreeEntry{
		{Name: "a.txt", Mode: filemode.Regular, Hash: a},
	}})
	require.NoError(t, err)
	root, err := writeTree(s, &object.Tree{Entries: []object.TreeEntry{
		{Name: "b.txt", Mode: filemode.Regular, Hash: b},
		{Name: "libs", Mode: filemode.Dir, Hash: libsTree},
	}})
	require.NoError(t, err)

	newSub := plumbing.NewHash("4444444444444444444444444444444444444444")
	newRoot, err := overridePath(s, root, "libs/widget", newSub, filemode.Submodule)
	require.NoError(t, err)

	tree := decodeTree(t, s, newRoot)
	bEntry, err := tree.FindEntry("b.txt")
	require.NoError(t, err)
	require.Equal(t, b, bEntry.Hash, "sibling of the edited spine must be untouched")

	libsEntry, err := tree.FindEntry("libs")
	require.NoError(t, err)
	newLibsTree := decodeTree(t, s, libsEntry.Hash)
	aEntry, err := newLibsTree.FindEntry("a.txt")
	require.NoError(t, err)
	require.Equal(t, a, aEntry.Hash, "pre-existing sibling inside the edited subtree must be untouched")
}
