package gogit

import (
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/filemode"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/storage"

	"github.com/apenwarr/git-subrebase/internal/errs"
)

// overridePath rewrites the single tree entry named by the slash-separated
// path to point at newHash with mode, leaving every sibling entry (and
// every tree along the path not on the edited spine) byte-identical, and
// returns the new root tree's hash. This is the idiomatic equivalent of
// `git update-index --cacheinfo` followed by `git write-tree`, built
// directly on object.Tree/storer.EncodedObjectStorer.
func overridePath(s storage.Storer, rootHash plumbing.Hash, path string, newHash plumbing.Hash, mode filemode.FileMode) (plumbing.Hash, error) {
	parts := strings.Split(path, "/")
	return overrideParts(s, rootHash, parts, newHash, mode)
}

func overrideParts(s storage.Storer, treeHash plumbing.Hash, parts []string, newHash plumbing.Hash, mode filemode.FileMode) (plumbing.Hash, error) {
	tree := object.Tree{}
	if treeHash != plumbing.ZeroHash {
		obj, err := s.EncodedObject(plumbing.TreeObject, treeHash)
		if err != nil {
			return plumbing.ZeroHash, fmt.Errorf("%w: load tree %s: %v", errs.ErrStore, treeHash, err)
		}
		if err := tree.Decode(obj); err != nil {
			return plumbing.ZeroHash, fmt.Errorf("%w: decode tree %s: %v", errs.ErrStore, treeHash, err)
		}
	}

	head, rest := parts[0], parts[1:]
	found := false
	for i, e := range tree.Entries {
		if e.Name != head {
			continue
		}
		found = true
		if len(rest) == 0 {
			tree.Entries[i] = object.TreeEntry{Name: head, Mode: mode, Hash: newHash}
		} else {
			childHash, err := overrideParts(s, e.Hash, rest, newHash, mode)
			if err != nil {
				return plumbing.ZeroHash, err
			}
			tree.Entries[i] = object.TreeEntry{Name: head, Mode: filemode.Dir, Hash: childHash}
		}
		break
	}
	if !found {
		if len(rest) == 0 {
			tree.Entries = append(tree.Entries, object.TreeEntry{Name: head, Mode: mode, Hash: newHash})
		} else {
			childHash, err := overrideParts(s, plumbing.ZeroHash, rest, newHash, mode)
			if err != nil {
				return plumbing.ZeroHash, err
			}
			tree.Entries = append(tree.Entries, object.TreeEntry{Name: head, Mode: filemode.Dir, Hash: childHash})
		}
	}

	return writeTree(s, &tree)
}

func writeTree(s storage.Storer, tree *object.Tree) (plumbing.Hash, error) {
	enc := s.NewEncodedObject()
	if err := tree.Encode(enc); err != nil {
		return plumbing.ZeroHash, fmt.Errorf("%w: encode tree: %v", errs.ErrStore, err)
	}
	hash, err := s.SetEncodedObject(enc)
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("%w: store tree: %v", errs.ErrStore, err)
	}
	return hash, nil
}
