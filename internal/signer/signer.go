// Package signer provides the commit-signing collaborator invoked by the
// rebase engine before it writes each rewritten commit: it may either
// hand back a freshly-signed commit id or ask the engine to fall back to
// default commit creation.
package signer

import (
	"bytes"
	"fmt"
	"time"

	"github.com/ProtonMail/go-crypto/openpgp"
	"github.com/ProtonMail/go-crypto/openpgp/armor"

	"github.com/apenwarr/git-subrebase/internal/store"
)

// Passthrough always asks the engine to use default commit creation.
// cmd/git-subrebase wires this in when no signing key is configured.
type Passthrough struct{}

func (Passthrough) Sign(store.CommitMeta, string, []string) (string, bool, error) {
	return "", true, nil
}

// GPG signs the commit object with a loaded OpenPGP private key, the way
// `git rebase -S` would, using ProtonMail/go-crypto (the maintained
// successor to golang.org/x/crypto/openpgp). It refuses (passthrough)
// if no key was configured.
type GPG struct {
	Entity *openpgp.Entity
	// BuildCommit encodes a git commit object (author/committer/tree/
	// parents/message, with an optional gpgsig header) and writes it
	// to the store, returning the new commit id. The caller supplies
	// it so signer stays store-agnostic.
	BuildCommit func(meta store.CommitMeta, treeID string, parents []string, gpgsig string) (string, error)
}

func (g GPG) Sign(meta store.CommitMeta, treeID string, parents []string) (string, bool, error) {
	if g.Entity == nil || g.BuildCommit == nil {
		return "", true, nil
	}

	payload := commitPayload(meta, treeID, parents)

	var sigBuf bytes.Buffer
	armorWriter, err := armor.Encode(&sigBuf, openpgp.SignatureType, nil)
	if err != nil {
		return "", true, fmt.Errorf("gpg: armor: %w", err)
	}
	if err := openpgp.DetachSign(armorWriter, g.Entity, bytes.NewReader(payload), nil); err != nil {
		return "", true, fmt.Errorf("gpg: sign: %w", err)
	}
	if err := armorWriter.Close(); err != nil {
		return "", true, fmt.Errorf("gpg: armor close: %w", err)
	}

	newID, err := g.BuildCommit(meta, treeID, parents, sigBuf.String())
	if err != nil {
		return "", true, fmt.Errorf("gpg: build commit: %w", err)
	}
	return newID, false, nil
}

// commitPayload reconstructs the signable portion of a commit object:
// tree, parents, author, committer, message -- the same bytes `git
// commit-tree` hashes before appending a gpgsig header.
func commitPayload(meta store.CommitMeta, treeID string, parents []string) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "tree %s\n", treeID)
	for _, p := range parents {
		fmt.Fprintf(&buf, "parent %s\n", p)
	}
	fmt.Fprintf(&buf, "author %s <%s> %s\n", meta.Author.Name, meta.Author.Email, stamp(meta.Author.When))
	fmt.Fprintf(&buf, "committer %s <%s> %s\n", meta.Committer.Name, meta.Committer.Email, stamp(meta.Committer.When))
	buf.WriteByte('\n')
	buf.WriteString(meta.Message)
	return buf.Bytes()
}

// stamp renders a signature time the way git does: Unix seconds and
// the +hhmm/-hhmm zone offset.
func stamp(t time.Time) string { return fmt.Sprintf("%d %s", t.Unix(), t.Format("-0700")) }
