// Command git-subrebase rebases a repository and every submodule nested
// beneath it, recursively, onto a single target commit. Usage:
//
//	git-subrebase <target-ref>
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/pborman/getopt"
	"github.com/sirupsen/logrus"

	"github.com/apenwarr/git-subrebase/internal/errs"
	"github.com/apenwarr/git-subrebase/internal/finalize"
	"github.com/apenwarr/git-subrebase/internal/forest"
	"github.com/apenwarr/git-subrebase/internal/preflight"
	"github.com/apenwarr/git-subrebase/internal/prompt"
	"github.com/apenwarr/git-subrebase/internal/rebase"
	"github.com/apenwarr/git-subrebase/internal/signer"
	"github.com/apenwarr/git-subrebase/internal/store"
	"github.com/apenwarr/git-subrebase/internal/store/gogit"
)

func main() {
	verbose := getopt.BoolLong("verbose", 'v', "print debug diagnostics")
	dir := getopt.StringLong("dir", 'C', ".", "run as if started in <dir>")
	getopt.SetParameters("<target-ref>")
	getopt.Parse()

	if *verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	args := getopt.Args()
	if len(args) != 1 {
		getopt.Usage()
		os.Exit(2)
	}

	if err := run(*dir, args[0]); err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}

func run(dir, targetRef string) error {
	ctx := context.Background()

	root, err := gogit.Open(dir)
	if err != nil {
		return err
	}

	if dirty, err := root.Diff(); err != nil {
		return err
	} else if len(dirty) > 0 {
		return fmt.Errorf("%w: working tree is dirty, commit or stash before rebasing", errs.ErrPrecondition)
	}
	target, err := root.ResolveShortName(targetRef)
	if err != nil {
		return err
	}

	if _, err := forest.Walk(ctx, root, target, func(ctx context.Context, node forest.Node, _ map[string]struct{}) (struct{}, error) {
		if locked, err := node.Repo.HasIndexLock(); err != nil {
			return struct{}{}, err
		} else if locked {
			return struct{}{}, fmt.Errorf("%w: %s: index.lock present, another git process may be running", errs.ErrPrecondition, forest.NodePath(node.Path))
		}
		return struct{}{}, nil
	}); err != nil {
		return err
	}

	interrupter := prompt.NewInterrupter()
	term := prompt.NewTerminal(os.Stdin, os.Stdout, interrupter)
	if !prompt.IsInteractive() {
		logrus.Warn("stdin/stdout are not a terminal; prompts will block on piped input")
	}

	if err := preflight.CleanupLeftoverMarkers(ctx, root, target, term); err != nil {
		return err
	}
	resolver := &preflight.Resolver{Prompt: term}
	if err := preflight.ApplyAll(ctx, root, target, resolver); err != nil {
		return err
	}

	plans, err := finalize.PlansFromEntry(ctx, root, target)
	if err != nil {
		return err
	}

	driver := &rebase.Driver{
		Prompt: term,
		Signer: commitSigner(),
	}
	_, walkErr := forest.Walk(ctx, root, target, driver.Visit)
	if walkErr != nil {
		logrus.WithError(walkErr).Error("rebase failed, rolling back")
		if err := finalize.Rollback(ctx, root, target, plans); err != nil {
			return fmt.Errorf("rollback after %v also failed: %w", walkErr, err)
		}
		return walkErr
	}

	return finalize.Success(ctx, root, target, plans)
}

// commitSigner returns the default commit-creation collaborator. A
// future flag (e.g. --gpg-sign) would construct signer.GPG here instead;
// lacking configured key material, passthrough is always correct.
func commitSigner() store.CommitSigner {
	return signer.Passthrough{}
}
