package git

import (
	"errors"
	"fmt"
	"strings"

	"github.com/baserock/megarepo/internal/proc"
)

// Git issues git commands against working trees through a Runner. It is the
// only place the reconciliation engine talks to the git CLI.
type Git struct {
	runner proc.Runner
}

// New creates a Git port on top of the given runner
func New(runner proc.Runner) *Git {
	return &Git{runner: runner}
}

// SubmoduleInit enables the submodule subsystem in a fresh aggregate
func (g *Git) SubmoduleInit(dir string) error {
	_, err := g.runner.Run(dir, "git", "submodule", "init")
	return err
}

// SubmoduleAdd registers url as a new submodule named name. branch must be
// the name of a branch that exists in url: `git submodule add --branch`
// refuses tags and commit hashes, which is why callers pin the exact ref
// with a separate Checkout afterwards.
func (g *Git) SubmoduleAdd(dir, url, name, branch string) error {
	_, err := g.runner.Run(dir, "git", "submodule", "add", "--branch", branch, "--name", name, url)
	return err
}

// SubmoduleUpdateInit clones one registered-but-empty submodule
func (g *Git) SubmoduleUpdateInit(dir, name string) error {
	_, err := g.runner.Run(dir, "git", "submodule", "update", "--init", name)
	return err
}

// Checkout moves the working tree at dir to ref
func (g *Git) Checkout(dir, ref string) error {
	_, err := g.runner.Run(dir, "git", "checkout", ref)
	return err
}

// SubtreeAdd merges url's branch into a new prefix directory
func (g *Git) SubtreeAdd(dir, prefix, url, branch string) error {
	_, err := g.runner.Run(dir, "git", "subtree", "add", "--prefix", prefix, url, branch)
	return err
}

// SubtreePull merges new history from url's branch into an existing prefix.
// A merge message is supplied so git never opens an editor, but a conflicting
// merge still stops the run and waits for manual resolution: git subtree has
// no non-interactive escape hatch for that case.
func (g *Git) SubtreePull(dir, prefix, url, branch string) error {
	message := fmt.Sprintf("Merge %s branch '%s' into %s", url, branch, prefix)
	_, err := g.runner.Run(dir, "git", "subtree", "pull", "--prefix", prefix, "-m", message, url, branch)
	return err
}

// SubrepoClone creates a new split-history subdir from url's branch
func (g *Git) SubrepoClone(dir, url, name, branch string) error {
	_, err := g.runner.Run(dir, "git", "subrepo", "clone", url, name, "-b", branch)
	return err
}

// SubrepoPull updates an existing split-history subdir from url's branch
func (g *Git) SubrepoPull(dir, name, url, branch string) error {
	_, err := g.runner.Run(dir, "git", "subrepo", "pull", name, "-b", branch, "-r", url)
	return err
}

// Add stages one path
func (g *Git) Add(dir, path string) error {
	_, err := g.runner.Run(dir, "git", "add", path)
	return err
}

// CommitAll commits every pending change in dir. A run that changed nothing
// makes `git commit` exit non-zero with a "nothing to commit" notice; that is
// successful convergence, reported as (false, nil) rather than an error.
func (g *Git) CommitAll(dir, message string) (bool, error) {
	output, err := g.runner.Run(dir, "git", "commit", "--all", "--message", message)
	if err != nil {
		if isNothingToCommit(output, err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func isNothingToCommit(output []byte, err error) bool {
	text := string(output)
	var cmdErr *proc.CommandError
	if errors.As(err, &cmdErr) {
		text += cmdErr.Output
	}
	return strings.Contains(text, "nothing to commit") ||
		strings.Contains(text, "nothing added to commit")
}
