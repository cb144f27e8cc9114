package aggregate

import (
	"os"
	"path/filepath"

	"github.com/baserock/megarepo/internal/config"
	"github.com/baserock/megarepo/internal/git"
	"github.com/baserock/megarepo/internal/models"

	"github.com/charmbracelet/log"
)

// SubmoduleStrategy embeds each repository as a named pointer to an exact
// commit, without merging histories
type SubmoduleStrategy struct {
	root   string
	git    *git.Git
	cfg    *config.Config
	logger *log.Logger
}

func (s *SubmoduleStrategy) Name() string { return "submodule" }

// Reconcile brings one submodule to the desired commit. Attaching is a
// two-step: `git submodule add` only accepts branch names, so the entry is
// attached at a known-good branch and then checked out at the exact ref.
func (s *SubmoduleStrategy) Reconcile(entry models.DesiredEntry) (Action, error) {
	name := entry.Name()
	entryDir := filepath.Join(s.root, name)

	if _, err := os.Stat(entryDir); os.IsNotExist(err) {
		branch := s.cfg.BranchFor(entry.RepoURL)
		s.logger.Info("submodule not set up, adding", "name", name, "repo", entry.RepoURL, "branch", branch)
		if err := s.git.SubmoduleAdd(s.root, entry.RepoURL, name, branch); err != nil {
			return ActionNone, err
		}
		s.logger.Info("checking out ref", "name", name, "ref", entry.Ref)
		if err := s.git.Checkout(entryDir, entry.Ref); err != nil {
			return ActionNone, err
		}
		return ActionAdded, nil
	}

	s.logger.Debug("submodule dir exists", "name", name)
	state, err := s.git.SubmoduleStatus(s.root, name)
	if err != nil {
		return ActionNone, err
	}

	if models.StateCommit(state) == entry.Ref {
		s.logger.Info("already at ref", "name", name, "ref", entry.Ref)
		return ActionNone, nil
	}

	if !models.IsInitialized(state) {
		// The whole submodule must be cloned before a commit can be checked out
		s.logger.Info("submodule registered but empty, cloning", "name", name)
		if err := s.git.SubmoduleUpdateInit(s.root, name); err != nil {
			return ActionNone, err
		}
	}

	s.logger.Info("checking out ref", "name", name, "was", models.StateCommit(state), "ref", entry.Ref)
	if err := s.git.Checkout(entryDir, entry.Ref); err != nil {
		return ActionNone, err
	}
	return ActionCheckedOut, nil
}

func (s *SubmoduleStrategy) Finalize() error { return nil }
