package aggregate

import (
	"os"
	"path/filepath"

	"github.com/baserock/megarepo/internal/config"
	"github.com/baserock/megarepo/internal/git"
	"github.com/baserock/megarepo/internal/models"

	"github.com/charmbracelet/log"
)

// SubtreeStrategy merges each repository's history into a prefixed
// subdirectory of the aggregate's own history. Granularity is branch-level:
// git subtree cannot pin an arbitrary commit, so the desired ref is satisfied
// only as "latest state of the configured branch".
type SubtreeStrategy struct {
	root   string
	git    *git.Git
	cfg    *config.Config
	logger *log.Logger
}

func (s *SubtreeStrategy) Name() string { return "subtree" }

func (s *SubtreeStrategy) Reconcile(entry models.DesiredEntry) (Action, error) {
	name := entry.Name()
	branch := s.cfg.BranchFor(entry.RepoURL)

	if _, err := os.Stat(filepath.Join(s.root, name)); err == nil {
		s.logger.Info("subtree dir exists, pulling", "name", name, "branch", branch)
		if err := s.git.SubtreePull(s.root, name, entry.RepoURL, branch); err != nil {
			return ActionNone, err
		}
		return ActionPulled, nil
	}

	s.logger.Info("subtree not set up, adding", "name", name, "repo", entry.RepoURL, "branch", branch)
	if err := s.git.SubtreeAdd(s.root, name, entry.RepoURL, branch); err != nil {
		return ActionNone, err
	}
	return ActionAdded, nil
}

func (s *SubtreeStrategy) Finalize() error { return nil }
