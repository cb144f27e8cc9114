package aggregate

import (
	"os"
	"path/filepath"

	"github.com/baserock/megarepo/internal/config"
	"github.com/baserock/megarepo/internal/git"
	"github.com/baserock/megarepo/internal/models"

	"github.com/charmbracelet/log"
)

// SubrepoStrategy maintains each repository as a git-subrepo subdirectory
// whose history can be split back out to its origin. Branch granularity only,
// like SubtreeStrategy.
type SubrepoStrategy struct {
	root   string
	git    *git.Git
	cfg    *config.Config
	logger *log.Logger
}

func (s *SubrepoStrategy) Name() string { return "subrepo" }

func (s *SubrepoStrategy) Reconcile(entry models.DesiredEntry) (Action, error) {
	name := entry.Name()
	branch := s.cfg.BranchFor(entry.RepoURL)

	if _, err := os.Stat(filepath.Join(s.root, name)); err == nil {
		s.logger.Info("subrepo dir exists, pulling", "name", name, "branch", branch)
		if err := s.git.SubrepoPull(s.root, name, entry.RepoURL, branch); err != nil {
			return ActionNone, err
		}
		return ActionPulled, nil
	}

	s.logger.Info("subrepo not set up, cloning", "name", name, "repo", entry.RepoURL, "branch", branch)
	if err := s.git.SubrepoClone(s.root, entry.RepoURL, name, branch); err != nil {
		return ActionNone, err
	}
	return ActionAdded, nil
}

func (s *SubrepoStrategy) Finalize() error { return nil }
