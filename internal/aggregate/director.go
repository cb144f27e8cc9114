package aggregate

import (
	"fmt"
	"os"

	"github.com/baserock/megarepo/internal/git"
	"github.com/baserock/megarepo/internal/models"

	"github.com/charmbracelet/log"
	gogit "github.com/go-git/go-git/v5"
)

// EntryResult is the outcome of reconciling one desired entry
type EntryResult struct {
	Name   string
	Action Action
}

// Director drives one convergence run: it prepares the aggregate root,
// reconciles every desired entry through the strategy, and captures the
// result in a single commit. Entries are processed sequentially; a failed
// entry aborts the run with the aggregate left partially updated, and
// re-running resumes from wherever the last run stopped.
type Director struct {
	root     string
	mode     models.Mode
	strategy Strategy
	git      *git.Git
	logger   *log.Logger
}

// NewDirector creates a Director for one aggregate root
func NewDirector(root string, mode models.Mode, strategy Strategy, g *git.Git, logger *log.Logger) *Director {
	return &Director{root: root, mode: mode, strategy: strategy, git: g, logger: logger}
}

// Converge brings the aggregate to the desired set and commits the result.
// A run that finds everything already converged commits nothing and still
// succeeds.
func (d *Director) Converge(set *models.EntrySet) ([]EntryResult, error) {
	if err := set.CheckNames(); err != nil {
		return nil, err
	}
	if err := d.prepareRoot(); err != nil {
		return nil, err
	}

	results := make([]EntryResult, 0, set.Len())
	for _, entry := range set.Entries() {
		action, err := d.strategy.Reconcile(entry)
		if err != nil {
			return results, fmt.Errorf("reconciling %s: %w", entry.Name(), err)
		}
		results = append(results, EntryResult{Name: entry.Name(), Action: action})
	}

	if err := d.strategy.Finalize(); err != nil {
		return results, err
	}

	d.logPendingChanges()
	message := fmt.Sprintf("Add/update %ss", d.strategy.Name())
	committed, err := d.git.CommitAll(d.root, message)
	if err != nil {
		return results, err
	}
	if committed {
		d.logger.Info("committed aggregate changes", "message", message)
	} else {
		d.logger.Info("nothing to commit, aggregate already converged")
	}
	return results, nil
}

// prepareRoot opens the aggregate repository, creating it on first run. An
// existing root is the normal re-entrant case.
func (d *Director) prepareRoot() error {
	if _, err := gogit.PlainOpen(d.root); err == nil {
		d.logger.Debug("output directory already exists", "path", d.root)
		return nil
	}

	d.logger.Info("creating new git directory", "path", d.root)
	if err := os.MkdirAll(d.root, 0755); err != nil {
		return err
	}
	if _, err := gogit.PlainInit(d.root, false); err != nil {
		return fmt.Errorf("initializing %s: %w", d.root, err)
	}
	if d.mode == models.ModeSubmodule {
		return d.git.SubmoduleInit(d.root)
	}
	return nil
}

// logPendingChanges reports how much the run changed before the final commit
// sweeps it up. Best effort; a status failure only costs the log line.
func (d *Director) logPendingChanges() {
	repo, err := gogit.PlainOpen(d.root)
	if err != nil {
		return
	}
	worktree, err := repo.Worktree()
	if err != nil {
		return
	}
	status, err := worktree.Status()
	if err != nil {
		return
	}
	d.logger.Debug("pending changes before commit", "files", len(status))
}
