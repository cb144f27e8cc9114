// Package aggregate converges a megarepo directory onto a desired set of
// (repository, ref) pairs using one of four strategies: pointer submodules,
// merged subtrees, split subrepos, or a declarative manifest file.
package aggregate

import (
	"github.com/baserock/megarepo/internal/config"
	"github.com/baserock/megarepo/internal/git"
	"github.com/baserock/megarepo/internal/models"

	"github.com/charmbracelet/log"
)

// Action describes what a reconcile pass did to an entry
type Action string

const (
	// ActionNone means the entry already matched the desired state
	ActionNone Action = "up to date"
	// ActionAdded means the entry was attached for the first time
	ActionAdded Action = "added"
	// ActionCheckedOut means an existing entry was moved to the desired ref
	ActionCheckedOut Action = "checked out"
	// ActionPulled means an existing subtree/subrepo merged new history
	ActionPulled Action = "pulled"
	// ActionDeclared means the entry was recorded in the manifest
	ActionDeclared Action = "declared"
)

// Strategy converges one desired entry onto the aggregate. Finalize runs once
// after every entry has been reconciled. Adding a strategy means adding an
// implementation here; the Director never switches on the mode.
type Strategy interface {
	// Name is the mode spelling, used in the finalizing commit message
	Name() string
	Reconcile(entry models.DesiredEntry) (Action, error)
	Finalize() error
}

// New builds the strategy for mode, operating on the aggregate at root
func New(mode models.Mode, root string, g *git.Git, cfg *config.Config, logger *log.Logger) Strategy {
	switch mode {
	case models.ModeSubtree:
		return &SubtreeStrategy{root: root, git: g, cfg: cfg, logger: logger}
	case models.ModeSubrepo:
		return &SubrepoStrategy{root: root, git: g, cfg: cfg, logger: logger}
	case models.ModeRepo:
		return &ManifestStrategy{root: root, git: g, remote: cfg.Remote, logger: logger}
	default:
		return &SubmoduleStrategy{root: root, git: g, cfg: cfg, logger: logger}
	}
}
