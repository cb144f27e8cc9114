package models

import (
	"fmt"
	"strings"
)

// Mode selects the aggregation strategy for a run
type Mode int

const (
	// ModeSubmodule embeds each repository as a commit pointer
	ModeSubmodule Mode = iota
	// ModeSubtree merges each repository's history into a prefixed subdirectory
	ModeSubtree
	// ModeSubrepo maintains split-history subdirectories via git-subrepo
	ModeSubrepo
	// ModeRepo records the desired set in a repo-style manifest.xml
	ModeRepo
)

// Modes lists every supported mode
var Modes = []Mode{ModeSubmodule, ModeSubtree, ModeSubrepo, ModeRepo}

// String returns the flag spelling of the mode
func (m Mode) String() string {
	switch m {
	case ModeSubmodule:
		return "submodule"
	case ModeSubtree:
		return "subtree"
	case ModeSubrepo:
		return "subrepo"
	case ModeRepo:
		return "repo"
	default:
		return ""
	}
}

// ParseMode maps a --mode flag value to a Mode
func ParseMode(s string) (Mode, error) {
	for _, m := range Modes {
		if s == m.String() {
			return m, nil
		}
	}
	return 0, fmt.Errorf("mode %q is not supported, available modes: %s", s, ModeNames())
}

// ModeNames returns the supported mode spellings, comma separated
func ModeNames() string {
	names := make([]string, len(Modes))
	for i, m := range Modes {
		names[i] = m.String()
	}
	return strings.Join(names, ", ")
}
