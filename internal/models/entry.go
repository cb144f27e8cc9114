package models

import (
	"fmt"
	"path"
	"strings"
)

// DesiredEntry is one (repository, ref) pair the aggregate must reflect
type DesiredEntry struct {
	// RepoURL is the resolved pull URL of the source repository
	RepoURL string
	// Ref is the commit (or branch, for branch-granular strategies) to materialize
	Ref string
}

// Name returns the on-disk entry name for this entry's repository
func (e DesiredEntry) Name() string {
	return EntryName(e.RepoURL)
}

// EntryName derives the directory/submodule/prefix name from a repository URL:
// the final path segment with a trailing .git stripped.
// `git submodule add --name` strips the .git extension, so we must do the same.
func EntryName(repoURL string) string {
	name := path.Base(strings.TrimSuffix(repoURL, "/"))
	return strings.TrimSuffix(name, ".git")
}

// EntrySet is a de-duplicated collection of desired entries. Duplicate pairs
// collapse; first-seen order is preserved so logs and generated documents
// are stable across runs.
type EntrySet struct {
	entries []DesiredEntry
	seen    map[DesiredEntry]bool
}

// NewEntrySet creates an empty EntrySet
func NewEntrySet() *EntrySet {
	return &EntrySet{seen: make(map[DesiredEntry]bool)}
}

// Add inserts an entry, returning false if the exact pair was already present.
// The same repository at two different refs counts as two entries.
func (s *EntrySet) Add(e DesiredEntry) bool {
	if s.seen[e] {
		return false
	}
	s.seen[e] = true
	s.entries = append(s.entries, e)
	return true
}

// Entries returns the entries in insertion order
func (s *EntrySet) Entries() []DesiredEntry {
	return s.entries
}

// Len returns the number of distinct entries
func (s *EntrySet) Len() int {
	return len(s.entries)
}

// CheckNames returns a NameConflictError if two distinct repository URLs
// normalize to the same entry name. Conflicts are detected up front so a
// run never silently overwrites one entry with another.
func (s *EntrySet) CheckNames() error {
	byName := make(map[string]string, len(s.entries))
	for _, e := range s.entries {
		name := e.Name()
		if first, ok := byName[name]; ok && first != e.RepoURL {
			return &NameConflictError{Name: name, FirstURL: first, SecondURL: e.RepoURL}
		}
		byName[name] = e.RepoURL
	}
	return nil
}

// NameConflictError reports two distinct repository URLs that normalize to
// the same entry name
type NameConflictError struct {
	Name      string
	FirstURL  string
	SecondURL string
}

func (e *NameConflictError) Error() string {
	return fmt.Sprintf("entry name %q is claimed by both %s and %s", e.Name, e.FirstURL, e.SecondURL)
}
