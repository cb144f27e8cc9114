package models

// SubmoduleState describes how a desired entry is currently materialized in
// pointer-submodule mode
type SubmoduleState interface {
	isSubmoduleState()
}

type stateUninitialized struct{ Commit string }
type stateInitialized struct{ Commit string }

func (stateUninitialized) isSubmoduleState() {}
func (stateInitialized) isSubmoduleState()   {}

// Uninitialized creates a state for a registered but never-cloned submodule
func Uninitialized(commit string) SubmoduleState {
	return stateUninitialized{Commit: commit}
}

// Initialized creates a state for a cloned submodule checked out at commit
func Initialized(commit string) SubmoduleState {
	return stateInitialized{Commit: commit}
}

// IsInitialized returns true if the submodule's working copy exists
func IsInitialized(s SubmoduleState) bool {
	_, ok := s.(stateInitialized)
	return ok
}

// StateCommit returns the commit recorded for the submodule
func StateCommit(s SubmoduleState) string {
	switch st := s.(type) {
	case stateUninitialized:
		return st.Commit
	case stateInitialized:
		return st.Commit
	}
	return ""
}
